package slog

import (
	"context"
	"log/slog"
	"runtime"
	"sort"
	"strings"
	"sync"
)

var _ slog.Handler = (*levelFilter)(nil)

type packageRule struct {
	prefix string
	level  slog.Level
}

// levelFilter drops records below the level configured for the package that
// emitted them. The package is resolved from the record PC.
type levelFilter struct {
	upstream     slog.Handler
	defaultLevel slog.Level
	rules        []packageRule // longest prefix first
	minLevel     slog.Level
	cache        *sync.Map // function name -> slog.Level
}

func newLevelFilter(upstream slog.Handler, defaultLevel slog.Level, levels map[string]slog.Level) *levelFilter {
	rules := make([]packageRule, 0, len(levels))
	minLevel := defaultLevel

	for prefix, level := range levels {
		rules = append(rules, packageRule{prefix: prefix, level: level})
		minLevel = min(minLevel, level)
	}

	sort.Slice(rules, func(i, j int) bool {
		if len(rules[i].prefix) != len(rules[j].prefix) {
			return len(rules[i].prefix) > len(rules[j].prefix)
		}
		return rules[i].prefix < rules[j].prefix
	})

	return &levelFilter{
		upstream:     upstream,
		defaultLevel: defaultLevel,
		rules:        rules,
		minLevel:     minLevel,
		cache:        &sync.Map{},
	}
}

// Enabled can only check against the lowest configured level, since the
// emitting package is unknown until Handle.
func (f *levelFilter) Enabled(ctx context.Context, level slog.Level) bool {
	if override, ok := LogLevelFromContext(ctx); ok {
		return level >= override && f.upstream.Enabled(ctx, level)
	}

	return level >= f.minLevel && f.upstream.Enabled(ctx, level)
}

func (f *levelFilter) Handle(ctx context.Context, record slog.Record) error {
	threshold, ok := LogLevelFromContext(ctx)
	if !ok {
		threshold = f.levelFor(record.PC)
	}

	if record.Level < threshold {
		return nil
	}

	return f.upstream.Handle(ctx, record) //nolint:wrapcheck
}

func (f *levelFilter) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *f
	clone.upstream = f.upstream.WithAttrs(attrs)
	return &clone
}

func (f *levelFilter) WithGroup(name string) slog.Handler {
	clone := *f
	clone.upstream = f.upstream.WithGroup(name)
	return &clone
}

func (f *levelFilter) levelFor(pc uintptr) slog.Level {
	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()

	if cached, ok := f.cache.Load(frame.Function); ok {
		level, _ := cached.(slog.Level)
		return level
	}

	level := f.match(packageOf(frame.Function))
	f.cache.Store(frame.Function, level)

	return level
}

func (f *levelFilter) match(pkgPath string) slog.Level {
	for _, rule := range f.rules {
		if strings.HasPrefix(pkgPath, rule.prefix) {
			return rule.level
		}
	}
	return f.defaultLevel
}

// packageOf returns the import path of a fully qualified function name.
// e.g. "github.com/org/repo/pkg.(*Type).Method" -> "github.com/org/repo/pkg"
func packageOf(funcName string) string {
	lastSlash := strings.LastIndex(funcName, "/")
	before, _, found := strings.Cut(funcName[lastSlash+1:], ".")
	if !found {
		return funcName
	}
	return funcName[:lastSlash+1+len(before)]
}
