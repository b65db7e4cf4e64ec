package main

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/Vilsol/mlbox/pkg/config"
	slog "github.com/Vilsol/mlbox/pkg/logging/slog"
	tint "github.com/Vilsol/mlbox/pkg/logging/tint"
	"github.com/Vilsol/mlbox/pkg/scaffold"
	"golang.org/x/mod/modfile"
	"gopkg.in/yaml.v3"
)

const yamlIndent = 2

type output struct {
	Modules []moduleDoc `yaml:"modules"`
}

type moduleDoc struct {
	Category    string        `yaml:"category"`
	Type        string        `yaml:"type"`
	Package     string        `yaml:"package"`
	ConfigPath  string        `yaml:"configPath"`
	Description string        `yaml:"description,omitempty"`
	Fields      []fieldDoc    `yaml:"fields,omitempty"`
	CodeOnly    []codeOnlyDoc `yaml:"codeOnly,omitempty"`
}

type fieldDoc struct {
	Key         string `yaml:"key"`
	Type        string `yaml:"type"`
	Default     string `yaml:"default,omitempty"`
	Enum        string `yaml:"enum,omitempty"`
	Required    bool   `yaml:"required,omitempty"`
	EnvVar      string `yaml:"envVar"`
	Description string `yaml:"description,omitempty"`
}

type codeOnlyDoc struct {
	Option      string `yaml:"option"`
	Type        string `yaml:"type"`
	Description string `yaml:"description,omitempty"`
}

func main() {
	configs := []any{
		tint.NewDefaultConfig(),
		slog.NewDefaultConfig(),
		scaffold.NewDefaultConfig(),
	}

	modulePath, err := readModulePath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not parse go.mod: %v\n", err)
	}

	var out output
	for _, cfg := range configs {
		doc := processConfig(cfg, modulePath)
		out.Modules = append(out.Modules, doc)
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode yaml: %v\n", err)
		os.Exit(1)
	}
}

func processConfig(cfg any, modulePath string) moduleDoc {
	t := reflect.TypeOf(cfg)
	v := reflect.ValueOf(cfg)
	pkgPath := t.PkgPath()

	category, modType := inferCategoryAndType(pkgPath)

	comments := extractComments(modulePath, pkgPath)

	doc := moduleDoc{
		Category:    category,
		Type:        modType,
		Package:     pkgPath,
		ConfigPath:  fmt.Sprintf("modules.%s.%s.<name>", category, modType),
		Description: comments.structDoc,
	}

	for f := range t.Fields() {
		if !f.IsExported() {
			continue
		}

		koanfTag := f.Tag.Get("koanf")
		codeOnlyTag := f.Tag.Get("code_only")

		// Code-only field (koanf:"-" with code_only tag, or koanf:"-" for Name)
		if koanfTag == "-" {
			if codeOnlyTag != "" {
				option := codeOnlyTag
				if option == "true" {
					option = f.Name
				}
				doc.CodeOnly = append(doc.CodeOnly, codeOnlyDoc{
					Option:      option,
					Type:        formatType(f.Type),
					Description: comments.funcs[option],
				})
			}
			continue
		}

		// Skip empty koanf tag
		if koanfTag == "" {
			continue
		}

		fd := fieldDoc{
			Key:         koanfTag,
			Type:        formatType(f.Type),
			Default:     defaultValue(v.FieldByName(f.Name)),
			Enum:        f.Tag.Get("enum"),
			Required:    f.Tag.Get("required") == "true",
			EnvVar:      envVarName(doc.ConfigPath, koanfTag),
			Description: comments.fields[f.Name],
		}
		doc.Fields = append(doc.Fields, fd)
	}

	return doc
}

// defaultValue returns a string representation of a field's value,
// or empty string if the value is the zero value for its type.
func defaultValue(v reflect.Value) string {
	if !v.IsValid() || v.IsZero() {
		return ""
	}
	return fmt.Sprintf("%v", v.Interface())
}

// envVarName builds the environment variable name for a config field.
// configPath is e.g. "modules.scaffold.scaffold.<name>", key is e.g. "root".
// Result: MLBOX_MODULES_SCAFFOLD_SCAFFOLD_<NAME>_ROOT
func envVarName(configPath, key string) string {
	return config.DefaultEnvPrefix + strings.ToUpper(strings.ReplaceAll(configPath+"."+key, ".", "_"))
}

// inferCategoryAndType extracts category and type from a package path like
// "github.com/Vilsol/mlbox/pkg/logging/tint" -> ("logging", "tint")
// "github.com/Vilsol/mlbox/pkg/scaffold" -> ("scaffold", "scaffold")
func inferCategoryAndType(pkgPath string) (string, string) {
	_, rest, found := strings.Cut(pkgPath, "/pkg/")
	if !found {
		return pkgPath, pkgPath
	}
	parts := strings.Split(rest, "/")
	if len(parts) == 1 {
		return parts[0], parts[0]
	}
	return parts[0], parts[len(parts)-1]
}

func formatType(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Ptr:
		return "*" + formatType(t.Elem())
	case reflect.Slice:
		return "[]" + formatType(t.Elem())
	case reflect.Map:
		return "map[" + formatType(t.Key()) + "]" + formatType(t.Elem())
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return "any"
		}
		name := t.Name()
		if name == "" {
			return "interface{}"
		}
		pkg := t.PkgPath()
		if pkg != "" {
			return pkgAlias(pkg) + "." + name
		}
		return name
	default:
		name := t.Name()
		pkg := t.PkgPath()
		if pkg != "" && !isBuiltin(name) {
			return pkgAlias(pkg) + "." + name
		}
		return name
	}
}

// pkgAlias returns a human-friendly package alias, skipping version suffixes
// like "v3" or "v2" to use the actual package name instead.
// For hyphenated names like "slog-multi", returns the part before the hyphen.
func pkgAlias(pkg string) string {
	parts := strings.Split(pkg, "/")
	last := parts[len(parts)-1]
	if len(parts) >= 2 && len(last) >= 2 && last[0] == 'v' && last[1] >= '0' && last[1] <= '9' {
		last = parts[len(parts)-2]
	}
	if idx := strings.Index(last, "-"); idx > 0 {
		last = last[:idx]
	}
	return last
}

func isBuiltin(name string) bool {
	switch name {
	case "bool", "string",
		"int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64",
		"float32", "float64",
		"complex64", "complex128",
		"byte", "rune", "error":
		return true
	}
	return false
}

type sourceComments struct {
	structDoc string
	fields    map[string]string
	funcs     map[string]string
}

// extractComments parses the Go source for a package and extracts doc comments
// from the Config struct (type + fields) and WithXxx option functions.
func extractComments(modulePath, pkgPath string) sourceComments {
	sc := sourceComments{
		fields: make(map[string]string),
		funcs:  make(map[string]string),
	}

	// Resolve package path to filesystem directory
	rel, found := strings.CutPrefix(pkgPath, modulePath+"/")
	if modulePath == "" || !found {
		return sc
	}
	dir := filepath.Join(".", rel)

	fset := token.NewFileSet()
	pkgs, err := parser.ParseDir(fset, dir, nil, parser.ParseComments)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not parse %s: %v\n", dir, err)
		return sc
	}

	for _, pkg := range pkgs {
		for _, file := range pkg.Files {
			for _, decl := range file.Decls {
				switch d := decl.(type) {
				case *ast.GenDecl:
					extractStructComments(d, &sc)
				case *ast.FuncDecl:
					extractFuncComment(d, &sc)
				}
			}
		}
	}

	return sc
}

func extractStructComments(decl *ast.GenDecl, sc *sourceComments) {
	if decl.Tok != token.TYPE {
		return
	}
	for _, spec := range decl.Specs {
		ts, ok := spec.(*ast.TypeSpec)
		if !ok || ts.Name.Name != "Config" {
			continue
		}
		st, ok := ts.Type.(*ast.StructType)
		if !ok {
			continue
		}

		if decl.Doc != nil {
			sc.structDoc = cleanComment(decl.Doc.Text())
		}

		for _, field := range st.Fields.List {
			if len(field.Names) == 0 || !field.Names[0].IsExported() {
				continue
			}
			name := field.Names[0].Name
			// Prefer doc comment (above), fall back to inline comment
			switch {
			case field.Doc != nil:
				sc.fields[name] = cleanComment(field.Doc.Text())
			case field.Comment != nil:
				sc.fields[name] = cleanComment(field.Comment.Text())
			}
		}
	}
}

func extractFuncComment(decl *ast.FuncDecl, sc *sourceComments) {
	if decl.Doc == nil {
		return
	}
	name := decl.Name.Name
	if !strings.HasPrefix(name, "With") {
		return
	}
	sc.funcs[name] = cleanComment(decl.Doc.Text())
}

// cleanComment trims whitespace and trailing periods from a doc comment.
func cleanComment(s string) string {
	s = strings.TrimSpace(s)
	// Take only the first line for brevity
	if i := strings.IndexByte(s, '\n'); i > 0 {
		s = s[:i]
	}
	// Strip conventional "FuncName ..." prefix (e.g. "WithRoot sets the directory.")
	if idx := strings.Index(s, " "); idx > 0 {
		prefix := s[:idx]
		if strings.HasPrefix(prefix, "With") || prefix == "Config" {
			s = s[idx+1:]
		}
	}
	// Lowercase first letter, trim trailing period
	if len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z' {
		s = strings.ToLower(s[:1]) + s[1:]
	}
	s = strings.TrimRight(s, ".")
	return s
}

// readModulePath returns the module path declared in the working directory's go.mod.
func readModulePath() (string, error) {
	data, err := os.ReadFile("go.mod")
	if err != nil {
		return "", fmt.Errorf("reading go.mod: %w", err)
	}

	f, err := modfile.ParseLax("go.mod", data, nil)
	if err != nil {
		return "", fmt.Errorf("parsing go.mod: %w", err)
	}

	if f.Module == nil {
		return "", errors.New("go.mod has no module directive")
	}

	return f.Module.Mod.Path, nil
}
