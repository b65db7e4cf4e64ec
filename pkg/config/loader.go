package config

import (
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
)

type configFile struct {
	path   string
	parser koanf.Parser
}

// ParserFor returns the koanf parser matching a file extension.
// Unknown extensions are treated as YAML.
func ParserFor(ext string) koanf.Parser { //nolint:ireturn
	switch ext {
	case ".json":
		return json.Parser()
	case ".toml":
		return toml.Parser()
	default:
		return yaml.Parser()
	}
}

var supportedExtensions = []string{".yaml", ".yml", ".json", ".toml"}

func (m *Module) discoverConfigFiles() []configFile {
	var files []configFile

	for _, dir := range m.config.ConfigDirs {
		for _, ext := range supportedExtensions {
			path := filepath.Join(dir, m.config.ConfigName+ext)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				files = append(files, configFile{
					path:   path,
					parser: ParserFor(ext),
				})
			}
		}
	}

	return files
}

func (m *Module) loadConfigFiles() error {
	for _, cf := range m.discoverConfigFiles() {
		if err := m.koanf.Load(file.Provider(cf.path), cf.parser); err != nil {
			return oops.Wrapf(err, "failed to load config file: %s", cf.path)
		}
		m.loaded = append(m.loaded, cf.path)
	}

	return nil
}
