// Package config provides shared configuration loading for groqkit tools.
// This package is decoupled from CLI concerns and can be used by editor
// integrations and other tools that need project settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/groqkit/groqkit/pkg/format"
	"github.com/groqkit/groqkit/pkg/lint"
)

// ConfigFileName is the name of the config file.
const ConfigFileName = "groqkit.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "groqkit.yml"

// envPrefix namespaces the environment variables consulted during loading,
// e.g. GROQKIT_FORMAT_WIDTH=100.
const envPrefix = "GROQKIT_"

// FormatSettings holds formatter options.
type FormatSettings struct {
	Width  int `koanf:"width"`
	Indent int `koanf:"indent"`
}

// LintSettings holds lint rule configuration.
type LintSettings struct {
	// Enabled, when non-empty, restricts the run to exactly these rule IDs.
	Enabled []string `koanf:"enabled"`

	// Disabled contains rule IDs to disable.
	Disabled []string `koanf:"disabled"`

	// Severity maps rule ID to severity override (error, warning, info).
	Severity map[string]string `koanf:"severity"`
}

// Settings is the full configuration consumed by groqkit tools.
type Settings struct {
	Format FormatSettings `koanf:"format"`
	Lint   LintSettings   `koanf:"lint"`
}

func defaultSettings() map[string]any {
	return map[string]any{
		"format.width":  80,
		"format.indent": 2,
	}
}

// Load reads settings by merging, in increasing precedence: built-in
// defaults, the YAML file at path (skipped when path is empty), and
// GROQKIT_-prefixed environment variables.
func Load(path string) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultSettings(), "."), nil); err != nil {
		return nil, fmt.Errorf("config: loading defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: loading %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("config: loading environment: %w", err)
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, fmt.Errorf("config: unmarshaling settings: %w", err)
	}
	return &s, nil
}

// LoadFromDir loads settings from the given directory.
// It looks for groqkit.yaml or groqkit.yml in the directory; when neither
// exists, defaults and environment variables still apply.
func LoadFromDir(dir string) (*Settings, error) {
	return Load(findConfigFile(dir))
}

// FindProjectRoot walks up from the given directory to find a directory
// containing groqkit.yaml or groqkit.yml.
// Returns empty string if not found.
func FindProjectRoot(startDir string) string {
	dir := startDir
	for {
		if findConfigFile(dir) != "" {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return ""
		}
		dir = parent
	}
}

// LintConfig converts the settings into a rule configuration. Unknown
// severity names are ignored rather than rejected, so a config written for a
// newer release does not break an older tool.
func (s *Settings) LintConfig() *lint.Config {
	cfg := lint.NewConfig()
	for _, id := range s.Lint.Enabled {
		cfg.Enable(id)
	}
	for _, id := range s.Lint.Disabled {
		cfg.Disable(id)
	}
	for id, name := range s.Lint.Severity {
		if sev, ok := lint.ParseSeverity(name); ok {
			cfg.SetSeverity(id, sev)
		}
	}
	return cfg
}

// FormatOptions converts the settings into formatter options.
func (s *Settings) FormatOptions() format.Options {
	return format.Options{Width: s.Format.Width, Indent: s.Format.Indent}
}

// envKey maps GROQKIT_FORMAT_WIDTH to format.width.
func envKey(key string) string {
	key = strings.TrimPrefix(key, envPrefix)
	return strings.ReplaceAll(strings.ToLower(key), "_", ".")
}

func findConfigFile(dir string) string {
	yamlPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(yamlPath); err == nil {
		return yamlPath
	}

	ymlPath := filepath.Join(dir, ConfigFileNameAlt)
	if _, err := os.Stat(ymlPath); err == nil {
		return ymlPath
	}

	return ""
}
