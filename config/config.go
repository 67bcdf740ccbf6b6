// Package config loads adfcheck configuration from YAML.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sartorproj/goadf/adferrors"
	"github.com/sartorproj/goadf/logger"
	"github.com/sartorproj/goadf/tables"
)

// Config is the adfcheck configuration.
type Config struct {
	Tables TablesConfig  `yaml:"tables" mapstructure:"tables"`
	Log    logger.Config `yaml:"log" mapstructure:"log"`
}

// TablesConfig locates the table document. An empty Path selects the
// built-in table.
type TablesConfig struct {
	Path         string `yaml:"path" mapstructure:"path"`
	Format       string `yaml:"format" mapstructure:"format"` // json, yaml or csv; inferred when empty
	CriticalPath string `yaml:"critical_path" mapstructure:"critical_path"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{Log: logger.DefaultConfig()}
}

// Load reads a YAML configuration file over the defaults.
func Load(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath) //nolint:gosec // G304: path comes from the command line
	if err != nil {
		return nil, adferrors.Wrap(err, adferrors.KindFile, "config.Load", "failed to read config file")
	}
	return Parse(data)
}

// Parse decodes YAML configuration over the defaults, substituting
// ${VAR} references with environment values first.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	content := substituteEnvVars(string(data))
	if err := yaml.Unmarshal([]byte(content), cfg); err != nil {
		return nil, adferrors.Wrap(err, adferrors.KindConfig, "config.Parse", "failed to parse YAML")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for contradictions.
func (c *Config) Validate() error {
	if c.Tables.Format != "" {
		switch tables.Format(strings.ToLower(c.Tables.Format)) {
		case tables.FormatJSON, tables.FormatYAML, tables.FormatCSV:
		default:
			return adferrors.Newf(adferrors.KindConfig, "config.Validate", "unknown table format %q", c.Tables.Format)
		}
	}
	if c.Tables.Path == "" && c.Tables.CriticalPath != "" {
		return adferrors.New(adferrors.KindConfig, "config.Validate", "critical_path requires tables.path")
	}
	if c.Log.Encoding != "" && c.Log.Encoding != "json" && c.Log.Encoding != "console" {
		return adferrors.Newf(adferrors.KindConfig, "config.Validate", "unknown log encoding %q", c.Log.Encoding)
	}
	return nil
}

// Save writes the configuration as YAML.
func Save(filePath string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0o644); err != nil { //nolint:gosec
		return adferrors.Wrap(err, adferrors.KindFile, "config.Save", "failed to write config file")
	}
	return nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
func substituteEnvVars(content string) string {
	for {
		start := strings.Index(content, "${")
		if start == -1 {
			break
		}
		end := strings.Index(content[start:], "}")
		if end == -1 {
			break
		}
		end += start

		varName := content[start+2 : end]
		content = content[:start] + os.Getenv(varName) + content[end+1:]
	}
	return content
}
