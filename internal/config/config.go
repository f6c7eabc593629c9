package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/formatdrill/internal/i18n"
)

// Config represents the complete configuration for formatdrill
type Config struct {
	Language   string           `yaml:"language"`
	Formatting FormattingConfig `yaml:"formatting"`
	Exercises  ExercisesConfig  `yaml:"exercises"`
	Dev        DevConfig        `yaml:"dev"`

	// directory of the file the config was loaded from
	dir string
}

// FormattingConfig controls how converted documents are rendered
type FormattingConfig struct {
	Indent int `yaml:"indent"`
}

// ExercisesConfig points at an additional exercise catalog
type ExercisesConfig struct {
	Catalog string `yaml:"catalog"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Language: i18n.English,
		Formatting: FormattingConfig{
			Indent: 2,
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".formatdrill.yml", ".formatdrill.yaml", "formatdrill.yml", "formatdrill.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks that the configured values are usable
func (c *Config) Validate() error {
	if !i18n.Supported(c.Language) {
		return fmt.Errorf("unsupported language '%s', expected one of %v", c.Language, i18n.Languages())
	}
	if c.Formatting.Indent < 1 || c.Formatting.Indent > 8 {
		return fmt.Errorf("formatting.indent must be between 1 and 8, got %d", c.Formatting.Indent)
	}
	return nil
}

// CatalogPath returns the configured exercise catalog. Relative paths are
// resolved against the directory of the config file.
func (c *Config) CatalogPath() string {
	path := c.Exercises.Catalog
	if path == "" || filepath.IsAbs(path) || c.dir == "" {
		return path
	}
	return filepath.Join(c.dir, path)
}

// Translator returns the message translator for the configured language
func (c *Config) Translator() i18n.Translator {
	return i18n.New(c.Language)
}

// MergeConfigs merges CLI overrides into a base config
// Non-empty values from override take precedence over base values
func MergeConfigs(base, override *Config) *Config {
	merged := *base // Start with a copy of base

	if override.Language != "" {
		merged.Language = override.Language
	}
	if override.Formatting.Indent > 0 {
		merged.Formatting.Indent = override.Formatting.Indent
	}
	if override.Exercises.Catalog != "" {
		merged.Exercises.Catalog = override.Exercises.Catalog
		merged.dir = override.dir
	}

	// Debug can only be switched on from the command line
	merged.Dev.Debug = base.Dev.Debug || override.Dev.Debug

	return &merged
}

// LoadConfigWithCLI loads config with CLI argument precedence
func LoadConfigWithCLI(configPath, cliLanguage string, cliDebug bool) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	cfg = MergeConfigs(cfg, &Config{
		Language: cliLanguage,
		Dev:      DevConfig{Debug: cliDebug},
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
