package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/formatdrill/internal/i18n"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp("", "config_test_*.yml")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Remove(tmpFile.Name()) })

	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	_ = tmpFile.Close()
	return tmpFile.Name()
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, 2, cfg.Formatting.Indent)
	assert.Empty(t, cfg.Exercises.Catalog)
	assert.False(t, cfg.Dev.Debug)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_LoadFromYAML(t *testing.T) {
	path := writeConfig(t, `
language: fa
formatting:
  indent: 4
exercises:
  catalog: extra-exercises.yml
dev:
  debug: true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "fa", cfg.Language)
	assert.Equal(t, 4, cfg.Formatting.Indent)
	assert.Equal(t, "extra-exercises.yml", cfg.Exercises.Catalog)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "extra-exercises.yml"), cfg.CatalogPath())
	assert.True(t, cfg.Dev.Debug)
	assert.Equal(t, "'name' وارد نشده است.", cfg.Translator().Message(i18n.CodeMissing, map[string]string{"path": "name"}))
}

func TestConfig_PartialFileKeepsDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "language: fa\n"))
	require.NoError(t, err)

	assert.Equal(t, "fa", cfg.Language)
	assert.Equal(t, 2, cfg.Formatting.Indent)
}

func TestConfig_LoadNonExistentFile(t *testing.T) {
	_, err := LoadConfig("/non/existent/config.yml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no such file or directory")
}

func TestConfig_LoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, `
language: "en"
invalid_yaml: [unclosed array
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"unknown language", "language: de\n", "unsupported language 'de'"},
		{"zero indent", "formatting:\n  indent: 0\n", "formatting.indent"},
		{"huge indent", "formatting:\n  indent: 12\n", "formatting.indent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_CatalogPath(t *testing.T) {
	cfg := NewConfig()
	assert.Empty(t, cfg.CatalogPath())

	cfg.Exercises.Catalog = "/abs/catalog.yml"
	assert.Equal(t, "/abs/catalog.yml", cfg.CatalogPath())

	cfg.Exercises.Catalog = "rel.yml"
	assert.Equal(t, "rel.yml", cfg.CatalogPath())
}

func TestConfig_FindConfigFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config_search_test")
	require.NoError(t, err)
	defer func() { _ = os.RemoveAll(tmpDir) }()

	nestedDir := filepath.Join(tmpDir, "project", "subdir")
	err = os.MkdirAll(nestedDir, 0o755)
	require.NoError(t, err)

	// Create config file in project root
	configPath := filepath.Join(tmpDir, "project", ".formatdrill.yml")
	err = os.WriteFile(configPath, []byte(`language: "fa"`), 0o644)
	require.NoError(t, err)

	originalWd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(originalWd) }()

	err = os.Chdir(nestedDir)
	require.NoError(t, err)

	// Should find it in the parent directory
	foundPath := FindConfigFile()
	require.NotEmpty(t, foundPath, "Should find config file")

	foundContent, err := os.ReadFile(foundPath)
	require.NoError(t, err)
	assert.Contains(t, string(foundContent), `language: "fa"`)
}

func TestConfig_FindConfigFileNotFound(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "no_config_test")
	require.NoError(t, err)
	defer func() { _ = os.RemoveAll(tmpDir) }()

	originalWd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(originalWd) }()

	err = os.Chdir(tmpDir)
	require.NoError(t, err)

	foundPath := FindConfigFile()
	assert.Empty(t, foundPath)
}

func TestConfig_MergeWithCLI(t *testing.T) {
	baseConfig := &Config{
		Language:   "fa",
		Formatting: FormattingConfig{Indent: 4},
		Exercises:  ExercisesConfig{Catalog: "mine.yml"},
	}

	cliOverrides := &Config{
		Language: "en", // Override language
		Dev: DevConfig{
			Debug: true,
		},
	}

	merged := MergeConfigs(baseConfig, cliOverrides)

	assert.Equal(t, "en", merged.Language)                // Overridden by CLI
	assert.Equal(t, 4, merged.Formatting.Indent)          // Kept from base
	assert.Equal(t, "mine.yml", merged.Exercises.Catalog) // Kept from base
	assert.True(t, merged.Dev.Debug)                      // Overridden by CLI
	assert.Equal(t, "fa", baseConfig.Language, "base must not change")
}

func TestLoadConfigWithPrecedence(t *testing.T) {
	path := writeConfig(t, `
language: fa
formatting:
  indent: 3
`)

	cfg, err := LoadConfigWithCLI(path, "en", true)
	require.NoError(t, err)

	// Verify precedence: CLI > config file > defaults
	assert.Equal(t, "en", cfg.Language)
	assert.True(t, cfg.Dev.Debug)
	assert.Equal(t, 3, cfg.Formatting.Indent)
}

func TestLoadConfigWithPrecedence_NoOverrides(t *testing.T) {
	path := writeConfig(t, `
language: fa
dev:
  debug: true
`)

	cfg, err := LoadConfigWithCLI(path, "", false)
	require.NoError(t, err)

	assert.Equal(t, "fa", cfg.Language)
	assert.True(t, cfg.Dev.Debug)
	assert.Equal(t, 2, cfg.Formatting.Indent) // Default value
}

func TestLoadConfigWithCLI_NoFile(t *testing.T) {
	cfg, err := LoadConfigWithCLI("", "fa", false)
	require.NoError(t, err)
	assert.Equal(t, "fa", cfg.Language)

	_, err = LoadConfigWithCLI("", "xx", false)
	assert.Error(t, err)
}
