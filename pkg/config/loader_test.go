package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFileYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "listd.yaml", `
version: "1"
server:
  port: 5000
logging:
  level: debug
lists:
  tasks:
    seeds:
      - title: hello
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1", cfg.Version)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	require.Len(t, cfg.Lists.Tasks.Seeds, 1)
	assert.Equal(t, "hello", cfg.Lists.Tasks.Seeds[0]["title"])
}

func TestLoadFromFileJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "listd.json", `{
  "version": "1",
  "server": {"port": 4280}
}`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4280, cfg.Server.Port)
}

func TestLoadFromFileErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFromFile(filepath.Join(dir, "nope.yaml"))
		assert.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeFile(t, dir, "empty.yaml", "")
		_, err := LoadFromFile(path)
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("bad yaml", func(t *testing.T) {
		path := writeFile(t, dir, "bad.yaml", "version: [unclosed")
		_, err := LoadFromFile(path)
		assert.ErrorIs(t, err, ErrInvalidYAML)
	})

	t.Run("bad json", func(t *testing.T) {
		path := writeFile(t, dir, "bad.json", "{not json")
		_, err := LoadFromFile(path)
		assert.ErrorIs(t, err, ErrInvalidJSON)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := LoadFromFile(dir)
		assert.Error(t, err)
	})
}

func TestValidateSemantics(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing version", "server:\n  port: 1\n"},
		{"bad port", "version: \"1\"\nserver:\n  port: 99999\n"},
		{"bad level", "version: \"1\"\nlogging:\n  level: loud\n"},
		{"bad format", "version: \"1\"\nlogging:\n  format: xml\n"},
		{"bad seed", "version: \"1\"\nlists:\n  groceries:\n    seeds:\n      - name: Eggs\n        quantity: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrValidation, "config: %s", tt.yaml)
		})
	}
}

func TestSchemaRejectsUnknownKeys(t *testing.T) {
	_, err := ParseYAML([]byte("version: \"1\"\nserver:\n  prot: 4280\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSaveToFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "listd.yaml")

	cfg := DefaultConfig()
	cfg.Lists.Tasks.Seeds = []map[string]interface{}{{"title": "persisted"}}
	require.NoError(t, SaveToFile(path, cfg))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Server.Port, loaded.Server.Port)
	require.Len(t, loaded.Lists.Tasks.Seeds, 1)

	// No temp file left behind.
	_, err = os.Stat(path + ".tmp")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestStarterYAMLIsValid(t *testing.T) {
	cfg, err := ParseYAML([]byte(StarterYAML))
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Lists.Tasks.Seeds)
	assert.NotEmpty(t, cfg.Lists.Cards.Seeds)
}

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}
