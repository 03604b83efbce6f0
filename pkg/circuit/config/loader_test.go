package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromYAML(t *testing.T) {
	cfg, err := FromYAML([]byte("name: payment\nretries: 3\nenabled: true\n"))
	require.NoError(t, err)

	assert.Equal(t, "payment", cfg.String("name", ""))
	assert.Equal(t, 3, cfg.Int("retries", 0))
	assert.True(t, cfg.Bool("enabled", false))
}

func TestFromYAML_Invalid(t *testing.T) {
	_, err := FromYAML([]byte("name: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse yaml")
}

func TestFromJSON(t *testing.T) {
	cfg, err := FromJSON([]byte(`{"name": "payment", "retries": 3}`))
	require.NoError(t, err)

	assert.Equal(t, "payment", cfg.String("name", ""))
	// JSON numbers decode as float64.
	assert.Equal(t, 3, cfg.Int("retries", 0))
}

func TestFromJSON_Invalid(t *testing.T) {
	_, err := FromJSON([]byte(`{"name":`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse json")
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		filename string
		content  string
	}{
		{"yaml extension", "circuit.yaml", "name: payment\n"},
		{"yml extension", "circuit.yml", "name: payment\n"},
		{"json extension", "circuit.json", `{"name": "payment"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.filename)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			cfg, err := FromFile(path)
			require.NoError(t, err)
			assert.Equal(t, "payment", cfg.String("name", ""))
		})
	}
}

func TestFromFile_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "circuit.toml")
	require.NoError(t, os.WriteFile(path, []byte("name = \"payment\"\n"), 0o644))

	_, err := FromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config file extension")
}

func TestFromFile_Missing(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}
