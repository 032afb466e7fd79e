package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "crc32", config.CRC.Preset)
	assert.Empty(t, config.CRC.Spec)
	assert.Equal(t, 258, config.Transfer.ChunkSize)
	assert.False(t, config.Parse.Strict)
	assert.Equal(t, "memory", config.Sink.Backend)
	assert.Equal(t, "info", config.Logging.Level)
	assert.NoError(t, config.Validate())
}

func TestLoadConfig(t *testing.T) {
	t.Run("load existing config", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "flashcrc.yaml")

		content := `
crc:
  spec: specs/crc16.spec
parse:
  strict: true
transfer:
  chunk_size: 130
sink:
  backend: pebble
  dir: /var/tmp/segments
logging:
  level: debug
  file: logs/flashcrc.log
`
		require.NoError(t, os.WriteFile(configPath, []byte(content), 0600))

		config, err := LoadConfig(configPath)
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(tmpDir, "specs/crc16.spec"), config.CRC.Spec)
		assert.Equal(t, "crc32", config.CRC.Preset, "unset keys keep defaults")
		assert.True(t, config.Parse.Strict)
		assert.Equal(t, 130, config.Transfer.ChunkSize)
		assert.Equal(t, "pebble", config.Sink.Backend)
		assert.Equal(t, "/var/tmp/segments", config.Sink.Dir)
		assert.Equal(t, "debug", config.Logging.Level)
		assert.Equal(t, filepath.Join(tmpDir, "logs/flashcrc.log"), config.Logging.File)
		assert.Equal(t, 10, config.Logging.MaxSizeMB)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("crc: [unclosed"), 0600))

		_, err := LoadConfig(configPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})

	t.Run("invalid values", func(t *testing.T) {
		tests := []struct {
			name    string
			content string
			errMsg  string
		}{
			{name: "chunk size", content: "transfer:\n  chunk_size: 2\n", errMsg: "chunk_size"},
			{name: "backend", content: "sink:\n  backend: redis\n", errMsg: "sink.backend"},
			{name: "level", content: "logging:\n  level: trace\n", errMsg: "logging.level"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				configPath := filepath.Join(t.TempDir(), "config.yaml")
				require.NoError(t, os.WriteFile(configPath, []byte(tt.content), 0600))

				_, err := LoadConfig(configPath)
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			})
		}
	})
}

func TestSaveConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "dir", "flashcrc.yaml")

	config := DefaultConfig()
	config.CRC.Preset = "crc8"
	config.Transfer.Corrupt = true
	config.Metrics.Textfile = "/var/lib/node_exporter/flashcrc.prom"

	require.NoError(t, SaveConfig(config, configPath))

	loaded, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, config, loaded)
}
