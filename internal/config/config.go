package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the flashcrc tool configuration
type Config struct {
	CRC      CRC      `yaml:"crc"`
	Parse    Parse    `yaml:"parse"`
	Transfer Transfer `yaml:"transfer"`
	Sink     Sink     `yaml:"sink"`
	Logging  Logging  `yaml:"logging"`
	Metrics  Metrics  `yaml:"metrics"`
}

// CRC selects the checksum algorithm. Spec takes precedence over Preset.
type CRC struct {
	Spec   string `yaml:"spec"`
	Preset string `yaml:"preset"`
}

// Parse contains image parser settings
type Parse struct {
	Strict bool `yaml:"strict"`
}

// Transfer contains chunk replay settings
type Transfer struct {
	ChunkSize int  `yaml:"chunk_size"`
	Corrupt   bool `yaml:"corrupt"`
}

// Sink selects where segment payloads are kept while parsing
type Sink struct {
	Backend string `yaml:"backend"`
	Dir     string `yaml:"dir"`
}

// Logging contains logging configuration
type Logging struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxAgeDays int    `yaml:"max_age_days"`
	MaxBackups int    `yaml:"max_backups"`
	Compress   bool   `yaml:"compress"`
}

// Metrics contains metrics export configuration
type Metrics struct {
	Textfile string `yaml:"textfile"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		CRC: CRC{
			Preset: "crc32",
		},
		Transfer: Transfer{
			ChunkSize: 258,
		},
		Sink: Sink{
			Backend: "memory",
		},
		Logging: Logging{
			Level:      "info",
			MaxSizeMB:  10,
			MaxAgeDays: 28,
			MaxBackups: 3,
		},
	}
}

// Validate checks values that have no usable fallback.
func (c *Config) Validate() error {
	if c.Transfer.ChunkSize < 3 {
		return fmt.Errorf("transfer.chunk_size must be at least 3, got %d", c.Transfer.ChunkSize)
	}
	switch c.Sink.Backend {
	case "", "memory", "file", "pebble":
	default:
		return fmt.Errorf("sink.backend %q is not one of memory, file, pebble", c.Sink.Backend)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, error", c.Logging.Level)
	}
	return nil
}

// LoadConfig loads configuration from the specified path. Keys missing from
// the file keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	// Relative paths in the file are relative to the file
	base := filepath.Dir(configPath)
	config.CRC.Spec = resolve(base, config.CRC.Spec)
	config.Sink.Dir = resolve(base, config.Sink.Dir)
	config.Logging.File = resolve(base, config.Logging.File)
	config.Metrics.Textfile = resolve(base, config.Metrics.Textfile)

	return config, nil
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// SaveConfig saves the configuration to the specified path
func SaveConfig(config *Config, configPath string) error {
	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
