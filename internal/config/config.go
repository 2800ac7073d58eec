package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for fwatch.
type Config struct {
	WatchID string        `toml:"watch_id"`
	BaseDir string        `toml:"base_dir"`
	LogDir  string        `toml:"log_dir"`
	Watch   WatchConfig   `toml:"watch"`
	Journal JournalConfig `toml:"journal"`
	Forward ForwardConfig `toml:"forward"`
}

// WatchConfig holds the polling settings. Command-line flags override these
// per run.
type WatchConfig struct {
	IntervalMS int      `toml:"interval_ms"`
	Recursive  bool     `toml:"recursive"`
	Quiet      bool     `toml:"quiet"`
	Timestamps bool     `toml:"timestamps"`
	Workers    int      `toml:"workers"`
	Ignore     []string `toml:"ignore"`
}

// Interval returns the poll interval as a duration.
func (w WatchConfig) Interval() time.Duration {
	return time.Duration(w.IntervalMS) * time.Millisecond
}

// JournalConfig configures the local SQLite event journal.
type JournalConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path,omitempty"`
}

// ForwardConfig configures the optional event forwarder.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type ForwardConfig struct {
	Type string `toml:"type"` // "none", "memory", "file", or "s3"

	// File-specific fields (only used when Type == "file")
	FilePath string `toml:"file_path,omitempty"`

	// S3-specific fields (only used when Type == "s3")
	S3Bucket          string `toml:"s3_bucket,omitempty"`
	S3Prefix          string `toml:"s3_prefix,omitempty"`
	S3Region          string `toml:"s3_region,omitempty"`
	S3Endpoint        string `toml:"s3_endpoint,omitempty"`
	S3AccessKeyID     string `toml:"s3_access_key_id,omitempty"`
	S3SecretAccessKey string `toml:"s3_secret_access_key,omitempty"`
}

// NewConfig creates a new Config with the provided values and default paths
// derived from baseDir.
func NewConfig(watchID, baseDir string) *Config {
	cfg := defaultConfig()
	cfg.WatchID = watchID
	cfg.BaseDir = baseDir
	cfg.LogDir = filepath.Join(baseDir, "log")
	cfg.Journal.Path = filepath.Join(baseDir, "journal.db")
	return cfg
}

// defaultConfig returns the settings assumed when a key is absent from the
// config file. Read decodes on top of these, so omitted keys keep their
// defaults while explicitly set zero values are respected.
func defaultConfig() *Config {
	return &Config{
		Watch: WatchConfig{
			IntervalMS: 1000,
			Timestamps: true,
			Workers:    1,
		},
		Journal: JournalConfig{Enabled: true},
		Forward: ForwardConfig{Type: "none"},
	}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader on top of the defaults.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	cfg := defaultConfig()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
// This is an internal helper and should not be exported.
func writeToFile(path string, cfg *Config) error {
	// Ensure the directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
