// Package config provides CLI configuration management for the replay
// command-line tool. It supports loading configuration from YAML files,
// environment variables, and command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// OutputFormat defines the supported output formats for CLI results.
type OutputFormat string

const (
	// OutputFormatText is human-readable plain text output.
	OutputFormatText OutputFormat = "text"
	// OutputFormatJSON is JSON-formatted output for machine processing.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML is YAML-formatted output for machine processing.
	OutputFormatYAML OutputFormat = "yaml"
)

// Default configuration values.
const (
	DefaultServerAddress     = "http://localhost:8098"
	DefaultListenAddress     = ":8098"
	DefaultTimeout           = 30 * time.Second
	DefaultOutputFormat      = OutputFormatText
	DefaultConfigDir         = ".replay"
	DefaultConfigFile        = "config.yaml"
	DefaultPlaybackRate      = 1.0
	DefaultSampleThresholdMs = 180
)

// RedisConfig holds the optional Redis event-bridge settings. When enabled,
// session events are mirrored onto Redis pub/sub channels so external tools
// can observe a review session.
type RedisConfig struct {
	// Enabled turns the event bridge on.
	Enabled bool `yaml:"enabled,omitempty"`

	// Addr is the Redis server address (host:port).
	Addr string `yaml:"addr,omitempty"`

	// Password is the Redis AUTH password, if any.
	Password string `yaml:"password,omitempty"`

	// DB is the Redis database number.
	DB int `yaml:"db,omitempty"`
}

// CLIConfig holds the CLI configuration settings.
type CLIConfig struct {
	// ServerAddress is the base URL of the session sidecar server.
	ServerAddress string `yaml:"server_address"`

	// ListenAddress is the bind address used by `replay serve`.
	ListenAddress string `yaml:"listen_address,omitempty"`

	// Timeout is the default timeout for API requests.
	Timeout time.Duration `yaml:"timeout"`

	// OutputFormat specifies the default output format for commands.
	OutputFormat OutputFormat `yaml:"output_format"`

	// SampleThresholdMs is the playback-clock sampling threshold in
	// milliseconds. Zero means the built-in default.
	SampleThresholdMs int `yaml:"sample_threshold_ms,omitempty"`

	// PlaybackRate is the default simulated playback rate.
	PlaybackRate float64 `yaml:"playback_rate,omitempty"`

	// Debug enables verbose debug logging.
	Debug bool `yaml:"debug,omitempty"`

	// Redis holds the optional event-bridge settings.
	Redis RedisConfig `yaml:"redis,omitempty"`
}

// DefaultConfig returns a CLIConfig with default values.
func DefaultConfig() *CLIConfig {
	return &CLIConfig{
		ServerAddress: DefaultServerAddress,
		ListenAddress: DefaultListenAddress,
		Timeout:       DefaultTimeout,
		OutputFormat:  DefaultOutputFormat,
		PlaybackRate:  DefaultPlaybackRate,
	}
}

// ConfigDir returns the configuration directory path.
// Uses $REPLAY_CONFIG_DIR if set, otherwise ~/.replay
func ConfigDir() (string, error) {
	if dir := os.Getenv("REPLAY_CONFIG_DIR"); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	return filepath.Join(home, DefaultConfigDir), nil
}

// ConfigPath returns the full path to the configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultConfigFile), nil
}

// LoadConfig loads the CLI configuration from file and environment variables.
// Configuration is loaded in this order (later sources override earlier):
// 1. Default values
// 2. Config file (~/.replay/config.yaml or $REPLAY_CONFIG_DIR/config.yaml)
// 3. Environment variables (REPLAY_SERVER_ADDRESS, REPLAY_TIMEOUT, ...)
func LoadConfig() (*CLIConfig, error) {
	cfg := DefaultConfig()

	configPath, err := ConfigPath()
	if err != nil {
		return nil, fmt.Errorf("getting config path: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	loadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(cfg *CLIConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	// We need a temp struct for unmarshaling duration as string.
	type configFile struct {
		ServerAddress     string       `yaml:"server_address"`
		ListenAddress     string       `yaml:"listen_address"`
		Timeout           string       `yaml:"timeout"`
		OutputFormat      OutputFormat `yaml:"output_format"`
		SampleThresholdMs int          `yaml:"sample_threshold_ms"`
		PlaybackRate      float64      `yaml:"playback_rate"`
		Debug             bool         `yaml:"debug"`
		Redis             RedisConfig  `yaml:"redis"`
	}

	var fileCfg configFile
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	if fileCfg.ServerAddress != "" {
		cfg.ServerAddress = fileCfg.ServerAddress
	}
	if fileCfg.ListenAddress != "" {
		cfg.ListenAddress = fileCfg.ListenAddress
	}
	if fileCfg.Timeout != "" {
		timeout, err := time.ParseDuration(fileCfg.Timeout)
		if err != nil {
			return fmt.Errorf("parsing timeout: %w", err)
		}
		cfg.Timeout = timeout
	}
	if fileCfg.OutputFormat != "" {
		cfg.OutputFormat = fileCfg.OutputFormat
	}
	if fileCfg.SampleThresholdMs != 0 {
		cfg.SampleThresholdMs = fileCfg.SampleThresholdMs
	}
	if fileCfg.PlaybackRate != 0 {
		cfg.PlaybackRate = fileCfg.PlaybackRate
	}
	cfg.Debug = fileCfg.Debug
	cfg.Redis = fileCfg.Redis

	return nil
}

// loadFromEnv overlays environment variables onto the configuration.
func loadFromEnv(cfg *CLIConfig) {
	if v := os.Getenv("REPLAY_SERVER_ADDRESS"); v != "" {
		cfg.ServerAddress = v
	}

	if v := os.Getenv("REPLAY_LISTEN_ADDRESS"); v != "" {
		cfg.ListenAddress = v
	}

	if v := os.Getenv("REPLAY_TIMEOUT"); v != "" {
		if timeout, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = timeout
		}
	}

	if v := os.Getenv("REPLAY_OUTPUT_FORMAT"); v != "" {
		cfg.OutputFormat = OutputFormat(v)
	}

	if v := os.Getenv("REPLAY_SAMPLE_THRESHOLD_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SampleThresholdMs = n
		}
	}

	if v := os.Getenv("REPLAY_PLAYBACK_RATE"); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.PlaybackRate = rate
		}
	}

	if v := os.Getenv("REPLAY_DEBUG"); v == "true" || v == "1" {
		cfg.Debug = true
	}

	if v := os.Getenv("REPLAY_REDIS_ENABLED"); v == "true" || v == "1" {
		cfg.Redis.Enabled = true
	}

	if v := os.Getenv("REPLAY_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}

	if v := os.Getenv("REPLAY_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}

	if v := os.Getenv("REPLAY_REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.Redis.DB = db
		}
	}
}

// Validate checks that the configuration is valid.
func (c *CLIConfig) Validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("server_address is required")
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}

	if !c.OutputFormat.IsValid() {
		return fmt.Errorf("invalid output_format: %q (must be text, json, or yaml)", c.OutputFormat)
	}

	if c.SampleThresholdMs < 0 {
		return fmt.Errorf("sample_threshold_ms must not be negative")
	}

	if c.PlaybackRate < 0 {
		return fmt.Errorf("playback_rate must not be negative")
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required when redis.enabled is true")
	}

	return nil
}

// IsValid checks if the output format is valid.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML:
		return true
	default:
		return false
	}
}

// String returns the string representation of the output format.
func (f OutputFormat) String() string {
	return string(f)
}

// SaveConfig saves the configuration to the config file.
func SaveConfig(cfg *CLIConfig) error {
	configDir, err := ConfigDir()
	if err != nil {
		return fmt.Errorf("getting config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath := filepath.Join(configDir, DefaultConfigFile)

	// Convert to YAML-friendly format with duration as string.
	type configFile struct {
		ServerAddress     string       `yaml:"server_address"`
		ListenAddress     string       `yaml:"listen_address,omitempty"`
		Timeout           string       `yaml:"timeout"`
		OutputFormat      OutputFormat `yaml:"output_format"`
		SampleThresholdMs int          `yaml:"sample_threshold_ms,omitempty"`
		PlaybackRate      float64      `yaml:"playback_rate,omitempty"`
		Debug             bool         `yaml:"debug,omitempty"`
		Redis             RedisConfig  `yaml:"redis,omitempty"`
	}

	fileCfg := configFile{
		ServerAddress:     cfg.ServerAddress,
		ListenAddress:     cfg.ListenAddress,
		Timeout:           cfg.Timeout.String(),
		OutputFormat:      cfg.OutputFormat,
		SampleThresholdMs: cfg.SampleThresholdMs,
		PlaybackRate:      cfg.PlaybackRate,
		Debug:             cfg.Debug,
		Redis:             cfg.Redis,
	}

	data, err := yaml.Marshal(&fileCfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}
