package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultServerAddress, cfg.ServerAddress)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, OutputFormatText, cfg.OutputFormat)
	assert.Equal(t, DefaultPlaybackRate, cfg.PlaybackRate)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("REPLAY_CONFIG_DIR", dir)

	content := `server_address: http://replay.internal:9000
timeout: 45s
output_format: json
sample_threshold_ms: 250
playback_rate: 1.5
debug: true
redis:
  enabled: true
  addr: localhost:6379
  db: 2
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte(content), 0600))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://replay.internal:9000", cfg.ServerAddress)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.Equal(t, OutputFormatJSON, cfg.OutputFormat)
	assert.Equal(t, 250, cfg.SampleThresholdMs)
	assert.Equal(t, 1.5, cfg.PlaybackRate)
	assert.True(t, cfg.Debug)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("REPLAY_CONFIG_DIR", dir)

	content := "server_address: http://from-file:8098\noutput_format: text\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte(content), 0600))

	t.Setenv("REPLAY_SERVER_ADDRESS", "http://from-env:8098")
	t.Setenv("REPLAY_OUTPUT_FORMAT", "yaml")
	t.Setenv("REPLAY_SAMPLE_THRESHOLD_MS", "90")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://from-env:8098", cfg.ServerAddress)
	assert.Equal(t, OutputFormatYAML, cfg.OutputFormat)
	assert.Equal(t, 90, cfg.SampleThresholdMs)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("REPLAY_CONFIG_DIR", t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultServerAddress, cfg.ServerAddress)
}

func TestLoadConfig_BadTimeout(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("REPLAY_CONFIG_DIR", dir)

	content := "timeout: banana\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte(content), 0600))

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ServerAddress = ""
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Timeout = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.OutputFormat = "xml"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Redis.Enabled = true
	assert.Error(t, cfg.Validate())

	cfg.Redis.Addr = "localhost:6379"
	assert.NoError(t, cfg.Validate())
}

func TestSaveConfigRoundTrip(t *testing.T) {
	t.Setenv("REPLAY_CONFIG_DIR", t.TempDir())

	cfg := DefaultConfig()
	cfg.ServerAddress = "http://saved:8098"
	cfg.SampleThresholdMs = 120
	require.NoError(t, SaveConfig(cfg))

	loaded, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://saved:8098", loaded.ServerAddress)
	assert.Equal(t, 120, loaded.SampleThresholdMs)
}

func TestOutputFormatIsValid(t *testing.T) {
	assert.True(t, OutputFormatText.IsValid())
	assert.True(t, OutputFormatJSON.IsValid())
	assert.True(t, OutputFormatYAML.IsValid())
	assert.False(t, OutputFormat("xml").IsValid())
}
