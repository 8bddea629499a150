package client

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "securenotify.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
base_url: https://notify.example.com
api_key: sk_test_123
transport: websocket
connect_timeout: 5s
heartbeat_interval: 45s
queue_size: 64
reconnect_initial_delay: 500ms
reconnect_max_delay: 1m
max_reconnect_attempts: 10
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://notify.example.com", cfg.BaseURL)
	assert.Equal(t, "sk_test_123", cfg.APIKey)
	assert.Equal(t, "websocket", cfg.Transport)
	assert.Equal(t, 5*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, 45*time.Second, cfg.HeartbeatInterval)
	assert.Equal(t, 64, cfg.QueueSize)
	assert.Equal(t, 500*time.Millisecond, cfg.ReconnectInitialDelay)
	assert.Equal(t, time.Minute, cfg.ReconnectMaxDelay)
	assert.Equal(t, 10, cfg.MaxReconnectAttempts)
}

func TestLoadConfigPartial(t *testing.T) {
	path := writeConfig(t, `
base_url: https://notify.example.com
api_key: sk_test_123
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// Absent fields stay zero and pick up defaults in New
	assert.Zero(t, cfg.ConnectTimeout)
	assert.Zero(t, cfg.QueueSize)

	c, err := New(cfg)
	require.NoError(t, err)
	defer c.Close()
}

func TestLoadConfigBadDuration(t *testing.T) {
	path := writeConfig(t, `
base_url: https://notify.example.com
api_key: sk_test_123
connect_timeout: soon
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect_timeout")
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := writeConfig(t, "base_url: [unclosed")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
