package client

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config in YAML form. Durations are written as
// time.ParseDuration strings ("10s", "1m30s").
type fileConfig struct {
	BaseURL               string `yaml:"base_url"`
	APIKey                string `yaml:"api_key"`
	Transport             string `yaml:"transport"`
	ConnectTimeout        string `yaml:"connect_timeout"`
	HeartbeatInterval     string `yaml:"heartbeat_interval"`
	QueueSize             int    `yaml:"queue_size"`
	ReconnectInitialDelay string `yaml:"reconnect_initial_delay"`
	ReconnectMaxDelay     string `yaml:"reconnect_max_delay"`
	MaxReconnectAttempts  int    `yaml:"max_reconnect_attempts"`
}

// LoadConfig reads a YAML config file. Absent fields keep their zero
// value and fall back to defaults in New.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := Config{
		BaseURL:              fc.BaseURL,
		APIKey:               fc.APIKey,
		Transport:            fc.Transport,
		QueueSize:            fc.QueueSize,
		MaxReconnectAttempts: fc.MaxReconnectAttempts,
	}

	durations := []struct {
		raw  string
		name string
		dst  *time.Duration
	}{
		{fc.ConnectTimeout, "connect_timeout", &cfg.ConnectTimeout},
		{fc.HeartbeatInterval, "heartbeat_interval", &cfg.HeartbeatInterval},
		{fc.ReconnectInitialDelay, "reconnect_initial_delay", &cfg.ReconnectInitialDelay},
		{fc.ReconnectMaxDelay, "reconnect_max_delay", &cfg.ReconnectMaxDelay},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: %s: %w", d.name, err)
		}
		*d.dst = v
	}

	return cfg, nil
}
