package subscription

import (
	"errors"
	"time"

	"github.com/securenotify/securenotify-go/pkg/connection"
)

// Subscription errors.
var (
	ErrInvalidChannel = errors.New("invalid channel name")
	ErrMissingHandler = errors.New("message handler is required")
	ErrNotFound       = errors.New("subscription not found")
	ErrClosed         = errors.New("registry closed")
)

// Default engine settings.
const (
	// DefaultConnectTimeout bounds a single connection attempt.
	DefaultConnectTimeout = 10 * time.Second

	// DefaultHeartbeatInterval is the expected server heartbeat cadence.
	// A stream with no frames for twice this interval is considered dead.
	DefaultHeartbeatInterval = 30 * time.Second

	// DefaultQueueSize is the per-subscription dispatch queue capacity.
	DefaultQueueSize = 128

	// DefaultMaxDecodeFailures is the number of consecutive undecodable
	// frames tolerated before forcing a reconnect.
	DefaultMaxDecodeFailures = 3

	// MaxChannelLength is the maximum channel name length.
	MaxChannelLength = 256
)

// Config holds subscription engine configuration.
type Config struct {
	// ConnectTimeout bounds each connection attempt.
	ConnectTimeout time.Duration

	// HeartbeatInterval is the expected server heartbeat cadence.
	HeartbeatInterval time.Duration

	// QueueSize is the dispatch queue capacity per subscription.
	QueueSize int

	// MaxDecodeFailures is the consecutive decode failure limit.
	MaxDecodeFailures int

	// Reconnect configures backoff delays and the attempt budget.
	Reconnect connection.PolicyConfig
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		ConnectTimeout:    DefaultConnectTimeout,
		HeartbeatInterval: DefaultHeartbeatInterval,
		QueueSize:         DefaultQueueSize,
		MaxDecodeFailures: DefaultMaxDecodeFailures,
	}
}

// withDefaults fills zero fields with default values.
func (c Config) withDefaults() Config {
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = DefaultConnectTimeout
	}
	if c.HeartbeatInterval <= 0 {
		c.HeartbeatInterval = DefaultHeartbeatInterval
	}
	if c.QueueSize <= 0 {
		c.QueueSize = DefaultQueueSize
	}
	if c.MaxDecodeFailures <= 0 {
		c.MaxDecodeFailures = DefaultMaxDecodeFailures
	}
	return c
}

// ValidateChannel checks that a channel name is acceptable: non-empty,
// at most MaxChannelLength characters, and containing only alphanumerics,
// hyphens, and underscores.
func ValidateChannel(channel string) error {
	if channel == "" || len(channel) > MaxChannelLength {
		return ErrInvalidChannel
	}
	for _, r := range channel {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return ErrInvalidChannel
		}
	}
	return nil
}
