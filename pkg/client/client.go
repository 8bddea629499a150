package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/securenotify/securenotify-go/pkg/connection"
	"github.com/securenotify/securenotify-go/pkg/log"
	"github.com/securenotify/securenotify-go/pkg/subscription"
	"github.com/securenotify/securenotify-go/pkg/transport"
)

// Client errors.
var (
	ErrUnknownTransport = errors.New("unknown transport")
)

// Transport names accepted in Config.Transport.
const (
	TransportSSE       = "sse"
	TransportWebSocket = "websocket"
)

// Config holds client configuration. Zero values fall back to defaults;
// only BaseURL and APIKey are required (unless a custom transport is
// injected with WithTransport).
type Config struct {
	// BaseURL is the service endpoint, e.g. "https://notify.example.com".
	BaseURL string `yaml:"base_url"`

	// APIKey authenticates every stream as a bearer token.
	APIKey string `yaml:"api_key"`

	// Transport selects the stream protocol: "sse" (default) or
	// "websocket".
	Transport string `yaml:"transport"`

	// ConnectTimeout bounds each connection attempt.
	ConnectTimeout time.Duration `yaml:"-"`

	// HeartbeatInterval is the expected server heartbeat cadence.
	HeartbeatInterval time.Duration `yaml:"-"`

	// QueueSize is the per-subscription dispatch queue capacity.
	QueueSize int `yaml:"queue_size"`

	// ReconnectInitialDelay is the first reconnect delay.
	ReconnectInitialDelay time.Duration `yaml:"-"`

	// ReconnectMaxDelay caps the reconnect delay.
	ReconnectMaxDelay time.Duration `yaml:"-"`

	// MaxReconnectAttempts bounds retries per outage. Zero retries
	// forever.
	MaxReconnectAttempts int `yaml:"max_reconnect_attempts"`
}

// DefaultConfig returns a config with all defaults filled in. BaseURL
// and APIKey still have to be set.
func DefaultConfig() Config {
	return Config{
		Transport:             TransportSSE,
		ConnectTimeout:        subscription.DefaultConnectTimeout,
		HeartbeatInterval:     subscription.DefaultHeartbeatInterval,
		QueueSize:             subscription.DefaultQueueSize,
		ReconnectInitialDelay: connection.InitialBackoff,
		ReconnectMaxDelay:     connection.MaxBackoff,
	}
}

// Option customizes a Client beyond what Config carries.
type Option func(*options)

type options struct {
	logger     log.Logger
	httpClient *http.Client
	transport  transport.Transport
}

// WithLogger attaches a diagnostic logger. The default discards all
// diagnostic events.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithHTTPClient substitutes the HTTP client used by the built-in
// transports, e.g. to configure TLS or proxies.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithTransport injects a custom transport, bypassing BaseURL/APIKey
// validation and the Transport config field.
func WithTransport(tr transport.Transport) Option {
	return func(o *options) { o.transport = tr }
}

// Client is a SecureNotify client. All its subscriptions share one
// transport; create it once per process and per credential.
type Client struct {
	cfg      Config
	tr       transport.Transport
	registry *subscription.Registry
	logger   log.Logger
}

// New creates a Client. It validates configuration and builds the
// transport but performs no network I/O.
func New(cfg Config, opts ...Option) (*Client, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.NoopLogger{}
	}

	cfg = withConfigDefaults(cfg)

	tr := o.transport
	if tr == nil {
		var err error
		tr, err = buildTransport(cfg, o.httpClient)
		if err != nil {
			return nil, err
		}
	}

	subCfg := subscription.Config{
		ConnectTimeout:    cfg.ConnectTimeout,
		HeartbeatInterval: cfg.HeartbeatInterval,
		QueueSize:         cfg.QueueSize,
		Reconnect: connection.PolicyConfig{
			Backoff: connection.BackoffConfig{
				Initial: cfg.ReconnectInitialDelay,
				Max:     cfg.ReconnectMaxDelay,
			},
			MaxAttempts: cfg.MaxReconnectAttempts,
		},
	}

	return &Client{
		cfg:      cfg,
		tr:       tr,
		registry: subscription.NewRegistry(tr, subCfg, o.logger),
		logger:   o.logger,
	}, nil
}

func withConfigDefaults(cfg Config) Config {
	def := DefaultConfig()
	if cfg.Transport == "" {
		cfg.Transport = def.Transport
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = def.ConnectTimeout
	}
	if cfg.HeartbeatInterval <= 0 {
		cfg.HeartbeatInterval = def.HeartbeatInterval
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = def.QueueSize
	}
	if cfg.ReconnectInitialDelay <= 0 {
		cfg.ReconnectInitialDelay = def.ReconnectInitialDelay
	}
	if cfg.ReconnectMaxDelay <= 0 {
		cfg.ReconnectMaxDelay = def.ReconnectMaxDelay
	}
	return cfg
}

func buildTransport(cfg Config, hc *http.Client) (transport.Transport, error) {
	switch strings.ToLower(cfg.Transport) {
	case TransportSSE:
		return transport.NewSSE(transport.SSEConfig{
			BaseURL:        cfg.BaseURL,
			APIKey:         cfg.APIKey,
			HTTPClient:     hc,
			ConnectTimeout: cfg.ConnectTimeout,
		})
	case TransportWebSocket:
		return transport.NewWebSocket(transport.WebSocketConfig{
			BaseURL:        cfg.BaseURL,
			APIKey:         cfg.APIKey,
			HTTPClient:     hc,
			ConnectTimeout: cfg.ConnectTimeout,
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransport, cfg.Transport)
	}
}

// Subscribe attaches handlers to a channel and starts streaming in the
// background. See subscription.Registry.Subscribe for validation and
// idempotency rules.
func (c *Client) Subscribe(channel string, handlers subscription.Handlers) (*subscription.Subscription, error) {
	return c.registry.Subscribe(channel, handlers)
}

// Unsubscribe terminally stops a subscription, blocking until its stream
// and handler dispatch have wound down.
func (c *Client) Unsubscribe(sub *subscription.Subscription) error {
	return c.registry.Unsubscribe(sub)
}

// Status reports the state of the subscription on a channel.
// Channels without a subscription report INACTIVE.
func (c *Client) Status(channel string) subscription.Status {
	sub, err := c.registry.Get(channel)
	if err != nil {
		return subscription.StatusInactive
	}
	return sub.Status()
}

// Subscriptions returns the number of live subscriptions.
func (c *Client) Subscriptions() int {
	return c.registry.Count()
}

// BaseURL returns the configured service endpoint.
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}

// Close tears down all subscriptions and blocks until every stream and
// dispatch goroutine has stopped. The client cannot be reused afterwards.
func (c *Client) Close() error {
	c.registry.CloseAll()
	return nil
}
