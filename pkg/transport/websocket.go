package transport

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"nhooyr.io/websocket"
)

// WebSocketConfig configures the WebSocket transport.
type WebSocketConfig struct {
	// BaseURL is the API server base URL (http/https scheme; rewritten
	// to ws/wss for the dial).
	BaseURL string

	// APIKey authenticates the stream (Authorization: Bearer).
	APIKey string

	// HTTPClient is used for the WebSocket handshake. Optional.
	HTTPClient *http.Client

	// ConnectTimeout bounds OpenStream when the caller's context
	// carries no deadline (default: 10s).
	ConnectTimeout time.Duration
}

// WebSocket is the WebSocket transport. Each frame is one text message
// carrying a JSON object in the shared frame wire shape.
type WebSocket struct {
	config WebSocketConfig
}

// NewWebSocket creates a WebSocket transport.
func NewWebSocket(config WebSocketConfig) (*WebSocket, error) {
	if config.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}
	if config.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if config.ConnectTimeout == 0 {
		config.ConnectTimeout = DefaultConnectTimeout
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &WebSocket{config: config}, nil
}

// OpenStream dials the WebSocket stream for a channel.
func (t *WebSocket) OpenStream(ctx context.Context, channel string) (Stream, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.config.ConnectTimeout)
		defer cancel()
	}

	wsURL := strings.Replace(t.config.BaseURL, "https://", "wss://", 1)
	wsURL = strings.Replace(wsURL, "http://", "ws://", 1)
	wsURL += "/api/subscribe/ws?channel=" + url.QueryEscape(channel)

	opts := &websocket.DialOptions{
		HTTPClient: t.config.HTTPClient,
		HTTPHeader: http.Header{"Authorization": {"Bearer " + t.config.APIKey}},
	}

	conn, resp, err := websocket.Dial(ctx, wsURL, opts)
	if err != nil {
		if resp != nil && resp.StatusCode != http.StatusSwitchingProtocols {
			return nil, classifyStatus(resp.StatusCode)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, Classify(ctxErr)
		}
		return nil, Classify(err)
	}

	// Frames can be large; the engine bounds memory via its queue,
	// not per-message limits.
	conn.SetReadLimit(1 << 20)

	streamCtx, cancel := context.WithCancel(context.Background())
	return &wsStream{
		id:     uuid.NewString(),
		conn:   conn,
		ctx:    streamCtx,
		cancel: cancel,
	}, nil
}

// wsStream is one open WebSocket connection read as a frame sequence.
type wsStream struct {
	id     string
	conn   *websocket.Conn
	ctx    context.Context
	cancel context.CancelFunc

	closeOnce sync.Once
	closed    bool
	mu        sync.Mutex
}

// ReadFrame reads the next text message.
func (s *wsStream) ReadFrame() ([]byte, error) {
	_, data, err := s.conn.Read(s.ctx)
	if err != nil {
		s.mu.Lock()
		closed := s.closed
		s.mu.Unlock()
		if closed {
			return nil, ErrStreamClosed
		}
		switch websocket.CloseStatus(err) {
		case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			return nil, io.EOF
		}
		return nil, Classify(err)
	}
	return data, nil
}

// Close tears down the connection.
func (s *wsStream) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		s.cancel()
		s.conn.Close(websocket.StatusNormalClosure, "unsubscribe")
	})
	return nil
}

// ID returns the stream identifier.
func (s *wsStream) ID() string { return s.id }

// Compile-time interface satisfaction checks.
var (
	_ Transport = (*WebSocket)(nil)
	_ Stream    = (*wsStream)(nil)
)
