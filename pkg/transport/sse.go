package transport

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SSEConfig configures the SSE transport.
type SSEConfig struct {
	// BaseURL is the API server base URL, without a trailing slash.
	BaseURL string

	// APIKey authenticates the stream (Authorization: Bearer).
	APIKey string

	// HTTPClient is the client used for stream requests. It must not
	// set an overall Timeout, which would cut long-lived streams; a
	// zero-timeout client is created when nil.
	HTTPClient *http.Client

	// ConnectTimeout bounds OpenStream when the caller's context
	// carries no deadline (default: 10s).
	ConnectTimeout time.Duration
}

// SSE is the Server-Sent Events transport.
// It remembers the last event ID seen per channel and replays it on
// reopen so the server can resume the stream.
type SSE struct {
	config SSEConfig
	client *http.Client

	mu          sync.Mutex
	lastEventID map[string]string
}

// NewSSE creates an SSE transport.
func NewSSE(config SSEConfig) (*SSE, error) {
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

	client := config.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	return &SSE{
		config:      config,
		client:      client,
		lastEventID: make(map[string]string),
	}, nil
}

// OpenStream opens the SSE stream for a channel.
func (t *SSE) OpenStream(ctx context.Context, channel string) (Stream, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.config.ConnectTimeout)
		defer cancel()
	}

	// The request context must outlive the connection attempt, so the
	// stream gets its own; the caller's context is only watched until
	// the response headers arrive.
	streamCtx, cancel := context.WithCancel(context.Background())

	reqURL := t.config.BaseURL + "/api/subscribe?channel=" + url.QueryEscape(channel)
	req, err := http.NewRequestWithContext(streamCtx, http.MethodGet, reqURL, nil)
	if err != nil {
		cancel()
		return nil, Classify(err)
	}
	req.Header.Set("Authorization", "Bearer "+t.config.APIKey)
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	if id := t.lastID(channel); id != "" {
		req.Header.Set("Last-Event-ID", id)
	}

	opened := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-opened:
		}
	}()

	resp, err := t.client.Do(req)
	close(opened)
	if err != nil {
		cancel()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, Classify(ctxErr)
		}
		return nil, Classify(err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		cancel()
		return nil, classifyStatus(resp.StatusCode)
	}

	return &sseStream{
		id:        uuid.NewString(),
		channel:   channel,
		transport: t,
		body:      resp.Body,
		reader:    bufio.NewReader(resp.Body),
		cancel:    cancel,
		closed:    make(chan struct{}),
	}, nil
}

// lastID returns the recorded last event ID for a channel.
func (t *SSE) lastID(channel string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastEventID[channel]
}

// recordID records the last event ID for a channel.
func (t *SSE) recordID(channel, id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastEventID[channel] = id
}

// sseStream is one open SSE response being parsed into frames.
type sseStream struct {
	id        string
	channel   string
	transport *SSE
	body      io.ReadCloser
	reader    *bufio.Reader
	cancel    context.CancelFunc

	closeOnce sync.Once
	closed    chan struct{}

	mu        sync.Mutex
	retryHint time.Duration
}

// ReadFrame reads lines until one complete SSE event is assembled and
// returns its data as a single frame. Comment lines and events without
// data (id-only, retry-only) yield no frame and reading continues.
func (s *sseStream) ReadFrame() ([]byte, error) {
	var data []string

	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			select {
			case <-s.closed:
				return nil, ErrStreamClosed
			default:
			}
			if err == io.EOF {
				return nil, io.EOF
			}
			return nil, Classify(err)
		}

		line = strings.TrimRight(line, "\r\n")

		if line == "" {
			// End of event.
			if len(data) > 0 {
				return []byte(strings.Join(data, "\n")), nil
			}
			continue
		}
		if strings.HasPrefix(line, ":") {
			// Comment; servers use these as liveness filler.
			continue
		}

		field, value := line, ""
		if i := strings.IndexByte(line, ':'); i >= 0 {
			field, value = line[:i], strings.TrimPrefix(line[i+1:], " ")
		}

		switch field {
		case "data":
			data = append(data, value)
		case "id":
			s.transport.recordID(s.channel, value)
		case "retry":
			if ms, perr := strconv.Atoi(value); perr == nil && ms > 0 {
				s.mu.Lock()
				s.retryHint = time.Duration(ms) * time.Millisecond
				s.mu.Unlock()
			}
		case "event":
			// The JSON frame carries its own type tag.
		}
	}
}

// Close tears down the stream.
func (s *sseStream) Close() error {
	s.closeOnce.Do(func() {
		close(s.closed)
		s.cancel()
		s.body.Close()
	})
	return nil
}

// ID returns the stream identifier.
func (s *sseStream) ID() string { return s.id }

// RetryHint returns the server-suggested reconnect delay, if any.
func (s *sseStream) RetryHint() (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.retryHint, s.retryHint > 0
}

// Compile-time interface satisfaction checks.
var (
	_ Transport   = (*SSE)(nil)
	_ Stream      = (*sseStream)(nil)
	_ RetryHinter = (*sseStream)(nil)
)
