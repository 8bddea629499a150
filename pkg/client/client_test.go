package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/securenotify/securenotify-go/pkg/event"
	"github.com/securenotify/securenotify-go/pkg/subscription"
	"github.com/securenotify/securenotify-go/pkg/transport"
)

// stubStream feeds scripted frames to the engine.
type stubStream struct {
	frames chan []byte
	closed chan struct{}
	once   sync.Once
}

func newStubStream() *stubStream {
	return &stubStream{
		frames: make(chan []byte, 16),
		closed: make(chan struct{}),
	}
}

func (s *stubStream) push(frame string) { s.frames <- []byte(frame) }

func (s *stubStream) ReadFrame() ([]byte, error) {
	select {
	case f := <-s.frames:
		return f, nil
	case <-s.closed:
		return nil, transport.ErrStreamClosed
	}
}

func (s *stubStream) Close() error {
	s.once.Do(func() { close(s.closed) })
	return nil
}

func (s *stubStream) ID() string { return "stub" }

// stubTransport returns one stream per channel, creating them on demand.
type stubTransport struct {
	mu      sync.Mutex
	streams map[string]*stubStream
}

func newStubTransport() *stubTransport {
	return &stubTransport{streams: make(map[string]*stubStream)}
}

func (t *stubTransport) stream(channel string) *stubStream {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.streams[channel]
	if !ok {
		s = newStubStream()
		t.streams[channel] = s
	}
	return s
}

func (t *stubTransport) OpenStream(ctx context.Context, channel string) (transport.Stream, error) {
	return t.stream(channel), nil
}

func TestNewValidation(t *testing.T) {
	t.Run("Missing Base URL", func(t *testing.T) {
		_, err := New(Config{APIKey: "key"})
		assert.ErrorIs(t, err, transport.ErrMissingBaseURL)
	})

	t.Run("Missing API Key", func(t *testing.T) {
		_, err := New(Config{BaseURL: "https://example.com"})
		assert.ErrorIs(t, err, transport.ErrMissingAPIKey)
	})

	t.Run("Unknown Transport", func(t *testing.T) {
		_, err := New(Config{
			BaseURL:   "https://example.com",
			APIKey:    "key",
			Transport: "carrier-pigeon",
		})
		assert.ErrorIs(t, err, ErrUnknownTransport)
	})

	t.Run("SSE Default", func(t *testing.T) {
		c, err := New(Config{BaseURL: "https://example.com", APIKey: "key"})
		require.NoError(t, err)
		defer c.Close()
		assert.Equal(t, "https://example.com", c.BaseURL())
	})

	t.Run("WebSocket", func(t *testing.T) {
		c, err := New(Config{
			BaseURL:   "https://example.com",
			APIKey:    "key",
			Transport: "websocket",
		})
		require.NoError(t, err)
		defer c.Close()
	})

	t.Run("Custom Transport Skips Validation", func(t *testing.T) {
		c, err := New(Config{}, WithTransport(newStubTransport()))
		require.NoError(t, err)
		defer c.Close()
	})
}

func TestClientSubscribeLifecycle(t *testing.T) {
	tr := newStubTransport()
	c, err := New(Config{}, WithTransport(tr))
	require.NoError(t, err)
	defer c.Close()

	var mu sync.Mutex
	var got []string
	sub, err := c.Subscribe("orders", subscription.Handlers{
		OnMessage: func(m event.Message) {
			mu.Lock()
			got = append(got, m.Payload)
			mu.Unlock()
		},
	})
	require.NoError(t, err)

	stream := tr.stream("orders")
	stream.push(`{"type":"connected","channel":"orders"}`)
	stream.push(`{"type":"message","channel":"orders","payload":"hello"}`)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, 2*time.Second, time.Millisecond, "message not delivered")

	assert.Equal(t, subscription.StatusActive, c.Status("orders"))
	assert.Equal(t, 1, c.Subscriptions())

	require.NoError(t, c.Unsubscribe(sub))
	assert.Equal(t, subscription.StatusInactive, c.Status("orders"))
	assert.Equal(t, 0, c.Subscriptions())

	// Idempotent
	assert.NoError(t, c.Unsubscribe(sub))
}

func TestClientSubscribeValidation(t *testing.T) {
	c, err := New(Config{}, WithTransport(newStubTransport()))
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Subscribe("", subscription.Handlers{OnMessage: func(event.Message) {}})
	assert.ErrorIs(t, err, subscription.ErrInvalidChannel)

	_, err = c.Subscribe("orders", subscription.Handlers{})
	assert.ErrorIs(t, err, subscription.ErrMissingHandler)
}

func TestClientStatusUnknownChannel(t *testing.T) {
	c, err := New(Config{}, WithTransport(newStubTransport()))
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, subscription.StatusInactive, c.Status("nope"))
}

func TestClientCloseStopsAll(t *testing.T) {
	tr := newStubTransport()
	c, err := New(Config{}, WithTransport(tr))
	require.NoError(t, err)

	var subs []*subscription.Subscription
	for i := 0; i < 3; i++ {
		channel := fmt.Sprintf("ch-%d", i)
		sub, err := c.Subscribe(channel, subscription.Handlers{
			OnMessage: func(event.Message) {},
		})
		require.NoError(t, err)
		tr.stream(channel).push(fmt.Sprintf(`{"type":"connected","channel":%q}`, channel))
		subs = append(subs, sub)
	}

	require.NoError(t, c.Close())
	for _, sub := range subs {
		assert.Equal(t, subscription.StatusInactive, sub.Status())
	}

	_, err = c.Subscribe("after", subscription.Handlers{OnMessage: func(event.Message) {}})
	assert.True(t, errors.Is(err, subscription.ErrClosed))
}
