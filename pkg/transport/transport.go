package transport

import (
	"context"
	"time"
)

// Default transport settings.
const (
	// DefaultConnectTimeout bounds a single OpenStream attempt.
	DefaultConnectTimeout = 10 * time.Second
)

// Stream is one open server-push stream for a channel.
type Stream interface {
	// ReadFrame blocks until the next raw frame is available.
	// It returns io.EOF when the server closes the stream cleanly and
	// a classified *Error for transport failures. After Close it
	// returns ErrStreamClosed.
	ReadFrame() ([]byte, error)

	// Close tears down the stream. It is idempotent, always succeeds
	// and unblocks a concurrent ReadFrame.
	Close() error

	// ID returns a unique stream identifier for log correlation.
	ID() string
}

// Transport opens server-push streams.
// Implementations must be safe for concurrent use; one Transport is
// shared by all of a client's subscriptions.
type Transport interface {
	// OpenStream opens a stream for the channel. The context bounds
	// the connection attempt only, not the stream lifetime.
	OpenStream(ctx context.Context, channel string) (Stream, error)
}

// RetryHinter is implemented by streams that carry a server-suggested
// reconnect delay (the SSE retry field). The subscription engine
// consults it after a stream ends.
type RetryHinter interface {
	// RetryHint returns the suggested delay, or false if the server
	// never sent one.
	RetryHint() (time.Duration, bool)
}
