// Package subscription implements the SecureNotify real-time subscription engine.
//
// A subscription attaches handler callbacks to a notification channel and
// keeps a server stream open for it, surviving network failures through
// automatic reconnection with exponential backoff.
//
// # Lifecycle
//
// Each subscription moves through four states:
//   - INACTIVE: not yet connected, or terminally stopped
//   - CONNECTING: first connection attempt in progress
//   - ACTIVE: stream established and confirmed by the server
//   - RECONNECTING: stream lost, retrying with backoff
//
// A subscription only becomes ACTIVE when the server's connected event is
// decoded from the stream, not when the transport dial succeeds. Unsubscribe
// is terminal: a stopped subscription never reconnects, and unsubscribing
// twice is a no-op.
//
// # Delivery Guarantees
//
// Events for one subscription are delivered to its handlers in stream order,
// one at a time, from a single dispatch goroutine. A slow handler applies
// backpressure to its own stream; it never blocks other subscriptions.
// Handler panics are recovered and logged, and do not tear down the stream.
//
// # Reconnection
//
// Reconnect delays grow exponentially from 1s to a 30s cap with ±20% jitter.
// Retries continue indefinitely unless MaxAttempts is set, in which case the
// subscription reports a give-up error and goes INACTIVE once the budget is
// spent. The backoff resets whenever a stream reaches ACTIVE, and a server
// retry hint (SSE retry: field) overrides the computed delay for the next
// attempt. Authentication failures never retry.
//
// # Stream Health
//
// The server emits heartbeat events on idle channels. If no frame of any
// kind arrives within twice the heartbeat interval, the stream is considered
// dead and the engine reconnects. Three consecutive undecodable frames also
// force a reconnect.
package subscription
