// Package transport provides the stream transport consumed by the
// subscription engine.
//
// The engine depends on transports only through the Transport and
// Stream contracts:
//
//   - OpenStream opens one long-lived server-push stream per channel.
//   - ReadFrame blocks until the next raw frame, io.EOF on clean close.
//   - Close is idempotent and unblocks a concurrent ReadFrame.
//
// Two implementations are provided:
//
//   - SSE (default): HTTP GET of {base}/api/subscribe?channel={c} with
//     Accept: text/event-stream. One JSON frame per SSE data field.
//     Last-Event-ID is replayed on reopen so the server can resume.
//   - WebSocket: {base}/api/subscribe/ws?channel={c}. One JSON frame
//     per text message.
//
// Both authenticate with Authorization: Bearer {api key}.
//
// # Error Classification
//
// Open and read failures are wrapped in *Error with a Kind of Network,
// Timeout, Connection, TLS, DNS, Auth or NotFound. Auth and NotFound
// come from HTTP status codes (401/403 and 404); the rest are derived
// from the underlying dial or read error. The engine maps kinds onto
// the service error-code space when surfacing them to handlers.
package transport
