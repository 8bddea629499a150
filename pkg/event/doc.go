// Package event defines the typed events delivered to subscription
// handlers and the decoder that produces them from raw stream frames.
//
// The server pushes one JSON object per frame:
//
//	{"type":"message","channel":"orders","payload":"...","timestamp":1700000000000}
//	{"type":"connected","channel":"orders"}
//	{"type":"heartbeat","channel":"orders"}
//	{"type":"error","code":1001,"message":"invalid API key"}
//
// Decode validates field presence per event type and returns exactly one
// Event per well-formed frame. A malformed frame yields a decode error;
// the subscription engine converts it into an Error event with
// CodeDecodeError and decides whether the stream must be reopened.
//
// # Error Codes
//
// Error codes follow the SecureNotify service error space:
//   - 1xxx: API errors (authentication, validation, not found)
//   - 2xxx: network errors (connectivity, timeout, TLS, DNS)
//   - 3xxx: client-local errors (decode failure, retry exhaustion)
//   - 9999: unknown
//
// Events are immutable once produced.
package event
