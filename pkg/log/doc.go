// Package log provides structured diagnostic logging for SecureNotify.
//
// This package defines the Logger interface and Event types for capturing
// subscription engine events (frames, state transitions, handler dispatch,
// errors). It is separate from operational logging (slog) - diagnostic
// capture provides a complete machine-readable trace for debugging stream
// behavior after the fact.
//
// # Basic Usage
//
// Applications configure logging by providing a Logger implementation:
//
//	// For development: log to console via slog
//	opts := client.WithLogger(log.NewSlogAdapter(slog.Default()))
//
//	// For production: write to binary file
//	fl, _ := log.NewFileLogger("/var/log/securenotify/client.snlog")
//
//	// Both: use MultiLogger
//	logger := log.NewMultiLogger(log.NewSlogAdapter(slog.Default()), fl)
//
// # Event Types
//
// Events are captured at several points in a subscription's life:
//   - Frame: raw wire frames as read from the stream (FrameEvent)
//   - State: subscription status transitions (StateChangeEvent)
//   - Dispatch: handler invocations (DispatchEvent)
//
// Errors have a dedicated event type capturing code and context.
//
// # File Format
//
// Log files use CBOR encoding with .snlog extension. The Reader type
// provides streaming iteration and filtering over recorded traces.
package log
