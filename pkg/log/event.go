package log

import "time"

// Event represents a diagnostic event captured by the subscription engine.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SubscriptionID uniquely identifies the subscription (UUID).
	SubscriptionID string `cbor:"2,keyasint"`

	// Channel the subscription is attached to.
	Channel string `cbor:"3,keyasint,omitempty"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// StreamID identifies the underlying transport stream, which changes
	// across reconnections.
	StreamID string `cbor:"5,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Frame    *FrameEvent       `cbor:"6,keyasint,omitempty"` // Raw wire frames
	State    *StateChangeEvent `cbor:"7,keyasint,omitempty"` // Status transitions
	Dispatch *DispatchEvent    `cbor:"8,keyasint,omitempty"` // Handler invocations
	Error    *ErrorEventData   `cbor:"9,keyasint,omitempty"` // Errors at any point
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryFrame indicates a raw wire frame.
	CategoryFrame Category = 0
	// CategoryState indicates a status transition.
	CategoryState Category = 1
	// CategoryDispatch indicates a handler invocation.
	CategoryDispatch Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryFrame:
		return "FRAME"
	case CategoryState:
		return "STATE"
	case CategoryDispatch:
		return "DISPATCH"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// FrameEvent captures a raw frame as read from the stream.
type FrameEvent struct {
	// Size is the frame size in bytes.
	Size int `cbor:"1,keyasint"`

	// Data is the raw frame bytes (may be truncated for large frames).
	Data []byte `cbor:"2,keyasint,omitempty"`

	// Truncated indicates if Data was truncated.
	Truncated bool `cbor:"3,keyasint,omitempty"`
}

// StateChangeEvent captures subscription status transitions.
type StateChangeEvent struct {
	// OldState is the previous status (may be empty).
	OldState string `cbor:"1,keyasint,omitempty"`

	// NewState is the new status.
	NewState string `cbor:"2,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"3,keyasint,omitempty"`

	// Attempt is the reconnection attempt count when relevant.
	Attempt *int `cbor:"4,keyasint,omitempty"`
}

// DispatchEvent captures a handler invocation.
type DispatchEvent struct {
	// Kind is the event kind delivered ("message", "connected", ...).
	Kind string `cbor:"1,keyasint"`

	// QueueDepth is the dispatch queue depth at enqueue time.
	QueueDepth int `cbor:"2,keyasint,omitempty"`

	// Duration the handler took to return. Stored as nanoseconds.
	Duration *time.Duration `cbor:"3,keyasint,omitempty"`

	// Panicked indicates the handler panicked and was recovered.
	Panicked bool `cbor:"4,keyasint,omitempty"`
}

// ErrorEventData captures errors at any point in the stream lifecycle.
type ErrorEventData struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Code is the SecureNotify error code (if applicable).
	Code *int `cbor:"2,keyasint,omitempty"`

	// Context describes what operation was being performed.
	Context string `cbor:"3,keyasint,omitempty"`
}
