package subscription

// Status represents the lifecycle state of a subscription.
// The numeric values are part of the public API and stable across releases.
type Status uint8

const (
	// StatusInactive means the subscription is not connected: either it has
	// never been started, or it has been terminally stopped.
	StatusInactive Status = 0

	// StatusConnecting means the first connection attempt is in progress.
	StatusConnecting Status = 1

	// StatusActive means the stream is established and the server has
	// confirmed the subscription.
	StatusActive Status = 2

	// StatusReconnecting means the stream was lost and the engine is
	// retrying with backoff.
	StatusReconnecting Status = 3
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusInactive:
		return "INACTIVE"
	case StatusConnecting:
		return "CONNECTING"
	case StatusActive:
		return "ACTIVE"
	case StatusReconnecting:
		return "RECONNECTING"
	default:
		return "UNKNOWN"
	}
}
