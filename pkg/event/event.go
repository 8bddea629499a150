package event

import "time"

// Code classifies an Error event.
// Values mirror the SecureNotify service error space.
type Code int32

const (
	// CodeAPI is a general API error.
	CodeAPI Code = 1000

	// CodeAuthFailed indicates the credential was rejected by the server.
	CodeAuthFailed Code = 1001

	// CodeRateLimit indicates too many requests.
	CodeRateLimit Code = 1002

	// CodeNotFound indicates the channel does not exist.
	CodeNotFound Code = 1004

	// CodeValidation indicates invalid request parameters.
	CodeValidation Code = 1400

	// CodeInternal indicates an internal server error.
	CodeInternal Code = 1500

	// CodeNetwork indicates a network connectivity error.
	CodeNetwork Code = 2000

	// CodeTimeout indicates a timed-out connection attempt or read.
	CodeTimeout Code = 2001

	// CodeConnection indicates a refused or dropped connection.
	CodeConnection Code = 2002

	// CodeTLS indicates a TLS handshake or certificate error.
	CodeTLS Code = 2003

	// CodeDNS indicates a DNS resolution failure.
	CodeDNS Code = 2004

	// CodeDecodeError indicates a frame that could not be decoded.
	// Client-local, never sent by the server.
	CodeDecodeError Code = 3000

	// CodeGiveUp indicates the reconnect-attempt bound was exceeded.
	// Client-local, delivered once before the subscription stops.
	CodeGiveUp Code = 3001

	// CodeUnknown indicates an unclassified error.
	CodeUnknown Code = 9999
)

// String returns a human-readable code name.
func (c Code) String() string {
	switch c {
	case CodeAPI:
		return "API"
	case CodeAuthFailed:
		return "AUTH_FAILED"
	case CodeRateLimit:
		return "RATE_LIMIT"
	case CodeNotFound:
		return "NOT_FOUND"
	case CodeValidation:
		return "VALIDATION"
	case CodeInternal:
		return "INTERNAL"
	case CodeNetwork:
		return "NETWORK"
	case CodeTimeout:
		return "TIMEOUT"
	case CodeConnection:
		return "CONNECTION"
	case CodeTLS:
		return "TLS"
	case CodeDNS:
		return "DNS"
	case CodeDecodeError:
		return "DECODE_ERROR"
	case CodeGiveUp:
		return "GIVE_UP"
	default:
		return "UNKNOWN"
	}
}

// Event is a decoded server-pushed event.
// Exactly one of Message, Connected, Heartbeat or Error implements it.
type Event interface {
	// Kind returns the wire type tag of the event.
	Kind() string
}

// Message carries a payload published to a channel.
type Message struct {
	// Channel the message was received on.
	Channel string

	// Payload is the message content as published.
	Payload string

	// ReceivedAt is the server timestamp when present, otherwise the
	// local decode time.
	ReceivedAt time.Time
}

// Kind returns "message".
func (Message) Kind() string { return "message" }

// Connected signals that the stream for a channel is established.
type Connected struct {
	// Channel the stream is attached to.
	Channel string
}

// Kind returns "connected".
func (Connected) Kind() string { return "connected" }

// Heartbeat is a periodic liveness event sent absent other traffic.
type Heartbeat struct {
	// Channel the heartbeat belongs to.
	Channel string
}

// Kind returns "heartbeat".
func (Heartbeat) Kind() string { return "heartbeat" }

// Error reports a server-side or client-local failure.
type Error struct {
	// Code classifies the error.
	Code Code

	// Message is a human-readable description.
	Message string
}

// Kind returns "error".
func (Error) Kind() string { return "error" }

// Compile-time interface satisfaction checks.
var (
	_ Event = Message{}
	_ Event = Connected{}
	_ Event = Heartbeat{}
	_ Event = Error{}
)
