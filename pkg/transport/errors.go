package transport

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"

	"github.com/securenotify/securenotify-go/pkg/event"
)

// Transport errors.
var (
	// ErrStreamClosed indicates a read on a stream closed by the caller.
	ErrStreamClosed = errors.New("stream closed")

	// ErrMissingBaseURL indicates a transport configured without a base URL.
	ErrMissingBaseURL = errors.New("base URL is required")

	// ErrMissingAPIKey indicates a transport configured without a credential.
	ErrMissingAPIKey = errors.New("API key is required")
)

// Kind classifies a transport failure.
type Kind uint8

const (
	// KindNetwork is a generic connectivity failure.
	KindNetwork Kind = iota

	// KindTimeout is a timed-out connection attempt or read.
	KindTimeout

	// KindConnection is a refused, reset or dropped connection.
	KindConnection

	// KindTLS is a TLS handshake or certificate failure.
	KindTLS

	// KindDNS is a name resolution failure.
	KindDNS

	// KindAuth is a rejected credential (HTTP 401/403).
	KindAuth

	// KindNotFound is an unknown channel (HTTP 404).
	KindNotFound
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "NETWORK"
	case KindTimeout:
		return "TIMEOUT"
	case KindConnection:
		return "CONNECTION"
	case KindTLS:
		return "TLS"
	case KindDNS:
		return "DNS"
	case KindAuth:
		return "AUTH"
	case KindNotFound:
		return "NOT_FOUND"
	default:
		return "UNKNOWN"
	}
}

// Code maps the kind onto the service error-code space.
func (k Kind) Code() event.Code {
	switch k {
	case KindNetwork:
		return event.CodeNetwork
	case KindTimeout:
		return event.CodeTimeout
	case KindConnection:
		return event.CodeConnection
	case KindTLS:
		return event.CodeTLS
	case KindDNS:
		return event.CodeDNS
	case KindAuth:
		return event.CodeAuthFailed
	case KindNotFound:
		return event.CodeNotFound
	default:
		return event.CodeUnknown
	}
}

// Error is a classified transport failure.
type Error struct {
	// Kind classifies the failure.
	Kind Kind

	// HTTPStatus is the response status when the failure came from an
	// HTTP response, 0 otherwise.
	HTTPStatus int

	// Err is the underlying error, nil for pure status failures.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transport %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("transport %s: HTTP %d", e.Kind, e.HTTPStatus)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// Code maps the failure onto the service error-code space.
func (e *Error) Code() event.Code { return e.Kind.Code() }

// Classify wraps err in an *Error with the most specific kind that can
// be derived from it. A nil err returns nil. An err that is already an
// *Error is returned unchanged.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var terr *Error
	if errors.As(err, &terr) {
		return terr
	}

	kind := KindNetwork

	var dnsErr *net.DNSError
	var certErr *tls.CertificateVerificationError
	var recErr tls.RecordHeaderError
	var unkAuthErr x509.UnknownAuthorityError
	var hostErr x509.HostnameError

	switch {
	case errors.As(err, &dnsErr):
		kind = KindDNS
	case errors.As(err, &certErr),
		errors.As(err, &recErr),
		errors.As(err, &unkAuthErr),
		errors.As(err, &hostErr):
		kind = KindTLS
	case errors.Is(err, context.DeadlineExceeded):
		kind = KindTimeout
	case isTimeout(err):
		kind = KindTimeout
	case errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.EPIPE):
		kind = KindConnection
	}

	return &Error{Kind: kind, Err: err}
}

// classifyStatus maps a non-200 HTTP response status to an *Error.
func classifyStatus(status int) *Error {
	kind := KindNetwork
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		kind = KindAuth
	case http.StatusNotFound:
		kind = KindNotFound
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		kind = KindTimeout
	}
	return &Error{Kind: kind, HTTPStatus: status}
}

// isTimeout reports whether err is a net.Error timeout.
func isTimeout(err error) bool {
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}
