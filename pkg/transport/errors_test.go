package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/securenotify/securenotify-go/pkg/event"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

var _ net.Error = timeoutErr{}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"DNS", &net.DNSError{Err: "no such host", Name: "api.example.com"}, KindDNS},
		{"Timeout", timeoutErr{}, KindTimeout},
		{"WrappedTimeout", fmt.Errorf("dial: %w", timeoutErr{}), KindTimeout},
		{"DeadlineExceeded", context.DeadlineExceeded, KindTimeout},
		{"Refused", fmt.Errorf("dial: %w", syscall.ECONNREFUSED), KindConnection},
		{"Reset", fmt.Errorf("read: %w", syscall.ECONNRESET), KindConnection},
		{"Generic", errors.New("broken"), KindNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terr := Classify(tt.err)
			require.NotNil(t, terr)
			assert.Equal(t, tt.want, terr.Kind)
			assert.ErrorIs(t, terr, tt.err)
		})
	}
}

func TestClassifyNil(t *testing.T) {
	assert.Nil(t, Classify(nil))
}

func TestClassifyPassthrough(t *testing.T) {
	orig := &Error{Kind: KindAuth, HTTPStatus: 401}
	assert.Same(t, orig, Classify(orig))
	assert.Same(t, orig, Classify(fmt.Errorf("open: %w", orig)))
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status int
		want   Kind
	}{
		{http.StatusUnauthorized, KindAuth},
		{http.StatusForbidden, KindAuth},
		{http.StatusNotFound, KindNotFound},
		{http.StatusRequestTimeout, KindTimeout},
		{http.StatusGatewayTimeout, KindTimeout},
		{http.StatusInternalServerError, KindNetwork},
		{http.StatusBadGateway, KindNetwork},
	}

	for _, tt := range tests {
		terr := classifyStatus(tt.status)
		assert.Equal(t, tt.want, terr.Kind, "status %d", tt.status)
		assert.Equal(t, tt.status, terr.HTTPStatus)
	}
}

func TestKindCode(t *testing.T) {
	tests := []struct {
		kind Kind
		want event.Code
	}{
		{KindNetwork, event.CodeNetwork},
		{KindTimeout, event.CodeTimeout},
		{KindConnection, event.CodeConnection},
		{KindTLS, event.CodeTLS},
		{KindDNS, event.CodeDNS},
		{KindAuth, event.CodeAuthFailed},
		{KindNotFound, event.CodeNotFound},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.Code(), "kind %s", tt.kind)
	}
}

func TestErrorString(t *testing.T) {
	withErr := &Error{Kind: KindDNS, Err: errors.New("no such host")}
	assert.Contains(t, withErr.Error(), "DNS")
	assert.Contains(t, withErr.Error(), "no such host")

	statusOnly := &Error{Kind: KindAuth, HTTPStatus: 401}
	assert.Contains(t, statusOnly.Error(), "401")
}
