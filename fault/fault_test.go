// Copyright 2026 The fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fault

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEndpoint = &url.URL{Scheme: "https", Host: "example.com", Path: "/up"}

func TestKindString(t *testing.T) {
	assert.Equal(t, "socket failure", Socket.String())
	assert.Equal(t, "protocol failure", Protocol.String())
	assert.Equal(t, "cancelled", Cancelled.String())
	assert.Equal(t, "unknown failure", Kind(99).String())
}

func TestNormalize(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, Normalize(nil, testEndpoint))
	})
	t.Run("fallback is protocol", func(t *testing.T) {
		raw := errors.New("malformed status line")
		f := Normalize(raw, testEndpoint)
		require.NotNil(t, f)
		assert.Equal(t, Protocol, f.Kind)
		assert.Equal(t, "https://example.com/up", f.Endpoint)
		assert.Equal(t, "malformed status line", f.Message)
		assert.Same(t, raw, f.Cause)
	})
	t.Run("errno", func(t *testing.T) {
		f := Normalize(syscall.ECONNREFUSED, testEndpoint)
		assert.Equal(t, Socket, f.Kind)
		assert.Equal(t, syscall.ECONNREFUSED, f.Errno)
		assert.True(t, errors.Is(f, syscall.ECONNREFUSED))
	})
	t.Run("op error", func(t *testing.T) {
		raw := &net.OpError{
			Op:   "dial",
			Net:  "tcp",
			Addr: &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 8080},
			Err:  syscall.ECONNREFUSED,
		}
		f := Normalize(raw, testEndpoint)
		assert.Equal(t, Socket, f.Kind)
		assert.Equal(t, "tcp", f.Network)
		assert.Equal(t, "127.0.0.1:8080", f.Address)
		assert.Equal(t, syscall.ECONNREFUSED, f.Errno)
		assert.Equal(t, "https://example.com/up", f.Endpoint)
	})
	t.Run("op error wrapped in url error", func(t *testing.T) {
		raw := &url.Error{
			Op:  "Get",
			URL: "https://example.com/up",
			Err: &net.OpError{Op: "read", Net: "tcp", Err: syscall.ECONNRESET},
		}
		f := Normalize(raw, testEndpoint)
		assert.Equal(t, Socket, f.Kind)
		assert.Equal(t, syscall.ECONNRESET, f.Errno)
	})
	t.Run("dns error", func(t *testing.T) {
		raw := &net.DNSError{Err: "no such host", Name: "nope.example.com"}
		f := Normalize(raw, testEndpoint)
		assert.Equal(t, Socket, f.Kind)
		assert.Equal(t, "nope.example.com", f.Address)
		assert.Equal(t, "no such host", f.Message)
	})
	t.Run("context cancellation", func(t *testing.T) {
		f := Normalize(context.Canceled, testEndpoint)
		assert.Equal(t, Cancelled, f.Kind)
		f = Normalize(&url.Error{Op: "Get", URL: "x", Err: context.Canceled}, testEndpoint)
		assert.Equal(t, Cancelled, f.Kind)
		f = Normalize(context.DeadlineExceeded, testEndpoint)
		assert.Equal(t, Cancelled, f.Kind)
	})
	t.Run("cancellation beats socket classification", func(t *testing.T) {
		// A dial torn down by cancellation surfaces as an OpError
		// wrapping the context error. The abort signal is the truth.
		raw := &net.OpError{Op: "dial", Net: "tcp", Err: context.Canceled}
		f := Normalize(raw, testEndpoint)
		assert.Equal(t, Cancelled, f.Kind)
	})
	t.Run("existing fault passes through", func(t *testing.T) {
		orig := &Fault{Kind: Protocol, Endpoint: "https://other.example.com", Message: "x"}
		assert.Same(t, orig, Normalize(orig, testEndpoint))
	})
	t.Run("existing fault gains endpoint", func(t *testing.T) {
		orig := &Fault{Kind: Cancelled, Message: "request aborted"}
		f := Normalize(orig, testEndpoint)
		require.NotSame(t, orig, f)
		assert.Equal(t, Cancelled, f.Kind)
		assert.Equal(t, "https://example.com/up", f.Endpoint)
		assert.Equal(t, "", orig.Endpoint)
	})
	t.Run("wrapped fault passes through", func(t *testing.T) {
		orig := &Fault{Kind: Socket, Endpoint: "https://example.com/up", Message: "x"}
		f := Normalize(fmt.Errorf("while flushing: %w", orig), testEndpoint)
		assert.Same(t, orig, f)
	})
}

func TestFaultError(t *testing.T) {
	f := &Fault{Kind: Socket, Endpoint: "https://example.com/up", Message: "connection refused", Address: "127.0.0.1:8080"}
	assert.Equal(t, "fetch: socket failure for https://example.com/up: connection refused (address 127.0.0.1:8080)", f.Error())
	f = &Fault{Kind: Protocol, Message: "client closed"}
	assert.Equal(t, "fetch: protocol failure: client closed", f.Error())
	f = &Fault{Kind: Cancelled, Endpoint: "https://example.com/up"}
	assert.Equal(t, "fetch: cancelled for https://example.com/up", f.Error())
}

func TestFaultTimeout(t *testing.T) {
	assert.False(t, (&Fault{Kind: Socket}).Timeout())
	assert.True(t, (&Fault{Kind: Socket, Errno: syscall.ETIMEDOUT}).Timeout())
	assert.True(t, (&Fault{Kind: Cancelled, Cause: context.DeadlineExceeded}).Timeout())
	assert.False(t, (&Fault{Kind: Protocol, Cause: errors.New("x")}).Timeout())
	assert.True(t, (&Fault{Kind: Socket, Cause: timeoutErr{}}).Timeout())
}

func TestFaultUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	f := Normalize(fmt.Errorf("wrapped: %w", cause), testEndpoint)
	assert.True(t, errors.Is(f, cause))

	var back *Fault
	require.True(t, errors.As(fmt.Errorf("outer: %w", error(f)), &back))
	assert.Same(t, f, back)
}

type timeoutErr struct{}

func (timeoutErr) Error() string { return "i/o timeout" }

func (timeoutErr) Timeout() bool { return true }
