// Copyright 2026 The fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fault

import (
	"context"
	"errors"
	"net"
	"net/url"
	"syscall"
)

// A Kind discriminates the failure classes a Fault can represent.
// Callers branch on Kind, not on the concrete type of the raw error
// wrapped inside the Fault.
type Kind int

const (
	// Socket indicates the connection to the endpoint could not be
	// established or was lost: connection refused, connection reset,
	// host unreachable, or a name resolution failure. A Socket fault
	// carries whatever structured diagnostic the raw error offered in
	// the Network, Address, and Errno fields.
	Socket Kind = iota
	// Protocol indicates malformed or unexpected HTTP-level behavior
	// (a bad status line, an unexpected close while reading framing),
	// or a client-side usage error such as sending through a closed
	// client. Protocol is also the fallback classification for any
	// raw error the normalizer does not recognize, so that no foreign
	// error type ever escapes the pipeline boundary.
	Protocol
	// Cancelled indicates the request was aborted by an external
	// signal before it produced a response.
	Cancelled
)

var kindNames = []string{
	"socket failure",
	"protocol failure",
	"cancelled",
}

// String returns a short human-readable name for the fault kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown failure"
}

// A Fault is the unified error produced by the fetch request pipeline.
// Exactly one Fault is observable per failed request; the raw transport
// error, when there is one, is retained as the Cause and reachable via
// errors.Unwrap, errors.Is, and errors.As.
type Fault struct {
	// Kind classifies the failure. See the Kind constants.
	Kind Kind

	// Endpoint is the URL of the request that failed. It is set on
	// every fault that crosses the pipeline boundary.
	Endpoint string

	// Message describes the failure. For normalized raw errors it is
	// the raw error's own message.
	Message string

	// Network is the network type ("tcp", "udp", ...) involved in a
	// Socket fault, when the raw error reported one.
	Network string

	// Address is the remote address (or, for name resolution failures,
	// the name being resolved) involved in a Socket fault, when the
	// raw error reported one.
	Address string

	// Errno is the OS-level error number underlying a Socket fault,
	// or zero when none was reported.
	Errno syscall.Errno

	// Cause is the raw error this fault was normalized from. It may be
	// nil for faults the pipeline originates itself, such as the
	// "client closed" fault.
	Cause error
}

// Error implements the error interface.
func (f *Fault) Error() string {
	s := "fetch: " + f.Kind.String()
	if f.Endpoint != "" {
		s += " for " + f.Endpoint
	}
	if f.Message != "" {
		s += ": " + f.Message
	}
	if f.Address != "" {
		s += " (address " + f.Address + ")"
	}
	return s
}

// Unwrap returns the raw error the fault was normalized from, allowing
// errors.Is and errors.As to see through the fault.
func (f *Fault) Unwrap() error {
	return f.Cause
}

// Timeout reports whether the fault represents a timeout, either
// because the underlying OS error number is ETIMEDOUT or because the
// raw cause reports itself as a timeout.
func (f *Fault) Timeout() bool {
	if f.Errno == syscall.ETIMEDOUT {
		return true
	}
	var t interface{ Timeout() bool }
	if errors.As(f.Cause, &t) {
		return t.Timeout()
	}
	return false
}

// Normalize converts a raw transport error into a *Fault carrying the
// endpoint of the request that failed. It is a total function: every
// non-nil error maps to exactly one fault, with unrecognized error
// shapes classified as Protocol. A nil error maps to a nil fault.
//
// If err is already a *Fault (or wraps one), it is returned as-is
// except that an empty Endpoint is filled in from endpoint, so a fault
// raised below the pipeline gains its endpoint exactly once on the way
// out.
//
// Classification looks through wrapped causes (url.Error and friends)
// in this order:
//
// • a context cancellation or deadline expiry → Cancelled;
//
// • a net.DNSError → Socket, with Address set to the name being
// resolved;
//
// • a net.OpError → Socket, extracting network, remote address, and
// OS error number when present;
//
// • a bare syscall.Errno → Socket;
//
// • anything else → Protocol, preserving the raw message.
func Normalize(err error, endpoint *url.URL) *Fault {
	if err == nil {
		return nil
	}
	var ep string
	if endpoint != nil {
		ep = endpoint.String()
	}

	var f *Fault
	if errors.As(err, &f) {
		if f.Endpoint == "" && ep != "" {
			g := *f
			g.Endpoint = ep
			return &g
		}
		return f
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &Fault{Kind: Cancelled, Endpoint: ep, Message: err.Error(), Cause: err}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &Fault{Kind: Socket, Endpoint: ep, Message: dnsErr.Err, Address: dnsErr.Name, Cause: err}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		g := &Fault{Kind: Socket, Endpoint: ep, Message: opErr.Err.Error(), Network: opErr.Net, Cause: err}
		if opErr.Addr != nil {
			g.Address = opErr.Addr.String()
		}
		var errno syscall.Errno
		if errors.As(opErr.Err, &errno) {
			g.Errno = errno
		}
		return g
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		return &Fault{Kind: Socket, Endpoint: ep, Message: errno.Error(), Errno: errno, Cause: err}
	}

	return &Fault{Kind: Protocol, Endpoint: ep, Message: err.Error(), Cause: err}
}
