// Copyright 2026 The fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Options are the transport-independent settings the pipeline applies
// to a connection-level request before the body is sent.
type Options struct {
	// FollowRedirects specifies whether the exchange transparently
	// follows redirect responses.
	FollowRedirects bool
	// MaxRedirects caps the number of redirects followed before the
	// exchange fails, when FollowRedirects is set.
	MaxRedirects int
	// ContentLength is the declared request body length in bytes, or
	// -1 when not known in advance.
	ContentLength int64
	// PersistentConnection specifies whether the underlying connection
	// may be kept alive and reused after the exchange completes.
	PersistentConnection bool
}

// A Transport opens connection-level requests on behalf of a Client.
// It owns all details of HTTP framing, connection pooling, proxying,
// and TLS; the client layers lifecycle tracking, cancellation, and
// error normalization on top.
//
// Implementations must be safe for concurrent use by multiple
// goroutines. Each Exchange returned by Open, however, is used by a
// single request only and need not be.
type Transport interface {
	// Open begins a connection-level request for the given method and
	// endpoint. The returned Exchange is owned exclusively by the
	// caller for the duration of one request. Cancelling ctx releases
	// whatever the implementation has acquired so far.
	Open(ctx context.Context, method string, endpoint *url.URL) (Exchange, error)

	// CloseConnections terminates the transport's idle connections.
	// It is called when the owning client is closed.
	CloseConnections()
}

// An Exchange is an opaque handle to one in-progress transport
// exchange, from open through body write to response. It is never
// shared across requests.
type Exchange interface {
	// Configure applies the transport-independent options. It is
	// called at most once, before any SetHeader or Send call.
	Configure(opts Options)

	// SetHeader sets a header field on the connection-level request,
	// replacing any existing value for the field.
	SetHeader(name, value string)

	// Send writes the request body (which may be nil for no body) and
	// blocks until the connection-level response is available. Send is
	// called at most once.
	Send(body io.Reader) (Reply, error)

	// Abort tears down the exchange with the given cause, unblocking
	// a pending Send. It may be called concurrently with Send, and
	// must be safe to call even if Send then also completes naturally.
	Abort(cause error)
}

// A Reply is the connection-level response to an Exchange, as reported
// by the transport. The pipeline demultiplexes it into the
// caller-facing Response.
type Reply interface {
	// StatusCode returns the HTTP status code.
	StatusCode() int
	// ReasonPhrase returns the status line's reason phrase, which may
	// be empty.
	ReasonPhrase() string
	// Header returns the response headers, with duplicate fields kept
	// as multiple values.
	Header() http.Header
	// ContentLength returns the response body length in bytes, or -1
	// when the transport reports it as unknown.
	ContentLength() int64
	// IsRedirect reports whether the response is a redirect.
	IsRedirect() bool
	// PersistentConnection reports whether the underlying connection
	// remains usable after the body is drained.
	PersistentConnection() bool
	// Body returns the response body stream. Closing it releases the
	// underlying connection.
	Body() io.ReadCloser
}

// DefaultTransport is the Transport used by a Client whose Transport
// field is nil. It delegates to http.DefaultTransport.
var DefaultTransport Transport = &NetTransport{}

// NetTransport is a Transport implemented over the Go standard HTTP
// stack. Its zero value delegates to http.DefaultTransport.
//
// NetTransport establishes connections lazily: Open only prepares the
// exchange, and the dial happens inside the exchange's Send, governed
// by the context passed to Open and by whatever dial and TLS timeouts
// the underlying round tripper carries.
type NetTransport struct {
	// Base specifies the mechanism by which individual exchanges are
	// made. If nil, http.DefaultTransport is used.
	Base http.RoundTripper
}

// Open prepares a connection-level request for the given method and
// endpoint.
func (t *NetTransport) Open(ctx context.Context, method string, endpoint *url.URL) (Exchange, error) {
	ctx, cancel := context.WithCancelCause(ctx)
	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), nil)
	if err != nil {
		cancel(err)
		return nil, err
	}
	return &netExchange{
		rt:     t.base(),
		req:    req,
		cancel: cancel,
		opts: Options{
			FollowRedirects:      true,
			MaxRedirects:         10,
			ContentLength:        -1,
			PersistentConnection: true,
		},
	}, nil
}

// CloseConnections closes idle connections held by the underlying
// round tripper, if it exposes a CloseIdleConnections method (as
// http.Transport does).
func (t *NetTransport) CloseConnections() {
	if ic, ok := t.base().(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

func (t *NetTransport) base() http.RoundTripper {
	if t.Base == nil {
		return http.DefaultTransport
	}
	return t.Base
}

type netExchange struct {
	rt     http.RoundTripper
	req    *http.Request
	cancel context.CancelCauseFunc
	opts   Options
}

func (x *netExchange) Configure(opts Options) {
	x.opts = opts
	x.req.ContentLength = opts.ContentLength
	x.req.Close = !opts.PersistentConnection
}

func (x *netExchange) SetHeader(name, value string) {
	x.req.Header.Set(name, value)
}

func (x *netExchange) Send(body io.Reader) (Reply, error) {
	if body != nil {
		if rc, ok := body.(io.ReadCloser); ok {
			x.req.Body = rc
		} else {
			x.req.Body = io.NopCloser(body)
		}
	}
	// A fresh http.Client per exchange so the redirect policy is this
	// exchange's own; connection pooling lives in the shared round
	// tripper underneath.
	client := &http.Client{
		Transport:     x.rt,
		CheckRedirect: x.checkRedirect,
	}
	resp, err := client.Do(x.req)
	if err != nil {
		x.cancel(nil)
		return nil, err
	}
	return &netReply{
		resp: resp,
		body: &releaseBody{rc: resp.Body, release: x.cancel},
	}, nil
}

func (x *netExchange) checkRedirect(_ *http.Request, via []*http.Request) error {
	if !x.opts.FollowRedirects {
		return http.ErrUseLastResponse
	}
	if len(via) > x.opts.MaxRedirects {
		return fmt.Errorf("stopped after %d redirects", x.opts.MaxRedirects)
	}
	return nil
}

func (x *netExchange) Abort(cause error) {
	x.cancel(cause)
}

type netReply struct {
	resp *http.Response
	body *releaseBody
}

func (r *netReply) StatusCode() int {
	return r.resp.StatusCode
}

func (r *netReply) ReasonPhrase() string {
	status := r.resp.Status
	code := strconv.Itoa(r.resp.StatusCode)
	return strings.TrimPrefix(strings.TrimPrefix(status, code), " ")
}

func (r *netReply) Header() http.Header {
	return r.resp.Header
}

func (r *netReply) ContentLength() int64 {
	return r.resp.ContentLength
}

func (r *netReply) IsRedirect() bool {
	switch r.resp.StatusCode {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		return true
	}
	return false
}

func (r *netReply) PersistentConnection() bool {
	return !r.resp.Close
}

func (r *netReply) Body() io.ReadCloser {
	return r.body
}

// A releaseBody wraps the response body so the exchange's cancel
// context is released as soon as the body reaches a terminal read or
// is closed. Without this each finished exchange would stay registered
// with the caller's context until that context itself ends.
type releaseBody struct {
	rc       io.ReadCloser
	release  context.CancelCauseFunc
	released bool
}

func (b *releaseBody) Read(p []byte) (int, error) {
	n, err := b.rc.Read(p)
	if err != nil {
		b.releaseOnce()
	}
	return n, err
}

func (b *releaseBody) Close() error {
	err := b.rc.Close()
	b.releaseOnce()
	return err
}

func (b *releaseBody) releaseOnce() {
	if !b.released {
		b.released = true
		b.release(nil)
	}
}
