// Copyright 2026 The fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fetch

import (
	"io"
	"net/url"
	"sync"

	"github.com/SamJakob/fetch/await"
	"github.com/SamJakob/fetch/fault"
	"github.com/SamJakob/fetch/request"
	"github.com/SamJakob/fetch/track"
)

// A Client executes HTTP requests over a Transport, tracking each
// request through its lifecycle states, honoring external cancellation
// at every suspension point, and converting every transport failure
// into a *fault.Fault before it reaches the caller. Its zero value is
// a valid configuration.
//
// The zero value client uses DefaultTransport (the Go standard HTTP
// stack) and no lifecycle registry.
//
// Client's Transport typically has internal state (cached TCP
// connections) so Client instances should be reused instead of created
// as needed. Client is safe for concurrent use by multiple goroutines;
// concurrent requests are fully independent except for the connection
// pool owned by the Transport.
//
// A Client is higher-level than a Transport. The Transport is
// responsible for all details of HTTP framing, connection management,
// proxying, and TLS, while Client builds on top of it:
//
// • Client reports each request's lifecycle transitions (Connecting,
// Sending, Receiving, Done, Cancelled, Failed) to a tracker obtained
// from the Trackers registry;
//
// • Client races every suspension point against the tracker's
// cancellation signal, aborting the connection-level request when the
// signal fires during the Sending phase, and guaranteeing that exactly
// one outcome (a Response or a fault) is observable per request;
//
// • Client streams the response body back without buffering it,
// normalizing any mid-stream transport error into the stream's
// terminal error; and
//
// • Client normalizes every failure into the Socket / Protocol /
// Cancelled fault taxonomy of package fault, so no raw transport error
// type ever escapes.
type Client struct {
	// Transport specifies the mechanics of opening connection-level
	// requests and exchanging HTTP messages.
	//
	// If Transport is nil, DefaultTransport is used.
	Transport Transport

	// Trackers is the external registry the client reports active
	// requests into. Each request is offered to the registry before
	// its Connecting state; the returned tracker observes the
	// request's lifecycle and may originate its cancellation signal.
	//
	// If Trackers is nil, requests are not tracked and cancellation is
	// governed solely by the request context.
	Trackers track.Registry

	mu     sync.Mutex
	closed bool
}

// Send executes the request and returns a streaming Response.
//
// Send suspends at three points: opening the connection-level request
// (Connecting), writing the body and awaiting the response headers
// (Sending), and, on the returned Response, each read of the body
// stream. The tracker's cancellation signal is honored at each.
// Cancellation during Sending actively aborts the connection-level
// request; cancellation during Connecting relies on the transport's
// own context handling, as no connection-level request exists yet to
// abort.
//
// On success the returned Response carries the demultiplexed headers
// and a lazy body stream; the caller must drain or close the body to
// release the connection. On failure the returned error is always a
// *fault.Fault carrying the request endpoint, and no Response is
// returned: exactly one of the two is observable.
//
// A closed client fails immediately with a Protocol fault and performs
// no transport I/O.
func (c *Client) Send(req *request.Request) (*Response, error) {
	endpoint := req.URL

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, closedFault(endpoint)
	}
	t := c.transport()
	c.mu.Unlock()

	var tracker track.Tracker
	if c.Trackers != nil {
		tracker = c.Trackers.Track(req, true)
	}

	ctx := req.Context()
	openOp := await.Start(func() (Exchange, error) {
		return t.Open(ctx, req.Method, req.URL)
	})
	ex, err := await.Wait(openOp, tracker, track.Connecting, nil)
	if err != nil {
		return nil, failed(tracker, err, endpoint)
	}

	ex.Configure(Options{
		FollowRedirects:      req.FollowRedirects,
		MaxRedirects:         req.MaxRedirects,
		ContentLength:        req.ContentLength,
		PersistentConnection: req.PersistentConnection,
	})
	if req.Header != nil {
		req.Header.Each(ex.SetHeader)
	}

	sendOp := await.Start(func() (Reply, error) {
		return ex.Send(req.Body)
	})
	reply, err := await.Wait(sendOp, tracker, track.Sending, ex.Abort)
	if err != nil {
		return nil, failed(tracker, err, endpoint)
	}

	if tracker != nil {
		tracker.Transition(track.Receiving)
	}
	return &Response{
		StatusCode:           reply.StatusCode(),
		ReasonPhrase:         reply.ReasonPhrase(),
		Header:               normalizeHeader(reply.Header()),
		ContentLength:        contentLength(reply.ContentLength()),
		IsRedirect:           reply.IsRedirect(),
		PersistentConnection: reply.PersistentConnection(),
		Request:              req,
		Body: &bodyReader{
			body:     reply.Body(),
			endpoint: endpoint,
			tracker:  tracker,
		},
	}, nil
}

// SupportsTracking reports whether the client reports request
// lifecycles to an external registry. It always returns true for this
// implementation; the flag exists so callers holding a generic Sender
// can branch when tracking is unavailable on other implementations.
func (c *Client) SupportsTracking() bool {
	return true
}

// Close terminates the client's connections and marks the client
// closed. After Close, every Send fails fast with a Protocol fault
// without touching the transport. Close is idempotent: calling it a
// second time is a no-op.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.transport().CloseConnections()
}

func (c *Client) transport() Transport {
	if c.Transport == nil {
		return DefaultTransport
	}
	return c.Transport
}

// failed normalizes err at the pipeline boundary and records the
// terminal lifecycle state with the tracker.
func failed(tracker track.Tracker, err error, endpoint *url.URL) error {
	f := fault.Normalize(err, endpoint)
	if tracker != nil {
		if f.Kind == fault.Cancelled {
			tracker.Transition(track.Cancelled)
		} else {
			tracker.Transition(track.Failed)
		}
	}
	return f
}

func closedFault(endpoint *url.URL) error {
	f := &fault.Fault{Kind: fault.Protocol, Message: "client closed"}
	if endpoint != nil {
		f.Endpoint = endpoint.String()
	}
	return f
}

// ReadAll drains the response body to the end and closes it, returning
// the buffered bytes. It is a convenience for callers who do not need
// streaming; any mid-stream fault is returned as-is.
func ReadAll(resp *Response) ([]byte, error) {
	defer func() {
		_ = resp.Body.Close()
	}()
	return io.ReadAll(resp.Body)
}
