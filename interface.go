// Copyright 2026 The fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fetch

import (
	"net/url"

	"github.com/SamJakob/fetch/request"
)

// Sender is the interface that wraps the basic Send method.
//
// Send executes an HTTP request and returns a streaming Response.
// Client implements the Sender interface, and any other Sender
// implementation must behave substantially the same as Client.Send:
// in particular, exactly one of the response and the error is non-nil,
// and any returned error is a *fault.Fault.
type Sender interface {
	Send(req *request.Request) (*Response, error)
}

// TrackingSender is the interface implemented by senders that report
// request lifecycles to an external registry. Callers holding a
// generic Sender can branch on this capability:
//
//	if ts, ok := s.(TrackingSender); ok && ts.SupportsTracking() {
//		... // lifecycle data will be available in the registry
//	}
//
// Client implements TrackingSender and always reports true.
type TrackingSender interface {
	Sender
	SupportsTracking() bool
}

// Closer is the interface that wraps the basic Close method.
//
// Close terminates the sender's connections; afterwards every Send
// fails fast. Close is idempotent. Client implements Closer.
type Closer interface {
	Close()
}

// IdleCloser is the interface that wraps the basic CloseIdleConnections
// method.
//
// If the underlying implementation supports it, CloseIdleConnections
// closes any connections which were established for previous requests
// but are now sitting idle in a "keep-alive" state. It does not
// interrupt any connections currently in use.
//
// NetTransport uses this interface to close the connections of its
// underlying round tripper when the owning client is closed.
type IdleCloser interface {
	CloseIdleConnections()
}

// Get uses the specified Sender to issue a GET to the specified URL.
//
// The response body is streamed; the caller must drain or close it.
// To make a request with custom headers, use request.New and s.Send.
func Get(s Sender, url string) (*Response, error) {
	req, err := request.New("GET", url, nil)
	if err != nil {
		return nil, err
	}
	return s.Send(req)
}

// Head uses the specified Sender to issue a HEAD to the specified URL.
//
// To make a request with custom headers, use request.New and s.Send.
func Head(s Sender, url string) (*Response, error) {
	req, err := request.New("HEAD", url, nil)
	if err != nil {
		return nil, err
	}
	return s.Send(req)
}

// Post uses the specified Sender to issue a POST to the specified URL.
//
// The body parameter may be nil for an empty body, or may be any of
// the types supported by request.New and request.BodyReader, namely:
// string; []byte; io.Reader; and io.ReadCloser.
//
// To make a request with custom headers, use request.New and s.Send.
func Post(s Sender, url, contentType string, body interface{}) (*Response, error) {
	req, err := request.New("POST", url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	return s.Send(req)
}

// PostForm uses the specified Sender to issue a POST to the specified
// URL, with data's keys and values URL-encoded as the request body.
//
// The Content-Type header is set to application/x-www-form-urlencoded.
// To set other headers, use request.New and s.Send.
func PostForm(s Sender, url string, data url.Values) (*Response, error) {
	return Post(s, url, "application/x-www-form-urlencoded", data.Encode())
}

// Get issues a GET to the specified URL using the client. See the
// package-level Get function.
func (c *Client) Get(url string) (*Response, error) {
	return Get(c, url)
}

// Head issues a HEAD to the specified URL using the client. See the
// package-level Head function.
func (c *Client) Head(url string) (*Response, error) {
	return Head(c, url)
}

// Post issues a POST to the specified URL using the client. See the
// package-level Post function.
func (c *Client) Post(url, contentType string, body interface{}) (*Response, error) {
	return Post(c, url, contentType, body)
}

// PostForm issues a form POST to the specified URL using the client.
// See the package-level PostForm function.
func (c *Client) PostForm(url string, data url.Values) (*Response, error) {
	return PostForm(c, url, data)
}
