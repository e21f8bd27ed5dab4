// Copyright 2026 The fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"
	"strings"

	"golang.org/x/net/http/httpguts"
)

const nilCtxMsg = "fetch/request: nil context"

// DefaultMaxRedirects is the redirect-follow limit applied to new
// requests.
const DefaultMaxRedirects = 5

// A Request describes one logical HTTP request to be executed by a
// client. It is transport-agnostic: it carries the method, endpoint,
// headers, body stream, and the transport-independent options the
// pipeline applies to the connection-level request.
//
// A Request is immutable once handed to a client for execution, and
// remains owned by the caller. Unlike the lower-level http.Request, the
// body is a plain byte stream consumed at most once; there is no
// rewind-and-retry machinery here.
//
// Like the http.Request structure, a Request has a context which can
// be used to cancel its in-flight execution at any time.
type Request struct {
	// Method specifies the HTTP method (GET, POST, PUT, etc.).
	// An empty string means GET.
	Method string

	// URL specifies the endpoint to send the request to.
	URL *urlpkg.URL

	// Header contains the request header fields to be sent. Each field
	// holds a single value; setting a field that is already present
	// replaces its value.
	Header *Header

	// Body is the request body byte stream, or nil for no body. The
	// stream is read exactly once, while the request is being sent.
	// If Body implements io.Closer it is closed once fully consumed.
	Body io.Reader

	// ContentLength is the declared length of Body in bytes, or -1
	// when the length is not known in advance (the transport then
	// chooses its own framing, typically chunked encoding).
	ContentLength int64

	// FollowRedirects specifies whether the connection-level request
	// should transparently follow redirect responses.
	FollowRedirects bool

	// MaxRedirects caps the number of redirects followed before the
	// request fails, when FollowRedirects is set.
	MaxRedirects int

	// PersistentConnection specifies whether the underlying connection
	// may be kept alive and reused after the exchange completes.
	PersistentConnection bool

	// ctx allows the in-flight execution of the request to be
	// cancelled. It should only be modified by copying the whole
	// Request using WithContext.
	ctx context.Context
}

// New wraps NewWithContext using the background context.
//
// Parameter body may be nil (empty body), or it may be a string,
// []byte, io.Reader, or io.ReadCloser. Strings and byte slices also
// determine the declared content length; readers are streamed with an
// unknown length.
func New(method, url string, body interface{}) (*Request, error) {
	return NewWithContext(context.Background(), method, url, body)
}

// NewWithContext returns a new Request given a method, URL, and
// optional body.
//
// Parameter body may be nil (empty body), or it may be a string,
// []byte, io.Reader, or io.ReadCloser. Strings and byte slices also
// determine the declared content length; readers are streamed with an
// unknown length.
//
// The request defaults to following up to DefaultMaxRedirects
// redirects over a persistent connection.
func NewWithContext(ctx context.Context, method, url string, body interface{}) (*Request, error) {
	if ctx == nil {
		return nil, errors.New(nilCtxMsg)
	}
	if method == "" {
		method = "GET"
	}
	if !validMethod(method) {
		return nil, fmt.Errorf("fetch/request: invalid method %q", method)
	}
	u, err := urlpkg.Parse(url)
	if err != nil {
		return nil, err
	}
	u.Host = removeEmptyPort(u.Host)
	b, n, err := BodyReader(body)
	if err != nil {
		return nil, err
	}
	return &Request{
		ctx:                  ctx,
		Method:               method,
		URL:                  u,
		Header:               NewHeader(),
		Body:                 b,
		ContentLength:        n,
		FollowRedirects:      true,
		MaxRedirects:         DefaultMaxRedirects,
		PersistentConnection: true,
	}, nil
}

// Context returns the request's context. The context controls
// cancellation of the in-flight request execution. To change the
// context, use WithContext.
//
// The returned context is always non-nil; it defaults to the
// background context.
func (r *Request) Context() context.Context {
	if r.ctx != nil {
		return r.ctx
	}
	return context.Background()
}

// WithContext returns a shallow copy of r with its context changed to
// ctx, which must be non-nil.
//
// The context controls the entire lifetime of the request execution:
// opening the connection-level request, sending the body, and awaiting
// the response headers.
func (r *Request) WithContext(ctx context.Context) *Request {
	if ctx == nil {
		panic(nilCtxMsg)
	}
	r2 := new(Request)
	*r2 = *r
	r2.ctx = ctx
	return r2
}

// AddCookie adds a cookie to the request. Per RFC 6265 section 5.4,
// AddCookie does not attach more than one Cookie header field. That
// means all cookies, if any, are written into the same line,
// separated by semicolons.
//
// AddCookie only sanitizes c's name and value, and does not sanitize
// a Cookie header already present in the request.
func (r *Request) AddCookie(c *http.Cookie) {
	c2 := &http.Cookie{Name: c.Name, Value: c.Value}
	s := c2.String()
	if h := r.Header.Get("Cookie"); h != "" {
		r.Header.Set("Cookie", h+"; "+s)
	} else {
		r.Header.Set("Cookie", s)
	}
}

// SetBasicAuth sets the request's Authorization header to use HTTP
// Basic Authentication with the provided username and password.
//
// With HTTP Basic Authentication the provided username and password
// are not encrypted.
//
// Some protocols may impose additional requirements on pre-escaping the
// username and password. For instance, when used with OAuth2, both arguments
// must be URL encoded first with url.QueryEscape.
func (r *Request) SetBasicAuth(username, password string) {
	r.Header.Set("Authorization", "Basic "+basicAuth(username, password))
}

// basicAuth is lifted verbatim from net/http/client.go.
//
// See 2 (end of page 4) https://www.ietf.org/rfc/rfc2617.txt
// "To receive authorization, the client sends the userid and password,
// separated by a single colon (":") character, within a base64
// encoded string in the credentials."
// It is not meant to be urlencoded.
func basicAuth(username, password string) string {
	auth := username + ":" + password
	return base64.StdEncoding.EncodeToString([]byte(auth))
}

// validMethod checks the method against the token grammar of RFC 7230
// section 3.2.6. We don't need to check for length more than 1 because
// the empty string is always interpreted as "GET".
func validMethod(method string) bool {
	return strings.IndexFunc(method, isNotToken) == -1
}

func isNotToken(r rune) bool {
	return !httpguts.IsTokenRune(r)
}

// hasPort is lifted verbatim from net/http/http.go
//
// Given a string of the form "host", "host:port", or "[ipv6::address]:port",
// return true if the string includes a port.
func hasPort(s string) bool { return strings.LastIndex(s, ":") > strings.LastIndex(s, "]") }

// removeEmptyPort is lifted verbatim from net/http/http.go
//
// removeEmptyPort strips the empty port in ":port" to ""
// as mandated by RFC 3986 Section 6.2.3.
func removeEmptyPort(host string) string {
	if hasPort(host) {
		return strings.TrimSuffix(host, ":")
	}
	return host
}
