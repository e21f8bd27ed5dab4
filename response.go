// Copyright 2026 The fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fetch

import (
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/SamJakob/fetch/fault"
	"github.com/SamJakob/fetch/request"
	"github.com/SamJakob/fetch/track"
)

// A Response is the caller-facing result of a successfully started
// request execution. The response headers are fully demultiplexed
// before the Response is returned, but the body is a lazily-pulled
// byte stream: it is not buffered, and the underlying connection is
// held until the stream is drained to the end or closed.
//
// Once returned, the Response is owned by the caller, who must drain
// or close Body to release the connection.
type Response struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// ReasonPhrase is the status line's reason phrase. It may be empty,
	// for example on HTTP/2 responses, where the protocol carries no
	// reason phrase.
	ReasonPhrase string

	// Header maps each response header name, cased as reported by the
	// transport, to its normalized value: duplicate values for one
	// name are joined with a comma after trailing whitespace is
	// trimmed from each individual value.
	Header map[string]string

	// ContentLength is the response body length in bytes, or nil when
	// the transport reports the length as unknown.
	ContentLength *int64

	// IsRedirect reports whether the response is a redirect.
	IsRedirect bool

	// PersistentConnection reports whether the underlying connection
	// remains usable after the body is drained.
	PersistentConnection bool

	// Request is the request this response answers.
	Request *request.Request

	// Body is the response body byte stream. Any transport failure
	// encountered while draining it surfaces as a *fault.Fault
	// terminal error, after which no further bytes are delivered.
	// Closing Body releases the underlying connection; the client
	// never drains it on the caller's behalf. Closing before the
	// stream ends abandons the transfer and records the Cancelled
	// lifecycle state.
	Body io.ReadCloser
}

// normalizeHeader flattens multi-valued transport headers into the
// single-valued caller-facing mapping: per name, each value has its
// trailing whitespace trimmed and the values are joined with a comma.
func normalizeHeader(h http.Header) map[string]string {
	m := make(map[string]string, len(h))
	for name, values := range h {
		trimmed := make([]string, len(values))
		for i, v := range values {
			trimmed[i] = strings.TrimRight(v, " \t")
		}
		m[name] = strings.Join(trimmed, ",")
	}
	return m
}

// contentLength converts the transport's unknown-length sentinel -1 to
// the absent value.
func contentLength(n int64) *int64 {
	if n < 0 {
		return nil
	}
	return &n
}

// A bodyReader wraps the connection-level response body so that any
// transport error encountered while draining it is normalized into a
// *fault.Fault, and so the tracker observes the terminal lifecycle
// state. The first error is sticky: once the stream has failed, no
// further bytes are delivered.
type bodyReader struct {
	body     io.ReadCloser
	endpoint *url.URL
	tracker  track.Tracker
	err      error
	done     bool
}

func (b *bodyReader) Read(p []byte) (int, error) {
	if b.err != nil {
		return 0, b.err
	}
	n, err := b.body.Read(p)
	switch {
	case err == nil:
		return n, nil
	case err == io.EOF:
		if !b.done {
			b.done = true
			b.transition(track.Done)
		}
		return n, io.EOF
	default:
		f := fault.Normalize(err, b.endpoint)
		b.err = f
		if f.Kind == fault.Cancelled {
			b.transition(track.Cancelled)
		} else {
			b.transition(track.Failed)
		}
		return n, f
	}
}

// Close closes the connection-level body. Closing before the stream
// has reached a terminal state abandons the remaining transfer, which
// is recorded as Cancelled so registries can retire the entry.
func (b *bodyReader) Close() error {
	err := b.body.Close()
	if b.err == nil && !b.done {
		b.done = true
		b.transition(track.Cancelled)
	}
	return err
}

func (b *bodyReader) transition(s track.State) {
	if b.tracker != nil {
		b.tracker.Transition(s)
	}
}
