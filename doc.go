// Copyright 2026 The fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package fetch provides the request-execution core of a streaming HTTP
client: it turns a transport-agnostic request into bytes on a
connection, tracks the request through its lifecycle states, honors
external cancellation at every suspension point, and converts every
low-level transport failure into a single caller-facing error type
while streaming the response body back without buffering it.

Create a Client to begin making requests.

	client := &fetch.Client{}
	resp, err := client.Get("https://www.example.com")
	...
	body, err := fetch.ReadAll(resp)

For control over how connection-level requests are opened and
exchanged, use a custom Transport. For example, tune the Go standard
HTTP stack underneath the default implementation:

	client := &fetch.Client{
		Transport: &fetch.NetTransport{
			Base: &http.Transport{
				..., // See package "net/http" for detailed documentation
			},
		},
	}

To observe request lifecycles, or to cancel requests from outside,
install a registry from package track:

	registry := myRegistry{} // implements track.Registry
	client := &fetch.Client{
		Trackers: registry,
	}

The client reports every lifecycle transition (Connecting, Sending,
Receiving, Done, Cancelled, Failed) to the tracker the registry hands
out, and races each suspension point against the tracker's cancellation
signal. A request cancelled mid-send observes exactly one outcome, a
*fault.Fault of kind Cancelled, even if the underlying write was about
to succeed.

Failures are always of type *fault.Fault (see package fault): socket
failures carry the endpoint plus whatever address and OS-level
diagnostic the transport offered, protocol failures carry the raw
message, and no raw transport error type ever escapes the client
boundary.

Package fetch also provides basic interfaces for the client's
capabilities (Sender, TrackingSender, Closer, and IdleCloser) and
utility functions for working with a Sender (Get, Head, Post, PostForm,
and ReadAll).
*/
package fetch
