// Copyright 2026 The fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request provides the transport-agnostic HTTP request
description consumed by the fetch client.

A Request describes one logical HTTP request. For those familiar with
the Go standard HTTP library, net/http, a Request looks like a
stripped-down http.Request structure with all server-side fields
removed and the body replaced with a plain byte stream that is read
exactly once. Request fields are named and typed consistently with
http.Request wherever possible.

Create a request and hand it to a client:

	req, err := request.New("POST", "https://example.com/upload", body)
	...
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Send(req)
	...

A Request carries a single-valued, case-insensitive header map: setting
a header field that is already present replaces its value rather than
appending a second one, and the casing a field was first set with is
the casing sent on the wire.

A request may be assigned a context to allow a deadline to be set on
the whole execution, and to allow the in-flight execution to be
cancelled:

	req, err := request.NewWithContext(ctx, "GET", "https://example.com", nil)
	...

Cancellation signalled through a lifecycle tracker (see the track
package) is honored independently of the request context.
*/
package request
