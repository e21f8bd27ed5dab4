// Copyright 2026 The fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package fault converts the errors produced by an underlying HTTP
transport into a single caller-facing error type, Fault.

Every failure that escapes the fetch request pipeline is a *Fault. A
Fault carries a Kind discriminant (Socket, Protocol, or Cancelled), the
endpoint of the request that failed, and, for socket-class failures,
whatever structured diagnostic the raw error offered (network, remote
address, OS error number).

Use function Normalize to convert a raw transport error:

	f := fault.Normalize(err, req.URL)
	switch f.Kind {
	case fault.Socket:
		... // connection refused, reset, DNS failure, ...
	case fault.Cancelled:
		... // the request was aborted by an external signal
	default:
		... // malformed or unexpected HTTP-level behavior
	}

Callers who only hold a plain error can recover the Fault with
errors.As, since Fault implements the error interface and supports
unwrapping to its cause.
*/
package fault
