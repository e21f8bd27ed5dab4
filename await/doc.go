// Copyright 2026 The fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package await races an in-flight operation against an external
cancellation signal.

The fetch request pipeline suspends at three points: opening the
connection-level request, sending the request body, and reading each
chunk of the response body. At each suspension point the pipeline must
honor cancellation without ever letting a cancelled operation's
eventual completion leak out after the caller has moved on. Package
await provides that primitive once, generically:

	op := await.Start(func() (Reply, error) {
		return exchange.Send(body)
	})
	reply, err := await.Wait(op, tracker, track.Sending, exchange.Abort)

Wait registers the lifecycle state with the tracker, then blocks until
either the operation completes naturally (its result is returned
verbatim) or the tracker's cancellation signal fires (the abort hook is
invoked synchronously and a Cancelled fault is returned). Exactly one
outcome is observable per call, regardless of how the race times out;
a completion that loses the race is discarded without blocking or
leaking the operation's goroutine.
*/
package await
