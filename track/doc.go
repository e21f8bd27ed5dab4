// Copyright 2026 The fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package track defines the lifecycle observer contract between the fetch
request pipeline and an external request registry.

A registry that wants to observe requests implements Registry. The
pipeline calls Track once per request and then reports every lifecycle
transition of that request to the returned Tracker:

	Connecting → Sending → Receiving → Done

with Cancelled or Failed terminal from any earlier state.

A Tracker may also originate a cancellation signal. If its Signal
method returns a non-nil context, the pipeline races every suspension
point against that context and abandons the request when it fires.
Trackers that only record transitions return a nil signal and are never
cancelled through this path.

Recorder is a ready-made Tracker that records transitions and supports
cancellation; registries that need nothing fancier can hand one out per
request, and tests use it to observe pipeline behavior.
*/
package track
