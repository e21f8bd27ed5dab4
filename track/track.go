// Copyright 2026 The fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package track

import (
	"context"
	"sync"

	"github.com/SamJakob/fetch/request"
)

// A State identifies one stage in the lifecycle of a single request
// execution. Exactly one state is active at a time per request, and
// transitions are monotonic: no state is revisited, and Cancelled and
// Failed are terminal from any earlier state.
type State int

const (
	// Connecting identifies the stage in which the pipeline is opening
	// a connection-level request for the method and endpoint. It is
	// always the first state reported for a request.
	Connecting State = iota
	// Sending identifies the stage in which the request body is being
	// written to the connection-level request and the connection-level
	// response is awaited.
	Sending
	// Receiving identifies the stage in which the response headers
	// have been demultiplexed and the body stream is available to the
	// caller but not yet drained.
	Receiving
	// Done identifies the terminal state of a request whose response
	// body was drained to the end without error.
	Done
	// Cancelled identifies the terminal state of a request that was
	// aborted by an external signal. It is reachable from Connecting,
	// Sending, and Receiving.
	Cancelled
	// Failed identifies the terminal state of a request that ended in
	// a socket or protocol failure. It is reachable from Connecting,
	// Sending, and Receiving.
	Failed
	// stateSentinel provides the total number of states typed as a
	// State.
	stateSentinel
)

var stateNames = []string{
	"Connecting",
	"Sending",
	"Receiving",
	"Done",
	"Cancelled",
	"Failed",
}

// States returns a slice containing all lifecycle states, with the
// non-terminal states in the order in which they occur.
func States() []State {
	s := make([]State, stateSentinel)
	for i := range s {
		s[i] = State(i)
	}
	return s
}

// Name returns the name of the state.
func (s State) Name() string {
	return stateNames[int(s)]
}

// String returns the name of the state.
func (s State) String() string {
	return s.Name()
}

// Terminal reports whether the state ends the request lifecycle.
func (s State) Terminal() bool {
	return s == Done || s == Cancelled || s == Failed
}

// A Tracker observes the lifecycle of one request execution and may
// originate a cancellation signal for it.
//
// Transition is called by the pipeline each time the request enters a
// new lifecycle state. Calls are made from the goroutine executing the
// request, before the corresponding stage is awaited.
//
// Signal returns the context whose cancellation aborts the tracked
// request, or nil if the tracker does not originate cancellation. The
// pipeline reads the cancellation cause from the returned context via
// context.Cause.
type Tracker interface {
	Transition(State)
	Signal() context.Context
}

// A Registry is an external sink the pipeline reports active requests
// into. Track is called once per request, before the Connecting state
// is entered; streaming indicates the caller receives the response
// body as a stream rather than buffered. The returned Tracker receives
// every subsequent lifecycle transition for that request.
type Registry interface {
	Track(req *request.Request, streaming bool) Tracker
}

// The RegistryFunc type is an adapter to allow the use of ordinary
// functions as registries. If f is a function with the appropriate
// signature, RegistryFunc(f) is a Registry that calls f.
type RegistryFunc func(req *request.Request, streaming bool) Tracker

// Track calls f(req, streaming).
func (f RegistryFunc) Track(req *request.Request, streaming bool) Tracker {
	return f(req, streaming)
}

// A Recorder is a basic Tracker that records the transitions it
// observes and supports external cancellation. A Recorder is safe for
// concurrent use by multiple goroutines.
//
// The zero value is not usable; construct with NewRecorder.
type Recorder struct {
	mu     sync.Mutex
	states []State
	ctx    context.Context
	cancel context.CancelCauseFunc
}

// NewRecorder returns a Recorder whose cancellation signal is derived
// from ctx, which must be non-nil. Cancelling ctx, or calling the
// recorder's Cancel method, fires the signal.
func NewRecorder(ctx context.Context) *Recorder {
	if ctx == nil {
		panic("fetch/track: nil context")
	}
	r := &Recorder{}
	r.ctx, r.cancel = context.WithCancelCause(ctx)
	return r
}

// Transition records the state.
func (r *Recorder) Transition(s State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

// Signal returns the recorder's cancellation context.
func (r *Recorder) Signal() context.Context {
	return r.ctx
}

// Cancel fires the recorder's cancellation signal with the given
// cause. Subsequent calls have no effect.
func (r *Recorder) Cancel(cause error) {
	r.cancel(cause)
}

// States returns a copy of the transitions recorded so far, in order.
func (r *Recorder) States() []State {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := make([]State, len(r.states))
	copy(s, r.states)
	return s
}

// Last returns the most recently recorded state, or -1 if no
// transition has been recorded yet.
func (r *Recorder) Last() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.states) == 0 {
		return State(-1)
	}
	return r.states[len(r.states)-1]
}
