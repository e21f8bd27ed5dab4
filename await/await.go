// Copyright 2026 The fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package await

import (
	"context"

	"github.com/SamJakob/fetch/fault"
	"github.com/SamJakob/fetch/track"
)

// An Operation is a handle to an in-flight asynchronous operation
// started with Start. It delivers exactly one result.
type Operation[T any] <-chan result[T]

type result[T any] struct {
	value T
	err   error
}

// Start runs f in a new goroutine and returns an Operation that will
// deliver its result. The result channel is buffered, so the goroutine
// completes and is reclaimed even if nothing ever receives the result,
// for example because the operation lost a cancellation race in Wait.
func Start[T any](f func() (T, error)) Operation[T] {
	ch := make(chan result[T], 1)
	go func() {
		v, err := f()
		ch <- result[T]{value: v, err: err}
	}()
	return ch
}

// Wait blocks until op completes or the tracker's cancellation signal
// fires, whichever happens first.
//
// If tracker is non-nil, Wait records the state transition with it
// before awaiting, and uses the context returned by its Signal method
// as the cancellation signal. A nil tracker, or a tracker whose Signal
// returns nil, never fires cancellation; Wait then simply awaits op.
//
// On natural completion, Wait returns the operation's result verbatim
// and does not call onCancel. On cancellation, Wait first invokes
// onCancel (if non-nil) synchronously with the cancellation cause, so
// the caller can actively abort the underlying work, then returns a
// *fault.Fault of kind Cancelled. Should the aborted operation still
// complete afterward, its result is discarded and never delivered.
//
// A signal that has already fired when Wait is called always wins,
// even if the operation's result is simultaneously ready: once
// cancellation has been requested, no later completion is ever
// delivered. Exactly one outcome, the result or the Cancelled fault,
// is observable per call, regardless of timing races between
// completion and cancellation.
func Wait[T any](op Operation[T], tracker track.Tracker, state track.State, onCancel func(cause error)) (T, error) {
	var done <-chan struct{}
	var signal context.Context
	if tracker != nil {
		tracker.Transition(state)
		if signal = tracker.Signal(); signal != nil {
			done = signal.Done()
		}
	}

	cancelled := func() (T, error) {
		cause := context.Cause(signal)
		if onCancel != nil {
			onCancel(cause)
		}
		var zero T
		return zero, &fault.Fault{Kind: fault.Cancelled, Message: "request aborted", Cause: cause}
	}

	// An already-fired signal takes precedence over a ready result.
	// The racing select below only arbitrates signals that fire while
	// actually awaiting, where either order is legitimate.
	if done != nil {
		select {
		case <-done:
			return cancelled()
		default:
		}
	}

	select {
	case r := <-op:
		return r.value, r.err
	case <-done:
		return cancelled()
	}
}
