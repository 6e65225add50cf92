/*
Package reactor implements the unidirectional state container every screen is
built on.

# Overview

A Reactor turns dispatched actions into state snapshots in two steps:

	Action --Mutate--> Stream[Mutation] --Reduce--> State

Mutate runs on the reactor loop with the current state and returns a Stream:
immediate values (Just) and suspending producers (Effect, Producer) composed
with Concat. Leading immediate values are folded before the next action is
read, so a validation dispatched right after a field update sees the update.
The remainder of the stream runs on its own goroutine and its mutations are
folded in the order they complete, not the order their actions were sent.

Reduce is pure and total. It runs only on the loop goroutine, so the fold is
strictly ordered.

# Usage

	r := reactor.New(initial, screen, reactor.WithName("signin"), reactor.WithLogger(log))
	defer r.Dispose()

	sub := r.Observe()
	defer sub.Close()

	r.Dispatch(SignIn{})
	_ = r.Settle(ctx)
	state := r.CurrentState()

# Lifecycle

Dispose cancels every in-flight effect and closes every subscription. No
mutation is folded and no snapshot is delivered once Dispose has returned.
*/
package reactor
