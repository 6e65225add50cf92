// Package more is the "more" menu screen reactor. The pages the menu links
// to are page reactors built by the application provider.
package more

import (
	"fmt"

	"github.com/weareopensource/waos-go/internal/reactor"
	"github.com/weareopensource/waos-go/internal/screens/screen"
)

// Action is a user intent on the menu.
type Action interface{ isAction() }

// Done closes the menu.
type Done struct{}

func (Done) isAction() {}

// Mutation is a state change of the menu.
type Mutation interface{ isMutation() }

// Dismiss marks the menu closed.
type Dismiss struct{}

func (Dismiss) isMutation() {}

// State is the menu.
type State struct {
	IsDismissed bool
}

// Reactor is the menu container.
type Reactor = reactor.Reactor[Action, Mutation, State]

// Reducer implements the menu.
type Reducer struct{}

// New creates a running menu reactor.
func New(env screen.Env) *Reactor {
	return reactor.New[Action, Mutation, State](State{}, Reducer{}, env.Options("more")...)
}

// Mutate implements reactor.Reducer.
func (Reducer) Mutate(action Action, _ State) reactor.Stream[Mutation] {
	switch action.(type) {
	case Done:
		return reactor.Just[Mutation](Dismiss{})
	default:
		panic(fmt.Sprintf("more: unhandled action %T", action))
	}
}

// Reduce implements reactor.Reducer.
func (Reducer) Reduce(state State, mutation Mutation) State {
	switch mutation.(type) {
	case Dismiss:
		state.IsDismissed = true
	default:
		panic(fmt.Sprintf("more: unhandled mutation %T", mutation))
	}
	return state
}
