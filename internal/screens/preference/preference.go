// Package preference is the user preferences screen reactor.
package preference

import (
	"context"
	"fmt"

	"github.com/weareopensource/waos-go/internal/reactor"
	"github.com/weareopensource/waos-go/internal/screens/screen"
	"github.com/weareopensource/waos-go/internal/shared/failure"
)

// LabelBackground is folded after the background option was saved.
const LabelBackground = "background"

// Preferences is the part of the preferences store the screen edits.
type Preferences interface {
	Background() bool
	SetBackground(enabled bool) error
}

// Action is a user intent on the preferences screen.
type Action interface{ isAction() }

type (
	UpdateBackground struct{ Enabled bool }
	Done             struct{}
)

func (UpdateBackground) isAction() {}
func (Done) isAction()             {}

// Mutation is a state change of the preferences screen.
type Mutation interface{ isMutation() }

type (
	SetBackground struct{ Enabled bool }
	Dismiss       struct{}
	Success       struct{ Label string }
	Error         struct{ Info *failure.ErrorInfo }
)

func (SetBackground) isMutation() {}
func (Dismiss) isMutation()       {}
func (Success) isMutation()       {}
func (Error) isMutation()         {}

// State is the preferences screen.
type State struct {
	Background  bool
	IsDismissed bool
	Errors      failure.Errors
}

// Reactor is the preferences screen container.
type Reactor = reactor.Reactor[Action, Mutation, State]

// Reducer implements the preferences screen.
type Reducer struct {
	env   screen.Env
	prefs Preferences
}

// NewReducer creates the preferences reducer.
func NewReducer(env screen.Env, prefs Preferences) *Reducer {
	return &Reducer{env: env, prefs: prefs}
}

// New creates a running preferences reactor showing the stored values.
func New(env screen.Env, prefs Preferences) *Reactor {
	initial := State{Background: prefs.Background()}
	return reactor.New[Action, Mutation, State](initial, NewReducer(env, prefs), env.Options("preference")...)
}

// Mutate implements reactor.Reducer.
func (r *Reducer) Mutate(action Action, state State) reactor.Stream[Mutation] {
	switch a := action.(type) {
	case UpdateBackground:
		enabled := a.Enabled
		return reactor.Producer(func(ctx context.Context, emit reactor.Emit[Mutation]) {
			if err := r.prefs.SetBackground(enabled); err != nil {
				emit(Error{r.env.Capture(err)})
				return
			}
			if emit(SetBackground{enabled}) {
				emit(Success{LabelBackground})
			}
		})
	case Done:
		return reactor.Just[Mutation](Dismiss{})
	default:
		panic(fmt.Sprintf("preference: unhandled action %T", action))
	}
}

// Reduce implements reactor.Reducer.
func (r *Reducer) Reduce(state State, mutation Mutation) State {
	switch m := mutation.(type) {
	case SetBackground:
		state.Background = m.Enabled
	case Dismiss:
		state.IsDismissed = true
	case Success:
		state.Errors = failure.Succeed(state.Errors, m.Label)
	case Error:
		state.Errors = failure.Fail(state.Errors, m.Info)
	default:
		panic(fmt.Sprintf("preference: unhandled mutation %T", mutation))
	}
	return state
}

// Recover implements reactor.Recoverer.
func (r *Reducer) Recover(p any) Mutation {
	return Error{r.env.Panic(p)}
}
