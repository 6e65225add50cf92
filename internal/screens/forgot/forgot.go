// Package forgot is the password reset screen reactor.
package forgot

import (
	"context"
	"fmt"

	"github.com/weareopensource/waos-go/internal/domain/user"
	"github.com/weareopensource/waos-go/internal/reactor"
	"github.com/weareopensource/waos-go/internal/screens/screen"
	"github.com/weareopensource/waos-go/internal/shared/failure"
)

// AuthService sends password reset links.
type AuthService interface {
	Forgot(ctx context.Context, email string) (string, error)
}

// Action is a user intent on the reset screen.
type Action interface{ isAction() }

type (
	UpdateEmail    struct{ Email string }
	ValidateEmail  struct{}
	UpdateIsFilled struct{ IsFilled bool }
	Reset          struct{}
	SignIn         struct{}
)

func (UpdateEmail) isAction()    {}
func (ValidateEmail) isAction()  {}
func (UpdateIsFilled) isAction() {}
func (Reset) isAction()          {}
func (SignIn) isAction()         {}

// Mutation is a state change of the reset screen.
type Mutation interface{ isMutation() }

type (
	SetEmail      struct{ Email string }
	SetIsFilled   struct{ IsFilled bool }
	SetRefreshing struct{ IsRefreshing bool }
	Dismiss       struct{}
	Success       struct{ Label string }
	Error         struct{ Info *failure.ErrorInfo }
)

func (SetEmail) isMutation()      {}
func (SetIsFilled) isMutation()   {}
func (SetRefreshing) isMutation() {}
func (Dismiss) isMutation()       {}
func (Success) isMutation()       {}
func (Error) isMutation()         {}

// State is the reset screen. Success holds the label of the last success,
// which after a reset is the API confirmation message.
type State struct {
	User         user.User
	IsFilled     bool
	IsRefreshing bool
	IsDismissed  bool
	Success      string
	Errors       failure.Errors
}

// Reactor is the reset screen container.
type Reactor = reactor.Reactor[Action, Mutation, State]

// Reducer implements the reset screen.
type Reducer struct {
	env  screen.Env
	auth AuthService
}

// NewReducer creates the reset reducer.
func NewReducer(env screen.Env, auth AuthService) *Reducer {
	return &Reducer{env: env, auth: auth}
}

// New creates a running reset reactor, prefilled with email.
func New(env screen.Env, auth AuthService, email string) *Reactor {
	initial := State{User: user.User{Email: email}}
	return reactor.New[Action, Mutation, State](initial, NewReducer(env, auth), env.Options("forgot")...)
}

// Mutate implements reactor.Reducer.
func (r *Reducer) Mutate(action Action, state State) reactor.Stream[Mutation] {
	switch a := action.(type) {
	case UpdateEmail:
		return reactor.Just[Mutation](SetEmail{a.Email})
	case ValidateEmail:
		return screen.Validate(r.env, user.Email, state.User.Email, success, fail)
	case UpdateIsFilled:
		return reactor.Just[Mutation](SetIsFilled{a.IsFilled})
	case Reset:
		email := state.User.Email
		return reactor.Refreshing(refreshing, reactor.Effect(func(ctx context.Context) Mutation {
			message, err := r.auth.Forgot(ctx, email)
			if err != nil {
				return Error{r.env.Capture(err)}
			}
			return Success{message}
		}))
	case SignIn:
		return reactor.Just[Mutation](Dismiss{})
	default:
		panic(fmt.Sprintf("forgot: unhandled action %T", action))
	}
}

// Reduce implements reactor.Reducer.
func (r *Reducer) Reduce(state State, mutation Mutation) State {
	switch m := mutation.(type) {
	case SetEmail:
		state.User.Email = m.Email
	case SetIsFilled:
		state.IsFilled = m.IsFilled
	case SetRefreshing:
		state.IsRefreshing = m.IsRefreshing
	case Dismiss:
		state.IsDismissed = true
	case Success:
		state.Success = m.Label
		state.Errors = failure.Succeed(state.Errors, m.Label)
	case Error:
		state.Errors = failure.Fail(state.Errors, m.Info)
	default:
		panic(fmt.Sprintf("forgot: unhandled mutation %T", mutation))
	}
	return state
}

// Recover implements reactor.Recoverer.
func (r *Reducer) Recover(p any) Mutation {
	return Error{r.env.Panic(p)}
}

func success(label string) Mutation         { return Success{label} }
func fail(info *failure.ErrorInfo) Mutation { return Error{info} }
func refreshing(on bool) Mutation           { return SetRefreshing{on} }
