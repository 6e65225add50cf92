// Package signin is the sign-in screen reactor.
package signin

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/weareopensource/waos-go/internal/domain/user"
	"github.com/weareopensource/waos-go/internal/reactor"
	"github.com/weareopensource/waos-go/internal/screens/screen"
	"github.com/weareopensource/waos-go/internal/shared/failure"
)

// Label of the success folded after a sign-in.
const LabelSignIn = "signIn"

// AuthService signs accounts in.
type AuthService interface {
	SignIn(ctx context.Context, email, password string) (user.Session, error)
}

// Preferences is the part of the preferences store the screen writes.
type Preferences interface {
	SetLogged(logged bool) error
	SetCookieExpire(unix int64) error
}

// Action is a user intent on the sign-in screen.
type Action interface{ isAction() }

type (
	UpdateEmail    struct{ Email string }
	ValidateEmail  struct{}
	UpdatePassword struct{ Password string }
	UpdateIsFilled struct{ IsFilled bool }
	SignIn         struct{}
	SignUp         struct{}
)

func (UpdateEmail) isAction()    {}
func (ValidateEmail) isAction()  {}
func (UpdatePassword) isAction() {}
func (UpdateIsFilled) isAction() {}
func (SignIn) isAction()         {}
func (SignUp) isAction()         {}

// Mutation is a state change of the sign-in screen.
type Mutation interface{ isMutation() }

type (
	SetEmail      struct{ Email string }
	SetPassword   struct{ Password string }
	SetIsFilled   struct{ IsFilled bool }
	SetRefreshing struct{ IsRefreshing bool }
	GoSignUp      struct{}
	Success       struct{ Label string }
	Error         struct{ Info *failure.ErrorInfo }
)

func (SetEmail) isMutation()      {}
func (SetPassword) isMutation()   {}
func (SetIsFilled) isMutation()   {}
func (SetRefreshing) isMutation() {}
func (GoSignUp) isMutation()      {}
func (Success) isMutation()       {}
func (Error) isMutation()         {}

// State is the sign-in screen.
type State struct {
	User         user.User
	IsFilled     bool
	IsRefreshing bool
	IsLogged     bool
	ShowSignUp   bool
	Errors       failure.Errors
}

// Reactor is the sign-in screen container.
type Reactor = reactor.Reactor[Action, Mutation, State]

// Reducer implements the sign-in screen.
type Reducer struct {
	env   screen.Env
	auth  AuthService
	prefs Preferences
}

// NewReducer creates the sign-in reducer.
func NewReducer(env screen.Env, auth AuthService, prefs Preferences) *Reducer {
	return &Reducer{env: env, auth: auth, prefs: prefs}
}

// New creates a running sign-in reactor.
func New(env screen.Env, auth AuthService, prefs Preferences) *Reactor {
	return reactor.New[Action, Mutation, State](State{}, NewReducer(env, auth, prefs), env.Options("signin")...)
}

// Mutate implements reactor.Reducer.
func (r *Reducer) Mutate(action Action, state State) reactor.Stream[Mutation] {
	switch a := action.(type) {
	case UpdateEmail:
		return reactor.Just[Mutation](SetEmail{a.Email})
	case ValidateEmail:
		return screen.Validate(r.env, user.Email, state.User.Email, success, fail)
	case UpdatePassword:
		return reactor.Just[Mutation](SetPassword{a.Password}, Success{string(user.Password)})
	case UpdateIsFilled:
		return reactor.Just[Mutation](SetIsFilled{a.IsFilled})
	case SignIn:
		email, password := state.User.Email, state.User.Password
		return reactor.Refreshing(refreshing, reactor.Effect(func(ctx context.Context) Mutation {
			session, err := r.auth.SignIn(ctx, email, password)
			if err != nil {
				return Error{r.env.Capture(err)}
			}
			if err := r.prefs.SetCookieExpire(session.TokenExpiresIn); err != nil {
				r.env.Log().Warn("failed to store cookie expiry", zap.Error(err))
			}
			if err := r.prefs.SetLogged(true); err != nil {
				return Error{r.env.Capture(err)}
			}
			return Success{LabelSignIn}
		}))
	case SignUp:
		return reactor.Just[Mutation](GoSignUp{})
	default:
		panic(fmt.Sprintf("signin: unhandled action %T", action))
	}
}

// Reduce implements reactor.Reducer.
func (r *Reducer) Reduce(state State, mutation Mutation) State {
	switch m := mutation.(type) {
	case SetEmail:
		state.User.Email = m.Email
	case SetPassword:
		state.User.Password = m.Password
	case SetIsFilled:
		state.IsFilled = m.IsFilled
	case SetRefreshing:
		state.IsRefreshing = m.IsRefreshing
	case GoSignUp:
		state.ShowSignUp = true
	case Success:
		if m.Label == LabelSignIn {
			state.IsLogged = true
		}
		state.Errors = failure.Succeed(state.Errors, m.Label)
	case Error:
		if m.Info.IsAuth() {
			state.IsLogged = false
		}
		state.Errors = failure.Fail(state.Errors, m.Info)
	default:
		panic(fmt.Sprintf("signin: unhandled mutation %T", mutation))
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
