// Package signup is the account creation screen reactor.
package signup

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/weareopensource/waos-go/internal/domain/user"
	"github.com/weareopensource/waos-go/internal/reactor"
	"github.com/weareopensource/waos-go/internal/screens/screen"
	"github.com/weareopensource/waos-go/internal/shared/failure"
)

// LabelSignUp is folded after the account was created.
const LabelSignUp = "signUp"

// AuthService creates accounts.
type AuthService interface {
	SignUp(ctx context.Context, u user.User) (user.Session, error)
}

// Preferences is the part of the preferences store the screen writes.
type Preferences interface {
	SetLogged(logged bool) error
	SetCookieExpire(unix int64) error
}

// Action is a user intent on the sign-up screen.
type Action interface{ isAction() }

type (
	UpdateFirstName   struct{ FirstName string }
	ValidateFirstName struct{}
	UpdateLastName    struct{ LastName string }
	ValidateLastName  struct{}
	UpdateEmail       struct{ Email string }
	ValidateEmail     struct{}
	UpdatePassword    struct{ Password string }
	ValidatePassword  struct{}
	SignUp            struct{}
	SignIn            struct{}
)

func (UpdateFirstName) isAction()   {}
func (ValidateFirstName) isAction() {}
func (UpdateLastName) isAction()    {}
func (ValidateLastName) isAction()  {}
func (UpdateEmail) isAction()       {}
func (ValidateEmail) isAction()     {}
func (UpdatePassword) isAction()    {}
func (ValidatePassword) isAction()  {}
func (SignUp) isAction()            {}
func (SignIn) isAction()            {}

// Mutation is a state change of the sign-up screen.
type Mutation interface{ isMutation() }

type (
	SetField struct {
		Field user.Field
		Value string
	}
	SetRefreshing struct{ IsRefreshing bool }
	SignedUp      struct{ User user.User }
	GoSignIn      struct{}
	Success       struct{ Label string }
	Error         struct{ Info *failure.ErrorInfo }
)

func (SetField) isMutation()      {}
func (SetRefreshing) isMutation() {}
func (SignedUp) isMutation()      {}
func (GoSignIn) isMutation()      {}
func (Success) isMutation()       {}
func (Error) isMutation()         {}

// State is the sign-up screen.
type State struct {
	User         user.User
	IsRefreshing bool
	IsLogged     bool
	IsDismissed  bool
	Errors       failure.Errors
}

// Reactor is the sign-up screen container.
type Reactor = reactor.Reactor[Action, Mutation, State]

// Reducer implements the sign-up screen.
type Reducer struct {
	env   screen.Env
	auth  AuthService
	prefs Preferences
}

// NewReducer creates the sign-up reducer.
func NewReducer(env screen.Env, auth AuthService, prefs Preferences) *Reducer {
	return &Reducer{env: env, auth: auth, prefs: prefs}
}

// New creates a running sign-up reactor.
func New(env screen.Env, auth AuthService, prefs Preferences) *Reactor {
	return reactor.New[Action, Mutation, State](State{}, NewReducer(env, auth, prefs), env.Options("signup")...)
}

// Mutate implements reactor.Reducer.
func (r *Reducer) Mutate(action Action, state State) reactor.Stream[Mutation] {
	switch a := action.(type) {
	case UpdateFirstName:
		return set(user.FirstName, a.FirstName)
	case ValidateFirstName:
		return r.validate(user.FirstName, state)
	case UpdateLastName:
		return set(user.LastName, a.LastName)
	case ValidateLastName:
		return r.validate(user.LastName, state)
	case UpdateEmail:
		return set(user.Email, a.Email)
	case ValidateEmail:
		return r.validate(user.Email, state)
	case UpdatePassword:
		return set(user.Password, a.Password)
	case ValidatePassword:
		return r.validate(user.Password, state)
	case SignUp:
		u := state.User
		return reactor.Refreshing(refreshing, reactor.Producer(func(ctx context.Context, emit reactor.Emit[Mutation]) {
			session, err := r.auth.SignUp(ctx, u)
			if err != nil {
				emit(Error{r.env.Capture(err)})
				return
			}
			if err := r.prefs.SetCookieExpire(session.TokenExpiresIn); err != nil {
				r.env.Log().Warn("failed to store cookie expiry", zap.Error(err))
			}
			if err := r.prefs.SetLogged(true); err != nil {
				emit(Error{r.env.Capture(err)})
				return
			}
			if emit(Success{LabelSignUp}) {
				emit(SignedUp{session.User})
			}
		}))
	case SignIn:
		return reactor.Just[Mutation](GoSignIn{})
	default:
		panic(fmt.Sprintf("signup: unhandled action %T", action))
	}
}

// Reduce implements reactor.Reducer.
func (r *Reducer) Reduce(state State, mutation Mutation) State {
	switch m := mutation.(type) {
	case SetField:
		switch m.Field {
		case user.FirstName:
			state.User.FirstName = m.Value
		case user.LastName:
			state.User.LastName = m.Value
		case user.Email:
			state.User.Email = m.Value
		case user.Password:
			state.User.Password = m.Value
		default:
			panic("signup: field not on form: " + string(m.Field))
		}
	case SetRefreshing:
		state.IsRefreshing = m.IsRefreshing
	case SignedUp:
		state.User = m.User
		state.IsLogged = true
		state.IsDismissed = true
	case GoSignIn:
		state.IsDismissed = true
	case Success:
		state.Errors = failure.Succeed(state.Errors, m.Label)
	case Error:
		if m.Info.IsAuth() {
			state.IsLogged = false
		}
		state.Errors = failure.Fail(state.Errors, m.Info)
	default:
		panic(fmt.Sprintf("signup: unhandled mutation %T", mutation))
	}
	return state
}

// Recover implements reactor.Recoverer.
func (r *Reducer) Recover(p any) Mutation {
	return Error{r.env.Panic(p)}
}

func (r *Reducer) validate(f user.Field, state State) reactor.Stream[Mutation] {
	return screen.Validate(r.env, f, state.User.Value(f), success, fail)
}

func set(f user.Field, v string) reactor.Stream[Mutation] {
	return reactor.Just[Mutation](SetField{Field: f, Value: v})
}

func success(label string) Mutation         { return Success{label} }
func fail(info *failure.ErrorInfo) Mutation { return Error{info} }
func refreshing(on bool) Mutation           { return SetRefreshing{on} }
