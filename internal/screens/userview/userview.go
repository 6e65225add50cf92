// Package userview is the profile edition screen reactor.
package userview

import (
	"context"
	"fmt"

	"github.com/weareopensource/waos-go/internal/domain/user"
	"github.com/weareopensource/waos-go/internal/reactor"
	"github.com/weareopensource/waos-go/internal/screens/screen"
	"github.com/weareopensource/waos-go/internal/shared/failure"
)

// Success labels of the avatar operations.
const (
	LabelAvatarUpdated = "avatar updated"
	LabelAvatarDeleted = "avatar deleted"
)

// UserService edits the signed-in account.
type UserService interface {
	Update(ctx context.Context, u user.User) (user.User, error)
	UpdateAvatar(ctx context.Context, data []byte, part, name, mime string) (user.User, error)
	DeleteAvatar(ctx context.Context) (user.User, error)
}

// Action is a user intent on the profile screen.
type Action interface{ isAction() }

type (
	UpdateFirstName   struct{ FirstName string }
	ValidateFirstName struct{}
	UpdateLastName    struct{ LastName string }
	ValidateLastName  struct{}
	UpdateEmail       struct{ Email string }
	ValidateEmail     struct{}
	UpdateBio         struct{ Bio string }
	ValidateBio       struct{}
	UpdateAvatar      struct{ Data []byte }
	DeleteAvatar      struct{}
	Done              struct{}
)

func (UpdateFirstName) isAction()   {}
func (ValidateFirstName) isAction() {}
func (UpdateLastName) isAction()    {}
func (ValidateLastName) isAction()  {}
func (UpdateEmail) isAction()       {}
func (ValidateEmail) isAction()     {}
func (UpdateBio) isAction()         {}
func (ValidateBio) isAction()       {}
func (UpdateAvatar) isAction()      {}
func (DeleteAvatar) isAction()      {}
func (Done) isAction()              {}

// Mutation is a state change of the profile screen.
type Mutation interface{ isMutation() }

type (
	SetFirstName  struct{ FirstName string }
	SetLastName   struct{ LastName string }
	SetEmail      struct{ Email string }
	SetBio        struct{ Bio string }
	SetAvatar     struct{ Avatar string }
	SetRefreshing struct{ IsRefreshing bool }
	Dismiss       struct{}
	Success       struct{ Label string }
	Error         struct{ Info *failure.ErrorInfo }
)

func (SetFirstName) isMutation()  {}
func (SetLastName) isMutation()   {}
func (SetEmail) isMutation()      {}
func (SetBio) isMutation()        {}
func (SetAvatar) isMutation()     {}
func (SetRefreshing) isMutation() {}
func (Dismiss) isMutation()       {}
func (Success) isMutation()       {}
func (Error) isMutation()         {}

// State is the profile screen.
type State struct {
	User         user.User
	IsDismissed  bool
	IsRefreshing bool
	Errors       failure.Errors
}

// Reactor is the profile screen container.
type Reactor = reactor.Reactor[Action, Mutation, State]

// Reducer implements the profile screen.
type Reducer struct {
	env   screen.Env
	users UserService
}

// NewReducer creates the profile reducer.
func NewReducer(env screen.Env, users UserService) *Reducer {
	return &Reducer{env: env, users: users}
}

// New creates a running profile reactor editing u.
func New(env screen.Env, users UserService, u user.User) *Reactor {
	return reactor.New[Action, Mutation, State](State{User: u}, NewReducer(env, users), env.Options("userview")...)
}

// Mutate implements reactor.Reducer.
func (r *Reducer) Mutate(action Action, state State) reactor.Stream[Mutation] {
	switch a := action.(type) {
	case UpdateFirstName:
		return reactor.Just[Mutation](SetFirstName{a.FirstName})
	case ValidateFirstName:
		return r.validate(user.FirstName, state)
	case UpdateLastName:
		return reactor.Just[Mutation](SetLastName{a.LastName})
	case ValidateLastName:
		return r.validate(user.LastName, state)
	case UpdateEmail:
		return reactor.Just[Mutation](SetEmail{a.Email})
	case ValidateEmail:
		return r.validate(user.Email, state)
	case UpdateBio:
		return reactor.Just[Mutation](SetBio{a.Bio})
	case ValidateBio:
		return r.validate(user.Bio, state)
	case UpdateAvatar:
		data := a.Data
		return reactor.Refreshing(refreshing, r.avatar(LabelAvatarUpdated, func(ctx context.Context) (user.User, error) {
			name, mime := user.AvatarFile(data)
			return r.users.UpdateAvatar(ctx, data, user.AvatarPart, name, mime)
		}))
	case DeleteAvatar:
		return reactor.Refreshing(refreshing, r.avatar(LabelAvatarDeleted, r.users.DeleteAvatar))
	case Done:
		u := state.User
		return reactor.Effect(func(ctx context.Context) Mutation {
			if _, err := r.users.Update(ctx, u); err != nil {
				return Error{r.env.Capture(err)}
			}
			return Dismiss{}
		})
	default:
		panic(fmt.Sprintf("userview: unhandled action %T", action))
	}
}

// Reduce implements reactor.Reducer.
func (r *Reducer) Reduce(state State, mutation Mutation) State {
	switch m := mutation.(type) {
	case SetFirstName:
		state.User.FirstName = m.FirstName
	case SetLastName:
		state.User.LastName = m.LastName
	case SetEmail:
		state.User.Email = m.Email
	case SetBio:
		state.User.Bio = m.Bio
	case SetAvatar:
		state.User.Avatar = m.Avatar
	case SetRefreshing:
		state.IsRefreshing = m.IsRefreshing
	case Dismiss:
		state.IsDismissed = true
		state.Errors = failure.Errors{}
	case Success:
		state.Errors = failure.Succeed(state.Errors, m.Label)
	case Error:
		state.Errors = failure.Fail(state.Errors, m.Info)
	default:
		panic(fmt.Sprintf("userview: unhandled mutation %T", mutation))
	}
	return state
}

// Recover implements reactor.Recoverer.
func (r *Reducer) Recover(p any) Mutation {
	return Error{r.env.Panic(p)}
}

// avatar runs an avatar call and reports the new avatar then label.
func (r *Reducer) avatar(label string, call func(context.Context) (user.User, error)) reactor.Stream[Mutation] {
	return reactor.Producer(func(ctx context.Context, emit reactor.Emit[Mutation]) {
		u, err := call(ctx)
		if err != nil {
			emit(Error{r.env.Capture(err)})
			return
		}
		if emit(SetAvatar{u.Avatar}) {
			emit(Success{label})
		}
	})
}

func (r *Reducer) validate(f user.Field, state State) reactor.Stream[Mutation] {
	return screen.Validate(r.env, f, state.User.Value(f), success, fail)
}

func success(label string) Mutation         { return Success{label} }
func fail(info *failure.ErrorInfo) Mutation { return Error{info} }
func refreshing(on bool) Mutation           { return SetRefreshing{on} }
