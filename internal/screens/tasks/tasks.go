// Package tasks is the task list screen reactor.
package tasks

import (
	"context"
	"fmt"

	"github.com/weareopensource/waos-go/internal/domain/task"
	"github.com/weareopensource/waos-go/internal/reactor"
	"github.com/weareopensource/waos-go/internal/screens/screen"
	"github.com/weareopensource/waos-go/internal/shared/failure"
)

// Success labels.
const (
	LabelTasks   = "tasks"
	LabelDeleted = "task deleted"
)

// Service lists and deletes tasks.
type Service interface {
	ListTasks(ctx context.Context) ([]task.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// Action is a user intent on the task list.
type Action interface{ isAction() }

type (
	Refresh struct{}
	Delete  struct{ ID string }
)

func (Refresh) isAction() {}
func (Delete) isAction()  {}

// Mutation is a state change of the task list.
type Mutation interface{ isMutation() }

type (
	SetTasks      struct{ Tasks []task.Task }
	RemoveTask    struct{ ID string }
	SetRefreshing struct{ IsRefreshing bool }
	Success       struct{ Label string }
	Error         struct{ Info *failure.ErrorInfo }
)

func (SetTasks) isMutation()      {}
func (RemoveTask) isMutation()    {}
func (SetRefreshing) isMutation() {}
func (Success) isMutation()       {}
func (Error) isMutation()         {}

// State is the task list.
type State struct {
	Tasks        []task.Task
	IsRefreshing bool
	Errors       failure.Errors
}

// Reactor is the task list container.
type Reactor = reactor.Reactor[Action, Mutation, State]

// Reducer implements the task list.
type Reducer struct {
	env     screen.Env
	service Service
}

// NewReducer creates the task list reducer.
func NewReducer(env screen.Env, service Service) *Reducer {
	return &Reducer{env: env, service: service}
}

// New creates a running task list reactor.
func New(env screen.Env, service Service) *Reactor {
	return reactor.New[Action, Mutation, State](State{}, NewReducer(env, service), env.Options("tasks")...)
}

// Mutate implements reactor.Reducer.
func (r *Reducer) Mutate(action Action, _ State) reactor.Stream[Mutation] {
	switch a := action.(type) {
	case Refresh:
		return reactor.Refreshing(refreshing, reactor.Producer(func(ctx context.Context, emit reactor.Emit[Mutation]) {
			list, err := r.service.ListTasks(ctx)
			if err != nil {
				emit(Error{r.env.Capture(err)})
				return
			}
			if emit(SetTasks{list}) {
				emit(Success{LabelTasks})
			}
		}))
	case Delete:
		id := a.ID
		return reactor.Refreshing(refreshing, reactor.Producer(func(ctx context.Context, emit reactor.Emit[Mutation]) {
			if err := r.service.DeleteTask(ctx, id); err != nil {
				emit(Error{r.env.Capture(err)})
				return
			}
			if emit(RemoveTask{id}) {
				emit(Success{LabelDeleted})
			}
		}))
	default:
		panic(fmt.Sprintf("tasks: unhandled action %T", action))
	}
}

// Reduce implements reactor.Reducer.
func (r *Reducer) Reduce(state State, mutation Mutation) State {
	switch m := mutation.(type) {
	case SetTasks:
		state.Tasks = append([]task.Task(nil), m.Tasks...)
	case RemoveTask:
		state.Tasks = task.Without(state.Tasks, m.ID)
	case SetRefreshing:
		state.IsRefreshing = m.IsRefreshing
	case Success:
		state.Errors = failure.Succeed(state.Errors, m.Label)
	case Error:
		state.Errors = failure.Fail(state.Errors, m.Info)
	default:
		panic(fmt.Sprintf("tasks: unhandled mutation %T", mutation))
	}
	return state
}

// Recover implements reactor.Recoverer.
func (r *Reducer) Recover(p any) Mutation {
	return Error{r.env.Panic(p)}
}

func refreshing(on bool) Mutation { return SetRefreshing{on} }
