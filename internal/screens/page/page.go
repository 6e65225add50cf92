// Package page is the markdown page screen reactor: it fetches a markdown
// document and renders it to an HTML page for a web view.
package page

import (
	"context"
	"fmt"

	"github.com/weareopensource/waos-go/internal/reactor"
	"github.com/weareopensource/waos-go/internal/screens/screen"
	"github.com/weareopensource/waos-go/internal/shared/failure"
	"github.com/weareopensource/waos-go/internal/shared/markdown"
)

// LabelPage is folded after a page was loaded.
const LabelPage = "page"

// Service fetches raw markdown.
type Service interface {
	Page(ctx context.Context, url string) (string, error)
}

// Renderer turns markdown into an HTML page.
type Renderer interface {
	Render(md string, opts markdown.Options) (string, error)
}

// Action is a user intent on a page.
type Action interface{ isAction() }

// Get loads the page.
type Get struct{}

func (Get) isAction() {}

// Mutation is a state change of a page.
type Mutation interface{ isMutation() }

type (
	SetPage struct {
		Markdown string
		HTML     string
	}
	SetRefreshing struct{ IsRefreshing bool }
	Success       struct{ Label string }
	Error         struct{ Info *failure.ErrorInfo }
)

func (SetPage) isMutation()       {}
func (SetRefreshing) isMutation() {}
func (Success) isMutation()       {}
func (Error) isMutation()         {}

// State is a page.
type State struct {
	URL          string
	Markdown     string
	HTML         string
	IsRefreshing bool
	Errors       failure.Errors
}

// Reactor is the page container.
type Reactor = reactor.Reactor[Action, Mutation, State]

// Reducer implements the page screen.
type Reducer struct {
	env      screen.Env
	service  Service
	renderer Renderer
	opts     markdown.Options
}

// NewReducer creates a page reducer rendering with opts.
func NewReducer(env screen.Env, service Service, renderer Renderer, opts markdown.Options) *Reducer {
	return &Reducer{env: env, service: service, renderer: renderer, opts: opts}
}

// New creates a running reactor for the page at url.
func New(env screen.Env, service Service, renderer Renderer, url string, opts markdown.Options) *Reactor {
	red := NewReducer(env, service, renderer, opts)
	return reactor.New[Action, Mutation, State](State{URL: url}, red, env.Options("page")...)
}

// Mutate implements reactor.Reducer.
func (r *Reducer) Mutate(action Action, state State) reactor.Stream[Mutation] {
	switch action.(type) {
	case Get:
		url := state.URL
		return reactor.Refreshing(refreshing, reactor.Producer(func(ctx context.Context, emit reactor.Emit[Mutation]) {
			md, err := r.service.Page(ctx, url)
			if err != nil {
				emit(Error{r.env.Capture(err)})
				return
			}
			html, err := r.renderer.Render(md, r.opts)
			if err != nil {
				emit(Error{r.env.Capture(fmt.Errorf("render %s: %w", url, err))})
				return
			}
			if emit(SetPage{Markdown: md, HTML: html}) {
				emit(Success{LabelPage})
			}
		}))
	default:
		panic(fmt.Sprintf("page: unhandled action %T", action))
	}
}

// Reduce implements reactor.Reducer.
func (r *Reducer) Reduce(state State, mutation Mutation) State {
	switch m := mutation.(type) {
	case SetPage:
		state.Markdown = m.Markdown
		state.HTML = m.HTML
	case SetRefreshing:
		state.IsRefreshing = m.IsRefreshing
	case Success:
		state.Errors = failure.Succeed(state.Errors, m.Label)
	case Error:
		state.Errors = failure.Fail(state.Errors, m.Info)
	default:
		panic(fmt.Sprintf("page: unhandled mutation %T", mutation))
	}
	return state
}

// Recover implements reactor.Recoverer.
func (r *Reducer) Recover(p any) Mutation {
	return Error{r.env.Panic(p)}
}

func refreshing(on bool) Mutation { return SetRefreshing{on} }
