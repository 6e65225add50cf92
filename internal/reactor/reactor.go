package reactor

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/weareopensource/waos-go/internal/infrastructure/logging"
)

// ErrDisposed is returned by Settle once the reactor has been disposed.
var ErrDisposed = errors.New("reactor disposed")

// Reducer is the per-screen configuration of a Reactor.
//
// Mutate maps an action and the current state to a stream of mutations. It
// runs on the reactor loop and must not block; suspending work goes in
// Effect or Producer segments.
//
// Reduce folds one mutation into the state. It must be pure and handle every
// mutation variant.
type Reducer[A, M, S any] interface {
	Mutate(action A, state S) Stream[M]
	Reduce(state S, mutation M) S
}

// Recoverer is implemented by reducers that turn an effect panic into a
// mutation, typically an error.
type Recoverer[M any] interface {
	Recover(p any) M
}

// Recorder receives reactor metrics.
type Recorder interface {
	RecordAction(reactor, action string)
	RecordMutation(reactor, mutation string)
	EffectStarted(reactor string)
	EffectFinished(reactor string, duration time.Duration)
	RecordPanic(reactor string)
	ReactorStarted()
	ReactorDisposed()
}

type options struct {
	name     string
	logger   *logging.Logger
	recorder Recorder
}

// Option configures a Reactor.
type Option func(*options)

// WithName sets the name used in logs and metrics.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorder = r
		}
	}
}

type envelope[M any] struct {
	mutation M
	done     bool
}

// Reactor is a state container for one screen.
type Reactor[A, M, S any] struct {
	id       string
	name     string
	reducer  Reducer[A, M, S]
	logger   *logging.Logger
	recorder Recorder

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	actions   *queue[A]
	mutations chan envelope[M]
	settle    chan chan struct{}

	// loop goroutine only
	inflight int
	waiters  []chan struct{}

	mu       sync.RWMutex
	state    S
	subs     map[*Subscription[S]]struct{}
	disposed bool
}

// New creates a reactor with its initial state and starts its loop.
func New[A, M, S any](initial S, reducer Reducer[A, M, S], opts ...Option) *Reactor[A, M, S] {
	o := options{
		name:     "reactor",
		logger:   logging.NewNop(),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	ctx, cancel := context.WithCancel(context.Background())
	id := uuid.NewString()

	r := &Reactor[A, M, S]{
		id:        id,
		name:      o.name,
		reducer:   reducer,
		logger:    o.logger.Reactor(o.name, id),
		recorder:  o.recorder,
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
		actions:   newQueue[A](),
		mutations: make(chan envelope[M]),
		settle:    make(chan chan struct{}),
		state:     initial,
		subs:      make(map[*Subscription[S]]struct{}),
	}

	r.recorder.ReactorStarted()
	go r.loop()
	return r
}

// ID returns the reactor instance id.
func (r *Reactor[A, M, S]) ID() string {
	return r.id
}

// Name returns the reactor name.
func (r *Reactor[A, M, S]) Name() string {
	return r.name
}

// Dispatch enqueues an action. It never blocks. Actions sent after Dispose
// are dropped.
func (r *Reactor[A, M, S]) Dispatch(action A) {
	if r.ctx.Err() != nil {
		r.logger.Debug("action dropped after dispose", zap.String("action", typeName(action)))
		return
	}
	r.actions.push(action)
}

// CurrentState returns the latest folded state.
func (r *Reactor[A, M, S]) CurrentState() S {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Observe subscribes to state snapshots, starting with the current one. On a
// disposed reactor the returned subscription is already closed.
func (r *Reactor[A, M, S]) Observe() *Subscription[S] {
	r.mu.Lock()
	defer r.mu.Unlock()

	var sub *Subscription[S]
	sub = newSubscription[S](func() {
		r.mu.Lock()
		delete(r.subs, sub)
		r.mu.Unlock()
	})

	if r.disposed {
		sub.end()
		return sub
	}

	sub.push(r.state)
	r.subs[sub] = struct{}{}
	return sub
}

// Settle blocks until no action is queued and no effect is in flight.
func (r *Reactor[A, M, S]) Settle(ctx context.Context) error {
	w := make(chan struct{})
	select {
	case r.settle <- w:
	case <-ctx.Done():
		return ctx.Err()
	case <-r.done:
		return ErrDisposed
	}

	select {
	case <-w:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-r.done:
		return ErrDisposed
	}
}

// Dispose cancels pending effects and closes every subscription. It is safe
// to call more than once and from any goroutine.
func (r *Reactor[A, M, S]) Dispose() {
	r.cancel()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.disposed {
		return
	}
	r.disposed = true
	for sub := range r.subs {
		sub.end()
	}
	r.subs = nil
}

// Done is closed when the reactor loop has exited.
func (r *Reactor[A, M, S]) Done() <-chan struct{} {
	return r.done
}

func (r *Reactor[A, M, S]) loop() {
	defer func() {
		r.recorder.ReactorDisposed()
		close(r.done)
		r.logger.Debug("reactor stopped")
	}()

	for {
		select {
		case <-r.ctx.Done():
			return

		case <-r.actions.ready:
			for r.ctx.Err() == nil {
				action, ok := r.actions.pop()
				if !ok {
					break
				}
				r.handle(action)
			}

		case env := <-r.mutations:
			if env.done {
				r.inflight--
			} else {
				r.apply(env.mutation)
			}

		case w := <-r.settle:
			r.waiters = append(r.waiters, w)
		}

		if r.ctx.Err() != nil {
			return
		}
		r.notifySettled()
	}
}

func (r *Reactor[A, M, S]) handle(action A) {
	label := typeName(action)
	r.recorder.RecordAction(r.name, label)
	r.logger.Debug("action -> mutation", zap.String("action", label))

	now, rest := r.reducer.Mutate(action, r.state).split()
	for _, m := range now {
		r.apply(m)
	}
	if !rest.IsEmpty() {
		r.spawn(rest)
	}
}

func (r *Reactor[A, M, S]) apply(m M) {
	label := typeName(m)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.disposed {
		return
	}

	r.state = r.reducer.Reduce(r.state, m)
	for sub := range r.subs {
		sub.push(r.state)
	}

	r.recorder.RecordMutation(r.name, label)
	r.logger.Debug("mutation -> state", zap.String("mutation", label))
}

func (r *Reactor[A, M, S]) spawn(s Stream[M]) {
	r.inflight++
	r.recorder.EffectStarted(r.name)

	go func() {
		start := time.Now()
		defer func() {
			if p := recover(); p != nil {
				r.recorder.RecordPanic(r.name)
				r.logger.Error("effect panicked", zap.String("panic", fmt.Sprint(p)))
				if rec, ok := r.reducer.(Recoverer[M]); ok {
					r.emit(rec.Recover(p))
				}
			}
			r.recorder.EffectFinished(r.name, time.Since(start))
			select {
			case r.mutations <- envelope[M]{done: true}:
			case <-r.ctx.Done():
			}
		}()

		s.run(r.ctx, r.emit)
	}()
}

func (r *Reactor[A, M, S]) emit(m M) bool {
	select {
	case r.mutations <- envelope[M]{mutation: m}:
		return true
	case <-r.ctx.Done():
		return false
	}
}

func (r *Reactor[A, M, S]) notifySettled() {
	if len(r.waiters) == 0 || r.inflight > 0 || r.actions.len() > 0 {
		return
	}
	for _, w := range r.waiters {
		close(w)
	}
	r.waiters = nil
}

func typeName(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return "nil"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

type nopRecorder struct{}

func (nopRecorder) RecordAction(string, string)          {}
func (nopRecorder) RecordMutation(string, string)        {}
func (nopRecorder) EffectStarted(string)                 {}
func (nopRecorder) EffectFinished(string, time.Duration) {}
func (nopRecorder) RecordPanic(string)                   {}
func (nopRecorder) ReactorStarted()                      {}
func (nopRecorder) ReactorDisposed()                     {}
