package reactor

import "sync"

// Subscription is a live, lossless feed of state snapshots. The first value
// is the state at subscription time. The channel is closed by Close or when
// the reactor is disposed.
type Subscription[S any] struct {
	c      chan S
	signal chan struct{}
	stop   chan struct{}
	once   sync.Once
	detach func()

	mu  sync.Mutex
	buf []S
}

func newSubscription[S any](detach func()) *Subscription[S] {
	s := &Subscription[S]{
		c:      make(chan S),
		signal: make(chan struct{}, 1),
		stop:   make(chan struct{}),
		detach: detach,
	}
	go s.pump()
	return s
}

// C returns the snapshot channel.
func (s *Subscription[S]) C() <-chan S {
	return s.c
}

// Close stops delivery and releases the subscription.
func (s *Subscription[S]) Close() {
	s.end()
	if s.detach != nil {
		s.detach()
	}
}

func (s *Subscription[S]) end() {
	s.once.Do(func() { close(s.stop) })
}

func (s *Subscription[S]) push(v S) {
	s.mu.Lock()
	s.buf = append(s.buf, v)
	s.mu.Unlock()

	select {
	case s.signal <- struct{}{}:
	default:
	}
}

func (s *Subscription[S]) next() (S, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero S
	if len(s.buf) == 0 {
		return zero, false
	}
	v := s.buf[0]
	s.buf[0] = zero
	s.buf = s.buf[1:]
	return v, true
}

func (s *Subscription[S]) pump() {
	defer close(s.c)
	for {
		select {
		case <-s.stop:
			return
		case <-s.signal:
		}

		for {
			v, ok := s.next()
			if !ok {
				break
			}
			select {
			case s.c <- v:
			case <-s.stop:
				return
			}
		}
	}
}

// Select projects a subscription through fn and drops consecutive duplicates.
// The returned channel closes with the subscription.
func Select[S any, T comparable](sub *Subscription[S], fn func(S) T) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		var last T
		first := true
		for s := range sub.C() {
			v := fn(s)
			if !first && v == last {
				continue
			}
			first = false
			last = v
			select {
			case out <- v:
			case <-sub.stop:
				return
			}
		}
	}()
	return out
}
