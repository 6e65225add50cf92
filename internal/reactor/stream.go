package reactor

import "context"

// Emit delivers one mutation. It returns false once the reactor is disposed;
// producers should stop when it does.
type Emit[M any] func(M) bool

type segment[M any] struct {
	values []M
	run    func(ctx context.Context, emit Emit[M])
}

// Stream is a finite, time-ordered sequence of mutations produced for one action.
type Stream[M any] struct {
	segments []segment[M]
}

// Empty returns a stream with no mutations.
func Empty[M any]() Stream[M] {
	return Stream[M]{}
}

// Just returns a stream of immediate values.
func Just[M any](values ...M) Stream[M] {
	if len(values) == 0 {
		return Stream[M]{}
	}
	return Stream[M]{segments: []segment[M]{{values: values}}}
}

// Producer returns a stream driven by fn on an effect goroutine.
func Producer[M any](fn func(ctx context.Context, emit Emit[M])) Stream[M] {
	return Stream[M]{segments: []segment[M]{{run: fn}}}
}

// Effect returns a stream holding the single result of fn.
func Effect[M any](fn func(ctx context.Context) M) Stream[M] {
	return Producer(func(ctx context.Context, emit Emit[M]) {
		m := fn(ctx)
		if ctx.Err() != nil {
			return
		}
		emit(m)
	})
}

// Concat chains streams: each one starts after the previous has finished.
func Concat[M any](streams ...Stream[M]) Stream[M] {
	var out Stream[M]
	for _, s := range streams {
		out.segments = append(out.segments, s.segments...)
	}
	return out
}

// Refreshing brackets s with set(true) and set(false). The closing value is
// emitted whether s completes, fails or panics, unless the reactor is gone.
func Refreshing[M any](set func(bool) M, s Stream[M]) Stream[M] {
	return Concat(
		Just(set(true)),
		Producer(func(ctx context.Context, emit Emit[M]) {
			defer emit(set(false))
			s.run(ctx, emit)
		}),
	)
}

// IsEmpty reports whether the stream has nothing to emit.
func (s Stream[M]) IsEmpty() bool {
	for _, seg := range s.segments {
		if seg.run != nil || len(seg.values) > 0 {
			return false
		}
	}
	return true
}

// split separates the leading immediate values from the rest.
func (s Stream[M]) split() ([]M, Stream[M]) {
	var now []M
	for i, seg := range s.segments {
		if seg.run != nil {
			return now, Stream[M]{segments: s.segments[i:]}
		}
		now = append(now, seg.values...)
	}
	return now, Stream[M]{}
}

func (s Stream[M]) run(ctx context.Context, emit Emit[M]) {
	for _, seg := range s.segments {
		if ctx.Err() != nil {
			return
		}
		if seg.run != nil {
			seg.run(ctx, emit)
			continue
		}
		for _, v := range seg.values {
			if !emit(v) {
				return
			}
		}
	}
}

// Collect runs s to completion on the calling goroutine and returns what it
// emitted. Useful to test Mutate in isolation.
func Collect[M any](ctx context.Context, s Stream[M]) []M {
	var out []M
	s.run(ctx, func(m M) bool {
		if ctx.Err() != nil {
			return false
		}
		out = append(out, m)
		return true
	})
	return out
}
