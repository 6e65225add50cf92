// Package screen holds what the screen reactors share: their environment and
// the field validation step.
package screen

import (
	"fmt"

	"github.com/weareopensource/waos-go/internal/domain/user"
	"github.com/weareopensource/waos-go/internal/infrastructure/logging"
	"github.com/weareopensource/waos-go/internal/reactor"
	"github.com/weareopensource/waos-go/internal/shared/failure"
)

// Env carries the collaborators every screen reactor is built with.
type Env struct {
	Policy   *failure.Policy
	Logger   *logging.Logger
	Recorder reactor.Recorder
}

// Options returns the reactor options for a screen named name.
func (e Env) Options(name string) []reactor.Option {
	opts := []reactor.Option{reactor.WithName(name), reactor.WithLogger(e.Logger)}
	if e.Recorder != nil {
		opts = append(opts, reactor.WithRecorder(e.Recorder))
	}
	return opts
}

// Capture normalizes an effect error through the policy.
func (e Env) Capture(err error) *failure.ErrorInfo {
	if e.Policy == nil {
		return failure.From(err)
	}
	return e.Policy.Capture(err)
}

// Log returns the screen logger, never nil.
func (e Env) Log() *logging.Logger {
	if e.Logger == nil {
		return logging.NewNop()
	}
	return e.Logger
}

// Panic converts a recovered effect panic into an error.
func (e Env) Panic(p any) *failure.ErrorInfo {
	return e.Capture(failure.Unknown(fmt.Errorf("effect panic: %v", p)))
}

// Validate checks value for field f and yields success(f) or the first
// validation error.
func Validate[M any](e Env, f user.Field, value string, success func(string) M, fail func(*failure.ErrorInfo) M) reactor.Stream[M] {
	res := user.Validate(f, value)
	if res.Valid() {
		return reactor.Just(success(string(f)))
	}
	return reactor.Just(fail(e.Capture(res.First())))
}
