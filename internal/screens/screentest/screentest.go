// Package screentest provides helpers for screen reactor tests.
package screentest

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/weareopensource/waos-go/internal/infrastructure/logging"
	"github.com/weareopensource/waos-go/internal/infrastructure/monitoring"
	"github.com/weareopensource/waos-go/internal/screens/screen"
	"github.com/weareopensource/waos-go/internal/shared/failure"
)

// Timeout bounds every wait in screen tests.
const Timeout = 2 * time.Second

// Env returns a screen environment whose policy clears session on 401.
func Env(t testing.TB, session failure.Session) (screen.Env, *monitoring.Metrics) {
	t.Helper()
	metrics := monitoring.NewMetrics(prometheus.NewRegistry())
	logger := logging.NewNop()
	return screen.Env{
		Policy:   failure.NewPolicy(session, failure.WithRecorder(metrics), failure.WithLogger(logger)),
		Logger:   logger,
		Recorder: metrics,
	}, metrics
}

// Settle waits until r has no queued action and no running effect.
func Settle(t testing.TB, r interface{ Settle(context.Context) error }) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), Timeout)
	defer cancel()
	require.NoError(t, r.Settle(ctx))
}

// Take reads n values from c.
func Take[T any](t testing.TB, c <-chan T, n int) []T {
	t.Helper()
	out := make([]T, 0, n)
	timeout := time.After(Timeout)
	for len(out) < n {
		select {
		case v, ok := <-c:
			if !ok {
				t.Fatalf("channel closed after %d of %d values", len(out), n)
			}
			out = append(out, v)
		case <-timeout:
			t.Fatalf("timed out after %d of %d values", len(out), n)
		}
	}
	return out
}

// Quiet fails if c yields a value within d.
func Quiet[T any](t testing.TB, c <-chan T, d time.Duration) {
	t.Helper()
	select {
	case v, ok := <-c:
		if ok {
			t.Fatalf("unexpected value %v", v)
		}
	case <-time.After(d):
	}
}
