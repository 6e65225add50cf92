package monitoring

import "time"

// Timer measures one API call
type Timer struct {
	metrics *Metrics
	method  string
	path    string
	start   time.Time
}

// NewTimer starts a timer for an API call. A nil metrics yields a no-op timer.
func NewTimer(metrics *Metrics, method, path string) *Timer {
	return &Timer{
		metrics: metrics,
		method:  method,
		path:    path,
		start:   time.Now(),
	}
}

// Stop records the call with its final status
func (t *Timer) Stop(status string) time.Duration {
	d := time.Since(t.start)
	if t.metrics != nil {
		t.metrics.RecordAPICall(t.method, t.path, status, d)
	}
	return d
}
