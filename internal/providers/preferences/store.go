package preferences

import (
	"sync/atomic"
)

// Store is the preferences service.
type Store interface {
	IsLogged() bool
	SetLogged(logged bool) error
	Background() bool
	SetBackground(enabled bool) error
	CookieExpire() int64
	SetCookieExpire(unix int64) error
	Close() error
}

// values is the in-memory cache shared by both stores.
type values struct {
	logged       atomic.Bool
	background   atomic.Bool
	cookieExpire atomic.Int64
}

// Memory keeps preferences in memory only.
type Memory struct {
	v values
}

// NewMemory creates an in-memory store. The background option starts enabled.
func NewMemory() *Memory {
	m := &Memory{}
	m.v.background.Store(true)
	return m
}

// IsLogged reports whether a session is active.
func (m *Memory) IsLogged() bool { return m.v.logged.Load() }

// SetLogged sets the login flag.
func (m *Memory) SetLogged(logged bool) error {
	m.v.logged.Store(logged)
	return nil
}

// Background reports whether background refresh is enabled.
func (m *Memory) Background() bool { return m.v.background.Load() }

// SetBackground sets the background option.
func (m *Memory) SetBackground(enabled bool) error {
	m.v.background.Store(enabled)
	return nil
}

// CookieExpire returns the session cookie expiry (unix seconds).
func (m *Memory) CookieExpire() int64 { return m.v.cookieExpire.Load() }

// SetCookieExpire stores the session cookie expiry.
func (m *Memory) SetCookieExpire(unix int64) error {
	m.v.cookieExpire.Store(unix)
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }

var (
	_ Store = (*Memory)(nil)
	_ Store = (*Bolt)(nil)
)
