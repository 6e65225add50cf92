package preferences

import (
	"fmt"
	"strconv"
	"time"

	bolt "go.etcd.io/bbolt"
)

const bucketPreferences = "preferences"

const (
	keyLogged       = "isLogged"
	keyBackground   = "background"
	keyCookieExpire = "cookieExpire"
)

// Bolt persists preferences in a bbolt file.
type Bolt struct {
	db *bolt.DB
	v  values
}

// OpenBolt opens (or creates) the preferences file at path and loads it.
func OpenBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open preferences: %w", err)
	}

	b := &Bolt{db: db}
	b.v.background.Store(true)

	err = db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(bucketPreferences))
		if err != nil {
			return err
		}
		if v := bucket.Get([]byte(keyLogged)); v != nil {
			b.v.logged.Store(parseBool(v))
		}
		if v := bucket.Get([]byte(keyBackground)); v != nil {
			b.v.background.Store(parseBool(v))
		}
		if v := bucket.Get([]byte(keyCookieExpire)); v != nil {
			n, _ := strconv.ParseInt(string(v), 10, 64)
			b.v.cookieExpire.Store(n)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	return b, nil
}

// IsLogged reports whether a session is active.
func (b *Bolt) IsLogged() bool { return b.v.logged.Load() }

// SetLogged sets and persists the login flag.
func (b *Bolt) SetLogged(logged bool) error {
	b.v.logged.Store(logged)
	return b.put(keyLogged, strconv.FormatBool(logged))
}

// Background reports whether background refresh is enabled.
func (b *Bolt) Background() bool { return b.v.background.Load() }

// SetBackground sets and persists the background option.
func (b *Bolt) SetBackground(enabled bool) error {
	b.v.background.Store(enabled)
	return b.put(keyBackground, strconv.FormatBool(enabled))
}

// CookieExpire returns the session cookie expiry (unix seconds).
func (b *Bolt) CookieExpire() int64 { return b.v.cookieExpire.Load() }

// SetCookieExpire sets and persists the session cookie expiry.
func (b *Bolt) SetCookieExpire(unix int64) error {
	b.v.cookieExpire.Store(unix)
	return b.put(keyCookieExpire, strconv.FormatInt(unix, 10))
}

// Close closes the underlying file.
func (b *Bolt) Close() error {
	return b.db.Close()
}

func (b *Bolt) put(key, value string) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketPreferences)).Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("failed to write preference %s: %w", key, err)
	}
	return nil
}

func parseBool(v []byte) bool {
	b, _ := strconv.ParseBool(string(v))
	return b
}
