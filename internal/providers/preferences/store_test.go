package preferences

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, s Store) {
	t.Helper()

	assert.False(t, s.IsLogged())
	assert.True(t, s.Background())
	assert.Zero(t, s.CookieExpire())

	require.NoError(t, s.SetLogged(true))
	require.NoError(t, s.SetBackground(false))
	require.NoError(t, s.SetCookieExpire(1700000000))

	assert.True(t, s.IsLogged())
	assert.False(t, s.Background())
	assert.Equal(t, int64(1700000000), s.CookieExpire())
}

func TestMemory(t *testing.T) {
	s := NewMemory()
	testStore(t, s)
	assert.NoError(t, s.Close())
}

func TestBolt(t *testing.T) {
	s, err := OpenBolt(filepath.Join(t.TempDir(), "prefs.db"))
	require.NoError(t, err)
	defer s.Close()

	testStore(t, s)
}

func TestBoltPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")

	s, err := OpenBolt(path)
	require.NoError(t, err)
	require.NoError(t, s.SetLogged(true))
	require.NoError(t, s.SetBackground(false))
	require.NoError(t, s.SetCookieExpire(42))
	require.NoError(t, s.Close())

	s, err = OpenBolt(path)
	require.NoError(t, err)
	defer s.Close()

	assert.True(t, s.IsLogged())
	assert.False(t, s.Background())
	assert.Equal(t, int64(42), s.CookieExpire())
}

func TestBoltOpenFailure(t *testing.T) {
	_, err := OpenBolt(filepath.Join(t.TempDir(), "missing", "prefs.db"))
	assert.Error(t, err)
}

func TestConcurrentAccess(t *testing.T) {
	s, err := OpenBolt(filepath.Join(t.TempDir(), "prefs.db"))
	require.NoError(t, err)
	defer s.Close()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.SetLogged(i%2 == 0)
			_ = s.IsLogged()
		}(i)
	}
	wg.Wait()
}
