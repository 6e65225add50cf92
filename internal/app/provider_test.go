package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weareopensource/waos-go/internal/infrastructure/config"
	"github.com/weareopensource/waos-go/internal/screens/page"
	"github.com/weareopensource/waos-go/internal/screens/screentest"
	"github.com/weareopensource/waos-go/internal/screens/signin"
	"github.com/weareopensource/waos-go/internal/screens/tasks"
	"github.com/weareopensource/waos-go/internal/shared/failure"
)

func testConfig(t *testing.T, apiURL string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.API.URL = apiURL
	cfg.API.Retries = 0
	cfg.API.Timeout = 2 * time.Second
	cfg.Preferences.Path = filepath.Join(t.TempDir(), "prefs.db")

	theme := filepath.Join(t.TempDir(), "theme.yml")
	require.NoError(t, os.WriteFile(theme, []byte("theme:\n  themes:\n    waos:\n      background: \"#F2F2F7\"\n"), 0o600))
	cfg.Pages.ThemeFile = theme
	return cfg
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestSignInRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/signin":
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["password"] != "secret123" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "auth", "description": "bad"})
				return
			}
			http.SetCookie(w, &http.Cookie{Name: "TOKEN", Value: "tok", Path: "/"})
			writeJSON(w, http.StatusOK, map[string]any{"user": map[string]string{"id": "u1"}, "tokenExpiresIn": 99})
		case "/api/tasks":
			if _, err := r.Cookie("TOKEN"); err != nil {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "jwt"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"data": []map[string]string{{"id": "t1", "title": "first"}}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	p, err := New(testConfig(t, srv.URL+"/api"))
	require.NoError(t, err)
	defer p.Close()
	require.NotNil(t, p.Tracer)

	list := p.Tasks()
	list.Dispatch(tasks.Refresh{})
	screentest.Settle(t, list)
	assert.Equal(t, []string{failure.TitleAuth}, list.CurrentState().Errors.Titles())

	r := p.SignIn()
	r.Dispatch(signin.UpdateEmail{Email: "ada@waos.me"})
	r.Dispatch(signin.UpdatePassword{Password: "wrong-pass"})
	r.Dispatch(signin.SignIn{})
	screentest.Settle(t, r)
	assert.Equal(t, failure.TitleAuth, r.CurrentState().Errors[0].Title)
	assert.False(t, p.Prefs.IsLogged())

	r.Dispatch(signin.UpdatePassword{Password: "secret123"})
	r.Dispatch(signin.SignIn{})
	screentest.Settle(t, r)
	assert.Empty(t, r.CurrentState().Errors)
	assert.True(t, r.CurrentState().IsLogged)
	assert.True(t, p.Prefs.IsLogged())
	assert.Equal(t, int64(99), p.Prefs.CookieExpire())

	list.Dispatch(tasks.Refresh{})
	screentest.Settle(t, list)
	assert.Empty(t, list.CurrentState().Errors)
	assert.Len(t, list.CurrentState().Tasks, 1)

	assert.Equal(t, 2, p.Screens.Count())
	assert.Positive(t, p.Metrics.Snapshot().APICalls)
}

func TestPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("# Terms\n\nSee [site](https://waos.me)."))
	}))
	defer srv.Close()

	cfg := testConfig(t, "http://api.invalid")
	cfg.Pages.BaseURL = srv.URL + "/docs/"
	cfg.Pages.Style = "classic"
	p, err := New(cfg)
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, srv.URL+"/docs/TERMS.md", p.PageURL("TERMS.md"))
	assert.Equal(t, "https://x.y/a.md", p.PageURL("https://x.y/a.md"))

	r := p.Page("TERMS.md", true)
	r.Dispatch(page.Get{})
	screentest.Settle(t, r)

	state := r.CurrentState()
	assert.Empty(t, state.Errors)
	assert.Contains(t, state.HTML, `class="classic"`)
	assert.Contains(t, state.HTML, "background:#F2F2F7;")
	assert.Contains(t, state.HTML, `href="https://waos.me"`)

	c := p.Changelog()
	c.Dispatch(page.Get{})
	screentest.Settle(t, c)
	assert.NotContains(t, c.CurrentState().HTML, "href=\"https://waos.me\"")
	assert.Equal(t, srv.URL+"/docs/CHANGELOG.md", c.CurrentState().URL)

	plain := p.Page("TERMS.md", false)
	plain.Dispatch(page.Get{})
	screentest.Settle(t, plain)
	assert.Empty(t, plain.CurrentState().Errors)
	assert.Contains(t, plain.CurrentState().HTML, "See site.")
	assert.NotContains(t, plain.CurrentState().HTML, "href=")
}

func TestCloseDisposesScreens(t *testing.T) {
	p, err := New(testConfig(t, "http://api.invalid"))
	require.NoError(t, err)

	r := p.More()
	require.NoError(t, p.Close())

	select {
	case <-r.Done():
	case <-time.After(time.Second):
		t.Fatal("screen not disposed")
	}
	assert.Equal(t, 0, p.Screens.Count())
}
