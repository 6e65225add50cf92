package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weareopensource/waos-go/internal/domain/user"
	"github.com/weareopensource/waos-go/internal/infrastructure/monitoring"
	"github.com/weareopensource/waos-go/internal/infrastructure/resilience"
	"github.com/weareopensource/waos-go/internal/infrastructure/tracing"
	"github.com/weareopensource/waos-go/internal/shared/failure"
	"github.com/weareopensource/waos-go/internal/shared/id"
)

func newTestClient(t *testing.T, h http.Handler) (*Client, *monitoring.Metrics) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	metrics := monitoring.NewMetrics(prometheus.NewRegistry())
	c := NewClient(Config{
		BaseURL: srv.URL + "/api",
		Timeout: 5 * time.Second,
		Retries: 0,
	}, WithMetrics(metrics))
	return c, metrics
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestSignIn(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/signin", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@b.co", body["email"])
		assert.Equal(t, "secret123", body["password"])

		http.SetCookie(w, &http.Cookie{Name: "TOKEN", Value: "tok", Path: "/"})
		writeJSON(w, http.StatusOK, map[string]any{
			"user":           map[string]any{"id": "u1", "firstName": "Ada", "email": "a@b.co"},
			"tokenExpiresIn": 1700000000,
			"type":           "success",
		})
	})
	mux.HandleFunc("/api/users/me", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("TOKEN")
		if err != nil || cookie.Value != "tok" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "jwt", "description": "No auth token"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{"id": "u1", "firstName": "Ada"}})
	})

	c, metrics := newTestClient(t, mux)
	ctx := context.Background()

	_, err := c.Me(ctx)
	info := failure.From(err)
	require.NotNil(t, info)
	assert.Equal(t, http.StatusUnauthorized, info.Code)
	assert.True(t, info.IsAuth())

	session, err := c.SignIn(ctx, "a@b.co", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "u1", session.User.ID)
	assert.Equal(t, "Ada", session.User.FirstName)
	assert.Equal(t, int64(1700000000), session.TokenExpiresIn)

	me, err := c.Me(ctx)
	require.NoError(t, err, "session cookie should be replayed")
	assert.Equal(t, "Ada", me.FirstName)

	snap := metrics.Snapshot()
	assert.Equal(t, int64(3), snap.APICalls)
	assert.Equal(t, int64(1), snap.APIErrors)
}

func TestErrorDecoding(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"type":        "error",
			"message":     "Schema validation error",
			"description": "email must be a valid email",
		})
	}))

	_, err := c.SignUp(context.Background(), user.User{Email: "bad"})
	require.Error(t, err)

	var info *failure.ErrorInfo
	require.ErrorAs(t, err, &info)
	assert.Equal(t, http.StatusUnprocessableEntity, info.Code)
	assert.Equal(t, "Schema validation error", info.Message)
	assert.Equal(t, "email must be a valid email", info.Description)
	assert.Equal(t, "error", info.Type)
	assert.Equal(t, failure.KindService, info.Kind)
}

func TestErrorWithoutBody(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := c.Forgot(context.Background(), "a@b.co")
	info := failure.From(err)
	require.NotNil(t, info)
	assert.Equal(t, http.StatusNotFound, info.Code)
	assert.Equal(t, http.StatusText(http.StatusNotFound), info.Message)
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(Config{BaseURL: url, Timeout: time.Second})
	_, err := c.ListTasks(context.Background())

	info := failure.From(err)
	require.NotNil(t, info)
	assert.Equal(t, 0, info.Code)
	assert.Equal(t, failure.TitleUnknown, info.Message)
	assert.Equal(t, failure.KindUnknown, info.Kind)
}

func TestBreakerOpensOnServerErrors(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "boom"})
	}))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := c.ListTasks(ctx)
		assert.Equal(t, http.StatusInternalServerError, failure.From(err).Code)
	}
	assert.Equal(t, resilience.StateOpen, c.BreakerState())

	_, err := c.ListTasks(ctx)
	info := failure.From(err)
	assert.Equal(t, 0, info.Code)
	assert.Equal(t, failure.TitleUnknown, info.Message)
	assert.ErrorContains(t, err, "unavailable")
	assert.Equal(t, int32(5), calls.Load(), "open breaker must not reach the server")
}

func TestClientErrorsDoNotTripBreaker(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "auth"})
	}))

	for i := 0; i < 8; i++ {
		_, _ = c.Me(context.Background())
	}
	assert.Equal(t, resilience.StateClosed, c.BreakerState())
}

func TestTasks(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tasks", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"data": []map[string]string{
			{"id": "t1", "title": "first"},
			{"id": "t2", "title": "second"},
		}})
	})
	deleted := make(chan string, 1)
	mux.HandleFunc("/api/tasks/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		deleted <- r.URL.Path
		writeJSON(w, http.StatusOK, map[string]any{"data": map[string]string{"id": "t1"}})
	})
	c, _ := newTestClient(t, mux)
	ctx := context.Background()

	tasks, err := c.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "second", tasks[1].Title)

	require.NoError(t, c.DeleteTask(ctx, "t1"))
	assert.Equal(t, "/api/tasks/t1", <-deleted)
}

func TestUpdateAvatar(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/avatar", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile(user.AvatarPart)
		require.NoError(t, err)
		defer file.Close()

		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, png, data)
		assert.Equal(t, "image/png", header.Header.Get("Content-Type"))
		assert.Regexp(t, `^[0-9a-f-]{36}\.png$`, header.Filename)

		writeJSON(w, http.StatusOK, map[string]any{"data": map[string]string{"avatar": "https://cdn/" + header.Filename}})
	}))

	u, err := c.UpdateAvatar(context.Background(), png, "", "", "")
	require.NoError(t, err)
	assert.Contains(t, u.Avatar, ".png")
}

func TestUpdateAvatarRetryResendsImage(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	var calls atomic.Int32
	sizes := make(chan int, 2)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := 0
		if err := r.ParseMultipartForm(1 << 20); err == nil {
			if file, _, err := r.FormFile(user.AvatarPart); err == nil {
				data, _ := io.ReadAll(file)
				file.Close()
				n = len(data)
			}
		}
		sizes <- n

		if calls.Add(1) == 1 {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"message": "busy"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": map[string]string{"avatar": "https://cdn/a.png"}})
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Config{
		BaseURL:      srv.URL,
		Timeout:      5 * time.Second,
		Retries:      1,
		RetryWait:    10 * time.Millisecond,
		RetryMaxWait: 20 * time.Millisecond,
	})

	_, err := c.UpdateAvatar(context.Background(), png, "", "", "")
	require.NoError(t, err)
	require.Equal(t, int32(2), calls.Load())
	assert.Equal(t, len(png), <-sizes)
	assert.Equal(t, len(png), <-sizes)
}

func TestUpdateDoesNotSendPassword(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotContains(t, body, "password")
		assert.Equal(t, "Lovelace", body["lastName"])
		writeJSON(w, http.StatusOK, map[string]any{"data": body})
	}))

	u, err := c.Update(context.Background(), user.User{FirstName: "Ada", LastName: "Lovelace", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "Lovelace", u.LastName)
	assert.Empty(t, u.Password)
}

func TestPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "# Title\n\nbody")
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: "http://api.invalid", Timeout: time.Second})
	md, err := c.Page(context.Background(), srv.URL+"/README.md")
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\nbody", md)
}

func TestTracerPropagatesHeaders(t *testing.T) {
	headers := make(chan http.Header, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers <- r.Header.Clone()
		writeJSON(w, http.StatusOK, map[string]any{"data": []any{}})
	}))
	t.Cleanup(srv.Close)

	tracer := tracing.New("test", nil)
	t.Cleanup(tracer.Close)
	c := NewClient(Config{BaseURL: srv.URL, Timeout: 5 * time.Second}, WithTracer(tracer))

	_, err := c.ListTasks(context.Background())
	require.NoError(t, err)

	h := <-headers
	assert.NotEmpty(t, h.Get(tracing.TraceHeader))
	assert.NotEmpty(t, h.Get(tracing.SpanHeader))
	assert.True(t, id.IsValid(h.Get(tracing.RequestHeader)))
}
