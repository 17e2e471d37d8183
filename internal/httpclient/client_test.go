package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/metrics"
	"github.com/Zachkp/portfolio/internal/storage"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/api", opts...)
	require.NoError(t, err)
	return c, srv
}

func TestNew_RejectsRelativeBase(t *testing.T) {
	_, err := New("/api")
	assert.Error(t, err)
}

func TestDo_HeadersAndDecode(t *testing.T) {
	ctx := context.Background()
	tokens := storage.NewTokens(storage.NewMemory(), nil)
	require.NoError(t, tokens.SetToken(ctx, "secret"))

	var got *http.Request
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"ok"}`))
	}, WithTokenStore(tokens))

	var out struct {
		Name string `json:"name"`
	}
	err := c.Get(ctx, "/projects", url.Values{"category": {"web"}}, &out)
	require.NoError(t, err)

	assert.Equal(t, "ok", out.Name)
	require.NotNil(t, got)
	assert.Equal(t, "/api/projects", got.URL.Path)
	assert.Equal(t, "web", got.URL.Query().Get("category"))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.Equal(t, "Bearer secret", got.Header.Get("Authorization"))
	assert.NotEmpty(t, got.Header.Get("X-Request-ID"))
}

func TestDo_NoTokenNoAuthorizationHeader(t *testing.T) {
	var auth string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}, WithTokenStore(storage.NewTokens(storage.NewMemory(), nil)))

	require.NoError(t, c.Get(context.Background(), "/blog", nil, nil))
	assert.Empty(t, auth)
}

func TestDo_PostEncodesBody(t *testing.T) {
	var body map[string]string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"success":true}`))
	})

	var out struct {
		Success bool `json:"success"`
	}
	require.NoError(t, c.Post(context.Background(), "/contact", map[string]string{"name": "Ada"}, &out))
	assert.True(t, out.Success)
	assert.Equal(t, "Ada", body["name"])
}

func TestDo_Classification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   Kind
		check  func(error) bool
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, want: KindUnauthorized, check: IsUnauthorized},
		{name: "not found", status: http.StatusNotFound, want: KindNotFound, check: IsNotFound},
		{name: "internal error", status: http.StatusInternalServerError, want: KindServer, check: IsServer},
		{name: "bad gateway", status: http.StatusBadGateway, want: KindServer, check: IsServer},
		{name: "bad request", status: http.StatusBadRequest, want: KindUnexpected, check: func(err error) bool { return KindOf(err) == KindUnexpected }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"message":"nope"}`))
			})

			err := c.Get(context.Background(), "/projects/x", nil, nil)
			require.Error(t, err)
			assert.Equal(t, tt.want, KindOf(err))
			assert.True(t, tt.check(err))

			var e *Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.status, e.Status)
			assert.Contains(t, e.Error(), "nope")
			assert.Equal(t, "nope", ServerMessage(err))
		})
	}
}

func TestDo_UnauthorizedClearsToken(t *testing.T) {
	ctx := context.Background()
	tokens := storage.NewTokens(storage.NewMemory(), nil)
	require.NoError(t, tokens.SetToken(ctx, "expired"))

	calls := 0
	policyCalled := false
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}, WithTokenStore(tokens), WithUnauthorizedHandler(func() { policyCalled = true }))

	err := c.Get(ctx, "/projects", nil, nil)
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, 1, calls, "no retry")
	assert.True(t, policyCalled)

	_, ok := tokens.Token(ctx)
	assert.False(t, ok, "token must be cleared")
}

func TestDo_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := New(base)
	require.NoError(t, err)

	err = c.Get(context.Background(), "/projects", nil, nil)
	require.Error(t, err)
	assert.True(t, IsNetwork(err))
}

func TestDo_TimeoutIsNetworkError(t *testing.T) {
	release := make(chan struct{})
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, WithTimeout(50*time.Millisecond))
	defer close(release)

	err := c.Get(context.Background(), "/projects", nil, nil)
	require.Error(t, err)
	assert.True(t, IsNetwork(err))
}

func TestWithTimeout_LeavesSuppliedClientAlone(t *testing.T) {
	shared := &http.Client{Timeout: time.Minute}
	c, err := New("http://example.com", WithHTTPClient(shared), WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	assert.Equal(t, time.Minute, shared.Timeout)
	assert.Equal(t, 50*time.Millisecond, c.http.Timeout)

	_, err = New("http://example.com", WithHTTPClient(http.DefaultClient), WithTimeout(time.Second))
	require.NoError(t, err)
	assert.Zero(t, http.DefaultClient.Timeout)
}

func TestDo_RequestSetupError(t *testing.T) {
	calls := 0
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { calls++ })

	err := c.Post(context.Background(), "/contact", map[string]any{"bad": make(chan int)}, nil)
	require.Error(t, err)
	assert.True(t, IsRequestSetup(err))
	assert.Zero(t, calls)
}

func TestDo_UndecodableBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	})

	var out []string
	err := c.Get(context.Background(), "/projects/categories", nil, &out)
	require.Error(t, err)
	assert.Equal(t, KindUnexpected, KindOf(err))
}

func TestDo_EscapedSlugKeepsEscaping(t *testing.T) {
	var rawPath string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		rawPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`{}`))
	})

	require.NoError(t, c.Get(context.Background(), "/blog/"+url.PathEscape("a/b"), nil, nil))
	assert.Equal(t, "/api/blog/a%2Fb", rawPath)
}

func TestDo_Metrics(t *testing.T) {
	m := metrics.New()
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}, WithMetrics(m))

	_ = c.Get(context.Background(), "/ok", nil, nil)
	_ = c.Get(context.Background(), "/missing", nil, nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ClientRequests.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ClientRequests.WithLabelValues(string(KindNotFound))))
}
