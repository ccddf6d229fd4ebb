package fetcher_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seasalt-intel/webintel/internal/fetcher"
)

func TestFetchSuccess(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "Mobile Safari")
		assert.Contains(t, r.Header.Get("Accept"), "text/html")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer srv.Close()

	client := fetcher.New(0, "")
	res := client.Fetch(context.Background(), srv.URL)

	assert.True(t, res.OK)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.Body, "hello")
	assert.Empty(t, res.Reason)
}

func TestFetchNotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	client := fetcher.New(0, "")
	res := client.Fetch(context.Background(), srv.URL)

	assert.False(t, res.OK)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestFetchFollowsRedirects(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/final", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("landed"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := fetcher.New(0, "")
	res := client.Fetch(context.Background(), srv.URL)

	require.True(t, res.OK)
	assert.Equal(t, srv.URL+"/final", res.FinalURL)
	assert.Equal(t, "landed", res.Body)
}

func TestFetchUnreachableHost(t *testing.T) {
	t.Parallel()

	client := fetcher.New(500*time.Millisecond, "")
	res := client.Fetch(context.Background(), "http://127.0.0.1:1")

	assert.False(t, res.OK)
	assert.NotEmpty(t, res.Reason)
	assert.Empty(t, res.Body)
}

func TestFetchInvalidURL(t *testing.T) {
	t.Parallel()

	client := fetcher.New(0, "")
	res := client.Fetch(context.Background(), "://nope")

	assert.False(t, res.OK)
	assert.Contains(t, res.Reason, "invalid url")
}
