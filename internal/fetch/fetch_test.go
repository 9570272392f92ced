package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHead_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	result, err := Head(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, server.URL, result.FinalURL)
	assert.True(t, result.OK())
}

func TestHead_FollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	result, err := Head(context.Background(), server.URL+"/old", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, server.URL+"/new", result.FinalURL)
	assert.Equal(t, 1, result.Redirects)
}

func TestHead_RedirectLimit(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Redirect(w, r, r.URL.Path+"x", http.StatusFound)
	}))
	defer server.Close()

	result, err := Head(context.Background(), server.URL+"/a", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, result.StatusCode)
	assert.Equal(t, DefaultMaxRedirects, result.Redirects)
	assert.Equal(t, int32(DefaultMaxRedirects+1), hits.Load())
}

func TestHead_NotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	result, err := Head(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
	assert.False(t, result.OK())
}

func TestHead_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	result, err := Head(context.Background(), addr, &Options{Timeout: time.Second, MaxRedirects: 1})
	require.Error(t, err)
	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, 0, result.StatusCode)
	assert.False(t, result.OK())
}

func TestHead_InvalidURL(t *testing.T) {
	for _, u := range []string{"not-a-valid-url", "ftp://example.com/x", "https://"} {
		_, err := Head(context.Background(), u, nil)
		require.Error(t, err, u)
		assert.Contains(t, err.Error(), "invalid URL")
	}
}

func TestTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><head><title>\n  Dragon   Boyz | Red Tiger\n</title></head><body></body></html>"))
	}))
	defer server.Close()

	title, err := Title(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, "Dragon Boyz | Red Tiger", title)
}

func TestTitle_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := Title(context.Background(), server.URL, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestResult_OKNil(t *testing.T) {
	var r *Result
	assert.False(t, r.OK())
}
