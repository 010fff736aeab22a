package http_test

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/unfurl"
	unfurlhttp "github.com/fwojciec/unfurl/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gzipped(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>Hello World</body></html>"))
		}))
		defer server.Close()

		loader := unfurlhttp.NewLoader()

		html, err := loader.Load(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html><body>Hello World</body></html>", html)
	})

	t.Run("sends browser-like request headers", func(t *testing.T) {
		t.Parallel()

		var got http.Header
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Clone()
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		loader := unfurlhttp.NewLoader()
		_, err := loader.Load(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, unfurlhttp.DefaultUserAgent, got.Get("User-Agent"))
		assert.Contains(t, got.Get("Accept"), "text/html")
		assert.Equal(t, "gzip, deflate", got.Get("Accept-Encoding"))
	})

	t.Run("uses custom user agent", func(t *testing.T) {
		t.Parallel()

		var ua string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ua = r.UserAgent()
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		loader := unfurlhttp.NewLoader(unfurlhttp.WithUserAgent("preview-bot/1.0"))
		_, err := loader.Load(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, "preview-bot/1.0", ua)
	})

	t.Run("decodes gzip content encoding", func(t *testing.T) {
		t.Parallel()

		body := gzipped(t, "<html><title>Compressed</title></html>")
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Encoding", "gzip")
			_, _ = w.Write(body)
		}))
		defer server.Close()

		loader := unfurlhttp.NewLoader()
		html, err := loader.Load(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, "<html><title>Compressed</title></html>", html)
	})

	t.Run("sniffs gzip body without content encoding header", func(t *testing.T) {
		t.Parallel()

		body := gzipped(t, "<p>sniffed</p>")
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write(body)
		}))
		defer server.Close()

		loader := unfurlhttp.NewLoader()
		html, err := loader.Load(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, "<p>sniffed</p>", html)
	})

	t.Run("returns body unchanged when declared encoding is bogus", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Encoding", "gzip")
			_, _ = w.Write([]byte("<p>plain</p>"))
		}))
		defer server.Close()

		loader := unfurlhttp.NewLoader()
		html, err := loader.Load(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, "<p>plain</p>", html)
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		loader := unfurlhttp.NewLoader(unfurlhttp.WithTimeout(10 * time.Millisecond))

		_, err := loader.Load(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, unfurl.EFETCH, unfurl.ErrorCode(err))
	})

	t.Run("uses injected client", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("shared"))
		}))
		defer server.Close()

		loader := unfurlhttp.NewLoader(unfurlhttp.WithClient(server.Client()))
		html, err := loader.Load(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, "shared", html)
	})

	t.Run("returns context error on cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		loader := unfurlhttp.NewLoader()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := loader.Load(ctx, server.URL)
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
	})

	t.Run("returns error for non-existent host", func(t *testing.T) {
		t.Parallel()

		loader := unfurlhttp.NewLoader(unfurlhttp.WithTimeout(100 * time.Millisecond))

		_, err := loader.Load(context.Background(), "http://non-existent-host.invalid/page")
		require.Error(t, err)
		assert.Equal(t, unfurl.EFETCH, unfurl.ErrorCode(err))
	})

	t.Run("returns error for non-2xx status codes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("404 Not Found"))
		}))
		defer server.Close()

		loader := unfurlhttp.NewLoader()

		_, err := loader.Load(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, unfurl.EFETCH, unfurl.ErrorCode(err))
		assert.Contains(t, unfurl.ErrorMessage(err), "404")
	})

	t.Run("accepts non-200 success codes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNonAuthoritativeInfo)
			_, _ = w.Write([]byte("cached copy"))
		}))
		defer server.Close()

		loader := unfurlhttp.NewLoader()
		html, err := loader.Load(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, "cached copy", html)
	})
}
