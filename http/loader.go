// Package http provides an HTTP-based implementation of unfurl.ContentLoader.
package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/unfurl"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// DefaultTimeout is the default timeout for HTTP requests.
const DefaultTimeout = 5 * time.Second

// DefaultUserAgent identifies the loader to servers.
const DefaultUserAgent = "curl/7.54.0 (unfurl)"

// Ensure Loader implements unfurl.ContentLoader at compile time.
var _ unfurl.ContentLoader = (*Loader)(nil)

// Loader retrieves HTML over HTTP. It does not execute JavaScript.
// A single Loader, and the http.Client behind it, is meant to be shared by
// all extractions; it is safe for concurrent use.
type Loader struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Loader.
type Option func(*Loader)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultTimeout (5s). Ignored when WithClient is used.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		l.timeout = d
	}
}

// WithClient makes the Loader send requests through client, for callers that
// pool connections across components.
func WithClient(client *http.Client) Option {
	return func(l *Loader) {
		l.client = client
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(l *Loader) {
		l.userAgent = ua
	}
}

// NewLoader creates a new HTTP-based Loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(l)
	}

	if l.client == nil {
		l.client = &http.Client{
			Timeout: l.timeout,
		}
	}

	return l
}

// Load retrieves the page at url and returns its body as text.
// Compressed bodies are decoded. Non-2xx responses fail with EFETCH.
func (l *Loader) Load(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", unfurl.Errorf(unfurl.EINVALID, "invalid request for %s: %v", url, err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml")
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	req.Header.Set("Accept-Charset", "UTF-8")
	req.Header.Set("User-Agent", l.userAgent)

	resp, err := l.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", unfurl.Errorf(unfurl.EFETCH, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", unfurl.Errorf(unfurl.EFETCH, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", unfurl.Errorf(unfurl.EFETCH, "read %s: %v", url, err)
	}

	return string(decodeBody(resp.Header.Get("Content-Encoding"), body)), nil
}

// decodeBody undoes gzip or deflate encoding. Bodies that fail to decode are
// returned unchanged, as are bodies without an encoding unless they carry the
// gzip magic number.
func decodeBody(encoding string, body []byte) []byte {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "gzip", "x-gzip":
		if decoded, err := gunzip(body); err == nil {
			return decoded
		}
	case "deflate":
		if decoded, err := inflate(body); err == nil {
			return decoded
		}
	default:
		if isGzip(body) {
			if decoded, err := gunzip(body); err == nil {
				return decoded
			}
		}
	}
	return body
}

func isGzip(body []byte) bool {
	return len(body) >= 2 && body[0] == 0x1f && body[1] == 0x8b
}

func gunzip(body []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// inflate accepts zlib-wrapped and raw deflate streams; servers send both.
func inflate(body []byte) ([]byte, error) {
	if r, err := zlib.NewReader(bytes.NewReader(body)); err == nil {
		defer r.Close()
		if decoded, err := io.ReadAll(r); err == nil {
			return decoded, nil
		}
	}
	r := flate.NewReader(bytes.NewReader(body))
	defer r.Close()
	return io.ReadAll(r)
}
