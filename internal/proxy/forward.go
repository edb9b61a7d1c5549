// Package proxy relays /api/ requests from the web service to the API server.
package proxy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strconv"
	"strings"

	"tailspin/catalog/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// APIPathMarker selects the requests that are forwarded.
const APIPathMarker = "/api/"

// UnreachableBody is written with a 502 when the API server cannot be reached.
const UnreachableBody = `{"error": "Failed to reach API server"}`

// Config configures a Forwarder.
type Config struct {
	// BaseURL is the API server origin, e.g. "http://localhost:5100".
	BaseURL string
	// Transport defaults to a clone of http.DefaultTransport.
	Transport http.RoundTripper
	Logger    zerolog.Logger
}

// Forwarder sends matching requests to the API server and relays the
// buffered response verbatim.
type Forwarder struct {
	target *url.URL
	proxy  *httputil.ReverseProxy
	logger zerolog.Logger
}

// New validates cfg and builds a Forwarder. The target never changes after
// construction.
func New(cfg Config) (*Forwarder, error) {
	target, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("api base url %q must be absolute", cfg.BaseURL)
	}

	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport.(*http.Transport).Clone()
	}

	f := &Forwarder{target: target, logger: cfg.Logger}
	f.proxy = &httputil.ReverseProxy{
		Rewrite:        f.rewrite,
		Transport:      transport,
		ModifyResponse: f.relay,
		ErrorHandler:   f.unreachable,
	}
	return f, nil
}

// Matches reports whether the request path is forwarded.
func Matches(path string) bool {
	return strings.Contains(path, APIPathMarker)
}

// Middleware forwards matching requests and aborts the chain for them; all
// other requests continue to page rendering. Register it with Engine.Use so
// it also sees paths that have no route.
func (f *Forwarder) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !Matches(c.Request.URL.Path) {
			c.Next()
			return
		}
		f.ServeHTTP(c.Writer, c.Request)
		c.Abort()
	}
}

// ServeHTTP forwards r unconditionally.
func (f *Forwarder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.proxy.ServeHTTP(w, r)
}

// rewrite points the outbound request at base + path (+ "?" + query).
func (f *Forwarder) rewrite(pr *httputil.ProxyRequest) {
	out := pr.Out
	out.URL.Scheme = f.target.Scheme
	out.URL.Host = f.target.Host
	out.URL.Path = f.target.Path + pr.In.URL.Path
	out.URL.RawPath = ""
	if pr.In.URL.RawPath != "" {
		out.URL.RawPath = f.target.EscapedPath() + pr.In.URL.RawPath
	}
	out.URL.RawQuery = pr.In.URL.RawQuery
	out.Host = f.target.Host

	// Rewrite strips these; forwarding keeps the original request's headers.
	for _, h := range []string{"Forwarded", "X-Forwarded-For", "X-Forwarded-Host", "X-Forwarded-Proto"} {
		if v, ok := pr.In.Header[h]; ok {
			out.Header[h] = v
		}
	}

	if out.Method == http.MethodGet || out.Method == http.MethodHead {
		out.Body = http.NoBody
		out.ContentLength = 0
		out.Header.Del("Content-Length")
		out.Header.Del("Transfer-Encoding")
	}
}

// relay reads the whole upstream body before anything is written back.
func (f *Forwarder) relay(resp *http.Response) error {
	if resp.Body == nil || resp.Body == http.NoBody {
		metrics.ObserveProxy(metrics.ProxyForwarded)
		return nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read upstream body: %w", err)
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))
	resp.ContentLength = int64(len(body))
	resp.TransferEncoding = nil
	if resp.Request == nil || resp.Request.Method != http.MethodHead {
		resp.Header.Set("Content-Length", strconv.Itoa(len(body)))
	}
	metrics.ObserveProxy(metrics.ProxyForwarded)
	return nil
}

func (f *Forwarder) unreachable(w http.ResponseWriter, r *http.Request, err error) {
	metrics.ObserveProxy(metrics.ProxyUnreachable)
	event := f.logger.Error()
	if errors.Is(err, context.Canceled) {
		event = f.logger.Debug()
	}
	event.Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("target", f.target.String()).
		Msg("api server request failed")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadGateway)
	_, _ = io.WriteString(w, UnreachableBody)
}
