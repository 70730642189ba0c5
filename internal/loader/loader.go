// Package loader fetches documents over the network: one GET per load,
// charset-aware body decoding, and media-type classification from the
// response headers. Transport failures surface as *TransportError and
// never install anything into a session.
package loader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"github.com/lumen-web/lumen/internal/csp"
	"github.com/lumen-web/lumen/internal/infrastructure/logging"
	"github.com/lumen-web/lumen/internal/infrastructure/monitoring"
	"github.com/lumen-web/lumen/internal/parse"
)

// TransportError reports a request, response, or body failure.
type TransportError struct {
	URL    string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.Status)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Response is a fetched resource before parsing.
type Response struct {
	URL         *url.URL
	Status      int
	Headers     http.Header
	Body        []byte
	Text        string
	ContentType string
	Policy      string
}

// Loader fetches documents through a transport client.
type Loader struct {
	client  *Client
	log     *logging.Logger
	metrics *monitoring.Metrics
}

// New creates a loader. The logger defaults when nil; metrics may be
// nil to disable instrumentation.
func New(client *Client, log *logging.Logger, metrics *monitoring.Metrics) *Loader {
	if log == nil {
		log = logging.NewDefault()
	}
	return &Loader{
		client:  client,
		log:     log.Named("loader"),
		metrics: metrics,
	}
}

// Fetch retrieves address and returns the decoded response. Statuses
// outside 200-399 are transport failures.
func (l *Loader) Fetch(ctx context.Context, address *url.URL) (*Response, error) {
	resp, err := l.client.get(ctx, address.String())
	if err != nil {
		l.observe("error")
		return nil, &TransportError{URL: address.String(), Err: err}
	}

	status := resp.StatusCode()
	if status < 200 || status >= 400 {
		l.observe("http_error")
		return nil, &TransportError{URL: address.String(), Status: status}
	}

	body := resp.Body()
	contentType := resp.Header().Get("Content-Type")

	out := &Response{
		URL:         address,
		Status:      status,
		Headers:     resp.Header(),
		Body:        body,
		Text:        decodeText(body, contentType),
		ContentType: baseMediaType(contentType),
		Policy:      resp.Header().Get(csp.HeaderName),
	}

	l.observe("ok")
	l.log.Debug("fetched document",
		zap.String("url", address.String()),
		zap.Int("status", status),
		zap.String("content_type", out.ContentType),
		zap.Int("bytes", len(body)),
	)
	return out, nil
}

func (l *Loader) observe(outcome string) {
	if l.metrics != nil {
		l.metrics.FetchesTotal.WithLabelValues(outcome).Inc()
	}
}

// decodeText converts a response body to UTF-8 text, consulting the
// Content-Type charset parameter first and detection second.
func decodeText(body []byte, contentType string) string {
	if contentType == "" {
		contentType = parse.MediaTypeHTML + "; charset=" + parse.DetectCharset(body)
	}
	reader, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return string(body)
	}
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return string(body)
	}
	return string(decoded)
}

// baseMediaType strips parameters from a Content-Type header value.
func baseMediaType(contentType string) string {
	if contentType == "" {
		return ""
	}
	base, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return base
}
