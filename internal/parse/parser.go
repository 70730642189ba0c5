package parse

import (
	"bytes"
	"fmt"
	"mime"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Media types the engine understands natively.
const (
	MediaTypeHTML   = "text/html"
	MediaTypeXHTML  = "application/xhtml+xml"
	MediaTypeXML    = "text/xml"
	MediaTypeAppXML = "application/xml"
)

// MaxContentSize limits parser input to 10MB to prevent memory
// exhaustion.
const MaxContentSize = 10 * 1024 * 1024

// Parser turns content of a given media type into a node tree. HTML
// types yield a document-kind root; XML types yield a root-less
// element fragment.
type Parser interface {
	Parse(content, mediaType string) (*html.Node, error)
}

// Error reports a parser rejection.
type Error struct {
	MediaType string
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse %s: %v", e.MediaType, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Engine is the default Parser: charset-aware HTML parsing with
// optional sanitization, and encoding/xml for XML types.
type Engine struct {
	sanitizer *bluemonday.Policy
}

// Option configures an Engine.
type Option func(*Engine)

// WithSanitizer scrubs markup through the given policy before HTML
// parsing. XML input is never sanitized.
func WithSanitizer(p *bluemonday.Policy) Option {
	return func(e *Engine) {
		e.sanitizer = p
	}
}

// NewEngine creates a parser engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Parse dispatches on the base media type. Unknown types fall back to
// HTML unless they carry an +xml suffix.
func (e *Engine) Parse(content, mediaType string) (*html.Node, error) {
	if len(content) > MaxContentSize {
		return nil, &Error{MediaType: mediaType, Err: fmt.Errorf("content exceeds %d bytes", MaxContentSize)}
	}
	base := mediaType
	if parsed, _, err := mime.ParseMediaType(mediaType); err == nil {
		base = parsed
	}
	switch base {
	case MediaTypeXML, MediaTypeAppXML:
		return parseXML(content)
	case MediaTypeHTML, MediaTypeXHTML, "":
		return e.parseHTML(content)
	}
	if strings.HasSuffix(base, "+xml") {
		return parseXML(content)
	}
	return e.parseHTML(content)
}

func (e *Engine) parseHTML(content string) (*html.Node, error) {
	if e.sanitizer != nil {
		content = e.sanitizer.Sanitize(content)
	}

	data := []byte(content)
	detected := DetectCharset(data)

	utf8Reader, err := charset.NewReader(bytes.NewReader(data), MediaTypeHTML+"; charset="+detected)
	if err != nil {
		// Fallback to direct parsing
		utf8Reader = strings.NewReader(content)
	}

	root, err := html.Parse(utf8Reader)
	if err != nil {
		return nil, &Error{MediaType: MediaTypeHTML, Err: err}
	}
	return root, nil
}

// DetectCharset detects the character encoding of raw content,
// defaulting to utf-8.
func DetectCharset(data []byte) string {
	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(data)
	if err != nil || result == nil {
		return "utf-8"
	}
	return strings.ToLower(result.Charset)
}
