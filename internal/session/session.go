// Package session owns the active document/window/address/policy
// tuple and the loading operations that replace it.
//
// A Session is single-owner: one logical thread of control drives it,
// and concurrent callers must serialize externally. The active tuple
// is an immutable snapshot replaced by reference swap, so a failed
// load can never leave a half-installed document behind.
package session

import (
	"context"
	"io"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/lumen-web/lumen/internal/csp"
	"github.com/lumen-web/lumen/internal/dom"
	"github.com/lumen-web/lumen/internal/infrastructure/config"
	"github.com/lumen-web/lumen/internal/infrastructure/logging"
	"github.com/lumen-web/lumen/internal/infrastructure/monitoring"
	"github.com/lumen-web/lumen/internal/loader"
	"github.com/lumen-web/lumen/internal/parse"
	"github.com/lumen-web/lumen/internal/shared/id"
	"github.com/lumen-web/lumen/internal/window"
)

// DefaultAddress returns the address used when none is given.
func DefaultAddress() *url.URL {
	return &url.URL{Scheme: "about", Opaque: "blank"}
}

// snapshot is one committed document generation. Snapshots are
// replaced wholesale; the only post-commit write is the lazy window.
type snapshot struct {
	generation id.GenerationID
	doc        *dom.Document
	win        *window.Window
	addr       *url.URL
	policy     *csp.Policy
}

// Session owns the active document and its derived state.
type Session struct {
	sid     id.SessionID
	log     *logging.Logger
	parser  parse.Parser
	sniffer parse.Sniffer
	loader  *loader.Loader
	metrics *monitoring.Metrics

	active *snapshot
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(log *logging.Logger) Option {
	return func(s *Session) { s.log = log }
}

// WithParser replaces the default parse engine.
func WithParser(p parse.Parser) Option {
	return func(s *Session) { s.parser = p }
}

// WithSniffer replaces the default media sniffer.
func WithSniffer(sn parse.Sniffer) Option {
	return func(s *Session) { s.sniffer = sn }
}

// WithLoader sets the transport loader used by LoadURL and Reload.
func WithLoader(l *loader.Loader) Option {
	return func(s *Session) { s.loader = l }
}

// WithMetrics enables instrumentation.
func WithMetrics(m *monitoring.Metrics) Option {
	return func(s *Session) { s.metrics = m }
}

// New creates a session with lazily constructed defaults for anything
// not configured.
func New(opts ...Option) *Session {
	s := &Session{
		sid:     id.NewSessionID(),
		parser:  parse.NewEngine(),
		sniffer: parse.MimeSniffer{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logging.NewDefault()
	}
	s.log = s.log.Named("session")
	if s.loader == nil {
		s.loader = loader.New(loader.NewClient(config.Default().Loader), s.log, s.metrics)
	}
	return s
}

// ID returns the session's identifier.
func (s *Session) ID() id.SessionID {
	return s.sid
}

// current returns the active snapshot, creating the default one (empty
// document at the default address) on first access.
func (s *Session) current() *snapshot {
	if s.active == nil {
		s.active = &snapshot{
			generation: id.NewGenerationID(),
			doc:        dom.NewDocument(),
			addr:       DefaultAddress(),
		}
	}
	return s.active
}

// Document returns the active document, creating the default empty
// document on first access.
func (s *Session) Document() *dom.Document {
	return s.current().doc
}

// Window returns the window derived from the active document, creating
// it on first access. Replacing the document discards the window.
func (s *Session) Window() *window.Window {
	snap := s.current()
	if snap.win == nil {
		snap.win = window.New(snap.doc)
	}
	return snap.win
}

// Address returns the active address. It is never unset: an absent
// address resolves to the default.
func (s *Session) Address() *url.URL {
	return s.current().addr
}

// Policy returns the active security policy, or nil.
func (s *Session) Policy() *csp.Policy {
	return s.current().policy
}

// Generation returns the identifier of the active document generation.
func (s *Session) Generation() id.GenerationID {
	return s.current().generation
}

// commit installs a new generation by snapshot swap.
func (s *Session) commit(doc *dom.Document, addr *url.URL, policy *csp.Policy) {
	if addr == nil {
		addr = DefaultAddress()
	}
	gen := id.NewGenerationID()
	s.active = &snapshot{
		generation: gen,
		doc:        doc,
		addr:       addr,
		policy:     policy,
	}
	if s.metrics != nil {
		s.metrics.ObserveCommit()
	}
	s.log.Debug("installed document generation",
		zap.String("session", s.sid.String()),
		zap.String("generation", gen.String()),
		zap.String("address", addr.String()),
		zap.Bool("policy", policy != nil),
	)
}

// Clear replaces the active document with a fresh empty document,
// discards the window, clears the policy, and sets the address (the
// default when nil).
func (s *Session) Clear(addr *url.URL) {
	s.commit(dom.NewDocument(), addr, nil)
}

// Replace installs doc as the active document. A nil doc yields the
// default empty document with no policy; otherwise the policy is
// re-derived from the document's embedded metadata. The window is
// always discarded.
func (s *Session) Replace(doc *dom.Document, addr *url.URL) {
	if doc == nil {
		s.commit(dom.NewDocument(), addr, nil)
		return
	}
	s.commit(doc, addr, csp.FromDocument(doc))
}

// ReplaceRoot canonicalizes an arbitrary parsed tree and installs it.
func (s *Session) ReplaceRoot(root *html.Node, contentType string, addr *url.URL) *dom.Document {
	doc := dom.Adopt(root, contentType)
	s.commit(doc, addr, csp.FromDocument(doc))
	return doc
}

// LoadContent parses content and installs the result. The effective
// media type is the declared option, else the sniffed type, else
// text/html. On parse failure the session keeps its previous state.
func (s *Session) LoadContent(content string, opts ...LoadOption) (*dom.Document, error) {
	o := applyOptions(opts)
	doc, policy, err := s.parseContent(content, o.mediaType)
	if err != nil {
		return nil, err
	}
	s.commit(doc, o.addr, policy)
	return doc, nil
}

// LoadReader reads r to completion and installs the parsed result,
// with the same media-type resolution as LoadContent.
func (s *Session) LoadReader(r io.Reader, opts ...LoadOption) (*dom.Document, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return s.LoadContent(string(content), opts...)
}

// LoadURL fetches address, classifies and parses the body, and
// installs the result. A Content-Security-Policy response header
// overwrites the policy derived from document metadata. On any
// failure the session keeps its previous state.
func (s *Session) LoadURL(ctx context.Context, address *url.URL, opts ...LoadOption) (*dom.Document, error) {
	o := applyOptions(opts)
	start := time.Now()

	resp, err := s.loader.Fetch(ctx, address)
	if err != nil {
		s.observeLoad("transport_error", start)
		return nil, err
	}
	if o.hook != nil {
		o.hook(resp)
	}

	mediaType := o.mediaType
	if mediaType == "" {
		mediaType = resp.ContentType
	}
	doc, policy, err := s.parseContent(resp.Text, mediaType)
	if err != nil {
		s.observeLoad("parse_error", start)
		return nil, err
	}
	if resp.Policy != "" {
		policy = csp.Parse(resp.Policy)
	}

	s.commit(doc, address, policy)
	s.observeLoad("ok", start)
	return doc, nil
}

// Reload re-runs the load-from-address path with the current address.
func (s *Session) Reload(ctx context.Context, opts ...LoadOption) (*dom.Document, error) {
	return s.LoadURL(ctx, s.Address(), opts...)
}

// parseContent resolves the effective media type, parses, and
// canonicalizes, returning the document with its metadata-derived
// policy. Nothing is committed here.
func (s *Session) parseContent(content, declared string) (*dom.Document, *csp.Policy, error) {
	mediaType := declared
	if mediaType == "" {
		mediaType = s.sniffer.Sniff(content)
	}
	if mediaType == "" {
		mediaType = parse.MediaTypeHTML
	}

	root, err := s.parser.Parse(content, mediaType)
	if err != nil {
		if s.metrics != nil {
			s.metrics.ObserveParse(mediaType, "error")
		}
		return nil, nil, err
	}
	if s.metrics != nil {
		s.metrics.ObserveParse(mediaType, "ok")
	}

	doc := dom.Adopt(root, mediaType)
	return doc, csp.FromDocument(doc), nil
}

func (s *Session) observeLoad(outcome string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveLoad(outcome, time.Since(start))
	}
}
