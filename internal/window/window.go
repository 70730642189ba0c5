// Package window provides the inert browser-global facade attached to
// a document. Members that only make sense with a rendering engine or
// user interaction report ErrUnsupported instead of pretending to work.
package window

import (
	"errors"

	"github.com/lumen-web/lumen/internal/dom"
)

// ErrUnsupported marks facade members that are inert in a headless
// engine.
var ErrUnsupported = errors.New("window: operation not supported")

// DefaultUserAgent identifies the engine on the navigator facade.
const DefaultUserAgent = "Lumen/1.0 (headless)"

// Handler is an event callback slot on the window.
type Handler func(event string)

// Window is the global object derived from a document. One window
// exists per document generation; replacing the document invalidates
// the window rather than patching it.
type Window struct {
	doc      *dom.Document
	nav      Navigator
	history  *History
	local    *Storage
	session  *Storage
	handlers map[string]Handler
}

// New creates a window for doc.
func New(doc *dom.Document) *Window {
	return &Window{
		doc:      doc,
		nav:      Navigator{UserAgent: DefaultUserAgent, Language: "en-US", Online: false},
		history:  &History{},
		local:    NewStorage(),
		session:  NewStorage(),
		handlers: make(map[string]Handler),
	}
}

// Document returns the document this window was derived from.
func (w *Window) Document() *dom.Document {
	return w.doc
}

// Navigator returns the navigator facade.
func (w *Window) Navigator() Navigator {
	return w.nav
}

// History returns the window's history list.
func (w *Window) History() *History {
	return w.history
}

// LocalStorage returns the window's local storage area.
func (w *Window) LocalStorage() *Storage {
	return w.local
}

// SessionStorage returns the window's session storage area.
func (w *Window) SessionStorage() *Storage {
	return w.session
}

// On returns the handler registered for event, if any.
func (w *Window) On(event string) (Handler, bool) {
	h, ok := w.handlers[event]
	return h, ok
}

// SetOn registers (or, with a nil handler, clears) the handler slot
// for event. Unknown event names are rejected.
func (w *Window) SetOn(event string, h Handler) error {
	if _, ok := eventIndex[event]; !ok {
		return ErrUnsupported
	}
	if h == nil {
		delete(w.handlers, event)
		return nil
	}
	w.handlers[event] = h
	return nil
}

// Dispatch invokes the handler for event and reports whether one was
// registered.
func (w *Window) Dispatch(event string) bool {
	h, ok := w.handlers[event]
	if !ok {
		return false
	}
	h(event)
	return true
}

// Alert is inert in a headless engine.
func (w *Window) Alert(string) error {
	return ErrUnsupported
}

// Confirm is inert in a headless engine.
func (w *Window) Confirm(string) (bool, error) {
	return false, ErrUnsupported
}

// Prompt is inert in a headless engine.
func (w *Window) Prompt(string) (string, error) {
	return "", ErrUnsupported
}
