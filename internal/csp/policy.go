// Package csp parses Content-Security-Policy directive sets and
// derives them from document metadata.
package csp

import (
	"strings"

	"github.com/lumen-web/lumen/internal/dom"
	"golang.org/x/net/html"
)

// HeaderName is the transport header carrying a policy. A policy from
// this header overwrites any policy derived from document metadata.
const HeaderName = "Content-Security-Policy"

// metaEquiv is the http-equiv value naming a policy embedded in markup.
const metaEquiv = "content-security-policy"

// Policy is a parsed directive set. Directives keep their header order;
// within the same header the first occurrence of a directive name wins.
type Policy struct {
	directives map[string][]string
	order      []string
}

// Parse parses a serialized policy such as
// "default-src 'none'; img-src *".
func Parse(header string) *Policy {
	p := &Policy{directives: make(map[string][]string)}
	for _, part := range strings.Split(header, ";") {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		name := strings.ToLower(fields[0])
		if _, ok := p.directives[name]; ok {
			continue
		}
		p.directives[name] = fields[1:]
		p.order = append(p.order, name)
	}
	return p
}

// FromDocument derives a policy from the document's embedded metadata
// (a meta element with http-equiv "content-security-policy"), or nil
// when the document carries none.
func FromDocument(doc *dom.Document) *Policy {
	head := doc.Head()
	if head == nil {
		return nil
	}
	var policy *Policy
	dom.WalkElements(head, func(n *html.Node) bool {
		if n.Data != "meta" {
			return true
		}
		attrs := dom.Attributes(n)
		equiv, _ := attrs.Get("http-equiv")
		if !strings.EqualFold(equiv, metaEquiv) {
			return true
		}
		if content, ok := attrs.Get("content"); ok {
			policy = Parse(content)
			return false
		}
		return true
	})
	return policy
}

// Directive returns the source list of a directive, if present.
func (p *Policy) Directive(name string) ([]string, bool) {
	sources, ok := p.directives[strings.ToLower(name)]
	return sources, ok
}

// Directives returns the directive names in header order.
func (p *Policy) Directives() []string {
	return append([]string(nil), p.order...)
}

// Allows reports whether source is permitted for the given directive,
// falling back to default-src when the directive is absent. A missing
// fallback permits everything.
func (p *Policy) Allows(directive, source string) bool {
	sources, ok := p.Directive(directive)
	if !ok {
		sources, ok = p.Directive("default-src")
		if !ok {
			return true
		}
	}
	for _, s := range sources {
		switch s {
		case "'none'":
			return false
		case "*":
			return true
		case source:
			return true
		}
	}
	return false
}

// String reserializes the policy in directive order.
func (p *Policy) String() string {
	parts := make([]string, 0, len(p.order))
	for _, name := range p.order {
		fields := append([]string{name}, p.directives[name]...)
		parts = append(parts, strings.Join(fields, " "))
	}
	return strings.Join(parts, "; ")
}
