package dom

import (
	"bytes"
	"errors"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	// ErrOutOfRange reports an index or length access beyond the live bounds
	// of a child list.
	ErrOutOfRange = errors.New("dom: index out of range")

	// ErrTreeModified reports that the tree changed underneath an active
	// cursor: the node the cursor was positioned on is no longer attached
	// to the element being traversed.
	ErrTreeModified = errors.New("dom: tree modified during traversal")
)

// IsElement reports whether n is an element-kind node.
func IsElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

// NewElement creates a detached element with the given tag.
func NewElement(tag string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

// NewText creates a detached text node.
func NewText(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

// FirstElementChild returns n's first element-kind child, or nil.
func FirstElementChild(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

// NextElementSibling returns the next element-kind sibling of n, or nil.
func NextElementSibling(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

// Detach removes n from its parent. Detaching an already detached node
// is a no-op.
func Detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Replace swaps newNode into oldNode's tree position and detaches
// oldNode. newNode is detached from any previous parent first.
func Replace(oldNode, newNode *html.Node) {
	parent := oldNode.Parent
	if parent == nil {
		return
	}
	Detach(newNode)
	parent.InsertBefore(newNode, oldNode)
	parent.RemoveChild(oldNode)
}

// WalkElements visits every element under root in document order,
// including root itself when it is an element. The visit function
// returns false to stop the walk early.
func WalkElements(root *html.Node, visit func(*html.Node) bool) {
	stopped := false
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if stopped {
			return
		}
		if n.Type == html.ElementNode && !visit(n) {
			stopped = true
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
}

// FindElement returns the first element with the given tag under root,
// or nil.
func FindElement(root *html.Node, tag string) *html.Node {
	var found *html.Node
	WalkElements(root, func(n *html.Node) bool {
		if n.Data == tag {
			found = n
			return false
		}
		return true
	})
	return found
}

// Text collects the text content under n, trimmed of surrounding
// whitespace.
func Text(n *html.Node) string {
	var buf bytes.Buffer
	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(n)
	return strings.TrimSpace(buf.String())
}
