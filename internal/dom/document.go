package dom

import "golang.org/x/net/html"

// DefaultContentType is the markup type assumed when none is known.
const DefaultContentType = "text/html"

// Document wraps a document-kind root node together with its content
// type. The canonical shape is doctype + html > (head, body); Adopt
// canonicalizes anything else.
type Document struct {
	root        *html.Node
	contentType string
}

// NewDocument builds the default empty document: text/html with an
// empty head and body.
func NewDocument() *Document {
	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	htmlEl := NewElement("html")
	htmlEl.AppendChild(NewElement("head"))
	htmlEl.AppendChild(NewElement("body"))
	root.AppendChild(htmlEl)
	return &Document{root: root, contentType: DefaultContentType}
}

// Adopt wraps a parsed tree in the canonical document shape. A
// document-kind root containing an html element is adopted as-is. A
// bare element becomes the single child of a fresh skeleton's body.
// Any other root has its top-level children migrated into the body in
// order. A nil root yields the default empty document.
func Adopt(root *html.Node, contentType string) *Document {
	if contentType == "" {
		contentType = DefaultContentType
	}
	if root == nil {
		d := NewDocument()
		d.contentType = contentType
		return d
	}
	if root.Type == html.DocumentNode && findChildElement(root, "html") != nil {
		return &Document{root: root, contentType: contentType}
	}
	d := NewDocument()
	d.contentType = contentType
	body := d.Body()
	if root.Type == html.ElementNode {
		Detach(root)
		body.AppendChild(root)
		return d
	}
	for c := root.FirstChild; c != nil; c = root.FirstChild {
		root.RemoveChild(c)
		body.AppendChild(c)
	}
	return d
}

// Root returns the document-kind root node.
func (d *Document) Root() *html.Node {
	return d.root
}

// ContentType returns the media type the document was built from.
func (d *Document) ContentType() string {
	return d.contentType
}

// Html returns the document's html element, or nil.
func (d *Document) Html() *html.Node {
	return findChildElement(d.root, "html")
}

// Head returns the document's head element, or nil.
func (d *Document) Head() *html.Node {
	if h := d.Html(); h != nil {
		return findChildElement(h, "head")
	}
	return nil
}

// Body returns the document's body element, or nil.
func (d *Document) Body() *html.Node {
	if h := d.Html(); h != nil {
		return findChildElement(h, "body")
	}
	return nil
}

// Title returns the text of the head's title element, or "".
func (d *Document) Title() string {
	head := d.Head()
	if head == nil {
		return ""
	}
	if t := findChildElement(head, "title"); t != nil {
		return Text(t)
	}
	return ""
}

// SetTitle sets the document title, creating the title element on
// first use.
func (d *Document) SetTitle(title string) {
	head := d.Head()
	if head == nil {
		return
	}
	t := findChildElement(head, "title")
	if t == nil {
		t = NewElement("title")
		head.AppendChild(t)
	}
	for c := t.FirstChild; c != nil; c = t.FirstChild {
		t.RemoveChild(c)
	}
	t.AppendChild(NewText(title))
}

// findChildElement scans direct children only, unlike FindElement.
func findChildElement(n *html.Node, tag string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			return c
		}
	}
	return nil
}
