package dom

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// Find runs a CSS selector against the document.
func (d *Document) Find(selector string) *goquery.Selection {
	return goquery.NewDocumentFromNode(d.root).Find(selector)
}

// XPath runs an XPath expression against the document and returns the
// matching nodes.
func (d *Document) XPath(expr string) ([]*html.Node, error) {
	return htmlquery.QueryAll(d.root, expr)
}

// Render serializes the document back to markup.
func (d *Document) Render() (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, d.root); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Text collects the document's visible text content.
func (d *Document) Text() string {
	return Text(d.root)
}
