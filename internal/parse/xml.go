package parse

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// parseXML decodes generic XML into an element tree. The result is a
// root-less fragment: the document element with no surrounding
// html/head/body shape.
func parseXML(content string) (*html.Node, error) {
	dec := xml.NewDecoder(strings.NewReader(content))

	var root *html.Node
	var stack []*html.Node
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &Error{MediaType: MediaTypeXML, Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &html.Node{Type: html.ElementNode, Data: t.Name.Local}
			for _, a := range t.Attr {
				el.Attr = append(el.Attr, html.Attribute{
					Namespace: a.Name.Space,
					Key:       a.Name.Local,
					Val:       a.Value,
				})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, &Error{MediaType: MediaTypeXML, Err: errors.New("multiple document elements")}
				}
				root = el
			} else {
				stack[len(stack)-1].AppendChild(el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				// CharData is only valid until the next Token call
				stack[len(stack)-1].AppendChild(&html.Node{Type: html.TextNode, Data: string(t)})
			}
		case xml.Comment:
			if len(stack) > 0 {
				stack[len(stack)-1].AppendChild(&html.Node{Type: html.CommentNode, Data: string(t)})
			}
		}
	}

	if root == nil {
		return nil, &Error{MediaType: MediaTypeXML, Err: errors.New("no document element")}
	}
	return root, nil
}
