// Package html parses markup into a dom.Document using
// golang.org/x/net/html as the underlying parser implementation.
package html

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/lacewing/lacewing/dom"
)

// Parse reads HTML from r and builds a document. Elements keep their
// attributes in source order; text nodes that are only whitespace are
// dropped. The text content of every <style> element is additionally
// collected into the document's style-text side table.
func Parse(r io.Reader) (*dom.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	doc := dom.NewDocument()
	convertChildren(doc, doc.Root(), root)
	return doc, nil
}

// ParseString parses HTML from a string.
func ParseString(s string) (*dom.Document, error) {
	return Parse(strings.NewReader(s))
}

// convertChildren walks the children of src and appends their
// converted forms under parent.
func convertChildren(doc *dom.Document, parent dom.NodeHandle, src *html.Node) {
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			h := convertElement(doc, c)
			doc.AppendChild(parent, h)
			if c.Data == "style" {
				doc.AddStyleText(textContent(c))
			}
			convertChildren(doc, h, c)
		case html.TextNode:
			if strings.TrimSpace(c.Data) == "" {
				continue
			}
			doc.AppendChild(parent, doc.Insert(dom.NewText(c.Data)))
		case html.DocumentNode:
			convertChildren(doc, parent, c)
		}
		// Comments and doctypes carry no style or script semantics and
		// are not represented in the document tree.
	}
}

// convertElement builds a detached element from an x/net node,
// carrying attributes over in source order.
func convertElement(doc *dom.Document, src *html.Node) dom.NodeHandle {
	n := dom.NewElement(src.Data)
	for _, a := range src.Attr {
		n.Attributes = append(n.Attributes, dom.Attribute{Name: a.Key, Value: a.Val})
	}
	return doc.Insert(n)
}

// textContent concatenates the text descendants of an x/net node.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
			return
		}
		for gc := c.FirstChild; gc != nil; gc = gc.NextSibling {
			walk(gc)
		}
	}
	walk(n)
	return sb.String()
}
