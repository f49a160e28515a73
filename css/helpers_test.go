package css

import (
	"testing"

	"github.com/lacewing/lacewing/dom"
)

// appendElement inserts an element with optional attribute pairs and
// attaches it under parent.
func appendElement(d *dom.Document, parent dom.NodeHandle, tag string, attrPairs ...string) dom.NodeHandle {
	h := d.Insert(dom.NewElement(tag))
	for i := 0; i+1 < len(attrPairs); i += 2 {
		d.SetAttribute(h, attrPairs[i], attrPairs[i+1])
	}
	d.AppendChild(parent, h)
	return h
}

// appendText inserts a text node under parent.
func appendText(d *dom.Document, parent dom.NodeHandle, text string) dom.NodeHandle {
	h := d.Insert(dom.NewText(text))
	d.AppendChild(parent, h)
	return h
}

// findStyled returns the styled node for the given handle.
func findStyled(sn *StyledNode, h dom.NodeHandle) *StyledNode {
	if sn.Handle == h {
		return sn
	}
	for _, c := range sn.Children {
		if found := findStyled(c, h); found != nil {
			return found
		}
	}
	return nil
}

// mustParseSelector parses a single-alternative selector or fails the
// test.
func mustParseSelector(t *testing.T, raw string) *ComplexSelector {
	t.Helper()
	list := ParseSelectorList(raw)
	if len(list) != 1 {
		t.Fatalf("ParseSelectorList(%q) returned %d selectors, want 1", raw, len(list))
	}
	return list[0]
}
