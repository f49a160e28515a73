package html

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lacewing/lacewing/dom"
)

// findFirst returns the first element with the given tag in document
// order.
func findFirst(d *dom.Document, tag string) dom.NodeHandle {
	var walk func(h dom.NodeHandle) dom.NodeHandle
	walk = func(h dom.NodeHandle) dom.NodeHandle {
		if n := d.Node(h); n != nil && n.Kind == dom.ElementNode && n.Tag == tag {
			return h
		}
		for c := d.FirstChildOf(h); !c.IsZero(); c = d.NextSiblingOf(c) {
			if found := walk(c); !found.IsZero() {
				return found
			}
		}
		return dom.NodeHandle{}
	}
	return walk(d.Root())
}

func TestParseBuildsTree(t *testing.T) {
	d, err := ParseString(`<html><body><div id="main"><p>Hello</p></div></body></html>`)
	require.NoError(t, err)

	div := findFirst(d, "div")
	require.False(t, div.IsZero(), "div not found")
	p := d.FirstChildOf(div)
	require.False(t, p.IsZero())
	assert.Equal(t, "p", d.Node(p).Tag)

	text := d.FirstChildOf(p)
	require.False(t, text.IsZero())
	assert.Equal(t, dom.TextNode, d.Node(text).Kind)
	assert.Equal(t, "Hello", d.Node(text).Text)
}

func TestParseAttributesInOrder(t *testing.T) {
	d, err := ParseString(`<p data-b="2" data-a="1" title="x"></p>`)
	require.NoError(t, err)

	p := findFirst(d, "p")
	require.False(t, p.IsZero())
	attrs := d.Node(p).Attributes
	require.Len(t, attrs, 3)
	assert.Equal(t, "data-b", attrs[0].Name)
	assert.Equal(t, "data-a", attrs[1].Name)
	assert.Equal(t, "title", attrs[2].Name)
}

func TestParseClassListAndIDIndex(t *testing.T) {
	d, err := ParseString(`<div id="main" class="card  highlighted card"></div>`)
	require.NoError(t, err)

	div := d.ElementByID("main")
	require.False(t, div.IsZero(), "id was not registered during parsing")
	n := d.Node(div)
	assert.Equal(t, []string{"card", "highlighted"}, n.Classes)
	assert.True(t, n.HasClass("card"))
	assert.False(t, n.HasClass("missing"))
}

func TestParseDropsWhitespaceText(t *testing.T) {
	d, err := ParseString("<div>\n  <p>kept</p>\n  </div>")
	require.NoError(t, err)

	div := findFirst(d, "div")
	children := d.Children(div)
	require.Len(t, children, 1, "whitespace-only text survived")
	assert.Equal(t, "p", d.Node(children[0]).Tag)
}

func TestParseCollectsStyleText(t *testing.T) {
	d, err := ParseString(`
		<html><head>
			<style>p { color: red }</style>
			<style>div { margin: 4px }</style>
		</head><body><p>x</p></body></html>`)
	require.NoError(t, err)

	texts := d.StyleTexts()
	require.Len(t, texts, 2)
	assert.Contains(t, texts[0], "color: red")
	assert.Contains(t, texts[1], "margin: 4px")

	// The style element itself stays in the tree.
	assert.False(t, findFirst(d, "style").IsZero())
}

func TestParseReader(t *testing.T) {
	d, err := Parse(strings.NewReader(`<span class="a">x</span>`))
	require.NoError(t, err)
	assert.False(t, findFirst(d, "span").IsZero())
}

func TestParseSkipsCommentsAndDoctype(t *testing.T) {
	d, err := ParseString(`<!DOCTYPE html><!-- note --><p>x</p>`)
	require.NoError(t, err)

	body := findFirst(d, "body")
	require.False(t, body.IsZero())
	children := d.Children(body)
	require.Len(t, children, 1)
	assert.Equal(t, "p", d.Node(children[0]).Tag)
}
