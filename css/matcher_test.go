package css

import (
	"testing"

	"github.com/lacewing/lacewing/dom"
)

func TestMatchCompound(t *testing.T) {
	d := dom.NewDocument()
	div := appendElement(d, d.Root(), "div", "id", "main", "class", "card highlighted")

	tests := []struct {
		selector string
		want     bool
	}{
		{"div", true},
		{"span", false},
		{"*", true},
		{".card", true},
		{".highlighted", true},
		{".missing", false},
		{"#main", true},
		{"#other", false},
		{"div.card#main", true},
		{"div.card#other", false},
		{"div:hover", true}, // pseudo-classes match unconditionally
	}
	for _, tt := range tests {
		sel := mustParseSelector(t, tt.selector)
		if got := Matches(sel, div, d); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.selector, got, tt.want)
		}
	}
}

func TestMatchCombinators(t *testing.T) {
	// <div class="parent"><p><span>Text</span></p></div>
	d := dom.NewDocument()
	parent := appendElement(d, d.Root(), "div", "class", "parent")
	p := appendElement(d, parent, "p")
	span := appendElement(d, p, "span")
	appendText(d, span, "Text")

	tests := []struct {
		selector string
		want     bool
	}{
		{".parent span", true},   // descendant at any depth
		{".parent > span", false}, // immediate parent is p
		{"p > span", true},
		{"div p span", true},
		{"div > p > span", true},
		{"section span", false},
		{".parent > p", true},
	}
	for _, tt := range tests {
		sel := mustParseSelector(t, tt.selector)
		if got := Matches(sel, span, d); got != tt.want {
			t.Errorf("Matches(%q, span) = %v, want %v", tt.selector, got, tt.want)
		}
	}
}

func TestMatchDeepDescendant(t *testing.T) {
	d := dom.NewDocument()
	top := appendElement(d, d.Root(), "article", "class", "post")
	cur := top
	for i := 0; i < 6; i++ {
		cur = appendElement(d, cur, "div")
	}
	leaf := appendElement(d, cur, "em")

	if !Matches(mustParseSelector(t, ".post em"), leaf, d) {
		t.Errorf("descendant combinator failed at depth 7")
	}
	if Matches(mustParseSelector(t, ".post > em"), leaf, d) {
		t.Errorf("child combinator matched a deep descendant")
	}
}

func TestMatchBacktracksOverDescendantLinks(t *testing.T) {
	// <section id="outer"><div class="box"><div class="box"><p>..
	// For "section > .box p" the nearest .box ancestor of p fails the
	// child link (its parent is the outer .box); the match must retry
	// with the outer .box.
	d := dom.NewDocument()
	section := appendElement(d, d.Root(), "section", "id", "outer")
	outerBox := appendElement(d, section, "div", "class", "box")
	innerBox := appendElement(d, outerBox, "div", "class", "box")
	p := appendElement(d, innerBox, "p")

	if !Matches(mustParseSelector(t, "section > .box p"), p, d) {
		t.Errorf("matcher did not backtrack to the outer .box ancestor")
	}
	// Sanity: the inner box alone cannot satisfy the chain.
	if Matches(mustParseSelector(t, "section > .box p"), outerBox, d) {
		t.Errorf("chain matched the outer box itself")
	}
	_ = innerBox
}

func TestMatchNonElements(t *testing.T) {
	d := dom.NewDocument()
	div := appendElement(d, d.Root(), "div")
	text := appendText(d, div, "hi")

	sel := mustParseSelector(t, "*")
	if Matches(sel, text, d) {
		t.Errorf("universal selector matched a text node")
	}
	if Matches(sel, d.Root(), d) {
		t.Errorf("universal selector matched the root")
	}

	stale := div
	d.Remove(div)
	if Matches(sel, stale, d) {
		t.Errorf("selector matched a stale handle")
	}
}

func TestHandConstructedEmptyCompoundNeverMatches(t *testing.T) {
	d := dom.NewDocument()
	div := appendElement(d, d.Root(), "div")
	empty := &ComplexSelector{}
	if Matches(empty, div, d) {
		t.Errorf("empty compound selector matched")
	}
}
