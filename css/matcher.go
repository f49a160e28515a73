package css

import "github.com/lacewing/lacewing/dom"

// Matches reports whether sel matches the element at h. The rightmost
// compound is tested against the element itself; ancestor links are
// then walked upward, with backtracking across Descendant links so a
// chain like "a > b c" still matches when the nearest "b" ancestor is
// not the right one. Non-elements and stale handles never match.
func Matches(sel *ComplexSelector, h dom.NodeHandle, doc *dom.Document) bool {
	n := doc.Node(h)
	if n == nil || n.Kind != dom.ElementNode {
		return false
	}
	if !matchCompound(sel.Last, n) {
		return false
	}
	return matchAncestors(sel.Ancestors, h, doc)
}

// matchAncestors matches the remaining ancestor links starting from
// the tree position that matched the previous compound.
func matchAncestors(links []AncestorLink, from dom.NodeHandle, doc *dom.Document) bool {
	if len(links) == 0 {
		return true
	}
	link := links[0]

	if link.Combinator == Child {
		parent := doc.ParentOf(from)
		pn := doc.Node(parent)
		if pn == nil || pn.Kind != dom.ElementNode {
			return false
		}
		if !matchCompound(link.Compound, pn) {
			return false
		}
		return matchAncestors(links[1:], parent, doc)
	}

	// Descendant: try every matching ancestor, nearest first. If the
	// rest of the chain fails from one candidate, retry from the next
	// one further up.
	for cur := doc.ParentOf(from); !cur.IsZero(); cur = doc.ParentOf(cur) {
		cn := doc.Node(cur)
		if cn == nil || cn.Kind != dom.ElementNode {
			continue
		}
		if matchCompound(link.Compound, cn) && matchAncestors(links[1:], cur, doc) {
			return true
		}
	}
	return false
}

// matchCompound tests every atom of a compound against one element.
// An empty compound never matches; parsing discards those, so hitting
// one here means the selector was constructed by hand.
func matchCompound(c CompoundSelector, n *dom.Node) bool {
	if len(c.Parts) == 0 {
		return false
	}
	for _, p := range c.Parts {
		switch p.Kind {
		case TagSelector:
			if n.Tag != p.Name {
				return false
			}
		case ClassSelector:
			if !n.HasClass(p.Name) {
				return false
			}
		case IDSelector:
			if n.ID() != p.Name {
				return false
			}
		case PseudoClassSelector:
			// DOM-state pseudo-classes are not evaluated; they match
			// unconditionally.
		case UniversalSelector:
		}
	}
	return true
}
