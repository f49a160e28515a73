package css

import "github.com/lacewing/lacewing/dom"

// ComputeStyles resolves the active style of every node in doc in one
// top-down traversal and returns the styled tree. Rules come from the
// optional base stylesheet followed by stylesheets parsed from the
// document's collected style texts, all merged into one rule index so
// source order is preserved across sheets.
func ComputeStyles(doc *dom.Document, base *Stylesheet) *StyledNode {
	idx := NewRuleIndex()
	if base != nil {
		idx.AddStylesheet(base)
	}
	for _, text := range doc.StyleTexts() {
		idx.AddStylesheet(ParseStylesheet(text))
	}
	idx.Finalize()
	return resolveNode(doc, doc.Root(), idx, emptyInherited)
}

// resolveNode computes one node's style and recurses into its
// children. inherited is the nearest ancestor's snapshot; it is passed
// through unchanged unless this node overrides an inheritable
// property.
func resolveNode(doc *dom.Document, h dom.NodeHandle, idx *RuleIndex, inherited *InheritedStyle) *StyledNode {
	sn := &StyledNode{Handle: h, Inherited: inherited}
	n := doc.Node(h)
	if n == nil {
		return sn
	}

	childContext := inherited
	if n.Kind == dom.ElementNode {
		sn.Local = matchDeclarations(doc, h, n, idx)

		if style, ok := n.Attr("style"); ok {
			// Inline declarations apply last, unconditionally.
			for _, d := range ParseInlineDeclarations(style) {
				sn.Local[d.Property] = d.Value
			}
		}

		// Copy-on-write: only allocate a child snapshot when this
		// element actually sets an inheritable property.
		if hasInheritable(sn.Local) {
			childContext = inherited.overlay(sn.Local)
		}
	}

	for c := doc.FirstChildOf(h); !c.IsZero(); c = doc.NextSiblingOf(c) {
		sn.Children = append(sn.Children, resolveNode(doc, c, idx, childContext))
	}
	return sn
}

func hasInheritable(local map[string]Value) bool {
	for prop := range local {
		if inheritableProperties[prop] {
			return true
		}
	}
	return false
}

// matchDeclarations collects the element's candidate bucket slices,
// merges them in cascade order, re-validates each candidate's full
// selector, and folds the surviving declarations into a property map
// where later writes win.
func matchDeclarations(doc *dom.Document, h dom.NodeHandle, n *dom.Node, idx *RuleIndex) map[string]Value {
	// Bucket order here also breaks exact (specificity, order) ties in
	// the merge: id, classes, tag, universal.
	slices := make([][]IndexedRule, 0, 3+len(n.Classes))
	if id := n.ID(); id != "" {
		if b := idx.IDBucket(id); len(b) > 0 {
			slices = append(slices, b)
		}
	}
	for _, class := range n.Classes {
		if b := idx.ClassBucket(class); len(b) > 0 {
			slices = append(slices, b)
		}
	}
	if b := idx.TagBucket(n.Tag); len(b) > 0 {
		slices = append(slices, b)
	}
	if b := idx.UniversalBucket(); len(b) > 0 {
		slices = append(slices, b)
	}

	local := make(map[string]Value)
	mergeCandidates(slices, func(entry IndexedRule) {
		// Bucket placement only guarantees the rightmost compound is
		// plausible; ancestor combinators still need confirmation.
		if !Matches(entry.Selector, h, doc) {
			return
		}
		for _, d := range entry.Declarations {
			local[d.Property] = d.Value
		}
	})
	return local
}

// mergeCandidates performs a k-way merge over pre-sorted bucket
// slices, yielding entries in globally ascending (specificity,
// insertion order). k is tiny (id + classes + tag + universal), so a
// linear scan over the heads beats a heap.
func mergeCandidates(slices [][]IndexedRule, yield func(IndexedRule)) {
	heads := make([]int, len(slices))
	for {
		best := -1
		for i, s := range slices {
			if heads[i] >= len(s) {
				continue
			}
			if best < 0 || cascadeBefore(s[heads[i]], slices[best][heads[best]]) {
				best = i
			}
		}
		if best < 0 {
			return
		}
		yield(slices[best][heads[best]])
		heads[best]++
	}
}

// cascadeBefore reports whether a applies strictly before b in cascade
// order.
func cascadeBefore(a, b IndexedRule) bool {
	if c := a.Selector.Spec.Compare(b.Selector.Spec); c != 0 {
		return c < 0
	}
	return a.Order < b.Order
}
