// Package css implements the style-resolution pipeline: selector
// parsing and matching, stylesheet parsing with recovery, a
// specificity-bucketed rule index, and the cascade that turns a
// dom.Document into a styled tree.
package css

import "strings"

// SimpleKind is the kind of a single selector atom.
type SimpleKind int

const (
	// TagSelector matches an element's tag name.
	TagSelector SimpleKind = iota
	// ClassSelector matches one of an element's class names.
	ClassSelector
	// IDSelector matches the element's id attribute.
	IDSelector
	// PseudoClassSelector is carried in the AST but matches
	// unconditionally; DOM-state pseudo-classes are not evaluated.
	PseudoClassSelector
	// UniversalSelector matches any element.
	UniversalSelector
)

// SimpleSelector is one atom of a compound selector.
type SimpleSelector struct {
	Kind SimpleKind
	Name string
}

// Specificity is the (id, class, type) precedence triple. Index 0
// counts id atoms, 1 counts class and pseudo-class atoms, 2 counts
// tag atoms.
type Specificity [3]int

// Compare returns -1, 0, or 1 ordering s against other.
func (s Specificity) Compare(other Specificity) int {
	for i := range s {
		if s[i] != other[i] {
			if s[i] > other[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// Less reports whether s is strictly lower precedence than other.
func (s Specificity) Less(other Specificity) bool {
	return s.Compare(other) < 0
}

// Add returns the coordinate-wise sum of s and other.
func (s Specificity) Add(other Specificity) Specificity {
	for i, v := range other {
		s[i] += v
	}
	return s
}

// CompoundSelector is a sequence of simple selectors that all apply to
// one element (e.g. div.card#main), with its specificity precomputed
// at parse time.
type CompoundSelector struct {
	Parts []SimpleSelector
	Spec  Specificity
}

// Combinator is the relationship between a compound selector and its
// ancestor compound.
type Combinator int

const (
	// Descendant matches any ancestor.
	Descendant Combinator = iota
	// Child matches only the immediate parent.
	Child
)

// AncestorLink is one (combinator, ancestor compound) step of a
// complex selector, walked from the subject outward.
type AncestorLink struct {
	Combinator Combinator
	Compound   CompoundSelector
}

// ComplexSelector is a rightmost compound selector plus the chain of
// ancestor links ordered nearest ancestor first. Spec is the sum of
// all compound specificities in the chain.
type ComplexSelector struct {
	Last      CompoundSelector
	Ancestors []AncestorLink
	Spec      Specificity
}

// ParseSelectorList parses a comma-separated selector list. Malformed
// alternatives (in this grammar: alternatives that reduce to an empty
// compound) are dropped; the rest of the list is kept.
func ParseSelectorList(raw string) []*ComplexSelector {
	var out []*ComplexSelector
	for _, alt := range strings.Split(raw, ",") {
		if cs := parseComplexSelector(alt); cs != nil {
			out = append(out, cs)
		}
	}
	return out
}

// parseComplexSelector parses one selector alternative. It returns nil
// when the alternative has no non-empty compound (e.g. a bare ">" or
// an empty string).
func parseComplexSelector(raw string) *ComplexSelector {
	type segment struct {
		comb Combinator
		text string
	}
	var segments []segment

	// Split into compound segments left to right. Whitespace separates
	// descendants; '>' marks the following segment as a child. The
	// combinator recorded on a segment is its relationship to the
	// segment on its left.
	next := Descendant
	var current strings.Builder
	flush := func() {
		text := strings.TrimSpace(current.String())
		current.Reset()
		if text != "" {
			segments = append(segments, segment{comb: next, text: text})
			next = Descendant
		}
	}
	for _, ch := range strings.TrimSpace(raw) {
		switch {
		case ch == '>':
			flush()
			next = Child
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			flush()
		default:
			current.WriteRune(ch)
		}
	}
	flush()

	if len(segments) == 0 {
		return nil
	}

	var spec Specificity
	compounds := make([]CompoundSelector, len(segments))
	for i, seg := range segments {
		compounds[i] = parseCompoundSelector(seg.text)
		if len(compounds[i].Parts) == 0 {
			return nil
		}
		spec = spec.Add(compounds[i].Spec)
	}

	// Reverse into a rightmost-anchored chain: the last segment is the
	// subject, and each ancestor link pairs the combinator that sat to
	// the left of the previous subject.
	last := len(segments) - 1
	cs := &ComplexSelector{Last: compounds[last], Spec: spec}
	for i := last; i > 0; i-- {
		cs.Ancestors = append(cs.Ancestors, AncestorLink{
			Combinator: segments[i].comb,
			Compound:   compounds[i-1],
		})
	}
	return cs
}

// parseCompoundSelector parses a single compound like div.card#main.
// An optional leading bare tag or '*' is followed by any number of
// .class, #id, and :pseudo-class atoms.
func parseCompoundSelector(s string) CompoundSelector {
	var c CompoundSelector

	rest := s
	if rest != "" && rest[0] != '.' && rest[0] != '#' && rest[0] != ':' {
		name, tail := takeName(rest)
		rest = tail
		if name == "*" {
			c.Parts = append(c.Parts, SimpleSelector{Kind: UniversalSelector})
		} else if name != "" {
			c.Parts = append(c.Parts, SimpleSelector{Kind: TagSelector, Name: strings.ToLower(name)})
			c.Spec[2]++
		}
	}

	for rest != "" {
		prefix := rest[0]
		if prefix != '.' && prefix != '#' && prefix != ':' {
			break
		}
		name, tail := takeName(rest[1:])
		rest = tail
		if name == "" {
			continue
		}
		switch prefix {
		case '#':
			c.Parts = append(c.Parts, SimpleSelector{Kind: IDSelector, Name: name})
			c.Spec[0]++
		case '.':
			c.Parts = append(c.Parts, SimpleSelector{Kind: ClassSelector, Name: name})
			c.Spec[1]++
		case ':':
			// Pseudo-classes carry class-level specificity.
			c.Parts = append(c.Parts, SimpleSelector{Kind: PseudoClassSelector, Name: strings.ToLower(name)})
			c.Spec[1]++
		}
	}
	return c
}

// takeName splits off the leading run of name characters, stopping at
// the next atom prefix.
func takeName(s string) (name, rest string) {
	end := strings.IndexAny(s, ".#:")
	if end < 0 {
		return s, ""
	}
	return s[:end], s[end:]
}

// String reconstructs selector text from the AST, mainly for debug
// output and test failure messages.
func (cs *ComplexSelector) String() string {
	parts := []string{cs.Last.String()}
	for _, link := range cs.Ancestors {
		sep := " "
		if link.Combinator == Child {
			sep = " > "
		}
		parts = append([]string{link.Compound.String() + sep}, parts...)
	}
	return strings.Join(parts, "")
}

func (c CompoundSelector) String() string {
	var b strings.Builder
	for _, p := range c.Parts {
		switch p.Kind {
		case TagSelector:
			b.WriteString(p.Name)
		case UniversalSelector:
			b.WriteString("*")
		case IDSelector:
			b.WriteString("#" + p.Name)
		case ClassSelector:
			b.WriteString("." + p.Name)
		case PseudoClassSelector:
			b.WriteString(":" + p.Name)
		}
	}
	return b.String()
}
