package css

import "github.com/lacewing/lacewing/dom"

// inheritableProperties is the fixed allow-list of properties that
// propagate from a node to its descendants.
var inheritableProperties = map[string]bool{
	"color":       true,
	"font-family": true,
	"font-size":   true,
	"font-weight": true,
	"line-height": true,
	"text-align":  true,
	"visibility":  true,
}

// IsInheritable reports whether the property propagates to children
// that do not set it locally.
func IsInheritable(property string) bool {
	return inheritableProperties[property]
}

// InheritedStyle is a snapshot of inheritable resolved properties.
// Snapshots are immutable once published and shared by pointer across
// many styled nodes; a new one is allocated only when a node overrides
// an inheritable property (copy-on-write).
type InheritedStyle struct {
	props map[string]Value
}

// emptyInherited is the shared snapshot handed to the root.
var emptyInherited = &InheritedStyle{}

// Get returns the inherited value for property, if any.
func (s *InheritedStyle) Get(property string) (Value, bool) {
	v, ok := s.props[property]
	return v, ok
}

// Len returns the number of properties in the snapshot.
func (s *InheritedStyle) Len() int {
	return len(s.props)
}

// overlay returns a snapshot extending s with the given inheritable
// values. The receiver is not modified.
func (s *InheritedStyle) overlay(locals map[string]Value) *InheritedStyle {
	next := &InheritedStyle{props: make(map[string]Value, len(s.props)+len(locals))}
	for k, v := range s.props {
		next.props[k] = v
	}
	for k, v := range locals {
		if inheritableProperties[k] {
			next.props[k] = v
		}
	}
	return next
}

// StyledNode pairs a document node with its resolved style: the
// declarations that apply to the node itself and the inherited
// snapshot from its nearest ancestor. Children appear in document
// order, 1:1 with the document tree; consumers navigate both trees in
// lockstep via Handle.
type StyledNode struct {
	Handle    dom.NodeHandle
	Local     map[string]Value
	Inherited *InheritedStyle
	Children  []*StyledNode
}

// Value returns the resolved value for property, consulting local
// declarations first and the inherited snapshot second. A property in
// neither place has no entry; consumers apply their own defaults.
func (sn *StyledNode) Value(property string) (Value, bool) {
	if v, ok := sn.Local[property]; ok {
		return v, true
	}
	if sn.Inherited != nil && inheritableProperties[property] {
		return sn.Inherited.Get(property)
	}
	return Value{}, false
}

// Length returns the pixel magnitude of property, or 0 when unset or
// not an absolute length.
func (sn *StyledNode) Length(property string) float64 {
	v, _ := sn.Value(property)
	return v.Px()
}

// ColorOf returns the resolved color for property.
func (sn *StyledNode) ColorOf(property string) (Color, bool) {
	v, ok := sn.Value(property)
	if !ok || v.Type != ColorValue {
		return Color{}, false
	}
	return v.Color, true
}

// Keyword returns the resolved keyword for property, or "".
func (sn *StyledNode) Keyword(property string) string {
	v, ok := sn.Value(property)
	if !ok {
		return ""
	}
	switch v.Type {
	case KeywordValue:
		return v.Keyword
	case AutoValue:
		return "auto"
	}
	return ""
}
