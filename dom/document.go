// Package dom provides the arena-backed document tree that style
// computation runs against. Nodes are addressed by generation-checked
// handles rather than pointers, so references held by external
// collaborators (a script runtime, an event handler) can go stale
// without ever dangling: a stale handle simply resolves to nothing.
//
// The tree is intrusive: every node carries parent, first/last-child
// and sibling handles, giving O(1) relationship reads and O(1)
// append/detach. All mutation goes through Document methods, which
// keep the sibling chain and the id index consistent. The store is
// single-writer; callers must serialize mutation and style
// computation.
package dom

import "strings"

// Document owns the node arena, the root node, the id-attribute index
// and the raw style-sheet text fragments collected from style-bearing
// elements.
type Document struct {
	nodes      arena
	root       NodeHandle
	idIndex    map[string]NodeHandle
	styleTexts []string
}

// NewDocument creates an empty document containing only the root node.
func NewDocument() *Document {
	d := &Document{
		idIndex: make(map[string]NodeHandle),
	}
	d.root = d.nodes.insert(Node{Kind: RootNode})
	return d
}

// Root returns the handle of the document root.
func (d *Document) Root() NodeHandle {
	return d.root
}

// Len returns the number of live nodes, including the root.
func (d *Document) Len() int {
	return d.nodes.len()
}

// Node returns the node for h, or nil if h is stale or unknown.
// The returned pointer is valid until the next insertion or removal.
// Attribute and relationship mutation must go through Document
// methods; mutating the returned node directly bypasses the id index
// and the sibling-chain bookkeeping.
func (d *Document) Node(h NodeHandle) *Node {
	return d.nodes.get(h)
}

// Insert adds a node to the arena, always detached. Any relationship
// handles on the argument are cleared. If the node is an element its
// class list is derived from the class attribute and any id attribute
// is registered in the id index.
func (d *Document) Insert(node Node) NodeHandle {
	node.Parent = NodeHandle{}
	node.FirstChild = NodeHandle{}
	node.LastChild = NodeHandle{}
	node.PrevSibling = NodeHandle{}
	node.NextSibling = NodeHandle{}
	if node.Kind == ElementNode {
		if class, ok := node.Attr("class"); ok {
			node.Classes = splitClasses(class)
		}
	}
	h := d.nodes.insert(node)
	if node.Kind == ElementNode {
		if id, ok := node.Attr("id"); ok && id != "" {
			d.idIndex[id] = h
		}
	}
	return h
}

// AppendChild attaches child as the last child of parent. If child is
// currently attached elsewhere it is detached first, so a node is
// never linked under two parents. Appending to a text node, or with a
// stale handle on either side, is a no-op.
func (d *Document) AppendChild(parent, child NodeHandle) {
	p := d.nodes.get(parent)
	c := d.nodes.get(child)
	if p == nil || c == nil || p.Kind == TextNode || c.Kind == RootNode || parent == child {
		return
	}
	if !c.Parent.IsZero() {
		d.RemoveChild(c.Parent, child)
	}
	c.Parent = parent
	c.NextSibling = NodeHandle{}
	c.PrevSibling = p.LastChild
	if last := d.nodes.get(p.LastChild); last != nil {
		last.NextSibling = child
	} else {
		p.FirstChild = child
	}
	p.LastChild = child
}

// RemoveChild unlinks child from parent's child list and clears its
// parent and sibling handles. The node stays in the arena, detached.
// A no-op unless child is currently a child of parent.
func (d *Document) RemoveChild(parent, child NodeHandle) {
	p := d.nodes.get(parent)
	c := d.nodes.get(child)
	if p == nil || c == nil || c.Parent != parent {
		return
	}
	if prev := d.nodes.get(c.PrevSibling); prev != nil {
		prev.NextSibling = c.NextSibling
	} else {
		p.FirstChild = c.NextSibling
	}
	if next := d.nodes.get(c.NextSibling); next != nil {
		next.PrevSibling = c.PrevSibling
	} else {
		p.LastChild = c.PrevSibling
	}
	c.Parent = NodeHandle{}
	c.PrevSibling = NodeHandle{}
	c.NextSibling = NodeHandle{}
}

// Remove detaches the node from its parent, removes every descendant,
// purges id-index entries, and frees the arena slots, invalidating all
// handles into the subtree. It returns the removed node's payload.
// The root cannot be removed. Removing a stale handle is a no-op.
func (d *Document) Remove(h NodeHandle) (Node, bool) {
	n := d.nodes.get(h)
	if n == nil || n.Kind == RootNode {
		return Node{}, false
	}
	if !n.Parent.IsZero() {
		d.RemoveChild(n.Parent, h)
	}

	// Iterative post-order release of the subtree via the intrusive
	// child chain. The top node's payload is captured before its slot
	// is freed.
	payload := *n
	stack := []NodeHandle{h}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := d.nodes.get(cur)
		if node == nil {
			continue
		}
		for child := node.FirstChild; !child.IsZero(); {
			next := NodeHandle{}
			if cn := d.nodes.get(child); cn != nil {
				next = cn.NextSibling
			}
			stack = append(stack, child)
			child = next
		}
		if node.Kind == ElementNode {
			if id := node.ID(); id != "" && d.idIndex[id] == cur {
				delete(d.idIndex, id)
			}
		}
		d.nodes.remove(cur)
	}
	return payload, true
}

// ParentOf returns the parent handle, or the zero handle if h is
// stale, unknown, or unattached.
func (d *Document) ParentOf(h NodeHandle) NodeHandle {
	if n := d.nodes.get(h); n != nil {
		return n.Parent
	}
	return NodeHandle{}
}

// FirstChildOf returns the first child handle, or the zero handle.
func (d *Document) FirstChildOf(h NodeHandle) NodeHandle {
	if n := d.nodes.get(h); n != nil {
		return n.FirstChild
	}
	return NodeHandle{}
}

// LastChildOf returns the last child handle, or the zero handle.
func (d *Document) LastChildOf(h NodeHandle) NodeHandle {
	if n := d.nodes.get(h); n != nil {
		return n.LastChild
	}
	return NodeHandle{}
}

// NextSiblingOf returns the next sibling handle, or the zero handle.
func (d *Document) NextSiblingOf(h NodeHandle) NodeHandle {
	if n := d.nodes.get(h); n != nil {
		return n.NextSibling
	}
	return NodeHandle{}
}

// PrevSiblingOf returns the previous sibling handle, or the zero
// handle.
func (d *Document) PrevSiblingOf(h NodeHandle) NodeHandle {
	if n := d.nodes.get(h); n != nil {
		return n.PrevSibling
	}
	return NodeHandle{}
}

// Children collects the child handles of h in document order.
func (d *Document) Children(h NodeHandle) []NodeHandle {
	var out []NodeHandle
	for c := d.FirstChildOf(h); !c.IsZero(); c = d.NextSiblingOf(c) {
		out = append(out, c)
	}
	return out
}

// GetAttribute returns the named attribute of an element and whether
// it is present. Stale handles and non-elements report absent.
func (d *Document) GetAttribute(h NodeHandle, name string) (string, bool) {
	n := d.nodes.get(h)
	if n == nil || n.Kind != ElementNode {
		return "", false
	}
	return n.Attr(name)
}

// HasAttribute reports whether the element carries the named
// attribute.
func (d *Document) HasAttribute(h NodeHandle, name string) bool {
	_, ok := d.GetAttribute(h, name)
	return ok
}

// SetAttribute sets or replaces an attribute on an element. Setting
// "id" re-registers the node in the id index under the new value in
// the same operation; setting "class" reparses the class list.
func (d *Document) SetAttribute(h NodeHandle, name, value string) {
	n := d.nodes.get(h)
	if n == nil || n.Kind != ElementNode {
		return
	}
	if name == "id" {
		if old := n.ID(); old != "" && d.idIndex[old] == h {
			delete(d.idIndex, old)
		}
		if value != "" {
			d.idIndex[value] = h
		}
	}
	replaced := false
	for i := range n.Attributes {
		if n.Attributes[i].Name == name {
			n.Attributes[i].Value = value
			replaced = true
			break
		}
	}
	if !replaced {
		n.Attributes = append(n.Attributes, Attribute{Name: name, Value: value})
	}
	if name == "class" {
		n.Classes = splitClasses(value)
	}
}

// RemoveAttribute deletes an attribute from an element, purging the
// id index entry when the id attribute is removed.
func (d *Document) RemoveAttribute(h NodeHandle, name string) {
	n := d.nodes.get(h)
	if n == nil || n.Kind != ElementNode {
		return
	}
	for i := range n.Attributes {
		if n.Attributes[i].Name == name {
			if name == "id" {
				if old := n.Attributes[i].Value; old != "" && d.idIndex[old] == h {
					delete(d.idIndex, old)
				}
			}
			n.Attributes = append(n.Attributes[:i], n.Attributes[i+1:]...)
			break
		}
	}
	if name == "class" {
		n.Classes = nil
	}
}

// ElementByID returns the handle of the element whose id attribute is
// id, or the zero handle.
func (d *Document) ElementByID(id string) NodeHandle {
	return d.idIndex[id]
}

// IsAttachedToRoot reports whether h is reachable from the root by
// parent links.
func (d *Document) IsAttachedToRoot(h NodeHandle) bool {
	for !h.IsZero() {
		if h == d.root {
			return true
		}
		h = d.ParentOf(h)
	}
	return false
}

// AddStyleText appends a raw style-sheet fragment extracted from a
// style-bearing element.
func (d *Document) AddStyleText(text string) {
	d.styleTexts = append(d.styleTexts, text)
}

// StyleTexts returns the collected style-sheet fragments in document
// order.
func (d *Document) StyleTexts() []string {
	return d.styleTexts
}

func splitClasses(value string) []string {
	fields := strings.Fields(value)
	var classes []string
	for _, f := range fields {
		dup := false
		for _, c := range classes {
			if c == f {
				dup = true
				break
			}
		}
		if !dup {
			classes = append(classes, f)
		}
	}
	return classes
}
