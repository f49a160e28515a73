package dom

// NodeKind discriminates the node variants stored in the arena.
type NodeKind int

const (
	// ElementNode is a markup element with a tag name, attributes,
	// classes, and children.
	ElementNode NodeKind = iota
	// TextNode is a leaf holding character data.
	TextNode
	// RootNode is the document root. It has children but no parent
	// and no siblings; a Document owns exactly one.
	RootNode
)

// Attribute is a single name/value pair on an element. Attributes keep
// their document order.
type Attribute struct {
	Name  string
	Value string
}

// Node is a node in the document tree. Which fields are meaningful
// depends on Kind: elements use Tag, Attributes and Classes; text
// nodes use Text; the root uses neither. Relationship handles are
// maintained by Document and must not be modified directly.
type Node struct {
	Kind NodeKind

	Tag        string      // elements only
	Attributes []Attribute // elements only, document order
	Classes    []string    // elements only, parsed from the class attribute
	Text       string      // text nodes only

	Parent      NodeHandle
	FirstChild  NodeHandle
	LastChild   NodeHandle
	PrevSibling NodeHandle
	NextSibling NodeHandle
}

// NewElement returns a detached element node.
func NewElement(tag string) Node {
	return Node{Kind: ElementNode, Tag: tag}
}

// NewText returns a detached text node.
func NewText(text string) Node {
	return Node{Kind: TextNode, Text: text}
}

// Attr returns the value of the named attribute and whether it is
// present.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// HasClass reports whether the element carries the given class name.
func (n *Node) HasClass(name string) bool {
	for _, c := range n.Classes {
		if c == name {
			return true
		}
	}
	return false
}

// ID returns the element's id attribute, or "".
func (n *Node) ID() string {
	v, _ := n.Attr("id")
	return v
}
