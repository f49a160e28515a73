package dom

import (
	"fmt"
	"strings"

	"github.com/xlab/treeprint"
)

// DumpTree renders the document tree as indented ASCII art, one line
// per node, for debugging and test failure output.
func DumpTree(d *Document) string {
	tree := treeprint.New()
	tree.SetValue(nodeLabel(d, d.root))
	addBranches(d, tree, d.root)
	return tree.String()
}

func addBranches(d *Document, branch treeprint.Tree, h NodeHandle) {
	for c := d.FirstChildOf(h); !c.IsZero(); c = d.NextSiblingOf(c) {
		n := d.Node(c)
		if n == nil {
			continue
		}
		if n.FirstChild.IsZero() {
			branch.AddNode(nodeLabel(d, c))
		} else {
			addBranches(d, branch.AddBranch(nodeLabel(d, c)), c)
		}
	}
}

func nodeLabel(d *Document, h NodeHandle) string {
	n := d.Node(h)
	if n == nil {
		return "(stale)"
	}
	switch n.Kind {
	case RootNode:
		return "#root"
	case TextNode:
		text := n.Text
		if len(text) > 24 {
			text = text[:24] + "..."
		}
		return fmt.Sprintf("%q", text)
	default:
		var b strings.Builder
		b.WriteString(n.Tag)
		if id := n.ID(); id != "" {
			b.WriteString("#" + id)
		}
		for _, c := range n.Classes {
			b.WriteString("." + c)
		}
		return b.String()
	}
}
