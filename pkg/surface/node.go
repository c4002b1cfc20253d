// Package surface models the editable surface as a generic labeled tree.
//
// A tree is built either by hand or by parsing a markup fragment with Parse,
// and can be rendered back with HTML. The serializer and the caret mapper
// work only on this tree, never on a rendering runtime.
package surface

import "unicode/utf8"

// NodeKind classifies a surface node.
type NodeKind uint8

// Node kinds.
const (
	// NodeRoot is the container that holds the top-level blocks.
	NodeRoot NodeKind = iota
	NodeElement
	NodeText
	NodeComment
	NodeDoctype
)

// String returns a human-readable name for the kind.
func (k NodeKind) String() string {
	switch k {
	case NodeRoot:
		return "Root"
	case NodeElement:
		return "Element"
	case NodeText:
		return "Text"
	case NodeComment:
		return "Comment"
	case NodeDoctype:
		return "Doctype"
	default:
		return "Unknown"
	}
}

// Attr is a single element attribute.
type Attr struct {
	Key string
	Val string
}

// Node is a single node of the surface tree.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Tag is the lowercase element name for NodeElement.
	Tag string

	// Attrs holds element attributes in source order.
	Attrs []Attr

	// Text holds the content of text, comment and doctype nodes.
	Text string

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node
}

// IsElement reports whether n is an element with the given tag.
// An empty tag matches any element.
func (n *Node) IsElement(tag string) bool {
	return n != nil && n.Kind == NodeElement && (tag == "" || n.Tag == tag)
}

// IsText reports whether n is a text node.
func (n *Node) IsText() bool {
	return n != nil && n.Kind == NodeText
}

// Attr returns the value of the attribute key.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets key to val, replacing any existing value.
func (n *Node) SetAttr(key, val string) {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			n.Attrs[i].Val = val
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Key: key, Val: val})
}

// Len returns the length of a text node in code points; 0 for other kinds.
func (n *Node) Len() int {
	if !n.IsText() {
		return 0
	}
	return utf8.RuneCountInString(n.Text)
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// Child returns the i-th direct child, or nil.
func (n *Node) Child(i int) *Node {
	if i < 0 {
		return nil
	}
	child := n.FirstChild
	for ; child != nil && i > 0; i-- {
		child = child.Next
	}
	return child
}

// Index returns the position of n among its siblings, or -1 without a parent.
func (n *Node) Index() int {
	if n.Parent == nil {
		return -1
	}
	i := 0
	for sib := n.Prev; sib != nil; sib = sib.Prev {
		i++
	}
	return i
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.Parent {
		if cur == n {
			return true
		}
	}
	return false
}

// Block returns the ancestor of n (or n itself) that is a direct child of
// root, or nil when n is root or outside it.
func (n *Node) Block(root *Node) *Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Parent == root {
			return cur
		}
	}
	return nil
}
