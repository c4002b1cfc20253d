package surface

// NewRoot creates an empty root container.
func NewRoot() *Node {
	return &Node{Kind: NodeRoot}
}

// NewElement creates an element with the given tag and attributes.
func NewElement(tag string, attrs ...Attr) *Node {
	return &Node{Kind: NodeElement, Tag: tag, Attrs: attrs}
}

// NewText creates a text node.
func NewText(text string) *Node {
	return &Node{Kind: NodeText, Text: text}
}

// El creates an element and appends children to it. It is a convenience
// for building trees by hand.
func El(tag string, children ...*Node) *Node {
	n := NewElement(tag)
	for _, c := range children {
		AppendChild(n, c)
	}
	return n
}

// AppendChild appends a child node to a parent.
// It maintains the parent/child/sibling relationships correctly.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}

	if child.Parent != nil {
		RemoveChild(child.Parent, child)
	}

	child.Parent = parent
	child.Prev = parent.LastChild
	child.Next = nil

	if parent.LastChild != nil {
		parent.LastChild.Next = child
	} else {
		parent.FirstChild = child
	}

	parent.LastChild = child
}

// InsertBefore inserts newNode before sibling.
// sibling must have a parent.
func InsertBefore(sibling, newNode *Node) {
	if sibling == nil || newNode == nil || sibling.Parent == nil {
		return
	}

	parent := sibling.Parent

	if newNode.Parent != nil {
		RemoveChild(newNode.Parent, newNode)
	}

	newNode.Parent = parent
	newNode.Prev = sibling.Prev
	newNode.Next = sibling

	if sibling.Prev != nil {
		sibling.Prev.Next = newNode
	} else {
		parent.FirstChild = newNode
	}

	sibling.Prev = newNode
}

// InsertAt inserts child into parent at index i. An index past the end appends.
func InsertAt(parent, child *Node, i int) {
	if at := parent.Child(i); at != nil {
		InsertBefore(at, child)
		return
	}
	AppendChild(parent, child)
}

// RemoveChild removes a child from its parent.
func RemoveChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}

	if child.Prev != nil {
		child.Prev.Next = child.Next
	} else {
		parent.FirstChild = child.Next
	}

	if child.Next != nil {
		child.Next.Prev = child.Prev
	} else {
		parent.LastChild = child.Prev
	}

	child.Parent = nil
	child.Prev = nil
	child.Next = nil
}

// ReplaceChildren detaches every child of parent and adopts the children of
// src in order. src is left empty.
func ReplaceChildren(parent, src *Node) {
	if parent == nil {
		return
	}

	for parent.FirstChild != nil {
		RemoveChild(parent, parent.FirstChild)
	}

	if src == nil {
		return
	}

	for src.FirstChild != nil {
		AppendChild(parent, src.FirstChild)
	}
}
