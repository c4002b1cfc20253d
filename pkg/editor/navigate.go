package editor

import (
	"github.com/yaklabco/gomdedit/pkg/caret"
	"github.com/yaklabco/gomdedit/pkg/surface"
)

// inlineTags are the elements a caret can step out of without leaving
// its block.
//
//nolint:gochecknoglobals // Read-only tag set.
var inlineTags = map[string]bool{
	"strong": true, "b": true, "em": true, "i": true, "code": true, "a": true,
	"span": true, "u": true, "s": true, "del": true, "mark": true, "sub": true, "sup": true,
}

func isInline(n *surface.Node) bool {
	return n.IsElement("") && inlineTags[n.Tag]
}

// outermostInline returns the highest inline ancestor of n that is reached
// without crossing a non-inline element, or nil.
func outermostInline(n *surface.Node) *surface.Node {
	var top *surface.Node
	for cur := n.Parent; isInline(cur); cur = cur.Parent {
		top = cur
	}
	return top
}

func firstText(n *surface.Node) *surface.Node {
	return surface.FindFirst(n, (*surface.Node).IsText)
}

func lastText(n *surface.Node) *surface.Node {
	texts := surface.TextNodes(n)
	if len(texts) == 0 {
		return nil
	}
	return texts[len(texts)-1]
}

// voidTags never hold content.
//
//nolint:gochecknoglobals // Read-only tag set.
var voidTags = map[string]bool{"br": true, "hr": true, "img": true}

func isVoid(n *surface.Node) bool {
	return n.IsElement("") && voidTags[n.Tag]
}

// deepest follows first (or last) element children down from n.
func deepest(n *surface.Node, last bool) *surface.Node {
	for {
		next := n.FirstChild
		if last {
			next = n.LastChild
		}
		if !next.IsElement("") || isVoid(next) {
			return n
		}
		n = next
	}
}

// canonical resolves a caret sitting directly in the root to the spot it
// visually touches: the start of the next block, or the end of the last
// block when it is past every block. Blocks without text are entered at
// their innermost element. Other positions are returned as is.
func (s *Session) canonical(p caret.Position) caret.Position {
	if p.Node != s.root {
		return p
	}

	if child := s.root.Child(max(p.Offset, 0)); child != nil {
		if first := firstText(child); first != nil {
			return caret.Position{Node: first, Offset: 0}
		}
		if isVoid(child) {
			return p
		}
		return caret.Position{Node: deepest(child, false), Offset: 0}
	}

	last := s.root.LastChild
	if last == nil {
		return p
	}
	if t := lastText(last); t != nil {
		return caret.Position{Node: t, Offset: t.Len()}
	}
	if isVoid(last) {
		return p
	}
	inner := deepest(last, true)
	return caret.Position{Node: inner, Offset: inner.ChildCount()}
}

// order is the depth-first sequence of every node under a root.
type order struct {
	nodes []*surface.Node
	index map[*surface.Node]int
}

func newOrder(root *surface.Node) order {
	o := order{index: make(map[*surface.Node]int)}
	//nolint:errcheck // the callback never fails
	surface.Walk(root, func(n *surface.Node) error {
		o.index[n] = len(o.nodes)
		o.nodes = append(o.nodes, n)
		return nil
	})
	return o
}

// boundary returns the walk index at which p is crossed. For a text
// position it is the text node itself.
func (o order) boundary(p caret.Position) int {
	if p.Node.IsText() {
		return o.index[p.Node]
	}
	if child := p.Node.Child(max(p.Offset, 0)); child != nil {
		return o.index[child]
	}
	last := p.Node
	for last.LastChild != nil {
		last = last.LastChild
	}
	return o.index[last] + 1
}

// textFrom returns the first text node at or after walk index i.
func (o order) textFrom(i int) *surface.Node {
	for ; i < len(o.nodes); i++ {
		if o.nodes[i].IsText() {
			return o.nodes[i]
		}
	}
	return nil
}

// textBefore returns the last text node strictly before walk index i.
func (o order) textBefore(i int) *surface.Node {
	for i--; i >= 0; i-- {
		if o.nodes[i].IsText() {
			return o.nodes[i]
		}
	}
	return nil
}

// right moves one step forward. At the end of the last text inside an
// inline element the caret steps out of the element. Moving onto a text
// node in the same block skips its first character because the end of one
// node and the start of the next are the same visual spot; moving into a
// later block lands at its start.
func (s *Session) right(p caret.Position) caret.Position {
	p = s.canonical(p)
	ord := newOrder(s.root)

	var next *surface.Node
	if t := p.Node; t.IsText() {
		if p.Offset < t.Len() {
			return caret.Position{Node: t, Offset: p.Offset + 1}
		}
		if top := outermostInline(t); top != nil && lastText(top) == t {
			return caret.Position{Node: top.Parent, Offset: top.Index() + 1}
		}
		next = ord.textFrom(ord.index[t] + 1)
	} else {
		next = ord.textFrom(ord.boundary(p))
	}

	if next == nil {
		return p
	}
	if block := p.Node.Block(s.root); block != nil && next.Block(s.root) == block {
		return caret.Position{Node: next, Offset: min(1, next.Len())}
	}
	return caret.Position{Node: next, Offset: 0}
}

// left mirrors right.
func (s *Session) left(p caret.Position) caret.Position {
	p = s.canonical(p)
	ord := newOrder(s.root)

	var prev *surface.Node
	if t := p.Node; t.IsText() {
		if p.Offset > 0 {
			return caret.Position{Node: t, Offset: min(p.Offset, t.Len()) - 1}
		}
		if top := outermostInline(t); top != nil && firstText(top) == t {
			return caret.Position{Node: top.Parent, Offset: top.Index()}
		}
		prev = ord.textBefore(ord.index[t])
	} else {
		prev = ord.textBefore(ord.boundary(p))
	}

	if prev == nil {
		return p
	}
	if block := p.Node.Block(s.root); block != nil && prev.Block(s.root) == block {
		return caret.Position{Node: prev, Offset: max(prev.Len()-1, 0)}
	}
	return caret.Position{Node: prev, Offset: prev.Len()}
}

// home moves to the start of the current block.
func (s *Session) home(p caret.Position) caret.Position {
	p = s.canonical(p)
	block := p.Node.Block(s.root)
	if block == nil {
		return p
	}
	if first := firstText(block); first != nil {
		return caret.Position{Node: first, Offset: 0}
	}
	return caret.Position{Node: block, Offset: 0}
}

// end moves to the end of the current block.
func (s *Session) end(p caret.Position) caret.Position {
	p = s.canonical(p)
	block := p.Node.Block(s.root)
	if block == nil {
		return p
	}
	if last := lastText(block); last != nil {
		return caret.Position{Node: last, Offset: last.Len()}
	}
	return caret.Position{Node: block, Offset: block.ChildCount()}
}
