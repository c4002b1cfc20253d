// Package caret converts between a caret position in a surface tree and a
// flat character offset into the tree's text, so the caret survives the
// surface being replaced wholesale.
//
// Offsets count code points of text node content in depth-first order.
package caret

import (
	"errors"

	"github.com/yaklabco/gomdedit/pkg/surface"
)

var errStop = errors.New("stop")

// Position is a point in the tree. For a text node Offset is a code point
// index into its text; for any other node it is a child index.
type Position struct {
	Node   *surface.Node
	Offset int
}

// IsZero reports whether p points nowhere.
func (p Position) IsZero() bool {
	return p.Node == nil
}

// Selection is a collapsed or ranged selection. Only Focus matters for
// offset mapping; Restore always returns a collapsed selection.
type Selection struct {
	Anchor Position
	Focus  Position
}

// Collapsed returns a selection with anchor and focus at p.
func Collapsed(p Position) *Selection {
	return &Selection{Anchor: p, Focus: p}
}

// IsCollapsed reports whether anchor and focus coincide.
func (s *Selection) IsCollapsed() bool {
	return s.Anchor == s.Focus
}

// Capture returns the number of characters of text under root that precede
// the selection's focus. It returns 0 for a nil selection or a focus that
// lies outside root.
func Capture(root *surface.Node, sel *Selection) int {
	if root == nil || sel == nil || sel.Focus.IsZero() || !root.Contains(sel.Focus.Node) {
		return 0
	}

	focus := sel.Focus
	if focus.Node.IsText() {
		return textBefore(root, focus.Node, false) + clamp(focus.Offset, 0, focus.Node.Len())
	}

	// An element position sits before child Offset, or at the end of the
	// element when there is no such child.
	if child := focus.Node.Child(max(focus.Offset, 0)); child != nil {
		return textBefore(root, child, false)
	}
	return textBefore(root, focus.Node, true)
}

// textBefore sums the text that a depth-first walk of root sees before it
// enters stop, or before it leaves stop when afterStop is set.
func textBefore(root, stop *surface.Node, afterStop bool) int {
	total := 0

	enter := func(n *surface.Node) error {
		if n == stop && !afterStop {
			return errStop
		}
		total += n.Len()
		return nil
	}
	leave := func(n *surface.Node) error {
		if n == stop {
			return errStop
		}
		return nil
	}

	//nolint:errcheck // errStop only ends the walk early
	surface.WalkWithContext(root, enter, leave)
	return total
}

// Restore places a collapsed caret offset characters into the text under
// root. The first text node whose end reaches offset receives the caret, so
// an offset on a node boundary lands at the end of the earlier node. When no
// node qualifies the caret goes to the end of root. Negative offsets are
// treated as 0.
func Restore(root *surface.Node, offset int) *Selection {
	if root == nil {
		return nil
	}
	offset = max(offset, 0)

	current := 0
	for _, t := range surface.TextNodes(root) {
		n := t.Len()
		if current+n >= offset {
			return Collapsed(Position{Node: t, Offset: offset - current})
		}
		current += n
	}

	return Collapsed(End(root))
}

// End returns the element position after the last child of root.
func End(root *surface.Node) Position {
	return Position{Node: root, Offset: root.ChildCount()}
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
