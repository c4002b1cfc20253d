package surface

import (
	"errors"
	"strings"
)

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(n *Node) error

// ErrSkipChildren may be returned by a WalkFunc to skip the children of the
// node just visited. Walk itself never returns it.
var ErrSkipChildren = errors.New("skip children")

// Walk performs a pre-order traversal of the tree starting at root.
func Walk(root *Node, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}

	if err := walkFunc(root); err != nil {
		if errors.Is(err, ErrSkipChildren) {
			return nil
		}
		return err
	}

	for child := root.FirstChild; child != nil; child = child.Next {
		if err := Walk(child, walkFunc); err != nil {
			return err
		}
	}

	return nil
}

// WalkWithContext performs a traversal with enter and leave callbacks.
// Enter is called before visiting children, leave is called after.
// Either callback may be nil.
func WalkWithContext(root *Node, enter, leave WalkFunc) error {
	if root == nil {
		return nil
	}

	if enter != nil {
		if err := enter(root); err != nil {
			return err
		}
	}

	for child := root.FirstChild; child != nil; child = child.Next {
		if err := WalkWithContext(child, enter, leave); err != nil {
			return err
		}
	}

	if leave != nil {
		if err := leave(root); err != nil {
			return err
		}
	}

	return nil
}

// FindAll returns all nodes matching the predicate in document order.
func FindAll(root *Node, predicate func(n *Node) bool) []*Node {
	var result []*Node

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(root, func(node *Node) error {
		if predicate(node) {
			result = append(result, node)
		}
		return nil
	})

	return result
}

// FindFirst returns the first node matching the predicate, or nil if none found.
func FindFirst(root *Node, predicate func(n *Node) bool) *Node {
	var found *Node

	//nolint:errcheck,revive // errStopWalk is expected and intentionally ignored
	Walk(root, func(node *Node) error {
		if predicate(node) {
			found = node
			return errStopWalk
		}
		return nil
	})

	return found
}

// TextNodes returns every text node under root in depth-first order.
func TextNodes(root *Node) []*Node {
	return FindAll(root, (*Node).IsText)
}

// TextContent concatenates the text of every text node under root.
func TextContent(root *Node) string {
	var sb strings.Builder
	for _, t := range TextNodes(root) {
		sb.WriteString(t.Text)
	}
	return sb.String()
}

// TextLen is the total code point length of the text under root.
func TextLen(root *Node) int {
	total := 0
	for _, t := range TextNodes(root) {
		total += t.Len()
	}
	return total
}

// errStopWalk is a sentinel error used to stop walking early.
var errStopWalk = errors.New("stop walk")
