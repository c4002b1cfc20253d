package surface_test

import (
	"testing"

	"github.com/yaklabco/gomdedit/pkg/surface"
)

func TestAppendChild(t *testing.T) {
	t.Parallel()

	parent := surface.NewRoot()
	child1 := surface.NewElement("p")
	child2 := surface.NewElement("h1")

	surface.AppendChild(parent, child1)
	if parent.FirstChild != child1 || parent.LastChild != child1 {
		t.Error("first child not set correctly")
	}

	surface.AppendChild(parent, child2)
	if parent.FirstChild != child1 || parent.LastChild != child2 {
		t.Error("last child not set correctly")
	}
	if child1.Next != child2 || child2.Prev != child1 {
		t.Error("sibling links not set")
	}

	// Moving a child re-parents it.
	other := surface.NewRoot()
	surface.AppendChild(other, child1)
	if parent.FirstChild != child2 || child1.Parent != other {
		t.Error("child was not moved")
	}

	surface.AppendChild(nil, child1)
	surface.AppendChild(parent, nil)
}

func TestInsertBefore(t *testing.T) {
	t.Parallel()

	p := surface.El("p", surface.NewText("b"))
	a := surface.NewText("a")

	surface.InsertBefore(p.FirstChild, a)
	if p.FirstChild != a || a.Next.Text != "b" {
		t.Error("InsertBefore did not prepend")
	}

	orphan := surface.NewText("x")
	surface.InsertBefore(orphan, surface.NewText("y"))
	if orphan.Prev != nil {
		t.Error("InsertBefore on an orphan must be a no-op")
	}
}

func TestInsertAt(t *testing.T) {
	t.Parallel()

	p := surface.El("p", surface.NewText("a"), surface.NewText("c"))

	surface.InsertAt(p, surface.NewText("b"), 1)
	surface.InsertAt(p, surface.NewText("d"), 10)

	if got := surface.TextContent(p); got != "abcd" {
		t.Errorf("TextContent = %q, want abcd", got)
	}
}

func TestRemoveChild(t *testing.T) {
	t.Parallel()

	a, b, c := surface.NewText("a"), surface.NewText("b"), surface.NewText("c")
	p := surface.El("p", a, b, c)

	surface.RemoveChild(p, b)
	if a.Next != c || c.Prev != a || b.Parent != nil {
		t.Error("middle removal broke links")
	}

	surface.RemoveChild(p, a)
	surface.RemoveChild(p, c)
	if p.FirstChild != nil || p.LastChild != nil {
		t.Error("expected empty parent")
	}

	// Removing a node from the wrong parent is ignored.
	q := surface.El("p", surface.NewText("x"))
	surface.RemoveChild(p, q.FirstChild)
	if q.ChildCount() != 1 {
		t.Error("wrong-parent removal must be a no-op")
	}
}

func TestReplaceChildren(t *testing.T) {
	t.Parallel()

	root := surface.NewRoot()
	surface.AppendChild(root, surface.El("p", surface.NewText("old")))

	src := surface.NewRoot()
	surface.AppendChild(src, surface.El("h1", surface.NewText("new")))
	surface.AppendChild(src, surface.NewElement("hr"))

	surface.ReplaceChildren(root, src)

	if root.ChildCount() != 2 || src.HasChildren() {
		t.Fatalf("children not moved: root=%d src=%d", root.ChildCount(), src.ChildCount())
	}
	if !root.FirstChild.IsElement("h1") || root.FirstChild.Parent != root {
		t.Error("first child not adopted")
	}

	surface.ReplaceChildren(root, nil)
	if root.HasChildren() {
		t.Error("nil source must clear the parent")
	}
}
