package surface_test

import (
	"errors"
	"testing"

	"github.com/yaklabco/gomdedit/pkg/surface"
)

func buildTestTree() *surface.Node {
	// root
	//   h1
	//     "Title"
	//   p
	//     "a "
	//     em
	//       "b"
	root := surface.NewRoot()
	surface.AppendChild(root, surface.El("h1", surface.NewText("Title")))
	surface.AppendChild(root, surface.El("p",
		surface.NewText("a "),
		surface.El("em", surface.NewText("b")),
	))
	return root
}

func TestWalk(t *testing.T) {
	t.Parallel()

	var visited []string
	err := surface.Walk(buildTestTree(), func(n *surface.Node) error {
		switch n.Kind {
		case surface.NodeText:
			visited = append(visited, "#"+n.Text)
		case surface.NodeElement:
			visited = append(visited, n.Tag)
		default:
			visited = append(visited, n.Kind.String())
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}

	expected := []string{"Root", "h1", "#Title", "p", "#a ", "em", "#b"}
	if len(visited) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, visited)
	}
	for i := range expected {
		if visited[i] != expected[i] {
			t.Errorf("node %d: expected %s, got %s", i, expected[i], visited[i])
		}
	}
}

func TestWalk_StopsOnError(t *testing.T) {
	t.Parallel()

	stop := errors.New("stop")
	count := 0
	err := surface.Walk(buildTestTree(), func(_ *surface.Node) error {
		count++
		if count == 3 {
			return stop
		}
		return nil
	})

	if !errors.Is(err, stop) {
		t.Errorf("expected stop error, got %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 visits, got %d", count)
	}
}

func TestWalk_SkipChildren(t *testing.T) {
	t.Parallel()

	var texts []string
	err := surface.Walk(buildTestTree(), func(n *surface.Node) error {
		if n.IsElement("p") {
			return surface.ErrSkipChildren
		}
		if n.IsText() {
			texts = append(texts, n.Text)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(texts) != 1 || texts[0] != "Title" {
		t.Errorf("expected only the heading text, got %v", texts)
	}
}

func TestWalk_NilRoot(t *testing.T) {
	t.Parallel()

	if err := surface.Walk(nil, func(_ *surface.Node) error { return errors.New("called") }); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestWalkWithContext(t *testing.T) {
	t.Parallel()

	depth, maxDepth := 0, 0
	err := surface.WalkWithContext(buildTestTree(),
		func(_ *surface.Node) error {
			depth++
			maxDepth = max(maxDepth, depth)
			return nil
		},
		func(_ *surface.Node) error {
			depth--
			return nil
		},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if depth != 0 || maxDepth != 4 {
		t.Errorf("depth=%d maxDepth=%d", depth, maxDepth)
	}
}

func TestFind(t *testing.T) {
	t.Parallel()

	root := buildTestTree()

	if got := surface.FindAll(root, (*surface.Node).IsText); len(got) != 3 {
		t.Errorf("expected 3 text nodes, got %d", len(got))
	}

	em := surface.FindFirst(root, func(n *surface.Node) bool { return n.IsElement("em") })
	if em == nil || em.FirstChild.Text != "b" {
		t.Error("FindFirst did not find em")
	}

	if surface.FindFirst(root, func(n *surface.Node) bool { return n.IsElement("table") }) != nil {
		t.Error("expected nil for missing element")
	}
}

func TestTextContent(t *testing.T) {
	t.Parallel()

	root := buildTestTree()
	if got := surface.TextContent(root); got != "Titlea b" {
		t.Errorf("TextContent = %q", got)
	}
	if got := surface.TextLen(root); got != 8 {
		t.Errorf("TextLen = %d", got)
	}
	if got := len(surface.TextNodes(surface.NewRoot())); got != 0 {
		t.Errorf("expected no text nodes, got %d", got)
	}
}
