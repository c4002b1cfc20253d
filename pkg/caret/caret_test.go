package caret_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdedit/pkg/caret"
	"github.com/yaklabco/gomdedit/pkg/surface"
)

// tree builds <h1>Title</h1><p>ab<strong>cd</strong>ef</p><hr/>.
func tree(t *testing.T) *surface.Node {
	t.Helper()

	root, err := surface.Parse("<h1>Title</h1><p>ab<strong>cd</strong>ef</p><hr />")
	require.NoError(t, err)
	return root
}

func at(n *surface.Node, offset int) *caret.Selection {
	return caret.Collapsed(caret.Position{Node: n, Offset: offset})
}

func TestCapture_TextPositions(t *testing.T) {
	t.Parallel()

	root := tree(t)
	texts := surface.TextNodes(root)
	require.Len(t, texts, 4)

	tests := []struct {
		name   string
		node   *surface.Node
		offset int
		want   int
	}{
		{"start of heading", texts[0], 0, 0},
		{"inside heading", texts[0], 3, 3},
		{"end of heading", texts[0], 5, 5},
		{"start of paragraph", texts[1], 0, 5},
		{"inside strong", texts[2], 1, 8},
		{"end of last text", texts[3], 2, 11},
		{"offset past text clamps", texts[3], 99, 11},
		{"negative offset clamps", texts[1], -4, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, caret.Capture(root, at(tt.node, tt.offset)))
		})
	}
}

func TestCapture_ElementPositions(t *testing.T) {
	t.Parallel()

	root := tree(t)
	p := root.Child(1)
	strong := p.Child(1)

	assert.Equal(t, 0, caret.Capture(root, at(root, 0)))
	assert.Equal(t, 5, caret.Capture(root, at(root, 1)))
	assert.Equal(t, 11, caret.Capture(root, at(root, 2)))
	assert.Equal(t, 11, caret.Capture(root, at(root, 3)))
	assert.Equal(t, 7, caret.Capture(root, at(p, 1)))
	assert.Equal(t, 9, caret.Capture(root, at(p, 2)))
	assert.Equal(t, 11, caret.Capture(root, at(p, 3)))
	assert.Equal(t, 9, caret.Capture(root, at(strong, 1)))
	assert.Equal(t, 5, caret.Capture(root, at(p, -1)))
}

func TestCapture_NoSelection(t *testing.T) {
	t.Parallel()

	root := tree(t)
	outside := surface.NewText("elsewhere")

	assert.Zero(t, caret.Capture(root, nil))
	assert.Zero(t, caret.Capture(root, &caret.Selection{}))
	assert.Zero(t, caret.Capture(root, at(outside, 4)))
	assert.Zero(t, caret.Capture(nil, at(outside, 4)))
}

func TestCapture_CountsCodePoints(t *testing.T) {
	t.Parallel()

	root := surface.MustParse("<p>héllo</p><p>日本語</p>")
	texts := surface.TextNodes(root)

	assert.Equal(t, 5, caret.Capture(root, at(texts[1], 0)))
	assert.Equal(t, 7, caret.Capture(root, at(texts[1], 2)))
}

func TestRestore(t *testing.T) {
	t.Parallel()

	root := tree(t)
	texts := surface.TextNodes(root)

	tests := []struct {
		name       string
		offset     int
		wantNode   *surface.Node
		wantOffset int
	}{
		{"zero", 0, texts[0], 0},
		{"inside first", 2, texts[0], 2},
		{"boundary lands at end of earlier node", 5, texts[0], 5},
		{"just past boundary", 6, texts[1], 1},
		{"inside strong", 8, texts[2], 1},
		{"boundary before strong", 7, texts[1], 2},
		{"end", 11, texts[3], 2},
		{"negative", -3, texts[0], 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sel := caret.Restore(root, tt.offset)
			require.NotNil(t, sel)
			assert.True(t, sel.IsCollapsed())
			assert.Same(t, tt.wantNode, sel.Focus.Node)
			assert.Equal(t, tt.wantOffset, sel.Focus.Offset)
		})
	}
}

func TestRestore_PastEnd(t *testing.T) {
	t.Parallel()

	root := tree(t)
	sel := caret.Restore(root, 50)

	assert.Same(t, root, sel.Focus.Node)
	assert.Equal(t, 3, sel.Focus.Offset)
	assert.Equal(t, caret.End(root), sel.Focus)
}

func TestRestore_EmptyTree(t *testing.T) {
	t.Parallel()

	root := surface.NewRoot()
	sel := caret.Restore(root, 0)
	assert.Equal(t, caret.Position{Node: root, Offset: 0}, sel.Focus)

	assert.Nil(t, caret.Restore(nil, 0))
}

func TestCaptureAfterRestore(t *testing.T) {
	t.Parallel()

	roots := []string{
		"<h1>Title</h1><p>ab<strong>cd</strong>ef</p><hr />",
		"<p><em>x</em></p><br /><ul><li>é</li></ul>",
		"<pre><code>line\nline</code></pre>",
		"<hr /><br />",
		"",
	}

	for _, markup := range roots {
		root := surface.MustParse(markup)
		total := surface.TextLen(root)

		for o := 0; o <= total+3; o++ {
			got := caret.Capture(root, caret.Restore(root, o))
			assert.Equal(t, min(o, total), got, "markup %q offset %d", markup, o)
		}
	}
}

func TestSelection(t *testing.T) {
	t.Parallel()

	n := surface.NewText("abc")
	ranged := &caret.Selection{
		Anchor: caret.Position{Node: n, Offset: 0},
		Focus:  caret.Position{Node: n, Offset: 2},
	}
	assert.False(t, ranged.IsCollapsed())
	assert.True(t, caret.Position{}.IsZero())
}
