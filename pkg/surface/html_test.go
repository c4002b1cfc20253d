package surface_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdedit/pkg/surface"
)

func TestParse(t *testing.T) {
	t.Parallel()

	root, err := surface.Parse(`<h1>Title</h1><p>a <strong>b</strong></p><hr /><br />`)
	require.NoError(t, err)

	children := root.Children()
	require.Len(t, children, 4)
	assert.True(t, children[0].IsElement("h1"))
	assert.True(t, children[1].IsElement("p"))
	assert.True(t, children[2].IsElement("hr"))
	assert.True(t, children[3].IsElement("br"))

	strong := children[1].LastChild
	assert.True(t, strong.IsElement("strong"))
	assert.Equal(t, "b", strong.FirstChild.Text)
	assert.Equal(t, root, children[0].Parent)
}

func TestParse_Attributes(t *testing.T) {
	t.Parallel()

	root := surface.MustParse(`<a href="https://example.com" target="_blank">x</a>`)
	a := root.FirstChild

	href, ok := a.Attr("href")
	assert.True(t, ok)
	assert.Equal(t, "https://example.com", href)
}

func TestParse_DecodesEntities(t *testing.T) {
	t.Parallel()

	root := surface.MustParse(`<p>a &lt; b &amp;&amp; c &#39;d&#39;</p>`)
	assert.Equal(t, "a < b && c 'd'", surface.TextContent(root))
}

func TestParse_TopLevelText(t *testing.T) {
	t.Parallel()

	root := surface.MustParse("loose<!-- note --><p>x</p>")
	children := root.Children()
	require.Len(t, children, 3)
	assert.True(t, children[0].IsText())
	assert.Equal(t, surface.NodeComment, children[1].Kind)
	assert.Equal(t, " note ", children[1].Text)
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	root, err := surface.Parse("")
	require.NoError(t, err)
	assert.False(t, root.HasChildren())
	assert.Empty(t, surface.HTML(root))
}

func TestHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{"paragraph", "<p>text</p>", "<p>text</p>"},
		{"void elements", "<hr /><br />", "<hr/><br/>"},
		{"nested inline", "<p><strong><em>x</em></strong></p>", "<p><strong><em>x</em></strong></p>"},
		{"escapes text", "<p>a &lt; b</p>", "<p>a &lt; b</p>"},
		{"code block", "<pre><code>x &lt; y</code></pre>", "<pre><code>x &lt; y</code></pre>"},
		{"attributes", `<code class="language-go">x</code>`, `<code class="language-go">x</code>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, surface.HTML(surface.MustParse(tt.markup)))
		})
	}
}

func TestHTML_Stable(t *testing.T) {
	t.Parallel()

	markup := `<h2>a</h2><ul><li>b</li></ul><blockquote>c</blockquote><p><a href="u">d</a></p>`
	once := surface.HTML(surface.MustParse(markup))
	twice := surface.HTML(surface.MustParse(once))
	assert.Equal(t, once, twice)
}

func TestHTML_HandBuiltTree(t *testing.T) {
	t.Parallel()

	root := surface.NewRoot()
	surface.AppendChild(root, surface.El("p",
		surface.El("strong", surface.NewText("abc")),
		surface.NewText("def"),
	))

	assert.Equal(t, "<p><strong>abc</strong>def</p>", surface.HTML(root))
	assert.Equal(t, "<strong>abc</strong>", surface.HTML(root.FirstChild.FirstChild))
	assert.Empty(t, surface.HTML(nil))
}
