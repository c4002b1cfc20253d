package block_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdedit/pkg/block"
)

func TestClassify_Headings(t *testing.T) {
	t.Parallel()

	doc := block.Classify("# Header 1\n## Header 2\n### Header 3")

	require.Len(t, doc, 3)
	assert.Equal(t, []block.Type{block.TypeH1, block.TypeH2, block.TypeH3}, doc.Types())
	assert.Equal(t, "Header 1", doc[0].Content)
	assert.Equal(t, "Header 2", doc[1].Content)
	assert.Equal(t, "Header 3", doc[2].Content)
	assert.Equal(t, 1, doc[0].Level)
	assert.Equal(t, 3, doc[2].Level)
}

func TestClassify_AllHeadingLevels(t *testing.T) {
	t.Parallel()

	for level := 1; level <= block.MaxHeadingLevel; level++ {
		line := strings.Repeat("#", level) + " title"
		el := block.ClassifyLine(line)
		assert.Equal(t, block.HeadingType(level), el.Type, line)
		assert.Equal(t, level, el.Level, line)
		assert.Equal(t, "title", el.Content, line)
	}

	seven := block.ClassifyLine("####### too deep")
	assert.Equal(t, block.TypeParagraph, seven.Type)
	assert.Equal(t, "####### too deep", seven.Content)

	noSpace := block.ClassifyLine("#tag")
	assert.Equal(t, block.TypeParagraph, noSpace.Type)
}

func TestClassify_Lists(t *testing.T) {
	t.Parallel()

	t.Run("unordered items stay separate", func(t *testing.T) {
		t.Parallel()

		doc := block.Classify("- Item 1\n- Item 2")
		require.Len(t, doc, 2)
		assert.Equal(t, block.Element{Type: block.TypeUnordered, Content: "Item 1"}, doc[0])
		assert.Equal(t, block.Element{Type: block.TypeUnordered, Content: "Item 2"}, doc[1])
	})

	t.Run("all bullet markers", func(t *testing.T) {
		t.Parallel()

		for _, marker := range []string{"-", "*", "+"} {
			el := block.ClassifyLine(marker + " item")
			assert.Equal(t, block.TypeUnordered, el.Type, marker)
			assert.Equal(t, "item", el.Content, marker)
		}

		tab := block.ClassifyLine("-\titem")
		assert.Equal(t, block.TypeUnordered, tab.Type)
		assert.Equal(t, "item", tab.Content)
	})

	t.Run("ordered items", func(t *testing.T) {
		t.Parallel()

		doc := block.Classify("1. Item 1\n2. Item 2\n10. Item 10")
		require.Len(t, doc, 3)
		for _, el := range doc {
			assert.Equal(t, block.TypeOrdered, el.Type)
		}
		assert.Equal(t, "Item 1", doc[0].Content)
		assert.Equal(t, "Item 10", doc[2].Content)
	})

	t.Run("marker without space is paragraph", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, block.TypeParagraph, block.ClassifyLine("-item").Type)
		assert.Equal(t, block.TypeParagraph, block.ClassifyLine("1.item").Type)
		assert.Equal(t, block.TypeParagraph, block.ClassifyLine("1) item").Type)
	})

	t.Run("list content is styled", func(t *testing.T) {
		t.Parallel()

		el := block.ClassifyLine("- **bold** item")
		assert.Equal(t, "<strong>bold</strong> item", el.Content)
	})
}

func TestClassify_Blockquote(t *testing.T) {
	t.Parallel()

	doc := block.Classify("> This is a quote")
	require.Len(t, doc, 1)
	assert.Equal(t, block.TypeBlockquote, doc[0].Type)
	assert.Equal(t, "This is a quote", doc[0].Content)

	assert.Equal(t, block.TypeParagraph, block.ClassifyLine(">no space").Type)

	two := block.Classify("> one\n> two")
	assert.Equal(t, []block.Type{block.TypeBlockquote, block.TypeBlockquote}, two.Types())
}

func TestClassify_CodeBlock(t *testing.T) {
	t.Parallel()

	t.Run("fenced block collapses", func(t *testing.T) {
		t.Parallel()

		doc := block.Classify("```\nconst x = 1;\nconsole.log(x);\n```")
		require.Len(t, doc, 1)
		assert.Equal(t, block.TypeCodeBlock, doc[0].Type)
		assert.Equal(t, "const x = 1;\nconsole.log(x);", doc[0].Content)
		assert.Equal(t, 0, doc[0].Level)
		assert.Empty(t, doc[0].Info)
	})

	t.Run("language tag sets level", func(t *testing.T) {
		t.Parallel()

		doc := block.Classify("```  go \nfunc main() {}\n```")
		require.Len(t, doc, 1)
		assert.Equal(t, 1, doc[0].Level)
		assert.Equal(t, "go", doc[0].Info)
	})

	t.Run("content is raw and special lines are absorbed", func(t *testing.T) {
		t.Parallel()

		doc := block.Classify("```\n# not a heading\n<b>&</b>\n\n- nope\n```")
		require.Len(t, doc, 1)
		assert.Equal(t, "# not a heading\n<b>&</b>\n\n- nope", doc[0].Content)
	})

	t.Run("empty fence", func(t *testing.T) {
		t.Parallel()

		doc := block.Classify("```\n```")
		require.Len(t, doc, 1)
		assert.Equal(t, block.Element{Type: block.TypeCodeBlock}, doc[0])
	})

	t.Run("surrounding elements keep order", func(t *testing.T) {
		t.Parallel()

		doc := block.Classify("before\n```\ncode\n```\nafter")
		assert.Equal(t, []block.Type{block.TypeParagraph, block.TypeCodeBlock, block.TypeParagraph}, doc.Types())
	})

	t.Run("unterminated fence consumes the rest", func(t *testing.T) {
		t.Parallel()

		doc := block.Classify("intro\n```js\nlet a;\n# still code")
		require.Len(t, doc, 2)
		assert.Equal(t, block.TypeParagraph, doc[0].Type)
		assert.Equal(t, block.TypeCodeBlock, doc[1].Type)
		assert.Equal(t, "let a;\n# still code", doc[1].Content)
		assert.Equal(t, "js", doc[1].Info)
	})

	t.Run("closing fence with trailing text still closes", func(t *testing.T) {
		t.Parallel()

		doc := block.Classify("```\na\n```not-a-tag\nb")
		assert.Equal(t, []block.Type{block.TypeCodeBlock, block.TypeParagraph}, doc.Types())
	})
}

func TestClassify_Rules(t *testing.T) {
	t.Parallel()

	for _, line := range []string{"---", "***", "___"} {
		doc := block.Classify(line)
		require.Len(t, doc, 1, line)
		assert.Equal(t, block.Element{Type: block.TypeRule}, doc[0], line)
	}

	assert.Equal(t, block.TypeParagraph, block.ClassifyLine("----").Type)
	assert.Equal(t, block.TypeParagraph, block.ClassifyLine("--- ").Type)
	assert.Equal(t, block.TypeUnordered, block.ClassifyLine("* * *").Type)
}

func TestClassify_Paragraphs(t *testing.T) {
	t.Parallel()

	doc := block.Classify("This is a paragraph")
	require.Len(t, doc, 1)
	assert.Equal(t, block.TypeParagraph, doc[0].Type)
	assert.Equal(t, "This is a paragraph", doc[0].Content)
}

func TestClassify_BlankLines(t *testing.T) {
	t.Parallel()

	doc := block.Classify("Line 1\n\nLine 2")
	require.Len(t, doc, 3)
	assert.Equal(t, []block.Type{block.TypeParagraph, block.TypeBreak, block.TypeParagraph}, doc.Types())
	assert.Equal(t, "Line 1", doc[0].Content)
	assert.Empty(t, doc[1].Content)
	assert.Equal(t, "Line 2", doc[2].Content)

	whitespace := block.Classify("a\n \t \nb")
	assert.Equal(t, block.TypeBreak, whitespace[1].Type)

	empty := block.Classify("")
	assert.Equal(t, []block.Type{block.TypeBreak}, empty.Types())
}

func TestClassify_ComplexDocument(t *testing.T) {
	t.Parallel()

	markdown := `# Title
This is a **bold** paragraph with *italic* text.

## Subtitle
- Item 1
- Item 2

> A quote`

	doc := block.Classify(markdown)

	assert.Equal(t, []block.Type{
		block.TypeH1, block.TypeParagraph, block.TypeBreak, block.TypeH2,
		block.TypeUnordered, block.TypeUnordered, block.TypeBreak, block.TypeBlockquote,
	}, doc.Types())
	assert.Contains(t, doc[1].Content, "<strong>bold</strong>")
	assert.Contains(t, doc[1].Content, "<em>italic</em>")

	counts := doc.CountByType()
	assert.Equal(t, 2, counts[block.TypeUnordered])
	assert.Equal(t, 2, counts[block.TypeBreak])
}

func TestClassify_EscapesContent(t *testing.T) {
	t.Parallel()

	el := block.ClassifyLine("<script>alert(1)</script>")
	assert.Equal(t, "&lt;script&gt;alert(1)&lt;/script&gt;", el.Content)
}

func TestClassify_BlankBetweenContentLines(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"a\n\nb",
		"# h\n\n- i",
		"> q\n\n1. o",
		"```\nc\n```\n\ntext",
	}

	for _, input := range inputs {
		doc := block.Classify(input)
		require.Len(t, doc, 3, input)
		assert.Equal(t, block.TypeBreak, doc[1].Type, input)
		assert.NotEqual(t, block.TypeBreak, doc[0].Type, input)
		assert.NotEqual(t, block.TypeBreak, doc[2].Type, input)
	}
}

func TestClassifyReader(t *testing.T) {
	t.Parallel()

	doc, err := block.ClassifyReader(strings.NewReader("# a\r\nb"))
	require.NoError(t, err)
	require.Len(t, doc, 2)
	assert.Equal(t, "a\r", doc[0].Content)
}

func TestClassifyFile(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []block.Type{block.TypeH1}, block.ClassifyFile([]byte("# a\n")).Types())
	assert.Equal(t, []block.Type{block.TypeH1, block.TypeBreak}, block.ClassifyFile([]byte("# a\n\n")).Types())
	assert.Equal(t, []block.Type{block.TypeH1, block.TypeBreak}, block.Classify("# a\n").Types())
	assert.Equal(t, "x", block.FileText([]byte("x\n")))
	assert.Empty(t, block.FileText(nil))
}

func TestType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, block.TypeH4, block.HeadingType(4))
	assert.Equal(t, block.TypeParagraph, block.HeadingType(0))
	assert.Equal(t, block.TypeParagraph, block.HeadingType(7))

	assert.True(t, block.TypeH6.IsHeading())
	assert.False(t, block.TypeParagraph.IsHeading())
	assert.False(t, block.Type("h7").IsHeading())
	assert.Equal(t, 2, block.TypeH2.HeadingLevel())

	assert.True(t, block.TypeCodeBlock.Known())
	assert.True(t, block.TypeH1.Known())
	assert.False(t, block.Type("table").Known())
	assert.False(t, block.Type("").Known())
}

func FuzzClassify(f *testing.F) {
	seeds := []string{
		"",
		"# Heading",
		"- item\n- item",
		"```\ncode",
		"```go\nx\n```\n",
		"> q",
		"***",
		"<b>&</b>",
		"**a*b**c*",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, text string) {
		doc := block.Classify(text)

		// Never more elements than lines.
		lines := strings.Count(text, "\n") + 1
		if len(doc) > lines {
			t.Fatalf("got %d elements for %d lines", len(doc), lines)
		}

		for _, el := range doc {
			if !el.Type.Known() {
				t.Fatalf("unknown element type %q", el.Type)
			}
			if el.Type != block.TypeCodeBlock && strings.Contains(el.Content, "<script") {
				t.Fatalf("unescaped markup in %q", el.Content)
			}
		}
	})
}
