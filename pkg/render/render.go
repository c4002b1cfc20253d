// Package render turns classified block elements into markup fragments.
package render

import (
	"strings"

	"github.com/yaklabco/gomdedit/pkg/block"
	"github.com/yaklabco/gomdedit/pkg/langdetect"
)

// codeEscaper escapes raw code for placement inside <pre><code>.
//
//nolint:gochecknoglobals // Read-only replacer.
var codeEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeCode escapes & < > " and ' in raw code text.
func EscapeCode(s string) string {
	return codeEscaper.Replace(s)
}

// Renderer renders elements to markup. The zero value produces the plain
// fragment vocabulary with no attributes on <code>.
type Renderer struct {
	// LanguageClass adds class="language-<tag>" to <code> when the fence
	// carried a language tag.
	LanguageClass bool

	// DetectLanguage fills a missing fence tag from the block content.
	// It implies LanguageClass.
	DetectLanguage bool
}

//nolint:gochecknoglobals // Zero-value renderer shared by the package functions.
var plain Renderer

// Fragment renders one element with the default renderer.
func Fragment(el block.Element) string {
	return plain.Fragment(el)
}

// Document renders every element with the default renderer and concatenates
// the fragments with no separator.
func Document(doc block.Document) string {
	return plain.Document(doc)
}

// Document renders doc in order.
func (r Renderer) Document(doc block.Document) string {
	var sb strings.Builder
	for _, el := range doc {
		r.write(&sb, el)
	}
	return sb.String()
}

// Fragment renders a single element. Unknown or empty types render as a paragraph.
func (r Renderer) Fragment(el block.Element) string {
	var sb strings.Builder
	r.write(&sb, el)
	return sb.String()
}

func (r Renderer) write(sb *strings.Builder, el block.Element) {
	switch {
	case el.Type.IsHeading():
		tag := string(el.Type)
		wrap(sb, tag, el.Content)
	case el.Type == block.TypeUnordered:
		sb.WriteString("<ul><li>")
		sb.WriteString(el.Content)
		sb.WriteString("</li></ul>")
	case el.Type == block.TypeOrdered:
		sb.WriteString("<ol><li>")
		sb.WriteString(el.Content)
		sb.WriteString("</li></ol>")
	case el.Type == block.TypeBlockquote:
		wrap(sb, "blockquote", el.Content)
	case el.Type == block.TypeCodeBlock:
		r.writeCode(sb, el)
	case el.Type == block.TypeRule:
		sb.WriteString("<hr />")
	case el.Type == block.TypeBreak:
		sb.WriteString("<br />")
	default:
		wrap(sb, "p", el.Content)
	}
}

func (r Renderer) writeCode(sb *strings.Builder, el block.Element) {
	sb.WriteString("<pre><code")
	if lang := r.language(el); lang != "" {
		sb.WriteString(` class="language-`)
		sb.WriteString(EscapeCode(lang))
		sb.WriteString(`"`)
	}
	sb.WriteString(">")
	sb.WriteString(EscapeCode(el.Content))
	sb.WriteString("</code></pre>")
}

// language returns the class tag for a code block, or "" for none.
// Only the first word of the fence info is used.
func (r Renderer) language(el block.Element) string {
	if !r.LanguageClass && !r.DetectLanguage {
		return ""
	}
	if fields := strings.Fields(el.Info); len(fields) > 0 {
		return fields[0]
	}
	if r.DetectLanguage {
		if lang, ok := langdetect.Guess(el.Content); ok {
			return lang
		}
	}
	return ""
}

func wrap(sb *strings.Builder, tag, content string) {
	sb.WriteString("<")
	sb.WriteString(tag)
	sb.WriteString(">")
	sb.WriteString(content)
	sb.WriteString("</")
	sb.WriteString(tag)
	sb.WriteString(">")
}
