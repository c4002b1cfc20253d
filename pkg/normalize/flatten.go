package normalize

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	textm "github.com/yuin/goldmark/text"
)

// flattener converts a goldmark AST into canonical markdown lines.
type flattener struct {
	src []byte
}

// document emits the top-level blocks of doc with a blank line between them.
func (f *flattener) document(doc ast.Node) []string {
	var out []string
	for child := doc.FirstChild(); child != nil; child = child.NextSibling() {
		lines := f.block(child)
		if len(lines) == 0 {
			continue
		}
		if len(out) > 0 {
			out = append(out, "")
		}
		out = append(out, lines...)
	}
	return out
}

// block emits the lines for one block node.
func (f *flattener) block(n ast.Node) []string {
	switch node := n.(type) {
	case *ast.Heading:
		title := strings.ReplaceAll(f.inline(node), "\n", " ")
		return []string{strings.Repeat("#", node.Level) + " " + title}

	case *ast.Paragraph, *ast.TextBlock:
		return splitLines(f.inline(node))

	case *ast.List:
		return f.list(node)

	case *ast.Blockquote:
		return f.blockquote(node)

	case *ast.FencedCodeBlock:
		info := ""
		if node.Info != nil {
			info = strings.TrimSpace(string(node.Info.Value(f.src)))
		}
		return f.code(info, node.Lines())

	case *ast.CodeBlock:
		return f.code("", node.Lines())

	case *ast.ThematicBreak:
		return []string{"---"}

	case *ast.HTMLBlock:
		lines := f.segments(node.Lines())
		if node.HasClosure() {
			lines = append(lines, trimEOL(node.ClosureLine.Value(f.src)))
		}
		return lines

	case *east.Table:
		return f.table(node)

	default:
		var out []string
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			out = append(out, f.block(child)...)
		}
		return out
	}
}

// list emits one marker line per item. Nested lists follow their parent
// item unindented, and item numbering continues from the list's start.
func (f *flattener) list(l *ast.List) []string {
	var out []string

	index := 0
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "- "
		if l.IsOrdered() {
			marker = strconv.Itoa(l.Start+index) + ". "
		}
		index++

		marked := false
		for child := item.FirstChild(); child != nil; child = child.NextSibling() {
			lines := f.block(child)
			if !marked && isTextual(child) && len(lines) > 0 {
				out = append(out, marker+lines[0])
				out = append(out, lines[1:]...)
				marked = true
				continue
			}
			if !marked {
				out = append(out, marker)
				marked = true
			}
			out = append(out, lines...)
		}
		if !marked {
			out = append(out, marker)
		}
	}

	return out
}

// blockquote prefixes every non-blank line of the quoted blocks.
func (f *flattener) blockquote(q *ast.Blockquote) []string {
	var out []string
	for child := q.FirstChild(); child != nil; child = child.NextSibling() {
		for _, line := range f.block(child) {
			if strings.TrimSpace(line) == "" {
				continue
			}
			out = append(out, "> "+line)
		}
	}
	return out
}

// code emits a fenced block.
func (f *flattener) code(info string, lines *textm.Segments) []string {
	out := []string{"```" + info}
	out = append(out, f.segments(lines)...)
	return append(out, "```")
}

// table emits each row as a paragraph line of pipe-separated cells.
func (f *flattener) table(t *east.Table) []string {
	var out []string
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, strings.TrimSpace(f.inline(cell)))
		}
		out = append(out, strings.Join(cells, " | "))
	}
	return out
}

func (f *flattener) segments(lines *textm.Segments) []string {
	out := make([]string, 0, lines.Len())
	for i := range lines.Len() {
		seg := lines.At(i)
		out = append(out, trimEOL(seg.Value(f.src)))
	}
	return out
}

// inline renders the inline children of n. Line breaks inside the content
// come out as newlines.
func (f *flattener) inline(n ast.Node) string {
	var sb strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		f.writeInline(&sb, child)
	}
	return sb.String()
}

func (f *flattener) writeInline(sb *strings.Builder, n ast.Node) {
	switch node := n.(type) {
	case *ast.Text:
		sb.Write(node.Value(f.src))
		if node.SoftLineBreak() || node.HardLineBreak() {
			sb.WriteByte('\n')
		}

	case *ast.String:
		sb.Write(node.Value)

	case *ast.Emphasis:
		delim := strings.Repeat("*", node.Level)
		sb.WriteString(delim)
		sb.WriteString(f.inline(node))
		sb.WriteString(delim)

	case *ast.CodeSpan:
		sb.WriteByte('`')
		sb.WriteString(strings.ReplaceAll(f.inline(node), "\n", " "))
		sb.WriteByte('`')

	case *ast.Link:
		writeLink(sb, f.inline(node), string(node.Destination))

	case *ast.Image:
		writeLink(sb, f.inline(node), string(node.Destination))

	case *ast.AutoLink:
		writeLink(sb, string(node.Label(f.src)), string(node.URL(f.src)))

	case *ast.RawHTML:
		for i := range node.Segments.Len() {
			seg := node.Segments.At(i)
			sb.Write(seg.Value(f.src))
		}

	case *east.Strikethrough:
		sb.WriteString("~~")
		sb.WriteString(f.inline(node))
		sb.WriteString("~~")

	case *east.TaskCheckBox:
		if node.IsChecked {
			sb.WriteString("[x] ")
		} else {
			sb.WriteString("[ ] ")
		}

	default:
		sb.WriteString(f.inline(n))
	}
}

func writeLink(sb *strings.Builder, label, dest string) {
	sb.WriteByte('[')
	sb.WriteString(label)
	sb.WriteString("](")
	sb.WriteString(dest)
	sb.WriteByte(')')
}

// isTextual reports whether n holds inline content that can share a line
// with a list marker.
func isTextual(n ast.Node) bool {
	switch n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return true
	default:
		return false
	}
}

// splitLines splits inline content on newlines, dropping a trailing one.
func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func trimEOL(b []byte) string {
	return strings.TrimRight(string(b), "\r\n")
}
