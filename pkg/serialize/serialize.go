// Package serialize walks a surface tree back into markdown text.
//
// Inline elements become their delimiters, each top-level block becomes one
// or more lines, and the lines are joined with "\n". The output is the
// line-oriented form the block classifier reads, so rendering and then
// serializing simple documents reproduces the source.
package serialize

import (
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/yaklabco/gomdedit/pkg/block"
	"github.com/yaklabco/gomdedit/pkg/surface"
)

// languageClassPrefix marks the fence tag on a rendered <code> element.
const languageClassPrefix = "language-"

// Markdown serializes every top-level child of root and joins the lines
// with "\n". It returns "" when every line is blank.
func Markdown(root *surface.Node) string {
	if root == nil {
		return ""
	}

	lines := lo.FlatMap(root.Children(), func(n *surface.Node, _ int) []string {
		return Block(n)
	})

	if lo.EveryBy(lines, isBlank) {
		return ""
	}

	return strings.Join(lines, "\n")
}

// Block serializes one top-level node into its markdown lines.
// Comments and doctypes produce no lines.
func Block(n *surface.Node) []string {
	switch n.Kind {
	case surface.NodeText:
		if isBlank(n.Text) {
			return []string{""}
		}
		return []string{n.Text}
	case surface.NodeElement:
		return element(n)
	default:
		return nil
	}
}

func element(n *surface.Node) []string {
	if level := block.Type(n.Tag).HeadingLevel(); level > 0 {
		return []string{strings.Repeat("#", level) + " " + children(n)}
	}

	switch n.Tag {
	case "blockquote":
		lines := strings.Split(children(n), "\n")
		return lo.Map(lines, func(line string, _ int) string {
			return "> " + line
		})
	case "pre":
		return codeBlock(n)
	case "ul":
		return listItems(n, func(int) string { return "- " })
	case "ol":
		return listItems(n, func(i int) string { return strconv.Itoa(i+1) + ". " })
	case "hr":
		return []string{"---"}
	case "br":
		return []string{""}
	default:
		return []string{children(n)}
	}
}

// listItems renders each direct li child with its marker. A list with no
// items still produces one empty item so the list survives a round trip.
func listItems(n *surface.Node, marker func(i int) string) []string {
	items := lo.Filter(n.Children(), func(c *surface.Node, _ int) bool {
		return c.IsElement("li")
	})
	if len(items) == 0 {
		return []string{marker(0)}
	}
	return lo.Map(items, func(li *surface.Node, i int) string {
		return marker(i) + children(li)
	})
}

func codeBlock(pre *surface.Node) []string {
	open := block.Fence + language(pre)
	text := strings.TrimSuffix(surface.TextContent(pre), "\n")
	if text == "" {
		return []string{open, block.Fence}
	}
	return []string{open, text, block.Fence}
}

// language returns the fence tag carried by the first <code> inside pre.
func language(pre *surface.Node) string {
	code := surface.FindFirst(pre, func(n *surface.Node) bool { return n.IsElement("code") })
	if code == nil {
		return ""
	}
	class, _ := code.Attr("class")
	for _, c := range strings.Fields(class) {
		if tag, ok := strings.CutPrefix(c, languageClassPrefix); ok {
			return tag
		}
	}
	return ""
}

// Inline serializes n and its descendants as inline markdown.
func Inline(n *surface.Node) string {
	if n.IsText() {
		return n.Text
	}
	if n.Kind != surface.NodeElement {
		return ""
	}

	switch n.Tag {
	case "strong", "b":
		return "**" + children(n) + "**"
	case "em", "i":
		return "*" + children(n) + "*"
	case "code":
		return "`" + strings.ReplaceAll(children(n), "`", "\\`") + "`"
	case "a":
		href, _ := n.Attr("href")
		return "[" + children(n) + "](" + href + ")"
	case "br":
		return "\n"
	default:
		return children(n)
	}
}

func children(n *surface.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.Next {
		sb.WriteString(Inline(c))
	}
	return sb.String()
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
