package surface

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse parses a markup fragment as the content of a body element and
// returns a root holding the resulting top-level nodes.
//
// Parsing follows the HTML5 algorithm, so malformed markup is repaired the
// way a browser would repair it rather than rejected.
func Parse(markup string) (*Node, error) {
	return ParseReader(strings.NewReader(markup))
}

// ParseReader is Parse for streamed markup.
func ParseReader(r io.Reader) (*Node, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}

	nodes, err := html.ParseFragment(r, context)
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}

	root := NewRoot()
	for _, hn := range nodes {
		if n := fromHTML(hn); n != nil {
			AppendChild(root, n)
		}
	}
	return root, nil
}

// MustParse is Parse for markup known to be well formed, such as renderer
// output. It panics only if reading from a string fails.
func MustParse(markup string) *Node {
	root, err := Parse(markup)
	if err != nil {
		panic(err)
	}
	return root
}

func fromHTML(hn *html.Node) *Node {
	var n *Node
	switch hn.Type {
	case html.ElementNode:
		n = NewElement(hn.Data)
		for _, a := range hn.Attr {
			n.Attrs = append(n.Attrs, Attr{Key: a.Key, Val: a.Val})
		}
	case html.TextNode:
		return NewText(hn.Data)
	case html.CommentNode:
		return &Node{Kind: NodeComment, Text: hn.Data}
	case html.DoctypeNode:
		return &Node{Kind: NodeDoctype, Text: hn.Data}
	default:
		return nil
	}

	for c := hn.FirstChild; c != nil; c = c.NextSibling {
		if child := fromHTML(c); child != nil {
			AppendChild(n, child)
		}
	}
	return n
}

// Render writes the markup for the children of n (or n itself when it is
// not a root) to w.
func Render(w io.Writer, n *Node) error {
	if n == nil {
		return nil
	}

	nodes := []*Node{n}
	if n.Kind == NodeRoot {
		nodes = n.Children()
	}

	for _, c := range nodes {
		if err := html.Render(w, toHTML(c)); err != nil {
			return fmt.Errorf("render %s node: %w", c.Kind, err)
		}
	}
	return nil
}

// HTML renders n to a string. Rendering to memory cannot fail, so an empty
// string is returned only for an empty tree.
func HTML(n *Node) string {
	var buf bytes.Buffer
	//nolint:errcheck // bytes.Buffer writes never fail
	Render(&buf, n)
	return buf.String()
}

func toHTML(n *Node) *html.Node {
	hn := &html.Node{}
	switch n.Kind {
	case NodeElement:
		hn.Type = html.ElementNode
		hn.Data = n.Tag
		hn.DataAtom = atom.Lookup([]byte(n.Tag))
		for _, a := range n.Attrs {
			hn.Attr = append(hn.Attr, html.Attribute{Key: a.Key, Val: a.Val})
		}
	case NodeText:
		hn.Type = html.TextNode
		hn.Data = n.Text
	case NodeComment:
		hn.Type = html.CommentNode
		hn.Data = n.Text
	case NodeDoctype:
		hn.Type = html.DoctypeNode
		hn.Data = n.Text
	case NodeRoot:
		hn.Type = html.DocumentNode
	}

	for c := n.FirstChild; c != nil; c = c.Next {
		hn.AppendChild(toHTML(c))
	}
	return hn
}
