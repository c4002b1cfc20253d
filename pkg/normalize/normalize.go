// Package normalize rewrites arbitrary CommonMark into canonical markdown:
// the one-block-per-line form that the block classifier and the serializer
// invert exactly. Structure the editor cannot represent, such as nesting,
// setext headings and indented code, is flattened rather than dropped.
package normalize

import (
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Flavor identifies the Markdown flavor accepted by the normalizer.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Normalizer flattens markdown of one flavor.
type Normalizer struct {
	flavor string
	md     goldmark.Markdown
}

// New creates a normalizer for the given flavor.
// Supported flavors are "commonmark" and "gfm".
// Invalid flavors default to "commonmark".
func New(flavor string) *Normalizer {
	f := flavorOrDefault(flavor)
	return &Normalizer{
		flavor: f,
		md:     newGoldmarkInstance(f),
	}
}

// Flavor returns the configured Markdown flavor.
func (n *Normalizer) Flavor() string {
	return n.flavor
}

// Normalize parses src and returns its canonical form. Blocks are separated
// by one blank line; list items and the lines of a paragraph are not. The
// result has no trailing newline.
func (n *Normalizer) Normalize(ctx context.Context, src []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("normalize cancelled: %w", err)
	}

	content := make([]byte, len(src))
	copy(content, src)

	reader := text.NewReader(content)
	doc := n.md.Parser().Parse(reader, parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("normalize cancelled: %w", err)
	}

	f := &flattener{src: content}
	return strings.Join(f.document(doc), "\n"), nil
}

// Markdown normalizes CommonMark src.
func Markdown(src []byte) (string, error) {
	return New(FlavorCommonMark).Normalize(context.Background(), src)
}

// flavorOrDefault returns the flavor if valid, otherwise "commonmark".
func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

// newGoldmarkInstance creates a goldmark instance for the given flavor.
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	if flavor == FlavorGFM {
		return goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	}
	return goldmark.New()
}
