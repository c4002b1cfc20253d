// Package roundtrip checks that markdown survives the editor's full cycle:
// classify, render, parse as a surface, and serialize back.
package roundtrip

import (
	"github.com/yaklabco/gomdedit/pkg/block"
	"github.com/yaklabco/gomdedit/pkg/render"
	"github.com/yaklabco/gomdedit/pkg/serialize"
	"github.com/yaklabco/gomdedit/pkg/surface"
)

// Report is the outcome of one round trip.
type Report struct {
	Source string

	// Markup is the rendered surface the source went through.
	Markup string

	// Output is the markdown serialized back from the surface.
	Output string

	// Blocks is the number of elements the source classified into.
	Blocks int

	// Exact reports that Output equals Source byte for byte.
	Exact bool

	// Diff compares Source with Output by line. It is nil when they have
	// the same lines, which can happen without Exact when only a trailing
	// newline differs.
	Diff *Diff
}

// Checker runs round trips with a fixed renderer.
type Checker struct {
	renderer render.Renderer
	path     string
}

// New creates a Checker. The renderer matters for code blocks: with
// LanguageClass set the fence info survives the trip.
func New(r render.Renderer) *Checker {
	return &Checker{renderer: r, path: "document.md"}
}

// WithPath returns a copy of c that names path in diff headers.
func (c *Checker) WithPath(path string) *Checker {
	clone := *c
	clone.path = path
	return &clone
}

// Check runs md through the cycle.
func (c *Checker) Check(md string) Report {
	doc := block.Classify(md)
	markup := c.renderer.Document(doc)
	output := serialize.Markdown(surface.MustParse(markup))

	return Report{
		Source: md,
		Markup: markup,
		Output: output,
		Blocks: len(doc),
		Exact:  output == md,
		Diff:   GenerateDiff(c.path, md, output),
	}
}

// Check runs md through the cycle with the plain renderer.
func Check(md string) Report {
	return New(render.Renderer{}).Check(md)
}
