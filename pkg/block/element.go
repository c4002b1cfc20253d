// Package block classifies raw markdown text into an ordered sequence of typed block elements.
//
// Classification is a single forward pass over the lines of the document.
// Each line produces at most one element; list items and quote lines are never
// merged, and fenced code collapses into one element per fence pair.
package block

import "strconv"

// Type identifies the kind of a block element.
type Type string

// Block element types.
const (
	TypeH1         Type = "h1"
	TypeH2         Type = "h2"
	TypeH3         Type = "h3"
	TypeH4         Type = "h4"
	TypeH5         Type = "h5"
	TypeH6         Type = "h6"
	TypeUnordered  Type = "ul"
	TypeOrdered    Type = "ol"
	TypeBlockquote Type = "blockquote"
	TypeCodeBlock  Type = "codeblock"
	TypeRule       Type = "hr"
	TypeBreak      Type = "br"
	TypeParagraph  Type = "p"
)

// MaxHeadingLevel is the deepest heading the classifier recognizes.
const MaxHeadingLevel = 6

// HeadingType returns the heading type for level, or TypeParagraph when
// level is outside 1..MaxHeadingLevel.
func HeadingType(level int) Type {
	if level < 1 || level > MaxHeadingLevel {
		return TypeParagraph
	}
	return Type("h" + strconv.Itoa(level))
}

// IsHeading reports whether t is one of h1..h6.
func (t Type) IsHeading() bool {
	return t.HeadingLevel() > 0
}

// HeadingLevel returns 1..6 for heading types and 0 otherwise.
func (t Type) HeadingLevel() int {
	if len(t) != 2 || t[0] != 'h' {
		return 0
	}
	level := int(t[1] - '0')
	if level < 1 || level > MaxHeadingLevel {
		return 0
	}
	return level
}

// Known reports whether t is part of the element vocabulary.
func (t Type) Known() bool {
	switch t {
	case TypeUnordered, TypeOrdered, TypeBlockquote, TypeCodeBlock,
		TypeRule, TypeBreak, TypeParagraph:
		return true
	default:
		return t.IsHeading()
	}
}

// Element is one structural unit of a parsed document.
type Element struct {
	// Type is the element kind.
	Type Type `json:"type" yaml:"type"`

	// Content is markup-safe, inline-styled text for every type except
	// TypeCodeBlock, whose content is the raw, unescaped source lines.
	Content string `json:"content" yaml:"content"`

	// Level is the heading level (1-6) for headings. For code blocks it is
	// 1 when the opening fence carried a language tag and 0 otherwise.
	Level int `json:"level,omitempty" yaml:"level,omitempty"`

	// Info is the trimmed language tag of a fenced code block.
	Info string `json:"info,omitempty" yaml:"info,omitempty"`
}

// Document is an ordered sequence of block elements.
type Document []Element

// Types returns the element types in document order.
func (d Document) Types() []Type {
	types := make([]Type, len(d))
	for i, el := range d {
		types[i] = el.Type
	}
	return types
}

// CountByType returns the number of elements of each type.
func (d Document) CountByType() map[Type]int {
	counts := make(map[Type]int)
	for _, el := range d {
		counts[el.Type]++
	}
	return counts
}
