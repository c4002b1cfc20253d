package block

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/yaklabco/gomdedit/pkg/inline"
)

// Fence is the delimiter that opens and closes a fenced code block.
const Fence = "```"

//nolint:gochecknoglobals // Read-only line patterns.
var (
	headingRegexp   = regexp.MustCompile(`^(#{1,6}) `)
	unorderedRegexp = regexp.MustCompile(`^[-*+]\s`)
	orderedRegexp   = regexp.MustCompile(`^\d+\.\s`)
	ruleRegexp      = regexp.MustCompile(`^(---|\*\*\*|___)$`)
)

// quotePrefix starts a blockquote line.
const quotePrefix = "> "

// fenceState accumulates the lines of an open code fence.
type fenceState struct {
	open  bool
	info  string
	lines []string
}

func (f *fenceState) start(line string) {
	f.open = true
	f.info = strings.TrimSpace(line[len(Fence):])
	f.lines = f.lines[:0]
}

func (f *fenceState) element() Element {
	el := Element{
		Type:    TypeCodeBlock,
		Content: strings.Join(f.lines, "\n"),
		Info:    f.info,
	}
	if f.info != "" {
		el.Level = 1
	}
	return el
}

func (f *fenceState) close() Element {
	el := f.element()
	f.open = false
	f.info = ""
	f.lines = f.lines[:0]
	return el
}

// Classify splits text on "\n" and returns one element per line, except
// that fenced code collapses into a single TypeCodeBlock element.
//
// A fence left open at the end of the input is flushed as a code block
// holding every line after the opening fence. Classify never fails.
func Classify(text string) Document {
	lines := strings.Split(text, "\n")
	doc := make(Document, 0, len(lines))

	var fence fenceState
	for _, line := range lines {
		if strings.HasPrefix(line, Fence) {
			if fence.open {
				doc = append(doc, fence.close())
			} else {
				fence.start(line)
			}
			continue
		}

		if fence.open {
			fence.lines = append(fence.lines, line)
			continue
		}

		doc = append(doc, ClassifyLine(line))
	}

	if fence.open {
		doc = append(doc, fence.close())
	}

	return doc
}

// ClassifyFile classifies the content of a markdown file. The file's final
// newline ends its last line and does not yield a trailing break.
func ClassifyFile(content []byte) Document {
	return Classify(FileText(content))
}

// FileText returns file content as document text, without the final newline.
func FileText(content []byte) string {
	return strings.TrimSuffix(string(content), "\n")
}

// ClassifyReader reads all of r and classifies it.
// Line endings are not normalized; a "\r" before "\n" stays in the line.
func ClassifyReader(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read markdown: %w", err)
	}
	return Classify(string(data)), nil
}

// ClassifyLine classifies a single line outside of any code fence.
// Fence delimiters are not recognized here; use Classify for whole documents.
func ClassifyLine(line string) Element {
	if m := headingRegexp.FindStringSubmatch(line); m != nil {
		level := len(m[1])
		return Element{
			Type:    HeadingType(level),
			Content: inline.Rewrite(line[len(m[0]):]),
			Level:   level,
		}
	}

	if m := unorderedRegexp.FindString(line); m != "" {
		return Element{Type: TypeUnordered, Content: inline.Rewrite(line[len(m):])}
	}

	if m := orderedRegexp.FindString(line); m != "" {
		return Element{Type: TypeOrdered, Content: inline.Rewrite(line[len(m):])}
	}

	if strings.HasPrefix(line, quotePrefix) {
		return Element{Type: TypeBlockquote, Content: inline.Rewrite(line[len(quotePrefix):])}
	}

	if ruleRegexp.MatchString(line) {
		return Element{Type: TypeRule}
	}

	if strings.TrimSpace(line) == "" {
		return Element{Type: TypeBreak}
	}

	return Element{Type: TypeParagraph, Content: inline.Rewrite(line)}
}
