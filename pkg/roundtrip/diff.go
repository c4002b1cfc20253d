package roundtrip

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff is a line diff between two texts, grouped into unified-diff hunks.
type Diff struct {
	// Path names both sides in the unified header.
	Path string

	Hunks []Hunk

	// Additions, Deletions and Unchanged count lines across the whole text,
	// not just inside hunks.
	Additions int
	Deletions int
	Unchanged int
}

// Hunk is a run of changes with surrounding context.
type Hunk struct {
	// OriginalStart and ModifiedStart are 1-based line numbers.
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int

	Lines []Line
}

// Line is one line of a hunk.
type Line struct {
	Kind    LineKind
	Content string
}

// LineKind says whether a line is shared, added, or removed.
type LineKind int

const (
	LineContext LineKind = iota
	LineAdd
	LineRemove
)

// contextLines is the number of context lines to show around changes.
const contextLines = 3

// GenerateDiff diffs original against modified line by line. It returns nil
// when the texts have the same lines.
func GenerateDiff(path, original, modified string) *Diff {
	ops := lineOps(original, modified)

	d := &Diff{Path: path}
	for _, op := range ops {
		switch op.Kind {
		case LineAdd:
			d.Additions++
		case LineRemove:
			d.Deletions++
		case LineContext:
			d.Unchanged++
		}
	}
	if d.Additions == 0 && d.Deletions == 0 {
		return nil
	}

	d.Hunks = groupIntoHunks(ops)
	return d
}

// lineOps diffs the two texts line by line and flattens the result to one
// op per line. Each distinct line is mapped to a single rune so the
// character diff works on whole lines.
func lineOps(original, modified string) []Line {
	var table lineTable
	a := table.encode(original)
	b := table.encode(modified)

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMainRunes(a, b, false)

	var ops []Line
	for _, d := range diffs {
		kind := LineContext
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			kind = LineAdd
		case diffmatchpatch.DiffDelete:
			kind = LineRemove
		case diffmatchpatch.DiffEqual:
		}

		for _, r := range d.Text {
			ops = append(ops, Line{Kind: kind, Content: table.line(r)})
		}
	}
	return ops
}

// lineTable assigns each distinct line a rune. Runes skip the surrogate
// range so they survive conversion to and from strings.
type lineTable struct {
	lines []string
	index map[string]rune
}

const (
	surrogateMin = 0xD800
	surrogateLen = 0x800
)

func (t *lineTable) encode(text string) []rune {
	if t.index == nil {
		t.index = make(map[string]rune)
	}

	lines := splitLines(text)
	out := make([]rune, 0, len(lines))
	for _, line := range lines {
		r, ok := t.index[line]
		if !ok {
			r = rune(len(t.lines) + 1)
			if r >= surrogateMin {
				r += surrogateLen
			}
			t.index[line] = r
			t.lines = append(t.lines, line)
		}
		out = append(out, r)
	}
	return out
}

func (t *lineTable) line(r rune) string {
	if r >= surrogateMin+surrogateLen {
		r -= surrogateLen
	}
	i := int(r) - 1
	if i < 0 || i >= len(t.lines) {
		return ""
	}
	return t.lines[i]
}

// splitLines splits s into lines. A final newline does not start another
// line, so "a" and "a\n" have the same lines.
func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// groupIntoHunks groups line ops into hunks with context lines. Changes
// separated by no more than twice the context share a hunk.
func groupIntoHunks(ops []Line) []Hunk {
	type changeRange struct {
		start, end int
	}

	var ranges []changeRange
	inChange := false
	rangeStart := 0

	for i, op := range ops {
		isChange := op.Kind != LineContext
		switch {
		case isChange && !inChange:
			rangeStart = i
			inChange = true
		case !isChange && inChange:
			ranges = append(ranges, changeRange{rangeStart, i})
			inChange = false
		}
	}
	if inChange {
		ranges = append(ranges, changeRange{rangeStart, len(ops)})
	}

	var hunks []Hunk
	for i := 0; i < len(ranges); {
		j := i + 1
		for j < len(ranges) && ranges[j].start-ranges[j-1].end <= contextLines*2 {
			j++
		}

		hunks = append(hunks, buildHunk(ops, ranges[i].start, ranges[j-1].end))
		i = j
	}

	return hunks
}

// buildHunk builds a single hunk from a range of ops plus context.
func buildHunk(ops []Line, changeStart, changeEnd int) Hunk {
	start := max(changeStart-contextLines, 0)
	end := min(changeEnd+contextLines, len(ops))

	hunk := Hunk{OriginalStart: 1, ModifiedStart: 1}
	for _, op := range ops[:start] {
		if op.Kind != LineAdd {
			hunk.OriginalStart++
		}
		if op.Kind != LineRemove {
			hunk.ModifiedStart++
		}
	}

	for _, op := range ops[start:end] {
		hunk.Lines = append(hunk.Lines, op)

		switch op.Kind {
		case LineContext:
			hunk.OriginalCount++
			hunk.ModifiedCount++
		case LineRemove:
			hunk.OriginalCount++
		case LineAdd:
			hunk.ModifiedCount++
		}
	}

	return hunk
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String returns the diff in unified diff format.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n", path)
	fmt.Fprintf(&builder, "+++ b/%s\n", path)

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&builder, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)

		for _, line := range hunk.Lines {
			switch line.Kind {
			case LineContext:
				fmt.Fprintf(&builder, " %s\n", line.Content)
			case LineAdd:
				fmt.Fprintf(&builder, "+%s\n", line.Content)
			case LineRemove:
				fmt.Fprintf(&builder, "-%s\n", line.Content)
			}
		}
	}

	return builder.String()
}
