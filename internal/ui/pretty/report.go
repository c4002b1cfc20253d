package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gomdedit/pkg/roundtrip"
)

// FormatDiff formats a round-trip diff in unified format with styled lines.
func (s *Styles) FormatDiff(d *roundtrip.Diff) string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	builder.WriteString(s.DiffHeader.Render("--- a/"+path) + "\n")
	builder.WriteString(s.DiffHeader.Render("+++ b/"+path) + "\n")

	for _, hunk := range d.Hunks {
		header := fmt.Sprintf("@@ -%d,%d +%d,%d @@",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)
		builder.WriteString(s.DiffHunk.Render(header) + "\n")

		for _, line := range hunk.Lines {
			switch line.Kind {
			case roundtrip.LineContext:
				builder.WriteString(s.DiffContext.Render(" "+line.Content) + "\n")
			case roundtrip.LineAdd:
				builder.WriteString(s.DiffAdd.Render("+"+line.Content) + "\n")
			case roundtrip.LineRemove:
				builder.WriteString(s.DiffRemove.Render("-"+line.Content) + "\n")
			}
		}
	}

	return builder.String()
}

// FormatRoundTrip formats the outcome of a round trip: a status line and,
// on mismatch, the diff.
func (s *Styles) FormatRoundTrip(path string, report roundtrip.Report) string {
	var builder strings.Builder

	builder.WriteString(s.FilePath.Render(path) + "  ")

	switch {
	case report.Exact:
		builder.WriteString(s.Success.Render("exact"))
	case report.Diff == nil:
		builder.WriteString(s.Warning.Render("trailing newline differs"))
	default:
		builder.WriteString(s.Failure.Render("mismatch"))
		builder.WriteString(s.Dim.Render(fmt.Sprintf(" (+%d -%d)",
			report.Diff.Additions, report.Diff.Deletions)))
	}

	builder.WriteString(s.Dim.Render(fmt.Sprintf("  %d %s", report.Blocks,
		plural(report.Blocks, wordBlock, wordBlocks))))
	builder.WriteString("\n")

	if report.Diff.HasChanges() {
		builder.WriteString(s.FormatDiff(report.Diff))
	}

	return builder.String()
}
