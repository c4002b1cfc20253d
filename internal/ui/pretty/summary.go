package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/yaklabco/gomdedit/pkg/block"
	"github.com/yaklabco/gomdedit/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
	wordBlock           = "block"
	wordBlocks          = "blocks"
)

// blockOrder is the display order for per-type counts.
var blockOrder = []block.Type{
	block.TypeH1, block.TypeH2, block.TypeH3, block.TypeH4, block.TypeH5, block.TypeH6,
	block.TypeParagraph, block.TypeUnordered, block.TypeOrdered, block.TypeBlockquote,
	block.TypeCodeBlock, block.TypeRule, block.TypeBreak,
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatBlockCounts formats per-type counts as a single line.
// Example: "5 blocks: 1 h1, 2 p, 2 br".
func (s *Styles) FormatBlockCounts(counts map[block.Type]int) string {
	total := lo.Sum(lo.Values(counts))
	head := fmt.Sprintf("%d %s", total, plural(total, wordBlock, wordBlocks))
	if total == 0 {
		return s.Dim.Render(head)
	}

	present := lo.Filter(blockOrder, func(t block.Type, _ int) bool { return counts[t] > 0 })
	parts := lo.Map(present, func(t block.Type, _ int) string {
		return s.BlockStyle(t).Render(fmt.Sprintf("%d %s", counts[t], t))
	})

	return head + ": " + strings.Join(parts, ", ")
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 files rendered (2 written, 1 unchanged), 14 blocks".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, dryRun bool) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No markdown files found") + "\n"
	}

	var parts []string

	rendered := fmt.Sprintf("%d %s rendered", stats.FilesRendered,
		plural(stats.FilesRendered, wordFile, wordFiles))
	switch {
	case dryRun:
		rendered += s.Dim.Render(" (dry run)")
	case stats.FilesRendered > 0:
		rendered += fmt.Sprintf(" (%s, %s)",
			s.Success.Render(fmt.Sprintf("%d written", stats.FilesWritten)),
			s.Dim.Render(fmt.Sprintf("%d unchanged", stats.FilesUnchanged)))
	}
	parts = append(parts, rendered)

	blocks := stats.BlocksTotal()
	parts = append(parts, fmt.Sprintf("%d %s", blocks, plural(blocks, wordBlock, wordBlocks)))

	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats, dryRun bool) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files found:       " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)) + "\n")
	builder.WriteString("  Files rendered:    " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesRendered)) + "\n")

	if !dryRun {
		if stats.FilesWritten > 0 {
			builder.WriteString("  Files written:     " +
				s.Success.Render(strconv.Itoa(stats.FilesWritten)) + "\n")
		}
		if stats.FilesUnchanged > 0 {
			builder.WriteString("  Files unchanged:   " +
				s.Dim.Render(strconv.Itoa(stats.FilesUnchanged)) + "\n")
		}
	}

	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:      " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")

	builder.WriteString("  Total blocks:      " +
		s.SummaryValue.Render(strconv.Itoa(stats.BlocksTotal())) + "\n")
	for _, t := range blockOrder {
		if n := stats.BlocksByType[t]; n > 0 {
			label := fmt.Sprintf("    %-17s", string(t)+":")
			builder.WriteString(label + s.BlockStyle(t).Render(strconv.Itoa(n)) + "\n")
		}
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Convert failed"))
	case dryRun:
		builder.WriteString(s.Info.Render("Dry run completed"))
	default:
		builder.WriteString(s.Success.Render("Convert completed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
