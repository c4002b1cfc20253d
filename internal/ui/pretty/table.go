package pretty

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/gomdedit/pkg/block"
	"github.com/yaklabco/gomdedit/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding       = 2
	blockColumnCount   = 3 // #, TYPE, CONTENT
	runColumnCount     = 4 // FILE, OUTPUT, BLOCKS, STATUS
	minIndexWidth      = 3
	minTypeWidth       = 10
	minContentWidth    = 30
	minFileWidth       = 20
	minOutputWidth     = 20
	minBlocksWidth     = 6
	statusColumnWidth  = 9
	heavySeparator     = "="
	lightSeparator     = "-"
	defaultTermWidth   = 100
	newlineReplacement = "\\n"
)

// Run status labels.
const (
	StatusWritten   = "written"
	StatusUnchanged = "unchanged"
	StatusDryRun    = "dry-run"
	StatusError     = "error"
)

// BlockRow represents a single row in the block table.
type BlockRow struct {
	Index   int
	Type    block.Type
	Label   string
	Content string
}

// RunRow represents a single row in the convert table.
type RunRow struct {
	File   string
	Output string
	Blocks int
	Status string
}

// TableFormatter formats documents and run results as styled tables.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

// BlockToRow converts a classified element to a table row. Code blocks carry
// their language tag in the label and multi-line content is shown on one line.
func BlockToRow(index int, el block.Element) BlockRow {
	label := string(el.Type)
	if el.Type == block.TypeCodeBlock && el.Info != "" {
		label += " (" + el.Info + ")"
	}
	return BlockRow{
		Index:   index,
		Type:    el.Type,
		Label:   label,
		Content: strings.ReplaceAll(el.Content, "\n", newlineReplacement),
	}
}

// FormatBlocks formats a classified document as a styled table.
func (t *TableFormatter) FormatBlocks(doc block.Document) string {
	if len(doc) == 0 {
		return ""
	}

	rows := make([]BlockRow, 0, len(doc))
	for i, el := range doc {
		rows = append(rows, BlockToRow(i+1, el))
	}

	widths := t.calculateBlockWidths(rows)

	var builder strings.Builder

	header := fmt.Sprintf(" %*s  %-*s  %-*s ",
		widths.index, "#",
		widths.typ, "TYPE",
		widths.content, "CONTENT",
	)
	builder.WriteString(t.styles.TableHeader.Render(header))
	builder.WriteString("\n")
	builder.WriteString(t.separator(widths.total(), heavySeparator))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatBlockRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.separator(widths.total(), heavySeparator))
	builder.WriteString("\n")
	builder.WriteString(" " + t.styles.FormatBlockCounts(doc.CountByType()))
	builder.WriteString("\n")

	return builder.String()
}

type blockColumnWidths struct {
	index   int
	typ     int
	content int
}

func (w blockColumnWidths) total() int {
	return w.index + w.typ + w.content + tablePadding*blockColumnCount
}

// calculateBlockWidths determines column widths based on content.
func (t *TableFormatter) calculateBlockWidths(rows []BlockRow) blockColumnWidths {
	widths := blockColumnWidths{
		index:   minIndexWidth,
		typ:     minTypeWidth,
		content: minContentWidth,
	}

	for _, row := range rows {
		widths.index = max(widths.index, len(strconv.Itoa(row.Index)))
		widths.typ = max(widths.typ, utf8.RuneCountInString(row.Label))
		widths.content = max(widths.content, utf8.RuneCountInString(row.Content))
	}

	// Constrain to terminal width
	if total := widths.total(); total > t.termWidth {
		widths.content = max(minContentWidth, widths.content-(total-t.termWidth))
	}

	return widths
}

// formatBlockRow formats a single block row with its type styled.
func (t *TableFormatter) formatBlockRow(row BlockRow, widths blockColumnWidths) string {
	label := fmt.Sprintf("%-*s", widths.typ, truncateString(row.Label, widths.typ))

	return fmt.Sprintf(" %*d  %s  %s",
		widths.index, row.Index,
		t.styles.BlockStyle(row.Type).Render(label),
		truncateString(row.Content, widths.content),
	)
}

// RunRows converts runner outcomes to table rows.
func RunRows(result *runner.Result) []RunRow {
	if result == nil {
		return nil
	}

	rows := make([]RunRow, 0, len(result.Files))
	for _, file := range result.Files {
		row := RunRow{File: file.Path, Output: file.Output}
		for _, n := range file.Blocks {
			row.Blocks += n
		}

		switch {
		case file.Error != nil:
			row.Status = StatusError
			row.Output = file.Error.Error()
		case result.DryRun:
			row.Status = StatusDryRun
		case file.Written:
			row.Status = StatusWritten
		default:
			row.Status = StatusUnchanged
		}

		rows = append(rows, row)
	}
	return rows
}

// FormatRunTable formats convert results as a styled table.
func (t *TableFormatter) FormatRunTable(result *runner.Result) string {
	rows := RunRows(result)
	if len(rows) == 0 {
		return ""
	}

	widths := t.calculateRunWidths(rows)

	var builder strings.Builder

	header := fmt.Sprintf(" %-*s  %-*s  %*s  %-*s ",
		widths.file, "FILE",
		widths.output, "OUTPUT",
		widths.blocks, "BLOCKS",
		statusColumnWidth, "STATUS",
	)
	builder.WriteString(t.styles.TableHeader.Render(header))
	builder.WriteString("\n")
	builder.WriteString(t.separator(widths.total(), heavySeparator))
	builder.WriteString("\n")

	for i, row := range rows {
		if i > 0 && row.Status == StatusError {
			builder.WriteString(t.separator(widths.total(), lightSeparator))
			builder.WriteString("\n")
		}
		builder.WriteString(t.formatRunRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.separator(widths.total(), heavySeparator))
	builder.WriteString("\n")
	builder.WriteString(t.formatLegend())
	builder.WriteString("\n")

	return builder.String()
}

type runColumnWidths struct {
	file   int
	output int
	blocks int
}

func (w runColumnWidths) total() int {
	return w.file + w.output + w.blocks + statusColumnWidth + tablePadding*runColumnCount
}

// calculateRunWidths determines column widths, shrinking the output column
// first and the file column second to fit the terminal.
func (t *TableFormatter) calculateRunWidths(rows []RunRow) runColumnWidths {
	widths := runColumnWidths{
		file:   minFileWidth,
		output: minOutputWidth,
		blocks: minBlocksWidth,
	}

	for _, row := range rows {
		widths.file = max(widths.file, utf8.RuneCountInString(row.File))
		widths.output = max(widths.output, utf8.RuneCountInString(row.Output))
		widths.blocks = max(widths.blocks, len(strconv.Itoa(row.Blocks)))
	}

	if total := widths.total(); total > t.termWidth {
		widths.output = max(minOutputWidth, widths.output-(total-t.termWidth))

		if total = widths.total(); total > t.termWidth {
			widths.file = max(minFileWidth, widths.file-(total-t.termWidth))
		}
	}

	return widths
}

// formatRunRow formats a single run row with status-based styling.
func (t *TableFormatter) formatRunRow(row RunRow, widths runColumnWidths) string {
	content := fmt.Sprintf(" %-*s  %-*s  %*d  %-*s",
		widths.file, truncateFilePath(row.File, widths.file),
		widths.output, truncateFilePath(row.Output, widths.output),
		widths.blocks, row.Blocks,
		statusColumnWidth, row.Status,
	)

	return t.rowStyle(row.Status).Render(content)
}

// rowStyle returns the appropriate style for a run status.
func (t *TableFormatter) rowStyle(status string) lipgloss.Style {
	switch status {
	case StatusError:
		return t.styles.TableErrorRow
	case StatusWritten:
		return t.styles.TableWrittenRow
	case StatusUnchanged, StatusDryRun:
		return t.styles.TableQuietRow
	default:
		return lipgloss.NewStyle()
	}
}

// formatLegend formats the legend explaining the row colors.
func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(
			" Legend: written = output changed | unchanged = output already current | error = not converted",
		)
	}

	return t.styles.TableLegend.Render(
		fmt.Sprintf(" Legend: %s  %s  %s",
			t.styles.TableWrittenRow.Render(StatusWritten),
			t.styles.TableQuietRow.Render(StatusUnchanged),
			t.styles.TableErrorRow.Render(StatusError)),
	)
}

func (t *TableFormatter) separator(width int, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, width))
}

// truncateString truncates a string to maxLen runes, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	runes := []rune(str)
	if len(runes) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	runes := []rune(path)
	if len(runes) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return string(runes[len(runes)-maxLen:])
	}
	return "..." + string(runes[len(runes)-maxLen+3:])
}
