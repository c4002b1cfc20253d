package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gomdedit/internal/ui/pretty"
	"github.com/yaklabco/gomdedit/pkg/block"
	"github.com/yaklabco/gomdedit/pkg/config"
)

type blocksFlags struct {
	format string
}

func newBlocksCommand() *cobra.Command {
	flags := &blocksFlags{}

	cmd := &cobra.Command{
		Use:   "blocks [file]",
		Short: "List the block elements of a document",
		Long: `Classify a Markdown document and list its block elements in order.

The text and table formats print a styled table with per-type counts. The
json and yaml formats print the elements as a list of {type, content, level,
info} records, the form the renderer consumes.

Examples:
  gomdedit blocks README.md
  gomdedit blocks --format json README.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBlocks(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json, yaml")

	return cmd
}

func runBlocks(cmd *cobra.Command, args []string, flags *blocksFlags) error {
	format := config.OutputFormat(flags.format)
	if !format.IsValid() {
		return fmt.Errorf("invalid format %q: must be text, table, json or yaml", flags.format)
	}

	text, _, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	doc := block.Classify(text)
	if err := writeBlocks(cmd, doc, format); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func writeBlocks(cmd *cobra.Command, doc block.Document, format config.OutputFormat) error {
	out := cmd.OutOrStdout()

	switch format {
	case config.FormatJSON:
		return encodeJSON(out, doc)
	case config.FormatYAML:
		return encodeYAML(out, doc)
	default:
		st, colorEnabled := styles(cmd)
		table := pretty.NewTableFormatter(st, colorEnabled, terminalWidth(out))
		_, err := io.WriteString(out, table.FormatBlocks(doc))
		return err
	}
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(config.YAMLIndent())
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
