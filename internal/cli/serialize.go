package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdedit/internal/logging"
	"github.com/yaklabco/gomdedit/pkg/serialize"
	"github.com/yaklabco/gomdedit/pkg/surface"
)

func newSerializeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serialize [file]",
		Short: "Serialize editor markup back to Markdown",
		Long: `Parse a markup fragment as an editable surface and serialize it to Markdown.

Headings, quotes, lists, rules, code blocks and paragraphs are recognized;
strong, em, code and links are rewritten inline; any other element
contributes the Markdown of its children. Reads standard input when no file
is given.

Examples:
  gomdedit serialize page.html
  gomdedit render notes.md | gomdedit serialize`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSerialize,
	}

	return cmd
}

func runSerialize(cmd *cobra.Command, args []string) error {
	markup, name, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	root, err := surface.Parse(markup)
	if err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}

	md := serialize.Markdown(root)
	commandLogger(cmd).Debug("serialized", logging.FieldInput, name, logging.FieldBytes, len(md))

	if _, err := fmt.Fprintln(cmd.OutOrStdout(), md); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
