package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdedit/internal/logging"
	"github.com/yaklabco/gomdedit/pkg/block"
	"github.com/yaklabco/gomdedit/pkg/config"
	"github.com/yaklabco/gomdedit/pkg/runner"
)

func newRenderCommand() *cobra.Command {
	cliCfg := &config.Config{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render Markdown to editor markup",
		Long: `Render a Markdown document to the markup the editor displays.

Every line becomes one element: headings, single-item lists, quotes, rules,
breaks for blank lines, and paragraphs. Fenced code becomes one pre/code
block. Reads standard input when no file is given.

Examples:
  gomdedit render README.md
  echo '# Title' | gomdedit render
  gomdedit render --language-class notes.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, cliCfg)
		},
	}

	addRenderFlags(cmd, cliCfg)

	return cmd
}

func runRender(cmd *cobra.Command, args []string, cliCfg *config.Config) error {
	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	text, name, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	doc := block.Classify(text)
	commandLogger(cmd).Debug("rendering", logging.FieldInput, name, logging.FieldBlocks, len(doc))

	markup := runner.RendererFor(cfg).Document(doc)
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), markup); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
