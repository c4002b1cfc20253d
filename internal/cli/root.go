// Package cli provides the Cobra command structure for gomdedit.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdedit/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root gomdedit command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string
	var noConfig bool

	rootCmd := &cobra.Command{
		Use:   "gomdedit",
		Short: "A line-oriented Markdown editor core and converter",
		Long: `gomdedit turns Markdown into an editable markup surface and back again.

Each line of a document becomes one block element (headings, list items,
quotes, rules, breaks and paragraphs), fenced code becomes a single code
block, and inline styles are rewritten to markup. The markup can be edited
as a tree and serialized back to Markdown, with the caret kept in place
across re-renders. Commands expose each stage of that pipeline, convert
files in bulk, and check that documents survive the round trip.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := "info"
			if debug {
				level = "debug"
				logging.SetLevel(level)
			}

			ctx := logging.WithLogger(commandContext(cmd), logging.NewWithWriter(cmd.ErrOrStderr(), level))
			if debug {
				ctx = logging.WithFields(ctx, logging.FieldCommand, cmd.Name())
			}
			cmd.SetContext(ctx)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&noConfig, "no-config", false,
		"ignore system, user and project config files")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newBlocksCommand())
	rootCmd.AddCommand(newSerializeCommand())
	rootCmd.AddCommand(newRoundTripCommand())
	rootCmd.AddCommand(newNormalizeCommand())
	rootCmd.AddCommand(newEditCommand())
	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
