package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdedit/internal/configloader"
	"github.com/yaklabco/gomdedit/internal/logging"
	"github.com/yaklabco/gomdedit/pkg/config"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new gomdedit configuration file",
		Long: `Create a new .gomdedit.yml configuration file in the current directory
with sensible defaults. The file can be customized to change how code
blocks are tagged, what the Tab key inserts, which files convert picks up,
and whether backups are kept.

Examples:
  gomdedit init                      Create minimal .gomdedit.yml
  gomdedit init --full               Create full config with every setting
  gomdedit init --format json        Create .gomdedit.json instead
  gomdedit init --output custom.yml  Write to a custom file path`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with every setting")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .gomdedit.yml or .gomdedit.json)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), "info")

	if flags.format != "yaml" && flags.format != "json" {
		return fmt.Errorf("invalid format %q: must be yaml or json", flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		if flags.format == "json" {
			outputPath = ".gomdedit.json"
		} else {
			outputPath = configloader.ProjectConfigFiles[0]
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := configloader.WriteConfig(commandContext(cmd), absPath, content, flags.force); err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)

	if flags.format == "json" {
		logger.Warn("json configuration is not discovered automatically; pass it with --config")
	}
	logger.Info("customize your configuration by editing the file")

	return nil
}
