package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/gomdedit/internal/configloader"
	"github.com/yaklabco/gomdedit/internal/logging"
	"github.com/yaklabco/gomdedit/internal/ui/pretty"
	"github.com/yaklabco/gomdedit/pkg/block"
	"github.com/yaklabco/gomdedit/pkg/config"
	"github.com/yaklabco/gomdedit/pkg/fsutil"
)

// stdinName names standard input in output and logs.
const stdinName = "<stdin>"

// ErrNoInput is returned when a command needs a document but was given no
// file and standard input is a terminal.
var ErrNoInput = errors.New("no input: pass a file or pipe a document on stdin")

// commandContext returns the command's context, or a background context
// when the command was executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// commandLogger returns the logger the root command attached to the
// command's context.
func commandLogger(cmd *cobra.Command) *log.Logger {
	return logging.FromContext(commandContext(cmd))
}

// readInput returns the document named by args, or standard input when
// args is empty or "-". The final newline of the input is dropped.
func readInput(cmd *cobra.Command, args []string) (string, string, error) {
	if len(args) > 0 && args[0] != "-" {
		content, _, err := fsutil.ReadFile(commandContext(cmd), args[0])
		if err != nil {
			return "", "", fmt.Errorf("read input: %w", err)
		}
		return block.FileText(content), args[0], nil
	}

	in := cmd.InOrStdin()
	if isTerminal(in) {
		return "", "", ErrNoInput
	}

	content, err := io.ReadAll(in)
	if err != nil {
		return "", "", fmt.Errorf("read stdin: %w", err)
	}
	return block.FileText(content), stdinName, nil
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r any) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of w when it is a terminal, or 0 to let
// formatters pick their default.
func terminalWidth(w any) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// loadConfig resolves the configuration for cmd, with cliCfg holding the
// values set by flags.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, error) {
	logger := commandLogger(cmd)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}
	noConfig, err := cmd.Flags().GetBool("no-config")
	if err != nil {
		return nil, fmt.Errorf("get no-config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:          workDir,
		ExplicitPath:        configPath,
		IgnoreSystemConfig:  noConfig,
		IgnoreUserConfig:    noConfig,
		IgnoreProjectConfig: noConfig,
		CLIConfig:           cliCfg,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldConfigSource, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration resolved",
		"flavor", cfg.Flavor,
		"language_class", cfg.Render.LanguageClass,
		"detect_language", cfg.Render.DetectLanguage,
		logging.FieldJobs, cfg.Jobs,
	)

	return cfg, nil
}

// styles returns output styles for the command's color flag and stdout.
func styles(cmd *cobra.Command) (*pretty.Styles, bool) {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	enabled := pretty.IsColorEnabled(colorMode, cmd.OutOrStdout())
	return pretty.NewStyles(enabled), enabled
}

// addRenderFlags binds the renderer settings to cfg.
func addRenderFlags(cmd *cobra.Command, cfg *config.Config) {
	cmd.Flags().BoolVar(&cfg.Render.LanguageClass, "language-class", false,
		`tag code blocks with class="language-<tag>" from the fence info`)
	cmd.Flags().BoolVar(&cfg.Render.DetectLanguage, "detect-language", false,
		"guess the language of untagged code blocks (implies --language-class)")
}
