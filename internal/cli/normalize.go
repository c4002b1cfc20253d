package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdedit/internal/logging"
	"github.com/yaklabco/gomdedit/pkg/config"
	"github.com/yaklabco/gomdedit/pkg/fsutil"
	"github.com/yaklabco/gomdedit/pkg/normalize"
)

type normalizeFlags struct {
	flavor string
	write  bool
}

func newNormalizeCommand() *cobra.Command {
	cliCfg := &config.Config{}
	flags := &normalizeFlags{}

	cmd := &cobra.Command{
		Use:   "normalize [file]",
		Short: "Rewrite CommonMark into the editor's one-block-per-line form",
		Long: `Parse a Markdown document with goldmark and rewrite it so every block the
editor understands sits on its own line: ATX headings, one line per list
item, quotes as "> " lines, fenced code, "---" rules and "*"/"**" emphasis.
Nested lists are flattened and setext headings become ATX headings.

Examples:
  gomdedit normalize README.md
  gomdedit normalize --flavor gfm --write CHANGELOG.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("flavor") {
				cliCfg.Flavor = config.Flavor(flags.flavor)
			}
			return runNormalize(cmd, args, cliCfg, flags)
		},
	}

	cmd.Flags().StringVar(&flags.flavor, "flavor", "commonmark", "Markdown flavor: commonmark, gfm")
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "write the result back to the file")
	cmd.Flags().BoolVar(&cliCfg.Backups.Enabled, "backup", false, "keep a backup of the original when writing")

	return cmd
}

func runNormalize(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *normalizeFlags) error {
	if flags.write && (len(args) == 0 || args[0] == "-") {
		return errors.New("--write needs a file argument")
	}

	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	text, name, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	out, err := normalize.New(string(cfg.Flavor)).Normalize(ctx, []byte(text))
	if err != nil {
		return fmt.Errorf("normalize %s: %w", name, err)
	}

	if !flags.write {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), out); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}

	if cfg.Backups.Enabled {
		if _, err := fsutil.CreateBackup(ctx, name); err != nil {
			return fmt.Errorf("backup %s: %w", name, err)
		}
	}

	var mode os.FileMode
	if stat, err := os.Stat(name); err == nil {
		mode = stat.Mode().Perm()
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, name, []byte(out+"\n"), mode)
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}

	commandLogger(cmd).Info("normalized", logging.FieldPath, name, "changed", written)
	return nil
}
