package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdedit/internal/logging"
	"github.com/yaklabco/gomdedit/pkg/config"
	"github.com/yaklabco/gomdedit/pkg/normalize"
	"github.com/yaklabco/gomdedit/pkg/roundtrip"
	"github.com/yaklabco/gomdedit/pkg/runner"
)

// ErrRoundTripMismatch is returned when a document does not survive the
// round trip unchanged.
var ErrRoundTripMismatch = errors.New("round trip mismatch")

type roundTripFlags struct {
	normalize bool
	flavor    string
	quiet     bool
}

func newRoundTripCommand() *cobra.Command {
	cliCfg := &config.Config{}
	flags := &roundTripFlags{}

	cmd := &cobra.Command{
		Use:   "roundtrip [files...]",
		Short: "Check that documents survive render and serialize unchanged",
		Long: `Run each document through classify, render, surface parse and serialize,
and compare the result with the source. Mismatches are shown as a unified
diff. The command fails if any document changes.

Documents written in the editor's one-block-per-line form round-trip
exactly. Use --normalize to first rewrite general CommonMark into that form.

Examples:
  gomdedit roundtrip README.md docs/guide.md
  gomdedit roundtrip --normalize --flavor gfm CHANGELOG.md`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("flavor") {
				cliCfg.Flavor = config.Flavor(flags.flavor)
			}
			return runRoundTrip(cmd, args, cliCfg, flags)
		},
	}

	addRenderFlags(cmd, cliCfg)
	cmd.Flags().BoolVar(&flags.normalize, "normalize", false, "normalize the source before checking")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "commonmark", "Markdown flavor for --normalize: commonmark, gfm")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "only report documents that change")

	return cmd
}

func runRoundTrip(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *roundTripFlags) error {
	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	inputs := args
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}

	ctx := commandContext(cmd)
	logger := commandLogger(cmd)
	checker := roundtrip.New(runner.RendererFor(cfg))
	normalizer := normalize.New(string(cfg.Flavor))
	st, _ := styles(cmd)
	out := cmd.OutOrStdout()

	var mismatches []string
	for _, input := range inputs {
		text, name, err := readInput(cmd, []string{input})
		if err != nil {
			return err
		}

		if flags.normalize {
			text, err = normalizer.Normalize(ctx, []byte(text))
			if err != nil {
				return fmt.Errorf("normalize %s: %w", name, err)
			}
		}

		report := checker.WithPath(name).Check(text)
		logger.Debug("round trip", logging.FieldPath, name,
			logging.FieldBlocks, report.Blocks, logging.FieldExact, report.Exact)

		if !report.Exact {
			mismatches = append(mismatches, name)
		}
		if flags.quiet && report.Exact {
			continue
		}
		if _, err := io.WriteString(out, st.FormatRoundTrip(name, report)); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}

	if len(mismatches) > 0 {
		return fmt.Errorf("%w: %d of %d documents changed", ErrRoundTripMismatch, len(mismatches), len(inputs))
	}
	return nil
}
