package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdedit/internal/logging"
	"github.com/yaklabco/gomdedit/internal/ui/pretty"
	"github.com/yaklabco/gomdedit/pkg/config"
	"github.com/yaklabco/gomdedit/pkg/runner"
)

// ErrConvertFailed is returned when at least one file could not be converted.
var ErrConvertFailed = errors.New("convert failed")

type convertFlags struct {
	format string
}

// convertRecord is the structured form of one file outcome.
type convertRecord struct {
	Path   string         `json:"path" yaml:"path"`
	Output string         `json:"output,omitempty" yaml:"output,omitempty"`
	Blocks map[string]int `json:"blocks,omitempty" yaml:"blocks,omitempty"`
	Status string         `json:"status" yaml:"status"`
	Error  string         `json:"error,omitempty" yaml:"error,omitempty"`
}

// convertReport is the structured form of a run.
type convertReport struct {
	DryRun bool            `json:"dry_run" yaml:"dry_run"`
	Files  []convertRecord `json:"files" yaml:"files"`
	Stats  convertStats    `json:"stats" yaml:"stats"`
}

type convertStats struct {
	Discovered int `json:"discovered" yaml:"discovered"`
	Rendered   int `json:"rendered" yaml:"rendered"`
	Written    int `json:"written" yaml:"written"`
	Unchanged  int `json:"unchanged" yaml:"unchanged"`
	Failed     int `json:"failed" yaml:"failed"`
	Blocks     int `json:"blocks" yaml:"blocks"`
}

func newConvertCommand() *cobra.Command {
	cliCfg := &config.Config{}
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert [paths...]",
		Short: "Render Markdown files to markup fragments",
		Long: `Render every Markdown file under the given paths to an .html fragment.

By default converts all .md and .markdown files in the current directory
and subdirectories, writing each fragment next to its source. Hidden files
and paths matching ignore globs are skipped. Files whose fragment is
already current are left untouched.

Examples:
  gomdedit convert                       # Convert current directory
  gomdedit convert docs/ -o site/        # Mirror docs/ into site/
  gomdedit convert --dry-run --format table
  gomdedit convert --ignore 'drafts/**' --jobs 4`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("format") {
				cliCfg.Format = config.OutputFormat(flags.format)
			}
			return runConvert(cmd, args, cliCfg)
		},
	}

	addRenderFlags(cmd, cliCfg)
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json, yaml")
	cmd.Flags().StringVarP(&cliCfg.OutputDir, "output-dir", "o", "", "write fragments under this directory")
	cmd.Flags().BoolVar(&cliCfg.DryRun, "dry-run", false, "report what would be written without writing")
	cmd.Flags().IntVarP(&cliCfg.Jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&cliCfg.Ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&cliCfg.Extensions, "ext", nil, "file extensions to convert (default .md,.markdown)")
	cmd.Flags().BoolVar(&cliCfg.Backups.Enabled, "backup", false, "keep a backup of fragments before overwriting them")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string, cliCfg *config.Config) error {
	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	opts := runner.OptionsFromConfig(cfg, args)
	opts.WorkingDir = workDir

	commandLogger(cmd).Debug("starting convert run",
		logging.FieldPaths, opts.Paths,
		logging.FieldOutputDir, opts.OutputDir,
		logging.FieldJobs, opts.Jobs,
	)

	result, err := runner.New(commandLogger(cmd)).Run(commandContext(cmd), opts)
	if err != nil {
		return errors.Join(errors.New("convert run failed"), err)
	}

	if err := writeConvertResult(cmd, result, cfg.Format); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if result.HasFailures() {
		return errors.Join(ErrConvertFailed, result.Err())
	}
	return nil
}

func writeConvertResult(cmd *cobra.Command, result *runner.Result, format config.OutputFormat) error {
	out := cmd.OutOrStdout()

	switch format {
	case config.FormatJSON:
		return encodeJSON(out, newConvertReport(result))
	case config.FormatYAML:
		return encodeYAML(out, newConvertReport(result))
	case config.FormatTable:
		st, colorEnabled := styles(cmd)
		table := pretty.NewTableFormatter(st, colorEnabled, terminalWidth(out))
		if _, err := io.WriteString(out, table.FormatRunTable(result)); err != nil {
			return err
		}
		_, err := io.WriteString(out, st.FormatSummary(result.Stats, result.DryRun))
		return err
	default:
		st, _ := styles(cmd)
		for _, row := range pretty.RunRows(result) {
			if row.Status == pretty.StatusUnchanged {
				continue
			}
			line := fmt.Sprintf("%s -> %s", st.FilePath.Render(row.File), row.Output)
			switch row.Status {
			case pretty.StatusError:
				line = fmt.Sprintf("%s: %s", st.FilePath.Render(row.File), st.Error.Render(row.Output))
			case pretty.StatusDryRun:
				line += st.Dim.Render(" (dry run)")
			}
			if _, err := fmt.Fprintln(out, line); err != nil {
				return err
			}
		}
		_, err := io.WriteString(out, st.FormatSummaryOneLine(result.Stats, result.DryRun))
		return err
	}
}

func newConvertReport(result *runner.Result) convertReport {
	report := convertReport{
		DryRun: result.DryRun,
		Files:  make([]convertRecord, 0, len(result.Files)),
		Stats: convertStats{
			Discovered: result.Stats.FilesDiscovered,
			Rendered:   result.Stats.FilesRendered,
			Written:    result.Stats.FilesWritten,
			Unchanged:  result.Stats.FilesUnchanged,
			Failed:     result.Stats.FilesErrored,
			Blocks:     result.Stats.BlocksTotal(),
		},
	}

	rows := pretty.RunRows(result)
	for i, file := range result.Files {
		record := convertRecord{
			Path:   file.Path,
			Output: file.Output,
			Status: rows[i].Status,
		}
		if len(file.Blocks) > 0 {
			record.Blocks = make(map[string]int, len(file.Blocks))
			for typ, n := range file.Blocks {
				record.Blocks[string(typ)] = n
			}
		}
		if file.Error != nil {
			record.Error = file.Error.Error()
		}
		report.Files = append(report.Files, record)
	}

	return report
}
