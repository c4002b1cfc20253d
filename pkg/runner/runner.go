package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/gomdedit/internal/logging"
	"github.com/yaklabco/gomdedit/pkg/block"
	"github.com/yaklabco/gomdedit/pkg/fsutil"
)

// outputDirMode is the mode for directories created under OutputDir.
const outputDirMode = 0o755

// Runner converts markdown files concurrently.
type Runner struct {
	logger *log.Logger
}

// New creates a Runner. A nil logger discards output.
func New(logger *log.Logger) *Runner {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Runner{logger: logger}
}

// Run converts the files selected by opts with a discarding logger.
func Run(ctx context.Context, opts Options) (*Result, error) {
	return New(nil).Run(ctx, opts)
}

// Run discovers files under opts.Paths and converts them concurrently.
// Outcomes are in path order regardless of completion order. A per-file
// failure is recorded in its outcome and does not stop the run.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	result := &Result{
		Files:  make([]FileOutcome, 0, len(files)),
		Stats:  newStats(),
		DryRun: opts.DryRun,
	}
	result.Stats.FilesDiscovered = len(files)

	r.logger.Debug("files discovered", logging.FieldFilesFound, len(files))

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workDir, opts, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	r.logger.Debug("conversion finished",
		logging.FieldJobs, jobs,
		logging.FieldFilesRendered, result.Stats.FilesRendered,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
	)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	return result, nil
}

// worker converts files from workCh and sends outcomes to outCh.
func (r *Runner) worker(
	ctx context.Context,
	workDir string,
	opts Options,
	workCh <-chan string,
	outCh chan<- FileOutcome,
) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := r.convert(ctx, workDir, opts, path)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// convert renders one file and writes the markup to its output path.
func (r *Runner) convert(ctx context.Context, workDir string, opts Options, path string) FileOutcome {
	outcome := FileOutcome{Path: path}

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	doc := block.ClassifyFile(content)
	outcome.Blocks = doc.CountByType()

	outcome.Output, err = OutputPath(path, workDir, opts.OutputDir)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	if opts.DryRun {
		return outcome
	}

	if err := os.MkdirAll(filepath.Dir(outcome.Output), outputDirMode); err != nil {
		outcome.Error = fmt.Errorf("create output directory: %w", err)
		return outcome
	}

	if opts.Backup {
		if _, err := fsutil.CreateBackup(ctx, outcome.Output); err != nil {
			outcome.Error = err
			return outcome
		}
	}

	markup := opts.Renderer.Document(doc) + "\n"
	outcome.Written, err = fsutil.WriteAtomicIfChanged(ctx, outcome.Output, []byte(markup), 0)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	r.logger.Debug("file converted",
		logging.FieldPath, path,
		logging.FieldOutput, outcome.Output,
		logging.FieldChanged, outcome.Written,
	)
	return outcome
}

// OutputPath returns where the markup for source goes. Without an output
// directory it sits next to source; otherwise source's path relative to
// workDir is mirrored under outputDir, which is itself relative to workDir
// unless absolute. Sources outside workDir land at the top of outputDir.
func OutputPath(source, workDir, outputDir string) (string, error) {
	name := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source)) + OutputExt

	if outputDir == "" {
		return filepath.Join(filepath.Dir(source), name), nil
	}

	if !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(workDir, outputDir)
	}

	rel, err := filepath.Rel(workDir, filepath.Dir(source))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.Join(outputDir, name), nil
	}
	return filepath.Join(outputDir, rel, name), nil
}
