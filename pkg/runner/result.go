package runner

import (
	"errors"
	"fmt"

	"github.com/yaklabco/gomdedit/pkg/block"
)

// FileOutcome is the result of converting one file.
type FileOutcome struct {
	// Path is the source file.
	Path string

	// Output is the file the markup was (or, in a dry run, would be) written to.
	Output string

	// Blocks counts the source's block elements by type.
	Blocks map[block.Type]int

	// Written reports whether Output was created or changed.
	Written bool

	// Error is set if the file could not be converted.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesRendered is the number of files converted without error.
	FilesRendered int

	// FilesWritten is the number of output files created or changed.
	FilesWritten int

	// FilesUnchanged is the number of output files that already held the markup.
	FilesUnchanged int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// BlocksByType counts block elements across all rendered files.
	BlocksByType map[block.Type]int
}

// BlocksTotal returns the number of blocks across all rendered files.
func (s Stats) BlocksTotal() int {
	total := 0
	for _, n := range s.BlocksByType {
		total += n
	}
	return total
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// DryRun reports that nothing was written.
	DryRun bool
}

// HasFailures reports whether any file failed to convert.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// Err joins the per-file errors, or returns nil.
func (r *Result) Err() error {
	if r == nil {
		return nil
	}

	var errs []error
	for _, f := range r.Files {
		if f.Error != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.Path, f.Error))
		}
	}
	return errors.Join(errs...)
}

func newStats() Stats {
	return Stats{BlocksByType: make(map[block.Type]int)}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesRendered++
	switch {
	case outcome.Written:
		r.Stats.FilesWritten++
	case !r.DryRun:
		r.Stats.FilesUnchanged++
	}

	for typ, n := range outcome.Blocks {
		r.Stats.BlocksByType[typ] += n
	}
}
