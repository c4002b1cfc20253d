// Package runner converts markdown files to markup fragments in bulk.
package runner

import (
	"github.com/yaklabco/gomdedit/pkg/config"
	"github.com/yaklabco/gomdedit/pkg/render"
)

// OutputExt is the extension given to converted files.
const OutputExt = ".html"

// Options controls a multi-file conversion.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths and
	// to mirror the source tree under OutputDir.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions considered Markdown.
	// Defaults to config.DefaultExtensions().
	Extensions []string

	// IncludeGlobs restrict discovery to matching paths, relative to WorkingDir.
	// Empty means "include everything that matches Extensions".
	IncludeGlobs []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// OutputDir receives the converted files. Empty means next to each source.
	OutputDir string

	// DryRun renders without writing anything.
	DryRun bool

	// Backup keeps a sidecar copy of an output file before replacing it.
	Backup bool

	// Renderer produces the markup.
	Renderer render.Renderer
}

// OptionsFromConfig builds options for paths from a resolved configuration.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return Options{
		Paths:        paths,
		Extensions:   cfg.Extensions,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		OutputDir:    cfg.OutputDir,
		DryRun:       cfg.DryRun,
		Backup:       cfg.Backups.Enabled,
		Renderer:     RendererFor(cfg),
	}
}

// RendererFor returns the renderer described by cfg's render settings.
func RendererFor(cfg *config.Config) render.Renderer {
	if cfg == nil {
		return render.Renderer{}
	}
	return render.Renderer{
		LanguageClass:  cfg.Render.LanguageClass,
		DetectLanguage: cfg.Render.DetectLanguage,
	}
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions()
	}
	return o.Extensions
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
