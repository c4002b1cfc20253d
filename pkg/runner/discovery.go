package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/samber/lo"
)

// matcher holds the compiled include and exclude globs of a run.
type matcher struct {
	workDir    string
	extensions []string
	include    []glob.Glob
	exclude    []glob.Glob
}

// newMatcher compiles the globs in opts. Patterns use '/' as the separator,
// so "*" stays within one path segment and "**" crosses segments.
func newMatcher(workDir string, opts Options) (*matcher, error) {
	include, err := compileGlobs(opts.IncludeGlobs)
	if err != nil {
		return nil, err
	}
	exclude, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	return &matcher{
		workDir:    workDir,
		extensions: lo.Map(opts.effectiveExtensions(), func(e string, _ int) string { return strings.ToLower(e) }),
		include:    include,
		exclude:    exclude,
	}, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// rel returns p relative to the working directory in slash form.
func (m *matcher) rel(p string) string {
	relPath, err := filepath.Rel(m.workDir, p)
	if err != nil {
		relPath = p
	}
	return filepath.ToSlash(relPath)
}

// excludedDir reports whether a directory should be pruned.
func (m *matcher) excludedDir(p string) bool {
	return matchAny(m.exclude, m.rel(p), true)
}

// matchesFile checks if a file path matches the inclusion criteria.
func (m *matcher) matchesFile(p string) bool {
	ext := strings.ToLower(filepath.Ext(p))
	if !lo.Contains(m.extensions, ext) {
		return false
	}

	relPath := m.rel(p)
	if matchAny(m.exclude, relPath, false) {
		return false
	}
	return len(m.include) == 0 || matchAny(m.include, relPath, false)
}

// matchAny matches relPath, its rooted form, and its base name against
// globs. Directories are also tried with a trailing slash so that "dir/**"
// prunes dir itself.
func matchAny(globs []glob.Glob, relPath string, dir bool) bool {
	if len(globs) == 0 {
		return false
	}

	candidates := []string{relPath, "/" + relPath, path.Base(relPath)}
	if dir {
		candidates = append(candidates, relPath+"/", "/"+relPath+"/")
	}

	return lo.SomeBy(globs, func(g glob.Glob) bool {
		return lo.SomeBy(candidates, g.Match)
	})
}

// Discover finds Markdown files matching opts under the given working directory.
// It returns a deterministically sorted list of absolute file paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	m, err := newMatcher(workDir, opts)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			if m.matchesFile(absPath) {
				files = append(files, absPath)
			}
			continue
		}

		discovered, err := walkDirectory(ctx, absPath, m, opts.FollowSymlinks)
		if err != nil {
			return nil, err
		}
		files = append(files, discovered...)
	}

	files = lo.Uniq(files)
	sort.Strings(files)

	return files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// walkDirectory recursively walks a directory and returns matching Markdown files.
// Hidden files and directories below root are skipped.
func walkDirectory(ctx context.Context, root string, m *matcher, followSymlinks bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		hidden := p != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || (p != root && m.excludedDir(p)) {
				return filepath.SkipDir
			}
			return nil
		}

		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(p)
			if evalErr != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // Inaccessible symlink targets are skipped.
			}
			if info.IsDir() {
				if !followSymlinks {
					return nil
				}
				// Walk the target; WalkDir does not follow a symlinked root.
				subFiles, err := walkDirectory(ctx, realPath, m, followSymlinks)
				if err != nil {
					return err
				}
				files = append(files, subFiles...)
				return nil
			}
		}

		if m.matchesFile(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}
