package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdedit/pkg/runner"
)

// tree creates files (relative, slash separated) under a new temp dir.
func tree(t *testing.T, files ...string) string {
	t.Helper()

	dir := t.TempDir()
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("# "+f), 0o644))
	}
	return dir
}

// rels maps absolute paths back to slash paths relative to dir.
func rels(t *testing.T, dir string, paths []string) []string {
	t.Helper()

	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(dir, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	files := []string{
		"readme.md",
		"docs/guide.md",
		"docs/api.markdown",
		"docs/drafts/wip.md",
		"src/main.go",
		"notes.txt",
		"UPPER.MD",
		".hidden.md",
		".github/issue.md",
		"vendor/lib/readme.md",
	}

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "defaults",
			want: []string{
				"UPPER.MD", "docs/api.markdown", "docs/drafts/wip.md", "docs/guide.md",
				"readme.md", "vendor/lib/readme.md",
			},
		},
		{
			name: "exclude directory",
			opts: runner.Options{ExcludeGlobs: []string{"vendor/**"}},
			want: []string{"UPPER.MD", "docs/api.markdown", "docs/drafts/wip.md", "docs/guide.md", "readme.md"},
		},
		{
			name: "exclude nested directory anywhere",
			opts: runner.Options{ExcludeGlobs: []string{"**/drafts/**"}},
			want: []string{
				"UPPER.MD", "docs/api.markdown", "docs/guide.md", "readme.md", "vendor/lib/readme.md",
			},
		},
		{
			name: "exclude by base name",
			opts: runner.Options{ExcludeGlobs: []string{"readme.md"}},
			want: []string{"UPPER.MD", "docs/api.markdown", "docs/drafts/wip.md", "docs/guide.md"},
		},
		{
			name: "include restricts",
			opts: runner.Options{IncludeGlobs: []string{"docs/*"}},
			want: []string{"docs/api.markdown", "docs/guide.md"},
		},
		{
			name: "custom extensions",
			opts: runner.Options{Extensions: []string{".txt"}},
			want: []string{"notes.txt"},
		},
		{
			name: "explicit paths deduplicated",
			opts: runner.Options{Paths: []string{"docs", "docs/guide.md", "readme.md"}},
			want: []string{"docs/api.markdown", "docs/drafts/wip.md", "docs/guide.md", "readme.md"},
		},
	}

	dir := tree(t, files...)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := tt.opts
			opts.WorkingDir = dir

			got, err := runner.Discover(context.Background(), opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rels(t, dir, got))
		})
	}
}

func TestDiscover_Errors(t *testing.T) {
	t.Parallel()

	dir := tree(t, "a.md")
	ctx := context.Background()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: dir, Paths: []string{"missing"}})
	require.Error(t, err)

	_, err = runner.Discover(ctx, runner.Options{WorkingDir: dir, ExcludeGlobs: []string{"[oops"}})
	require.Error(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = runner.Discover(cancelled, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir := tree(t, "real/inner.md")
	outside := tree(t, "linked.md")

	if err := os.Symlink(outside, filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	ctx := context.Background()

	got, err := runner.Discover(ctx, runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"real/inner.md"}, rels(t, dir, got))

	got, err = runner.Discover(ctx, runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
