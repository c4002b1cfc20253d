package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdedit/internal/logging"
	"github.com/yaklabco/gomdedit/pkg/block"
	"github.com/yaklabco/gomdedit/pkg/config"
	"github.com/yaklabco/gomdedit/pkg/fsutil"
	"github.com/yaklabco/gomdedit/pkg/render"
	"github.com/yaklabco/gomdedit/pkg/runner"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func read(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestRun_NextToSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write(t, filepath.Join(dir, "a.md"), "# A\n\nbody")
	write(t, filepath.Join(dir, "docs", "b.markdown"), "- one\n- two")

	result, err := runner.Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 2})
	require.NoError(t, err)
	require.NoError(t, result.Err())

	assert.Equal(t, "<h1>A</h1><br /><p>body</p>\n", read(t, filepath.Join(dir, "a.html")))
	assert.Equal(t, "<ul><li>one</li></ul><ul><li>two</li></ul>\n", read(t, filepath.Join(dir, "docs", "b.html")))

	require.Len(t, result.Files, 2)
	assert.Equal(t, filepath.Join(dir, "a.md"), result.Files[0].Path)
	assert.True(t, result.Files[0].Written)

	stats := result.Stats
	assert.Equal(t, 2, stats.FilesDiscovered)
	assert.Equal(t, 2, stats.FilesRendered)
	assert.Equal(t, 2, stats.FilesWritten)
	assert.Equal(t, 5, stats.BlocksTotal())
	assert.Equal(t, 2, stats.BlocksByType[block.TypeUnordered])
	assert.False(t, result.HasFailures())
}

func TestRun_Unchanged(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write(t, filepath.Join(dir, "a.md"), "text")

	opts := runner.Options{WorkingDir: dir}
	ctx := context.Background()

	_, err := runner.Run(ctx, opts)
	require.NoError(t, err)

	result, err := runner.Run(ctx, opts)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Stats.FilesWritten)
	assert.Equal(t, 1, result.Stats.FilesUnchanged)
}

func TestRun_OutputDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write(t, filepath.Join(dir, "guide", "intro.md"), "## Intro")

	result, err := runner.New(logging.Discard()).Run(context.Background(), runner.Options{
		WorkingDir: dir,
		OutputDir:  "site",
	})
	require.NoError(t, err)

	out := filepath.Join(dir, "site", "guide", "intro.html")
	assert.Equal(t, out, result.Files[0].Output)
	assert.Equal(t, "<h2>Intro</h2>\n", read(t, out))

	_, err = os.Stat(filepath.Join(dir, "guide", "intro.html"))
	assert.True(t, os.IsNotExist(err), "nothing written next to the source")
}

func TestRun_DryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write(t, filepath.Join(dir, "a.md"), "# A")

	result, err := runner.Run(context.Background(), runner.Options{WorkingDir: dir, DryRun: true})
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Equal(t, filepath.Join(dir, "a.html"), result.Files[0].Output)
	assert.False(t, result.Files[0].Written)
	assert.Equal(t, 1, result.Stats.FilesRendered)

	_, err = os.Stat(filepath.Join(dir, "a.html"))
	assert.True(t, os.IsNotExist(err))
}

func TestRun_Renderer(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write(t, filepath.Join(dir, "a.md"), "```go\nx := 1\n```")

	_, err := runner.Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Renderer:   render.Renderer{LanguageClass: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "<pre><code class=\"language-go\">x := 1</code></pre>\n", read(t, filepath.Join(dir, "a.html")))
}

func TestRun_Backup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write(t, filepath.Join(dir, "a.md"), "new")
	write(t, filepath.Join(dir, "a.html"), "<p>old</p>\n")

	_, err := runner.Run(context.Background(), runner.Options{WorkingDir: dir, Backup: true})
	require.NoError(t, err)

	assert.Equal(t, "<p>new</p>\n", read(t, filepath.Join(dir, "a.html")))
	assert.Equal(t, "<p>old</p>\n", read(t, fsutil.BackupPath(filepath.Join(dir, "a.html"))))
}

func TestRun_PerFileError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write(t, filepath.Join(dir, "a.md"), "ok")
	write(t, filepath.Join(dir, "b.md"), "blocked")
	// A directory where the output file should go makes the write fail.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "b.html"), 0o755))

	result, err := runner.Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)

	assert.True(t, result.HasFailures())
	assert.Equal(t, 1, result.Stats.FilesErrored)
	assert.Equal(t, 1, result.Stats.FilesRendered)
	require.Error(t, result.Err())
	assert.Contains(t, result.Err().Error(), "b.md")
}

func TestRun_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := runner.Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.NoError(t, result.Err())
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write(t, filepath.Join(dir, "a.md"), "x")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Ignore = []string{"vendor/**"}
	cfg.Render.DetectLanguage = true
	cfg.Backups.Enabled = true
	cfg.OutputDir = "out"
	cfg.Jobs = 3

	opts := runner.OptionsFromConfig(cfg, []string{"docs"})
	assert.Equal(t, []string{"docs"}, opts.Paths)
	assert.Equal(t, []string{"vendor/**"}, opts.ExcludeGlobs)
	assert.Equal(t, []string{".md", ".markdown"}, opts.Extensions)
	assert.True(t, opts.Renderer.DetectLanguage)
	assert.True(t, opts.Backup)
	assert.Equal(t, "out", opts.OutputDir)
	assert.Equal(t, 3, opts.Jobs)

	assert.Equal(t, render.Renderer{}, runner.OptionsFromConfig(nil, nil).Renderer)
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	work := filepath.FromSlash("/work")

	tests := []struct {
		name      string
		source    string
		outputDir string
		want      string
	}{
		{"next to source", "/work/docs/a.md", "", "/work/docs/a.html"},
		{"double extension", "/work/a.test.markdown", "", "/work/a.test.html"},
		{"relative output dir", "/work/docs/a.md", "site", "/work/site/docs/a.html"},
		{"absolute output dir", "/work/a.md", "/out", "/out/a.html"},
		{"source outside work dir", "/elsewhere/a.md", "site", "/work/site/a.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := runner.OutputPath(filepath.FromSlash(tt.source), work, filepath.FromSlash(tt.outputDir))
			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}
}
