package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFindProjectConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(t *testing.T, root string) (start, want string)
	}{
		{
			name: "first name wins in the same directory",
			setup: func(t *testing.T, root string) (string, string) {
				writeConfigFile(t, filepath.Join(root, "gomdedit.yaml"), "flavor: gfm\n")
				writeConfigFile(t, filepath.Join(root, ".gomdedit.yml"), "flavor: gfm\n")
				return root, filepath.Join(root, ".gomdedit.yml")
			},
		},
		{
			name: "nearest directory wins",
			setup: func(t *testing.T, root string) (string, string) {
				sub := filepath.Join(root, "docs")
				mkdir(t, sub)
				writeConfigFile(t, filepath.Join(root, ".gomdedit.yml"), "flavor: gfm\n")
				writeConfigFile(t, filepath.Join(sub, "gomdedit.yml"), "flavor: gfm\n")
				return sub, filepath.Join(sub, "gomdedit.yml")
			},
		},
		{
			name: "repository root ends the walk",
			setup: func(t *testing.T, root string) (string, string) {
				repo := filepath.Join(root, "repo")
				mkdir(t, filepath.Join(repo, ".git"))
				mkdir(t, filepath.Join(repo, "docs"))
				writeConfigFile(t, filepath.Join(root, ".gomdedit.yml"), "flavor: gfm\n")
				return filepath.Join(repo, "docs"), ""
			},
		},
		{
			name: "directory with a config name is skipped",
			setup: func(t *testing.T, root string) (string, string) {
				mkdir(t, filepath.Join(root, ".git"))
				mkdir(t, filepath.Join(root, ".gomdedit.yml"))
				writeConfigFile(t, filepath.Join(root, ".gomdedit.yaml"), "flavor: gfm\n")
				return root, filepath.Join(root, ".gomdedit.yaml")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			start, want := tt.setup(t, root)

			got, err := FindProjectConfig(context.Background(), start)
			if err != nil {
				t.Fatalf("FindProjectConfig() error = %v", err)
			}
			if got != want {
				t.Errorf("FindProjectConfig() = %q, want %q", got, want)
			}
		})
	}
}

func TestFindProjectConfig_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := FindProjectConfig(ctx, t.TempDir()); err == nil {
		t.Error("expected error for canceled context")
	}
}

func TestDiscoverPaths_UserConfig(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	dir := filepath.Join(configHome, "gomdedit")
	mkdir(t, dir)
	writeConfigFile(t, filepath.Join(dir, "config.yml"), "flavor: gfm\n")

	work := t.TempDir()
	mkdir(t, filepath.Join(work, ".git"))

	paths, err := DiscoverPaths(context.Background(), work)
	if err != nil {
		t.Fatalf("DiscoverPaths() error = %v", err)
	}
	if want := filepath.Join(dir, "config.yml"); paths.User != want {
		t.Errorf("User = %q, want %q", paths.User, want)
	}
	if paths.Project != "" {
		t.Errorf("Project = %q, want none", paths.Project)
	}
}

func mkdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
}
