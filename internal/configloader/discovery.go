package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/samber/lo"
)

// ConfigPaths holds the configuration files found for one run, lowest
// precedence first. An empty field means no file was found or given.
type ConfigPaths struct {
	System   string
	User     string
	Project  string
	Explicit string
}

// ProjectConfigFiles are the names looked for in a document tree. The first
// one is what init writes.
//
//nolint:gochecknoglobals // Read-only lookup table.
var ProjectConfigFiles = []string{
	".gomdedit.yml",
	".gomdedit.yaml",
	"gomdedit.yml",
	"gomdedit.yaml",
}

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	sharedConfigFiles = []string{"config.yaml", "config.yml"}
	repoMarkers       = []string{".git", ".hg", ".svn"}
)

// DiscoverPaths looks for the system file (/etc/gomdedit/config.yaml, or
// %ProgramData%\gomdedit on Windows), the user file under
// $XDG_CONFIG_HOME/gomdedit (~/.config/gomdedit by default), and the nearest
// project file at or above workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover config: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  firstFile(systemConfigDir(), sharedConfigFiles),
		User:    firstFile(userConfigDir(), sharedConfigFiles),
		Project: project,
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return "/etc/gomdedit"
	}
	programData := os.Getenv("ProgramData")
	if programData == "" {
		programData = `C:\ProgramData`
	}
	return filepath.Join(programData, "gomdedit")
}

// userConfigDir returns "" when no home directory can be found.
func userConfigDir() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "gomdedit")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gomdedit")
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	path, _ := lo.Find(
		lo.Map(names, func(name string, _ int) string { return filepath.Join(dir, name) }),
		isRegularFile,
	)
	return path
}

// FindProjectConfig returns the project file nearest to startDir, walking
// up through parent directories. A repository root or the home directory
// ends the walk after it has been checked. It returns "" when nothing is
// found.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", startDir, err)
	}

	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("find project config: %w", err)
		}

		if path := firstFile(dir, ProjectConfigFiles); path != "" {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir || dir == home || isRepoRoot(dir) {
			return "", nil
		}
		dir = parent
	}
}

func isRepoRoot(dir string) bool {
	return lo.SomeBy(repoMarkers, func(marker string) bool {
		info, err := os.Stat(filepath.Join(dir, marker))
		return err == nil && info.IsDir()
	})
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
