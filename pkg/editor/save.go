package editor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/yaklabco/gomdedit/internal/logging"
	"github.com/yaklabco/gomdedit/pkg/fsutil"
)

// Saved documents.
const (
	DefaultSaveName = "document.md"
	MediaType       = "text/markdown"
)

// ErrModifiedOnDisk is returned by SaveFile when the file opened with Open
// changed on disk after it was read.
var ErrModifiedOnDisk = errors.New("file modified on disk since it was opened")

// Blob returns the markdown as bytes together with its media type.
func (s *Session) Blob() ([]byte, string) {
	return []byte(s.markdown), MediaType
}

// Open reads path and makes its content the source of truth.
func (s *Session) Open(ctx context.Context, path string) error {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return fmt.Errorf("open document: %w", err)
	}

	s.opened = info
	s.SetMarkdown(string(content))

	s.logger.Debug("document opened", logging.FieldPath, path, logging.FieldBytes, len(content))
	return nil
}

// Save writes the markdown atomically to the save name inside dir and
// returns the written path.
func (s *Session) Save(ctx context.Context, dir string) (string, error) {
	path := filepath.Join(dir, s.saveName)
	if err := s.write(ctx, path); err != nil {
		return "", err
	}
	return path, nil
}

// SaveFile writes the markdown back to the file given to Open. It refuses
// to overwrite the file if it changed on disk in the meantime.
func (s *Session) SaveFile(ctx context.Context) (string, error) {
	if s.opened == nil {
		return "", fmt.Errorf("save document: %w", fsutil.ErrNilFileInfo)
	}

	modified, err := fsutil.CheckModified(ctx, s.opened)
	if err != nil {
		return "", fmt.Errorf("save document: %w", err)
	}
	if modified {
		return "", fmt.Errorf("%w: %s", ErrModifiedOnDisk, s.opened.Path)
	}

	if err := s.write(ctx, s.opened.Path); err != nil {
		return "", err
	}

	_, info, err := fsutil.ReadFile(ctx, s.opened.Path)
	if err != nil {
		return "", fmt.Errorf("save document: %w", err)
	}
	s.opened = info
	return info.Path, nil
}

func (s *Session) write(ctx context.Context, path string) error {
	mode := fsutil.DefaultFileMode
	if s.opened != nil && s.opened.Path == path {
		mode = s.opened.Mode.Perm()
	}

	if s.backup {
		if _, err := fsutil.CreateBackup(ctx, path); err != nil {
			return fmt.Errorf("save document: %w", err)
		}
	}

	if err := fsutil.WriteAtomic(ctx, path, []byte(s.markdown), mode); err != nil {
		return fmt.Errorf("save document: %w", err)
	}

	s.logger.Debug("document saved", logging.FieldPath, path, logging.FieldBytes, len(s.markdown))
	return nil
}
