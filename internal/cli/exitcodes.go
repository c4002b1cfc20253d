package cli

import (
	"errors"

	"github.com/yaklabco/gomdedit/internal/configloader"
	"github.com/yaklabco/gomdedit/pkg/editor"
	"github.com/yaklabco/gomdedit/pkg/fsutil"
)

// Exit codes for gomdedit.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates a failed command, including a round trip that
	// changed a document or a file that could not be converted.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrRoundTripMismatch), errors.Is(err, ErrConvertFailed):
		return ExitFailure
	case errors.Is(err, ErrNoInput):
		return ExitInvalidUsage
	case errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, editor.ErrModifiedOnDisk):
		return ExitIOError
	default:
		return ExitFailure
	}
}

// IsReported reports whether err has already been shown to the user by the
// command's own output, so main should not log it again.
func IsReported(err error) bool {
	return errors.Is(err, ErrRoundTripMismatch)
}
