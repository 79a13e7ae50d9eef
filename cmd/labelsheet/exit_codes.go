package main

import (
	"errors"
	"os"

	"github.com/alnah/go-labelsheet"
	"github.com/alnah/go-labelsheet/internal/config"
)

// Exit codes for the labelsheet CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess    = 0 // Sheet written
	ExitGeneral    = 1 // General/unexpected error
	ExitUsage      = 2 // Invalid flags, config, or input values
	ExitIO         = 3 // File not found, permission denied
	ExitTypesetter = 4 // LaTeX engine missing or failed
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil || errors.Is(err, errAborted) {
		return ExitSuccess
	}

	// Typesetter errors (exit 4)
	if errors.Is(err, labelsheet.ErrTypesetterNotFound) ||
		errors.Is(err, labelsheet.ErrTypesetFailed) {
		return ExitTypesetter
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, labelsheet.ErrReadNames) ||
		errors.Is(err, labelsheet.ErrWriteSheet) ||
		errors.Is(err, labelsheet.ErrWriteSuffix) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrInputNotFound) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, labelsheet.ErrNoNames) ||
		errors.Is(err, labelsheet.ErrInvalidSkip) ||
		errors.Is(err, labelsheet.ErrInvalidDate) ||
		errors.Is(err, labelsheet.ErrPreambleNotFound) ||
		errors.Is(err, labelsheet.ErrInvalidAssetPath) ||
		errors.Is(err, ErrInvalidFlag) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrPromptClosed) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
