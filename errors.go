package labelsheet

import "errors"

// Sentinel errors for library operations.
var (
	// Input errors.
	ErrNoNames     = errors.New("no sample names found")
	ErrReadNames   = errors.New("failed to read sample names")
	ErrInvalidSkip = errors.New("invalid skip count")

	// Date errors.
	ErrInvalidDate = errors.New("invalid date")

	// Output errors.
	ErrWriteSheet  = errors.New("failed to write label sheet")
	ErrWriteSuffix = errors.New("failed to write suffixed names")
	ErrNoOutput    = errors.New("output path cannot be empty")

	// Typesetting errors.
	ErrTypesetterNotFound = errors.New("typesetter not found")
	ErrTypesetFailed      = errors.New("typesetting failed")
	ErrOpenViewer         = errors.New("failed to open PDF viewer")

	// Asset errors.
	ErrPreambleNotFound = errors.New("preamble not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
