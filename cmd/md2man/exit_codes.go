package main

import (
	"errors"
	"os"

	md2man "github.com/alnah/go-md2man"
	"github.com/alnah/go-md2man/internal/config"
)

// Exit codes for the md2man CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All pages rendered
	ExitGeneral = 1 // General/unexpected error, including failed pages
	ExitUsage   = 2 // Invalid flags, config, or asset selection
	ExitIO      = 3 // Missing input, unreadable source, unwritable output
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadSource) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoPages) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, md2man.ErrHighlightStyle) ||
		errors.Is(err, md2man.ErrStyleNotFound) ||
		errors.Is(err, md2man.ErrTemplateNotFound) ||
		errors.Is(err, md2man.ErrInvalidAssetPath) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrTooManyArgs) ||
		errors.Is(err, ErrUsage) {
		return ExitUsage
	}

	return ExitGeneral
}
