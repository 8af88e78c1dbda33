package main

import (
	"errors"
	"os"

	"github.com/alnah/go-mdpdf"
	"github.com/alnah/go-mdpdf/internal/config"
	"github.com/alnah/go-mdpdf/internal/store"
)

// Exit codes for the mdpdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Command completed
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, input or validation
	ExitIO      = 3 // Files, state store, spooler or editor
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, mdpdf.ErrBrowserConnect) ||
		errors.Is(err, mdpdf.ErrPageCreate) ||
		errors.Is(err, mdpdf.ErrPageLoad) ||
		errors.Is(err, mdpdf.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, store.ErrStoreOpen) ||
		errors.Is(err, store.ErrStoreRead) ||
		errors.Is(err, store.ErrStoreWrite) ||
		errors.Is(err, mdpdf.ErrSpool) ||
		errors.Is(err, mdpdf.ErrDownload) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrEditor) ||
		errors.Is(err, ErrNoEditor) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, store.ErrUnknownStore) ||
		errors.Is(err, mdpdf.ErrEmptyMarkdown) ||
		errors.Is(err, mdpdf.ErrEmptyFragment) ||
		errors.Is(err, mdpdf.ErrNoPreview) ||
		errors.Is(err, mdpdf.ErrInvalidStrategy) ||
		errors.Is(err, mdpdf.ErrInvalidTheme) ||
		errors.Is(err, mdpdf.ErrInvalidMargin) ||
		errors.Is(err, mdpdf.ErrInvalidScale) ||
		errors.Is(err, mdpdf.ErrInvalidPaper) ||
		errors.Is(err, mdpdf.ErrStyleNotFound) ||
		errors.Is(err, mdpdf.ErrTemplateNotFound) ||
		errors.Is(err, mdpdf.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}
