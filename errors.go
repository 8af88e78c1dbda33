package mdpdf

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown = errors.New("markdown content cannot be empty")
	ErrEmptyFragment = errors.New("rendered fragment cannot be empty")
	ErrNoPreview     = errors.New("no content to export: preview the document first")
	ErrExportBusy    = errors.New("export already in progress or not available")

	// Export failures, split by phase.
	ErrExportBuild = errors.New("failed to prepare document for export")
	ErrPrintInvoke = errors.New("failed to invoke print")
	ErrSpool       = errors.New("failed to submit print job")
	ErrDownload    = errors.New("failed to save download")

	// Browser failures.
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Configuration errors.
	ErrInvalidStrategy = errors.New("invalid export strategy")
	ErrInvalidTheme    = errors.New("invalid theme")
	ErrInvalidMargin   = errors.New("invalid margin")
	ErrInvalidScale    = errors.New("invalid device scale")
	ErrInvalidPaper    = errors.New("invalid paper size")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
