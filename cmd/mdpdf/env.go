package main

import (
	"context"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/alnah/go-mdpdf"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	Environ func() []string

	// NewPDFRenderer starts the browser-backed renderer. Called at most
	// once per run, on the first print or PDF.
	NewPDFRenderer func(timeout time.Duration) mdpdf.PDFRenderer

	// EditFile opens path in the user's editor and waits for it to exit.
	EditFile func(ctx context.Context, path string) error

	// TermWidth returns the width of the terminal on stdout, or 0.
	TermWidth func() int
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
		NewPDFRenderer: func(timeout time.Duration) mdpdf.PDFRenderer {
			return mdpdf.NewChromeRenderer(timeout)
		},
		EditFile:  openInEditor,
		TermWidth: stdoutWidth,
	}
}

// stdoutWidth reports the terminal width, or 0 when stdout is redirected.
func stdoutWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return w
}
