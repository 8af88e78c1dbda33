package mdpdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdpdf/internal/fileutil"
	"github.com/alnah/go-mdpdf/internal/pipeline"
	"github.com/alnah/go-mdpdf/internal/process"
)

// Surface is a laid-out document ready to print.
type Surface struct {
	Path  string // local HTML file
	Title string // job name shown by the print system
}

// Printer is the platform print flow. Only success or failure is observed.
type Printer interface {
	Print(ctx context.Context, s Surface) error
}

// Spooler accepts a printable PDF.
type Spooler interface {
	Spool(ctx context.Context, title string, pdf []byte) error
}

var (
	_ Printer = (*ChromePrinter)(nil)
	_ Spooler = (*CommandSpooler)(nil)
	_ Spooler = (*DirSpooler)(nil)
)

// ChromePrinter lays the surface out with Chrome's print pipeline and hands
// the result to a spooler.
type ChromePrinter struct {
	renderer PDFRenderer
	spooler  Spooler
}

// NewChromePrinter returns a printer using renderer and spooler.
func NewChromePrinter(renderer PDFRenderer, spooler Spooler) *ChromePrinter {
	return &ChromePrinter{renderer: renderer, spooler: spooler}
}

// Print renders s with PrintProfile and spools it.
func (p *ChromePrinter) Print(ctx context.Context, s Surface) error {
	data, err := p.renderer.RenderFile(ctx, s.Path, PrintProfile())
	if err != nil {
		return err
	}
	return p.spooler.Spool(ctx, s.Title, data)
}

// CommandSpooler pipes the PDF to a print command such as "lp" on stdin.
// The job title is passed with -t.
type CommandSpooler struct {
	Command string // program and leading arguments, split on whitespace
}

// Spool runs the command and waits for it to accept the job.
func (c *CommandSpooler) Spool(ctx context.Context, title string, pdf []byte) error {
	fields := strings.Fields(c.Command)
	if len(fields) == 0 {
		return fmt.Errorf("%w: no print command", ErrSpool)
	}

	args := append(fields[1:], "-t", title)
	cmd := exec.CommandContext(ctx, fields[0], args...) // #nosec G204 -- command comes from user configuration
	process.BindToContext(cmd)
	cmd.Stdin = bytes.NewReader(pdf)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		msg := strings.TrimSpace(stderr.String())
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && msg != "" {
			return fmt.Errorf("%w: %s: %s", ErrSpool, fields[0], msg)
		}
		return fmt.Errorf("%w: %s: %v", ErrSpool, fields[0], err)
	}
	return nil
}

// DirSpooler drops print jobs as PDF files into a directory, for systems
// without a print command.
type DirSpooler struct {
	Dir string
}

// Spool writes the job as <slug of title>.pdf, replacing an older job of
// the same name.
func (d *DirSpooler) Spool(ctx context.Context, title string, pdf []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d.Dir == "" {
		return fmt.Errorf("%w: no spool directory", ErrSpool)
	}

	path := filepath.Join(d.Dir, pipeline.Slugify(title)+".pdf")
	if err := fileutil.WriteFileAtomic(path, pdf, fileutil.PublicPermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrSpool, err)
	}
	return nil
}
