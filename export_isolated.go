package mdpdf

import (
	"context"
	"fmt"
	"time"

	"github.com/alnah/go-mdpdf/internal/assets"
	"github.com/alnah/go-mdpdf/internal/fileutil"
	"github.com/alnah/go-mdpdf/internal/pipeline"
)

// isolatedPrint prints a standalone document carrying only the print
// stylesheet, so the editor's styling never reaches the page.
type isolatedPrint struct {
	assets    AssetLoader
	printer   Printer
	settle    time.Duration
	resources pipeline.ResourceOptions
}

func (e *isolatedPrint) Strategy() Strategy { return StrategyIsolatedPrint }

func (e *isolatedPrint) Labels() Labels {
	return Labels{Ready: "Print", Busy: "Preparing..."}
}

func (e *isolatedPrint) Export(ctx context.Context, job Job) (*Artifact, error) {
	title := pipeline.ExtractTitle(job.Markdown)

	path, cleanup, err := e.buildSurface(ctx, title, job.Fragment)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if err := settle(ctx, e.settle); err != nil {
		return nil, err
	}
	if err := e.printer.Print(ctx, Surface{Path: path, Title: title}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPrintInvoke, err)
	}
	return &Artifact{Strategy: StrategyIsolatedPrint, Name: title}, nil
}

// buildSurface writes the print document to a temporary file.
func (e *isolatedPrint) buildSurface(ctx context.Context, title, fragment string) (string, func(), error) {
	css, err := e.assets.LoadStyle(assets.StylePrint)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrExportBuild, err)
	}
	body, err := pipeline.RewriteResources(fragment, e.resources)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrExportBuild, err)
	}

	doc, err := buildDocument(ctx, e.assets, assets.TemplateIsolated, pipeline.DocumentData{
		Title: title,
		CSS:   css,
		Body:  body,
	})
	if err != nil {
		return "", nil, err
	}

	path, cleanup, err := fileutil.WriteTempFile("print", doc, "html")
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrExportBuild, err)
	}
	return path, cleanup, nil
}
