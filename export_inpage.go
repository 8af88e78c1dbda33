package mdpdf

import (
	"context"
	"fmt"
	"time"

	"github.com/alnah/go-mdpdf/internal/assets"
	"github.com/alnah/go-mdpdf/internal/fileutil"
	"github.com/alnah/go-mdpdf/internal/pipeline"
)

// PageTitle is the title of the editor page.
const PageTitle = "mdpdf"

// printRegionID is the element of the page layout shown only in print.
const printRegionID = "print-region"

// inPagePrint prints the editor page itself. Its print rules hide the
// editor and show only the print region holding the fragment.
type inPagePrint struct {
	assets    AssetLoader
	printer   Printer
	injector  pipeline.RegionInjector
	settle    time.Duration
	resources pipeline.ResourceOptions
}

func (e *inPagePrint) Strategy() Strategy { return StrategyInPagePrint }

func (e *inPagePrint) Labels() Labels {
	return Labels{Ready: "Print", Busy: "Printing..."}
}

func (e *inPagePrint) Export(ctx context.Context, job Job) (*Artifact, error) {
	page, err := e.buildPage(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPrintInvoke, err)
	}

	path, cleanup, err := fileutil.WriteTempFile("page", page, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPrintInvoke, err)
	}
	defer cleanup()

	if err := settle(ctx, e.settle); err != nil {
		return nil, err
	}
	if err := e.printer.Print(ctx, Surface{Path: path, Title: PageTitle}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPrintInvoke, err)
	}
	return &Artifact{Strategy: StrategyInPagePrint, Name: PageTitle}, nil
}

// buildPage renders the editor page and fills its print region.
func (e *inPagePrint) buildPage(ctx context.Context, job Job) (string, error) {
	css, err := e.assets.LoadStyle(assets.StylePage)
	if err != nil {
		return "", err
	}
	code, err := buildChromaCSS(job.Theme)
	if err != nil {
		return "", err
	}
	body, err := pipeline.RewriteResources(job.Fragment, e.resources)
	if err != nil {
		return "", err
	}
	// The fragment appears twice in the page; the preview copy must not
	// run into the print region.
	body, err = pipeline.NormalizeFragment(body)
	if err != nil {
		return "", err
	}

	page, err := buildDocument(ctx, e.assets, assets.TemplatePage, pipeline.DocumentData{
		Title:    PageTitle,
		Theme:    string(job.Theme),
		CSS:      css + "\n" + code,
		Body:     body,
		Markdown: job.Markdown,
		Rows:     rowsFor(job.Markdown),
	})
	if err != nil {
		return "", err
	}
	return e.injector.InjectIntoRegion(ctx, page, printRegionID, body)
}
