package mdpdf

import (
	"context"
	"fmt"

	"github.com/alnah/go-mdpdf/internal/assets"
	"github.com/alnah/go-mdpdf/internal/pipeline"
)

// directDownload renders the themed document to PDF and saves it.
type directDownload struct {
	assets     AssetLoader
	renderer   PDFRenderer
	downloader Downloader
	profile    PDFProfile
	resources  pipeline.ResourceOptions
}

func (e *directDownload) Strategy() Strategy { return StrategyDirectDownload }

func (e *directDownload) Labels() Labels {
	return Labels{Ready: "Download PDF", Busy: "Generating PDF..."}
}

func (e *directDownload) Export(ctx context.Context, job Job) (*Artifact, error) {
	doc, err := e.buildDocument(ctx, job)
	if err != nil {
		return nil, err
	}

	data, err := renderHTML(ctx, e.renderer, "pdf", doc, e.profile)
	if err != nil {
		return nil, err
	}

	name := pipeline.PDFFilename(job.Markdown)
	path, err := e.downloader.Download(ctx, name, data)
	if err != nil {
		return nil, fmt.Errorf("saving %s: %w", name, err)
	}
	return &Artifact{Strategy: StrategyDirectDownload, Name: name, Path: path, Size: len(data)}, nil
}

// buildDocument wraps the fragment in the container styled for job.Theme.
func (e *directDownload) buildDocument(ctx context.Context, job Job) (string, error) {
	css, err := buildThemedCSS(e.assets, job.Theme)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExportBuild, err)
	}
	body, err := pipeline.RewriteResources(job.Fragment, e.resources)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExportBuild, err)
	}
	return buildDocument(ctx, e.assets, assets.TemplateThemed, pipeline.DocumentData{
		Title: pipeline.ExtractTitle(job.Markdown),
		Theme: string(job.Theme),
		CSS:   css,
		Body:  body,
	})
}
