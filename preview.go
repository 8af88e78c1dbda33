package mdpdf

import (
	"context"
	"fmt"
	"io"

	"github.com/alnah/go-mdpdf/internal/assets"
	"github.com/alnah/go-mdpdf/internal/pipeline"
)

// PreviewTitle is the title of published preview pages.
const PreviewTitle = "mdpdf Preview"

// Preview holds the last rendered fragment. It is hidden until the first
// successful Show.
type Preview struct {
	loader   AssetLoader
	fragment string
	visible  bool
}

// NewPreview returns a hidden preview publishing with loader's layouts.
func NewPreview(loader AssetLoader) *Preview {
	return &Preview{loader: loader}
}

// Show replaces the displayed fragment wholesale and makes the preview
// visible.
func (p *Preview) Show(fragment string) error {
	if fragment == "" {
		return ErrEmptyFragment
	}
	p.fragment = fragment
	p.visible = true
	return nil
}

// CurrentFragment returns the displayed fragment, if any.
func (p *Preview) CurrentFragment() (string, bool) {
	return p.fragment, p.visible
}

// Visible reports whether a fragment has been shown.
func (p *Preview) Visible() bool {
	return p.visible
}

// Publish writes the preview as a standalone page styled for theme.
func (p *Preview) Publish(ctx context.Context, w io.Writer, theme ThemeMode) error {
	if !p.visible {
		return ErrNoPreview
	}

	css, err := buildThemedCSS(p.loader, theme)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExportBuild, err)
	}
	page, err := buildDocument(ctx, p.loader, assets.TemplateThemed, pipeline.DocumentData{
		Title: PreviewTitle,
		Theme: string(theme),
		CSS:   css,
		Body:  p.fragment,
	})
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, page); err != nil {
		return fmt.Errorf("writing preview: %w", err)
	}
	return nil
}

// buildDocument fills the named layout. Failures wrap ErrExportBuild.
func buildDocument(ctx context.Context, loader AssetLoader, layout string, data pipeline.DocumentData) (string, error) {
	tmpl, err := loader.LoadTemplate(layout)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExportBuild, err)
	}
	builder, err := pipeline.NewDocumentBuilder(layout, tmpl)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExportBuild, err)
	}
	doc, err := builder.Build(ctx, data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExportBuild, err)
	}
	return doc, nil
}
