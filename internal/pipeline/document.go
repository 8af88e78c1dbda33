package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
)

// Sentinel errors for document assembly.
var (
	ErrTemplateParse  = errors.New("document template parsing failed")
	ErrDocumentRender = errors.New("document template rendering failed")
)

// DocumentData feeds one of the page layouts.
type DocumentData struct {
	Title    string
	Theme    string
	CSS      string // raw stylesheet, escaped before insertion
	Body     string // trusted HTML fragment
	Markdown string // source text, shown in the editor area of the page layout
	Rows     int
}

// DocumentBuilder renders standalone HTML documents from a layout template.
type DocumentBuilder struct {
	tmpl *template.Template
}

// NewDocumentBuilder parses tmplContent as an html/template layout.
func NewDocumentBuilder(name, tmplContent string) (*DocumentBuilder, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}
	return &DocumentBuilder{tmpl: tmpl}, nil
}

// Build executes the layout. The fragment is inserted without escaping:
// it comes from the Markdown renderer, which passes raw HTML through.
func (b *DocumentBuilder) Build(ctx context.Context, data DocumentData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	view := struct {
		Title    string
		Theme    string
		CSS      template.CSS
		Body     template.HTML
		Markdown string
		Rows     int
	}{
		Title:    data.Title,
		Theme:    data.Theme,
		CSS:      template.CSS(sanitizeCSS(data.CSS)), // #nosec G203 -- stylesheet comes from embedded or configured assets
		Body:     template.HTML(data.Body),             // #nosec G203 -- fragment is rendered locally for the same user
		Markdown: data.Markdown,
		Rows:     data.Rows,
	}

	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentRender, err)
	}
	return buf.String(), nil
}
