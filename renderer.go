package mdpdf

import (
	"context"
	"strings"

	"github.com/alnah/go-mdpdf/internal/pipeline"
)

// Renderer converts Document Text into an HTML fragment.
type Renderer struct {
	converter pipeline.HTMLConverter
}

// NewRenderer returns a Renderer with the fixed goldmark profile.
func NewRenderer() *Renderer {
	return &Renderer{converter: pipeline.NewGoldmarkConverter()}
}

// Render trims text and converts it. Blank text returns ErrEmptyMarkdown
// without reaching the converter.
func (r *Renderer) Render(ctx context.Context, text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", ErrEmptyMarkdown
	}
	return r.converter.ToHTML(ctx, trimmed)
}
