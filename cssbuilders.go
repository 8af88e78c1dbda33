package mdpdf

import (
	"bytes"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/alnah/go-mdpdf/internal/assets"
)

// buildPaletteCSS declares the palette as custom properties read by the
// themed stylesheet.
func buildPaletteCSS(p Palette) string {
	return fmt.Sprintf(`:root {
  --mdpdf-background: %s;
  --mdpdf-text: %s;
  --mdpdf-link: %s;
  --mdpdf-code-background: %s;
  --mdpdf-border: %s;
}
`, sanitizeCSSValue(p.Background), sanitizeCSSValue(p.Text), sanitizeCSSValue(p.Link),
		sanitizeCSSValue(p.CodeBackground), sanitizeCSSValue(p.Border))
}

// sanitizeCSSValue drops characters that could end a declaration or block.
func sanitizeCSSValue(v string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}', '<', '>', '\n', '\r':
			return -1
		}
		return r
	}, v)
}

// buildChromaCSS returns the stylesheet for highlighted code blocks. Code
// is rendered with classes, so colors follow the theme.
func buildChromaCSS(mode ThemeMode) (string, error) {
	formatter := chromahtml.New(chromahtml.WithClasses(true))

	var buf bytes.Buffer
	if err := formatter.WriteCSS(&buf, styles.Get(ChromaStyleFor(mode))); err != nil {
		return "", fmt.Errorf("writing %s highlight styles: %w", ChromaStyleFor(mode), err)
	}
	return buf.String(), nil
}

// buildThemedCSS combines palette, container layout and code colors.
// Order matters: the palette declares the variables the layout reads.
func buildThemedCSS(loader AssetLoader, mode ThemeMode) (string, error) {
	layout, err := loader.LoadStyle(assets.StyleThemed)
	if err != nil {
		return "", err
	}
	code, err := buildChromaCSS(mode)
	if err != nil {
		return "", err
	}
	return buildPaletteCSS(PaletteFor(mode)) + layout + "\n" + code, nil
}
