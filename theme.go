package mdpdf

import (
	"context"
	"fmt"
	"strings"
)

// ThemeMode is the light/dark presentation setting.
type ThemeMode string

// Theme modes, as persisted under KeyTheme.
const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// ParseTheme accepts "light" or "dark", case-insensitively.
func ParseTheme(s string) (ThemeMode, error) {
	switch ThemeMode(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	default:
		return "", fmt.Errorf("%w: %q (must be light or dark)", ErrInvalidTheme, s)
	}
}

// themeFromStored reads a persisted value. Anything but "dark" is light.
func themeFromStored(v string) ThemeMode {
	if ThemeMode(v) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Palette holds the colors of the themed document container.
type Palette struct {
	Background     string
	Text           string
	Link           string
	CodeBackground string
	Border         string
}

var (
	lightPalette = Palette{
		Background:     "#ffffff",
		Text:           "#24292e",
		Link:           "#0366d6",
		CodeBackground: "#f6f8fa",
		Border:         "#e1e4e8",
	}
	darkPalette = Palette{
		Background:     "#0d1117",
		Text:           "#c9d1d9",
		Link:           "#58a6ff",
		CodeBackground: "#161b22",
		Border:         "#30363d",
	}
)

// PaletteFor returns the palette of mode.
func PaletteFor(mode ThemeMode) Palette {
	if mode == ThemeDark {
		return darkPalette
	}
	return lightPalette
}

// ChromaStyleFor returns the syntax highlighting style matching mode.
func ChromaStyleFor(mode ThemeMode) string {
	if mode == ThemeDark {
		return "monokai"
	}
	return "github"
}

// ThemeSwitch is the light/dark toggle. It is checked in dark mode.
type ThemeSwitch struct {
	store Store
	mode  ThemeMode
}

// NewThemeSwitch starts in the given mode.
func NewThemeSwitch(store Store, mode ThemeMode) *ThemeSwitch {
	return &ThemeSwitch{store: store, mode: themeFromStored(string(mode))}
}

// Mode returns the active mode.
func (t *ThemeSwitch) Mode() ThemeMode {
	return t.mode
}

// Checked reports whether the toggle is in the dark position.
func (t *ThemeSwitch) Checked() bool {
	return t.mode == ThemeDark
}

// Toggle sets the mode from the toggle position and persists it.
// A failed write is reported but the mode still applies to the session.
func (t *ThemeSwitch) Toggle(ctx context.Context, checked bool) error {
	t.mode = ThemeLight
	if checked {
		t.mode = ThemeDark
	}
	return t.store.Set(ctx, KeyTheme, string(t.mode))
}
