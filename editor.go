package mdpdf

import (
	"context"
	"strings"
)

// MinRows is the smallest height of the text area, in lines.
const MinRows = 10

// Editor owns the Document Text and writes it through on every change.
type Editor struct {
	store Store
	text  string
	rows  int
}

// NewEditor restores the last saved text. When nothing was saved, the
// sample document is shown; it is not written until the first change.
func NewEditor(ctx context.Context, store Store) (*Editor, error) {
	settings, err := LoadSettings(ctx, store)
	if err != nil {
		return nil, err
	}
	return newEditor(store, settings), nil
}

func newEditor(store Store, settings Settings) *Editor {
	text := SampleDocument
	if settings.HasContent {
		text = settings.Content
	}
	return &Editor{store: store, text: text, rows: rowsFor(text)}
}

// CurrentText returns the Document Text.
func (e *Editor) CurrentText() string {
	return e.text
}

// OnChange adopts text and persists it verbatim. Any string is accepted.
// A failed write is reported but the typed text is kept for the session.
func (e *Editor) OnChange(ctx context.Context, text string) error {
	e.text = text
	e.rows = rowsFor(text)
	return e.store.Set(ctx, KeyContent, text)
}

// Rows returns the height fitting the current text.
func (e *Editor) Rows() int {
	return e.rows
}

func rowsFor(text string) int {
	return max(strings.Count(text, "\n")+1, MinRows)
}
