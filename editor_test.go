package mdpdf

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-mdpdf/internal/store"
)

func TestNewEditor_SeedsSampleWithoutPersisting(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := store.NewMemory()

	ed, err := NewEditor(ctx, st)
	if err != nil {
		t.Fatalf("NewEditor() unexpected error: %v", err)
	}

	if ed.CurrentText() != SampleDocument {
		t.Error("first run should show the sample document")
	}
	if _, ok, _ := st.Get(ctx, KeyContent); ok {
		t.Error("sample document should not be written before the first change")
	}
}

func TestNewEditor_RestoresSavedText(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := store.NewMemory()
	_ = st.Set(ctx, KeyContent, "abc")

	ed, err := NewEditor(ctx, st)
	if err != nil {
		t.Fatalf("NewEditor() unexpected error: %v", err)
	}
	if ed.CurrentText() != "abc" {
		t.Errorf("CurrentText() = %q, want abc", ed.CurrentText())
	}
}

func TestNewEditor_EmptySavedTextShowsSample(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := store.NewMemory()
	_ = st.Set(ctx, KeyContent, "")

	ed, _ := NewEditor(ctx, st)
	if ed.CurrentText() != SampleDocument {
		t.Error("an empty saved text should show the sample document")
	}
}

func TestNewEditor_StoreReadError(t *testing.T) {
	t.Parallel()

	st := newFailingStore()
	st.getErr = errFake

	if _, err := NewEditor(context.Background(), st); !errors.Is(err, errFake) {
		t.Errorf("NewEditor() error = %v, want errFake", err)
	}
}

func TestEditor_OnChange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
	}{
		{name: "plain", text: "abc"},
		{name: "empty is accepted", text: ""},
		{name: "whitespace kept", text: "  \n\t"},
		{name: "CRLF kept", text: "a\r\nb"},
		{name: "raw HTML", text: "<b>x</b>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			st := store.NewMemory()
			ed, _ := NewEditor(ctx, st)

			if err := ed.OnChange(ctx, tt.text); err != nil {
				t.Fatalf("OnChange() unexpected error: %v", err)
			}
			if ed.CurrentText() != tt.text {
				t.Errorf("CurrentText() = %q, want %q", ed.CurrentText(), tt.text)
			}
			if v, ok, _ := st.Get(ctx, KeyContent); !ok || v != tt.text {
				t.Errorf("stored content = %q (present %v), want %q", v, ok, tt.text)
			}
		})
	}
}

func TestEditor_OnChange_WriteFailureKeepsText(t *testing.T) {
	t.Parallel()

	ed, _ := NewEditor(context.Background(), newFailingStore())

	if err := ed.OnChange(context.Background(), "draft"); !errors.Is(err, errFake) {
		t.Fatalf("OnChange() error = %v, want errFake", err)
	}
	if ed.CurrentText() != "draft" {
		t.Errorf("CurrentText() = %q, want draft", ed.CurrentText())
	}
}

func TestEditor_Rows(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ed, _ := NewEditor(ctx, store.NewMemory())

	_ = ed.OnChange(ctx, "one line")
	if ed.Rows() != MinRows {
		t.Errorf("Rows() = %d, want minimum %d", ed.Rows(), MinRows)
	}

	_ = ed.OnChange(ctx, strings.Repeat("line\n", 24)+"last")
	if ed.Rows() != 25 {
		t.Errorf("Rows() = %d, want 25", ed.Rows())
	}
}

func TestSampleDocument_CoversSyntax(t *testing.T) {
	t.Parallel()

	for _, want := range []string{"# ", "## ", "**", "*Italic", "](", "* ", "```", "> "} {
		if !strings.Contains(SampleDocument, want) {
			t.Errorf("sample document lacks %q", want)
		}
	}
}
