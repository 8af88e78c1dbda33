package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestEmbeddedLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name        string
		styleName   string
		wantErr     error
		wantContain string
	}{
		{name: "print style", styleName: StylePrint, wantContain: "Georgia"},
		{name: "page style", styleName: StylePage, wantContain: "@media print"},
		{name: "themed style", styleName: StyleThemed, wantContain: ".mdpdf-document"},
		{name: "nonexistent", styleName: "nonexistent-style", wantErr: ErrStyleNotFound},
		{name: "invalid name", styleName: "../print", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.LoadStyle(tt.styleName)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadStyle(%q) error = %v, want %v", tt.styleName, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadStyle(%q) unexpected error: %v", tt.styleName, err)
			}
			if !strings.Contains(got, tt.wantContain) {
				t.Errorf("LoadStyle(%q) content should contain %q", tt.styleName, tt.wantContain)
			}
		})
	}
}

func TestEmbeddedLoader_LoadTemplate(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name         string
		templateName string
		wantErr      error
		wantContain  []string
	}{
		{
			name:         "isolated template",
			templateName: TemplateIsolated,
			wantContain:  []string{"<title>{{.Title}}</title>", "print-document", "{{.Body}}"},
		},
		{
			name:         "page template",
			templateName: TemplatePage,
			wantContain:  []string{`id="print-region"`, `id="markdown-preview"`},
		},
		{
			name:         "themed template",
			templateName: TemplateThemed,
			wantContain:  []string{"mdpdf-document", "{{.Body}}"},
		},
		{name: "nonexistent", templateName: "nonexistent", wantErr: ErrTemplateNotFound},
		{name: "empty name", templateName: "", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.LoadTemplate(tt.templateName)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadTemplate(%q) error = %v, want %v", tt.templateName, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadTemplate(%q) unexpected error: %v", tt.templateName, err)
			}
			for _, want := range tt.wantContain {
				if !strings.Contains(got, want) {
					t.Errorf("LoadTemplate(%q) content should contain %q", tt.templateName, want)
				}
			}
		})
	}
}

func TestPackageLevelLoaders(t *testing.T) {
	t.Parallel()

	if _, err := LoadStyle(StylePrint); err != nil {
		t.Errorf("LoadStyle(%q) error = %v", StylePrint, err)
	}
	if _, err := LoadTemplate(TemplateIsolated); err != nil {
		t.Errorf("LoadTemplate(%q) error = %v", TemplateIsolated, err)
	}
}
