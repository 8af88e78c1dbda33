package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestSanitizeCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain rules untouched", "pre { padding: 1em; }", "pre { padding: 1em; }"},
		{"style close escaped", "</style>", `<\/style>`},
		{"uppercase close escaped", "</STYLE>", `<\/STYLE>`},
		{"every occurrence escaped", "</a></b>", `<\/a><\/b>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := sanitizeCSS(tt.input); got != tt.want {
				t.Errorf("sanitizeCSS(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestInjectCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		css  string
		want string
	}{
		{
			name: "empty CSS leaves document alone",
			html: "<html><head></head><body>x</body></html>",
			want: "<html><head></head><body>x</body></html>",
		},
		{
			name: "before closing head",
			html: "<html><head><title>t</title></head><body>x</body></html>",
			css:  "h1 { font-size: 24pt; }",
			want: "<html><head><title>t</title><style>h1 { font-size: 24pt; }</style></head><body>x</body></html>",
		},
		{
			name: "uppercase head",
			html: "<HTML><HEAD></HEAD><BODY>x</BODY></HTML>",
			css:  "p{}",
			want: "<HTML><HEAD><style>p{}</style></HEAD><BODY>x</BODY></HTML>",
		},
		{
			name: "after body tag with attributes",
			html: `<body data-theme="dark"><p>x</p></body>`,
			css:  "p{}",
			want: `<body data-theme="dark"><style>p{}</style><p>x</p></body>`,
		},
		{
			name: "fragment gets style prepended",
			html: "<p>x</p>",
			css:  "p{}",
			want: "<style>p{}</style><p>x</p>",
		},
		{
			name: "closing sequences in CSS are escaped",
			html: "<head></head>",
			css:  "</style><script>alert(1)</script>",
			want: `<head><style><\/style><script>alert(1)<\/script></style></head>`,
		},
	}

	injector := &CSSInjection{}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := injector.InjectCSS(context.Background(), tt.html, tt.css); got != tt.want {
				t.Errorf("InjectCSS() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInjectCSS_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doc := "<html><head></head><body>x</body></html>"
	if got := (&CSSInjection{}).InjectCSS(ctx, doc, "p{}"); got != doc {
		t.Errorf("InjectCSS() with cancelled context = %q, want unchanged", got)
	}
}

// ---------------------------------------------------------------------------
// RegionInjection
// ---------------------------------------------------------------------------

func TestInjectIntoRegion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		html     string
		region   string
		fragment string
		want     string
	}{
		{
			name:     "empty placeholder",
			html:     `<main class="app">ui</main><div id="print-region"></div>`,
			region:   "print-region",
			fragment: "<h1>Hi</h1>",
			want:     `<main class="app">ui</main><div id="print-region"><h1>Hi</h1></div>`,
		},
		{
			name:     "previous content replaced",
			html:     `<div id="print-region"><p>old</p></div><footer></footer>`,
			region:   "print-region",
			fragment: "<p>new</p>",
			want:     `<div id="print-region"><p>new</p></div><footer></footer>`,
		},
		{
			name:     "id after other attributes",
			html:     `<section class="only-print" id="out" aria-hidden="true"></section>`,
			region:   "out",
			fragment: "x",
			want:     `<section class="only-print" id="out" aria-hidden="true">x</section>`,
		},
		{
			name:     "similar ids are not confused",
			html:     `<div id="print-region-old"></div><div id="print-region"></div>`,
			region:   "print-region",
			fragment: "y",
			want:     `<div id="print-region-old"></div><div id="print-region">y</div>`,
		},
	}

	injector := &RegionInjection{}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := injector.InjectIntoRegion(context.Background(), tt.html, tt.region, tt.fragment)
			if err != nil {
				t.Fatalf("InjectIntoRegion() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("InjectIntoRegion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInjectIntoRegion_Missing(t *testing.T) {
	t.Parallel()

	_, err := (&RegionInjection{}).InjectIntoRegion(context.Background(), "<body></body>", "print-region", "<p>x</p>")
	if !errors.Is(err, ErrRegionNotFound) {
		t.Fatalf("InjectIntoRegion() error = %v, want ErrRegionNotFound", err)
	}
	if !strings.Contains(err.Error(), "#print-region") {
		t.Errorf("error %q should name the region", err)
	}
}

func TestInjectIntoRegion_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&RegionInjection{}).InjectIntoRegion(ctx, `<div id="r"></div>`, "r", "x")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("InjectIntoRegion() error = %v, want context.Canceled", err)
	}
}
