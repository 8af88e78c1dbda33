package mdpdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-mdpdf/internal/config"
	"github.com/alnah/go-mdpdf/internal/pipeline"
)

// Strategy names an export variant.
type Strategy string

// Export strategies.
const (
	StrategyIsolatedPrint  Strategy = config.StrategyIsolatedPrint
	StrategyDirectDownload Strategy = config.StrategyDirectDownload
	StrategyInPagePrint    Strategy = config.StrategyInPagePrint
)

// Strategies lists every strategy, default first.
func Strategies() []Strategy {
	return []Strategy{StrategyIsolatedPrint, StrategyDirectDownload, StrategyInPagePrint}
}

// ParseStrategy accepts a strategy name, case-insensitively.
func ParseStrategy(s string) (Strategy, error) {
	want := Strategy(strings.ToLower(strings.TrimSpace(s)))
	for _, st := range Strategies() {
		if st == want {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q (must be one of %s)", ErrInvalidStrategy, s, strategyList())
}

func strategyList() string {
	names := make([]string, 0, len(Strategies()))
	for _, st := range Strategies() {
		names = append(names, string(st))
	}
	return strings.Join(names, ", ")
}

// Job is the input of one export.
type Job struct {
	Fragment string // rendered preview
	Markdown string // Document Text, for titles and file names
	Theme    ThemeMode
}

// Artifact describes what an export produced.
type Artifact struct {
	Strategy Strategy
	Name     string // print job title or downloaded file name
	Path     string // downloaded file, empty for print jobs and stream sinks
	Size     int    // PDF size in bytes, zero for print jobs
}

// Labels are the texts of the export control.
type Labels struct {
	Ready string
	Busy  string
}

// Exporter produces output from the current preview.
type Exporter interface {
	Export(ctx context.Context, job Job) (*Artifact, error)
	Strategy() Strategy
	Labels() Labels
}

// Default settle delays before invoking print.
const (
	IsolatedSettleDelay = 500 * time.Millisecond
	InPageSettleDelay   = 200 * time.Millisecond
)

// ExportDeps are the collaborators of the exporters. Each strategy uses a
// subset: print strategies need Printer, direct download needs PDF and
// Downloader.
type ExportDeps struct {
	Assets      AssetLoader
	Printer     Printer
	PDF         PDFRenderer
	Downloader  Downloader
	Profile     PDFProfile    // zero value means DefaultPDFProfile
	SettleDelay time.Duration // zero means the strategy default
	SourceDir   string        // resolves relative images and links
}

// NewExporter returns the exporter for strategy.
func NewExporter(strategy Strategy, deps ExportDeps) (Exporter, error) {
	if deps.Assets == nil {
		loader, err := NewAssetLoader("")
		if err != nil {
			return nil, err
		}
		deps.Assets = loader
	}
	resources := pipeline.ResourceOptions{SourceDir: deps.SourceDir}

	switch strategy {
	case StrategyIsolatedPrint:
		if deps.Printer == nil {
			return nil, fmt.Errorf("%w: %s needs a printer", ErrInvalidStrategy, strategy)
		}
		return &isolatedPrint{
			assets:    deps.Assets,
			printer:   deps.Printer,
			settle:    delayOr(deps.SettleDelay, IsolatedSettleDelay),
			resources: resources,
		}, nil

	case StrategyDirectDownload:
		if deps.PDF == nil || deps.Downloader == nil {
			return nil, fmt.Errorf("%w: %s needs a PDF renderer and a downloader", ErrInvalidStrategy, strategy)
		}
		profile := deps.Profile
		if profile == (PDFProfile{}) {
			profile = DefaultPDFProfile()
		}
		if err := profile.Validate(); err != nil {
			return nil, err
		}
		resources.CrossOrigin = pipeline.CrossOriginAnonymous
		return &directDownload{
			assets:     deps.Assets,
			renderer:   deps.PDF,
			downloader: deps.Downloader,
			profile:    profile,
			resources:  resources,
		}, nil

	case StrategyInPagePrint:
		if deps.Printer == nil {
			return nil, fmt.Errorf("%w: %s needs a printer", ErrInvalidStrategy, strategy)
		}
		return &inPagePrint{
			assets:    deps.Assets,
			printer:   deps.Printer,
			injector:  &pipeline.RegionInjection{},
			settle:    delayOr(deps.SettleDelay, InPageSettleDelay),
			resources: resources,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidStrategy, strategy)
	}
}

func delayOr(d, fallback time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return fallback
}

// settle waits d so the surface finishes layout, or returns early on
// cancellation.
func settle(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
