package mdpdf

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-mdpdf/internal/fileutil"
	"github.com/alnah/go-mdpdf/internal/process"
)

// PDFRenderer turns an HTML file into PDF bytes.
type PDFRenderer interface {
	RenderFile(ctx context.Context, path string, profile PDFProfile) ([]byte, error)
	Close() error
}

var _ PDFRenderer = (*ChromeRenderer)(nil)

// Letter paper in inches.
const (
	LetterWidth  = 8.5
	LetterHeight = 11
)

// Margin bounds in inches.
const (
	MinMargin     = 0.0
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// Device scale bounds.
const (
	DefaultDeviceScale = 2.0
	MaxDeviceScale     = 4.0
)

// DefaultTimeout bounds page load when the context has no deadline.
const DefaultTimeout = 30 * time.Second

// PDFProfile is the fixed configuration handed to Chrome's print pipeline.
type PDFProfile struct {
	Margin            float64 // inches, applied to all four sides
	PaperWidth        float64 // inches
	PaperHeight       float64 // inches
	Landscape         bool
	DeviceScale       float64 // raster scale for images and canvas
	PrintBackground   bool
	PreferCSSPageSize bool // let @page rules win over paper and margins
}

// DefaultPDFProfile is the direct download profile: letter, portrait,
// half-inch margins, 2x scale, backgrounds printed.
func DefaultPDFProfile() PDFProfile {
	return PDFProfile{
		Margin:          DefaultMargin,
		PaperWidth:      LetterWidth,
		PaperHeight:     LetterHeight,
		DeviceScale:     DefaultDeviceScale,
		PrintBackground: true,
	}
}

// PrintProfile is used for print surfaces, whose stylesheet sets the page.
func PrintProfile() PDFProfile {
	return PDFProfile{
		PaperWidth:        LetterWidth,
		PaperHeight:       LetterHeight,
		DeviceScale:       1,
		PreferCSSPageSize: true,
	}
}

// Validate checks that profile values are usable.
func (p PDFProfile) Validate() error {
	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}
	if p.PaperWidth <= 0 || p.PaperHeight <= 0 {
		return fmt.Errorf("%w: %.2fx%.2f", ErrInvalidPaper, p.PaperWidth, p.PaperHeight)
	}
	if 2*p.Margin >= p.PaperWidth || 2*p.Margin >= p.PaperHeight {
		return fmt.Errorf("%w: margins leave no printable area", ErrInvalidMargin)
	}
	if p.DeviceScale <= 0 || p.DeviceScale > MaxDeviceScale {
		return fmt.Errorf("%w: %.2f (must be in (0, %.0f])", ErrInvalidScale, p.DeviceScale, MaxDeviceScale)
	}
	return nil
}

// printOptions maps the profile to the DevTools call.
func (p PDFProfile) printOptions() *proto.PagePrintToPDF {
	return &proto.PagePrintToPDF{
		Landscape:         p.Landscape,
		PrintBackground:   p.PrintBackground,
		PreferCSSPageSize: p.PreferCSSPageSize,
		PaperWidth:        floatPtr(p.PaperWidth),
		PaperHeight:       floatPtr(p.PaperHeight),
		MarginTop:         floatPtr(p.Margin),
		MarginBottom:      floatPtr(p.Margin),
		MarginLeft:        floatPtr(p.Margin),
		MarginRight:       floatPtr(p.Margin),
	}
}

// viewport sizes the page to the paper at the profile's scale. Width and
// height are CSS pixels (96 per inch).
func (p PDFProfile) viewport() *proto.EmulationSetDeviceMetricsOverride {
	width, height := p.PaperWidth, p.PaperHeight
	if p.Landscape {
		width, height = height, width
	}
	return &proto.EmulationSetDeviceMetricsOverride{
		Width:             int(width * 96),
		Height:            int(height * 96),
		DeviceScaleFactor: p.DeviceScale,
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

// ChromeRenderer renders with headless Chrome through go-rod.
// The browser is launched on first use; rod downloads Chromium when none
// is installed.
type ChromeRenderer struct {
	timeout  time.Duration
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// NewChromeRenderer returns a renderer whose page loads time out after
// timeout when the context sets no deadline.
func NewChromeRenderer(timeout time.Duration) *ChromeRenderer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ChromeRenderer{timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *ChromeRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Pre-installed browser (containers, CI images).
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// Sandboxing needs user namespaces that containers rarely grant.
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" || os.Getenv("ROD_NO_SANDBOX") == "true" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.launcher = l
	r.browser = browser
	return nil
}

// Close shuts the browser down and kills its process group.
func (r *ChromeRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		pid := r.launcher.PID()
		r.launcher.Kill()
		process.KillProcessGroup(pid)
		r.launcher = nil
	}
	return err
}

// RenderFile opens a local HTML file and prints it to PDF.
func (r *ChromeRenderer) RenderFile(ctx context.Context, path string, profile PDFProfile) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	if err := page.SetViewport(profile.viewport()); err != nil {
		return nil, fmt.Errorf("%w: setting viewport: %v", ErrPageCreate, err)
	}

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	page = page.Context(ctx).Timeout(timeout)
	if err := page.Navigate(fileURL(path)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(profile.printOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return data, nil
}

// renderHTML writes htmlContent to a temporary file and renders it.
func renderHTML(ctx context.Context, r PDFRenderer, kind, htmlContent string, profile PDFProfile) ([]byte, error) {
	path, cleanup, err := fileutil.WriteTempFile(kind, htmlContent, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportBuild, err)
	}
	defer cleanup()

	return r.RenderFile(ctx, path, profile)
}

// fileURL converts a local path to a file:// URL.
func fileURL(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p // Windows drive letters
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}
