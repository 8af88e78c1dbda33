package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/alnah/go-mdpdf"
	"github.com/alnah/go-mdpdf/internal/config"
	"github.com/alnah/go-mdpdf/internal/fileutil"
	"github.com/alnah/go-mdpdf/internal/store"
)

// app is one CLI invocation's session with its resources.
type app struct {
	cfg      *config.Config
	store    store.Store
	renderer *lazyRenderer
	notifier *cliNotifier
	session  *mdpdf.Session
}

// hintContext collects what hintFor needs to make suggestions.
type hintContext struct {
	configName   string
	printCommand string
	statePath    string
}

// resolveConfig builds the effective configuration.
// Priority: flags > MDPDF_* environment > config file > defaults.
func resolveConfig(env *Environment, common *commonFlags, export *exportFlags, hc *hintContext) (*config.Config, error) {
	if !common.quiet {
		warnUnknownEnvVars(env.Stderr, env.Environ())
	}
	envCfg := loadEnvConfig(env.Getenv)

	cfg := config.DefaultConfig()
	name := common.config
	if name == "" {
		name = envCfg.ConfigPath
	}
	hc.configName = name
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	mergeCommonFlags(common, cfg)
	if export != nil {
		mergeExportFlags(export, cfg)
	}
	hc.printCommand = cfg.Print.Command
	hc.statePath = cfg.Storage.Path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeCommonFlags applies flags shared by every command.
func mergeCommonFlags(f *commonFlags, cfg *config.Config) {
	if f.state != "" {
		cfg.Storage.Path = f.state
	}
	if f.driver != "" {
		cfg.Storage.Driver = f.driver
	}
}

// mergeExportFlags applies export flags. A spool directory given on the
// command line replaces any configured spool command.
func mergeExportFlags(f *exportFlags, cfg *config.Config) {
	if f.strategy != "" {
		cfg.Export.Strategy = f.strategy
	}
	if f.output != "" {
		cfg.Export.OutputDir = f.output
	}
	if f.timeout != "" {
		cfg.PDF.Timeout = f.timeout
	}
	if f.marginSet {
		cfg.PDF.Margin = f.margin
	}
	if f.printCommand != "" {
		cfg.Print.Command = f.printCommand
	}
	if f.spoolDir != "" {
		cfg.Print.SpoolDir = f.spoolDir
		if f.printCommand == "" {
			cfg.Print.Command = ""
		}
	}
	if f.settleDelay != "" {
		cfg.Print.SettleDelay = f.settleDelay
	}
}

// openApp resolves configuration, opens the state store and starts a
// session. The browser is not started until an export needs it.
func openApp(ctx context.Context, env *Environment, common *commonFlags, export *exportFlags, hc *hintContext) (*app, error) {
	cfg, err := resolveConfig(env, common, export, hc)
	if err != nil {
		return nil, err
	}

	timeout, err := cfg.PDF.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	settleDelay, err := cfg.Print.SettleDelayDuration()
	if err != nil {
		return nil, err
	}
	strategy := mdpdf.StrategyIsolatedPrint
	if cfg.Export.Strategy != "" {
		if strategy, err = mdpdf.ParseStrategy(cfg.Export.Strategy); err != nil {
			return nil, err
		}
	}
	loader, err := mdpdf.NewAssetLoader(cfg.Assets.BasePath)
	if err != nil {
		return nil, err
	}

	baseDir := "."
	var stdout bool
	if export != nil {
		baseDir = export.baseDir
		stdout = export.stdout
	}
	if abs, err := filepath.Abs(baseDir); err == nil {
		baseDir = abs
	}

	renderer := &lazyRenderer{newRenderer: env.NewPDFRenderer, timeout: timeout}
	var downloader mdpdf.Downloader = &mdpdf.DirDownloader{Dir: cfg.Export.OutputDir}
	if stdout {
		downloader = &mdpdf.WriterDownloader{W: env.Stdout}
	}

	profile := mdpdf.DefaultPDFProfile()
	profile.Margin = cfg.PDF.Margin

	exporter, err := mdpdf.NewExporter(strategy, mdpdf.ExportDeps{
		Assets:      loader,
		Printer:     mdpdf.NewChromePrinter(renderer, newSpooler(cfg.Print)),
		PDF:         renderer,
		Downloader:  downloader,
		Profile:     profile,
		SettleDelay: settleDelay,
		SourceDir:   baseDir,
	})
	if err != nil {
		return nil, err
	}

	st, err := store.Open(ctx, cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		return nil, err
	}

	notifier := &cliNotifier{w: env.Stderr, verbose: common.verbose}
	session, err := mdpdf.NewSession(ctx, st, exporter,
		mdpdf.WithNotifier(notifier),
		mdpdf.WithAssetLoader(loader),
	)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("%w: %w", store.ErrStoreRead, err)
	}

	return &app{
		cfg:      cfg,
		store:    st,
		renderer: renderer,
		notifier: notifier,
		session:  session,
	}, nil
}

// newSpooler selects the print boundary: a spool command when one is
// configured, otherwise a spool directory.
func newSpooler(p config.PrintConfig) mdpdf.Spooler {
	if p.Command != "" {
		return &mdpdf.CommandSpooler{Command: p.Command}
	}
	return &mdpdf.DirSpooler{Dir: p.SpoolDir}
}

// Close releases the browser and the store.
func (a *app) Close() error {
	return errors.Join(a.renderer.Close(), a.store.Close())
}

// reported wraps err when the session already showed a notice for it.
func (a *app) reported(err error) error {
	if err == nil || !a.notifier.notified {
		return err
	}
	return &reportedError{err: err}
}

// ---------------------------------------------------------------------------
// lazyRenderer
// ---------------------------------------------------------------------------

// lazyRenderer creates the PDF renderer on first use.
type lazyRenderer struct {
	newRenderer func(time.Duration) mdpdf.PDFRenderer
	timeout     time.Duration

	mu sync.Mutex
	r  mdpdf.PDFRenderer
}

func (l *lazyRenderer) get() mdpdf.PDFRenderer {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.r == nil {
		l.r = l.newRenderer(l.timeout)
	}
	return l.r
}

// RenderFile implements mdpdf.PDFRenderer.
func (l *lazyRenderer) RenderFile(ctx context.Context, path string, profile mdpdf.PDFProfile) ([]byte, error) {
	return l.get().RenderFile(ctx, path, profile)
}

// Close closes the renderer if it was started.
func (l *lazyRenderer) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.r == nil {
		return nil
	}
	err := l.r.Close()
	l.r = nil
	return err
}

// ---------------------------------------------------------------------------
// Notices
// ---------------------------------------------------------------------------

// cliNotifier prints session notices to stderr.
type cliNotifier struct {
	w        io.Writer
	verbose  bool
	notified bool
}

// Notify implements mdpdf.Notifier.
func (n *cliNotifier) Notify(notice mdpdf.Notice) {
	n.notified = true
	fmt.Fprintln(n.w, notice.Message)
	if n.verbose && notice.Err != nil {
		fmt.Fprintf(n.w, "  cause: %v\n", notice.Err)
	}
}

// reportedError is an error whose message the user has already seen as a
// notice. runMain prints only its hint.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// writeOutput writes data to path, or to w when path is empty.
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" {
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return nil
	}
	if err := fileutil.WriteFileAtomic(path, data, fileutil.PublicPermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}
