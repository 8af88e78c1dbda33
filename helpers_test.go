package mdpdf

import (
	"context"
	"errors"
	"sync"

	"github.com/alnah/go-mdpdf/internal/store"
)

// ---------------------------------------------------------------------------
// Fakes shared by the package tests
// ---------------------------------------------------------------------------

var errFake = errors.New("fake failure")

// failingLoader fails every lookup.
type failingLoader struct{}

func (failingLoader) LoadStyle(name string) (string, error) {
	return "", ErrStyleNotFound
}

func (failingLoader) LoadTemplate(name string) (string, error) {
	return "", ErrTemplateNotFound
}

// brokenTemplateLoader serves embedded styles and an unparsable layout.
type brokenTemplateLoader struct{ AssetLoader }

func (brokenTemplateLoader) LoadTemplate(string) (string, error) {
	return "{{.Title", nil
}

func embeddedLoader() AssetLoader {
	loader, err := NewAssetLoader("")
	if err != nil {
		panic(err)
	}
	return loader
}

// fakePrinter records surfaces. It reads the surface file while it exists.
type fakePrinter struct {
	mu       sync.Mutex
	calls    int
	surfaces []Surface
	contents []string
	err      error
	panicMsg string
	read     func(path string) (string, error)
}

func (p *fakePrinter) Print(ctx context.Context, s Surface) error {
	if p.panicMsg != "" {
		panic(p.panicMsg)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	p.surfaces = append(p.surfaces, s)
	if p.read != nil {
		content, err := p.read(s.Path)
		if err != nil {
			return err
		}
		p.contents = append(p.contents, content)
	}
	return p.err
}

// fakeRenderer returns fixed bytes and records the rendered file.
type fakeRenderer struct {
	mu       sync.Mutex
	result   []byte
	err      error
	paths    []string
	profiles []PDFProfile
	html     []string
	read     func(path string) (string, error)
	closed   bool
}

func (r *fakeRenderer) RenderFile(ctx context.Context, path string, profile PDFProfile) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
	r.profiles = append(r.profiles, profile)
	if r.read != nil {
		content, err := r.read(path)
		if err != nil {
			return nil, err
		}
		r.html = append(r.html, content)
	}
	if r.err != nil {
		return nil, r.err
	}
	if r.result != nil {
		return r.result, nil
	}
	return []byte("%PDF-1.7 fake"), nil
}

func (r *fakeRenderer) Close() error {
	r.closed = true
	return nil
}

// fakeDownloader keeps downloads in memory.
type fakeDownloader struct {
	names []string
	data  [][]byte
	err   error
}

func (d *fakeDownloader) Download(ctx context.Context, name string, data []byte) (string, error) {
	if d.err != nil {
		return "", d.err
	}
	d.names = append(d.names, name)
	d.data = append(d.data, data)
	return "/downloads/" + name, nil
}

// fakeSpooler records spooled jobs.
type fakeSpooler struct {
	titles []string
	data   [][]byte
	err    error
}

func (s *fakeSpooler) Spool(ctx context.Context, title string, pdf []byte) error {
	s.titles = append(s.titles, title)
	s.data = append(s.data, pdf)
	return s.err
}

// recordingNotifier keeps every notice.
type recordingNotifier struct {
	mu      sync.Mutex
	notices []Notice
}

func (n *recordingNotifier) Notify(notice Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
}

func (n *recordingNotifier) all() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notice(nil), n.notices...)
}

// failingStore reads normally from an in-memory store but rejects writes.
type failingStore struct {
	*store.Memory
	getErr error
}

func newFailingStore() *failingStore {
	return &failingStore{Memory: store.NewMemory()}
}

func (s *failingStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s.getErr != nil {
		return "", false, s.getErr
	}
	return s.Memory.Get(ctx, key)
}

func (s *failingStore) Set(ctx context.Context, key, value string) error {
	return errFake
}

// gatedExporter blocks in Export until release is closed.
type gatedExporter struct {
	started chan struct{}
	release chan struct{}
	mu      sync.Mutex
	calls   int
	err     error
}

func newGatedExporter() *gatedExporter {
	return &gatedExporter{started: make(chan struct{}, 16), release: make(chan struct{})}
}

func (e *gatedExporter) Export(ctx context.Context, job Job) (*Artifact, error) {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()
	e.started <- struct{}{}
	<-e.release
	if e.err != nil {
		return nil, e.err
	}
	return &Artifact{Strategy: StrategyIsolatedPrint, Name: "gated"}, nil
}

func (e *gatedExporter) Strategy() Strategy { return StrategyIsolatedPrint }

func (e *gatedExporter) Labels() Labels {
	return Labels{Ready: "Print", Busy: "Preparing..."}
}

func (e *gatedExporter) callCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}
