package mdpdf

import (
	"context"
	"errors"
	"io"
)

// Session wires the editor, renderer, preview, theme and exporter of one
// document. Handlers are meant to be called one at a time, except
// HandleExport, which tolerates repeated concurrent calls.
type Session struct {
	editor   *Editor
	renderer *Renderer
	preview  *Preview
	theme    *ThemeSwitch
	exporter Exporter
	trigger  *Trigger
	notifier Notifier
	assets   AssetLoader
}

// Option configures a Session.
type Option func(*Session)

// WithNotifier sets where notices go. By default they are dropped.
func WithNotifier(n Notifier) Option {
	return func(s *Session) {
		s.notifier = n
	}
}

// WithAssetLoader sets the loader used to publish the preview.
func WithAssetLoader(l AssetLoader) Option {
	return func(s *Session) {
		s.assets = l
	}
}

// NewSession restores theme and text from store. The export trigger starts
// disabled.
func NewSession(ctx context.Context, store Store, exporter Exporter, opts ...Option) (*Session, error) {
	settings, err := LoadSettings(ctx, store)
	if err != nil {
		return nil, err
	}

	s := &Session{
		editor:   newEditor(store, settings),
		renderer: NewRenderer(),
		theme:    NewThemeSwitch(store, settings.Theme),
		exporter: exporter,
		trigger:  NewTrigger(exporter.Labels().Ready),
		notifier: discardNotifier{},
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.assets == nil {
		loader, err := NewAssetLoader("")
		if err != nil {
			return nil, err
		}
		s.assets = loader
	}
	s.preview = NewPreview(s.assets)
	return s, nil
}

// Text returns the Document Text.
func (s *Session) Text() string { return s.editor.CurrentText() }

// Rows returns the editor height in lines.
func (s *Session) Rows() int { return s.editor.Rows() }

// Theme returns the active theme.
func (s *Session) Theme() ThemeMode { return s.theme.Mode() }

// ThemeChecked reports whether the theme toggle is in the dark position.
func (s *Session) ThemeChecked() bool { return s.theme.Checked() }

// Preview returns the preview stage.
func (s *Session) Preview() *Preview { return s.preview }

// Trigger returns the export control.
func (s *Session) Trigger() *Trigger { return s.trigger }

// Strategy returns the configured export strategy.
func (s *Session) Strategy() Strategy { return s.exporter.Strategy() }

// HandleInput adopts and persists new Document Text.
func (s *Session) HandleInput(ctx context.Context, text string) error {
	if err := s.editor.OnChange(ctx, text); err != nil {
		s.notify(Notice{Kind: NoticeStorage, Message: MsgStorage, Err: err})
		return err
	}
	return nil
}

// HandleThemeToggle switches the theme and persists it.
func (s *Session) HandleThemeToggle(ctx context.Context, checked bool) error {
	if err := s.theme.Toggle(ctx, checked); err != nil {
		s.notify(Notice{Kind: NoticeStorage, Message: MsgStorage, Err: err})
		return err
	}
	return nil
}

// HandlePreview renders the Document Text into the preview and enables
// exports. Blank text leaves preview and trigger untouched.
func (s *Session) HandlePreview(ctx context.Context) error {
	fragment, err := s.renderer.Render(ctx, s.editor.CurrentText())
	if errors.Is(err, ErrEmptyMarkdown) {
		s.notify(Notice{Kind: NoticeEmptyInput, Message: MsgEmptyInput})
		return err
	}
	if err != nil {
		s.notify(Notice{Kind: NoticeRender, Message: MsgRender, Err: err})
		return err
	}

	if err := s.preview.Show(fragment); err != nil {
		s.notify(Notice{Kind: NoticeEmptyInput, Message: MsgEmptyInput, Err: err})
		return err
	}
	s.trigger.Enable()
	return nil
}

// HandleExport exports the current preview. While an export runs, further
// calls return ErrExportBusy without a notice, like clicks on a disabled
// button. Any other failure produces exactly one notice.
func (s *Session) HandleExport(ctx context.Context) (*Artifact, error) {
	fragment, ok := s.preview.CurrentFragment()
	if !ok {
		s.notify(Notice{Kind: NoticeNoPreview, Message: MsgNoPreview})
		return nil, ErrNoPreview
	}

	job := Job{Fragment: fragment, Markdown: s.editor.CurrentText(), Theme: s.theme.Mode()}

	var artifact *Artifact
	err := s.trigger.Run(ctx, s.exporter.Labels().Busy, func(ctx context.Context) error {
		a, err := s.exporter.Export(ctx, job)
		artifact = a
		return err
	})
	if errors.Is(err, ErrExportBusy) {
		return nil, err
	}
	if err != nil {
		s.notify(noticeFor(s.exporter.Strategy(), err))
		return nil, err
	}
	return artifact, nil
}

// PublishPreview writes the preview as a standalone page in the current
// theme.
func (s *Session) PublishPreview(ctx context.Context, w io.Writer) error {
	if err := s.preview.Publish(ctx, w, s.theme.Mode()); err != nil {
		if errors.Is(err, ErrNoPreview) {
			s.notify(Notice{Kind: NoticeNoPreview, Message: MsgNoPreview})
		}
		return err
	}
	return nil
}

func (s *Session) notify(n Notice) {
	s.notifier.Notify(n)
}
