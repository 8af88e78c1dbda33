package mdpdf

import (
	"errors"
	"fmt"
	"io"
)

// NoticeKind classifies a user-facing notice.
type NoticeKind string

// Notice kinds.
const (
	NoticeEmptyInput   NoticeKind = "empty-input"
	NoticeNoPreview    NoticeKind = "no-preview"
	NoticeExportBuild  NoticeKind = "export-build"
	NoticeExportInvoke NoticeKind = "export-invoke"
	NoticeRender       NoticeKind = "render"
	NoticeStorage      NoticeKind = "storage"
)

// Notice messages.
const (
	MsgEmptyInput  = "Please enter some markdown text to preview."
	MsgNoPreview   = "No content to print. Please preview your markdown first."
	MsgPrintBuild  = "There was an error preparing your document for printing. Please try again."
	MsgPrintInvoke = "There was an error opening the print dialog. Please try again."
	MsgPDFBuild    = "There was an error generating your PDF. Please try again."
	MsgRender      = "There was an error rendering your markdown. Please try again."
	MsgStorage     = "Your changes could not be saved. They are kept until you quit."
)

// Notice is a blocking message shown to the user.
type Notice struct {
	Kind    NoticeKind
	Message string
	Err     error // cause, nil for validation notices
}

// Notifier shows notices.
type Notifier interface {
	Notify(Notice)
}

type discardNotifier struct{}

func (discardNotifier) Notify(Notice) {}

// WriterNotifier prints notices as single lines.
type WriterNotifier struct {
	W io.Writer
}

// Notify writes n.Message.
func (w *WriterNotifier) Notify(n Notice) {
	fmt.Fprintln(w.W, n.Message)
}

// noticeFor maps an export error to the single notice shown for it.
func noticeFor(strategy Strategy, err error) Notice {
	switch {
	case errors.Is(err, ErrNoPreview):
		return Notice{Kind: NoticeNoPreview, Message: MsgNoPreview}
	case strategy == StrategyDirectDownload && errors.Is(err, ErrExportBuild):
		return Notice{Kind: NoticeExportBuild, Message: MsgPDFBuild, Err: err}
	case strategy == StrategyDirectDownload:
		return Notice{Kind: NoticeExportInvoke, Message: MsgPDFBuild, Err: err}
	case strategy == StrategyInPagePrint:
		return Notice{Kind: NoticeExportInvoke, Message: MsgPrintInvoke, Err: err}
	case errors.Is(err, ErrExportBuild):
		return Notice{Kind: NoticeExportBuild, Message: MsgPrintBuild, Err: err}
	default:
		return Notice{Kind: NoticeExportInvoke, Message: MsgPrintInvoke, Err: err}
	}
}
