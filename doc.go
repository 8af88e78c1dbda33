// Package mdpdf is a Markdown editing session that previews documents as
// styled HTML and exports them by printing or as PDF.
//
// # Quick Start
//
// Open a store, pick an exporter, and drive the session with its handlers:
//
//	st, err := store.Open(ctx, "file", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer st.Close()
//
//	renderer := mdpdf.NewChromeRenderer(30 * time.Second)
//	defer renderer.Close()
//
//	exp, err := mdpdf.NewExporter(mdpdf.StrategyDirectDownload, mdpdf.ExportDeps{
//	    PDF:        renderer,
//	    Downloader: &mdpdf.DirDownloader{Dir: "."},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	s, err := mdpdf.NewSession(ctx, st, exp)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = s.HandleInput(ctx, "# Hello\n\nWorld")
//	_ = s.HandlePreview(ctx)
//	artifact, err := s.HandleExport(ctx) // writes hello.pdf
//
// # Stages
//
//  1. Editor holds the Document Text and persists it on every change.
//  2. Renderer converts it with goldmark (GFM, hard wraps, heading ids,
//     raw HTML, typographer, chroma classes for code).
//  3. Preview keeps the last fragment and enables the export trigger.
//  4. Exporter produces output from the preview.
//
// # Export Strategies
//
// StrategyIsolatedPrint prints a standalone document styled only by the
// print stylesheet, titled after the first level-one heading.
// StrategyDirectDownload renders the themed document to a PDF named after
// that heading. StrategyInPagePrint prints the editor page, whose print
// rules show only the rendered fragment.
//
// Printing goes through headless Chrome and a spool command ("lp") or a
// spool directory. A Trigger guarantees one export at a time.
//
// # Persistence
//
// Theme and text are stored under the keys "theme" and "content". Any
// Store works; internal/store provides YAML file, SQLite and memory
// backends.
//
// # Error Handling
//
// Handlers report every failure to the Notifier exactly once and return
// errors matching the package sentinels:
//
//	if errors.Is(err, mdpdf.ErrEmptyMarkdown) {
//	    // nothing to preview
//	}
//
// Text and theme are never lost on failure, and the export trigger is
// always released.
package mdpdf
