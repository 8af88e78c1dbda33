package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"

	"github.com/alnah/go-mdpdf"
	"github.com/alnah/go-mdpdf/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrReadInput       = errors.New("failed to read markdown input")
	ErrWriteOutput     = errors.New("failed to write output")
	ErrEditor          = errors.New("editor failed")
	ErrTerminalPreview = errors.New("failed to render terminal preview")
)

// defaultWrapWidth is used when the terminal width is unknown.
const defaultWrapWidth = 80

// ---------------------------------------------------------------------------
// edit
// ---------------------------------------------------------------------------

// runEdit replaces the Document Text with a file, stdin, or the result of
// an editor session.
func runEdit(ctx context.Context, args []string, env *Environment, hc *hintContext) error {
	flags, positional, err := parseEditFlags(args)
	if err != nil {
		return err
	}
	if flags.editor == (len(positional) == 1) || len(positional) > 1 {
		return fmt.Errorf("%w: edit takes one of <file>, - or --editor", ErrUsage)
	}

	a, err := openApp(ctx, env, &flags.common, nil, hc)
	if err != nil {
		return err
	}
	defer a.Close()

	var text string
	if flags.editor {
		text, err = editInteractively(ctx, env, a.session.Text())
	} else {
		text, err = readInput(env.Stdin, positional[0])
	}
	if err != nil {
		return err
	}

	if err := a.session.HandleInput(ctx, text); err != nil {
		return a.reported(err)
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Saved %d lines\n", strings.Count(text, "\n")+1)
	}
	return nil
}

// readInput reads markdown from a file, or from stdin for "-".
func readInput(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path) // #nosec G304 -- path is user-provided
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	return string(data), nil
}

// editInteractively round-trips text through the user's editor.
func editInteractively(ctx context.Context, env *Environment, text string) (string, error) {
	path, cleanup, err := fileutil.WriteTempFile("edit", text, "md")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEditor, err)
	}
	defer cleanup()

	if err := env.EditFile(ctx, path); err != nil {
		if errors.Is(err, ErrNoEditor) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrEditor, err)
	}
	return readInput(nil, path)
}

// ---------------------------------------------------------------------------
// show
// ---------------------------------------------------------------------------

// runShow prints the Document Text.
func runShow(ctx context.Context, args []string, env *Environment, hc *hintContext) error {
	flags, positional, err := parseCommonFlags("show", args)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: show takes no arguments", ErrUsage)
	}

	a, err := openApp(ctx, env, flags, nil, hc)
	if err != nil {
		return err
	}
	defer a.Close()

	text := a.session.Text()
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return writeOutput(env.Stdout, "", []byte(text))
}

// ---------------------------------------------------------------------------
// theme
// ---------------------------------------------------------------------------

// runTheme prints or changes the theme. Accepts light, dark or toggle.
func runTheme(ctx context.Context, args []string, env *Environment, hc *hintContext) error {
	flags, positional, err := parseCommonFlags("theme", args)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: theme takes at most one argument", ErrUsage)
	}

	a, err := openApp(ctx, env, flags, nil, hc)
	if err != nil {
		return err
	}
	defer a.Close()

	if len(positional) == 0 {
		fmt.Fprintln(env.Stdout, a.session.Theme())
		return nil
	}

	var checked bool
	if strings.EqualFold(positional[0], "toggle") {
		checked = !a.session.ThemeChecked()
	} else {
		mode, err := mdpdf.ParseTheme(positional[0])
		if err != nil {
			return err
		}
		checked = mode == mdpdf.ThemeDark
	}

	if err := a.session.HandleThemeToggle(ctx, checked); err != nil {
		return a.reported(err)
	}
	if !flags.quiet {
		fmt.Fprintf(env.Stdout, "Theme: %s\n", a.session.Theme())
	}
	return nil
}

// ---------------------------------------------------------------------------
// preview
// ---------------------------------------------------------------------------

// runPreview renders the Document Text as a themed HTML page, or in the
// terminal with --terminal.
func runPreview(ctx context.Context, args []string, env *Environment, hc *hintContext) error {
	flags, positional, err := parsePreviewFlags(args)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: preview takes no arguments", ErrUsage)
	}

	a, err := openApp(ctx, env, &flags.common, nil, hc)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.session.HandlePreview(ctx); err != nil {
		return a.reported(err)
	}

	var out []byte
	if flags.terminal {
		rendered, err := renderTerminal(a.session.Text(), a.session.Theme(), flags.width, env.TermWidth())
		if err != nil {
			return err
		}
		out = []byte(rendered)
	} else {
		var buf bytes.Buffer
		if err := a.session.PublishPreview(ctx, &buf); err != nil {
			return a.reported(err)
		}
		out = buf.Bytes()
	}

	if err := writeOutput(env.Stdout, flags.output, out); err != nil {
		return err
	}
	if flags.output != "" && !flags.common.quiet {
		fmt.Fprintf(env.Stderr, "Created %s\n", flags.output)
	}
	return nil
}

// renderTerminal renders markdown with glamour. An explicit width wins;
// otherwise the terminal width is used, and a redirected stdout gets the
// plain "notty" style.
func renderTerminal(markdown string, theme mdpdf.ThemeMode, width, termWidth int) (string, error) {
	style := string(theme)
	if termWidth == 0 {
		style = "notty"
	}
	if width == 0 {
		width = termWidth
	}
	if width == 0 {
		width = defaultWrapWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTerminalPreview, err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTerminalPreview, err)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// export
// ---------------------------------------------------------------------------

// runExport previews the Document Text and exports it with the configured
// strategy.
func runExport(ctx context.Context, args []string, env *Environment, hc *hintContext) error {
	flags, positional, err := parseExportFlags(args)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: export takes no arguments", ErrUsage)
	}

	a, err := openApp(ctx, env, &flags.common, flags, hc)
	if err != nil {
		return err
	}
	defer a.Close()

	if flags.stdout && a.session.Strategy() != mdpdf.StrategyDirectDownload {
		return fmt.Errorf("%w: --stdout needs --strategy %s", ErrUsage, mdpdf.StrategyDirectDownload)
	}

	if err := a.session.HandlePreview(ctx); err != nil {
		return a.reported(err)
	}
	artifact, err := a.session.HandleExport(ctx)
	if err != nil {
		return a.reported(err)
	}

	if !flags.common.quiet {
		printArtifact(env, artifact)
	}
	return nil
}

// printArtifact reports an export result. Messages go to stderr when
// stdout carries the PDF.
func printArtifact(env *Environment, a *mdpdf.Artifact) {
	switch {
	case a.Strategy != mdpdf.StrategyDirectDownload:
		fmt.Fprintf(env.Stdout, "Sent %q to the printer\n", a.Name)
	case a.Path == "":
		fmt.Fprintf(env.Stderr, "Wrote %s (%s)\n", a.Name, humanize.Bytes(uint64(a.Size)))
	default:
		fmt.Fprintf(env.Stdout, "Created %s (%s)\n", a.Path, humanize.Bytes(uint64(a.Size)))
	}
}
