package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage marks invalid command lines.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	state   string
	driver  string
	quiet   bool
	verbose bool
}

// editFlags holds flags for the edit command.
type editFlags struct {
	common commonFlags
	editor bool
}

// previewFlags holds flags for the preview command.
type previewFlags struct {
	common   commonFlags
	output   string
	terminal bool
	width    int
}

// exportFlags holds flags for the export command.
type exportFlags struct {
	common       commonFlags
	strategy     string
	output       string
	timeout      string
	margin       float64
	marginSet    bool // 0 is a valid margin
	printCommand string
	spoolDir     string
	settleDelay  string
	stdout       bool
	baseDir      string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.state, "state", "", "state store location")
	fs.StringVar(&f.driver, "driver", "", "state store driver: file, sqlite, memory")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show error causes")
}

// newFlagSet returns a silent FlagSet; parse errors are reported by runMain.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	return fs
}

// parseError keeps pflag.ErrHelp intact and marks everything else as usage.
func parseError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

// parseCommonFlags parses commands that only take common flags.
func parseCommonFlags(name string, args []string) (*commonFlags, []string, error) {
	fs := newFlagSet(name)
	f := &commonFlags{}
	addCommonFlags(fs, f)
	if err := fs.Parse(args); err != nil {
		return nil, nil, parseError(err)
	}
	return f, fs.Args(), nil
}

// parseEditFlags parses edit command flags and returns positional args.
func parseEditFlags(args []string) (*editFlags, []string, error) {
	fs := newFlagSet("edit")
	f := &editFlags{}
	addCommonFlags(fs, &f.common)
	fs.BoolVarP(&f.editor, "editor", "e", false, "open the document in $VISUAL or $EDITOR")
	if err := fs.Parse(args); err != nil {
		return nil, nil, parseError(err)
	}
	return f, fs.Args(), nil
}

// parsePreviewFlags parses preview command flags and returns positional args.
func parsePreviewFlags(args []string) (*previewFlags, []string, error) {
	fs := newFlagSet("preview")
	f := &previewFlags{}
	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.output, "output", "o", "", "write the HTML page to a file")
	fs.BoolVarP(&f.terminal, "terminal", "t", false, "render in the terminal instead of HTML")
	fs.IntVarP(&f.width, "width", "w", 0, "terminal wrap width (0 = detect)")
	if err := fs.Parse(args); err != nil {
		return nil, nil, parseError(err)
	}
	if f.width < 0 {
		return nil, nil, fmt.Errorf("%w: --width must not be negative", ErrUsage)
	}
	return f, fs.Args(), nil
}

// parseExportFlags parses export command flags and returns positional args.
func parseExportFlags(args []string) (*exportFlags, []string, error) {
	fs := newFlagSet("export")
	f := &exportFlags{}
	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.strategy, "strategy", "s", "", "isolated-print, direct-download or in-page-print")
	fs.StringVarP(&f.output, "output", "o", "", "download directory")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "page load timeout (e.g., 30s, 2m)")
	fs.Float64Var(&f.margin, "margin", 0, "PDF margin in inches (0-3)")
	fs.StringVar(&f.printCommand, "print-command", "", "spool command receiving the PDF on stdin")
	fs.StringVar(&f.spoolDir, "spool-dir", "", "write print jobs to a directory instead")
	fs.StringVar(&f.settleDelay, "settle-delay", "", "wait before printing (e.g., 500ms)")
	fs.BoolVar(&f.stdout, "stdout", false, "write the downloaded PDF to stdout")
	fs.StringVar(&f.baseDir, "base-dir", ".", "directory resolving relative images and links")
	if err := fs.Parse(args); err != nil {
		return nil, nil, parseError(err)
	}
	f.marginSet = fs.Changed("margin")
	return f, fs.Args(), nil
}
