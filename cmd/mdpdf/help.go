package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpdf <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  edit       Replace the document text")
	fmt.Fprintln(w, "  show       Print the document text")
	fmt.Fprintln(w, "  theme      Show or switch the light/dark theme")
	fmt.Fprintln(w, "  preview    Render the document as a themed HTML page")
	fmt.Fprintln(w, "  export     Print the document or download it as PDF")
	fmt.Fprintln(w, "  doctor     Check the browser and print setup")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdpdf help <command>' for details on a specific command.")
}

// printCommonUsage prints the flags every session command accepts.
func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --state <path>        State store location")
	fmt.Fprintln(w, "      --driver <s>          State store: file, sqlite, memory")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show error causes")
}

// printEditUsage prints usage for the edit command.
func printEditUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpdf edit <file | - | --editor> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Replace the document text with a file, stdin (-), or an editor session.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Saving empty text is allowed, but the next command starts from the")
	fmt.Fprintln(w, "sample document again: an empty saved document is treated as no document.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -e, --editor              Open the document in $VISUAL or $EDITOR")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printPreviewUsage prints usage for the preview command.
func printPreviewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpdf preview [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render the document as a standalone HTML page in the current theme.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       Write the page to a file instead of stdout")
	fmt.Fprintln(w, "  -t, --terminal            Render in the terminal")
	fmt.Fprintln(w, "  -w, --width <n>           Terminal wrap width (0 = detect)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printExportUsage prints usage for the export command.
func printExportUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpdf export [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Preview the document and export it.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Strategies:")
	fmt.Fprintln(w, "  isolated-print            Print a standalone print-styled document (default)")
	fmt.Fprintln(w, "  direct-download           Save a themed PDF")
	fmt.Fprintln(w, "  in-page-print             Print the page with only the preview visible")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -s, --strategy <s>        Export strategy")
	fmt.Fprintln(w, "  -o, --output <dir>        Download directory")
	fmt.Fprintln(w, "      --stdout              Write the PDF to stdout (direct-download)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Page load timeout (e.g., 30s)")
	fmt.Fprintln(w, "      --margin <f>          PDF margin in inches (0-3)")
	fmt.Fprintln(w, "      --print-command <s>   Spool command receiving the PDF (default: lp)")
	fmt.Fprintln(w, "      --spool-dir <dir>     Write print jobs to a directory")
	fmt.Fprintln(w, "      --settle-delay <d>    Wait before printing")
	fmt.Fprintln(w, "      --base-dir <dir>      Resolve relative images and links")
	fmt.Fprintln(w)
	printCommonUsage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDPDF_CONFIG, MDPDF_STRATEGY, MDPDF_STATE, MDPDF_TIMEOUT")
	fmt.Fprintln(w, "  ROD_BROWSER_BIN, ROD_NO_SANDBOX")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	w := env.Stdout
	switch args[0] {
	case "edit":
		printEditUsage(w)
	case "show":
		fmt.Fprintln(w, "Usage: mdpdf show [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Print the document text.")
		fmt.Fprintln(w)
		printCommonUsage(w)
	case "theme":
		fmt.Fprintln(w, "Usage: mdpdf theme [light | dark | toggle] [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show the theme, or switch it.")
		fmt.Fprintln(w)
		printCommonUsage(w)
	case "preview":
		printPreviewUsage(w)
	case "export":
		printExportUsage(w)
	case "doctor":
		fmt.Fprintln(w, "Usage: mdpdf doctor [--json] [-c config]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Check the browser, print command and state directory.")
	case "version":
		fmt.Fprintln(w, "Usage: mdpdf version")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show version information.")
	case "help":
		fmt.Fprintln(w, "Usage: mdpdf help [command]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
