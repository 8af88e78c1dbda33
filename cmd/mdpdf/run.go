package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdpdf"
	"github.com/alnah/go-mdpdf/internal/config"
	"github.com/alnah/go-mdpdf/internal/hints"
	"github.com/alnah/go-mdpdf/internal/store"
)

// runMain dispatches a command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := args[1], args[2:]
	hc := &hintContext{}

	var err error
	switch cmd {
	case "edit":
		err = runEdit(ctx, rest, env, hc)
	case "show":
		err = runShow(ctx, rest, env, hc)
	case "theme":
		err = runTheme(ctx, rest, env, hc)
	case "preview":
		err = runPreview(ctx, rest, env, hc)
	case "export":
		err = runExport(ctx, rest, env, hc)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "mdpdf %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		runHelp(rest, env)
		return ExitSuccess
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if errors.Is(err, flag.ErrHelp) {
		runHelp([]string{cmd}, env)
		return ExitSuccess
	}
	return reportError(env.Stderr, err, hc)
}

// reportError prints err with an actionable hint and returns its exit code.
func reportError(w io.Writer, err error, hc *hintContext) int {
	if err == nil {
		return ExitSuccess
	}
	hint := hintFor(err, hc)

	var reported *reportedError
	if errors.As(err, &reported) {
		if hint != "" {
			fmt.Fprintln(w, hint[1:])
		}
	} else {
		fmt.Fprintf(w, "error: %v%s\n", err, hint)
	}
	return exitCodeFor(err)
}

// hintFor returns a hint for known failure causes, or "".
func hintFor(err error, hc *hintContext) string {
	switch {
	case errors.Is(err, mdpdf.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, mdpdf.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(userConfigCandidates(hc.configName))
	case errors.Is(err, mdpdf.ErrSpool):
		return hints.ForSpool(hc.printCommand)
	case errors.Is(err, mdpdf.ErrDownload), errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	case errors.Is(err, store.ErrStoreOpen), errors.Is(err, store.ErrStoreRead):
		return hints.ForStore(hc.statePath)
	case errors.Is(err, mdpdf.ErrInvalidStrategy):
		names := make([]string, 0, len(mdpdf.Strategies()))
		for _, s := range mdpdf.Strategies() {
			names = append(names, string(s))
		}
		return hints.ForStrategy(names)
	}
	return ""
}

// userConfigCandidates lists the user config files tried for a config name.
func userConfigCandidates(name string) []string {
	if name == "" || filepath.Base(name) != name {
		return nil
	}
	dir, err := config.UserDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(dir, name+".yaml")}
}
