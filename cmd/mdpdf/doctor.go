package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdpdf/internal/config"
	"github.com/alnah/go-mdpdf/internal/fileutil"
	"github.com/alnah/go-mdpdf/internal/store"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Chrome   chromeInfo `json:"chrome"`
	Print    printInfo  `json:"print"`
	Storage  storeInfo  `json:"storage"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// printInfo holds the print boundary as configured.
type printInfo struct {
	Strategy string `json:"strategy"`
	Command  string `json:"command,omitempty"`
	Found    bool   `json:"found"`
	SpoolDir string `json:"spool_dir,omitempty"`
}

// storeInfo holds the state store location.
type storeInfo struct {
	Driver   string `json:"driver"`
	Path     string `json:"path,omitempty"`
	Writable bool   `json:"writable"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// doctorProbe holds the lookups doctor performs, swapped in tests.
type doctorProbe struct {
	getenv     func(string) string
	lookChrome func() (string, bool)
	lookPath   func(string) (string, error)
	version    func(path string) (string, error)
	fileExists func(string) bool
	tempDir    func() string
}

// defaultProbe returns the production lookups.
func defaultProbe(getenv func(string) string) *doctorProbe {
	return &doctorProbe{
		getenv:     getenv,
		lookChrome: launcher.LookPath,
		lookPath:   exec.LookPath,
		version: func(path string) (string, error) {
			out, err := exec.Command(path, "--version").Output() // #nosec G204 -- browser path from rod or ROD_BROWSER_BIN
			return strings.TrimSpace(string(out)), err
		},
		fileExists: fileutil.FileExists,
		tempDir:    os.TempDir,
	}
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	fs := newFlagSet("doctor")
	jsonOutput := fs.Bool("json", false, "print results as JSON")
	configName := fs.StringP("config", "c", "", "config file name or path")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			runHelp([]string{"doctor"}, env)
			return ExitSuccess
		}
		return reportError(env.Stderr, parseError(err), &hintContext{})
	}

	hc := &hintContext{}
	common := &commonFlags{config: *configName, quiet: true}
	cfg, err := resolveConfig(env, common, nil, hc)
	if err != nil {
		return reportError(env.Stderr, err, hc)
	}

	result := runDoctor(cfg, defaultProbe(env.Getenv))

	if *jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(cfg *config.Config, p *doctorProbe) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  p.getenv("ROD_NO_SANDBOX"),
			BrowserBin: p.getenv("ROD_BROWSER_BIN"),
		},
	}

	checkChrome(result, p)
	checkPrint(result, cfg, p)
	checkStorage(result, cfg)
	checkEnvironment(result, p)
	checkSystem(result, p)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkChrome detects Chrome/Chromium installation.
func checkChrome(result *doctorResult, p *doctorProbe) {
	chromePath := result.Env.BrowserBin

	if chromePath == "" {
		var found bool
		chromePath, found = p.lookChrome()
		if !found {
			result.Errors = append(result.Errors,
				"Chrome/Chromium not found. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}

	if !p.fileExists(chromePath) {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	if v, err := p.version(chromePath); err == nil {
		result.Chrome.Version = v
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}

	result.Chrome.Sandbox = result.Env.NoSandbox != "1"
}

// checkPrint verifies the spool command or directory used by the print
// strategies. Direct download never prints, so problems are warnings there.
func checkPrint(result *doctorResult, cfg *config.Config, p *doctorProbe) {
	result.Print.Strategy = cfg.Export.Strategy
	result.Print.Command = cfg.Print.Command
	result.Print.SpoolDir = cfg.Print.SpoolDir

	report := func(msg string) {
		if cfg.Export.Strategy == config.StrategyDirectDownload {
			result.Warnings = append(result.Warnings, msg)
		} else {
			result.Errors = append(result.Errors, msg)
		}
	}

	if cfg.Print.Command == "" {
		if cfg.Print.SpoolDir == "" {
			report("No print command or spool directory configured. Set print.command or print.spoolDir")
			return
		}
		result.Print.Found = true
		return
	}

	name := strings.Fields(cfg.Print.Command)[0]
	if _, err := p.lookPath(name); err != nil {
		report(fmt.Sprintf("Print command %q not found in PATH. Install CUPS or set print.spoolDir", name))
		return
	}
	result.Print.Found = true
}

// checkStorage verifies the state store directory can be created.
func checkStorage(result *doctorResult, cfg *config.Config) {
	result.Storage.Driver = cfg.Storage.Driver
	if cfg.Storage.Driver == config.DriverMemory {
		result.Storage.Writable = true
		result.Warnings = append(result.Warnings, "Memory storage: theme and text are lost on exit")
		return
	}

	path := cfg.Storage.Path
	if path == "" {
		var err error
		if path, err = store.DefaultPath(cfg.Storage.Driver); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("No state directory: %v", err))
			return
		}
	}
	result.Storage.Path = path

	if err := os.MkdirAll(filepath.Dir(path), fileutil.DirPermissions); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("State directory not writable: %s", filepath.Dir(path)))
		return
	}
	result.Storage.Writable = true
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, p *doctorProbe) {
	result.Env.Container, result.Env.ContainerHint = isContainer(p)

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if p.getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer(p *doctorProbe) (bool, string) {
	if p.getenv("MDPDF_CONTAINER") == "1" {
		return true, "MDPDF_CONTAINER=1"
	}
	if p.fileExists("/.dockerenv") {
		return true, "/.dockerenv"
	}
	if v := p.getenv("container"); v != "" {
		return true, "container=" + v
	}
	if p.getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies system requirements.
func checkSystem(result *doctorResult, p *doctorProbe) {
	tmpDir := p.tempDir()
	testFile := filepath.Join(tmpDir, "mdpdf-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), fileutil.PrivatePermissions); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	} else {
		_ = os.Remove(testFile)
		result.System.TempWritable = true
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "mdpdf doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	} else {
		fmt.Fprintln(w, "  [ERROR] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Print")
	fmt.Fprintf(w, "  [OK] Strategy: %s\n", r.Print.Strategy)
	switch {
	case r.Print.Command != "" && r.Print.Found:
		fmt.Fprintf(w, "  [OK] Command: %s\n", r.Print.Command)
	case r.Print.Command != "":
		fmt.Fprintf(w, "  [ERROR] Command: %s (not found)\n", r.Print.Command)
	case r.Print.SpoolDir != "":
		fmt.Fprintf(w, "  [OK] Spool directory: %s\n", r.Print.SpoolDir)
	default:
		fmt.Fprintln(w, "  [ERROR] Not configured")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Storage")
	if r.Storage.Writable {
		fmt.Fprintf(w, "  [OK] %s %s\n", r.Storage.Driver, r.Storage.Path)
	} else {
		fmt.Fprintf(w, "  [ERROR] %s %s: not writable\n", r.Storage.Driver, r.Storage.Path)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
