// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdpdf/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// inCI reports whether a common CI provider is detected.
func inCI() bool {
	return os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""
}

// ForBrowserConnect returns hints for browser connection errors.
// Detects CI/Docker environment and suggests relevant environment variables.
func ForBrowserConnect() string {
	var hints []string

	if (inCI() || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	hints = append(hints, "run 'mdpdf doctor' to check the browser")

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for large documents or remote images, use --timeout or pdf.timeout")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and, when one was searched, the user config file.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	marker := filepath.Join(".config", "mdpdf") + string(filepath.Separator)
	for _, p := range searchedPaths {
		if strings.Contains(p, marker) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForSpool returns hints when the print job could not be handed over.
func ForSpool(command string) string {
	if command == "" {
		return format("set print.spoolDir to a writable directory, or print.command to a spool command such as lp")
	}
	name := strings.Fields(command)
	if len(name) > 0 {
		if _, err := lookPath(name[0]); err != nil {
			return formatHints([]string{
				"'" + name[0] + "' not found in PATH",
				"install CUPS or set print.command",
				"or leave print.command empty and set print.spoolDir",
			})
		}
	}
	return format("check that a default printer is configured for '" + command + "'")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable, or set export.outputDir")
}

// ForStore returns hints for a state store that cannot be opened.
func ForStore(path string) string {
	if path == "" {
		return format("use --state or storage.path to choose another location")
	}
	return format("move or repair " + path + ", or use --state to choose another location")
}

// ForStrategy returns hints listing the export strategies.
func ForStrategy(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
