package hints

// Notes:
// - Tests touching ForBrowserConnect or ForSpool cannot use t.Parallel():
//   they use t.Setenv or swap the package-level IsInContainer/lookPath hooks.

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func withContainer(t *testing.T, in bool) {
	t.Helper()
	orig := IsInContainer
	t.Cleanup(func() { IsInContainer = orig })
	IsInContainer = func() bool { return in }
}

func clearCI(t *testing.T) {
	t.Helper()
	for _, k := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		t.Setenv(k, "")
	}
}

// ---------------------------------------------------------------------------
// ForBrowserConnect
// ---------------------------------------------------------------------------

func TestForBrowserConnect(t *testing.T) {
	tests := []struct {
		name        string
		ci          string
		container   bool
		noSandbox   string
		browserBin  string
		wantSandbox bool
		wantBin     bool
	}{
		{name: "CI without sandbox flag", ci: "true", wantSandbox: true, wantBin: true},
		{name: "container", container: true, wantSandbox: true, wantBin: true},
		{name: "sandbox already disabled", container: true, noSandbox: "1", wantBin: true},
		{name: "custom browser set", browserBin: "/usr/bin/chromium"},
		{name: "desktop defaults", wantBin: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withContainer(t, tt.container)
			clearCI(t)
			t.Setenv("CI", tt.ci)
			t.Setenv("ROD_NO_SANDBOX", tt.noSandbox)
			t.Setenv("ROD_BROWSER_BIN", tt.browserBin)

			hint := ForBrowserConnect()

			if !strings.HasPrefix(hint, "\n  hint: ") {
				t.Errorf("hint %q lacks the standard prefix", hint)
			}
			if got := strings.Contains(hint, "ROD_NO_SANDBOX"); got != tt.wantSandbox {
				t.Errorf("ROD_NO_SANDBOX suggested = %v, want %v (%q)", got, tt.wantSandbox, hint)
			}
			if got := strings.Contains(hint, "ROD_BROWSER_BIN"); got != tt.wantBin {
				t.Errorf("ROD_BROWSER_BIN suggested = %v, want %v (%q)", got, tt.wantBin, hint)
			}
			if !strings.Contains(hint, "mdpdf doctor") {
				t.Errorf("hint should point to doctor: %q", hint)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// ForSpool
// ---------------------------------------------------------------------------

func TestForSpool(t *testing.T) {
	orig := lookPath
	t.Cleanup(func() { lookPath = orig })

	t.Run("no command suggests spool directory", func(t *testing.T) {
		if hint := ForSpool(""); !strings.Contains(hint, "print.spoolDir") {
			t.Errorf("ForSpool(\"\") = %q", hint)
		}
	})

	t.Run("missing binary", func(t *testing.T) {
		lookPath = func(string) (string, error) { return "", errors.New("not found") }
		hint := ForSpool("lp -d office")
		if !strings.Contains(hint, "'lp' not found") {
			t.Errorf("ForSpool() = %q, want missing binary named", hint)
		}
		if !strings.Contains(hint, "CUPS") {
			t.Errorf("ForSpool() = %q, want install suggestion", hint)
		}
	})

	t.Run("binary present", func(t *testing.T) {
		lookPath = func(string) (string, error) { return "/usr/bin/lp", nil }
		if hint := ForSpool("lp"); !strings.Contains(hint, "default printer") {
			t.Errorf("ForSpool() = %q, want printer suggestion", hint)
		}
	})
}

// ---------------------------------------------------------------------------
// Simple hints
// ---------------------------------------------------------------------------

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	userPath := filepath.Join("/home/u", ".config", "mdpdf", "work.yaml")

	hint := ForConfigNotFound([]string{"work.yaml", userPath})
	if !strings.Contains(hint, "--config") {
		t.Errorf("hint %q should mention --config", hint)
	}
	if !strings.Contains(hint, "create "+userPath) {
		t.Errorf("hint %q should suggest %s", hint, userPath)
	}

	if hint := ForConfigNotFound([]string{"work.yaml"}); strings.Contains(hint, "create") {
		t.Errorf("hint %q should not suggest a user path", hint)
	}
}

func TestForStore(t *testing.T) {
	t.Parallel()

	if hint := ForStore("/tmp/state.yaml"); !strings.Contains(hint, "/tmp/state.yaml") {
		t.Errorf("ForStore() = %q, want path", hint)
	}
	if hint := ForStore(""); !strings.Contains(hint, "--state") {
		t.Errorf("ForStore(\"\") = %q, want --state", hint)
	}
}

func TestForStrategy(t *testing.T) {
	t.Parallel()

	if hint := ForStrategy(nil); hint != "" {
		t.Errorf("ForStrategy(nil) = %q, want empty", hint)
	}
	hint := ForStrategy([]string{"isolated-print", "direct-download"})
	if hint != "\n  hint: available: isolated-print, direct-download" {
		t.Errorf("ForStrategy() = %q", hint)
	}
}

func TestFormat_Consistency(t *testing.T) {
	t.Parallel()

	for _, hint := range []string{ForTimeout(), ForOutputDirectory(), ForStore("x")} {
		if !strings.HasPrefix(hint, "\n  hint: ") {
			t.Errorf("hint %q lacks the standard prefix", hint)
		}
		if strings.Count(hint, "hint:") != 1 {
			t.Errorf("hint %q should carry exactly one prefix", hint)
		}
	}
	if format("") != "" || formatHints(nil) != "" {
		t.Error("empty hints should format to empty strings")
	}
}
