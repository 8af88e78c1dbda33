package main

// Notes:
// - loadEnvConfig: we test every variable and that invalid timeouts are
//   ignored rather than reported.
// - warnUnknownEnvVars: we test typo detection and that known vars don't warn.
// - resolveConfig: we test priority: flags > environment > config file.

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-mdpdf/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Parallel()

	vars := map[string]string{
		"MDPDF_CONFIG":   "work",
		"MDPDF_STRATEGY": "direct-download",
		"MDPDF_STATE":    "/tmp/state.db",
		"MDPDF_TIMEOUT":  "2m",
	}
	cfg := loadEnvConfig(func(k string) string { return vars[k] })

	if cfg.ConfigPath != "work" {
		t.Errorf("ConfigPath = %q, want work", cfg.ConfigPath)
	}
	if cfg.Strategy != "direct-download" {
		t.Errorf("Strategy = %q", cfg.Strategy)
	}
	if cfg.StatePath != "/tmp/state.db" {
		t.Errorf("StatePath = %q", cfg.StatePath)
	}
	if cfg.Timeout != 2*time.Minute {
		t.Errorf("Timeout = %v, want 2m", cfg.Timeout)
	}
}

func TestLoadEnvConfig_InvalidTimeout(t *testing.T) {
	t.Parallel()

	for _, v := range []string{"soon", "-5s", "0s"} {
		cfg := loadEnvConfig(func(k string) string {
			if k == "MDPDF_TIMEOUT" {
				return v
			}
			return ""
		})
		if cfg.Timeout != 0 {
			t.Errorf("MDPDF_TIMEOUT=%q: Timeout = %v, want ignored", v, cfg.Timeout)
		}
	}
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf, []string{
		"HOME=/root",
		"MDPDF_STRATEGY=direct-download",
		"MDPDF_STRATGY=oops",
		"MDPDF_EDITOR=vim",
	})

	out := buf.String()
	if !strings.Contains(out, "MDPDF_STRATGY") {
		t.Errorf("should warn about MDPDF_STRATGY, got %q", out)
	}
	if strings.Count(out, "warning:") != 1 {
		t.Errorf("want exactly one warning, got %q", out)
	}
}

// ---------------------------------------------------------------------------
// TestResolveConfig - Priority of flags, environment and file
// ---------------------------------------------------------------------------

func TestResolveConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "mdpdf.yaml")
	yaml := "export:\n  strategy: in-page-print\n  outputDir: from-file\npdf:\n  margin: 1\n"
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Run("file only", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t)

		cfg, err := resolveConfig(te.Environment, &commonFlags{config: cfgPath}, nil, &hintContext{})
		if err != nil {
			t.Fatalf("resolveConfig: %v", err)
		}
		if cfg.Export.Strategy != config.StrategyInPagePrint || cfg.PDF.Margin != 1 {
			t.Errorf("cfg = %+v", cfg)
		}
		if cfg.Print.Command != "lp" {
			t.Errorf("absent fields keep defaults, Print.Command = %q", cfg.Print.Command)
		}
	})

	t.Run("env over file", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t)
		te.vars["MDPDF_CONFIG"] = cfgPath
		te.vars["MDPDF_STRATEGY"] = config.StrategyDirectDownload

		cfg, err := resolveConfig(te.Environment, &commonFlags{}, nil, &hintContext{})
		if err != nil {
			t.Fatalf("resolveConfig: %v", err)
		}
		if cfg.Export.Strategy != config.StrategyDirectDownload {
			t.Errorf("Strategy = %q, want env value", cfg.Export.Strategy)
		}
		if cfg.Export.OutputDir != "from-file" {
			t.Errorf("OutputDir = %q, want file value", cfg.Export.OutputDir)
		}
	})

	t.Run("flags over env", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t)
		te.vars["MDPDF_STRATEGY"] = config.StrategyDirectDownload
		te.vars["MDPDF_STATE"] = "/env/state.yaml"

		export := &exportFlags{strategy: config.StrategyIsolatedPrint, margin: 0, marginSet: true, spoolDir: "/spool"}
		common := &commonFlags{state: "/flag/state.yaml"}
		hc := &hintContext{}
		cfg, err := resolveConfig(te.Environment, common, export, hc)
		if err != nil {
			t.Fatalf("resolveConfig: %v", err)
		}
		if cfg.Export.Strategy != config.StrategyIsolatedPrint {
			t.Errorf("Strategy = %q, want flag value", cfg.Export.Strategy)
		}
		if cfg.Storage.Path != "/flag/state.yaml" {
			t.Errorf("Storage.Path = %q, want flag value", cfg.Storage.Path)
		}
		if cfg.PDF.Margin != 0 {
			t.Errorf("Margin = %v, want explicit 0", cfg.PDF.Margin)
		}
		if cfg.Print.Command != "" || cfg.Print.SpoolDir != "/spool" {
			t.Errorf("--spool-dir should replace the spool command, got %+v", cfg.Print)
		}
		if hc.statePath != "/flag/state.yaml" {
			t.Errorf("hint context statePath = %q", hc.statePath)
		}
	})

	t.Run("missing config", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t)

		_, err := resolveConfig(te.Environment, &commonFlags{config: filepath.Join(dir, "nope.yaml")}, nil, &hintContext{})
		if exitCodeFor(err) != ExitUsage {
			t.Errorf("err = %v, want usage error", err)
		}
	})

	t.Run("invalid flag value", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t)

		export := &exportFlags{margin: 9, marginSet: true}
		_, err := resolveConfig(te.Environment, &commonFlags{}, export, &hintContext{})
		if exitCodeFor(err) != ExitUsage {
			t.Errorf("err = %v, want usage error", err)
		}
	})
}
