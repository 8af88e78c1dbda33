package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alnah/go-mdpdf/internal/config"
)

// envConfig holds configuration from MDPDF_* environment variables.
type envConfig struct {
	ConfigPath string        // MDPDF_CONFIG: config file name or path
	Strategy   string        // MDPDF_STRATEGY: export strategy
	StatePath  string        // MDPDF_STATE: state store location
	Timeout    time.Duration // MDPDF_TIMEOUT: page load timeout
}

// knownEnvVars lists valid MDPDF_* environment variables.
var knownEnvVars = map[string]bool{
	"MDPDF_CONFIG":    true,
	"MDPDF_STRATEGY":  true,
	"MDPDF_STATE":     true,
	"MDPDF_TIMEOUT":   true,
	"MDPDF_CONTAINER": true, // doctor: force container detection
	// Set by the editor wrapper, never by users.
	"MDPDF_EDITOR": true,
	"MDPDF_FILE":   true,
}

// loadEnvConfig reads the recognized variables. An unparsable or
// non-positive MDPDF_TIMEOUT is ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("MDPDF_CONFIG"),
		Strategy:   getenv("MDPDF_STRATEGY"),
		StatePath:  getenv("MDPDF_STATE"),
	}
	if timeout := getenv("MDPDF_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	return cfg
}

// warnUnknownEnvVars warns about unrecognized MDPDF_* variables, which are
// usually typos.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, "MDPDF_") {
			continue
		}
		name := strings.SplitN(kv, "=", 2)[0]
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies environment values over the config file.
// Flags are applied afterwards and win over both.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Strategy != "" {
		cfg.Export.Strategy = env.Strategy
	}
	if env.StatePath != "" {
		cfg.Storage.Path = env.StatePath
	}
	if env.Timeout > 0 {
		cfg.PDF.Timeout = env.Timeout.String()
	}
}
