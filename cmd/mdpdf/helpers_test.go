package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-mdpdf"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fakes
// ---------------------------------------------------------------------------

// fakePDF is what fakeRenderer returns.
const fakePDF = "%PDF-1.4 fake"

// fakeRenderer implements mdpdf.PDFRenderer without a browser.
type fakeRenderer struct {
	mu      sync.Mutex
	err     error
	calls   int
	closed  bool
	timeout time.Duration
}

func (f *fakeRenderer) RenderFile(_ context.Context, path string, _ mdpdf.PDFProfile) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return []byte(fakePDF), nil
}

func (f *fakeRenderer) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// testEnv is an Environment with captured output.
type testEnv struct {
	*Environment
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	renderer *fakeRenderer
	vars     map[string]string
	state    string // --state value for this test
	started  int    // renderers created
	editFunc func(path string) error
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	te := &testEnv{
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
		renderer: &fakeRenderer{},
		vars:     map[string]string{},
		state:    filepath.Join(t.TempDir(), "state.yaml"),
	}
	te.Environment = &Environment{
		Stdin:  strings.NewReader(""),
		Stdout: te.stdout,
		Stderr: te.stderr,
		Getenv: func(k string) string { return te.vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(te.vars))
			for k, v := range te.vars {
				out = append(out, k+"="+v)
			}
			return out
		},
		NewPDFRenderer: func(timeout time.Duration) mdpdf.PDFRenderer {
			te.started++
			te.renderer.timeout = timeout
			return te.renderer
		},
		EditFile: func(_ context.Context, path string) error {
			if te.editFunc == nil {
				return errors.New("no editor in tests")
			}
			return te.editFunc(path)
		},
		TermWidth: func() int { return 0 },
	}
	return te
}

// run invokes runMain with the test state store appended.
func (te *testEnv) run(args ...string) int {
	full := append([]string{"mdpdf"}, args...)
	if len(args) > 0 && args[0] != "version" && args[0] != "help" && args[0] != "doctor" {
		full = append(full, "--state", te.state)
	}
	return runMain(full, te.Environment)
}

// reset clears captured output between invocations.
func (te *testEnv) reset() {
	te.stdout.Reset()
	te.stderr.Reset()
}

// writeMarkdown writes content into a temp file and returns its path.
func writeMarkdown(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.md")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing markdown: %v", err)
	}
	return path
}
