package main

// Notes:
// - Test infrastructure shared by the command tests: a fake process runner,
//   PATH lookups and an Environment wired to in-memory buffers.
// No coverage gaps: this is test infrastructure, not production code.

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

	"github.com/fatih/color"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// fixedNow is the clock every command test runs at.
var fixedNow = func() time.Time { return time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC) }

// ---------------------------------------------------------------------------
// fakeRunner - Records processes instead of starting them
// ---------------------------------------------------------------------------

type fakeRunner struct {
	mu    sync.Mutex
	calls []string // "name arg1 arg2"

	// outputs maps a binary base name to its combined output.
	outputs map[string]string
	// fail lists binary base names that exit with an error.
	fail map[string]bool
	// makePDF writes <stem>.pdf next to a typeset .tex file.
	makePDF bool
}

func (f *fakeRunner) Run(_ context.Context, dir, name string, args ...string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, strings.Join(append([]string{name}, args...), " "))
	f.mu.Unlock()

	base := filepath.Base(name)
	if f.makePDF && len(args) > 0 && strings.HasSuffix(args[len(args)-1], ".tex") {
		pdf := filepath.Join(dir, strings.TrimSuffix(args[len(args)-1], ".tex")+".pdf")
		if err := os.WriteFile(pdf, []byte("%PDF-1.5"), 0o644); err != nil {
			return "", err
		}
	}
	if f.fail[base] {
		return f.outputs[base], errors.New("exit status 1")
	}
	return f.outputs[base], nil
}

func (f *fakeRunner) ran(prefix string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}

// lookPathExcept finds every binary in /usr/bin except the missing ones.
func lookPathExcept(missing ...string) func(string) (string, error) {
	return func(file string) (string, error) {
		for _, m := range missing {
			if file == m {
				return "", errors.New("executable file not found in $PATH")
			}
		}
		return "/usr/bin/" + file, nil
	}
}

// recordingOpener records the PDFs it was asked to show.
type recordingOpener struct {
	mu     sync.Mutex
	opened []string
	err    error
}

func (o *recordingOpener) Open(_ context.Context, path string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.opened = append(o.opened, path)
	return o.err
}

// testEnv bundles an Environment with its buffers and fakes.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	runner *fakeRunner
	opener *recordingOpener
}

// newTestEnv returns an environment reading answers from stdin and running
// a fake engine that always produces a PDF.
func newTestEnv(t *testing.T, stdin string) *testEnv {
	t.Helper()

	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		runner: &fakeRunner{makePDF: true},
		opener: &recordingOpener{},
	}
	wd := t.TempDir()
	te.Environment = &Environment{
		Now:        fixedNow,
		Stdout:     te.stdout,
		Stderr:     te.stderr,
		Stdin:      strings.NewReader(stdin),
		IsTerminal: func() bool { return false },
		Getwd:      func() (string, error) { return wd, nil },
		Runner:     te.runner,
		LookPath:   lookPathExcept(),
		Opener:     te.opener,
	}
	return te
}

// writeNames writes a names file into dir and returns its path.
func writeNames(t *testing.T, dir, name string, names ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(names, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
