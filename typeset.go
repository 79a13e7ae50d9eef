package labelsheet

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-labelsheet/internal/fileutil"
	"github.com/alnah/go-labelsheet/internal/process"
)

// DefaultTypesetter is the LaTeX engine used when none is configured.
const DefaultTypesetter = "xelatex"

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	// Run executes name with args in dir and returns stdout and stderr combined.
	Run(ctx context.Context, dir, name string, args ...string) (output string, err error)
}

// ExecRunner implements CommandRunner using os/exec. Cancelling ctx kills the
// whole process group.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := process.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	return out.String(), err
}

// Typesetter compiles a .tex file into a PDF next to it.
type Typesetter struct {
	Command  string
	Runner   CommandRunner
	LookPath func(file string) (string, error)
	Timeout  time.Duration // zero means no limit beyond ctx
}

// NewTypesetter returns a Typesetter for command using the real process runner.
// An empty command selects DefaultTypesetter.
func NewTypesetter(command string) *Typesetter {
	if command == "" {
		command = DefaultTypesetter
	}
	return &Typesetter{
		Command:  command,
		Runner:   ExecRunner{},
		LookPath: exec.LookPath,
	}
}

// Path resolves the typesetter binary. A missing binary is ErrTypesetterNotFound.
func (t *Typesetter) Path() (string, error) {
	lookPath := t.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	path, err := lookPath(t.Command)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrTypesetterNotFound, t.Command)
	}
	return path, nil
}

// Typeset runs the engine in batch mode in the directory of texPath and
// returns the path of the produced PDF. On failure the error names the
// engine's .log file.
func (t *Typesetter) Typeset(ctx context.Context, texPath string) (string, error) {
	bin, err := t.Path()
	if err != nil {
		return "", err
	}

	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}

	dir, base := filepath.Split(texPath)
	if dir == "" {
		dir = "."
	}

	out, err := t.Runner.Run(ctx, dir, bin, "-interaction=batchmode", "-halt-on-error", base)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("%w: %w", ErrTypesetFailed, ctxErr)
		}
		logPath := fileutil.ReplaceExtension(texPath, ".log")
		msg := firstTeXError(out)
		if msg == "" {
			// batchmode keeps the terminal quiet; the error is in the log
			if data, readErr := os.ReadFile(logPath); readErr == nil { // #nosec G304 -- derived from output path
				msg = firstTeXError(string(data))
			}
		}
		if msg != "" {
			return "", fmt.Errorf("%w: %s (see %s)", ErrTypesetFailed, msg, logPath)
		}
		return "", fmt.Errorf("%w: %v (see %s)", ErrTypesetFailed, err, logPath)
	}

	pdfPath := fileutil.ReplaceExtension(texPath, ".pdf")
	if !fileutil.FileExists(pdfPath) {
		return "", fmt.Errorf("%w: no PDF produced at %s", ErrTypesetFailed, pdfPath)
	}
	return pdfPath, nil
}

// Version returns the first line of "<command> --version".
func (t *Typesetter) Version(ctx context.Context) (string, error) {
	bin, err := t.Path()
	if err != nil {
		return "", err
	}
	out, err := t.Runner.Run(ctx, ".", bin, "--version")
	if err != nil {
		return "", fmt.Errorf("%s --version: %w", t.Command, err)
	}
	line, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	return strings.TrimSpace(line), nil
}

// firstTeXError returns the first "! ..." error line of engine output.
func firstTeXError(out string) string {
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		if line := scanner.Text(); strings.HasPrefix(line, "! ") {
			return strings.TrimPrefix(line, "! ")
		}
	}
	return ""
}
