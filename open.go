package labelsheet

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// Opener shows a finished PDF to the user.
type Opener interface {
	Open(ctx context.Context, path string) error
}

// SystemOpener opens files with the desktop's default application.
type SystemOpener struct {
	Runner CommandRunner
	GOOS   string // empty means runtime.GOOS
}

// NewSystemOpener returns an Opener for the current platform.
func NewSystemOpener() *SystemOpener {
	return &SystemOpener{Runner: LaunchRunner{}}
}

// LaunchRunner starts desktop launchers with their output unattached, so a
// viewer forked by xdg-open cannot keep Run waiting. Cancelling ctx stops the
// launcher only, never the viewer. Output is always empty.
type LaunchRunner struct{}

func (LaunchRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- fixed launcher names
	cmd.Dir = dir
	return "", cmd.Run()
}

// Open launches the platform viewer on path and waits for the launcher
// (not the viewer) to exit.
func (o *SystemOpener) Open(ctx context.Context, path string) error {
	goos := o.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	name, args := OpenCommand(goos, path)
	if out, err := o.Runner.Run(ctx, ".", name, args...); err != nil {
		if out != "" {
			return fmt.Errorf("%w: %s: %v: %s", ErrOpenViewer, name, err, out)
		}
		return fmt.Errorf("%w: %s: %v", ErrOpenViewer, name, err)
	}
	return nil
}

// OpenCommand returns the launcher command for goos.
func OpenCommand(goos, path string) (name string, args []string) {
	switch goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}
	default:
		return "xdg-open", []string{path}
	}
}
