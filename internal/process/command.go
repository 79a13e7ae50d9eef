package process

import (
	"context"
	"os/exec"
)

// CommandContext is exec.CommandContext with group-wide cancellation:
// when ctx is done, the whole process tree is killed, not just the direct
// child. LaTeX engines spawn helpers (e.g. mktexpk) that would otherwise
// outlive the cancelled run.
func CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	setGroup(cmd)
	cmd.Cancel = func() error {
		if cmd.Process != nil {
			KillProcessGroup(cmd.Process.Pid)
		}
		return nil
	}
	return cmd
}
