package main

import (
	"strings"
	"testing"
)

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want string
	}{
		{nil, "Run 'labelsheet help <command>'"},
		{[]string{"generate"}, "--input-file <file>"},
		{[]string{"doctor"}, "Usage: labelsheet doctor"},
		{[]string{"config"}, "Usage: labelsheet config"},
		{[]string{"completion"}, "Usage: labelsheet completion <shell>"},
		{[]string{"version"}, "Usage: labelsheet version"},
		{[]string{"help"}, "Usage: labelsheet help [command]"},
	}

	for _, tt := range tests {
		te := newTestEnv(t, "")
		if code := runHelp(tt.args, te.Environment); code != ExitSuccess {
			t.Errorf("runHelp(%v) = %d, want %d", tt.args, code, ExitSuccess)
		}
		if !strings.Contains(te.stdout.String(), tt.want) {
			t.Errorf("runHelp(%v) stdout missing %q", tt.args, tt.want)
		}
	}
}

func TestRunHelp_UnknownCommand(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t, "")
	if code := runHelp([]string{"nope"}, te.Environment); code != ExitUsage {
		t.Errorf("runHelp(nope) = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(te.stderr.String(), "Unknown command: nope") {
		t.Errorf("stderr = %q", te.stderr)
	}
	if te.stdout.Len() != 0 {
		t.Errorf("stdout should be empty, got %q", te.stdout)
	}
}

// Every flag registered for generate must be documented in its help.
func TestGenerateUsage_ListsAllFlags(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t, "")
	printGenerateUsage(te.stdout)
	usage := te.stdout.String()

	for _, cmd := range getCommands() {
		if cmd.Name != "generate" {
			continue
		}
		for _, f := range cmd.Flags {
			if !strings.Contains(usage, "--"+f.Long) {
				t.Errorf("generate help does not mention --%s", f.Long)
			}
		}
	}
}
