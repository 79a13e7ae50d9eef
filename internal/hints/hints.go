// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"runtime"
	"strings"

	"github.com/alnah/go-labelsheet/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// goos is the platform used to pick install instructions.
var goos = runtime.GOOS

// ForTypesetterNotFound returns hints for a missing LaTeX engine.
// Suggests an install for the current platform, the override variable, and
// --tex-only when the sheet will be typeset elsewhere.
func ForTypesetterNotFound() string {
	var hints []string

	switch goos {
	case "darwin":
		hints = append(hints, "install MacTeX (brew install --cask mactex-no-gui)")
	case "windows":
		hints = append(hints, "install MiKTeX or TeX Live")
	default:
		hints = append(hints, "install TeX Live (e.g. apt install texlive-xetex texlive-latex-extra)")
	}

	if os.Getenv("LABELSHEET_TYPESETTER") == "" {
		hints = append(hints, "set LABELSHEET_TYPESETTER to use another engine")
	}
	hints = append(hints, "use --tex-only to write the .tex file without typesetting")

	return formatHints(hints)
}

// ForTypesetFailed returns hints for a LaTeX run that exited with an error.
func ForTypesetFailed(logPath string) string {
	hint := "run 'labelsheet doctor' to check required LaTeX packages"
	if logPath != "" {
		hint = "see " + logPath + "; " + hint
	}
	return format(hint)
}

// ForInputNotFound returns hints for a missing name list.
func ForInputNotFound(workDir string) string {
	return format("make sure the file is in your working directory " + workDir +
		" or change it with 'cd /path/to/your/directory'")
}

// ForViewer returns hints when the PDF could not be opened.
func ForViewer() string {
	if IsInContainer() {
		return format("no desktop viewer in containers; use --no-open")
	}
	if goos != "darwin" && goos != "windows" {
		return format("install xdg-utils or open the PDF manually; use --no-open to skip")
	}
	return format("open the PDF manually; use --no-open to skip")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/labelsheet/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath2slash(p), ".config/labelsheet") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("first runs may build fonts; use --timeout to allow more time")
}

// ForUsage points at the help for a command after a flag error.
func ForUsage(command string) string {
	return format("run 'labelsheet help " + command + "' for usage")
}

// filepath2slash normalises Windows separators for substring checks.
func filepath2slash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
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
