package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-labelsheet"
	"github.com/alnah/go-labelsheet/internal/fileutil"
	"github.com/alnah/go-labelsheet/internal/hints"
)

// requiredPackages are the LaTeX packages the built-in preamble loads.
var requiredPackages = []string{"geometry", "tabularx", "tabularht", "moresize"}

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status     string         `json:"status"` // "ready", "warnings", "errors"
	Typesetter typesetterInfo `json:"typesetter"`
	Packages   []packageInfo  `json:"packages,omitempty"`
	Viewer     viewerInfo     `json:"viewer"`
	Env        envInfo        `json:"environment"`
	System     systemInfo     `json:"system"`
	Warnings   []string       `json:"warnings,omitempty"`
	Errors     []string       `json:"errors,omitempty"`
}

// typesetterInfo holds LaTeX engine detection results.
type typesetterInfo struct {
	Command string `json:"command"`
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

// packageInfo holds the kpsewhich lookup of one LaTeX package.
type packageInfo struct {
	Name  string `json:"name"`
	Found bool   `json:"found"`
	Path  string `json:"path,omitempty"`
}

// viewerInfo holds PDF viewer launcher detection results.
type viewerInfo struct {
	Command string `json:"command"`
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found, 2 = bad flags.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) int {
	var f doctorFlags
	fs := newDoctorFlagSet(&f)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printDoctorUsage(env.Stdout)
			return ExitSuccess
		}
		printError(env.Stderr, fmt.Errorf("%w: %v%s", ErrInvalidFlag, err, hints.ForUsage("doctor")))
		return ExitUsage
	}

	command := f.typesetter
	if command == "" {
		command = os.Getenv("LABELSHEET_TYPESETTER")
	}

	result := runDoctor(ctx, env, command)

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context, env *Environment, command string) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
	}

	ts := labelsheet.NewTypesetter(command)
	ts.Runner = env.Runner
	ts.LookPath = env.LookPath

	checkTypesetter(ctx, result, ts)
	checkPackages(ctx, result, env)
	checkViewer(result, env, runtime.GOOS)
	checkEnvironment(result)
	checkSystem(result)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkTypesetter locates the LaTeX engine and asks for its version.
func checkTypesetter(ctx context.Context, result *doctorResult, ts *labelsheet.Typesetter) {
	result.Typesetter.Command = ts.Command

	path, err := ts.Path()
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("%s not found. Install TeX Live or set LABELSHEET_TYPESETTER", ts.Command))
		return
	}
	result.Typesetter.Found = true
	result.Typesetter.Path = path

	version, err := ts.Version(ctx)
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get %s version: %v", ts.Command, err))
		return
	}
	result.Typesetter.Version = version
}

// checkPackages asks kpsewhich for every package the preamble loads.
func checkPackages(ctx context.Context, result *doctorResult, env *Environment) {
	kpsewhich, err := env.LookPath("kpsewhich")
	if err != nil {
		result.Warnings = append(result.Warnings,
			"kpsewhich not found; LaTeX packages were not checked")
		return
	}

	for _, pkg := range requiredPackages {
		info := packageInfo{Name: pkg}
		out, err := env.Runner.Run(ctx, ".", kpsewhich, pkg+".sty")
		if path := strings.TrimSpace(out); err == nil && path != "" {
			info.Found = true
			info.Path = path
		} else {
			result.Errors = append(result.Errors,
				fmt.Sprintf("LaTeX package %s not found (tlmgr install %s)", pkg, pkg))
		}
		result.Packages = append(result.Packages, info)
	}
}

// checkViewer locates the command used to open finished PDFs.
func checkViewer(result *doctorResult, env *Environment, goos string) {
	name, _ := labelsheet.OpenCommand(goos, "")
	result.Viewer.Command = name

	path, err := env.LookPath(name)
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s not found; PDFs will not open automatically (use --no-open)", name))
		return
	}
	result.Viewer.Found = true
	result.Viewer.Path = path
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if (result.Env.Container || result.Env.CI) && result.Viewer.Found {
		result.Warnings = append(result.Warnings,
			"Container/CI detected: no desktop to show the PDF. Use --no-open or LABELSHEET_NO_OPEN=1")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	if os.Getenv("LABELSHEET_CONTAINER") == "1" {
		return true, "LABELSHEET_CONTAINER=1"
	}
	if hints.IsInContainer() {
		return true, "/.dockerenv"
	}
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory accepts .tex files.
func checkSystem(result *doctorResult) {
	_, cleanup, err := fileutil.WriteTempFile("% labelsheet doctor\n", "tex")
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", os.TempDir()))
		return
	}
	cleanup()
	result.System.TempWritable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "labelsheet doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Typesetter")
	if r.Typesetter.Found {
		fmt.Fprintf(w, "  [OK] %s found at %s\n", r.Typesetter.Command, r.Typesetter.Path)
		if r.Typesetter.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Typesetter.Version)
		}
	} else {
		fmt.Fprintf(w, "  [ERROR] %s not found\n", r.Typesetter.Command)
	}
	fmt.Fprintln(w)

	if len(r.Packages) > 0 {
		fmt.Fprintln(w, "LaTeX packages")
		for _, p := range r.Packages {
			if p.Found {
				fmt.Fprintf(w, "  [OK] %s\n", p.Name)
			} else {
				fmt.Fprintf(w, "  [ERROR] %s: missing\n", p.Name)
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Viewer")
	if r.Viewer.Found {
		fmt.Fprintf(w, "  [OK] %s found at %s\n", r.Viewer.Command, r.Viewer.Path)
	} else {
		fmt.Fprintf(w, "  [WARN] %s not found\n", r.Viewer.Command)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to typeset")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
