package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// supportedShells lists shells in the order shown to users.
var supportedShells = []string{string(ShellBash), string(ShellZsh), string(ShellFish), string(ShellPowerShell)}

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = fmt.Errorf("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output-file
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name  string
	Desc  string
	Flags []flagDef
	Args  []string // fixed positional values (shell names, command names)
}

// completionMeta holds completion-specific metadata for flags.
// This is the ONLY place where completion hints are defined.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	// Enum flags
	"date":        {Values: []string{"today", "none", "today:iso", "today:european", "today:us", "today:long"}},
	"date-format": {Values: []string{"iso", "european", "us", "long"}},
	"typesetter":  {Values: []string{"xelatex", "lualatex", "pdflatex"}},

	// File flags with glob patterns
	"input-file": {FileGlob: "*.txt,*.csv,*.xlsx"},
	"config":     {FileGlob: "*.yaml,*.yml"},

	// Directory flags
	"asset-path": {IsDir: true},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			if len(meta.Values) > 0 {
				fd.Type = flagEnum
				fd.Values = meta.Values
			} else if meta.FileGlob != "" {
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			} else if meta.IsDir {
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSets - single source of truth.
// The first entry is the default command.
func getCommands() []commandDef {
	var gf generateFlags
	var df doctorFlags
	var cf commonFlags

	return []commandDef{
		{
			Name:  "generate",
			Desc:  "Generate a label sheet from a list of names",
			Flags: extractFlagsFromFlagSet(newGenerateFlagSet(&gf)),
		},
		{
			Name:  "doctor",
			Desc:  "Check the LaTeX installation and PDF viewer",
			Flags: extractFlagsFromFlagSet(newDoctorFlagSet(&df)),
		},
		{
			Name:  "config",
			Desc:  "Print the effective configuration",
			Flags: extractFlagsFromFlagSet(newConfigFlagSet(&cf)),
		},
		{
			Name: "completion",
			Desc: "Generate shell completion script",
			Args: supportedShells,
		},
		{
			Name: "version",
			Desc: "Show version information",
		},
		{
			Name: "help",
			Desc: "Show help for a command",
			Args: commands,
		},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	case ShellPowerShell:
		return generatePowerShell(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}

	shell := Shell(args[0])
	return GenerateCompletion(env.Stdout, shell)
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: labelsheet completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(labelsheet completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (after compinit):")
	fmt.Fprintln(w, "    eval \"$(labelsheet completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    labelsheet completion fish > ~/.config/fish/completions/labelsheet.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    labelsheet completion powershell | Out-String | Invoke-Expression")
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func generateBash(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("# bash completion for labelsheet\n\n")
	b.WriteString("_labelsheet() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	fmt.Fprintf(&b, "    local commands=%q\n\n", strings.Join(commandNames(cmds), " "))

	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 && ${cur} != -* ]]; then\n")
	b.WriteString("        COMPREPLY=( $(compgen -W \"${commands}\" -- \"${cur}\") )\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")

	// Flags before any command belong to the default command.
	fmt.Fprintf(&b, "    cmd=%q\n", cmds[0].Name)
	b.WriteString("    if [[ ${COMP_WORDS[1]} != -* ]]; then\n")
	b.WriteString("        cmd=\"${COMP_WORDS[1]}\"\n")
	b.WriteString("    fi\n\n")

	b.WriteString("    case \"${cmd}\" in\n")
	for _, cmd := range cmds {
		if len(cmd.Flags) == 0 && len(cmd.Args) == 0 {
			continue
		}
		fmt.Fprintf(&b, "    %s)\n", cmd.Name)
		if len(cmd.Args) > 0 {
			fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n", strings.Join(cmd.Args, " "))
			b.WriteString("        ;;\n")
			continue
		}

		b.WriteString("        case \"${prev}\" in\n")
		for _, f := range cmd.Flags {
			if action := bashFlagAction(f); action != "" {
				fmt.Fprintf(&b, "        %s)\n            %s\n            return\n            ;;\n", bashFlagPattern(f), action)
			}
		}
		b.WriteString("        esac\n")
		fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n", strings.Join(flagWords(cmd.Flags), " "))
		b.WriteString("        ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("complete -F _labelsheet labelsheet\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// bashFlagPattern returns the case pattern matching a flag's spellings.
func bashFlagPattern(f flagDef) string {
	if f.Short != "" {
		return "-" + f.Short + "|--" + f.Long
	}
	return "--" + f.Long
}

// bashFlagAction returns the completion for a flag's value, or "" for flags
// that take no value.
func bashFlagAction(f flagDef) string {
	switch f.Type {
	case flagEnum:
		return fmt.Sprintf("COMPREPLY=( $(compgen -W %q -- \"${cur}\") )", strings.Join(f.Values, " "))
	case flagFile:
		var parts []string
		for _, glob := range splitGlobs(f.FileGlob) {
			parts = append(parts, fmt.Sprintf("$(compgen -f -X '!%s' -- \"${cur}\")", glob))
		}
		parts = append(parts, "$(compgen -d -- \"${cur}\")")
		return "COMPREPLY=( " + strings.Join(parts, " ") + " )"
	case flagDir:
		return "COMPREPLY=( $(compgen -d -- \"${cur}\") )"
	case flagString, flagInt:
		return "COMPREPLY=()"
	default:
		return ""
	}
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

func generateZsh(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("#compdef labelsheet\n\n")
	b.WriteString("_labelsheet() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, cmd := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", cmd.Name, zshEscape(cmd.Desc))
	}
	b.WriteString("    )\n\n")

	for _, cmd := range cmds {
		if len(cmd.Flags) == 0 {
			continue
		}
		fmt.Fprintf(&b, "    local -a %s_flags\n", cmd.Name)
		fmt.Fprintf(&b, "    %s_flags=(\n", cmd.Name)
		for _, f := range cmd.Flags {
			fmt.Fprintf(&b, "        %s\n", zshFlagSpec(f))
		}
		b.WriteString("    )\n\n")
	}

	b.WriteString("    if (( CURRENT == 2 )) && [[ ${words[CURRENT]} != -* ]]; then\n")
	b.WriteString("        _describe -t commands 'labelsheet command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")

	b.WriteString("    case ${words[2]} in\n")
	fmt.Fprintf(&b, "    -*)\n        _arguments -s $%s_flags\n        ;;\n", cmds[0].Name)
	for _, cmd := range cmds {
		switch {
		case len(cmd.Flags) > 0:
			fmt.Fprintf(&b, "    %s)\n        shift words\n        (( CURRENT-- ))\n        _arguments -s $%s_flags\n        ;;\n", cmd.Name, cmd.Name)
		case len(cmd.Args) > 0:
			fmt.Fprintf(&b, "    %s)\n        _values '%s' %s\n        ;;\n", cmd.Name, cmd.Name, strings.Join(cmd.Args, " "))
		}
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _labelsheet labelsheet\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// zshFlagSpec returns the _arguments spec for a flag.
func zshFlagSpec(f flagDef) string {
	desc := "[" + zshEscape(f.Desc) + "]"
	action := zshFlagAction(f)

	if f.Short == "" {
		return "'--" + f.Long + desc + action + "'"
	}
	return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'%s%s'", f.Short, f.Long, f.Short, f.Long, desc, action)
}

// zshFlagAction returns the value part of an _arguments spec.
func zshFlagAction(f flagDef) string {
	switch f.Type {
	case flagBool:
		return ""
	case flagEnum:
		return ":" + f.Long + ":(" + strings.Join(f.Values, " ") + ")"
	case flagFile:
		return ":" + f.Long + ":_files -g \"" + zshGlob(f.FileGlob) + "\""
	case flagDir:
		return ":" + f.Long + ":_files -/"
	default:
		return ":" + f.Long + ": "
	}
}

// zshGlob turns "*.txt,*.csv" into "*.(txt|csv)".
func zshGlob(globs string) string {
	var exts []string
	for _, glob := range splitGlobs(globs) {
		ext, ok := strings.CutPrefix(glob, "*.")
		if !ok {
			return strings.Join(splitGlobs(globs), " ")
		}
		exts = append(exts, ext)
	}
	if len(exts) == 1 {
		return "*." + exts[0]
	}
	return "*.(" + strings.Join(exts, "|") + ")"
}

// zshEscape escapes text for use inside a single-quoted _arguments spec.
func zshEscape(s string) string {
	return strings.NewReplacer(
		"'", `'\''`,
		"[", `\[`,
		"]", `\]`,
		":", `\:`,
	).Replace(s)
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

func generateFish(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("# fish completion for labelsheet\n\n")
	b.WriteString("complete -c labelsheet -f\n\n")

	names := strings.Join(commandNames(cmds), " ")
	for _, cmd := range cmds {
		fmt.Fprintf(&b, "complete -c labelsheet -n '__fish_use_subcommand' -a %s -d '%s'\n", cmd.Name, fishEscape(cmd.Desc))
	}
	b.WriteString("\n")

	for i, cmd := range cmds {
		cond := "__fish_seen_subcommand_from " + cmd.Name
		if i == 0 {
			// The default command also owns flags typed before any command.
			others := strings.TrimPrefix(names, cmd.Name+" ")
			cond = "not __fish_seen_subcommand_from " + others
		}

		if len(cmd.Args) > 0 {
			fmt.Fprintf(&b, "complete -c labelsheet -n '%s' -a '%s'\n", cond, strings.Join(cmd.Args, " "))
		}
		for _, f := range cmd.Flags {
			b.WriteString(fishFlagLine(cond, f))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// fishFlagLine returns one complete command for a flag.
func fishFlagLine(cond string, f flagDef) string {
	line := fmt.Sprintf("complete -c labelsheet -n '%s'", cond)
	if f.Short != "" {
		line += " -s " + f.Short
	}
	line += " -l " + f.Long

	switch f.Type {
	case flagEnum:
		line += " -x -a '" + strings.Join(f.Values, " ") + "'"
	case flagFile:
		line += " -r -F"
	case flagDir:
		line += " -x -a '(__fish_complete_directories)'"
	case flagString, flagInt:
		line += " -x"
	}

	return line + " -d '" + fishEscape(f.Desc) + "'\n"
}

// fishEscape escapes text for a single-quoted fish string.
func fishEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, "'", `\'`).Replace(s)
}

// ---------------------------------------------------------------------------
// PowerShell
// ---------------------------------------------------------------------------

func generatePowerShell(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("# PowerShell completion for labelsheet\n\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName labelsheet -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")

	b.WriteString("    $commands = [ordered]@{\n")
	for _, cmd := range cmds {
		fmt.Fprintf(&b, "        '%s' = '%s'\n", cmd.Name, psEscape(cmd.Desc))
	}
	b.WriteString("    }\n\n")

	b.WriteString("    $flags = @{\n")
	for _, cmd := range cmds {
		if len(cmd.Flags) == 0 {
			continue
		}
		fmt.Fprintf(&b, "        '%s' = @(\n", cmd.Name)
		for _, f := range cmd.Flags {
			fmt.Fprintf(&b, "            @('--%s', '%s')\n", f.Long, psEscape(f.Desc))
			if f.Short != "" {
				fmt.Fprintf(&b, "            @('-%s', '%s')\n", f.Short, psEscape(f.Desc))
			}
		}
		b.WriteString("        )\n")
	}
	b.WriteString("    }\n\n")

	b.WriteString("    $values = @{\n")
	for _, cmd := range cmds {
		if len(cmd.Args) > 0 {
			fmt.Fprintf(&b, "        '%s' = @(%s)\n", cmd.Name, psList(cmd.Args))
		}
	}
	b.WriteString("    }\n\n")

	b.WriteString("    $elements = @($commandAst.CommandElements | Select-Object -Skip 1 | ForEach-Object { $_.ToString() })\n")
	b.WriteString("    if ($wordToComplete -ne '') { $elements = @($elements | Select-Object -SkipLast 1) }\n\n")

	b.WriteString("    if ($elements.Count -eq 0 -and $wordToComplete -notlike '-*') {\n")
	b.WriteString("        $commands.GetEnumerator() | Where-Object { $_.Key -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_.Key, $_.Key, 'ParameterValue', $_.Value)\n")
	b.WriteString("        }\n")
	b.WriteString("        return\n")
	b.WriteString("    }\n\n")

	fmt.Fprintf(&b, "    $cmd = '%s'\n", cmds[0].Name)
	b.WriteString("    if ($elements.Count -gt 0 -and $elements[0] -notlike '-*') { $cmd = $elements[0] }\n\n")

	b.WriteString("    if ($values.ContainsKey($cmd)) {\n")
	b.WriteString("        $values[$cmd] | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	b.WriteString("        }\n")
	b.WriteString("        return\n")
	b.WriteString("    }\n\n")

	b.WriteString("    if ($flags.ContainsKey($cmd)) {\n")
	b.WriteString("        $flags[$cmd] | Where-Object { $_[0] -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_[0], $_[0], 'ParameterName', $_[1])\n")
	b.WriteString("        }\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// psEscape escapes text for a single-quoted PowerShell string.
func psEscape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// psList renders values as a PowerShell array body.
func psList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + psEscape(v) + "'"
	}
	return strings.Join(quoted, ", ")
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, cmd := range cmds {
		names[i] = cmd.Name
	}
	return names
}

// flagWords returns every spelling of every flag, sorted.
func flagWords(flags []flagDef) []string {
	var words []string
	for _, f := range flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	sort.Strings(words)
	return words
}

func splitGlobs(globs string) []string {
	var out []string
	for _, g := range strings.Split(globs, ",") {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}
