package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: labelsheet [command] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  generate     Generate a label sheet from a list of names (default)")
	fmt.Fprintln(w, "  doctor       Check the LaTeX installation and PDF viewer")
	fmt.Fprintln(w, "  config       Print the effective configuration as YAML")
	fmt.Fprintln(w, "  completion   Generate shell completion script")
	fmt.Fprintln(w, "  version      Show version information")
	fmt.Fprintln(w, "  help         Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'labelsheet help <command>' for details on a specific command.")
}

// printGenerateUsage prints usage for the generate command.
func printGenerateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: labelsheet [generate] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate a printable sheet of Avery-Zweckform L7871 labels (7 x 27 per A4")
	fmt.Fprintln(w, "page) with one sample name and a date per label.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -f, --input-file <file>   Names file: .txt (one per line), .csv (\"name\"")
	fmt.Fprintln(w, "                            column) or .xlsx (first column); .txt is added")
	fmt.Fprintln(w, "                            when no extension is given")
	fmt.Fprintln(w, "  -o, --output-file <name>  Output name (default: input name)")
	fmt.Fprintln(w, "  -i, --interactive         Ask for every option not given as a flag")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Labels:")
	fmt.Fprintln(w, "  -a, --add-suffixes        Prompt for suffix groups (S1 x \"A B\" = S1-A, S1-B)")
	fmt.Fprintln(w, "      --suffixes <\"A B\">    Suffix group, repeatable")
	fmt.Fprintln(w, "  -s, --skip <n>            Labels already used on the first sheet")
	fmt.Fprintln(w, "  -d, --date <s>            Date: \"today\", \"today:FORMAT\", \"none\", or literal")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w, "                            Use [text] to escape literals: [Batch] YYYY")
	fmt.Fprintln(w, "      --date-format <fmt>   Format for today or a literal date (\"March 3 2021\")")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Typesetting:")
	fmt.Fprintln(w, "      --typesetter <bin>    LaTeX engine (default: xelatex)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Typesetting timeout (default: 2m)")
	fmt.Fprintln(w, "      --tex-only            Write the .tex file without typesetting")
	fmt.Fprintln(w, "      --no-open             Do not open the PDF when done")
	fmt.Fprintln(w, "      --preamble <name>     Preamble name (default: l7871)")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with preambles/*.tex")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors and warnings")
	fmt.Fprintln(w, "  -v, --verbose             Show typesetter details and timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  LABELSHEET_CONFIG, LABELSHEET_INPUT_FILE, LABELSHEET_OUTPUT_DIR,")
	fmt.Fprintln(w, "  LABELSHEET_DATE, LABELSHEET_DATE_FORMAT, LABELSHEET_SKIP,")
	fmt.Fprintln(w, "  LABELSHEET_TYPESETTER, LABELSHEET_TIMEOUT, LABELSHEET_NO_OPEN,")
	fmt.Fprintln(w, "  LABELSHEET_ASSET_PATH, LABELSHEET_PREAMBLE")
	fmt.Fprintln(w, "  A .env file in the working directory is read first.")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: labelsheet doctor [--json] [--typesetter <bin>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that the LaTeX engine, the required LaTeX packages and a PDF viewer")
	fmt.Fprintln(w, "are available. Exits 1 when a required component is missing.")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: labelsheet config [-c <name>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the configuration generate would use (defaults, config file and")
	fmt.Fprintln(w, "LABELSHEET_* variables) as YAML. The output is a valid config file.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "generate":
		printGenerateUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: labelsheet version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: labelsheet help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
