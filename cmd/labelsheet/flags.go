package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// inputFlags holds where names come from and where the sheet goes.
type inputFlags struct {
	file   string
	output string
}

// labelFlags holds label content flags.
type labelFlags struct {
	addSuffixes bool
	suffixes    []string
	skip        int
	date        string
	dateFormat  string
}

// typesetFlags holds LaTeX engine and viewer flags.
type typesetFlags struct {
	texOnly    bool
	noOpen     bool
	typesetter string
	timeout    string
}

// assetFlags holds preamble selection flags.
type assetFlags struct {
	preamble  string
	assetPath string
}

// generateFlags holds all flags for the generate command.
type generateFlags struct {
	common      commonFlags
	input       inputFlags
	labels      labelFlags
	typeset     typesetFlags
	assets      assetFlags
	interactive bool

	// set records the flags given on the command line.
	set map[string]bool
}

// isSet reports whether the named flag was given on the command line.
func (f *generateFlags) isSet(name string) bool {
	return f.set[name]
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show typesetter details and timing")
}

// addInputFlags adds input/output flags to a FlagSet.
func addInputFlags(fs *flag.FlagSet, f *inputFlags) {
	fs.StringVarP(&f.file, "input-file", "f", "", "file with one sample name per line (.txt, .csv, .xlsx)")
	fs.StringVarP(&f.output, "output-file", "o", "", "output name; .tex and .pdf share its stem (default: input name)")
}

// addLabelFlags adds label content flags to a FlagSet.
func addLabelFlags(fs *flag.FlagSet, f *labelFlags) {
	fs.BoolVarP(&f.addSuffixes, "add-suffixes", "a", false, "prompt for groups of suffixes to combine with every name")
	fs.StringArrayVar(&f.suffixes, "suffixes", nil, "space-separated suffix group, repeatable")
	fs.IntVarP(&f.skip, "skip", "s", 0, "labels to skip on the first sheet")
	fs.StringVarP(&f.date, "date", "d", "", "\"today\", \"today:FORMAT\", \"none\" or literal text (default: today)")
	fs.StringVar(&f.dateFormat, "date-format", "", "format for today or a literal date: tokens or iso, european, us, long")
}

// addTypesetFlags adds typesetting flags to a FlagSet.
func addTypesetFlags(fs *flag.FlagSet, f *typesetFlags) {
	fs.BoolVar(&f.texOnly, "tex-only", false, "write the .tex file without typesetting")
	fs.BoolVar(&f.noOpen, "no-open", false, "do not open the PDF when done")
	fs.StringVar(&f.typesetter, "typesetter", "", "LaTeX engine (default: xelatex)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "typesetting timeout (e.g., 90s, 2m)")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.preamble, "preamble", "", "preamble name (default: l7871)")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with preambles/*.tex")
}

// newGenerateFlagSet registers every generate flag on a new FlagSet.
// Shared by parseGenerateFlags and shell completion.
func newGenerateFlagSet(f *generateFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)

	addInputFlags(fs, &f.input)
	addLabelFlags(fs, &f.labels)
	fs.BoolVarP(&f.interactive, "interactive", "i", false, "prompt for every option not given as a flag")
	addTypesetFlags(fs, &f.typeset)
	addAssetFlags(fs, &f.assets)
	addCommonFlags(fs, &f.common)

	return fs
}

// parseGenerateFlags parses generate command flags and returns positional args.
// Parse errors are returned, not printed; -h returns flag.ErrHelp.
func parseGenerateFlags(args []string) (*generateFlags, []string, error) {
	f := &generateFlags{set: make(map[string]bool)}
	fs := newGenerateFlagSet(f)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	fs.Visit(func(fl *flag.Flag) {
		f.set[fl.Name] = true
	})

	return f, fs.Args(), nil
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	json       bool
	typesetter string
}

// newDoctorFlagSet registers doctor flags on a new FlagSet.
func newDoctorFlagSet(f *doctorFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.BoolVar(&f.json, "json", false, "print results as JSON")
	fs.StringVar(&f.typesetter, "typesetter", "", "LaTeX engine to check (default: xelatex)")
	return fs
}

// newConfigFlagSet registers config command flags on a new FlagSet.
func newConfigFlagSet(f *commonFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	return fs
}
