package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-labelsheet"
	"github.com/alnah/go-labelsheet/internal/config"
	"github.com/alnah/go-labelsheet/internal/fileutil"
	"github.com/alnah/go-labelsheet/internal/hints"
)

// Prompt texts shown in interactive mode.
const (
	interactiveHint = "Run with --interactive to be asked for every option:\n\n" +
		"    labelsheet --interactive\n\n" +
		"Run 'labelsheet help generate' for all flags.\n"

	askInputFile = "Enter the name of the file containing your sample names " +
		"(one per line) followed by [ENTER] to confirm: "
	askRetryInput = `Do you want to type the file name again? Type "yes" (default) or "no": `
	askContinue   = `Do you want to continue with these names? Type "yes" (default) or "no": `
	askOutputFile = "\nType the name of your output file without extension " +
		`(e.g. "plate" instead of "plate.txt"). Press [ENTER] to use the name of the input file (default): `
	askAddSuffixes = "\n" + `Do you want to add suffixes to your sample names? Type "yes" or "no" (default): `
	askSuffixGroup = "\nEnter a group of suffixes: "
	askMoreGroups  = "\n" + `Do you want to add another group of suffixes? Type "yes" or "no" (default): `

	suffixExplanation = "\n==========================================\n\n" +
		"You will now supply groups of suffixes (e.g. treatment names or replicate " +
		`numbers) separated by spaces: "CTRL TREAT1 TREAT2 TREAT3". Each suffix is ` +
		"combined with each sample name (e.g. Strain1-TREAT1, Strain1-TREAT2 ... " +
		"Strain10-TREAT3). You may supply several groups one after the other; the " +
		"result would be something like Strain1-TREAT1-Replicate1, " +
		"Strain1-TREAT1-Replicate2 ..."

	askDate = "\nDo you want to print a date on the second line of each label?\n" +
		`- For today's date in YYYY-MM-DD format (default), leave empty or enter "today"` + "\n" +
		`- Enter "today:FORMAT" for another format, e.g. "today:DD.MM.YYYY" or "today:long"` + "\n" +
		`- Type "none" to leave the date line empty` + "\n" +
		`- Any other input is printed verbatim as the date, e.g. "2023"` + "\n" +
		"Your choice: "

	overlongWarning = "Warning: Some of the sample names are overly long, which might " +
		"disrupt the final layout. Please inspect the resulting PDF carefully before printing"
)

// generateRun carries the state of one generate invocation.
type generateRun struct {
	flags  *generateFlags
	cfg    *config.Config
	env    *Environment
	out    *printer
	prompt *prompter
}

// runGenerate orchestrates sheet generation: configuration, prompts,
// generator call and reporting.
func runGenerate(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseGenerateFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printGenerateUsage(env.Stdout)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v%s", ErrInvalidFlag, err, hints.ForUsage("generate"))
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: unexpected argument %q (use --input-file)", ErrInvalidFlag, positional[0])
	}

	start := env.Now()
	out := newPrinter(env, flags.common)

	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	r := &generateRun{flags: flags, cfg: cfg, env: env, out: out, prompt: newPrompter(env)}

	err = r.run(ctx)
	if errors.Is(err, errAborted) {
		out.info("Aborted.")
		return nil
	}
	if err != nil {
		return err
	}

	out.detail("Done in %s", env.Now().Sub(start).Round(time.Millisecond))
	return nil
}

func (r *generateRun) run(ctx context.Context) error {
	interactive := r.flags.interactive

	gen, err := newGenerator(r.cfg, r.env)
	if err != nil {
		return err
	}
	if !r.cfg.Typesetter.TeXOnly {
		// fail before any prompt is answered
		if _, err := gen.Typesetter().Path(); err != nil {
			return withGenerateHint(err, "")
		}
	}

	if r.cfg.Input.File == "" && !interactive {
		r.out.warn("%s", interactiveHint)
	}

	inputPath, err := r.resolveInput()
	if err != nil {
		return err
	}

	names, err := labelsheet.LoadNames(inputPath)
	if err != nil {
		return err
	}
	r.out.info("\nYour file contains %d names:\n%s", len(names), labelsheet.Preview(names))

	output, err := r.resolveOutput(inputPath)
	if err != nil {
		return err
	}

	suffixes, err := r.resolveSuffixes()
	if err != nil {
		return err
	}

	skip, err := r.resolveSkip()
	if err != nil {
		return err
	}

	date, err := r.resolveDate()
	if err != nil {
		return err
	}

	in := labelsheet.Input{
		Names:      names,
		Suffixes:   suffixes,
		Skip:       skip,
		Date:       date,
		DateFormat: r.cfg.Labels.DateFormat,
		Output:     output,
		TeXOnly:    r.cfg.Typesetter.TeXOnly,
		Open:       !r.cfg.Viewer.Disabled,
	}

	// warned before typesetting so a failed run still shows it
	if overlong := gen.OverlongNames(in); len(overlong) > 0 {
		r.out.fail("\n%s", overlongWarning)
		r.out.detail("Overlong names: %s", strings.Join(overlong, ", "))
	}

	r.out.detail("Typesetter: %s (timeout %s)", gen.Typesetter().Command, gen.Typesetter().Timeout)

	res, err := gen.Generate(ctx, in)
	if err != nil {
		return withGenerateHint(err, output)
	}

	r.report(res)
	return nil
}

// resolveInput returns the path of an existing names file, prompting when
// none was configured and the user can answer.
func (r *generateRun) resolveInput() (string, error) {
	interactive := r.flags.interactive
	file := r.cfg.Input.File
	ask := file == ""

	for {
		if ask {
			if !interactive && !r.env.IsTerminal() {
				return "", fmt.Errorf("%w: use --input-file or --interactive", ErrNoInput)
			}
			answer, err := r.prompt.ask(askInputFile)
			if err != nil {
				return "", err
			}
			file = answer
		}

		path := withNameListExtension(file)
		if fileutil.FileExists(path) {
			return path, nil
		}

		wd, _ := r.env.Getwd()
		if !interactive {
			return "", fmt.Errorf("%w: %s%s", ErrInputNotFound, path, hints.ForInputNotFound(wd))
		}

		r.out.fail("\nFile %s not found. Make sure the file is present in your working directory:\n%s\n"+
			`To change your working directory type "cd /path/to/your/directory" then hit [ENTER]`, path, wd)

		again, err := r.prompt.confirm(askRetryInput, true)
		if err != nil {
			return "", err
		}
		if !again {
			return "", errAborted
		}
		ask = true
	}
}

// withNameListExtension appends .txt unless name already ends in a supported
// name list extension.
func withNameListExtension(name string) string {
	if labelsheet.IsNameListExtension(filepath.Ext(name)) {
		return name
	}
	return name + labelsheet.ExtText
}

// resolveOutput returns the absolute output path. Without --output-file the
// input name is used; interactive mode asks first.
func (r *generateRun) resolveOutput(inputPath string) (string, error) {
	name := r.flags.input.output

	if name == "" && r.flags.interactive {
		ok, err := r.prompt.confirm(askContinue, true)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", errAborted
		}
		name, err = r.prompt.ask(askOutputFile)
		if err != nil {
			return "", err
		}
	}

	if name == "" {
		name = inputPath
	}
	if r.cfg.Output.Dir != "" {
		name = filepath.Join(r.cfg.Output.Dir, filepath.Base(name))
	}

	abs, err := filepath.Abs(name)
	if err != nil {
		return "", fmt.Errorf("resolving output path: %w", err)
	}
	return abs, nil
}

// resolveSuffixes returns the configured suffix groups plus those entered
// at the prompt.
func (r *generateRun) resolveSuffixes() ([][]string, error) {
	var groups [][]string
	for _, s := range r.cfg.Labels.Suffixes {
		if group := labelsheet.ParseSuffixGroup(s); len(group) > 0 {
			groups = append(groups, group)
		}
	}

	add := r.flags.labels.addSuffixes
	if !add && r.flags.interactive && !r.flags.isSet("suffixes") {
		var err error
		add, err = r.prompt.confirm(askAddSuffixes, false)
		if err != nil {
			return nil, err
		}
	}
	if !add {
		return groups, nil
	}

	r.out.info("%s", suffixExplanation)

	entered := 0
	for {
		answer, err := r.prompt.ask(askSuffixGroup)
		if err != nil {
			return nil, err
		}
		if group := labelsheet.ParseSuffixGroup(answer); len(group) > 0 {
			groups = append(groups, group)
			entered++
		} else {
			r.out.fail("\nNo suffix group entered.")
		}

		more, err := r.prompt.confirm(askMoreGroups, false)
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}

	if entered == 0 {
		r.out.fail("\nNo suffixes entered. Skipping addition of suffixes")
	}
	return groups, nil
}

// resolveSkip asks for the skip count in interactive mode unless --skip was
// given; the configured value is the default answer.
func (r *generateRun) resolveSkip() (int, error) {
	skip := r.cfg.Labels.Skip
	if !r.flags.interactive || r.flags.isSet("skip") {
		return skip, nil
	}
	question := fmt.Sprintf("\nHow many labels do you want to skip, e.g. because they were "+
		"already used before (default = %d): ", skip)
	return r.prompt.askCount(question, skip)
}

// resolveDate asks for the date in interactive mode unless --date was given.
// Answers that cannot be resolved are asked again.
func (r *generateRun) resolveDate() (string, error) {
	date := r.cfg.Labels.Date
	if !r.flags.interactive || r.flags.isSet("date") {
		return date, nil
	}

	for {
		answer, err := r.prompt.ask(askDate)
		if err != nil {
			return "", err
		}
		if answer == "" {
			return date, nil
		}
		if _, err := labelsheet.ResolveDate(answer, r.env.Now()); err != nil {
			r.out.fail("%v", err)
			continue
		}
		return answer, nil
	}
}

// report prints what was written and any non-fatal problems.
func (r *generateRun) report(res *labelsheet.Result) {
	if res.SuffixPath != "" {
		r.out.info("Suffixed names written to %s", res.SuffixPath)
	}

	r.out.success("%d labels on %d page(s), dated %q", res.Labels, res.Pages, res.Date)
	r.out.success("Wrote %s", res.TeXPath)
	if res.PDFPath != "" {
		r.out.success("Wrote %s", res.PDFPath)
	}

	if res.OpenErr != nil {
		r.out.warn("warning: %v%s", res.OpenErr, hints.ForViewer())
	}
}

// withGenerateHint appends an actionable hint to typesetting errors.
func withGenerateHint(err error, output string) error {
	switch {
	case errors.Is(err, labelsheet.ErrTypesetterNotFound):
		return fmt.Errorf("%w%s", err, hints.ForTypesetterNotFound())
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w%s", err, hints.ForTimeout())
	case errors.Is(err, labelsheet.ErrTypesetFailed):
		return fmt.Errorf("%w%s", err, hints.ForTypesetFailed(fileutil.ReplaceExtension(output, ".log")))
	default:
		return err
	}
}

// loadConfig loads the named config, falling back to LABELSHEET_CONFIG and
// then to defaults.
func loadConfig(name string, env *envConfig) (*config.Config, error) {
	if name == "" {
		name = env.ConfigPath
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(configCandidates(name)))
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// configCandidates lists where a config name is searched, for hints.
func configCandidates(name string) []string {
	if fileutil.IsFilePath(name) {
		return []string{name}
	}
	paths := []string{name + ".yaml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, config.AppName, name+".yaml"))
	}
	return paths
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *generateFlags, cfg *config.Config) {
	if flags.input.file != "" {
		cfg.Input.File = flags.input.file
	}

	if flags.labels.date != "" {
		cfg.Labels.Date = flags.labels.date
	}
	if flags.labels.dateFormat != "" {
		cfg.Labels.DateFormat = flags.labels.dateFormat
	}
	if flags.isSet("skip") {
		cfg.Labels.Skip = flags.labels.skip
	}
	if len(flags.labels.suffixes) > 0 {
		cfg.Labels.Suffixes = flags.labels.suffixes
	}

	if flags.typeset.typesetter != "" {
		cfg.Typesetter.Command = flags.typeset.typesetter
	}
	if flags.typeset.timeout != "" {
		cfg.Typesetter.Timeout = flags.typeset.timeout
	}
	if flags.typeset.texOnly {
		cfg.Typesetter.TeXOnly = true
	}
	if flags.typeset.noOpen {
		cfg.Viewer.Disabled = true
	}

	if flags.assets.preamble != "" {
		cfg.Assets.Preamble = flags.assets.preamble
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}
}

// newGenerator builds a generator from validated config and the environment.
func newGenerator(cfg *config.Config, env *Environment) (*labelsheet.Generator, error) {
	opts := []labelsheet.Option{
		labelsheet.WithTypesetter(cfg.Typesetter.Command),
		labelsheet.WithTimeout(cfg.TimeoutOrDefault()),
		labelsheet.WithPreamble(cfg.Assets.Preamble),
		labelsheet.WithAssetPath(cfg.Assets.BasePath),
		labelsheet.WithMaxNameLength(cfg.Labels.MaxNameLength),
	}
	if env.Now != nil {
		opts = append(opts, labelsheet.WithClock(env.Now))
	}
	if env.Runner != nil {
		opts = append(opts, labelsheet.WithRunner(env.Runner))
	}
	if env.LookPath != nil {
		opts = append(opts, labelsheet.WithLookPath(env.LookPath))
	}
	if env.Opener != nil {
		opts = append(opts, labelsheet.WithOpener(env.Opener))
	}

	gen, err := labelsheet.NewGenerator(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating generator: %w", err)
	}
	return gen, nil
}
