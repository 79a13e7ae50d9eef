package labelsheet

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/go-labelsheet/internal/fileutil"
)

// Input describes one label sheet.
type Input struct {
	Names      []string   // sample names, in sheet order
	Suffixes   [][]string // suffix groups combined with every name, in order
	Skip       int        // labels already used at the top of the first sheet
	Date       string     // "today", "today:FORMAT", "none" or literal text
	DateFormat string     // re-renders a literal Date when set
	Output     string     // output path; .tex and .pdf share its stem
	TeXOnly    bool       // write the .tex file without typesetting
	Open       bool       // show the PDF once typeset
}

// Result reports what Generate wrote.
type Result struct {
	TeXPath    string
	PDFPath    string   // empty when typesetting was skipped
	SuffixPath string   // file with suffixed names, empty without suffixes
	Names      []string // names after suffix expansion
	Date       string   // resolved date text
	Pages      int
	Labels     int      // filled labels, skipped slots excluded
	Overlong   []string // names likely too long for one label
	OpenErr    error    // viewer failure; the sheet itself is fine
}

// Option configures a Generator.
type Option func(*Generator)

// generatorConfig holds internal configuration for Generator.
type generatorConfig struct {
	preamble      string
	assetPath     string
	maxNameLength int
}

// Generator turns name lists into typeset label sheets.
// Create with NewGenerator(); a Generator is safe to reuse.
type Generator struct {
	cfg         generatorConfig
	assetLoader AssetLoader
	typesetter  *Typesetter
	opener      Opener
	now         func() time.Time
}

// WithTypesetter selects the LaTeX engine binary (default xelatex).
func WithTypesetter(command string) Option {
	return func(g *Generator) {
		if command != "" {
			g.typesetter.Command = command
		}
	}
}

// WithRunner replaces the process runner used for typesetting.
func WithRunner(r CommandRunner) Option {
	return func(g *Generator) {
		g.typesetter.Runner = r
	}
}

// WithLookPath replaces the binary lookup used to find the typesetter.
func WithLookPath(lookPath func(string) (string, error)) Option {
	return func(g *Generator) {
		g.typesetter.LookPath = lookPath
	}
}

// WithTimeout bounds each typesetting run.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("labelsheet: WithTimeout duration must be positive")
	}
	return func(g *Generator) {
		g.typesetter.Timeout = d
	}
}

// WithPreamble selects a preamble by name (default l7871).
func WithPreamble(name string) Option {
	return func(g *Generator) {
		if name != "" {
			g.cfg.preamble = name
		}
	}
}

// WithAssetPath loads preambles from dir/preambles/ before the built-in ones.
func WithAssetPath(dir string) Option {
	return func(g *Generator) {
		g.cfg.assetPath = dir
	}
}

// WithAssetLoader sets a custom preamble loader. Overrides WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(g *Generator) {
		g.assetLoader = loader
	}
}

// WithOpener replaces the PDF viewer launcher.
func WithOpener(o Opener) Option {
	return func(g *Generator) {
		g.opener = o
	}
}

// WithClock sets the time source for "today" dates.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithMaxNameLength sets the length above which names are reported as
// overlong. Zero keeps MaxRecommendedNameLength.
func WithMaxNameLength(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.cfg.maxNameLength = n
		}
	}
}

// NewGenerator creates a Generator with default configuration.
// Returns error if a custom asset path is invalid.
func NewGenerator(opts ...Option) (*Generator, error) {
	g := &Generator{
		cfg: generatorConfig{
			preamble:      DefaultPreamble,
			maxNameLength: MaxRecommendedNameLength,
		},
		typesetter: NewTypesetter(DefaultTypesetter),
		opener:     NewSystemOpener(),
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.assetLoader == nil {
		loader, err := NewAssetLoader(g.cfg.assetPath)
		if err != nil {
			return nil, err
		}
		g.assetLoader = loader
	}

	return g, nil
}

// Typesetter returns the engine the generator runs.
func (g *Generator) Typesetter() *Typesetter {
	return g.typesetter
}

// OverlongNames returns the names of in, after suffix expansion, that are
// likely too long for one label.
func (g *Generator) OverlongNames(in Input) []string {
	return OverlongNames(ApplySuffixGroups(in.Names, in.Suffixes), g.cfg.maxNameLength)
}

// Generate writes the label sheet for in and, unless in.TeXOnly is set,
// typesets it. An existing .tex file at the output path is replaced.
func (g *Generator) Generate(ctx context.Context, in Input) (*Result, error) {
	if len(in.Names) == 0 {
		return nil, ErrNoNames
	}
	if in.Output == "" {
		return nil, ErrNoOutput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	date, err := g.resolveDate(in.Date, in.DateFormat)
	if err != nil {
		return nil, err
	}

	res := &Result{Date: date}

	res.Names = ApplySuffixGroups(in.Names, in.Suffixes)
	slots, err := PadSkipped(res.Names, in.Skip)
	if err != nil {
		return nil, err
	}

	if hasSuffixes(in.Suffixes) {
		res.SuffixPath = fileutil.AppendToStem(in.Output, "_suffix")
		if err := WriteNames(res.SuffixPath, res.Names); err != nil {
			return nil, err
		}
	}
	res.Labels = len(res.Names)
	res.Pages = PageCount(len(slots))
	res.Overlong = OverlongNames(res.Names, g.cfg.maxNameLength)

	preamble, err := g.assetLoader.LoadPreamble(g.cfg.preamble)
	if err != nil {
		return nil, err
	}

	res.TeXPath = fileutil.ReplaceExtension(in.Output, ".tex")
	if err := writeSheetFile(res.TeXPath, preamble, slots, date); err != nil {
		return nil, err
	}

	if in.TeXOnly {
		return res, nil
	}

	res.PDFPath, err = g.typesetter.Typeset(ctx, res.TeXPath)
	if err != nil {
		return nil, err
	}

	if in.Open && g.opener != nil {
		res.OpenErr = g.opener.Open(ctx, res.PDFPath)
	}

	return res, nil
}

// resolveDate applies format to "today" or to a literal date; "none" and
// "today:FORMAT" ignore it.
func (g *Generator) resolveDate(value, format string) (string, error) {
	if format != "" {
		switch {
		case value == "" || value == DateToday:
			value = DateToday + ":" + format
		case value == DateNone || isTodayKeyword(value):
		default:
			return ReformatDate(value, format)
		}
	}
	return ResolveDate(value, g.now())
}

func hasSuffixes(groups [][]string) bool {
	for _, group := range groups {
		if len(group) > 0 {
			return true
		}
	}
	return false
}

// writeSheetFile renders the whole document before touching the file so a
// failed render leaves any previous sheet intact.
func writeSheetFile(path, preamble string, slots []Slot, date string) error {
	var buf bytes.Buffer
	if err := WriteSheet(&buf, preamble, slots, date); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteSheet, err)
		}
	}
	// #nosec G306 -- LaTeX source meant to be shared
	if err := os.WriteFile(path, buf.Bytes(), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteSheet, err)
	}
	return nil
}
