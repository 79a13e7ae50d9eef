package labelsheet

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var fixedNow = func() time.Time { return time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC) }

type recordingOpener struct {
	opened []string
	err    error
}

func (o *recordingOpener) Open(_ context.Context, path string) error {
	o.opened = append(o.opened, path)
	return o.err
}

func newTestGenerator(t *testing.T, runner *fakeRunner, opener Opener, opts ...Option) *Generator {
	t.Helper()
	base := []Option{
		WithRunner(runner),
		WithLookPath(lookPathOK),
		WithOpener(opener),
		WithClock(fixedNow),
	}
	g, err := NewGenerator(append(base, opts...)...)
	if err != nil {
		t.Fatalf("NewGenerator() error: %v", err)
	}
	return g
}

// ---------------------------------------------------------------------------
// TestGenerator_Generate - Full pipeline with fake engine
// ---------------------------------------------------------------------------

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	runner := &fakeRunner{makePDF: true}
	opener := &recordingOpener{}
	g := newTestGenerator(t, runner, opener)

	res, err := g.Generate(context.Background(), Input{
		Names:  []string{"S1", "S2"},
		Skip:   3,
		Date:   "today",
		Output: filepath.Join(dir, "plate.txt"),
		Open:   true,
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if res.TeXPath != filepath.Join(dir, "plate.tex") {
		t.Errorf("TeXPath = %q", res.TeXPath)
	}
	if res.PDFPath != filepath.Join(dir, "plate.pdf") {
		t.Errorf("PDFPath = %q", res.PDFPath)
	}
	if res.Pages != 1 || res.Labels != 2 {
		t.Errorf("Pages, Labels = %d, %d; want 1, 2", res.Pages, res.Labels)
	}
	if res.Date != "2024-03-15" {
		t.Errorf("Date = %q", res.Date)
	}
	if res.SuffixPath != "" {
		t.Errorf("SuffixPath = %q, want empty without suffixes", res.SuffixPath)
	}
	if diff := cmp.Diff([]string{res.PDFPath}, opener.opened); diff != "" {
		t.Errorf("opened mismatch (-want +got):\n%s", diff)
	}

	tex, err := os.ReadFile(res.TeXPath)
	if err != nil {
		t.Fatalf("reading .tex: %v", err)
	}
	wantRow := "\t" + strings.Repeat(EmptyLabel+" & ", 3) + `S1 \par 2024-03-15 & S2 \par 2024-03-15 & ` + EmptyLabel + " & " + EmptyLabel + ` \\ \interrowfill`
	if !strings.Contains(string(tex), wantRow+"\n") {
		t.Errorf(".tex first row missing; want %q", wantRow)
	}
	if !strings.HasPrefix(string(tex), `\batchmode`) {
		t.Error(".tex should start with the embedded preamble")
	}
}

func TestGenerator_Generate_Suffixes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	g := newTestGenerator(t, &fakeRunner{makePDF: true}, &recordingOpener{})

	res, err := g.Generate(context.Background(), Input{
		Names:    []string{"S1", "S2"},
		Suffixes: [][]string{{"A", "B"}},
		Output:   filepath.Join(dir, "plate.txt"),
		TeXOnly:  true,
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if res.SuffixPath != filepath.Join(dir, "plate_suffix.txt") {
		t.Errorf("SuffixPath = %q", res.SuffixPath)
	}
	data, err := os.ReadFile(res.SuffixPath)
	if err != nil {
		t.Fatalf("reading suffix file: %v", err)
	}
	if string(data) != "S1-A\nS1-B\nS2-A\nS2-B\n" {
		t.Errorf("suffix file = %q", data)
	}
	if res.Labels != 4 {
		t.Errorf("Labels = %d, want 4", res.Labels)
	}
}

func TestGenerator_Generate_TeXOnly(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{makePDF: true}
	opener := &recordingOpener{}
	g := newTestGenerator(t, runner, opener)

	res, err := g.Generate(context.Background(), Input{
		Names:   []string{"S1"},
		Output:  filepath.Join(t.TempDir(), "out"),
		TeXOnly: true,
		Open:    true,
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if res.PDFPath != "" {
		t.Errorf("PDFPath = %q, want empty", res.PDFPath)
	}
	if len(runner.calls) != 0 {
		t.Errorf("engine ran %d times, want 0", len(runner.calls))
	}
	if len(opener.opened) != 0 {
		t.Error("viewer should not open without a PDF")
	}
	if !strings.HasSuffix(res.TeXPath, "out.tex") {
		t.Errorf("TeXPath = %q", res.TeXPath)
	}
}

func TestGenerator_Generate_OverwritesPreviousSheet(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "plate.tex", "old content that is much longer than nothing")
	g := newTestGenerator(t, &fakeRunner{}, &recordingOpener{})

	res, err := g.Generate(context.Background(), Input{
		Names: []string{"S1"}, Output: filepath.Join(dir, "plate"), TeXOnly: true,
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	data, _ := os.ReadFile(res.TeXPath)
	if strings.Contains(string(data), "old content") {
		t.Error("previous .tex content was kept")
	}
}

func TestGenerator_Generate_ViewerFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	opener := &recordingOpener{err: ErrOpenViewer}
	g := newTestGenerator(t, &fakeRunner{makePDF: true}, opener)

	res, err := g.Generate(context.Background(), Input{
		Names: []string{"S1"}, Output: filepath.Join(t.TempDir(), "p"), Open: true,
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if !errors.Is(res.OpenErr, ErrOpenViewer) {
		t.Errorf("OpenErr = %v, want ErrOpenViewer", res.OpenErr)
	}
}

func TestGenerator_Generate_Overlong(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 12)
	g := newTestGenerator(t, &fakeRunner{}, &recordingOpener{}, WithMaxNameLength(10))

	res, err := g.Generate(context.Background(), Input{
		Names: []string{"short", long}, Output: filepath.Join(t.TempDir(), "p"), TeXOnly: true,
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if diff := cmp.Diff([]string{long}, res.Overlong); diff != "" {
		t.Errorf("Overlong mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerator_OverlongNames(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, &fakeRunner{}, &recordingOpener{}, WithMaxNameLength(8))

	got := g.OverlongNames(Input{
		Names:    []string{"S1", "Strain10"},
		Suffixes: [][]string{{"A"}},
	})
	if diff := cmp.Diff([]string{"Strain10-A"}, got); diff != "" {
		t.Errorf("OverlongNames mismatch (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// Dates
// ---------------------------------------------------------------------------

func TestGenerator_ResolveDate(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, &fakeRunner{}, &recordingOpener{})

	tests := []struct {
		name   string
		value  string
		format string
		want   string
	}{
		{"default", "", "", "2024-03-15"},
		{"today with format", "today", "european", "15/03/2024"},
		{"empty with format", "", "DD.MM.YYYY", "15.03.2024"},
		{"explicit today format wins", "today:YYYY", "european", "2024"},
		{"none ignores format", "none", "iso", NoDate},
		{"literal reformatted", "2023-12-01", "long", "December 1, 2023"},
		{"literal kept without format", "Batch 7", "", "Batch 7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := g.resolveDate(tt.value, tt.format)
			if err != nil {
				t.Fatalf("resolveDate() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveDate(%q, %q) = %q, want %q", tt.value, tt.format, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

func TestGenerator_Generate_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name    string
		opts    []Option
		input   Input
		wantErr error
	}{
		{
			name:    "no names",
			input:   Input{Output: filepath.Join(dir, "a")},
			wantErr: ErrNoNames,
		},
		{
			name:    "no output",
			input:   Input{Names: []string{"S1"}},
			wantErr: ErrNoOutput,
		},
		{
			name:    "negative skip",
			input:   Input{Names: []string{"S1"}, Skip: -2, Output: filepath.Join(dir, "b")},
			wantErr: ErrInvalidSkip,
		},
		{
			name:    "bad date format",
			input:   Input{Names: []string{"S1"}, Date: "today:[", Output: filepath.Join(dir, "c")},
			wantErr: ErrInvalidDate,
		},
		{
			name:    "unknown preamble",
			opts:    []Option{WithPreamble("l0000")},
			input:   Input{Names: []string{"S1"}, Output: filepath.Join(dir, "d")},
			wantErr: ErrPreambleNotFound,
		},
		{
			name:    "typesetter missing",
			opts:    []Option{WithLookPath(lookPathMissing)},
			input:   Input{Names: []string{"S1"}, Output: filepath.Join(dir, "e")},
			wantErr: ErrTypesetterNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := newTestGenerator(t, &fakeRunner{}, &recordingOpener{}, tt.opts...)
			_, err := g.Generate(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Generate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGenerator_Generate_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := newTestGenerator(t, &fakeRunner{}, &recordingOpener{})
	_, err := g.Generate(ctx, Input{Names: []string{"S1"}, Output: filepath.Join(t.TempDir(), "x")})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Generate() error = %v, want context.Canceled", err)
	}
}

func TestNewGenerator_InvalidAssetPath(t *testing.T) {
	t.Parallel()

	_, err := NewGenerator(WithAssetPath("/nonexistent/assets"))
	if !errors.Is(err, ErrInvalidAssetPath) {
		t.Errorf("NewGenerator() error = %v, want ErrInvalidAssetPath", err)
	}
}

func TestWithTimeout_PanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("WithTimeout(0) should panic")
		}
	}()
	WithTimeout(0)
}

func TestWithTypesetter(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, &fakeRunner{}, &recordingOpener{}, WithTypesetter("lualatex"), WithTimeout(time.Minute))
	if g.Typesetter().Command != "lualatex" {
		t.Errorf("Command = %q, want lualatex", g.Typesetter().Command)
	}
	if g.Typesetter().Timeout != time.Minute {
		t.Errorf("Timeout = %v, want 1m", g.Typesetter().Timeout)
	}
}
