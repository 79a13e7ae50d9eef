package labelsheet

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"
)

// Name list file extensions recognised by LoadNames.
const (
	ExtText = ".txt"
	ExtCSV  = ".csv"
	ExtXLSX = ".xlsx"
)

// MaxRecommendedNameLength is the longest name (in characters) that reliably
// fits on a single label. Longer names are accepted but reported.
const MaxRecommendedNameLength = 30

// MaxLineLength is the longest line ReadNames accepts, in bytes.
const MaxLineLength = 1 << 20

// SuffixSeparator joins a sample name and a suffix.
const SuffixSeparator = "-"

// Slot is one label position on the sheet.
// An empty slot is printed as a blank label.
type Slot struct {
	Name  string
	Empty bool
}

// csvName is one row of a CSV name list. Only the "name" column is read.
type csvName struct {
	Name string `csv:"name"`
}

// IsNameListExtension reports whether ext (with leading dot) is a name list
// format understood by LoadNames.
func IsNameListExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ExtText, ExtCSV, ExtXLSX:
		return true
	}
	return false
}

// ReadNames reads one sample name per line.
// Trailing whitespace is stripped and empty lines are dropped; order is kept.
func ReadNames(r io.Reader) ([]string, error) {
	var names []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineLength)
	line := 0
	for scanner.Scan() {
		line++
		if name := cleanName(scanner.Text()); name != "" {
			names = append(names, name)
		}
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("%w: line %d is longer than %d bytes", ErrReadNames, line+1, MaxLineLength)
		}
		return nil, fmt.Errorf("%w: %v", ErrReadNames, err)
	}
	return names, nil
}

// LoadNames reads sample names from a file. The format is chosen by extension:
// .csv reads the "name" column, .xlsx reads the first column of the first
// sheet, anything else is read as plain text with one name per line.
// Returns ErrNoNames if the file holds no names.
func LoadNames(path string) ([]string, error) {
	var (
		names []string
		err   error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ExtCSV:
		names, err = loadCSVNames(path)
	case ExtXLSX:
		names, err = loadXLSXNames(path)
	default:
		names, err = loadTextNames(path)
	}
	if err != nil {
		return nil, err
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoNames, path)
	}
	return names, nil
}

func loadTextNames(path string) ([]string, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadNames, err)
	}
	defer f.Close()

	return ReadNames(f)
}

func loadCSVNames(path string) ([]string, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadNames, err)
	}
	defer f.Close()

	var rows []csvName
	if err := gocsv.Unmarshal(f, &rows); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadNames, path, err)
	}

	names := make([]string, 0, len(rows))
	for _, row := range rows {
		if name := cleanName(row.Name); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

func loadXLSXNames(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadNames, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: reading sheet %q: %v", ErrReadNames, sheets[0], err)
	}

	names := make([]string, 0, len(rows))
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		// Header row
		if i == 0 && strings.EqualFold(strings.TrimSpace(row[0]), "name") {
			continue
		}
		if name := cleanName(row[0]); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// cleanName strips trailing whitespace and normalises to NFC so that
// composed and decomposed accents count as the same characters.
func cleanName(s string) string {
	return norm.NFC.String(strings.TrimRightFunc(s, unicode.IsSpace))
}

// WriteNames writes one name per line to path, replacing any existing file.
func WriteNames(path string, names []string) error {
	var b strings.Builder
	for _, name := range names {
		b.WriteString(name)
		b.WriteByte('\n')
	}
	// #nosec G306 -- plain text meant to be shared
	if err := os.WriteFile(path, []byte(b.String()), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteSuffix, err)
	}
	return nil
}

// ExpandSuffixes combines every name with every suffix of group, name-major:
// [S1 S2] x [A B] gives [S1-A S1-B S2-A S2-B]. An empty group returns names
// unchanged.
func ExpandSuffixes(names, group []string) []string {
	if len(group) == 0 {
		return names
	}
	expanded := make([]string, 0, len(names)*len(group))
	for _, name := range names {
		for _, suffix := range group {
			expanded = append(expanded, name+SuffixSeparator+suffix)
		}
	}
	return expanded
}

// ApplySuffixGroups applies ExpandSuffixes once per group, in order.
func ApplySuffixGroups(names []string, groups [][]string) []string {
	for _, group := range groups {
		names = ExpandSuffixes(names, group)
	}
	return names
}

// ParseSuffixGroup splits a space-separated list of suffixes.
func ParseSuffixGroup(s string) []string {
	return strings.Fields(s)
}

// PadSkipped turns names into label slots, preceded by skip empty slots for
// labels already used on the sheet.
func PadSkipped(names []string, skip int) ([]Slot, error) {
	if skip < 0 {
		return nil, fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidSkip, skip)
	}
	slots := make([]Slot, skip, skip+len(names))
	for i := range slots {
		slots[i] = Slot{Empty: true}
	}
	for _, name := range names {
		slots = append(slots, Slot{Name: name})
	}
	return slots, nil
}

// Preview summarises a name list for display: "a", "a, b", "a, b, c" or
// "a, b ... z".
func Preview(names []string) string {
	n := len(names)
	if n == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(names[0])
	if n > 1 {
		b.WriteString(", ")
		b.WriteString(names[1])
	}
	switch {
	case n > 3:
		b.WriteString(" ... ")
	case n == 3:
		b.WriteString(", ")
	}
	if n > 2 {
		b.WriteString(names[n-1])
	}
	return b.String()
}

// OverlongNames returns the names longer than limit characters.
func OverlongNames(names []string, limit int) []string {
	var long []string
	for _, name := range names {
		if utf8.RuneCountInString(name) > limit {
			long = append(long, name)
		}
	}
	return long
}
