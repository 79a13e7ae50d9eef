// Package dateutil renders the date printed on the second line of each
// label: the "today" keyword and the token formats accepted after "today:".
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat is returned for a label date format that cannot be
// turned into a Go time layout.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength bounds a format; a label has room for far less.
const MaxDateFormatLength = 50

// DefaultDateFormat renders plain "today".
const DefaultDateFormat = "YYYY-MM-DD"

// Keyword is the date value that stands for the current date. It is matched
// exactly, so "Today" is printed as typed.
const Keyword = "today"

// tokenLayouts pairs each format token with its Go layout, longest token
// first so "MMMM" wins over "MM".
var tokenLayouts = []struct {
	token  string
	layout string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// DatePresets names the formats offered at the date prompt.
var DatePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// ParseDateFormat converts a label date format into a Go time layout.
//
// Tokens are YYYY, YY, MMMM, MMM, MM, M, DD and D. Text in brackets is copied
// as is ("[prep] D MMM" gives "prep 15 Mar"); any other character outside
// brackets is kept too, so a stray "D" in a word still becomes the day.
func ParseDateFormat(format string) (string, error) {
	switch {
	case format == "":
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	case len(format) > MaxDateFormatLength:
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var layout strings.Builder
	layout.Grow(len(format) + 8)

	for rest := format; rest != ""; {
		if rest[0] == '[' {
			literal, after, ok := strings.Cut(rest[1:], "]")
			if !ok {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, len(format)-len(rest))
			}
			layout.WriteString(literal)
			rest = after
			continue
		}

		if token, goLayout, ok := matchToken(rest); ok {
			layout.WriteString(goLayout)
			rest = rest[len(token):]
			continue
		}

		layout.WriteByte(rest[0])
		rest = rest[1:]
	}

	return layout.String(), nil
}

// matchToken reports the format token s starts with, if any.
func matchToken(s string) (token, layout string, ok bool) {
	for _, tl := range tokenLayouts {
		if strings.HasPrefix(s, tl.token) {
			return tl.token, tl.layout, true
		}
	}
	return "", "", false
}

// ExpandPreset returns the format of a preset name (in any case), or format
// itself when no preset has that name.
func ExpandPreset(format string) string {
	if preset, ok := DatePresets[strings.ToLower(format)]; ok {
		return preset
	}
	return format
}

// ResolveDate renders "today" as YYYY-MM-DD and "today:FORMAT" (a format or
// a preset name) with t. Every other value is returned unchanged.
func ResolveDate(value string, t time.Time) (string, error) {
	if value == Keyword {
		value = Keyword + ":" + DefaultDateFormat
	}

	format, ok := strings.CutPrefix(value, Keyword+":")
	if !ok {
		return value, nil
	}
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty after %q", ErrInvalidDateFormat, Keyword+":")
	}

	layout, err := ParseDateFormat(ExpandPreset(format))
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}
