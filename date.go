package labelsheet

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/alnah/go-labelsheet/internal/dateutil"
)

// Date keywords understood by ResolveDate.
const (
	DateToday = "today"
	DateNone  = "none"
)

// NoDate is printed in place of the date when dates are disabled, so every
// label keeps its second line.
const NoDate = `\phantom{empty date}`

// ResolveDate turns a date setting into the text printed on each label.
//   - "" or "today" gives t as YYYY-MM-DD
//   - "today:FORMAT" gives t in a custom format (e.g. "today:DD/MM/YYYY")
//   - "today:preset" uses a named preset (iso, european, us, long)
//   - "none" prints no date
//   - any other value is printed verbatim
//
// Keywords are lower case; "None" or "TODAY" are printed as typed.
// The time parameter allows injecting a fixed time for testing.
func ResolveDate(value string, t time.Time) (string, error) {
	switch {
	case value == "":
		value = DateToday
	case value == DateNone:
		return NoDate, nil
	case !isTodayKeyword(value):
		return value, nil
	}

	date, err := dateutil.ResolveDate(value, t)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidDate, err)
	}
	return date, nil
}

// ReformatDate parses a free-form date (e.g. "March 3rd 2021" or "3/3/2021")
// and renders it with a FORMAT using the same tokens as "today:FORMAT".
func ReformatDate(value, format string) (string, error) {
	parsed, err := dateparse.ParseAny(value)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidDate, value, err)
	}
	goFmt, err := dateutil.ParseDateFormat(dateutil.ExpandPreset(format))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidDate, err)
	}
	return parsed.Format(goFmt), nil
}

// isTodayKeyword reports whether value is "today" or "today:FORMAT".
func isTodayKeyword(value string) bool {
	return value == DateToday || strings.HasPrefix(value, DateToday+":")
}
