package labelsheet

import "math"

// DefaultWidthSize is the font size TextWidth assumes when none is given.
const DefaultWidthSize = 10

// averageCharWidth is used for characters missing from charWidths.
const averageCharWidth = 58.810526315789474

// charWidths holds approximate advance widths of the label font (bold sans
// serif), in hundredths of the font size.
var charWidths = map[rune]float64{
	'0': 55, '1': 55, '2': 55, '3': 55, '4': 55, '5': 55, '6': 55, '7': 55,
	'8': 55, '9': 55, 'a': 53, 'b': 56, 'c': 49, 'd': 56, 'e': 51, 'f': 39,
	'g': 55, 'h': 56, 'i': 26, 'j': 36, 'k': 53, 'l': 26, 'm': 87, 'n': 56,
	'o': 55, 'p': 56, 'q': 56, 'r': 37, 's': 42, 't': 40, 'u': 56, 'v': 50,
	'w': 74, 'x': 50, 'y': 50, 'z': 48, 'A': 73, 'B': 73, 'C': 70, 'D': 79,
	'E': 64, 'F': 61, 'G': 73, 'H': 79, 'I': 33, 'J': 52, 'K': 76, 'L': 58,
	'M': 98, 'N': 79, 'O': 79, 'P': 70, 'Q': 79, 'R': 70, 'S': 61, 'T': 73,
	'U': 76, 'V': 73, 'W': 104, 'X': 73, 'Y': 73, 'Z': 67, '!': 37, '"': 55,
	'#': 92, '$': 55, '%': 103, '&': 83, '\'': 31, '(': 43, ')': 43, '*': 55,
	'+': 86, ',': 31, '-': 37, '.': 31, '/': 55, ':': 31, ';': 31, '<': 86,
	'=': 86, '>': 86, '?': 52, '@': 73, '[': 34, '\\': 55, ']': 34, '^': 67,
	'_': 86, '`': 55, '{': 55, '|': 31, '}': 55, '~': 67, ' ': 37,
}

// TextWidth estimates the rendered width of s at the given font size.
// Halves round to even.
func TextWidth(s string, size float64) int {
	var sum float64
	for _, r := range s {
		w, ok := charWidths[r]
		if !ok {
			w = averageCharWidth
		}
		sum += w
	}
	return int(math.RoundToEven(sum * (size / 100)))
}

// FontSize is a LaTeX font size command used on labels.
type FontSize string

// Font sizes, largest first. FontSizeNormal leaves the document default.
const (
	FontSizeNormal     FontSize = ""
	FontSizeScriptsize FontSize = `\scriptsize`
	FontSizeSsmall     FontSize = `\ssmall`
	FontSizeTiny       FontSize = `\tiny`
)

// Width thresholds at which a label drops to the next font size.
const (
	widthScriptsize = 88
	widthSsmall     = 104
	widthTiny       = 139
)

// FontSizeFor picks the font size for text of the given estimated width.
func FontSizeFor(width int) FontSize {
	switch {
	case width >= widthTiny:
		return FontSizeTiny
	case width >= widthSsmall:
		return FontSizeSsmall
	case width >= widthScriptsize:
		return FontSizeScriptsize
	default:
		return FontSizeNormal
	}
}
