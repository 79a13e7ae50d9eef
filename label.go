package labelsheet

import "unicode/utf8"

// EmptyLabel is printed for skipped slots and for cells after the last name.
// The phantoms keep the two-line height of a regular label.
const EmptyLabel = `\phantom{empty}\par\phantom{sticker}`

// inlineDateLength is the label text length above which the date follows on
// the same paragraph and LaTeX wraps it, instead of starting a new one.
const inlineDateLength = 30

// RenderLabel returns the LaTeX content of one label cell: the escaped name,
// shrunk when it would not fit, followed by the date field.
func RenderLabel(slot Slot, date string) string {
	if slot.Empty {
		return EmptyLabel
	}

	text := EscapeTeX(slot.Name)
	if size := FontSizeFor(TextWidth(text, DefaultWidthSize)); size != FontSizeNormal {
		text = "{" + string(size) + " " + text + " }"
	}

	if utf8.RuneCountInString(text) > inlineDateLength {
		return text + " " + date
	}
	return text + ` \par ` + date
}

// slotAt returns the slot at index i, or an empty slot past the end.
func slotAt(slots []Slot, i int) Slot {
	if i >= len(slots) {
		return Slot{Empty: true}
	}
	return slots[i]
}
