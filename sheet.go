package labelsheet

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Sheet layout of Avery-Zweckform L7871 labels on A4 paper.
const (
	Columns       = 7
	Rows          = 27
	LabelsPerPage = Columns * Rows
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// LaTeX fragments framing each page and row of the label table.
const (
	tableBegin   = `\begin{tabularhtx}{\textheight}{\linewidth}{@{}*{7}{Y}@{}}`
	tableEnd     = `\end{tabularhtx}`
	cellSep      = " & "
	rowEnd       = ` \\ \interrowfill`
	lastRowEnd   = ` \\ \interrowspace{-1em}`
	documentTail = "\\scrollmode\n\\end{document}"
)

// PageCount returns the number of pages needed for n label slots.
func PageCount(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + LabelsPerPage - 1) / LabelsPerPage
}

// WriteSheet writes a complete LaTeX document: the preamble followed by one
// table per page. Every page is filled; cells after the last slot are empty
// labels.
func WriteSheet(w io.Writer, preamble string, slots []Slot, date string) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(preamble)
	if !strings.HasSuffix(preamble, "\n") {
		bw.WriteByte('\n')
	}
	bw.WriteByte('\n')

	n := 0
	for page := 0; page < PageCount(len(slots)); page++ {
		fmt.Fprintf(bw, "%% Page %d\n%s\n", page+1, tableBegin)

		for row := 0; row < Rows; row++ {
			bw.WriteByte('\t')
			for col := 0; col < Columns; col++ {
				if col > 0 {
					bw.WriteString(cellSep)
				}
				bw.WriteString(RenderLabel(slotAt(slots, n), date))
				n++
			}
			if row == Rows-1 {
				bw.WriteString(lastRowEnd)
			} else {
				bw.WriteString(rowEnd)
			}
			bw.WriteByte('\n')
		}

		bw.WriteString(tableEnd)
		bw.WriteString("\n\n")
	}

	bw.WriteString(documentTail)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteSheet, err)
	}
	return nil
}
