// Package labelsheet turns lists of sample names into printable sheets of
// adhesive labels (Avery-Zweckform L7871: 7 x 27 labels per A4 page).
//
// # Quick Start
//
// Load names, create a generator and write the sheet:
//
//	names, err := labelsheet.LoadNames("samples.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	gen, err := labelsheet.NewGenerator()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := gen.Generate(ctx, labelsheet.Input{
//	    Names:  names,
//	    Date:   "today",
//	    Output: "samples",
//	    Open:   true,
//	})
//
// The result names the written .tex and .pdf files. Use Input.TeXOnly to skip
// typesetting.
//
// # Pipeline
//
//  1. Names are read one per line (.txt), from a "name" column (.csv) or from
//     the first column of the first sheet (.xlsx)
//  2. Suffix groups multiply the list: S1 x [A B] gives S1-A, S1-B
//  3. Skipped slots are prepended so used labels are left blank
//  4. Each label is escaped for LaTeX, shrunk when the name is wide, and
//     followed by the date
//  5. Labels fill 189-cell tables, one per page, after the preamble
//  6. xelatex (or another engine) typesets the file and the PDF is opened
//
// # Dates
//
// Input.Date accepts "today" (YYYY-MM-DD), "today:FORMAT" with tokens
// YYYY YY MMMM MMM MM M DD D or a preset (iso, european, us, long), "none" to
// leave the date line blank, or any literal text. Input.DateFormat re-renders
// a literal date such as "March 3 2021".
//
// # Configuration
//
// Use functional options to customize the generator:
//
//	gen, err := labelsheet.NewGenerator(
//	    labelsheet.WithTypesetter("lualatex"),
//	    labelsheet.WithTimeout(2 * time.Minute),
//	    labelsheet.WithAssetPath("/path/to/assets"), // assets/preambles/*.tex
//	)
//
// # Errors
//
// Errors wrap the sentinels in errors.go; test them with errors.Is.
// ErrTypesetterNotFound means no LaTeX installation was found.
package labelsheet
