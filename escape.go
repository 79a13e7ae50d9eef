package labelsheet

import "strings"

// texReplacer escapes characters reserved by LaTeX. Replacement happens in a
// single pass, so inserted backslashes and braces are never escaped again.
var texReplacer = strings.NewReplacer(
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\^{}`,
	`\`, `\textbackslash{}`,
	`<`, `\textless{}`,
	`>`, `\textgreater{}`,
)

// EscapeTeX escapes text so that it prints literally in a LaTeX document.
func EscapeTeX(text string) string {
	return texReplacer.Replace(text)
}
