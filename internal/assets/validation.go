package assets

import (
	"fmt"
	"path"
	"strings"
)

// preambleDir is the directory holding preambles, both in the binary and
// under a custom asset path.
const preambleDir = "preambles"

// PreamblePath returns the slash-separated path of the preamble called name,
// relative to an asset root ("preambles/l7871.tex" for "l7871").
//
// A preamble is selected by its bare name, so separators and dots are
// rejected: a name can neither leave the preamble directory nor pick a file
// that is not a .tex preamble.
func PreamblePath(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty preamble name", ErrInvalidAssetName)
	}
	if i := strings.IndexAny(name, `/\.`); i >= 0 {
		return "", fmt.Errorf("%w: %q (character %q not allowed)", ErrInvalidAssetName, name, name[i])
	}
	return path.Join(preambleDir, name+preambleExt), nil
}
