package assets

// DefaultPreambleName is the built-in preamble for Avery-Zweckform L7871
// sheets on A4 paper.
const DefaultPreambleName = "l7871"

// preambleExt is the file extension of preamble assets.
const preambleExt = ".tex"

// AssetLoader defines the contract for loading LaTeX preambles.
type AssetLoader interface {
	// LoadPreamble loads a preamble by name (without .tex extension).
	// Returns ErrPreambleNotFound if the preamble doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadPreamble(name string) (string, error)
}
