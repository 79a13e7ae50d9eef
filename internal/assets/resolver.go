package assets

import "errors"

// AssetResolver tries a custom directory first and falls back to the
// embedded preambles when the custom one does not have the asset.
type AssetResolver struct {
	custom   AssetLoader // nil if no custom path configured
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver.
// An empty customBasePath uses embedded assets only.
// Returns error if customBasePath is set but invalid.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadPreamble loads a preamble, trying the custom loader first if available.
func (r *AssetResolver) LoadPreamble(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadPreamble(name)
	}

	content, err := r.custom.LoadPreamble(name)
	if err == nil {
		return content, nil
	}

	// Only fall back for "not found" errors, not validation or I/O errors
	if !errors.Is(err, ErrPreambleNotFound) {
		return "", err
	}

	return r.embedded.LoadPreamble(name)
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
