// Package assets provides the LaTeX preambles that open every label sheet.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in preambles)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// A custom directory holds preambles as {basePath}/preambles/{name}.tex.
// Overriding "l7871" there replaces the built-in layout while keeping the
// table code emitted by the sheet writer.
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
