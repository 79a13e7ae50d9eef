package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed preambles/*
var preambles embed.FS

// EmbeddedLoader loads preambles compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadPreamble loads a built-in preamble by name.
func (e *EmbeddedLoader) LoadPreamble(name string) (string, error) {
	file, err := PreamblePath(name)
	if err != nil {
		return "", err
	}

	content, err := preambles.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("%w: %q (built in: %s)", ErrPreambleNotFound, name, strings.Join(e.Names(), ", "))
	}

	return string(content), nil
}

// Names lists the built-in preambles, sorted.
func (e *EmbeddedLoader) Names() []string {
	entries, err := fs.ReadDir(preambles, preambleDir)
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if name, ok := strings.CutSuffix(entry.Name(), preambleExt); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
