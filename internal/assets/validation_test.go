package assets

import (
	"errors"
	"testing"
)

func TestPreamblePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"simple name", "l7871", "preambles/l7871.tex", nil},
		{"hyphen", "l7871-narrow", "preambles/l7871-narrow.tex", nil},
		{"underscore", "my_sheet", "preambles/my_sheet.tex", nil},
		{"mixed case", "L7871", "preambles/L7871.tex", nil},
		{"empty", "", "", ErrInvalidAssetName},
		{"forward slash", "sub/l7871", "", ErrInvalidAssetName},
		{"backslash", "sub\\l7871", "", ErrInvalidAssetName},
		{"parent traversal", "../secret", "", ErrInvalidAssetName},
		{"extension", "l7871.tex", "", ErrInvalidAssetName},
		{"hidden file", ".hidden", "", ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := PreamblePath(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("PreamblePath(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("PreamblePath(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("PreamblePath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
