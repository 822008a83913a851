package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/matsen/obscat/internal/bibtex"
	"github.com/matsen/obscat/internal/catalogue"
	"github.com/matsen/obscat/internal/sanitize"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"input not found", fmt.Errorf("%w: lib.bib", catalogue.ErrInputNotFound), ExitError},
		{"sanitization", fmt.Errorf("%w: entry x: %w", catalogue.ErrSanitization, sanitize.ErrUnsupportedMarkup), ExitDataError},
		{"unsafe key", fmt.Errorf("%w: %q", catalogue.ErrUnsafeKey, "10.1000/xyz"), ExitDataError},
		{"duplicate key", fmt.Errorf("line 9: %w: a", bibtex.ErrDuplicateKey), ExitDataError},
		{"syntax", fmt.Errorf("parsing lib.bib: %w", &bibtex.SyntaxError{Line: 3, Msg: "unexpected end of input"}), ExitDataError},
		{"other", errors.New("disk full"), ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
