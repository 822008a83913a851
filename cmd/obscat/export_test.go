package main

import (
	"strings"
	"testing"

	"github.com/matsen/obscat/internal/reference"
)

func TestExportBibTeX(t *testing.T) {
	db := &reference.Database{
		Entries: []reference.Entry{
			{Key: "smith2020", Type: "article"},
			{Key: "doe2021", Type: "book"},
		},
		Preambles: []string{`\newcommand{\noop}[1]{}`},
	}

	tests := []struct {
		name    string
		keys    []string
		want    []string // substrings in order
		absent  []string
		wantErr bool
	}{
		{
			name: "all entries",
			want: []string{"@preamble{{", "@article{smith2020,", "@book{doe2021,"},
		},
		{
			name: "selected keys keep request order",
			keys: []string{"doe2021", "smith2020"},
			want: []string{"@preamble{{", "@book{doe2021,", "@article{smith2020,"},
		},
		{
			name:   "case-insensitive lookup",
			keys:   []string{"DOE2021"},
			want:   []string{"@book{doe2021,"},
			absent: []string{"smith2020"},
		},
		{
			name:    "unknown key",
			keys:    []string{"smith2020", "nobody1999"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := exportBibTeX(db, tt.keys)
			if (err != nil) != tt.wantErr {
				t.Fatalf("exportBibTeX() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !strings.Contains(err.Error(), "nobody1999") {
					t.Errorf("error should name the key: %v", err)
				}
				return
			}
			rest := got
			for _, w := range tt.want {
				i := strings.Index(rest, w)
				if i < 0 {
					t.Fatalf("output missing %q (or out of order):\n%s", w, got)
				}
				rest = rest[i+len(w):]
			}
			for _, a := range tt.absent {
				if strings.Contains(got, a) {
					t.Errorf("output should not contain %q:\n%s", a, got)
				}
			}
		})
	}
}

func TestExportBibTeX_NoPreamble(t *testing.T) {
	db := &reference.Database{Entries: []reference.Entry{{Key: "a", Type: "misc"}}}
	got, err := exportBibTeX(db, nil)
	if err != nil {
		t.Fatalf("exportBibTeX() error = %v", err)
	}
	if got != "@misc{a,\n}\n" {
		t.Errorf("exportBibTeX() = %q", got)
	}
}
