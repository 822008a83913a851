package bibtex

import (
	"testing"

	"github.com/matsen/obscat/internal/reference"
)

func TestParseName(t *testing.T) {
	tests := []struct {
		input string
		want  reference.Author
	}{
		{"John Smith", reference.Author{First: "John", Last: "Smith"}},
		{"Smith, John", reference.Author{First: "John", Last: "Smith"}},
		{"John Ronald Reuel Tolkien", reference.Author{First: "John Ronald Reuel", Last: "Tolkien"}},
		{"Jean de la Fontaine", reference.Author{First: "Jean", Von: "de la", Last: "Fontaine"}},
		{"de la Fontaine, Jean", reference.Author{First: "Jean", Von: "de la", Last: "Fontaine"}},
		{"King, Jr., Martin Luther", reference.Author{First: "Martin Luther", Last: "King", Jr: "Jr."}},
		{"M{\\\"u}ller, Hans", reference.Author{First: "Hans", Last: "M{\\\"u}ller"}},
		{"{Barnes and Noble}", reference.Author{Last: "{Barnes and Noble}"}},
		{"Plato", reference.Author{Last: "Plato"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseName(tt.input)
			if !ok {
				t.Fatalf("ParseName(%q) not ok", tt.input)
			}
			if got != tt.want {
				t.Errorf("ParseName(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseName_Empty(t *testing.T) {
	if _, ok := ParseName("   "); ok {
		t.Error("ParseName(blank) should not be ok")
	}
}

func TestParsePersons(t *testing.T) {
	got := ParsePersons("Smith, John AND Jane Doe and {Barnes and Noble}")
	if len(got) != 3 {
		t.Fatalf("got %d persons, want 3: %+v", len(got), got)
	}
	if got[2].Last != "{Barnes and Noble}" {
		t.Errorf("braced corporate name split: %+v", got[2])
	}
}
