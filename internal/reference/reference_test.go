package reference

import "testing"

func TestAuthorString(t *testing.T) {
	tests := []struct {
		name   string
		author Author
		want   string
	}{
		{"last only", Author{Last: "Plato"}, "Plato"},
		{"first last", Author{First: "John", Last: "Smith"}, "Smith, John"},
		{"von", Author{First: "Ludwig", Von: "van", Last: "Beethoven"}, "van Beethoven, Ludwig"},
		{"jr", Author{First: "Martin", Last: "King", Jr: "Jr."}, "King, Jr., Martin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.author.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEntryFallbacks(t *testing.T) {
	e := Entry{Key: "k", Type: "article"}

	if got := e.Title(); got != UnknownTitle {
		t.Errorf("Title() = %q, want %q", got, UnknownTitle)
	}
	if got := e.Year(); got != UnknownYear {
		t.Errorf("Year() = %q, want %q", got, UnknownYear)
	}
	if got := e.Month(); got != UnknownMonth {
		t.Errorf("Month() = %q, want %q", got, UnknownMonth)
	}
	if got := e.Journal(); got != UnknownJournal {
		t.Errorf("Journal() = %q, want %q", got, UnknownJournal)
	}
	if got := e.URL(); got != UnknownURL {
		t.Errorf("URL() = %q, want %q", got, UnknownURL)
	}
	if got := e.MainAuthor(); got != UnknownAuthor {
		t.Errorf("MainAuthor() = %q, want %q", got, UnknownAuthor)
	}
}

func TestEntryJournalFallsBackToBooktitle(t *testing.T) {
	e := Entry{
		Key:    "conf",
		Type:   "inproceedings",
		Fields: []Field{{Name: "booktitle", Value: "Proceedings of ICML"}},
	}
	if got := e.Journal(); got != "Proceedings of ICML" {
		t.Errorf("Journal() = %q, want booktitle", got)
	}

	e.Fields = append(e.Fields, Field{Name: "journal", Value: "JMLR"})
	if got := e.Journal(); got != "JMLR" {
		t.Errorf("Journal() = %q, want journal to win over booktitle", got)
	}
}

func TestEntryFieldCaseInsensitive(t *testing.T) {
	e := Entry{Fields: []Field{{Name: "title", Value: "T"}}}
	if v, ok := e.Field("TITLE"); !ok || v != "T" {
		t.Errorf("Field(TITLE) = %q, %v", v, ok)
	}
}

func TestAuthorNames(t *testing.T) {
	e := Entry{Authors: []Author{
		{First: "John", Last: "Smith"},
		{First: "Jane", Last: "Doe"},
	}}
	names := e.AuthorNames()
	if len(names) != 2 || names[0] != "Smith, John" || names[1] != "Doe, Jane" {
		t.Errorf("AuthorNames() = %v", names)
	}
	if e.MainAuthor() != "Smith, John" {
		t.Errorf("MainAuthor() = %q", e.MainAuthor())
	}
}

func TestDatabaseLookup(t *testing.T) {
	db := &Database{Entries: []Entry{{Key: "Smith2020"}}}
	if _, ok := db.Lookup("smith2020"); !ok {
		t.Error("Lookup should be case-insensitive")
	}
	if _, ok := db.Lookup("other"); ok {
		t.Error("Lookup(other) should miss")
	}
}
