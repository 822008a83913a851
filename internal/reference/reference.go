// Package reference defines the core domain types for bibliographic entries.
package reference

import "strings"

// Field is a single BibTeX field in source order.
type Field struct {
	Name  string `json:"name"`  // Lower-cased field name
	Value string `json:"value"` // Value without outer delimiters, whitespace collapsed
}

// Entry represents one parsed bibliographic record (article, paper, book, ...).
type Entry struct {
	// Identity
	Key  string `json:"key"`  // Citation key, unique within a database
	Type string `json:"type"` // Lower-cased entry type: article, inproceedings, book, ...

	// Fields in the order they appear in the source file.
	// Person fields (author, editor) are moved to Authors/Editors.
	Fields []Field `json:"fields"`

	// Persons
	Authors []Author `json:"authors,omitempty"`
	Editors []Author `json:"editors,omitempty"`
}

// Fallback values used when an optional field is absent.
const (
	UnknownTitle   = "Unknown Title"
	UnknownAuthor  = "Unknown Author"
	UnknownYear    = "Unknown Year"
	UnknownMonth   = "XX"
	UnknownJournal = "Unknown Journal"
	UnknownURL     = "Unknown URL"
)

// Field returns the value of the named field and whether it was present.
func (e Entry) Field(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, f := range e.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// FieldOr returns the value of the named field, or fallback if absent.
func (e Entry) FieldOr(name, fallback string) string {
	if v, ok := e.Field(name); ok {
		return v
	}
	return fallback
}

// Title returns the raw title or UnknownTitle.
func (e Entry) Title() string {
	return e.FieldOr("title", UnknownTitle)
}

// Year returns the raw year or UnknownYear.
func (e Entry) Year() string {
	return e.FieldOr("year", UnknownYear)
}

// Month returns the raw month or UnknownMonth.
func (e Entry) Month() string {
	return e.FieldOr("month", UnknownMonth)
}

// Journal returns the venue: the journal field, then booktitle for
// conference papers, then UnknownJournal.
func (e Entry) Journal() string {
	if v, ok := e.Field("journal"); ok {
		return v
	}
	return e.FieldOr("booktitle", UnknownJournal)
}

// URL returns the raw url field or UnknownURL.
func (e Entry) URL() string {
	return e.FieldOr("url", UnknownURL)
}

// AuthorNames returns the display strings of all authors.
// An entry without authors yields a single UnknownAuthor placeholder.
func (e Entry) AuthorNames() []string {
	if len(e.Authors) == 0 {
		return []string{UnknownAuthor}
	}
	names := make([]string, len(e.Authors))
	for i, a := range e.Authors {
		names[i] = a.String()
	}
	return names
}

// MainAuthor returns the display string of the first author, or UnknownAuthor.
func (e Entry) MainAuthor() string {
	return e.AuthorNames()[0]
}

// Database is a parsed bibliography. Entries keep their source order.
type Database struct {
	Entries   []Entry           `json:"entries"`
	Preambles []string          `json:"preambles,omitempty"`
	Strings   map[string]string `json:"strings,omitempty"` // @string macros, lower-cased keys
}

// Lookup finds an entry by key (case-insensitive).
func (db *Database) Lookup(key string) (Entry, bool) {
	for _, e := range db.Entries {
		if strings.EqualFold(e.Key, key) {
			return e, true
		}
	}
	return Entry{}, false
}
