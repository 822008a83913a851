// Package catalogue generates the per-article knowledge-base folders, the
// article index and the missing-articles report from a bibliography.
package catalogue

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/matsen/obscat/internal/reference"
	"github.com/matsen/obscat/internal/sanitize"
)

// Top-level documents written into the output directory.
const (
	IndexFile   = "article_catalogue.md"
	MissingFile = "Missing articles.md"
)

var (
	// ErrInputNotFound is returned when the bibliography path is not a readable file.
	ErrInputNotFound = errors.New("input bibliography not found")
	// ErrSanitization marks an entry whose title could not be made link-safe.
	ErrSanitization = errors.New("title sanitization failed")
	// ErrUnsafeKey marks an entry whose key cannot name a folder inside the
	// output directory.
	ErrUnsafeKey = errors.New("citation key is not a safe folder name")
)

// cataloguedTypes is the allow-list of entry types that get a folder.
var cataloguedTypes = map[string]bool{
	"article":       true,
	"inproceedings": true,
}

// IsCatalogued reports whether entries of the given type are catalogued.
func IsCatalogued(entryType string) bool {
	return cataloguedTypes[strings.ToLower(entryType)]
}

// Classify returns the entries whose type is in the allow-list, in order.
// Books, theses and other types are dropped silently.
func Classify(entries []reference.Entry) []reference.Entry {
	var out []reference.Entry
	for _, e := range entries {
		if IsCatalogued(e.Type) {
			out = append(out, e)
		}
	}
	return out
}

// CheckKey reports whether key can be used as a folder name directly below
// the output directory. Keys with path separators (DOI-style keys such as
// "10.1000/xyz"), parent references, absolute paths and leading dots are
// rejected with ErrUnsafeKey.
func CheckKey(key string) error {
	if key == "" || strings.HasPrefix(key, ".") ||
		strings.ContainsAny(key, `/\`) || !filepath.IsLocal(key) {
		return fmt.Errorf("%w: %q", ErrUnsafeKey, key)
	}
	return nil
}

// RedirectFileName is the redirect stub of an entry.
func RedirectFileName(key string) string { return key + ".html" }

// RecordFileName is the BibTeX record of an entry.
func RecordFileName(key string) string { return key + ".bib" }

// DocumentFileName is the user-supplied PDF of an entry.
func DocumentFileName(key string) string { return key + ".pdf" }

// NotesFileName is the free-form notes file the user keeps next to the note.
func NotesFileName(key string) string { return key + "_notes.md" }

// CollageFileName is the page collage rendered from the PDF by external tools.
func CollageFileName(key string) string { return key + ".pdf.jpg" }

// FrontpageFileName is the front page thumbnail rendered by external tools.
func FrontpageFileName(key string) string { return key + ".pdf_frontpage.jpg" }

// DisplayTitle returns the entry title with braces removed.
func DisplayTitle(e reference.Entry) string {
	return stripBraces(e.Title())
}

// NoteFileName derives the note file name from the entry title.
// A title that sanitizes to nothing falls back to the entry key.
func NoteFileName(e reference.Entry) (string, error) {
	name, err := sanitize.Link(DisplayTitle(e))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(name) == "" {
		name = e.Key
	}
	return name + ".md", nil
}

func stripBraces(s string) string {
	return strings.NewReplacer("{", "", "}", "").Replace(s)
}

// linkTarget wraps a markdown link destination in angle brackets when it
// contains spaces.
func linkTarget(dest string) string {
	if strings.ContainsAny(dest, " \t") {
		return "<" + dest + ">"
	}
	return dest
}

// escapeCell escapes pipe characters inside a markdown table cell.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
