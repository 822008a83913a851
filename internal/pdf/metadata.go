// Package pdf reads descriptive metadata from article PDFs.
package pdf

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// doiPages is how many leading pages are searched for a DOI.
const doiPages = 3

// Title line bounds for the first-page heuristic, in characters (exclusive).
const (
	minTitleLen = 10
	maxTitleLen = 100
)

// Metadata describes a PDF as far as it can be recovered from the file.
type Metadata struct {
	Path      string `json:"path"`
	Pages     int    `json:"pages"`
	Title     string `json:"title,omitempty"`      // Info dictionary title
	Author    string `json:"author,omitempty"`     // Info dictionary author
	Subject   string `json:"subject,omitempty"`    // Info dictionary subject
	TextTitle string `json:"text_title,omitempty"` // first plausible line of page 1
	DOI       string `json:"doi,omitempty"`
}

// BestTitle returns the Info title, falling back to the first-page guess.
func (m Metadata) BestTitle() string {
	if m.Title != "" {
		return m.Title
	}
	return m.TextTitle
}

// ExtractMetadata opens the PDF at path and collects its Info dictionary
// entries, a title guessed from the first page, and the first DOI found in
// the leading pages. Pages whose text cannot be extracted are skipped.
func ExtractMetadata(path string) (Metadata, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("opening pdf %s: %w", path, err)
	}
	defer f.Close()

	m := Metadata{Path: path, Pages: r.NumPage()}

	info := r.Trailer().Key("Info")
	if !info.IsNull() {
		m.Title = strings.TrimSpace(info.Key("Title").Text())
		m.Author = strings.TrimSpace(info.Key("Author").Text())
		m.Subject = strings.TrimSpace(info.Key("Subject").Text())
	}

	for i := 1; i <= m.Pages && i <= doiPages; i++ {
		text := pageText(r, i)
		if i == 1 {
			m.TextTitle = titleFromText(text)
		}
		if m.DOI == "" {
			m.DOI = findDOI(text)
		}
	}

	return m, nil
}

func pageText(r *pdf.Reader, n int) string {
	page := r.Page(n)
	if page.V.IsNull() {
		return ""
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}

// titleFromText returns the first non-blank line whose length lies strictly
// between minTitleLen and maxTitleLen.
func titleFromText(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		n := utf8.RuneCountInString(line)
		if n > minTitleLen && n < maxTitleLen {
			return line
		}
	}
	return ""
}
