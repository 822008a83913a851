package catalogue

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// IndexRow is one line of the article catalogue table.
type IndexRow struct {
	Link        string `json:"link"`
	FirstAuthor string `json:"first_author"` // unsanitized display string
	Year        string `json:"year"`
	Journal     string `json:"journal"`
}

// IndexRows builds the catalogue rows for every result that has a note.
// Entries skipped for an unsafe key or an unsanitizable title have no note,
// so they appear only in the failed list of the catalogue command's output.
// Authors are shown as written in the bibliography; tags use the sanitized form.
func IndexRows(results []Result, outputDir string, fullPath bool) []IndexRow {
	var rows []IndexRow
	for _, r := range results {
		if !r.HasNote() {
			continue
		}
		rows = append(rows, IndexRow{
			Link:        noteLink(r, outputDir, fullPath),
			FirstAuthor: r.Entry.MainAuthor(),
			Year:        r.Entry.Year(),
			Journal:     r.Entry.Journal(),
		})
	}
	return rows
}

// noteLink links to the exact file the note was written under.
func noteLink(r Result, outputDir string, fullPath bool) string {
	if fullPath {
		path := filepath.ToSlash(filepath.Join(outputDir, r.Entry.Key, r.NoteFile))
		return fmt.Sprintf("[%s](%s)", r.Title, linkTarget(path))
	}
	return "[[" + r.NoteFile + "]]"
}

// RenderIndex renders the article catalogue table.
func RenderIndex(rows []IndexRow) string {
	var b strings.Builder
	b.WriteString("| Article Name | First Author | Year | Journal |\n")
	b.WriteString("|--------------|--------------|------|---------|\n")
	for _, row := range rows {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			escapeCell(row.Link),
			escapeCell(row.FirstAuthor),
			escapeCell(row.Year),
			escapeCell(row.Journal),
		)
	}
	return b.String()
}

// WriteIndex writes article_catalogue.md and returns its path.
func WriteIndex(outputDir string, results []Result, fullPath bool) (string, error) {
	path := filepath.Join(outputDir, IndexFile)
	content := RenderIndex(IndexRows(results, outputDir, fullPath))
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("writing article index: %w", err)
	}
	return path, nil
}
