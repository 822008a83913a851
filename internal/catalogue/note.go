package catalogue

import (
	"fmt"
	"html"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matsen/obscat/internal/export"
	"github.com/matsen/obscat/internal/reference"
	"github.com/matsen/obscat/internal/sanitize"
)

// frontmatter is the YAML header of a note.
type frontmatter struct {
	Title    string `yaml:"title"`
	Author   string `yaml:"author"`
	Date     string `yaml:"date"`
	BibEntry string `yaml:"bibentry"`
}

// renderNote renders the note document of an entry. With fullPath the
// embedded artifact links are qualified with the entry folder.
func renderNote(e reference.Entry, folder string, fullPath bool) (string, error) {
	title := DisplayTitle(e)
	mainAuthor := sanitize.Tag(e.MainAuthor())
	year := sanitize.Tag(e.Year())
	month := sanitize.Tag(e.Month())
	journal := sanitize.Tag(e.Journal())

	header, err := yaml.Marshal(frontmatter{
		Title:    title,
		Author:   mainAuthor,
		Date:     year + "-" + month,
		BibEntry: e.Key,
	})
	if err != nil {
		return "", fmt.Errorf("encoding frontmatter: %w", err)
	}

	names := e.AuthorNames()
	links := make([]string, len(names))
	for i, n := range names {
		links[i] = "[[" + sanitize.Tag(n) + "]]"
	}

	prefix := ""
	if fullPath {
		prefix = filepath.ToSlash(folder) + "/"
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n")
	fmt.Fprintf(&b, "#Articles/Author/%s\n", mainAuthor)
	fmt.Fprintf(&b, "#Articles/Year/%s\n", year)
	fmt.Fprintf(&b, "#Articles/Journal/%s\n", journal)
	fmt.Fprintf(&b, "\n# %s\n", title)
	fmt.Fprintf(&b, "\nAuthors: %s\n", strings.Join(links, ", "))
	fmt.Fprintf(&b, "\n## Notes\n![[%s%s]]\n", prefix, NotesFileName(e.Key))
	fmt.Fprintf(&b, "\n## Summary\n![[%s%s]]\n", prefix, CollageFileName(e.Key))
	fmt.Fprintf(&b, "\n## Full pdf\n![[%s%s]]\n", prefix, DocumentFileName(e.Key))
	fmt.Fprintf(&b, "\n## Citation\n```bibtex\n%s```\n", export.ToBibTeX(e))
	return b.String(), nil
}

// renderRedirect renders the HTML stub that links to the entry's source.
func renderRedirect(cleanURL string) string {
	return fmt.Sprintf("<html><body><a href=\"%s\">Link to Resource</a></body></html>\n",
		html.EscapeString(cleanURL))
}

// renderRecord rebuilds a minimal BibTeX record from the entry's fields.
// It does not go through the export package so the record only depends on
// the parsed field list.
func renderRecord(e reference.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "@%s{%s,\n", e.Type, e.Key)
	for _, f := range e.Fields {
		fmt.Fprintf(&b, "  %s = {%s},\n", f.Name, f.Value)
	}
	b.WriteString("}\n")
	return b.String()
}
