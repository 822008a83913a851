// Package export re-serializes bibliographic entries to BibTeX.
package export

import (
	"fmt"
	"strings"

	"github.com/matsen/obscat/internal/reference"
)

// ToBibTeX converts an entry to BibTeX, persons first and then the
// remaining fields in source order. Values are written verbatim inside
// braces since they are already LaTeX.
func ToBibTeX(e reference.Entry) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("@%s{%s,\n", e.Type, e.Key))

	if len(e.Authors) > 0 {
		b.WriteString(fmt.Sprintf("  author = {%s},\n", formatAuthors(e.Authors)))
	}
	if len(e.Editors) > 0 {
		b.WriteString(fmt.Sprintf("  editor = {%s},\n", formatAuthors(e.Editors)))
	}

	for _, f := range e.Fields {
		b.WriteString(fmt.Sprintf("  %s = {%s},\n", f.Name, f.Value))
	}

	b.WriteString("}\n")

	return b.String()
}

// ToBibTeXList converts multiple entries to BibTeX format.
func ToBibTeXList(entries []reference.Entry) string {
	var out []string
	for _, e := range entries {
		out = append(out, ToBibTeX(e))
	}
	return strings.Join(out, "\n")
}

// ToPreamble renders an @preamble block.
func ToPreamble(value string) string {
	return fmt.Sprintf("@preamble{{%s}}\n", value)
}

// formatAuthors formats persons in BibTeX style: "Last, First and Last, First"
func formatAuthors(authors []reference.Author) string {
	formatted := make([]string, len(authors))
	for i, a := range authors {
		formatted[i] = a.String()
	}
	return strings.Join(formatted, " and ")
}
