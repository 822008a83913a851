package bibtex

import (
	"strings"
	"unicode"

	"github.com/matsen/obscat/internal/reference"
)

// ParsePersons splits a BibTeX name list on top-level "and" and parses each name.
func ParsePersons(value string) []reference.Author {
	var authors []reference.Author
	for _, name := range splitNames(value) {
		if a, ok := ParseName(name); ok {
			authors = append(authors, a)
		}
	}
	return authors
}

// ParseName parses a single name in any of the three BibTeX forms:
// "First von Last", "von Last, First" and "von Last, Jr, First".
func ParseName(name string) (reference.Author, bool) {
	parts := splitTopLevel(name, ',')
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) == 0 || (len(parts) == 1 && parts[0] == "") {
		return reference.Author{}, false
	}

	switch len(parts) {
	case 1:
		return parseFirstVonLast(words(parts[0])), true
	case 2:
		a := parseVonLast(words(parts[0]))
		a.First = parts[1]
		return a, true
	default:
		a := parseVonLast(words(parts[0]))
		a.Jr = parts[1]
		a.First = strings.Join(parts[2:], ", ")
		return a, true
	}
}

// parseFirstVonLast handles the comma-free form. The von part runs from the
// first to the last lower-case word before the final word.
func parseFirstVonLast(ws []string) reference.Author {
	if len(ws) == 1 {
		return reference.Author{Last: ws[0]}
	}

	vonStart, vonEnd := -1, -1
	for i := 0; i < len(ws)-1; i++ {
		if isLowerWord(ws[i]) {
			if vonStart < 0 {
				vonStart = i
			}
			vonEnd = i
		}
	}

	if vonStart < 0 {
		return reference.Author{
			First: strings.Join(ws[:len(ws)-1], " "),
			Last:  ws[len(ws)-1],
		}
	}
	return reference.Author{
		First: strings.Join(ws[:vonStart], " "),
		Von:   strings.Join(ws[vonStart:vonEnd+1], " "),
		Last:  strings.Join(ws[vonEnd+1:], " "),
	}
}

// parseVonLast handles the part before the first comma. Leading lower-case
// words form the von part, but the last word is always part of Last.
func parseVonLast(ws []string) reference.Author {
	if len(ws) == 0 {
		return reference.Author{}
	}
	vonEnd := -1
	for i := 0; i < len(ws)-1; i++ {
		if isLowerWord(ws[i]) {
			vonEnd = i
		}
	}
	return reference.Author{
		Von:  strings.Join(ws[:vonEnd+1], " "),
		Last: strings.Join(ws[vonEnd+1:], " "),
	}
}

// isLowerWord reports whether the first letter at brace depth zero is lower case.
// Words starting with a brace group count as upper case.
func isLowerWord(w string) bool {
	for _, r := range w {
		if r == '{' {
			return false
		}
		if unicode.IsLetter(r) {
			return unicode.IsLower(r)
		}
	}
	return false
}

// splitNames splits on the word "and" (any case) at brace depth zero.
func splitNames(value string) []string {
	ws := words(value)
	var names []string
	var cur []string
	for _, w := range ws {
		if strings.EqualFold(w, "and") {
			if len(cur) > 0 {
				names = append(names, strings.Join(cur, " "))
			}
			cur = nil
			continue
		}
		cur = append(cur, w)
	}
	if len(cur) > 0 {
		names = append(names, strings.Join(cur, " "))
	}
	return names
}

// words splits on whitespace at brace depth zero.
func words(s string) []string {
	var out []string
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '{':
			depth++
		case r == '}' && depth > 0:
			depth--
		case unicode.IsSpace(r) && depth == 0:
			if b.Len() > 0 {
				out = append(out, b.String())
				b.Reset()
			}
			continue
		}
		b.WriteRune(r)
	}
	if b.Len() > 0 {
		out = append(out, b.String())
	}
	return out
}

// splitTopLevel splits s on sep at brace depth zero.
func splitTopLevel(s string, sep rune) []string {
	var out []string
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '{':
			depth++
		case r == '}' && depth > 0:
			depth--
		case r == sep && depth == 0:
			out = append(out, b.String())
			b.Reset()
			continue
		}
		b.WriteRune(r)
	}
	return append(out, b.String())
}
