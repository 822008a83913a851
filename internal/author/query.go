// Package author parses author filters and matches them against entry authors.
package author

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/matsen/obscat/internal/reference"
)

// Query represents a parsed author filter.
type Query struct {
	First string // First name (may be empty for last-name-only queries)
	Last  string // Last name including any von particle, e.g. "van Dyke"
}

// ParseQuery parses an author filter into a structured Query.
//
// Supported formats:
//   - "Yu"                   → last="Yu"
//   - "Timothy Yu"           → first="Timothy", last="Yu"
//   - "Yu, Timothy"          → first="Timothy", last="Yu"
//   - "Ludwig van Beethoven" → first="Ludwig", last="van Beethoven"
//
// Names are trimmed but case is preserved (matching is case-insensitive).
func ParseQuery(input string) Query {
	input = strings.TrimSpace(input)
	if input == "" {
		return Query{}
	}

	if idx := strings.Index(input, ","); idx > 0 {
		last := strings.Join(strings.Fields(input[:idx]), " ")
		first := strings.Join(strings.Fields(input[idx+1:]), " ")
		return Query{First: first, Last: last}
	}

	parts := strings.Fields(input)
	if len(parts) == 1 {
		return Query{Last: parts[0]}
	}

	// Lower-case words before the last one are von particles.
	start := len(parts) - 1
	for start > 1 && isLower(parts[start-1]) {
		start--
	}
	return Query{
		First: strings.Join(parts[:start], " "),
		Last:  strings.Join(parts[start:], " "),
	}
}

// IsZero reports whether the query has no name at all.
func (q Query) IsZero() bool {
	return q.Last == ""
}

// Matches checks if the query matches a given author.
//
// The last name must equal the author's last name, with or without its von
// part (case-insensitive). A first name in the query is a case-insensitive
// prefix of the author's first name, so "Tim Yu" matches "Timothy C Yu"
// while "Yu" does not match "Yujia".
func (q Query) Matches(a reference.Author) bool {
	vonLast := strings.TrimSpace(a.Von + " " + a.Last)
	if !strings.EqualFold(q.Last, a.Last) && !strings.EqualFold(q.Last, vonLast) {
		return false
	}

	if q.First == "" {
		return true
	}
	return strings.HasPrefix(
		strings.ToLower(a.First),
		strings.ToLower(q.First),
	)
}

// MatchesAny checks if the query matches any author in the list.
func (q Query) MatchesAny(authors []reference.Author) bool {
	for _, a := range authors {
		if q.Matches(a) {
			return true
		}
	}
	return false
}

// AllMatch checks if all queries match at least one author each.
func AllMatch(queries []Query, authors []reference.Author) bool {
	for _, q := range queries {
		if !q.MatchesAny(authors) {
			return false
		}
	}
	return true
}

func isLower(word string) bool {
	r, _ := utf8.DecodeRuneInString(word)
	return unicode.IsLower(r)
}
