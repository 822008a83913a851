// Package sanitize turns BibTeX free text into strings that are safe to use
// as file names, markdown links and hierarchical tag segments.
package sanitize

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ErrUnsupportedMarkup is wrapped by *Error when a title still contains
// LaTeX markup after all known sequences have been removed.
var ErrUnsupportedMarkup = errors.New("unsupported markup")

// Error reports a title that could not be made link-safe.
// It indicates a missing sanitizer rule, not a transient failure.
type Error struct {
	Text   string // original input
	Result string // text after all substitutions
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v in title \"%s\" (left \"%s\")", ErrUnsupportedMarkup, e.Text, e.Result)
}

func (e *Error) Unwrap() error {
	return ErrUnsupportedMarkup
}

// spacing, dash and ampersand rewrites, applied before command removal.
var linkRewrites = strings.NewReplacer(
	`\\`, " ",
	`\hspace`, " ",
	"0.167em", "",
	`\,`, " ",
	`\textendash`, "-",
	`\textemdash`, "-",
	`\&`, " and ",
)

// linkCommands are removed outright.
var linkCommands = []string{
	`\"`,
	`\mathrm`,
	`\textquotesingle`,
	`\sum`,
	`\textquotedblleft`,
	`\textquotedblright`,
	`\textdollar`,
	`\textbackslashhbox`,
	`\lbrace`,
	`\rbrace`,
}

// Link makes a title safe for use as a file name and markdown link target.
// Runs of whitespace left by the rewrites collapse to a single space.
// It fails with *Error if a backslash survives, i.e. the title uses a LaTeX
// command with no rule here.
func Link(text string) (string, error) {
	s := linkRewrites.Replace(text)
	for _, cmd := range linkCommands {
		s = strings.ReplaceAll(s, cmd, "")
	}
	s = unescapeSymbols(s)
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune("[]{}$^", r) {
			return -1
		}
		return r
	}, s)
	s = strings.ReplaceAll(s, "/", " or ")
	s = strings.Join(strings.Fields(s), " ")

	if strings.ContainsRune(s, '\\') {
		return "", &Error{Text: text, Result: s}
	}
	return s, nil
}

// unescapeSymbols drops the backslash of control symbols (\%, \_, \', ...).
// Control words (a backslash followed by a letter) are left in place.
func unescapeSymbols(s string) string {
	rs := []rune(s)
	var b strings.Builder
	for i := 0; i < len(rs); i++ {
		isWord := rs[i] == '\\' && i+1 < len(rs) && unicode.IsLetter(rs[i+1])
		if rs[i] != '\\' || isWord {
			b.WriteRune(rs[i])
		}
	}
	return b.String()
}

// tagStrip lists the characters removed from tag segments.
const tagStrip = ",. {}():"

// accents maps LaTeX accent escapes (with braces already stripped) to letters.
var accents = strings.NewReplacer(
	`\"u`, "ü",
	`\"o`, "ö",
	`\"a`, "ä",
	`\"U`, "Ü",
	`\"O`, "Ö",
	`\"A`, "Ä",
	`\'e`, "é",
	`\'E`, "É",
	"\\`e", "è",
	`\^o`, "ô",
	`\ss`, "ß",
)

// Tag makes author names, years and journal names usable as a tag path
// segment or wikilink target. Unmapped characters pass through; it never fails.
func Tag(text string) string {
	s := strings.Map(func(r rune) rune {
		if strings.ContainsRune(tagStrip, r) {
			return -1
		}
		return r
	}, text)
	s = accents.Replace(s)
	return norm.NFC.String(s)
}

// URL decodes a url field the way it is exported by reference managers:
// percent-decoding (invalid escapes pass through), then the "\%2" escape
// becomes "/" and all remaining backslashes are dropped.
func URL(raw string) string {
	s := percentDecode(raw)
	s = strings.ReplaceAll(s, `\%2`, "/")
	return strings.ReplaceAll(s, `\`, "")
}

func percentDecode(s string) string {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			b = append(b, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
			continue
		}
		b = append(b, s[i])
	}
	return strings.ToValidUTF8(string(b), "�")
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
