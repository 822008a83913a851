// Package bibtex reads BibTeX databases into reference entries.
//
// The reader keeps entries and fields in source order so that records
// re-derived from an entry are stable across runs.
package bibtex

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/matsen/obscat/internal/reference"
)

// ErrDuplicateKey is returned when two entries share a citation key.
var ErrDuplicateKey = errors.New("repeated bibliography entry")

// SyntaxError reports malformed BibTeX input.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// monthMacros are the predefined BibTeX month abbreviations.
var monthMacros = map[string]string{
	"jan": "January",
	"feb": "February",
	"mar": "March",
	"apr": "April",
	"may": "May",
	"jun": "June",
	"jul": "July",
	"aug": "August",
	"sep": "September",
	"oct": "October",
	"nov": "November",
	"dec": "December",
}

// personFields are moved out of Entry.Fields into Authors/Editors.
var personFields = map[string]bool{"author": true, "editor": true}

// ParseFile reads and parses the BibTeX file at path.
func ParseFile(path string) (*reference.Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening bibliography: %w", err)
	}
	defer f.Close()

	db, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return db, nil
}

// Parse parses a BibTeX database from r.
func Parse(r io.Reader) (*reference.Database, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading bibliography: %w", err)
	}

	p := &parser{
		src:  []rune(string(data)),
		line: 1,
		db:   &reference.Database{Strings: make(map[string]string)},
		seen: make(map[string]bool),
	}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.db, nil
}

type parser struct {
	src  []rune
	pos  int
	line int
	db   *reference.Database
	seen map[string]bool // lower-cased keys
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return &SyntaxError{Line: p.line, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) next() rune {
	r := p.src[p.pos]
	p.pos++
	if r == '\n' {
		p.line++
	}
	return r
}

func (p *parser) skipSpace() {
	for !p.eof() && unicode.IsSpace(p.peek()) {
		p.next()
	}
}

func (p *parser) expect(r rune) error {
	p.skipSpace()
	if p.eof() {
		return p.errorf("expected %q, got end of input", r)
	}
	if got := p.peek(); got != r {
		return p.errorf("expected %q, got %q", r, got)
	}
	p.next()
	return nil
}

func (p *parser) parse() error {
	for {
		// Text outside of @-commands is a comment.
		for !p.eof() && p.peek() != '@' {
			p.next()
		}
		if p.eof() {
			return nil
		}
		p.next() // @
		if err := p.parseCommand(); err != nil {
			return err
		}
	}
}

func (p *parser) parseCommand() error {
	p.skipSpace()
	kind := strings.ToLower(p.readIdent())
	if kind == "" {
		return p.errorf("expected entry type after '@'")
	}

	p.skipSpace()
	var closing rune
	switch p.peek() {
	case '{':
		closing = '}'
	case '(':
		closing = ')'
	default:
		if kind == "comment" {
			// "@comment some text" runs to the end of the line.
			for !p.eof() && p.peek() != '\n' {
				p.next()
			}
			return nil
		}
		return p.errorf("expected '{' or '(' after @%s", kind)
	}
	p.next()

	switch kind {
	case "comment":
		return p.skipGroup(closing)
	case "preamble":
		v, err := p.parseValue()
		if err != nil {
			return err
		}
		p.db.Preambles = append(p.db.Preambles, v)
		return p.expect(closing)
	case "string":
		name, value, err := p.parseField()
		if err != nil {
			return err
		}
		p.db.Strings[name] = value
		return p.expect(closing)
	default:
		return p.parseEntry(kind, closing)
	}
}

// skipGroup consumes input up to the closing delimiter, honouring nested braces.
func (p *parser) skipGroup(closing rune) error {
	depth := 0
	for !p.eof() {
		r := p.next()
		switch {
		case r == '{':
			depth++
		case r == '}' && depth > 0:
			depth--
		case r == closing && depth == 0:
			return nil
		}
	}
	return p.errorf("unterminated @comment")
}

func (p *parser) parseEntry(kind string, closing rune) error {
	startLine := p.line
	p.skipSpace()
	key := p.readKey(closing)
	if key == "" {
		return p.errorf("missing citation key")
	}

	lower := strings.ToLower(key)
	if p.seen[lower] {
		return fmt.Errorf("%w: %s (line %d)", ErrDuplicateKey, key, startLine)
	}
	p.seen[lower] = true

	entry := reference.Entry{Key: key, Type: kind}

	for {
		p.skipSpace()
		if p.eof() {
			return p.errorf("unterminated entry %s", key)
		}
		switch p.peek() {
		case closing:
			p.next()
			p.db.Entries = append(p.db.Entries, entry)
			return nil
		case ',':
			p.next()
			continue
		}

		name, value, err := p.parseField()
		if err != nil {
			return err
		}

		switch name {
		case "author":
			entry.Authors = append(entry.Authors, ParsePersons(value)...)
		case "editor":
			entry.Editors = append(entry.Editors, ParsePersons(value)...)
		default:
			entry.Fields = append(entry.Fields, reference.Field{Name: name, Value: value})
		}

		p.skipSpace()
		if p.eof() {
			return p.errorf("unterminated entry %s", key)
		}
		if r := p.peek(); r != ',' && r != closing {
			return p.errorf("expected ',' or %q after field %s, got %q", closing, name, r)
		}
	}
}

// parseField parses "name = value" and returns the lower-cased name.
func (p *parser) parseField() (string, string, error) {
	p.skipSpace()
	name := strings.ToLower(p.readIdent())
	if name == "" {
		return "", "", p.errorf("expected field name, got %q", p.peek())
	}
	if err := p.expect('='); err != nil {
		return "", "", err
	}
	value, err := p.parseValue()
	if err != nil {
		return "", "", err
	}
	return name, value, nil
}

// parseValue parses one or more '#'-joined pieces and collapses whitespace.
func (p *parser) parseValue() (string, error) {
	var b strings.Builder
	for {
		p.skipSpace()
		if p.eof() {
			return "", p.errorf("expected value, got end of input")
		}

		var piece string
		var err error
		switch r := p.peek(); {
		case r == '{':
			p.next()
			piece, err = p.readBraced()
		case r == '"':
			p.next()
			piece, err = p.readQuoted()
		case unicode.IsDigit(r):
			piece = p.readDigits()
		default:
			piece, err = p.readMacro()
		}
		if err != nil {
			return "", err
		}
		b.WriteString(piece)

		p.skipSpace()
		if p.peek() != '#' {
			break
		}
		p.next()
	}
	return strings.Join(strings.Fields(b.String()), " "), nil
}

// readBraced reads up to the matching '}' and keeps inner braces.
func (p *parser) readBraced() (string, error) {
	var b strings.Builder
	depth := 0
	for !p.eof() {
		r := p.next()
		switch r {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return b.String(), nil
			}
			depth--
		}
		b.WriteRune(r)
	}
	return "", p.errorf("unterminated braced value")
}

// readQuoted reads up to the closing '"' at brace depth zero.
func (p *parser) readQuoted() (string, error) {
	var b strings.Builder
	depth := 0
	for !p.eof() {
		r := p.next()
		switch r {
		case '{':
			depth++
		case '}':
			depth--
		case '"':
			if depth == 0 {
				return b.String(), nil
			}
		}
		b.WriteRune(r)
	}
	return "", p.errorf("unterminated quoted value")
}

func (p *parser) readDigits() string {
	start := p.pos
	for !p.eof() && unicode.IsDigit(p.peek()) {
		p.next()
	}
	return string(p.src[start:p.pos])
}

func (p *parser) readMacro() (string, error) {
	name := strings.ToLower(p.readIdent())
	if name == "" {
		return "", p.errorf("unexpected character %q in value", p.peek())
	}
	if v, ok := p.db.Strings[name]; ok {
		return v, nil
	}
	if v, ok := monthMacros[name]; ok {
		return v, nil
	}
	return "", p.errorf("undefined string macro %q", name)
}

// readIdent reads a BibTeX identifier (entry type, field name or macro).
func (p *parser) readIdent() string {
	start := p.pos
	for !p.eof() && isIdentRune(p.peek()) {
		p.next()
	}
	return string(p.src[start:p.pos])
}

// readKey reads a citation key, which ends at ',', whitespace or the closing delimiter.
func (p *parser) readKey(closing rune) string {
	start := p.pos
	for !p.eof() {
		r := p.peek()
		if r == ',' || r == closing || unicode.IsSpace(r) {
			break
		}
		p.next()
	}
	return string(p.src[start:p.pos])
}

func isIdentRune(r rune) bool {
	if unicode.IsSpace(r) {
		return false
	}
	return !strings.ContainsRune(`{}()",=#%'@\`, r)
}
