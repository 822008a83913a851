package sanitize

import (
	"errors"
	"strings"
	"testing"
)

func TestLink(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "A Study of X", "A Study of X"},
		{"en dash", `Fast \textendash{} slow`, "Fast - slow"},
		{"em dash", `Fast\textemdash slow`, "Fast- slow"},
		{"ampersand", `Cats \& Dogs`, "Cats and Dogs"},
		{"ampersand without spaces", `R\&D`, "R and D"},
		{"collapsed spacing", `Line \\ break \, here`, "Line break here"},
		{"slash", "Input/Output", "Input or Output"},
		{"mathrm", `$\mathrm{CO}_2$ capture`, "CO_2 capture"},
		{"quotes", `\textquotedblleft{}Quoted\textquotedblright{} words`, "Quoted words"},
		{"control symbols", `50\% of \$1`, "50% of 1"},
		{"thin space", `A\hspace{0.167em}B`, "A B"},
		{"comma space", `A\,B`, "A B"},
		{"acute accent", `Caf\'e`, "Caf'e"},
		{"line break", `Line\\break`, "Line break"},
		{"umlaut", `M{\"u}ller`, "Muller"},
		{"brackets and carets", "[Draft] x^2", "Draft x2"},
		{"braced lbrace", `\lbrace x\rbrace`, "x"},
		{"trailing backslash", `Odd\`, "Odd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Link(tt.input)
			if err != nil {
				t.Fatalf("Link(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Link(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLink_KnownSequencesLeaveNoBackslash(t *testing.T) {
	sequences := append([]string{
		`\\`, `\hspace{0.167em}`, `\,`, `\textendash`, `\textemdash`, `\&`,
		`\%`, `\_`, `\#`, `\$`, `\{`, `\}`, `\'`,
	}, linkCommands...)

	for _, seq := range sequences {
		title := "Before " + seq + "{x} after"
		got, err := Link(title)
		if err != nil {
			t.Errorf("Link(%q) error = %v", title, err)
			continue
		}
		if strings.Contains(got, `\`) {
			t.Errorf("Link(%q) = %q still contains a backslash", title, got)
		}
	}
}

func TestLink_UnsupportedMarkup(t *testing.T) {
	tests := []string{
		`The $\alpha$ helix`,
		`The {\TeX}book`,
		`\emph{Important} results`,
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := Link(input)
			if !errors.Is(err, ErrUnsupportedMarkup) {
				t.Fatalf("Link(%q) error = %v, want ErrUnsupportedMarkup", input, err)
			}
			var serr *Error
			if !errors.As(err, &serr) {
				t.Fatalf("Link(%q) error is not *Error", input)
			}
			if serr.Text != input {
				t.Errorf("Error.Text = %q, want %q", serr.Text, input)
			}
			if !strings.Contains(err.Error(), input) {
				t.Errorf("error message %q should name the input", err.Error())
			}
		})
	}
}

func TestTag(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Smith, John", "SmithJohn"},
		{`M{\"u}ller, Hans`, "MüllerHans"},
		{`G{\"o}del, Kurt`, "GödelKurt"},
		{`Erd{\'e}lyi, A.`, "ErdélyiA"},
		{"Nature (London): Series A.", "NatureLondonSeriesA"},
		{"2020", "2020"},
		{`\alpha`, `\alpha`},
		{"Unknown Author", "UnknownAuthor"},
		{"Müller", "Müller"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Tag(tt.input); got != tt.want {
				t.Errorf("Tag(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"percent encoded with backslash", `https%3A%2F%2Fexample.com%2Fa%5Cb`, "https://example.com/ab"},
		{"escaped slash", `https://doi.org/10.1000\%2F123`, "https://doi.org/10.1000/123"},
		{"dangling escape", `http://x.org/a\%2`, "http://x.org/a/"},
		{"invalid escape passes through", "http://x.org/100%zz", "http://x.org/100%zz"},
		{"underscore escape", `http://x.org/a\_b`, "http://x.org/a_b"},
		{"placeholder", "Unknown URL", "Unknown URL"},
		{"utf8", "http://x.org/caf%C3%A9", "http://x.org/café"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := URL(tt.input)
			if got != tt.want {
				t.Errorf("URL(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if strings.Contains(got, `\`) {
				t.Errorf("URL(%q) = %q contains a backslash", tt.input, got)
			}
		})
	}
}
