package normalizer

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "plain", input: "Hello world.", want: "Hello world."},
		{name: "tags", input: "<p>Hello <b>World</b></p>", want: "Hello World"},
		{name: "entities", input: "Fish &amp; Chips &quot;to go&quot;", want: `Fish & Chips "to go"`},
		{name: "escaped markup", input: "&lt;b&gt;bold&lt;/b&gt; text", want: "bold text"},
		{name: "script body", input: "<script>alert(1)</script>Visible<style>p{}</style>", want: "Visible"},
		{name: "accents", input: "café naïve", want: "cafe naive"},
		{name: "ligature", input: "ﬁne", want: "fine"},
		{name: "non ascii symbols", input: "€100 — ok", want: "100 ok"},
		{name: "whitespace", input: "  a \n\t b \v c  ", want: "a b c"},
		{name: "bare ampersand", input: "AT&T rocks", want: "AT&T rocks"},
		{name: "less than", input: "1 < 2", want: "1 < 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("invalid normalized text, want %q, got %q", tt.want, got)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"<div>Some <i>nested</i> &amp;amp; escaped &amp;lt;b&amp;gt;markup&amp;lt;/b&amp;gt;</div>",
		"Tabs\tand\nnewlines\r\nand nbsp",
		"Crème brûlée &#169; 2024",
		"plain text already",
		"<<<>>> && ;;",
		"a &" + strings.Repeat("amp;", 20) + "lt;b&gt;x",
	}
	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("normalize is not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestNormalizeDeeplyEscaped(t *testing.T) {
	input := "a &" + strings.Repeat("amp;", 20) + "lt;b&gt;x"
	if got := Normalize(input); got != "a x" {
		t.Errorf("Normalize(%q) = %q, want %q", input, got, "a x")
	}
}
