// Package normalizer turns raw, possibly HTML-laden input into plain
// printable ASCII text with single spaces between words.
package normalizer

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"
)

// printable mirrors the ASCII printable set: digits, letters, punctuation
// and the six whitespace characters.
var printable = func() [128]bool {
	var set [128]bool
	for c := 0x20; c < 0x7f; c++ {
		set[c] = true
	}
	for _, c := range " \t\n\r\x0b\x0c" {
		set[c] = true
	}
	return set
}()

// Normalize unescapes HTML entities, strips tags (script and style bodies
// included), applies NFKD, drops everything outside printable ASCII and
// collapses whitespace runs to single spaces.
//
// Escaped markup such as "&lt;b&gt;" turns into real tags once unescaped,
// so the cleanup is repeated until the text stops changing. That makes
// Normalize idempotent: Normalize(Normalize(x)) == Normalize(x). After the
// first pass every change shortens the text, so its length bounds the loop.
func Normalize(text string) string {
	if text == "" {
		return text
	}
	cleaned := clean(text)
	for passes := len(cleaned); passes >= 0; passes-- {
		next := clean(cleaned)
		if next == cleaned {
			break
		}
		cleaned = next
	}
	return cleaned
}

func clean(text string) string {
	text = stripTags(html.UnescapeString(text))
	text = asciiOnly(norm.NFKD.String(text))
	return strings.Join(strings.Fields(text), " ")
}

func stripTags(text string) string {
	if !strings.ContainsAny(text, "<&") {
		return text
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return text
	}
	doc.Find("script, style, noscript, template").Remove()
	return doc.Text()
}

func asciiOnly(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for i := 0; i < len(text); i++ {
		if c := text[i]; c < 0x80 && printable[c] {
			sb.WriteByte(c)
		}
	}
	return sb.String()
}
