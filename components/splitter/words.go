package splitter

import (
	"strings"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/words"
)

// Words splits a sentence into words. The primary strategy follows the
// Unicode word boundary rules (UAX #29): contractions such as "don't" stay
// whole and punctuation becomes its own word. The fallback splits on
// whitespace.
type Words struct {
	Fallback
}

func NewWords(opts ...Option) *Words {
	var o Options
	o.apply(opts)
	if o.primary == nil {
		o.primary = SegmenterFunc(UnicodeWords)
	}
	return &Words{
		Fallback: Fallback{
			name:     "words",
			primary:  o.primary,
			fallback: strings.Fields,
			logger:   o.logger,
		},
	}
}

// UnicodeWords segments text with the UAX #29 word rules and drops the
// whitespace segments.
func UnicodeWords(text string) ([]string, error) {
	if !utf8.ValidString(text) {
		return nil, errInvalidUTF8
	}
	segmenter := words.NewSegmenter([]byte(text))
	var ret []string
	for segmenter.Next() {
		ret = append(ret, segmenter.Text())
	}
	if err := segmenter.Err(); err != nil {
		return nil, err
	}
	return compact(ret), nil
}
