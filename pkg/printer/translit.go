package printer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTable maps letters whose ASCII form is not recovered by stripping
// combining marks.
var foldTable = map[rune]string{
	'ł': "l", 'Ł': "L",
	'ø': "o", 'Ø': "O",
	'æ': "ae", 'Æ': "AE",
	'œ': "oe", 'Œ': "OE",
	'ß': "ss",
	'đ': "d", 'Đ': "D",
	'ð': "d", 'Ð': "D",
	'þ': "th", 'Þ': "Th",
}

// Transliterate maps text to its closest ASCII form: fold-table
// replacements first, then a decomposition pass that strips combining
// marks. Runes with no ASCII form are dropped.
func Transliterate(text string) string {
	var pre strings.Builder
	pre.Grow(len(text))
	for _, r := range text {
		if repl, ok := foldTable[r]; ok {
			pre.WriteString(repl)
			continue
		}
		pre.WriteRune(r)
	}

	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(stripMarks, pre.String())
	if err != nil {
		stripped = pre.String()
	}

	var out strings.Builder
	out.Grow(len(stripped))
	for _, r := range stripped {
		if r < utf8.RuneSelf {
			out.WriteRune(r)
		}
	}
	return out.String()
}
