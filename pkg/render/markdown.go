package render

import (
	"strings"

	"github.com/printerm/printerm/pkg/templates"
)

// Span is a piece of markdown-parsed text with the style overrides its
// markers imply. Overrides are sparse; merging them onto the owning
// segment's base style happens in Compose.
type Span struct {
	Text      string
	Overrides templates.StyleSet
}

// ParseMarkdown splits expanded segment text into spans using the
// restricted inline subset: **bold**, *emphasis* or _emphasis_
// (rendered as underline), and # heading lines rendered as enlarged
// bold text. Anything else passes through literally. Trailing newlines
// are dropped; interior newlines become their own separator spans.
// Empty input produces no spans.
func ParseMarkdown(text string) []Span {
	trimmed := strings.TrimRight(text, "\n")
	if trimmed == "" {
		return nil
	}

	var spans []Span
	for i, line := range strings.Split(trimmed, "\n") {
		if i > 0 {
			spans = append(spans, Span{Text: "\n"})
		}
		if heading, ok := headingText(line); ok {
			if heading != "" {
				spans = append(spans, Span{Text: heading, Overrides: templates.StyleSet{
					Bold:         templates.Bool(true),
					DoubleWidth:  templates.Bool(true),
					DoubleHeight: templates.Bool(true),
				}})
			}
			continue
		}
		spans = append(spans, parseInline(line)...)
	}
	return spans
}

// headingText unwraps a "# ..." line. All heading levels (up to six
// marker characters) render the same on paper.
func headingText(line string) (string, bool) {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return "", false
	}
	if level >= len(line) || line[level] != ' ' {
		return "", false
	}
	return strings.TrimLeft(line[level:], " "), true
}

func parseInline(line string) []Span {
	var spans []Span
	var literal strings.Builder

	flush := func() {
		if literal.Len() > 0 {
			spans = append(spans, Span{Text: literal.String()})
			literal.Reset()
		}
	}

	i := 0
	for i < len(line) {
		switch {
		case strings.HasPrefix(line[i:], "**"):
			end := strings.Index(line[i+2:], "**")
			if end > 0 {
				flush()
				spans = append(spans, Span{
					Text:      line[i+2 : i+2+end],
					Overrides: templates.StyleSet{Bold: templates.Bool(true)},
				})
				i += end + 4
				continue
			}
			// no closing marker with content, keep literally
			literal.WriteString("**")
			i += 2
		case line[i] == '*' || line[i] == '_':
			marker := line[i]
			end := strings.IndexByte(line[i+1:], marker)
			if end > 0 {
				flush()
				spans = append(spans, Span{
					Text:      line[i+1 : i+1+end],
					Overrides: templates.StyleSet{Underline: templates.Bool(true)},
				})
				i += end + 2
				continue
			}
			literal.WriteByte(marker)
			i++
		default:
			literal.WriteByte(line[i])
			i++
		}
	}
	flush()
	return spans
}
