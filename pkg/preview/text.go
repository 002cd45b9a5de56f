package preview

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/printerm/printerm/pkg/render"
	"github.com/printerm/printerm/pkg/templates"
)

// largeMarker flags double-width or double-height lines in the text
// preview, where actual character sizing is not possible.
const largeMarker = "[LARGE] "

// emptyMessage replaces a preview that would show nothing.
const emptyMessage = "Template contains only whitespace/formatting.\n" +
	"Check template definition for content."

// Text renders runs as a plain-text approximation of the printed
// document. Bold fragments are wrapped in ** markers, enlarged lines
// carry a [LARGE] marker, and lines are wrapped and aligned to width
// columns. Underline and font have no plain-text affordance; the HTML
// flavor carries them.
func Text(runs []render.Run, width int) (string, error) {
	if width <= 0 {
		width = 32
	}

	lines, err := buildLines(runs)
	if err != nil {
		return "", err
	}

	var out []string
	for _, l := range lines {
		out = append(out, textLine(l, width)...)
	}

	text := strings.Join(out, "\n")
	if strings.TrimSpace(text) == "" {
		return emptyMessage, nil
	}
	return text, nil
}

func textLine(l line, width int) []string {
	raw := l.raw()
	if strings.TrimSpace(raw) == "" {
		return []string{raw}
	}

	var sb strings.Builder
	for _, frag := range l {
		if frag.style.Bold && strings.TrimSpace(frag.text) != "" {
			sb.WriteString("**")
			sb.WriteString(frag.text)
			sb.WriteString("**")
			continue
		}
		sb.WriteString(frag.text)
	}
	display := sb.String()

	lead := l.lead()
	if lead.DoubleWidth || lead.DoubleHeight {
		display = largeMarker + display
	}

	wrapped := wrapLine(display, width)
	for i, piece := range wrapped {
		wrapped[i] = alignLine(piece, width, lead.Align)
	}
	return wrapped
}

// wrapLine chunks s into width-column pieces, measuring display cells
// rather than bytes so wide runes keep their place.
func wrapLine(s string, width int) []string {
	if runewidth.StringWidth(s) <= width {
		return []string{s}
	}
	var lines []string
	for len(s) > 0 {
		chunk := runewidth.Truncate(s, width, "")
		if chunk == "" {
			// Advance at least one rune to avoid an infinite loop.
			r := []rune(s)
			chunk = string(r[0])
		}
		lines = append(lines, chunk)
		s = s[len(chunk):]
	}
	return lines
}

// alignLine pads on the left only, so preview lines never end in
// invisible trailing spaces.
func alignLine(s string, width int, align templates.Alignment) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case templates.AlignCenter:
		return strings.Repeat(" ", pad/2) + s
	case templates.AlignRight:
		return strings.Repeat(" ", pad) + s
	default:
		return s
	}
}
