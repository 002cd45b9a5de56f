// Package preview renders run sequences for on-screen display, as
// plain text or as HTML markup. Both flavors consume the same runs the
// printer target consumes, so what the preview shows is what the paper
// gets.
//
// Display formatting never feeds back into the pipeline: wrapping and
// centering happen on a copy of the text, and validation always sees
// the original run content.
package preview

import (
	"strings"

	"github.com/printerm/printerm/pkg/errors"
	"github.com/printerm/printerm/pkg/render"
	"github.com/printerm/printerm/pkg/templates"
)

// fragment is one run's share of a single display line.
type fragment struct {
	text  string
	style templates.ResolvedStyle
}

type line []fragment

// buildLines splits the run stream at newline characters into display
// lines, keeping each piece tied to its run's style. A trailing newline
// yields a final empty line, matching how the document prints.
func buildLines(runs []render.Run) ([]line, error) {
	var lines []line
	var current line
	for _, run := range runs {
		if err := validateStyle(run.Style); err != nil {
			return nil, err
		}
		parts := strings.Split(run.Text, "\n")
		for i, part := range parts {
			if part != "" {
				current = append(current, fragment{text: part, style: run.Style})
			}
			if i < len(parts)-1 {
				lines = append(lines, current)
				current = nil
			}
		}
	}
	lines = append(lines, current)
	return lines, nil
}

func (l line) raw() string {
	var sb strings.Builder
	for _, frag := range l {
		sb.WriteString(frag.text)
	}
	return sb.String()
}

// lead returns the style governing line-level presentation: the first
// fragment's style, or the defaults for an empty line.
func (l line) lead() templates.ResolvedStyle {
	if len(l) == 0 {
		return templates.StyleSet{}.Resolved()
	}
	return l[0].style
}

func validateStyle(style templates.ResolvedStyle) error {
	switch style.Align {
	case templates.AlignLeft, templates.AlignCenter, templates.AlignRight:
	default:
		return errors.Newf(errors.ErrRender, "Unknown align value '%s'", style.Align)
	}
	switch style.Font {
	case templates.FontA, templates.FontB:
	default:
		return errors.Newf(errors.ErrRender, "Unknown font value '%s'", style.Font)
	}
	return nil
}
