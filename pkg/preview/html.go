package preview

import (
	"github.com/beevik/etree"

	"github.com/printerm/printerm/pkg/render"
	"github.com/printerm/printerm/pkg/templates"
)

// HTML renders runs as markup for the web preview pane: one div per
// line carrying the alignment class, and per fragment one annotation
// element for each styled attribute. Text content is escaped by the
// serializer and otherwise untouched.
func HTML(runs []render.Run) (string, error) {
	lines, err := buildLines(runs)
	if err != nil {
		return "", err
	}

	doc := etree.NewDocument()
	receipt := doc.CreateElement("div")
	receipt.CreateAttr("class", "receipt")

	for _, l := range lines {
		lineEl := receipt.CreateElement("div")
		lineEl.CreateAttr("class", "line align-"+string(l.lead().Align))
		if l.raw() == "" {
			lineEl.CreateElement("br")
			continue
		}
		for _, frag := range l {
			annotate(lineEl, frag.style).CreateText(frag.text)
		}
	}

	return doc.WriteToString()
}

// annotate nests one element per styled attribute under parent and
// returns the innermost, where the fragment text belongs.
func annotate(parent *etree.Element, style templates.ResolvedStyle) *etree.Element {
	current := parent
	if style.Bold {
		current = current.CreateElement("b")
	}
	if style.Underline {
		current = current.CreateElement("u")
	}
	if style.DoubleWidth {
		el := current.CreateElement("span")
		el.CreateAttr("class", "double-width")
		current = el
	}
	if style.DoubleHeight {
		el := current.CreateElement("span")
		el.CreateAttr("class", "double-height")
		current = el
	}
	if style.Font == templates.FontB {
		el := current.CreateElement("span")
		el.CreateAttr("class", "font-b")
		current = el
	}
	return current
}
