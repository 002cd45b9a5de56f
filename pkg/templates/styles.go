package templates

import (
	"github.com/printerm/printerm/pkg/errors"
)

// Alignment positions a run on the paper or preview line.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Font selects one of the two printer character fonts.
type Font string

const (
	FontA Font = "a"
	FontB Font = "b"
)

// StyleSet is a sparse set of style attributes. A nil field means
// "not specified here"; merging fills it from another set, and
// Resolved applies the printer defaults for anything still unset.
type StyleSet struct {
	Align        *Alignment `yaml:"align,omitempty"`
	Font         *Font      `yaml:"font,omitempty"`
	Bold         *bool      `yaml:"bold,omitempty"`
	Underline    *bool      `yaml:"underline,omitempty"`
	DoubleWidth  *bool      `yaml:"double_width,omitempty"`
	DoubleHeight *bool      `yaml:"double_height,omitempty"`
}

// ResolvedStyle is a StyleSet with every attribute decided.
type ResolvedStyle struct {
	Align        Alignment
	Font         Font
	Bold         bool
	Underline    bool
	DoubleWidth  bool
	DoubleHeight bool
}

// Merge overlays other onto s: attributes set in other win, attributes
// unset in other keep s's value. Neither input is modified.
func (s StyleSet) Merge(other StyleSet) StyleSet {
	out := StyleSet{
		Align:        clonePtr(s.Align),
		Font:         clonePtr(s.Font),
		Bold:         clonePtr(s.Bold),
		Underline:    clonePtr(s.Underline),
		DoubleWidth:  clonePtr(s.DoubleWidth),
		DoubleHeight: clonePtr(s.DoubleHeight),
	}
	if other.Align != nil {
		out.Align = clonePtr(other.Align)
	}
	if other.Font != nil {
		out.Font = clonePtr(other.Font)
	}
	if other.Bold != nil {
		out.Bold = clonePtr(other.Bold)
	}
	if other.Underline != nil {
		out.Underline = clonePtr(other.Underline)
	}
	if other.DoubleWidth != nil {
		out.DoubleWidth = clonePtr(other.DoubleWidth)
	}
	if other.DoubleHeight != nil {
		out.DoubleHeight = clonePtr(other.DoubleHeight)
	}
	return out
}

// Resolved fills unset attributes with the printer defaults:
// left alignment, font A, all toggles off.
func (s StyleSet) Resolved() ResolvedStyle {
	out := ResolvedStyle{Align: AlignLeft, Font: FontA}
	if s.Align != nil {
		out.Align = *s.Align
	}
	if s.Font != nil {
		out.Font = *s.Font
	}
	if s.Bold != nil {
		out.Bold = *s.Bold
	}
	if s.Underline != nil {
		out.Underline = *s.Underline
	}
	if s.DoubleWidth != nil {
		out.DoubleWidth = *s.DoubleWidth
	}
	if s.DoubleHeight != nil {
		out.DoubleHeight = *s.DoubleHeight
	}
	return out
}

// IsZero reports whether no attribute is set.
func (s StyleSet) IsZero() bool {
	return s.Align == nil && s.Font == nil && s.Bold == nil &&
		s.Underline == nil && s.DoubleWidth == nil && s.DoubleHeight == nil
}

// Validate checks that every set attribute carries a recognized value.
func (s StyleSet) Validate() error {
	if s.Align != nil {
		switch *s.Align {
		case AlignLeft, AlignCenter, AlignRight:
		default:
			return errors.New(errors.ErrTemplateSchema, "invalid align value").
				WithDetail("value", string(*s.Align))
		}
	}
	if s.Font != nil {
		switch *s.Font {
		case FontA, FontB:
		default:
			return errors.New(errors.ErrTemplateSchema, "invalid font value").
				WithDetail("value", string(*s.Font))
		}
	}
	return nil
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Ptr returns a pointer to a, for building sparse StyleSets in code.
func (a Alignment) Ptr() *Alignment { return &a }

// Ptr returns a pointer to f, for building sparse StyleSets in code.
func (f Font) Ptr() *Font { return &f }

// Bool returns a pointer to v, for building sparse StyleSets in code.
func Bool(v bool) *bool { return &v }
