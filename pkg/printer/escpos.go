// Package printer encodes run sequences into ESC/POS byte streams and
// ships them to a network thermal printer.
//
// The encoder is device-stateful: alignment, font and the toggle
// attributes are tracked across runs, and a control sequence is written
// only when the desired state differs from what the device already
// shows. Every document starts with a full reset and ends with a paper
// feed and a cut.
package printer

import (
	"bytes"
	"io"

	"github.com/printerm/printerm/pkg/errors"
	"github.com/printerm/printerm/pkg/render"
	"github.com/printerm/printerm/pkg/templates"
)

const (
	esc byte = 0x1B
	gs  byte = 0x1D
)

// cutFeedLines is how far the paper advances before the cut, so the
// last printed line clears the blade.
const cutFeedLines = 4

// Encoder writes ESC/POS commands and text to w, emitting style
// commands only when an attribute actually changes.
type Encoder struct {
	w       io.Writer
	current templates.ResolvedStyle
	ascii   bool
}

// NewEncoder returns an encoder writing to w. With asciiOnly set, run
// text is transliterated to ASCII before encoding; otherwise it is
// sent as UTF-8 and the device's code page decides what appears.
func NewEncoder(w io.Writer, asciiOnly bool) *Encoder {
	return &Encoder{w: w, ascii: asciiOnly}
}

// Init resets the device and the tracked state to the printer defaults.
func (e *Encoder) Init() error {
	e.current = templates.StyleSet{}.Resolved()
	return e.emit(esc, '@')
}

// WriteRun switches the device to the run's style and writes its text.
func (e *Encoder) WriteRun(run render.Run) error {
	if err := e.applyStyle(run.Style); err != nil {
		return err
	}
	text := run.Text
	if e.ascii {
		text = Transliterate(text)
	}
	_, err := io.WriteString(e.w, text)
	return err
}

// Feed advances the paper by the given number of lines.
func (e *Encoder) Feed(lines int) error {
	if lines < 0 {
		lines = 0
	}
	if lines > 255 {
		lines = 255
	}
	return e.emit(esc, 'd', byte(lines))
}

// Cut feeds to the cutting position and cuts the paper.
func (e *Encoder) Cut() error {
	return e.emit(gs, 'V', 0x42, 0x00)
}

func (e *Encoder) applyStyle(style templates.ResolvedStyle) error {
	alignCode, ok := alignCodes[style.Align]
	if !ok {
		return errors.Newf(errors.ErrRender, "Unknown align value '%s'", style.Align)
	}
	fontCode, ok := fontCodes[style.Font]
	if !ok {
		return errors.Newf(errors.ErrRender, "Unknown font value '%s'", style.Font)
	}

	if style.Align != e.current.Align {
		if err := e.emit(esc, 'a', alignCode); err != nil {
			return err
		}
	}
	if style.Font != e.current.Font {
		if err := e.emit(esc, 'M', fontCode); err != nil {
			return err
		}
	}
	if style.Bold != e.current.Bold {
		if err := e.emit(esc, 'E', flag(style.Bold)); err != nil {
			return err
		}
	}
	if style.Underline != e.current.Underline {
		if err := e.emit(esc, '-', flag(style.Underline)); err != nil {
			return err
		}
	}
	if style.DoubleWidth != e.current.DoubleWidth || style.DoubleHeight != e.current.DoubleHeight {
		if err := e.emit(gs, '!', sizeCode(style.DoubleWidth, style.DoubleHeight)); err != nil {
			return err
		}
	}

	e.current = style
	return nil
}

func (e *Encoder) emit(b ...byte) error {
	_, err := e.w.Write(b)
	return err
}

var alignCodes = map[templates.Alignment]byte{
	templates.AlignLeft:   0,
	templates.AlignCenter: 1,
	templates.AlignRight:  2,
}

var fontCodes = map[templates.Font]byte{
	templates.FontA: 0,
	templates.FontB: 1,
}

func flag(on bool) byte {
	if on {
		return 1
	}
	return 0
}

// sizeCode packs the character size into the GS ! argument: the high
// nibble holds the width magnification, the low nibble the height.
func sizeCode(doubleWidth, doubleHeight bool) byte {
	var n byte
	if doubleWidth {
		n |= 0x10
	}
	if doubleHeight {
		n |= 0x01
	}
	return n
}

// EncodeDocument encodes a full document: reset, the runs in order,
// then the feed-and-cut trailer. Style errors abort before any byte
// would reach a device.
func EncodeDocument(runs []render.Run, asciiOnly bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf, asciiOnly)
	if err := enc.Init(); err != nil {
		return nil, err
	}
	for _, run := range runs {
		if err := enc.WriteRun(run); err != nil {
			return nil, err
		}
	}
	if err := enc.Feed(cutFeedLines); err != nil {
		return nil, err
	}
	if err := enc.Cut(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
