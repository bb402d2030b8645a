package surprise

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Font wraps Ebitengine's text/v2 for TrueType font rendering.
type Font struct {
	face *text.GoTextFace
	size float64
	lh   float64 // cached line height
}

// LoadFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadFont(ttfData []byte, size float64) (*Font, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("surprise: failed to parse TTF data: %w", err)
	}
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &Font{face: face, size: size, lh: m.HAscent + m.HDescent + m.HLineGap}, nil
}

// MeasureString returns the width and height of the rendered text.
func (f *Font) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *Font) LineHeight() float64 {
	return f.lh
}

// TextBlock holds the content and layout options of a text node.
type TextBlock struct {
	Content string
	Font    *Font
	Color   Color
	Align   TextAlign
	// WrapWidth wraps lines at word boundaries when > 0.
	WrapWidth float64

	dirty     bool
	lines     []string
	measuredW float64
	measuredH float64
	image     *ebiten.Image
}

// SetContent replaces the text and schedules a re-layout.
func (tb *TextBlock) SetContent(s string) {
	if tb.Content == s {
		return
	}
	tb.Content = s
	tb.dirty = true
}

// Invalidate forces a re-layout and re-render on next use.
func (tb *TextBlock) Invalidate() {
	tb.dirty = true
}

// Measure returns the laid-out size of the block.
func (tb *TextBlock) Measure() (w, h float64) {
	tb.layout()
	return tb.measuredW, tb.measuredH
}

func (tb *TextBlock) layout() {
	if !tb.dirty && tb.lines != nil {
		return
	}
	if tb.Font == nil {
		tb.lines = []string{}
		tb.measuredW, tb.measuredH = 0, 0
		return
	}
	measure := func(s string) float64 {
		w, _ := tb.Font.MeasureString(s)
		return w
	}
	tb.lines = wrapText(tb.Content, tb.WrapWidth, measure)
	tb.measuredW = 0
	for _, l := range tb.lines {
		if w := measure(l); w > tb.measuredW {
			tb.measuredW = w
		}
	}
	tb.measuredH = float64(len(tb.lines)) * tb.Font.lh
}

// wrapText splits content into lines no wider than width according to
// measure. Explicit newlines are preserved. A single word wider than width
// gets a line of its own.
func wrapText(content string, width float64, measure func(string) float64) []string {
	var out []string
	for _, para := range strings.Split(content, "\n") {
		if width <= 0 {
			out = append(out, para)
			continue
		}
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if measure(candidate) > width {
				out = append(out, line)
				line = w
				continue
			}
			line = candidate
		}
		out = append(out, line)
	}
	return out
}

// render returns the cached image of the block, redrawing it when dirty.
func (tb *TextBlock) render() *ebiten.Image {
	wasDirty := tb.dirty || tb.lines == nil
	tb.layout()
	if tb.measuredW == 0 || tb.measuredH == 0 {
		return nil
	}
	if !wasDirty && tb.image != nil {
		return tb.image
	}
	tb.dirty = false

	w := int(tb.measuredW) + 1
	h := int(tb.measuredH) + 1
	if tb.image != nil {
		b := tb.image.Bounds()
		if b.Dx() != w || b.Dy() != h {
			tb.image.Deallocate()
			tb.image = nil
		} else {
			tb.image.Clear()
		}
	}
	if tb.image == nil {
		tb.image = ebiten.NewImage(w, h)
	}

	op := &text.DrawOptions{}
	op.ColorScale.Scale(float32(tb.Color.R), float32(tb.Color.G), float32(tb.Color.B), float32(tb.Color.A))
	op.LineSpacing = tb.Font.lh
	for i, line := range tb.lines {
		lw, _ := tb.Font.MeasureString(line)
		x := 0.0
		switch tb.Align {
		case TextAlignCenter:
			x = (tb.measuredW - lw) / 2
		case TextAlignRight:
			x = tb.measuredW - lw
		}
		op.GeoM.Reset()
		op.GeoM.Translate(x, float64(i)*tb.Font.lh)
		text.Draw(tb.image, line, tb.Font.face, op)
	}
	return tb.image
}
