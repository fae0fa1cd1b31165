package draw

import (
	"bytes"
	"fmt"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/phanxgames/thicket/geometry"
)

const fontLineCacheSize = 256

type lineKey struct {
	line  string
	color Color
}

// Font wraps a text/v2 face together with a cache of rendered lines.
type Font struct {
	face  text.Face
	lh    float64
	lines *lru.Cache[lineKey, Drawing]
}

// NewFont wraps face.
func NewFont(face text.Face) *Font {
	m := face.Metrics()
	lines, _ := lru.New[lineKey, Drawing](fontLineCacheSize)
	return &Font{face: face, lh: m.HAscent + m.HDescent + m.HLineGap, lines: lines}
}

// LoadFont parses TrueType or OpenType data at the given pixel size.
func LoadFont(ttf []byte, size float64) (*Font, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttf))
	if err != nil {
		return nil, fmt.Errorf("draw: parse font: %w", err)
	}
	return NewFont(&text.GoTextFace{Source: source, Size: size}), nil
}

// DefaultFont is the 7x13 bitmap face from x/image, shared by every config
// that does not name a font.
var DefaultFont = sync.OnceValue(func() *Font {
	return NewFont(text.NewGoXFace(basicfont.Face7x13))
})

// Face returns the underlying face.
func (f *Font) Face() text.Face { return f.face }

// LineHeight returns the distance between baselines.
func (f *Font) LineHeight() float64 { return f.lh }

// Measure returns the size of s rendered on one line.
func (f *Font) Measure(s string) geometry.Size {
	w, _ := text.Measure(s, f.face, f.lh)
	return geometry.SizeOf(w, f.lh)
}

// Render returns s drawn in c. Lines are cached by content and color.
func (f *Font) Render(s string, c Color) Drawing {
	key := lineKey{s, c}
	if d, ok := f.lines.Get(key); ok {
		return d
	}
	w, _ := text.Measure(s, f.face, f.lh)
	img := ebiten.NewImage(max(int(math.Ceil(w)), 1), max(int(math.Ceil(f.lh)), 1))
	op := &text.DrawOptions{}
	op.ColorScale.ScaleWithColor(c)
	op.LineSpacing = f.lh
	text.Draw(img, s, f.face, op)
	d := NewDrawing(img)
	f.lines.Add(key, d)
	return d
}
