package draw

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Color is a straight-alpha RGBA color. Premultiplication happens when the
// color is handed to Ebitengine.
type Color struct {
	R, G, B, A uint8
}

var (
	ColorRed         = Color{255, 0, 0, 255}
	ColorGreen       = Color{0, 255, 0, 255}
	ColorBlue        = Color{0, 0, 255, 255}
	ColorBlack       = Color{0, 0, 0, 255}
	ColorWhite       = Color{255, 255, 255, 255}
	ColorTransparent = Color{0, 0, 0, 0}
)

// WithAlpha returns c with its alpha channel replaced.
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

// NRGBA converts to the standard library's straight-alpha color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

func (c Color) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", c.R, c.G, c.B, c.A)
}

// AlphaFromPercentage converts a 0..1 opacity into an alpha byte. The
// percentage is clamped before scaling so timer overshoot never wraps.
func AlphaFromPercentage(p float64) uint8 {
	p = math.Max(0, math.Min(1, p))
	return uint8(255 * p)
}

// ScaleAlpha multiplies a by a 0..1 factor, clamping the factor first.
func ScaleAlpha(a uint8, p float64) uint8 {
	p = math.Max(0, math.Min(1, p))
	return uint8(float64(a) * p)
}

// ParseColor reads "r,g,b" or "r,g,b,a" with each channel in 0..255.
func ParseColor(s string) (Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, fmt.Errorf("draw: color %q: want r,g,b or r,g,b,a", s)
	}
	var ch [4]uint8
	ch[3] = 255
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return Color{}, fmt.Errorf("draw: color %q: %w", s, err)
		}
		ch[i] = uint8(v)
	}
	return Color{ch[0], ch[1], ch[2], ch[3]}, nil
}
