package thicket

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/thicket/timing"
)

const fpsRefresh timing.Millisecond = 500

// fpsOverlay shows the measured FPS and TPS, refreshed every half second.
type fpsOverlay struct {
	visible bool
	since   timing.Millisecond
	label   string
	img     *ebiten.Image
}

// tick reports whether the label was refreshed.
func (f fpsOverlay) tick(dt timing.Millisecond) (fpsOverlay, bool) {
	if !f.visible {
		return f, false
	}
	f.since += dt
	if f.label != "" && f.since < fpsRefresh {
		return f, false
	}
	f.since = 0
	f.label = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	return f, true
}

// title appends the counters to the window title while they are visible.
func (f fpsOverlay) title(base string) string {
	if !f.visible || f.label == "" {
		return base
	}
	return fmt.Sprintf("%s (%s)", base, strings.ReplaceAll(f.label, "\n", ", "))
}

// draw prints the counters on a translucent box in the top-right corner.
func (f *fpsOverlay) draw(screen *ebiten.Image) {
	if f.img == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		f.img = ebiten.NewImage(100, 32)
	}
	f.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(f.img, f.label)

	var op ebiten.DrawImageOptions
	op.GeoM.Translate(float64(screen.Bounds().Dx()-100), 0)
	screen.DrawImage(f.img, &op)
}
