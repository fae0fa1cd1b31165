package draw

import (
	"strings"
	"unicode/utf8"

	"github.com/phanxgames/thicket/geometry"
	"github.com/phanxgames/thicket/timing"
)

// TextConfig controls how messages are laid out.
type TextConfig struct {
	Font        *Font
	Color       Color
	LineSpacing float64
	// MarginToOtherText separates consecutive members of a TextGroup on the
	// same line.
	MarginToOtherText float64
}

// DefaultTextConfig renders black text in the default font.
func DefaultTextConfig() TextConfig {
	return TextConfig{Color: ColorBlack, LineSpacing: 2, MarginToOtherText: 4}
}

func (c TextConfig) WithColor(col Color) TextConfig {
	c.Color = col
	return c
}

func (c TextConfig) WithFont(f *Font) TextConfig {
	c.Font = f
	return c
}

func (c TextConfig) font() *Font {
	if c.Font == nil {
		return DefaultFont()
	}
	return c.Font
}

// LineHeight is the font's line height plus the configured spacing.
func (c TextConfig) LineHeight() float64 {
	return c.font().LineHeight() + c.LineSpacing
}

// Text is a message laid out into lines. Newlines always break; with a
// WrapWidth, words are also packed greedily into lines no wider than it.
type Text struct {
	Message   string
	Config    TextConfig
	WrapWidth geometry.Width

	// limit caps the number of visible runes once sliced is set. Layout always
	// runs on the full message so a partial text never reflows.
	limit  int
	sliced bool
}

// NewText lays out msg with cfg.
func NewText(msg string, cfg TextConfig) Text {
	return Text{Message: msg, Config: cfg}
}

// Wrapped returns the text wrapped at w.
func (t Text) Wrapped(w geometry.Width) Text {
	t.WrapWidth = w
	return t
}

func (t Text) layout() []string {
	f := t.Config.font()
	var lines []string
	for _, para := range strings.Split(t.Message, "\n") {
		if t.WrapWidth <= 0 {
			lines = append(lines, para)
			continue
		}
		lines = append(lines, wrap(para, float64(t.WrapWidth), f)...)
	}
	return lines
}

// wrap packs the words of para greedily. A single word wider than width keeps
// a line of its own.
func wrap(para string, width float64, f *Font) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		candidate := line + " " + w
		if f.Measure(candidate).W() <= width {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = w
	}
	return append(lines, line)
}

// Lines returns the visible lines.
func (t Text) Lines() []string {
	lines := t.layout()
	if !t.sliced {
		return lines
	}
	left := t.limit
	var out []string
	for _, l := range lines {
		if left <= 0 {
			break
		}
		n := utf8.RuneCountInString(l)
		if n <= left {
			out = append(out, l)
			left -= n
			continue
		}
		out = append(out, string([]rune(l)[:left]))
		left = 0
	}
	return out
}

// Len returns the number of runes the full layout shows.
func (t Text) Len() int {
	n := 0
	for _, l := range t.layout() {
		n += utf8.RuneCountInString(l)
	}
	return n
}

// Slice returns the text showing only its first n runes.
func (t Text) Slice(n int) Sprite {
	t.limit, t.sliced = max(n, 0), true
	return t
}

func (t Text) Size() geometry.Size {
	lines := t.Lines()
	f := t.Config.font()
	var w float64
	for _, l := range lines {
		w = max(w, f.Measure(l).W())
	}
	return geometry.SizeOf(w, float64(len(lines))*t.Config.LineHeight())
}

func (t Text) TopLeft() geometry.Coordinate { return geometry.Origin }

func (t Text) DrawingOnScreens(origin geometry.Coordinate) []DrawingOnScreen {
	f := t.Config.font()
	lh := t.Config.LineHeight()
	lines := t.Lines()
	out := make([]DrawingOnScreen, 0, len(lines))
	for i, l := range lines {
		if l == "" {
			continue
		}
		out = append(out, DrawingOnScreen{
			At:      origin.AddHeight(geometry.Height(float64(i) * lh)),
			Drawing: f.Render(l, t.Config.Color),
		})
	}
	return out
}

func (t Text) Tick(timing.Millisecond) Sprite { return t }
func (t Text) Complete() bool                 { return true }
