// Package config holds the settings every thicket component is built from.
//
// A Config is a plain value handed to constructors; nothing reads settings
// from a global. Default returns the stock settings and Load overlays an INI
// file on top of them.
package config

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/thicket/debuglog"
	"github.com/phanxgames/thicket/draw"
	"github.com/phanxgames/thicket/event"
	"github.com/phanxgames/thicket/geometry"
	"github.com/phanxgames/thicket/timing"
)

// ResizeMode selects how the logical screen follows the window.
type ResizeMode uint8

const (
	// ResizeScale keeps the logical size and scales it to the window.
	ResizeScale ResizeMode = iota
	// ResizeNative makes the logical size follow the window.
	ResizeNative
)

func (m ResizeMode) String() string {
	if m == ResizeNative {
		return "native"
	}
	return "scale"
}

// ParseResizeMode converts "scale" or "native".
func ParseResizeMode(s string) (ResizeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scale":
		return ResizeScale, nil
	case "native":
		return ResizeNative, nil
	}
	return 0, fmt.Errorf("config: unknown resize mode %q", s)
}

// Config is the full set of engine settings.
type Config struct {
	Window     Window
	Debug      *Debug // nil disables every debug overlay
	Map        Map
	Character  Character
	KeyMapping KeyMapping
	Timing     Timing
	Resource   Resource
	Text       draw.TextConfig
	SayEvent   SayEvent
	Cutscene   Cutscene
	Transition Transition
	GameLoop   GameLoop
}

type Window struct {
	Title      string
	Width      int
	Height     int
	Background draw.Color
	Resize     ResizeMode
	FullScreen bool
	FPSInTitle bool
}

// Size returns the logical screen size.
func (w Window) Size() geometry.Size {
	return geometry.SizeOf(float64(w.Width), float64(w.Height))
}

// Screen returns the logical screen as a rectangle at the origin.
func (w Window) Screen() geometry.Rectangle {
	return geometry.NewRectangle(geometry.Origin, w.Size())
}

// Debug colors are optional; a nil color hides that overlay.
type Debug struct {
	DrawingBackground   *draw.Color
	CollisionRectangle  *draw.Color
	StartEventRectangle *draw.Color
	NPCPath             *draw.Color
	GroupLink           *draw.Color
	LogBackground       *draw.Color
	LogLevel            debuglog.Level
	LogDuration         timing.Millisecond
}

type Map struct {
	Background     string
	Foreground     string
	AboveCharacter string
	Collision      string
	CacheSize      int
}

type Character struct {
	MoveSpeed         float64 // pixels per millisecond
	IdleDuration      timing.Millisecond
	MoveDuration      timing.Millisecond
	FrameDuration     timing.Millisecond
	Direction         geometry.Direction
	CollideWithOthers bool
	StartEventMargin  float64
}

// KeyMapping lists the physical keys bound to each logical key.
type KeyMapping map[event.Key][]ebiten.Key

// Mapping inverts the bindings for the event poller.
func (k KeyMapping) Mapping() event.Mapping {
	m := event.Mapping{}
	for logical, keys := range k {
		for _, raw := range keys {
			m[raw] = logical
		}
	}
	return m
}

type Timing struct {
	FadeDuration timing.Millisecond
}

type Resource struct {
	DrawingCacheSize int
	SceneCacheSize   int
}

type SayEvent struct {
	FadeDuration timing.Millisecond
	TextDelay    timing.Millisecond
	Padding      geometry.Padding
	Background   draw.Color
	BorderRadius float64
	TipHeight    float64
	TipWidth1    float64
	TipWidth2    float64
	// CharacterGap separates the bubble from the speaker's visible edge.
	CharacterGap float64
	TextColor    draw.Color
	NameColor    draw.Color
	// SceneCoordinate is where scene announcements are centred; nil means the
	// screen centre.
	SceneCoordinate *geometry.Coordinate
	WrapWidth       geometry.Width
}

type Cutscene struct {
	// Border nil uses the window background.
	Border          *draw.Color
	ScreenHeightPct float64
	Duration        timing.Millisecond
	Wait            bool
}

type Transition struct {
	Intermediary draw.Color
	Duration     timing.Millisecond
}

type GameLoop struct {
	TPS int
}

// Default returns the stock settings.
func Default() Config {
	return Config{
		Window: Window{
			Title:      "thicket",
			Width:      1280,
			Height:     720,
			Background: draw.ColorBlack,
		},
		Map: Map{
			Background:     "background",
			Foreground:     "foreground",
			AboveCharacter: "above_character",
			Collision:      "collision",
			CacheSize:      8,
		},
		Character: Character{
			MoveSpeed:         0.2,
			IdleDuration:      500,
			MoveDuration:      1000,
			FrameDuration:     200,
			Direction:         geometry.Down,
			CollideWithOthers: true,
			StartEventMargin:  8,
		},
		KeyMapping: DefaultKeyMapping(),
		Timing:     Timing{FadeDuration: 200},
		Resource:   Resource{DrawingCacheSize: 128, SceneCacheSize: 8},
		Text:       draw.DefaultTextConfig().WithColor(draw.ColorWhite),
		SayEvent: SayEvent{
			FadeDuration: 200,
			TextDelay:    15,
			Padding:      geometry.PaddingFor(12, 12),
			Background:   draw.Color{R: 255, G: 255, B: 255, A: 200},
			BorderRadius: 10,
			TipHeight:    20,
			TipWidth1:    10,
			TipWidth2:    30,
			CharacterGap: 5,
			TextColor:    draw.ColorBlack,
			NameColor:    draw.ColorBlue,
			WrapWidth:    400,
		},
		Cutscene: Cutscene{
			ScreenHeightPct: 0.1,
			Duration:        500,
			Wait:            true,
		},
		Transition: Transition{Intermediary: draw.ColorBlack, Duration: 500},
		GameLoop:   GameLoop{TPS: 60},
	}
}

// DefaultDebug enables every overlay with translucent colors.
func DefaultDebug() *Debug {
	c := func(r, g, b, a uint8) *draw.Color { return &draw.Color{R: r, G: g, B: b, A: a} }
	return &Debug{
		DrawingBackground:   c(0, 0, 255, 8),
		CollisionRectangle:  c(255, 0, 0, 64),
		StartEventRectangle: c(0, 255, 255, 32),
		NPCPath:             c(0, 255, 0, 64),
		GroupLink:           c(255, 0, 0, 255),
		LogBackground:       c(0, 0, 0, 64),
		LogLevel:            debuglog.LevelDebug,
		LogDuration:         3000,
	}
}

// DefaultKeyMapping binds arrows and WASD for movement, Enter and Space to
// confirm, and function keys to the window toggles.
func DefaultKeyMapping() KeyMapping {
	return KeyMapping{
		event.KeyLeft:          {ebiten.KeyArrowLeft, ebiten.KeyA},
		event.KeyRight:         {ebiten.KeyArrowRight, ebiten.KeyD},
		event.KeyUp:            {ebiten.KeyArrowUp, ebiten.KeyW},
		event.KeyDown:          {ebiten.KeyArrowDown, ebiten.KeyS},
		event.KeyConfirm:       {ebiten.KeyEnter, ebiten.KeySpace},
		event.KeyCancel:        {ebiten.KeyEscape, ebiten.KeyTab},
		event.KeyGUIModeToggle: {ebiten.KeyF1},
		event.KeyFPSToggle:     {ebiten.KeyF2},
		event.KeyDebugToggle:   {ebiten.KeyF3},
	}
}

// SayTextConfig returns the text config for dialogue bodies.
func (c Config) SayTextConfig() draw.TextConfig {
	return c.Text.WithColor(c.SayEvent.TextColor)
}

// SayNameConfig returns the text config for speaker names.
func (c Config) SayNameConfig() draw.TextConfig {
	return c.Text.WithColor(c.SayEvent.NameColor)
}

// CutsceneBorder returns the letterbox color.
func (c Config) CutsceneBorder() draw.Color {
	if c.Cutscene.Border != nil {
		return *c.Cutscene.Border
	}
	return c.Window.Background
}

// ScreenCenter returns the middle of the logical screen.
func (c Config) ScreenCenter() geometry.Coordinate {
	return geometry.Center(c.Window.Screen())
}
