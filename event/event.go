// Package event turns raw Ebitengine input into the logical events scenes
// consume, and lets tests and scripted runs inject events of their own.
package event

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/thicket/geometry"
)

// Key is a logical key. Physical keys map onto logical ones through a
// Mapping.
type Key uint8

const (
	KeyLeft Key = iota
	KeyRight
	KeyUp
	KeyDown
	KeyConfirm
	KeyCancel
	KeyGUIModeToggle
	KeyFPSToggle
	KeyDebugToggle
)

var keyNames = [...]string{"left", "right", "up", "down", "confirm", "cancel", "gui_mode_toggle", "fps_toggle", "debug_toggle"}

// Keys lists every logical key.
var Keys = []Key{KeyLeft, KeyRight, KeyUp, KeyDown, KeyConfirm, KeyCancel, KeyGUIModeToggle, KeyFPSToggle, KeyDebugToggle}

func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", k)
}

// ParseKey converts a logical key name such as "confirm".
func ParseKey(s string) (Key, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range keyNames {
		if n == s {
			return Key(i), nil
		}
	}
	return 0, fmt.Errorf("event: unknown logical key %q", s)
}

// ParseRawKey converts an Ebitengine key name such as "ArrowLeft", "Enter"
// or "A".
func ParseRawKey(s string) (ebiten.Key, error) {
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("event: unknown key %q: %w", s, err)
	}
	return k, nil
}

// Event is an input event delivered to scenes.
type Event interface {
	isEvent()
}

// KeyPressDown reports that a logical key went down this frame.
type KeyPressDown struct{ Key Key }

// KeyPressUp reports that a logical key was released this frame.
type KeyPressUp struct{ Key Key }

// Quit reports that the window is being closed.
type Quit struct{}

// WindowResize reports a new outside window size.
type WindowResize struct{ Size geometry.Size }

func (KeyPressDown) isEvent() {}
func (KeyPressUp) isEvent()   {}
func (Quit) isEvent()         {}
func (WindowResize) isEvent() {}

// IsKeyPress reports whether e is a press of k.
func IsKeyPress(e Event, k Key) bool {
	d, ok := e.(KeyPressDown)
	return ok && d.Key == k
}

// IsKeyRelease reports whether e is a release of k.
func IsKeyRelease(e Event, k Key) bool {
	u, ok := e.(KeyPressUp)
	return ok && u.Key == k
}

// Mapping maps physical keys to logical ones. Several physical keys may
// share a logical key.
type Mapping map[ebiten.Key]Key

// Translate converts the keys that went down and up this frame into events,
// presses first. Unmapped keys are dropped.
func (m Mapping) Translate(pressed, released []ebiten.Key) []Event {
	var out []Event
	for _, k := range pressed {
		if lk, ok := m[k]; ok {
			out = append(out, KeyPressDown{lk})
		}
	}
	for _, k := range released {
		if lk, ok := m[k]; ok {
			out = append(out, KeyPressUp{lk})
		}
	}
	return out
}
