// Package scene holds the scenes a game moves through and the event system
// that runs NPC scripts on top of them.
//
// Every scene is a value. Tick and Event return the scene to show next, which
// may be the same kind of scene with new state or a different scene
// altogether, such as a dialogue layered over the map it was started from.
//
// NPC scripts are lists of steps:
//
//	npc := scene.NpcSpec{
//		Name: "elder",
//		Script: func(p character.Player, n character.NonPlayer, s scene.EventfulScene) scene.Generator {
//			return scene.Steps(
//				scene.Say(scene.SayCharacter("elder"), "Welcome!"),
//				scene.Say(scene.SayPlayer, "Thanks."),
//				scene.Return(false),
//			)
//		},
//	}
package scene

import (
	"github.com/phanxgames/thicket/draw"
	"github.com/phanxgames/thicket/event"
	"github.com/phanxgames/thicket/geometry"
	"github.com/phanxgames/thicket/timing"
)

// Scene is one screen of the game.
type Scene interface {
	Tick(dt timing.Millisecond) Scene
	Event(e event.Event) Scene
	DrawingOnScreens() []draw.DrawingOnScreen
}

// StaticScene shows fixed drawings, such as a title screen. A confirm press
// calls OnConfirm when it is set.
type StaticScene struct {
	Drawings  []draw.DrawingOnScreen
	OnConfirm func() Scene
}

// NewColorScene fills a screen of size with c.
func NewColorScene(size geometry.Size, c draw.Color, onConfirm func() Scene) StaticScene {
	fill := draw.DrawingOnScreen{At: geometry.Origin, Drawing: draw.FillRectangle(size, c, 0)}
	return StaticScene{Drawings: []draw.DrawingOnScreen{fill}, OnConfirm: onConfirm}
}

func (s StaticScene) Tick(timing.Millisecond) Scene { return s }

func (s StaticScene) Event(e event.Event) Scene {
	if s.OnConfirm != nil && event.IsKeyPress(e, event.KeyConfirm) {
		return s.OnConfirm()
	}
	return s
}

func (s StaticScene) DrawingOnScreens() []draw.DrawingOnScreen { return s.Drawings }
