// Package thicket is a 2D tile-based RPG engine for [Ebitengine].
//
// Thicket loads maps drawn in [Tiled], walks a player and NPCs around them,
// sorts characters between foreground tiles, and runs NPC scripts that show
// speech bubbles, fade sprites in and out, pan the camera and frame
// cutscenes.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	cfg := config.Default()
//	err := thicket.Run(cfg, func(env *scene.Env) (scene.Scene, error) {
//		return scene.NewMapScene(env, scene.MapSpec{
//			TMX:    "maps/village.tmx",
//			Player: scene.PlayerSpec{Name: "hero", Object: "spawn", Drawing: hero},
//		})
//	}, thicket.Options{})
//
// # Scenes
//
// Everything on screen is a [scene.Scene] value. Each frame the game ticks
// the scene by 1000/TPS milliseconds and keeps the scene it returns, then
// hands it the frame's input events. Input goes through an [ecs.Bus] so
// other systems can listen as well.
//
// # Scripted runs
//
// A [TestRunner] replays key presses from a JSON script and takes
// screenshots along the way:
//
//	{"steps": [
//		{"action": "press", "key": "right"},
//		{"action": "wait", "frames": 30},
//		{"action": "release", "key": "right"},
//		{"action": "tap", "key": "confirm"},
//		{"action": "screenshot", "label": "talking"}
//	]}
//
// [Ebitengine]: https://ebitengine.org
// [Tiled]: https://www.mapeditor.org
package thicket
