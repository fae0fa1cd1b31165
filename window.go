package thicket

import (
	"context"

	"github.com/looplab/fsm"
)

// Window modes.
const (
	WindowWindowed   = "windowed"
	WindowFullscreen = "fullscreen"
)

// newWindowFSM switches between the window modes on "toggle". Entering a
// mode calls set with whether it is fullscreen.
func newWindowFSM(fullscreen bool, set func(bool)) *fsm.FSM {
	initial := WindowWindowed
	if fullscreen {
		initial = WindowFullscreen
	}
	return fsm.NewFSM(
		initial,
		fsm.Events{
			{Name: "toggle", Src: []string{WindowWindowed}, Dst: WindowFullscreen},
			{Name: "toggle", Src: []string{WindowFullscreen}, Dst: WindowWindowed},
		},
		fsm.Callbacks{
			"enter_" + WindowFullscreen: func(context.Context, *fsm.Event) { set(true) },
			"enter_" + WindowWindowed:   func(context.Context, *fsm.Event) { set(false) },
		},
	)
}

// WindowMode returns windowed or fullscreen.
func (g *Game) WindowMode() string { return g.window.Current() }

func (g *Game) toggleWindow() {
	if err := g.window.Event(context.Background(), "toggle"); err != nil {
		g.log.Logger("window").Warningf("toggle: %v", err)
		return
	}
	g.log.Logger("window").Debugf("window mode %s", g.window.Current())
}
