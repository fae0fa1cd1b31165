package thicket

import (
	"fmt"
	"io"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/looplab/fsm"

	"github.com/phanxgames/thicket/config"
	"github.com/phanxgames/thicket/debuglog"
	"github.com/phanxgames/thicket/draw"
	"github.com/phanxgames/thicket/ecs"
	"github.com/phanxgames/thicket/event"
	"github.com/phanxgames/thicket/geometry"
	"github.com/phanxgames/thicket/scene"
	"github.com/phanxgames/thicket/timing"
)

// Entry builds the first scene of a game.
type Entry func(env *scene.Env) (scene.Scene, error)

// Options are the optional parts of a game.
type Options struct {
	// FS holds maps and images; nil reads from the working directory.
	FS fs.FS
	// ScreenshotDir is where Screenshot writes; it defaults to "screenshots".
	ScreenshotDir string
	// TestRunner, when set, replays scripted input.
	TestRunner *TestRunner
	// Console receives warnings and errors; nil means stderr.
	Console io.Writer
}

// Game runs a scene in an Ebitengine window. It implements ebiten.Game.
type Game struct {
	env   *scene.Env
	scene scene.Scene

	poller *event.Poller
	bus    *ecs.Bus
	log    *debuglog.Queue
	window *fsm.FSM

	dt    timing.Millisecond
	clock timing.Millisecond
	quit  bool

	debug    *config.Debug // restored by the debug toggle
	messages []debuglog.Message
	fps      fpsOverlay

	runner        *TestRunner
	screenshotDir string
	screenshots   []string

	setFullscreen func(bool)
	setTitle      func(string)
}

// NewGame builds the resources of cfg and the first scene from entry.
func NewGame(cfg config.Config, entry Entry, opts Options) (*Game, error) {
	var q *debuglog.Queue
	if cfg.Debug != nil {
		q = debuglog.NewQueue(cfg.Debug.LogLevel, cfg.Debug.LogDuration, opts.Console)
	} else {
		q = debuglog.ConsoleOnly(opts.Console)
	}
	env, err := scene.NewEnv(cfg, opts.FS, q)
	if err != nil {
		return nil, fmt.Errorf("thicket: %w", err)
	}

	g := &Game{
		env:           env,
		poller:        event.NewPoller(cfg.KeyMapping.Mapping()),
		bus:           ecs.NewBus(nil),
		log:           q,
		dt:            timing.FromTPS(cfg.GameLoop.TPS),
		debug:         cfg.Debug,
		runner:        opts.TestRunner,
		screenshotDir: opts.ScreenshotDir,
		setFullscreen: ebiten.SetFullscreen,
		setTitle:      ebiten.SetWindowTitle,
	}
	if g.debug == nil {
		g.debug = config.DefaultDebug()
	}
	if g.screenshotDir == "" {
		g.screenshotDir = "screenshots"
	}
	env.Now = func() timing.Millisecond { return g.clock }
	g.window = newWindowFSM(cfg.Window.FullScreen, func(full bool) { g.setFullscreen(full) })
	g.bus.Subscribe(g.handle)

	g.scene, err = entry(env)
	if err != nil {
		return nil, fmt.Errorf("thicket: entry scene: %w", err)
	}
	return g, nil
}

// Scene returns the scene being shown.
func (g *Game) Scene() scene.Scene { return g.scene }

// Env returns the resources scenes are built from.
func (g *Game) Env() *scene.Env { return g.env }

// Poller returns the input source, for injecting events.
func (g *Game) Poller() *event.Poller { return g.poller }

// Clock returns the game time elapsed so far.
func (g *Game) Clock() timing.Millisecond { return g.clock }

// Update ticks the scene by one frame, then delivers this frame's input.
func (g *Game) Update() error {
	if g.runner != nil {
		g.runner.step(g)
	}
	g.clock += g.dt
	g.scene = g.scene.Tick(g.dt)

	for _, e := range g.poller.Poll() {
		g.bus.Publish(e)
	}
	g.bus.Process()

	g.messages = g.log.Pop(g.dt)
	var changed bool
	if g.fps, changed = g.fps.tick(g.dt); changed && g.env.Config.Window.FPSInTitle {
		g.setTitle(g.fps.title(g.env.Config.Window.Title))
	}
	if g.quit {
		return ebiten.Termination
	}
	return nil
}

// handle receives every processed input event.
func (g *Game) handle(e event.Event) {
	switch e := e.(type) {
	case event.Quit:
		g.quit = true
		return
	case event.WindowResize:
		if w := &g.env.Config.Window; w.Resize == config.ResizeNative {
			w.Width, w.Height = int(e.Size.W()), int(e.Size.H())
		}
	case event.KeyPressDown:
		switch e.Key {
		case event.KeyGUIModeToggle:
			g.toggleWindow()
		case event.KeyFPSToggle:
			g.fps.visible = !g.fps.visible
			if g.env.Config.Window.FPSInTitle {
				g.setTitle(g.fps.title(g.env.Config.Window.Title))
			}
		case event.KeyDebugToggle:
			g.toggleDebug()
		}
	}
	g.scene = g.scene.Event(e)
}

func (g *Game) toggleDebug() {
	if g.env.Config.Debug != nil {
		g.env.Config.Debug = nil
		return
	}
	g.env.Config.Debug = g.debug
}

// Draw renders the scene, then the debug log and the FPS counter.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.env.Config.Window.Background)
	draw.RenderAll(screen, g.scene.DrawingOnScreens())
	draw.RenderAll(screen, g.logDrawings())
	if g.fps.visible && !g.env.Config.Window.FPSInTitle {
		g.fps.draw(screen)
	}
	g.flushScreenshots(screen)
}

// logDrawings stacks the popped debug messages in the top-left corner.
func (g *Game) logDrawings() []draw.DrawingOnScreen {
	if len(g.messages) == 0 {
		return nil
	}
	cfg := g.env.Config
	var out []draw.DrawingOnScreen
	top := 0.0
	for _, m := range g.messages {
		t := draw.NewText(m.String(), cfg.Text)
		at := geometry.Coordinate{Top: top}
		if d := cfg.Debug; d != nil && d.LogBackground != nil {
			out = append(out, draw.DrawingOnScreen{At: at, Drawing: draw.FillRectangle(t.Size(), *d.LogBackground, 0)})
		}
		out = append(out, t.DrawingOnScreens(at)...)
		top += t.Size().H()
	}
	return out
}

// Layout keeps the configured size in scale mode and follows the window in
// native mode.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := g.env.Config.Window
	if w.Resize == config.ResizeNative {
		return outsideWidth, outsideHeight
	}
	return w.Width, w.Height
}

// Run opens the window described by cfg and runs entry's scene until the
// window closes.
func Run(cfg config.Config, entry Entry, opts Options) error {
	g, err := NewGame(cfg, entry, opts)
	if err != nil {
		return err
	}
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetTPS(cfg.GameLoop.TPS)
	ebiten.SetWindowClosingHandled(true)
	if cfg.Window.Resize == config.ResizeNative {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetFullscreen(cfg.Window.FullScreen)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("thicket: run: %w", err)
	}
	return nil
}
