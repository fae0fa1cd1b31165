package scene

import (
	"fmt"
	"io/fs"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/phanxgames/thicket/character"
	"github.com/phanxgames/thicket/config"
	"github.com/phanxgames/thicket/debuglog"
	"github.com/phanxgames/thicket/draw"
	"github.com/phanxgames/thicket/event"
	"github.com/phanxgames/thicket/tilemap"
	"github.com/phanxgames/thicket/timing"
)

// Env is what map scenes are built from: resources, the maps the player
// left behind and a clock.
type Env struct {
	Config  config.Config
	Images  *draw.Loader
	Maps    *tilemap.Parser
	Visited *lru.Cache[string, visit]
	Log     debuglog.Logger
	// Now is the game clock used to catch up scenes the player returns to.
	// NewEnv starts it stopped at zero; the game replaces it with its own.
	Now func() timing.Millisecond
}

type visit struct {
	scene MapScene
	at    timing.Millisecond
}

// NewEnv reads images and maps from fsys, or the working directory when
// fsys is nil. Messages go to q, which may be nil.
func NewEnv(cfg config.Config, fsys fs.FS, q *debuglog.Queue) (*Env, error) {
	if fsys == nil {
		fsys = os.DirFS(".")
	}
	images, err := draw.NewLoader(fsys, cfg.Resource.DrawingCacheSize)
	if err != nil {
		return nil, fmt.Errorf("scene: env: %w", err)
	}
	maps, err := tilemap.NewParser(fsys, cfg.Map.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("scene: env: %w", err)
	}
	visited, err := lru.New[string, visit](max(cfg.Resource.SceneCacheSize, 1))
	if err != nil {
		return nil, fmt.Errorf("scene: env: visited cache: %w", err)
	}
	env := &Env{
		Config:  cfg,
		Images:  images,
		Maps:    maps,
		Visited: visited,
		Now:     func() timing.Millisecond { return 0 },
	}
	if q != nil {
		env.Log = q.Logger("scene")
	}
	return env, nil
}

// PlayerSpec places the player on a map.
type PlayerSpec struct {
	Name string
	// Object is the map object the player spawns on.
	Object  string
	Drawing character.Drawing
	Avatar  draw.Sprite
}

// At returns a copy spawning on object.
func (p PlayerSpec) At(object string) PlayerSpec {
	p.Object = object
	return p
}

// NpcSpec places an NPC on a map. An NPC standing on a polyline or polygon
// object walks it, looping around polygons.
type NpcSpec struct {
	Name string
	// Object defaults to Name.
	Object  string
	Drawing character.Drawing
	Avatar  draw.Sprite
	Mode    character.StartMode
	// Script is nil for NPCs without an event.
	Script Script
}

// MapMove takes the player to another map when they walk into Trigger.
type MapMove struct {
	// Trigger is the object of the current map that starts the move.
	Trigger string
	// From is the object of the destination the player arrives on.
	From string
	// To describes the destination for a player spawning on From.
	To func(player PlayerSpec) MapSpec
}

// MapSpec describes a map scene.
type MapSpec struct {
	// Key names the scene in the visited cache; it defaults to TMX.
	Key    string
	TMX    string
	Player PlayerSpec
	Moves  []MapMove
	NPCs   []NpcSpec
}

func (m MapSpec) key() string {
	if m.Key != "" {
		return m.Key
	}
	return m.TMX
}

// MapScene is a TMX map with the player and NPCs on it.
type MapScene struct {
	ev     Eventful
	env    *Env
	spec   MapSpec
	loader tilemap.Loader
	camera Camera
}

// NewMapScene loads spec.TMX and places the characters on its objects.
func NewMapScene(env *Env, spec MapSpec) (MapScene, error) {
	cfg := env.Config
	loader, err := tilemap.Load(env.Maps, env.Images, spec.TMX, cfg.Map)
	if err != nil {
		return MapScene{}, fmt.Errorf("scene: map %s: %w", spec.TMX, err)
	}

	spawn, err := loader.Object(spec.Player.Object)
	if err != nil {
		return MapScene{}, fmt.Errorf("scene: map %s: player: %w", spec.TMX, err)
	}
	on := character.NewOnScreen(spec.Player.Name, spawn.Coordinate(), spec.Player.Drawing, cfg.Character)
	on.Avatar = spec.Player.Avatar
	player := character.NewPlayer(on, loader.Collisions(), cfg.Character)

	npcs := make([]character.NonPlayer, 0, len(spec.NPCs))
	scripts := map[string]Script{}
	for _, n := range spec.NPCs {
		npc, err := placeNpc(loader, n, cfg.Character)
		if err != nil {
			return MapScene{}, fmt.Errorf("scene: map %s: %w", spec.TMX, err)
		}
		npcs = append(npcs, npc)
		if n.Script != nil {
			scripts[n.Name] = n.Script
		}
	}
	for _, m := range spec.Moves {
		if _, err := loader.Object(m.Trigger); err != nil {
			return MapScene{}, fmt.Errorf("scene: map %s: move: %w", spec.TMX, err)
		}
	}

	return MapScene{
		ev:     NewEventful(player, npcs, scripts, env.Log),
		env:    env,
		spec:   spec,
		loader: loader,
		camera: NewCamera(cfg.Window.Size(), loader.MapSize(), player.Coordinate),
	}, nil
}

func placeNpc(loader tilemap.Loader, n NpcSpec, cfg config.Character) (character.NonPlayer, error) {
	name := n.Object
	if name == "" {
		name = n.Name
	}
	obj, err := loader.Object(name)
	if err != nil {
		return nil, fmt.Errorf("npc %s: %w", n.Name, err)
	}
	on := character.NewOnScreen(n.Name, obj.Coordinate(), n.Drawing, cfg)
	on.Avatar = n.Avatar
	npc := character.NewNpc(on, n.Mode, n.Script != nil)
	if path, ok := obj.Path(); ok {
		return character.NewMovingNpc(npc, path, obj.Closed, loader.Collisions(), cfg), nil
	}
	return npc, nil
}

// Key names the scene in the visited cache.
func (m MapScene) Key() string { return m.spec.key() }

// Loader returns the map being shown.
func (m MapScene) Loader() tilemap.Loader { return m.loader }

func (m MapScene) Eventful() Eventful { return m.ev }

func (m MapScene) WithEventful(e Eventful) EventfulScene {
	m.ev = e
	return m
}

func (m MapScene) Camera() Camera { return m.camera }

func (m MapScene) WithCamera(c Camera) EventfulScene {
	m.camera = c
	return m
}

func (m MapScene) Config() config.Config { return m.env.Config }

func (m MapScene) TickWithoutEvent(dt timing.Millisecond) EventfulScene {
	m.ev = m.ev.TickWorld(dt)
	m.loader = m.loader.Tick(dt)
	m.camera = m.camera.Follow(m.ev.Player.Coordinate).Tick(dt)
	return m
}

func (m MapScene) Tick(dt timing.Millisecond) Scene {
	if !m.ev.Running() {
		if move, ok := m.triggered(); ok {
			return m.leave(move)
		}
	}
	return TickEventful(m, dt)
}

func (m MapScene) Event(e event.Event) Scene { return EventEventful(m, e) }

// triggered returns the first move whose trigger the player stands in.
func (m MapScene) triggered() (MapMove, bool) {
	rect := m.ev.Player.VisibleRect()
	for _, move := range m.spec.Moves {
		obj, err := m.loader.Object(move.Trigger)
		if err == nil && obj.Area().Collide(rect) {
			return move, true
		}
	}
	return MapMove{}, false
}

// leave keeps this scene for a later return and transitions to the
// destination of move.
func (m MapScene) leave(move MapMove) Scene {
	env := m.env
	// Drop held keys so the player does not walk straight back in later.
	m.ev.Player = m.ev.Player.StartEvent(m.ev.Player.OnScreen).CompleteEvent()
	env.Visited.Add(m.Key(), visit{scene: m, at: env.Now()})

	player := m.spec.Player.At(move.From)
	player.Drawing = m.ev.Player.Drawing
	dest := move.To(player)
	env.Log.Infof("moving from %s to %s", m.spec.TMX, dest.TMX)

	return NewTransitionScene(env.Config, m, func() Scene {
		next, err := m.arrive(dest)
		if err != nil {
			env.Log.Errorf("%v", err)
			return m.withoutMove(move.Trigger)
		}
		return next
	})
}

// withoutMove disables the move on trigger, used when its destination fails
// to load.
func (m MapScene) withoutMove(trigger string) MapScene {
	moves := make([]MapMove, 0, len(m.spec.Moves))
	for _, mv := range m.spec.Moves {
		if mv.Trigger != trigger {
			moves = append(moves, mv)
		}
	}
	m.spec.Moves = moves
	return m
}

// arrive returns the visited scene for dest, caught up with the time spent
// away, or builds it.
func (m MapScene) arrive(dest MapSpec) (MapScene, error) {
	env := m.env
	v, ok := env.Visited.Get(dest.key())
	if !ok {
		return NewMapScene(env, dest)
	}
	next := v.scene
	spawn, err := next.loader.Object(dest.Player.Object)
	if err != nil {
		return MapScene{}, fmt.Errorf("scene: map %s: %w", dest.TMX, err)
	}
	next = next.TickWithoutEvent(env.Now() - v.at).(MapScene)
	next.ev.Player = next.ev.Player.WithCoordinate(spawn.Coordinate())
	next.camera = NewCamera(next.camera.Screen, next.camera.World, next.ev.Player.Coordinate)
	return next, nil
}

func (m MapScene) DrawingOnScreens() []draw.DrawingOnScreen {
	d := m.env.Config.Debug
	ds := m.loader.Layered(m.ev.Characters())
	ds = append(ds, m.loader.Debug(d)...)
	ds = append(ds, m.ev.Player.Debug(d)...)
	for _, n := range m.ev.NPCs {
		ds = append(ds, n.Debug(d)...)
	}
	ds = draw.ShiftAll(ds, m.camera.Shift())
	return append(ds, m.ev.BackgroundDrawings()...)
}
