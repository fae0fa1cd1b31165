package tilemap

import (
	"cmp"
	"fmt"
	"image"
	"path/filepath"
	"slices"
	"strings"

	"github.com/lafriks/go-tiled"

	"github.com/phanxgames/thicket/animation"
	"github.com/phanxgames/thicket/character"
	"github.com/phanxgames/thicket/config"
	"github.com/phanxgames/thicket/draw"
	"github.com/phanxgames/thicket/geometry"
	"github.com/phanxgames/thicket/timing"
)

// Tile is one placed map tile.
type Tile struct {
	At    geometry.Coordinate
	Size  geometry.Size
	Class string

	drawing draw.Drawing
	anim    int // index into Loader.animations, -1 when static
}

func (t Tile) Rectangle() geometry.Rectangle { return geometry.NewRectangle(t.At, t.Size) }

// Group is a connected set of foreground tiles sharing a class. The whole
// group sorts against characters by its lowest edge.
type Group struct {
	Layer  int
	Bottom float64
	Tiles  []Tile
}

// Loader is a TMX map ready to draw. It is a value: Tick returns a new
// Loader with the animated tiles advanced.
type Loader struct {
	mapSize  geometry.Size
	tileSize geometry.Size

	background []draw.DrawingOnScreen
	backAnim   []Tile
	above      []draw.DrawingOnScreen
	aboveAnim  []Tile
	foreground []Group
	layers     int

	animations []animation.CyclicAnimation
	collisions []geometry.Area
	objects    []Object
}

// Load parses path with p and builds its layers. Built loaders are kept in
// p, so loading a map again starts from its untouched first build.
func Load(p *Parser, images *draw.Loader, path string, cfg config.Map) (Loader, error) {
	key := loaderKey{path, cfg, images}
	if l, ok := p.loaders.Get(key); ok {
		return l, nil
	}
	m, err := p.Parse(path)
	if err != nil {
		return Loader{}, err
	}
	l, err := NewLoader(m, images, cfg)
	if err != nil {
		return Loader{}, err
	}
	p.loaders.Add(key, l)
	return l, nil
}

type bucket uint8

const (
	bucketNone bucket = iota
	bucketBackground
	bucketForeground
	bucketAbove
)

// matches reports whether a layer with class and name belongs to want. The
// class wins; the name is matched by substring for maps without classes.
func matches(class, name, want string) bool {
	return want != "" && (class == want || strings.Contains(name, want))
}

func classify(class, name string, cfg config.Map) bucket {
	match := func(want string) bool { return matches(class, name, want) }
	switch {
	case match(cfg.AboveCharacter):
		return bucketAbove
	case match(cfg.Foreground):
		return bucketForeground
	case match(cfg.Background):
		return bucketBackground
	}
	return bucketNone
}

type cellKey struct {
	ts *tiled.Tileset
	id uint32
}

type animKey struct {
	cellKey
	h, v, d bool
}

type builder struct {
	m      *tiled.Map
	images *draw.Loader
	cells  map[cellKey]draw.Drawing
	anims  map[animKey]int
	l      *Loader
}

// NewLoader builds the layers of a parsed map. Tileset images are read
// through images.
func NewLoader(m *tiled.Map, images *draw.Loader, cfg config.Map) (Loader, error) {
	l := Loader{
		mapSize:  geometry.SizeOf(float64(m.Width*m.TileWidth), float64(m.Height*m.TileHeight)),
		tileSize: geometry.SizeOf(float64(m.TileWidth), float64(m.TileHeight)),
	}
	b := &builder{
		m:      m,
		images: images,
		cells:  map[cellKey]draw.Drawing{},
		anims:  map[animKey]int{},
		l:      &l,
	}
	var back, above []Tile
	for _, layer := range m.Layers {
		tiles, err := b.layer(layer)
		if err != nil {
			return Loader{}, fmt.Errorf("tilemap: layer %q: %w", layer.Name, err)
		}
		switch classify(layer.Class, layer.Name, cfg) {
		case bucketBackground:
			back = append(back, tiles...)
		case bucketAbove:
			above = append(above, tiles...)
		case bucketForeground:
			l.foreground = append(l.foreground, groups(tiles, m.Width, m.Height, l.layers)...)
			l.layers++
		}
	}
	slices.SortStableFunc(l.foreground, func(a, b Group) int { return cmp.Compare(a.Bottom, b.Bottom) })
	l.background, l.backAnim = flatten(back, l.mapSize)
	l.above, l.aboveAnim = flatten(above, l.mapSize)

	for _, og := range m.ObjectGroups {
		groupCollides := matches(og.Class, og.Name, cfg.Collision)
		for _, o := range og.Objects {
			obj := newObject(o, o.Type, geometry.Origin)
			l.objects = append(l.objects, obj)
			if groupCollides || (cfg.Collision != "" && obj.Class == cfg.Collision) {
				l.collisions = append(l.collisions, obj.Area())
			}
		}
	}
	return l, nil
}

// layer places the tiles of one tile layer, in row-major order with nil
// entries for empty cells, and collects their colliders.
func (b *builder) layer(layer *tiled.Layer) ([]Tile, error) {
	tw, th := float64(b.m.TileWidth), float64(b.m.TileHeight)
	out := make([]Tile, len(layer.Tiles))
	for i, lt := range layer.Tiles {
		out[i].anim = -1
		if lt == nil || lt.IsNil() || lt.Tileset == nil {
			continue
		}
		col, row := i%b.m.Width, i/b.m.Width
		d, anim, class, err := b.tile(lt)
		if err != nil {
			return nil, err
		}
		size := d.Size()
		if anim >= 0 {
			size = b.l.animations[anim].Size()
		}
		// Tiles taller than the grid grow upward from the cell bottom.
		out[i] = Tile{
			At:      geometry.Coordinate{Left: float64(col) * tw, Top: float64(row+1)*th - size.H()},
			Size:    size,
			Class:   class,
			drawing: d,
			anim:    anim,
		}
		if tt := tilesetTile(lt.Tileset, lt.ID); tt != nil {
			cell := geometry.Coordinate{Left: float64(col) * tw, Top: float64(row) * th}
			for _, og := range tt.ObjectGroups {
				for _, o := range og.Objects {
					b.l.collisions = append(b.l.collisions, newObject(o, "", cell).Area())
				}
			}
		}
	}
	return out, nil
}

func tilesetTile(ts *tiled.Tileset, id uint32) *tiled.TilesetTile {
	for _, t := range ts.Tiles {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (b *builder) tile(lt *tiled.LayerTile) (draw.Drawing, int, string, error) {
	tt := tilesetTile(lt.Tileset, lt.ID)
	class := ""
	if tt != nil {
		class = tt.Type
	}
	if tt == nil || len(tt.Animation) == 0 {
		d, err := b.cell(lt.Tileset, lt.ID)
		return flip(d, lt), -1, class, err
	}
	key := animKey{cellKey{lt.Tileset, lt.ID}, lt.HorizontalFlip, lt.VerticalFlip, lt.DiagonalFlip}
	if idx, ok := b.anims[key]; ok {
		return draw.Drawing{}, idx, class, nil
	}
	frames := make([]draw.Drawing, len(tt.Animation))
	durations := make([]timing.Millisecond, len(tt.Animation))
	for i, f := range tt.Animation {
		d, err := b.cell(lt.Tileset, f.TileID)
		if err != nil {
			return draw.Drawing{}, -1, class, err
		}
		frames[i] = flip(d, lt)
		durations[i] = timing.Millisecond(f.Duration)
	}
	idx := len(b.l.animations)
	b.l.animations = append(b.l.animations, animation.NewCyclicAnimation(frames, durations))
	b.anims[key] = idx
	return draw.Drawing{}, idx, class, nil
}

// cell crops tile id out of its tileset image, or loads the tile's own image
// for image-collection tilesets.
func (b *builder) cell(ts *tiled.Tileset, id uint32) (draw.Drawing, error) {
	key := cellKey{ts, id}
	if d, ok := b.cells[key]; ok {
		return d, nil
	}
	var d draw.Drawing
	if tt := tilesetTile(ts, id); tt != nil && tt.Image != nil && tt.Image.Source != "" {
		img, err := b.images.Load(imagePath(ts, tt.Image.Source))
		if err != nil {
			return draw.Drawing{}, err
		}
		d = img
	} else {
		if ts.Image == nil || ts.Image.Source == "" {
			return draw.Drawing{}, fmt.Errorf("tileset %q has no image", ts.Name)
		}
		sheet, err := b.images.Load(imagePath(ts, ts.Image.Source))
		if err != nil {
			return draw.Drawing{}, err
		}
		d = sheet.Crop(rectangle(ts.GetTileRect(id)))
	}
	b.cells[key] = d
	return d, nil
}

func imagePath(ts *tiled.Tileset, source string) string {
	return filepath.ToSlash(filepath.Clean(ts.GetFileFullPath(source)))
}

func rectangle(r image.Rectangle) geometry.Rectangle {
	return geometry.NewRectangle(
		geometry.Coordinate{Left: float64(r.Min.X), Top: float64(r.Min.Y)},
		geometry.SizeOf(float64(r.Dx()), float64(r.Dy())),
	)
}

// flip applies the TMX flip flags: diagonal (transpose) first, then
// horizontal and vertical.
func flip(d draw.Drawing, lt *tiled.LayerTile) draw.Drawing {
	if d.Image() == nil {
		return d
	}
	if lt.DiagonalFlip {
		d = d.Rotate(90).Flip(true, false)
	}
	if lt.HorizontalFlip || lt.VerticalFlip {
		d = d.Flip(lt.HorizontalFlip, lt.VerticalFlip)
	}
	return d
}

// groups flood-fills the tiles of one foreground layer into connected groups
// of the same class. Tiles without a class stand alone.
func groups(tiles []Tile, width, height, layer int) []Group {
	present := func(i int) bool { return tiles[i].anim >= 0 || tiles[i].drawing.Image() != nil }
	visited := make([]bool, len(tiles))
	var out []Group
	for start := range tiles {
		if visited[start] || !present(start) {
			continue
		}
		visited[start] = true
		stack := []int{start}
		g := Group{Layer: layer}
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			g.Tiles = append(g.Tiles, tiles[i])
			class := tiles[i].Class
			if class == "" {
				continue
			}
			col, row := i%width, i/width
			for _, n := range [...][2]int{{col + 1, row}, {col, row + 1}, {col - 1, row}, {col, row - 1}} {
				if n[0] < 0 || n[0] >= width || n[1] < 0 || n[1] >= height {
					continue
				}
				j := n[1]*width + n[0]
				if j < len(tiles) && !visited[j] && present(j) && tiles[j].Class == class {
					visited[j] = true
					stack = append(stack, j)
				}
			}
		}
		slices.SortFunc(g.Tiles, func(a, b Tile) int {
			if c := cmp.Compare(a.At.Top, b.At.Top); c != 0 {
				return c
			}
			return cmp.Compare(a.At.Left, b.At.Left)
		})
		for _, t := range g.Tiles {
			g.Bottom = max(g.Bottom, geometry.BottomEdge(t.Rectangle()))
		}
		out = append(out, g)
	}
	return out
}

// flatten renders static tiles into one map-sized drawing and returns the
// animated tiles separately.
func flatten(tiles []Tile, size geometry.Size) ([]draw.DrawingOnScreen, []Tile) {
	var static []draw.DrawingOnScreen
	var animated []Tile
	for _, t := range tiles {
		switch {
		case t.anim >= 0:
			animated = append(animated, t)
		case t.drawing.Image() != nil:
			static = append(static, draw.DrawingOnScreen{At: t.At, Drawing: t.drawing})
		}
	}
	if len(static) == 0 {
		return nil, animated
	}
	canvas := draw.Blank(size)
	draw.RenderAll(canvas.Image(), static)
	return []draw.DrawingOnScreen{{At: geometry.Origin, Drawing: canvas}}, animated
}

// MapSize is the map extent in pixels.
func (l Loader) MapSize() geometry.Size { return l.mapSize }

// TileSize is the grid cell size.
func (l Loader) TileSize() geometry.Size { return l.tileSize }

// Groups returns the foreground groups sorted by bottom.
func (l Loader) Groups() []Group { return l.foreground }

// Collisions returns tile colliders followed by collision objects.
func (l Loader) Collisions() []geometry.Area { return l.collisions }

func (l Loader) render(t Tile) draw.DrawingOnScreen {
	if t.anim >= 0 {
		return draw.DrawingOnScreen{At: t.At, Drawing: l.animations[t.anim].Frame()}
	}
	return draw.DrawingOnScreen{At: t.At, Drawing: t.drawing}
}

func (l Loader) renderAll(static []draw.DrawingOnScreen, animated []Tile) []draw.DrawingOnScreen {
	out := append([]draw.DrawingOnScreen(nil), static...)
	for _, t := range animated {
		out = append(out, l.render(t))
	}
	return out
}

// Background returns the drawings below everything else.
func (l Loader) Background() []draw.DrawingOnScreen {
	return l.renderAll(l.background, l.backAnim)
}

// AboveCharacter returns the drawings on top of every character.
func (l Loader) AboveCharacter() []draw.DrawingOnScreen {
	return l.renderAll(l.above, l.aboveAnim)
}

// Tick advances the animated tiles. Identical tiles share one animation and
// stay in step.
func (l Loader) Tick(dt timing.Millisecond) Loader {
	if len(l.animations) == 0 {
		return l
	}
	anims := make([]animation.CyclicAnimation, len(l.animations))
	for i, a := range l.animations {
		anims[i] = a.Advance(dt)
	}
	l.animations = anims
	return l
}

// layerOf finds the highest foreground layer with a group in front of c that
// overlaps it. Characters in front of everything go on the top layer.
func (l Loader) layerOf(c character.OnScreen) int {
	rect := c.VisibleRect()
	found := -1
	for _, g := range l.foreground {
		if g.Layer <= found || g.Bottom <= c.Bottom() {
			continue
		}
		for _, t := range g.Tiles {
			if t.Rectangle().Collide(rect) {
				found = g.Layer
				break
			}
		}
	}
	if found < 0 {
		return max(l.layers-1, 0)
	}
	return found
}

// Layered returns the map drawings with characters sorted between the
// foreground groups: background, foreground and characters by (layer,
// bottom), then the above-character layer.
func (l Loader) Layered(characters []character.OnScreen) []draw.DrawingOnScreen {
	type item struct {
		layer  int
		bottom float64
		ds     []draw.DrawingOnScreen
	}
	items := make([]item, 0, len(l.foreground)+len(characters))
	for _, g := range l.foreground {
		ds := make([]draw.DrawingOnScreen, len(g.Tiles))
		for i, t := range g.Tiles {
			ds[i] = l.render(t)
		}
		items = append(items, item{g.Layer, g.Bottom, ds})
	}
	for _, c := range characters {
		items = append(items, item{l.layerOf(c), c.Bottom(), c.DrawingOnScreens()})
	}
	slices.SortStableFunc(items, func(a, b item) int {
		if c := cmp.Compare(a.layer, b.layer); c != 0 {
			return c
		}
		return cmp.Compare(a.bottom, b.bottom)
	})
	out := l.Background()
	for _, it := range items {
		out = append(out, it.ds...)
	}
	return append(out, l.AboveCharacter()...)
}

// Debug fills the collision areas when the overlay is enabled.
func (l Loader) Debug(d *config.Debug) []draw.DrawingOnScreen {
	if d == nil || d.CollisionRectangle == nil {
		return nil
	}
	out := make([]draw.DrawingOnScreen, 0, len(l.collisions))
	for _, a := range l.collisions {
		out = append(out, draw.FillArea(a, *d.CollisionRectangle))
	}
	return out
}
