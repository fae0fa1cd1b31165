package tilemap

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/phanxgames/thicket/character"
	"github.com/phanxgames/thicket/config"
	"github.com/phanxgames/thicket/draw"
	"github.com/phanxgames/thicket/geometry"
)

const villageTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" tiledversion="1.10.2" orientation="orthogonal" renderorder="right-down" width="4" height="3" tilewidth="16" tileheight="16" infinite="0" nextlayerid="4" nextobjectid="4">
 <tileset firstgid="1" name="tiles" tilewidth="16" tileheight="16" tilecount="4" columns="4">
  <image source="tiles.png" width="64" height="16"/>
  <tile id="1" type="tree"/>
  <tile id="2">
   <objectgroup draworder="index">
    <object id="1" x="0" y="8" width="16" height="8"/>
   </objectgroup>
  </tile>
  <tile id="3">
   <animation>
    <frame tileid="3" duration="100"/>
    <frame tileid="0" duration="100"/>
   </animation>
  </tile>
 </tileset>
 <layer id="1" name="background" width="4" height="3">
  <data encoding="csv">
1,1,1,1,
1,4,1,1,
1,1,1,1
</data>
 </layer>
 <layer id="2" name="foreground" width="4" height="3">
  <data encoding="csv">
0,2,0,0,
0,2,0,3,
0,0,0,0
</data>
 </layer>
 <objectgroup id="3" name="objects">
  <object id="1" name="spawn" x="8" y="40"/>
  <object id="2" name="wall" type="collision" x="48" y="0" width="16" height="16"/>
  <object id="3" name="path" x="0" y="0">
   <polyline points="0,0 32,0 32,32"/>
  </object>
 </objectgroup>
</map>
`

func tilesPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 64, 16))
	for y := range 16 {
		for x := range 64 {
			img.Set(x, y, color.NRGBA{R: uint8(x * 4), G: 128, B: 64, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func testFS(t *testing.T) fstest.MapFS {
	return fstest.MapFS{
		"maps/village.tmx": {Data: []byte(villageTMX)},
		"maps/tiles.png":   {Data: tilesPNG(t)},
	}
}

func loadVillage(t *testing.T) Loader {
	t.Helper()
	fsys := testFS(t)
	parser, err := NewParser(fsys, 4)
	if err != nil {
		t.Fatal(err)
	}
	images, err := draw.NewLoader(fsys, 16)
	if err != nil {
		t.Fatal(err)
	}
	l, err := Load(parser, images, "maps/village.tmx", config.Default().Map)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return l
}

// --- Parser ---

func TestParser_Caches(t *testing.T) {
	p, err := NewParser(testFS(t), 2)
	if err != nil {
		t.Fatal(err)
	}
	first, err := p.Parse("maps/village.tmx")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !p.Cached("maps/village.tmx") {
		t.Error("map should be cached after parsing")
	}
	second, err := p.Parse("maps/village.tmx")
	if err != nil || second != first {
		t.Error("second parse should return the cached map")
	}
	if _, err := p.Parse("maps/missing.tmx"); err == nil {
		t.Error("expected error for a missing map")
	}
}

func TestLoad_CachesLoader(t *testing.T) {
	fsys := testFS(t)
	parser, err := NewParser(fsys, 4)
	if err != nil {
		t.Fatal(err)
	}
	images, err := draw.NewLoader(fsys, 16)
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.Default().Map
	first, err := Load(parser, images, "maps/village.tmx", cfg)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !parser.CachedLoader("maps/village.tmx", images, cfg) {
		t.Fatal("loader should be cached after loading")
	}
	second, err := Load(parser, images, "maps/village.tmx", cfg)
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if len(first.objects) == 0 || &first.objects[0] != &second.objects[0] {
		t.Error("second load should share the cached loader")
	}

	other := cfg
	other.Collision = "walls"
	if parser.CachedLoader("maps/village.tmx", images, other) {
		t.Error("another layer config is a different loader")
	}
	third, err := Load(parser, images, "maps/village.tmx", other)
	if err != nil {
		t.Fatalf("Load with other config: %v", err)
	}
	if &third.objects[0] == &first.objects[0] {
		t.Error("another layer config should build its own loader")
	}
}

// --- Loader ---

func TestLoader_MapSize(t *testing.T) {
	l := loadVillage(t)
	if l.MapSize() != geometry.SizeOf(64, 48) {
		t.Errorf("MapSize = %v, want 64x48", l.MapSize())
	}
	if l.TileSize() != geometry.SizeOf(16, 16) {
		t.Errorf("TileSize = %v, want 16x16", l.TileSize())
	}
}

func TestLoader_ForegroundGroups(t *testing.T) {
	l := loadVillage(t)
	groups := l.Groups()
	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2 (tree + rock)", len(groups))
	}
	var tree *Group
	for i := range groups {
		if len(groups[i].Tiles) == 2 {
			tree = &groups[i]
		}
	}
	if tree == nil {
		t.Fatal("the two tree tiles should form one group")
	}
	if tree.Bottom != 32 {
		t.Errorf("tree Bottom = %v, want 32", tree.Bottom)
	}
	if tree.Tiles[0].Class != "tree" || tree.Tiles[0].At != (geometry.Coordinate{Left: 16, Top: 0}) {
		t.Errorf("tree top tile = %+v", tree.Tiles[0])
	}
}

func TestLoader_Collisions(t *testing.T) {
	l := loadVillage(t)
	cs := l.Collisions()
	if len(cs) != 2 {
		t.Fatalf("collisions = %d, want tile collider + wall", len(cs))
	}
	tile := geometry.RectangleOf(cs[0])
	if tile.Corner != (geometry.Coordinate{Left: 48, Top: 24}) || tile.Extent != geometry.SizeOf(16, 8) {
		t.Errorf("tile collider = %v %v, want (48,24) 16x8", tile.Corner, tile.Extent)
	}
	wall := geometry.RectangleOf(cs[1])
	if wall.Corner != (geometry.Coordinate{Left: 48, Top: 0}) {
		t.Errorf("wall = %v", wall.Corner)
	}
	if got := len(l.Debug(config.DefaultDebug())); got != 2 {
		t.Errorf("debug overlays = %d, want 2", got)
	}
}

func TestLoader_Objects(t *testing.T) {
	l := loadVillage(t)
	spawn, err := l.Object("spawn")
	if err != nil {
		t.Fatal(err)
	}
	if spawn.Coordinate() != (geometry.Coordinate{Left: 8, Top: 40}) {
		t.Errorf("spawn = %v, want (8,40)", spawn.Coordinate())
	}
	path, err := l.Object("path")
	if err != nil {
		t.Fatal(err)
	}
	line, ok := path.Path()
	if !ok || len(line.Points()) != 3 || path.Closed {
		t.Errorf("path = %+v", path)
	}
	if _, err := l.Object("missing"); !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("err = %v, want ErrObjectNotFound", err)
	}
	if got := l.ObjectsByClass("collision"); len(got) != 1 || got[0].Name != "wall" {
		t.Errorf("ObjectsByClass = %v", got)
	}
}

func TestLoader_AnimatedTiles(t *testing.T) {
	l := loadVillage(t)
	if len(l.Background()) != 2 {
		t.Fatalf("background = %d drawings, want flattened + animated", len(l.Background()))
	}
	if l.animations[0].Index() != 0 {
		t.Fatal("animation should start on frame 0")
	}
	ticked := l.Tick(100)
	if ticked.animations[0].Index() != 1 {
		t.Errorf("Index = %d, want 1 after 100ms", ticked.animations[0].Index())
	}
	if l.animations[0].Index() != 0 {
		t.Error("Tick modified the original loader")
	}
}

func TestLoader_Layered(t *testing.T) {
	l := loadVillage(t)
	cfg := config.Default().Character
	hero := character.NewOnScreen("hero", geometry.Coordinate{Left: 24, Top: 20},
		character.NewStatic(draw.Blank(geometry.SizeOf(10, 10)), geometry.Down), cfg)

	ds := l.Layered([]character.OnScreen{hero})
	if len(ds) != 6 {
		t.Fatalf("drawings = %d, want 2 background + hero + 3 foreground", len(ds))
	}
	if ds[2].At != (geometry.Coordinate{Left: 19, Top: 10}) {
		t.Errorf("hero should draw behind the tree; ds[2] at %v", ds[2].At)
	}

	front := hero.WithCoordinate(geometry.Coordinate{Left: 24, Top: 40})
	ds = l.Layered([]character.OnScreen{front})
	if last := ds[len(ds)-1]; last.At != (geometry.Coordinate{Left: 19, Top: 30}) {
		t.Errorf("hero below the tree should draw last; got %v", last.At)
	}
}
