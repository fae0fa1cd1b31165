package draw

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/phanxgames/thicket/geometry"
)

// --- Color ---

func TestParseColor(t *testing.T) {
	c, err := ParseColor("255, 255, 255, 200")
	if err != nil {
		t.Fatalf("ParseColor: %v", err)
	}
	if c != (Color{255, 255, 255, 200}) {
		t.Errorf("ParseColor = %v", c)
	}
	c, err = ParseColor("0,0,255")
	if err != nil || c != ColorBlue {
		t.Errorf("ParseColor(rgb) = %v, %v; want opaque blue", c, err)
	}
	for _, bad := range []string{"", "1,2", "300,0,0", "a,b,c"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q) should fail", bad)
		}
	}
}

func TestAlphaFromPercentage_Clamps(t *testing.T) {
	tests := []struct {
		p    float64
		want uint8
	}{
		{-1, 0},
		{0, 0},
		{0.5, 127},
		{1, 255},
		{1.5, 255},
	}
	for _, tt := range tests {
		if got := AlphaFromPercentage(tt.p); got != tt.want {
			t.Errorf("AlphaFromPercentage(%v) = %d, want %d", tt.p, got, tt.want)
		}
	}
}

// --- Pixel analysis ---

func sparse(w, h int, pts ...image.Point) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for _, p := range pts {
		img.Set(p.X, p.Y, color.NRGBA{255, 0, 0, 255})
	}
	return img
}

func TestVisibleBounds(t *testing.T) {
	got := visibleBounds(sparse(10, 10, image.Pt(2, 3), image.Pt(5, 7)))
	if got != image.Rect(2, 3, 6, 8) {
		t.Errorf("visibleBounds = %v, want (2,3)-(6,8)", got)
	}
	if got := visibleBounds(sparse(4, 4)); !got.Empty() {
		t.Errorf("transparent image bounds = %v, want empty", got)
	}
}

func TestVisibleBounds_SubImageIsRelative(t *testing.T) {
	img := sparse(10, 10, image.Pt(6, 6))
	got := visibleBounds(img.SubImage(image.Rect(5, 5, 10, 10)))
	if got != image.Rect(1, 1, 2, 2) {
		t.Errorf("visibleBounds = %v, want (1,1)-(2,2)", got)
	}
}

func TestDrawingCropKeepsPixels(t *testing.T) {
	d := NewDrawingFromImage(sparse(10, 10, image.Pt(6, 6)))
	c := d.Crop(geometry.NewRectangle(geometry.Coordinate{Left: 5, Top: 5}, geometry.SizeOf(5, 5)))
	if c.Size() != geometry.SizeOf(5, 5) {
		t.Fatalf("crop size = %v, want 5x5", c.Size())
	}
	r := c.VisibleRectangle()
	if r.Corner != (geometry.Coordinate{Left: 1, Top: 1}) || r.Extent != geometry.SizeOf(1, 1) {
		t.Errorf("VisibleRectangle = %v", r)
	}
	if got := c.Trim().Size(); got != geometry.SizeOf(1, 1) {
		t.Errorf("Trim size = %v, want 1x1", got)
	}
}

func TestDrawingFlipMovesPixels(t *testing.T) {
	d := NewDrawingFromImage(sparse(10, 4, image.Pt(0, 0)))
	r := d.Flip(true, false).VisibleRectangle()
	if r.Corner != (geometry.Coordinate{Left: 9, Top: 0}) {
		t.Errorf("flipped pixel at %v, want (9, 0)", r.Corner)
	}
}

func TestDrawingCut(t *testing.T) {
	d := Blank(geometry.SizeOf(20, 10)).Cut(geometry.PaddingFor(2, 1))
	if d.Size() != geometry.SizeOf(16, 8) {
		t.Errorf("Cut size = %v, want 16x8", d.Size())
	}
}

func TestDrawingScaleAndRotate(t *testing.T) {
	d := Blank(geometry.SizeOf(10, 4))
	if got := d.Scale(geometry.WidthScaling(2)).Size(); got != geometry.SizeOf(20, 4) {
		t.Errorf("scaled size = %v, want 20x4", got)
	}
	if got := d.Rotate(90).Size(); got != geometry.SizeOf(4, 10) {
		t.Errorf("rotated size = %v, want 4x10", got)
	}
}

func TestDrawingWithAlphaIsValue(t *testing.T) {
	d := Blank(geometry.SizeOf(2, 2))
	half := d.WithAlpha(127)
	if d.Alpha() != 255 || half.Alpha() != 127 {
		t.Errorf("alphas = %d/%d, want 255/127", d.Alpha(), half.Alpha())
	}
}

// --- Loader ---

func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestLoaderCachesByPath(t *testing.T) {
	fsys := fstest.MapFS{
		"hero.png": {Data: pngBytes(t, sparse(8, 6, image.Pt(1, 1)))},
	}
	l, err := NewLoader(fsys, 4)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	d, err := l.Load("hero.png")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.Size() != geometry.SizeOf(8, 6) {
		t.Errorf("size = %v, want 8x6", d.Size())
	}
	if !l.Cached("hero.png") || l.Len() != 1 {
		t.Errorf("cached = %v, len = %d", l.Cached("hero.png"), l.Len())
	}
	again, _ := l.Load("hero.png")
	if again.Image() != d.Image() {
		t.Error("second load should return the cached surface")
	}
	if d.VisibleRectangle().Extent != geometry.SizeOf(1, 1) {
		t.Errorf("decoded pixels not kept: %v", d.VisibleRectangle())
	}
}

func TestLoaderMissingFile(t *testing.T) {
	l, _ := NewLoader(fstest.MapFS{}, 4)
	if _, err := l.Load("nope.png"); err == nil {
		t.Error("expected error for missing file")
	}
	if l.Len() != 0 {
		t.Error("failed loads must not be cached")
	}
}

func TestNewLoaderRejectsZeroSize(t *testing.T) {
	if _, err := NewLoader(fstest.MapFS{}, 0); err == nil {
		t.Error("expected error for zero cache size")
	}
}

// --- Sprites and groups ---

func TestShiftedSpriteAnchor(t *testing.T) {
	s := Shift(Blank(geometry.SizeOf(10, 10)), geometry.Coordinate{Left: 50, Top: 50}, geometry.AnchorCenter)
	ds := s.Resolve(geometry.Origin)
	if len(ds) != 1 || ds[0].At != (geometry.Coordinate{Left: 45, Top: 45}) {
		t.Fatalf("Resolve = %+v, want one drawing at (45, 45)", ds)
	}
	flipped := s.Flip().Resolve(geometry.Origin)
	if flipped[0].At != (geometry.Coordinate{Left: -55, Top: -55}) {
		t.Errorf("flipped at %v, want (-55, -55)", flipped[0].At)
	}
	bottom := Shift(Blank(geometry.SizeOf(10, 10)), geometry.Origin, geometry.AnchorBottomRight).Resolve(geometry.Coordinate{Left: 100, Top: 100})
	if bottom[0].At != (geometry.Coordinate{Left: 90, Top: 90}) {
		t.Errorf("bottom-right anchored at %v, want (90, 90)", bottom[0].At)
	}
}

func TestShiftedNormalisesBareSprites(t *testing.T) {
	items := Shifted(Blank(geometry.SizeOf(1, 1)), Shift(Blank(geometry.SizeOf(1, 1)), geometry.SizeOf(3, 4), geometry.AnchorCenter))
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[0].Anchor != geometry.AnchorTopLeft || items[0].Point(geometry.Origin) != geometry.Origin {
		t.Errorf("bare sprite = %+v, want top-left at origin", items[0])
	}
	if items[1].Point(geometry.Origin) != (geometry.Coordinate{Left: 3, Top: 4}) {
		t.Errorf("size offset point = %v", items[1].Point(geometry.Origin))
	}
}

func TestShiftedPanicsOnOtherTypes(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a non-sprite item")
		}
	}()
	Shifted(42)
}

func TestGroupBoundingBox(t *testing.T) {
	g := Group(
		Blank(geometry.SizeOf(10, 10)),
		Shift(Blank(geometry.SizeOf(5, 5)), geometry.Coordinate{Left: 20, Top: 20}, geometry.AnchorTopLeft),
	)
	if g.TopLeft() != geometry.Origin {
		t.Errorf("TopLeft = %v, want origin", g.TopLeft())
	}
	if g.Size() != geometry.SizeOf(25, 25) {
		t.Errorf("Size = %v, want 25x25", g.Size())
	}
	if !g.Complete() {
		t.Error("group of static drawings should be complete")
	}
}

func TestGroupLinksDoNotChangeBounds(t *testing.T) {
	g := Group(
		Shift(Blank(geometry.SizeOf(4, 4)), geometry.Coordinate{Left: 10, Top: 10}, geometry.AnchorTopLeft),
	)
	linked := g.WithLinks(ColorRed)
	if linked.Size() != g.Size() || linked.TopLeft() != g.TopLeft() {
		t.Errorf("links changed bounds: %v %v", linked.Size(), linked.TopLeft())
	}
	if got := len(linked.DrawingOnScreens(geometry.Origin)); got != 2 {
		t.Errorf("drawings = %d, want child plus link", got)
	}
}

func TestNestedGroupPlacement(t *testing.T) {
	inner := Group(Shift(Blank(geometry.SizeOf(2, 2)), geometry.Coordinate{Left: -4, Top: -4}, geometry.AnchorTopLeft))
	outer := Group(Shift(inner, geometry.Coordinate{Left: 10, Top: 10}, geometry.AnchorTopLeft))
	ds := outer.DrawingOnScreens(geometry.Origin)
	if len(ds) != 1 || ds[0].At != (geometry.Coordinate{Left: 10, Top: 10}) {
		t.Errorf("nested drawing = %+v, want at (10, 10)", ds)
	}
}

// --- Text ---

func testConfig() TextConfig {
	cfg := DefaultTextConfig()
	cfg.LineSpacing = 0
	cfg.MarginToOtherText = 4
	return cfg
}

func TestFontMeasure(t *testing.T) {
	f := DefaultFont()
	if f.LineHeight() != 13 {
		t.Errorf("LineHeight = %f, want 13", f.LineHeight())
	}
	if got := f.Measure("abc").W(); got != 21 {
		t.Errorf("Measure(abc) = %f, want 21", got)
	}
}

func TestTextWraps(t *testing.T) {
	txt := NewText("aaa bbb ccc", testConfig()).Wrapped(50)
	lines := txt.Lines()
	if len(lines) != 2 || lines[0] != "aaa bbb" || lines[1] != "ccc" {
		t.Fatalf("Lines = %q", lines)
	}
	if txt.Size() != geometry.SizeOf(49, 26) {
		t.Errorf("Size = %v, want 49x26", txt.Size())
	}
}

func TestTextNewlinesAndSlice(t *testing.T) {
	txt := NewText("ab\ncd", testConfig())
	if txt.Len() != 4 {
		t.Errorf("Len = %d, want 4", txt.Len())
	}
	sliced := txt.Slice(3).(Text)
	lines := sliced.Lines()
	if len(lines) != 2 || lines[0] != "ab" || lines[1] != "c" {
		t.Errorf("Slice(3) lines = %q", lines)
	}
	if got := txt.Slice(0).Size(); !got.Empty() {
		t.Errorf("Slice(0) size = %v, want empty", got)
	}
}

func TestTextLineSpacing(t *testing.T) {
	cfg := testConfig()
	cfg.LineSpacing = 3
	txt := NewText("a\nb", cfg)
	ds := txt.DrawingOnScreens(geometry.Origin)
	if len(ds) != 2 || ds[1].At.Top != 16 {
		t.Errorf("second line at %v, want top 16", ds[1].At)
	}
}

func TestTextGroupContinuesLines(t *testing.T) {
	g := NewTextGroup(testConfig(), "ab\ncd", "ef")
	if g.Size() != geometry.SizeOf(32, 26) {
		t.Errorf("Size = %v, want 32x26", g.Size())
	}
	ds := g.DrawingOnScreens(geometry.Origin)
	if len(ds) != 3 {
		t.Fatalf("drawings = %d, want 3", len(ds))
	}
	if ds[2].At != (geometry.Coordinate{Left: 18, Top: 13}) {
		t.Errorf("ef at %v, want (18, 13)", ds[2].At)
	}
}

func TestTextGroupBottomAligns(t *testing.T) {
	g := NewTextGroup(testConfig(), "ab", Blank(geometry.SizeOf(10, 20)))
	ds := g.DrawingOnScreens(geometry.Origin)
	if len(ds) != 2 {
		t.Fatalf("drawings = %d, want 2", len(ds))
	}
	if ds[0].At != (geometry.Coordinate{Left: 0, Top: 7}) {
		t.Errorf("text at %v, want (0, 7)", ds[0].At)
	}
	if ds[1].At != (geometry.Coordinate{Left: 18, Top: 0}) {
		t.Errorf("sprite at %v, want (18, 0)", ds[1].At)
	}
}

func TestTextGroupSlice(t *testing.T) {
	g := NewTextGroup(testConfig(), "ab", Blank(geometry.SizeOf(5, 5)), "cd")
	if g.Len() != 5 {
		t.Errorf("Len = %d, want 5", g.Len())
	}
	sliced := g.Slice(3).(TextGroup)
	if len(sliced.Items) != 2 {
		t.Errorf("Slice(3) items = %d, want text and sprite", len(sliced.Items))
	}
	sliced = g.Slice(4).(TextGroup)
	if last := sliced.Items[2].(Text); len(last.Lines()) != 1 || last.Lines()[0] != "c" {
		t.Errorf("partial text = %q, want c", last.Lines())
	}
}

// --- Sheets and shapes ---

func TestSpriteSheetCell(t *testing.T) {
	sheet := SpriteSheet{Drawing: Blank(geometry.SizeOf(30, 40)), Rows: 4, Columns: 3}
	if sheet.CellSize() != geometry.SizeOf(10, 10) {
		t.Errorf("CellSize = %v", sheet.CellSize())
	}
	if got := sheet.Cell(3, 2).Size(); got != geometry.SizeOf(10, 10) {
		t.Errorf("Cell size = %v", got)
	}
	sheet.Trim = geometry.PaddingFor(1, 1)
	if got := sheet.Cell(0, 0).Size(); got != geometry.SizeOf(8, 8) {
		t.Errorf("trimmed cell = %v, want 8x8", got)
	}
	if len(sheet.Row(1)) != 3 {
		t.Error("Row should return one drawing per column")
	}
}

func TestSpriteSheetOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	SpriteSheet{Drawing: Blank(geometry.SizeOf(10, 10)), Rows: 1, Columns: 1}.Cell(1, 0)
}

func TestShapesPlacement(t *testing.T) {
	line := StrokeLine(geometry.Coordinate{Left: 10, Top: 10}, geometry.Coordinate{Left: 20, Top: 10}, ColorRed, 1)
	if line.At != (geometry.Coordinate{Left: 9, Top: 9}) {
		t.Errorf("line at %v, want (9, 9)", line.At)
	}
	poly := FillArea(geometry.NewPolygon(
		geometry.Coordinate{Left: 5, Top: 0}, geometry.Coordinate{Left: 10, Top: 5}, geometry.Coordinate{Left: 5, Top: 10},
	), ColorGreen)
	if poly.At != (geometry.Coordinate{Left: 5, Top: 0}) || poly.Size() != geometry.SizeOf(5, 10) {
		t.Errorf("polygon fill = %v %v", poly.At, poly.Size())
	}
	rect := FillRectangle(geometry.SizeOf(30, 20), ColorWhite, 10)
	if rect.Size() != geometry.SizeOf(30, 20) {
		t.Errorf("rounded rect size = %v", rect.Size())
	}
}

func TestBoundsOfPlacements(t *testing.T) {
	ds := []DrawingOnScreen{
		{At: geometry.Coordinate{Left: 5, Top: 5}, Drawing: Blank(geometry.SizeOf(5, 5))},
		{At: geometry.Coordinate{Left: -5, Top: 0}, Drawing: Blank(geometry.SizeOf(2, 2))},
	}
	b := Bounds(ds)
	if b.TopLeftPoint != (geometry.Coordinate{Left: -5, Top: 0}) || b.Extent != geometry.SizeOf(15, 10) {
		t.Errorf("Bounds = %+v", b)
	}
	shifted := ShiftAll(ds, geometry.Coordinate{Left: 1, Top: 1})
	if shifted[0].At != (geometry.Coordinate{Left: 6, Top: 6}) || ds[0].At.Left != 5 {
		t.Error("ShiftAll must copy")
	}
}
