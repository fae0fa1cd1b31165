package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/thicket/debuglog"
	"github.com/phanxgames/thicket/draw"
	"github.com/phanxgames/thicket/event"
	"github.com/phanxgames/thicket/geometry"
)

// --- Defaults ---

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Debug != nil {
		t.Error("debug should be disabled by default")
	}
	if cfg.Window.Size() != geometry.SizeOf(1280, 720) {
		t.Errorf("Window.Size = %v, want 1280x720", cfg.Window.Size())
	}
	if cfg.SayEvent.Background != (draw.Color{R: 255, G: 255, B: 255, A: 200}) {
		t.Errorf("SayEvent.Background = %v", cfg.SayEvent.Background)
	}
	if cfg.ScreenCenter() != (geometry.Coordinate{Left: 640, Top: 360}) {
		t.Errorf("ScreenCenter = %v, want (640,360)", cfg.ScreenCenter())
	}
	if cfg.CutsceneBorder() != draw.ColorBlack {
		t.Errorf("CutsceneBorder = %v, want window background", cfg.CutsceneBorder())
	}
}

func TestKeyMappingInverts(t *testing.T) {
	m := DefaultKeyMapping().Mapping()
	if m[ebiten.KeyA] != event.KeyLeft || m[ebiten.KeyArrowLeft] != event.KeyLeft {
		t.Error("A and left arrow should both map to left")
	}
	if m[ebiten.KeySpace] != event.KeyConfirm {
		t.Errorf("Space = %v, want confirm", m[ebiten.KeySpace])
	}
}

// --- Loading ---

func TestLoadSourcesOverlay(t *testing.T) {
	src := []byte(`
[window]
title = Village
width = 640
resize = native

[character]
move_speed = 0.5
direction = up

[say_event]
background = 10,20,30
text_delay = 0
padding = 4

[key_mapping]
confirm = Z, Enter
`)
	cfg, err := LoadSources(Default(), src)
	if err != nil {
		t.Fatalf("LoadSources: %v", err)
	}
	if cfg.Window.Title != "Village" || cfg.Window.Width != 640 || cfg.Window.Height != 720 {
		t.Errorf("Window = %+v", cfg.Window)
	}
	if cfg.Window.Resize != ResizeNative {
		t.Errorf("Resize = %v, want native", cfg.Window.Resize)
	}
	if cfg.Character.MoveSpeed != 0.5 || cfg.Character.Direction != geometry.Up {
		t.Errorf("Character = %+v", cfg.Character)
	}
	if cfg.SayEvent.Background != (draw.Color{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("SayEvent.Background = %v", cfg.SayEvent.Background)
	}
	if cfg.SayEvent.TextDelay != 0 {
		t.Errorf("TextDelay = %v, want 0", cfg.SayEvent.TextDelay)
	}
	if cfg.SayEvent.Padding != geometry.UniformPadding(4) {
		t.Errorf("Padding = %v", cfg.SayEvent.Padding)
	}
	keys := cfg.KeyMapping[event.KeyConfirm]
	if len(keys) != 2 || keys[0] != ebiten.KeyZ || keys[1] != ebiten.KeyEnter {
		t.Errorf("confirm keys = %v", keys)
	}
	if len(cfg.KeyMapping[event.KeyLeft]) != 2 {
		t.Error("unlisted keys should keep their defaults")
	}
}

func TestLoadSourcesDoesNotShareKeyMapping(t *testing.T) {
	base := Default()
	if _, err := LoadSources(base, []byte("[key_mapping]\nleft = Q\n")); err != nil {
		t.Fatal(err)
	}
	if len(base.KeyMapping[event.KeyLeft]) != 2 {
		t.Error("base key mapping was modified")
	}
}

func TestLoadSourcesDebugSection(t *testing.T) {
	cfg, err := LoadSources(Default(), []byte(`
[debug]
log_level = warning
npc_path = none
collision_rectangle = 1,2,3,4
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Debug == nil {
		t.Fatal("a [debug] section should enable debug")
	}
	if cfg.Debug.LogLevel != debuglog.LevelWarning {
		t.Errorf("LogLevel = %v, want warning", cfg.Debug.LogLevel)
	}
	if cfg.Debug.NPCPath != nil {
		t.Error("npc_path = none should clear the color")
	}
	if c := cfg.Debug.CollisionRectangle; c == nil || *c != (draw.Color{R: 1, G: 2, B: 3, A: 4}) {
		t.Errorf("CollisionRectangle = %v", c)
	}
	if cfg.Debug.DrawingBackground == nil {
		t.Error("unlisted debug colors should keep their defaults")
	}

	off, err := LoadSources(cfg, []byte("[debug]\nenabled = false\n"))
	if err != nil {
		t.Fatal(err)
	}
	if off.Debug != nil {
		t.Error("enabled = false should disable debug")
	}
}

func TestLoadSourcesLaterWins(t *testing.T) {
	cfg, err := LoadSources(Default(),
		[]byte("[game_loop]\ntps = 30\n"),
		[]byte("[game_loop]\ntps = 120\n"),
	)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.GameLoop.TPS != 120 {
		t.Errorf("TPS = %d, want 120", cfg.GameLoop.TPS)
	}
}

func TestLoadSourcesErrors(t *testing.T) {
	cases := map[string]string{
		"resize":    "[window]\nresize = stretch\n",
		"direction": "[character]\ndirection = north\n",
		"level":     "[debug]\nlog_level = loud\n",
		"key":       "[key_mapping]\njump = Space\n",
		"raw key":   "[key_mapping]\nconfirm = Hyperspace\n",
		"color":     "[window]\nbackground = 1,2\n",
		"number":    "[window]\nwidth = wide\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadSources(Default(), []byte(src)); err == nil {
				t.Errorf("expected error for %q", src)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.ini")
	if err := os.WriteFile(path, []byte("[transition]\nduration = 250\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Transition.Duration != 250 {
		t.Errorf("Transition.Duration = %v, want 250", cfg.Transition.Duration)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.ini")); err == nil {
		t.Error("expected error for a missing file")
	}
}
