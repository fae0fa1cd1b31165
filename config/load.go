package config

import (
	"fmt"
	"maps"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/ini.v1"

	"github.com/phanxgames/thicket/debuglog"
	"github.com/phanxgames/thicket/draw"
	"github.com/phanxgames/thicket/event"
	"github.com/phanxgames/thicket/geometry"
	"github.com/phanxgames/thicket/timing"
)

var loadOptions = ini.LoadOptions{
	InsensitiveSections:     true,
	InsensitiveKeys:         true,
	SkipUnrecognizableLines: true,
}

// Load reads an INI file over the default settings.
func Load(path string) (Config, error) {
	return LoadSources(Default(), path)
}

// LoadSources overlays INI sources on base. A source is anything ini.Load
// accepts: a file name, raw bytes or a reader. Later sources win.
//
// Each section mirrors a Config field in snake_case ([window], [say_event],
// ...). Colors are written r,g,b[,a]; an optional color set to "none" is
// cleared.
func LoadSources(base Config, sources ...any) (Config, error) {
	if len(sources) == 0 {
		return base, nil
	}
	f, err := ini.LoadSources(loadOptions, sources[0], sources[1:]...)
	if err != nil {
		return base, fmt.Errorf("config: load: %w", err)
	}
	cfg := base
	cfg.KeyMapping = maps.Clone(base.KeyMapping)
	r := &reader{f: f}

	r.section("window", func(s *ini.Section) {
		r.str(s, "title", &cfg.Window.Title)
		r.int(s, "width", &cfg.Window.Width)
		r.int(s, "height", &cfg.Window.Height)
		r.color(s, "background", &cfg.Window.Background)
		r.bool(s, "full_screen", &cfg.Window.FullScreen)
		r.bool(s, "fps_in_title", &cfg.Window.FPSInTitle)
		if s.HasKey("resize") {
			m, err := ParseResizeMode(s.Key("resize").String())
			r.fail(err)
			cfg.Window.Resize = m
		}
	})
	r.section("debug", func(s *ini.Section) {
		enabled := true
		r.bool(s, "enabled", &enabled)
		if !enabled {
			cfg.Debug = nil
			return
		}
		d := DefaultDebug()
		if cfg.Debug != nil {
			copied := *cfg.Debug
			d = &copied
		}
		r.optColor(s, "drawing_background", &d.DrawingBackground)
		r.optColor(s, "collision_rectangle", &d.CollisionRectangle)
		r.optColor(s, "start_event_rectangle", &d.StartEventRectangle)
		r.optColor(s, "npc_path", &d.NPCPath)
		r.optColor(s, "group_link", &d.GroupLink)
		r.optColor(s, "log_background", &d.LogBackground)
		r.ms(s, "log_duration", &d.LogDuration)
		if s.HasKey("log_level") {
			l, err := debuglog.ParseLevel(s.Key("log_level").String())
			r.fail(err)
			d.LogLevel = l
		}
		cfg.Debug = d
	})
	r.section("map", func(s *ini.Section) {
		r.str(s, "background", &cfg.Map.Background)
		r.str(s, "foreground", &cfg.Map.Foreground)
		r.str(s, "above_character", &cfg.Map.AboveCharacter)
		r.str(s, "collision", &cfg.Map.Collision)
		r.int(s, "cache_size", &cfg.Map.CacheSize)
	})
	r.section("character", func(s *ini.Section) {
		r.float(s, "move_speed", &cfg.Character.MoveSpeed)
		r.ms(s, "idle_duration", &cfg.Character.IdleDuration)
		r.ms(s, "move_duration", &cfg.Character.MoveDuration)
		r.ms(s, "frame_duration", &cfg.Character.FrameDuration)
		r.bool(s, "collide_with_others", &cfg.Character.CollideWithOthers)
		r.float(s, "start_event_margin", &cfg.Character.StartEventMargin)
		if s.HasKey("direction") {
			d, err := geometry.ParseDirection(s.Key("direction").String())
			r.fail(err)
			cfg.Character.Direction = d
		}
	})
	r.section("key_mapping", func(s *ini.Section) {
		for _, k := range s.Keys() {
			logical, err := event.ParseKey(k.Name())
			if err != nil {
				r.fail(err)
				continue
			}
			var raws []ebiten.Key
			for _, name := range strings.Split(k.String(), ",") {
				raw, err := event.ParseRawKey(name)
				if err != nil {
					r.fail(fmt.Errorf("[key_mapping] %s: %w", k.Name(), err))
					continue
				}
				raws = append(raws, raw)
			}
			cfg.KeyMapping[logical] = raws
		}
	})
	r.section("timing", func(s *ini.Section) {
		r.ms(s, "fade_duration", &cfg.Timing.FadeDuration)
	})
	r.section("resource", func(s *ini.Section) {
		r.int(s, "drawing_cache_size", &cfg.Resource.DrawingCacheSize)
		r.int(s, "scene_cache_size", &cfg.Resource.SceneCacheSize)
	})
	r.section("text", func(s *ini.Section) {
		r.color(s, "color", &cfg.Text.Color)
		r.float(s, "line_spacing", &cfg.Text.LineSpacing)
		r.float(s, "margin_to_other_text", &cfg.Text.MarginToOtherText)
	})
	r.section("say_event", func(s *ini.Section) {
		se := &cfg.SayEvent
		r.ms(s, "fade_duration", &se.FadeDuration)
		r.ms(s, "text_delay", &se.TextDelay)
		if s.HasKey("padding") {
			var p float64
			r.float(s, "padding", &p)
			se.Padding = geometry.UniformPadding(p)
		}
		r.color(s, "background", &se.Background)
		r.float(s, "border_radius", &se.BorderRadius)
		r.float(s, "tip_height", &se.TipHeight)
		r.float(s, "tip_width1", &se.TipWidth1)
		r.float(s, "tip_width2", &se.TipWidth2)
		r.float(s, "character_gap", &se.CharacterGap)
		r.color(s, "text_color", &se.TextColor)
		r.color(s, "name_color", &se.NameColor)
		var wrap float64 = float64(se.WrapWidth)
		r.float(s, "wrap_width", &wrap)
		se.WrapWidth = geometry.Width(wrap)
	})
	r.section("cutscene", func(s *ini.Section) {
		r.optColor(s, "border", &cfg.Cutscene.Border)
		r.float(s, "screen_height_pct", &cfg.Cutscene.ScreenHeightPct)
		r.ms(s, "duration", &cfg.Cutscene.Duration)
		r.bool(s, "wait", &cfg.Cutscene.Wait)
	})
	r.section("transition", func(s *ini.Section) {
		r.color(s, "intermediary", &cfg.Transition.Intermediary)
		r.ms(s, "duration", &cfg.Transition.Duration)
	})
	r.section("game_loop", func(s *ini.Section) {
		r.int(s, "tps", &cfg.GameLoop.TPS)
	})

	if r.err != nil {
		return base, r.err
	}
	return cfg, nil
}

// reader applies keys that are present and keeps the first error.
type reader struct {
	f   *ini.File
	err error
}

func (r *reader) fail(err error) {
	if err != nil && r.err == nil {
		r.err = fmt.Errorf("config: %w", err)
	}
}

func (r *reader) section(name string, fn func(*ini.Section)) {
	s, err := r.f.GetSection(name)
	if err != nil {
		return
	}
	fn(s)
}

func (r *reader) keyErr(s *ini.Section, key string, err error) {
	if err != nil {
		r.fail(fmt.Errorf("[%s] %s: %w", s.Name(), key, err))
	}
}

func (r *reader) str(s *ini.Section, key string, dst *string) {
	if s.HasKey(key) {
		*dst = s.Key(key).String()
	}
}

func (r *reader) int(s *ini.Section, key string, dst *int) {
	if !s.HasKey(key) {
		return
	}
	v, err := s.Key(key).Int()
	r.keyErr(s, key, err)
	if err == nil {
		*dst = v
	}
}

func (r *reader) float(s *ini.Section, key string, dst *float64) {
	if !s.HasKey(key) {
		return
	}
	v, err := s.Key(key).Float64()
	r.keyErr(s, key, err)
	if err == nil {
		*dst = v
	}
}

func (r *reader) ms(s *ini.Section, key string, dst *timing.Millisecond) {
	v := float64(*dst)
	r.float(s, key, &v)
	*dst = timing.Millisecond(v)
}

func (r *reader) bool(s *ini.Section, key string, dst *bool) {
	if !s.HasKey(key) {
		return
	}
	v, err := s.Key(key).Bool()
	r.keyErr(s, key, err)
	if err == nil {
		*dst = v
	}
}

func (r *reader) color(s *ini.Section, key string, dst *draw.Color) {
	if !s.HasKey(key) {
		return
	}
	c, err := draw.ParseColor(s.Key(key).String())
	r.keyErr(s, key, err)
	if err == nil {
		*dst = c
	}
}

func (r *reader) optColor(s *ini.Section, key string, dst **draw.Color) {
	if !s.HasKey(key) {
		return
	}
	if strings.EqualFold(strings.TrimSpace(s.Key(key).String()), "none") {
		*dst = nil
		return
	}
	c, err := draw.ParseColor(s.Key(key).String())
	r.keyErr(s, key, err)
	if err == nil {
		*dst = &c
	}
}
