package scene

import (
	"fmt"

	"github.com/phanxgames/thicket/animation"
	"github.com/phanxgames/thicket/config"
	"github.com/phanxgames/thicket/draw"
	"github.com/phanxgames/thicket/event"
	"github.com/phanxgames/thicket/geometry"
	"github.com/phanxgames/thicket/timing"
)

// Speaker is who a speech bubble belongs to.
type Speaker struct {
	name   string
	player bool
	title  string
}

// SayCharacter points the bubble at the character named name.
func SayCharacter(name string) Speaker { return Speaker{name: name} }

// SayPlayer points the bubble at the player.
var SayPlayer = Speaker{player: true}

// SayScene shows an announcement in the middle of the screen with an
// optional title.
func SayScene(title string) Speaker { return Speaker{title: title} }

// AvatarPosition is the side of the text an avatar goes on.
type AvatarPosition uint8

const (
	AvatarLeft AvatarPosition = iota
	AvatarRight
)

type sayOptions struct {
	cfg       config.SayEvent
	at        *geometry.Coordinate
	name      *string
	avatar    draw.Sprite
	avatarPos AvatarPosition
}

// SayOption adjusts one speech bubble.
type SayOption func(*sayOptions)

// TextDelay types the message at d per character; zero shows it at once.
func TextDelay(d timing.Millisecond) SayOption {
	return func(o *sayOptions) { o.cfg.TextDelay = d }
}

// At centres the bubble on c instead of placing it by the speaker.
func At(c geometry.Coordinate) SayOption {
	return func(o *sayOptions) { o.at = &c }
}

// Name replaces the speaker's name label.
func Name(name string) SayOption {
	return func(o *sayOptions) { o.name = &name }
}

// Avatar shows sprite next to the text.
func Avatar(sprite draw.Sprite) SayOption {
	return func(o *sayOptions) { o.avatar = sprite }
}

// WithSayConfig replaces the bubble settings.
func WithSayConfig(cfg config.SayEvent) SayOption {
	return func(o *sayOptions) { o.cfg = cfg }
}

// WithAvatarPosition puts the avatar on side p of the text.
func WithAvatarPosition(p AvatarPosition) SayOption {
	return func(o *sayOptions) { o.avatarPos = p }
}

type sayState uint8

const (
	sayFadeIn sayState = iota
	sayTyping
	sayFadeOut
)

var sayStateNames = [...]string{"fade_in", "typing", "fade_out"}

func (s sayState) String() string { return sayStateNames[s] }

// SayEventScene shows a speech bubble. It fades the bubble in, types the
// message, waits for confirm and fades everything out before the script
// resumes. A bubble pointing at a character follows it while it moves.
type SayEventScene struct {
	RpgEventScene
	cfg config.SayEvent

	speaker string // followed character, empty for scene announcements
	origin  geometry.Coordinate

	bubble []draw.DrawingOnScreen
	textAt geometry.Coordinate

	state  sayState
	fade   animation.Animation
	typing animation.Typewriter
}

func sayMessage(message any, cfg config.Config, sc config.SayEvent) draw.Slicer {
	switch m := message.(type) {
	case string:
		t := draw.NewText(m, cfg.Text.WithColor(sc.TextColor))
		if sc.WrapWidth > 0 {
			t = t.Wrapped(sc.WrapWidth)
		}
		return t
	case draw.Text:
		return m
	case draw.TextGroup:
		return m
	}
	panic(fmt.Sprintf("thicket: say message must be a string, Text or TextGroup, got %T", message))
}

// NewSayEventScene lays out a bubble for message. message is a string, a
// draw.Text or a draw.TextGroup.
func NewSayEventScene(gen Generator, s EventfulScene, speaker Speaker, message any, opts ...SayOption) SayEventScene {
	cfg := s.Config()
	o := sayOptions{cfg: cfg.SayEvent}
	for _, opt := range opts {
		opt(&o)
	}
	text := sayMessage(message, cfg, o.cfg)

	var who *characterPosition
	name, followed := speaker.title, speaker.name
	if speaker.player {
		followed = s.Eventful().Player.Name
	}
	if followed != "" {
		c, ok := s.Eventful().Character(followed)
		if !ok {
			panic(fmt.Sprintf("thicket: say: no character named %q", followed))
		}
		p := positionOf(c.VisibleRect().Moved(s.Camera().Shift()), cfg.Window.Size())
		who, name = &p, c.Name
		if o.avatar == nil {
			o.avatar = c.Avatar
		}
	}
	if o.name != nil {
		name = *o.name
	}

	l := layoutBubble(text, name, o, cfg)
	var topLeft geometry.Coordinate
	switch {
	case o.at != nil:
		topLeft = o.at.AsCenterOf(l.size).TopLeft()
	case who != nil:
		var tip draw.DrawingOnScreen
		topLeft, tip = who.place(l.size, o.cfg, cfg.Window.Size())
		l.parts = append([]draw.DrawingOnScreen{tip}, l.parts...)
	default:
		center := cfg.ScreenCenter()
		if o.cfg.SceneCoordinate != nil {
			center = *o.cfg.SceneCoordinate
		}
		topLeft = center.AsCenterOf(l.size).TopLeft()
	}

	say := SayEventScene{
		RpgEventScene: RpgEventScene{gen, s},
		cfg:           o.cfg,
		bubble:        draw.ShiftAll(l.parts, topLeft),
		textAt:        topLeft.Add(l.text),
		typing:        animation.NewTypewriter(text, o.cfg.TextDelay),
	}
	if who != nil {
		say.speaker = followed
		say.origin = say.speakerAt(s)
	}
	say.fade = animation.FadeIn(draw.Placed(say.bubble), o.cfg.FadeDuration)
	return say
}

// speakerAt is the screen position of the followed character.
func (s SayEventScene) speakerAt(scene EventfulScene) geometry.Coordinate {
	c, ok := scene.Eventful().Character(s.speaker)
	if !ok {
		return s.origin
	}
	return c.Coordinate.Add(scene.Camera().Shift())
}

// State names the bubble phase: fade_in, typing or fade_out.
func (s SayEventScene) State() string { return s.state.String() }

// follow moves ds along with the speaker.
func (s SayEventScene) follow(ds []draw.DrawingOnScreen) []draw.DrawingOnScreen {
	if s.speaker == "" {
		return ds
	}
	return draw.ShiftAll(ds, s.speakerAt(s.Scene).Sub(s.origin))
}

func (s SayEventScene) Tick(dt timing.Millisecond) Scene {
	s.RpgEventScene = s.tickScene(dt)
	switch s.state {
	case sayFadeIn:
		if s.fade = s.fade.Tick(dt).(animation.Animation); s.fade.Complete() {
			s.state = sayTyping
		}
	case sayTyping:
		s.typing = s.typing.Tick(dt).(animation.Typewriter)
	case sayFadeOut:
		if s.fade = s.fade.Tick(dt).(animation.Animation); s.fade.Complete() {
			return s.Complete(nil, nil)
		}
	}
	return s
}

// Event dismisses a typed bubble on confirm.
func (s SayEventScene) Event(e event.Event) Scene {
	if s.state != sayTyping || !event.IsKeyPress(e, event.KeyConfirm) {
		return s
	}
	all := append(append([]draw.DrawingOnScreen(nil), s.bubble...), s.typing.Text().DrawingOnScreens(s.textAt)...)
	s.state = sayFadeOut
	s.fade = animation.FadeOut(draw.Placed(all), s.cfg.FadeDuration)
	return s
}

func (s SayEventScene) addOns() []draw.DrawingOnScreen {
	switch s.state {
	case sayTyping:
		ds := append(append([]draw.DrawingOnScreen(nil), s.bubble...), s.typing.DrawingOnScreens(s.textAt)...)
		return s.follow(ds)
	default:
		return s.follow(s.fade.DrawingOnScreens(geometry.Origin))
	}
}

func (s SayEventScene) DrawingOnScreens() []draw.DrawingOnScreen {
	return s.drawings(s.addOns())
}

type bubbleLayout struct {
	size  geometry.Size
	parts []draw.DrawingOnScreen // background, name and avatar, relative to the bubble
	text  geometry.Coordinate
}

// layoutBubble stacks the name over the text and puts the avatar beside
// them, all inside the padded background. With the group link overlay on,
// lines join the bubble corner to each part.
func layoutBubble(text draw.Slicer, name string, o sayOptions, cfg config.Config) bubbleLayout {
	pad := o.cfg.Padding
	inner := pad.TopLeft()
	content := text.Size()

	var label *draw.Text
	textTop := inner.Top
	if name != "" {
		n := draw.NewText(name, cfg.Text.WithColor(o.cfg.NameColor))
		label = &n
		textTop += n.Size().H() + float64(pad.Top)
		content = geometry.SizeOf(max(content.W(), n.Size().W()), content.H()+n.Size().H()+float64(pad.Top))
	}

	textLeft := inner.Left
	var avatarAt geometry.Coordinate
	if o.avatar != nil {
		as := o.avatar.Size()
		avatarAt = inner
		if o.avatarPos == AvatarLeft {
			textLeft += as.W() + float64(pad.Left)
		} else {
			avatarAt = inner.AddWidth(geometry.Width(content.W()) + pad.Left)
		}
		content = geometry.SizeOf(content.W()+as.W()+float64(pad.Left), max(content.H(), as.H()))
	}

	size := content.Add(pad.Size())
	items := []any{draw.FillRectangle(size, o.cfg.Background, o.cfg.BorderRadius)}
	if label != nil {
		items = append(items, draw.Shift(*label, geometry.Coordinate{Left: textLeft, Top: inner.Top}, geometry.AnchorTopLeft))
	}
	if o.avatar != nil {
		items = append(items, draw.Shift(o.avatar, avatarAt, geometry.AnchorTopLeft))
	}
	group := draw.Group(items...)
	if d := cfg.Debug; d != nil && d.GroupLink != nil {
		group = group.WithLinks(*d.GroupLink)
	}
	return bubbleLayout{
		size:  size,
		parts: group.DrawingOnScreens(geometry.Origin),
		text:  geometry.Coordinate{Left: textLeft, Top: textTop},
	}
}

type characterPosition struct {
	rect          geometry.Rectangle
	atTop, atLeft bool
}

func positionOf(rect geometry.Rectangle, screen geometry.Size) characterPosition {
	c := geometry.Center(rect)
	return characterPosition{rect: rect, atTop: c.Top < screen.H()/2, atLeft: c.Left < screen.W()/2}
}

// place puts a bubble of size next to the character: below it in the top
// half of the screen, above it otherwise, leaning towards the screen centre.
// It returns the bubble's top-left and the tip pointing at the character.
func (p characterPosition) place(size geometry.Size, cfg config.SayEvent, screen geometry.Size) (geometry.Coordinate, draw.DrawingOnScreen) {
	sign := 1.0
	if !p.atLeft {
		sign = -1
	}
	var apex geometry.Coordinate
	var top, base float64
	if p.atTop {
		apex = geometry.BottomCenter(p.rect).Add(geometry.Coordinate{Top: cfg.CharacterGap})
		base = apex.Top + cfg.TipHeight
		top = base
	} else {
		apex = geometry.TopCenter(p.rect).Sub(geometry.Coordinate{Top: cfg.CharacterGap})
		base = apex.Top - cfg.TipHeight
		top = base - size.H()
	}

	margin := float64(cfg.Padding.Left)
	left := apex.Left + sign*size.W()/4 - size.W()/2
	left = max(margin, min(left, screen.W()-size.W()-margin))

	tip := draw.FillPolygon([]geometry.Coordinate{
		apex,
		{Left: apex.Left + sign*cfg.TipWidth1, Top: base},
		{Left: apex.Left + sign*cfg.TipWidth2, Top: base},
	}, cfg.Background)
	// Shift the tip into bubble-relative coordinates; the bubble is moved to
	// the screen by the caller.
	topLeft := geometry.Coordinate{Left: left, Top: top}
	return topLeft, tip.Shift(topLeft.Neg())
}
