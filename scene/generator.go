package scene

import (
	"slices"

	"github.com/tanema/gween/ease"

	"github.com/phanxgames/thicket/character"
	"github.com/phanxgames/thicket/config"
	"github.com/phanxgames/thicket/draw"
	"github.com/phanxgames/thicket/geometry"
	"github.com/phanxgames/thicket/timing"
)

// Generator is a suspended NPC script. Send resumes it with the result of
// the step it last produced and returns the next step's continuation
// together with the advanced generator. ok is false once the script is
// exhausted; Return then reports its final value.
type Generator interface {
	Send(result any) (next Continuation, gen Generator, ok bool)
	Return() any
}

// Continuation builds the scene that carries out one script step over the
// scene the event runs in.
type Continuation func(gen Generator, scene EventfulScene) Scene

// Script starts the event of an NPC.
type Script func(player character.Player, npc character.NonPlayer, scene EventfulScene) Generator

type stepKind uint8

const (
	stepScene stepKind = iota
	stepExpand
	stepReturn
	stepEnd
)

// Step is one instruction of a step script.
type Step struct {
	kind   stepKind
	scene  func(result any) Continuation
	expand func(result any) []Step
	value  any
}

// Steps runs steps in order. A script without a Return step returns nil,
// which keeps the event restartable.
func Steps(steps ...Step) Generator {
	return stepper{queue: steps}
}

type stepper struct {
	queue []Step
	ret   any
}

func (s stepper) Send(result any) (Continuation, Generator, bool) {
	for len(s.queue) > 0 {
		st := s.queue[0]
		s.queue = s.queue[1:]
		switch st.kind {
		case stepScene:
			return st.scene(result), s, true
		case stepExpand:
			s.queue = append(st.expand(result), s.queue...)
		case stepReturn:
			s.ret = st.value
			s.queue = dropBlock(s.queue)
		}
	}
	return nil, s, false
}

func (s stepper) Return() any { return s.ret }

// dropBlock skips the rest of the innermost block.
func dropBlock(queue []Step) []Step {
	i := slices.IndexFunc(queue, func(st Step) bool { return st.kind == stepEnd })
	if i < 0 {
		return nil
	}
	return queue[i+1:]
}

func sceneStep(c Continuation) Step {
	return Step{kind: stepScene, scene: func(any) Continuation { return c }}
}

// Say shows a speech bubble and waits for it to be dismissed.
func Say(speaker Speaker, message any, opts ...SayOption) Step {
	return sceneStep(func(gen Generator, s EventfulScene) Scene {
		return NewSayEventScene(gen, s, speaker, message, opts...)
	})
}

// FadeIn fades sprite in over the scene. The sprite stays on screen under
// key until a FadeOut with the same key. With wait false the script goes on
// while the fade runs.
func FadeIn(key string, sprite draw.Sprite, wait bool) Step {
	return fadeInStep(key, sprite, wait, 0)
}

func fadeInStep(key string, sprite draw.Sprite, wait bool, d timing.Millisecond) Step {
	return sceneStep(func(gen Generator, s EventfulScene) Scene {
		return NewFadeInScene(gen, s, key, sprite, wait, d)
	})
}

// FadeOut fades out what FadeIn left under key.
func FadeOut(key string, wait bool) Step {
	return fadeOutStep(key, wait, 0)
}

func fadeOutStep(key string, wait bool, d timing.Millisecond) Step {
	return sceneStep(func(gen Generator, s EventfulScene) Scene {
		return NewFadeOutScene(gen, s, key, wait, d)
	})
}

// Wait pauses the script while the world keeps running.
func Wait(d timing.Millisecond) Step {
	return sceneStep(func(gen Generator, s EventfulScene) Scene {
		return NewWaitScene(gen, s, d)
	})
}

// Pan scrolls the camera until target is centred. The camera returns to the
// player when the event completes.
func Pan(target geometry.Coordinate, d timing.Millisecond, f ease.TweenFunc) Step {
	return sceneStep(func(gen Generator, s EventfulScene) Scene {
		return NewPanScene(gen, s, target, d, f)
	})
}

// Do changes the scene directly. Its result is passed to the next step.
func Do(fn func(s EventfulScene) (EventfulScene, any)) Step {
	return sceneStep(func(gen Generator, s EventfulScene) Scene {
		next, result := fn(s)
		return Complete(next, gen, result, nil)
	})
}

// Then picks the following steps from the previous step's result.
func Then(branch func(result any) []Step) Step {
	return Step{kind: stepExpand, expand: func(result any) []Step {
		return slices.Clone(branch(result))
	}}
}

// Return ends the script, or the cutscene it is in, with value. A false
// value stops the NPC's event from starting again.
func Return(value any) Step {
	return Step{kind: stepReturn, value: value}
}

func block(steps []Step) Step {
	return Step{kind: stepExpand, expand: func(any) []Step {
		return append(slices.Clone(steps), Step{kind: stepEnd})
	}}
}

const cutsceneKey = "thicket.cutscene"

// Cutscene frames steps with letterbox borders that fade in before and out
// after them.
func Cutscene(cfg config.Config, steps ...Step) Step {
	screen := cfg.Window.Size()
	h := screen.H() * cfg.Cutscene.ScreenHeightPct
	size := geometry.SizeOf(screen.W(), h)
	border := draw.FillRectangle(size, cfg.CutsceneBorder(), 0)
	borders := draw.Placed{
		{At: geometry.Origin, Drawing: border},
		{At: geometry.Coordinate{Left: 0, Top: screen.H() - h}, Drawing: border},
	}
	return Step{kind: stepExpand, expand: func(any) []Step {
		return []Step{
			fadeInStep(cutsceneKey, borders, cfg.Cutscene.Wait, cfg.Cutscene.Duration),
			block(steps),
			fadeOutStep(cutsceneKey, cfg.Cutscene.Wait, cfg.Cutscene.Duration),
		}
	}}
}
