package event

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/thicket/geometry"
)

// Poller collects one frame of input at a time.
type Poller struct {
	mapping  Mapping
	injected []Event

	pressed  []ebiten.Key
	released []ebiten.Key
	size     geometry.Size
	quit     bool
}

// NewPoller returns a poller translating through m.
func NewPoller(m Mapping) *Poller {
	return &Poller{mapping: m}
}

// Inject queues a synthetic event. Injected events are delivered one per
// frame and take the place of real input on that frame. A nil event is a
// frame without input.
func (p *Poller) Inject(e Event) {
	p.injected = append(p.injected, e)
}

// InjectKeyPress queues a press of k followed by its release. Consumes two
// frames.
func (p *Poller) InjectKeyPress(k Key) {
	p.Inject(KeyPressDown{k})
	p.Inject(KeyPressUp{k})
}

// Pending returns the number of injected events not yet delivered.
func (p *Poller) Pending() int { return len(p.injected) }

// Poll returns this frame's events.
func (p *Poller) Poll() []Event {
	if e, ok := p.popInjected(); ok {
		if e == nil {
			return nil
		}
		return []Event{e}
	}
	p.pressed = inpututil.AppendJustPressedKeys(p.pressed[:0])
	p.released = inpututil.AppendJustReleasedKeys(p.released[:0])
	events := p.mapping.Translate(p.pressed, p.released)

	w, h := ebiten.WindowSize()
	if size := geometry.SizeOf(float64(w), float64(h)); size != p.size {
		if !p.size.Empty() {
			events = append(events, WindowResize{size})
		}
		p.size = size
	}
	if ebiten.IsWindowBeingClosed() && !p.quit {
		p.quit = true
		events = append(events, Quit{})
	}
	return events
}

func (p *Poller) popInjected() (Event, bool) {
	if len(p.injected) == 0 {
		return nil, false
	}
	e := p.injected[0]
	copy(p.injected, p.injected[1:])
	p.injected = p.injected[:len(p.injected)-1]
	return e, true
}
