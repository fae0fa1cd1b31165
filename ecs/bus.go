package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/thicket/event"
)

// InputEventType is the Donburi event type for thicket input events.
var InputEventType = events.NewEventType[event.Event]()

// Bus queues input events on a Donburi world.
type Bus struct {
	world   donburi.World
	pending int
}

// NewBus creates a bus on world. A nil world gets a fresh one.
func NewBus(world donburi.World) *Bus {
	if world == nil {
		world = donburi.NewWorld()
	}
	return &Bus{world: world}
}

// World returns the underlying Donburi world.
func (b *Bus) World() donburi.World { return b.world }

// Publish queues e until the next Process.
func (b *Bus) Publish(e event.Event) {
	InputEventType.Publish(b.world, e)
	b.pending++
}

// Subscribe registers fn for every processed event.
func (b *Bus) Subscribe(fn func(event.Event)) {
	InputEventType.Subscribe(b.world, func(_ donburi.World, e event.Event) {
		fn(e)
	})
}

// Pending returns the number of events published since the last Process.
func (b *Bus) Pending() int { return b.pending }

// Process delivers the queued events to every subscriber.
func (b *Bus) Process() {
	InputEventType.ProcessEvents(b.world)
	b.pending = 0
}
