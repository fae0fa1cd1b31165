// Package ecs carries input events through a [Donburi] world.
//
// The game loop publishes every polled [event.Event] on a [Bus] and processes
// the queue once per frame, after the scene has been ticked. Subscribers see
// the events in publish order.
//
// Usage:
//
//	bus := ecs.NewBus(donburi.NewWorld())
//	bus.Subscribe(func(e event.Event) { scene = scene.Event(e) })
//	for _, e := range poller.Poll() {
//		bus.Publish(e)
//	}
//	bus.Process()
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
