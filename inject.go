package thicket

import "github.com/phanxgames/thicket/event"

// InjectKeyDown queues a press of k. The event replaces real input on the
// frame it is delivered.
func (g *Game) InjectKeyDown(k event.Key) {
	g.poller.Inject(event.KeyPressDown{Key: k})
}

// InjectKeyUp queues a release of k.
func (g *Game) InjectKeyUp(k event.Key) {
	g.poller.Inject(event.KeyPressUp{Key: k})
}

// InjectKeyPress is a convenience that queues a press followed by a
// release. Consumes two frames.
func (g *Game) InjectKeyPress(k event.Key) {
	g.poller.InjectKeyPress(k)
}

// InjectHold queues a press of k, idle frames and the release, so a
// movement key stays down for frames frames. Minimum frames is 2.
func (g *Game) InjectHold(k event.Key, frames int) {
	g.InjectKeyDown(k)
	for range max(frames, 2) - 2 {
		g.poller.Inject(nil)
	}
	g.InjectKeyUp(k)
}
