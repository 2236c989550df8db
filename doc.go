// Package portal coordinates view-transition animations for [Ebitengine]:
// it makes an element appear to fly from one place in a scene (a source) to
// another (a destination), even across presentation boundaries the host UI
// does not bridge, by pairing the two ends through a shared registry and
// painting a floating layer between them on a window-level overlay.
//
// # Quick start
//
// Create one [OverlayHost] near the app root and a [Container] per portal
// scope, then mark the two ends and arm a transition:
//
//	host := portal.NewOverlayHost()
//	c := portal.NewContainer(host)
//
//	src := c.NewMarker("hero", portal.RoleSource)
//	dst := c.NewMarker("hero", portal.RoleDestination)
//	t := c.NewTransition("hero", portal.TransitionOptions{
//		Content: portal.NewImageContent(heroImage),
//	})
//
// Each update tick, publish the current bounds of both ends and advance the
// container; each draw, composite the overlay last:
//
//	func (g *Game) Update() error {
//		src.Publish(thumbBounds)
//		dst.Publish(detailBounds)
//		c.Update(1.0 / float32(ebiten.TPS()))
//		return nil
//	}
//
//	func (g *Game) Draw(screen *ebiten.Image) {
//		// ... draw game content, using src.Opacity() / dst.Opacity() ...
//		host.Draw(screen)
//	}
//
// Flip [Transition.SetActive] to run the animation forward or back. The
// registry caches the last known geometry of both ends, so a destination that
// unmounts mid-transition (a dismissed sheet, a recycled list cell) still
// animates home.
//
// # Key features
//
// Portal includes item-bound transitions with in-flight identity transfer
// (for paging UIs), coordinated group transitions with a single completion
// coordinator, three levels of per-frame layer configuration hooks, fade-out
// removal, scroll-driven progress mapping, easing curves (via [gween]), and a
// togglable debug overlay.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package portal
