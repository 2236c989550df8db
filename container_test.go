package portal

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestNewContainerActivates(t *testing.T) {
	host := NewOverlayHost()

	a := NewContainer(host)
	b := NewContainer(host)

	if !a.Active() || !b.Active() {
		t.Fatal("new containers should be active")
	}
	if len(host.Containers()) != 2 {
		t.Fatalf("containers = %d, want 2", len(host.Containers()))
	}
	if a.Namespace() == b.Namespace() {
		t.Error("containers must not share a namespace")
	}
	if a.Registry() == b.Registry() {
		t.Error("containers must not share a registry")
	}
}

func TestNewContainerNilHostPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil host")
		}
	}()
	NewContainer(nil)
}

func TestContainerSetActiveLifecycle(t *testing.T) {
	host := NewOverlayHost()
	c := NewContainer(host)

	c.SetActive(false)
	if c.Active() {
		t.Fatal("container should be inactive")
	}
	if len(host.Containers()) != 0 {
		t.Fatalf("containers = %d, want 0", len(host.Containers()))
	}

	// Repeated deactivation is a no-op.
	c.SetActive(false)
	if len(host.Containers()) != 0 {
		t.Error("repeated SetActive(false) changed host state")
	}

	c.SetActive(true)
	if len(host.Containers()) != 1 {
		t.Errorf("containers = %d, want 1 after reactivation", len(host.Containers()))
	}
}

func TestContainerUpdateDrivesTransitions(t *testing.T) {
	host := NewOverlayHost()
	c := NewContainer(host)

	src := c.NewMarker("x", RoleSource)
	dst := c.NewMarker("x", RoleDestination)
	src.Publish(Rect{0, 0, 100, 100})
	dst.Publish(Rect{200, 400, 50, 50})
	src.Publish(Rect{0, 0, 100, 100})
	dst.Publish(Rect{200, 400, 50, 50})

	tr := c.NewTransition("x", TransitionOptions{
		Animation: Animation{Duration: 1, Ease: ease.Linear},
		Content:   noopContent,
	})
	tr.SetActive(true)

	c.Update(0.5)
	rec := c.Registry().Lookup(NewID("x"), c.Namespace())
	if rec == nil || !rec.Animating {
		t.Fatal("container update should arm the transition")
	}
	if p := rec.Progress(); p != 0.5 {
		t.Errorf("progress = %v, want 0.5", p)
	}

	// Inactive containers stop ticking their transitions.
	c.SetActive(false)
	c.Update(0.5)
	if p := rec.Progress(); p != 0.5 {
		t.Errorf("progress = %v, inactive container must not advance", p)
	}
}

func TestContainerRemoveTransition(t *testing.T) {
	host := NewOverlayHost()
	c := NewContainer(host)

	src := c.NewMarker("x", RoleSource)
	dst := c.NewMarker("x", RoleDestination)
	src.Publish(Rect{0, 0, 100, 100})
	dst.Publish(Rect{200, 400, 50, 50})
	src.Publish(Rect{0, 0, 100, 100})

	tr := c.NewTransition("x", TransitionOptions{
		Animation: Animation{Duration: 1, Ease: ease.Linear},
		Content:   noopContent,
	})
	tr.SetActive(true)

	c.RemoveTransition(tr)
	c.Update(0.5)

	rec := c.Registry().Lookup(NewID("x"), c.Namespace())
	if rec != nil && rec.Animating {
		t.Error("removed transition was still driven by the container")
	}

	// Removing an unknown transition is a no-op.
	c.RemoveTransition(tr)
}

func TestContainerItemTransitionWiring(t *testing.T) {
	host := NewOverlayHost()
	c := NewContainer(host)

	src := c.NewMarker("a", RoleSource)
	dst := c.NewMarker("a", RoleDestination)
	src.Publish(Rect{0, 0, 100, 100})
	dst.Publish(Rect{200, 400, 50, 50})
	src.Publish(Rect{0, 0, 100, 100})
	dst.Publish(Rect{200, 400, 50, 50})

	it := c.NewItemTransition(TransitionOptions{
		Animation: Animation{Duration: 1, Ease: ease.Linear},
		Content:   noopContent,
	})
	it.SetItem(card{"a"})

	c.Update(0.5)
	rec := c.Registry().Lookup(NewID("a"), c.Namespace())
	if rec == nil || !rec.Animating {
		t.Fatal("container update should drive the item transition")
	}
}

func TestContainerGroupTransitionWiring(t *testing.T) {
	host := NewOverlayHost()
	c := NewContainer(host)

	for _, id := range []string{"a", "b"} {
		src := c.NewMarker(id, RoleSource)
		dst := c.NewMarker(id, RoleDestination)
		src.Publish(Rect{0, 0, 10, 10})
		dst.Publish(Rect{50, 50, 10, 10})
		src.Publish(Rect{0, 0, 10, 10})
		dst.Publish(Rect{50, 50, 10, 10})
	}

	tr := c.NewGroupTransition("g", []any{"a", "b"}, TransitionOptions{
		Animation: Animation{Duration: 1, Ease: ease.Linear},
		Content:   noopContent,
	})
	tr.SetActive(true)

	c.Update(0.25)
	for _, id := range []string{"a", "b"} {
		rec := c.Registry().Lookup(NewID(id), c.Namespace())
		if rec == nil || !rec.Animating {
			t.Fatalf("group member %q not driven", id)
		}
		if rec.GroupID != "g" {
			t.Errorf("member %q group = %q, want g", id, rec.GroupID)
		}
	}
}
