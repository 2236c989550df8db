package portal

// updatable is anything the container advances each tick.
type updatable interface {
	Update(dt float32)
}

// Container is the mount point installed once per independent portal scope
// (typically one near the app root; a paging UI may run one per page). It
// owns a registry and a namespace, and contributes its layers to a shared
// OverlayHost while active.
type Container struct {
	registry *Registry
	host     *OverlayHost
	ns       Namespace
	active   bool

	transitions []updatable
}

// NewContainer creates a container reporting into host and activates it.
func NewContainer(host *OverlayHost) *Container {
	if host == nil {
		panic("portal: NewContainer requires an overlay host")
	}
	c := &Container{
		registry: NewRegistry(),
		host:     host,
		ns:       NewNamespace(),
	}
	c.SetActive(true)
	return c
}

// Registry returns the container's registry.
func (c *Container) Registry() *Registry {
	return c.registry
}

// Namespace returns the container's scoping token. Markers and transitions
// created through the container use it automatically.
func (c *Container) Namespace() Namespace {
	return c.ns
}

// Active reports whether the container is registered with its host.
func (c *Container) Active() bool {
	return c.active
}

// SetActive registers (true) or unregisters (false) the container with the
// shared overlay. Tie this to the owning screen's lifecycle; the overlay
// surface itself is torn down only when no containers remain.
func (c *Container) SetActive(active bool) {
	if active == c.active {
		return
	}
	c.active = active
	if active {
		c.host.register(c)
	} else {
		c.host.unregister(c)
	}
}

// Update advances every transition created through this container by dt
// seconds. Call once per host update tick.
func (c *Container) Update(dt float32) {
	if !c.active {
		return
	}
	for _, t := range c.transitions {
		t.Update(dt)
	}
}

// NewMarker creates a marker for (id, role) in the container's namespace.
func (c *Container) NewMarker(id any, role Role) *Marker {
	return NewMarker(c.registry, id, role, c.ns)
}

// NewTransition creates a transition for id in the container's namespace and
// registers it for Update.
func (c *Container) NewTransition(id any, opts TransitionOptions) *Transition {
	t := NewTransition(c.registry, id, c.ns, opts)
	c.transitions = append(c.transitions, t)
	return t
}

// NewItemTransition creates an item-bound transition in the container's
// namespace and registers it for Update.
func (c *Container) NewItemTransition(opts TransitionOptions) *ItemTransition {
	it := NewItemTransition(c.registry, c.ns, opts)
	c.transitions = append(c.transitions, it)
	return it
}

// NewGroupTransition creates a coordinated group transition in the
// container's namespace and registers it for Update.
func (c *Container) NewGroupTransition(groupID string, ids []any, opts TransitionOptions) *Transition {
	t := NewGroupTransition(c.registry, groupID, ids, c.ns, opts)
	c.transitions = append(c.transitions, t)
	return t
}

// RemoveTransition stops the container from updating t. The registry records
// t touched are left inert for reuse.
func (c *Container) RemoveTransition(t updatable) {
	for i, existing := range c.transitions {
		if existing == t {
			c.transitions = append(c.transitions[:i], c.transitions[i+1:]...)
			return
		}
	}
}
