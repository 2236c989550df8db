package portal

// Marker is the anchor-reporting wrapper for one end of a portal. Consumers
// create a marker per source or destination view, call Publish with the
// view's bounds each update tick (the host's layout pass), and apply
// Opacity to the wrapped content so the floating layer can stand in for it
// during a transition.
type Marker struct {
	// GroupID, when non-empty, joins this marker's record to a coordinated
	// group on first publish.
	GroupID string

	registry *Registry
	id       ID
	role     Role
	ns       Namespace
	mounted  bool
}

// NewMarker creates a marker for (id, role, ns) reporting into reg. The id
// may be any comparable value, or an ID obtained from NewID.
func NewMarker(reg *Registry, id any, role Role, ns Namespace) *Marker {
	if reg == nil {
		panic("portal: NewMarker requires a registry")
	}
	return &Marker{registry: reg, id: NewID(id), role: role, ns: ns}
}

// Key returns the marker's anchor key.
func (m *Marker) Key() Key {
	return Key{ID: m.id, Role: m.role, Namespace: m.ns}
}

// Mounted reports whether the marker currently has a live anchor.
func (m *Marker) Mounted() bool {
	return m.mounted
}

// Publish reports the marker's current bounds, in the shared coordinate
// space. The role's presence is always registered (so a record initializes
// once both ends have reported), but geometry is only stored and cached while
// the record is initialized — one tick of lag on the very first report is
// inherent and expected.
func (m *Marker) Publish(bounds Rect) {
	rec := m.registry.Ensure(m.id, m.ns)
	if m.GroupID != "" && rec.GroupID == "" {
		rec.GroupID = m.GroupID
	}
	rec.markSeen(m.role)
	rec.setAnchor(m.role, bounds)
	m.mounted = true
	m.registry.notify()
}

// Unmount clears the marker's live anchor when its view leaves the hierarchy
// (scrolled offscreen, sheet dismissed). The cached anchor is kept so an
// in-flight animation can finish from the last known geometry.
func (m *Marker) Unmount() {
	if !m.mounted {
		return
	}
	m.mounted = false
	rec := m.registry.Lookup(m.id, m.ns)
	if rec == nil {
		return
	}
	rec.clearAnchor(m.role)
	m.registry.notify()
}

// Opacity returns the opacity the wrapped content should render with, as a
// pure function of registry state.
//
// A source is invisible exactly while the floating layer stands in for it:
// when a live destination anchor exists for the same key, or while the layer
// is showing (which covers a destination unmounting mid-transition). A
// destination is invisible while the record is initialized and the layer
// handoff has not completed yet.
func (m *Marker) Opacity() float64 {
	rec := m.registry.Lookup(m.id, m.ns)
	if rec == nil {
		return 1
	}
	if m.role == RoleSource {
		if rec.DestinationAnchor != nil || rec.ShowLayer {
			return 0
		}
		return 1
	}
	if rec.HideDestination && rec.Initialized {
		return 0
	}
	return 1
}
