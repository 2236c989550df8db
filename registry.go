package portal

// Registry is the shared, observable collection of every portal record known
// to one container. It is the single source of truth that markers publish
// geometry into, orchestrators arm, and the overlay reads each frame.
//
// Access is single-threaded: all mutation and read access happens on the host
// game's update/draw cycle, so there is no locking (the same contract the
// rest of the library follows — plain counters, no atomics).
type Registry struct {
	records []*Record

	version   uint64
	observers []registryObserver
	nextObsID int
}

type registryObserver struct {
	id int
	fn func()
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Len returns the number of records.
func (r *Registry) Len() int {
	return len(r.records)
}

// Records returns the ordered record list. The returned slice MUST NOT be
// mutated by the caller.
func (r *Registry) Records() []*Record {
	return r.records
}

// Version returns a counter incremented on every mutation. The overlay uses
// it to observe changes between frames; tests use it to assert notification.
func (r *Registry) Version() uint64 {
	return r.version
}

// Subscribe registers fn to run after every registry mutation. The returned
// cancel function removes the subscription.
func (r *Registry) Subscribe(fn func()) (cancel func()) {
	r.nextObsID++
	id := r.nextObsID
	r.observers = append(r.observers, registryObserver{id: id, fn: fn})
	return func() {
		for i, obs := range r.observers {
			if obs.id == id {
				r.observers = append(r.observers[:i], r.observers[i+1:]...)
				return
			}
		}
	}
}

// notify bumps the version and runs all subscribers. Every mutation path
// calls it, so any record change is visible to the overlay before the next
// frame is drawn.
func (r *Registry) notify() {
	r.version++
	for _, obs := range r.observers {
		obs.fn()
	}
}

// lookupIndex returns the index of the record for (id, ns), or -1. An O(n)
// scan is fine at the expected cardinality (tens of portals, not thousands).
func (r *Registry) lookupIndex(id ID, ns Namespace) int {
	for i, rec := range r.records {
		if rec.ID == id && rec.Namespace == ns {
			return i
		}
	}
	return -1
}

// Lookup returns the record for (id, ns), or nil.
func (r *Registry) Lookup(id ID, ns Namespace) *Record {
	if i := r.lookupIndex(id, ns); i >= 0 {
		return r.records[i]
	}
	return nil
}

// Ensure returns the record for (id, ns), creating an inert one if absent.
func (r *Registry) Ensure(id ID, ns Namespace) *Record {
	if rec := r.Lookup(id, ns); rec != nil {
		return rec
	}
	rec := newRecord(id, ns)
	r.records = append(r.records, rec)
	r.notify()
	return rec
}

// Upsert inserts rec by key if absent, otherwise merges rec's configuration
// onto the existing record. Merging never drops fields a previous
// registration set: anchors and caches are only overwritten by non-nil
// values, callbacks and content only by non-nil ones, and transition flags
// (Animating, ShowLayer, HideDestination) are left to the orchestrator's
// dedicated operations. Returns the stored record.
func (r *Registry) Upsert(rec *Record) *Record {
	existing := r.Lookup(rec.ID, rec.Namespace)
	if existing == nil {
		if rec.layerAlpha == 0 && rec.fade == nil {
			rec.layerAlpha = 1
		}
		r.records = append(r.records, rec)
		r.notify()
		return rec
	}

	if rec.Initialized {
		existing.Initialized = true
	}
	if rec.Content != nil {
		existing.Content = rec.Content
	}
	if rec.SourceAnchor != nil {
		existing.SourceAnchor = cloneRect(rec.SourceAnchor)
	}
	if rec.DestinationAnchor != nil {
		existing.DestinationAnchor = cloneRect(rec.DestinationAnchor)
	}
	if rec.CachedSourceAnchor != nil {
		existing.CachedSourceAnchor = cloneRect(rec.CachedSourceAnchor)
	}
	if rec.CachedDestinationAnchor != nil {
		existing.CachedDestinationAnchor = cloneRect(rec.CachedDestinationAnchor)
	}
	if rec.Animation.Duration > 0 || rec.Animation.Ease != nil {
		existing.Animation = rec.Animation
	}
	if rec.Criteria != CriteriaSettled {
		existing.Criteria = rec.Criteria
	}
	if !rec.Hook.isZero() {
		existing.Hook = rec.Hook
	}
	if rec.Removal != RemovalNone {
		existing.Removal = rec.Removal
	}
	if rec.Completion != nil {
		existing.Completion = rec.Completion
	}
	if rec.GroupID != "" {
		existing.GroupID = rec.GroupID
	}
	r.notify()
	return existing
}

// Remove drops the record for (id, ns). Used at container teardown, not per
// transition: settled records are intentionally left inert for reuse.
func (r *Registry) Remove(id ID, ns Namespace) {
	i := r.lookupIndex(id, ns)
	if i < 0 {
		return
	}
	copy(r.records[i:], r.records[i+1:])
	r.records[len(r.records)-1] = nil
	r.records = r.records[:len(r.records)-1]
	r.notify()
}

// Transfer moves an in-flight transition's identity from one record to
// another. After the call, from's record is reset to an inert registered
// state and to's record carries the animating/layer/anchor/completion state,
// so the eventual reverse transition lands on the new item's source position.
//
// No-op when from == to. No-op (destination unchanged) when from has no
// registered record; that case is reported as a diagnostic, not an error.
func (r *Registry) Transfer(from, to ID, ns Namespace) {
	if from == to {
		return
	}
	src := r.Lookup(from, ns)
	if src == nil {
		logger.Warn("transfer source not registered", "from", from.Value(), "to", to.Value())
		return
	}
	dst := r.Ensure(to, ns)

	dst.Initialized = true
	dst.Animating = src.Animating
	dst.ShowLayer = src.ShowLayer
	dst.HideDestination = src.HideDestination
	if src.Content != nil {
		dst.Content = src.Content
	}
	dst.Animation = src.Animation
	dst.Criteria = src.Criteria
	dst.Hook = src.Hook
	dst.Removal = src.Removal
	dst.Completion = src.Completion
	dst.progress = src.progress
	dst.tween = src.tween
	dst.fade = src.fade
	dst.layerAlpha = src.layerAlpha

	// The destination end of the layer follows the transferred transition;
	// the source end belongs to the new item's own marker, so existing
	// geometry there is preserved.
	dst.DestinationAnchor = cloneRect(src.DestinationAnchor)
	dst.CachedDestinationAnchor = cloneRect(src.CachedDestinationAnchor)
	if dst.SourceAnchor == nil {
		dst.SourceAnchor = cloneRect(src.SourceAnchor)
	}
	if dst.CachedSourceAnchor == nil {
		dst.CachedSourceAnchor = cloneRect(src.CachedSourceAnchor)
	}

	src.Initialized = false
	src.sourceSeen = false
	src.destSeen = false
	src.Animating = false
	src.ShowLayer = false
	src.HideDestination = false
	src.Completion = nil
	src.tween = nil
	src.fade = nil
	src.progress = 0
	src.layerAlpha = 1

	r.notify()
}

// GroupMembers returns all records sharing the given non-empty groupID.
func (r *Registry) GroupMembers(groupID string) []*Record {
	if groupID == "" {
		return nil
	}
	var members []*Record
	for _, rec := range r.records {
		if rec.GroupID == groupID {
			members = append(members, rec)
		}
	}
	return members
}

// SetGroupAnimating flips the Animating flag on every member of a group in
// one mutation, so the whole group holds the same value before the next
// frame is drawn. Arming (animating true) requires every member's anchors to
// resolve; until then nothing flips. The reverse direction never needs
// geometry.
func (r *Registry) SetGroupAnimating(groupID string, animating bool) {
	if animating {
		for _, rec := range r.records {
			if rec.GroupID == groupID && !rec.anchorsResolvable() {
				logger.Debug("group arm deferred, anchors unresolved",
					"group", groupID, "id", rec.ID.Value())
				return
			}
		}
	}
	changed := false
	for _, rec := range r.records {
		if rec.GroupID == groupID && rec.Animating != animating {
			rec.Animating = animating
			changed = true
		}
	}
	if changed {
		r.notify()
	}
}

// setGroupCoordinator marks the record for id as the group's single
// coordinator, clearing the flag on every other member.
func (r *Registry) setGroupCoordinator(groupID string, id ID, ns Namespace) {
	for _, rec := range r.records {
		if rec.GroupID == groupID {
			rec.IsGroupCoordinator = rec.ID == id && rec.Namespace == ns
		}
	}
}

// cloneRect returns a copy of r, or nil if r is nil.
func cloneRect(r *Rect) *Rect {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}
