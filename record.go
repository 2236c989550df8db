package portal

import "github.com/tanema/gween"

// fadeDuration is the length of the RemovalFade fade-out, in seconds.
const fadeDuration float32 = 0.2

// Record is the full per-portal transition state. A single flat struct holds
// identity, geometry, flags, and configuration so markers, orchestrators, and
// the overlay all mutate one shared value through the registry.
//
// Records are created when a marker first reports or a transition is first
// armed, and live until the owning container's registry is torn down. A
// settled record is left inert for reuse: a dismissed-then-reopened portal
// with the same id picks up its old record, cached anchors included.
type Record struct {
	// Identity
	ID        ID
	Namespace Namespace

	// Initialized is true once both a source-role and a destination-role
	// marker with this (id, namespace) have reported at least once, or once
	// an orchestrator has armed the record. Geometry caching is gated on it
	// so stale anchors are never cached for portals nobody has armed.
	Initialized bool

	// Content is the transitional payload the overlay draws while the layer
	// is showing. Nil content renders nothing.
	Content Content

	// Animating is true while interpolating toward the destination, false
	// while at or moving back toward the source. It drives marker opacity
	// and the tween target.
	Animating bool

	// HideDestination keeps the destination marker invisible until the layer
	// handoff completes, preventing a visible pop.
	HideDestination bool

	// ShowLayer gates overlay rendering. When false the overlay draws
	// nothing for this record even if both anchors exist.
	ShowLayer bool

	// Live anchors, nil while the corresponding marker is not mounted.
	SourceAnchor      *Rect
	DestinationAnchor *Rect

	// Cached anchors survive marker unmounts so the overlay can keep
	// animating after a sheet dismisses or a list cell recycles
	// mid-transition. Only written while Initialized is true.
	CachedSourceAnchor      *Rect
	CachedDestinationAnchor *Rect

	// Animation is the timing curve for this record's transitions.
	Animation Animation

	// Criteria selects when Completion fires: at tween settle, or only once
	// the layer has been removed (including any fade-out).
	Criteria CompletionCriteria

	// Hook optionally restyles or repositions the layer each frame.
	Hook Hook

	// Removal selects whether the layer vanishes instantly or fades out when
	// the transition ends.
	Removal RemovalMode

	// Completion is invoked with true when a forward transition settles and
	// false when a reverse transition settles.
	Completion func(success bool)

	// Group membership. Records sharing a non-empty GroupID animate in
	// lockstep; exactly one member per group has IsGroupCoordinator set and
	// drives the shared completion callback.
	GroupID            string
	IsGroupCoordinator bool

	// Internal
	sourceSeen bool
	destSeen   bool
	progress   float64 // 0 = at source, 1 = at destination
	tween      *gween.Tween
	fade       *gween.Tween
	layerAlpha float64

	// CriteriaRemoved bookkeeping: completion deferred until the layer is
	// fully gone.
	completionPending bool
	completionSuccess bool
}

// newRecord creates an inert record for (id, ns).
func newRecord(id ID, ns Namespace) *Record {
	return &Record{ID: id, Namespace: ns, layerAlpha: 1}
}

// Key returns the anchor key for one of this record's roles.
func (rec *Record) Key(role Role) Key {
	return Key{ID: rec.ID, Role: role, Namespace: rec.Namespace}
}

// markSeen records that a marker with the given role has reported. Once both
// roles have been seen the record becomes initialized; Initialized never
// reverts from marker activity (only Transfer resets it).
func (rec *Record) markSeen(role Role) {
	if role == RoleSource {
		rec.sourceSeen = true
	} else {
		rec.destSeen = true
	}
	if rec.sourceSeen && rec.destSeen {
		rec.Initialized = true
	}
}

// setAnchor stores a live anchor and, while initialized, refreshes the
// corresponding cache. Geometry from uninitialized records is dropped.
func (rec *Record) setAnchor(role Role, bounds Rect) {
	if !rec.Initialized {
		return
	}
	b := bounds
	if role == RoleSource {
		rec.SourceAnchor = &b
		c := b
		rec.CachedSourceAnchor = &c
	} else {
		rec.DestinationAnchor = &b
		c := b
		rec.CachedDestinationAnchor = &c
	}
}

// clearAnchor drops the live anchor for a role. The cache is kept so the
// overlay can finish an in-flight animation from the last known geometry.
func (rec *Record) clearAnchor(role Role) {
	if role == RoleSource {
		rec.SourceAnchor = nil
	} else {
		rec.DestinationAnchor = nil
	}
}

// ResolveSource returns the live source anchor, falling back to the cached
// one. ok is false when neither exists.
func (rec *Record) ResolveSource() (Rect, bool) {
	if rec.SourceAnchor != nil {
		return *rec.SourceAnchor, true
	}
	if rec.CachedSourceAnchor != nil {
		return *rec.CachedSourceAnchor, true
	}
	return Rect{}, false
}

// ResolveDestination returns the live destination anchor, falling back to the
// cached one. ok is false when neither exists.
func (rec *Record) ResolveDestination() (Rect, bool) {
	if rec.DestinationAnchor != nil {
		return *rec.DestinationAnchor, true
	}
	if rec.CachedDestinationAnchor != nil {
		return *rec.CachedDestinationAnchor, true
	}
	return Rect{}, false
}

// anchorsResolvable reports whether both ends have live-or-cached geometry.
func (rec *Record) anchorsResolvable() bool {
	_, s := rec.ResolveSource()
	_, d := rec.ResolveDestination()
	return s && d
}

// Progress returns the current interpolation progress in [0, 1].
func (rec *Record) Progress() float64 {
	return rec.progress
}

// LayerAlpha returns the layer's current opacity, driven by the fade-out
// tween when Removal == RemovalFade.
func (rec *Record) LayerAlpha() float64 {
	return rec.layerAlpha
}

// beginTween starts (or restarts) the progress tween toward target. Starting
// from the current progress makes a re-arm interrupt the previous animation
// without a positional jump, matching animated-transaction semantics.
func (rec *Record) beginTween(target float64) {
	anim := rec.Animation.or()
	rec.tween = gween.New(float32(rec.progress), float32(target), anim.Duration, anim.Ease)
}

// advance steps the progress tween by dt seconds. settled is true on the
// frame the tween completes.
func (rec *Record) advance(dt float32) (settled bool) {
	if rec.tween == nil {
		return false
	}
	value, finished := rec.tween.Update(dt)
	rec.progress = float64(value)
	if finished {
		rec.tween = nil
		return true
	}
	return false
}

// beginFade starts the layer fade-out used by RemovalFade.
func (rec *Record) beginFade() {
	anim := rec.Animation.or()
	rec.fade = gween.New(float32(rec.layerAlpha), 0, fadeDuration, anim.Ease)
}

// advanceFade steps the fade tween by dt seconds. done is true on the frame
// the fade completes.
func (rec *Record) advanceFade(dt float32) (done bool) {
	if rec.fade == nil {
		return false
	}
	value, finished := rec.fade.Update(dt)
	rec.layerAlpha = float64(value)
	if finished {
		rec.fade = nil
		return true
	}
	return false
}

// resetLayer clears transient layer state after a transition tears down.
func (rec *Record) resetLayer() {
	rec.ShowLayer = false
	rec.fade = nil
	rec.layerAlpha = 1
}
