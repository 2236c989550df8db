package portal

// itemClearDelay is how long an item transition retains its last displayed
// item after a reverse transition settles with no current item. The short
// hold avoids a content flicker when a forward transition re-arms almost
// immediately.
const itemClearDelay float32 = 0.05

// TransitionOptions configures a transition. The zero value is usable:
// DefaultAnimation, instant removal, completion at settle, no hook.
type TransitionOptions struct {
	// Animation is the timing curve; zero value means DefaultAnimation.
	Animation Animation

	// Removal selects how the layer disappears once the transition settles.
	Removal RemovalMode

	// Criteria selects when Completion fires.
	Criteria CompletionCriteria

	// Hook optionally restyles or repositions the layer each frame, at one
	// of three escalating levels of control.
	Hook Hook

	// Completion is invoked with true on forward settle, false on reverse
	// settle. For group transitions only the coordinator fires it.
	Completion func(success bool)

	// Content is the static layer payload. Ignored when Layer is set.
	Content Content

	// Layer, when set, produces the layer payload dynamically from the
	// transition's identifier (or item) and direction.
	Layer AnimatedLayer
}

// Transition drives the full animation lifecycle for one portal or a
// coordinated group: it arms the registry records, starts the interpolation
// tween, and tears transient state down on completion, forward or reverse.
//
// Call SetActive to request a direction and Update once per tick to advance.
// Arming silently waits until both anchors are resolvable — on the first tick
// after mounting, the destination may not have published yet, so the arm is
// retried each Update until geometry exists (the declarative re-evaluation of
// the original model, made explicit).
type Transition struct {
	registry *Registry
	ns       Namespace
	ids      []ID
	groupID  string
	opts     TransitionOptions

	active bool

	// layerArg overrides the value handed to opts.Layer; item transitions
	// use it to pass the retained item instead of the raw identifier.
	layerArg func(rec *Record) any

	memberBuf []*Record // reused each Update to avoid per-frame garbage
}

// NewTransition creates a transition for a single portal id in ns.
func NewTransition(reg *Registry, id any, ns Namespace, opts TransitionOptions) *Transition {
	if reg == nil {
		panic("portal: NewTransition requires a registry")
	}
	return &Transition{registry: reg, ns: ns, ids: []ID{NewID(id)}, opts: opts}
}

// NewGroupTransition creates a coordinated transition over the given ids,
// all sharing groupID. The first id's record becomes the group coordinator
// and is the only one that fires the shared completion callback. All members
// start together; per-item visual stagger is left to the content author via
// hooks.
func NewGroupTransition(reg *Registry, groupID string, ids []any, ns Namespace, opts TransitionOptions) *Transition {
	if reg == nil {
		panic("portal: NewGroupTransition requires a registry")
	}
	if groupID == "" {
		panic("portal: NewGroupTransition requires a group id")
	}
	if len(ids) == 0 {
		panic("portal: NewGroupTransition requires at least one id")
	}
	boxed := make([]ID, len(ids))
	for i, id := range ids {
		boxed[i] = NewID(id)
	}
	return &Transition{registry: reg, ns: ns, ids: boxed, groupID: groupID, opts: opts}
}

// SetActive requests the forward (true) or reverse (false) direction. The
// actual flag flips and tween starts happen in Update, on the host's update
// cycle; requesting the same direction twice restates the same target state
// and never duplicates records.
func (t *Transition) SetActive(active bool) {
	t.active = active
}

// Active returns the last requested direction.
func (t *Transition) Active() bool {
	return t.active
}

// Running reports whether any of the transition's records has an in-flight
// progress or fade tween.
func (t *Transition) Running() bool {
	for _, rec := range t.members() {
		if rec.tween != nil || rec.fade != nil {
			return true
		}
	}
	return false
}

// IDs returns the portal ids this transition currently drives.
func (t *Transition) IDs() []ID {
	return t.ids
}

// Update advances the transition by dt seconds: retries pending arms, steps
// progress and fade tweens, and handles settle side effects and completion.
func (t *Transition) Update(dt float32) {
	if t.active {
		t.ensureForward()
	} else {
		t.ensureReverse()
	}
	for _, rec := range t.members() {
		t.step(rec, dt)
	}
}

// members returns every record this transition drives: its own ids, plus,
// for group transitions, any record that joined the group through a marker.
// The returned slice is a buffer reused across calls.
func (t *Transition) members() []*Record {
	t.memberBuf = t.memberBuf[:0]
	if t.groupID != "" {
		for _, rec := range t.registry.records {
			if rec.GroupID == t.groupID {
				t.memberBuf = append(t.memberBuf, rec)
			}
		}
		for _, id := range t.ids {
			found := false
			for _, rec := range t.memberBuf {
				if rec.ID == id && rec.Namespace == t.ns {
					found = true
					break
				}
			}
			if !found {
				t.memberBuf = append(t.memberBuf, t.registry.Ensure(id, t.ns))
			}
		}
		return t.memberBuf
	}
	for _, id := range t.ids {
		t.memberBuf = append(t.memberBuf, t.registry.Ensure(id, t.ns))
	}
	return t.memberBuf
}

// ensureForward arms every record that is not yet animating. Arming requires
// both anchors resolvable on every driven member, marker-joined group members
// included; until then this is a silent no-op retried next tick, so a group
// never arms partially. A record already animating is left untouched, so
// restating the forward direction is idempotent, and a record mid-reverse is
// re-armed from its current progress (interrupting the previous animation).
func (t *Transition) ensureForward() {
	for _, rec := range t.members() {
		if !rec.Animating && !rec.anchorsResolvable() {
			logger.Debug("arm deferred, anchors unresolved", "id", rec.ID.Value())
			return
		}
	}

	changed := false
	coordinator := t.ids[0]
	for _, rec := range t.members() {
		if rec.Animating {
			continue
		}
		rec.Initialized = true
		rec.Animation = t.opts.Animation
		rec.Criteria = t.opts.Criteria
		rec.Hook = t.opts.Hook
		rec.Removal = t.opts.Removal
		if t.groupID != "" {
			rec.GroupID = t.groupID
			rec.Completion = nil
			if rec.ID == coordinator && rec.Namespace == t.ns {
				rec.Completion = t.opts.Completion
			}
		} else {
			rec.Completion = t.opts.Completion
		}
		if content := t.layerContent(rec, true); content != nil {
			rec.Content = content
		}
		rec.ShowLayer = true
		rec.HideDestination = true
		rec.fade = nil
		rec.layerAlpha = 1
		rec.completionPending = false
		rec.Animating = true
		rec.beginTween(1)
		changed = true
	}
	if changed {
		if t.groupID != "" {
			t.registry.setGroupCoordinator(t.groupID, coordinator, t.ns)
		}
		t.registry.notify()
	}
}

// ensureReverse flips every animating record back toward the source. Reverse
// never requires live anchors: cached geometry is enough, so a dismissal that
// unmounted the destination still animates home.
func (t *Transition) ensureReverse() {
	changed := false
	for _, rec := range t.members() {
		if !rec.Animating {
			continue
		}
		if content := t.layerContent(rec, false); content != nil {
			rec.Content = content
		}
		// The layer reappears for the trip home; a forward settle may have
		// already handed off and hidden it.
		rec.ShowLayer = true
		rec.HideDestination = true
		rec.fade = nil
		rec.layerAlpha = 1
		rec.completionPending = false
		rec.Animating = false
		rec.beginTween(0)
		changed = true
	}
	if changed {
		t.registry.notify()
	}
}

// step advances one record's tweens and runs settle/removal side effects.
// A fade started by settle begins consuming time on the following tick.
func (t *Transition) step(rec *Record, dt float32) {
	if rec.advance(dt) {
		t.settle(rec)
		return
	}
	if rec.advanceFade(dt) {
		rec.resetLayer()
		if rec.completionPending {
			rec.completionPending = false
			if rec.Completion != nil {
				rec.Completion(rec.completionSuccess)
			}
		}
		t.registry.notify()
	}
}

// settle runs when a record's progress tween reaches its target. Forward:
// unhide the destination and hand the layer off. Reverse: restore the source.
// Either way the layer is removed, instantly or by fade, and completion fires
// according to the record's criteria.
func (t *Transition) settle(rec *Record) {
	success := rec.Animating
	rec.HideDestination = false

	removed := true
	if rec.Removal == RemovalFade && rec.ShowLayer {
		rec.beginFade()
		removed = false
	} else {
		rec.resetLayer()
	}

	switch {
	case rec.Criteria == CriteriaRemoved && !removed:
		rec.completionPending = true
		rec.completionSuccess = success
	default:
		if rec.Completion != nil {
			rec.Completion(success)
		}
	}
	t.registry.notify()
}

// layerContent resolves the layer payload for a record and direction.
func (t *Transition) layerContent(rec *Record, active bool) Content {
	if t.opts.Layer != nil {
		arg := rec.ID.Value()
		if t.layerArg != nil {
			arg = t.layerArg(rec)
		}
		return t.opts.Layer.Layer(arg, active)
	}
	return t.opts.Content
}

// --- Item-based transitions ---

// Identifiable derives a portal identifier from a domain item, so item-based
// transitions can be driven by the item itself rather than a separate id.
type Identifiable interface {
	PortalID() any
}

// ItemTransition binds a transition to an optional item: setting a non-nil
// item arms the forward transition for that item's id, setting nil reverses
// it. Changing between two non-nil items while a transition is conceptually
// pending transfers the in-flight state to the new item's record, so the
// eventual reverse lands on the new item's source position (the paging /
// carousel case).
type ItemTransition struct {
	t *Transition

	item     Identifiable
	lastItem Identifiable

	clearTimer float32 // counts up to itemClearDelay after a reverse settles
}

// NewItemTransition creates an item-bound transition reporting into reg.
func NewItemTransition(reg *Registry, ns Namespace, opts TransitionOptions) *ItemTransition {
	if reg == nil {
		panic("portal: NewItemTransition requires a registry")
	}
	it := &ItemTransition{
		t: &Transition{registry: reg, ns: ns, opts: opts},
	}
	it.t.layerArg = func(rec *Record) any {
		if it.lastItem != nil {
			return it.lastItem
		}
		return rec.ID.Value()
	}
	return it
}

// SetItem binds the transition to item. Nil requests the reverse transition;
// the last non-nil item is retained for display until shortly after the
// reverse settles, so layer content stays visible while animating home even
// though the consumer already cleared its selection.
func (it *ItemTransition) SetItem(item Identifiable) {
	if item == nil {
		if it.item == nil {
			return
		}
		it.item = nil
		it.t.SetActive(false)
		return
	}

	newID := NewID(item.PortalID())
	if prev := it.DisplayItem(); prev != nil {
		oldID := NewID(prev.PortalID())
		if oldID == newID {
			it.item = item
			it.lastItem = item
			it.clearTimer = 0
			it.t.SetActive(true)
			return
		}
		// Display identity changed mid-flight: move the transition's state
		// to the new item's record so nothing is left animating on the old
		// one. Transfer no-ops if the old record was never registered.
		it.t.registry.Transfer(oldID, newID, it.t.ns)
	}

	it.item = item
	it.lastItem = item
	it.clearTimer = 0
	it.t.ids = []ID{newID}
	it.t.SetActive(true)
}

// Item returns the currently bound item, nil after a reverse was requested.
func (it *ItemTransition) Item() Identifiable {
	return it.item
}

// DisplayItem returns the item the layer should render: the bound item, or
// the retained last item while a reverse transition is still in flight.
func (it *ItemTransition) DisplayItem() Identifiable {
	if it.item != nil {
		return it.item
	}
	return it.lastItem
}

// Transition returns the underlying transition, for Active/Running queries.
func (it *ItemTransition) Transition() *Transition {
	return it.t
}

// Update advances the underlying transition and, after a reverse settles with
// no bound item, clears the retained item once the short hold elapses. The
// hold only starts counting on the tick after the settle.
func (it *ItemTransition) Update(dt float32) {
	if len(it.t.ids) == 0 {
		return
	}
	wasRunning := it.t.Running()
	it.t.Update(dt)

	if it.item == nil && it.lastItem != nil && !it.t.active && !wasRunning && !it.t.Running() {
		it.clearTimer += dt
		if it.clearTimer >= itemClearDelay {
			it.lastItem = nil
			it.clearTimer = 0
		}
	}
}
