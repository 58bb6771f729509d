package ecs

import (
	"context"
	"time"

	"github.com/kamstrup/intmap"
	"go.uber.org/zap"
)

// systemState is the world-side record for a registered system: its
// membership cache, its active flag and its execution statistics.
type systemState struct {
	system  System
	active  bool
	members *intmap.Map[Entity, struct{}]
	stats   *systemStatsInternal
}

// World coordinates a population of entities and the systems that act on
// them. Every population change requested through the World is deferred: it
// is buffered and applied at the next synchronization point, which runs at
// the top of Update. Hooks can therefore add and remove entities or systems
// freely while the world is iterating without corrupting the pass in flight.
//
// A World is not safe for concurrent use; it is built for a single logical
// thread of control, the host's frame loop.
type World struct {
	pool      *entityPool
	store     *store
	systems   []*systemState
	index     map[System]*systemState
	residents *intmap.Map[Entity, struct{}]
	pending   *commandBuffer
	log       *zap.Logger
}

// WorldOption configures a World at construction.
type WorldOption func(*World)

// WithLogger routes the world's diagnostics to the given logger. The
// default is a no-op logger.
func WithLogger(log *zap.Logger) WorldOption {
	return func(w *World) {
		if log != nil {
			w.log = log
		}
	}
}

// WithSystems queues the given systems for registration at the first
// synchronization point, in the given order.
func WithSystems(systems ...System) WorldOption {
	return func(w *World) {
		for _, s := range systems {
			w.pending.addSystem(s)
		}
	}
}

// NewWorld constructs an empty world.
func NewWorld(opts ...WorldOption) *World {
	w := &World{
		pool:      newEntityPool(),
		store:     newStore(),
		index:     make(map[System]*systemState, 16),
		residents: intmap.New[Entity, struct{}](256),
		pending:   newCommandBuffer(),
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// NewEntity allocates a fresh entity handle and queues it to join the world
// at the next synchronization point. Components may be attached right away;
// membership is evaluated once the entity becomes resident.
func (w *World) NewEntity() Entity {
	e := w.pool.create()
	w.pending.markEntity(e, pendingAdd)
	return e
}

// AddEntity queues the entity to (re)join the world at the next
// synchronization point, overriding a removal queued earlier this frame.
// Resubmitting a resident entity re-evaluates its membership in every
// system, which is how component changes become visible to matching. Stale
// handles are ignored.
func (w *World) AddEntity(e Entity) {
	if !w.pool.alive(e) {
		return
	}
	w.pending.markEntity(e, pendingAdd)
}

// RemoveEntity queues the entity to leave the world at the next
// synchronization point, overriding an addition queued earlier this frame.
// Applying the removal drops the entity's components and releases the
// handle. Stale handles are ignored.
func (w *World) RemoveEntity(e Entity) {
	if !w.pool.alive(e) {
		return
	}
	w.pending.markEntity(e, pendingRemove)
}

// SetComponent attaches a value under the named component slot. Attaching or
// detaching components does not re-evaluate membership by itself; resubmit
// the entity with AddEntity to make the change visible to aspects.
func (w *World) SetComponent(e Entity, name Component, value any) {
	if !w.pool.alive(e) {
		return
	}
	w.store.set(e, name, value)
}

// Component returns the value stored under the named slot for the entity.
func (w *World) Component(e Entity, name Component) (any, bool) {
	return w.store.get(e, name)
}

// HasComponent reports presence of the named slot. World thereby satisfies
// ComponentSource, so aspects match directly against it.
func (w *World) HasComponent(e Entity, name Component) bool {
	return w.store.has(e, name)
}

// RemoveComponent detaches the named slot, if present. Like SetComponent it
// does not touch membership caches on its own.
func (w *World) RemoveComponent(e Entity, name Component) {
	w.store.remove(e, name)
}

// AddSystem queues a system for registration at the next synchronization
// point. Systems update in registration order. Registering a system that is
// already registered is a no-op.
func (w *World) AddSystem(s System) {
	w.pending.addSystem(s)
}

// RemoveSystem queues a system for removal at the next synchronization
// point. Unregistered systems are silently ignored when the removal is
// applied.
func (w *World) RemoveSystem(s System) {
	w.pending.removeSystem(s)
}

// ClearEntities queues every resident entity for removal. Entities still
// waiting to join are left untouched.
func (w *World) ClearEntities() {
	w.residents.ForEach(func(e Entity, _ struct{}) bool {
		w.pending.markEntity(e, pendingRemove)
		return true
	})
}

// ClearSystems queues every registered system for removal, replacing any
// system removals already queued this frame.
func (w *World) ClearSystems() {
	systems := make([]System, len(w.systems))
	for i, st := range w.systems {
		systems[i] = st.system
	}
	w.pending.replaceRemovals(systems)
}

// SetSystemActive toggles whether Update drives the system automatically.
// Membership upkeep is unaffected; an inactive system can still be driven
// manually with UpdateSystem. Unregistered systems are ignored.
func (w *World) SetSystemActive(s System, active bool) {
	if st, ok := w.index[s]; ok {
		st.active = active
	}
}

// SystemActive reports the system's active flag, false if unregistered.
func (w *World) SystemActive(s System) bool {
	st, ok := w.index[s]
	return ok && st.active
}

// Update advances one frame: queued system changes are applied, then queued
// entity changes, then every active system runs in registration order.
func (w *World) Update(dt float64) {
	w.syncSystems()
	w.syncEntities()

	frame := newFrame(dt, w)
	for _, st := range w.systems {
		if !st.active {
			continue
		}
		w.runSystem(st, frame)
	}
}

// UpdateSystem drives one registered system for a frame outside the
// automatic pass, regardless of its active flag. Unregistered systems are a
// no-op.
func (w *World) UpdateSystem(s System, dt float64) {
	st, ok := w.index[s]
	if !ok {
		return
	}
	w.runSystem(st, newFrame(dt, w))
}

func (w *World) runSystem(st *systemState, frame *Frame) {
	start := time.Now()

	if pre, ok := st.system.(PreUpdater); ok {
		pre.PreUpdate(frame)
	}
	if up, ok := st.system.(Updater); ok {
		st.members.ForEach(func(e Entity, _ struct{}) bool {
			up.Update(frame, e)
			return true
		})
	}

	st.stats.record(time.Since(start))
}

// Run drives Update repeatedly at the given interval until the context is
// cancelled. The delta passed to Update is the measured time between ticks.
func (w *World) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			w.Update(now.Sub(last).Seconds())
			last = now
		}
	}
}

// syncSystems applies queued system removals, then queued additions. It runs
// before syncEntities so a system registered this frame has its membership
// cache in place before any entity transition is evaluated.
func (w *World) syncSystems() {
	if len(w.pending.addSystems) == 0 && len(w.pending.removeSystems) == 0 {
		return
	}
	removals := w.pending.removeSystems
	additions := w.pending.addSystems
	w.pending.removeSystems = nil
	w.pending.addSystems = nil

	removed := 0
	for _, s := range removals {
		st, ok := w.index[s]
		if !ok {
			continue // never registered, or already removed
		}
		w.unregister(st)
		removed++
	}

	added := 0
	for _, s := range additions {
		if _, ok := w.index[s]; ok {
			continue // already registered
		}
		w.register(s)
		added++
	}

	if added != 0 || removed != 0 {
		w.log.Debug("synchronized systems",
			zap.Int("added", added),
			zap.Int("removed", removed),
			zap.Int("registered", len(w.systems)),
		)
	}
}

func (w *World) unregister(st *systemState) {
	for i, cur := range w.systems {
		if cur == st {
			w.systems = append(w.systems[:i], w.systems[i+1:]...)
			break
		}
	}
	if ro, ok := st.system.(RemoveObserver); ok {
		st.members.ForEach(func(e Entity, _ struct{}) bool {
			ro.EntityRemoved(e)
			return true
		})
	}
	delete(w.index, st.system)
}

func (w *World) register(s System) {
	st := &systemState{
		system:  s,
		active:  true,
		members: intmap.New[Entity, struct{}](64),
		stats:   newSystemStats(systemName(s)),
	}
	w.systems = append(w.systems, st)
	w.index[s] = st

	// Initial population is silent: add observers only fire on transitions
	// seen during entity synchronization.
	aspect := s.Aspect()
	w.residents.ForEach(func(e Entity, _ struct{}) bool {
		if aspect.Matches(w, e) {
			st.members.Put(e, struct{}{})
		}
		return true
	})
}

// syncEntities drains the entity status buffer, reconciling the resident set
// and every membership cache and firing transition observers.
func (w *World) syncEntities() {
	if w.pending.status.Len() == 0 {
		return
	}
	status := w.pending.status
	w.pending.status = intmap.New[Entity, pendingOp](64)

	added, removed := 0, 0
	status.ForEach(func(e Entity, op pendingOp) bool {
		switch op {
		case pendingAdd:
			w.applyAdd(e)
			added++
		case pendingRemove:
			w.applyRemove(e)
			removed++
		}
		return true
	})

	w.log.Debug("synchronized entities",
		zap.Int("added", added),
		zap.Int("removed", removed),
		zap.Int("resident", w.residents.Len()),
	)
}

func (w *World) applyAdd(e Entity) {
	for _, st := range w.systems {
		matches := st.system.Aspect().Matches(w, e)
		if matches {
			if _, member := st.members.Get(e); !member {
				if ao, ok := st.system.(AddObserver); ok {
					ao.EntityAdded(e)
				}
			}
			st.members.Put(e, struct{}{})
		} else {
			st.members.Del(e)
		}
	}
	w.residents.Put(e, struct{}{})
}

// applyRemove drops the entity from the resident set and every membership
// cache. Remove observers fire for every system that has one, member or
// not; hosts must tolerate notifications for entities they never saw added.
func (w *World) applyRemove(e Entity) {
	w.residents.Del(e)
	for _, st := range w.systems {
		if ro, ok := st.system.(RemoveObserver); ok {
			ro.EntityRemoved(e)
		}
		st.members.Del(e)
	}
	w.store.removeAll(e)
	w.pool.release(e)
}

// EntityCount returns the number of resident entities.
func (w *World) EntityCount() int {
	return w.residents.Len()
}

// SystemCount returns the number of registered systems.
func (w *World) SystemCount() int {
	return len(w.systems)
}

// Alive reports whether the handle refers to a live entity slot, resident or
// still pending.
func (w *World) Alive(e Entity) bool {
	return w.pool.alive(e)
}

// IsResident reports whether the entity has joined the world.
func (w *World) IsResident(e Entity) bool {
	_, ok := w.residents.Get(e)
	return ok
}

// IsMember reports whether the entity is in the system's membership cache.
func (w *World) IsMember(s System, e Entity) bool {
	st, ok := w.index[s]
	if !ok {
		return false
	}
	_, member := st.members.Get(e)
	return member
}

// Members returns a snapshot of the system's membership cache in unspecified
// order, or nil if the system is unregistered.
func (w *World) Members(s System) []Entity {
	st, ok := w.index[s]
	if !ok {
		return nil
	}
	members := make([]Entity, 0, st.members.Len())
	st.members.ForEach(func(e Entity, _ struct{}) bool {
		members = append(members, e)
		return true
	})
	return members
}
