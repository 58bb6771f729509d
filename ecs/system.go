package ecs

// System is a unit of behavior bound to an aspect. The aspect decides which
// entities the world feeds to the system; the optional capability interfaces
// below decide what the system does with them. A system implementing none of
// them is still tracked, which is useful when only its membership cache is
// wanted.
type System interface {
	// Aspect returns the system's entity filter. Returning the zero Aspect
	// binds the system to the empty aspect, which matches nothing.
	Aspect() Aspect
}

// PreUpdater runs once per frame, before the per-entity update pass.
type PreUpdater interface {
	PreUpdate(frame *Frame)
}

// Updater runs once per matched entity each frame. Iteration order over the
// membership cache is unspecified.
type Updater interface {
	Update(frame *Frame, e Entity)
}

// AddObserver is notified when an entity transitions into the system's
// membership during entity synchronization. It does not fire for the silent
// bulk population that happens when the system itself is registered.
type AddObserver interface {
	EntityAdded(e Entity)
}

// RemoveObserver is notified when an entity leaves the world, or when the
// system itself is removed, for every entity in its membership cache at that
// point.
type RemoveObserver interface {
	EntityRemoved(e Entity)
}

// SystemFunc adapts plain functions into a System, in the spirit of
// http.HandlerFunc. Nil function fields are skipped.
type SystemFunc struct {
	Filter    Aspect
	PreFn     func(frame *Frame)
	UpdateFn  func(frame *Frame, e Entity)
	AddedFn   func(e Entity)
	RemovedFn func(e Entity)
}

func (s *SystemFunc) Aspect() Aspect {
	return s.Filter
}

func (s *SystemFunc) PreUpdate(frame *Frame) {
	if s.PreFn != nil {
		s.PreFn(frame)
	}
}

func (s *SystemFunc) Update(frame *Frame, e Entity) {
	if s.UpdateFn != nil {
		s.UpdateFn(frame, e)
	}
}

func (s *SystemFunc) EntityAdded(e Entity) {
	if s.AddedFn != nil {
		s.AddedFn(e)
	}
}

func (s *SystemFunc) EntityRemoved(e Entity) {
	if s.RemovedFn != nil {
		s.RemovedFn(e)
	}
}
