package ecs

import "github.com/kamstrup/intmap"

// Component names a data slot that can be attached to an entity. Aspect
// matching is driven by presence alone; the attached value is opaque to the
// core and only ever handed back to the host.
type Component string

// ComponentSource answers presence queries during aspect matching. World
// implements it; tests and hosts may substitute their own.
type ComponentSource interface {
	HasComponent(e Entity, name Component) bool
}

// store keeps component values in one column per component name, keyed by
// entity handle.
type store struct {
	columns map[Component]*intmap.Map[Entity, any]
}

func newStore() *store {
	return &store{
		columns: make(map[Component]*intmap.Map[Entity, any], 16),
	}
}

func (s *store) set(e Entity, name Component, value any) {
	col, ok := s.columns[name]
	if !ok {
		col = intmap.New[Entity, any](256)
		s.columns[name] = col
	}
	col.Put(e, value)
}

func (s *store) get(e Entity, name Component) (any, bool) {
	col, ok := s.columns[name]
	if !ok {
		return nil, false
	}
	return col.Get(e)
}

func (s *store) has(e Entity, name Component) bool {
	col, ok := s.columns[name]
	if !ok {
		return false
	}
	_, present := col.Get(e)
	return present
}

func (s *store) remove(e Entity, name Component) {
	if col, ok := s.columns[name]; ok {
		col.Del(e)
	}
}

// removeAll clears the entity from every column.
func (s *store) removeAll(e Entity) {
	for _, col := range s.columns {
		col.Del(e)
	}
}
