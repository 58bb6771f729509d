package ecs_test

import "github.com/plus3/weft/ecs"

// recordingSystem counts every hook invocation and remembers which entities
// it saw. Shared by the world tests.
type recordingSystem struct {
	filter   ecs.Aspect
	preCalls int
	updates  map[ecs.Entity]int
	added    map[ecs.Entity]int
	removed  map[ecs.Entity]int
}

func newRecordingSystem(filter ecs.Aspect) *recordingSystem {
	return &recordingSystem{
		filter:  filter,
		updates: make(map[ecs.Entity]int),
		added:   make(map[ecs.Entity]int),
		removed: make(map[ecs.Entity]int),
	}
}

func (s *recordingSystem) Aspect() ecs.Aspect {
	return s.filter
}

func (s *recordingSystem) PreUpdate(*ecs.Frame) {
	s.preCalls++
}

func (s *recordingSystem) Update(_ *ecs.Frame, e ecs.Entity) {
	s.updates[e]++
}

func (s *recordingSystem) EntityAdded(e ecs.Entity) {
	s.added[e]++
}

func (s *recordingSystem) EntityRemoved(e ecs.Entity) {
	s.removed[e]++
}

// bareSystem carries an aspect and no hooks at all.
type bareSystem struct {
	filter ecs.Aspect
}

func (s *bareSystem) Aspect() ecs.Aspect {
	return s.filter
}

// componentSet is a standalone ComponentSource for aspect tests; the entity
// argument is irrelevant because the set describes a single entity.
type componentSet map[ecs.Component]struct{}

func (s componentSet) HasComponent(_ ecs.Entity, name ecs.Component) bool {
	_, ok := s[name]
	return ok
}

func setOf(names ...ecs.Component) componentSet {
	s := make(componentSet, len(names))
	for _, name := range names {
		s[name] = struct{}{}
	}
	return s
}
