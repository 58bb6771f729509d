package ecs

import "github.com/kamstrup/intmap"

// pendingOp marks the queued transition for an entity.
type pendingOp uint8

const (
	pendingAdd pendingOp = iota + 1
	pendingRemove
)

// commandBuffer collects population changes until the next synchronization
// point. Entity transitions collapse per entity (last write wins); system
// transitions keep their enqueue order. The World swaps buffers before
// draining, so changes queued by hooks during a drain land in the next
// frame's buffer.
type commandBuffer struct {
	status        *intmap.Map[Entity, pendingOp]
	addSystems    []System
	removeSystems []System
}

func newCommandBuffer() *commandBuffer {
	return &commandBuffer{
		status: intmap.New[Entity, pendingOp](64),
	}
}

func (b *commandBuffer) markEntity(e Entity, op pendingOp) {
	b.status.Put(e, op)
}

func (b *commandBuffer) addSystem(s System) {
	b.addSystems = append(b.addSystems, s)
}

func (b *commandBuffer) removeSystem(s System) {
	b.removeSystems = append(b.removeSystems, s)
}

// replaceRemovals overwrites any queued system removals with the given list.
func (b *commandBuffer) replaceRemovals(systems []System) {
	b.removeSystems = append(b.removeSystems[:0], systems...)
}
