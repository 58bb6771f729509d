package ecs

// Entity identifies an entity owned by a World. The handle packs a 32-bit
// pool slot index in the lower bits and a 32-bit generation in the upper
// bits. Generations start at 1, so a live handle is never the zero value.
type Entity uint64

func newEntity(index, generation uint32) Entity {
	return Entity(uint64(generation)<<32 | uint64(index))
}

// Index extracts the pool slot index from the handle.
func (e Entity) Index() uint32 {
	return uint32(e)
}

// Generation extracts the generation from the handle.
func (e Entity) Generation() uint32 {
	return uint32(e >> 32)
}

// IsZero reports whether the handle is the zero value, which never refers to
// an entity.
func (e Entity) IsZero() bool {
	return e == 0
}

// entityPool allocates entity handles with generational indices and a free
// list. Releasing a slot increments its generation, which invalidates any
// handle still held for the old generation.
type entityPool struct {
	generations []uint32
	free        []uint32
}

func newEntityPool() *entityPool {
	return &entityPool{
		generations: make([]uint32, 0, 1024),
		free:        make([]uint32, 0, 256),
	}
}

func (p *entityPool) create() Entity {
	if n := len(p.free); n > 0 {
		idx := p.free[n-1]
		p.free = p.free[:n-1]
		return newEntity(idx, p.generations[idx])
	}
	idx := uint32(len(p.generations))
	p.generations = append(p.generations, 1)
	return newEntity(idx, 1)
}

func (p *entityPool) alive(e Entity) bool {
	idx := e.Index()
	if int(idx) >= len(p.generations) {
		return false
	}
	return p.generations[idx] == e.Generation()
}

func (p *entityPool) release(e Entity) {
	idx := e.Index()
	if int(idx) >= len(p.generations) {
		return
	}
	if p.generations[idx] != e.Generation() {
		return // stale handle
	}
	p.generations[idx]++
	p.free = append(p.free, idx)
}
