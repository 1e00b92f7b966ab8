// Package ecs provides the minimal entity-component storage the game engine
// is built on: generational entity identifiers, typed component stores, and
// join queries. It carries no game rules and no locking — the caller owns
// serialization (single writer at any instant).
package ecs

// Entity packs a 32-bit slot index in the low bits and a 32-bit generation
// in the high bits. The generation increments when a slot is freed, so stale
// references to a recycled slot stop matching.
type Entity uint64

// NilEntity is the zero Entity. It never refers to a live entity.
const NilEntity Entity = 0

func newEntity(index, generation uint32) Entity {
	return Entity(uint64(generation)<<32 | uint64(index))
}

// Index returns the slot index portion of the id.
func (e Entity) Index() uint32 { return uint32(e) }

// Generation returns the generation portion of the id.
func (e Entity) Generation() uint32 { return uint32(e >> 32) }

// Pool allocates and recycles entity ids. Freed slot indices are reused with
// a bumped generation; growing the slot table is the only allocation event.
type Pool struct {
	generations []uint32
	freeList    []uint32
	nextIndex   uint32
}

// NewPool returns an empty entity pool.
func NewPool() *Pool {
	return &Pool{
		generations: make([]uint32, 0, 64),
		freeList:    make([]uint32, 0, 16),
	}
}

// Create returns a fresh, never-before-live entity id.
func (p *Pool) Create() Entity {
	if n := len(p.freeList); n > 0 {
		idx := p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
		return newEntity(idx, p.generations[idx])
	}
	idx := p.nextIndex
	p.nextIndex++
	// Generations start at 1 so NilEntity (index 0, generation 0) is never live.
	p.generations = append(p.generations, 1)
	return newEntity(idx, p.generations[idx])
}

// Alive reports whether id refers to a currently live entity.
func (p *Pool) Alive(id Entity) bool {
	idx := id.Index()
	if idx >= p.nextIndex {
		return false
	}
	return p.generations[idx] == id.Generation()
}

// Destroy frees the entity's slot and bumps its generation, invalidating any
// outstanding copies of the id. Destroying a stale or unknown id is a no-op.
func (p *Pool) Destroy(id Entity) {
	idx := id.Index()
	if idx >= p.nextIndex || p.generations[idx] != id.Generation() {
		return
	}
	p.generations[idx]++
	p.freeList = append(p.freeList, idx)
}

// Live returns the number of live entities.
func (p *Pool) Live() int {
	return int(p.nextIndex) - len(p.freeList)
}
