package sparsity

import "fmt"

// Entity is a versioned handle: a 32-bit sparse index packed with a 32-bit
// version. Version zero means "never allocated"; a destroyed and recreated
// slot gets a new, larger version so a stale handle compares unequal to its
// successor.
type Entity uint64

// NilEntity is the zero value: index 0, version 0, never a valid handle.
const NilEntity Entity = 0

func newEntity(index, version uint32) Entity {
	return Entity(uint64(index) | uint64(version)<<32)
}

// Index returns the entity's sparse index.
func (e Entity) Index() uint32 {
	return uint32(e)
}

// Version returns the entity's generation. Zero means the handle was never
// allocated.
func (e Entity) Version() uint32 {
	return uint32(e >> 32)
}

// Valid reports whether the handle was ever allocated (version != 0). It
// does NOT check liveness against any particular World; use World.Contains
// for that.
func (e Entity) Valid() bool {
	return e.Version() != 0
}

// nextVersion returns the same-index handle with its version incremented,
// or (NilEntity, false) if doing so would overflow and the slot must be
// permanently retired.
func (e Entity) nextVersion() (Entity, bool) {
	v := e.Version()
	if v == ^uint32(0) {
		return NilEntity, false
	}
	return newEntity(e.Index(), v+1), true
}

func (e Entity) String() string {
	return fmt.Sprintf("Entity{index: %d, version: %d}", e.Index(), e.Version())
}

// denseEntity is an Entity-shaped value stored inside a sparseArray slot: it
// records the dense-array position (not the sparse slot) paired with the
// version of the entity that owns that dense position. The distinct alias
// keeps "entity handle" and "dense slot record" visually separate even
// though both share the same bit layout.
type denseEntity = Entity

func newDenseEntity(denseIndex, version uint32) denseEntity {
	return newEntity(denseIndex, version)
}

func (e denseEntity) dense() uint32 {
	return e.Index()
}
