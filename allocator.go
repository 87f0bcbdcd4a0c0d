package sparsity

import "sync/atomic"

// entityAllocator produces unique generational Entity handles. allocate
// requires exclusive access to the owning World; allocateAtomic may run from
// any goroutine concurrently, claiming a slot via CAS loops, but the claimed
// entity is not visible to the world until the next maintain().
type entityAllocator struct {
	currentID   atomic.Uint32
	lastID      uint32
	recycled    []Entity
	recycledLen atomic.Uint64 // atomic.Int using Uint64 to allow CAS on length-as-usize semantics
}

// allocate pops a recycled entity if available, else increments the id
// counter. Returns an error if the 32-bit index space is exhausted.
func (a *entityAllocator) allocate() (Entity, error) {
	if n := len(a.recycled); n > 0 {
		e := a.recycled[n-1]
		a.recycled = a.recycled[:n-1]
		a.recycledLen.Store(uint64(n - 1))
		return e, nil
	}

	id := a.currentID.Load()
	if id == ^uint32(0) {
		return NilEntity, EntityExhaustedError{}
	}
	a.currentID.Store(id + 1)
	a.lastID = id + 1
	return newEntity(id, 1), nil
}

// allocateAtomic claims a slot under concurrent, non-exclusive access. It
// never returns the same (index, version) pair to two callers. The
// returned entity is a "reservation": it is not a member of any storage or
// the entity sparse-set until the next maintain() call.
func (a *entityAllocator) allocateAtomic() (Entity, error) {
	if recycledLen, ok := atomicDecrement(&a.recycledLen); ok {
		return a.recycled[recycledLen-1], nil
	}
	if id, ok := atomicIncrement(&a.currentID); ok {
		return newEntity(id, 1), nil
	}
	return NilEntity, EntityExhaustedError{}
}

// deallocate pushes e back onto the free list with its version
// incremented, unless doing so would overflow the version field, in which
// case the slot is permanently retired.
func (a *entityAllocator) deallocate(e Entity) {
	if next, ok := e.nextVersion(); ok {
		a.recycled = append(a.recycled, next)
		a.recycledLen.Store(uint64(len(a.recycled)))
	}
}

// maintain returns every entity that has become live since the previous
// maintain call: atomically-recycled slots first, then newly minted ids in
// ascending order. Reservations made between two maintain calls must all
// appear live after the second, none before.
func (a *entityAllocator) maintain() []Entity {
	remaining := int(a.recycledLen.Load())

	newlyRecycled := append([]Entity(nil), a.recycled[remaining:]...)
	a.recycled = a.recycled[:remaining]
	a.recycledLen.Store(uint64(remaining))

	currentID := a.currentID.Load()
	newIDs := make([]Entity, 0, currentID-a.lastID)
	for id := a.lastID; id < currentID; id++ {
		newIDs = append(newIDs, newEntity(id, 1))
	}
	a.lastID = currentID

	return append(newlyRecycled, newIDs...)
}

func (a *entityAllocator) clear() {
	a.currentID.Store(0)
	a.lastID = 0
	a.recycled = a.recycled[:0]
	a.recycledLen.Store(0)
}

// atomicDecrement does a fetch_sub that refuses to go below zero, returning
// (prevValue, true) on success or (_, false) if the counter was already
// zero.
func atomicDecrement(v *atomic.Uint64) (uint64, bool) {
	for {
		prev := v.Load()
		if prev == 0 {
			return 0, false
		}
		if v.CompareAndSwap(prev, prev-1) {
			return prev, true
		}
	}
}

// atomicIncrement does a fetch_add that refuses to wrap past uint32 max.
func atomicIncrement(v *atomic.Uint32) (uint32, bool) {
	for {
		prev := v.Load()
		if prev == ^uint32(0) {
			return 0, false
		}
		if v.CompareAndSwap(prev, prev+1) {
			return prev, true
		}
	}
}
