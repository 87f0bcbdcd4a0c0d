package sparsity

// ChangeTicks pairs the world tick at which a component was inserted with
// the world tick at which it was last mutated.
type ChangeTicks struct {
	TickAdded   uint32
	TickChanged uint32
}

// abstractStorage is the type-erased view of a componentStorage[T] that the
// grouped/ungrouped storage containers and the world need without knowing
// T. Typed access (get/insert/remove by value) only ever happens through a
// componentStorage[T] or a View[T], never through this interface — it
// exists purely for bookkeeping that is the same shape for every T.
type abstractStorage interface {
	info() ComponentInfo
	len() int
	containsEntity(e Entity) bool
	indexOf(e Entity) (uint32, bool)
	entityAt(i uint32) Entity
	removeEntity(e Entity) bool
	swapUnchecked(a, b uint32)
	clear()
	// insertAny inserts value (which must hold a T) for e, recording
	// worldTick as both TickAdded and TickChanged for a fresh slot. It
	// exists so World.Create/World.Extend can insert component values
	// received as `any` without knowing T statically.
	insertAny(e Entity, value any, worldTick uint32)
}

// componentStorage holds, per component type T, three parallel dense
// arrays (entities, components, change-ticks) plus the sparse array that
// maps entity sparse indexes to dense positions. Memory grows by doubling
// starting at capacity 4 on first insert; Go's zero-sized-type slices
// already skip allocation for empty structs, satisfying the "zero-sized
// components never allocate" boundary case for free.
type componentStorage[T any] struct {
	ci         ComponentInfo
	sparse     sparseArray
	entities   []Entity
	components []T
	ticks      []ChangeTicks
}

func newComponentStorage[T any](ci ComponentInfo) *componentStorage[T] {
	return &componentStorage[T]{ci: ci}
}

func (s *componentStorage[T]) info() ComponentInfo { return s.ci }
func (s *componentStorage[T]) len() int            { return len(s.entities) }

func (s *componentStorage[T]) containsEntity(e Entity) bool {
	return s.sparse.contains(e)
}

func (s *componentStorage[T]) indexOf(e Entity) (uint32, bool) {
	return s.sparse.get(e)
}

func (s *componentStorage[T]) entityAt(i uint32) Entity {
	return s.entities[i]
}

func (s *componentStorage[T]) growTo(n int) {
	if cap(s.entities) >= n {
		return
	}
	newCap := cap(s.entities)
	if newCap == 0 {
		newCap = 4
	}
	for newCap < n {
		newCap *= 2
	}
	grownEntities := make([]Entity, len(s.entities), newCap)
	copy(grownEntities, s.entities)
	s.entities = grownEntities

	grownComponents := make([]T, len(s.components), newCap)
	copy(grownComponents, s.components)
	s.components = grownComponents

	grownTicks := make([]ChangeTicks, len(s.ticks), newCap)
	copy(grownTicks, s.ticks)
	s.ticks = grownTicks
}

// insert overwrites the component in place (updating its tick_changed) if e
// is already present, otherwise appends a new dense slot. Returns the
// displaced value and true if one existed.
func (s *componentStorage[T]) insert(e Entity, value T, ticks ChangeTicks) (displaced T, existed bool) {
	if idx, ok := s.sparse.get(e); ok {
		displaced = s.components[idx]
		s.components[idx] = value
		s.ticks[idx].TickChanged = ticks.TickChanged
		return displaced, true
	}

	idx := len(s.entities)
	s.growTo(idx + 1)
	s.entities = append(s.entities, e)
	s.components = append(s.components, value)
	s.ticks = append(s.ticks, ticks)
	s.sparse.insertAt(e.Index(), newDenseEntity(uint32(idx), e.Version()))

	var zero T
	return zero, false
}

// remove swap-removes the dense slot for e, fixing up the sparse slot of
// whichever entity was swapped in, and returns the removed component.
func (s *componentStorage[T]) remove(e Entity) (removed T, ok bool) {
	idx, found := s.sparse.remove(e)
	if !found {
		return removed, false
	}

	removed = s.components[idx]
	lastIdx := len(s.entities) - 1

	if int(idx) != lastIdx {
		lastEntity := s.entities[lastIdx]
		s.entities[idx] = lastEntity
		s.components[idx] = s.components[lastIdx]
		s.ticks[idx] = s.ticks[lastIdx]
		s.sparse.insertAt(lastEntity.Index(), newDenseEntity(idx, lastEntity.Version()))
	}

	var zero T
	s.entities = s.entities[:lastIdx]
	s.components[lastIdx] = zero
	s.components = s.components[:lastIdx]
	s.ticks = s.ticks[:lastIdx]
	return removed, true
}

func (s *componentStorage[T]) removeEntity(e Entity) bool {
	_, ok := s.remove(e)
	return ok
}

func (s *componentStorage[T]) insertAny(e Entity, value any, worldTick uint32) {
	s.insert(e, value.(T), ChangeTicks{TickAdded: worldTick, TickChanged: worldTick})
}

// swapUnchecked swaps the dense slots at a and b across all three parallel
// arrays and rewrites the sparse slots of the two affected entities.
func (s *componentStorage[T]) swapUnchecked(a, b uint32) {
	if a == b {
		return
	}
	ea, eb := s.entities[a], s.entities[b]
	s.entities[a], s.entities[b] = s.entities[b], s.entities[a]
	s.components[a], s.components[b] = s.components[b], s.components[a]
	s.ticks[a], s.ticks[b] = s.ticks[b], s.ticks[a]
	s.sparse.swapNonoverlapping(ea.Index(), eb.Index())
}

func (s *componentStorage[T]) get(e Entity) (*T, bool) {
	idx, ok := s.sparse.get(e)
	if !ok {
		return nil, false
	}
	return &s.components[idx], true
}

func (s *componentStorage[T]) getWithTicks(e Entity) (*T, *ChangeTicks, bool) {
	idx, ok := s.sparse.get(e)
	if !ok {
		return nil, nil, false
	}
	return &s.components[idx], &s.ticks[idx], true
}

// split exposes the raw slices needed for query iteration: the sparse
// array, the dense entity slice, the component slice and the change-tick
// slice. Safety against aliasing is enforced by the borrow guard at the
// View level, not by this method.
func (s *componentStorage[T]) split() (*sparseArray, []Entity, []T, []ChangeTicks) {
	return &s.sparse, s.entities, s.components, s.ticks
}

func (s *componentStorage[T]) clear() {
	s.sparse.clear()
	s.entities = s.entities[:0]
	s.components = s.components[:0]
	s.ticks = s.ticks[:0]
}

var _ abstractStorage = (*componentStorage[struct{}])(nil)
