package sparsity

// entitySparseSet is the world-wide set of live entities: a sparse array
// paired with a dense, contiguous slice of Entity values (no associated
// component data).
type entitySparseSet struct {
	sparse   sparseArray
	entities []Entity
}

// insert adds e as a new live entity, or overwrites the existing dense slot
// if one is already mapped at e's sparse index. A CreateAtomic reservation
// becomes live here on the next maintain() call; the upsert form is a
// safety net so that inserting an already-mapped id never duplicates its
// dense slot.
func (s *entitySparseSet) insert(e Entity) {
	slot := s.sparse.slotAt(e.Index())
	if slot.Valid() {
		dense := slot.dense()
		s.entities[dense] = e
		*slot = newDenseEntity(dense, e.Version())
		return
	}
	*slot = newDenseEntity(uint32(len(s.entities)), e.Version())
	s.entities = append(s.entities, e)
}

func (s *entitySparseSet) remove(e Entity) bool {
	idx, ok := s.sparse.remove(e)
	if !ok {
		return false
	}

	lastIdx := len(s.entities) - 1
	s.entities[idx] = s.entities[lastIdx]
	s.entities = s.entities[:lastIdx]

	if int(idx) != lastIdx {
		moved := s.entities[idx]
		s.sparse.insertAt(moved.Index(), newDenseEntity(idx, moved.Version()))
	}
	return true
}

func (s *entitySparseSet) contains(e Entity) bool { return s.sparse.contains(e) }
func (s *entitySparseSet) len() int               { return len(s.entities) }
func (s *entitySparseSet) isEmpty() bool          { return len(s.entities) == 0 }

func (s *entitySparseSet) clear() {
	s.sparse.clear()
	s.entities = s.entities[:0]
}

func (s *entitySparseSet) asSlice() []Entity { return s.entities }
