package sparsity

import "testing"

func TestEntityIndexAndVersion(t *testing.T) {
	e := newEntity(7, 3)
	if e.Index() != 7 {
		t.Errorf("Index() = %d, want 7", e.Index())
	}
	if e.Version() != 3 {
		t.Errorf("Version() = %d, want 3", e.Version())
	}
}

func TestEntityValid(t *testing.T) {
	if NilEntity.Valid() {
		t.Error("NilEntity.Valid() = true, want false")
	}
	e := newEntity(0, 1)
	if !e.Valid() {
		t.Error("newEntity(0, 1).Valid() = false, want true")
	}
}

func TestEntityNextVersion(t *testing.T) {
	e := newEntity(5, 1)
	next, ok := e.nextVersion()
	if !ok {
		t.Fatal("nextVersion() ok = false, want true")
	}
	if next.Index() != 5 || next.Version() != 2 {
		t.Errorf("nextVersion() = %v, want index 5 version 2", next)
	}

	exhausted := newEntity(5, ^uint32(0))
	_, ok = exhausted.nextVersion()
	if ok {
		t.Error("nextVersion() at max version ok = true, want false")
	}
}

func TestEntityAllocatorAllocate(t *testing.T) {
	var a entityAllocator

	e1, err := a.allocate()
	if err != nil {
		t.Fatalf("allocate() error = %v", err)
	}
	e2, err := a.allocate()
	if err != nil {
		t.Fatalf("allocate() error = %v", err)
	}
	if e1 == e2 {
		t.Errorf("allocate() returned the same entity twice: %v", e1)
	}
	if e1.Index() != 0 || e2.Index() != 1 {
		t.Errorf("allocate() indexes = %d, %d, want 0, 1", e1.Index(), e2.Index())
	}
}

func TestEntityAllocatorDeallocateAndRecycle(t *testing.T) {
	var a entityAllocator

	e, _ := a.allocate()
	a.deallocate(e)

	recycled, err := a.allocate()
	if err != nil {
		t.Fatalf("allocate() error = %v", err)
	}
	if recycled.Index() != e.Index() {
		t.Errorf("recycled.Index() = %d, want %d", recycled.Index(), e.Index())
	}
	if recycled.Version() <= e.Version() {
		t.Errorf("recycled.Version() = %d, want > %d", recycled.Version(), e.Version())
	}
}

func TestEntityAllocatorMaintainOrdering(t *testing.T) {
	var a entityAllocator

	atomic1, err := a.allocateAtomic()
	if err != nil {
		t.Fatalf("allocateAtomic() error = %v", err)
	}
	atomic2, err := a.allocateAtomic()
	if err != nil {
		t.Fatalf("allocateAtomic() error = %v", err)
	}

	surfaced := a.maintain()
	if len(surfaced) != 2 {
		t.Fatalf("maintain() surfaced %d entities, want 2", len(surfaced))
	}
	if surfaced[0] != atomic1 || surfaced[1] != atomic2 {
		t.Errorf("maintain() = %v, want [%v %v]", surfaced, atomic1, atomic2)
	}

	// A second maintain with nothing new pending surfaces nothing.
	if again := a.maintain(); len(again) != 0 {
		t.Errorf("second maintain() = %v, want empty", again)
	}
}

func TestEntitySparseSetInsertContainsRemove(t *testing.T) {
	var s entitySparseSet

	e1 := newEntity(0, 1)
	e2 := newEntity(1, 1)
	s.insert(e1)
	s.insert(e2)

	if !s.contains(e1) || !s.contains(e2) {
		t.Fatal("expected both entities to be contained")
	}
	if s.len() != 2 {
		t.Errorf("len() = %d, want 2", s.len())
	}

	if !s.remove(e1) {
		t.Fatal("remove() = false, want true")
	}
	if s.contains(e1) {
		t.Error("e1 still contained after remove")
	}
	if !s.contains(e2) {
		t.Error("e2 should survive removal of e1")
	}
}

func TestEntitySparseSetInsertUpsertsSameIndex(t *testing.T) {
	var s entitySparseSet

	e := newEntity(3, 1)
	s.insert(e)
	if s.len() != 1 {
		t.Fatalf("len() = %d, want 1", s.len())
	}

	// Re-inserting the same (index, version) must overwrite, not duplicate:
	// insert is an upsert, a safety net for ids surfaced by maintain().
	s.insert(e)
	if s.len() != 1 {
		t.Errorf("len() after re-insert = %d, want 1 (insert must upsert)", s.len())
	}
}
