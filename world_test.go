package sparsity

import "testing"

type wPosition struct{ X, Y float64 }
type wVelocity struct{ X, Y float64 }
type wHealth struct{ Current, Max int }

func TestWorldCreateAndContains(t *testing.T) {
	world := NewWorldBuilder().Build()
	Register[wPosition](world)

	e, err := world.Create(wPosition{X: 1, Y: 2})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if !world.Contains(e) {
		t.Error("Contains() = false right after Create()")
	}
	if world.Len() != 1 {
		t.Errorf("Len() = %d, want 1", world.Len())
	}

	positions, err := Borrow[wPosition](world)
	if err != nil {
		t.Fatalf("Borrow() error = %v", err)
	}
	defer positions.Release()

	got, ok := positions.Get(e)
	if !ok {
		t.Fatal("Get() ok = false for the just-created entity")
	}
	if got.X != 1 || got.Y != 2 {
		t.Errorf("Get() = %+v, want {1 2}", *got)
	}
}

func TestWorldDestroyStaleHandle(t *testing.T) {
	world := NewWorldBuilder().Build()
	Register[wPosition](world)

	e, _ := world.Create(wPosition{})
	if !world.Destroy(e) {
		t.Fatal("Destroy() = false for a live entity")
	}
	if world.Contains(e) {
		t.Error("Contains() = true after Destroy()")
	}
	if world.Destroy(e) {
		t.Error("second Destroy() on the same handle = true, want false")
	}

	// A fresh entity may recycle the same index but not the same handle.
	e2, _ := world.Create(wPosition{})
	if e2 == e {
		t.Error("recycled entity compared equal to its stale predecessor")
	}
	if world.Contains(e) {
		t.Error("stale handle reported live after its slot was recycled")
	}
}

func TestWorldAppendOnStaleEntityErrors(t *testing.T) {
	world := NewWorldBuilder().Build()
	Register[wPosition](world)
	e, _ := world.Create(wPosition{})
	world.Destroy(e)

	if err := world.Append(e, wVelocity{X: 1}); err == nil {
		t.Error("Append() on a stale handle returned no error")
	}
}

func TestWorldExtendBatchCreate(t *testing.T) {
	world := NewWorldBuilder().Build()
	Register[wPosition](world)

	entities, err := world.Extend(
		[]any{wPosition{X: 1}},
		[]any{wPosition{X: 2}},
		[]any{wPosition{X: 3}},
	)
	if err != nil {
		t.Fatalf("Extend() error = %v", err)
	}
	if len(entities) != 3 {
		t.Fatalf("Extend() created %d entities, want 3", len(entities))
	}
	if world.Len() != 3 {
		t.Errorf("Len() = %d, want 3", world.Len())
	}
}

func TestWorldExtendEmptyIsNoop(t *testing.T) {
	world := NewWorldBuilder().Build()
	entities, err := world.Extend()
	if err != nil {
		t.Fatalf("Extend() error = %v", err)
	}
	if entities != nil {
		t.Errorf("Extend() with no tuples = %v, want nil", entities)
	}
}

func TestRemoveReturnsValueAndAbsentOnSecondCall(t *testing.T) {
	world := NewWorldBuilder().Build()
	Register[wHealth](world)
	e, _ := world.Create(wHealth{Current: 10, Max: 10})

	removed, ok := Remove[wHealth](world, e)
	if !ok {
		t.Fatal("Remove() ok = false")
	}
	if removed.Current != 10 {
		t.Errorf("Remove() = %+v, want Current 10", removed)
	}

	_, ok = Remove[wHealth](world, e)
	if ok {
		t.Error("second Remove() ok = true for an already-removed component")
	}
}

func TestRemoveOnStaleHandleIsNoop(t *testing.T) {
	world := NewWorldBuilder().Build()
	Register[wHealth](world)
	e, _ := world.Create(wHealth{Current: 1})
	world.Destroy(e)

	if _, ok := Remove[wHealth](world, e); ok {
		t.Error("Remove() ok = true for a stale handle")
	}
}

func TestWorldClearResetsEverything(t *testing.T) {
	world := NewWorldBuilder().Build()
	Register[wPosition](world)
	world.Create(wPosition{X: 1})
	world.Create(wPosition{X: 2})

	world.Clear()
	if world.Len() != 0 {
		t.Errorf("Len() after Clear() = %d, want 0", world.Len())
	}

	e, err := world.Create(wPosition{X: 9})
	if err != nil {
		t.Fatalf("Create() after Clear() error = %v", err)
	}
	if e.Index() != 0 {
		t.Errorf("first entity after Clear() has index %d, want 0", e.Index())
	}
}

func TestWorldCreateAtomicSurfacesOnMaintain(t *testing.T) {
	world := NewWorldBuilder().Build()

	e, err := world.CreateAtomic()
	if err != nil {
		t.Fatalf("CreateAtomic() error = %v", err)
	}
	if world.Contains(e) {
		t.Error("Contains() = true before Maintain()")
	}

	world.Maintain()
	if !world.Contains(e) {
		t.Error("Contains() = false after Maintain()")
	}
}

func TestBorrowMutGetMutMarksChanged(t *testing.T) {
	world := NewWorldBuilder().Build()
	Register[wPosition](world)
	e, _ := world.Create(wPosition{X: 0})
	world.Tick()

	positions, err := BorrowMut[wPosition](world)
	if err != nil {
		t.Fatalf("BorrowMut() error = %v", err)
	}
	pos, ok := positions.GetMut(e)
	if !ok {
		t.Fatal("GetMut() ok = false")
	}
	pos.X = 42
	ticks, ok := positions.Ticks(e)
	if !ok {
		t.Fatal("Ticks() ok = false")
	}
	if ticks.TickChanged != world.WorldTick() {
		t.Errorf("TickChanged = %d, want %d", ticks.TickChanged, world.WorldTick())
	}
	positions.Release()
}

func TestBorrowConflictsWithBorrowMut(t *testing.T) {
	world := NewWorldBuilder().Build()
	Register[wPosition](world)
	world.Create(wPosition{})

	shared, err := Borrow[wPosition](world)
	if err != nil {
		t.Fatalf("Borrow() error = %v", err)
	}
	defer shared.Release()

	if _, err := BorrowMut[wPosition](world); err == nil {
		t.Error("BorrowMut() succeeded while a shared borrow was outstanding")
	}
}

func TestWorldAppendAndRemoveTouchGroupedStorage(t *testing.T) {
	layout := NewLayoutBuilder().
		AddGroup(ComponentInfoOf[wPosition](), ComponentInfoOf[wVelocity]()).
		Build()
	world := NewWorldBuilder().SetLayout(layout).Build()

	e, err := world.Create(wPosition{X: 1})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := world.Append(e, wVelocity{X: 2}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	positions, _ := Borrow[wPosition](world)
	defer positions.Release()
	if _, ok := positions.Get(e); !ok {
		t.Fatal("Get() ok = false after Append() completed the group")
	}

	if _, ok := Remove[wVelocity](world, e); !ok {
		t.Fatal("Remove() ok = false")
	}
	if _, ok := positions.Get(e); !ok {
		t.Error("Get() ok = false after removing the other grouped component")
	}
}

func TestCommandQueueApply(t *testing.T) {
	world := NewWorldBuilder().Build()
	Register[wPosition](world)
	Register[wVelocity](world)
	var queue CommandQueue

	var created Entity
	queue.EnqueueCreate(&created, wPosition{X: 1})

	if err := world.ApplyCommands(&queue); err != nil {
		t.Fatalf("ApplyCommands() error = %v", err)
	}
	if !world.Contains(created) {
		t.Fatal("entity from EnqueueCreate not live after ApplyCommands")
	}

	queue.EnqueueInsert(created, wVelocity{X: 3})
	queue.EnqueueDestroy(created)
	if err := world.ApplyCommands(&queue); err != nil {
		t.Fatalf("ApplyCommands() error = %v", err)
	}
	if world.Contains(created) {
		t.Error("entity still live after a queued Destroy command")
	}
}

type wNeverRegistered struct{ N int }

func TestBorrowPanicsForNeverRegisteredType(t *testing.T) {
	world := NewWorldBuilder().Build()
	Register[wPosition](world)
	world.Create(wPosition{})

	defer func() {
		if recover() == nil {
			t.Error("Borrow() for a never-created, never-registered type did not panic")
		}
	}()
	Borrow[wNeverRegistered](world)
}

func TestBorrowMutPanicsForNeverRegisteredType(t *testing.T) {
	world := NewWorldBuilder().Build()
	Register[wPosition](world)
	world.Create(wPosition{})

	defer func() {
		if recover() == nil {
			t.Error("BorrowMut() for a never-created, never-registered type did not panic")
		}
	}()
	BorrowMut[wNeverRegistered](world)
}

func TestBorrowSucceedsAfterExplicitRegister(t *testing.T) {
	world := NewWorldBuilder().Build()
	Register[wNeverRegistered](world)

	comp, err := Borrow[wNeverRegistered](world)
	if err != nil {
		t.Fatalf("Borrow() after Register() error = %v", err)
	}
	comp.Release()
}

func TestWorldCreateFiresOnEntityCreatedExactlyOnce(t *testing.T) {
	prev := Config.WorldEvents()
	defer Config.SetWorldEvents(prev)

	counts := make(map[Entity]int)
	Config.SetWorldEvents(WorldEvents{
		OnEntityCreated: func(e Entity) { counts[e]++ },
	})

	world := NewWorldBuilder().Build()
	Register[wPosition](world)

	e1, _ := world.Create(wPosition{X: 1})
	e2, _ := world.Create(wPosition{X: 2})
	world.Extend([]any{wPosition{X: 3}})
	world.Destroy(e1)
	world.Create(wPosition{X: 4})

	if counts[e1] != 1 {
		t.Errorf("OnEntityCreated fired %d times for e1, want 1", counts[e1])
	}
	if counts[e2] != 1 {
		t.Errorf("OnEntityCreated fired %d times for e2, want 1", counts[e2])
	}
}

func TestSyncWorldCreateAtomicAndBorrow(t *testing.T) {
	world := NewWorldBuilder().Build()
	Register[wPosition](world)
	world.Create(wPosition{X: 5})

	sync := world.Sync()
	e, err := sync.CreateAtomic()
	if err != nil {
		t.Fatalf("CreateAtomic() error = %v", err)
	}
	world.Maintain()
	if !sync.Contains(e) {
		t.Error("Contains() = false after Maintain()")
	}

	positions, err := BorrowSync[wPosition](sync)
	if err != nil {
		t.Fatalf("BorrowSync() error = %v", err)
	}
	positions.Release()
}
