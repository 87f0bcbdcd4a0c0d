package sparsity

import "testing"

type qPosition struct{ X, Y float64 }
type qVelocity struct{ X, Y float64 }
type qTag struct{}
type qCompC struct{}
type qCompD struct{}

func TestQuery1GetAndForEach(t *testing.T) {
	world := NewWorldBuilder().Build()
	Register[qPosition](world)
	e1, _ := world.Create(qPosition{X: 1})
	e2, _ := world.Create(qPosition{X: 2})

	positions, err := Borrow[qPosition](world)
	if err != nil {
		t.Fatalf("Borrow() error = %v", err)
	}
	defer positions.Release()

	q := Query1[qPosition](positions)

	seen := map[Entity]float64{}
	q.ForEach(func(e Entity, p *qPosition) {
		seen[e] = p.X
	})
	if len(seen) != 2 {
		t.Fatalf("ForEach() visited %d entities, want 2", len(seen))
	}
	if seen[e1] != 1 || seen[e2] != 2 {
		t.Errorf("ForEach() values = %v, want {e1:1 e2:2}", seen)
	}

	if _, ok := q.Get(e1); !ok {
		t.Error("Get() ok = false for a known entity")
	}
}

func TestQuery2GetRequiresBothComponents(t *testing.T) {
	world := NewWorldBuilder().Build()
	Register[qPosition](world)
	Register[qVelocity](world)
	both, _ := world.Create(qPosition{X: 1}, qVelocity{X: 2})
	onlyPos, _ := world.Create(qPosition{X: 3})

	positions, _ := Borrow[qPosition](world)
	velocities, _ := Borrow[qVelocity](world)
	defer positions.Release()
	defer velocities.Release()

	q := Query2[qPosition, qVelocity](positions, velocities)

	if _, _, ok := q.Get(both); !ok {
		t.Error("Get() ok = false for an entity with both components")
	}
	if _, _, ok := q.Get(onlyPos); ok {
		t.Error("Get() ok = true for an entity missing the velocity component")
	}

	count := 0
	q.ForEach(func(e Entity, p *qPosition, v *qVelocity) { count++ })
	if count != 1 {
		t.Errorf("ForEach() visited %d entities, want 1", count)
	}
}

func TestQueryExclude(t *testing.T) {
	world := NewWorldBuilder().Build()
	Register[qPosition](world)
	Register[qVelocity](world)
	withVel, _ := world.Create(qPosition{X: 1}, qVelocity{})
	withoutVel, _ := world.Create(qPosition{X: 2})

	positions, _ := Borrow[qPosition](world)
	velocities, _ := Borrow[qVelocity](world)
	defer positions.Release()
	defer velocities.Release()

	q := Query1[qPosition](positions).Exclude(velocities)

	if q.Contains(withVel) {
		t.Error("Contains() = true for an entity holding the excluded component")
	}
	if !q.Contains(withoutVel) {
		t.Error("Contains() = false for an entity lacking the excluded component")
	}
}

func TestQueryInclude(t *testing.T) {
	world := NewWorldBuilder().Build()
	Register[qPosition](world)
	Register[qTag](world)
	tagged, _ := world.Create(qPosition{X: 1}, qTag{})
	untagged, _ := world.Create(qPosition{X: 2})

	positions, _ := Borrow[qPosition](world)
	tags, _ := Borrow[qTag](world)
	defer positions.Release()
	defer tags.Release()

	q := Query1[qPosition](positions).Include(tags)

	if !q.Contains(tagged) {
		t.Error("Contains() = false for an entity holding the required include component")
	}
	if q.Contains(untagged) {
		t.Error("Contains() = true for an entity missing the required include component")
	}
}

func TestQuery0ExistenceOnly(t *testing.T) {
	world := NewWorldBuilder().Build()
	Register[qTag](world)
	Register[qPosition](world)
	tagged, _ := world.Create(qTag{})
	untagged, _ := world.Create(qPosition{})

	tags, _ := Borrow[qTag](world)
	defer tags.Release()

	q := Query0().Include(tags)

	if !q.Contains(tagged) {
		t.Error("Contains() = false for a tagged entity")
	}
	if q.Contains(untagged) {
		t.Error("Contains() = true for an untagged entity")
	}

	count := 0
	q.ForEach(func(Entity) { count++ })
	if count != 1 {
		t.Errorf("ForEach() visited %d entities, want 1", count)
	}
}

func TestQueryChangeTickFilter(t *testing.T) {
	world := NewWorldBuilder().Build()
	Register[qPosition](world)
	e, _ := world.Create(qPosition{X: 1})
	world.Tick()
	world.SetLastSystemTick(0)

	positions, err := BorrowMut[qPosition](world)
	if err != nil {
		t.Fatalf("BorrowMut() error = %v", err)
	}
	pos, _ := positions.GetMut(e)
	pos.X = 99
	positions.Release()

	readOnly, err := Borrow[qPosition](world)
	if err != nil {
		t.Fatalf("Borrow() error = %v", err)
	}
	defer readOnly.Release()

	mutated := FilterOn[qPosition](readOnly, Mutated)
	q := Query1[qPosition](readOnly).Filter(mutated)

	if !q.Contains(e) {
		t.Error("Contains() = false for an entity mutated after lastSystemTick")
	}
}

func TestQueryDenseRangeOverGroupedStorage(t *testing.T) {
	layout := NewLayoutBuilder().
		AddGroup(ComponentInfoOf[qPosition](), ComponentInfoOf[qVelocity]()).
		Build()
	world := NewWorldBuilder().SetLayout(layout).Build()

	e1, _ := world.Create(qPosition{X: 1}, qVelocity{X: 10})
	e2, _ := world.Create(qPosition{X: 2}, qVelocity{X: 20})
	world.Create(qPosition{X: 3}) // ungrouped: missing velocity

	positions, _ := Borrow[qPosition](world)
	velocities, _ := Borrow[qVelocity](world)
	defer positions.Release()
	defer velocities.Release()

	q := Query2[qPosition, qVelocity](positions, velocities)

	entities, ok := q.AsEntitySlice()
	if !ok {
		t.Fatal("AsEntitySlice() ok = false for a fully grouped query")
	}
	if len(entities) != 2 {
		t.Fatalf("AsEntitySlice() len = %d, want 2", len(entities))
	}

	seen := map[Entity]bool{}
	for _, e := range entities {
		seen[e] = true
	}
	if !seen[e1] || !seen[e2] {
		t.Errorf("AsEntitySlice() = %v, want both grouped entities", entities)
	}
}

func TestQueryDenseRangeNestedExcludeGroup(t *testing.T) {
	a := ComponentInfoOf[qPosition]()
	b := ComponentInfoOf[qVelocity]()
	c := ComponentInfoOf[qCompC]()
	d := ComponentInfoOf[qCompD]()

	// (A,B) nested inside (A,B,C,D): querying get=(A,B) exclude=(C,D)
	// must resolve to the dense range [wider.Len(), narrow.Len()), the
	// slice of entities satisfying the narrow group but not the wider one.
	layout := NewLayoutBuilder().
		AddGroup(a, b, c, d).
		AddGroup(a, b).
		Build()
	world := NewWorldBuilder().SetLayout(layout).Build()

	narrow1, _ := world.Create(qPosition{X: 1}, qVelocity{X: 10})
	narrow2, _ := world.Create(qPosition{X: 2}, qVelocity{X: 20})
	world.Create(qPosition{X: 3}, qVelocity{X: 30}, qCompC{}, qCompD{})

	positions, _ := Borrow[qPosition](world)
	velocities, _ := Borrow[qVelocity](world)
	cs, _ := Borrow[qCompC](world)
	ds, _ := Borrow[qCompD](world)
	defer positions.Release()
	defer velocities.Release()
	defer cs.Release()
	defer ds.Release()

	q := Query2[qPosition, qVelocity](positions, velocities).Exclude(cs, ds)

	entities, ok := q.AsEntitySlice()
	if !ok {
		t.Fatal("AsEntitySlice() ok = false for a nested-exclude group range")
	}
	if len(entities) != 2 {
		t.Fatalf("AsEntitySlice() len = %d, want 2", len(entities))
	}

	seen := map[Entity]bool{}
	for _, e := range entities {
		seen[e] = true
	}
	if !seen[narrow1] || !seen[narrow2] {
		t.Errorf("AsEntitySlice() = %v, want both narrow-only entities", entities)
	}
}

func TestIterRangeOverFunc(t *testing.T) {
	world := NewWorldBuilder().Build()
	Register[qPosition](world)
	world.Create(qPosition{X: 1})
	world.Create(qPosition{X: 2})

	positions, _ := Borrow[qPosition](world)
	defer positions.Release()

	q := Query1[qPosition](positions)

	total := 0.0
	for _, p := range q.Iter() {
		total += p.X
	}
	if total != 3 {
		t.Errorf("Iter() summed to %v, want 3", total)
	}
}
