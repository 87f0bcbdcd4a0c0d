/*
Package sparsity provides the storage and query core of a sparse-set
Entity-Component-System (ECS).

Unlike an archetype-based ECS, sparsity keeps one dense array per component
type instead of one table per unique component combination. Component types
that are declared together in a Layout are kept co-sorted (a "group"), so a
query over a grouped set of types degrades from a per-entity sparse lookup
to a contiguous slice scan. Types never declared together live ungrouped,
each in its own independently addressable dense array.

Core Concepts:

  - Entity: a generational handle (sparse index + version).
  - Component: plain data associated with an entity by type.
  - Storage: sparse array + dense entities + dense components + dense
    change-ticks for one component type.
  - Group: a contiguous dense-array prefix shared by several storages.
  - View: a borrow-guarded handle over one storage (Comp[T] / CompMut[T]).
  - Query: a composition of views with include/exclude/filter modifiers.

Basic Usage:

	type Position struct{ X, Y float64 }
	type Velocity struct{ X, Y float64 }

	layout := sparsity.NewLayoutBuilder().
		AddGroup(sparsity.ComponentInfoOf[Position](), sparsity.ComponentInfoOf[Velocity]()).
		Build()

	world := sparsity.NewWorldBuilder().SetLayout(layout).Build()

	e, _ := world.Create(Position{X: 1}, Velocity{X: 2})

	positions, _ := sparsity.BorrowMut[Position](world)
	velocities, _ := sparsity.Borrow[Velocity](world)
	defer positions.Release()
	defer velocities.Release()

	q := sparsity.Query2(positions, velocities)
	q.ForEach(func(entity sparsity.Entity, pos *Position, vel *Velocity) {
		pos.X += vel.X
		pos.Y += vel.Y
	})

sparsity is the storage core for a larger engine; the system scheduler that
runs many such queries in parallel, and the typed resource container, are
out of scope and consume only the borrow-declaration contract in schedule.go.
*/
package sparsity
