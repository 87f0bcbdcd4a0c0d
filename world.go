package sparsity

import "github.com/TheBitDrifter/bark"

// World owns every entity and every component storage (grouped and
// ungrouped), the world tick, and the configured event callbacks.
type World struct {
	allocator      entityAllocator
	entities       entitySparseSet
	layout         *Layout
	grouped        *GroupedStorageSet
	ungrouped      *UngroupedStorageMap
	guards         map[uint32]*borrowGuard
	worldTick      uint32
	lastSystemTick uint32
	events         WorldEvents
}

// WorldBuilder configures and constructs a World.
type WorldBuilder struct {
	layout *Layout
}

// NewWorldBuilder returns an empty builder.
func NewWorldBuilder() *WorldBuilder { return &WorldBuilder{} }

// SetLayout declares the grouped-storage families the built World will
// construct up front.
func (b *WorldBuilder) SetLayout(layout *Layout) *WorldBuilder {
	b.layout = layout
	return b
}

// Build constructs the World. Storages named by the layout are created now,
// as grouped slots; every other component type's storage is created lazily
// on first use.
func (b *WorldBuilder) Build() *World {
	layout := b.layout
	if layout == nil {
		layout = NewLayoutBuilder().Build()
	}
	grouped := NewGroupedStorageSet(layout, func(ci ComponentInfo) abstractStorage {
		return storageFactoryFor(ci)(ci)
	})
	return &World{
		layout:    layout,
		grouped:   grouped,
		ungrouped: NewUngroupedStorageMap(),
		guards:    make(map[uint32]*borrowGuard),
		events:    Config.WorldEvents(),
	}
}

// storageFor returns ci's storage, creating an ungrouped one on first use
// if ci names neither a grouped nor an already-created ungrouped type.
// Only ungrouped storages may be added after world construction. Used by
// write paths (insertValues, RemoveInfo, Remove, Register) where a
// never-before-seen component type is legitimately registered on first
// insert.
func (w *World) storageFor(ci ComponentInfo) abstractStorage {
	if s, ok := w.grouped.StorageFor(ci); ok {
		return s
	}
	return w.ungrouped.GetOrCreate(ci, storageFactoryFor(ci))
}

// existingStorageFor looks up ci's storage without creating one. Used by
// Borrow/BorrowMut so that a component type never named in a Layout and
// never inserted via Create/Append/Extend/Register correctly reports
// MissingComponentTypeError instead of silently vivifying an empty
// ungrouped storage for it.
func (w *World) existingStorageFor(ci ComponentInfo) (abstractStorage, bool) {
	if s, ok := w.grouped.StorageFor(ci); ok {
		return s, true
	}
	return w.ungrouped.StorageFor(ci)
}

func (w *World) guardFor(ci ComponentInfo) *borrowGuard {
	g, ok := w.guards[ci.ID()]
	if !ok {
		g = newBorrowGuard(ci)
		w.guards[ci.ID()] = g
	}
	return g
}

func (w *World) groupInfoFor(ci ComponentInfo) GroupInfo {
	info, ok := w.grouped.GroupInfoFor(ci)
	if !ok {
		return GroupInfo{}
	}
	return info
}

// Register adds an ungrouped storage for T if it is not already grouped or
// registered; a no-op otherwise.
func Register[T any](w *World) {
	w.storageFor(ComponentInfoOf[T]())
}

// doMaintain flushes atomic entity reservations into the live entity set.
// Called at the top of every exclusive structural operation (Create,
// Extend, Destroy) before that operation allocates further. Only ids
// claimed via allocateAtomic (CreateAtomic) are still outstanding here:
// allocate() advances lastID itself, so Create/Extend's own entities never
// resurface through maintain(). entitySparseSet.insert remains an upsert
// as a safety net against that atomic-reservation path, not because of any
// gap on the synchronous one.
func (w *World) doMaintain() {
	for _, e := range w.allocator.maintain() {
		w.entities.insert(e)
		if cb := w.events.OnEntityCreated; cb != nil {
			cb(e)
		}
	}
}

// Maintain is the public, explicit form of doMaintain, for callers that
// only create entities via CreateAtomic and need to flush reservations
// without otherwise mutating the world.
func (w *World) Maintain() { w.doMaintain() }

// CreateAtomic reserves an entity under concurrent, non-exclusive access.
// The entity is not visible to Contains/Len/any query until the next
// Maintain call.
func (w *World) CreateAtomic() (Entity, error) {
	return w.allocator.allocateAtomic()
}

func (w *World) insertValues(e Entity, values []any) []ComponentInfo {
	infos := make([]ComponentInfo, 0, len(values))
	for _, v := range values {
		ci, ok := componentInfoOfValue(v)
		if !ok {
			panic(bark.AddTrace(MissingComponentTypeError{}))
		}
		s := w.storageFor(ci)
		s.insertAny(e, v, w.worldTick)
		infos = append(infos, ci)
		if cb := w.events.OnComponentInserted; cb != nil {
			cb(e, ci)
		}
	}
	return infos
}

// Create allocates a new entity, inserts the given component values, and
// touches every family those components belong to.
func (w *World) Create(values ...any) (Entity, error) {
	w.doMaintain()

	e, err := w.allocator.allocate()
	if err != nil {
		return NilEntity, err
	}
	w.entities.insert(e)
	if cb := w.events.OnEntityCreated; cb != nil {
		cb(e)
	}

	infos := w.insertValues(e, values)
	w.grouped.TouchInserted(e, infos)
	return e, nil
}

// Extend bulk-creates one entity per tuple of component values, appending
// all entities to their storages before performing grouping once at the
// end. An empty call does no grouping work and returns an empty slice.
func (w *World) Extend(tuples ...[]any) ([]Entity, error) {
	if len(tuples) == 0 {
		return nil, nil
	}
	w.doMaintain()

	entities := make([]Entity, 0, len(tuples))
	var touched []ComponentInfo

	for _, values := range tuples {
		e, err := w.allocator.allocate()
		if err != nil {
			return entities, err
		}
		w.entities.insert(e)
		if cb := w.events.OnEntityCreated; cb != nil {
			cb(e)
		}
		touched = append(touched, w.insertValues(e, values)...)
		entities = append(entities, e)
	}

	w.grouped.TouchInsertedBatch(entities, touched)
	return entities, nil
}

// Append inserts component values into an already-live entity, touching
// every affected family. Returns EntityNotLiveError for a stale or unknown
// handle and makes no state change.
func (w *World) Append(e Entity, values ...any) error {
	if !w.entities.contains(e) {
		return EntityNotLiveError{Entity: e}
	}
	infos := w.insertValues(e, values)
	w.grouped.TouchInserted(e, infos)
	return nil
}

// InsertValue is the type-erased single-component form of Append, used by
// CommandQueue's deferred insert command.
func (w *World) InsertValue(e Entity, value any) error {
	return w.Append(e, value)
}

// RemoveInfo removes the component named by ci from e, ungrouping first if
// ci is grouped. Used by CommandQueue's deferred remove command, which
// only has a ComponentInfo (not a static T) to work with.
func (w *World) RemoveInfo(e Entity, ci ComponentInfo) error {
	if !w.entities.contains(e) {
		return EntityNotLiveError{Entity: e}
	}
	if w.grouped.Contains(ci) {
		w.grouped.TouchRemoved(e, []ComponentInfo{ci})
	}
	s := w.storageFor(ci)
	if s.removeEntity(e) {
		if cb := w.events.OnComponentRemoved; cb != nil {
			cb(e, ci)
		}
	}
	return nil
}

// Remove removes T from e, ungrouping first if T is grouped, and returns
// the removed value. Returns (zero, false) for a stale handle or an entity
// that does not currently hold T — in either case no state changes.
func Remove[T any](w *World, e Entity) (T, bool) {
	var zero T
	if !w.entities.contains(e) {
		return zero, false
	}
	ci := ComponentInfoOf[T]()
	if w.grouped.Contains(ci) {
		w.grouped.TouchRemoved(e, []ComponentInfo{ci})
	}
	storage := w.storageFor(ci)
	typed, ok := storage.(*componentStorage[T])
	if !ok {
		return zero, false
	}
	removed, found := typed.remove(e)
	if !found {
		return zero, false
	}
	if cb := w.events.OnComponentRemoved; cb != nil {
		cb(e, ci)
	}
	return removed, true
}

// Delete removes T from e like Remove, discarding the removed value.
func Delete[T any](w *World, e Entity) {
	Remove[T](w, e)
}

// Destroy ungroups e across every family, removes it from every storage,
// and frees its entity slot. Returns false for a stale or unknown handle,
// making no state change.
func (w *World) Destroy(e Entity) bool {
	w.doMaintain()

	if !w.entities.contains(e) {
		return false
	}

	if comps := w.grouped.ComponentsOf(e); len(comps) > 0 {
		w.grouped.TouchRemoved(e, comps)
	}
	w.grouped.RemoveEntity(e)
	w.ungrouped.RemoveEntity(e)
	w.entities.remove(e)
	w.allocator.deallocate(e)

	if cb := w.events.OnEntityDestroyed; cb != nil {
		cb(e)
	}
	return true
}

// Clear empties every storage and the entity set, resets every group's
// len, and resets the allocator. The world tick and the last-system tick
// keep their values.
func (w *World) Clear() {
	w.grouped.Clear()
	w.ungrouped.Clear()
	w.entities.clear()
	w.allocator.clear()
}

// Contains reports whether e is a currently-live entity.
func (w *World) Contains(e Entity) bool { return w.entities.contains(e) }

// Len returns the number of currently-live entities.
func (w *World) Len() int { return w.entities.len() }

// Entities returns every currently-live entity. The returned slice aliases
// internal storage and must not be mutated.
func (w *World) Entities() []Entity { return w.entities.asSlice() }

// Tick advances the world tick by one. Systems call this between frames;
// the new tick becomes the TickAdded/TickChanged value written by
// subsequent inserts and CompMut.GetMut calls. Ticks are plain, monotonically
// increasing uint32s; wrap-around after roughly four billion ticks is out
// of scope.
func (w *World) Tick() { w.worldTick++ }

// WorldTick returns the current world tick.
func (w *World) WorldTick() uint32 { return w.worldTick }

// SetLastSystemTick records the tick value Mutated/Changed filters compare
// against for views borrowed from this point on. In a full engine this
// would be set by a scheduler immediately before running each system;
// without a scheduler shipped here, callers set it directly.
func (w *World) SetLastSystemTick(t uint32) { w.lastSystemTick = t }

func (w *World) tickContext() tickContext {
	return tickContext{worldTick: w.worldTick, lastSystemTick: w.lastSystemTick}
}

// Borrow acquires a shared, runtime-checked borrow of T's storage. It
// fails if the storage is currently borrowed exclusively.
func Borrow[T any](w *World) (*Comp[T], error) {
	ci := ComponentInfoOf[T]()
	abstract, ok := w.existingStorageFor(ci)
	if !ok {
		panic(bark.AddTrace(MissingComponentTypeError{Component: ci}))
	}
	storage, ok := abstract.(*componentStorage[T])
	if !ok {
		panic(bark.AddTrace(MissingComponentTypeError{Component: ci}))
	}
	return newComp[T](storage, w.guardFor(ci), w.groupInfoFor(ci), w.tickContext())
}

// BorrowMut acquires the exclusive, runtime-checked borrow of T's storage.
// It fails if the storage is currently borrowed in any mode.
func BorrowMut[T any](w *World) (*CompMut[T], error) {
	ci := ComponentInfoOf[T]()
	abstract, ok := w.existingStorageFor(ci)
	if !ok {
		panic(bark.AddTrace(MissingComponentTypeError{Component: ci}))
	}
	storage, ok := abstract.(*componentStorage[T])
	if !ok {
		panic(bark.AddTrace(MissingComponentTypeError{Component: ci}))
	}
	return newCompMut[T](storage, w.guardFor(ci), w.groupInfoFor(ci), w.tickContext())
}

// ApplyCommands drains queue and applies every command against w in order,
// stopping at (and returning) the first error.
func (w *World) ApplyCommands(queue *CommandQueue) error {
	for _, cmd := range queue.drain() {
		if err := cmd.Apply(w); err != nil {
			return err
		}
	}
	return nil
}
