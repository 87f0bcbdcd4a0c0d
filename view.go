package sparsity

// tickContext carries the world tick at borrow time and the last tick the
// borrowing system observed, for change-tick filters.
type tickContext struct {
	worldTick      uint32
	lastSystemTick uint32
}

// Comp is a shared, borrow-guarded read view over a single component
// type's storage.
type Comp[T any] struct {
	storage *componentStorage[T]
	guard   *borrowGuard
	info    GroupInfo
	tickContext
}

func newComp[T any](storage *componentStorage[T], guard *borrowGuard, info GroupInfo, tc tickContext) (*Comp[T], error) {
	if err := guard.acquireShared(); err != nil {
		return nil, err
	}
	return &Comp[T]{storage: storage, guard: guard, info: info, tickContext: tc}, nil
}

// Release gives up this view's shared borrow. Callers must call Release
// exactly once per successfully acquired view.
func (c *Comp[T]) Release() { c.guard.releaseShared() }

func (c *Comp[T]) Get(e Entity) (*T, bool)  { return c.storage.get(e) }
func (c *Comp[T]) Contains(e Entity) bool   { return c.storage.containsEntity(e) }
func (c *Comp[T]) Len() int                 { return c.storage.len() }
func (c *Comp[T]) IsEmpty() bool            { return c.storage.len() == 0 }
func (c *Comp[T]) Components() []T          { return c.storage.components }
func (c *Comp[T]) Entities() []Entity       { return c.storage.entities }
func (c *Comp[T]) GroupInfo() GroupInfo     { return c.info }
func (c *Comp[T]) WorldTick() uint32        { return c.worldTick }
func (c *Comp[T]) LastSystemTick() uint32   { return c.lastSystemTick }

func (c *Comp[T]) split() (*sparseArray, []Entity, []T, []ChangeTicks) {
	return c.storage.split()
}

// Ticks returns e's change-ticks record, for change-tick filter predicates
// (filter.go).
func (c *Comp[T]) Ticks(e Entity) (ChangeTicks, bool) {
	_, ticks, ok := c.storage.getWithTicks(e)
	if !ok {
		return ChangeTicks{}, false
	}
	return *ticks, true
}

// CompMut is an exclusive, borrow-guarded read-write view over a single
// component type's storage.
//
// Go has no destructor to hook a write-time tick bump on. GetMut instead
// marks the component changed at the moment of access, trading a few false
// positives (a system that calls GetMut but doesn't actually write) for
// never missing a real mutation.
type CompMut[T any] struct {
	storage *componentStorage[T]
	guard   *borrowGuard
	info    GroupInfo
	tickContext
}

func newCompMut[T any](storage *componentStorage[T], guard *borrowGuard, info GroupInfo, tc tickContext) (*CompMut[T], error) {
	if err := guard.acquireExclusive(); err != nil {
		return nil, err
	}
	return &CompMut[T]{storage: storage, guard: guard, info: info, tickContext: tc}, nil
}

func (c *CompMut[T]) Release() { c.guard.releaseExclusive() }

func (c *CompMut[T]) Get(e Entity) (*T, bool) { return c.storage.get(e) }
func (c *CompMut[T]) Contains(e Entity) bool  { return c.storage.containsEntity(e) }
func (c *CompMut[T]) Len() int                { return c.storage.len() }
func (c *CompMut[T]) IsEmpty() bool           { return c.storage.len() == 0 }
func (c *CompMut[T]) Components() []T         { return c.storage.components }
func (c *CompMut[T]) Entities() []Entity      { return c.storage.entities }
func (c *CompMut[T]) GroupInfo() GroupInfo    { return c.info }
func (c *CompMut[T]) WorldTick() uint32       { return c.worldTick }
func (c *CompMut[T]) LastSystemTick() uint32  { return c.lastSystemTick }

// GetMut returns a pointer to e's component and marks it changed as of the
// current world tick.
func (c *CompMut[T]) GetMut(e Entity) (*T, bool) {
	ptr, ticks, ok := c.storage.getWithTicks(e)
	if !ok {
		return nil, false
	}
	ticks.TickChanged = c.worldTick
	return ptr, true
}

func (c *CompMut[T]) split() (*sparseArray, []Entity, []T, []ChangeTicks) {
	return c.storage.split()
}

// Ticks returns e's change-ticks record, for change-tick filter predicates
// (filter.go).
func (c *CompMut[T]) Ticks(e Entity) (ChangeTicks, bool) {
	_, ticks, ok := c.storage.getWithTicks(e)
	if !ok {
		return ChangeTicks{}, false
	}
	return *ticks, true
}
