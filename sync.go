package sparsity

// SyncWorld exposes only the subset of World operations safe to call from
// multiple goroutines concurrently: shared component borrows and atomic
// entity reservation. Structural mutation (Create/Destroy/Append/Remove/
// Clear/Maintain) and exclusive borrows are deliberately not reachable
// through this type.
type SyncWorld struct {
	world *World
}

// Sync returns a SyncWorld wrapping w.
func (w *World) Sync() SyncWorld {
	return SyncWorld{world: w}
}

// CreateAtomic reserves an entity; see World.CreateAtomic.
func (s SyncWorld) CreateAtomic() (Entity, error) {
	return s.world.CreateAtomic()
}

// Contains reports whether e is live as of the last Maintain call.
func (s SyncWorld) Contains(e Entity) bool {
	return s.world.Contains(e)
}

// BorrowSync acquires a shared borrow of T's storage through a SyncWorld.
// Equivalent to Borrow[T], exposed under the sync-safe name for call sites
// that only hold a SyncWorld.
func BorrowSync[T any](s SyncWorld) (*Comp[T], error) {
	return Borrow[T](s.world)
}
