package sparsity

import "sync/atomic"

// borrowGuard is a non-blocking, panic-free reader/writer borrow tracker
// for a single storage: state 0 means free, state -1 means exclusively
// borrowed, and state n > 0 means n outstanding shared borrows.
// Acquiring a conflicting borrow fails immediately rather than waiting: a
// read-write lock with reference counting, not a blocking mutex.
type borrowGuard struct {
	state atomic.Int32
	ci    ComponentInfo
}

func newBorrowGuard(ci ComponentInfo) *borrowGuard {
	return &borrowGuard{ci: ci}
}

// acquireShared takes one shared borrow, failing if the storage is
// currently borrowed exclusively.
func (g *borrowGuard) acquireShared() error {
	for {
		s := g.state.Load()
		if s < 0 {
			return BorrowConflictError{Component: g.ci}
		}
		if g.state.CompareAndSwap(s, s+1) {
			return nil
		}
	}
}

func (g *borrowGuard) releaseShared() {
	g.state.Add(-1)
}

// acquireExclusive takes the exclusive borrow, failing if the storage is
// currently borrowed in any mode (shared or exclusive).
func (g *borrowGuard) acquireExclusive() error {
	if !g.state.CompareAndSwap(0, -1) {
		return BorrowConflictError{Component: g.ci}
	}
	return nil
}

func (g *borrowGuard) releaseExclusive() {
	g.state.Store(0)
}

// borrowed reports whether any shared or exclusive borrow is outstanding.
func (g *borrowGuard) borrowed() bool {
	return g.state.Load() != 0
}
