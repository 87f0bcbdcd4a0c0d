package sparsity

import "fmt"

// BorrowConflictError is returned (or, at a view constructor, panicked with)
// when a storage is requested in a mode incompatible with its outstanding
// borrows.
type BorrowConflictError struct {
	Component ComponentInfo
}

func (e BorrowConflictError) Error() string {
	return fmt.Sprintf("component %s is already borrowed in a conflicting mode", e.Component.name)
}

// StorageLockedError reports that a storage is currently locked. No World or
// CommandQueue operation in this package returns it: world mutations do not
// check outstanding borrows.
type StorageLockedError struct {
	Component ComponentInfo
}

func (e StorageLockedError) Error() string {
	return fmt.Sprintf("storage for %s is currently locked", e.Component.name)
}

// EntityExhaustedError is returned by the allocator when the 32-bit sparse
// index space has been fully allocated and no recycled slot is available.
type EntityExhaustedError struct{}

func (e EntityExhaustedError) Error() string {
	return "entity allocator exhausted the 32-bit index space"
}

// LayoutOverlapError is panicked at Layout build time when two groups have
// component sets that partially overlap (neither disjoint nor nested).
type LayoutOverlapError struct {
	A, B []ComponentInfo
}

func (e LayoutOverlapError) Error() string {
	return fmt.Sprintf("layout groups partially overlap: %v and %v", e.A, e.B)
}

// LayoutArityError is panicked at Layout build time when a group's arity
// falls outside [MinGroupArity, MaxGroupArity].
type LayoutArityError struct {
	Arity int
}

func (e LayoutArityError) Error() string {
	return fmt.Sprintf("group arity %d outside allowed range [%d, %d]", e.Arity, MinGroupArity, MaxGroupArity)
}

// MissingComponentTypeError is panicked when an operation refers to a
// component type that was never registered with the world.
type MissingComponentTypeError struct {
	Component ComponentInfo
}

func (e MissingComponentTypeError) Error() string {
	return fmt.Sprintf("component type %s is not registered with this world", e.Component.name)
}

// EntityNotLiveError is returned by component-level World operations
// (Append/InsertValue/RemoveInfo) given a stale or never-allocated handle;
// the operation makes no state change.
type EntityNotLiveError struct {
	Entity Entity
}

func (e EntityNotLiveError) Error() string {
	return fmt.Sprintf("entity %s is not live in this world", e.Entity)
}
