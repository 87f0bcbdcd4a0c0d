package sparsity

// BorrowKind classifies how a system declares its intent to access a
// component type. A scheduler is an out-of-scope collaborator here: this
// package ships the declaration shape an external dispatcher would read,
// not the dispatcher itself.
type BorrowKind int

const (
	BorrowShared BorrowKind = iota
	BorrowExclusive
)

// BorrowDecl names one component type a system intends to borrow, and in
// which mode.
type BorrowDecl struct {
	Component ComponentInfo
	Kind      BorrowKind
}

// Conflicts reports whether a and b cannot be held concurrently: same
// component type with at least one side exclusive.
func (a BorrowDecl) Conflicts(b BorrowDecl) bool {
	if a.Component.ID() != b.Component.ID() {
		return false
	}
	return a.Kind == BorrowExclusive || b.Kind == BorrowExclusive
}

// ConflictsWithSet reports whether d conflicts with any declaration in set.
// A scheduler can run two systems concurrently iff neither system's set
// conflicts with the other's.
func (d BorrowDecl) ConflictsWithSet(set []BorrowDecl) bool {
	for _, other := range set {
		if d.Conflicts(other) {
			return true
		}
	}
	return false
}

// SetsConflict reports whether any declaration in a conflicts with any
// declaration in b.
func SetsConflict(a, b []BorrowDecl) bool {
	for _, d := range a {
		if d.ConflictsWithSet(b) {
			return true
		}
	}
	return false
}
