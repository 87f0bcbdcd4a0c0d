package sparsity

// pageSize is the number of slots per lazily-allocated sparse-array page.
const pageSize = 64

type sparsePage = [pageSize]denseEntity

// sparseArray maps entity sparse indexes to dense indexes through a page
// table. An absent page is logically "all none"; pages are allocated lazily
// on first write. get/contains version-check against the stored
// denseEntity so a stale handle never resolves.
type sparseArray struct {
	pages []*sparsePage
}

func pageIndex(sparseIndex uint32) int { return int(sparseIndex) / pageSize }
func localIndex(sparseIndex uint32) int { return int(sparseIndex) % pageSize }

// get returns the dense index mapped to entity, if any and if the stored
// version matches.
func (a *sparseArray) get(e Entity) (uint32, bool) {
	pi := pageIndex(e.Index())
	if pi >= len(a.pages) || a.pages[pi] == nil {
		return 0, false
	}
	slot := a.pages[pi][localIndex(e.Index())]
	if slot.Version() != e.Version() || !slot.Valid() {
		return 0, false
	}
	return slot.dense(), true
}

// contains reports whether the array holds a version-matching entry for e.
func (a *sparseArray) contains(e Entity) bool {
	_, ok := a.get(e)
	return ok
}

// slotAt returns a pointer to the slot holding sparseIndex, allocating the
// backing page if necessary.
func (a *sparseArray) slotAt(sparseIndex uint32) *denseEntity {
	pi := pageIndex(sparseIndex)
	if pi >= len(a.pages) {
		grown := make([]*sparsePage, pi+1)
		copy(grown, a.pages)
		a.pages = grown
	}
	if a.pages[pi] == nil {
		a.pages[pi] = &sparsePage{}
	}
	return &a.pages[pi][localIndex(sparseIndex)]
}

// insertAt writes a dense-entity mapping for sparseIndex, allocating pages
// as needed.
func (a *sparseArray) insertAt(sparseIndex uint32, dense denseEntity) {
	*a.slotAt(sparseIndex) = dense
}

// remove clears the slot for e and returns the dense index that was
// vacated. It does NOT rewrite the slot of whichever entity gets
// swapped into that dense index; callers fix that up.
func (a *sparseArray) remove(e Entity) (uint32, bool) {
	pi := pageIndex(e.Index())
	if pi >= len(a.pages) || a.pages[pi] == nil {
		return 0, false
	}
	slot := &a.pages[pi][localIndex(e.Index())]
	if slot.Version() != e.Version() || !slot.Valid() {
		return 0, false
	}
	dense := slot.dense()
	*slot = NilEntity
	return dense, true
}

// swapNonoverlapping exchanges the two sparse slots that map to dense
// positions a and b. Both slots must already exist (callers only call this
// for sparse indexes that are currently mapped).
func (a *sparseArray) swapNonoverlapping(sparseA, sparseB uint32) {
	pa := a.slotAt(sparseA)
	pb := a.slotAt(sparseB)
	*pa, *pb = *pb, *pa
}

// clear removes every entry from the array without releasing page memory.
func (a *sparseArray) clear() {
	for i := range a.pages {
		a.pages[i] = nil
	}
}
