package sparsity

import "github.com/TheBitDrifter/mask"

// GroupInfo is view-local metadata locating a storage within a family's
// groups: which family, which storage index within it, and the index of
// the group that first introduced this storage (its narrowest covering
// group). An ungrouped storage has no GroupInfo at all — a view over it
// carries none — represented here by the zero value's grouped flag being
// false.
type GroupInfo struct {
	grouped      bool
	family       *groupFamilyStorage
	storageIndex int
	groupIndex   int
}

// CombinedGroupInfo is the result of combining the GroupInfo of every
// get/include view and every exclude view of a query part.
//
// A naive "group_index = max across get + include + exclude" used for both
// the include-mask and exclude-mask comparisons produces no match for a
// group (A,B) nested inside (A,B,C,D) queried as get=(A,B) exclude=(C,D),
// even though a group-range of [wide.len, narrow.len) does exist for that
// case. This implementation instead anchors groupIndex on the get+include
// views alone (the "narrow" group the query actually asks for) and checks
// the exclude mask against the next wider group in the family, which
// handles nested-exclude cases like that correctly. Documented as an Open
// Question resolution in DESIGN.md.
type CombinedGroupInfo struct {
	family      *groupFamilyStorage
	includeMask mask.Mask256
	excludeMask mask.Mask256
	groupIndex  int
}

// CombineGroupInfo combines group info across a query part's get+include
// views and its exclude views. It fails (ok=false) if any view is
// ungrouped, if two views belong to different families, or if the part has
// no views at all — in every such case no group-range exists and the
// caller must fall back to sparse iteration.
func CombineGroupInfo(getAndInclude, exclude []GroupInfo) (CombinedGroupInfo, bool) {
	var family *groupFamilyStorage
	groupIndex := 0

	visit := func(gi GroupInfo, trackIndex bool) bool {
		if !gi.grouped {
			return false
		}
		if family == nil {
			family = gi.family
		} else if family != gi.family {
			return false
		}
		if trackIndex && gi.groupIndex > groupIndex {
			groupIndex = gi.groupIndex
		}
		return true
	}

	for _, gi := range getAndInclude {
		if !visit(gi, true) {
			return CombinedGroupInfo{}, false
		}
	}
	for _, gi := range exclude {
		if !visit(gi, false) {
			return CombinedGroupInfo{}, false
		}
	}
	if family == nil {
		// A part with no get/include/exclude views at all (the empty
		// tuple) has no group to range over.
		return CombinedGroupInfo{}, false
	}

	var includeMask, excludeMask mask.Mask256
	for _, gi := range getAndInclude {
		includeMask.Mark(uint32(gi.storageIndex))
	}
	for _, gi := range exclude {
		excludeMask.Mark(uint32(gi.storageIndex))
	}

	return CombinedGroupInfo{
		family:      family,
		includeMask: includeMask,
		excludeMask: excludeMask,
		groupIndex:  groupIndex,
	}, true
}

// Range computes the dense-iteration range this combined group info allows,
// if any; see the CombinedGroupInfo doc comment for the nested-exclude case
// this anchoring handles.
func (c CombinedGroupInfo) Range() (begin, end int, ok bool) {
	if c.family == nil || c.groupIndex >= len(c.family.groups) {
		return 0, 0, false
	}
	g := c.family.groups[c.groupIndex]
	if c.includeMask != g.IncludeMask() {
		return 0, 0, false
	}

	if c.excludeMask.IsEmpty() {
		return 0, g.Len(), true
	}

	widerIndex := c.groupIndex + 1
	if widerIndex >= len(c.family.groups) {
		return 0, 0, false
	}
	wider := c.family.groups[widerIndex]
	if c.excludeMask != wider.ExcludeMask() {
		return 0, 0, false
	}
	return wider.Len(), g.Len(), true
}
