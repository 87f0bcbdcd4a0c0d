package sparsity

import "github.com/TheBitDrifter/mask"

// GroupStatus classifies an entity's relationship to a single group during
// the grouping/ungrouping walk.
type GroupStatus int

const (
	// GroupIncomplete means the entity is missing at least one component
	// required by the group (or by a narrower group in the same family);
	// no wider group in the family can be satisfied either, so the walk
	// stops.
	GroupIncomplete GroupStatus = iota
	// GroupUngrouped means the entity holds every component the group
	// requires but has not yet been swapped into the group's dense
	// prefix.
	GroupUngrouped
	// GroupGrouped means the entity already occupies a position below
	// the group's len.
	GroupGrouped
)

// Group is a contiguous prefix of dense positions shared across the
// storages in storageRange() within a family.
type Group struct {
	begin    int
	newBegin int
	end      int
	len      int
}

// NewGroup constructs a Group over family-relative storage indices
// [begin, end), where [newBegin, end) is the slice contributed newly by
// this group (the narrower group in the same family already covers
// [begin, newBegin)).
func NewGroup(begin, newBegin, end int) *Group {
	return &Group{begin: begin, newBegin: newBegin, end: end}
}

// StorageRange returns the full span of storages this group covers.
func (g *Group) StorageRange() (begin, end int) { return g.begin, g.end }

// NewStorageRange returns the span of storages this group adds relative to
// the next-narrower group in its family.
func (g *Group) NewStorageRange() (begin, end int) { return g.newBegin, g.end }

// IncludeMask is the bitset of every storage this group covers,
// bits[begin:end] relative to the family's storage vector.
func (g *Group) IncludeMask() mask.Mask256 {
	var m mask.Mask256
	for i := g.begin; i < g.end; i++ {
		m.Mark(uint32(i))
	}
	return m
}

// ExcludeMask is the bitset of storages this group adds over the next
// narrower group, bits[newBegin:end].
func (g *Group) ExcludeMask() mask.Mask256 {
	var m mask.Mask256
	for i := g.newBegin; i < g.end; i++ {
		m.Mark(uint32(i))
	}
	return m
}

// Len reports how many dense positions at the front of storageRange() are
// currently grouped.
func (g *Group) Len() int { return g.len }

func (g *Group) clear() { g.len = 0 }

// getGroupStatus inspects entity e against the storages in
// storages[group.NewStorageRange()] (passed pre-sliced by the caller) plus
// groupLen, the group's current Len().
func getGroupStatus(newRangeStorages []abstractStorage, groupLen int, e Entity) GroupStatus {
	first := newRangeStorages[0]
	others := newRangeStorages[1:]

	idx, ok := first.indexOf(e)
	if !ok {
		return GroupIncomplete
	}

	status := GroupUngrouped
	if int(idx) < groupLen {
		status = GroupGrouped
	}

	for _, s := range others {
		if !s.containsEntity(e) {
			return GroupIncomplete
		}
	}
	return status
}

// groupComponents swaps e into the grouped prefix of the given full-range
// storages, incrementing *groupLen. e must currently be ungrouped there.
func groupComponents(rangeStorages []abstractStorage, groupLen *int, e Entity) {
	swapIndex := uint32(*groupLen)
	for _, s := range rangeStorages {
		idx, _ := s.indexOf(e)
		s.swapUnchecked(idx, swapIndex)
	}
	*groupLen++
}

// ungroupComponents swaps e out of the grouped prefix of the given
// full-range storages, decrementing *groupLen. e must currently be grouped
// there.
func ungroupComponents(rangeStorages []abstractStorage, groupLen *int, e Entity) {
	if *groupLen == 0 {
		return
	}
	*groupLen--
	swapIndex := uint32(*groupLen)
	for _, s := range rangeStorages {
		idx, _ := s.indexOf(e)
		s.swapUnchecked(idx, swapIndex)
	}
}

// groupFamily runs the grouping procedure for every entity in entities
// against every group in family, narrowest first, over the shared storages
// slice (indices are family-relative).
func groupFamily(family []*Group, storages []abstractStorage, entities []Entity) {
entityLoop:
	for _, e := range entities {
		for _, g := range family {
			nb, end := g.NewStorageRange()
			status := getGroupStatus(storages[nb:end], g.len, e)

			switch status {
			case GroupGrouped:
				continue
			case GroupUngrouped:
				b, _ := g.StorageRange()
				groupComponents(storages[b:end], &g.len, e)
			case GroupIncomplete:
				continue entityLoop
			}
		}
	}
}

// ungroupFamily runs the ungrouping procedure for every entity in entities,
// gated by groupMask: only groups whose bit is set in groupMask are
// unwound.
func ungroupFamily(family []*Group, storages []abstractStorage, groupMask mask.Mask256, entities []Entity) {
	for _, e := range entities {
		ungroupStart, ungroupLen := 0, 0

		for i, g := range family {
			nb, end := g.NewStorageRange()
			status := getGroupStatus(storages[nb:end], g.len, e)

			if status != GroupGrouped {
				break
			}
			if ungroupLen == 0 {
				ungroupStart = i
			}
			ungroupLen++
		}

		for i := ungroupStart + ungroupLen - 1; i >= ungroupStart; i-- {
			var bit mask.Mask256
			bit.Mark(uint32(i))
			if !groupMask.ContainsAll(bit) {
				break
			}
			g := family[i]
			b, end := g.StorageRange()
			ungroupComponents(storages[b:end], &g.len, e)
		}
	}
}
