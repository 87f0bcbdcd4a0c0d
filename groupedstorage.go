package sparsity

import "github.com/TheBitDrifter/mask"

// groupLocation records where a grouped component type lives: which
// family, which family-relative storage index, and which group first
// introduced it (the narrowest group whose new-storage range covers that
// storage index).
type groupLocation struct {
	familyIndex  int
	storageIndex int
	groupIndex   int
}

// groupFamilyStorage is one family: its storages in narrowest-to-widest
// declaration order, and the Group descriptors over them.
type groupFamilyStorage struct {
	storages []abstractStorage
	groups   []*Group
}

// groupRemovalMask is the union, across every group from g.groupIndex up to
// the family's widest group, of bits set — used to gate ungroupFamily so
// that removing a component unwinds every group built on top of it.
func groupRemovalMask(groupIndex, groupCount int) mask.Mask256 {
	var m mask.Mask256
	for i := groupIndex; i < groupCount; i++ {
		m.Mark(uint32(i))
	}
	return m
}

// GroupedStorageSet holds every component storage that participates in a
// Layout's families, plus the bookkeeping needed to keep their dense
// prefixes co-sorted.
type GroupedStorageSet struct {
	families []*groupFamilyStorage
	location map[uint32]groupLocation
}

// NewGroupedStorageSet builds the family storages described by layout,
// using makeStorage to construct the concrete componentStorage[T] for each
// ComponentInfo (the set itself is type-erased, see storage.go's
// abstractStorage).
func NewGroupedStorageSet(layout *Layout, makeStorage func(ComponentInfo) abstractStorage) *GroupedStorageSet {
	gss := &GroupedStorageSet{location: make(map[uint32]groupLocation)}

	for fi, fam := range layout.familySlice() {
		comps := fam.Components()
		arities := fam.Arities()

		storages := make([]abstractStorage, len(comps))
		for si, ci := range comps {
			storages[si] = makeStorage(ci)
		}

		groups := make([]*Group, len(arities))
		newBegin := 0
		for gi, end := range arities {
			groups[gi] = NewGroup(0, newBegin, end)
			newBegin = end
		}

		gss.families = append(gss.families, &groupFamilyStorage{storages: storages, groups: groups})

		groupIndex := 0
		for si, ci := range comps {
			for groupIndex < len(arities) && si >= arities[groupIndex] {
				groupIndex++
			}
			gss.location[ci.ID()] = groupLocation{familyIndex: fi, storageIndex: si, groupIndex: groupIndex}
		}
	}
	return gss
}

// Contains reports whether ci is one of this set's grouped component types.
func (gss *GroupedStorageSet) Contains(ci ComponentInfo) bool {
	_, ok := gss.location[ci.ID()]
	return ok
}

// StorageFor returns the type-erased storage backing ci, if ci is grouped.
func (gss *GroupedStorageSet) StorageFor(ci ComponentInfo) (abstractStorage, bool) {
	loc, ok := gss.location[ci.ID()]
	if !ok {
		return nil, false
	}
	return gss.families[loc.familyIndex].storages[loc.storageIndex], true
}

// GroupInfoFor returns the view-local group info for ci: the family, this
// storage's index within it, and the index of the group that first
// introduced it.
func (gss *GroupedStorageSet) GroupInfoFor(ci ComponentInfo) (GroupInfo, bool) {
	loc, ok := gss.location[ci.ID()]
	if !ok {
		return GroupInfo{}, false
	}
	return GroupInfo{
		grouped:      true,
		family:       gss.families[loc.familyIndex],
		storageIndex: loc.storageIndex,
		groupIndex:   loc.groupIndex,
	}, true
}

// TouchInserted notifies every family touched by inserting components into
// e (identified by the ComponentInfo of each inserted component) that e may
// now satisfy one or more of their groups. Per family, every group is
// tried narrowest first.
func (gss *GroupedStorageSet) TouchInserted(e Entity, inserted []ComponentInfo) {
	touched := gss.touchedFamilies(inserted)
	for fi := range touched {
		fam := gss.families[fi]
		groupFamily(fam.groups, fam.storages, []Entity{e})
	}
}

// TouchRemoved notifies every family touched by removing components from e
// that e must be unwound from any group depending on one of those
// components. Must be called BEFORE the components are actually removed
// from their storages.
func (gss *GroupedStorageSet) TouchRemoved(e Entity, removed []ComponentInfo) {
	// groupRemovalMask(g, groupCount) is always the suffix range [g,
	// groupCount); the union of several such suffixes within one family is
	// just the suffix starting at the smallest g among them, so tracking
	// the minimum group index per family is sufficient (no bitset union
	// needed).
	minGroupIndex := make(map[int]int)
	for _, ci := range removed {
		loc, ok := gss.location[ci.ID()]
		if !ok {
			continue
		}
		if cur, ok := minGroupIndex[loc.familyIndex]; !ok || loc.groupIndex < cur {
			minGroupIndex[loc.familyIndex] = loc.groupIndex
		}
	}
	for fi, gi := range minGroupIndex {
		fam := gss.families[fi]
		ungroupFamily(fam.groups, fam.storages, groupRemovalMask(gi, len(fam.groups)), []Entity{e})
	}
}

// TouchInsertedBatch is the batch form of TouchInserted used by
// World.Extend: every newly-created entity is handed to groupFamily once
// per touched family, in a single pass, rather than once per entity —
// borrowing each storage once, appending all entities, then grouping in a
// single pass at the end. Entities that are missing a family's required
// components simply stop at GroupIncomplete inside groupFamily; passing the
// full batch to every touched family is safe and avoids pre-filtering per
// entity.
func (gss *GroupedStorageSet) TouchInsertedBatch(entities []Entity, touchedComponents []ComponentInfo) {
	touched := gss.touchedFamilies(touchedComponents)
	for fi := range touched {
		fam := gss.families[fi]
		groupFamily(fam.groups, fam.storages, entities)
	}
}

// ComponentsOf returns every grouped ComponentInfo that e currently holds,
// across every family. Used by World.Destroy to compute the full removal
// set before unwinding an entity from its groups.
func (gss *GroupedStorageSet) ComponentsOf(e Entity) []ComponentInfo {
	var infos []ComponentInfo
	for _, fam := range gss.families {
		for _, s := range fam.storages {
			if s.containsEntity(e) {
				infos = append(infos, s.info())
			}
		}
	}
	return infos
}

func (gss *GroupedStorageSet) touchedFamilies(components []ComponentInfo) map[int]struct{} {
	touched := make(map[int]struct{})
	for _, ci := range components {
		if loc, ok := gss.location[ci.ID()]; ok {
			touched[loc.familyIndex] = struct{}{}
		}
	}
	return touched
}

// RemoveEntity removes e from every storage across every family
// unconditionally. Callers must ungroup first (TouchRemoved) so that group
// lens stay consistent; this method does not touch group bookkeeping.
func (gss *GroupedStorageSet) RemoveEntity(e Entity) {
	for _, fam := range gss.families {
		for _, s := range fam.storages {
			s.removeEntity(e)
		}
	}
}

// Clear empties every storage and resets every group's len to zero.
func (gss *GroupedStorageSet) Clear() {
	for _, fam := range gss.families {
		for _, s := range fam.storages {
			s.clear()
		}
		for _, g := range fam.groups {
			g.clear()
		}
	}
}
