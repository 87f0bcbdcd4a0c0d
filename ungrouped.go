package sparsity

// UngroupedStorageMap holds every component storage not named in any
// Layout family: each lives in its own independently addressable dense
// array with no co-sorting obligation, split out from GroupedStorageSet
// since the two containers have disjoint responsibilities (ungrouped
// storages never run groupFamily/ungroupFamily).
type UngroupedStorageMap struct {
	storages map[uint32]abstractStorage
}

// NewUngroupedStorageMap returns an empty map.
func NewUngroupedStorageMap() *UngroupedStorageMap {
	return &UngroupedStorageMap{storages: make(map[uint32]abstractStorage)}
}

func (m *UngroupedStorageMap) Contains(ci ComponentInfo) bool {
	_, ok := m.storages[ci.ID()]
	return ok
}

func (m *UngroupedStorageMap) StorageFor(ci ComponentInfo) (abstractStorage, bool) {
	s, ok := m.storages[ci.ID()]
	return s, ok
}

// GetOrCreate returns the existing storage for ci, constructing one via
// makeStorage on first use.
func (m *UngroupedStorageMap) GetOrCreate(ci ComponentInfo, makeStorage func(ComponentInfo) abstractStorage) abstractStorage {
	if s, ok := m.storages[ci.ID()]; ok {
		return s
	}
	s := makeStorage(ci)
	m.storages[ci.ID()] = s
	return s
}

func (m *UngroupedStorageMap) RemoveEntity(e Entity) {
	for _, s := range m.storages {
		s.removeEntity(e)
	}
}

func (m *UngroupedStorageMap) Clear() {
	for _, s := range m.storages {
		s.clear()
	}
}
