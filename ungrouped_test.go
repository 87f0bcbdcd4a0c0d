package sparsity

import "testing"

type ungroupedTestComp struct{ V int }

func TestUngroupedStorageMapGetOrCreate(t *testing.T) {
	m := NewUngroupedStorageMap()
	ci := ComponentInfoOf[ungroupedTestComp]()

	if m.Contains(ci) {
		t.Fatal("Contains() = true before any storage was created")
	}

	first := m.GetOrCreate(ci, func(ci ComponentInfo) abstractStorage {
		return newComponentStorage[ungroupedTestComp](ci)
	})
	second := m.GetOrCreate(ci, func(ComponentInfo) abstractStorage {
		t.Fatal("makeStorage called on second GetOrCreate for the same type")
		return nil
	})
	if first != second {
		t.Error("GetOrCreate() returned a different storage on the second call")
	}
	if !m.Contains(ci) {
		t.Error("Contains() = false after GetOrCreate")
	}
}

func TestUngroupedStorageMapRemoveEntityAndClear(t *testing.T) {
	m := NewUngroupedStorageMap()
	ci := ComponentInfoOf[ungroupedTestComp]()
	storage := m.GetOrCreate(ci, func(ci ComponentInfo) abstractStorage {
		return newComponentStorage[ungroupedTestComp](ci)
	}).(*componentStorage[ungroupedTestComp])

	e := newEntity(1, 1)
	storage.insert(e, ungroupedTestComp{V: 1}, ChangeTicks{})

	m.RemoveEntity(e)
	if storage.containsEntity(e) {
		t.Error("RemoveEntity() left the entity in its storage")
	}

	storage.insert(e, ungroupedTestComp{V: 2}, ChangeTicks{})
	m.Clear()
	if storage.len() != 0 {
		t.Error("Clear() did not empty the storage")
	}
}
