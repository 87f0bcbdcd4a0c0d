package sparsity

import (
	"fmt"
	"reflect"
	"sync"
)

// MaxComponentTypes bounds how many distinct component types a process may
// register. It sizes the backing Cache and, transitively, the widest mask
// any Layout or query can address.
const MaxComponentTypes = 256

// ComponentInfo identifies a component type. Identity is established via
// reflect.Type plus a small, stable registration-order integer id used to
// position the type's bit within group/query masks.
type ComponentInfo struct {
	typ  reflect.Type
	id   uint32
	name string
}

// Type returns the reflect.Type this ComponentInfo identifies.
func (ci ComponentInfo) Type() reflect.Type { return ci.typ }

// ID returns the registration-order id used as a mask bit position.
func (ci ComponentInfo) ID() uint32 { return ci.id }

func (ci ComponentInfo) String() string { return ci.name }

// componentRegistry assigns stable integer ids to component types in
// registration order, process-wide, backed by a Cache[ComponentInfo]
// (see cache.go). Kept process-global rather than per-World since
// ComponentInfo is a value type shared across any number of worlds.
type componentRegistry struct {
	mu        sync.Mutex
	cache     Cache[ComponentInfo]
	types     map[reflect.Type]string
	factories map[uint32]func(ComponentInfo) abstractStorage
}

var globalComponents = componentRegistry{
	cache:     NewSimpleCache[ComponentInfo](MaxComponentTypes),
	types:     make(map[reflect.Type]string),
	factories: make(map[uint32]func(ComponentInfo) abstractStorage),
}

// ComponentInfoOf returns the stable ComponentInfo for T, registering it on
// first use.
func ComponentInfoOf[T any]() ComponentInfo {
	var zero T
	typ := reflect.TypeOf(zero)
	if typ == nil {
		typ = reflect.TypeOf((*T)(nil)).Elem()
	}

	globalComponents.mu.Lock()
	defer globalComponents.mu.Unlock()

	name, seen := globalComponents.types[typ]
	if !seen {
		name = fmt.Sprintf("%s", typ)
		globalComponents.types[typ] = name
	}

	if idx, ok := globalComponents.cache.GetIndex(name); ok {
		return *globalComponents.cache.GetItem(idx)
	}

	ci := ComponentInfo{typ: typ, name: name}
	idx, err := globalComponents.cache.Register(name, ci)
	if err != nil {
		panic(err)
	}
	ci.id = uint32(idx)
	*globalComponents.cache.GetItem(idx) = ci
	globalComponents.factories[ci.id] = func(ci ComponentInfo) abstractStorage {
		return newComponentStorage[T](ci)
	}
	return ci
}

// componentInfoOfValue looks up the ComponentInfo matching value's runtime
// type, for the type-erased insertion paths (World.Create/Append/
// CommandQueue). Unlike ComponentInfoOf[T], it cannot register a previously
// unseen type (there is no static T to build a storage factory from), so it
// reports ok=false for any type that was never named in a ComponentInfoOf[T]
// call — e.g. via a Layout's AddGroup or an explicit Register[T](world).
func componentInfoOfValue(value any) (ComponentInfo, bool) {
	typ := reflect.TypeOf(value)

	globalComponents.mu.Lock()
	defer globalComponents.mu.Unlock()

	name, ok := globalComponents.types[typ]
	if !ok {
		return ComponentInfo{}, false
	}
	idx, ok := globalComponents.cache.GetIndex(name)
	if !ok {
		return ComponentInfo{}, false
	}
	return *globalComponents.cache.GetItem(idx), true
}

// storageFactoryFor returns the constructor that builds the correctly-typed
// componentStorage[T] for ci, registered the first time ComponentInfoOf[T]
// ran. World uses this to materialize storages for component types named by
// a Layout without ever needing T itself in hand.
func storageFactoryFor(ci ComponentInfo) func(ComponentInfo) abstractStorage {
	globalComponents.mu.Lock()
	defer globalComponents.mu.Unlock()
	return globalComponents.factories[ci.id]
}
