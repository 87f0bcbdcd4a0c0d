package sparsity

// GetView is the typed-access role a query plays over one component
// storage: the "get" tuple positions, realized here instead of a single
// concrete type so that a query can mix *Comp[T] (shared) and *CompMut[T]
// (exclusive) views in the same tuple.
type GetView[T any] interface {
	Get(Entity) (*T, bool)
	Contains(Entity) bool
	Entities() []Entity
	Components() []T
	GroupInfo() GroupInfo
	WorldTick() uint32
	LastSystemTick() uint32
	Ticks(Entity) (ChangeTicks, bool)
}

var (
	_ GetView[int] = (*Comp[int])(nil)
	_ GetView[int] = (*CompMut[int])(nil)
)

// View is the type-erased role Include/Exclude modifiers accept: presence
// testing and entity enumeration are all a query needs from these views,
// never the underlying component value.
type View interface {
	Contains(Entity) bool
	Entities() []Entity
	GroupInfo() GroupInfo
}

var (
	_ View = (*Comp[int])(nil)
	_ View = (*CompMut[int])(nil)
)

// TickFilter binds a change-tick Filter predicate to the component whose
// ticks it inspects; a filter is always attached to a specific storage.
type TickFilter struct {
	filter   Filter
	ticksFor func(Entity) (ChangeTicks, bool)
}

// FilterOn builds a TickFilter testing f against view's per-entity change
// ticks. An entity missing the filtered component fails the filter.
func FilterOn[T any](view GetView[T], f Filter) TickFilter {
	return TickFilter{filter: f, ticksFor: view.Ticks}
}

// queryPart holds the composition state shared by every QueryN arity:
// the get views' group info/entities/containment, plus accumulated
// include/exclude views and change-tick filters — the arity-generic
// combinator core the generated Query0..QueryN wrap.
type queryPart struct {
	getInfos    []GroupInfo
	getEntities [][]Entity
	getContains []func(Entity) bool
	includes    []View
	excludes    []View
	filters     []TickFilter
	worldTick   uint32
	lastTick    uint32
}

func newQueryPart(getInfos []GroupInfo, getEntities [][]Entity, getContains []func(Entity) bool, worldTick, lastTick uint32) queryPart {
	return queryPart{
		getInfos:    getInfos,
		getEntities: getEntities,
		getContains: getContains,
		worldTick:   worldTick,
		lastTick:    lastTick,
	}
}

func (p *queryPart) include(views ...View) { p.includes = append(p.includes, views...) }
func (p *queryPart) exclude(views ...View) { p.excludes = append(p.excludes, views...) }
func (p *queryPart) addFilters(filters ...TickFilter) {
	p.filters = append(p.filters, filters...)
}

func viewGroupInfos(views []View) []GroupInfo {
	infos := make([]GroupInfo, len(views))
	for i, v := range views {
		infos[i] = v.GroupInfo()
	}
	return infos
}

func (p *queryPart) combinedGroupInfo() (CombinedGroupInfo, bool) {
	getAndInclude := make([]GroupInfo, 0, len(p.getInfos)+len(p.includes))
	getAndInclude = append(getAndInclude, p.getInfos...)
	getAndInclude = append(getAndInclude, viewGroupInfos(p.includes)...)
	return CombineGroupInfo(getAndInclude, viewGroupInfos(p.excludes))
}

// denseRange reports the dense-iteration range, if any, falling back to a
// sparse iterator otherwise: a group range must exist AND no change-tick
// filter may be present, since a filter can only be evaluated per-entity
// against a storage's ticks array.
func (p *queryPart) denseRange() (begin, end int, ok bool) {
	if len(p.filters) > 0 {
		return 0, 0, false
	}
	cgi, ok := p.combinedGroupInfo()
	if !ok {
		return 0, 0, false
	}
	return cgi.Range()
}

// shortestEntities returns the shortest candidate entity slice among the
// get and include views, the seed sequence for sparse iteration.
func (p *queryPart) shortestEntities() []Entity {
	var shortest []Entity
	for _, es := range p.getEntities {
		if shortest == nil || len(es) < len(shortest) {
			shortest = es
		}
	}
	for _, v := range p.includes {
		es := v.Entities()
		if shortest == nil || len(es) < len(shortest) {
			shortest = es
		}
	}
	return shortest
}

// passes tests e against every exclude view (must be absent), every
// include view (must be present), every get view's own storage (must be
// present — only relevant when e came from a shorter include/get slice
// than some other get view), and every change-tick filter.
func (p *queryPart) passes(e Entity) bool {
	for _, v := range p.excludes {
		if v.Contains(e) {
			return false
		}
	}
	for _, v := range p.includes {
		if !v.Contains(e) {
			return false
		}
	}
	for _, contains := range p.getContains {
		if !contains(e) {
			return false
		}
	}
	for _, f := range p.filters {
		ticks, ok := f.ticksFor(e)
		if !ok || !f.filter(ticks, p.worldTick, p.lastTick) {
			return false
		}
	}
	return true
}
