package sparsity

// Query0 is the empty-tuple query part: no Get views, only Include/Exclude
// presence tests and change-tick filters. It iterates no components
// directly but still composes as a valid existence check over its
// Include/Exclude predicates.
type query0 struct {
	part queryPart
}

// Query0 builds an empty-tuple query. Useful on its own as "does an entity
// exist satisfying these include/exclude/filter predicates", or as the
// starting point for Include/Exclude/Filter chaining before iterating.
func Query0() *query0 {
	return &query0{part: newQueryPart(nil, nil, nil, 0, 0)}
}

func (q *query0) Include(views ...View) *query0  { q.part.include(views...); return q }
func (q *query0) Exclude(views ...View) *query0  { q.part.exclude(views...); return q }
func (q *query0) Filter(f ...TickFilter) *query0 { q.part.addFilters(f...); return q }

// Contains reports whether e satisfies every include/exclude/filter
// predicate.
func (q *query0) Contains(e Entity) bool { return q.part.passes(e) }

// ForEach calls fn for every entity satisfying this query's predicates.
func (q *query0) ForEach(fn func(Entity)) {
	if begin, end, ok := q.part.denseRange(); ok {
		entities := q.part.includes[0].Entities()
		for i := begin; i < end; i++ {
			fn(entities[i])
		}
		return
	}
	for _, e := range q.part.shortestEntities() {
		if q.part.passes(e) {
			fn(e)
		}
	}
}

// AsEntitySlice returns the dense entity range this query covers, if a
// group range exists.
func (q *query0) AsEntitySlice() ([]Entity, bool) {
	begin, end, ok := q.part.denseRange()
	if !ok || len(q.part.includes) == 0 {
		return nil, false
	}
	return q.part.includes[0].Entities()[begin:end], true
}

// query1 is a one-component-get query part.
type query1[T1 any] struct {
	v1   GetView[T1]
	part queryPart
}

// Query1 builds a query over a single Get view.
func Query1[T1 any](v1 GetView[T1]) *query1[T1] {
	return &query1[T1]{
		v1: v1,
		part: newQueryPart(
			[]GroupInfo{v1.GroupInfo()},
			[][]Entity{v1.Entities()},
			[]func(Entity) bool{v1.Contains},
			v1.WorldTick(), v1.LastSystemTick(),
		),
	}
}

func (q *query1[T1]) Include(views ...View) *query1[T1]  { q.part.include(views...); return q }
func (q *query1[T1]) Exclude(views ...View) *query1[T1]  { q.part.exclude(views...); return q }
func (q *query1[T1]) Filter(f ...TickFilter) *query1[T1] { q.part.addFilters(f...); return q }

func (q *query1[T1]) Get(e Entity) (*T1, bool) {
	if !q.part.passes(e) {
		return nil, false
	}
	return q.v1.Get(e)
}

func (q *query1[T1]) Contains(e Entity) bool {
	_, ok := q.Get(e)
	return ok
}

func (q *query1[T1]) ForEach(fn func(Entity, *T1)) {
	if begin, end, ok := q.part.denseRange(); ok {
		entities := q.v1.Entities()
		c1 := q.v1.Components()
		for i := begin; i < end; i++ {
			fn(entities[i], &c1[i])
		}
		return
	}
	for _, e := range q.part.shortestEntities() {
		if p1, ok := q.Get(e); ok {
			fn(e, p1)
		}
	}
}

func (q *query1[T1]) AsEntitySlice() ([]Entity, bool) {
	begin, end, ok := q.part.denseRange()
	if !ok {
		return nil, false
	}
	return q.v1.Entities()[begin:end], true
}

func (q *query1[T1]) AsComponentSlices() ([]T1, bool) {
	begin, end, ok := q.part.denseRange()
	if !ok {
		return nil, false
	}
	return q.v1.Components()[begin:end], true
}

// query2 is a two-component-get query part.
type query2[T1, T2 any] struct {
	g1   GetView[T1]
	g2   GetView[T2]
	part queryPart
}

// Query2 builds a query over two Get views.
func Query2[T1, T2 any](v1 GetView[T1], v2 GetView[T2]) *query2[T1, T2] {
	return &query2[T1, T2]{
		g1: v1, g2: v2,
		part: newQueryPart(
			[]GroupInfo{v1.GroupInfo(), v2.GroupInfo()},
			[][]Entity{v1.Entities(), v2.Entities()},
			[]func(Entity) bool{v1.Contains, v2.Contains},
			v1.WorldTick(), v1.LastSystemTick(),
		),
	}
}

func (q *query2[T1, T2]) Include(views ...View) *query2[T1, T2]  { q.part.include(views...); return q }
func (q *query2[T1, T2]) Exclude(views ...View) *query2[T1, T2]  { q.part.exclude(views...); return q }
func (q *query2[T1, T2]) Filter(f ...TickFilter) *query2[T1, T2] { q.part.addFilters(f...); return q }

func (q *query2[T1, T2]) Get(e Entity) (*T1, *T2, bool) {
	if !q.part.passes(e) {
		return nil, nil, false
	}
	p1, ok1 := q.g1.Get(e)
	if !ok1 {
		return nil, nil, false
	}
	p2, ok2 := q.g2.Get(e)
	if !ok2 {
		return nil, nil, false
	}
	return p1, p2, true
}

func (q *query2[T1, T2]) Contains(e Entity) bool {
	_, _, ok := q.Get(e)
	return ok
}

func (q *query2[T1, T2]) ForEach(fn func(Entity, *T1, *T2)) {
	if begin, end, ok := q.part.denseRange(); ok {
		entities := q.g1.Entities()
		c1, c2 := q.g1.Components(), q.g2.Components()
		for i := begin; i < end; i++ {
			fn(entities[i], &c1[i], &c2[i])
		}
		return
	}
	for _, e := range q.part.shortestEntities() {
		if p1, p2, ok := q.Get(e); ok {
			fn(e, p1, p2)
		}
	}
}

func (q *query2[T1, T2]) AsEntitySlice() ([]Entity, bool) {
	begin, end, ok := q.part.denseRange()
	if !ok {
		return nil, false
	}
	return q.g1.Entities()[begin:end], true
}

func (q *query2[T1, T2]) AsComponentSlices() ([]T1, []T2, bool) {
	begin, end, ok := q.part.denseRange()
	if !ok {
		return nil, nil, false
	}
	return q.g1.Components()[begin:end], q.g2.Components()[begin:end], true
}

// query3 is a three-component-get query part.
type query3[T1, T2, T3 any] struct {
	g1   GetView[T1]
	g2   GetView[T2]
	g3   GetView[T3]
	part queryPart
}

// Query3 builds a query over three Get views.
func Query3[T1, T2, T3 any](v1 GetView[T1], v2 GetView[T2], v3 GetView[T3]) *query3[T1, T2, T3] {
	return &query3[T1, T2, T3]{
		g1: v1, g2: v2, g3: v3,
		part: newQueryPart(
			[]GroupInfo{v1.GroupInfo(), v2.GroupInfo(), v3.GroupInfo()},
			[][]Entity{v1.Entities(), v2.Entities(), v3.Entities()},
			[]func(Entity) bool{v1.Contains, v2.Contains, v3.Contains},
			v1.WorldTick(), v1.LastSystemTick(),
		),
	}
}

func (q *query3[T1, T2, T3]) Include(views ...View) *query3[T1, T2, T3] {
	q.part.include(views...)
	return q
}
func (q *query3[T1, T2, T3]) Exclude(views ...View) *query3[T1, T2, T3] {
	q.part.exclude(views...)
	return q
}
func (q *query3[T1, T2, T3]) Filter(f ...TickFilter) *query3[T1, T2, T3] {
	q.part.addFilters(f...)
	return q
}

func (q *query3[T1, T2, T3]) Get(e Entity) (*T1, *T2, *T3, bool) {
	if !q.part.passes(e) {
		return nil, nil, nil, false
	}
	p1, ok1 := q.g1.Get(e)
	p2, ok2 := q.g2.Get(e)
	p3, ok3 := q.g3.Get(e)
	if !ok1 || !ok2 || !ok3 {
		return nil, nil, nil, false
	}
	return p1, p2, p3, true
}

func (q *query3[T1, T2, T3]) Contains(e Entity) bool {
	_, _, _, ok := q.Get(e)
	return ok
}

func (q *query3[T1, T2, T3]) ForEach(fn func(Entity, *T1, *T2, *T3)) {
	if begin, end, ok := q.part.denseRange(); ok {
		entities := q.g1.Entities()
		c1, c2, c3 := q.g1.Components(), q.g2.Components(), q.g3.Components()
		for i := begin; i < end; i++ {
			fn(entities[i], &c1[i], &c2[i], &c3[i])
		}
		return
	}
	for _, e := range q.part.shortestEntities() {
		if p1, p2, p3, ok := q.Get(e); ok {
			fn(e, p1, p2, p3)
		}
	}
}

func (q *query3[T1, T2, T3]) AsEntitySlice() ([]Entity, bool) {
	begin, end, ok := q.part.denseRange()
	if !ok {
		return nil, false
	}
	return q.g1.Entities()[begin:end], true
}

func (q *query3[T1, T2, T3]) AsComponentSlices() ([]T1, []T2, []T3, bool) {
	begin, end, ok := q.part.denseRange()
	if !ok {
		return nil, nil, nil, false
	}
	return q.g1.Components()[begin:end], q.g2.Components()[begin:end], q.g3.Components()[begin:end], true
}

// query4 is a four-component-get query part.
type query4[T1, T2, T3, T4 any] struct {
	g1   GetView[T1]
	g2   GetView[T2]
	g3   GetView[T3]
	g4   GetView[T4]
	part queryPart
}

// Query4 builds a query over four Get views.
func Query4[T1, T2, T3, T4 any](v1 GetView[T1], v2 GetView[T2], v3 GetView[T3], v4 GetView[T4]) *query4[T1, T2, T3, T4] {
	return &query4[T1, T2, T3, T4]{
		g1: v1, g2: v2, g3: v3, g4: v4,
		part: newQueryPart(
			[]GroupInfo{v1.GroupInfo(), v2.GroupInfo(), v3.GroupInfo(), v4.GroupInfo()},
			[][]Entity{v1.Entities(), v2.Entities(), v3.Entities(), v4.Entities()},
			[]func(Entity) bool{v1.Contains, v2.Contains, v3.Contains, v4.Contains},
			v1.WorldTick(), v1.LastSystemTick(),
		),
	}
}

func (q *query4[T1, T2, T3, T4]) Include(views ...View) *query4[T1, T2, T3, T4] {
	q.part.include(views...)
	return q
}
func (q *query4[T1, T2, T3, T4]) Exclude(views ...View) *query4[T1, T2, T3, T4] {
	q.part.exclude(views...)
	return q
}
func (q *query4[T1, T2, T3, T4]) Filter(f ...TickFilter) *query4[T1, T2, T3, T4] {
	q.part.addFilters(f...)
	return q
}

func (q *query4[T1, T2, T3, T4]) Get(e Entity) (*T1, *T2, *T3, *T4, bool) {
	if !q.part.passes(e) {
		return nil, nil, nil, nil, false
	}
	p1, ok1 := q.g1.Get(e)
	p2, ok2 := q.g2.Get(e)
	p3, ok3 := q.g3.Get(e)
	p4, ok4 := q.g4.Get(e)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return nil, nil, nil, nil, false
	}
	return p1, p2, p3, p4, true
}

func (q *query4[T1, T2, T3, T4]) Contains(e Entity) bool {
	_, _, _, _, ok := q.Get(e)
	return ok
}

func (q *query4[T1, T2, T3, T4]) ForEach(fn func(Entity, *T1, *T2, *T3, *T4)) {
	if begin, end, ok := q.part.denseRange(); ok {
		entities := q.g1.Entities()
		c1, c2, c3, c4 := q.g1.Components(), q.g2.Components(), q.g3.Components(), q.g4.Components()
		for i := begin; i < end; i++ {
			fn(entities[i], &c1[i], &c2[i], &c3[i], &c4[i])
		}
		return
	}
	for _, e := range q.part.shortestEntities() {
		if p1, p2, p3, p4, ok := q.Get(e); ok {
			fn(e, p1, p2, p3, p4)
		}
	}
}

func (q *query4[T1, T2, T3, T4]) AsEntitySlice() ([]Entity, bool) {
	begin, end, ok := q.part.denseRange()
	if !ok {
		return nil, false
	}
	return q.g1.Entities()[begin:end], true
}

func (q *query4[T1, T2, T3, T4]) AsComponentSlices() ([]T1, []T2, []T3, []T4, bool) {
	begin, end, ok := q.part.denseRange()
	if !ok {
		return nil, nil, nil, nil, false
	}
	return q.g1.Components()[begin:end], q.g2.Components()[begin:end], q.g3.Components()[begin:end], q.g4.Components()[begin:end], true
}
