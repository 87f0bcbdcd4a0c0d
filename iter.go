package sparsity

import "iter"

// Iter returns a range-over-func sequence of every entity satisfying q's
// predicates, carrying no component pointers.
func (q *query0) Iter() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		stop := false
		q.ForEach(func(e Entity) {
			if stop {
				return
			}
			if !yield(e) {
				stop = true
			}
		})
	}
}

// Iter returns a range-over-func sequence of (Entity, *T1) pairs.
func (q *query1[T1]) Iter() iter.Seq2[Entity, *T1] {
	return func(yield func(Entity, *T1) bool) {
		stop := false
		q.ForEach(func(e Entity, p1 *T1) {
			if stop {
				return
			}
			if !yield(e, p1) {
				stop = true
			}
		})
	}
}

// Iter returns a range-over-func sequence over two components per entity.
func (q *query2[T1, T2]) Iter() iter.Seq2[Entity, struct {
	V1 *T1
	V2 *T2
}] {
	type pair = struct {
		V1 *T1
		V2 *T2
	}
	return func(yield func(Entity, pair) bool) {
		stop := false
		q.ForEach(func(e Entity, p1 *T1, p2 *T2) {
			if stop {
				return
			}
			if !yield(e, pair{p1, p2}) {
				stop = true
			}
		})
	}
}

// Iter returns a range-over-func sequence over three components per
// entity.
func (q *query3[T1, T2, T3]) Iter() iter.Seq2[Entity, struct {
	V1 *T1
	V2 *T2
	V3 *T3
}] {
	type triple = struct {
		V1 *T1
		V2 *T2
		V3 *T3
	}
	return func(yield func(Entity, triple) bool) {
		stop := false
		q.ForEach(func(e Entity, p1 *T1, p2 *T2, p3 *T3) {
			if stop {
				return
			}
			if !yield(e, triple{p1, p2, p3}) {
				stop = true
			}
		})
	}
}

// Iter returns a range-over-func sequence over four components per
// entity.
func (q *query4[T1, T2, T3, T4]) Iter() iter.Seq2[Entity, struct {
	V1 *T1
	V2 *T2
	V3 *T3
	V4 *T4
}] {
	type quad = struct {
		V1 *T1
		V2 *T2
		V3 *T3
		V4 *T4
	}
	return func(yield func(Entity, quad) bool) {
		stop := false
		q.ForEach(func(e Entity, p1 *T1, p2 *T2, p3 *T3, p4 *T4) {
			if stop {
				return
			}
			if !yield(e, quad{p1, p2, p3, p4}) {
				stop = true
			}
		})
	}
}
