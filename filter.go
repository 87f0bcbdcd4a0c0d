package sparsity

// Filter is a predicate over a component's change ticks, evaluated against
// the world tick at borrow time and the last tick the calling system
// observed.
type Filter func(ticks ChangeTicks, worldTick, lastSystemTick uint32) bool

// Added matches components inserted at exactly the current world tick.
func Added(ticks ChangeTicks, worldTick, lastSystemTick uint32) bool {
	return ticks.TickAdded == worldTick
}

// Mutated matches components changed more recently than the last tick the
// calling system observed.
func Mutated(ticks ChangeTicks, worldTick, lastSystemTick uint32) bool {
	return ticks.TickChanged > lastSystemTick
}

// Changed matches components that are either newly added or mutated.
func Changed(ticks ChangeTicks, worldTick, lastSystemTick uint32) bool {
	return Added(ticks, worldTick, lastSystemTick) || Mutated(ticks, worldTick, lastSystemTick)
}

// Not negates a filter.
func Not(f Filter) Filter {
	return func(ticks ChangeTicks, worldTick, lastSystemTick uint32) bool {
		return !f(ticks, worldTick, lastSystemTick)
	}
}

// And is satisfied when both filters are.
func And(a, b Filter) Filter {
	return func(ticks ChangeTicks, worldTick, lastSystemTick uint32) bool {
		return a(ticks, worldTick, lastSystemTick) && b(ticks, worldTick, lastSystemTick)
	}
}

// Or is satisfied when either filter is.
func Or(a, b Filter) Filter {
	return func(ticks ChangeTicks, worldTick, lastSystemTick uint32) bool {
		return a(ticks, worldTick, lastSystemTick) || b(ticks, worldTick, lastSystemTick)
	}
}

// Xor is satisfied when exactly one filter matches.
func Xor(a, b Filter) Filter {
	return func(ticks ChangeTicks, worldTick, lastSystemTick uint32) bool {
		return a(ticks, worldTick, lastSystemTick) != b(ticks, worldTick, lastSystemTick)
	}
}
