package sparsity

import "testing"

func TestFilterAdded(t *testing.T) {
	ticks := ChangeTicks{TickAdded: 5, TickChanged: 5}
	if !Added(ticks, 5, 0) {
		t.Error("Added() = false for a component inserted at the current tick")
	}
	if Added(ticks, 6, 0) {
		t.Error("Added() = true for a component inserted at an earlier tick")
	}
}

func TestFilterMutated(t *testing.T) {
	ticks := ChangeTicks{TickAdded: 1, TickChanged: 10}
	if !Mutated(ticks, 10, 5) {
		t.Error("Mutated() = false when TickChanged > lastSystemTick")
	}
	if Mutated(ticks, 10, 10) {
		t.Error("Mutated() = true when TickChanged == lastSystemTick")
	}
}

func TestFilterChanged(t *testing.T) {
	justAdded := ChangeTicks{TickAdded: 5, TickChanged: 5}
	if !Changed(justAdded, 5, 5) {
		t.Error("Changed() = false for a just-added component")
	}

	mutatedOnly := ChangeTicks{TickAdded: 1, TickChanged: 8}
	if !Changed(mutatedOnly, 8, 5) {
		t.Error("Changed() = false for a mutated component")
	}

	stale := ChangeTicks{TickAdded: 1, TickChanged: 2}
	if Changed(stale, 8, 5) {
		t.Error("Changed() = true for a component untouched since lastSystemTick")
	}
}

func TestFilterCombinators(t *testing.T) {
	always := func(ChangeTicks, uint32, uint32) bool { return true }
	never := func(ChangeTicks, uint32, uint32) bool { return false }
	var ticks ChangeTicks

	if Not(always)(ticks, 0, 0) {
		t.Error("Not(always) matched")
	}
	if !And(always, always)(ticks, 0, 0) {
		t.Error("And(always, always) did not match")
	}
	if And(always, never)(ticks, 0, 0) {
		t.Error("And(always, never) matched")
	}
	if !Or(never, always)(ticks, 0, 0) {
		t.Error("Or(never, always) did not match")
	}
	if Or(never, never)(ticks, 0, 0) {
		t.Error("Or(never, never) matched")
	}
	if Xor(always, always)(ticks, 0, 0) {
		t.Error("Xor(always, always) matched, want false")
	}
	if !Xor(always, never)(ticks, 0, 0) {
		t.Error("Xor(always, never) did not match")
	}
}
