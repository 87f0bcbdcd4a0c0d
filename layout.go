package sparsity

import "github.com/TheBitDrifter/mask"

// MinGroupArity and MaxGroupArity bound how many component types a single
// group may cover.
const (
	MinGroupArity = 2
	MaxGroupArity = 16
)

// LayoutGroup names the component types that should be co-sorted together.
type LayoutGroup struct {
	components []ComponentInfo
	setMask    mask.Mask256
}

// NewLayoutGroup builds a LayoutGroup from a set of component types,
// panicking with a LayoutArityError if the count falls outside
// [MinGroupArity, MaxGroupArity].
func NewLayoutGroup(components ...ComponentInfo) LayoutGroup {
	if len(components) < MinGroupArity || len(components) > MaxGroupArity {
		panic(LayoutArityError{Arity: len(components)})
	}

	var m mask.Mask256
	for _, c := range components {
		m.Mark(c.ID())
	}
	return LayoutGroup{components: components, setMask: m}
}

// Components returns the component types this group covers, in the order
// they were declared.
func (g LayoutGroup) Components() []ComponentInfo { return g.components }

// Arity is the number of component types this group covers.
func (g LayoutGroup) Arity() int { return len(g.components) }

func (g LayoutGroup) disjointFrom(o LayoutGroup) bool { return !g.setMask.ContainsAny(o.setMask) }
func (g LayoutGroup) isSubsetOf(o LayoutGroup) bool    { return o.setMask.ContainsAll(g.setMask) }
func (g LayoutGroup) isSupersetOf(o LayoutGroup) bool  { return g.setMask.ContainsAll(o.setMask) }

// layoutGroupFamily is the resolved, ordered form of a group set: the union
// of every group's component types (narrowest group's components first),
// plus the increasing list of prefix lengths at which each successive
// group ends.
type layoutGroupFamily struct {
	components []ComponentInfo
	arities    []int
}

func newLayoutGroupFamily(groups []LayoutGroup) *layoutGroupFamily {
	f := &layoutGroupFamily{
		components: append([]ComponentInfo(nil), groups[0].components...),
		arities:    []int{len(groups[0].components)},
	}

	seen := make(map[uint32]struct{}, len(f.components))
	for _, c := range f.components {
		seen[c.ID()] = struct{}{}
	}

	for i := 1; i < len(groups); i++ {
		before := len(f.components)
		for _, c := range groups[i].components {
			if _, ok := seen[c.ID()]; ok {
				continue
			}
			seen[c.ID()] = struct{}{}
			f.components = append(f.components, c)
		}
		if len(f.components) > before {
			f.arities = append(f.arities, len(f.components))
		}
	}
	return f
}

func (f *layoutGroupFamily) Components() []ComponentInfo { return f.components }
func (f *layoutGroupFamily) Arities() []int               { return f.arities }
func (f *layoutGroupFamily) GroupCount() int              { return len(f.arities) }

// Layout is the built, immutable result of a LayoutBuilder: a set of group
// families.
type Layout struct {
	families []*layoutGroupFamily
}

func (l *Layout) familySlice() []*layoutGroupFamily { return l.families }

// LayoutBuilder accumulates LayoutGroups and resolves them into families on
// Build. Groups sharing any component type merge into the same family,
// ordered narrowest-to-widest; groups that neither nest nor are disjoint
// panic with a LayoutOverlapError.
type LayoutBuilder struct {
	groupSets [][]LayoutGroup
}

// NewLayoutBuilder returns an empty builder.
func NewLayoutBuilder() *LayoutBuilder {
	return &LayoutBuilder{}
}

// AddGroup declares that the given component types should be co-sorted.
func (b *LayoutBuilder) AddGroup(components ...ComponentInfo) *LayoutBuilder {
	group := NewLayoutGroup(components...)

	// A groupSet is kept narrowest-to-widest, so its widest member is the
	// superset of every member in it: disjoint-from-widest implies
	// disjoint from the whole groupSet, and non-disjoint-from-widest is
	// the only way group can belong to (or conflict with) it.
	groupSetIndex := -1
	for i, groupSet := range b.groupSets {
		widest := groupSet[len(groupSet)-1]
		if widest.disjointFrom(group) {
			continue
		}
		if groupSetIndex >= 0 {
			panic(LayoutOverlapError{A: group.components, B: widest.components})
		}
		groupSetIndex = i
	}

	if groupSetIndex < 0 {
		b.groupSets = append(b.groupSets, []LayoutGroup{group})
		return b
	}

	groupSet := b.groupSets[groupSetIndex]
	for i, old := range groupSet {
		if group.isSubsetOf(old) {
			grown := make([]LayoutGroup, 0, len(groupSet)+1)
			grown = append(grown, groupSet[:i]...)
			grown = append(grown, group)
			grown = append(grown, groupSet[i:]...)
			b.groupSets[groupSetIndex] = grown
			return b
		}
		if !group.isSupersetOf(old) {
			panic(LayoutOverlapError{A: group.components, B: old.components})
		}
	}
	b.groupSets[groupSetIndex] = append(groupSet, group)
	return b
}

// Build resolves every declared group into its family and returns the
// immutable Layout. The builder is left empty afterward.
func (b *LayoutBuilder) Build() *Layout {
	families := make([]*layoutGroupFamily, len(b.groupSets))
	for i, groupSet := range b.groupSets {
		families[i] = newLayoutGroupFamily(groupSet)
	}
	b.groupSets = nil
	return &Layout{families: families}
}
