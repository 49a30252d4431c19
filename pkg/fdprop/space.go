package fdprop

// Space pairs a variable store with a constraint store: one node of the
// search tree. A space is built once (variables, then propagators), then
// owned by the search engine, which freezes it before branching and
// restores children from the snapshot.
type Space struct {
	// Vars holds the variable domains.
	Vars *VarStore
	// Constraints holds the propagators and their scheduler state.
	Constraints *CStore
}

// NewSpace returns an empty space backed by copy-on-freeze memory.
func NewSpace() *Space {
	return &Space{
		Vars:        NewVarStore(),
		Constraints: NewCStore(),
	}
}

// NewSpaceWith returns an empty space over the given memory strategy.
func NewSpaceWith(m Memory) *Space {
	return &Space{
		Vars:        NewVarStoreWith(m),
		Constraints: NewCStore(),
	}
}

// Propagate runs the constraint store to its fixed point over the
// variable store. Returns false on inconsistency.
func (sp *Space) Propagate() bool {
	return sp.Constraints.Propagate(sp.Vars)
}

// IsSubsumed reports the whole-store entailment status.
func (sp *Space) IsSubsumed() Trilean {
	return sp.Constraints.IsSubsumed(sp.Vars)
}

// Assignment extracts the current domains' lower bounds as a flat
// solution vector. Meaningful once the space is subsumed and every
// variable is a singleton.
func (sp *Space) Assignment() []Bound {
	values := make([]Bound, sp.Vars.Size())
	sp.Vars.Iterate(func(i int, d Interval) {
		values[i] = d.Lower()
	})
	return values
}

// Freeze consumes the space and returns a restorable snapshot. Parents
// stay frozen while their children are explored.
func (sp *Space) Freeze() *FrozenSpace {
	return &FrozenSpace{
		vars:        sp.Vars.Freeze(),
		constraints: sp.Constraints.Freeze(),
	}
}

// FrozenSpace is a frozen snapshot of a Space. Snapshots must never be
// mutated; the label/restore contract is the only cross-state sharing
// mechanism.
type FrozenSpace struct {
	vars        *FrozenVarStore
	constraints *FrozenCStore
}

// SpaceLabel is a restore point for a frozen space.
type SpaceLabel struct {
	vars        VarStoreLabel
	constraints CStoreLabel
}

// Label returns a restore point for the frozen state. For trail-backed
// memories, labels must be consumed in LIFO order.
func (f *FrozenSpace) Label() SpaceLabel {
	return SpaceLabel{
		vars:        f.vars.Label(),
		constraints: f.constraints.Label(),
	}
}

// Restore rebuilds a live space equal to the one frozen.
func (f *FrozenSpace) Restore(l SpaceLabel) *Space {
	return &Space{
		Vars:        f.vars.Restore(l.vars),
		Constraints: f.constraints.Restore(l.constraints),
	}
}
