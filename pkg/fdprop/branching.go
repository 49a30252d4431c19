package fdprop

import "fmt"

// Branching: variable selection, value selection, and distribution of a
// space into child subproblems. A distributor posts mutually exclusive
// constraints into restored copies of the parent, so the union of the
// children's solution sets equals the parent's.
//
// Selectors and distributors panic when asked to branch on a space with
// no splittable variable: every space left Unknown by propagation must
// have one, so its absence is a model or engine bug.

// VarSelector chooses the variable to branch on.
type VarSelector interface {
	// SelectVar returns the index of the chosen variable. Panics if no
	// variable has a domain larger than a singleton.
	SelectVar(vs *VarStore) int
}

// FirstSmallestVar selects the variable with the smallest domain of size
// greater than one, preferring the lowest index on ties.
type FirstSmallestVar struct{}

// SelectVar implements VarSelector.
func (FirstSmallestVar) SelectVar(vs *VarStore) int {
	best := -1
	bestSize := 0
	vs.Iterate(func(i int, d Interval) {
		size := d.Size()
		if size <= 1 {
			return
		}
		if best == -1 || size < bestSize {
			best = i
			bestSize = size
		}
	})
	if best == -1 {
		panic("fdprop: no branchable variable in an unresolved space; every Unknown space must have a splittable variable")
	}
	return best
}

// ValSelector chooses the pivot value inside the selected domain.
type ValSelector interface {
	SelectVal(d Interval) Bound
}

// MinVal picks the lower bound of the domain.
type MinVal struct{}

// SelectVal implements ValSelector.
func (MinVal) SelectVal(d Interval) Bound { return d.Lower() }

// Branch is one pending alternative of a distribution: a restore point of
// the frozen parent plus the constraint to post in the restored child.
type Branch struct {
	frozen *FrozenSpace
	label  SpaceLabel
	commit func(*Space)
}

// Commit restores the parent snapshot into a fresh space and posts the
// branch's constraint into it.
func (b Branch) Commit() *Space {
	child := b.frozen.Restore(b.label)
	b.commit(child)
	return child
}

// distribute freezes the space and creates one branch per commit
// closure. Branches share the frozen parent; each holds its own label.
func distribute(space *Space, commits []func(*Space)) (*FrozenSpace, []Branch) {
	frozen := space.Freeze()
	branches := make([]Branch, len(commits))
	for i, commit := range commits {
		branches[i] = Branch{frozen: frozen, label: frozen.Label(), commit: commit}
	}
	return frozen, branches
}

// Distributor produces the child subproblems for a chosen variable.
type Distributor interface {
	// Distribute consumes the space and returns its frozen state plus
	// the pending branches. Panics if the variable's domain is a
	// singleton.
	Distribute(space *Space, varIdx int) (*FrozenSpace, []Branch)
}

// BinarySplit halves the domain: children are x <= mid and x > mid,
// where mid = floor((lower+upper)/2) is the last value of the lower half.
type BinarySplit struct{}

// Distribute implements Distributor.
func (BinarySplit) Distribute(space *Space, varIdx int) (*FrozenSpace, []Branch) {
	d := space.Vars.Read(varIdx)
	if d.Size() <= 1 {
		panic(fmt.Sprintf("fdprop: cannot split variable %d with domain %s", varIdx, d))
	}
	mid := floorDiv(d.Lower()+d.Upper(), 2)
	x := NewIdentity(varIdx)
	return distribute(space, []func(*Space){
		func(child *Space) { child.Constraints.Alloc(NewXLeqC(x, mid)) },
		func(child *Space) { child.Constraints.Alloc(NewXGreaterC(x, mid)) },
	})
}

// Enumerate tries one value at a time: children are x = val and x != val,
// with val chosen by the value selector.
type Enumerate struct {
	Val ValSelector
}

// NewEnumerate returns an enumerating distributor over the given value
// selector.
func NewEnumerate(val ValSelector) Enumerate { return Enumerate{Val: val} }

// Distribute implements Distributor.
func (e Enumerate) Distribute(space *Space, varIdx int) (*FrozenSpace, []Branch) {
	d := space.Vars.Read(varIdx)
	if d.Size() <= 1 {
		panic(fmt.Sprintf("fdprop: cannot enumerate variable %d with domain %s", varIdx, d))
	}
	val := e.Val.SelectVal(d)
	x := NewIdentity(varIdx)
	return distribute(space, []func(*Space){
		func(child *Space) { child.Constraints.Alloc(NewXEqY(x, NewConstant(val))) },
		func(child *Space) { child.Constraints.Alloc(NewXNeqC(x, val)) },
	})
}
