package fdprop

import "fmt"

// Term is a view over the variable store: an expression a propagator can
// read and write as if it were a plain variable. Terms reference
// variables by integer index, never by pointer, so a term revived in a
// restored space re-binds implicitly through the store.
//
// Update must preserve the store's monotonicity contract and returns
// false exactly when the requested domain is unsatisfiable (propagation
// failure).
type Term interface {
	// Read returns the term's current domain in the store.
	Read(s *VarStore) Interval

	// Update constrains the term to d. Depending on the variant this is
	// a real store update, a consistency check, or a reification-driven
	// forward propagation. Returns false on failure.
	Update(s *VarStore, d Interval) bool

	// Dependencies translates an event of interest on the term into the
	// underlying (variable, event) subscriptions the scheduler must
	// register.
	Dependencies(e Event) []VarEvent

	// Clone returns a copy safe to use in a restored space. Stateless
	// terms may return themselves.
	Clone() Term

	// String returns a human-readable representation.
	String() string
}

// Identity wraps a variable index: reads and updates go straight to the
// store slot. VarStore.Alloc returns the Identity of the fresh variable.
type Identity struct {
	index int
}

// NewIdentity returns the identity view of the variable at index i.
func NewIdentity(i int) Identity { return Identity{index: i} }

// Index returns the wrapped variable index.
func (x Identity) Index() int { return x.index }

// Read implements Term.
func (x Identity) Read(s *VarStore) Interval { return s.Read(x.index) }

// Update implements Term.
func (x Identity) Update(s *VarStore, d Interval) bool { return s.Update(x.index, d) }

// Dependencies implements Term.
func (x Identity) Dependencies(e Event) []VarEvent {
	return []VarEvent{{Var: x.index, Event: e}}
}

// Clone implements Term.
func (x Identity) Clone() Term { return x }

// String implements Term.
func (x Identity) String() string { return fmt.Sprintf("v%d", x.index) }

// Constant is the singleton view of a fixed value. Updating a constant is
// a consistency check: it succeeds exactly when the requested domain
// still contains the value.
type Constant struct {
	value Bound
}

// NewConstant returns the constant view of v.
func NewConstant(v Bound) Constant { return Constant{value: v} }

// Read implements Term.
func (c Constant) Read(*VarStore) Interval { return SingletonInterval(c.value) }

// Update implements Term.
func (c Constant) Update(_ *VarStore, d Interval) bool { return d.Contains(c.value) }

// Dependencies implements Term. Constants never change.
func (c Constant) Dependencies(Event) []VarEvent { return nil }

// Clone implements Term.
func (c Constant) Clone() Term { return c }

// String implements Term.
func (c Constant) String() string { return fmt.Sprintf("%d", c.value) }

// Addition is the affine-shift view x + k: reads shift the underlying
// domain by k, updates inverse-shift before delegating.
type Addition struct {
	x Term
	k Bound
}

// NewAddition returns the view x + k.
func NewAddition(x Term, k Bound) Addition { return Addition{x: x, k: k} }

// Read implements Term.
func (a Addition) Read(s *VarStore) Interval {
	d := a.x.Read(s)
	if d.IsEmpty() {
		return d
	}
	return Interval{lb: d.lb + a.k, ub: d.ub + a.k}
}

// Update implements Term.
func (a Addition) Update(s *VarStore, d Interval) bool {
	if d.IsEmpty() {
		return false
	}
	return a.x.Update(s, Interval{lb: d.lb - a.k, ub: d.ub - a.k})
}

// Dependencies implements Term. A shift preserves event strength.
func (a Addition) Dependencies(e Event) []VarEvent { return a.x.Dependencies(e) }

// Clone implements Term.
func (a Addition) Clone() Term { return Addition{x: a.x.Clone(), k: a.k} }

// String implements Term.
func (a Addition) String() string {
	if a.k < 0 {
		return fmt.Sprintf("%s - %d", a.x, -a.k)
	}
	return fmt.Sprintf("%s + %d", a.x, a.k)
}

// Bool2Int reifies a propagator as an integer in {0,1}: 1 when the
// propagator is entailed, 0 when disentailed, [0,1] while unknown. This
// is the reification channel used by decompositions such as Cumulative,
// where the wrapped propagator is typically a nested constraint store
// holding a conjunction.
//
// Updating with {1} forward-propagates the wrapped constraint. Updating
// with {0} cannot post the constraint's negation (it is not
// representable), so it is a no-op that fails only when the constraint is
// already entailed. Any other singleton is a modelling error.
type Bool2Int struct {
	p Propagator
}

// NewBool2Int returns the {0,1} view of p's entailment.
func NewBool2Int(p Propagator) *Bool2Int { return &Bool2Int{p: p} }

// Read implements Term.
func (b *Bool2Int) Read(s *VarStore) Interval {
	switch b.p.IsSubsumed(s) {
	case TriTrue:
		return SingletonInterval(1)
	case TriFalse:
		return SingletonInterval(0)
	default:
		return NewInterval(0, 1)
	}
}

// Update implements Term.
func (b *Bool2Int) Update(s *VarStore, d Interval) bool {
	if d.IsEmpty() {
		return false
	}
	if !d.IsSingleton() {
		return true
	}
	switch d.Lower() {
	case 1:
		return b.p.Propagate(s)
	case 0:
		return b.p.IsSubsumed(s) != TriTrue
	default:
		panic(fmt.Sprintf("fdprop: Bool2Int can only be updated with 0 or 1, got %d", d.Lower()))
	}
}

// Dependencies implements Term: the view changes whenever the wrapped
// propagator's inputs change, regardless of the requested event.
func (b *Bool2Int) Dependencies(Event) []VarEvent { return b.p.Dependencies() }

// Clone implements Term.
func (b *Bool2Int) Clone() Term { return &Bool2Int{p: b.p.Clone()} }

// String implements Term.
func (b *Bool2Int) String() string { return fmt.Sprintf("bool2int(%v)", b.p) }
