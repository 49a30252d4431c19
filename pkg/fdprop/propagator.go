package fdprop

// Propagator is the filtering contract of one constraint: remove values
// that cannot participate in any solution, report entailment, and declare
// which variable events warrant a re-run.
//
// Propagate must be contractant (it never widens a domain) and idempotent
// at the fixed point: running it twice on an unchanged store makes no
// further change. Entailment is sticky: once IsSubsumed answers TriTrue
// in a store, it must stay TriTrue in every further-contracted store; the
// scheduler relies on this to retire propagators.
type Propagator interface {
	// IsSubsumed reports whether the constraint is definitely satisfied
	// (TriTrue), definitely violated (TriFalse), or undecided
	// (TriUnknown) by the current store.
	IsSubsumed(s *VarStore) Trilean

	// Propagate filters the store. Returns false exactly when a domain
	// became empty; the store is then left partially updated, as the
	// enclosing space is discarded or restored from a snapshot.
	Propagate(s *VarStore) bool

	// Dependencies returns, for each input variable, the minimum event
	// that could enable further filtering.
	Dependencies() []VarEvent

	// Clone returns a copy safe to use in a restored space. Stateless
	// propagators may return themselves.
	Clone() Propagator

	// String returns a human-readable representation.
	String() string
}
