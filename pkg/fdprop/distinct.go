package fdprop

import (
	"fmt"
	"strings"
)

// Distinct enforces pairwise disequality over n terms by decomposition
// into n(n-1)/2 XNeqYPlusC propagators. This is deliberately the weak
// decomposition: it prunes only through singleton propagation and fails
// only when two variables are fixed to the same value. Arc-consistent
// alldifferent filtering is out of scope for the primitive set.
type Distinct struct {
	vars  []Term
	props []*XNeqYPlusC
}

// NewDistinct returns the decomposed propagator over the given terms.
// Returns an error when no term is given; a single term is trivially
// entailed.
func NewDistinct(vars []Term) (*Distinct, error) {
	if len(vars) == 0 {
		return nil, fmt.Errorf("Distinct requires at least one term")
	}
	varsCopy := make([]Term, len(vars))
	copy(varsCopy, vars)
	props := make([]*XNeqYPlusC, 0, len(vars)*(len(vars)-1)/2)
	for i := 0; i < len(varsCopy)-1; i++ {
		for j := i + 1; j < len(varsCopy); j++ {
			props = append(props, NewXNeqY(varsCopy[i], varsCopy[j]))
		}
	}
	return &Distinct{vars: varsCopy, props: props}, nil
}

// IsSubsumed implements Propagator: the conjunction of the pairwise
// disequalities.
func (p *Distinct) IsSubsumed(s *VarStore) Trilean {
	result := TriTrue
	for _, neq := range p.props {
		switch neq.IsSubsumed(s) {
		case TriFalse:
			return TriFalse
		case TriUnknown:
			result = TriUnknown
		}
	}
	return result
}

// Propagate implements Propagator, running every pairwise propagator and
// failing fast on the first empty domain.
func (p *Distinct) Propagate(s *VarStore) bool {
	for _, neq := range p.props {
		if !neq.Propagate(s) {
			return false
		}
	}
	return true
}

// Dependencies implements Propagator: one Inner subscription per term.
func (p *Distinct) Dependencies() []VarEvent {
	deps := make([]VarEvent, 0, len(p.vars))
	for _, v := range p.vars {
		deps = append(deps, v.Dependencies(Inner)...)
	}
	return deps
}

// Clone implements Propagator.
func (p *Distinct) Clone() Propagator {
	vars := make([]Term, len(p.vars))
	for i, v := range p.vars {
		vars[i] = v.Clone()
	}
	props := make([]*XNeqYPlusC, len(p.props))
	for i, neq := range p.props {
		props[i] = neq.Clone().(*XNeqYPlusC)
	}
	return &Distinct{vars: vars, props: props}
}

// String implements Propagator.
func (p *Distinct) String() string {
	names := make([]string, len(p.vars))
	for i, v := range p.vars {
		names[i] = v.String()
	}
	return fmt.Sprintf("distinct(%s)", strings.Join(names, ", "))
}
