// Package fdprop implements a finite-domain constraint propagation engine
// coupled with a depth-first backtracking search.
//
// The engine follows the classic propagate-and-search architecture:
//
//	VarStore (domains + delta buffer)
//	  ↑ read/update through Terms (views)
//	ConstraintStore (propagators + event-driven scheduler)
//	  ↑ fixed-point propagation
//	Space = (VarStore, ConstraintStore)
//	  ↑ freeze/restore snapshots
//	Search visitors (Propagation, Brancher, OneSolution, AllSolution)
//
// Domains are integer intervals. Propagators filter domains monotonically
// and report entailment as a three-valued answer; the scheduler re-runs a
// propagator only when a variable it depends on changed at least as
// strongly as the declared minimum event.
package fdprop

import (
	"fmt"
	"math"
)

// Bound is the integer type used for domain endpoints.
type Bound = int

// Interval is an inhabited lattice element over Bound: the set of integers
// in [lb, ub]. An interval with lb > ub is empty. Intervals are immutable
// value types - every operation returns a new interval, which keeps
// copy-on-freeze snapshots trivially safe.
//
// The interval cannot represent holes: removing an interior element via
// Difference returns the interval unchanged. Richer domain representations
// (bitsets, ranges) would produce Inner events in that case; intervals only
// ever produce Bound or Assignment events.
type Interval struct {
	lb, ub Bound
}

// NewInterval returns the interval [lb, ub]. If lb > ub the result is the
// canonical empty interval.
func NewInterval(lb, ub Bound) Interval {
	if lb > ub {
		return EmptyInterval()
	}
	return Interval{lb: lb, ub: ub}
}

// SingletonInterval returns the interval {v}.
func SingletonInterval(v Bound) Interval {
	return Interval{lb: v, ub: v}
}

// EmptyInterval returns the canonical empty interval.
func EmptyInterval() Interval {
	return Interval{lb: math.MaxInt, ub: math.MinInt}
}

// IsEmpty reports whether the interval contains no value.
func (i Interval) IsEmpty() bool { return i.lb > i.ub }

// IsSingleton reports whether the interval contains exactly one value.
func (i Interval) IsSingleton() bool { return i.lb == i.ub }

// Size returns the number of values in the interval.
func (i Interval) Size() int {
	if i.IsEmpty() {
		return 0
	}
	return i.ub - i.lb + 1
}

// Lower returns the least value. Undefined on the empty interval.
func (i Interval) Lower() Bound { return i.lb }

// Upper returns the greatest value. Undefined on the empty interval.
func (i Interval) Upper() Bound { return i.ub }

// Contains reports whether v lies in the interval.
func (i Interval) Contains(v Bound) bool {
	return !i.IsEmpty() && i.lb <= v && v <= i.ub
}

// IsSubset reports whether every value of i lies in o. The empty interval
// is a subset of everything.
func (i Interval) IsSubset(o Interval) bool {
	if i.IsEmpty() {
		return true
	}
	return !o.IsEmpty() && o.lb <= i.lb && i.ub <= o.ub
}

// Overlap reports whether the two intervals share at least one value.
func (i Interval) Overlap(o Interval) bool {
	return !i.IsEmpty() && !o.IsEmpty() && i.lb <= o.ub && o.lb <= i.ub
}

// IsDisjoint reports whether the two intervals share no value.
func (i Interval) IsDisjoint(o Interval) bool { return !i.Overlap(o) }

// Intersection returns the greatest interval included in both operands.
func (i Interval) Intersection(o Interval) Interval {
	return NewInterval(maxBound(i.lb, o.lb), minBound(i.ub, o.ub))
}

// Join returns the least interval including both operands (the convex hull).
func (i Interval) Join(o Interval) Interval {
	if i.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return i
	}
	return Interval{lb: minBound(i.lb, o.lb), ub: maxBound(i.ub, o.ub)}
}

// ShrinkLeft returns the interval with its lower bound raised to at least
// lb. Values below lb are removed; the result may be empty.
func (i Interval) ShrinkLeft(lb Bound) Interval {
	return NewInterval(maxBound(i.lb, lb), i.ub)
}

// ShrinkRight returns the interval with its upper bound lowered to at most
// ub. Values above ub are removed; the result may be empty.
func (i Interval) ShrinkRight(ub Bound) Interval {
	return NewInterval(i.lb, minBound(i.ub, ub))
}

// Difference returns the interval with v removed where that stays
// representable: v at a bound shrinks the interval, v outside is a no-op,
// and v strictly inside leaves the interval unchanged because an interval
// cannot carry a hole.
func (i Interval) Difference(v Bound) Interval {
	if i.IsEmpty() {
		return i
	}
	switch {
	case i.lb == v && i.ub == v:
		return EmptyInterval()
	case i.lb == v:
		return Interval{lb: i.lb + 1, ub: i.ub}
	case i.ub == v:
		return Interval{lb: i.lb, ub: i.ub - 1}
	default:
		return i
	}
}

// Equal reports whether both intervals denote the same set. All empty
// intervals compare equal.
func (i Interval) Equal(o Interval) bool {
	if i.IsEmpty() || o.IsEmpty() {
		return i.IsEmpty() == o.IsEmpty()
	}
	return i.lb == o.lb && i.ub == o.ub
}

// String returns a human-readable representation of the interval.
func (i Interval) String() string {
	if i.IsEmpty() {
		return "{}"
	}
	if i.IsSingleton() {
		return fmt.Sprintf("{%d}", i.lb)
	}
	return fmt.Sprintf("[%d..%d]", i.lb, i.ub)
}

func minBound(a, b Bound) Bound {
	if a < b {
		return a
	}
	return b
}

func maxBound(a, b Bound) Bound {
	if a > b {
		return a
	}
	return b
}
