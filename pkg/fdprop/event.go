package fdprop

// Event classifies how a domain contracted during a monotonic update.
// Events form a totally ordered lattice by strength:
//
//	Inner < BoundChange < Assignment
//
// The scheduler uses the order to decide which propagators to wake: a
// propagator registered for an event is woken by that event and by every
// stronger one.
type Event int

const (
	// Inner indicates a value was removed strictly inside the domain:
	// the domain contracted but neither bound moved. Interval domains
	// never produce Inner (holes are unrepresentable); it is kept for
	// richer domain representations.
	Inner Event = iota

	// BoundChange indicates the lower or upper bound moved strictly
	// inward without reaching a singleton.
	BoundChange

	// Assignment indicates the domain became a singleton.
	Assignment
)

// numEvents is the size of the per-variable reactor tables.
const numEvents = 3

// String returns a human-readable representation of the event.
func (e Event) String() string {
	switch e {
	case Inner:
		return "inner"
	case BoundChange:
		return "bound"
	case Assignment:
		return "assignment"
	default:
		return "unknown-event"
	}
}

// Merge combines two events observed on the same variable, keeping the
// stronger of the two (the join in the event lattice). Merge is
// commutative and idempotent.
func (e Event) Merge(o Event) Event {
	if o > e {
		return o
	}
	return e
}

// EventOf derives the event describing the contraction from old to new.
// Both domains must be non-empty and new must be a strict subset of old;
// the variable store guarantees this before calling.
func EventOf(newDom, oldDom Interval) Event {
	if newDom.IsSingleton() && !oldDom.IsSingleton() {
		return Assignment
	}
	if newDom.Lower() > oldDom.Lower() || newDom.Upper() < oldDom.Upper() {
		return BoundChange
	}
	return Inner
}

// VarEvent pairs a variable index with an event. Propagator dependencies
// and drained deltas are both expressed as VarEvent lists.
type VarEvent struct {
	Var   int
	Event Event
}
