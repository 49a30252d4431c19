package fdprop

// IndexedDeps is the reactor: for each variable and event kind it keeps
// the set of propagators that declared interest. Waking follows the event
// order - an observed event wakes every propagator registered at that
// strength or weaker, since a stronger contraction subsumes the weaker
// ones (Assignment wakes Bound and Inner subscribers too).
type IndexedDeps struct {
	// deps[v][e] lists the propagator ids subscribed to event e on
	// variable v.
	deps [][numEvents][]int
}

// NewIndexedDeps returns an empty reactor.
func NewIndexedDeps() *IndexedDeps {
	return &IndexedDeps{}
}

// grow extends the per-variable tables to cover index v.
func (r *IndexedDeps) grow(v int) {
	for len(r.deps) <= v {
		r.deps = append(r.deps, [numEvents][]int{})
	}
}

// Subscribe registers propagator id for event e on variable v.
func (r *IndexedDeps) Subscribe(v int, e Event, id int) {
	r.grow(v)
	r.deps[v][e] = append(r.deps[v][e], id)
}

// Unsubscribe removes propagator id from event e on variable v. Removing
// an id that was never subscribed is a no-op.
func (r *IndexedDeps) Unsubscribe(v int, e Event, id int) {
	if v >= len(r.deps) {
		return
	}
	subs := r.deps[v][e]
	for i, sub := range subs {
		if sub == id {
			r.deps[v][e] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

// React calls f for every propagator interested in the observed event on
// variable v: all subscribers at strength observed or weaker.
func (r *IndexedDeps) React(v int, observed Event, f func(id int)) {
	if v >= len(r.deps) {
		return
	}
	for e := Inner; e <= observed; e++ {
		for _, id := range r.deps[v][e] {
			f(id)
		}
	}
}

// clone returns a deep copy of the reactor.
func (r *IndexedDeps) clone() *IndexedDeps {
	deps := make([][numEvents][]int, len(r.deps))
	for v := range r.deps {
		for e := 0; e < numEvents; e++ {
			if len(r.deps[v][e]) > 0 {
				deps[v][e] = append([]int(nil), r.deps[v][e]...)
			}
		}
	}
	return &IndexedDeps{deps: deps}
}

// RelaxedFifo is the propagation queue: FIFO dequeue order with set
// membership, so a propagator appears at most once at a time and
// re-insertion while queued is a no-op.
type RelaxedFifo struct {
	queue  []int
	queued []bool
}

// NewRelaxedFifo returns an empty queue sized for n propagators.
func NewRelaxedFifo(n int) *RelaxedFifo {
	return &RelaxedFifo{
		queue:  make([]int, 0, n),
		queued: make([]bool, n),
	}
}

// Push enqueues id unless it is already queued.
func (q *RelaxedFifo) Push(id int) {
	for len(q.queued) <= id {
		q.queued = append(q.queued, false)
	}
	if q.queued[id] {
		return
	}
	q.queued[id] = true
	q.queue = append(q.queue, id)
}

// Pop dequeues the oldest entry. The second result is false when the
// queue is empty.
func (q *RelaxedFifo) Pop() (int, bool) {
	if len(q.queue) == 0 {
		return 0, false
	}
	id := q.queue[0]
	q.queue = q.queue[1:]
	q.queued[id] = false
	return id, true
}

// Len returns the number of queued propagators.
func (q *RelaxedFifo) Len() int { return len(q.queue) }
