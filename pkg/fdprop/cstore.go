package fdprop

import (
	"fmt"
	"strings"
)

// CStore is the constraint store: an ordered collection of propagators
// plus the reactor and queue that schedule them. Propagators are
// allocated at model-build time or by decomposition and never removed;
// once entailed they are unsubscribed from the reactor and skipped for
// the rest of the space's life.
//
// CStore itself implements Propagator, so a nested store can sit under a
// Bool2Int view - that is the reification channel the Cumulative
// decomposition is built on.
type CStore struct {
	props    []Propagator
	deps     [][]VarEvent // dependency list captured at Alloc, for unsubscription
	entailed []bool
	reactor  *IndexedDeps
	monitor  *Monitor
}

// NewCStore returns an empty constraint store.
func NewCStore() *CStore {
	return &CStore{reactor: NewIndexedDeps()}
}

// SetMonitor attaches statistics collection to the store's propagation
// loop. Passing nil detaches.
func (c *CStore) SetMonitor(m *Monitor) { c.monitor = m }

// Alloc registers a propagator and subscribes its declared dependencies
// in the reactor. Returns the propagator's id (its position in the
// store).
func (c *CStore) Alloc(p Propagator) int {
	id := len(c.props)
	deps := p.Dependencies()
	c.props = append(c.props, p)
	c.deps = append(c.deps, deps)
	c.entailed = append(c.entailed, false)
	for _, dep := range deps {
		c.reactor.Subscribe(dep.Var, dep.Event, id)
	}
	return id
}

// Size returns the number of allocated propagators.
func (c *CStore) Size() int { return len(c.props) }

// Propagate runs the fixed-point loop over the variable store:
//
//  1. Enqueue every non-entailed propagator.
//  2. Pop a propagator and run its filtering; abort on failure.
//  3. Drain the store's delta and enqueue every propagator whose
//     subscription is matched by an observed event.
//  4. Check the popped propagator's entailment; entailed propagators are
//     retired from the reactor.
//
// Returns false as soon as any domain becomes empty; the variable store
// is then left partially updated, since the enclosing space is discarded
// or restored from a snapshot.
func (c *CStore) Propagate(vs *VarStore) bool {
	queue := NewRelaxedFifo(len(c.props))
	for id := range c.props {
		if !c.entailed[id] {
			queue.Push(id)
		}
	}

	for {
		id, ok := queue.Pop()
		if !ok {
			return true
		}
		if c.entailed[id] {
			continue
		}
		p := c.props[id]
		if c.monitor != nil {
			c.monitor.RecordPropagation()
		}
		if !p.Propagate(vs) {
			if c.monitor != nil {
				c.monitor.RecordFailure(p)
			}
			return false
		}
		for _, change := range vs.DrainDelta() {
			c.reactor.React(change.Var, change.Event, func(dep int) {
				if !c.entailed[dep] {
					queue.Push(dep)
				}
			})
		}
		if p.IsSubsumed(vs) == TriTrue {
			c.retire(id)
			if c.monitor != nil {
				c.monitor.RecordEntailment(p)
			}
		}
	}
}

// retire marks a propagator entailed and removes its reactor entries.
// Entailment is sticky, so the propagator never runs again in this store.
func (c *CStore) retire(id int) {
	c.entailed[id] = true
	for _, dep := range c.deps[id] {
		c.reactor.Unsubscribe(dep.Var, dep.Event, id)
	}
}

// IsSubsumed implements Propagator over the whole store: TriTrue iff
// every propagator is entailed, TriFalse iff any is disentailed,
// TriUnknown otherwise.
func (c *CStore) IsSubsumed(vs *VarStore) Trilean {
	result := TriTrue
	for id, p := range c.props {
		if c.entailed[id] {
			continue
		}
		switch p.IsSubsumed(vs) {
		case TriFalse:
			return TriFalse
		case TriUnknown:
			result = TriUnknown
		}
	}
	return result
}

// Dependencies implements Propagator: the union of the dependencies of
// every non-entailed propagator. Used when a nested store sits under a
// Bool2Int view.
func (c *CStore) Dependencies() []VarEvent {
	var deps []VarEvent
	for id := range c.props {
		if !c.entailed[id] {
			deps = append(deps, c.deps[id]...)
		}
	}
	return deps
}

// Clone implements Propagator: a deep copy with independent entailment
// flags and reactor state.
func (c *CStore) Clone() Propagator {
	clone := &CStore{
		props:    make([]Propagator, len(c.props)),
		deps:     make([][]VarEvent, len(c.deps)),
		entailed: append([]bool(nil), c.entailed...),
		reactor:  c.reactor.clone(),
	}
	for i, p := range c.props {
		clone.props[i] = p.Clone()
	}
	for i, deps := range c.deps {
		clone.deps[i] = append([]VarEvent(nil), deps...)
	}
	return clone
}

// String implements Propagator.
func (c *CStore) String() string {
	parts := make([]string, 0, len(c.props))
	for id, p := range c.props {
		if c.entailed[id] {
			continue
		}
		parts = append(parts, p.String())
	}
	return fmt.Sprintf("cstore{%s}", strings.Join(parts, "; "))
}

// Freeze consumes the store and returns a restorable snapshot. The
// frozen store must not be used afterwards.
func (c *CStore) Freeze() *FrozenCStore {
	return &FrozenCStore{store: c}
}

// FrozenCStore is a frozen snapshot of a CStore.
type FrozenCStore struct {
	store *CStore
}

// CStoreLabel is a restore point for a frozen constraint store.
type CStoreLabel struct {
	store *CStore
}

// Label returns a restore point for the frozen state.
func (f *FrozenCStore) Label() CStoreLabel {
	return CStoreLabel{store: f.store}
}

// Restore rebuilds a live store equal to the one frozen. Each restore
// returns an independent clone, so sibling children never share
// entailment state.
func (f *FrozenCStore) Restore(l CStoreLabel) *CStore {
	if l.store != f.store {
		panic("fdprop: label does not belong to this CStore snapshot")
	}
	clone := l.store.Clone().(*CStore)
	clone.monitor = l.store.monitor
	return clone
}
