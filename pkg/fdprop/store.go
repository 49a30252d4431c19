package fdprop

import (
	"fmt"
	"sort"
	"strings"
)

// VarStore is the arena of variable domains. Variables are identified by
// dense integer indices in allocation order; a variable is never removed
// and its domain only ever shrinks.
//
// Update is the single mutator. Each strict contraction derives an Event
// from the old and new domain and merges it into the delta buffer, which
// the scheduler drains between propagator runs.
//
// Invariant: every stored domain is non-empty. The empty domain is only a
// transient failure signal returned through Update; it is never stored.
type VarStore struct {
	memory Memory
	delta  map[int]Event
}

// NewVarStore returns a store backed by CopyMemory, the default for
// search.
func NewVarStore() *VarStore {
	return NewVarStoreWith(NewCopyMemory())
}

// NewVarStoreWith returns a store backed by the given memory.
func NewVarStoreWith(m Memory) *VarStore {
	return &VarStore{
		memory: m,
		delta:  make(map[int]Event),
	}
}

// Alloc registers a fresh variable with the given initial domain and
// returns its identity view. Indices are assigned in allocation order.
// Panics if the domain is empty: a variable must always be inhabited.
func (s *VarStore) Alloc(d Interval) Identity {
	if d.IsEmpty() {
		panic("fdprop: cannot allocate a variable with an empty domain")
	}
	idx := s.memory.Size()
	s.memory.Push(d)
	return Identity{index: idx}
}

// Read returns the current domain of the variable at index i.
func (s *VarStore) Read(i int) Interval {
	return s.memory.Read(i)
}

// Update attempts to replace the domain of variable i with d. Three
// outcomes:
//
//  1. d is empty: propagation failed; the store is unchanged and Update
//     returns false.
//  2. d has the same size as the current domain: no progress; returns
//     true without recording a delta.
//  3. d is strictly smaller: the domain is replaced, the event derived
//     from (d, old) is merged into the delta, and Update returns true.
//
// d must be a subset of the current domain; a non-monotonic update is a
// programming error and panics.
func (s *VarStore) Update(i int, d Interval) bool {
	current := s.memory.Read(i)
	if !d.IsSubset(current) {
		panic(fmt.Sprintf("fdprop: domain update must be monotonic (variable %d: %s is not a subset of %s)", i, d, current))
	}
	if d.IsEmpty() {
		return false
	}
	if d.Size() < current.Size() {
		old := s.memory.Replace(i, d)
		ev := EventOf(d, old)
		if prev, ok := s.delta[i]; ok {
			ev = prev.Merge(ev)
		}
		s.delta[i] = ev
	}
	return true
}

// Size returns the number of allocated variables.
func (s *VarStore) Size() int { return s.memory.Size() }

// Iterate calls f for each variable in index order.
func (s *VarStore) Iterate(f func(i int, d Interval)) {
	s.memory.Iterate(f)
}

// HasChanged reports whether updates have accumulated since the last
// drain.
func (s *VarStore) HasChanged() bool { return len(s.delta) > 0 }

// DrainDelta atomically empties the delta buffer and returns the merged
// events in ascending variable order. A second drain with no intervening
// update returns nil.
func (s *VarStore) DrainDelta() []VarEvent {
	if len(s.delta) == 0 {
		return nil
	}
	events := make([]VarEvent, 0, len(s.delta))
	for i, ev := range s.delta {
		events = append(events, VarEvent{Var: i, Event: ev})
	}
	sort.Slice(events, func(a, b int) bool { return events[a].Var < events[b].Var })
	s.delta = make(map[int]Event)
	return events
}

// String returns a human-readable listing of the store's domains.
func (s *VarStore) String() string {
	var b strings.Builder
	b.WriteByte('[')
	s.memory.Iterate(func(i int, d Interval) {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "v%d=%s", i, d)
	})
	b.WriteByte(']')
	return b.String()
}

// Freeze consumes the store and returns a restorable snapshot. Any
// pending delta is discarded: a frozen node has been fully propagated and
// observed, so its changes are no longer of interest.
func (s *VarStore) Freeze() *FrozenVarStore {
	return &FrozenVarStore{frozen: s.memory.Freeze()}
}

// FrozenVarStore is a frozen snapshot of a VarStore.
type FrozenVarStore struct {
	frozen FrozenMemory
}

// VarStoreLabel is a restore point for a frozen variable store.
type VarStoreLabel struct {
	label MemoryLabel
}

// Label returns a restore point for the frozen state.
func (f *FrozenVarStore) Label() VarStoreLabel {
	return VarStoreLabel{label: f.frozen.Label()}
}

// Restore rebuilds a live store equal to the one frozen, with an empty
// delta buffer.
func (f *FrozenVarStore) Restore(l VarStoreLabel) *VarStore {
	return NewVarStoreWith(f.frozen.Restore(l.label))
}
