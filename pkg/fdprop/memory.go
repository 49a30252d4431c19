package fdprop

import "fmt"

// Memory is the storage adapter backing a VarStore: a push-extendable
// ordered container of domains with indexed read/write and a freeze
// contract for backtracking search.
//
// Two conforming implementations are provided. CopyMemory snapshots by
// deep copy and restores in O(n); TrailMemory snapshots by recording an
// undo log and restores by unwinding it. The contract is behavioral only:
// a restored memory must compare equal to the one frozen.
type Memory interface {
	// Size returns the number of stored domains.
	Size() int

	// Read returns the domain at index i. Panics if i is out of range.
	Read(i int) Interval

	// Push appends a domain, extending the container by one slot.
	Push(d Interval)

	// Replace stores d at index i and returns the previous domain.
	Replace(i int, d Interval) Interval

	// Iterate calls f for each stored domain in index order.
	Iterate(f func(i int, d Interval))

	// Freeze consumes the memory and returns a restorable snapshot.
	// The live memory must not be used after Freeze.
	Freeze() FrozenMemory
}

// FrozenMemory is a frozen snapshot of a Memory. Label captures the frozen
// state; Restore rebuilds a live memory equal to the one frozen.
//
// Labels taken from the same snapshot must be restored in LIFO order; the
// trail variant enforces this, the copy variant tolerates any order.
type FrozenMemory interface {
	// Label returns a restore point for the frozen state. May be called
	// once per child to explore.
	Label() MemoryLabel

	// Restore rebuilds a live memory from a label.
	Restore(l MemoryLabel) Memory
}

// MemoryLabel is an opaque restore point produced by FrozenMemory.Label.
type MemoryLabel interface{}

// CopyMemory stores domains in a plain slice and snapshots by deep copy.
// Restores are independent of each other, so labels may be consumed in
// any order. This is the default memory for search.
type CopyMemory struct {
	doms []Interval
}

// NewCopyMemory returns an empty copy-on-freeze memory.
func NewCopyMemory() *CopyMemory {
	return &CopyMemory{doms: make([]Interval, 0, 16)}
}

// Size implements Memory.
func (m *CopyMemory) Size() int { return len(m.doms) }

// Read implements Memory.
func (m *CopyMemory) Read(i int) Interval {
	m.checkIndex(i)
	return m.doms[i]
}

// Push implements Memory.
func (m *CopyMemory) Push(d Interval) { m.doms = append(m.doms, d) }

// Replace implements Memory.
func (m *CopyMemory) Replace(i int, d Interval) Interval {
	m.checkIndex(i)
	old := m.doms[i]
	m.doms[i] = d
	return old
}

// Iterate implements Memory.
func (m *CopyMemory) Iterate(f func(i int, d Interval)) {
	for i, d := range m.doms {
		f(i, d)
	}
}

// Freeze implements Memory. The snapshot takes ownership of the slice.
func (m *CopyMemory) Freeze() FrozenMemory {
	frozen := &frozenCopyMemory{doms: m.doms}
	m.doms = nil
	return frozen
}

func (m *CopyMemory) checkIndex(i int) {
	if i < 0 || i >= len(m.doms) {
		panic(fmt.Sprintf("fdprop: variable %d not registered in the store; indices must be obtained with Alloc", i))
	}
}

type frozenCopyMemory struct {
	doms []Interval
}

type copyLabel struct {
	doms []Interval // shared, read-only
}

// Label implements FrozenMemory. The label shares the frozen slice; the
// copy happens at restore time so siblings stay independent.
func (f *frozenCopyMemory) Label() MemoryLabel {
	return copyLabel{doms: f.doms}
}

// Restore implements FrozenMemory.
func (f *frozenCopyMemory) Restore(l MemoryLabel) Memory {
	label, ok := l.(copyLabel)
	if !ok {
		panic("fdprop: label does not belong to a CopyMemory snapshot")
	}
	doms := make([]Interval, len(label.doms))
	copy(doms, label.doms)
	return &CopyMemory{doms: doms}
}

// trailEntry records one undoable write: either a push (undone by popping)
// or a replace (undone by writing back the old domain).
type trailEntry struct {
	index  int
	old    Interval
	pushed bool
}

// TrailMemory stores domains in a slice and records every write in an
// undo trail. Freezing marks the trail; restoring unwinds back to the
// mark. All restores share the same underlying arrays, so labels must be
// consumed in strict LIFO order - restoring a deeper label after a
// shallower one has been restored panics.
type TrailMemory struct {
	doms  []Interval
	trail []trailEntry
}

// NewTrailMemory returns an empty trailing memory.
func NewTrailMemory() *TrailMemory {
	return &TrailMemory{
		doms:  make([]Interval, 0, 16),
		trail: make([]trailEntry, 0, 64),
	}
}

// Size implements Memory.
func (m *TrailMemory) Size() int { return len(m.doms) }

// Read implements Memory.
func (m *TrailMemory) Read(i int) Interval {
	m.checkIndex(i)
	return m.doms[i]
}

// Push implements Memory.
func (m *TrailMemory) Push(d Interval) {
	m.trail = append(m.trail, trailEntry{index: len(m.doms), pushed: true})
	m.doms = append(m.doms, d)
}

// Replace implements Memory.
func (m *TrailMemory) Replace(i int, d Interval) Interval {
	m.checkIndex(i)
	old := m.doms[i]
	m.trail = append(m.trail, trailEntry{index: i, old: old})
	m.doms[i] = d
	return old
}

// Iterate implements Memory.
func (m *TrailMemory) Iterate(f func(i int, d Interval)) {
	for i, d := range m.doms {
		f(i, d)
	}
}

// Freeze implements Memory. The snapshot shares the live arrays; restores
// unwind the trail back to the frozen mark.
func (m *TrailMemory) Freeze() FrozenMemory {
	return &frozenTrailMemory{mem: m, mark: len(m.trail)}
}

func (m *TrailMemory) checkIndex(i int) {
	if i < 0 || i >= len(m.doms) {
		panic(fmt.Sprintf("fdprop: variable %d not registered in the store; indices must be obtained with Alloc", i))
	}
}

// unwind rolls the trail back to length mark, undoing writes newest-first.
func (m *TrailMemory) unwind(mark int) {
	if mark > len(m.trail) {
		panic("fdprop: non-LIFO restore on TrailMemory; labels must be consumed in reverse order of creation")
	}
	for len(m.trail) > mark {
		e := m.trail[len(m.trail)-1]
		m.trail = m.trail[:len(m.trail)-1]
		if e.pushed {
			m.doms = m.doms[:len(m.doms)-1]
		} else {
			m.doms[e.index] = e.old
		}
	}
}

type frozenTrailMemory struct {
	mem  *TrailMemory
	mark int
}

type trailLabel struct {
	mem  *TrailMemory
	mark int
}

// Label implements FrozenMemory.
func (f *frozenTrailMemory) Label() MemoryLabel {
	return trailLabel{mem: f.mem, mark: f.mark}
}

// Restore implements FrozenMemory.
func (f *frozenTrailMemory) Restore(l MemoryLabel) Memory {
	label, ok := l.(trailLabel)
	if !ok {
		panic("fdprop: label does not belong to a TrailMemory snapshot")
	}
	if label.mem != f.mem {
		panic("fdprop: label does not belong to this TrailMemory snapshot")
	}
	label.mem.unwind(label.mark)
	return label.mem
}
