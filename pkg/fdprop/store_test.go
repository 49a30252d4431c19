package fdprop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// consumeDelta drains the store and checks the merged events, then
// verifies a second drain is empty (delta exhaustivity).
func consumeDelta(t *testing.T, s *VarStore, expected []VarEvent) {
	t.Helper()
	got := s.DrainDelta()
	if len(expected) == 0 {
		assert.Empty(t, got)
	} else {
		assert.Equal(t, expected, got)
	}
	assert.Empty(t, s.DrainDelta(), "second drain must be empty until the next update")
	assert.False(t, s.HasChanged())
}

func TestVarStore_OrderedAlloc(t *testing.T) {
	s := NewVarStore()
	for i := 0; i < 10; i++ {
		v := s.Alloc(NewInterval(0, 10))
		assert.Equal(t, i, v.Index())
	}
	assert.Equal(t, 10, s.Size())
}

func TestVarStore_ValidReadUpdate(t *testing.T) {
	s := NewVarStore()
	dom := NewInterval(0, 10)
	target := SingletonInterval(5)
	vars := make([]Identity, 10)
	for i := range vars {
		vars[i] = s.Alloc(dom)
	}
	for _, v := range vars {
		assert.True(t, v.Read(s).Equal(dom))
		assert.True(t, v.Update(s, target))
		assert.True(t, v.Read(s).Equal(target))
	}
}

func TestVarStore_EmptyUpdateFails(t *testing.T) {
	s := NewVarStore()
	v := s.Alloc(SingletonInterval(5))
	assert.False(t, v.Update(s, EmptyInterval()))
	// Store unchanged, no delta.
	assert.True(t, v.Read(s).Equal(SingletonInterval(5)))
	consumeDelta(t, s, nil)
}

func TestVarStore_EmptyAllocPanics(t *testing.T) {
	s := NewVarStore()
	assert.Panics(t, func() { s.Alloc(EmptyInterval()) })
}

func TestVarStore_NonMonotonicUpdatePanics(t *testing.T) {
	s := NewVarStore()
	v := s.Alloc(NewInterval(0, 10))
	assert.Panics(t, func() { v.Update(s, SingletonInterval(11)) })
	assert.Panics(t, func() { v.Update(s, NewInterval(-5, 15)) })
}

func TestVarStore_ReadUnallocatedPanics(t *testing.T) {
	s := NewVarStore()
	assert.Panics(t, func() { s.Read(0) })
}

func TestVarStore_UpdateDeltas(t *testing.T) {
	cases := []struct {
		name    string
		source  Interval
		target  Interval
		deltas  []Event
		success bool
	}{
		{"no progress", NewInterval(0, 10), NewInterval(0, 10), nil, true},
		{"empty fails", NewInterval(0, 10), EmptyInterval(), nil, false},
		{"to singleton", NewInterval(0, 10), SingletonInterval(0), []Event{Assignment}, true},
		{"lower bound", NewInterval(0, 10), NewInterval(5, 10), []Event{BoundChange}, true},
		{"upper bound", NewInterval(0, 10), NewInterval(0, 5), []Event{BoundChange}, true},
		{"both bounds", NewInterval(0, 10), NewInterval(1, 9), []Event{BoundChange}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewVarStore()
			v := s.Alloc(tc.source)
			assert.Equal(t, tc.success, v.Update(s, tc.target))
			if !tc.success {
				return
			}
			expected := make([]VarEvent, 0, len(tc.deltas))
			for _, e := range tc.deltas {
				expected = append(expected, VarEvent{Var: v.Index(), Event: e})
			}
			consumeDelta(t, s, expected)
			assert.True(t, v.Read(s).Equal(tc.target))
		})
	}
}

func TestVarStore_ShrinkDeltas(t *testing.T) {
	shrinkLB := []struct {
		lb      Bound
		deltas  []Event
		success bool
	}{
		{0, nil, true},
		{10, []Event{Assignment}, true},
		{1, []Event{BoundChange}, true},
		{11, nil, false},
	}
	for _, tc := range shrinkLB {
		s := NewVarStore()
		v := s.Alloc(NewInterval(0, 10))
		assert.Equal(t, tc.success, v.Update(s, v.Read(s).ShrinkLeft(tc.lb)), "shrink left to %d", tc.lb)
		if tc.success {
			expected := make([]VarEvent, 0, len(tc.deltas))
			for _, e := range tc.deltas {
				expected = append(expected, VarEvent{Var: v.Index(), Event: e})
			}
			consumeDelta(t, s, expected)
		}
	}

	shrinkUB := []struct {
		ub      Bound
		deltas  []Event
		success bool
	}{
		{10, nil, true},
		{0, []Event{Assignment}, true},
		{1, []Event{BoundChange}, true},
		{-1, nil, false},
	}
	for _, tc := range shrinkUB {
		s := NewVarStore()
		v := s.Alloc(NewInterval(0, 10))
		assert.Equal(t, tc.success, v.Update(s, v.Read(s).ShrinkRight(tc.ub)), "shrink right to %d", tc.ub)
		if tc.success {
			expected := make([]VarEvent, 0, len(tc.deltas))
			for _, e := range tc.deltas {
				expected = append(expected, VarEvent{Var: v.Index(), Event: e})
			}
			consumeDelta(t, s, expected)
		}
	}
}

func TestVarStore_IntersectionDeltas(t *testing.T) {
	cases := []struct {
		name     string
		src1     Interval
		src2     Interval
		expected []VarEvent
		success  bool
	}{
		{"touching endpoints assign both", NewInterval(0, 10), NewInterval(10, 20),
			[]VarEvent{{Var: 0, Event: Assignment}, {Var: 1, Event: Assignment}}, true},
		{"nested narrows outer only", NewInterval(0, 10), NewInterval(1, 9),
			[]VarEvent{{Var: 0, Event: BoundChange}}, true},
		{"nested narrows outer only flipped", NewInterval(1, 9), NewInterval(0, 10),
			[]VarEvent{{Var: 1, Event: BoundChange}}, true},
		{"disjoint fails", NewInterval(0, 10), NewInterval(11, 20), nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewVarStore()
			v1 := s.Alloc(tc.src1)
			v2 := s.Alloc(tc.src2)
			inter := v1.Read(s).Intersection(v2.Read(s))
			assert.Equal(t, tc.success, v1.Update(s, inter))
			assert.Equal(t, tc.success, v2.Update(s, inter))
			if tc.success {
				consumeDelta(t, s, tc.expected)
			}
		})
	}
}

// Monotonicity: the domain sequence of a variable is weakly decreasing
// under subset through any sequence of successful updates.
func TestVarStore_Monotonicity(t *testing.T) {
	s := NewVarStore()
	v := s.Alloc(NewInterval(0, 100))
	previous := v.Read(s)
	for _, d := range []Interval{
		NewInterval(0, 80), NewInterval(10, 80), NewInterval(10, 80),
		NewInterval(20, 50), SingletonInterval(30),
	} {
		require.True(t, v.Update(s, d))
		current := v.Read(s)
		assert.True(t, current.IsSubset(previous))
		previous = current
	}
}

func TestVarStore_DeltaMergesToStrongest(t *testing.T) {
	s := NewVarStore()
	v := s.Alloc(NewInterval(0, 10))
	require.True(t, v.Update(s, NewInterval(1, 10)))  // BoundChange
	require.True(t, v.Update(s, SingletonInterval(5))) // Assignment
	consumeDelta(t, s, []VarEvent{{Var: v.Index(), Event: Assignment}})
}

func TestVarStore_FreezeRestoreRoundTrip(t *testing.T) {
	memories := map[string]func() Memory{
		"copy":  func() Memory { return NewCopyMemory() },
		"trail": func() Memory { return NewTrailMemory() },
	}
	for name, newMem := range memories {
		t.Run(name, func(t *testing.T) {
			s := NewVarStoreWith(newMem())
			s.Alloc(NewInterval(0, 10))
			s.Alloc(NewInterval(5, 20))
			v := s.Alloc(SingletonInterval(3))
			require.True(t, v.Update(s, SingletonInterval(3)))

			frozen := s.Freeze()
			label := frozen.Label()
			restored := frozen.Restore(label)

			require.Equal(t, 3, restored.Size())
			assert.True(t, restored.Read(0).Equal(NewInterval(0, 10)))
			assert.True(t, restored.Read(1).Equal(NewInterval(5, 20)))
			assert.True(t, restored.Read(2).Equal(SingletonInterval(3)))
			assert.False(t, restored.HasChanged())
		})
	}
}

// Restoring a copy snapshot twice yields independent stores.
func TestVarStore_CopyRestoreIndependence(t *testing.T) {
	s := NewVarStore()
	s.Alloc(NewInterval(0, 10))
	frozen := s.Freeze()

	left := frozen.Restore(frozen.Label())
	right := frozen.Restore(frozen.Label())
	require.True(t, left.Update(0, SingletonInterval(0)))
	assert.True(t, right.Read(0).Equal(NewInterval(0, 10)))
}

func TestTrailMemory_RestoreUnwinds(t *testing.T) {
	mem := NewTrailMemory()
	mem.Push(NewInterval(0, 10))
	mem.Push(NewInterval(0, 5))

	frozen := mem.Freeze()
	label := frozen.Label()

	mem.Replace(0, SingletonInterval(7))
	mem.Push(SingletonInterval(1))

	restored := frozen.Restore(label)
	require.Equal(t, 2, restored.Size())
	assert.True(t, restored.Read(0).Equal(NewInterval(0, 10)))
	assert.True(t, restored.Read(1).Equal(NewInterval(0, 5)))
}

func TestTrailMemory_NonLIFORestorePanics(t *testing.T) {
	mem := NewTrailMemory()
	mem.Push(NewInterval(0, 10))

	outer := mem.Freeze()
	outerLabel := outer.Label()

	mem.Replace(0, NewInterval(0, 5))
	inner := mem.Freeze()
	innerLabel := inner.Label()

	// Restoring the outer label first discards the inner mark; using the
	// inner label afterwards violates LIFO.
	outer.Restore(outerLabel)
	assert.Panics(t, func() { inner.Restore(innerLabel) })
}
