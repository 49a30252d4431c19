package fdprop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterval_Basics(t *testing.T) {
	d := NewInterval(0, 10)
	assert.False(t, d.IsEmpty())
	assert.False(t, d.IsSingleton())
	assert.Equal(t, 11, d.Size())
	assert.Equal(t, 0, d.Lower())
	assert.Equal(t, 10, d.Upper())
	assert.True(t, d.Contains(0))
	assert.True(t, d.Contains(10))
	assert.False(t, d.Contains(11))
	assert.False(t, d.Contains(-1))

	s := SingletonInterval(5)
	assert.True(t, s.IsSingleton())
	assert.Equal(t, 1, s.Size())

	e := EmptyInterval()
	assert.True(t, e.IsEmpty())
	assert.Equal(t, 0, e.Size())
	assert.False(t, e.Contains(0))

	// An inverted constructor collapses to empty.
	assert.True(t, NewInterval(3, 1).IsEmpty())
}

func TestInterval_SubsetOverlap(t *testing.T) {
	d010 := NewInterval(0, 10)
	d19 := NewInterval(1, 9)
	d1020 := NewInterval(10, 20)
	d1120 := NewInterval(11, 20)

	assert.True(t, d19.IsSubset(d010))
	assert.False(t, d010.IsSubset(d19))
	assert.True(t, d010.IsSubset(d010))
	assert.True(t, EmptyInterval().IsSubset(d19))

	assert.True(t, d010.Overlap(d1020))
	assert.False(t, d010.Overlap(d1120))
	assert.True(t, d010.IsDisjoint(d1120))
	assert.False(t, d010.IsDisjoint(d1020))
}

func TestInterval_Intersection(t *testing.T) {
	d010 := NewInterval(0, 10)
	d1020 := NewInterval(10, 20)
	d1120 := NewInterval(11, 20)

	assert.True(t, d010.Intersection(d1020).Equal(SingletonInterval(10)))
	assert.True(t, d010.Intersection(d1120).IsEmpty())
	assert.True(t, d010.Intersection(NewInterval(1, 9)).Equal(NewInterval(1, 9)))
}

func TestInterval_Join(t *testing.T) {
	d02 := NewInterval(0, 2)
	d810 := NewInterval(8, 10)
	assert.True(t, d02.Join(d810).Equal(NewInterval(0, 10)))
	assert.True(t, d02.Join(EmptyInterval()).Equal(d02))
	assert.True(t, EmptyInterval().Join(d810).Equal(d810))
}

func TestInterval_Shrink(t *testing.T) {
	d := NewInterval(0, 10)
	assert.True(t, d.ShrinkLeft(5).Equal(NewInterval(5, 10)))
	assert.True(t, d.ShrinkLeft(-5).Equal(d))
	assert.True(t, d.ShrinkLeft(11).IsEmpty())
	assert.True(t, d.ShrinkRight(5).Equal(NewInterval(0, 5)))
	assert.True(t, d.ShrinkRight(15).Equal(d))
	assert.True(t, d.ShrinkRight(-1).IsEmpty())
}

func TestInterval_Difference(t *testing.T) {
	d := NewInterval(0, 10)
	assert.True(t, d.Difference(0).Equal(NewInterval(1, 10)))
	assert.True(t, d.Difference(10).Equal(NewInterval(0, 9)))
	// Interior values are unrepresentable holes: no change.
	assert.True(t, d.Difference(5).Equal(d))
	// Out of range: no change.
	assert.True(t, d.Difference(42).Equal(d))
	// Removing the only value empties the singleton.
	assert.True(t, SingletonInterval(3).Difference(3).IsEmpty())
}

func TestInterval_String(t *testing.T) {
	require.Equal(t, "[0..10]", NewInterval(0, 10).String())
	require.Equal(t, "{7}", SingletonInterval(7).String())
	require.Equal(t, "{}", EmptyInterval().String())
}
