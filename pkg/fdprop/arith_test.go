package fdprop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXEqYPlusZ_Propagate(t *testing.T) {
	s := NewVarStore()
	x := s.Alloc(NewInterval(0, 100))
	y := s.Alloc(NewInterval(1, 5))
	z := s.Alloc(NewInterval(10, 20))
	p := NewXEqYPlusZ(x, y, z)

	assert.Equal(t, TriUnknown, p.IsSubsumed(s))
	assert.True(t, p.Propagate(s))
	assert.True(t, x.Read(s).Equal(NewInterval(11, 25)))
	assert.True(t, y.Read(s).Equal(NewInterval(1, 5)))
	assert.True(t, z.Read(s).Equal(NewInterval(10, 20)))
}

func TestXEqYPlusZ_BackwardNarrowing(t *testing.T) {
	s := NewVarStore()
	x := s.Alloc(SingletonInterval(10))
	y := s.Alloc(NewInterval(0, 8))
	z := s.Alloc(SingletonInterval(4))
	p := NewXEqYPlusZ(x, y, z)

	assert.True(t, p.Propagate(s))
	assert.True(t, y.Read(s).Equal(SingletonInterval(6)))
	assert.Equal(t, TriTrue, p.IsSubsumed(s))
}

func TestXEqYPlusZ_Disentailed(t *testing.T) {
	s := NewVarStore()
	x := s.Alloc(NewInterval(0, 5))
	y := s.Alloc(NewInterval(10, 12))
	z := s.Alloc(NewInterval(10, 12))
	p := NewXEqYPlusZ(x, y, z)

	assert.Equal(t, TriFalse, p.IsSubsumed(s))
	assert.False(t, p.Propagate(s))
}

func TestXGeqYPlusZ_Propagate(t *testing.T) {
	s := NewVarStore()
	x := s.Alloc(NewInterval(0, 10))
	y := s.Alloc(NewInterval(4, 8))
	z := s.Alloc(NewInterval(3, 9))
	p := NewXGeqYPlusZ(x, y, z)

	assert.Equal(t, TriUnknown, p.IsSubsumed(s))
	assert.True(t, p.Propagate(s))
	// x >= min(y)+min(z) = 7; y <= max(x)-min(z) = 7; z <= max(x)-min(y) = 6.
	assert.True(t, x.Read(s).Equal(NewInterval(7, 10)))
	assert.True(t, y.Read(s).Equal(NewInterval(4, 7)))
	assert.True(t, z.Read(s).Equal(NewInterval(3, 6)))
}

func TestXGeqYPlusZ_Entailment(t *testing.T) {
	s := NewVarStore()
	x := s.Alloc(NewInterval(20, 30))
	y := s.Alloc(NewInterval(0, 5))
	z := s.Alloc(NewInterval(0, 5))
	p := NewXGeqYPlusZ(x, y, z)
	assert.Equal(t, TriTrue, p.IsSubsumed(s))

	s2 := NewVarStore()
	x2 := s2.Alloc(SingletonInterval(3))
	y2 := s2.Alloc(SingletonInterval(2))
	z2 := s2.Alloc(SingletonInterval(2))
	p2 := NewXGeqYPlusZ(x2, y2, z2)
	assert.Equal(t, TriFalse, p2.IsSubsumed(s2))
	assert.False(t, p2.Propagate(s2))
}

func TestXLessYPlusZ_Propagate(t *testing.T) {
	s := NewVarStore()
	x := s.Alloc(NewInterval(0, 20))
	y := s.Alloc(NewInterval(0, 5))
	z := s.Alloc(NewInterval(0, 5))
	p := NewXLessYPlusZ(x, y, z)

	assert.Equal(t, TriUnknown, p.IsSubsumed(s))
	assert.True(t, p.Propagate(s))
	// x < max(y)+max(z) = 10, so x <= 9.
	assert.True(t, x.Read(s).Equal(NewInterval(0, 9)))
}

func TestXLessYPlusZ_Entailment(t *testing.T) {
	s := NewVarStore()
	x := s.Alloc(NewInterval(0, 3))
	y := s.Alloc(NewInterval(2, 5))
	z := s.Alloc(NewInterval(2, 5))
	p := NewXLessYPlusZ(x, y, z)
	assert.Equal(t, TriTrue, p.IsSubsumed(s))

	s2 := NewVarStore()
	x2 := s2.Alloc(NewInterval(10, 12))
	y2 := s2.Alloc(NewInterval(0, 5))
	z2 := s2.Alloc(NewInterval(0, 5))
	p2 := NewXLessYPlusZ(x2, y2, z2)
	assert.Equal(t, TriFalse, p2.IsSubsumed(s2))
}

func TestXEqYMulZ_Forward(t *testing.T) {
	s := NewVarStore()
	x := s.Alloc(NewInterval(0, 100))
	y := s.Alloc(NewInterval(0, 1))
	z := s.Alloc(SingletonInterval(7))
	p := NewXEqYMulZ(x, y, z)

	assert.True(t, p.Propagate(s))
	assert.True(t, x.Read(s).Equal(NewInterval(0, 7)))
}

func TestXEqYMulZ_SingletonFactorDivides(t *testing.T) {
	s := NewVarStore()
	x := s.Alloc(SingletonInterval(6))
	y := s.Alloc(SingletonInterval(2))
	z := s.Alloc(NewInterval(0, 10))
	p := NewXEqYMulZ(x, y, z)

	assert.True(t, p.Propagate(s))
	assert.True(t, z.Read(s).Equal(SingletonInterval(3)))
	assert.Equal(t, TriTrue, p.IsSubsumed(s))
}

func TestXEqYMulZ_ZeroFactorForcesZero(t *testing.T) {
	s := NewVarStore()
	x := s.Alloc(NewInterval(0, 10))
	y := s.Alloc(SingletonInterval(0))
	z := s.Alloc(NewInterval(0, 10))
	p := NewXEqYMulZ(x, y, z)

	assert.True(t, p.Propagate(s))
	assert.True(t, x.Read(s).Equal(SingletonInterval(0)))
}

// A strictly positive product forces both factors away from zero; with a
// reified factor this triggers the wrapped constraint's propagation.
func TestXEqYMulZ_PositiveProductForcesReification(t *testing.T) {
	s := NewVarStore()
	a := s.Alloc(NewInterval(9, 10))
	b := s.Alloc(SingletonInterval(10))
	b2i := NewBool2Int(NewXEqY(a, b))

	x := s.Alloc(NewInterval(1, 7))
	z := s.Alloc(SingletonInterval(7))
	p := NewXEqYMulZ(x, b2i, z)

	assert.True(t, p.Propagate(s))
	// bool2int forced to 1 propagated a = b.
	assert.True(t, a.Read(s).Equal(SingletonInterval(10)))
	// The second run (as the fixed-point loop would schedule) collapses x.
	assert.True(t, p.Propagate(s))
	assert.True(t, x.Read(s).Equal(SingletonInterval(7)))
}

func TestXEqYMulZ_Disentailed(t *testing.T) {
	s := NewVarStore()
	x := s.Alloc(NewInterval(50, 60))
	y := s.Alloc(NewInterval(0, 1))
	z := s.Alloc(SingletonInterval(7))
	p := NewXEqYMulZ(x, y, z)

	assert.Equal(t, TriFalse, p.IsSubsumed(s))
	assert.False(t, p.Propagate(s))
}

func TestFloorCeilDiv(t *testing.T) {
	assert.Equal(t, 2, floorDiv(5, 2))
	assert.Equal(t, -3, floorDiv(-5, 2))
	assert.Equal(t, 3, ceilDiv(5, 2))
	assert.Equal(t, -2, ceilDiv(-5, 2))
	assert.Equal(t, 2, floorDiv(4, 2))
	assert.Equal(t, 2, ceilDiv(4, 2))
}
