package fdprop

import "fmt"

// Ternary arithmetic propagators with interval-bound reasoning. Each
// propagator narrows every operand from the bounds of the other two; as
// with the comparison propagators, completeness is delegated to search.

// XEqYPlusZ enforces x = y + z:
//
//	x ← x ∩ [min(y)+min(z), max(y)+max(z)]
//	y ← y ∩ [min(x)-max(z), max(x)-min(z)]
//	z ← z ∩ [min(x)-max(y), max(x)-min(y)]
type XEqYPlusZ struct {
	x, y, z Term
}

// NewXEqYPlusZ returns the propagator for x = y + z.
func NewXEqYPlusZ(x, y, z Term) *XEqYPlusZ { return &XEqYPlusZ{x: x, y: y, z: z} }

// IsSubsumed implements Propagator.
func (p *XEqYPlusZ) IsSubsumed(s *VarStore) Trilean {
	dx := p.x.Read(s)
	dy := p.y.Read(s)
	dz := p.z.Read(s)
	if dx.Upper() < dy.Lower()+dz.Lower() || dx.Lower() > dy.Upper()+dz.Upper() {
		return TriFalse
	}
	if dx.IsSingleton() && dy.IsSingleton() && dz.IsSingleton() {
		return TriTrue
	}
	return TriUnknown
}

// Propagate implements Propagator.
func (p *XEqYPlusZ) Propagate(s *VarStore) bool {
	dy := p.y.Read(s)
	dz := p.z.Read(s)
	if !p.x.Update(s, p.x.Read(s).Intersection(NewInterval(dy.Lower()+dz.Lower(), dy.Upper()+dz.Upper()))) {
		return false
	}
	dx := p.x.Read(s)
	dz = p.z.Read(s)
	if !p.y.Update(s, p.y.Read(s).Intersection(NewInterval(dx.Lower()-dz.Upper(), dx.Upper()-dz.Lower()))) {
		return false
	}
	dx = p.x.Read(s)
	dy = p.y.Read(s)
	return p.z.Update(s, p.z.Read(s).Intersection(NewInterval(dx.Lower()-dy.Upper(), dx.Upper()-dy.Lower())))
}

// Dependencies implements Propagator.
func (p *XEqYPlusZ) Dependencies() []VarEvent {
	deps := append(p.x.Dependencies(BoundChange), p.y.Dependencies(BoundChange)...)
	return append(deps, p.z.Dependencies(BoundChange)...)
}

// Clone implements Propagator.
func (p *XEqYPlusZ) Clone() Propagator {
	return &XEqYPlusZ{x: p.x.Clone(), y: p.y.Clone(), z: p.z.Clone()}
}

// String implements Propagator.
func (p *XEqYPlusZ) String() string { return fmt.Sprintf("%v = %v + %v", p.x, p.y, p.z) }

// XGreaterEqYPlusZ enforces x ≥ y + z, the capacity-row propagator of the
// cumulative decomposition.
type XGreaterEqYPlusZ struct {
	x, y, z Term
}

// NewXGeqYPlusZ returns the propagator for x ≥ y + z.
func NewXGeqYPlusZ(x, y, z Term) *XGreaterEqYPlusZ {
	return &XGreaterEqYPlusZ{x: x, y: y, z: z}
}

// IsSubsumed implements Propagator.
func (p *XGreaterEqYPlusZ) IsSubsumed(s *VarStore) Trilean {
	dx := p.x.Read(s)
	dy := p.y.Read(s)
	dz := p.z.Read(s)
	switch {
	case dx.Lower() >= dy.Upper()+dz.Upper():
		return TriTrue
	case dx.Upper() < dy.Lower()+dz.Lower():
		return TriFalse
	default:
		return TriUnknown
	}
}

// Propagate implements Propagator.
func (p *XGreaterEqYPlusZ) Propagate(s *VarStore) bool {
	dy := p.y.Read(s)
	dz := p.z.Read(s)
	if !p.x.Update(s, p.x.Read(s).ShrinkLeft(dy.Lower()+dz.Lower())) {
		return false
	}
	dx := p.x.Read(s)
	dz = p.z.Read(s)
	if !p.y.Update(s, p.y.Read(s).ShrinkRight(dx.Upper()-dz.Lower())) {
		return false
	}
	dx = p.x.Read(s)
	dy = p.y.Read(s)
	return p.z.Update(s, p.z.Read(s).ShrinkRight(dx.Upper()-dy.Lower()))
}

// Dependencies implements Propagator.
func (p *XGreaterEqYPlusZ) Dependencies() []VarEvent {
	deps := append(p.x.Dependencies(BoundChange), p.y.Dependencies(BoundChange)...)
	return append(deps, p.z.Dependencies(BoundChange)...)
}

// Clone implements Propagator.
func (p *XGreaterEqYPlusZ) Clone() Propagator {
	return &XGreaterEqYPlusZ{x: p.x.Clone(), y: p.y.Clone(), z: p.z.Clone()}
}

// String implements Propagator.
func (p *XGreaterEqYPlusZ) String() string { return fmt.Sprintf("%v >= %v + %v", p.x, p.y, p.z) }

// XLessYPlusZ enforces x < y + z, the overlap test of the cumulative
// decomposition (s[j] < s[i] + d[i]).
type XLessYPlusZ struct {
	x, y, z Term
}

// NewXLessYPlusZ returns the propagator for x < y + z.
func NewXLessYPlusZ(x, y, z Term) *XLessYPlusZ { return &XLessYPlusZ{x: x, y: y, z: z} }

// IsSubsumed implements Propagator.
func (p *XLessYPlusZ) IsSubsumed(s *VarStore) Trilean {
	dx := p.x.Read(s)
	dy := p.y.Read(s)
	dz := p.z.Read(s)
	switch {
	case dx.Upper() < dy.Lower()+dz.Lower():
		return TriTrue
	case dx.Lower() >= dy.Upper()+dz.Upper():
		return TriFalse
	default:
		return TriUnknown
	}
}

// Propagate implements Propagator.
func (p *XLessYPlusZ) Propagate(s *VarStore) bool {
	dy := p.y.Read(s)
	dz := p.z.Read(s)
	if !p.x.Update(s, p.x.Read(s).ShrinkRight(dy.Upper()+dz.Upper()-1)) {
		return false
	}
	dx := p.x.Read(s)
	dz = p.z.Read(s)
	if !p.y.Update(s, p.y.Read(s).ShrinkLeft(dx.Lower()-dz.Upper()+1)) {
		return false
	}
	dx = p.x.Read(s)
	dy = p.y.Read(s)
	return p.z.Update(s, p.z.Read(s).ShrinkLeft(dx.Lower()-dy.Upper()+1))
}

// Dependencies implements Propagator.
func (p *XLessYPlusZ) Dependencies() []VarEvent {
	deps := append(p.x.Dependencies(BoundChange), p.y.Dependencies(BoundChange)...)
	return append(deps, p.z.Dependencies(BoundChange)...)
}

// Clone implements Propagator.
func (p *XLessYPlusZ) Clone() Propagator {
	return &XLessYPlusZ{x: p.x.Clone(), y: p.y.Clone(), z: p.z.Clone()}
}

// String implements Propagator.
func (p *XLessYPlusZ) String() string { return fmt.Sprintf("%v < %v + %v", p.x, p.y, p.z) }

// XEqYMulZ enforces x = y * z. Forward filtering intersects x with the
// hull of the endpoint products. Backward filtering handles the cases the
// decompositions need: a singleton factor divides through to the other
// operands, and a strictly positive product forces both factors away from
// zero - which, when y is a Bool2Int view, triggers the reified
// constraint's forward propagation.
type XEqYMulZ struct {
	x, y, z Term
}

// NewXEqYMulZ returns the propagator for x = y * z.
func NewXEqYMulZ(x, y, z Term) *XEqYMulZ { return &XEqYMulZ{x: x, y: y, z: z} }

// IsSubsumed implements Propagator.
func (p *XEqYMulZ) IsSubsumed(s *VarStore) Trilean {
	dx := p.x.Read(s)
	dy := p.y.Read(s)
	dz := p.z.Read(s)
	hull := mulHull(dy, dz)
	if dx.IsDisjoint(hull) {
		return TriFalse
	}
	if dx.IsSingleton() && dy.IsSingleton() && dz.IsSingleton() {
		return TriTrue
	}
	return TriUnknown
}

// Propagate implements Propagator.
func (p *XEqYMulZ) Propagate(s *VarStore) bool {
	dy := p.y.Read(s)
	dz := p.z.Read(s)
	if !p.x.Update(s, p.x.Read(s).Intersection(mulHull(dy, dz))) {
		return false
	}
	dx := p.x.Read(s)

	// A strictly positive (or negative) product rules out zero factors.
	if !dx.Contains(0) {
		if dy.Contains(0) {
			if !p.y.Update(s, p.y.Read(s).Difference(0)) {
				return false
			}
			dy = p.y.Read(s)
		}
		if dz.Contains(0) {
			if !p.z.Update(s, p.z.Read(s).Difference(0)) {
				return false
			}
			dz = p.z.Read(s)
		}
	}

	// Singleton factors divide through.
	if dy.IsSingleton() && dy.Lower() != 0 {
		if !p.z.Update(s, p.z.Read(s).Intersection(divHull(dx, dy.Lower()))) {
			return false
		}
	}
	if dy.IsSingleton() && dy.Lower() == 0 {
		if !p.x.Update(s, p.x.Read(s).Intersection(SingletonInterval(0))) {
			return false
		}
	}
	dz = p.z.Read(s)
	if dz.IsSingleton() && dz.Lower() != 0 {
		if !p.y.Update(s, p.y.Read(s).Intersection(divHull(p.x.Read(s), dz.Lower()))) {
			return false
		}
	}
	if dz.IsSingleton() && dz.Lower() == 0 {
		if !p.x.Update(s, p.x.Read(s).Intersection(SingletonInterval(0))) {
			return false
		}
	}
	return true
}

// Dependencies implements Propagator.
func (p *XEqYMulZ) Dependencies() []VarEvent {
	deps := append(p.x.Dependencies(BoundChange), p.y.Dependencies(BoundChange)...)
	return append(deps, p.z.Dependencies(BoundChange)...)
}

// Clone implements Propagator.
func (p *XEqYMulZ) Clone() Propagator {
	return &XEqYMulZ{x: p.x.Clone(), y: p.y.Clone(), z: p.z.Clone()}
}

// String implements Propagator.
func (p *XEqYMulZ) String() string { return fmt.Sprintf("%v = %v * %v", p.x, p.y, p.z) }

// mulHull returns the smallest interval containing {a*b | a ∈ y, b ∈ z}.
func mulHull(y, z Interval) Interval {
	if y.IsEmpty() || z.IsEmpty() {
		return EmptyInterval()
	}
	products := [4]Bound{
		y.Lower() * z.Lower(),
		y.Lower() * z.Upper(),
		y.Upper() * z.Lower(),
		y.Upper() * z.Upper(),
	}
	lo, hi := products[0], products[0]
	for _, v := range products[1:] {
		lo = minBound(lo, v)
		hi = maxBound(hi, v)
	}
	return NewInterval(lo, hi)
}

// divHull returns the smallest interval containing {v / k | v ∈ x, k
// divides v}, for a non-zero constant k.
func divHull(x Interval, k Bound) Interval {
	if x.IsEmpty() {
		return EmptyInterval()
	}
	lo := ceilDiv(x.Lower(), k)
	hi := floorDiv(x.Upper(), k)
	if k < 0 {
		lo = ceilDiv(x.Upper(), k)
		hi = floorDiv(x.Lower(), k)
	}
	return NewInterval(lo, hi)
}

// floorDiv is integer division rounding toward negative infinity.
func floorDiv(a, b Bound) Bound {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// ceilDiv is integer division rounding toward positive infinity.
func ceilDiv(a, b Bound) Bound {
	q := a / b
	if (a%b != 0) && ((a < 0) == (b < 0)) {
		q++
	}
	return q
}
