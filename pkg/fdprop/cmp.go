package fdprop

import "fmt"

// Comparison propagators over terms. XEqY, XLessYPlusC and XNeqYPlusC are
// the primitives; every other comparison is a constructor that rewrites
// into one of them:
//
//	x < y      ⇒  x < y + 0
//	x ≤ y      ⇒  x < y + 1
//	x > y      ⇒  y < x
//	x ≥ y      ⇒  y ≤ x
//	x ≠ y      ⇒  x ≠ y + 0
//	x op c     ⇒  x op Constant(c)
//
// Filtering is bounds-based: intentionally weaker than arc-consistency,
// with the search providing the final consistency check.

// XEqY enforces x = y by narrowing both sides to the intersection of
// their domains.
type XEqY struct {
	x, y Term
}

// NewXEqY returns the propagator for x = y.
func NewXEqY(x, y Term) *XEqY { return &XEqY{x: x, y: y} }

// IsSubsumed implements Propagator. Entailed when both sides are the same
// singleton, disentailed when the domains are disjoint.
func (p *XEqY) IsSubsumed(s *VarStore) Trilean {
	dx := p.x.Read(s)
	dy := p.y.Read(s)
	switch {
	case dx.IsDisjoint(dy):
		return TriFalse
	case dx.Lower() == dy.Upper() && dx.Upper() == dy.Lower():
		return TriTrue
	default:
		return TriUnknown
	}
}

// Propagate implements Propagator.
func (p *XEqY) Propagate(s *VarStore) bool {
	inter := p.x.Read(s).Intersection(p.y.Read(s))
	return p.x.Update(s, inter) && p.y.Update(s, inter)
}

// Dependencies implements Propagator. Equality reacts to any removal.
func (p *XEqY) Dependencies() []VarEvent {
	return append(p.x.Dependencies(Inner), p.y.Dependencies(Inner)...)
}

// Clone implements Propagator.
func (p *XEqY) Clone() Propagator { return &XEqY{x: p.x.Clone(), y: p.y.Clone()} }

// String implements Propagator.
func (p *XEqY) String() string { return fmt.Sprintf("%v = %v", p.x, p.y) }

// XLessYPlusC enforces x < y + c with bounds filtering:
//
//	x ← shrinkRight(max(y) + c - 1)
//	y ← shrinkLeft(min(x) - c + 1)
type XLessYPlusC struct {
	x, y Term
	c    Bound
}

// NewXLessYPlusC returns the propagator for x < y + c.
func NewXLessYPlusC(x, y Term, c Bound) *XLessYPlusC {
	return &XLessYPlusC{x: x, y: y, c: c}
}

// NewXLessY returns the propagator for x < y.
func NewXLessY(x, y Term) *XLessYPlusC { return NewXLessYPlusC(x, y, 0) }

// NewXLeqY returns the propagator for x ≤ y.
func NewXLeqY(x, y Term) *XLessYPlusC { return NewXLessYPlusC(x, y, 1) }

// NewXGreaterY returns the propagator for x > y.
func NewXGreaterY(x, y Term) *XLessYPlusC { return NewXLessYPlusC(y, x, 0) }

// NewXGeqY returns the propagator for x ≥ y.
func NewXGeqY(x, y Term) *XLessYPlusC { return NewXLessYPlusC(y, x, 1) }

// NewXGreaterYPlusC returns the propagator for x > y + c.
func NewXGreaterYPlusC(x, y Term, c Bound) *XLessYPlusC {
	return NewXLessYPlusC(y, x, -c)
}

// NewXGeqYPlusC returns the propagator for x ≥ y + c.
func NewXGeqYPlusC(x, y Term, c Bound) *XLessYPlusC {
	return NewXLessYPlusC(y, x, 1-c)
}

// NewXLessC returns the propagator for x < c.
func NewXLessC(x Term, c Bound) *XLessYPlusC { return NewXLessYPlusC(x, NewConstant(c), 0) }

// NewXLeqC returns the propagator for x ≤ c.
func NewXLeqC(x Term, c Bound) *XLessYPlusC { return NewXLessYPlusC(x, NewConstant(c), 1) }

// NewXGreaterC returns the propagator for x > c.
func NewXGreaterC(x Term, c Bound) *XLessYPlusC { return NewXGreaterY(x, NewConstant(c)) }

// NewXGeqC returns the propagator for x ≥ c.
func NewXGeqC(x Term, c Bound) *XLessYPlusC { return NewXGeqY(x, NewConstant(c)) }

// IsSubsumed implements Propagator.
//
//	Disentailed:      |--x--|        Entailed:  |--x--|
//	            |--y+c--|                              |--y+c--|
func (p *XLessYPlusC) IsSubsumed(s *VarStore) Trilean {
	dx := p.x.Read(s)
	dy := p.y.Read(s)
	switch {
	case dx.Lower() > dy.Upper()+p.c:
		return TriFalse
	case dx.Upper() < dy.Lower()+p.c:
		return TriTrue
	default:
		return TriUnknown
	}
}

// Propagate implements Propagator.
func (p *XLessYPlusC) Propagate(s *VarStore) bool {
	dy := p.y.Read(s)
	if !p.x.Update(s, p.x.Read(s).ShrinkRight(dy.Upper()+p.c-1)) {
		return false
	}
	dx := p.x.Read(s)
	return p.y.Update(s, p.y.Read(s).ShrinkLeft(dx.Lower()-p.c+1))
}

// Dependencies implements Propagator. Only bound moves matter.
func (p *XLessYPlusC) Dependencies() []VarEvent {
	return append(p.x.Dependencies(BoundChange), p.y.Dependencies(BoundChange)...)
}

// Clone implements Propagator.
func (p *XLessYPlusC) Clone() Propagator {
	return &XLessYPlusC{x: p.x.Clone(), y: p.y.Clone(), c: p.c}
}

// String implements Propagator.
func (p *XLessYPlusC) String() string {
	if p.c == 0 {
		return fmt.Sprintf("%v < %v", p.x, p.y)
	}
	return fmt.Sprintf("%v < %v + %d", p.x, p.y, p.c)
}

// XNeqYPlusC enforces x ≠ y + c. Filtering only fires when one side is a
// singleton: the forced value is removed from the other side's domain.
// With interval domains the removal takes effect only when the value sits
// on a bound; an interior value waits until the bounds close in on it.
type XNeqYPlusC struct {
	x, y Term
	c    Bound
}

// NewXNeqYPlusC returns the propagator for x ≠ y + c.
func NewXNeqYPlusC(x, y Term, c Bound) *XNeqYPlusC {
	return &XNeqYPlusC{x: x, y: y, c: c}
}

// NewXNeqY returns the propagator for x ≠ y.
func NewXNeqY(x, y Term) *XNeqYPlusC { return NewXNeqYPlusC(x, y, 0) }

// NewXNeqC returns the propagator for x ≠ c.
func NewXNeqC(x Term, c Bound) *XNeqYPlusC { return NewXNeqYPlusC(x, NewConstant(c), 0) }

// IsSubsumed implements Propagator. Disentailed when both sides are
// singletons offset by exactly c; entailed when the shifted domains are
// disjoint.
func (p *XNeqYPlusC) IsSubsumed(s *VarStore) Trilean {
	dx := p.x.Read(s)
	dy := p.y.Read(s)
	switch {
	case dx.Lower() == dy.Upper()+p.c && dx.Upper() == dy.Lower()+p.c:
		return TriFalse
	case dx.Lower() > dy.Upper()+p.c || dx.Upper() < dy.Lower()+p.c:
		return TriTrue
	default:
		return TriUnknown
	}
}

// Propagate implements Propagator.
func (p *XNeqYPlusC) Propagate(s *VarStore) bool {
	dx := p.x.Read(s)
	dy := p.y.Read(s)
	switch {
	case dx.IsSingleton():
		return p.y.Update(s, dy.Difference(dx.Lower()-p.c))
	case dy.IsSingleton():
		return p.x.Update(s, dx.Difference(dy.Lower()+p.c))
	default:
		return true
	}
}

// Dependencies implements Propagator.
func (p *XNeqYPlusC) Dependencies() []VarEvent {
	return append(p.x.Dependencies(Inner), p.y.Dependencies(Inner)...)
}

// Clone implements Propagator.
func (p *XNeqYPlusC) Clone() Propagator {
	return &XNeqYPlusC{x: p.x.Clone(), y: p.y.Clone(), c: p.c}
}

// String implements Propagator.
func (p *XNeqYPlusC) String() string {
	if p.c == 0 {
		return fmt.Sprintf("%v != %v", p.x, p.y)
	}
	return fmt.Sprintf("%v != %v + %d", p.x, p.y, p.c)
}
