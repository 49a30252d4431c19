package fdprop

import "context"

// Search-tree visitor framework. Visitors compose by combinator
// stacking; a typical depth-first search for one solution reads:
//
//	search := NewOneSolution(NewPropagation(NewBrancher(FirstSmallestVar{}, BinarySplit{})))
//	search.Start(space)
//	frozen, status, _ := search.Enter(space)
//
// Enter consumes the space and returns its frozen state plus a status.
// When the status is Unknown the third result carries the remaining
// child branches; for every other status it is nil.

// Status classifies a search-tree node after a visitor processed it.
type Status int

const (
	// Satisfiable marks a solved space: every propagator entailed,
	// typically every variable a singleton.
	Satisfiable Status = iota
	// Unsatisfiable marks a failed space: propagation emptied a domain.
	Unsatisfiable
	// Unknown marks a space that still branches; the accompanying
	// branches enumerate its children.
	Unknown
	// EndOfSearch marks tree exhaustion.
	EndOfSearch
)

// String returns a human-readable representation of the status.
func (st Status) String() string {
	switch st {
	case Satisfiable:
		return "satisfiable"
	case Unsatisfiable:
		return "unsatisfiable"
	case Unknown:
		return "unknown"
	case EndOfSearch:
		return "end-of-search"
	default:
		return "invalid-status"
	}
}

// Visitor traverses the search tree.
type Visitor interface {
	// Start performs pre-traversal setup on the root space.
	Start(root *Space)

	// Enter consumes a space and returns its frozen state, a status,
	// and - when the status is Unknown - the pending child branches.
	Enter(space *Space) (*FrozenSpace, Status, []Branch)
}

// Propagation runs the space's constraint store to fixed point before
// delegating. Failure maps to Unsatisfiable, full subsumption to
// Satisfiable; everything else is forwarded to the child visitor.
type Propagation struct {
	child Visitor
}

// NewPropagation wraps a child visitor with fixed-point propagation.
func NewPropagation(child Visitor) *Propagation {
	return &Propagation{child: child}
}

// Start implements Visitor.
func (p *Propagation) Start(root *Space) { p.child.Start(root) }

// Enter implements Visitor.
func (p *Propagation) Enter(space *Space) (*FrozenSpace, Status, []Branch) {
	if !space.Propagate() {
		return space.Freeze(), Unsatisfiable, nil
	}
	if space.IsSubsumed() == TriTrue {
		return space.Freeze(), Satisfiable, nil
	}
	return p.child.Enter(space)
}

// BrancherVisitor distributes an unresolved space: the variable selector
// picks the branching variable, the distributor produces the children.
// It is the innermost combinator of a search stack.
type BrancherVisitor struct {
	varSel VarSelector
	dist   Distributor
}

// NewBrancher returns the branching combinator.
func NewBrancher(varSel VarSelector, dist Distributor) *BrancherVisitor {
	return &BrancherVisitor{varSel: varSel, dist: dist}
}

// Start implements Visitor.
func (b *BrancherVisitor) Start(*Space) {}

// Enter implements Visitor.
func (b *BrancherVisitor) Enter(space *Space) (*FrozenSpace, Status, []Branch) {
	varIdx := b.varSel.SelectVar(space.Vars)
	frozen, branches := b.dist.Distribute(space, varIdx)
	return frozen, Unknown, branches
}

// OneSolution explores the tree depth-first and stops at the first
// Satisfiable node. Pending branches are kept on a stack of frozen
// parent states, consumed in LIFO order as depth-first traversal
// requires.
//
// Re-entering after a solution resumes from the remaining branches: the
// space passed to the resumed Enter is the previously returned node and
// is not re-expanded. When the stack runs dry, Enter reports
// EndOfSearch.
type OneSolution struct {
	child   Visitor
	stack   []Branch
	started bool
	ctx     context.Context
	monitor *Monitor
}

// NewOneSolution returns the depth-first first-solution engine.
func NewOneSolution(child Visitor) *OneSolution {
	return &OneSolution{child: child, ctx: context.Background()}
}

// NewOneSolutionContext returns the engine with a cancellation context,
// checked between tree nodes. On cancellation the engine reports
// EndOfSearch.
func NewOneSolutionContext(ctx context.Context, child Visitor) *OneSolution {
	return &OneSolution{child: child, ctx: ctx}
}

// SetMonitor attaches statistics collection to the traversal.
func (o *OneSolution) SetMonitor(m *Monitor) { o.monitor = m }

// Start implements Visitor.
func (o *OneSolution) Start(root *Space) {
	o.stack = o.stack[:0]
	o.started = false
	o.child.Start(root)
}

// Enter implements Visitor.
func (o *OneSolution) Enter(space *Space) (*FrozenSpace, Status, []Branch) {
	var frozen *FrozenSpace
	explore := space
	if o.started {
		// Resuming: the passed space is the node returned last time.
		frozen = space.Freeze()
		explore = nil
	}
	o.started = true

	for {
		if explore != nil {
			if err := o.ctx.Err(); err != nil {
				return o.freezeOr(explore, frozen), EndOfSearch, nil
			}
			if o.monitor != nil {
				o.monitor.RecordNode(len(o.stack))
			}
			var status Status
			var branches []Branch
			frozen, status, branches = o.child.Enter(explore)
			explore = nil
			switch status {
			case Satisfiable:
				if o.monitor != nil {
					o.monitor.RecordSolution()
				}
				return frozen, Satisfiable, nil
			case Unknown:
				// Push right-to-left so the leftmost branch pops first.
				for i := len(branches) - 1; i >= 0; i-- {
					o.stack = append(o.stack, branches[i])
				}
			case Unsatisfiable:
				if o.monitor != nil {
					o.monitor.RecordBacktrack()
				}
			}
		}

		if len(o.stack) == 0 {
			return frozen, EndOfSearch, nil
		}
		next := o.stack[len(o.stack)-1]
		o.stack = o.stack[:len(o.stack)-1]
		explore = next.Commit()
	}
}

func (o *OneSolution) freezeOr(space *Space, frozen *FrozenSpace) *FrozenSpace {
	if space != nil {
		return space.Freeze()
	}
	return frozen
}

// AllSolution repeatedly drives its child until it reports EndOfSearch.
// Use it around OneSolution. Solutions are observed through the optional
// OnSolution callback; Solutions counts them either way.
type AllSolution struct {
	child Visitor

	// OnSolution, when set, is called with each solved space before the
	// search resumes. The space is a private restoration of the
	// solution node.
	OnSolution func(*Space)

	// Solutions is the number of Satisfiable nodes seen since the last
	// Start.
	Solutions int
}

// NewAllSolution returns the exhaustive-search combinator.
func NewAllSolution(child Visitor) *AllSolution {
	return &AllSolution{child: child}
}

// Start implements Visitor.
func (a *AllSolution) Start(root *Space) {
	a.Solutions = 0
	a.child.Start(root)
}

// Enter implements Visitor.
func (a *AllSolution) Enter(space *Space) (*FrozenSpace, Status, []Branch) {
	frozen, status, _ := a.child.Enter(space)
	for status != EndOfSearch {
		if status == Satisfiable {
			a.Solutions++
			if a.OnSolution != nil {
				a.OnSolution(frozen.Restore(frozen.Label()))
			}
		}
		state := frozen.Restore(frozen.Label())
		frozen, status, _ = a.child.Enter(state)
	}
	return frozen, EndOfSearch, nil
}
