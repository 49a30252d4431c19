package fdprop

import (
	"context"

	"go.uber.org/zap"
)

// Engine is the high-level search driver: it assembles the standard
// visitor stack (OneSolution over Propagation over Brancher), runs it to
// exhaustion or to a solution limit, and extracts assignments as flat
// integer vectors. Lower-level callers can stack visitors directly; the
// engine is the convenient front door.
//
// The context is checked between tree nodes, never inside a propagation
// step, matching the engine's cooperative execution model.
type Engine struct {
	varSel       VarSelector
	dist         Distributor
	maxSolutions int
	monitor      *Monitor
	logger       *zap.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithMaxSolutions bounds the number of solutions collected. Zero or
// negative means all solutions.
func WithMaxSolutions(n int) EngineOption {
	return func(e *Engine) { e.maxSolutions = n }
}

// WithMonitor attaches a statistics monitor to both the search loop and
// the space's constraint store.
func WithMonitor(m *Monitor) EngineOption {
	return func(e *Engine) { e.monitor = m }
}

// WithLogger attaches a structured logger for engine-level events
// (search started; search finished, with the solution count and final
// status).
func WithLogger(l *zap.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithBranching overrides the default FirstSmallestVar + BinarySplit
// branching strategy.
func WithBranching(varSel VarSelector, dist Distributor) EngineOption {
	return func(e *Engine) {
		e.varSel = varSel
		e.dist = dist
	}
}

// NewEngine returns an engine with depth-first search, FirstSmallestVar
// selection and binary splitting.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		varSel: FirstSmallestVar{},
		dist:   BinarySplit{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Solve consumes the space and searches it depth-first. It returns the
// collected assignments, one []Bound per solution in variable order.
// Cancelling the context stops the search between nodes; the solutions
// found so far are returned together with the context's error.
func (e *Engine) Solve(ctx context.Context, space *Space) ([][]Bound, error) {
	if e.monitor != nil {
		space.Constraints.SetMonitor(e.monitor)
	}

	search := NewOneSolutionContext(ctx, NewPropagation(NewBrancher(e.varSel, e.dist)))
	if e.monitor != nil {
		search.SetMonitor(e.monitor)
	}
	search.Start(space)

	e.logger.Debug("search started", zap.Int("variables", space.Vars.Size()), zap.Int("propagators", space.Constraints.Size()))

	solutions := make([][]Bound, 0)
	frozen, status, _ := search.Enter(space)
	for status == Satisfiable {
		solved := frozen.Restore(frozen.Label())
		solutions = append(solutions, solved.Assignment())
		if e.maxSolutions > 0 && len(solutions) >= e.maxSolutions {
			break
		}
		frozen, status, _ = search.Enter(solved)
	}

	e.logger.Debug("search finished",
		zap.Int("solutions", len(solutions)),
		zap.Stringer("status", status),
	)
	return solutions, ctx.Err()
}
