package fdprop

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Stats is a point-in-time snapshot of solving statistics.
type Stats struct {
	// Search statistics
	NodesExplored  int64         // search nodes entered
	Backtracks     int64         // failed nodes abandoned
	SolutionsFound int64         // Satisfiable nodes reached
	MaxDepth       int64         // deepest branch stack seen
	SearchTime     time.Duration // wall time since the monitor was created

	// Propagation statistics
	Propagations int64 // propagator executions
	Entailments  int64 // propagators retired as entailed
	Failures     int64 // propagator runs that emptied a domain
}

// Monitor collects solving statistics with atomic counters, so the same
// monitor can be shared between a constraint store and a search engine.
// An optional zap logger adds debug-level traces of propagator failures,
// entailment transitions and solutions; by default the monitor is silent.
type Monitor struct {
	nodes        atomic.Int64
	backtracks   atomic.Int64
	solutions    atomic.Int64
	maxDepth     atomic.Int64
	propagations atomic.Int64
	entailments  atomic.Int64
	failures     atomic.Int64

	startTime time.Time
	logger    *zap.Logger
}

// NewMonitor creates a silent monitor.
func NewMonitor() *Monitor {
	return &Monitor{
		startTime: time.Now(),
		logger:    zap.NewNop(),
	}
}

// NewMonitorWithLogger creates a monitor that traces events to the given
// logger at debug level.
func NewMonitorWithLogger(logger *zap.Logger) *Monitor {
	m := NewMonitor()
	if logger != nil {
		m.logger = logger
	}
	return m
}

// RecordNode counts one search node at the given branch-stack depth.
func (m *Monitor) RecordNode(depth int) {
	m.nodes.Add(1)
	for {
		cur := m.maxDepth.Load()
		if int64(depth) <= cur || m.maxDepth.CompareAndSwap(cur, int64(depth)) {
			return
		}
	}
}

// RecordBacktrack counts one abandoned node.
func (m *Monitor) RecordBacktrack() {
	m.backtracks.Add(1)
	m.logger.Debug("backtrack", zap.Int64("total", m.backtracks.Load()))
}

// RecordSolution counts one Satisfiable node.
func (m *Monitor) RecordSolution() {
	m.solutions.Add(1)
	m.logger.Debug("solution found", zap.Int64("total", m.solutions.Load()))
}

// RecordPropagation counts one propagator execution.
func (m *Monitor) RecordPropagation() {
	m.propagations.Add(1)
}

// RecordFailure counts one propagator run that emptied a domain.
func (m *Monitor) RecordFailure(p Propagator) {
	m.failures.Add(1)
	m.logger.Debug("propagation failure", zap.Stringer("propagator", p))
}

// RecordEntailment counts one propagator retired as entailed.
func (m *Monitor) RecordEntailment(p Propagator) {
	m.entailments.Add(1)
	m.logger.Debug("propagator entailed", zap.Stringer("propagator", p))
}

// Snapshot returns the current statistics.
func (m *Monitor) Snapshot() Stats {
	return Stats{
		NodesExplored:  m.nodes.Load(),
		Backtracks:     m.backtracks.Load(),
		SolutionsFound: m.solutions.Load(),
		MaxDepth:       m.maxDepth.Load(),
		SearchTime:     time.Since(m.startTime),
		Propagations:   m.propagations.Load(),
		Entailments:    m.entailments.Load(),
		Failures:       m.failures.Load(),
	}
}
