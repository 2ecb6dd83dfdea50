package analysis

// State is the lifecycle state of a Run.
type State int32

const (
	StateCreated State = iota
	StateRunning
	StateCompleted
	StateCancelled
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition can happen.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateCancelled || s == StateFailed
}

// Progress is a snapshot of the sweep progress counters. Current counts
// completed source traversals and never decreases; Max is the node count.
type Progress struct {
	Current int64
	Max     int64
}

// Fraction returns Current/Max in [0, 1].
func (p Progress) Fraction() float64 {
	if p.Max <= 0 {
		return 0
	}
	f := float64(p.Current) / float64(p.Max)
	return min(f, 1)
}

// Outcome is the terminal result of a run. Results is non-nil only when
// State is StateCompleted; Err is non-nil only when State is StateFailed.
type Outcome struct {
	State   State
	Results *Results
	Err     error
}

// Listener is notified once after a run reaches a terminal state.
type Listener interface {
	AnalysisCompleted(results *Results)
	AnalysisCancelled()
	AnalysisFailed(err error)
}
