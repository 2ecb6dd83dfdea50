package analysis

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-netanalyzer/pkg/algorithms"
	"github.com/dd0wney/cluso-netanalyzer/pkg/logging"
	"github.com/dd0wney/cluso-netanalyzer/pkg/metrics"
	"github.com/dd0wney/cluso-netanalyzer/pkg/network"
)

// Pass names, used in logs, metrics and spans.
const (
	PassConsistency = "consistency"
	PassDegrees     = "degrees"
	PassComponents  = "components"
	PassClustering  = "clustering"
	PassNeighbors   = "neighbors"
	PassSweep       = "sweep"
)

// Option configures a Run.
type Option func(*Run)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l logging.Logger) Option {
	return func(r *Run) { r.logger = l }
}

// WithMetrics records run metrics in reg.
func WithMetrics(reg *metrics.Registry) Option {
	return func(r *Run) { r.metrics = reg }
}

// WithListener adds a listener notified after the terminal transition.
func WithListener(l Listener) Option {
	return func(r *Run) { r.listeners = append(r.listeners, l) }
}

// Run computes the topological statistics of one graph. It is executed
// exactly once, either in the background (Start) or synchronously
// (Execute), and is not restartable.
type Run struct {
	id        string
	g         *network.Graph
	cfg       Config
	logger    logging.Logger
	metrics   *metrics.Registry
	listeners []Listener

	// mu orders Cancel against the terminal transition.
	mu        sync.Mutex
	state     atomic.Int32
	cancelled atomic.Bool
	progress  atomic.Int64
	max       int64

	done    chan struct{}
	outcome Outcome
}

// NewRun validates cfg against g and returns a run in the Created state.
func NewRun(g *network.Graph, cfg Config, opts ...Option) (*Run, error) {
	if g == nil {
		return nil, invalidInput(-1, "nil graph")
	}
	if err := cfg.validate(g.NodeCount()); err != nil {
		return nil, err
	}

	r := &Run{
		id:     uuid.NewString(),
		g:      g,
		cfg:    cfg,
		logger: logging.NewNopLogger(),
		max:    int64(g.NodeCount()),
		done:   make(chan struct{}),
	}
	if cfg.Subset != nil {
		r.cfg.Subset = append([]int(nil), cfg.Subset...)
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With(
		logging.Component("analysis"),
		logging.RunID(r.id),
		logging.Mode(g.Interpretation().String()),
	)
	return r, nil
}

// ID returns the run identifier
func (r *Run) ID() string { return r.id }

// State returns the current lifecycle state
func (r *Run) State() State { return State(r.state.Load()) }

// Progress returns a snapshot of the progress counters. Safe to poll from
// any goroutine.
func (r *Run) Progress() Progress {
	return Progress{Current: r.progress.Load(), Max: r.max}
}

// Done is closed once the run reaches a terminal state and every
// listener has been notified.
func (r *Run) Done() <-chan struct{} { return r.done }

// Cancel requests cooperative cancellation. It returns immediately; the
// run observes the request at its next checkpoint. Cancelling a finished
// run has no effect.
func (r *Run) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.State().Terminal() {
		r.cancelled.Store(true)
	}
}

// Start launches the run on its own goroutine. Cancelling ctx cancels
// the run.
func (r *Run) Start(ctx context.Context) error {
	if !r.state.CompareAndSwap(int32(StateCreated), int32(StateRunning)) {
		return ErrAlreadyStarted
	}
	go r.execute(ctx)
	return nil
}

// Execute runs synchronously and returns the outcome.
func (r *Run) Execute(ctx context.Context) (Outcome, error) {
	if !r.state.CompareAndSwap(int32(StateCreated), int32(StateRunning)) {
		return Outcome{}, ErrAlreadyStarted
	}
	r.execute(ctx)
	return r.outcome, nil
}

// Wait blocks until the run is terminal and its listeners have returned,
// then returns the outcome. Wait must not be called on a run that was
// never started: it blocks until Start or Execute is called.
func (r *Run) Wait() Outcome {
	<-r.done
	return r.outcome
}

func (r *Run) isCancelled() bool {
	return r.cancelled.Load()
}

func (r *Run) execute(ctx context.Context) {
	stop := context.AfterFunc(ctx, r.Cancel)
	defer stop()

	start := time.Now()
	ctx, span := startRunSpan(ctx, r.id, r.g, r.cfg.workers())
	defer span.End()

	mode := r.g.Interpretation().String()
	if r.metrics != nil {
		r.metrics.RunStarted(r.g.NodeCount(), r.g.EdgeCount())
	}
	r.logger.Info("analysis started",
		logging.Nodes(r.g.NodeCount()),
		logging.Edges(r.g.EdgeCount()),
		logging.Workers(r.cfg.workers()),
	)

	results, err := r.compute(ctx)
	outcome := r.finish(results, err)

	elapsed := time.Since(start)
	setRunSpanResult(span, outcome.State, outcome.Err)
	if r.metrics != nil {
		r.metrics.RecordRun(mode, outcome.State.String(), elapsed)
	}
	switch outcome.State {
	case StateCompleted:
		r.logger.Info("analysis completed", logging.Latency(elapsed))
	case StateCancelled:
		r.logger.Warn("analysis cancelled",
			logging.Latency(elapsed),
			logging.Progress(r.progress.Load(), r.max),
		)
	default:
		r.logger.Error("analysis failed", logging.Latency(elapsed), logging.Error(outcome.Err))
	}

	for _, l := range r.listeners {
		switch outcome.State {
		case StateCompleted:
			l.AnalysisCompleted(outcome.Results)
		case StateCancelled:
			l.AnalysisCancelled()
		default:
			l.AnalysisFailed(outcome.Err)
		}
	}
	close(r.done)
}

// finish performs the terminal transition. A cancellation requested at
// any point before it wins over a result that was computed meanwhile, so
// a cancelled run never publishes results.
func (r *Run) finish(results *Results, err error) Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()

	var o Outcome
	switch {
	case r.isCancelled() || errors.Is(err, ErrCancelled):
		o = Outcome{State: StateCancelled}
	case err != nil:
		o = Outcome{State: StateFailed, Err: err}
	default:
		o = Outcome{State: StateCompleted, Results: results}
	}
	r.outcome = o
	r.state.Store(int32(o.State))
	return o
}

// pass runs one named pass with its span, timer and error wrapping.
func (r *Run) pass(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	if r.isCancelled() || ctx.Err() != nil {
		return passError(name, ErrCancelled)
	}
	ctx, span := startPassSpan(ctx, name)
	defer span.End()

	timer := logging.StartTimer(r.logger, "pass finished", logging.Pass(name))
	if err := fn(ctx); err != nil {
		span.RecordError(err)
		return passError(name, err)
	}
	elapsed := timer.End()
	if r.metrics != nil {
		r.metrics.RecordPass(name, elapsed)
	}
	return nil
}

// compute runs every pass in order and materializes the results.
func (r *Run) compute(ctx context.Context) (*Results, error) {
	g := r.g
	out := &passOutputs{}

	if err := r.pass(ctx, PassConsistency, func(context.Context) error {
		return g.CheckConsistency()
	}); err != nil {
		return nil, err
	}

	if err := r.pass(ctx, PassDegrees, func(context.Context) error {
		out.degrees = algorithms.Degrees(g, r.cfg.Subset)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := r.pass(ctx, PassComponents, func(context.Context) error {
		var err error
		if out.connected, err = algorithms.ConnectedComponents(g, r.isCancelled); err != nil {
			return err
		}
		if g.Directed() && r.cfg.ComputeStrongComponents {
			out.strong, err = algorithms.StrongComponents(g, r.isCancelled)
		}
		return err
	}); err != nil {
		return nil, err
	}

	if err := r.pass(ctx, PassClustering, func(context.Context) error {
		var err error
		out.cluster, err = algorithms.Clustering(g, r.isCancelled)
		return err
	}); err != nil {
		return nil, err
	}

	if err := r.pass(ctx, PassNeighbors, func(context.Context) error {
		var err error
		if out.overlap, err = algorithms.NeighborOverlap(g, r.isCancelled); err != nil {
			return err
		}
		out.nbConn = algorithms.NeighborhoodConnectivity(g)
		out.summary = algorithms.Neighbors(g)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := r.pass(ctx, PassSweep, func(ctx context.Context) error {
		var err error
		out.sweep, err = algorithms.Sweep(ctx, g, algorithms.SweepOptions{
			Betweenness: r.cfg.ComputeBetweenness,
			Workers:     r.cfg.workers(),
			Cancelled:   r.isCancelled,
			OnSource:    r.sourceDone,
		})
		return err
	}); err != nil {
		return nil, err
	}

	return materialize(r.id, g, r.cfg, out), nil
}

func (r *Run) sourceDone() {
	r.progress.Add(1)
	if r.metrics != nil {
		r.metrics.RecordSource()
	}
}
