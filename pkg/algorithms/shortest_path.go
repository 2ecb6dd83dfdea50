package algorithms

import (
	"context"

	"github.com/dd0wney/cluso-netanalyzer/pkg/network"
	"github.com/dd0wney/cluso-netanalyzer/pkg/parallel"
	"github.com/dd0wney/cluso-netanalyzer/pkg/stats"
)

// Unreachable marks a node outside the source's reach in ShortestPathResult.Dist.
const Unreachable = -1

// ShortestPathResult holds one breadth-first traversal from Source.
type ShortestPathResult struct {
	Source int
	// Dist is the hop distance from Source, Unreachable if not reached.
	Dist []int
	// Sigma is the number of distinct shortest Source->t paths. Counts are
	// exact up to 2^53 and approximate beyond.
	Sigma []float64
	// Order lists reached nodes in discovery order, Source first.
	Order []int
}

// Reached returns the number of nodes reached, excluding the source
func (r *ShortestPathResult) Reached() int {
	return len(r.Order) - 1
}

// traversal holds the per-source working arrays. One traversal is reused
// for every source a worker processes, so a sweep allocates O(N) per
// worker instead of per source.
type traversal struct {
	g     *network.Graph
	dist  []int
	sigma []float64
	order []int // BFS queue; after the traversal it is the discovery order
	delta []float64
	paths []float64 // stress: number of shortest-path continuations below a node
}

func newTraversal(g *network.Graph) *traversal {
	n := g.NodeCount()
	t := &traversal{
		g:     g,
		dist:  make([]int, n),
		sigma: make([]float64, n),
		order: make([]int, 0, n),
		delta: make([]float64, n),
		paths: make([]float64, n),
	}
	for i := range t.dist {
		t.dist[i] = Unreachable
	}
	return t
}

// reset clears only the entries touched by the previous traversal.
func (t *traversal) reset() {
	for _, v := range t.order {
		t.dist[v] = Unreachable
		t.sigma[v] = 0
		t.delta[v] = 0
		t.paths[v] = 0
	}
	t.order = t.order[:0]
}

// bfs runs Brandes' counting BFS from s over the traversal neighbors.
func (t *traversal) bfs(s int) error {
	t.reset()
	t.dist[s] = 0
	t.sigma[s] = 1
	t.order = append(t.order, s)

	for head := 0; head < len(t.order); head++ {
		v := t.order[head]
		next := t.dist[v] + 1
		for _, w := range t.g.Neighbors(v) {
			switch d := t.dist[w]; {
			case d == Unreachable:
				t.dist[w] = next
				t.order = append(t.order, w)
			case d > next:
				return inconsistent(s, w, "distance %d exceeds BFS layer %d", d, next)
			}
			if t.dist[w] == next {
				t.sigma[w] += t.sigma[v]
			}
		}
	}
	return nil
}

// accumulate runs the dependency back-propagation for the current
// traversal, processing nodes in reverse discovery order. For every node v
// it sums over the successors w (dist[w] == dist[v]+1) of v:
//
//	delta[v] = Σ sigma[v]/sigma[w] * (1 + delta[w])
//	paths[v] = Σ (1 + paths[w])
//
// and adds delta[v] to betweenness and sigma[v]*paths[v] to stress for
// every v other than the source.
func (t *traversal) accumulate(betweenness, stress []float64) {
	s := t.order[0]
	for i := len(t.order) - 1; i >= 0; i-- {
		v := t.order[i]
		next := t.dist[v] + 1
		sv := t.sigma[v]
		for _, w := range t.g.Neighbors(v) {
			if t.dist[w] != next {
				continue
			}
			t.delta[v] += sv / t.sigma[w] * (1 + t.delta[w])
			t.paths[v] += 1 + t.paths[w]
		}
		if v != s {
			betweenness[v] += t.delta[v]
			stress[v] += sv * t.paths[v]
		}
	}
}

// SingleSource runs one breadth-first traversal from s and returns the
// distances and shortest path counts it found.
func SingleSource(g *network.Graph, s int) (*ShortestPathResult, error) {
	if s < 0 || s >= g.NodeCount() {
		return nil, network.ErrNodeOutOfRange
	}
	t := newTraversal(g)
	if err := t.bfs(s); err != nil {
		return nil, err
	}
	return &ShortestPathResult{
		Source: s,
		Dist:   t.dist,
		Sigma:  t.sigma,
		Order:  append([]int(nil), t.order...),
	}, nil
}

// SweepOptions configures an all-sources shortest path sweep.
type SweepOptions struct {
	// Betweenness enables the dependency back-propagation (betweenness and
	// stress centrality). Distances and closeness inputs are always computed.
	Betweenness bool
	// Workers > 1 splits the sources over that many goroutines.
	Workers int
	// Cancelled is polled before every source traversal.
	Cancelled func() bool
	// OnSource is called after every completed source traversal. With
	// Workers > 1 it is called concurrently and must be safe for that.
	OnSource func()
}

// SweepResult accumulates the statistics of one traversal per source.
type SweepResult struct {
	// Distances counts shortest path lengths between distinct reachable
	// pairs: ordered pairs when directed, unordered pairs when undirected.
	Distances *stats.Histogram
	// DistSum[s] is the sum of distances from s to every node it reaches.
	DistSum []int64
	// Reached[s] is the number of nodes s reaches, excluding s.
	Reached []int
	// Eccentricity[s] is the largest finite distance from s (0 if none).
	Eccentricity []int
	// Betweenness and Stress are nil unless SweepOptions.Betweenness is
	// set. Values are unnormalized and halved for undirected graphs.
	Betweenness []float64
	Stress      []float64
}

// sweepPartial is one worker's private accumulator.
type sweepPartial struct {
	distances   *stats.Histogram
	betweenness []float64
	stress      []float64
}

// Sweep runs one traversal per source node, in node-index order within
// each chunk of sources, and accumulates distance histogram, closeness
// inputs, eccentricities and (optionally) betweenness and stress.
//
// Per-source outputs are written to disjoint slots; histogram and
// centrality sums go to a partial accumulator per chunk, merged in chunk
// order once every worker has finished. Cancellation is observed before a
// source starts, so an in-flight traversal always completes.
func Sweep(ctx context.Context, g *network.Graph, opts SweepOptions) (*SweepResult, error) {
	n := g.NodeCount()
	res := &SweepResult{
		Distances:    stats.NewHistogram(),
		DistSum:      make([]int64, n),
		Reached:      make([]int, n),
		Eccentricity: make([]int, n),
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	chunks := parallel.Chunks(n, workers)
	partials := make([]*sweepPartial, len(chunks))

	runChunk := func(i int) error {
		p := &sweepPartial{distances: stats.NewHistogram()}
		if opts.Betweenness {
			p.betweenness = make([]float64, n)
			p.stress = make([]float64, n)
		}
		partials[i] = p
		return sweepRange(ctx, g, chunks[i], opts, res, p)
	}

	if len(chunks) <= 1 {
		for i := range chunks {
			if err := runChunk(i); err != nil {
				return nil, err
			}
		}
	} else {
		pool, err := parallel.NewWorkerPool(workers)
		if err != nil {
			return nil, err
		}
		for i := range chunks {
			i := i
			if err := pool.Submit(func() error { return runChunk(i) }); err != nil {
				pool.Close()
				return nil, err
			}
		}
		if err := pool.Wait(); err != nil {
			return nil, err
		}
	}

	if opts.Betweenness {
		res.Betweenness = make([]float64, n)
		res.Stress = make([]float64, n)
	}
	for _, p := range partials {
		res.Distances.Merge(p.distances)
		for v := 0; v < len(p.betweenness); v++ {
			res.Betweenness[v] += p.betweenness[v]
			res.Stress[v] += p.stress[v]
		}
	}

	if !g.Directed() {
		// Every unordered pair was seen once from each endpoint.
		if !res.Distances.Halve() {
			return nil, inconsistent(-1, -1, "undirected distance counts are not symmetric")
		}
		for v := range res.Betweenness {
			res.Betweenness[v] /= 2
			res.Stress[v] /= 2
		}
	}
	return res, nil
}

func sweepRange(ctx context.Context, g *network.Graph, r parallel.Range, opts SweepOptions, res *SweepResult, p *sweepPartial) error {
	t := newTraversal(g)
	for s := r.Start; s < r.End; s++ {
		if ctx.Err() != nil || (opts.Cancelled != nil && opts.Cancelled()) {
			return ErrCancelled
		}
		if err := t.bfs(s); err != nil {
			return err
		}

		var sum int64
		ecc := 0
		for _, v := range t.order[1:] {
			d := t.dist[v]
			p.distances.Observe(int64(d))
			sum += int64(d)
			if d > ecc {
				ecc = d
			}
		}
		res.DistSum[s] = sum
		res.Reached[s] = len(t.order) - 1
		res.Eccentricity[s] = ecc

		if opts.Betweenness {
			t.accumulate(p.betweenness, p.stress)
		}
		if opts.OnSource != nil {
			opts.OnSource()
		}
	}
	return nil
}
