package algorithms

import (
	"math"

	"github.com/dd0wney/cluso-netanalyzer/pkg/network"
	"github.com/dd0wney/cluso-netanalyzer/pkg/stats"
)

// Overlap holds the statistics derived from two-hop neighborhoods of the
// undirected view of a graph.
type Overlap struct {
	// Topological[v] is the topological coefficient of v, 0 when v has
	// fewer than two neighbors.
	Topological []float64
	// SharedNeighbors counts, for every unordered pair of nodes sharing at
	// least one neighbor, the number of neighbors they share.
	SharedNeighbors *stats.Histogram
}

// NeighborOverlap computes topological coefficients and the shared
// neighbors distribution in one pass over the undirected view of g.
//
// For a node v with k ≥ 2 neighbors, J(v,m) is the number of neighbors v
// and m share plus 1 if v and m are adjacent, and the topological
// coefficient is the mean of J(v,m) over all m ≠ v sharing a neighbor
// with v, divided by k.
func NeighborOverlap(g *network.Graph, cancelled func() bool) (*Overlap, error) {
	u := g.Undirected()
	n := u.NodeCount()
	res := &Overlap{
		Topological:     make([]float64, n),
		SharedNeighbors: stats.NewHistogram(),
	}

	shared := make([]int64, n)
	touched := make([]int, 0, 64)
	for v := 0; v < n; v++ {
		if err := checkCancelled(cancelled, v); err != nil {
			return nil, err
		}
		touched = touched[:0]
		for _, x := range u.Neighbors(v) {
			for _, m := range u.Neighbors(x) {
				if m == v {
					continue
				}
				if shared[m] == 0 {
					touched = append(touched, m)
				}
				shared[m]++
			}
		}

		k := len(u.Neighbors(v))
		var sumJ int64
		for _, m := range touched {
			j := shared[m]
			if m > v {
				res.SharedNeighbors.Observe(j)
			}
			if u.IsAdjacent(v, m) {
				j++
			}
			sumJ += j
			shared[m] = 0
		}
		if k >= 2 && len(touched) > 0 {
			res.Topological[v] = float64(sumJ) / float64(len(touched)) / float64(k)
		}
	}
	return res, nil
}

// NeighborhoodConnectivity returns, for every node, the mean number of
// neighbors of its neighbors. Nodes without neighbors get 0.
func NeighborhoodConnectivity(g *network.Graph) []float64 {
	n := g.NodeCount()
	out := make([]float64, n)
	for v := 0; v < n; v++ {
		nb := g.AllNeighbors(v)
		if len(nb) == 0 {
			continue
		}
		sum := 0
		for _, w := range nb {
			sum += len(g.AllNeighbors(w))
		}
		out[v] = float64(sum) / float64(len(nb))
	}
	return out
}

// NeighborSummary aggregates the neighbor counts of a graph.
type NeighborSummary struct {
	// AvgNeighbors is the mean number of distinct neighbors per node.
	AvgNeighbors float64
	// MaxNeighbors is the largest number of distinct neighbors of any node.
	MaxNeighbors int
	// Density is AvgNeighbors / (N-1).
	Density float64
	// Heterogeneity is the coefficient of variation of the neighbor counts.
	Heterogeneity float64
	// Centralization is N/(N-2) * (MaxNeighbors/(N-1) - Density).
	Centralization float64
}

// Neighbors summarizes the direction-free neighbor counts of g. Every
// ratio is 0 where its denominator would vanish.
func Neighbors(g *network.Graph) NeighborSummary {
	var s NeighborSummary
	n := g.NodeCount()
	if n == 0 {
		return s
	}

	var sum, sumSq float64
	for v := 0; v < n; v++ {
		k := len(g.AllNeighbors(v))
		s.MaxNeighbors = max(s.MaxNeighbors, k)
		sum += float64(k)
		sumSq += float64(k) * float64(k)
	}
	mean := sum / float64(n)
	s.AvgNeighbors = mean

	if n > 1 {
		s.Density = mean / float64(n-1)
	}
	if mean > 0 {
		variance := sumSq/float64(n) - mean*mean
		if variance > 0 {
			s.Heterogeneity = math.Sqrt(variance) / mean
		}
	}
	if n > 2 {
		s.Centralization = float64(n) / float64(n-2) *
			(float64(s.MaxNeighbors)/float64(n-1) - s.Density)
	}
	return s
}
