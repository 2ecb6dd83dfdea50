package algorithms

import (
	"github.com/dd0wney/cluso-netanalyzer/pkg/network"
)

// ClusteringResult holds per-node clustering coefficients and the
// triangle counts they were derived from.
type ClusteringResult struct {
	// Coefficients[v] is 0 for nodes with fewer than two neighbors.
	Coefficients []float64
	// Links[v] is the number of links among the neighbors of v: unordered
	// pairs when undirected, directed links when directed.
	Links []int
}

// Average returns the mean coefficient over all nodes
func (r *ClusteringResult) Average() float64 {
	if len(r.Coefficients) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range r.Coefficients {
		sum += c
	}
	return sum / float64(len(r.Coefficients))
}

// Clustering computes the clustering coefficient of every node over its
// direction-free neighbor set N(v), k = |N(v)|:
//
//	undirected: C(v) = 2e / (k(k-1)), e = links among N(v)
//	directed:   C(v) = e / (k(k-1)),  e = directed links among N(v)
//
// Neighbors of v are marked in a scratch array so each node costs the sum
// of its neighbors' degrees instead of k² adjacency lookups.
func Clustering(g *network.Graph, cancelled func() bool) (*ClusteringResult, error) {
	n := g.NodeCount()
	res := &ClusteringResult{
		Coefficients: make([]float64, n),
		Links:        make([]int, n),
	}

	mark := make([]int, n) // mark[w] == v+1 iff w ∈ N(v)
	for v := 0; v < n; v++ {
		if err := checkCancelled(cancelled, v); err != nil {
			return nil, err
		}
		nb := g.AllNeighbors(v)
		k := len(nb)
		if k < 2 {
			continue
		}
		for _, w := range nb {
			mark[w] = v + 1
		}

		links := 0
		for _, u := range nb {
			for _, w := range g.Neighbors(u) {
				if mark[w] == v+1 {
					links++
				}
			}
		}

		possible := float64(k * (k - 1))
		if g.Directed() {
			res.Links[v] = links
			res.Coefficients[v] = float64(links) / possible
		} else {
			// Each undirected link was seen from both ends.
			res.Links[v] = links / 2
			res.Coefficients[v] = float64(links) / possible
		}
	}
	return res, nil
}
