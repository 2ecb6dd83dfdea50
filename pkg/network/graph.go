package network

import (
	"fmt"
	"sort"
	"sync"
)

// Graph is an immutable adjacency snapshot over dense node indices
// 0..NodeCount()-1, built once per analysis and safe for concurrent reads.
//
// Neighbor slices are stored in compressed form (one offsets array, one
// flat index array) and are sorted and duplicate-free. Self-loops count
// toward degree but never appear in a neighbor slice.
type Graph struct {
	n        int
	directed bool
	interp   Interpretation
	edges    int

	// Traversal neighbors: undirected neighbors, or out-neighbors when directed.
	off []int
	adj []int

	// In-neighbors (directed only).
	inOff []int
	inAdj []int

	// Direction-free neighbor union. Aliases off/adj when undirected.
	allOff []int
	allAdj []int

	outDeg        []int // undirected: full degree
	inDeg         []int // directed only
	loops         []int
	multiPartners []int

	foldOnce sync.Once
	folded   *Graph
}

// Build interprets view and constructs the graph.
func Build(view View, in Interpretation) (*Graph, error) {
	edges, err := Interpret(view, in)
	if err != nil {
		return nil, err
	}
	return fromCanonical(view.NodeCount(), edges, in), nil
}

// fromCanonical builds a graph from an already interpreted edge list.
func fromCanonical(n int, edges []Edge, in Interpretation) *Graph {
	g := &Graph{
		n:             n,
		directed:      in.Directed,
		interp:        in,
		edges:         len(edges),
		outDeg:        make([]int, n),
		loops:         make([]int, n),
		multiPartners: make([]int, n),
	}

	if g.directed {
		g.inDeg = make([]int, n)
		out := make([][]int, n)
		inc := make([][]int, n)
		for _, e := range edges {
			g.outDeg[e.Source]++
			g.inDeg[e.Target]++
			if e.SelfLoop() {
				g.loops[e.Source]++
				continue
			}
			out[e.Source] = append(out[e.Source], e.Target)
			inc[e.Target] = append(inc[e.Target], e.Source)
		}
		g.off, g.adj = compress(out, g.multiPartners)
		g.inOff, g.inAdj = compress(inc, nil)

		all := make([][]int, n)
		for v := 0; v < n; v++ {
			all[v] = append(append(all[v], g.Neighbors(v)...), g.InNeighbors(v)...)
		}
		g.allOff, g.allAdj = compress(all, nil)
		return g
	}

	nb := make([][]int, n)
	for _, e := range edges {
		if e.SelfLoop() {
			g.outDeg[e.Source] += 2
			g.loops[e.Source]++
			continue
		}
		g.outDeg[e.Source]++
		g.outDeg[e.Target]++
		nb[e.Source] = append(nb[e.Source], e.Target)
		nb[e.Target] = append(nb[e.Target], e.Source)
	}
	g.off, g.adj = compress(nb, g.multiPartners)
	g.allOff, g.allAdj = g.off, g.adj
	return g
}

// compress sorts and deduplicates every list and packs them into offsets
// plus a flat array. When multi is non-nil, multi[v] receives the number
// of distinct neighbors that appeared more than once in list v.
func compress(lists [][]int, multi []int) (off, flat []int) {
	off = make([]int, len(lists)+1)
	total := 0
	for _, l := range lists {
		total += len(l)
	}
	flat = make([]int, 0, total)

	for v, l := range lists {
		sort.Ints(l)
		for i := 0; i < len(l); i++ {
			if i > 0 && l[i] == l[i-1] {
				if multi != nil && (i == 1 || l[i-2] != l[i]) {
					multi[v]++
				}
				continue
			}
			flat = append(flat, l[i])
		}
		off[v+1] = len(flat)
	}
	return off, flat
}

// NodeCount returns the number of nodes
func (g *Graph) NodeCount() int { return g.n }

// EdgeCount returns the number of entries in the interpreted edge multiset
func (g *Graph) EdgeCount() int { return g.edges }

// Directed reports whether the graph uses a directed interpretation
func (g *Graph) Directed() bool { return g.directed }

// Interpretation returns the interpretation the graph was built with
func (g *Graph) Interpretation() Interpretation { return g.interp }

// Degree returns the degree of v. Undirected self-loops count twice;
// in directed mode it is in-degree plus out-degree.
func (g *Graph) Degree(v int) int {
	if g.directed {
		return g.outDeg[v] + g.inDeg[v]
	}
	return g.outDeg[v]
}

// OutDegree returns the number of edges leaving v.
func (g *Graph) OutDegree(v int) (int, error) {
	if !g.directed {
		return 0, newGraphError("OutDegree", v, -1, ErrNotDirected)
	}
	return g.outDeg[v], nil
}

// InDegree returns the number of edges entering v.
func (g *Graph) InDegree(v int) (int, error) {
	if !g.directed {
		return 0, newGraphError("InDegree", v, -1, ErrNotDirected)
	}
	return g.inDeg[v], nil
}

// Neighbors returns the distinct nodes reachable from v in one hop, in
// ascending order, excluding v itself. The slice must not be modified.
func (g *Graph) Neighbors(v int) []int {
	return g.adj[g.off[v]:g.off[v+1]:g.off[v+1]]
}

// InNeighbors returns the distinct nodes with an edge into v. It is empty
// for undirected graphs.
func (g *Graph) InNeighbors(v int) []int {
	if !g.directed {
		return nil
	}
	return g.inAdj[g.inOff[v]:g.inOff[v+1]:g.inOff[v+1]]
}

// AllNeighbors returns the distinct nodes adjacent to v in either
// direction, excluding v.
func (g *Graph) AllNeighbors(v int) []int {
	return g.allAdj[g.allOff[v]:g.allOff[v+1]:g.allOff[v+1]]
}

// IsAdjacent reports whether Neighbors(a) contains b.
func (g *Graph) IsAdjacent(a, b int) bool {
	nb := g.Neighbors(a)
	i := sort.SearchInts(nb, b)
	return i < len(nb) && nb[i] == b
}

// SelfLoops returns the number of self-loops on v
func (g *Graph) SelfLoops(v int) int { return g.loops[v] }

// MultiEdgePartners returns how many distinct neighbors of v are joined
// to it by more than one edge (in the traversal direction).
func (g *Graph) MultiEdgePartners(v int) int { return g.multiPartners[v] }

// Undirected returns the direction-free view of the graph. For undirected
// graphs it is g itself; for directed graphs it is built once, lazily,
// with reciprocal pairs combined.
func (g *Graph) Undirected() *Graph {
	if !g.directed {
		return g
	}
	g.foldOnce.Do(func() {
		edges := make([]Edge, 0, g.edges)
		for v := 0; v < g.n; v++ {
			for i := 0; i < g.loops[v]; i++ {
				edges = append(edges, Edge{Source: v, Target: v})
			}
			for _, w := range g.Neighbors(v) {
				edges = append(edges, Edge{Source: v, Target: w})
			}
		}
		in := Interpretation{CombinePaired: true, IgnoreSelfLoops: g.interp.IgnoreSelfLoops}
		g.folded = fromCanonical(g.n, foldUndirected(edges, in), in)
	})
	return g.folded
}

// CheckConsistency re-verifies the adjacency invariants: neighbor slices
// are strictly ascending and loop-free, every undirected link is mirrored,
// every out-link has a matching in-link, and degree sums agree with the
// edge count.
func (g *Graph) CheckConsistency() error {
	degreeSum := 0
	inSum := 0
	for v := 0; v < g.n; v++ {
		nb := g.Neighbors(v)
		for i, w := range nb {
			if w == v || (i > 0 && nb[i-1] >= w) {
				return newGraphError("CheckConsistency", v, -1,
					fmt.Errorf("%w: neighbor list not strictly ascending or contains self", ErrInconsistent))
			}
			if g.directed {
				in := g.InNeighbors(w)
				j := sort.SearchInts(in, v)
				if j >= len(in) || in[j] != v {
					return newGraphError("CheckConsistency", v, -1,
						fmt.Errorf("%w: out-link %d->%d has no in-link", ErrInconsistent, v, w))
				}
			} else if !g.IsAdjacent(w, v) {
				return newGraphError("CheckConsistency", v, -1,
					fmt.Errorf("%w: link %d-%d is not mirrored", ErrInconsistent, v, w))
			}
		}
		degreeSum += g.outDeg[v]
		if g.directed {
			inSum += g.inDeg[v]
		}
	}

	if g.directed {
		if degreeSum != g.edges || inSum != g.edges {
			return newGraphError("CheckConsistency", -1, -1,
				fmt.Errorf("%w: out=%d in=%d edges=%d", ErrInconsistent, degreeSum, inSum, g.edges))
		}
		return nil
	}
	if degreeSum != 2*g.edges {
		return newGraphError("CheckConsistency", -1, -1,
			fmt.Errorf("%w: degree sum %d != 2*%d", ErrInconsistent, degreeSum, g.edges))
	}
	return nil
}
