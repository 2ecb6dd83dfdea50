package algorithms

import (
	"github.com/dd0wney/cluso-netanalyzer/pkg/network"
)

// Components partitions the nodes of a graph.
type Components struct {
	// Count is the number of components.
	Count int
	// Of[v] is the component id of node v, in [0, Count).
	Of []int
	// Sizes[c] is the number of nodes in component c.
	Sizes []int
}

// Largest returns the size of the largest component, 0 for an empty graph.
func (c *Components) Largest() int {
	largest := 0
	for _, s := range c.Sizes {
		largest = max(largest, s)
	}
	return largest
}

// ConnectedComponents labels the components of the direction-free view of
// g by breadth-first search. For a directed graph these are its weakly
// connected components. Component ids follow the smallest node index.
func ConnectedComponents(g *network.Graph, cancelled func() bool) (*Components, error) {
	n := g.NodeCount()
	res := &Components{Of: make([]int, n)}
	for i := range res.Of {
		res.Of[i] = -1
	}

	queue := make([]int, 0, n)
	for root := 0; root < n; root++ {
		if err := checkCancelled(cancelled, root); err != nil {
			return nil, err
		}
		if res.Of[root] >= 0 {
			continue
		}
		id := res.Count
		res.Count++
		res.Of[root] = id
		queue = append(queue[:0], root)
		for head := 0; head < len(queue); head++ {
			for _, w := range g.AllNeighbors(queue[head]) {
				if res.Of[w] < 0 {
					res.Of[w] = id
					queue = append(queue, w)
				}
			}
		}
		res.Sizes = append(res.Sizes, len(queue))
	}
	return res, nil
}

// WeakComponents returns the weakly connected components of g. It is the
// same partition as ConnectedComponents and exists for readability at
// call sites that deal with directed graphs.
func WeakComponents(g *network.Graph, cancelled func() bool) (*Components, error) {
	return ConnectedComponents(g, cancelled)
}

// tarjanState holds per-node state during Tarjan's DFS.
type tarjanState struct {
	index   []int // -1 until visited
	lowlink []int
	onStack []bool
	stack   []int
	counter int
	res     *Components
}

// StrongComponents finds the strongly connected components of a directed
// graph using Tarjan's algorithm in O(V+E) time, following only outgoing
// links. For an undirected graph it returns the connected components.
func StrongComponents(g *network.Graph, cancelled func() bool) (*Components, error) {
	if !g.Directed() {
		return ConnectedComponents(g, cancelled)
	}

	n := g.NodeCount()
	st := &tarjanState{
		index:   make([]int, n),
		lowlink: make([]int, n),
		onStack: make([]bool, n),
		res:     &Components{Of: make([]int, n)},
	}
	for i := range st.index {
		st.index[i] = -1
	}

	for root := 0; root < n; root++ {
		if err := checkCancelled(cancelled, root); err != nil {
			return nil, err
		}
		if st.index[root] < 0 {
			st.strongconnect(g, root)
		}
	}
	return st.res, nil
}

func (st *tarjanState) strongconnect(g *network.Graph, u int) {
	st.index[u] = st.counter
	st.lowlink[u] = st.counter
	st.counter++
	st.stack = append(st.stack, u)
	st.onStack[u] = true

	for _, v := range g.Neighbors(u) {
		if st.index[v] < 0 {
			st.strongconnect(g, v)
			st.lowlink[u] = min(st.lowlink[u], st.lowlink[v])
		} else if st.onStack[v] {
			st.lowlink[u] = min(st.lowlink[u], st.index[v])
		}
	}

	// If u is a root node, pop the stack to form an SCC
	if st.lowlink[u] != st.index[u] {
		return
	}
	id := st.res.Count
	st.res.Count++
	size := 0
	for {
		top := st.stack[len(st.stack)-1]
		st.stack = st.stack[:len(st.stack)-1]
		st.onStack[top] = false
		st.res.Of[top] = id
		size++
		if top == u {
			break
		}
	}
	st.res.Sizes = append(st.res.Sizes, size)
}
