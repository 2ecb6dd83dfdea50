package network

// Inspection summarises the raw structure of a host network before an
// interpretation is chosen.
type Inspection struct {
	Nodes     int `json:"nodes" yaml:"nodes"`
	Edges     int `json:"edges" yaml:"edges"`
	SelfLoops int `json:"self_loops" yaml:"self_loops"`
	// PairedEdges counts reciprocal a->b / b->a matches.
	PairedEdges int `json:"paired_edges" yaml:"paired_edges"`
	// ParallelEdges counts extra copies of an identical directed edge.
	ParallelEdges int `json:"parallel_edges" yaml:"parallel_edges"`
	// IsolatedNodes counts nodes touched by no edge.
	IsolatedNodes int `json:"isolated_nodes" yaml:"isolated_nodes"`
	// InvalidEdges counts edges with an endpoint outside 0..Nodes-1.
	InvalidEdges int `json:"invalid_edges" yaml:"invalid_edges"`
}

// Inspect scans view without building a graph.
func Inspect(view View) Inspection {
	n := view.NodeCount()
	ins := Inspection{Nodes: n}

	touched := make([]bool, max(n, 0))
	seen := make(map[Edge]int)
	for _, e := range view.Edges() {
		ins.Edges++
		if e.Source < 0 || e.Source >= n || e.Target < 0 || e.Target >= n {
			ins.InvalidEdges++
			continue
		}
		touched[e.Source] = true
		touched[e.Target] = true
		if e.SelfLoop() {
			ins.SelfLoops++
			continue
		}
		if seen[e] > 0 {
			ins.ParallelEdges++
		}
		seen[e]++
	}

	for e, count := range seen {
		if e.Source < e.Target {
			if back := seen[e.Reversed()]; back > 0 {
				ins.PairedEdges += min(count, back)
			}
		}
	}

	for _, t := range touched {
		if !t {
			ins.IsolatedNodes++
		}
	}
	return ins
}

// Interpretations lists the interpretations worth offering for the
// inspected network, defaults first. Variants that would produce the same
// graph (e.g. toggling self-loops on a loop-free network) are omitted.
func (ins Inspection) Interpretations() []Interpretation {
	loopChoices := []bool{false}
	if ins.SelfLoops > 0 {
		loopChoices = append(loopChoices, true)
	}
	pairChoices := []bool{true}
	if ins.PairedEdges > 0 {
		pairChoices = append(pairChoices, false)
	}

	out := make([]Interpretation, 0, 6)
	for _, ignore := range loopChoices {
		for _, combine := range pairChoices {
			out = append(out, Interpretation{IgnoreSelfLoops: ignore, CombinePaired: combine})
		}
	}
	for _, ignore := range loopChoices {
		out = append(out, Interpretation{Directed: true, IgnoreSelfLoops: ignore})
	}
	return out
}
