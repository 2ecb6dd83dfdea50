package network

import (
	"sort"
	"strings"
)

// Interpretation decides how a raw edge list is read: as directed or
// undirected edges, with or without self-loops, and whether reciprocal
// pairs a->b / b->a fold onto one undirected relation.
type Interpretation struct {
	Directed        bool `json:"directed" yaml:"directed" mapstructure:"directed"`
	IgnoreSelfLoops bool `json:"ignore_self_loops" yaml:"ignore_self_loops" mapstructure:"ignore_self_loops"`
	// CombinePaired only applies to undirected interpretations.
	CombinePaired bool `json:"combine_paired" yaml:"combine_paired" mapstructure:"combine_paired"`
}

// Undirected returns the default undirected interpretation: reciprocal
// pairs are combined and self-loops are kept.
func Undirected() Interpretation {
	return Interpretation{CombinePaired: true}
}

// Directed returns the default directed interpretation.
func Directed() Interpretation {
	return Interpretation{Directed: true}
}

// String describes the interpretation, e.g. "undirected+paired".
func (in Interpretation) String() string {
	parts := make([]string, 0, 3)
	if in.Directed {
		parts = append(parts, "directed")
	} else {
		parts = append(parts, "undirected")
		if in.CombinePaired {
			parts = append(parts, "paired")
		}
	}
	if in.IgnoreSelfLoops {
		parts = append(parts, "noloops")
	}
	return strings.Join(parts, "+")
}

// Mode returns "directed" or "undirected".
func (in Interpretation) Mode() string {
	if in.Directed {
		return "directed"
	}
	return "undirected"
}

// Interpret produces the canonical edge multiset a Graph is built from.
//
// Directed interpretations keep every edge as given. Undirected ones
// store each relation with Source <= Target; for an unordered pair {a,b}
// with c_ab edges a->b and c_ba edges b->a the result holds max(c_ab, c_ba)
// entries when CombinePaired is set and c_ab + c_ba otherwise. The output
// is sorted by (Source, Target).
func Interpret(view View, in Interpretation) ([]Edge, error) {
	n := view.NodeCount()
	if n < 0 {
		return nil, newGraphError("Interpret", -1, -1, ErrNegativeNodeCount)
	}
	if n == 0 {
		return nil, newGraphError("Interpret", -1, -1, ErrEmptyNetwork)
	}

	raw := view.Edges()
	for i, e := range raw {
		if e.Source < 0 || e.Source >= n {
			return nil, newGraphError("Interpret", e.Source, i, ErrNodeOutOfRange)
		}
		if e.Target < 0 || e.Target >= n {
			return nil, newGraphError("Interpret", e.Target, i, ErrNodeOutOfRange)
		}
	}

	var out []Edge
	if in.Directed {
		out = make([]Edge, 0, len(raw))
		for _, e := range raw {
			if in.IgnoreSelfLoops && e.SelfLoop() {
				continue
			}
			out = append(out, e)
		}
	} else {
		out = foldUndirected(raw, in)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		return out[i].Target < out[j].Target
	})
	return out, nil
}

// pairCount counts edges per direction of one unordered node pair.
type pairCount struct {
	forward  int // low -> high
	backward int // high -> low
}

func foldUndirected(raw []Edge, in Interpretation) []Edge {
	pairs := make(map[Edge]*pairCount)
	loops := make(map[int]int)

	for _, e := range raw {
		if e.SelfLoop() {
			if !in.IgnoreSelfLoops {
				loops[e.Source]++
			}
			continue
		}
		key := e
		forward := true
		if key.Source > key.Target {
			key = key.Reversed()
			forward = false
		}
		pc, ok := pairs[key]
		if !ok {
			pc = &pairCount{}
			pairs[key] = pc
		}
		if forward {
			pc.forward++
		} else {
			pc.backward++
		}
	}

	out := make([]Edge, 0, len(raw))
	for key, pc := range pairs {
		mult := pc.forward + pc.backward
		if in.CombinePaired {
			mult = max(pc.forward, pc.backward)
		}
		for i := 0; i < mult; i++ {
			out = append(out, key)
		}
	}
	for node, count := range loops {
		for i := 0; i < count; i++ {
			out = append(out, Edge{Source: node, Target: node})
		}
	}
	return out
}
