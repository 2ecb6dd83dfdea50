package algorithms

import (
	"github.com/dd0wney/cluso-netanalyzer/pkg/network"
	"github.com/dd0wney/cluso-netanalyzer/pkg/stats"
)

// DegreeDistributions holds the degree histograms of a graph. In and Out
// are nil for undirected graphs.
type DegreeDistributions struct {
	All *stats.Histogram
	In  *stats.Histogram
	Out *stats.Histogram
}

// Degrees builds the degree histograms over the given nodes of g, or over
// every node when nodes is nil. Degrees count link multiplicity and
// self-loops the same way network.Graph.Degree does.
func Degrees(g *network.Graph, nodes []int) DegreeDistributions {
	d := DegreeDistributions{All: stats.NewHistogram()}
	if g.Directed() {
		d.In = stats.NewHistogram()
		d.Out = stats.NewHistogram()
	}
	observe := func(v int) {
		d.All.Observe(int64(g.Degree(v)))
		if g.Directed() {
			in, _ := g.InDegree(v)
			out, _ := g.OutDegree(v)
			d.In.Observe(int64(in))
			d.Out.Observe(int64(out))
		}
	}
	if nodes == nil {
		for v := 0; v < g.NodeCount(); v++ {
			observe(v)
		}
		return d
	}
	for _, v := range nodes {
		observe(v)
	}
	return d
}
