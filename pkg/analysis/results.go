package analysis

import (
	"math"

	"github.com/dd0wney/cluso-netanalyzer/pkg/algorithms"
	"github.com/dd0wney/cluso-netanalyzer/pkg/network"
	"github.com/dd0wney/cluso-netanalyzer/pkg/stats"
)

// NetworkStats holds the network-wide statistics of a run. They are always
// computed over the whole network, whatever the reported subset.
type NetworkStats struct {
	NodeCount         int  `json:"node_count" yaml:"node_count"`
	EdgeCount         int  `json:"edge_count" yaml:"edge_count"`
	Directed          bool `json:"directed" yaml:"directed"`
	SelfLoops         int  `json:"self_loops" yaml:"self_loops"`
	MultiEdgePartners int  `json:"multi_edge_partners" yaml:"multi_edge_partners"`
	IsolatedNodes     int  `json:"isolated_nodes" yaml:"isolated_nodes"`

	ConnectedComponents int `json:"connected_components" yaml:"connected_components"`
	WeakComponents      int `json:"weak_components" yaml:"weak_components"`
	LargestComponent    int `json:"largest_component" yaml:"largest_component"`
	// StrongComponents is -1 when the pass was not run.
	StrongComponents int `json:"strong_components" yaml:"strong_components"`

	// Diameter is the largest finite shortest path length. When some pair
	// of nodes is unreachable the true diameter is infinite and
	// DiameterInfinite is set.
	Diameter         int  `json:"diameter" yaml:"diameter"`
	DiameterInfinite bool `json:"diameter_infinite,omitempty" yaml:"diameter_infinite,omitempty"`
	// Radius is the smallest positive eccentricity.
	Radius int `json:"radius" yaml:"radius"`
	// AvgPathLength is the mean length over connected pairs.
	AvgPathLength float64 `json:"avg_path_length" yaml:"avg_path_length"`
	// ConnectedPairs counts reachable pairs of distinct nodes: ordered
	// pairs when directed, unordered when undirected.
	ConnectedPairs int64 `json:"connected_pairs" yaml:"connected_pairs"`

	AvgClustering  float64 `json:"avg_clustering" yaml:"avg_clustering"`
	AvgNeighbors   float64 `json:"avg_neighbors" yaml:"avg_neighbors"`
	Density        float64 `json:"density" yaml:"density"`
	Heterogeneity  float64 `json:"heterogeneity" yaml:"heterogeneity"`
	Centralization float64 `json:"centralization" yaml:"centralization"`
}

// StrictDiameter returns the diameter only when every pair of distinct
// nodes is connected. For a disconnected network the diameter is
// infinite and ok is false.
func (s NetworkStats) StrictDiameter() (diameter int, ok bool) {
	n := int64(s.NodeCount)
	pairs := n * (n - 1)
	if !s.Directed {
		pairs /= 2
	}
	if s.ConnectedPairs != pairs {
		return 0, false
	}
	return s.Diameter, true
}

// NodeStats holds the statistics of one reported node.
type NodeStats struct {
	Index     int `json:"index" yaml:"index"`
	Degree    int `json:"degree" yaml:"degree"`
	InDegree  int `json:"in_degree,omitempty" yaml:"in_degree,omitempty"`
	OutDegree int `json:"out_degree,omitempty" yaml:"out_degree,omitempty"`
	SelfLoops int `json:"self_loops,omitempty" yaml:"self_loops,omitempty"`
	Neighbors int `json:"neighbors" yaml:"neighbors"`

	Clustering  float64 `json:"clustering" yaml:"clustering"`
	Topological float64 `json:"topological" yaml:"topological"`
	Closeness   float64 `json:"closeness" yaml:"closeness"`
	// Betweenness values are raw, halved for undirected networks.
	Betweenness           float64 `json:"betweenness" yaml:"betweenness"`
	NormalizedBetweenness float64 `json:"normalized_betweenness" yaml:"normalized_betweenness"`
	Stress                float64 `json:"stress" yaml:"stress"`

	Eccentricity             int     `json:"eccentricity" yaml:"eccentricity"`
	AvgShortestPath          float64 `json:"avg_shortest_path" yaml:"avg_shortest_path"`
	NeighborhoodConnectivity float64 `json:"neighborhood_connectivity" yaml:"neighborhood_connectivity"`
	Isolated                 bool    `json:"isolated" yaml:"isolated"`
}

// Results is the immutable snapshot produced by a completed run.
// Per-node distributions cover the reported nodes only.
type Results struct {
	RunID          string                 `json:"run_id" yaml:"run_id"`
	Interpretation network.Interpretation `json:"interpretation" yaml:"interpretation"`
	Completed      bool                   `json:"completed" yaml:"completed"`
	// Betweenness reports whether betweenness and stress were computed.
	Betweenness bool `json:"betweenness" yaml:"betweenness"`

	Network NetworkStats `json:"network" yaml:"network"`
	Nodes   []NodeStats  `json:"nodes" yaml:"nodes"`

	DegreeDist    *stats.Histogram `json:"-" yaml:"-"`
	InDegreeDist  *stats.Histogram `json:"-" yaml:"-"`
	OutDegreeDist *stats.Histogram `json:"-" yaml:"-"`
	// DistanceDist counts shortest path lengths over all connected pairs.
	DistanceDist        *stats.Histogram `json:"-" yaml:"-"`
	SharedNeighborsDist *stats.Histogram `json:"-" yaml:"-"`
	StressDist          *stats.Histogram `json:"-" yaml:"-"`

	// Per-neighbor-count averages, keyed by number of neighbors.
	ClusteringByDegree   *stats.Points `json:"-" yaml:"-"`
	TopologicalByDegree  *stats.Points `json:"-" yaml:"-"`
	ClosenessByDegree    *stats.Points `json:"-" yaml:"-"`
	BetweennessByDegree  *stats.Points `json:"-" yaml:"-"`
	ConnectivityByDegree *stats.Points `json:"-" yaml:"-"`
}

// Node returns the statistics of node index v if it was reported.
func (r *Results) Node(v int) (NodeStats, bool) {
	for _, ns := range r.Nodes {
		if ns.Index == v {
			return ns, true
		}
	}
	return NodeStats{}, false
}

// passOutputs collects what the passes of a run produced.
type passOutputs struct {
	degrees   algorithms.DegreeDistributions
	connected *algorithms.Components
	strong    *algorithms.Components
	cluster   *algorithms.ClusteringResult
	overlap   *algorithms.Overlap
	nbConn    []float64
	summary   algorithms.NeighborSummary
	sweep     *algorithms.SweepResult
}

// materialize builds the immutable Results from the pass outputs.
func materialize(runID string, g *network.Graph, cfg Config, out *passOutputs) *Results {
	n := g.NodeCount()
	directed := g.Directed()
	sw := out.sweep

	res := &Results{
		RunID:                runID,
		Interpretation:       g.Interpretation(),
		Completed:            true,
		Betweenness:          cfg.ComputeBetweenness,
		DegreeDist:           out.degrees.All,
		InDegreeDist:         out.degrees.In,
		OutDegreeDist:        out.degrees.Out,
		DistanceDist:         sw.Distances.Clone(),
		SharedNeighborsDist:  out.overlap.SharedNeighbors.Clone(),
		ClusteringByDegree:   stats.NewPoints(),
		TopologicalByDegree:  stats.NewPoints(),
		ClosenessByDegree:    stats.NewPoints(),
		ConnectivityByDegree: stats.NewPoints(),
	}
	if cfg.ComputeBetweenness {
		res.StressDist = stats.NewHistogram()
		res.BetweennessByDegree = stats.NewPoints()
	}

	closeness := algorithms.Closeness(sw.DistSum, sw.Reached)
	avgPath := algorithms.AverageShortestPath(sw.DistSum, sw.Reached)
	var normalized []float64
	if cfg.ComputeBetweenness {
		normalized = algorithms.NormalizedBetweenness(sw.Betweenness, directed)
	}

	// Network-wide aggregates
	ns := &res.Network
	ns.NodeCount = n
	ns.EdgeCount = g.EdgeCount()
	ns.Directed = directed
	for v := 0; v < n; v++ {
		ns.SelfLoops += g.SelfLoops(v)
		ns.MultiEdgePartners += g.MultiEdgePartners(v)
		if g.Degree(v) == 0 {
			ns.IsolatedNodes++
		}
	}
	if !directed {
		// Every multi-edge pair was counted from both ends.
		ns.MultiEdgePartners /= 2
	}
	ns.ConnectedComponents = out.connected.Count
	ns.WeakComponents = out.connected.Count
	ns.LargestComponent = out.connected.Largest()
	ns.StrongComponents = -1
	if out.strong != nil {
		ns.StrongComponents = out.strong.Count
	}
	ns.Diameter, ns.Radius = algorithms.DiameterRadius(sw.Eccentricity)
	if mean, ok := sw.Distances.Mean(); ok {
		ns.AvgPathLength = mean
	}
	ns.ConnectedPairs = sw.Distances.Total()
	_, strict := ns.StrictDiameter()
	ns.DiameterInfinite = !strict
	ns.AvgClustering = out.cluster.Average()
	ns.AvgNeighbors = out.summary.AvgNeighbors
	ns.Density = out.summary.Density
	ns.Heterogeneity = out.summary.Heterogeneity
	ns.Centralization = out.summary.Centralization

	// Reported nodes
	subset := cfg.Subset
	if subset == nil {
		subset = make([]int, n)
		for v := range subset {
			subset[v] = v
		}
	}
	res.Nodes = make([]NodeStats, 0, len(subset))
	for _, v := range subset {
		k := len(g.AllNeighbors(v))
		node := NodeStats{
			Index:                    v,
			Degree:                   g.Degree(v),
			SelfLoops:                g.SelfLoops(v),
			Neighbors:                k,
			Clustering:               out.cluster.Coefficients[v],
			Topological:              out.overlap.Topological[v],
			Closeness:                closeness[v],
			Eccentricity:             sw.Eccentricity[v],
			AvgShortestPath:          avgPath[v],
			NeighborhoodConnectivity: out.nbConn[v],
			Isolated:                 g.Degree(v) == 0,
		}
		if directed {
			node.InDegree, _ = g.InDegree(v)
			node.OutDegree, _ = g.OutDegree(v)
		}
		if cfg.ComputeBetweenness {
			node.Betweenness = sw.Betweenness[v]
			node.NormalizedBetweenness = normalized[v]
			node.Stress = sw.Stress[v]
			res.StressDist.Observe(int64(math.Round(node.Stress)))
		}

		if k > 0 {
			res.ClosenessByDegree.Add(int64(k), node.Closeness)
			res.ConnectivityByDegree.Add(int64(k), node.NeighborhoodConnectivity)
			if cfg.ComputeBetweenness {
				res.BetweennessByDegree.Add(int64(k), node.NormalizedBetweenness)
			}
		}
		if k >= 2 {
			res.ClusteringByDegree.Add(int64(k), node.Clustering)
			res.TopologicalByDegree.Add(int64(k), node.Topological)
		}
		res.Nodes = append(res.Nodes, node)
	}
	return res
}
