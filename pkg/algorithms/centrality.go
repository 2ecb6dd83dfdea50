package algorithms

// NormalizedBetweenness scales raw betweenness values to [0, 1] by the
// number of pairs a node can lie between: (N-1)(N-2) ordered pairs when
// directed, half that when undirected. Graphs with fewer than three nodes
// yield all zeros.
func NormalizedBetweenness(raw []float64, directed bool) []float64 {
	n := len(raw)
	out := make([]float64, n)
	if n < 3 {
		return out
	}
	pairs := float64(n-1) * float64(n-2)
	if !directed {
		pairs /= 2
	}
	for v, b := range raw {
		out[v] = b / pairs
	}
	return out
}

// Closeness returns reached/distSum per node: the reciprocal of the mean
// distance to the nodes a node reaches. Nodes reaching nothing get 0.
func Closeness(distSum []int64, reached []int) []float64 {
	out := make([]float64, len(distSum))
	for v, sum := range distSum {
		if sum > 0 {
			out[v] = float64(reached[v]) / float64(sum)
		}
	}
	return out
}

// AverageShortestPath returns distSum/reached per node, 0 for nodes that
// reach nothing.
func AverageShortestPath(distSum []int64, reached []int) []float64 {
	out := make([]float64, len(distSum))
	for v, sum := range distSum {
		if reached[v] > 0 {
			out[v] = float64(sum) / float64(reached[v])
		}
	}
	return out
}

// DiameterRadius returns the largest eccentricity and the smallest
// positive one. Radius is 0 when no node reaches another.
func DiameterRadius(eccentricity []int) (diameter, radius int) {
	for _, e := range eccentricity {
		diameter = max(diameter, e)
		if e > 0 && (radius == 0 || e < radius) {
			radius = e
		}
	}
	return diameter, radius
}
