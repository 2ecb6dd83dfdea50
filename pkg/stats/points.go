package stats

import "sort"

// Point is a single (x, mean y) entry of a Points set.
type Point struct {
	X       int64   `json:"x" yaml:"x"`
	Y       float64 `json:"y" yaml:"y"`
	Samples int64   `json:"samples" yaml:"samples"`
}

// Points aggregates (x, y) samples into the mean y per x. It backs the
// per-degree distributions such as average clustering coefficient by
// degree.
type Points struct {
	sums  map[int64]float64
	count map[int64]int64
}

// NewPoints creates an empty point set
func NewPoints() *Points {
	return &Points{
		sums:  make(map[int64]float64),
		count: make(map[int64]int64),
	}
}

// Add records a sample y at x.
func (p *Points) Add(x int64, y float64) {
	p.sums[x] += y
	p.count[x]++
}

// Merge folds the samples of other into p.
func (p *Points) Merge(other *Points) {
	if other == nil {
		return
	}
	for x, s := range other.sums {
		p.sums[x] += s
		p.count[x] += other.count[x]
	}
}

// Len returns the number of distinct x values
func (p *Points) Len() int {
	return len(p.count)
}

// Mean returns the mean y recorded at x.
func (p *Points) Mean(x int64) (float64, bool) {
	n := p.count[x]
	if n == 0 {
		return 0, false
	}
	return p.sums[x] / float64(n), true
}

// Sorted returns the aggregated points ordered by x.
func (p *Points) Sorted() []Point {
	out := make([]Point, 0, len(p.count))
	for x, n := range p.count {
		out = append(out, Point{X: x, Y: p.sums[x] / float64(n), Samples: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].X < out[j].X })
	return out
}
