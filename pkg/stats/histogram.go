package stats

import (
	"sort"
)

// Histogram maps non-negative integer observations to occurrence counts.
// The zero value is not usable; create one with NewHistogram.
type Histogram struct {
	counts map[int64]int64
	total  int64
}

// NewHistogram creates an empty histogram
func NewHistogram() *Histogram {
	return &Histogram{counts: make(map[int64]int64)}
}

// Observe records a single occurrence of value.
func (h *Histogram) Observe(value int64) {
	h.ObserveN(value, 1)
}

// ObserveN records n occurrences of value. Non-positive n is ignored.
func (h *Histogram) ObserveN(value, n int64) {
	if n <= 0 {
		return
	}
	h.counts[value] += n
	h.total += n
}

// Merge adds all counts of other into h. Merging is commutative, so
// partial histograms built by independent workers can be combined in any
// order with the same result.
func (h *Histogram) Merge(other *Histogram) {
	if other == nil {
		return
	}
	for value, n := range other.counts {
		h.counts[value] += n
	}
	h.total += other.total
}

// Count returns how many times value was observed
func (h *Histogram) Count(value int64) int64 {
	return h.counts[value]
}

// Total returns the number of observations
func (h *Histogram) Total() int64 {
	return h.total
}

// Len returns the number of distinct observed values
func (h *Histogram) Len() int {
	return len(h.counts)
}

// Empty reports whether nothing has been observed.
func (h *Histogram) Empty() bool {
	return h.total == 0
}

// Keys returns the distinct observed values in ascending order.
func (h *Histogram) Keys() []int64 {
	keys := make([]int64, 0, len(h.counts))
	for value := range h.counts {
		keys = append(keys, value)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Map returns a copy of the value -> count mapping.
func (h *Histogram) Map() map[int64]int64 {
	out := make(map[int64]int64, len(h.counts))
	for value, n := range h.counts {
		out[value] = n
	}
	return out
}

// Min returns the smallest observed value. ok is false for an empty histogram.
func (h *Histogram) Min() (value int64, ok bool) {
	if h.Empty() {
		return 0, false
	}
	first := true
	for v := range h.counts {
		if first || v < value {
			value = v
			first = false
		}
	}
	return value, true
}

// Max returns the largest observed value. ok is false for an empty histogram.
func (h *Histogram) Max() (value int64, ok bool) {
	if h.Empty() {
		return 0, false
	}
	first := true
	for v := range h.counts {
		if first || v > value {
			value = v
			first = false
		}
	}
	return value, true
}

// Mean returns the count-weighted mean of the observations.
func (h *Histogram) Mean() (float64, bool) {
	if h.Empty() {
		return 0, false
	}
	var sum float64
	for value, n := range h.counts {
		sum += float64(value) * float64(n)
	}
	return sum / float64(h.total), true
}

// Median returns the count-weighted median. For an even number of
// observations it is the average of the two middle observations.
func (h *Histogram) Median() (float64, bool) {
	if h.Empty() {
		return 0, false
	}
	lowRank := (h.total - 1) / 2
	highRank := h.total / 2

	var low, high int64
	var seen int64
	lowFound := false
	for _, value := range h.Keys() {
		seen += h.counts[value]
		if !lowFound && seen > lowRank {
			low = value
			lowFound = true
		}
		if seen > highRank {
			high = value
			break
		}
	}
	return (float64(low) + float64(high)) / 2, true
}

// Clone returns an independent copy of h.
func (h *Histogram) Clone() *Histogram {
	return &Histogram{counts: h.Map(), total: h.total}
}

// Halve divides every count by two. It is used by the undirected sweep,
// which sees each unordered pair once from each endpoint; ok is false
// (and h is unchanged) if any count is odd.
func (h *Histogram) Halve() bool {
	for _, n := range h.counts {
		if n%2 != 0 {
			return false
		}
	}
	for value, n := range h.counts {
		h.counts[value] = n / 2
	}
	h.total /= 2
	return true
}
