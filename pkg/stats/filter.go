package stats

import "fmt"

// Filter restricts a histogram to observations within [Min, Max].
// A zero bound is open, so the zero Filter keeps everything.
type Filter struct {
	Min int64 `json:"min" yaml:"min" mapstructure:"min" validate:"gte=0"`
	Max int64 `json:"max" yaml:"max" mapstructure:"max" validate:"gte=0"`
}

// Validate checks that the bounds describe a non-empty range.
func (f Filter) Validate() error {
	if f.Min < 0 || f.Max < 0 {
		return fmt.Errorf("histogram filter bounds must be non-negative, got [%d, %d]", f.Min, f.Max)
	}
	if f.Max != 0 && f.Min > f.Max {
		return fmt.Errorf("histogram filter min %d exceeds max %d", f.Min, f.Max)
	}
	return nil
}

// Keeps reports whether value passes the filter.
func (f Filter) Keeps(value int64) bool {
	if f.Min != 0 && value < f.Min {
		return false
	}
	if f.Max != 0 && value > f.Max {
		return false
	}
	return true
}

// Apply returns a filtered copy of h. h itself is not modified.
func (f Filter) Apply(h *Histogram) *Histogram {
	out := NewHistogram()
	if h == nil {
		return out
	}
	for value, n := range h.counts {
		if f.Keeps(value) {
			out.ObserveN(value, n)
		}
	}
	return out
}
