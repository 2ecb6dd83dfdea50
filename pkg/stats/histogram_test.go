package stats

import (
	"testing"
)

func TestHistogram_EmptyHasNoData(t *testing.T) {
	h := NewHistogram()

	if !h.Empty() {
		t.Fatal("expected new histogram to be empty")
	}
	if _, ok := h.Mean(); ok {
		t.Error("Mean on empty histogram should report no data")
	}
	if _, ok := h.Median(); ok {
		t.Error("Median on empty histogram should report no data")
	}
	if _, ok := h.Min(); ok {
		t.Error("Min on empty histogram should report no data")
	}
	if _, ok := h.Max(); ok {
		t.Error("Max on empty histogram should report no data")
	}
}

func TestHistogram_DerivedStatistics(t *testing.T) {
	h := NewHistogram()
	h.ObserveN(1, 4)
	h.Observe(4)

	if h.Total() != 5 {
		t.Errorf("Total() = %d, want 5", h.Total())
	}
	if h.Len() != 2 {
		t.Errorf("Len() = %d, want 2", h.Len())
	}

	mean, _ := h.Mean()
	if mean != 8.0/5.0 {
		t.Errorf("Mean() = %f, want %f", mean, 8.0/5.0)
	}
	median, _ := h.Median()
	if median != 1 {
		t.Errorf("Median() = %f, want 1", median)
	}
	minV, _ := h.Min()
	maxV, _ := h.Max()
	if minV != 1 || maxV != 4 {
		t.Errorf("Min/Max = %d/%d, want 1/4", minV, maxV)
	}
}

func TestHistogram_MedianEvenTotal(t *testing.T) {
	tests := []struct {
		name string
		obs  []int64
		want float64
	}{
		{"two values", []int64{1, 2}, 1.5},
		{"same value", []int64{3, 3}, 3},
		{"four values", []int64{1, 2, 3, 10}, 2.5},
		{"odd count", []int64{5, 1, 9}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHistogram()
			for _, v := range tt.obs {
				h.Observe(v)
			}
			got, ok := h.Median()
			if !ok || got != tt.want {
				t.Errorf("Median() = %v (ok=%v), want %v", got, ok, tt.want)
			}
		})
	}
}

func TestHistogram_Merge(t *testing.T) {
	a := NewHistogram()
	a.ObserveN(1, 2)
	a.Observe(3)

	b := NewHistogram()
	b.Observe(1)
	b.ObserveN(7, 3)

	a.Merge(b)
	a.Merge(nil)

	if a.Count(1) != 3 || a.Count(3) != 1 || a.Count(7) != 3 {
		t.Errorf("unexpected merged counts: %v", a.Map())
	}
	if a.Total() != 7 {
		t.Errorf("Total() = %d, want 7", a.Total())
	}
	if b.Total() != 4 {
		t.Error("Merge must not modify its argument")
	}
}

func TestHistogram_KeysAscending(t *testing.T) {
	h := NewHistogram()
	for _, v := range []int64{9, 2, 5, 2, 0} {
		h.Observe(v)
	}
	keys := h.Keys()
	want := []int64{0, 2, 5, 9}
	if len(keys) != len(want) {
		t.Fatalf("Keys() = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Keys()[%d] = %d, want %d", i, keys[i], want[i])
		}
	}
}

func TestHistogram_Halve(t *testing.T) {
	h := NewHistogram()
	h.ObserveN(1, 8)
	h.ObserveN(2, 4)

	if !h.Halve() {
		t.Fatal("Halve() failed on even counts")
	}
	if h.Count(1) != 4 || h.Count(2) != 2 || h.Total() != 6 {
		t.Errorf("unexpected halved histogram: %v total=%d", h.Map(), h.Total())
	}

	h.Observe(3)
	if h.Halve() {
		t.Error("Halve() should refuse odd counts")
	}
	if h.Count(1) != 4 {
		t.Error("failed Halve must leave the histogram unchanged")
	}
}

func TestHistogram_IgnoresNonPositiveN(t *testing.T) {
	h := NewHistogram()
	h.ObserveN(3, 0)
	h.ObserveN(3, -2)
	if !h.Empty() {
		t.Errorf("expected histogram to stay empty, got %v", h.Map())
	}
}
