package parallel

// Range is a half-open interval [Start, End) of item indices.
type Range struct {
	Start int
	End   int
}

// Len returns the number of items in the range
func (r Range) Len() int { return r.End - r.Start }

// Chunks splits n items into at most parts contiguous ranges of nearly
// equal size. The split depends only on n and parts, so work assigned to
// chunk i is the same on every run.
func Chunks(n, parts int) []Range {
	if n <= 0 {
		return nil
	}
	if parts <= 0 {
		parts = 1
	}
	if parts > n {
		parts = n
	}

	// Use int64 to prevent overflow in intermediate calculation
	size := int((int64(n) + int64(parts) - 1) / int64(parts))
	out := make([]Range, 0, parts)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		out = append(out, Range{Start: start, End: end})
	}
	return out
}
