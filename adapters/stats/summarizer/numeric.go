package summarizer

import (
	"fmt"
	"math"
	"sort"

	mstats "github.com/montanaflynn/stats"

	"dfsummary/domain/dataset"
	"dfsummary/domain/summary"
)

func summarizeNumeric(col *dataset.Column, nullPercent float64) (*summary.NumericSummary, error) {
	values := make([]float64, 0, col.Len())
	unique := make(map[float64]struct{})
	for _, v := range col.Values {
		f, ok := v.Float()
		if !ok {
			continue
		}
		values = append(values, f)
		unique[f] = struct{}{}
	}

	out := &summary.NumericSummary{
		UniqueCount: len(unique),
		NullPercent: nullPercent,
		Values:      values,
		Bins:        []summary.Bin{},
	}

	if len(values) == 0 {
		out.NoData = true
		return out, nil
	}

	var err error
	if out.Min, out.Max, out.Mean, out.Median, err = describe(values); err != nil {
		return nil, err
	}

	out.Bins = histogram(values, out.Min, out.Max, BinCount(col.Len(), len(unique)))
	return out, nil
}

// describe returns the min, max, mean and median of values
func describe(values []float64) (min, max, mean, median float64, err error) {
	if min, err = mstats.Min(values); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("min: %w", err)
	}
	if max, err = mstats.Max(values); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("max: %w", err)
	}
	if mean, err = mstats.Mean(values); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("mean: %w", err)
	}
	if median, err = mstats.Median(values); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("median: %w", err)
	}
	return min, max, mean, median, nil
}

// BinCount returns min(ceil(log2(rows)+1), unique), or 0 when either count
// is zero.
func BinCount(rows, unique int) int {
	if rows < 1 || unique < 1 {
		return 0
	}
	b := int(math.Ceil(math.Log2(float64(rows)) + 1))
	if b > unique {
		b = unique
	}
	return b
}

// BinEdges partitions [min, max] into n equal-width bins and returns the
// n+1 edges. Bins are right-closed, so the first edge is pulled below min by
// 0.1% of the range to keep min inside the first bin. A zero-width range is
// widened by 0.1% of its magnitude on both sides.
func BinEdges(min, max float64, n int) []float64 {
	if n <= 0 {
		return nil
	}

	degenerate := min == max
	if degenerate {
		adj := 0.001 * math.Abs(min)
		if min == 0 {
			adj = 0.001
		}
		min -= adj
		max += adj
	}

	edges := make([]float64, n+1)
	step := (max - min) / float64(n)
	for i := range edges {
		edges[i] = min + float64(i)*step
	}
	edges[n] = max

	if !degenerate {
		edges[0] -= (max - min) * 0.001
	}
	return edges
}

func histogram(values []float64, min, max float64, n int) []summary.Bin {
	edges := BinEdges(min, max, n)
	if edges == nil {
		return []summary.Bin{}
	}

	counts := make([]int, n)
	upper := edges[1:]
	for _, v := range values {
		// first bin whose right edge is >= v
		i := sort.SearchFloat64s(upper, v)
		if i >= n {
			i = n - 1
		}
		counts[i]++
	}

	bins := make([]summary.Bin, n)
	for i := range bins {
		bins[i] = summary.Bin{
			Left:       edges[i],
			Right:      edges[i+1],
			Label:      fmt.Sprintf("From %.1f to %.2f", edges[i], edges[i+1]),
			Count:      counts[i],
			Percentage: 100 * float64(counts[i]) / float64(len(values)),
		}
	}
	return bins
}
