package summarizer

import (
	"sort"

	"dfsummary/domain/dataset"
	"dfsummary/domain/summary"
)

type categoryKey struct {
	value string
	null  bool
}

// summarizeCategorical counts every value including nulls, which form their
// own category. Rows are ordered by count descending; equal counts keep the
// order in which the categories were first seen.
func summarizeCategorical(col *dataset.Column, nullPercent float64) *summary.CategoricalSummary {
	counts := make(map[categoryKey]int)
	var order []categoryKey

	for _, v := range col.Values {
		key := categoryKey{null: v.Null()}
		if !key.null {
			key.value = v.String()
		}
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	total := col.Len()
	rows := make([]summary.CategoryCount, len(order))
	for i, key := range order {
		label := key.value
		if key.null {
			label = "null"
		}
		rows[i] = summary.CategoryCount{
			Category:   label,
			IsNull:     key.null,
			Count:      counts[key],
			Percentage: 100 * float64(counts[key]) / float64(total),
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Count > rows[j].Count
	})

	return &summary.CategoricalSummary{
		Categories:  rows,
		UniqueCount: len(rows),
		TotalCount:  total,
		NullPercent: nullPercent,
	}
}
