package summarizer

import (
	"fmt"
	"math"

	"dfsummary/domain/dataset"
	"dfsummary/domain/summary"
	"dfsummary/internal"
)

// Summarizer computes column summaries. It holds no per-call state and is
// safe to share.
type Summarizer struct {
	logger *internal.Logger
}

// New creates a summarizer. A nil logger disables logging.
func New(logger *internal.Logger) *Summarizer {
	return &Summarizer{logger: logger}
}

// Summarize classifies the named column and computes its payload. Errors are
// an unknown column or a failed statistic; degenerate data (no rows, all nulls) yields an
// Empty or NoData payload instead. Unclassified columns return a summary with
// no variant set.
func (s *Summarizer) Summarize(ds *dataset.Dataset, column string) (*summary.Summary, error) {
	col, err := ds.Column(column)
	if err != nil {
		return nil, err
	}

	class := summary.Classify(col)
	total := col.Len()
	nulls := col.NullCount()

	out := &summary.Summary{
		Dataset:        ds.Name,
		Column:         col.Name,
		Label:          col.Name,
		Classification: class,
		Title:          class.Title(),
		Icon:           class.Icon(),
		TotalCount:     total,
		NullCount:      nulls,
		NullPercent:    NullPercent(nulls, total),
		Empty:          total == 0,
	}

	switch class {
	case summary.Boolean, summary.Categorical:
		out.Categorical = summarizeCategorical(col, out.NullPercent)
		out.Metrics = []summary.Metric{
			{Label: summary.MetricUniqueValues, Value: out.Categorical.UniqueCount},
			{Label: summary.MetricTotalValues, Value: out.Categorical.TotalCount},
			{Label: summary.MetricNullPercent, Value: out.NullPercent},
		}
	case summary.Numeric:
		num, err := summarizeNumeric(col, out.NullPercent)
		if err != nil {
			return nil, fmt.Errorf("summarize %s.%s: %w", ds.Name, col.Name, err)
		}
		out.Numeric = num
		out.Metrics = numericMetrics(out.Numeric)
	case summary.Datetime:
		out.Datetime = summarizeDatetime(col, out.NullPercent)
		out.Metrics = datetimeMetrics(out.Datetime)
	default:
		s.logger.Debug("[Summarizer] column %q of type %s is not summarizable", col.Name, col.Type)
		return out, nil
	}

	s.logger.Debug("[Summarizer] %s.%s summarized as %s (%d rows, %.1f%% null)",
		ds.Name, col.Name, class, total, out.NullPercent)
	return out, nil
}

// NullPercent returns 100*nulls/total rounded to one decimal, or 0 when
// there are no rows.
func NullPercent(nulls, total int) float64 {
	if total <= 0 {
		return 0
	}
	return round1(100 * float64(nulls) / float64(total))
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func numericMetrics(n *summary.NumericSummary) []summary.Metric {
	metrics := []summary.Metric{
		{Label: summary.MetricUniqueValues, Value: n.UniqueCount},
		{Label: summary.MetricNullPercent, Value: n.NullPercent},
	}
	if n.NoData {
		return append(metrics,
			summary.Metric{Label: summary.MetricMax},
			summary.Metric{Label: summary.MetricMean},
			summary.Metric{Label: summary.MetricMedian},
			summary.Metric{Label: summary.MetricMin},
		)
	}
	return append(metrics,
		summary.Metric{Label: summary.MetricMax, Value: n.Max},
		summary.Metric{Label: summary.MetricMean, Value: n.Mean},
		summary.Metric{Label: summary.MetricMedian, Value: n.Median},
		summary.Metric{Label: summary.MetricMin, Value: n.Min},
	)
}

func datetimeMetrics(d *summary.DatetimeSummary) []summary.Metric {
	earliest := summary.Metric{Label: summary.MetricEarliest}
	latest := summary.Metric{Label: summary.MetricLatest}
	if !d.NoData {
		earliest.Value = d.Earliest
		latest.Value = d.Latest
	}
	return []summary.Metric{
		earliest,
		latest,
		{Label: summary.MetricUniqueValues, Value: d.UniqueCount},
		{Label: summary.MetricNullPercent, Value: d.NullPercent},
	}
}
