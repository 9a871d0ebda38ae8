package summarizer

import (
	"math"
	"testing"
	"time"

	"dfsummary/adapters/datareadiness/coercer"
	"dfsummary/domain/core"
	"dfsummary/domain/dataset"
	"dfsummary/domain/summary"

	mstats "github.com/montanaflynn/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strs(values ...string) []dataset.Value {
	out := make([]dataset.Value, len(values))
	for i, v := range values {
		if v == "<null>" {
			out[i] = dataset.NewMissingValue()
		} else {
			out[i] = dataset.NewStringValue(v)
		}
	}
	return out
}

func nums(values ...float64) []dataset.Value {
	out := make([]dataset.Value, len(values))
	for i, v := range values {
		out[i] = dataset.NewNumericValue(v)
	}
	return out
}

func mustDataset(t *testing.T, cols ...*dataset.Column) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New("test", cols...)
	require.NoError(t, err)
	return ds
}

func TestSummarize_CategoricalWithNull(t *testing.T) {
	ds := mustDataset(t, dataset.NewColumn("grade", dataset.TypeObject, strs("A", "B", "A", "<null>")))

	s, err := New(nil).Summarize(ds, "grade")
	require.NoError(t, err)
	assert.Equal(t, summary.Categorical, s.Classification)
	require.NotNil(t, s.Categorical)
	assert.Nil(t, s.Numeric)
	assert.Nil(t, s.Datetime)

	cats := s.Categorical.Categories
	require.Len(t, cats, 3)
	assert.Equal(t, "A", cats[0].Category)
	assert.Equal(t, 2, cats[0].Count)
	assert.InDelta(t, 50.0, cats[0].Percentage, 1e-9)
	assert.Equal(t, "B", cats[1].Category)
	assert.Equal(t, 1, cats[1].Count)
	assert.InDelta(t, 25.0, cats[1].Percentage, 1e-9)
	assert.True(t, cats[2].IsNull)
	assert.Equal(t, 1, cats[2].Count)
	assert.InDelta(t, 25.0, cats[2].Percentage, 1e-9)

	assert.Equal(t, 3, s.Categorical.UniqueCount, "null counts as its own category")
	assert.Equal(t, 4, s.Categorical.TotalCount)
	assert.Equal(t, 25.0, s.NullPercent)
	assert.Equal(t, "Categorical column summary", s.Title)
	assert.Equal(t, []summary.Metric{
		{Label: summary.MetricUniqueValues, Value: 3},
		{Label: summary.MetricTotalValues, Value: 4},
		{Label: summary.MetricNullPercent, Value: 25.0},
	}, s.Metrics)
}

func TestSummarize_CategoricalTiesKeepFirstSeenOrder(t *testing.T) {
	ds := mustDataset(t, dataset.NewColumn("c", dataset.TypeCategory, strs("z", "y", "x", "y", "z", "x")))

	s, err := New(nil).Summarize(ds, "c")
	require.NoError(t, err)

	var order []string
	for _, c := range s.Categorical.Categories {
		order = append(order, c.Category)
	}
	assert.Equal(t, []string{"z", "y", "x"}, order)
}

func TestSummarize_Boolean(t *testing.T) {
	ds := mustDataset(t, dataset.NewColumn("smoker", dataset.TypeBool, []dataset.Value{
		dataset.NewBooleanValue(true),
		dataset.NewBooleanValue(false),
		dataset.NewBooleanValue(false),
	}))

	s, err := New(nil).Summarize(ds, "smoker")
	require.NoError(t, err)
	assert.Equal(t, summary.Boolean, s.Classification)
	assert.Equal(t, "toggle_on", s.Icon)
	require.NotNil(t, s.Categorical)
	assert.Equal(t, "false", s.Categorical.Categories[0].Category)
	assert.Equal(t, 2, s.Categorical.Categories[0].Count)
	assert.Equal(t, 0.0, s.NullPercent)
}

func TestSummarize_Numeric(t *testing.T) {
	values := append(nums(1, 2, 3, 4, 5), dataset.NewMissingValue())
	ds := mustDataset(t, dataset.NewColumn("score", dataset.TypeInt, values))

	s, err := New(nil).Summarize(ds, "score")
	require.NoError(t, err)
	assert.Equal(t, summary.Numeric, s.Classification)
	require.NotNil(t, s.Numeric)

	n := s.Numeric
	assert.False(t, n.NoData)
	assert.Equal(t, 1.0, n.Min)
	assert.Equal(t, 5.0, n.Max)
	assert.Equal(t, 3.0, n.Mean)
	assert.Equal(t, 3.0, n.Median)
	assert.Equal(t, 5, n.UniqueCount)
	assert.Equal(t, 16.7, n.NullPercent)
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, n.Values)

	// ceil(log2(6)+1) = 4 bins over (0.996, 5]
	require.Len(t, n.Bins, 4)
	counts := make([]int, len(n.Bins))
	for i, b := range n.Bins {
		counts[i] = b.Count
	}
	assert.Equal(t, []int{2, 1, 1, 1}, counts)
	assert.Equal(t, "From 1.0 to 2.00", n.Bins[0].Label)
	assert.Equal(t, "From 4.0 to 5.00", n.Bins[3].Label)
	assert.InDelta(t, 40.0, n.Bins[0].Percentage, 1e-9)

	require.Len(t, s.Metrics, 6)
	assert.Equal(t, summary.MetricMax, s.Metrics[2].Label)
	assert.Equal(t, 5.0, s.Metrics[2].Value)
}

func TestSummarize_NumericAllNull(t *testing.T) {
	ds := mustDataset(t, dataset.NewColumn("x", dataset.TypeFloat, []dataset.Value{
		dataset.NewMissingValue(), dataset.NewNumericValue(math.NaN()),
	}))

	s, err := New(nil).Summarize(ds, "x")
	require.NoError(t, err)
	require.NotNil(t, s.Numeric)
	assert.True(t, s.Numeric.NoData)
	assert.Empty(t, s.Numeric.Bins)
	assert.Equal(t, 0, s.Numeric.UniqueCount)
	assert.Equal(t, 100.0, s.NullPercent)
	for _, m := range s.Metrics[2:] {
		assert.Nil(t, m.Value, "metric %s should be undefined", m.Label)
	}
}

func TestSummarize_NumericConstantColumn(t *testing.T) {
	ds := mustDataset(t, dataset.NewColumn("x", dataset.TypeFloat, nums(0, 0, 0)))

	s, err := New(nil).Summarize(ds, "x")
	require.NoError(t, err)
	require.Len(t, s.Numeric.Bins, 1)
	assert.Equal(t, 3, s.Numeric.Bins[0].Count)
	assert.InDelta(t, -0.001, s.Numeric.Bins[0].Left, 1e-12)
	assert.InDelta(t, 0.001, s.Numeric.Bins[0].Right, 1e-12)
}

func TestSummarize_EmptyDataset(t *testing.T) {
	ds := mustDataset(t,
		dataset.NewColumn("cat", dataset.TypeObject, nil),
		dataset.NewColumn("num", dataset.TypeFloat, nil),
		dataset.NewColumn("when", dataset.TypeDatetime, nil),
	)

	sum := New(nil)
	for _, name := range ds.ColumnNames() {
		s, err := sum.Summarize(ds, name)
		require.NoError(t, err, name)
		assert.True(t, s.Empty, name)
		assert.Equal(t, 0.0, s.NullPercent, name)
		assert.Equal(t, 0, s.TotalCount, name)
	}

	s, _ := sum.Summarize(ds, "cat")
	assert.Empty(t, s.Categorical.Categories)

	s, _ = sum.Summarize(ds, "num")
	assert.True(t, s.Numeric.NoData)
	assert.Empty(t, s.Numeric.Bins)

	s, _ = sum.Summarize(ds, "when")
	assert.True(t, s.Datetime.NoData)
	assert.Empty(t, s.Datetime.Buckets)
	assert.Len(t, s.Datetime.Weekdays, 7)
}

func TestSummarize_Datetime(t *testing.T) {
	ds := mustDataset(t, dataset.NewColumn("when", dataset.TypeDatetime, []dataset.Value{
		dataset.NewTimestampValue(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)), // Monday
		dataset.NewTimestampValue(time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)), // Tuesday
		dataset.NewTimestampValue(time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)), // Monday
		dataset.NewMissingValue(),
	}))

	s, err := New(nil).Summarize(ds, "when")
	require.NoError(t, err)
	assert.Equal(t, summary.Datetime, s.Classification)

	d := s.Datetime
	require.NotNil(t, d)
	assert.Equal(t, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), d.Earliest)
	assert.Equal(t, time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC), d.Latest)
	assert.Equal(t, 3, d.UniqueCount)
	assert.Equal(t, 25.0, d.NullPercent)

	require.Len(t, d.Weekdays, 7)
	assert.Equal(t, "Monday", d.Weekdays[0].Name)
	assert.Equal(t, 2, d.Weekdays[0].Count)
	assert.Equal(t, "Tuesday", d.Weekdays[1].Name)
	assert.Equal(t, 1, d.Weekdays[1].Count)
	assert.Equal(t, "Sunday", d.Weekdays[6].Name)

	weekdayTotal := 0
	for _, w := range d.Weekdays {
		weekdayTotal += w.Count
	}
	assert.Equal(t, 3, weekdayTotal)

	assert.Equal(t, 7*24*time.Hour, d.BucketWidth)
	require.Len(t, d.Buckets, 2)
	assert.Equal(t, 2, d.Buckets[0].Count)
	assert.Equal(t, 1, d.Buckets[1].Count)
	assert.Equal(t, "2023-12-28", d.Buckets[0].Label)
}

func TestSummarize_UnclassifiedAndUnknownColumn(t *testing.T) {
	ds := mustDataset(t, dataset.NewColumn("lag", dataset.TypeDuration, []dataset.Value{
		dataset.NewDurationValue(time.Second),
	}))

	s, err := New(nil).Summarize(ds, "lag")
	require.NoError(t, err)
	assert.Equal(t, summary.Unclassified, s.Classification)
	assert.False(t, s.Renderable())
	assert.Nil(t, s.Categorical)
	assert.Nil(t, s.Numeric)
	assert.Nil(t, s.Datetime)

	_, err = New(nil).Summarize(ds, "missing")
	assert.ErrorIs(t, err, core.ErrColumnNotFound)
}

func TestBinCount(t *testing.T) {
	assert.Equal(t, 0, BinCount(0, 0))
	assert.Equal(t, 0, BinCount(5, 0))
	assert.Equal(t, 1, BinCount(1, 1))
	assert.Equal(t, 2, BinCount(2, 2))
	assert.Equal(t, 3, BinCount(1000, 3))
	assert.Equal(t, 11, BinCount(1000, 1000))
}

func TestBucketWidth(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Second, BucketWidth(start, start, 1))
	assert.Equal(t, time.Minute, BucketWidth(start, start.Add(3*time.Minute), 16))
	assert.Equal(t, 365*24*time.Hour, BucketWidth(start, start.AddDate(5, 0, 0), 64))

	year := 365 * 24 * time.Hour
	wide := BucketWidth(start, start.AddDate(30, 0, 0), 4)
	assert.Zero(t, wide%year)
	assert.Greater(t, wide, year)
	assert.LessOrEqual(t, bucketSpan(start, start.AddDate(30, 0, 0), wide), int64(3))

	early := time.Date(1500, 6, 1, 0, 0, 0, 0, time.UTC)
	wide = BucketWidth(early, start, 3)
	assert.LessOrEqual(t, bucketSpan(early, start, wide), int64(3))
}

func TestSummarize_DatetimeOutsideNanosecondRange(t *testing.T) {
	c := coercer.NewTypeCoercer(coercer.DefaultCoercionConfig())

	tests := []struct {
		name   string
		raw    []string
		unique int
	}{
		{"before 1678", []string{"1500-06-01", "1990-01-01", "2020-03-04"}, 3},
		{"after 2262", []string{"2020-01-01", "3020-01-01"}, 2},
		{"sentinel dates", []string{"1900-01-01", "9999-12-31", "9999-12-31", "2024-05-05"}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := c.InferColumn("founded", tt.raw)
			require.Equal(t, dataset.TypeDatetime, col.Type)
			ds := mustDataset(t, col)

			var s *summary.Summary
			require.NotPanics(t, func() {
				var err error
				s, err = New(nil).Summarize(ds, "founded")
				require.NoError(t, err)
			})

			d := s.Datetime
			require.NotNil(t, d)
			assert.Equal(t, tt.unique, d.UniqueCount)
			assert.NotEmpty(t, d.Buckets)
			assert.LessOrEqual(t, len(d.Buckets), 64)

			total := 0
			for _, b := range d.Buckets {
				total += b.Count
				assert.False(t, b.Start.After(d.Latest), "bucket %s starts after the latest value", b.Label)
			}
			assert.Equal(t, len(tt.raw), total)
			assert.False(t, d.Buckets[0].Start.After(d.Earliest))
		})
	}
}

func TestDescribe(t *testing.T) {
	min, max, mean, median, err := describe([]float64{4, 1, 3, 2, 10})
	require.NoError(t, err)
	assert.Equal(t, 1.0, min)
	assert.Equal(t, 10.0, max)
	assert.InDelta(t, 4.0, mean, 1e-9)
	assert.Equal(t, 3.0, median)

	_, _, _, _, err = describe(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, mstats.ErrEmptyInput)
}

func TestNullPercent(t *testing.T) {
	assert.Equal(t, 0.0, NullPercent(0, 0))
	assert.Equal(t, 16.7, NullPercent(1, 6))
	assert.Equal(t, 33.3, NullPercent(1, 3))
	assert.Equal(t, 100.0, NullPercent(7, 7))
}
