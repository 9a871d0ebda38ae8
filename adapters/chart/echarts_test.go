package chart

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"dfsummary/domain/render"
	"dfsummary/domain/summary"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBoxStats(t *testing.T) {
	box := ComputeBoxStats([]float64{100, 5, 4, 3, 2, 1})
	assert.Equal(t, 2.0, box.Q1)
	assert.Equal(t, 3.0, box.Median)
	assert.Equal(t, 5.0, box.Q3)
	assert.Equal(t, 1.0, box.LowerWhisker)
	assert.Equal(t, 5.0, box.UpperWhisker)
	assert.Equal(t, []float64{100}, box.Outliers)

	empty := ComputeBoxStats(nil)
	assert.Empty(t, empty.Outliers)
}

func TestBuild_Categorical(t *testing.T) {
	s := &summary.Summary{
		Column:         "grade",
		Classification: summary.Categorical,
		Categorical: &summary.CategoricalSummary{
			Categories: []summary.CategoryCount{
				{Category: "A", Count: 2, Percentage: 50},
				{Category: "null", IsNull: true, Count: 2, Percentage: 50},
			},
		},
	}

	specs := NewBuilder(nil).Build(s)
	require.Len(t, specs, 1)
	assert.Equal(t, render.KindBar, specs[0].Kind)
	assert.Equal(t, 300, specs[0].Height)
	assert.Equal(t, render.SlotRight, specs[0].Slot)

	xAxis := specs[0].Option["xAxis"].(map[string]interface{})
	assert.Equal(t, []string{"A", "null"}, xAxis["data"])
	assert.Equal(t, "<b>A</b>  ·  2 <br>(50.0%)", CategoryLabel(s.Categorical.Categories[0]))
}

func TestBuild_Numeric(t *testing.T) {
	s := &summary.Summary{
		Column:         "score",
		Classification: summary.Numeric,
		Numeric: &summary.NumericSummary{
			Values: []float64{1, 2, 3},
			Bins: []summary.Bin{
				{Label: "From 1.0 to 2.00", Count: 2, Percentage: 66.6667},
				{Label: "From 2.0 to 3.00", Count: 1, Percentage: 33.3333},
			},
		},
	}

	b := NewBuilder(nil)
	specs := b.Build(s)
	require.Len(t, specs, 2)
	assert.Equal(t, render.KindBoxPlot, specs[0].Kind)
	assert.Equal(t, render.SlotLeft, specs[0].Slot)
	assert.Equal(t, render.KindHistogram, specs[1].Kind)
	assert.Equal(t, 200, specs[1].Height)

	out, err := b.JSON(specs[1])
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)))
	assert.Contains(t, out, "Num. values = 2 (66.7%)")

	// item tooltips show the hover text held in the category names
	tooltip := specs[1].Option["tooltip"].(map[string]interface{})
	assert.Equal(t, "item", tooltip["trigger"])
	assert.Equal(t, "{b}", tooltip["formatter"])
	xAxis := specs[1].Option["xAxis"].(map[string]interface{})
	assert.Equal(t, []string{
		BinHover("From 1.0 to 2.00", 2, 66.6667),
		BinHover("From 2.0 to 3.00", 1, 33.3333),
	}, xAxis["data"])
	series := specs[1].Option["series"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, []int{2, 1}, series["data"])

	s.Numeric.NoData = true
	assert.Nil(t, b.Build(s))
}

func TestBuild_Datetime(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := &summary.Summary{
		Column:         "when",
		Classification: summary.Datetime,
		Datetime: &summary.DatetimeSummary{
			Weekdays: []summary.WeekdayCount{{Name: "Monday", Count: 3}},
			Buckets:  []summary.TimeBucket{{Start: start, Label: "2024-01-01", Count: 3}},
		},
	}

	specs := NewBuilder(nil).Build(s)
	require.Len(t, specs, 2)
	assert.Equal(t, render.KindTable, specs[0].Kind)
	require.NotNil(t, specs[0].Table)
	assert.Equal(t, [][]string{{"Monday", "3"}}, specs[0].Table.Rows)
	assert.Equal(t, render.KindTimeHistogram, specs[1].Kind)
	tooltip := specs[1].Option["tooltip"].(map[string]interface{})
	assert.Equal(t, "item", tooltip["trigger"])
	assert.Equal(t, "{b}: {c}", tooltip["formatter"])

	s.Datetime.NoData = true
	specs = NewBuilder(nil).Build(s)
	require.Len(t, specs, 1, "weekday table is still shown without data")
}

func TestBuild_Unclassified(t *testing.T) {
	assert.Nil(t, NewBuilder(nil).Build(&summary.Summary{Classification: summary.Unclassified}))
	assert.Nil(t, NewBuilder(nil).Build(nil))
}

func TestBuild_TextStyle(t *testing.T) {
	style := DefaultStyleConfig()
	style.ColorText = "#112233"
	style.FontFamily = "IBM Plex Sans"
	s := &summary.Summary{
		Column:         "grade",
		Classification: summary.Categorical,
		Categorical: &summary.CategoricalSummary{
			Categories: []summary.CategoryCount{{Category: "A", Count: 1, Percentage: 100}},
		},
	}

	specs := NewBuilder(style).Build(s)
	require.Len(t, specs, 1)
	text := specs[0].Option["textStyle"].(map[string]interface{})
	assert.Equal(t, "#112233", text["color"])
	assert.Equal(t, "IBM Plex Sans", text["fontFamily"])
}

func TestBinHover(t *testing.T) {
	got := BinHover("From 0.0 to 1.00", 4, 12.345)
	assert.True(t, strings.HasPrefix(got, "From 0.0 to 1.00 <br>"))
	assert.True(t, strings.HasSuffix(got, "(12.3%)"))
}
