package summary

import "time"

// Metric labels shared by the summarizer and the renderers
const (
	MetricUniqueValues = "Unique values"
	MetricTotalValues  = "Total values"
	MetricNullPercent  = "Null values (%)"
	MetricMax          = "Max"
	MetricMean         = "Mean"
	MetricMedian       = "Median"
	MetricMin          = "Min"
	MetricEarliest     = "Earliest date"
	MetricLatest       = "Latest date"
)

// Summary is the statistics payload for one column. Exactly one of
// Categorical, Numeric and Datetime is set, unless the column is
// Unclassified, in which case none is.
type Summary struct {
	Dataset        string         `json:"dataset"`
	Column         string         `json:"column"`
	Label          string         `json:"label"`
	Classification Classification `json:"classification"`
	Title          string         `json:"title"`
	Icon           string         `json:"icon,omitempty"`

	TotalCount  int     `json:"total_count"`
	NullCount   int     `json:"null_count"`
	NullPercent float64 `json:"null_percent"`

	// Empty is set when the dataset has no rows
	Empty bool `json:"empty"`

	Metrics []Metric `json:"metrics"`

	Categorical *CategoricalSummary `json:"categorical,omitempty"`
	Numeric     *NumericSummary     `json:"numeric,omitempty"`
	Datetime    *DatetimeSummary    `json:"datetime,omitempty"`
}

// Renderable reports whether the summary has anything to display
func (s *Summary) Renderable() bool {
	return s != nil && s.Classification != Unclassified
}

// Metric is one label -> scalar pair of the metrics table. Value holds an
// int, float64, time.Time or nil when undefined.
type Metric struct {
	Label string `json:"label"`
	Value any    `json:"value"`
}

// CategoryCount is one bar of a frequency chart
type CategoryCount struct {
	Category   string  `json:"category"`
	IsNull     bool    `json:"is_null"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// CategoricalSummary is the payload for categorical and boolean columns
type CategoricalSummary struct {
	Categories  []CategoryCount `json:"categories"`
	UniqueCount int             `json:"unique_count"`
	TotalCount  int             `json:"total_count"`
	NullPercent float64         `json:"null_percent"`
}

// Bin is one bucket of a numeric histogram, covering (Left, Right]
type Bin struct {
	Left       float64 `json:"left"`
	Right      float64 `json:"right"`
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// NumericSummary is the payload for numeric columns. When NoData is set the
// column has no non-null value and Min, Max, Mean and Median are zero and
// must not be displayed.
type NumericSummary struct {
	UniqueCount int       `json:"unique_count"`
	NullPercent float64   `json:"null_percent"`
	NoData      bool      `json:"no_data"`
	Max         float64   `json:"max"`
	Mean        float64   `json:"mean"`
	Median      float64   `json:"median"`
	Min         float64   `json:"min"`
	Bins        []Bin     `json:"bins"`
	Values      []float64 `json:"values"`
}

// WeekdayCount is one row of the day-of-week table
type WeekdayCount struct {
	Day   time.Weekday `json:"-"`
	Name  string       `json:"day"`
	Count int          `json:"count"`
}

// TimeBucket is one bucket of a datetime histogram, covering [Start, End)
type TimeBucket struct {
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Label      string    `json:"label"`
	Count      int       `json:"count"`
	Percentage float64   `json:"percentage"`
}

// DatetimeSummary is the payload for datetime columns. Earliest and Latest
// are zero when NoData is set.
type DatetimeSummary struct {
	Earliest    time.Time      `json:"earliest"`
	Latest      time.Time      `json:"latest"`
	UniqueCount int            `json:"unique_count"`
	NullPercent float64        `json:"null_percent"`
	NoData      bool           `json:"no_data"`
	Weekdays    []WeekdayCount `json:"weekdays"`
	BucketWidth time.Duration  `json:"bucket_width"`
	Buckets     []TimeBucket   `json:"buckets"`
}
