package summarizer

import (
	"math"
	"time"

	"dfsummary/domain/dataset"
	"dfsummary/domain/summary"
)

const day = 24 * time.Hour

// Candidate time bucket widths, narrowest first
var bucketWidths = []time.Duration{
	time.Second,
	time.Minute,
	time.Hour,
	day,
	7 * day,
	30 * day,
	365 * day,
}

// maxYearMultiple keeps a widened yearly bucket width inside time.Duration
const maxYearMultiple = int64(math.MaxInt64 / int64(365*day))

// instant identifies a timestamp independent of its location. UnixNano
// cannot be used: it is undefined outside the years 1678 to 2262.
type instant struct {
	sec  int64
	nsec int
}

var weekOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

func summarizeDatetime(col *dataset.Column, nullPercent float64) *summary.DatetimeSummary {
	out := &summary.DatetimeSummary{
		NullPercent: nullPercent,
		Buckets:     []summary.TimeBucket{},
	}

	var times []time.Time
	unique := make(map[instant]struct{})
	weekday := make(map[time.Weekday]int, 7)

	for _, v := range col.Values {
		t, ok := v.Time()
		if !ok {
			continue
		}
		times = append(times, t)
		unique[instant{t.Unix(), t.Nanosecond()}] = struct{}{}
		weekday[t.Weekday()]++

		if len(times) == 1 || t.Before(out.Earliest) {
			out.Earliest = t
		}
		if len(times) == 1 || t.After(out.Latest) {
			out.Latest = t
		}
	}

	out.UniqueCount = len(unique)
	out.Weekdays = make([]summary.WeekdayCount, len(weekOrder))
	for i, d := range weekOrder {
		out.Weekdays[i] = summary.WeekdayCount{Day: d, Name: d.String(), Count: weekday[d]}
	}

	if len(times) == 0 {
		out.NoData = true
		return out
	}

	out.BucketWidth = BucketWidth(out.Earliest, out.Latest, len(times))
	out.Buckets = timeBuckets(times, out.Earliest, out.Latest, out.BucketWidth)
	return out
}

// BucketWidth picks the narrowest candidate width that covers [earliest,
// latest] in at most ceil(log2(n)+1) epoch-aligned buckets. Spans too long
// even for yearly buckets get a whole multiple of 365 days, capped so the
// width still fits a time.Duration.
func BucketWidth(earliest, latest time.Time, n int) time.Duration {
	target := 1
	if n > 0 {
		target = int(math.Ceil(math.Log2(float64(n)) + 1))
	}
	for _, w := range bucketWidths {
		if bucketSpan(earliest, latest, w) <= int64(target) {
			return w
		}
	}

	year := bucketWidths[len(bucketWidths)-1]
	k := (bucketSpan(earliest, latest, year) + int64(target) - 1) / int64(target)
	for k < maxYearMultiple && bucketSpan(earliest, latest, time.Duration(k)*year) > int64(target) {
		k++
	}
	if k > maxYearMultiple {
		k = maxYearMultiple
	}
	return time.Duration(k) * year
}

func bucketSpan(earliest, latest time.Time, w time.Duration) int64 {
	return bucketIndex(latest, w) - bucketIndex(earliest, w) + 1
}

// bucketIndex returns floor(t / w) counted from the Unix epoch. Widths are
// whole seconds, so second resolution is exact.
func bucketIndex(t time.Time, w time.Duration) int64 {
	sec := t.Unix()
	ws := int64(w / time.Second)
	q := sec / ws
	if sec%ws < 0 {
		q--
	}
	return q
}

func bucketLayout(w time.Duration) string {
	switch {
	case w < time.Minute:
		return "2006-01-02 15:04:05"
	case w < time.Hour:
		return "2006-01-02 15:04"
	case w < day:
		return "2006-01-02 15:00"
	}
	return "2006-01-02"
}

func timeBuckets(times []time.Time, earliest, latest time.Time, w time.Duration) []summary.TimeBucket {
	first := bucketIndex(earliest, w)
	n := int(bucketSpan(earliest, latest, w))

	counts := make([]int, n)
	for _, t := range times {
		counts[bucketIndex(t, w)-first]++
	}

	layout := bucketLayout(w)
	buckets := make([]summary.TimeBucket, n)
	for i := range buckets {
		start := time.Unix((first+int64(i))*int64(w/time.Second), 0).UTC()
		buckets[i] = summary.TimeBucket{
			Start:      start,
			End:        start.Add(w),
			Label:      start.Format(layout),
			Count:      counts[i],
			Percentage: 100 * float64(counts[i]) / float64(len(times)),
		}
	}
	return buckets
}
