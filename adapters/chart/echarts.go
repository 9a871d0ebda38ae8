package chart

import (
	"encoding/json"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"dfsummary/domain/render"
	"dfsummary/domain/summary"
)

// Builder turns summaries into chart specs
type Builder struct {
	style *StyleConfig
}

// NewBuilder creates a builder. A nil style uses DefaultStyleConfig.
func NewBuilder(style *StyleConfig) *Builder {
	if style == nil {
		style = DefaultStyleConfig()
	}
	return &Builder{style: style}
}

// Build returns the chart specs for a summary, or nil for summaries that
// have nothing to chart.
func (b *Builder) Build(s *summary.Summary) []render.Spec {
	if !s.Renderable() {
		return nil
	}

	switch {
	case s.Categorical != nil:
		return []render.Spec{b.categoryBar(s.Categorical)}
	case s.Numeric != nil:
		if s.Numeric.NoData {
			return nil
		}
		return []render.Spec{b.boxPlot(s.Column, s.Numeric), b.histogram(s.Numeric)}
	case s.Datetime != nil:
		specs := []render.Spec{b.weekdayTable(s.Datetime)}
		if !s.Datetime.NoData {
			specs = append(specs, b.timeHistogram(s.Datetime))
		}
		return specs
	}
	return nil
}

// JSON marshals a spec's ECharts option
func (b *Builder) JSON(spec render.Spec) (string, error) {
	data, err := json.Marshal(spec.Option)
	if err != nil {
		return "", fmt.Errorf("failed to marshal ECharts option: %w", err)
	}
	return string(data), nil
}

// CategoryLabel is the text drawn inside a frequency bar
func CategoryLabel(c summary.CategoryCount) string {
	return fmt.Sprintf("<b>%s</b>  ·  %d <br>(%.1f%%)", c.Category, c.Count, c.Percentage)
}

// BinHover is the hover text of a histogram bar
func BinHover(label string, count int, pct float64) string {
	return fmt.Sprintf("%s <br>Num. values = %d (%.1f%%)", label, count, pct)
}

func (b *Builder) categoryBar(c *summary.CategoricalSummary) render.Spec {
	labels := make([]string, len(c.Categories))
	data := make([]interface{}, len(c.Categories))
	for i, cat := range c.Categories {
		labels[i] = cat.Category
		data[i] = map[string]interface{}{
			"value": cat.Count,
			"itemStyle": map[string]interface{}{
				"color": b.style.Palette[i%len(b.style.Palette)],
			},
			"label": map[string]interface{}{
				"show":      true,
				"position":  "inside",
				"formatter": CategoryLabel(cat),
			},
		}
	}

	return render.Spec{
		Kind:   render.KindBar,
		Height: b.style.CategoryHeight,
		Slot:   render.SlotRight,
		Option: map[string]interface{}{
			"grid":      b.gridConfig(),
			"textStyle": b.textStyle(),
			"legend":    map[string]interface{}{"show": false},
			"xAxis": map[string]interface{}{
				"type":      "category",
				"data":      labels,
				"splitLine": map[string]interface{}{"show": false},
			},
			"yAxis": map[string]interface{}{
				"type":      "value",
				"axisLabel": map[string]interface{}{"show": false},
				"splitLine": map[string]interface{}{"show": false},
			},
			"series": []interface{}{
				map[string]interface{}{"type": "bar", "data": data},
			},
		},
	}
}

func (b *Builder) histogram(n *summary.NumericSummary) render.Spec {
	// the hidden category names carry the hover text so {b} can show it
	hovers := make([]string, len(n.Bins))
	counts := make([]int, len(n.Bins))
	for i, bin := range n.Bins {
		hovers[i] = BinHover(bin.Label, bin.Count, bin.Percentage)
		counts[i] = bin.Count
	}

	return render.Spec{
		Kind:   render.KindHistogram,
		Height: b.style.DetailHeight,
		Slot:   render.SlotRight,
		Option: map[string]interface{}{
			"grid":      b.gridConfig(),
			"textStyle": b.textStyle(),
			"tooltip": map[string]interface{}{
				"trigger":   "item",
				"formatter": "{b}",
				"textStyle": map[string]interface{}{"fontSize": 14},
			},
			"xAxis": map[string]interface{}{
				"type":      "category",
				"data":      hovers,
				"axisLabel": map[string]interface{}{"show": false},
			},
			"yAxis": map[string]interface{}{
				"type":      "value",
				"splitLine": map[string]interface{}{"show": true},
			},
			"series": []interface{}{
				map[string]interface{}{
					"type": "bar",
					"data": counts,
					"label": map[string]interface{}{
						"show":     true,
						"position": "inside",
						"fontSize": b.style.FontSizeLabel,
					},
				},
			},
		},
	}
}

func (b *Builder) boxPlot(column string, n *summary.NumericSummary) render.Spec {
	box := ComputeBoxStats(n.Values)

	outliers := make([]interface{}, len(box.Outliers))
	for i, o := range box.Outliers {
		outliers[i] = []interface{}{0, o}
	}

	return render.Spec{
		Kind:   render.KindBoxPlot,
		Height: b.style.DetailHeight,
		Slot:   render.SlotLeft,
		Option: map[string]interface{}{
			"grid":      b.gridConfig(),
			"textStyle": b.textStyle(),
			"tooltip":   map[string]interface{}{"trigger": "item"},
			"xAxis": map[string]interface{}{
				"type":      "category",
				"data":      []string{column},
				"splitLine": map[string]interface{}{"show": false},
			},
			"yAxis": map[string]interface{}{
				"type":      "value",
				"splitLine": map[string]interface{}{"show": false},
			},
			"series": []interface{}{
				map[string]interface{}{
					"type": "boxplot",
					"data": [][]float64{{box.LowerWhisker, box.Q1, box.Median, box.Q3, box.UpperWhisker}},
					"itemStyle": map[string]interface{}{
						"borderColor": b.style.ColorPrimary,
					},
				},
				map[string]interface{}{
					"type": "scatter",
					"data": outliers,
				},
			},
		},
	}
}

func (b *Builder) weekdayTable(d *summary.DatetimeSummary) render.Spec {
	rows := make([][]string, len(d.Weekdays))
	for i, w := range d.Weekdays {
		rows[i] = []string{w.Name, fmt.Sprintf("%d", w.Count)}
	}
	return render.Spec{
		Kind:   render.KindTable,
		Height: b.style.DetailHeight,
		Slot:   render.SlotLeft,
		Table: &render.Table{
			Columns: []string{"Day of week", "Count"},
			Rows:    rows,
		},
	}
}

func (b *Builder) timeHistogram(d *summary.DatetimeSummary) render.Spec {
	labels := make([]string, len(d.Buckets))
	counts := make([]int, len(d.Buckets))
	for i, bucket := range d.Buckets {
		labels[i] = bucket.Label
		counts[i] = bucket.Count
	}

	return render.Spec{
		Kind:   render.KindTimeHistogram,
		Height: b.style.DetailHeight,
		Slot:   render.SlotRight,
		Option: map[string]interface{}{
			"grid":      b.gridConfig(),
			"textStyle": b.textStyle(),
			"tooltip": map[string]interface{}{
				"trigger":   "item",
				"formatter": "{b}: {c}",
			},
			"xAxis": map[string]interface{}{
				"type":      "category",
				"data":      labels,
				"splitLine": map[string]interface{}{"show": false},
			},
			"yAxis": map[string]interface{}{
				"type":      "value",
				"axisLabel": map[string]interface{}{"show": false},
				"splitLine": map[string]interface{}{"show": false},
			},
			"series": []interface{}{
				map[string]interface{}{
					"type":           "bar",
					"data":           counts,
					"barCategoryGap": "50%",
				},
			},
		},
	}
}

func (b *Builder) textStyle() map[string]interface{} {
	return map[string]interface{}{
		"color":      b.style.ColorText,
		"fontFamily": b.style.FontFamily,
	}
}

func (b *Builder) gridConfig() map[string]interface{} {
	return map[string]interface{}{
		"left":         0,
		"right":        0,
		"top":          0,
		"bottom":       0,
		"containLabel": true,
	}
}

// ComputeBoxStats returns empirical quartiles and 1.5×IQR whiskers. Whiskers
// end at the most extreme values inside the fences; anything beyond is an
// outlier.
func ComputeBoxStats(values []float64) BoxStats {
	if len(values) == 0 {
		return BoxStats{Outliers: []float64{}}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	box := BoxStats{
		Q1:       stat.Quantile(0.25, stat.Empirical, sorted, nil),
		Median:   stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Q3:       stat.Quantile(0.75, stat.Empirical, sorted, nil),
		Outliers: []float64{},
	}

	iqr := box.Q3 - box.Q1
	lowFence := box.Q1 - 1.5*iqr
	highFence := box.Q3 + 1.5*iqr

	box.LowerWhisker = box.Q1
	box.UpperWhisker = box.Q3
	for _, v := range sorted {
		if v < lowFence || v > highFence {
			box.Outliers = append(box.Outliers, v)
			continue
		}
		if v < box.LowerWhisker {
			box.LowerWhisker = v
		}
		if v > box.UpperWhisker {
			box.UpperWhisker = v
		}
	}
	return box
}
