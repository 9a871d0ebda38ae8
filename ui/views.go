package ui

import (
	"fmt"
	"html/template"
	"math"
	"net/url"
	"strings"
	"time"

	"dfsummary/adapters/chart"
	"dfsummary/app"
	"dfsummary/domain/dataset"
	"dfsummary/domain/render"
)

// indexPage is the data behind index.html
type indexPage struct {
	Datasets []string
	Dataset  string
	Modes    []app.DisplayMode
	Mode     app.DisplayMode
	Intro    template.HTML
	Snippet  string
	Error    string

	Columns     []columnView
	Rows        [][]string
	TotalRows   int
	TableHeight int
	Selected    string
	Table       *app.TableInstruction
	Summary     *summaryView
}

// columnView is one table header with the links that select it
type columnView struct {
	Name       string
	Type       dataset.ColumnType
	NullCount  int
	Selected   bool
	PageURL    string
	SummaryURL string
}

func newColumnViews(schema dataset.Schema, v viewRequest) []columnView {
	out := make([]columnView, len(schema.Columns))
	for i, c := range schema.Columns {
		q := url.Values{}
		q.Set("dataset", schema.Name)
		q.Set("column", c.Name)
		q.Set("mode", string(v.Mode))
		out[i] = columnView{
			Name:       c.Name,
			Type:       c.Type,
			NullCount:  c.NullCount,
			Selected:   c.Name == v.Column,
			PageURL:    "/?" + q.Encode(),
			SummaryURL: "/fragments/summary?" + q.Encode(),
		}
	}
	return out
}

// summaryView is a render instruction flattened for the templates
type summaryView struct {
	Dataset  string
	Mode     app.DisplayMode
	Region   app.Region
	Title    string
	Heading  string
	Icon     string
	Height   int
	Bordered bool
	DialogID string
	Replaces string
	Metrics  []metricView
	Left     []chartView
	Right    []chartView
}

type metricView struct {
	Label string
	Value string
}

type chartView struct {
	ID     string
	Kind   render.Kind
	Title  string
	Height int
	Option string
	Table  *render.Table
}

func newSummaryView(dsName string, inst *app.RenderInstruction, builder *chart.Builder) (*summaryView, error) {
	if inst == nil {
		return nil, nil
	}
	v := &summaryView{
		Dataset:  dsName,
		Mode:     inst.Mode,
		Region:   inst.Region,
		Title:    inst.Title,
		Heading:  inst.Summary.Title,
		Icon:     inst.Summary.Icon,
		Height:   inst.Height,
		Bordered: inst.Bordered,
		DialogID: inst.DialogID.String(),
		Replaces: inst.Replaces.String(),
	}
	for _, m := range inst.Summary.Metrics {
		v.Metrics = append(v.Metrics, metricView{Label: m.Label, Value: formatMetric(m.Value)})
	}
	for i, spec := range inst.Charts {
		cv := chartView{
			ID:     fmt.Sprintf("chart-%s-%d", inst.ID, i),
			Kind:   spec.Kind,
			Title:  spec.Title,
			Height: spec.Height,
			Table:  spec.Table,
		}
		if spec.Option != nil {
			opt, err := builder.JSON(spec)
			if err != nil {
				return nil, err
			}
			cv.Option = opt
		}
		if spec.Slot == render.SlotLeft {
			v.Left = append(v.Left, cv)
		} else {
			v.Right = append(v.Right, cv)
		}
	}
	return v, nil
}

// formatMetric renders a metric value for display. Undefined values show
// as a dash.
func formatMetric(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case float64:
		if math.IsNaN(x) {
			return "-"
		}
		if x == math.Trunc(x) && math.Abs(x) < 1e15 {
			return fmt.Sprintf("%.0f", x)
		}
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", x), "0"), ".")
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 {
			return x.Format("2006-01-02")
		}
		return x.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(x)
	}
}
