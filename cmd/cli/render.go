package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"dfsummary/app"
	"dfsummary/domain/dataset"

	"github.com/jedib0t/go-pretty/v6/table"
)

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer, header ...any) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	return t
}

func renderSchema(w io.Writer, schema dataset.Schema, format string) error {
	if format == "json" {
		return renderJSON(w, schema)
	}
	t := newTable(w, "column", "type", "nulls")
	for _, col := range schema.Columns {
		t.AppendRow(table.Row{col.Name, col.Type, col.NullCount})
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", schema.RowCount)
	return nil
}

func renderInstruction(w io.Writer, inst *app.RenderInstruction, format string) error {
	if format == "json" {
		return renderJSON(w, inst)
	}
	if inst == nil {
		_, _ = fmt.Fprintln(w, "(column type has no summary)")
		return nil
	}

	s := inst.Summary
	_, _ = fmt.Fprintf(w, "%s: %s\n", s.Title, inst.Title)

	t := newTable(w, "metric", "value")
	for _, m := range s.Metrics {
		t.AppendRow(table.Row{m.Label, formatValue(m.Value)})
	}
	t.Render()

	switch {
	case s.Categorical != nil:
		t := newTable(w, "category", "count", "%")
		for _, c := range s.Categorical.Categories {
			t.AppendRow(table.Row{c.Category, c.Count, formatValue(c.Percentage)})
		}
		t.Render()
	case s.Numeric != nil && !s.Numeric.NoData:
		t := newTable(w, "bin", "count", "%")
		for _, b := range s.Numeric.Bins {
			t.AppendRow(table.Row{b.Label, b.Count, formatValue(b.Percentage)})
		}
		t.Render()
	case s.Datetime != nil && !s.Datetime.NoData:
		t := newTable(w, "weekday", "count")
		for _, d := range s.Datetime.Weekdays {
			t.AppendRow(table.Row{d.Name, d.Count})
		}
		t.Render()
		t = newTable(w, "bucket", "count", "%")
		for _, b := range s.Datetime.Buckets {
			t.AppendRow(table.Row{b.Label, b.Count, formatValue(b.Percentage)})
		}
		t.Render()
	}
	return nil
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case float64:
		s := strconv.FormatFloat(x, 'f', 2, 64)
		return strings.TrimSuffix(strings.TrimRight(s, "0"), ".")
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 {
			return x.Format("2006-01-02")
		}
		return x.Format("2006-01-02 15:04:05")
	}
	return fmt.Sprintf("%v", v)
}
