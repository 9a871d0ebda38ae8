package render

// Kind identifies what a chart spec draws
type Kind string

const (
	KindBar           Kind = "bar"
	KindHistogram     Kind = "histogram"
	KindBoxPlot       Kind = "boxplot"
	KindTimeHistogram Kind = "time_histogram"
	KindTable         Kind = "table"
)

// Slot says which part of a summary layout a spec belongs in. Layouts split
// into a narrow left and a wide right column below the metrics table.
type Slot string

const (
	SlotLeft  Slot = "left"
	SlotRight Slot = "right"
)

// Spec is a renderer-neutral chart description. Option holds an ECharts
// option object; Table is set instead for KindTable.
type Spec struct {
	Kind   Kind                   `json:"kind"`
	Title  string                 `json:"title,omitempty"`
	Height int                    `json:"height"`
	Slot   Slot                   `json:"slot"`
	Option map[string]interface{} `json:"option,omitempty"`
	Table  *Table                 `json:"table,omitempty"`
}

// Table is a small tabular display, e.g. the day-of-week counts
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

