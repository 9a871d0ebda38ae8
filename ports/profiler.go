package ports

import (
	"dfsummary/domain/dataset"
	"dfsummary/domain/render"
	"dfsummary/domain/summary"
)

// SummarizerPort computes the statistics payload for one column
type SummarizerPort interface {
	Summarize(ds *dataset.Dataset, column string) (*summary.Summary, error)
}

// ChartPort turns a summary into chart specs
type ChartPort interface {
	Build(s *summary.Summary) []render.Spec
}
