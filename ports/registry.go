package ports

import (
	"context"

	"dfsummary/domain/dataset"
)

// DatasetSource loads one named dataset
type DatasetSource interface {
	Name() string
	Load(ctx context.Context) (*dataset.Dataset, error)
}

// DatasetRegistryPort resolves dataset names to loaded datasets
type DatasetRegistryPort interface {
	Names() []string
	Get(ctx context.Context, name string) (*dataset.Dataset, error)
}
