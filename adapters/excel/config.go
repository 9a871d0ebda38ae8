package excel

import (
	"dfsummary/adapters/datareadiness/coercer"
)

// ReaderConfig holds configuration for file data sources
type ReaderConfig struct {
	SheetName string                 `json:"sheet_name"`
	Coercion  coercer.CoercionConfig `json:"coercion_config"`
}

// DefaultReaderConfig reads the first sheet with the default coercion rules
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{
		Coercion: coercer.DefaultCoercionConfig(),
	}
}
