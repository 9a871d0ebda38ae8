package coercer

import (
	"math"
	"strconv"
	"strings"
	"time"

	"dfsummary/domain/dataset"
)

// TypeCoercer infers column types from raw cell text and converts cells
// into typed values
type TypeCoercer struct {
	config CoercionConfig
}

// CoercionConfig defines the coercion thresholds and rules
type CoercionConfig struct {
	NumericThreshold   float64 `json:"numeric_threshold"`   // share of non-empty cells that must parse as numbers
	BooleanThreshold   float64 `json:"boolean_threshold"`   // share that must parse as booleans
	TimestampThreshold float64 `json:"timestamp_threshold"` // share that must parse as timestamps
	MaxCategories      int     `json:"max_categories"`      // distinct strings allowed for a category dtype
	CategoryRatio      float64 `json:"category_ratio"`      // distinct/valid ratio below which strings are a category
}

// DefaultCoercionConfig returns the defaults used by the file loaders
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		NumericThreshold:   0.9,
		BooleanThreshold:   0.9,
		TimestampThreshold: 0.9,
		MaxCategories:      20,
		CategoryRatio:      0.1,
	}
}

// WithThreshold returns a copy of the config with all three type thresholds
// set to t
func (c CoercionConfig) WithThreshold(t float64) CoercionConfig {
	c.NumericThreshold = t
	c.BooleanThreshold = t
	c.TimestampThreshold = t
	return c
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	return &TypeCoercer{config: config}
}

// Cell text read as missing, compared case-insensitively
var missingTokens = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
	"none": true,
}

// IsMissing reports whether raw cell text stands for a missing value
func IsMissing(raw string) bool {
	return missingTokens[strings.ToLower(strings.TrimSpace(raw))]
}

// TypeAnalysis contains the results of type distribution analysis
type TypeAnalysis struct {
	TotalCount      int                `json:"total_count"`
	ValidCount      int                `json:"valid_count"`
	NumericCount    int                `json:"numeric_count"`
	IntegerCount    int                `json:"integer_count"`
	BooleanCount    int                `json:"boolean_count"`
	TimestampCount  int                `json:"timestamp_count"`
	DistinctCount   int                `json:"distinct_count"`
	NumericRatio    float64            `json:"numeric_ratio"`
	BooleanRatio    float64            `json:"boolean_ratio"`
	TimestampRatio  float64            `json:"timestamp_ratio"`
	RecommendedType dataset.ColumnType `json:"recommended_type"`
}

// AnalyzeTypeDistribution counts how many non-missing cells parse as each
// type and picks a column type
func (c *TypeCoercer) AnalyzeTypeDistribution(values []string) TypeAnalysis {
	analysis := TypeAnalysis{TotalCount: len(values)}
	distinct := make(map[string]struct{})

	for _, raw := range values {
		if IsMissing(raw) {
			continue
		}
		analysis.ValidCount++
		distinct[strings.TrimSpace(raw)] = struct{}{}

		if f, ok := parseNumeric(raw); ok {
			analysis.NumericCount++
			if f == math.Trunc(f) {
				analysis.IntegerCount++
			}
		}
		if _, ok := parseBoolean(raw); ok {
			analysis.BooleanCount++
		}
		if _, ok := parseTimestamp(raw); ok {
			analysis.TimestampCount++
		}
	}
	analysis.DistinctCount = len(distinct)

	if analysis.ValidCount > 0 {
		valid := float64(analysis.ValidCount)
		analysis.NumericRatio = float64(analysis.NumericCount) / valid
		analysis.BooleanRatio = float64(analysis.BooleanCount) / valid
		analysis.TimestampRatio = float64(analysis.TimestampCount) / valid
	}
	analysis.RecommendedType = c.determineRecommendedType(analysis)
	return analysis
}

// determineRecommendedType checks thresholds from most to least restrictive
func (c *TypeCoercer) determineRecommendedType(a TypeAnalysis) dataset.ColumnType {
	if a.ValidCount == 0 {
		return dataset.TypeObject
	}
	if a.NumericRatio >= c.config.NumericThreshold {
		if a.IntegerCount == a.NumericCount {
			return dataset.TypeInt
		}
		return dataset.TypeFloat
	}
	if a.BooleanRatio >= c.config.BooleanThreshold {
		return dataset.TypeBool
	}
	if a.TimestampRatio >= c.config.TimestampThreshold {
		return dataset.TypeDatetime
	}
	ratio := float64(a.DistinctCount) / float64(a.ValidCount)
	if a.DistinctCount <= c.config.MaxCategories && ratio < c.config.CategoryRatio {
		return dataset.TypeCategory
	}
	return dataset.TypeObject
}

// CoerceValue converts one cell to the given column type. Cells that do not
// parse as that type become missing.
func (c *TypeCoercer) CoerceValue(raw string, t dataset.ColumnType) dataset.Value {
	if IsMissing(raw) {
		return dataset.NewMissingValue()
	}
	switch t {
	case dataset.TypeInt, dataset.TypeFloat:
		if f, ok := parseNumeric(raw); ok {
			return dataset.NewNumericValue(f)
		}
	case dataset.TypeBool:
		if b, ok := parseBoolean(raw); ok {
			return dataset.NewBooleanValue(b)
		}
	case dataset.TypeDatetime:
		if ts, ok := parseTimestamp(raw); ok {
			return dataset.NewTimestampValue(ts)
		}
	default:
		return dataset.NewStringValue(strings.TrimSpace(raw))
	}
	return dataset.NewMissingValue()
}

// InferColumn types a column of raw cells and converts every cell
func (c *TypeCoercer) InferColumn(name string, raw []string) *dataset.Column {
	t := c.AnalyzeTypeDistribution(raw).RecommendedType
	values := make([]dataset.Value, len(raw))
	for i, cell := range raw {
		values[i] = c.CoerceValue(cell, t)
	}
	return dataset.NewColumn(name, t, values)
}

// parseNumeric accepts plain and scientific notation, thousands commas,
// parentheses for negatives, and a leading currency symbol
func parseNumeric(strVal string) (float64, bool) {
	cleanVal := strings.TrimSpace(strVal)
	if cleanVal == "" {
		return 0, false
	}

	isNegative := false
	if strings.HasPrefix(cleanVal, "(") && strings.HasSuffix(cleanVal, ")") {
		cleanVal = strings.TrimSuffix(strings.TrimPrefix(cleanVal, "("), ")")
		isNegative = true
	}
	for _, symbol := range []string{"$", "€", "£", "¥"} {
		cleanVal = strings.TrimPrefix(cleanVal, symbol)
	}
	if strings.Contains(cleanVal, ",") {
		if !thousandsGrouped(cleanVal) {
			return 0, false
		}
		cleanVal = strings.ReplaceAll(cleanVal, ",", "")
	}
	if isNegative {
		cleanVal = "-" + cleanVal
	}

	val, err := strconv.ParseFloat(cleanVal, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}

// thousandsGrouped reports whether every comma in s separates groups of
// three digits, as in 1,234,567.8
func thousandsGrouped(s string) bool {
	intPart := s
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart = s[:i]
	}
	intPart = strings.TrimPrefix(intPart, "-")
	groups := strings.Split(intPart, ",")
	if len(groups[0]) == 0 || len(groups[0]) > 3 {
		return false
	}
	for _, g := range groups[1:] {
		if len(g) != 3 {
			return false
		}
	}
	return true
}

func parseBoolean(strVal string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(strVal)) {
	case "true", "yes", "y":
		return true, true
	case "false", "no", "n":
		return false, true
	}
	return false, false
}

// Timestamp layouts tried in order. Values without a zone are read as UTC.
var timestampFormats = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
	"02-Jan-2006",
}

func parseTimestamp(strVal string) (time.Time, bool) {
	s := strings.TrimSpace(strVal)
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
