package dataset

import (
	"math"
	"strconv"
	"time"
)

// ValueType defines the storage type for values
type ValueType string

const (
	ValueTypeString    ValueType = "string"
	ValueTypeNumeric   ValueType = "numeric"
	ValueTypeBoolean   ValueType = "boolean"
	ValueTypeTimestamp ValueType = "timestamp"
	ValueTypeDuration  ValueType = "duration"
	ValueTypeMissing   ValueType = "missing"
)

// Value represents one typed, nullable cell
type Value struct {
	Type         ValueType      `json:"type"`
	StringVal    *string        `json:"string_val,omitempty"`
	NumericVal   *float64       `json:"numeric_val,omitempty"`
	BooleanVal   *bool          `json:"boolean_val,omitempty"`
	TimestampVal *time.Time     `json:"timestamp_val,omitempty"`
	DurationVal  *time.Duration `json:"duration_val,omitempty"`
	IsMissing    bool           `json:"is_missing"`
}

// NewStringValue creates a string value. Empty strings are kept as values;
// loaders decide whether an empty cell means missing.
func NewStringValue(s string) Value {
	return Value{Type: ValueTypeString, StringVal: &s}
}

// NewNumericValue creates a numeric value
func NewNumericValue(n float64) Value {
	return Value{Type: ValueTypeNumeric, NumericVal: &n}
}

// NewBooleanValue creates a boolean value
func NewBooleanValue(b bool) Value {
	return Value{Type: ValueTypeBoolean, BooleanVal: &b}
}

// NewTimestampValue creates a timestamp value
func NewTimestampValue(t time.Time) Value {
	return Value{Type: ValueTypeTimestamp, TimestampVal: &t}
}

// NewDurationValue creates a duration value
func NewDurationValue(d time.Duration) Value {
	return Value{Type: ValueTypeDuration, DurationVal: &d}
}

// NewMissingValue creates a missing value
func NewMissingValue() Value {
	return Value{Type: ValueTypeMissing, IsMissing: true}
}

// Null reports whether the cell holds no value. NaN counts as null.
func (v Value) Null() bool {
	if v.IsMissing {
		return true
	}
	switch v.Type {
	case ValueTypeString:
		return v.StringVal == nil
	case ValueTypeNumeric:
		return v.NumericVal == nil || math.IsNaN(*v.NumericVal)
	case ValueTypeBoolean:
		return v.BooleanVal == nil
	case ValueTypeTimestamp:
		return v.TimestampVal == nil
	case ValueTypeDuration:
		return v.DurationVal == nil
	}
	return true
}

// String returns the display form of the value. Numbers use the shortest
// representation that round-trips.
func (v Value) String() string {
	if v.Null() {
		return "null"
	}
	switch v.Type {
	case ValueTypeString:
		return *v.StringVal
	case ValueTypeNumeric:
		return strconv.FormatFloat(*v.NumericVal, 'f', -1, 64)
	case ValueTypeBoolean:
		return strconv.FormatBool(*v.BooleanVal)
	case ValueTypeTimestamp:
		return v.TimestampVal.Format(time.RFC3339)
	case ValueTypeDuration:
		return v.DurationVal.String()
	}
	return "<invalid>"
}

// Float returns the numeric value and whether it is present
func (v Value) Float() (float64, bool) {
	if v.Null() || v.NumericVal == nil {
		return 0, false
	}
	return *v.NumericVal, true
}

// Time returns the timestamp value and whether it is present
func (v Value) Time() (time.Time, bool) {
	if v.IsMissing || v.TimestampVal == nil {
		return time.Time{}, false
	}
	return *v.TimestampVal, true
}

// Bool returns the boolean value and whether it is present
func (v Value) Bool() (bool, bool) {
	if v.IsMissing || v.BooleanVal == nil {
		return false, false
	}
	return *v.BooleanVal, true
}
