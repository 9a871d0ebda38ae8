package summary

import "dfsummary/domain/dataset"

// Classification is the semantic type a column is summarized as
type Classification string

const (
	Categorical  Classification = "categorical"
	Boolean      Classification = "boolean"
	Numeric      Classification = "numeric"
	Datetime     Classification = "datetime"
	Unclassified Classification = "unclassified"
)

// Classify derives a column's classification from its declared type only.
// Boolean is checked before numeric since booleans are also number-like.
func Classify(col *dataset.Column) Classification {
	if col == nil {
		return Unclassified
	}
	return ClassifyType(col.Type)
}

// ClassifyType maps a declared column type to its classification
func ClassifyType(t dataset.ColumnType) Classification {
	switch {
	case t == dataset.TypeBool:
		return Boolean
	case t == dataset.TypeCategory || t == dataset.TypeObject:
		return Categorical
	case t == dataset.TypeInt || t == dataset.TypeFloat:
		return Numeric
	case t == dataset.TypeDatetime:
		return Datetime
	}
	return Unclassified
}

// Title returns the heading shown above a summary, e.g. "Numerical column summary"
func (c Classification) Title() string {
	switch c {
	case Boolean:
		return "Boolean column summary"
	case Categorical:
		return "Categorical column summary"
	case Numeric:
		return "Numerical column summary"
	case Datetime:
		return "Datetime column summary"
	}
	return ""
}

// Icon returns the material icon name shown next to the title
func (c Classification) Icon() string {
	switch c {
	case Boolean:
		return "toggle_on"
	case Categorical:
		return "category"
	case Numeric:
		return "123"
	case Datetime:
		return "calendar_month"
	}
	return ""
}
