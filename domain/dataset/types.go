package dataset

import (
	"fmt"
	"strings"

	"dfsummary/domain/core"
)

// ColumnType is the declared type of a column, as a dataframe dtype would be
type ColumnType string

const (
	TypeBool     ColumnType = "bool"
	TypeCategory ColumnType = "category"
	TypeObject   ColumnType = "object"
	TypeInt      ColumnType = "int"
	TypeFloat    ColumnType = "float"
	TypeDatetime ColumnType = "datetime"
	TypeDuration ColumnType = "duration"
	TypeUnknown  ColumnType = "unknown"
)

// ParseColumnType maps a type name to a ColumnType. Unrecognised names map
// to TypeUnknown.
func ParseColumnType(s string) ColumnType {
	switch ColumnType(strings.ToLower(strings.TrimSpace(s))) {
	case TypeBool:
		return TypeBool
	case TypeCategory:
		return TypeCategory
	case TypeObject:
		return TypeObject
	case TypeInt:
		return TypeInt
	case TypeFloat:
		return TypeFloat
	case TypeDatetime:
		return TypeDatetime
	case TypeDuration:
		return TypeDuration
	}
	return TypeUnknown
}

// Column is a named, typed, nullable sequence of values
type Column struct {
	Name   string     `json:"name"`
	Type   ColumnType `json:"type"`
	Values []Value    `json:"values"`
}

// NewColumn creates a column
func NewColumn(name string, typ ColumnType, values []Value) *Column {
	return &Column{Name: name, Type: typ, Values: values}
}

// Len returns the number of rows in the column
func (c *Column) Len() int {
	return len(c.Values)
}

// NullMask returns one flag per row, true where the row is null
func (c *Column) NullMask() []bool {
	mask := make([]bool, len(c.Values))
	for i, v := range c.Values {
		mask[i] = v.Null()
	}
	return mask
}

// NullCount returns the number of null rows
func (c *Column) NullCount() int {
	n := 0
	for _, v := range c.Values {
		if v.Null() {
			n++
		}
	}
	return n
}

// Dataset is an in-memory, column-oriented table. It is not mutated after
// construction.
type Dataset struct {
	Name    string    `json:"name"`
	Columns []*Column `json:"columns"`

	index map[string]int
	rows  int
}

// New builds a dataset, rejecting empty or duplicate column names and
// columns of unequal length.
func New(name string, columns ...*Column) (*Dataset, error) {
	ds := &Dataset{
		Name:    name,
		Columns: columns,
		index:   make(map[string]int, len(columns)),
	}

	for i, col := range columns {
		if strings.TrimSpace(col.Name) == "" {
			return nil, fmt.Errorf("dataset %q column %d: %w", name, i, core.ErrEmptyColumnName)
		}
		if _, exists := ds.index[col.Name]; exists {
			return nil, fmt.Errorf("dataset %q column %q: %w", name, col.Name, core.ErrDuplicateColumn)
		}
		if i == 0 {
			ds.rows = col.Len()
		} else if col.Len() != ds.rows {
			return nil, fmt.Errorf("dataset %q column %q has %d rows, expected %d: %w",
				name, col.Name, col.Len(), ds.rows, core.ErrRaggedColumns)
		}
		ds.index[col.Name] = i
	}

	return ds, nil
}

// RowCount returns the number of rows
func (d *Dataset) RowCount() int {
	return d.rows
}

// ColumnNames returns the column names in order
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, col := range d.Columns {
		names[i] = col.Name
	}
	return names
}

// Column looks up a column by name
func (d *Dataset) Column(name string) (*Column, error) {
	i, ok := d.index[name]
	if !ok {
		return nil, core.NewColumnNotFoundError(d.Name, name)
	}
	return d.Columns[i], nil
}

// Schema describes the dataset without its values
type Schema struct {
	Name     string         `json:"name"`
	RowCount int            `json:"row_count"`
	Columns  []ColumnSchema `json:"columns"`
}

// ColumnSchema describes one column without its values
type ColumnSchema struct {
	Name      string     `json:"name"`
	Type      ColumnType `json:"type"`
	NullCount int        `json:"null_count"`
}

// Schema returns the dataset's schema
func (d *Dataset) Schema() Schema {
	schema := Schema{
		Name:     d.Name,
		RowCount: d.rows,
		Columns:  make([]ColumnSchema, len(d.Columns)),
	}
	for i, col := range d.Columns {
		schema.Columns[i] = ColumnSchema{
			Name:      col.Name,
			Type:      col.Type,
			NullCount: col.NullCount(),
		}
	}
	return schema
}

// Head returns up to n rows rendered as display strings, for table views
func (d *Dataset) Head(n int) [][]string {
	if n < 0 || n > d.rows {
		n = d.rows
	}
	rows := make([][]string, n)
	for r := 0; r < n; r++ {
		row := make([]string, len(d.Columns))
		for c, col := range d.Columns {
			row[c] = col.Values[r].String()
		}
		rows[r] = row
	}
	return rows
}
