package sqlsource

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"dfsummary/adapters/datareadiness/coercer"
	"dfsummary/domain/core"
	"dfsummary/domain/dataset"
	"dfsummary/internal"
	"dfsummary/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DriverFor picks the database/sql driver for a connection URL and returns
// the DSN to hand it
func DriverFor(url string) (driver, dsn string, err error) {
	lower := strings.ToLower(url)
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return "postgres", url, nil
	case strings.HasPrefix(lower, "sqlite://"):
		return "sqlite3", url[len("sqlite://"):], nil
	case strings.HasPrefix(lower, "sqlite3://"):
		return "sqlite3", url[len("sqlite3://"):], nil
	case strings.HasPrefix(lower, "file:"),
		strings.HasSuffix(lower, ".db"),
		strings.HasSuffix(lower, ".sqlite"),
		strings.HasSuffix(lower, ".sqlite3"):
		return "sqlite3", url, nil
	}
	return "", "", fmt.Errorf("%w: %q", core.ErrUnsupportedSource, url)
}

// Open connects to the database at url
func Open(ctx context.Context, url string) (*sqlx.DB, error) {
	driver, dsn, err := DriverFor(url)
	if err != nil {
		return nil, err
	}
	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}
	return db, nil
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// TableSource loads a whole table as a dataset
type TableSource struct {
	db      *sqlx.DB
	table   string
	coercer *coercer.TypeCoercer
	logger  *internal.Logger
}

// NewTableSource creates a source for one table. Columns whose declared type
// says nothing useful are typed from their values with coerce.
func NewTableSource(db *sqlx.DB, table string, coerce coercer.CoercionConfig, logger *internal.Logger) *TableSource {
	return &TableSource{
		db:      db,
		table:   table,
		coercer: coercer.NewTypeCoercer(coerce),
		logger:  logger,
	}
}

// Sources returns a source per table
func Sources(db *sqlx.DB, tables []string, coerce coercer.CoercionConfig, logger *internal.Logger) []ports.DatasetSource {
	out := make([]ports.DatasetSource, 0, len(tables))
	for _, t := range tables {
		out = append(out, NewTableSource(db, t, coerce, logger))
	}
	return out
}

// Name is the table name
func (s *TableSource) Name() string {
	return s.table
}

// Load reads every row of the table
func (s *TableSource) Load(ctx context.Context) (*dataset.Dataset, error) {
	if !identPattern.MatchString(s.table) {
		return nil, fmt.Errorf("invalid table name %q", s.table)
	}
	start := time.Now()

	rows, err := s.db.QueryxContext(ctx, "SELECT * FROM "+quoteIdent(s.table))
	if err != nil {
		return nil, fmt.Errorf("failed to query table %s: %w", s.table, err)
	}
	defer rows.Close()

	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to read column types of %s: %w", s.table, err)
	}
	cells := make([][]interface{}, len(colTypes))
	for rows.Next() {
		row, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("failed to scan row of %s: %w", s.table, err)
		}
		for j := range colTypes {
			cells[j] = append(cells[j], row[j])
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows of %s: %w", s.table, err)
	}

	cols := make([]*dataset.Column, len(colTypes))
	for j, ct := range colTypes {
		cols[j] = s.buildColumn(ct.Name(), ct.DatabaseTypeName(), cells[j])
	}
	s.logger.Debug("[TableSource] loaded %s in %.2fms (%d columns)", s.table,
		float64(time.Since(start).Nanoseconds())/1e6, len(cols))

	return dataset.New(s.table, cols...)
}

func (s *TableSource) buildColumn(name, dbType string, cells []interface{}) *dataset.Column {
	typ := ColumnTypeFor(dbType)
	if typ == dataset.TypeUnknown || typ == dataset.TypeObject {
		raw := make([]string, len(cells))
		for i, c := range cells {
			raw[i] = rawString(c)
		}
		return s.coercer.InferColumn(name, raw)
	}

	values := make([]dataset.Value, len(cells))
	for i, c := range cells {
		values[i] = toValue(typ, c)
	}
	return dataset.NewColumn(name, typ, values)
}

// ColumnTypeFor maps a driver's declared column type to a ColumnType.
// Text-like and unknown types map to object and unknown.
func ColumnTypeFor(dbType string) dataset.ColumnType {
	t := strings.ToUpper(dbType)
	if i := strings.IndexByte(t, '('); i >= 0 {
		t = t[:i]
	}
	switch strings.TrimSpace(t) {
	case "INT", "INTEGER", "INT2", "INT4", "INT8", "SMALLINT", "BIGINT", "SERIAL", "BIGSERIAL":
		return dataset.TypeInt
	case "REAL", "FLOAT", "FLOAT4", "FLOAT8", "DOUBLE", "DOUBLE PRECISION", "NUMERIC", "DECIMAL":
		return dataset.TypeFloat
	case "BOOL", "BOOLEAN":
		return dataset.TypeBool
	case "DATE", "DATETIME", "TIMESTAMP", "TIMESTAMPTZ":
		return dataset.TypeDatetime
	case "INTERVAL":
		return dataset.TypeDuration
	case "TEXT", "VARCHAR", "CHAR", "BPCHAR", "CHARACTER VARYING", "NAME", "UUID":
		return dataset.TypeObject
	}
	return dataset.TypeUnknown
}

func toValue(typ dataset.ColumnType, cell interface{}) dataset.Value {
	if cell == nil {
		return dataset.NewMissingValue()
	}
	switch typ {
	case dataset.TypeInt, dataset.TypeFloat:
		switch v := cell.(type) {
		case int64:
			return dataset.NewNumericValue(float64(v))
		case float64:
			return dataset.NewNumericValue(v)
		case []byte, string:
			if f, err := strconv.ParseFloat(rawString(v), 64); err == nil {
				return dataset.NewNumericValue(f)
			}
		}
	case dataset.TypeBool:
		switch v := cell.(type) {
		case bool:
			return dataset.NewBooleanValue(v)
		case int64:
			return dataset.NewBooleanValue(v != 0)
		case []byte, string:
			if b, err := strconv.ParseBool(rawString(v)); err == nil {
				return dataset.NewBooleanValue(b)
			}
		}
	case dataset.TypeDatetime:
		if v, ok := cell.(time.Time); ok {
			return dataset.NewTimestampValue(v)
		}
	case dataset.TypeDuration:
		if d, err := time.ParseDuration(rawString(cell)); err == nil {
			return dataset.NewDurationValue(d)
		}
	}
	return dataset.NewMissingValue()
}

func rawString(cell interface{}) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case string:
		return v
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(v)
	}
}

func quoteIdent(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = `"` + p + `"`
	}
	return strings.Join(parts, ".")
}
