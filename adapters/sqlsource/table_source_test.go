package sqlsource

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"dfsummary/adapters/datareadiness/coercer"
	"dfsummary/domain/core"
	"dfsummary/domain/dataset"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriverFor(t *testing.T) {
	tests := []struct {
		url, driver, dsn string
	}{
		{"postgres://u:p@localhost/db?sslmode=disable", "postgres", "postgres://u:p@localhost/db?sslmode=disable"},
		{"postgresql://localhost/db", "postgres", "postgresql://localhost/db"},
		{"sqlite:///tmp/data.db", "sqlite3", "/tmp/data.db"},
		{"file:test.db?cache=shared", "sqlite3", "file:test.db?cache=shared"},
		{"./local.sqlite", "sqlite3", "./local.sqlite"},
	}
	for _, tt := range tests {
		driver, dsn, err := DriverFor(tt.url)
		require.NoError(t, err, tt.url)
		assert.Equal(t, tt.driver, driver, tt.url)
		assert.Equal(t, tt.dsn, dsn, tt.url)
	}

	_, _, err := DriverFor("mysql://localhost/db")
	assert.ErrorIs(t, err, core.ErrUnsupportedSource)
}

func TestColumnTypeFor(t *testing.T) {
	assert.Equal(t, dataset.TypeInt, ColumnTypeFor("integer"))
	assert.Equal(t, dataset.TypeFloat, ColumnTypeFor("NUMERIC(10,2)"))
	assert.Equal(t, dataset.TypeBool, ColumnTypeFor("BOOL"))
	assert.Equal(t, dataset.TypeDatetime, ColumnTypeFor("TIMESTAMPTZ"))
	assert.Equal(t, dataset.TypeDuration, ColumnTypeFor("INTERVAL"))
	assert.Equal(t, dataset.TypeObject, ColumnTypeFor("VARCHAR(20)"))
	assert.Equal(t, dataset.TypeUnknown, ColumnTypeFor(""))
}

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := Open(context.Background(), "sqlite://"+filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	db.MustExec(`CREATE TABLE tips (
		total_bill REAL,
		size INTEGER,
		smoker BOOLEAN,
		day TEXT,
		paid_at DATETIME,
		note
	)`)
	paid := time.Date(2024, 1, 1, 18, 30, 0, 0, time.UTC)
	db.MustExec(`INSERT INTO tips VALUES (?, ?, ?, ?, ?, ?)`, 16.99, 2, false, "Sun", paid, "12")
	db.MustExec(`INSERT INTO tips VALUES (?, ?, ?, ?, ?, ?)`, 10.34, 3, true, "Sat", paid.Add(24*time.Hour), "7")
	db.MustExec(`INSERT INTO tips VALUES (NULL, 4, NULL, NULL, NULL, NULL)`)
	return db
}

func TestTableSource_Load(t *testing.T) {
	db := openTestDB(t)
	src := NewTableSource(db, "tips", coercer.DefaultCoercionConfig(), nil)
	assert.Equal(t, "tips", src.Name())

	ds, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tips", ds.Name)
	assert.Equal(t, 3, ds.RowCount())
	assert.Equal(t, []string{"total_bill", "size", "smoker", "day", "paid_at", "note"}, ds.ColumnNames())

	bill, _ := ds.Column("total_bill")
	assert.Equal(t, dataset.TypeFloat, bill.Type)
	assert.Equal(t, 1, bill.NullCount())

	size, _ := ds.Column("size")
	assert.Equal(t, dataset.TypeInt, size.Type)
	v, ok := size.Values[2].Float()
	require.True(t, ok)
	assert.Equal(t, 4.0, v)

	smoker, _ := ds.Column("smoker")
	assert.Equal(t, dataset.TypeBool, smoker.Type)
	b, ok := smoker.Values[1].Bool()
	require.True(t, ok)
	assert.True(t, b)

	paid, _ := ds.Column("paid_at")
	assert.Equal(t, dataset.TypeDatetime, paid.Type)
	assert.Equal(t, 1, paid.NullCount())

	// undeclared column typed from its values
	note, _ := ds.Column("note")
	assert.Equal(t, dataset.TypeInt, note.Type)
}

func TestTableSource_BadTable(t *testing.T) {
	db := openTestDB(t)

	_, err := NewTableSource(db, "tips; DROP TABLE tips", coercer.DefaultCoercionConfig(), nil).Load(context.Background())
	assert.Error(t, err)

	_, err = NewTableSource(db, "missing", coercer.DefaultCoercionConfig(), nil).Load(context.Background())
	assert.Error(t, err)
}

func TestSources(t *testing.T) {
	db := openTestDB(t)
	srcs := Sources(db, []string{"tips", "other"}, coercer.DefaultCoercionConfig(), nil)
	require.Len(t, srcs, 2)
	assert.Equal(t, "other", srcs[1].Name())
}
