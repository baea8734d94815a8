package dialect_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"table-gen/internal/dialect"
)

func TestGetDialect(t *testing.T) {
	tests := []struct {
		driver string
		name   string
	}{
		{"spanner", "spanner"},
		{"", "spanner"},
		{"postgres", "postgres"},
		{"pgx", "pgx"},
		{"mysql", "mysql"},
		{"sqlserver", "sqlserver"},
		{"mssql", "mssql"},
		{"oracle", "oracle"},
		{"sqlite", "sqlite"},
		{"sqlite3", "sqlite3"},
	}
	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			assert.Equal(t, tt.name, dialect.GetDialect(tt.driver).Name())
		})
	}
}

func TestNormalizeType(t *testing.T) {
	tests := []struct {
		driver string
		in     string
		want   string
	}{
		{"spanner", "STRING(MAX)", "STRING(MAX)"},
		{"spanner", "ARRAY<INT64>", "ARRAY<INT64>"},
		{"spanner", "bytes(16)", "BYTES(16)"},
		{"postgres", "bigint", "INT64"},
		{"postgres", "timestamp with time zone", "TIMESTAMP"},
		{"postgres", "_int8", "ARRAY<INT64>"},
		{"postgres", "text[]", "ARRAY<TEXT>"},
		{"postgres", "character varying", "CHARACTER VARYING"},
		{"mysql", "tinyint(1)", "BOOL"},
		{"mysql", "int(11) unsigned", "INT64"},
		{"mysql", "decimal(10,2)", "NUMERIC"},
		{"mysql", "datetime", "TIMESTAMP"},
		{"mysql", "varbinary(16)", "BYTES"},
		{"sqlserver", "bit", "BOOL"},
		{"sqlserver", "datetime2", "TIMESTAMP"},
		{"sqlserver", "nvarchar", "NVARCHAR"},
		{"oracle", "DATE", "TIMESTAMP"},
		{"oracle", "TIMESTAMP(6) WITH TIME ZONE", "TIMESTAMP"},
		{"oracle", "BINARY_DOUBLE", "FLOAT64"},
		{"oracle", "RAW", "BYTES"},
		{"sqlite", "INTEGER", "INT64"},
		{"sqlite", "BLOB", "BYTES"},
		{"sqlite", "TEXT", "TEXT"},
	}
	for _, tt := range tests {
		t.Run(tt.driver+"/"+tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, dialect.GetDialect(tt.driver).NormalizeType(tt.in))
		})
	}
}

func TestGetSchemaName(t *testing.T) {
	assert.Equal(t, "", dialect.GetDialect("spanner").GetSchemaName(""))
	assert.Equal(t, "public", dialect.GetDialect("postgres").GetSchemaName(""))
	assert.Equal(t, "app", dialect.GetDialect("postgres").GetSchemaName("app"))
	assert.Equal(t, "dbo", dialect.GetDialect("sqlserver").GetSchemaName(""))
	assert.Equal(t, "SCOTT", dialect.GetDialect("oracle").GetSchemaName("scott"))
}

// Every placeholder a query mentions must be backed by an argument.
func TestQueryArguments(t *testing.T) {
	drivers := []string{"spanner", "postgres", "mysql", "sqlserver", "oracle", "sqlite"}
	for _, driver := range drivers {
		d := dialect.GetDialect(driver)
		t.Run(driver, func(t *testing.T) {
			q, args := d.TablesQuery("s")
			assert.Equal(t, placeholders(q), len(args), q)

			q, args = d.ColumnsQuery("s", "T")
			assert.Equal(t, placeholders(q), len(args), q)
			assert.Contains(t, args, "T")

			q, args = d.IndexesQuery("s", "T")
			assert.Equal(t, placeholders(q), len(args), q)

			q, args = d.IndexColumnsQuery("s", "T", "I")
			assert.Equal(t, placeholders(q), len(args), q)
			assert.Contains(t, args, "I")
		})
	}
}

func placeholders(q string) int {
	n := strings.Count(q, "?")
	for i := 1; i <= 3; i++ {
		for _, p := range []string{"@p", "$", ":"} {
			if strings.Contains(q, p+string(rune('0'+i))) {
				n++
			}
		}
	}
	return n
}

// Expression key parts must survive the catalog query so positions stay contiguous.
func TestIndexColumnsQuery_KeepsExpressions(t *testing.T) {
	q, _ := dialect.GetDialect("postgres").IndexColumnsQuery("public", "T", "I")
	assert.Contains(t, q, "LEFT JOIN pg_attribute")

	q, _ = dialect.GetDialect("sqlite").IndexColumnsQuery("", "T", "I")
	assert.NotContains(t, q, "IS NOT NULL")
}
