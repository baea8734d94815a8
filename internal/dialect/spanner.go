package dialect

import (
	"strings"
)

// SpannerDialect reads the Cloud Spanner INFORMATION_SCHEMA through go-sql-spanner.
// Positional arguments are bound as @p1, @p2, ...
type SpannerDialect struct{}

func (d *SpannerDialect) Name() string { return "spanner" }

func (d *SpannerDialect) TablesQuery(schema string) (string, []any) {
	return `SELECT TABLE_NAME, PARENT_TABLE_NAME
FROM INFORMATION_SCHEMA.TABLES
WHERE TABLE_SCHEMA = @p1 AND TABLE_TYPE = 'BASE TABLE'
ORDER BY TABLE_NAME`, []any{schema}
}

func (d *SpannerDialect) ColumnsQuery(schema, table string) (string, []any) {
	return `SELECT
    c.COLUMN_NAME,
    c.ORDINAL_POSITION,
    c.IS_NULLABLE = 'YES' AS IS_NULLABLE,
    c.SPANNER_TYPE,
    EXISTS (
        SELECT 1 FROM INFORMATION_SCHEMA.INDEX_COLUMNS ic
        WHERE ic.TABLE_SCHEMA = c.TABLE_SCHEMA
        AND ic.TABLE_NAME = c.TABLE_NAME
        AND ic.COLUMN_NAME = c.COLUMN_NAME
        AND ic.INDEX_NAME = 'PRIMARY_KEY'
    ) AS IS_PRIMARY_KEY,
    c.IS_GENERATED = 'ALWAYS' AS IS_GENERATED,
    EXISTS (
        SELECT 1 FROM INFORMATION_SCHEMA.COLUMN_OPTIONS oc
        WHERE oc.OPTION_NAME = 'allow_commit_timestamp'
        AND oc.OPTION_VALUE = 'TRUE'
        AND oc.TABLE_NAME = c.TABLE_NAME
        AND oc.COLUMN_NAME = c.COLUMN_NAME
    ) AS ALLOW_COMMIT_TIMESTAMP
FROM INFORMATION_SCHEMA.COLUMNS c
WHERE c.TABLE_SCHEMA = @p1 AND c.TABLE_NAME = @p2
ORDER BY c.ORDINAL_POSITION`, []any{schema, table}
}

func (d *SpannerDialect) IndexesQuery(schema, table string) (string, []any) {
	return `SELECT INDEX_NAME, IS_UNIQUE
FROM INFORMATION_SCHEMA.INDEXES
WHERE TABLE_SCHEMA = @p1 AND TABLE_NAME = @p2
AND INDEX_NAME != 'PRIMARY_KEY'
AND SPANNER_IS_MANAGED = FALSE
ORDER BY INDEX_NAME`, []any{schema, table}
}

func (d *SpannerDialect) IndexColumnsQuery(schema, table, index string) (string, []any) {
	return `SELECT COLUMN_NAME, ORDINAL_POSITION
FROM INFORMATION_SCHEMA.INDEX_COLUMNS
WHERE TABLE_SCHEMA = @p1 AND TABLE_NAME = @p2 AND INDEX_NAME = @p3
ORDER BY ORDINAL_POSITION`, []any{schema, table, index}
}

// NormalizeType keeps Spanner spellings, which already are the canonical vocabulary.
func (d *SpannerDialect) NormalizeType(sqlType string) string {
	return strings.ToUpper(strings.TrimSpace(sqlType))
}

func (d *SpannerDialect) GetSchemaName(input string) string {
	return DefaultGetSchemaName(input)
}
