package dialect

import (
	"strings"
)

// MSSQLDialect reads the sys catalog views of SQL Server.
// go-mssqldb binds positional arguments as @p1, @p2, ...
type MSSQLDialect struct {
	driver string
}

func (d *MSSQLDialect) Name() string {
	if d.driver == "" {
		return "sqlserver"
	}
	return d.driver
}

func (d *MSSQLDialect) TablesQuery(schema string) (string, []any) {
	return `SELECT t.name, NULL
FROM sys.tables t
JOIN sys.schemas s ON s.schema_id = t.schema_id
WHERE s.name = @p1 AND t.is_ms_shipped = 0
ORDER BY t.name`, []any{schema}
}

func (d *MSSQLDialect) ColumnsQuery(schema, table string) (string, []any) {
	return `SELECT
    c.name,
    c.column_id,
    CAST(c.is_nullable AS INT),
    ty.name,
    CASE WHEN EXISTS (
        SELECT 1 FROM sys.indexes i
        JOIN sys.index_columns ic ON ic.object_id = i.object_id AND ic.index_id = i.index_id
        WHERE i.object_id = t.object_id AND i.is_primary_key = 1 AND ic.column_id = c.column_id
    ) THEN 1 ELSE 0 END,
    CAST(c.is_computed AS INT),
    0
FROM sys.columns c
JOIN sys.tables t ON t.object_id = c.object_id
JOIN sys.schemas s ON s.schema_id = t.schema_id
JOIN sys.types ty ON ty.user_type_id = c.user_type_id
WHERE s.name = @p1 AND t.name = @p2
ORDER BY c.column_id`, []any{schema, table}
}

func (d *MSSQLDialect) IndexesQuery(schema, table string) (string, []any) {
	return `SELECT i.name, CAST(i.is_unique AS INT)
FROM sys.indexes i
JOIN sys.tables t ON t.object_id = i.object_id
JOIN sys.schemas s ON s.schema_id = t.schema_id
WHERE s.name = @p1 AND t.name = @p2
AND i.is_primary_key = 0 AND i.is_unique_constraint = 0
AND i.type > 0 AND i.name IS NOT NULL
ORDER BY i.name`, []any{schema, table}
}

func (d *MSSQLDialect) IndexColumnsQuery(schema, table, index string) (string, []any) {
	return `SELECT c.name, CASE WHEN ic.is_included_column = 1 THEN NULL ELSE ic.key_ordinal END
FROM sys.index_columns ic
JOIN sys.indexes i ON i.object_id = ic.object_id AND i.index_id = ic.index_id
JOIN sys.columns c ON c.object_id = ic.object_id AND c.column_id = ic.column_id
JOIN sys.tables t ON t.object_id = i.object_id
JOIN sys.schemas s ON s.schema_id = t.schema_id
WHERE s.name = @p1 AND t.name = @p2 AND i.name = @p3
ORDER BY ic.key_ordinal`, []any{schema, table, index}
}

func (d *MSSQLDialect) NormalizeType(sqlType string) string {
	return DefaultNormalizeType(sqlType)
}

func (d *MSSQLDialect) GetSchemaName(input string) string {
	if input == "" {
		return "dbo"
	}
	return strings.TrimSpace(input)
}
