package dialect

import (
	"strings"
)

// OracleDialect reads the ALL_* dictionary views for one owner.
type OracleDialect struct{}

func (d *OracleDialect) Name() string { return "oracle" }

func (d *OracleDialect) TablesQuery(schema string) (string, []any) {
	return `SELECT TABLE_NAME, NULL FROM ALL_TABLES WHERE OWNER = :1 ORDER BY TABLE_NAME`, []any{schema}
}

func (d *OracleDialect) ColumnsQuery(schema, table string) (string, []any) {
	// NUMBER without scale is an integer; with scale it is a decimal.
	return `SELECT
    c.COLUMN_NAME,
    c.COLUMN_ID,
    CASE WHEN c.NULLABLE = 'Y' THEN 1 ELSE 0 END,
    CASE
        WHEN c.DATA_TYPE = 'NUMBER' AND COALESCE(c.DATA_SCALE, 0) > 0 THEN 'NUMERIC'
        WHEN c.DATA_TYPE = 'NUMBER' THEN 'INT64'
        ELSE c.DATA_TYPE
    END,
    CASE WHEN EXISTS (
        SELECT 1 FROM ALL_CONSTRAINTS k
        JOIN ALL_CONS_COLUMNS kc ON kc.OWNER = k.OWNER AND kc.CONSTRAINT_NAME = k.CONSTRAINT_NAME
        WHERE k.CONSTRAINT_TYPE = 'P' AND k.OWNER = c.OWNER
        AND k.TABLE_NAME = c.TABLE_NAME AND kc.COLUMN_NAME = c.COLUMN_NAME
    ) THEN 1 ELSE 0 END,
    CASE WHEN c.VIRTUAL_COLUMN = 'YES' THEN 1 ELSE 0 END,
    0
FROM ALL_TAB_COLS c
WHERE c.OWNER = :1 AND c.TABLE_NAME = :2 AND c.HIDDEN_COLUMN = 'NO'
ORDER BY c.COLUMN_ID`, []any{schema, table}
}

func (d *OracleDialect) IndexesQuery(schema, table string) (string, []any) {
	return `SELECT i.INDEX_NAME, CASE WHEN i.UNIQUENESS = 'UNIQUE' THEN 1 ELSE 0 END
FROM ALL_INDEXES i
WHERE i.TABLE_OWNER = :1 AND i.TABLE_NAME = :2 AND i.GENERATED = 'N'
AND NOT EXISTS (
    SELECT 1 FROM ALL_CONSTRAINTS k
    WHERE k.OWNER = i.OWNER AND k.INDEX_NAME = i.INDEX_NAME AND k.CONSTRAINT_TYPE IN ('P', 'U')
)
ORDER BY i.INDEX_NAME`, []any{schema, table}
}

func (d *OracleDialect) IndexColumnsQuery(schema, table, index string) (string, []any) {
	return `SELECT COLUMN_NAME, COLUMN_POSITION FROM ALL_IND_COLUMNS WHERE TABLE_OWNER = :1 AND TABLE_NAME = :2 AND INDEX_NAME = :3 ORDER BY COLUMN_POSITION`, []any{schema, table, index}
}

func (d *OracleDialect) NormalizeType(sqlType string) string {
	t := strings.ToUpper(strings.TrimSpace(sqlType))
	// Oracle DATE carries a time of day.
	if t == "DATE" {
		return TypeTimestamp
	}
	return DefaultNormalizeType(t)
}

// GetSchemaName upper-cases the owner, which is how Oracle stores unquoted names.
func (d *OracleDialect) GetSchemaName(input string) string {
	return strings.ToUpper(strings.TrimSpace(input))
}
