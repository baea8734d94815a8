package dialect

import (
	"strings"
)

type MysqlDialect struct{}

func (d *MysqlDialect) Name() string { return "mysql" }

func (d *MysqlDialect) TablesQuery(schema string) (string, []any) {
	return `SELECT TABLE_NAME, NULL FROM information_schema.TABLES WHERE TABLE_SCHEMA = ? AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`, []any{schema}
}

func (d *MysqlDialect) ColumnsQuery(schema, table string) (string, []any) {
	// COLUMN_TYPE keeps the display width so tinyint(1) can be told apart from tinyint.
	return `SELECT COLUMN_NAME, ORDINAL_POSITION, IS_NULLABLE = 'YES', COLUMN_TYPE, COLUMN_KEY = 'PRI', EXTRA LIKE '%GENERATED%', FALSE FROM information_schema.COLUMNS WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ? ORDER BY ORDINAL_POSITION`, []any{schema, table}
}

func (d *MysqlDialect) IndexesQuery(schema, table string) (string, []any) {
	return `SELECT INDEX_NAME, MIN(NON_UNIQUE) = 0 FROM information_schema.STATISTICS WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ? AND INDEX_NAME <> 'PRIMARY' GROUP BY INDEX_NAME ORDER BY INDEX_NAME`, []any{schema, table}
}

func (d *MysqlDialect) IndexColumnsQuery(schema, table, index string) (string, []any) {
	// COLUMN_NAME is NULL for functional key parts (8.0.13+).
	return `SELECT COLUMN_NAME, SEQ_IN_INDEX FROM information_schema.STATISTICS WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ? AND INDEX_NAME = ? ORDER BY SEQ_IN_INDEX`, []any{schema, table, index}
}

func (d *MysqlDialect) NormalizeType(sqlType string) string {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(sqlType)), "tinyint(1)") {
		return TypeBool
	}
	return DefaultNormalizeType(sqlType)
}

func (d *MysqlDialect) GetSchemaName(input string) string {
	return DefaultGetSchemaName(input)
}
