package dialect

// SQLiteDialect reads the catalog through pragma table-valued functions.
// SQLite has no schemas: the schema argument is ignored.
type SQLiteDialect struct {
	driver string
}

func (d *SQLiteDialect) Name() string {
	if d.driver == "" {
		return "sqlite"
	}
	return d.driver
}

func (d *SQLiteDialect) TablesQuery(schema string) (string, []any) {
	return `SELECT name, NULL FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`, nil
}

func (d *SQLiteDialect) ColumnsQuery(schema, table string) (string, []any) {
	// hidden: 2 = virtual generated, 3 = stored generated.
	return `SELECT
    name,
    cid + 1,
    CASE WHEN "notnull" = 0 AND pk = 0 THEN 1 ELSE 0 END,
    type,
    CASE WHEN pk > 0 THEN 1 ELSE 0 END,
    CASE WHEN hidden IN (2, 3) THEN 1 ELSE 0 END,
    0
FROM pragma_table_xinfo(?)
ORDER BY cid`, []any{table}
}

func (d *SQLiteDialect) IndexesQuery(schema, table string) (string, []any) {
	// origin 'c' is CREATE INDEX; 'u' and 'pk' are created for constraints.
	return `SELECT name, "unique" FROM pragma_index_list(?) WHERE origin = 'c' ORDER BY name`, []any{table}
}

func (d *SQLiteDialect) IndexColumnsQuery(schema, table, index string) (string, []any) {
	// name is NULL for expression key parts.
	return `SELECT name, seqno + 1 FROM pragma_index_info(?) ORDER BY seqno`, []any{index}
}

func (d *SQLiteDialect) NormalizeType(sqlType string) string {
	return DefaultNormalizeType(sqlType)
}

func (d *SQLiteDialect) GetSchemaName(input string) string {
	return DefaultGetSchemaName(input)
}
