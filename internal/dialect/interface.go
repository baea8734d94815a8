package dialect

// Dialect abstracts the catalog queries of one database.
//
// Every query method returns the statement text together with its positional
// arguments so that each dialect can use its own placeholder syntax.
type Dialect interface {
	// Name is the driver name the dialect was resolved from.
	Name() string

	// Metadata Queries (Schema Introspection)

	// TablesQuery lists (table_name, parent_table_name) ordered by table name.
	TablesQuery(schema string) (string, []any)
	// ColumnsQuery lists (column_name, ordinal_position, is_nullable, native_type,
	// is_primary_key, is_generated, allow_commit_timestamp) ordered by ordinal position.
	ColumnsQuery(schema, table string) (string, []any)
	// IndexesQuery lists (index_name, is_unique) for secondary indexes that are
	// neither the primary key nor managed by the database itself.
	IndexesQuery(schema, table string) (string, []any)
	// IndexColumnsQuery lists (column_name, ordinal_position) of one index.
	// A NULL position marks a storing (included) column.
	IndexColumnsQuery(schema, table, index string) (string, []any)

	// Helpers
	NormalizeType(nativeType string) string
	GetSchemaName(input string) string
}
