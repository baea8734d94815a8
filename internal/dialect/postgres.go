package dialect

import (
	"strings"
)

// PostgresDialect serves both lib/pq ("postgres") and pgx ("pgx") connections.
type PostgresDialect struct {
	driver string
}

func (d *PostgresDialect) Name() string {
	if d.driver == "" {
		return "postgres"
	}
	return d.driver
}

func (d *PostgresDialect) TablesQuery(schema string) (string, []any) {
	// Inheritance and partition parents play the role of interleaving parents.
	return `SELECT
    t.table_name,
    (SELECT p.relname
     FROM pg_inherits i
     JOIN pg_class ch ON ch.oid = i.inhrelid
     JOIN pg_class p ON p.oid = i.inhparent
     JOIN pg_namespace ns ON ns.oid = ch.relnamespace
     WHERE ns.nspname = t.table_schema AND ch.relname = t.table_name
     LIMIT 1) AS parent_table_name
FROM information_schema.tables t
WHERE t.table_schema = $1 AND t.table_type = 'BASE TABLE'
ORDER BY t.table_name`, []any{schema}
}

func (d *PostgresDialect) ColumnsQuery(schema, table string) (string, []any) {
	// UDT_NAME carries the element type of arrays ("_int8"), DATA_TYPE only says "ARRAY".
	return `SELECT
    c.column_name,
    c.ordinal_position,
    c.is_nullable = 'YES' AS is_nullable,
    CASE WHEN c.data_type = 'ARRAY' THEN c.udt_name ELSE c.data_type END AS native_type,
    EXISTS (
        SELECT 1 FROM information_schema.table_constraints tc
        JOIN information_schema.key_column_usage kcu
          ON tc.constraint_name = kcu.constraint_name AND tc.table_schema = kcu.table_schema
        WHERE tc.constraint_type = 'PRIMARY KEY'
        AND kcu.table_schema = c.table_schema
        AND kcu.table_name = c.table_name
        AND kcu.column_name = c.column_name
    ) AS is_primary_key,
    c.is_generated = 'ALWAYS' AS is_generated,
    FALSE AS allow_commit_timestamp
FROM information_schema.columns c
WHERE c.table_schema = $1 AND c.table_name = $2
ORDER BY c.ordinal_position`, []any{schema, table}
}

func (d *PostgresDialect) IndexesQuery(schema, table string) (string, []any) {
	// Indexes backing a constraint (primary key, unique, exclusion) are managed by Postgres.
	return `SELECT i.relname, ix.indisunique
FROM pg_index ix
JOIN pg_class i ON i.oid = ix.indexrelid
JOIN pg_class t ON t.oid = ix.indrelid
JOIN pg_namespace ns ON ns.oid = t.relnamespace
WHERE ns.nspname = $1 AND t.relname = $2
AND NOT ix.indisprimary
AND NOT EXISTS (SELECT 1 FROM pg_constraint con WHERE con.conindid = ix.indexrelid)
ORDER BY i.relname`, []any{schema, table}
}

func (d *PostgresDialect) IndexColumnsQuery(schema, table, index string) (string, []any) {
	// attnum 0 is an expression key part; the left join leaves its name NULL.
	return `SELECT
    a.attname,
    CASE WHEN k.ord <= ix.indnkeyatts THEN k.ord END AS ordinal_position
FROM pg_index ix
JOIN pg_class i ON i.oid = ix.indexrelid
JOIN pg_class t ON t.oid = ix.indrelid
JOIN pg_namespace ns ON ns.oid = t.relnamespace
CROSS JOIN LATERAL unnest(ix.indkey) WITH ORDINALITY AS k(attnum, ord)
LEFT JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = k.attnum AND k.attnum <> 0
WHERE ns.nspname = $1 AND t.relname = $2 AND i.relname = $3
ORDER BY k.ord`, []any{schema, table, index}
}

func (d *PostgresDialect) NormalizeType(sqlType string) string {
	t := strings.ToLower(strings.TrimSpace(sqlType))
	if strings.HasPrefix(t, "_") {
		return wrapArray(d.NormalizeType(t[1:]))
	}
	if strings.HasSuffix(t, "[]") {
		return wrapArray(d.NormalizeType(strings.TrimSuffix(t, "[]")))
	}
	return DefaultNormalizeType(t)
}

func (d *PostgresDialect) GetSchemaName(input string) string {
	if input == "" {
		return "public"
	}
	return input
}
