package schema

import (
	"context"
	"database/sql"
	"log"

	"table-gen/internal/dialect"
)

// Querier is the catalog capability the Reader needs. *sql.DB satisfies it.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	PingContext(ctx context.Context) error
}

// Reader issues catalog queries one at a time and returns raw rows in catalog order.
type Reader struct {
	db      Querier
	dialect dialect.Dialect
	schema  string
}

// NewReader returns a Reader for the given schema. The dialect resolves an
// empty schema name to its default.
func NewReader(db Querier, d dialect.Dialect, schemaName string) *Reader {
	return &Reader{db: db, dialect: d, schema: d.GetSchemaName(schemaName)}
}

// Ping checks that the catalog is reachable.
func (r *Reader) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return &ConnectivityError{Driver: r.dialect.Name(), Cause: err}
	}
	return nil
}

// Tables lists the tables of the schema ordered by name.
func (r *Reader) Tables(ctx context.Context) ([]RawTable, error) {
	q, args := r.dialect.TablesQuery(r.schema)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, &QueryError{Op: "list tables", Cause: err}
	}
	defer rows.Close()

	var tables []RawTable
	for rows.Next() {
		var name string
		var parent sql.NullString
		if err := rows.Scan(&name, &parent); err != nil {
			return nil, &QueryError{Op: "scan table", Cause: err}
		}
		tables = append(tables, RawTable{Name: name, ParentName: parent.String})
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Op: "list tables", Cause: err}
	}
	return tables, nil
}

// Columns lists the columns of a table ordered by ordinal position.
func (r *Reader) Columns(ctx context.Context, table string) ([]RawColumn, error) {
	q, args := r.dialect.ColumnsQuery(r.schema, table)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, &QueryError{Op: "list columns", Table: table, Cause: err}
	}
	defer rows.Close()

	var columns []RawColumn
	for rows.Next() {
		var c RawColumn
		if err := rows.Scan(&c.Name, &c.OrdinalPosition, &c.Nullable, &c.NativeType,
			&c.PrimaryKey, &c.Generated, &c.AllowCommitTimestamp); err != nil {
			return nil, &QueryError{Op: "scan column", Table: table, Cause: err}
		}
		c.NativeType = r.dialect.NormalizeType(c.NativeType)
		columns = append(columns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Op: "list columns", Table: table, Cause: err}
	}
	return columns, nil
}

// Indexes lists the secondary, user-managed indexes of a table without their columns.
func (r *Reader) Indexes(ctx context.Context, table string) ([]RawIndex, error) {
	q, args := r.dialect.IndexesQuery(r.schema, table)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, &QueryError{Op: "list indexes", Table: table, Cause: err}
	}
	defer rows.Close()

	var indexes []RawIndex
	for rows.Next() {
		var idx RawIndex
		if err := rows.Scan(&idx.Name, &idx.Unique); err != nil {
			return nil, &QueryError{Op: "scan index", Table: table, Cause: err}
		}
		indexes = append(indexes, idx)
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Op: "list indexes", Table: table, Cause: err}
	}
	return indexes, nil
}

// IndexColumns lists the columns of one index ordered by position.
func (r *Reader) IndexColumns(ctx context.Context, table, index string) ([]RawIndexColumn, error) {
	q, args := r.dialect.IndexColumnsQuery(r.schema, table, index)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, &QueryError{Op: "list index columns", Table: table, Index: index, Cause: err}
	}
	defer rows.Close()

	var columns []RawIndexColumn
	for rows.Next() {
		var name sql.NullString
		var pos sql.NullInt64
		if err := rows.Scan(&name, &pos); err != nil {
			return nil, &QueryError{Op: "scan index column", Table: table, Index: index, Cause: err}
		}
		// Expression key parts have no column name.
		c := RawIndexColumn{Name: name.String, Position: pos.Int64, Valid: pos.Valid}
		if !name.Valid {
			c.Name, c.Expression = ExpressionName, true
		}
		columns = append(columns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Op: "list index columns", Table: table, Index: index, Cause: err}
	}
	return columns, nil
}

// ReadAll reads the whole schema: tables, then per table its columns, indexes
// and index columns. Queries are issued sequentially; the first error aborts.
func (r *Reader) ReadAll(ctx context.Context) (*Snapshot, error) {
	tables, err := r.Tables(ctx)
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{
		Tables:  tables,
		Columns: make(map[string][]RawColumn, len(tables)),
		Indexes: make(map[string][]RawIndex, len(tables)),
	}
	for _, t := range tables {
		columns, err := r.Columns(ctx, t.Name)
		if err != nil {
			return nil, err
		}
		snap.Columns[t.Name] = columns

		indexes, err := r.Indexes(ctx, t.Name)
		if err != nil {
			return nil, err
		}
		for i := range indexes {
			cols, err := r.IndexColumns(ctx, t.Name, indexes[i].Name)
			if err != nil {
				return nil, err
			}
			indexes[i].Columns = cols
		}
		snap.Indexes[t.Name] = indexes
	}
	log.Printf("%d tables found", len(tables))
	return snap, nil
}
