package schema

import (
	"context"
	"log"

	"table-gen/internal/dialect"
)

// Analyze reads the catalog through the dialect and builds the table model.
// It is the only entry point that touches the database.
func Analyze(ctx context.Context, db Querier, d dialect.Dialect, schemaName string, opts Options, custom CustomTypes) ([]*Table, error) {
	r := NewReader(db, d, schemaName)
	if err := r.Ping(ctx); err != nil {
		return nil, err
	}
	log.Printf("Reading %s catalog (schema %q)...", d.Name(), r.schema)
	snap, err := r.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return BuildWith(snap, opts, custom)
}
