package schema

import (
	"fmt"
	"sort"

	"table-gen/internal/naming"
)

// Build turns a catalog snapshot into the ordered table model.
// It performs no I/O; equal input always yields an equal model.
func Build(snap *Snapshot, opts Options) ([]*Table, error) {
	return BuildWith(snap, opts, nil)
}

// BuildWith is Build with per-column target type overrides.
func BuildWith(snap *Snapshot, opts Options, custom CustomTypes) ([]*Table, error) {
	if snap == nil {
		return []*Table{}, nil
	}
	tables := make([]*Table, 0, len(snap.Tables))
	for _, rt := range snap.Tables {
		t, err := buildTable(rt, snap.Columns[rt.Name], snap.Indexes[rt.Name], opts, custom[rt.Name])
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func buildTable(rt RawTable, rawColumns []RawColumn, rawIndexes []RawIndex, opts Options, overrides map[string]string) (*Table, error) {
	t := &Table{
		Name:            rt.Name,
		ParentTableName: rt.ParentName,
		SnakeName:       naming.Snake(rt.Name),
		UpperSnakeName:  naming.UpperSnake(rt.Name),
		PascalName:      naming.Pascal(rt.Name),
		Options:         opts,
	}

	columns, err := buildColumns(rt.Name, rawColumns, overrides)
	if err != nil {
		return nil, err
	}
	t.Columns = columns
	t.PrimaryKeys = primaryKeys(columns)
	t.CompositeKey = len(t.PrimaryKeys) > 1

	t.Indexes = make([]*Index, 0, len(rawIndexes))
	for _, ri := range rawIndexes {
		idx, err := buildIndex(rt.Name, ri)
		if err != nil {
			return nil, err
		}
		t.Indexes = append(t.Indexes, idx)
	}
	return t, nil
}

func buildColumns(table string, raw []RawColumn, overrides map[string]string) ([]*Column, error) {
	columns := make([]*Column, 0, len(raw))
	for _, rc := range raw {
		columns = append(columns, &Column{
			Name:                 rc.Name,
			OrdinalPosition:      rc.OrdinalPosition,
			NativeType:           rc.NativeType,
			Nullable:             rc.Nullable,
			PrimaryKey:           rc.PrimaryKey,
			Generated:            rc.Generated,
			AllowCommitTimestamp: rc.AllowCommitTimestamp,
			SnakeName:            naming.Snake(rc.Name),
			UpperSnakeName:       naming.UpperSnake(rc.Name),
			PascalName:           naming.Pascal(rc.Name),
			CustomType:           overrides[rc.Name],
		})
	}
	sort.SliceStable(columns, func(i, j int) bool {
		return columns[i].OrdinalPosition < columns[j].OrdinalPosition
	})
	for i := 1; i < len(columns); i++ {
		if columns[i].OrdinalPosition == columns[i-1].OrdinalPosition {
			return nil, fmt.Errorf("%w: table %s: columns %s and %s share ordinal position %d",
				ErrInvalidCatalog, table, columns[i-1].Name, columns[i].Name, columns[i].OrdinalPosition)
		}
	}
	return columns, nil
}

// primaryKeys derives one PrimaryKey per key column, in ordinal order. The k-th
// entry's Uppers is the inclusive prefix of the first k key columns, so generated
// code can build a composite key part by part.
func primaryKeys(columns []*Column) []*PrimaryKey {
	var keyColumns []*Column
	for _, c := range columns {
		if c.PrimaryKey {
			keyColumns = append(keyColumns, c)
		}
	}
	keys := make([]*PrimaryKey, len(keyColumns))
	for i, c := range keyColumns {
		keys[i] = &PrimaryKey{
			Column:   c,
			Uppers:   keyColumns[: i+1 : i+1],
			Last:     i == len(keyColumns)-1,
			Position: i + 1,
		}
	}
	return keys
}

func buildIndex(table string, ri RawIndex) (*Index, error) {
	idx := &Index{Name: ri.Name, Unique: ri.Unique, Columns: []IndexColumn{}}
	for _, rc := range ri.Columns {
		if !rc.Valid {
			idx.Storing = append(idx.Storing, rc.Name)
			continue
		}
		idx.Columns = append(idx.Columns, IndexColumn{Name: rc.Name, Position: rc.Position, Expression: rc.Expression})
	}
	sort.SliceStable(idx.Columns, func(i, j int) bool {
		return idx.Columns[i].Position < idx.Columns[j].Position
	})
	for i, c := range idx.Columns {
		if c.Position != int64(i+1) {
			return nil, fmt.Errorf("%w: table %s: index %s column %s has position %d, want %d",
				ErrInvalidCatalog, table, ri.Name, c.Name, c.Position, i+1)
		}
	}
	return idx, nil
}
