package schema

// Options are run-level generation flags, attached uniformly to every Table.
type Options struct {
	// Serialization enables serialization support (json tags, serde derives).
	Serialization bool
	// Default enables default-value support (constructors, Default impls).
	Default bool
}

type Table struct {
	Name            string // catalog identifier
	ParentTableName string // interleaving parent, empty for root tables
	SnakeName       string
	UpperSnakeName  string
	PascalName      string
	Columns         []*Column // ordered by OrdinalPosition
	Indexes         []*Index  // secondary indexes only
	PrimaryKeys     []*PrimaryKey
	CompositeKey    bool
	Options         Options
}

// HasParent reports whether the table is interleaved in (or a child of) another table.
func (t *Table) HasParent() bool {
	return t.ParentTableName != ""
}

// Column looks up a column by its catalog name.
func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

type Column struct {
	Name                 string // catalog identifier
	OrdinalPosition      int64
	NativeType           string // normalized by the dialect, e.g. "ARRAY<INT64>"
	Nullable             bool
	PrimaryKey           bool
	Generated            bool
	AllowCommitTimestamp bool
	SnakeName            string
	UpperSnakeName       string
	PascalName           string
	CustomType           string // target type override, empty when unset
}

type Index struct {
	Name    string
	Unique  bool
	Columns []IndexColumn // key columns ordered by Position
	Storing []string      // non-key columns stored in the index
}

type IndexColumn struct {
	Name       string
	Position   int64
	Expression bool // key part is an expression, Name is ExpressionName
}

// ExpressionName stands in for the name of an expression key part.
const ExpressionName = "<expression>"

// PrimaryKey is one primary-key column with the key prefix that ends at it.
type PrimaryKey struct {
	Column *Column
	// Uppers holds the key columns up to and including Column, in key order.
	Uppers   []*Column
	Last     bool
	Position int // 1-based position within the key
}

// Raw catalog rows, as returned by the Reader.

type RawTable struct {
	Name       string
	ParentName string
}

type RawColumn struct {
	Name                 string
	OrdinalPosition      int64
	Nullable             bool
	NativeType           string
	PrimaryKey           bool
	Generated            bool
	AllowCommitTimestamp bool
}

type RawIndex struct {
	Name    string
	Unique  bool
	Columns []RawIndexColumn
}

type RawIndexColumn struct {
	Name       string
	Position   int64
	Valid      bool // false for storing columns, which have no key position
	Expression bool
}

// Snapshot is one consistent read of the catalog.
type Snapshot struct {
	Tables  []RawTable
	Columns map[string][]RawColumn // keyed by table name
	Indexes map[string][]RawIndex  // keyed by table name
}
