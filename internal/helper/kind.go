package helper

import (
	"strings"

	"table-gen/internal/dialect"
)

// Kind is the closed set of value kinds the type mapping knows about.
// Anything unrecognized is a KindString.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindDate
	KindTimestamp
	KindFloat64
	KindNumeric
	KindBytes
	KindInt64
)

var kindNames = [...]string{
	KindString:    "string",
	KindBool:      "bool",
	KindDate:      "date",
	KindTimestamp: "timestamp",
	KindFloat64:   "float64",
	KindNumeric:   "numeric",
	KindBytes:     "bytes",
	KindInt64:     "int64",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindString]
	}
	return kindNames[k]
}

var kinds = map[string]Kind{
	dialect.TypeBool:      KindBool,
	dialect.TypeDate:      KindDate,
	dialect.TypeTimestamp: KindTimestamp,
	dialect.TypeFloat64:   KindFloat64,
	dialect.TypeNumeric:   KindNumeric,
	dialect.TypeBytes:     KindBytes,
	dialect.TypeInt64:     KindInt64,
}

// Type is a parsed native type. A non-nil Elem makes it an array of Elem.
type Type struct {
	Kind Kind
	Elem *Type
}

// IsArray reports whether the type is an array wrapper.
func (t Type) IsArray() bool { return t.Elem != nil }

// ParseType parses a native catalog type such as "STRING(MAX)", "BYTES(16)"
// or "ARRAY<TIMESTAMP>". It never fails: unknown spellings are strings.
func ParseType(native string) Type {
	upper := strings.ToUpper(strings.TrimSpace(native))
	switch {
	case strings.HasPrefix(upper, "ARRAY<") && strings.HasSuffix(upper, ">"):
		elem := ParseType(upper[len("ARRAY<") : len(upper)-1])
		return Type{Elem: &elem}
	case strings.HasSuffix(upper, "[]"):
		elem := ParseType(upper[:len(upper)-2])
		return Type{Elem: &elem}
	}
	return Type{Kind: kinds[dialect.DefaultNormalizeType(upper)]}
}
