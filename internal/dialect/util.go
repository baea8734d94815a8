package dialect

import (
	"strings"
)

// Canonical type names. Every dialect normalizes its native spelling to one of
// these (or leaves it upper-cased) so the type mapping only has to know one vocabulary.
const (
	TypeBool      = "BOOL"
	TypeDate      = "DATE"
	TypeTimestamp = "TIMESTAMP"
	TypeFloat64   = "FLOAT64"
	TypeNumeric   = "NUMERIC"
	TypeBytes     = "BYTES"
	TypeInt64     = "INT64"
)

var canonicalTypes = map[string]string{
	"bool":    TypeBool,
	"boolean": TypeBool,
	"bit":     TypeBool,

	"date": TypeDate,

	"timestamp":                   TypeTimestamp,
	"timestamptz":                 TypeTimestamp,
	"timestamp with time zone":    TypeTimestamp,
	"timestamp without time zone": TypeTimestamp,
	"datetime":                    TypeTimestamp,
	"datetime2":                   TypeTimestamp,
	"datetimeoffset":              TypeTimestamp,
	"smalldatetime":               TypeTimestamp,

	"float64":          TypeFloat64,
	"float":            TypeFloat64,
	"float4":           TypeFloat64,
	"float8":           TypeFloat64,
	"real":             TypeFloat64,
	"double":           TypeFloat64,
	"double precision": TypeFloat64,
	"binary_float":     TypeFloat64,
	"binary_double":    TypeFloat64,

	"numeric":    TypeNumeric,
	"decimal":    TypeNumeric,
	"money":      TypeNumeric,
	"smallmoney": TypeNumeric,

	"bytes":      TypeBytes,
	"bytea":      TypeBytes,
	"blob":       TypeBytes,
	"tinyblob":   TypeBytes,
	"mediumblob": TypeBytes,
	"longblob":   TypeBytes,
	"binary":     TypeBytes,
	"varbinary":  TypeBytes,
	"image":      TypeBytes,
	"raw":        TypeBytes,

	"int64":     TypeInt64,
	"int":       TypeInt64,
	"integer":   TypeInt64,
	"bigint":    TypeInt64,
	"smallint":  TypeInt64,
	"tinyint":   TypeInt64,
	"mediumint": TypeInt64,
	"int2":      TypeInt64,
	"int4":      TypeInt64,
	"int8":      TypeInt64,
}

// stripTypeParams drops size and precision arguments, e.g. "varchar(255)" -> "varchar".
func stripTypeParams(sqlType string) string {
	if i := strings.IndexByte(sqlType, '('); i >= 0 {
		sqlType = sqlType[:i]
	}
	return strings.TrimSpace(sqlType)
}

// DefaultNormalizeType maps a native type onto the canonical vocabulary.
// Unknown types are returned upper-cased with their parameters intact.
func DefaultNormalizeType(sqlType string) string {
	t := strings.TrimSpace(sqlType)
	base := strings.ToLower(stripTypeParams(t))
	base = strings.TrimSpace(strings.TrimSuffix(base, " unsigned"))
	if canonical, ok := canonicalTypes[base]; ok {
		return canonical
	}
	return strings.ToUpper(t)
}

// DefaultGetSchemaName is a default implementation for Getting Schema Name (identity).
func DefaultGetSchemaName(input string) string {
	return input
}

// wrapArray renders the canonical array spelling for an element type.
func wrapArray(elem string) string {
	return "ARRAY<" + elem + ">"
}
