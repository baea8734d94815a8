package helper

import (
	"fmt"
	"go/token"
	"strings"

	"table-gen/internal/naming"
)

// Target is a language profile: the spelling of every Kind plus the handful
// of expressions generated code needs around them.
type Target struct {
	Name string
	Ext  string // output extension, with the leading dot

	types map[Kind]string
	zero  map[Kind]string // non-nullable zero literals
	now   map[Kind]string // "now" expressions for non-nullable date/time kinds

	nullZero   string
	seqZero    string
	seq        func(elem string) string
	optional   func(t Type, typ string) string
	callerType func(typ string) string
	paramTypes map[string]string
	ident      func(name string) string
	keyword    func(ident string) bool

	literal    func(v sample) string
	seqLiteral func(elemType string, elems []string) string
	some       func(t Type, lit string) string // nullable fixture, "" falls back to nullZero
}

var Go = &Target{
	Name: "go",
	Ext:  ".go",
	types: map[Kind]string{
		KindString:    "string",
		KindBool:      "bool",
		KindDate:      "civil.Date",
		KindTimestamp: "time.Time",
		KindFloat64:   "float64",
		KindNumeric:   "big.Rat",
		KindBytes:     "[]byte",
		KindInt64:     "int64",
	},
	zero: map[Kind]string{
		KindString:    `""`,
		KindBool:      "false",
		KindDate:      "civil.Date{}",
		KindTimestamp: "time.Time{}",
		KindFloat64:   "0",
		KindNumeric:   "big.Rat{}",
		KindBytes:     "nil",
		KindInt64:     "0",
	},
	now: map[Kind]string{
		KindDate:      "civil.DateOf(time.Now())",
		KindTimestamp: "time.Now()",
	},
	nullZero: "nil",
	seqZero:  "nil",
	seq:      func(elem string) string { return "[]" + elem },
	optional: func(t Type, typ string) string {
		if t.IsArray() || t.Kind == KindBytes {
			return typ
		}
		return "*" + typ
	},
	callerType: func(typ string) string { return typ },
	paramTypes: map[string]string{
		"big.Rat": "*big.Rat",
	},
	ident:   naming.Camel,
	keyword: token.IsKeyword,
	literal: goLiteral,
	seqLiteral: func(elemType string, elems []string) string {
		return "[]" + elemType + "{" + strings.Join(elems, ", ") + "}"
	},
	some: func(t Type, lit string) string {
		if t.IsArray() || t.Kind == KindBytes {
			return lit
		}
		return ""
	},
}

var Rust = &Target{
	Name: "rust",
	Ext:  ".rs",
	types: map[Kind]string{
		KindString:    "String",
		KindBool:      "bool",
		KindDate:      "chrono::NaiveDate",
		KindTimestamp: "chrono::DateTime<chrono::Utc>",
		KindFloat64:   "f64",
		KindNumeric:   "rust_decimal::Decimal",
		KindBytes:     "Vec<u8>",
		KindInt64:     "i64",
	},
	zero: map[Kind]string{},
	now: map[Kind]string{
		KindDate:      "chrono::Utc::now().naive_utc().date()",
		KindTimestamp: "chrono::Utc::now()",
	},
	nullZero: "Default::default()",
	seqZero:  "Default::default()",
	seq:      func(elem string) string { return "Vec<" + elem + ">" },
	optional: func(_ Type, typ string) string { return "Option<" + typ + ">" },
	callerType: func(typ string) string {
		return strings.ReplaceAll(typ, "<", "::<")
	},
	paramTypes: map[string]string{
		"String": "&str",
	},
	ident:   naming.Snake,
	keyword: func(ident string) bool { return rustKeywords[ident] },
	literal: rustLiteral,
	seqLiteral: func(_ string, elems []string) string {
		return "vec![" + strings.Join(elems, ", ") + "]"
	},
	some: func(_ Type, lit string) string { return "Some(" + lit + ")" },
}

// Strict and reserved keywords of the 2021 edition.
var rustKeywords = map[string]bool{
	"as": true, "break": true, "const": true, "continue": true, "crate": true, "else": true,
	"enum": true, "extern": true, "false": true, "fn": true, "for": true, "if": true,
	"impl": true, "in": true, "let": true, "loop": true, "match": true, "mod": true,
	"move": true, "mut": true, "pub": true, "ref": true, "return": true, "self": true,
	"static": true, "struct": true, "super": true, "trait": true, "true": true, "type": true,
	"unsafe": true, "use": true, "where": true, "while": true, "async": true, "await": true,
	"dyn": true, "abstract": true, "become": true, "box": true, "do": true, "final": true,
	"macro": true, "override": true, "priv": true, "typeof": true, "unsized": true,
	"virtual": true, "yield": true, "try": true,
}

var targets = map[string]*Target{
	Go.Name:   Go,
	Rust.Name: Rust,
}

// LookupTarget resolves a profile by name. An empty name is Go.
func LookupTarget(name string) (*Target, error) {
	if name == "" {
		return Go, nil
	}
	t, ok := targets[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown target %q (supported: go, rust)", name)
	}
	return t, nil
}

// TypeName renders a parsed type in the profile's spelling.
func (p *Target) TypeName(t Type) string {
	if t.IsArray() {
		return p.seq(p.TypeName(*t.Elem))
	}
	return p.types[t.Kind]
}

// Ident turns a column name into a local identifier (Go camelCase, Rust
// snake_case). Keywords get a trailing underscore.
func (p *Target) Ident(name string) string {
	id := p.ident(name)
	if p.keyword(id) {
		return id + "_"
	}
	return id
}

// IsKeyword reports whether ident is reserved in the target language.
func (p *Target) IsKeyword(ident string) bool {
	return p.keyword(ident)
}

func (p *Target) zeroValue(t Type) string {
	if t.IsArray() {
		return p.seqZero
	}
	if z, ok := p.zero[t.Kind]; ok {
		return z
	}
	return p.nullZero
}
