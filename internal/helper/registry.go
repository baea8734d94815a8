// Package helper holds the pure functions templates call by name: type
// mapping, default values, call-site type rewrites, case conversion and
// sample fixtures. A Registry binds them to one target language.
package helper

import (
	"strconv"
	"strings"
	"text/template"

	"github.com/go-openapi/inflect"

	"table-gen/internal/naming"
	"table-gen/internal/schema"
)

// Registry is the function bundle handed to every render of one session.
// It has no mutable state and is safe for concurrent use.
type Registry struct {
	target *Target
}

// New returns a Registry for the given profile; nil means Go.
func New(t *Target) *Registry {
	if t == nil {
		t = Go
	}
	return &Registry{target: t}
}

func (r *Registry) Target() *Target { return r.target }

// Type maps a native catalog type to the target type name.
func (r *Registry) Type(native string) string {
	return r.target.TypeName(ParseType(native))
}

// ColumnType is the column's custom type when one is configured, else its mapped type.
func (r *Registry) ColumnType(c *schema.Column) string {
	if c == nil {
		return r.target.types[KindString]
	}
	if c.CustomType != "" {
		return c.CustomType
	}
	return r.Type(c.NativeType)
}

// FieldType is ColumnType wrapped in the target's optional form for nullable columns.
func (r *Registry) FieldType(c *schema.Column) string {
	typ := r.ColumnType(c)
	if c == nil || !c.Nullable || c.CustomType != "" {
		return typ
	}
	return r.target.optional(ParseType(c.NativeType), typ)
}

// DefaultValue is the initial value expression for a field. Non-nullable
// date and timestamp fields start at "now".
func (r *Registry) DefaultValue(nullable bool, native string) string {
	if nullable {
		return r.target.nullZero
	}
	t := ParseType(native)
	if !t.IsArray() {
		if now, ok := r.target.now[t.Kind]; ok {
			return now
		}
	}
	return r.target.zeroValue(t)
}

// CallerType rewrites a type into its call-site form, e.g. Vec<u8> -> Vec::<u8> in Rust.
func (r *Registry) CallerType(typ string) string {
	return r.target.callerType(typ)
}

// ParamType is the type used when a value of typ is passed as an argument.
func (r *Registry) ParamType(typ string) string {
	if p, ok := r.target.paramTypes[typ]; ok {
		return p
	}
	return typ
}

func (r *Registry) Fixture(c *schema.Column) string {
	return r.target.Fixture(c)
}

// FuncMap exposes the registry to text/template. Target specific aliases
// (go_type, rust_type, rust_caller_type, ...) are registered alongside the
// generic names.
func (r *Registry) FuncMap() template.FuncMap {
	return template.FuncMap{
		"type":                         r.Type,
		r.target.Name + "_type":        r.Type,
		"column_type":                  r.ColumnType,
		"field_type":                   r.FieldType,
		"default_value":                r.DefaultValue,
		"caller_type":                  r.CallerType,
		r.target.Name + "_caller_type": r.CallerType,
		"param_type":                   r.ParamType,
		"ident":                        r.target.Ident,
		"keyword":                      r.target.IsKeyword,
		"fixture":                      r.Fixture,
		"snake":                        naming.Snake,
		"upper_snake":                  naming.UpperSnake,
		"pascal":                       naming.Pascal,
		"camel":                        naming.Camel,
		"plural":                       inflect.Pluralize,
		"singular":                     inflect.Singularize,
		"quote":                        strconv.Quote,
		"join":                         join,
		"names":                        names,
	}
}

// join is strings.Join with the separator first, so it composes in pipelines:
// {{ names .Columns | join ", " }}.
func join(sep string, items []string) string {
	return strings.Join(items, sep)
}

func names(columns []*schema.Column) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		if c != nil {
			out[i] = c.Name
		}
	}
	return out
}
