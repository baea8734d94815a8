package helper

import (
	"hash/fnv"
	"strconv"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"table-gen/internal/schema"
)

var (
	fixtureStart = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	fixtureEnd   = time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC)
)

// sample is one generated value before it is spelled as a literal.
type sample struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	t    time.Time
	s    string
}

// seed derives a stable, non-zero faker seed from the column identity.
// gofakeit treats seed 0 as "random".
func seed(c *schema.Column) int64 {
	h := fnv.New64a()
	h.Write([]byte(c.Name))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatInt(c.OrdinalPosition, 10)))
	s := int64(h.Sum64() >> 1)
	if s == 0 {
		s = 1
	}
	return s
}

// Fixture returns a sample literal for the column in the target's syntax.
// The value depends only on the column's name, position and type.
func (p *Target) Fixture(c *schema.Column) string {
	if c == nil {
		return p.nullZero
	}
	if c.CustomType != "" {
		if p.Name == Go.Name {
			return "*new(" + c.CustomType + ")"
		}
		return "Default::default()"
	}

	t := ParseType(c.NativeType)
	f := gofakeit.New(seed(c))
	lit := p.fixtureLiteral(f, t, Meaning(c.Name))
	if !c.Nullable {
		return lit
	}
	if some := p.some(t, lit); some != "" {
		return some
	}
	return p.nullZero
}

func (p *Target) fixtureLiteral(f *gofakeit.Faker, t Type, meaning string) string {
	if t.IsArray() {
		elems := []string{
			p.fixtureLiteral(f, *t.Elem, meaning),
			p.fixtureLiteral(f, *t.Elem, meaning),
		}
		return p.seqLiteral(p.TypeName(*t.Elem), elems)
	}
	return p.literal(sampleOf(f, t.Kind, meaning))
}

func sampleOf(f *gofakeit.Faker, k Kind, meaning string) sample {
	v := sample{kind: k}
	switch k {
	case KindBool:
		v.b = f.Bool()
	case KindInt64:
		switch category(meaning) {
		case "year":
			v.i = int64(f.Number(2000, 2025))
		case "count":
			v.i = int64(f.Number(1, 100))
		default:
			v.i = int64(f.Number(1, 50000))
		}
	case KindFloat64:
		v.f = f.Price(0.99, 99.99)
	case KindNumeric:
		// cents
		v.i = int64(f.Number(99, 99999))
	case KindDate, KindTimestamp:
		v.t = f.DateRange(fixtureStart, fixtureEnd).UTC()
	case KindBytes:
		v.s = f.Word()
	default:
		v.s = sampleText(f, meaning)
	}
	return v
}

func sampleText(f *gofakeit.Faker, meaning string) string {
	switch category(meaning) {
	case "email":
		return f.Email()
	case "phone":
		return f.Phone()
	case "url":
		return f.URL()
	case "ip":
		return f.IPv4Address()
	case "zipcode":
		return f.Zip()
	case "address":
		return f.Street()
	case "city":
		return f.City()
	case "country":
		return f.Country()
	case "password":
		return f.Password(true, true, true, false, false, 12)
	case "username":
		return f.Username()
	case "company":
		return f.Company()
	case "name":
		return f.Name()
	case "title":
		return f.Sentence(3)
	case "text":
		return f.Sentence(8)
	case "year":
		return strconv.Itoa(f.Number(2000, 2025))
	case "id":
		// v4 layout, drawn from the seeded source so it stays stable
		if id, err := uuid.NewRandomFromReader(f.Rand); err == nil {
			return id.String()
		}
	}
	return f.Word()
}

func goLiteral(v sample) string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt64:
		return strconv.FormatInt(v.i, 10)
	case KindFloat64:
		return strconv.FormatFloat(v.f, 'f', 2, 64)
	case KindNumeric:
		return "*big.NewRat(" + strconv.FormatInt(v.i, 10) + ", 100)"
	case KindDate:
		return "civil.Date{Year: " + strconv.Itoa(v.t.Year()) + ", Month: time." + v.t.Month().String() +
			", Day: " + strconv.Itoa(v.t.Day()) + "}"
	case KindTimestamp:
		return "time.Date(" + strconv.Itoa(v.t.Year()) + ", time." + v.t.Month().String() + ", " +
			strconv.Itoa(v.t.Day()) + ", " + strconv.Itoa(v.t.Hour()) + ", " + strconv.Itoa(v.t.Minute()) + ", " +
			strconv.Itoa(v.t.Second()) + ", 0, time.UTC)"
	case KindBytes:
		return "[]byte(" + strconv.Quote(v.s) + ")"
	}
	return strconv.Quote(v.s)
}

func rustLiteral(v sample) string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt64:
		return strconv.FormatInt(v.i, 10)
	case KindFloat64:
		return strconv.FormatFloat(v.f, 'f', 2, 64)
	case KindNumeric:
		return "rust_decimal::Decimal::new(" + strconv.FormatInt(v.i, 10) + ", 2)"
	case KindDate:
		return "chrono::NaiveDate::from_ymd_opt(" + strconv.Itoa(v.t.Year()) + ", " +
			strconv.Itoa(int(v.t.Month())) + ", " + strconv.Itoa(v.t.Day()) + ").unwrap()"
	case KindTimestamp:
		return "chrono::TimeZone::with_ymd_and_hms(&chrono::Utc, " + strconv.Itoa(v.t.Year()) + ", " +
			strconv.Itoa(int(v.t.Month())) + ", " + strconv.Itoa(v.t.Day()) + ", " + strconv.Itoa(v.t.Hour()) + ", " +
			strconv.Itoa(v.t.Minute()) + ", " + strconv.Itoa(v.t.Second()) + ").unwrap()"
	case KindBytes:
		return "b" + rustQuote(v.s) + ".to_vec()"
	}
	return rustQuote(v.s) + ".to_string()"
}

var rustEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`, "\t", `\t`)

func rustQuote(s string) string {
	return `"` + rustEscaper.Replace(s) + `"`
}
