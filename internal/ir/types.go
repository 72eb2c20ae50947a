package ir

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// TypeKind tags the closed set of value types the IR supports.
type TypeKind uint8

const (
	// KindUnknown is the type of nodes whose type has not been resolved.
	KindUnknown TypeKind = iota

	// KindVoid is the result type of pure side-effect operations.
	KindVoid

	// KindBool is SQL BOOLEAN.
	KindBool

	// KindInt covers the integer widths (16, 32, 64 bits).
	KindInt

	// KindFloat covers the floating-point widths (32, 64 bits).
	KindFloat

	// KindDecimal is fixed-point DECIMAL(precision, scale).
	KindDecimal

	// KindString is CHAR/VARCHAR with bounded or unbounded precision.
	KindString

	// KindDate is a calendar date, stored as days since the epoch.
	KindDate

	// KindTime is a time of day, stored as milliseconds since midnight.
	KindTime

	// KindTimestamp is a point in time, stored as milliseconds since the epoch.
	KindTimestamp

	// KindIntervalMillis is the SQL day-seconds interval.
	// Always stores the interval value in milliseconds.
	KindIntervalMillis

	// KindRow is a composite of ordered column types.
	KindRow
)

// String returns the lowercase tag used in serialized documents.
func (k TypeKind) String() string {
	switch k {
	case KindUnknown:
		return "unknown"
	case KindVoid:
		return "void"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindDecimal:
		return "decimal"
	case KindString:
		return "string"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	case KindTimestamp:
		return "timestamp"
	case KindIntervalMillis:
		return "interval_millis"
	case KindRow:
		return "row"
	default:
		return fmt.Sprintf("TypeKind(%d)", k)
	}
}

// UnlimitedPrecision marks a string type with no length bound.
const UnlimitedPrecision = -1

// Type is a tagged variant over the closed kind set. Types are immutable
// values constructed once per distinct shape and freely shared; they carry
// no back-pointers, so sharing is always safe.
//
// Only the fields relevant to Kind are meaningful; constructors leave the
// others zero so that structural comparison can compare all fields.
type Type struct {
	Kind     TypeKind
	Nullable bool

	// Width is the bit width for KindInt (16/32/64) and KindFloat (32/64).
	Width int

	// Precision is the maximum length for KindString (UnlimitedPrecision
	// when unbounded) and the total digit count for KindDecimal.
	Precision int

	// Scale is the fractional digit count for KindDecimal.
	Scale int

	// Fields are the ordered column types for KindRow.
	Fields []Type
}

// Unknown returns the unresolved type. Never nullable.
func Unknown() Type { return Type{Kind: KindUnknown} }

// Void returns the type of pure side-effect operations. Never nullable.
func Void() Type { return Type{Kind: KindVoid} }

// Bool returns the boolean type.
func Bool(nullable bool) Type { return Type{Kind: KindBool, Nullable: nullable} }

// Int16 returns the 16-bit integer type.
func Int16(nullable bool) Type { return Type{Kind: KindInt, Nullable: nullable, Width: 16} }

// Int32 returns the 32-bit integer type.
func Int32(nullable bool) Type { return Type{Kind: KindInt, Nullable: nullable, Width: 32} }

// Int64 returns the 64-bit integer type.
func Int64(nullable bool) Type { return Type{Kind: KindInt, Nullable: nullable, Width: 64} }

// Float32 returns the 32-bit floating-point type.
func Float32(nullable bool) Type { return Type{Kind: KindFloat, Nullable: nullable, Width: 32} }

// Float64 returns the 64-bit floating-point type.
func Float64(nullable bool) Type { return Type{Kind: KindFloat, Nullable: nullable, Width: 64} }

// Decimal returns the DECIMAL(precision, scale) type.
func Decimal(precision, scale int, nullable bool) Type {
	return Type{Kind: KindDecimal, Nullable: nullable, Precision: precision, Scale: scale}
}

// String returns the string type with the given precision bound.
// Pass UnlimitedPrecision for an unbounded string.
func String(precision int, nullable bool) Type {
	return Type{Kind: KindString, Nullable: nullable, Precision: precision}
}

// Date returns the calendar-date type.
func Date(nullable bool) Type { return Type{Kind: KindDate, Nullable: nullable} }

// Time returns the time-of-day type.
func Time(nullable bool) Type { return Type{Kind: KindTime, Nullable: nullable} }

// Timestamp returns the point-in-time type.
func Timestamp(nullable bool) Type { return Type{Kind: KindTimestamp, Nullable: nullable} }

// IntervalMillis returns the day-seconds interval type.
func IntervalMillis(nullable bool) Type { return Type{Kind: KindIntervalMillis, Nullable: nullable} }

// Row returns the composite type over the given ordered column types.
func Row(fields ...Type) Type { return Type{Kind: KindRow, Fields: fields} }

// WithNullable returns a copy of t with the nullability flag set to
// nullable, preserving all other attributes. Returns t unchanged when the
// flag already matches, so callers can rely on equality fast paths.
func (t Type) WithNullable(nullable bool) Type {
	if t.Nullable == nullable {
		return t
	}
	t.Nullable = nullable
	return t
}

// SameType reports whether t and other are the same type: kind tags,
// kind-specific parameters, and nullability all match. Comparison is
// purely structural, never identity-based.
func (t Type) SameType(other Type) bool {
	if t.Kind != other.Kind || t.Nullable != other.Nullable {
		return false
	}
	if t.Width != other.Width || t.Precision != other.Precision || t.Scale != other.Scale {
		return false
	}
	if len(t.Fields) != len(other.Fields) {
		return false
	}
	for i := range t.Fields {
		if !t.Fields[i].SameType(other.Fields[i]) {
			return false
		}
	}
	return true
}

// String renders the type for diagnostics, e.g. "int32?", "varchar(10)".
func (t Type) String() string {
	var b strings.Builder
	switch t.Kind {
	case KindInt, KindFloat:
		fmt.Fprintf(&b, "%s%d", t.Kind, t.Width)
	case KindDecimal:
		fmt.Fprintf(&b, "decimal(%d,%d)", t.Precision, t.Scale)
	case KindString:
		if t.Precision == UnlimitedPrecision {
			b.WriteString("string")
		} else {
			fmt.Fprintf(&b, "varchar(%d)", t.Precision)
		}
	case KindRow:
		b.WriteString("row(")
		for i, f := range t.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.String())
		}
		b.WriteString(")")
	default:
		b.WriteString(t.Kind.String())
	}
	if t.Nullable {
		b.WriteString("?")
	}
	return b.String()
}

// Zero returns the additive identity of t as a literal, or an
// UnsupportedOperationError for kinds where zero is not meaningful.
func (t Type) Zero() (*Literal, error) {
	switch t.Kind {
	case KindBool:
		return newTypedLiteral(t, BoolValue(false)), nil
	case KindInt:
		return newTypedLiteral(t, IntValue(0)), nil
	case KindFloat:
		return newTypedLiteral(t, FloatValue(0)), nil
	case KindDecimal:
		return newTypedLiteral(t, DecimalValue(decimal.Zero)), nil
	case KindString:
		return newTypedLiteral(t, StringValue("")), nil
	case KindDate:
		return newTypedLiteral(t, DateValue(0)), nil
	case KindTime:
		return newTypedLiteral(t, TimeValue(0)), nil
	case KindTimestamp:
		return newTypedLiteral(t, TimestampValue(0)), nil
	case KindIntervalMillis:
		return newTypedLiteral(t, IntervalValue(0)), nil
	default:
		return nil, unsupported("zero", t)
	}
}

// One returns the multiplicative identity of t as a literal, or an
// UnsupportedOperationError for kinds where one is not meaningful
// (an interval, for example, has no multiplicative identity).
func (t Type) One() (*Literal, error) {
	switch t.Kind {
	case KindBool:
		return newTypedLiteral(t, BoolValue(true)), nil
	case KindInt:
		return newTypedLiteral(t, IntValue(1)), nil
	case KindFloat:
		return newTypedLiteral(t, FloatValue(1)), nil
	case KindDecimal:
		return newTypedLiteral(t, DecimalValue(decimal.New(1, 0))), nil
	default:
		return nil, unsupported("one", t)
	}
}

// Min returns the smallest representable value of t as a literal, or an
// UnsupportedOperationError where no minimum is defined.
func (t Type) Min() (*Literal, error) {
	switch t.Kind {
	case KindBool:
		return newTypedLiteral(t, BoolValue(false)), nil
	case KindInt:
		switch t.Width {
		case 16:
			return newTypedLiteral(t, IntValue(math.MinInt16)), nil
		case 32:
			return newTypedLiteral(t, IntValue(math.MinInt32)), nil
		case 64:
			return newTypedLiteral(t, IntValue(math.MinInt64)), nil
		}
		return nil, unsupported("min", t)
	case KindFloat:
		switch t.Width {
		case 32:
			return newTypedLiteral(t, FloatValue(-math.MaxFloat32)), nil
		case 64:
			return newTypedLiteral(t, FloatValue(-math.MaxFloat64)), nil
		}
		return nil, unsupported("min", t)
	default:
		return nil, unsupported("min", t)
	}
}

// Max returns the largest representable value of t as a literal, or an
// UnsupportedOperationError where no maximum is defined.
func (t Type) Max() (*Literal, error) {
	switch t.Kind {
	case KindBool:
		return newTypedLiteral(t, BoolValue(true)), nil
	case KindInt:
		switch t.Width {
		case 16:
			return newTypedLiteral(t, IntValue(math.MaxInt16)), nil
		case 32:
			return newTypedLiteral(t, IntValue(math.MaxInt32)), nil
		case 64:
			return newTypedLiteral(t, IntValue(math.MaxInt64)), nil
		}
		return nil, unsupported("max", t)
	case KindFloat:
		switch t.Width {
		case 32:
			return newTypedLiteral(t, FloatValue(math.MaxFloat32)), nil
		case 64:
			return newTypedLiteral(t, FloatValue(math.MaxFloat64)), nil
		}
		return nil, unsupported("max", t)
	default:
		return nil, unsupported("max", t)
	}
}

// DefaultValue returns the literal a column of type t is initialized to:
// a null literal when t is nullable, otherwise the zero of t.
func (t Type) DefaultValue() (*Literal, error) {
	if t.Nullable {
		return NullLiteral(EmptyProvenance, t), nil
	}
	return t.Zero()
}
