package ir

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Value is a sealed interface over the per-primitive constants a Literal
// can carry. Only the value types in this package implement it, which
// keeps type switches over literal payloads exhaustive.
//
// All value types are plain Go values with no interior pointers (Decimal
// is immutable), so sharing a Value between literal copies is safe.
type Value interface {
	literalValue() // Sealed - only these types implement it
	render() string
}

// BoolValue carries a boolean constant.
type BoolValue bool

func (BoolValue) literalValue() {}

func (v BoolValue) render() string { return strconv.FormatBool(bool(v)) }

// IntValue carries an integer constant. Always int64 in memory regardless
// of the literal's declared width.
type IntValue int64

func (IntValue) literalValue() {}

func (v IntValue) render() string { return strconv.FormatInt(int64(v), 10) }

// FloatValue carries a floating-point constant. Always float64 in memory
// regardless of the literal's declared width.
type FloatValue float64

func (FloatValue) literalValue() {}

func (v FloatValue) render() string { return strconv.FormatFloat(float64(v), 'g', -1, 64) }

// DecimalValue carries a fixed-point constant.
type DecimalValue decimal.Decimal

func (DecimalValue) literalValue() {}

func (v DecimalValue) render() string { return decimal.Decimal(v).String() }

// StringValue carries a string constant.
type StringValue string

func (StringValue) literalValue() {}

func (v StringValue) render() string { return strconv.Quote(string(v)) }

// DateValue carries a calendar date as days since the epoch.
type DateValue int64

func (DateValue) literalValue() {}

func (v DateValue) render() string { return strconv.FormatInt(int64(v), 10) + "d" }

// TimeValue carries a time of day as milliseconds since midnight.
type TimeValue int64

func (TimeValue) literalValue() {}

func (v TimeValue) render() string { return strconv.FormatInt(int64(v), 10) + "ms" }

// TimestampValue carries a point in time as milliseconds since the epoch.
type TimestampValue int64

func (TimestampValue) literalValue() {}

func (v TimestampValue) render() string { return strconv.FormatInt(int64(v), 10) + "ms" }

// IntervalValue carries a day-seconds interval in milliseconds.
type IntervalValue int64

func (IntervalValue) literalValue() {}

func (v IntervalValue) render() string { return strconv.FormatInt(int64(v), 10) + "ms" }
