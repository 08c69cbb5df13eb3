package types

import (
	"fmt"

	"github.com/kgcyyds/miniob-2024/pkg/primitives"
)

// Value is a tagged, immutable scalar. Every mutating-looking operation
// (CastTo, Add, ...) returns a new Value rather than mutating the
// receiver. One concrete struct exists per Type, mirroring the way the
// teacher models one Field struct per kind rather than a single variant
// struct with unused fields.
type Value interface {
	Type() Type
	IsNull() bool
	String() string
	Equals(other Value) bool
	Hash() (primitives.HashCode, error)
}

// IntValue holds a 32-bit signed integer.
type IntValue struct{ V int32 }

func NewInt(v int32) IntValue { return IntValue{V: v} }

func (v IntValue) Type() Type      { return Int }
func (v IntValue) IsNull() bool    { return false }
func (v IntValue) String() string  { return fmt.Sprintf("%d", v.V) }
func (v IntValue) Equals(o Value) bool {
	other, ok := o.(IntValue)
	return ok && other.V == v.V
}
func (v IntValue) Hash() (primitives.HashCode, error) {
	return primitives.HashCode(fnv32(uint32(v.V))), nil
}

// FloatValue holds a 32-bit IEEE float.
type FloatValue struct{ V float32 }

func NewFloat(v float32) FloatValue { return FloatValue{V: v} }

func (v FloatValue) Type() Type     { return Float }
func (v FloatValue) IsNull() bool   { return false }
func (v FloatValue) String() string { return formatFloat(v.V) }
func (v FloatValue) Equals(o Value) bool {
	other, ok := o.(FloatValue)
	return ok && other.V == v.V
}
func (v FloatValue) Hash() (primitives.HashCode, error) {
	bits := floatBits(v.V)
	return primitives.HashCode(fnv32(bits)), nil
}

// CharsValue holds a fixed-length-capacity byte string. Cap is the
// declared column capacity, not len(V); it is carried so callers can
// re-check length invariants without access to the schema.
type CharsValue struct {
	V   string
	Cap int
}

func NewChars(v string, cap int) CharsValue { return CharsValue{V: v, Cap: cap} }

func (v CharsValue) Type() Type     { return Chars }
func (v CharsValue) IsNull() bool   { return false }
func (v CharsValue) String() string { return v.V }
func (v CharsValue) Equals(o Value) bool {
	other, ok := o.(CharsValue)
	return ok && other.V == v.V
}
func (v CharsValue) Hash() (primitives.HashCode, error) {
	return primitives.HashCode(fnvString(v.V)), nil
}

// DateValue holds a gregorian date encoded as yyyy*10000 + mm*100 + dd.
type DateValue struct{ V int32 }

func NewDate(v int32) DateValue { return DateValue{V: v} }

func (v DateValue) Type() Type   { return Date }
func (v DateValue) IsNull() bool { return false }
func (v DateValue) String() string {
	y := v.V / 10000
	m := (v.V % 10000) / 100
	d := v.V % 100
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
}
func (v DateValue) Equals(o Value) bool {
	other, ok := o.(DateValue)
	return ok && other.V == v.V
}
func (v DateValue) Hash() (primitives.HashCode, error) {
	return primitives.HashCode(fnv32(uint32(v.V))), nil
}

// BoolValue holds the result of a comparison/conjunction. Never a
// declared column type.
type BoolValue struct{ V bool }

func NewBool(v bool) BoolValue { return BoolValue{V: v} }

func (v BoolValue) Type() Type   { return Bool }
func (v BoolValue) IsNull() bool { return false }
func (v BoolValue) String() string {
	if v.V {
		return "TRUE"
	}
	return "FALSE"
}
func (v BoolValue) Equals(o Value) bool {
	other, ok := o.(BoolValue)
	return ok && other.V == v.V
}
func (v BoolValue) Hash() (primitives.HashCode, error) {
	if v.V {
		return 1, nil
	}
	return 0, nil
}

// NullValue is the absent value. It carries no payload; NULL is never
// equal to anything under Equals, including another NULL, matching the
// ordinary-comparison rule in the spec (IS NULL is the only NULL-aware
// predicate and is implemented above the Value layer).
type NullValue struct{}

var Nil = NullValue{}

func (v NullValue) Type() Type       { return Null }
func (v NullValue) IsNull() bool     { return true }
func (v NullValue) String() string   { return "NULL" }
func (v NullValue) Equals(Value) bool { return false }
func (v NullValue) Hash() (primitives.HashCode, error) {
	return 0, nil
}
