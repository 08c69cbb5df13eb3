package types

import "github.com/kgcyyds/miniob-2024/pkg/errkind"

// divZeroEpsilon is the magnitude below which a FLOAT divisor is treated
// as zero, per §4.2.
const divZeroEpsilon = 1e-6

// ArithResultType implements the result-type rule of §4.2 exactly: NULL
// if either side is NULL-typed, else FLOAT if either side is FLOAT or the
// operator is division, else INT.
func ArithResultType(left, right Type, isDiv bool) Type {
	if left == Null || right == Null {
		return Null
	}
	if left == Float || right == Float || isDiv {
		return Float
	}
	return Int
}

// Add, Subtract, Multiply implement the three non-division arithmetic
// operators. Both operands must already be numeric and of the same
// promoted type (callers cast beforehand per ArithResultType); mixed
// numeric inputs are promoted to float here as a convenience.
func Add(a, b Value) (Value, error) { return numericOp(a, b, func(x, y float64) float64 { return x + y }) }
func Subtract(a, b Value) (Value, error) {
	return numericOp(a, b, func(x, y float64) float64 { return x - y })
}
func Multiply(a, b Value) (Value, error) {
	return numericOp(a, b, func(x, y float64) float64 { return x * y })
}

// Divide implements DIV. Division by an integer zero, or a float divisor
// with |value| < 1e-6, yields NULL rather than an error -- this is a
// row-local soft failure, never a Go error, per §4.2/§7.
func Divide(a, b Value) (Value, error) {
	if bi, ok := b.(IntValue); ok && bi.V == 0 {
		return Nil, nil
	}
	if bf, ok := b.(FloatValue); ok && bf.V > -divZeroEpsilon && bf.V < divZeroEpsilon {
		return Nil, nil
	}
	if !a.Type().IsNumeric() || !b.Type().IsNumeric() {
		return nil, errkind.New(errkind.Schema, errkind.CodeSchemaFieldTypeMismatch, "DIV requires numeric operands")
	}
	return NewFloat(float32(asFloat64(a) / asFloat64(b))), nil
}

// Negate implements unary NEGATIVE, inheriting the operand's type.
func Negate(a Value) (Value, error) {
	switch v := a.(type) {
	case IntValue:
		return NewInt(-v.V), nil
	case FloatValue:
		return NewFloat(-v.V), nil
	default:
		return nil, errkind.New(errkind.Schema, errkind.CodeSchemaFieldTypeMismatch, "NEGATIVE requires a numeric operand")
	}
}

func numericOp(a, b Value, f func(x, y float64) float64) (Value, error) {
	if !a.Type().IsNumeric() || !b.Type().IsNumeric() {
		return nil, errkind.New(errkind.Schema, errkind.CodeSchemaFieldTypeMismatch, "arithmetic requires numeric operands")
	}
	result := f(asFloat64(a), asFloat64(b))
	if a.Type() == Float || b.Type() == Float {
		return NewFloat(float32(result)), nil
	}
	return NewInt(int32(result)), nil
}
