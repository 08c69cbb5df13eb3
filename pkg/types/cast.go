package types

import (
	"strconv"

	"github.com/kgcyyds/miniob-2024/pkg/errkind"
)

// CastTo converts value to target. NULL casts to NULL of any target
// type. Casting a value to its own type is a no-op copy. Unsupported
// conversions (e.g. CHARS -> DATE or CHARS -> INT with unparsable
// content, or DATE -> INT) surface as a Schema error, matching the
// source's Value::cast_to contract.
func CastTo(value Value, target Type) (Value, error) {
	if value.IsNull() {
		return Nil, nil
	}
	if value.Type() == target {
		return value, nil
	}

	switch target {
	case Int:
		return castToInt(value)
	case Float:
		return castToFloat(value)
	case Chars:
		return NewChars(value.String(), len(value.String())), nil
	case Date:
		return castToDate(value)
	case Bool:
		return castToBool(value)
	default:
		return nil, errkind.New(errkind.Schema, errkind.CodeSchemaFieldTypeMismatch,
			"cannot cast to "+target.String())
	}
}

func castToInt(value Value) (Value, error) {
	switch v := value.(type) {
	case IntValue:
		return v, nil
	case FloatValue:
		return NewInt(int32(v.V)), nil
	case CharsValue:
		n, err := strconv.ParseInt(v.V, 10, 32)
		if err != nil {
			return nil, errkind.New(errkind.Schema, errkind.CodeSchemaFieldTypeMismatch,
				"cannot cast '"+v.V+"' to INT")
		}
		return NewInt(int32(n)), nil
	default:
		return nil, errkind.New(errkind.Schema, errkind.CodeSchemaFieldTypeMismatch,
			"cannot cast "+value.Type().String()+" to INT")
	}
}

func castToFloat(value Value) (Value, error) {
	switch v := value.(type) {
	case IntValue:
		return NewFloat(float32(v.V)), nil
	case FloatValue:
		return v, nil
	case CharsValue:
		f, err := strconv.ParseFloat(v.V, 32)
		if err != nil {
			return nil, errkind.New(errkind.Schema, errkind.CodeSchemaFieldTypeMismatch,
				"cannot cast '"+v.V+"' to FLOAT")
		}
		return NewFloat(float32(f)), nil
	default:
		return nil, errkind.New(errkind.Schema, errkind.CodeSchemaFieldTypeMismatch,
			"cannot cast "+value.Type().String()+" to FLOAT")
	}
}

func castToDate(value Value) (Value, error) {
	cv, ok := value.(CharsValue)
	if !ok {
		return nil, errkind.New(errkind.Schema, errkind.CodeSchemaFieldTypeMismatch,
			"cannot cast "+value.Type().String()+" to DATE")
	}
	return ParseDate(cv.V, 0, 0)
}

func castToBool(value Value) (Value, error) {
	switch v := value.(type) {
	case BoolValue:
		return v, nil
	case IntValue:
		return NewBool(v.V != 0), nil
	case CharsValue:
		return NewBool(v.V != "" && v.V != "0"), nil
	default:
		return nil, errkind.New(errkind.Schema, errkind.CodeSchemaFieldTypeMismatch,
			"cannot cast "+value.Type().String()+" to BOOL")
	}
}
