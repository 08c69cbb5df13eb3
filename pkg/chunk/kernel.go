package chunk

import (
	"github.com/kgcyyds/miniob-2024/pkg/errkind"
	"github.com/kgcyyds/miniob-2024/pkg/primitives"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// binary applies f element-wise over left and right, honoring the
// broadcast rule: a CONSTANT column supplies the same value at every
// logical position. Both columns must agree on the chunk's logical
// length (checked via the caller-supplied length, not re-derived).
func binary(length int, left, right Column, f func(a, b types.Value) (types.Value, error)) (Column, error) {
	out := make([]types.Value, length)
	for i := 0; i < length; i++ {
		v, err := f(left.At(i), right.At(i))
		if err != nil {
			return Column{}, err
		}
		out[i] = v
	}
	return NewNormalColumn(out), nil
}

// AddColumns, SubtractColumns, MultiplyColumns, DivideColumns are the
// vectorized counterparts of pkg/types's scalar arithmetic kernels,
// applied cell-by-cell with the same NULL and divide-by-zero rules
// (§4.2).
func AddColumns(length int, left, right Column) (Column, error) {
	return binary(length, left, right, addWithNull)
}

func SubtractColumns(length int, left, right Column) (Column, error) {
	return binary(length, left, right, subWithNull)
}

func MultiplyColumns(length int, left, right Column) (Column, error) {
	return binary(length, left, right, mulWithNull)
}

func DivideColumns(length int, left, right Column) (Column, error) {
	return binary(length, left, right, divWithNull)
}

func addWithNull(a, b types.Value) (types.Value, error) {
	if a.IsNull() || b.IsNull() {
		return types.Nil, nil
	}
	return types.Add(a, b)
}

func subWithNull(a, b types.Value) (types.Value, error) {
	if a.IsNull() || b.IsNull() {
		return types.Nil, nil
	}
	return types.Subtract(a, b)
}

func mulWithNull(a, b types.Value) (types.Value, error) {
	if a.IsNull() || b.IsNull() {
		return types.Nil, nil
	}
	return types.Multiply(a, b)
}

func divWithNull(a, b types.Value) (types.Value, error) {
	if a.IsNull() || b.IsNull() {
		return types.Nil, nil
	}
	return types.Divide(a, b)
}

// CompareColumns evaluates op element-wise, returning a NORMAL column of
// BoolValue (or NullValue where either operand is NULL, per the
// three-valued-logic rule resolved to boolean at the predicate layer,
// §4.3/§4.4).
func CompareColumns(length int, left, right Column, op primitives.CompOp) (Column, error) {
	return binary(length, left, right, func(a, b types.Value) (types.Value, error) {
		if a.IsNull() || b.IsNull() {
			return types.Nil, nil
		}
		if op == primitives.Equals {
			return types.NewBool(a.Equals(b)), nil
		}
		cmp, err := types.Compare(a, b)
		if err != nil {
			return nil, err
		}
		return types.NewBool(op.FromCompareResult(cmp)), nil
	})
}

// SelectBool extracts the row indices where col holds a true BoolValue,
// used to materialize a Filter operator's output positions from a
// columnar predicate evaluation. NULL and false are both excluded, per
// the three-valued-logic-to-boolean collapse.
func SelectBool(length int, col Column) ([]int, error) {
	indices := make([]int, 0, length)
	for i := 0; i < length; i++ {
		v := col.At(i)
		bv, ok := v.(types.BoolValue)
		if !ok {
			if v.IsNull() {
				continue
			}
			return nil, errkind.New(errkind.Internal, "INTERNAL", "SelectBool on non-boolean column")
		}
		if bv.V {
			indices = append(indices, i)
		}
	}
	return indices, nil
}
