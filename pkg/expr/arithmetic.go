package expr

import (
	"github.com/kgcyyds/miniob-2024/pkg/chunk"
	"github.com/kgcyyds/miniob-2024/pkg/tuple"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// ArithOp names a binary or unary arithmetic operator.
type ArithOp int

const (
	OpAdd ArithOp = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpNegate // unary; Right is unused
)

// ArithmeticExpr implements ADD/SUB/MUL/DIV/NEGATIVE with the NULL and
// result-type rules of §4.2, delegating the scalar math to pkg/types and
// the vectorized math to pkg/chunk.
type ArithmeticExpr struct {
	Op          ArithOp
	Left, Right Expression
	alias       string
}

func NewArithmeticExpr(op ArithOp, left, right Expression) *ArithmeticExpr {
	return &ArithmeticExpr{Op: op, Left: left, Right: right}
}

func (e *ArithmeticExpr) SetAlias(a string) { e.alias = a }

func (e *ArithmeticExpr) GetValue(t tuple.Tuple) (types.Value, error) {
	l, err := e.Left.GetValue(t)
	if err != nil {
		return nil, err
	}
	if e.Op == OpNegate {
		if l.IsNull() {
			return types.Nil, nil
		}
		return types.Negate(l)
	}
	r, err := e.Right.GetValue(t)
	if err != nil {
		return nil, err
	}
	if l.IsNull() || r.IsNull() {
		return types.Nil, nil
	}
	switch e.Op {
	case OpAdd:
		return types.Add(l, r)
	case OpSubtract:
		return types.Subtract(l, r)
	case OpMultiply:
		return types.Multiply(l, r)
	case OpDivide:
		return types.Divide(l, r)
	default:
		return nil, errUnimplementedColumn("unknown ArithOp")
	}
}

func (e *ArithmeticExpr) GetColumn(c *chunk.Chunk) (chunk.Column, error) {
	if e.Op == OpNegate {
		return chunk.Column{}, errUnimplementedColumn("unary NEGATIVE")
	}
	l, err := e.Left.GetColumn(c)
	if err != nil {
		return chunk.Column{}, err
	}
	r, err := e.Right.GetColumn(c)
	if err != nil {
		return chunk.Column{}, err
	}
	switch e.Op {
	case OpAdd:
		return chunk.AddColumns(c.Length, l, r)
	case OpSubtract:
		return chunk.SubtractColumns(c.Length, l, r)
	case OpMultiply:
		return chunk.MultiplyColumns(c.Length, l, r)
	case OpDivide:
		return chunk.DivideColumns(c.Length, l, r)
	default:
		return chunk.Column{}, errUnimplementedColumn("unknown ArithOp")
	}
}

func (e *ArithmeticExpr) ValueType() types.Type {
	if e.Op == OpNegate {
		return e.Left.ValueType()
	}
	return types.ArithResultType(e.Left.ValueType(), e.Right.ValueType(), e.Op == OpDivide)
}

func (e *ArithmeticExpr) Alias() string {
	if e.alias != "" {
		return e.alias
	}
	return "?"
}
