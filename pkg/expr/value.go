package expr

import (
	"github.com/kgcyyds/miniob-2024/pkg/chunk"
	"github.com/kgcyyds/miniob-2024/pkg/tuple"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// ValueExpr is a constant literal.
type ValueExpr struct {
	V     types.Value
	alias string
}

func NewValueExpr(v types.Value) *ValueExpr { return &ValueExpr{V: v, alias: v.String()} }

func (e *ValueExpr) GetValue(tuple.Tuple) (types.Value, error) { return e.V, nil }

func (e *ValueExpr) GetColumn(c *chunk.Chunk) (chunk.Column, error) {
	return chunk.NewConstantColumn(e.V), nil
}

func (e *ValueExpr) ValueType() types.Type { return e.V.Type() }
func (e *ValueExpr) Alias() string         { return e.alias }
func (e *ValueExpr) SetAlias(a string)     { e.alias = a }
