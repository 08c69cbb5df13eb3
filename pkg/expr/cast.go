package expr

import (
	"github.com/kgcyyds/miniob-2024/pkg/chunk"
	"github.com/kgcyyds/miniob-2024/pkg/tuple"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// CastExpr wraps a child expression with an explicit target type
// conversion (§4.1's cast_to).
type CastExpr struct {
	Child  Expression
	Target types.Type
	alias  string
}

func NewCastExpr(child Expression, target types.Type) *CastExpr {
	return &CastExpr{Child: child, Target: target, alias: child.Alias()}
}

func (e *CastExpr) GetValue(t tuple.Tuple) (types.Value, error) {
	v, err := e.Child.GetValue(t)
	if err != nil {
		return nil, err
	}
	return types.CastTo(v, e.Target)
}

func (e *CastExpr) GetColumn(c *chunk.Chunk) (chunk.Column, error) {
	return chunk.Column{}, errUnimplementedColumn("CastExpr")
}

func (e *CastExpr) ValueType() types.Type { return e.Target }
func (e *CastExpr) Alias() string         { return e.alias }
func (e *CastExpr) SetAlias(a string)     { e.alias = a }
