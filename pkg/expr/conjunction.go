package expr

import (
	"github.com/kgcyyds/miniob-2024/pkg/chunk"
	"github.com/kgcyyds/miniob-2024/pkg/tuple"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// ConjunctionKind selects AND or OR combination.
type ConjunctionKind int

const (
	And ConjunctionKind = iota
	Or
)

// ConjunctionExpr combines two or more boolean-valued children with AND
// or OR, short-circuiting row-wise evaluation.
type ConjunctionExpr struct {
	Kind     ConjunctionKind
	Children []Expression
	alias    string
}

func NewConjunctionExpr(kind ConjunctionKind, children ...Expression) *ConjunctionExpr {
	return &ConjunctionExpr{Kind: kind, Children: children}
}

func (e *ConjunctionExpr) SetAlias(a string) { e.alias = a }

func (e *ConjunctionExpr) GetValue(t tuple.Tuple) (types.Value, error) {
	for _, child := range e.Children {
		v, err := child.GetValue(t)
		if err != nil {
			return nil, err
		}
		bv, _ := v.(types.BoolValue)
		if e.Kind == And && !bv.V {
			return types.NewBool(false), nil
		}
		if e.Kind == Or && bv.V {
			return types.NewBool(true), nil
		}
	}
	return types.NewBool(e.Kind == And), nil
}

func (e *ConjunctionExpr) GetColumn(c *chunk.Chunk) (chunk.Column, error) {
	return chunk.Column{}, errUnimplementedColumn("ConjunctionExpr")
}

func (e *ConjunctionExpr) ValueType() types.Type { return types.Bool }

func (e *ConjunctionExpr) Alias() string {
	if e.alias != "" {
		return e.alias
	}
	return "?"
}
