package expr

import (
	"github.com/kgcyyds/miniob-2024/pkg/aggregation"
	"github.com/kgcyyds/miniob-2024/pkg/chunk"
	"github.com/kgcyyds/miniob-2024/pkg/tuple"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// AggregateExpr names an aggregate function over a child expression
// (§4.2's "one-shot factory produces {Sum, Avg, Max, Min, Count,
// CountStar} objects"). It is only ever evaluated by HashGroupBy or
// ScalarAggregate, which pull Arg out and feed an aggregation.Aggregator
// directly; GetValue on
// an unresolved AggregateExpr (encountered outside a GroupBy plan) is an
// error, matching the resolver's requirement that aggregates only appear
// where grouping has rewritten them into GroupTuple lookups.
type AggregateExpr struct {
	Op    aggregation.Op
	Arg   Expression // nil for CountStar
	alias string
}

func NewAggregateExpr(op aggregation.Op, arg Expression) *AggregateExpr {
	return &AggregateExpr{Op: op, Arg: arg}
}

func (e *AggregateExpr) SetAlias(a string) { e.alias = a }

func (e *AggregateExpr) GetValue(t tuple.Tuple) (types.Value, error) {
	return t.FindCell(tuple.TupleCellSpec{Field: e.Alias()})
}

func (e *AggregateExpr) GetColumn(c *chunk.Chunk) (chunk.Column, error) {
	return chunk.Column{}, errUnimplementedColumn("AggregateExpr")
}

func (e *AggregateExpr) ValueType() types.Type {
	switch e.Op {
	case aggregation.CountStar, aggregation.Count:
		return types.Int
	case aggregation.Avg:
		return types.Float
	default:
		if e.Arg != nil {
			return e.Arg.ValueType()
		}
		return types.Undefined
	}
}

func (e *AggregateExpr) Alias() string {
	if e.alias != "" {
		return e.alias
	}
	return e.Op.String()
}

// NewAggregator builds the runtime accumulator for this expression. It
// passes the argument's static type to aggregation.New, which does not
// consult it.
func (e *AggregateExpr) NewAggregator() aggregation.Aggregator {
	argType := types.Undefined
	if e.Arg != nil {
		argType = e.Arg.ValueType()
	}
	return aggregation.New(e.Op, argType)
}
