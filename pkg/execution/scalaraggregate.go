package execution

import (
	"github.com/kgcyyds/miniob-2024/pkg/aggregation"
	"github.com/kgcyyds/miniob-2024/pkg/errkind"
	"github.com/kgcyyds/miniob-2024/pkg/expr"
	"github.com/kgcyyds/miniob-2024/pkg/storage"
	"github.com/kgcyyds/miniob-2024/pkg/tuple"
	"github.com/kgcyyds/miniob-2024/pkg/txn"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// ScalarAggregate is the degenerate single-bucket aggregator the planner
// picks for a GROUP BY-less aggregate query (§4.4): it always emits
// exactly one GroupTuple with no group-key cells, even over zero input
// rows (e.g. COUNT(*) on an empty table yields 0, not no rows).
type ScalarAggregate struct {
	baseIterator
	child    Operator
	aggExprs []*expr.AggregateExpr
	emitted  bool
}

func NewScalarAggregate(child Operator, aggExprs []*expr.AggregateExpr) *ScalarAggregate {
	return &ScalarAggregate{child: child, aggExprs: aggExprs}
}

func (s *ScalarAggregate) Open(tx *txn.Transaction) error {
	if err := s.child.Open(tx); err != nil {
		return err
	}
	s.emitted = false
	s.markOpened()
	return nil
}

func (s *ScalarAggregate) SetParentTuple(row tuple.Tuple) {
	s.baseIterator.SetParentTuple(row)
	s.child.SetParentTuple(row)
}

func (s *ScalarAggregate) Next() (tuple.Tuple, error) {
	if !s.isOpen() {
		return nil, errkind.New(errkind.Internal, "INTERNAL", "ScalarAggregate.Next called before Open")
	}
	if s.emitted {
		return nil, storage.ErrEOF
	}
	s.emitted = true

	aggs := make([]aggregation.Aggregator, len(s.aggExprs))
	for i, ae := range s.aggExprs {
		aggs[i] = ae.NewAggregator()
	}

	for {
		row, err := s.child.Next()
		if err == storage.ErrEOF {
			break
		}
		if err != nil {
			return nil, err
		}
		for i, ae := range s.aggExprs {
			var argVal types.Value = types.Nil
			if ae.Arg != nil {
				v, err := ae.Arg.GetValue(row)
				if err != nil {
					return nil, err
				}
				argVal = v
			}
			if err := aggs[i].Merge(argVal); err != nil {
				return nil, err
			}
		}
	}

	values := make([]types.Value, len(aggs))
	aliases := make([]string, len(aggs))
	for i, agg := range aggs {
		v, err := agg.Result()
		if err != nil {
			return nil, err
		}
		values[i] = v
		aliases[i] = s.aggExprs[i].Alias()
	}
	return tuple.NewGroupTuple(nil, nil, values, aliases), nil
}

func (s *ScalarAggregate) Close() error {
	s.markClosed()
	return s.child.Close()
}
