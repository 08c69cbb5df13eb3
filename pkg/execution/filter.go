package execution

import (
	"github.com/kgcyyds/miniob-2024/pkg/errkind"
	"github.com/kgcyyds/miniob-2024/pkg/expr"
	"github.com/kgcyyds/miniob-2024/pkg/tuple"
	"github.com/kgcyyds/miniob-2024/pkg/txn"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// Filter wraps a child operator and a boolean-valued expression,
// producing only rows for which the predicate evaluates true. Grounded
// on the teacher's execution.Filter, generalized from a field-vs-constant
// Predicate to a full expr.Expression tree (§4.4).
type Filter struct {
	baseIterator
	child     Operator
	predicate expr.Expression
}

func NewFilter(child Operator, predicate expr.Expression) *Filter {
	return &Filter{child: child, predicate: predicate}
}

func (f *Filter) Open(tx *txn.Transaction) error {
	if err := f.child.Open(tx); err != nil {
		return err
	}
	f.markOpened()
	return nil
}

func (f *Filter) SetParentTuple(row tuple.Tuple) {
	f.baseIterator.SetParentTuple(row)
	f.child.SetParentTuple(row)
}

func (f *Filter) Next() (tuple.Tuple, error) {
	if !f.isOpen() {
		return nil, errkind.New(errkind.Internal, "INTERNAL", "Filter.Next called before Open")
	}
	for {
		row, err := f.child.Next()
		if err != nil {
			return nil, err
		}
		v, err := f.predicate.GetValue(row)
		if err != nil {
			return nil, err
		}
		bv, ok := v.(types.BoolValue)
		if ok && bv.V {
			return row, nil
		}
	}
}

func (f *Filter) Close() error {
	f.markClosed()
	return f.child.Close()
}
