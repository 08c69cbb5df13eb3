package execution

import (
	"github.com/kgcyyds/miniob-2024/pkg/expr"
	"github.com/kgcyyds/miniob-2024/pkg/storage"
	"github.com/kgcyyds/miniob-2024/pkg/tuple"
	"github.com/kgcyyds/miniob-2024/pkg/txn"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// Calc evaluates a scalar CALC expr-list against no table at all,
// yielding exactly one row of results. It is a leaf operator: its
// expressions must not reference any field.
type Calc struct {
	baseIterator
	exprs   []expr.Expression
	emitted bool
}

func NewCalc(exprs []expr.Expression) *Calc {
	return &Calc{exprs: exprs}
}

func (op *Calc) Open(tx *txn.Transaction) error {
	op.emitted = false
	op.markOpened()
	return nil
}

func (op *Calc) Next() (tuple.Tuple, error) {
	if op.emitted {
		return nil, storage.ErrEOF
	}
	op.emitted = true

	values := make([]types.Value, len(op.exprs))
	aliases := make([]string, len(op.exprs))
	for i, e := range op.exprs {
		v, err := e.GetValue(nil)
		if err != nil {
			return nil, err
		}
		values[i] = v
		aliases[i] = e.Alias()
	}
	return tuple.NewProjectTuple(values, aliases), nil
}

func (op *Calc) Close() error {
	op.markClosed()
	return nil
}
