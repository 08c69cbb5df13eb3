package execution

import (
	"github.com/kgcyyds/miniob-2024/pkg/storage"
	"github.com/kgcyyds/miniob-2024/pkg/tuple"
	"github.com/kgcyyds/miniob-2024/pkg/txn"
)

// Explain wraps a physical plan and, instead of executing it, yields one
// row holding the rendered tree of its child's description. Opening
// Explain does not open its child: the point is to describe the plan
// without running it.
type Explain struct {
	baseIterator
	child   Operator
	emitted bool
}

func NewExplain(child Operator) *Explain {
	return &Explain{child: child}
}

func (op *Explain) Open(tx *txn.Transaction) error {
	op.emitted = false
	op.markOpened()
	return nil
}

func (op *Explain) Next() (tuple.Tuple, error) {
	if op.emitted {
		return nil, storage.ErrEOF
	}
	op.emitted = true
	return newTextTuple(Describe(op.child)), nil
}

func (op *Explain) Close() error {
	op.markClosed()
	return nil
}
