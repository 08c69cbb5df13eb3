// Package execution implements the physical operator tree of §4.4/§4.5:
// volcano-style iterators (open/next/close) plus a vectorized chunk path
// for operators that opt into columnar evaluation. Grounded on the
// teacher's pkg/execution package (SequentialScan/Filter/Project) and its
// pkg/execution.BaseIterator closure-caching pattern, adapted from a
// HasNext()/Next() split (teacher) to a single Next() returning the
// RECORD_EOF sentinel (§7), since that is the iterator contract §4.5
// names explicitly.
package execution

import (
	"github.com/kgcyyds/miniob-2024/pkg/tuple"
	"github.com/kgcyyds/miniob-2024/pkg/txn"
)

// Operator is the physical iterator contract of §4.5. It doubles as
// pkg/expr.PhysicalOperator (same method set) so any Operator can back a
// SubQueryExpr without pkg/expr importing this package.
type Operator interface {
	Open(tx *txn.Transaction) error
	Next() (tuple.Tuple, error)
	Close() error
	SetParentTuple(row tuple.Tuple)
}

// baseIterator is the shared open/parent-tuple bookkeeping every operator
// embeds, mirroring the teacher's BaseIterator -- except state tracking
// only, since the closure-based lookahead caching that BaseIterator does
// is unneeded once Next() itself reports EOF via a sentinel error.
type baseIterator struct {
	opened      bool
	parentTuple tuple.Tuple
}

func (b *baseIterator) markOpened() { b.opened = true }
func (b *baseIterator) markClosed()  { b.opened = false }
func (b *baseIterator) isOpen() bool { return b.opened }

func (b *baseIterator) SetParentTuple(row tuple.Tuple) { b.parentTuple = row }
