package execution

import (
	"github.com/kgcyyds/miniob-2024/pkg/catalog"
	"github.com/kgcyyds/miniob-2024/pkg/errkind"
	"github.com/kgcyyds/miniob-2024/pkg/primitives"
	"github.com/kgcyyds/miniob-2024/pkg/schema"
	"github.com/kgcyyds/miniob-2024/pkg/storage"
	"github.com/kgcyyds/miniob-2024/pkg/tuple"
	"github.com/kgcyyds/miniob-2024/pkg/txn"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// Delete removes every row its child produces (a TableScan, or a
// ChunkScan/IndexScan applying the WHERE): DELETE FROM t [WHERE cond].
// Each child row must be a
// *tuple.RowTuple so its RID and decoded values are available for index
// maintenance.
type Delete struct {
	baseIterator
	table *catalog.Table
	child Operator
	tx    *txn.Transaction
	done  bool
}

func NewDelete(table *catalog.Table, child Operator) *Delete {
	return &Delete{table: table, child: child}
}

func (op *Delete) Open(tx *txn.Transaction) error {
	if err := op.child.Open(tx); err != nil {
		return err
	}
	op.tx = tx
	op.done = false
	op.markOpened()
	return nil
}

func (op *Delete) SetParentTuple(row tuple.Tuple) {
	op.baseIterator.SetParentTuple(row)
	op.child.SetParentTuple(row)
}

func (op *Delete) Next() (tuple.Tuple, error) {
	if op.done {
		return nil, storage.ErrEOF
	}
	op.done = true

	var count int64
	for {
		row, err := op.child.Next()
		if err == storage.ErrEOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rowTuple, ok := row.(*tuple.RowTuple)
		if !ok {
			return nil, errkind.New(errkind.Internal, "INTERNAL", "DELETE requires a row-tuple child")
		}
		rec := rowTuple.RID()
		values, err := schema.DecodeRecord(op.table.Meta, rec.Data)
		if err != nil {
			return nil, err
		}
		if err := op.table.Records.DeleteRecord(op.tx, rec.RID); err != nil {
			return nil, err
		}
		if err := removeFromIndexes(op.table, values, rec.RID); err != nil {
			return nil, err
		}
		count++
	}
	return newCountTuple(count), nil
}

func (op *Delete) Close() error {
	op.markClosed()
	return op.child.Close()
}

func removeFromIndexes(table *catalog.Table, row []types.Value, rid primitives.RID) error {
	for _, idx := range table.Indexes() {
		key, err := schema.EncodeIndexKey(table.Meta, idx.FieldIDs(), row)
		if err != nil {
			return err
		}
		if err := idx.Delete(key, rid); err != nil {
			return err
		}
	}
	return nil
}
