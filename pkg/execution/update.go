package execution

import (
	"github.com/kgcyyds/miniob-2024/pkg/catalog"
	"github.com/kgcyyds/miniob-2024/pkg/errkind"
	"github.com/kgcyyds/miniob-2024/pkg/expr"
	"github.com/kgcyyds/miniob-2024/pkg/schema"
	"github.com/kgcyyds/miniob-2024/pkg/storage"
	"github.com/kgcyyds/miniob-2024/pkg/tuple"
	"github.com/kgcyyds/miniob-2024/pkg/txn"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// Assignment binds one SET clause: the target field's position (an index
// into the table's Fields) and the expression to evaluate for its new
// value.
type Assignment struct {
	FieldIndex int
	Value      expr.Expression
}

// Update applies a SET-clause list to every row its child produces:
// UPDATE t SET c=expr[, ...] [WHERE cond]. Old index entries are removed
// and new ones inserted, since an update may change an indexed column.
type Update struct {
	baseIterator
	table       *catalog.Table
	child       Operator
	assignments []Assignment
	tx          *txn.Transaction
	done        bool
}

func NewUpdate(table *catalog.Table, child Operator, assignments []Assignment) *Update {
	return &Update{table: table, child: child, assignments: assignments}
}

func (op *Update) Open(tx *txn.Transaction) error {
	if err := op.child.Open(tx); err != nil {
		return err
	}
	op.tx = tx
	op.done = false
	op.markOpened()
	return nil
}

func (op *Update) SetParentTuple(row tuple.Tuple) {
	op.baseIterator.SetParentTuple(row)
	op.child.SetParentTuple(row)
}

func (op *Update) Next() (tuple.Tuple, error) {
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
			return nil, errkind.New(errkind.Internal, "INTERNAL", "UPDATE requires a row-tuple child")
		}
		rec := rowTuple.RID()
		oldValues, err := schema.DecodeRecord(op.table.Meta, rec.Data)
		if err != nil {
			return nil, err
		}

		newValues := make([]types.Value, len(oldValues))
		copy(newValues, oldValues)
		for _, a := range op.assignments {
			v, err := a.Value.GetValue(row)
			if err != nil {
				return nil, err
			}
			newValues[a.FieldIndex] = v
		}

		newData, err := schema.EncodeRecord(op.table.Meta, newValues)
		if err != nil {
			return nil, err
		}
		if err := op.table.Records.UpdateRecord(op.tx, rec.RID, newData); err != nil {
			return nil, err
		}
		if err := removeFromIndexes(op.table, oldValues, rec.RID); err != nil {
			return nil, err
		}
		if err := insertIntoIndexes(op.table, newValues, rec.RID); err != nil {
			return nil, err
		}
		count++
	}
	return newCountTuple(count), nil
}

func (op *Update) Close() error {
	op.markClosed()
	return op.child.Close()
}
