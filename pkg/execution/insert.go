package execution

import (
	"github.com/kgcyyds/miniob-2024/pkg/catalog"
	"github.com/kgcyyds/miniob-2024/pkg/primitives"
	"github.com/kgcyyds/miniob-2024/pkg/schema"
	"github.com/kgcyyds/miniob-2024/pkg/storage"
	"github.com/kgcyyds/miniob-2024/pkg/tuple"
	"github.com/kgcyyds/miniob-2024/pkg/txn"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// Insert performs INSERT INTO t VALUES (...), (...): one physical insert
// per value row, maintaining every index on the table, then reporting
// the affected row count as its single output row. Insert is a leaf
// operator; it has no child.
type Insert struct {
	baseIterator
	table *catalog.Table
	rows  [][]types.Value
	tx    *txn.Transaction
	done  bool
}

func NewInsert(table *catalog.Table, rows [][]types.Value) *Insert {
	return &Insert{table: table, rows: rows}
}

func (op *Insert) Open(tx *txn.Transaction) error {
	op.tx = tx
	op.done = false
	op.markOpened()
	return nil
}

func (op *Insert) Next() (tuple.Tuple, error) {
	if op.done {
		return nil, storage.ErrEOF
	}
	op.done = true

	for _, row := range op.rows {
		data, err := schema.EncodeRecord(op.table.Meta, row)
		if err != nil {
			return nil, err
		}
		rid, err := op.table.Records.InsertRecord(op.tx, data)
		if err != nil {
			return nil, err
		}
		if err := insertIntoIndexes(op.table, row, rid); err != nil {
			return nil, err
		}
	}
	return newCountTuple(int64(len(op.rows))), nil
}

func (op *Insert) Close() error {
	op.markClosed()
	return nil
}

// insertIntoIndexes maintains every index on table after a physical
// insert, deriving each index's key from the already-decoded row values.
func insertIntoIndexes(table *catalog.Table, row []types.Value, rid primitives.RID) error {
	for _, idx := range table.Indexes() {
		key, err := schema.EncodeIndexKey(table.Meta, idx.FieldIDs(), row)
		if err != nil {
			return err
		}
		if err := idx.Insert(key, rid); err != nil {
			return err
		}
	}
	return nil
}
