package execution

import (
	"github.com/kgcyyds/miniob-2024/pkg/catalog"
	"github.com/kgcyyds/miniob-2024/pkg/errkind"
	"github.com/kgcyyds/miniob-2024/pkg/storage"
	"github.com/kgcyyds/miniob-2024/pkg/tuple"
	"github.com/kgcyyds/miniob-2024/pkg/txn"
)

// TableScan sequentially iterates every live record of one table,
// decoding each into a RowTuple. Grounded on the teacher's
// SequentialScan, adapted to the record-manager-scan/RECORD_EOF contract
// of pkg/storage instead of a DbFile page iterator.
type TableScan struct {
	baseIterator
	alias   string
	table   *catalog.Table
	recIter storage.RecordIterator
}

func NewTableScan(alias string, table *catalog.Table) *TableScan {
	return &TableScan{alias: alias, table: table}
}

func (s *TableScan) Open(tx *txn.Transaction) error {
	it, err := s.table.Records.Scan(tx, nil)
	if err != nil {
		return err
	}
	if err := it.Open(); err != nil {
		return err
	}
	s.recIter = it
	s.markOpened()
	return nil
}

func (s *TableScan) Next() (tuple.Tuple, error) {
	if !s.isOpen() {
		return nil, errkind.New(errkind.Internal, "INTERNAL", "TableScan.Next called before Open")
	}
	rec, err := s.recIter.Next()
	if err != nil {
		return nil, err
	}
	return tuple.NewRowTuple(s.alias, s.table.Meta, rec)
}

func (s *TableScan) Close() error {
	if s.recIter != nil {
		if err := s.recIter.Close(); err != nil {
			return err
		}
		s.recIter = nil
	}
	s.markClosed()
	return nil
}
