package execution

import (
	"github.com/kgcyyds/miniob-2024/pkg/catalog"
	"github.com/kgcyyds/miniob-2024/pkg/errkind"
	"github.com/kgcyyds/miniob-2024/pkg/primitives"
	"github.com/kgcyyds/miniob-2024/pkg/storage"
	"github.com/kgcyyds/miniob-2024/pkg/tuple"
	"github.com/kgcyyds/miniob-2024/pkg/txn"
)

// IndexScan answers a predicate's equality condition on an indexed
// attribute by looking up matching RIDs and fetching each record
// directly, chosen by the physical planner when the WHERE predicate
// contains an equality on an indexed field (§4.4).
type IndexScan struct {
	baseIterator
	alias   string
	table   *catalog.Table
	index   storage.Index
	key     []byte
	rids    []primitives.RID
	nextIdx int
	tx      *txn.Transaction
}

func NewIndexScan(alias string, table *catalog.Table, index storage.Index, key []byte) *IndexScan {
	return &IndexScan{alias: alias, table: table, index: index, key: key}
}

func (s *IndexScan) Open(tx *txn.Transaction) error {
	rids, err := s.index.Lookup(s.key)
	if err != nil {
		return err
	}
	s.rids = rids
	s.nextIdx = 0
	s.tx = tx
	s.markOpened()
	return nil
}

func (s *IndexScan) Next() (tuple.Tuple, error) {
	if !s.isOpen() {
		return nil, errkind.New(errkind.Internal, "INTERNAL", "IndexScan.Next called before Open")
	}
	if s.nextIdx >= len(s.rids) {
		return nil, storage.ErrEOF
	}
	rid := s.rids[s.nextIdx]
	s.nextIdx++
	rec, err := s.table.Records.Fetch(s.tx, rid)
	if err != nil {
		return nil, err
	}
	return tuple.NewRowTuple(s.alias, s.table.Meta, rec)
}

func (s *IndexScan) Close() error {
	s.markClosed()
	return nil
}
