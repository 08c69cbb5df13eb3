package execution

import (
	"errors"

	"github.com/kgcyyds/miniob-2024/pkg/catalog"
	"github.com/kgcyyds/miniob-2024/pkg/chunk"
	"github.com/kgcyyds/miniob-2024/pkg/errkind"
	"github.com/kgcyyds/miniob-2024/pkg/expr"
	"github.com/kgcyyds/miniob-2024/pkg/storage"
	"github.com/kgcyyds/miniob-2024/pkg/tuple"
	"github.com/kgcyyds/miniob-2024/pkg/txn"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// chunkBatchSize is the number of records ChunkScan decodes into one
// Chunk before evaluating the predicate, per §4.5's "chunks of N rows".
const chunkBatchSize = 256

// ChunkScan fuses a table scan and a predicate filter into a single
// operator that batches chunkBatchSize records at a time into a
// pkg/chunk.Chunk, evaluates the predicate columnar-wise over the whole
// batch via GetColumn/SelectBool, and falls back to evaluating that batch
// row-at-a-time whenever the predicate reports it has no columnar kernel
// (§4.5). The physical planner builds one of these in place of a plain
// TableScan+Filter pair whenever a Predicate sits directly over a
// TableGet, first assigning every FieldExpr in the predicate that
// resolves against this scan's alias a positional slot into the chunk's
// column layout.
type ChunkScan struct {
	baseIterator
	alias     string
	table     *catalog.Table
	predicate expr.Expression // nil scans without filtering

	recIter storage.RecordIterator
	buf     []tuple.Tuple
	pos     int
	drained bool
}

// NewChunkScan builds a chunked scan/filter operator over table under
// alias, applying predicate (which may be nil) to each batch.
func NewChunkScan(alias string, table *catalog.Table, predicate expr.Expression) *ChunkScan {
	return &ChunkScan{alias: alias, table: table, predicate: predicate}
}

func (s *ChunkScan) Open(tx *txn.Transaction) error {
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

func (s *ChunkScan) Next() (tuple.Tuple, error) {
	if !s.isOpen() {
		return nil, errkind.New(errkind.Internal, "INTERNAL", "ChunkScan.Next called before Open")
	}
	for {
		if s.pos < len(s.buf) {
			row := s.buf[s.pos]
			s.pos++
			return row, nil
		}
		if s.drained {
			return nil, storage.ErrEOF
		}
		if err := s.fill(); err != nil {
			return nil, err
		}
	}
}

// fill pulls up to chunkBatchSize records off the underlying scan,
// decodes them, applies the predicate, and leaves the surviving rows in
// s.buf for Next to hand out one at a time.
func (s *ChunkScan) fill() error {
	records := make([]*storage.Record, 0, chunkBatchSize)
	for len(records) < chunkBatchSize {
		rec, err := s.recIter.Next()
		if err == storage.ErrEOF {
			s.drained = true
			break
		}
		if err != nil {
			return err
		}
		records = append(records, rec)
	}

	s.buf, s.pos = nil, 0
	if len(records) == 0 {
		return nil
	}

	rows := make([]tuple.Tuple, len(records))
	for i, rec := range records {
		row, err := tuple.NewRowTuple(s.alias, s.table.Meta, rec)
		if err != nil {
			return err
		}
		rows[i] = row
	}

	if s.predicate == nil {
		s.buf = rows
		return nil
	}
	selected, err := s.applyPredicate(rows)
	if err != nil {
		return err
	}
	s.buf = selected
	return nil
}

// applyPredicate evaluates s.predicate over rows, preferring a single
// columnar pass over the whole batch and falling back to per-row
// evaluation only once the predicate reports it has no columnar kernel.
func (s *ChunkScan) applyPredicate(rows []tuple.Tuple) ([]tuple.Tuple, error) {
	width := s.table.Meta.FieldCount()
	columns := make([]chunk.Column, width)
	for fi := 0; fi < width; fi++ {
		data := make([]types.Value, len(rows))
		for ri, row := range rows {
			v, err := row.CellAt(fi)
			if err != nil {
				return nil, err
			}
			data[ri] = v
		}
		columns[fi] = chunk.NewNormalColumn(data)
	}
	ch := chunk.NewChunk(len(rows), columns...)

	col, err := s.predicate.GetColumn(ch)
	if err == nil {
		indices, err := chunk.SelectBool(ch.Length, col)
		if err != nil {
			return nil, err
		}
		out := make([]tuple.Tuple, len(indices))
		for i, idx := range indices {
			out[i] = rows[idx]
		}
		return out, nil
	}
	if !isUnimplementedColumn(err) {
		return nil, err
	}
	return s.filterRowWise(rows)
}

func (s *ChunkScan) filterRowWise(rows []tuple.Tuple) ([]tuple.Tuple, error) {
	var out []tuple.Tuple
	for _, row := range rows {
		v, err := s.predicate.GetValue(row)
		if err != nil {
			return nil, err
		}
		if bv, ok := v.(types.BoolValue); ok && bv.V {
			out = append(out, row)
		}
	}
	return out, nil
}

func isUnimplementedColumn(err error) bool {
	var ke *errkind.Error
	if errors.As(err, &ke) {
		return ke.Kind == errkind.Unimplemented
	}
	return false
}

func (s *ChunkScan) Close() error {
	if s.recIter != nil {
		if err := s.recIter.Close(); err != nil {
			return err
		}
		s.recIter = nil
	}
	s.markClosed()
	return nil
}
