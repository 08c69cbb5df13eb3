package execution

import (
	"fmt"
	"testing"

	"github.com/kgcyyds/miniob-2024/pkg/catalog"
	"github.com/kgcyyds/miniob-2024/pkg/expr"
	"github.com/kgcyyds/miniob-2024/pkg/primitives"
	"github.com/kgcyyds/miniob-2024/pkg/schema"
	"github.com/kgcyyds/miniob-2024/pkg/storage"
	"github.com/kgcyyds/miniob-2024/pkg/storage/heap"
	"github.com/kgcyyds/miniob-2024/pkg/txn"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

func chunkTestTable(t *testing.T, rowCount int) *catalog.Table {
	t.Helper()
	fields := []schema.FieldMeta{
		schema.NewFieldMeta("id", types.Int, 0, 4, false, 0),
		schema.NewFieldMeta("name", types.Chars, 0, 10, false, 1),
	}
	meta := schema.NewTableMeta("t", fields, "")
	rm := heap.NewTable(meta.RecordLength())
	tbl := catalog.NewTable(meta, rm)

	tx := txn.Begin()
	for i := 0; i < rowCount; i++ {
		data, err := schema.EncodeRecord(meta, []types.Value{types.NewInt(int32(i)), types.NewChars(fmt.Sprintf("row%d", i), 10)})
		if err != nil {
			t.Fatalf("EncodeRecord: %v", err)
		}
		if _, err := rm.InsertRecord(tx, data); err != nil {
			t.Fatalf("InsertRecord: %v", err)
		}
	}
	return tbl
}

// idField builds a FieldExpr referencing the "id" column, already given
// its positional slot the way physicalplan.assignFieldPositions would
// before handing a predicate to ChunkScan.
func idField(tbl *catalog.Table, alias string) *expr.FieldExpr {
	fe := expr.NewFieldExpr(alias, "id")
	fe.Resolve(alias, &tbl.Meta.Fields[0], false)
	fe.Pos = tbl.Meta.Fields[0].FieldID
	return fe
}

func drainChunkScan(t *testing.T, scan *ChunkScan) []int32 {
	t.Helper()
	tx := txn.Begin()
	if err := scan.Open(tx); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer scan.Close()

	var got []int32
	for {
		row, err := scan.Next()
		if err == storage.ErrEOF {
			break
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		v, err := row.CellAt(0)
		if err != nil {
			t.Fatalf("CellAt: %v", err)
		}
		got = append(got, v.(types.IntValue).V)
	}
	return got
}

// TestChunkScan_ColumnarFilter exercises the columnar path end to end: a
// batch larger than chunkBatchSize forces more than one Chunk, and the
// predicate is an ordinary comparison over a positionally-resolved field,
// so it must be answered entirely through GetColumn/SelectBool.
func TestChunkScan_ColumnarFilter(t *testing.T) {
	const alias = "t"
	tbl := chunkTestTable(t, chunkBatchSize+10)

	pred := expr.NewOrdinaryComparison(primitives.GreaterThan, idField(tbl, alias), expr.NewValueExpr(types.NewInt(int32(chunkBatchSize))))
	scan := NewChunkScan(alias, tbl, pred)

	got := drainChunkScan(t, scan)
	if len(got) != 9 {
		t.Fatalf("expected 9 rows with id > %d, got %d: %v", chunkBatchSize, len(got), got)
	}
	for _, id := range got {
		if id <= int32(chunkBatchSize) {
			t.Errorf("row with id %d should have been filtered out", id)
		}
	}
}

// TestChunkScan_RowWiseFallback drives a predicate ComparisonExpr
// reports as Unimplemented (LIKE has no columnar kernel), which must
// fall back to per-row GetValue evaluation without failing the scan.
func TestChunkScan_RowWiseFallback(t *testing.T) {
	const alias = "t"
	tbl := chunkTestTable(t, 5)

	name := expr.NewFieldExpr(alias, "name")
	name.Resolve(alias, &tbl.Meta.Fields[1], false)
	name.Pos = tbl.Meta.Fields[1].FieldID
	pred := expr.NewLikeComparison(false, name, expr.NewValueExpr(types.NewChars("row3", 4)))
	scan := NewChunkScan(alias, tbl, pred)

	got := drainChunkScan(t, scan)
	if len(got) != 1 || got[0] != 3 {
		t.Fatalf("expected only row id=3 (name 'row3') to match LIKE 'row3', got %v", got)
	}
}

// TestChunkScan_NoPredicate confirms an unfiltered ChunkScan just emits
// every row, batching transparently across the chunkBatchSize boundary.
func TestChunkScan_NoPredicate(t *testing.T) {
	tbl := chunkTestTable(t, chunkBatchSize+3)
	scan := NewChunkScan("t", tbl, nil)

	got := drainChunkScan(t, scan)
	if len(got) != chunkBatchSize+3 {
		t.Fatalf("expected %d rows, got %d", chunkBatchSize+3, len(got))
	}
}
