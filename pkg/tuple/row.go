package tuple

import (
	"github.com/kgcyyds/miniob-2024/pkg/schema"
	"github.com/kgcyyds/miniob-2024/pkg/storage"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// RowTuple wraps one physical record plus the schema (and table alias) it
// was scanned from, decoding lazily on first access.
type RowTuple struct {
	alias  string
	meta   *schema.TableMeta
	record *storage.Record
	values []types.Value
}

// NewRowTuple decodes rec against meta, tagging every cell with alias
// (the FROM-clause name or table name it was read under, for FindCell
// qualification).
func NewRowTuple(alias string, meta *schema.TableMeta, rec *storage.Record) (*RowTuple, error) {
	values, err := schema.DecodeRecord(meta, rec.Data)
	if err != nil {
		return nil, err
	}
	return &RowTuple{alias: alias, meta: meta, record: rec, values: values}, nil
}

func (t *RowTuple) Width() int { return len(t.values) }

func (t *RowTuple) CellAt(index int) (types.Value, error) {
	if index < 0 || index >= len(t.values) {
		return nil, errOutOfRange(index)
	}
	return t.values[index], nil
}

func (t *RowTuple) FindCell(spec TupleCellSpec) (types.Value, error) {
	cells := make([]cellName, len(t.meta.Fields))
	for i, f := range t.meta.Fields {
		cells[i] = cellName{table: t.alias, field: f.Name, value: t.values[i]}
	}
	return findIn(cells, spec)
}

// RID returns the record identity backing this row, used by UPDATE/DELETE
// operators to address the physical record.
func (t *RowTuple) RID() storage.Record { return *t.record }
