package expr

import (
	"github.com/kgcyyds/miniob-2024/pkg/chunk"
	"github.com/kgcyyds/miniob-2024/pkg/schema"
	"github.com/kgcyyds/miniob-2024/pkg/tuple"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// FieldExpr carries either a (table-name, field-name) pair awaiting
// resolution, or, once the resolver has run, a concrete FieldMeta and
// display alias. After planning, Pos may be set to a positional index
// that short-circuits FindCell with a direct CellAt/chunk-column lookup
// (§4.2).
type FieldExpr struct {
	TableName string
	FieldName string

	resolved bool
	table    string
	meta     *schema.FieldMeta
	alias    string
	Pos      int // -1 until the planner assigns a positional slot
}

// NewFieldExpr creates an unresolved field reference. tableName may be
// empty for an unqualified reference.
func NewFieldExpr(tableName, fieldName string) *FieldExpr {
	return &FieldExpr{TableName: tableName, FieldName: fieldName, Pos: -1}
}

// Resolve binds this reference to a concrete table alias and FieldMeta,
// computing its display alias per §4.3 ("field" in single-table context,
// "table.field" otherwise; explicit AS overrides via SetAlias).
func (e *FieldExpr) Resolve(tableAlias string, meta *schema.FieldMeta, qualified bool) {
	e.resolved = true
	e.table = tableAlias
	e.meta = meta
	if qualified {
		e.alias = tableAlias + "." + meta.Name
	} else {
		e.alias = meta.Name
	}
}

func (e *FieldExpr) SetAlias(a string) { e.alias = a }

func (e *FieldExpr) GetValue(t tuple.Tuple) (types.Value, error) {
	if e.Pos >= 0 {
		return t.CellAt(e.Pos)
	}
	return t.FindCell(tuple.TupleCellSpec{Table: e.table, Field: e.meta.Name})
}

func (e *FieldExpr) GetColumn(c *chunk.Chunk) (chunk.Column, error) {
	if e.Pos < 0 || e.Pos >= len(c.Columns) {
		return chunk.Column{}, errUnimplementedColumn("FieldExpr without a positional slot")
	}
	return c.Columns[e.Pos], nil
}

func (e *FieldExpr) ValueType() types.Type {
	if !e.resolved {
		return types.Undefined
	}
	return e.meta.Type
}

func (e *FieldExpr) Alias() string {
	if e.alias != "" {
		return e.alias
	}
	return e.FieldName
}

// ResolvedTable and ResolvedMeta expose the bound identity for the
// resolver's field-lookup routine and the planner's index-selection
// logic.
func (e *FieldExpr) ResolvedTable() string           { return e.table }
func (e *FieldExpr) ResolvedMeta() *schema.FieldMeta { return e.meta }
func (e *FieldExpr) IsResolved() bool                { return e.resolved }
