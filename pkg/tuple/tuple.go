// Package tuple implements the execution-time row abstraction of §3/§4.4:
// a Tuple exposes CellAt(index) and FindCell(TupleCellSpec), with one
// concrete struct per variant (row, projection, joined, group) rather
// than a single tagged-union struct, following the teacher's
// pkg/tuple.Tuple one-struct-per-schema-shape convention adapted to the
// spec's four distinct variants.
package tuple

import (
	"github.com/kgcyyds/miniob-2024/pkg/errkind"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// TupleCellSpec names a cell by its owning table and field name, used by
// FindCell to resolve a qualified or unqualified column reference.
type TupleCellSpec struct {
	Table string // empty means unqualified: match on field name alone
	Field string
}

// Tuple is the row abstraction every execution-time consumer (expressions,
// operators) reads through. CellAt is positional; FindCell is by name,
// used to resolve field references produced by the parser/resolver.
type Tuple interface {
	CellAt(index int) (types.Value, error)
	FindCell(spec TupleCellSpec) (types.Value, error)
	Width() int
}

// cellName pairs a Value with the table/field it can be found under, the
// shared building block row/joined/group tuples use for FindCell.
type cellName struct {
	table string
	field string
	value types.Value
}

func errOutOfRange(index int) error {
	return errkind.New(errkind.Internal, "INTERNAL", "cell index out of range")
}

func findIn(cells []cellName, spec TupleCellSpec) (types.Value, error) {
	for _, c := range cells {
		if c.field != spec.Field {
			continue
		}
		if spec.Table == "" || spec.Table == c.table {
			return c.value, nil
		}
	}
	return nil, errkind.New(errkind.Semantic, errkind.CodeSchemaFieldMissing, "unknown field: "+spec.Field)
}
