package tuple

import (
	"github.com/kgcyyds/miniob-2024/pkg/errkind"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// ProjectTuple holds the already-evaluated output expressions of a
// Project operator. Building it is the Project operator's job (it owns
// the expression tree and evaluates each expression against its child's
// current tuple); ProjectTuple itself only stores the results, keeping
// pkg/tuple free of a dependency on pkg/expr.
type ProjectTuple struct {
	values  []types.Value
	aliases []string // output name per position, "" if unnamed
}

func NewProjectTuple(values []types.Value, aliases []string) *ProjectTuple {
	return &ProjectTuple{values: values, aliases: aliases}
}

func (t *ProjectTuple) Width() int { return len(t.values) }

func (t *ProjectTuple) CellAt(index int) (types.Value, error) {
	if index < 0 || index >= len(t.values) {
		return nil, errOutOfRange(index)
	}
	return t.values[index], nil
}

// FindCell resolves by output alias only; table qualification is
// meaningless once expressions have been projected.
func (t *ProjectTuple) FindCell(spec TupleCellSpec) (types.Value, error) {
	for i, alias := range t.aliases {
		if alias == spec.Field {
			return t.values[i], nil
		}
	}
	return nil, errkind.New(errkind.Semantic, errkind.CodeSchemaFieldMissing, "unknown output field: "+spec.Field)
}
