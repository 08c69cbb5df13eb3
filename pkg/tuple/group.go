package tuple

import (
	"github.com/kgcyyds/miniob-2024/pkg/errkind"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// GroupTuple is one bucket's output row from HashGroupBy: the group-by key
// values followed by each aggregate's final result, in the order
// HashGroupBy declared them. NULL is its own group key per §4.5.
type GroupTuple struct {
	keys       []types.Value
	keyAliases []string
	aggs       []types.Value
	aggAliases []string
}

func NewGroupTuple(keys []types.Value, keyAliases []string, aggs []types.Value, aggAliases []string) *GroupTuple {
	return &GroupTuple{keys: keys, keyAliases: keyAliases, aggs: aggs, aggAliases: aggAliases}
}

func (t *GroupTuple) Width() int { return len(t.keys) + len(t.aggs) }

func (t *GroupTuple) CellAt(index int) (types.Value, error) {
	if index < len(t.keys) {
		return t.keys[index], nil
	}
	index -= len(t.keys)
	if index < len(t.aggs) {
		return t.aggs[index], nil
	}
	return nil, errOutOfRange(index)
}

func (t *GroupTuple) FindCell(spec TupleCellSpec) (types.Value, error) {
	for i, alias := range t.keyAliases {
		if alias == spec.Field {
			return t.keys[i], nil
		}
	}
	for i, alias := range t.aggAliases {
		if alias == spec.Field {
			return t.aggs[i], nil
		}
	}
	return nil, errkind.New(errkind.Semantic, errkind.CodeSchemaFieldMissing, "unknown output field: "+spec.Field)
}
