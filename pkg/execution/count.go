package execution

import (
	"github.com/kgcyyds/miniob-2024/pkg/tuple"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// countTuple is the one-row result DML operators (Insert/Delete/Update)
// yield: a single unnamed INT cell holding the number of rows the
// statement touched. CellAt and FindCell return that cell for any index
// or name.
type countTuple struct {
	n int64
}

func newCountTuple(n int64) tuple.Tuple {
	return &countTuple{n: n}
}

func (c *countTuple) Width() int { return 1 }

func (c *countTuple) CellAt(index int) (types.Value, error) {
	return types.NewInt(int32(c.n)), nil
}

func (c *countTuple) FindCell(spec tuple.TupleCellSpec) (types.Value, error) {
	return types.NewInt(int32(c.n)), nil
}
