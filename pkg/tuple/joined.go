package tuple

import "github.com/kgcyyds/miniob-2024/pkg/types"

// JoinedTuple is the concatenation of a left and right child row, used by
// NestedLoopJoin. CellAt indexes left cells first, then right; FindCell
// tries the left side, then the right.
type JoinedTuple struct {
	left, right Tuple
}

func NewJoinedTuple(left, right Tuple) *JoinedTuple {
	return &JoinedTuple{left: left, right: right}
}

func (t *JoinedTuple) Width() int { return t.left.Width() + t.right.Width() }

func (t *JoinedTuple) CellAt(index int) (types.Value, error) {
	if index < t.left.Width() {
		return t.left.CellAt(index)
	}
	return t.right.CellAt(index - t.left.Width())
}

func (t *JoinedTuple) FindCell(spec TupleCellSpec) (types.Value, error) {
	if v, err := t.left.FindCell(spec); err == nil {
		return v, nil
	}
	return t.right.FindCell(spec)
}
