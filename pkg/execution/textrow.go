package execution

import (
	"github.com/kgcyyds/miniob-2024/pkg/tuple"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// textTuple is a one-cell CHARS row, used by operators (Explain) whose
// output is a rendered string rather than a table row.
type textTuple struct {
	text string
}

func newTextTuple(text string) tuple.Tuple {
	return &textTuple{text: text}
}

func (t *textTuple) Width() int { return 1 }

func (t *textTuple) CellAt(index int) (types.Value, error) {
	return types.NewChars(t.text, len(t.text)), nil
}

func (t *textTuple) FindCell(spec tuple.TupleCellSpec) (types.Value, error) {
	return types.NewChars(t.text, len(t.text)), nil
}
