package expr

import (
	"github.com/kgcyyds/miniob-2024/pkg/chunk"
	"github.com/kgcyyds/miniob-2024/pkg/tuple"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// ValueSource is implemented by anything the right side of IN/NOT IN can
// stream against: a literal ListExpr or a SubQueryExpr in list mode.
// Contains never returns a Go error for "no match" -- only for a real
// evaluation failure -- and reports sawNull separately so the caller can
// apply the IN/NOT IN NULL rule of §4.2.
type ValueSource interface {
	Contains(t tuple.Tuple, key types.Value) (found bool, sawNull bool, err error)
}

// ListExpr is a parenthesized literal value list, `(v1, v2, ...)`, the
// non-subquery form of an IN/NOT IN right-hand side.
type ListExpr struct {
	Items []Expression
}

func NewListExpr(items ...Expression) *ListExpr { return &ListExpr{Items: items} }

func (e *ListExpr) GetValue(tuple.Tuple) (types.Value, error) {
	return nil, errUnimplementedColumn("ListExpr has no scalar value")
}

func (e *ListExpr) GetColumn(*chunk.Chunk) (chunk.Column, error) {
	return chunk.Column{}, errUnimplementedColumn("ListExpr")
}

func (e *ListExpr) ValueType() types.Type { return types.Undefined }
func (e *ListExpr) Alias() string         { return "?" }

func (e *ListExpr) Contains(t tuple.Tuple, key types.Value) (bool, bool, error) {
	if key.IsNull() {
		return false, true, nil
	}
	sawNull := false
	for _, item := range e.Items {
		v, err := item.GetValue(t)
		if err != nil {
			return false, false, err
		}
		if v.IsNull() {
			sawNull = true
			continue
		}
		if key.Equals(v) {
			return true, sawNull, nil
		}
	}
	return false, sawNull, nil
}
