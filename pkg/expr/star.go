package expr

import (
	"github.com/kgcyyds/miniob-2024/pkg/chunk"
	"github.com/kgcyyds/miniob-2024/pkg/errkind"
	"github.com/kgcyyds/miniob-2024/pkg/tuple"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// StarExpr is the unresolved `*` or `table.*` select item. The resolver
// expands it into one FieldExpr per column (§4.3) before planning; it
// should never survive into a physical tree, so its Expression methods
// only exist to satisfy the interface during the brief window before
// expansion and always report Unimplemented if reached.
type StarExpr struct {
	TableName string // empty for a bare `*`
}

func NewStarExpr(tableName string) *StarExpr { return &StarExpr{TableName: tableName} }

func (e *StarExpr) GetValue(tuple.Tuple) (types.Value, error) {
	return nil, errkind.New(errkind.Internal, "INTERNAL", "StarExpr must be expanded before evaluation")
}

func (e *StarExpr) GetColumn(*chunk.Chunk) (chunk.Column, error) {
	return chunk.Column{}, errUnimplementedColumn("StarExpr")
}

func (e *StarExpr) ValueType() types.Type { return types.Undefined }
func (e *StarExpr) Alias() string         { return "*" }
