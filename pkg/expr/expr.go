// Package expr implements the expression tree of §4.2: every node
// supports row-wise GetValue and an optional columnar GetColumn, falling
// back to row-wise when a node has no vectorized kernel. Grounded on the
// teacher's execution.Predicate (field-index/op/operand shape), but
// generalized from a leaf-level field-vs-constant comparator into a full
// tree with typed nodes for arithmetic, comparison, conjunction,
// aggregates, and subqueries, matching the tree structure the resolver
// (§4.3) and planner (§4.4) require.
package expr

import (
	"github.com/kgcyyds/miniob-2024/pkg/chunk"
	"github.com/kgcyyds/miniob-2024/pkg/errkind"
	"github.com/kgcyyds/miniob-2024/pkg/tuple"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// Expression is the interface every tree node implements. GetColumn is
// optional: a node without a columnar kernel returns an Unimplemented
// error and callers fall back to evaluating GetValue once per row.
type Expression interface {
	GetValue(t tuple.Tuple) (types.Value, error)
	GetColumn(c *chunk.Chunk) (chunk.Column, error)
	// ValueType reports the static result type where known ahead of
	// evaluation (used by the resolver for arity/type checks); returns
	// types.Undefined when it cannot be determined without evaluating.
	ValueType() types.Type
	// Alias is the display/output name assigned by resolution: the bare
	// field name in single-table context, "table.field" otherwise, or a
	// user AS alias overriding both.
	Alias() string
}

func errUnimplementedColumn(kind string) error {
	return errkind.New(errkind.Unimplemented, "UNIMPLEMENTED", kind+" has no columnar evaluation")
}
