// Package chunk implements the vectorized execution unit of §3/§4.3: a
// Chunk is an ordered set of Columns, each either NORMAL (an owned array
// of count fixed-width cells) or CONSTANT (one cell broadcast across the
// chunk's logical length). Expression.GetColumn implementations that
// choose to support columnar evaluation build and consume Columns through
// this package; anything without a columnar kernel reports Unimplemented
// and the engine falls back to row-wise evaluation (§4.3).
//
// The teacher's execution model is purely row-at-a-time (one Tuple per
// Next call); there is no chunked/columnar precedent to adapt in that
// codebase, so this package's shape follows the spec's own Chunk/Column
// description directly, expressed in the same one-struct-per-kind style
// used throughout pkg/types.
package chunk

import "github.com/kgcyyds/miniob-2024/pkg/types"

// ColumnKind distinguishes an owned array of values from a single value
// broadcast across the chunk's logical length.
type ColumnKind int

const (
	Normal ColumnKind = iota
	Constant
)

// Column is one vector of values within a Chunk.
type Column struct {
	Kind ColumnKind
	// Data holds `count` values for a NORMAL column, or exactly one value
	// for a CONSTANT column.
	Data []types.Value
}

// NewNormalColumn wraps an owned, fully materialized array of values.
func NewNormalColumn(data []types.Value) Column {
	return Column{Kind: Normal, Data: data}
}

// NewConstantColumn wraps a single value broadcast across a chunk.
func NewConstantColumn(v types.Value) Column {
	return Column{Kind: Constant, Data: []types.Value{v}}
}

// At returns the logical ith value: Data[i] for NORMAL, Data[0] for
// CONSTANT regardless of i.
func (c Column) At(i int) types.Value {
	if c.Kind == Constant {
		return c.Data[0]
	}
	return c.Data[i]
}

// Len returns the column's own length: count for NORMAL, 1 for CONSTANT.
// Use Chunk.Length for the broadcast logical length shared by every
// column in a chunk.
func (c Column) Len() int { return len(c.Data) }

// Chunk is an ordered set of Columns sharing one logical length, either
// as their own count (NORMAL) or via broadcast (CONSTANT). Building a
// Chunk with columns of mismatched non-broadcast lengths is a caller bug;
// this package does not defensively re-validate it on every access.
type Chunk struct {
	Columns []Column
	Length  int
}

func NewChunk(length int, columns ...Column) *Chunk {
	return &Chunk{Columns: columns, Length: length}
}

func (c *Chunk) NumColumns() int { return len(c.Columns) }
