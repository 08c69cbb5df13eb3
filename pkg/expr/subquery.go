package expr

import (
	"github.com/kgcyyds/miniob-2024/pkg/chunk"
	"github.com/kgcyyds/miniob-2024/pkg/errkind"
	"github.com/kgcyyds/miniob-2024/pkg/storage"
	"github.com/kgcyyds/miniob-2024/pkg/tuple"
	"github.com/kgcyyds/miniob-2024/pkg/txn"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// PhysicalOperator is the minimal iterator contract (§4.5) a SubQueryExpr
// needs from the physical tree built for its nested SelectStmt. It is
// declared here, not imported from pkg/execution, so that pkg/execution
// can depend on pkg/expr without a cycle -- the same collaborator-
// interface pattern pkg/storage uses for the record manager.
type PhysicalOperator interface {
	Open(tx *txn.Transaction) error
	Next() (tuple.Tuple, error)
	Close() error
	// SetParentTuple rewinds the operator's correlated-reference context
	// to row before each evaluation against a new outer row. row is a
	// non-owning reference valid only for the duration of the following
	// Open/Next/Close cycle (§9's decision on the parent-tuple lifetime).
	SetParentTuple(row tuple.Tuple)
}

// Existence is implemented by SubQueryExpr for the EXISTS/NOT EXISTS
// usage mode.
type Existence interface {
	Exists(t tuple.Tuple) (bool, error)
}

// SubQueryExpr wraps a nested SelectStmt's physical operator tree. It
// supports all three usage modes named in §4.2: GetValue implements
// scalar mode directly; Contains implements ValueSource for IN/NOT IN;
// Exists implements Existence for EXISTS/NOT EXISTS. Every mode opens the
// operator on demand and closes it via a deferred scoped guard on every
// exit path, per §4.5's "closed by a scoped guard on each comparison
// evaluation".
type SubQueryExpr struct {
	Operator PhysicalOperator
	tx       *txn.Transaction
	alias    string
}

func NewSubQueryExpr(op PhysicalOperator) *SubQueryExpr {
	return &SubQueryExpr{Operator: op}
}

// SetTransaction binds the transaction handle the physical tree opens
// under. Nothing in the planner or the operators calls it, so the nested
// tree is opened with a nil transaction unless a caller sets one.
func (e *SubQueryExpr) SetTransaction(tx *txn.Transaction) { e.tx = tx }

func (e *SubQueryExpr) SetAlias(a string) { e.alias = a }

// GetValue implements scalar-subquery mode: exactly one row of one
// column is expected; more than one row is a runtime error; zero rows
// yields NULL.
func (e *SubQueryExpr) GetValue(t tuple.Tuple) (types.Value, error) {
	e.Operator.SetParentTuple(t)
	if err := e.Operator.Open(e.tx); err != nil {
		return nil, err
	}
	defer e.Operator.Close()

	row, err := e.Operator.Next()
	if err == storage.ErrEOF {
		return types.Nil, nil
	}
	if err != nil {
		return nil, err
	}
	v, err := row.CellAt(0)
	if err != nil {
		return nil, err
	}
	if _, err := e.Operator.Next(); err != storage.ErrEOF {
		if err == nil {
			return nil, errkind.New(errkind.Semantic, errkind.CodeSubqueryTooManyRows, "scalar subquery returned more than one row")
		}
		return nil, err
	}
	return v, nil
}

// Contains implements ValueSource for IN/NOT IN list mode: streamed,
// short-circuits to true on the first equality match.
func (e *SubQueryExpr) Contains(t tuple.Tuple, key types.Value) (bool, bool, error) {
	if key.IsNull() {
		return false, true, nil
	}
	e.Operator.SetParentTuple(t)
	if err := e.Operator.Open(e.tx); err != nil {
		return false, false, err
	}
	defer e.Operator.Close()

	sawNull := false
	for {
		row, err := e.Operator.Next()
		if err == storage.ErrEOF {
			return false, sawNull, nil
		}
		if err != nil {
			return false, false, err
		}
		v, err := row.CellAt(0)
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
}

// Exists implements the EXISTS/NOT EXISTS usage mode: true iff the
// operator produces at least one row.
func (e *SubQueryExpr) Exists(t tuple.Tuple) (bool, error) {
	e.Operator.SetParentTuple(t)
	if err := e.Operator.Open(e.tx); err != nil {
		return false, err
	}
	defer e.Operator.Close()

	_, err := e.Operator.Next()
	if err == storage.ErrEOF {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (e *SubQueryExpr) GetColumn(c *chunk.Chunk) (chunk.Column, error) {
	return chunk.Column{}, errUnimplementedColumn("SubQueryExpr")
}

func (e *SubQueryExpr) ValueType() types.Type { return types.Undefined }

func (e *SubQueryExpr) Alias() string {
	if e.alias != "" {
		return e.alias
	}
	return "?"
}
