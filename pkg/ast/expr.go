package ast

import "github.com/kgcyyds/miniob-2024/pkg/types"

// Expr is the unresolved expression tree. Field references carry a bare
// (table, name) pair; the resolver is what turns these into
// pkg/expr.Expression nodes bound to catalog metadata.
type Expr interface {
	exprNode()
}

// Ident is a field reference, table-qualified or bare.
type Ident struct {
	Table string // empty if unqualified
	Field string
}

// Star is `*` or `table.*`.
type Star struct {
	Table string // empty for a bare `*`
}

// Literal is an already-typed constant from the lexer: INT/FLOAT/CHARS
// literals produce the matching types.Value directly; NULL produces
// types.Nil. DATE literals stay CHARS at parse time — the resolver casts
// them once the target column type is known.
type Literal struct {
	Value  types.Value
	Line   int
	Column int
}

// ArithOp mirrors pkg/expr.ArithOp so the parser needs no dependency on
// pkg/expr.
type ArithOp int

const (
	OpAdd ArithOp = iota
	OpSub
	OpMul
	OpDiv
	OpNeg
)

type UnaryExpr struct {
	Op    ArithOp
	Child Expr
}

type BinaryArithExpr struct {
	Op          ArithOp
	Left, Right Expr
}

// CompOp mirrors primitives.CompOp for the same reason.
type CompOp int

const (
	OpEQ CompOp = iota
	OpNE
	OpLT
	OpLE
	OpGT
	OpGE
)

type CompareExpr struct {
	Op          CompOp
	Left, Right Expr
}

type LikeExpr struct {
	Negate      bool
	Left, Right Expr
}

type IsNullExpr struct {
	Negate bool
	Child  Expr
}

// InExpr covers both `expr IN (list)` and `expr IN (subquery)`; exactly
// one of List/Sub is set.
type InExpr struct {
	Negate bool
	Left   Expr
	List   []Expr
	Sub    *SelectStmt
}

type ExistsExpr struct {
	Negate bool
	Sub    *SelectStmt
}

// ScalarSubquery is a subquery used where a single value is expected,
// e.g. `WHERE a = (SELECT ...)`.
type ScalarSubquery struct {
	Sub *SelectStmt
}

type LogicalOp int

const (
	OpAnd LogicalOp = iota
	OpOr
)

type LogicalExpr struct {
	Op       LogicalOp
	Children []Expr
}

// AggCall is an aggregate function call: COUNT/SUM/AVG/MAX/MIN, or
// COUNT(*) when Star is true (Arg is nil in that case).
type AggCall struct {
	Func string
	Arg  Expr
	Star bool
}

func (Ident) exprNode()           {}
func (Star) exprNode()            {}
func (Literal) exprNode()         {}
func (UnaryExpr) exprNode()       {}
func (BinaryArithExpr) exprNode() {}
func (CompareExpr) exprNode()     {}
func (LikeExpr) exprNode()        {}
func (IsNullExpr) exprNode()      {}
func (InExpr) exprNode()          {}
func (ExistsExpr) exprNode()      {}
func (ScalarSubquery) exprNode()  {}
func (LogicalExpr) exprNode()     {}
func (AggCall) exprNode()         {}
