package resolver

import (
	"github.com/kgcyyds/miniob-2024/pkg/catalog"
	"github.com/kgcyyds/miniob-2024/pkg/expr"
	"github.com/kgcyyds/miniob-2024/pkg/schema"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// Statement is any resolved top-level node, the output of Resolver.Resolve
// and the input pkg/logicalplan builds an operator tree from.
type Statement interface {
	isResolved()
}

// PendingSubquery pairs a SubQueryExpr still awaiting its physical
// operator with the resolved SELECT it was built from. The planner walks
// every statement's Subqueries slice, plans each Resolved tree, and
// assigns the result to Expr.Operator before the enclosing statement is
// itself planned -- keeping pkg/resolver free of a dependency on
// pkg/logicalplan/pkg/physicalplan (see DESIGN.md).
type PendingSubquery struct {
	Expr     *expr.SubQueryExpr
	Resolved *ResolvedSelect
}

// Relation is one bound entry of a resolved FROM list: a catalog table
// under an alias, plus the resolved ON condition that attached it (nil
// for the first relation and for a comma cross-join).
type Relation struct {
	Alias string
	Table *catalog.Table
	On    expr.Expression
}

// SelectItem is one resolved, aliased select-list output expression.
type SelectItem struct {
	Expr  expr.Expression
	Alias string
}

// OrderItem is one resolved ORDER BY key.
type OrderItem struct {
	Expr expr.Expression
	Desc bool
}

// Assignment binds one UPDATE SET clause: which field of the table (by
// position among its full Fields, system fields included) receives the
// value of Value, evaluated per row.
type Assignment struct {
	FieldIndex int
	Value      expr.Expression
}

type ResolvedSelect struct {
	Relations  []*Relation
	SelectList []SelectItem
	Where      expr.Expression
	GroupBy    []expr.Expression
	Having     expr.Expression
	OrderBy    []OrderItem
	HasAgg     bool
	Subqueries []PendingSubquery
}

func (*ResolvedSelect) isResolved() {}

type ResolvedInsert struct {
	Table *catalog.Table
	Rows  [][]types.Value
}

func (*ResolvedInsert) isResolved() {}

type ResolvedDelete struct {
	Table      *catalog.Table
	Alias      string
	Where      expr.Expression
	Subqueries []PendingSubquery
}

func (*ResolvedDelete) isResolved() {}

type ResolvedUpdate struct {
	Table       *catalog.Table
	Alias       string
	Assignments []Assignment
	Where       expr.Expression
	Subqueries  []PendingSubquery
}

func (*ResolvedUpdate) isResolved() {}

type ResolvedCreateTable struct {
	Meta *schema.TableMeta
}

func (*ResolvedCreateTable) isResolved() {}

type ResolvedDropTable struct {
	Table string
}

func (*ResolvedDropTable) isResolved() {}

type ResolvedCreateIndex struct {
	Table     *catalog.Table
	IndexName string
	FieldIDs  []int
	Unique    bool
}

func (*ResolvedCreateIndex) isResolved() {}

type ResolvedDropIndex struct {
	Table     *catalog.Table
	IndexName string
}

func (*ResolvedDropIndex) isResolved() {}

type ResolvedDescTable struct {
	Table *catalog.Table
}

func (*ResolvedDescTable) isResolved() {}

type ResolvedShowTables struct {
	Names []string
}

func (*ResolvedShowTables) isResolved() {}

type ResolvedLoadData struct {
	File  string
	Table *catalog.Table
}

func (*ResolvedLoadData) isResolved() {}

// ResolvedExplain wraps the resolved form of the statement it dumps
// rather than executes.
type ResolvedExplain struct {
	Inner Statement
}

func (*ResolvedExplain) isResolved() {}

type ResolvedCalc struct {
	Exprs      []expr.Expression
	Subqueries []PendingSubquery
}

func (*ResolvedCalc) isResolved() {}

type ResolvedSync struct{}

func (*ResolvedSync) isResolved() {}

type ResolvedBegin struct{}

func (*ResolvedBegin) isResolved() {}

type ResolvedCommit struct{}

func (*ResolvedCommit) isResolved() {}

type ResolvedRollback struct{}

func (*ResolvedRollback) isResolved() {}

type ResolvedSetVariable struct{ Name, Value string }

func (*ResolvedSetVariable) isResolved() {}

type ResolvedExit struct{}

func (*ResolvedExit) isResolved() {}

type ResolvedHelp struct{}

func (*ResolvedHelp) isResolved() {}
