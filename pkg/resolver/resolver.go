// Package resolver implements the statement resolver of §4.3: it binds
// the bare (table, field) references of pkg/ast against a pkg/catalog.Db,
// checks arity and types, and rebuilds every statement into the
// pkg/expr.Expression tree the planner consumes. Grounded on
// original_source/insert_stmt.cpp's arity/type/nullable/length checks,
// generalized to every DML/DDL statement kind named in §4.3.
package resolver

import (
	"strings"

	"github.com/kgcyyds/miniob-2024/pkg/aggregation"
	"github.com/kgcyyds/miniob-2024/pkg/ast"
	"github.com/kgcyyds/miniob-2024/pkg/catalog"
	"github.com/kgcyyds/miniob-2024/pkg/errkind"
	"github.com/kgcyyds/miniob-2024/pkg/expr"
	"github.com/kgcyyds/miniob-2024/pkg/primitives"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// Resolver binds parsed statements against a catalog.
type Resolver struct {
	db *catalog.Db
}

func NewResolver(db *catalog.Db) *Resolver {
	return &Resolver{db: db}
}

// Resolve dispatches over every ast.StatementKind, producing the matching
// Resolved* output type.
func (r *Resolver) Resolve(stmt ast.Statement) (Statement, error) {
	switch s := stmt.(type) {
	case *ast.SelectStmt:
		return r.resolveSelect(s, nil)
	case *ast.InsertStmt:
		return r.resolveInsert(s)
	case *ast.DeleteStmt:
		return r.resolveDelete(s)
	case *ast.UpdateStmt:
		return r.resolveUpdate(s)
	case *ast.CreateTableStmt:
		return r.resolveCreateTable(s)
	case *ast.DropTableStmt:
		return &ResolvedDropTable{Table: s.Table}, nil
	case *ast.CreateIndexStmt:
		return r.resolveCreateIndex(s)
	case *ast.DropIndexStmt:
		return r.resolveDropIndex(s)
	case *ast.DescTableStmt:
		return r.resolveDescTable(s)
	case *ast.ShowTablesStmt:
		return &ResolvedShowTables{Names: r.db.TableNames()}, nil
	case *ast.LoadDataStmt:
		return r.resolveLoadData(s)
	case *ast.ExplainStmt:
		return r.resolveExplain(s)
	case *ast.CalcStmt:
		return r.resolveCalc(s)
	case *ast.SyncStmt:
		return &ResolvedSync{}, nil
	case *ast.BeginStmt:
		return &ResolvedBegin{}, nil
	case *ast.CommitStmt:
		return &ResolvedCommit{}, nil
	case *ast.RollbackStmt:
		return &ResolvedRollback{}, nil
	case *ast.SetVariableStmt:
		return &ResolvedSetVariable{Name: s.Name, Value: s.Value}, nil
	case *ast.ExitStmt:
		return &ResolvedExit{}, nil
	case *ast.HelpStmt:
		return &ResolvedHelp{}, nil
	default:
		return nil, errkind.New(errkind.Internal, "INTERNAL", "unhandled statement kind")
	}
}

// scope tracks the relations visible while resolving one SELECT (or a
// subquery nested inside one), plus the parent scope chain used to fall
// back a qualified reference to an enclosing query's alias for correlated
// subqueries.
type scope struct {
	parent          *scope
	relations       []*Relation
	byAlias         map[string]*Relation
	defaultRelation *Relation // set when the parent scope has exactly one relation
	subqueries      *[]PendingSubquery
	hasAgg          bool
}

// newScope starts a fresh scope for one SELECT's resolution. parent, when
// set, is used only for correlated-reference lookup (bindField's walk up
// the chain) and to seed defaultRelation -- each scope collects its own
// Subqueries independently, since a nested SelectStmt's pending subquery
// list belongs to its own ResolvedSelect, not its enclosing query's.
func newScope(parent *scope) *scope {
	s := &scope{parent: parent, byAlias: make(map[string]*Relation), subqueries: &[]PendingSubquery{}}
	if parent != nil && len(parent.relations) == 1 {
		s.defaultRelation = parent.relations[0]
	}
	return s
}

// emptyScope builds a scope with no relations, used for INSERT VALUES and
// CALC where any field reference is necessarily an error.
func emptyScope() *scope {
	return &scope{byAlias: make(map[string]*Relation), subqueries: &[]PendingSubquery{}}
}

func (s *scope) addRelation(rel *Relation) error {
	if _, exists := s.byAlias[rel.Alias]; exists {
		return errkind.New(errkind.Semantic, errkind.CodeInvalidArgument, "duplicate table alias: "+rel.Alias)
	}
	s.relations = append(s.relations, rel)
	s.byAlias[rel.Alias] = rel
	return nil
}

func errFieldMissing(name string) error {
	return errkind.New(errkind.Schema, errkind.CodeSchemaFieldMissing, "unknown field: "+name)
}

// bindField implements the field-resolution routine of §4.3: a qualified
// reference is looked up directly (falling back through the parent scope
// chain for correlated references); an unqualified reference uses the
// sole relation in scope, or the default relation carried down from a
// singleton parent scope, and otherwise fails.
func (s *scope) bindField(tableName, fieldName string) (*Relation, error) {
	if tableName != "" {
		for sc := s; sc != nil; sc = sc.parent {
			if rel, ok := sc.byAlias[tableName]; ok {
				return rel, nil
			}
		}
		return nil, errFieldMissing(tableName + "." + fieldName)
	}
	if len(s.relations) == 1 {
		return s.relations[0], nil
	}
	if s.defaultRelation != nil {
		return s.defaultRelation, nil
	}
	return nil, errFieldMissing(fieldName)
}

// resolveIdent binds an ast.Ident to a FieldExpr, per bindField above.
func (s *scope) resolveIdent(id *ast.Ident) (expr.Expression, error) {
	rel, err := s.bindField(id.Table, id.Field)
	if err != nil {
		return nil, err
	}
	fm, ok := rel.Table.Meta.FieldByName(id.Field)
	if !ok {
		return nil, errFieldMissing(id.Field)
	}
	fe := expr.NewFieldExpr(rel.Alias, id.Field)
	fe.Resolve(rel.Alias, fm, len(s.relations) > 1)
	return fe, nil
}

func arithOpFor(op ast.ArithOp) expr.ArithOp {
	switch op {
	case ast.OpAdd:
		return expr.OpAdd
	case ast.OpSub:
		return expr.OpSubtract
	case ast.OpMul:
		return expr.OpMultiply
	case ast.OpDiv:
		return expr.OpDivide
	default:
		return expr.OpNegate
	}
}

func compOpFor(op ast.CompOp) primitives.CompOp {
	switch op {
	case ast.OpEQ:
		return primitives.Equals
	case ast.OpNE:
		return primitives.NotEqual
	case ast.OpLT:
		return primitives.LessThan
	case ast.OpLE:
		return primitives.LessEqual
	case ast.OpGT:
		return primitives.GreaterThan
	default:
		return primitives.GreaterEqual
	}
}

func aggOpFor(fn string, star bool) (aggregation.Op, error) {
	if star {
		return aggregation.CountStar, nil
	}
	switch strings.ToUpper(fn) {
	case "COUNT":
		return aggregation.Count, nil
	case "SUM":
		return aggregation.Sum, nil
	case "AVG":
		return aggregation.Avg, nil
	case "MAX":
		return aggregation.Max, nil
	case "MIN":
		return aggregation.Min, nil
	default:
		return 0, errkind.New(errkind.Semantic, errkind.CodeInvalidArgument, "unknown aggregate function: "+fn)
	}
}

// aliasedExpr overrides Alias() on an arbitrary Expression without
// depending on each node kind's own SetAlias method, used to apply a
// user-supplied `AS alias` uniformly across every resolved node kind.
type aliasedExpr struct {
	expr.Expression
	alias string
}

func withAlias(e expr.Expression, alias string) expr.Expression {
	if alias == "" {
		return e
	}
	return &aliasedExpr{Expression: e, alias: alias}
}

func (a *aliasedExpr) Alias() string { return a.alias }

// Unwrap exposes the wrapped expression, letting downstream code (e.g.
// the logical planner's aggregate-collection walk) see through an AS
// alias to the underlying node kind.
func (a *aliasedExpr) Unwrap() expr.Expression { return a.Expression }

// resolveExpr translates one ast.Expr node into an expr.Expression bound
// against s, recursing into nested subqueries via r.resolveSelect. Star
// must be expanded by the caller (resolveSelectList/expandStar) before
// reaching here; encountering one is an internal error.
func (r *Resolver) resolveExpr(s *scope, e ast.Expr) (expr.Expression, error) {
	switch n := e.(type) {
	case *ast.Ident:
		return s.resolveIdent(n)

	case *ast.Star:
		return nil, errkind.New(errkind.Internal, "INTERNAL", "unexpanded star reached expression resolution")

	case *ast.Literal:
		return expr.NewValueExpr(n.Value), nil

	case *ast.UnaryExpr:
		child, err := r.resolveExpr(s, n.Child)
		if err != nil {
			return nil, err
		}
		return expr.NewArithmeticExpr(expr.OpNegate, child, nil), nil

	case *ast.BinaryArithExpr:
		left, err := r.resolveExpr(s, n.Left)
		if err != nil {
			return nil, err
		}
		right, err := r.resolveExpr(s, n.Right)
		if err != nil {
			return nil, err
		}
		return expr.NewArithmeticExpr(arithOpFor(n.Op), left, right), nil

	case *ast.CompareExpr:
		left, err := r.resolveExpr(s, n.Left)
		if err != nil {
			return nil, err
		}
		right, err := r.resolveExpr(s, n.Right)
		if err != nil {
			return nil, err
		}
		return expr.NewOrdinaryComparison(compOpFor(n.Op), left, right), nil

	case *ast.LikeExpr:
		left, err := r.resolveExpr(s, n.Left)
		if err != nil {
			return nil, err
		}
		right, err := r.resolveExpr(s, n.Right)
		if err != nil {
			return nil, err
		}
		return expr.NewLikeComparison(n.Negate, left, right), nil

	case *ast.IsNullExpr:
		child, err := r.resolveExpr(s, n.Child)
		if err != nil {
			return nil, err
		}
		return expr.NewNullComparison(n.Negate, child), nil

	case *ast.InExpr:
		left, err := r.resolveExpr(s, n.Left)
		if err != nil {
			return nil, err
		}
		if n.Sub != nil {
			sub, err := r.resolveSelect(n.Sub, s)
			if err != nil {
				return nil, err
			}
			se := expr.NewSubQueryExpr(nil)
			*s.subqueries = append(*s.subqueries, PendingSubquery{Expr: se, Resolved: sub})
			return expr.NewInComparison(n.Negate, left, se), nil
		}
		items := make([]expr.Expression, 0, len(n.List))
		for _, it := range n.List {
			ie, err := r.resolveExpr(s, it)
			if err != nil {
				return nil, err
			}
			items = append(items, ie)
		}
		return expr.NewInComparison(n.Negate, left, expr.NewListExpr(items...)), nil

	case *ast.ExistsExpr:
		sub, err := r.resolveSelect(n.Sub, s)
		if err != nil {
			return nil, err
		}
		se := expr.NewSubQueryExpr(nil)
		*s.subqueries = append(*s.subqueries, PendingSubquery{Expr: se, Resolved: sub})
		return expr.NewExistsComparison(n.Negate, se), nil

	case *ast.ScalarSubquery:
		sub, err := r.resolveSelect(n.Sub, s)
		if err != nil {
			return nil, err
		}
		se := expr.NewSubQueryExpr(nil)
		*s.subqueries = append(*s.subqueries, PendingSubquery{Expr: se, Resolved: sub})
		return se, nil

	case *ast.LogicalExpr:
		kind := expr.And
		if n.Op == ast.OpOr {
			kind = expr.Or
		}
		children := make([]expr.Expression, 0, len(n.Children))
		for _, c := range n.Children {
			ce, err := r.resolveExpr(s, c)
			if err != nil {
				return nil, err
			}
			children = append(children, ce)
		}
		return expr.NewConjunctionExpr(kind, children...), nil

	case *ast.AggCall:
		s.hasAgg = true
		op, err := aggOpFor(n.Func, n.Star)
		if err != nil {
			return nil, err
		}
		var arg expr.Expression
		if n.Arg != nil {
			arg, err = r.resolveExpr(s, n.Arg)
			if err != nil {
				return nil, err
			}
			if arg.ValueType() != types.Undefined && !arg.ValueType().IsNumeric() &&
				(op == aggregation.Sum || op == aggregation.Avg) {
				return nil, errkind.New(errkind.Semantic, errkind.CodeAggregateTypeMismatch,
					n.Func+" requires a numeric argument")
			}
		}
		return expr.NewAggregateExpr(op, arg), nil

	default:
		return nil, errkind.New(errkind.Internal, "INTERNAL", "unhandled expression kind")
	}
}
