package logicalplan

import (
	"github.com/kgcyyds/miniob-2024/pkg/errkind"
	"github.com/kgcyyds/miniob-2024/pkg/expr"
	"github.com/kgcyyds/miniob-2024/pkg/resolver"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// Build turns one resolved statement into a logical plan tree. Only
// statement kinds that name an actual row-producing computation
// (SELECT/INSERT/DELETE/UPDATE/CALC, and EXPLAIN over any of those) go
// through the planner; catalog statements (CREATE/DROP/...) are executed
// directly against pkg/catalog by the engine and never reach here.
func Build(stmt resolver.Statement) (Node, error) {
	switch s := stmt.(type) {
	case *resolver.ResolvedSelect:
		return buildSelect(s)
	case *resolver.ResolvedInsert:
		return &Insert{Table: s.Table, Rows: s.Rows}, nil
	case *resolver.ResolvedDelete:
		var child Node = &TableGet{Alias: s.Alias, Table: s.Table}
		if s.Where != nil {
			child = &Predicate{Child: child, Cond: s.Where}
		}
		return &Delete{Table: s.Table, Child: child}, nil
	case *resolver.ResolvedUpdate:
		var child Node = &TableGet{Alias: s.Alias, Table: s.Table}
		if s.Where != nil {
			child = &Predicate{Child: child, Cond: s.Where}
		}
		return &Update{Table: s.Table, Child: child, Assignments: s.Assignments}, nil
	case *resolver.ResolvedCalc:
		return &Calc{Exprs: s.Exprs}, nil
	case *resolver.ResolvedExplain:
		inner, err := Build(s.Inner)
		if err != nil {
			return nil, err
		}
		return &Explain{Child: inner}, nil
	default:
		return nil, errkind.New(errkind.Internal, "INTERNAL", "statement kind is not a query plan")
	}
}

// buildSelect assembles the bottom-up tree of §4.4: scans, then inner
// joins in from_list order, then the WHERE predicate, then
// aggregation/grouping, then projection/HAVING, then top-level sort.
func buildSelect(s *resolver.ResolvedSelect) (Node, error) {
	if len(s.Relations) == 0 {
		return nil, errkind.New(errkind.Internal, "INTERNAL", "SELECT resolved with no relations")
	}

	var root Node = &TableGet{Alias: s.Relations[0].Alias, Table: s.Relations[0].Table}
	for _, rel := range s.Relations[1:] {
		on := rel.On
		if on == nil {
			on = expr.NewValueExpr(types.NewBool(true))
		}
		root = &Join{Left: root, Right: &TableGet{Alias: rel.Alias, Table: rel.Table}, On: on}
	}

	if s.Where != nil {
		root = &Predicate{Child: root, Cond: s.Where}
	}

	if s.HasAgg || len(s.GroupBy) > 0 {
		aggExprs := collectAggregates(s.SelectList, s.Having)
		root = &GroupBy{Child: root, GroupExprs: s.GroupBy, AggExprs: aggExprs, Having: s.Having}
	} else if s.Having != nil {
		root = &Predicate{Child: root, Cond: s.Having}
	}

	root = &Project{Child: root, Items: s.SelectList}

	if len(s.OrderBy) > 0 {
		root = &Order{Child: root, Items: s.OrderBy}
	}

	return root, nil
}

// unwrapper is implemented by resolver's AS-alias decorator, letting this
// walk see past a user-supplied alias to the underlying node kind.
type unwrapper interface {
	Unwrap() expr.Expression
}

// collectAggregates walks every select-list item and the HAVING clause,
// gathering each distinct *expr.AggregateExpr node found (by pointer
// identity) in the order first seen -- the ordering HashGroupBy consumes
// to build its per-bucket accumulator list.
func collectAggregates(items []resolver.SelectItem, having expr.Expression) []*expr.AggregateExpr {
	var out []*expr.AggregateExpr
	seen := make(map[*expr.AggregateExpr]bool)

	var walk func(e expr.Expression)
	walk = func(e expr.Expression) {
		if e == nil {
			return
		}
		if u, ok := e.(unwrapper); ok {
			walk(u.Unwrap())
			return
		}
		switch n := e.(type) {
		case *expr.AggregateExpr:
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		case *expr.ArithmeticExpr:
			walk(n.Left)
			walk(n.Right)
		case *expr.ComparisonExpr:
			walk(n.Left)
			walk(n.Right)
		case *expr.ConjunctionExpr:
			for _, c := range n.Children {
				walk(c)
			}
		}
	}

	for _, item := range items {
		walk(item.Expr)
	}
	walk(having)
	return out
}
