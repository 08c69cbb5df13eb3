package resolver

import (
	"reflect"

	"github.com/kgcyyds/miniob-2024/pkg/ast"
	"github.com/kgcyyds/miniob-2024/pkg/errkind"
	"github.com/kgcyyds/miniob-2024/pkg/expr"
)

// resolveSelect resolves a top-level SELECT. parent is nil for a
// top-level statement and set to the enclosing scope when resolving a
// subquery, enabling both correlated qualified-name lookups and the
// unqualified "default table" fallback of §4.3.
func (r *Resolver) resolveSelect(stmt *ast.SelectStmt, parent *scope) (*ResolvedSelect, error) {
	s := newScope(parent)

	if err := r.buildScope(s, stmt.From); err != nil {
		return nil, err
	}

	selectList, err := r.resolveSelectList(s, stmt.SelectList)
	if err != nil {
		return nil, err
	}

	var where expr.Expression
	if stmt.Where != nil {
		where, err = r.resolveExpr(s, stmt.Where)
		if err != nil {
			return nil, err
		}
	}

	groupBy := make([]expr.Expression, 0, len(stmt.GroupBy))
	for _, g := range stmt.GroupBy {
		ge, err := r.resolveExpr(s, g)
		if err != nil {
			return nil, err
		}
		groupBy = append(groupBy, ge)
	}

	if err := checkGroupingRule(stmt, groupBy); err != nil {
		return nil, err
	}

	var having expr.Expression
	if stmt.Having != nil {
		having, err = r.resolveExpr(s, stmt.Having)
		if err != nil {
			return nil, err
		}
	}

	orderBy := make([]OrderItem, 0, len(stmt.OrderBy))
	for _, o := range stmt.OrderBy {
		oe, err := r.resolveExpr(s, o.Expr)
		if err != nil {
			return nil, err
		}
		rekeyToProjection(oe, selectList)
		orderBy = append(orderBy, OrderItem{Expr: oe, Desc: o.Desc})
	}

	return &ResolvedSelect{
		Relations:  s.relations,
		SelectList: selectList,
		Where:      where,
		GroupBy:    groupBy,
		Having:     having,
		OrderBy:    orderBy,
		HasAgg:     s.hasAgg,
		Subqueries: *s.subqueries,
	}, nil
}

// buildScope binds every from-item and join in stmt.From order, resolving
// each ON condition incrementally so it can already see every relation
// bound so far (including itself, letting `t1 JOIN t2 ON t1.a = t2.a`
// reference either side regardless of declaration order within the pair).
func (r *Resolver) buildScope(s *scope, from []ast.FromItem) error {
	for _, item := range from {
		if err := r.bindOne(s, item.Table, item.Alias, nil); err != nil {
			return err
		}
		for _, j := range item.Joins {
			if err := r.bindOne(s, j.Table, j.Alias, j.On); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Resolver) bindOne(s *scope, tableName, alias string, onAst ast.Expr) error {
	tbl, err := r.db.Table(tableName)
	if err != nil {
		return err
	}
	if alias == "" {
		alias = tableName
	}
	rel := &Relation{Alias: alias, Table: tbl}
	if err := s.addRelation(rel); err != nil {
		return err
	}
	if onAst != nil {
		on, err := r.resolveExpr(s, onAst)
		if err != nil {
			return err
		}
		rel.On = on
	}
	return nil
}

// resolveSelectList expands every `*`/`table.*` against the flattened
// join relations and resolves the rest, applying each item's AS alias
// uniformly via aliasedExpr.
func (r *Resolver) resolveSelectList(s *scope, items []ast.SelectItem) ([]SelectItem, error) {
	var out []SelectItem
	for _, item := range items {
		if star, ok := item.Expr.(*ast.Star); ok {
			expanded, err := r.expandStar(s, star)
			if err != nil {
				return nil, err
			}
			out = append(out, expanded...)
			continue
		}
		e, err := r.resolveExpr(s, item.Expr)
		if err != nil {
			return nil, err
		}
		e = withAlias(e, item.Alias)
		out = append(out, SelectItem{Expr: e, Alias: e.Alias()})
	}
	return out, nil
}

// rekeyToProjection binds an ORDER BY key that names the same column as a
// select-list item to that item's output position, via FieldExpr.Pos.
// The physical Sort operator runs against Project's output tuple, whose
// FindCell resolves by projected output alias only (table qualification
// is meaningless once a row has been projected); an ORDER BY key
// re-resolved against the pre-projection scope still carries its base
// column name, so left alone it would look up a cell no ProjectTuple can
// ever hold under that name. Positional binding sidesteps the mismatch
// entirely.
func rekeyToProjection(oe expr.Expression, selectList []SelectItem) {
	fe, ok := oe.(*expr.FieldExpr)
	if !ok || !fe.IsResolved() {
		return
	}
	for i, item := range selectList {
		sf, ok := unwrapField(item.Expr)
		if !ok || !sf.IsResolved() {
			continue
		}
		if sf.ResolvedTable() == fe.ResolvedTable() && sf.ResolvedMeta().FieldID == fe.ResolvedMeta().FieldID {
			fe.Pos = i
			return
		}
	}
}

// unwrapField sees through an AS-alias wrapper to check whether a
// select-list item is (or wraps) a FieldExpr.
func unwrapField(e expr.Expression) (*expr.FieldExpr, bool) {
	for {
		if fe, ok := e.(*expr.FieldExpr); ok {
			return fe, true
		}
		u, ok := e.(interface{ Unwrap() expr.Expression })
		if !ok {
			return nil, false
		}
		e = u.Unwrap()
	}
}

func (r *Resolver) expandStar(s *scope, star *ast.Star) ([]SelectItem, error) {
	var rels []*Relation
	if star.Table != "" {
		rel, ok := s.byAlias[star.Table]
		if !ok {
			return nil, errFieldMissing(star.Table + ".*")
		}
		rels = []*Relation{rel}
	} else {
		rels = s.relations
	}

	qualified := len(s.relations) > 1
	var out []SelectItem
	for _, rel := range rels {
		for _, name := range rel.Table.Meta.UserFieldNames() {
			fm, _ := rel.Table.Meta.FieldByName(name)
			fe := expr.NewFieldExpr(rel.Alias, name)
			fe.Resolve(rel.Alias, fm, qualified)
			out = append(out, SelectItem{Expr: fe, Alias: fe.Alias()})
		}
	}
	return out, nil
}

// checkGroupingRule implements the stricter grouping-without-aggregates
// rule: when any aggregate expression appears in the select list, every
// non-aggregate select expression must structurally appear in GROUP BY.
// Runs against the raw AST rather than the resolved tree since ast.Expr
// nodes are simpler value/pointer structs to compare structurally.
func checkGroupingRule(stmt *ast.SelectStmt, resolvedGroupBy []expr.Expression) error {
	hasAgg := false
	for _, item := range stmt.SelectList {
		if astContainsAgg(item.Expr) {
			hasAgg = true
			break
		}
	}
	if !hasAgg {
		return nil
	}
	for _, item := range stmt.SelectList {
		if astContainsAgg(item.Expr) {
			continue
		}
		if _, isStar := item.Expr.(*ast.Star); isStar {
			return errkind.New(errkind.Semantic, errkind.CodeGroupByViolation,
				"non-aggregate expression not in GROUP BY")
		}
		found := false
		for _, g := range stmt.GroupBy {
			if astEqual(item.Expr, g) {
				found = true
				break
			}
		}
		if !found {
			return errkind.New(errkind.Semantic, errkind.CodeGroupByViolation,
				"non-aggregate expression not in GROUP BY")
		}
	}
	return nil
}

func astContainsAgg(e ast.Expr) bool {
	switch n := e.(type) {
	case *ast.AggCall:
		return true
	case *ast.UnaryExpr:
		return astContainsAgg(n.Child)
	case *ast.BinaryArithExpr:
		return astContainsAgg(n.Left) || astContainsAgg(n.Right)
	case *ast.CompareExpr:
		return astContainsAgg(n.Left) || astContainsAgg(n.Right)
	case *ast.LikeExpr:
		return astContainsAgg(n.Left) || astContainsAgg(n.Right)
	case *ast.IsNullExpr:
		return astContainsAgg(n.Child)
	case *ast.LogicalExpr:
		for _, c := range n.Children {
			if astContainsAgg(c) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// astEqual reports whether a and b are structurally identical expression
// trees; subqueries compare by pointer identity (the same *ast.SelectStmt
// value) since two syntactically similar subqueries are not the same
// grouping key.
func astEqual(a, b ast.Expr) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch an := a.(type) {
	case *ast.Ident:
		bn, ok := b.(*ast.Ident)
		return ok && *an == *bn
	case *ast.Literal:
		bn, ok := b.(*ast.Literal)
		return ok && an.Value.Equals(bn.Value)
	case *ast.UnaryExpr:
		bn, ok := b.(*ast.UnaryExpr)
		return ok && an.Op == bn.Op && astEqual(an.Child, bn.Child)
	case *ast.BinaryArithExpr:
		bn, ok := b.(*ast.BinaryArithExpr)
		return ok && an.Op == bn.Op && astEqual(an.Left, bn.Left) && astEqual(an.Right, bn.Right)
	case *ast.CompareExpr:
		bn, ok := b.(*ast.CompareExpr)
		return ok && an.Op == bn.Op && astEqual(an.Left, bn.Left) && astEqual(an.Right, bn.Right)
	default:
		return reflect.DeepEqual(a, b)
	}
}
