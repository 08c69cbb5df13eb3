// Package physicalplan translates a logicalplan.Node tree into the
// pkg/execution operator tree of §4.4/§4.5, applying the physical rules
// named there: TableGet becomes an IndexScan when the enclosing predicate
// carries an equality conjunct on an indexed attribute of that relation
// (a ChunkScan carrying the predicate otherwise; a bare TableGet becomes a
// TableScan), any other Predicate becomes Filter, Join
// becomes NestedLoopJoin, GroupBy becomes HashGroupBy or the degenerate
// ScalarAggregate, Project/Order/Explain map onto their execution
// counterparts directly.
package physicalplan

import (
	"github.com/kgcyyds/miniob-2024/pkg/errkind"
	"github.com/kgcyyds/miniob-2024/pkg/execution"
	"github.com/kgcyyds/miniob-2024/pkg/expr"
	"github.com/kgcyyds/miniob-2024/pkg/logicalplan"
	"github.com/kgcyyds/miniob-2024/pkg/primitives"
	"github.com/kgcyyds/miniob-2024/pkg/schema"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// Build translates one logical plan node (and its children) into a
// physical operator tree.
func Build(node logicalplan.Node) (execution.Operator, error) {
	switch n := node.(type) {
	case *logicalplan.TableGet:
		return execution.NewTableScan(n.Alias, n.Table), nil

	case *logicalplan.Join:
		left, err := Build(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := Build(n.Right)
		if err != nil {
			return nil, err
		}
		return execution.NewNestedLoopJoin(left, right, n.On), nil

	case *logicalplan.Predicate:
		if tg, ok := n.Child.(*logicalplan.TableGet); ok {
			if scan, residual, ok := planIndexScan(tg, n.Cond); ok {
				if residual == nil {
					return scan, nil
				}
				return execution.NewFilter(scan, residual), nil
			}
			assignFieldPositions(n.Cond, tg.Alias)
			return execution.NewChunkScan(tg.Alias, tg.Table, n.Cond), nil
		}
		child, err := Build(n.Child)
		if err != nil {
			return nil, err
		}
		return execution.NewFilter(child, n.Cond), nil

	case *logicalplan.Project:
		child, err := Build(n.Child)
		if err != nil {
			return nil, err
		}
		exprs := make([]expr.Expression, len(n.Items))
		for i, item := range n.Items {
			exprs[i] = item.Expr
		}
		return execution.NewProject(child, exprs), nil

	case *logicalplan.GroupBy:
		child, err := Build(n.Child)
		if err != nil {
			return nil, err
		}
		var op execution.Operator
		if len(n.GroupExprs) == 0 {
			op = execution.NewScalarAggregate(child, n.AggExprs)
		} else {
			op = execution.NewHashGroupBy(child, n.GroupExprs, n.AggExprs)
		}
		if n.Having != nil {
			op = execution.NewFilter(op, n.Having)
		}
		return op, nil

	case *logicalplan.Order:
		child, err := Build(n.Child)
		if err != nil {
			return nil, err
		}
		keys := make([]execution.SortKey, len(n.Items))
		for i, item := range n.Items {
			keys[i] = execution.SortKey{Expr: item.Expr, Desc: item.Desc}
		}
		return execution.NewSort(child, keys), nil

	case *logicalplan.Explain:
		child, err := Build(n.Child)
		if err != nil {
			return nil, err
		}
		return execution.NewExplain(child), nil

	case *logicalplan.Insert:
		return execution.NewInsert(n.Table, n.Rows), nil

	case *logicalplan.Delete:
		child, err := Build(n.Child)
		if err != nil {
			return nil, err
		}
		return execution.NewDelete(n.Table, child), nil

	case *logicalplan.Update:
		child, err := Build(n.Child)
		if err != nil {
			return nil, err
		}
		assignments := make([]execution.Assignment, len(n.Assignments))
		for i, a := range n.Assignments {
			assignments[i] = execution.Assignment{FieldIndex: a.FieldIndex, Value: a.Value}
		}
		return execution.NewUpdate(n.Table, child, assignments), nil

	case *logicalplan.Calc:
		return execution.NewCalc(n.Exprs), nil

	default:
		return nil, errkind.New(errkind.Internal, "INTERNAL", "unhandled logical plan node")
	}
}

// planIndexScan looks for an equality conjunct of Cond over an indexed
// field of tg and, if found, returns an IndexScan plus whatever conjuncts
// remain to be applied as a residual Filter. ok is false when no such
// conjunct exists, in which case the caller falls back to a ChunkScan.
func planIndexScan(tg *logicalplan.TableGet, cond expr.Expression) (execution.Operator, expr.Expression, bool) {
	conjuncts := flattenAnd(cond)
	for i, c := range conjuncts {
		cmp, ok := c.(*expr.ComparisonExpr)
		if !ok || cmp.Kind != expr.Ordinary || cmp.Op != primitives.Equals {
			continue
		}
		field, value, ok := splitEquality(cmp, tg.Alias)
		if !ok {
			continue
		}
		idx, ok := tg.Table.IndexOnField(field.ResolvedMeta().FieldID)
		if !ok {
			continue
		}
		v, err := value.GetValue(nil)
		if err != nil {
			continue
		}
		keyValues := make([]types.Value, tg.Table.Meta.FieldCount())
		for j := range keyValues {
			keyValues[j] = types.Nil
		}
		keyValues[field.ResolvedMeta().FieldID] = v
		key, err := schema.EncodeIndexKey(tg.Table.Meta, idx.FieldIDs(), keyValues)
		if err != nil {
			continue
		}
		scan := execution.NewIndexScan(tg.Alias, tg.Table, idx, key)
		residual := rebuildAnd(append(append([]expr.Expression{}, conjuncts[:i]...), conjuncts[i+1:]...))
		return scan, residual, true
	}
	return nil, nil, false
}

// assignFieldPositions binds every FieldExpr in cond that resolves
// against alias to its column's positional slot, letting FieldExpr's
// columnar kernel (and anything built on top of it) short-circuit
// FindCell once ChunkScan hands it a batch to evaluate. Nodes with no
// columnar kernel at all (aggregates, casts, subqueries, ...) are left
// alone; they simply push the whole predicate onto ChunkScan's row-wise
// fallback for that batch.
func assignFieldPositions(cond expr.Expression, alias string) {
	switch e := cond.(type) {
	case *expr.FieldExpr:
		if e.IsResolved() && e.ResolvedTable() == alias {
			e.Pos = e.ResolvedMeta().FieldID
		}
	case *expr.ComparisonExpr:
		if e.Left != nil {
			assignFieldPositions(e.Left, alias)
		}
		if e.Right != nil {
			assignFieldPositions(e.Right, alias)
		}
	case *expr.ConjunctionExpr:
		for _, c := range e.Children {
			assignFieldPositions(c, alias)
		}
	case *expr.ArithmeticExpr:
		if e.Left != nil {
			assignFieldPositions(e.Left, alias)
		}
		if e.Right != nil {
			assignFieldPositions(e.Right, alias)
		}
	case *expr.CastExpr:
		assignFieldPositions(e.Child, alias)
	}
}

// flattenAnd splits a top-level AND chain into its leaf conjuncts;
// anything else is returned as a single-element slice.
func flattenAnd(cond expr.Expression) []expr.Expression {
	conj, ok := cond.(*expr.ConjunctionExpr)
	if !ok || conj.Kind != expr.And {
		return []expr.Expression{cond}
	}
	var out []expr.Expression
	for _, c := range conj.Children {
		out = append(out, flattenAnd(c)...)
	}
	return out
}

func rebuildAnd(conjuncts []expr.Expression) expr.Expression {
	switch len(conjuncts) {
	case 0:
		return nil
	case 1:
		return conjuncts[0]
	default:
		return expr.NewConjunctionExpr(expr.And, conjuncts...)
	}
}

// splitEquality reports whether cmp is `alias.field = <constant>` (in
// either operand order), returning the field side and the constant side.
func splitEquality(cmp *expr.ComparisonExpr, alias string) (*expr.FieldExpr, expr.Expression, bool) {
	if fe, ok := cmp.Left.(*expr.FieldExpr); ok && fe.IsResolved() && fe.ResolvedTable() == alias {
		if _, isConst := cmp.Right.(*expr.ValueExpr); isConst {
			return fe, cmp.Right, true
		}
	}
	if fe, ok := cmp.Right.(*expr.FieldExpr); ok && fe.IsResolved() && fe.ResolvedTable() == alias {
		if _, isConst := cmp.Left.(*expr.ValueExpr); isConst {
			return fe, cmp.Left, true
		}
	}
	return nil, nil, false
}
