package physicalplan

import (
	"github.com/kgcyyds/miniob-2024/pkg/execution"
	"github.com/kgcyyds/miniob-2024/pkg/logicalplan"
	"github.com/kgcyyds/miniob-2024/pkg/resolver"
)

// PlanStatement builds the full physical operator tree for one resolved
// statement, then recursively plans every nested subquery it collected
// (IN/EXISTS/scalar usage per §4.2) and assigns each one's
// pkg/expr.SubQueryExpr.Operator field. This is the deferred half of the
// resolver's PendingSubquery pattern: the resolver cannot build these
// operators itself without pkg/resolver importing this package (and this
// package already imports pkg/resolver for its input types), so it hands
// back an unplanned Expr/Resolved pair for this function to finish.
func PlanStatement(stmt resolver.Statement) (execution.Operator, error) {
	node, err := logicalplan.Build(stmt)
	if err != nil {
		return nil, err
	}
	op, err := Build(node)
	if err != nil {
		return nil, err
	}
	if err := wireSubqueries(stmt); err != nil {
		return nil, err
	}
	return op, nil
}

func wireSubqueries(stmt resolver.Statement) error {
	for _, pending := range subqueriesOf(stmt) {
		subOp, err := PlanStatement(pending.Resolved)
		if err != nil {
			return err
		}
		pending.Expr.Operator = subOp
	}
	return nil
}

func subqueriesOf(stmt resolver.Statement) []resolver.PendingSubquery {
	switch s := stmt.(type) {
	case *resolver.ResolvedSelect:
		return s.Subqueries
	case *resolver.ResolvedDelete:
		return s.Subqueries
	case *resolver.ResolvedUpdate:
		return s.Subqueries
	case *resolver.ResolvedCalc:
		return s.Subqueries
	case *resolver.ResolvedExplain:
		return subqueriesOf(s.Inner)
	default:
		return nil
	}
}
