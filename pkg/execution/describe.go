package execution

import (
	"fmt"
	"strings"
)

// Describe renders op and its children as an indented tree, the same
// shape EXPLAIN prints instead of running the query. Unlike the
// teacher's EXPLAIN, which reconstructs its text from the logical plan,
// this walks the physical operator tree directly, so what EXPLAIN shows
// is exactly what Execute would run.
func Describe(op Operator) string {
	var b strings.Builder
	describeNode(&b, op, "")
	return b.String()
}

func describeNode(b *strings.Builder, op Operator, indent string) {
	switch o := op.(type) {
	case *TableScan:
		fmt.Fprintf(b, "%sTableScan(%s)\n", indent, o.alias)
	case *IndexScan:
		fmt.Fprintf(b, "%sIndexScan(%s via %s)\n", indent, o.alias, o.index.Name())
	case *Filter:
		fmt.Fprintf(b, "%sFilter\n", indent)
		describeNode(b, o.child, indent+"  ")
	case *Project:
		fmt.Fprintf(b, "%sProject(%d exprs)\n", indent, len(o.exprs))
		describeNode(b, o.child, indent+"  ")
	case *NestedLoopJoin:
		fmt.Fprintf(b, "%sNestedLoopJoin\n", indent)
		describeNode(b, o.left, indent+"  ")
		describeNode(b, o.right, indent+"  ")
	case *Sort:
		fmt.Fprintf(b, "%sSort(%d keys)\n", indent, len(o.keys))
		describeNode(b, o.child, indent+"  ")
	case *HashGroupBy:
		fmt.Fprintf(b, "%sHashGroupBy(%d keys, %d aggs)\n", indent, len(o.groupExprs), len(o.aggExprs))
		describeNode(b, o.child, indent+"  ")
	case *ScalarAggregate:
		fmt.Fprintf(b, "%sScalarAggregate(%d aggs)\n", indent, len(o.aggExprs))
		describeNode(b, o.child, indent+"  ")
	case *Insert:
		fmt.Fprintf(b, "%sInsert(%d rows)\n", indent, len(o.rows))
	case *Delete:
		fmt.Fprintf(b, "%sDelete\n", indent)
		describeNode(b, o.child, indent+"  ")
	case *Update:
		fmt.Fprintf(b, "%sUpdate(%d assignments)\n", indent, len(o.assignments))
		describeNode(b, o.child, indent+"  ")
	case *Explain:
		fmt.Fprintf(b, "%sExplain\n", indent)
		describeNode(b, o.child, indent+"  ")
	default:
		fmt.Fprintf(b, "%s%T\n", indent, op)
	}
}
