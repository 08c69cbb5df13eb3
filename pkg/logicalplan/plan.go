// Package logicalplan builds the logical operator tree of §4.4 from a
// resolved statement: TableGet, Predicate, Join (inner only), Project,
// GroupBy, Order, Explain, Insert, Delete, Update, Calc. Every node is a
// thin struct pairing a shape with the resolved expr.Expression trees
// pkg/resolver already produced -- this package's only job is assembling
// them bottom-up, not any further rewriting.
package logicalplan

import (
	"github.com/kgcyyds/miniob-2024/pkg/catalog"
	"github.com/kgcyyds/miniob-2024/pkg/expr"
	"github.com/kgcyyds/miniob-2024/pkg/resolver"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// Node is the marker every logical plan node implements.
type Node interface {
	isPlan()
}

// TableGet is a leaf reading every row of one relation under one
// from-clause alias.
type TableGet struct {
	Alias string
	Table *catalog.Table
}

// Join is always an inner join, following the parsed from_list order
// (§4.4's "then inner joins following the parsed from_list order").
type Join struct {
	Left, Right Node
	On          expr.Expression
}

// Predicate filters Child by Cond.
type Predicate struct {
	Child Node
	Cond  expr.Expression
}

// Project evaluates Items against each row of Child.
type Project struct {
	Child Node
	Items []resolver.SelectItem
}

// GroupBy aggregates Child by GroupExprs (empty means the degenerate
// single-bucket scalar-aggregate case), then applies the optional
// post-aggregation Having filter.
type GroupBy struct {
	Child      Node
	GroupExprs []expr.Expression
	AggExprs   []*expr.AggregateExpr
	Having     expr.Expression
}

// Order is the optional top-level sort.
type Order struct {
	Child Node
	Items []resolver.OrderItem
}

// Explain wraps a plan without executing it.
type Explain struct {
	Child Node
}

// Insert has no child: it materializes its own constant rows.
type Insert struct {
	Table *catalog.Table
	Rows  [][]types.Value
}

// Delete removes every row Child produces.
type Delete struct {
	Table *catalog.Table
	Child Node
}

// Update applies Assignments to every row Child produces.
type Update struct {
	Table       *catalog.Table
	Child       Node
	Assignments []resolver.Assignment
}

// Calc is a leaf evaluating a scalar expression list against no table.
type Calc struct {
	Exprs []expr.Expression
}

func (*TableGet) isPlan()  {}
func (*Join) isPlan()      {}
func (*Predicate) isPlan() {}
func (*Project) isPlan()   {}
func (*GroupBy) isPlan()   {}
func (*Order) isPlan()     {}
func (*Explain) isPlan()   {}
func (*Insert) isPlan()    {}
func (*Delete) isPlan()    {}
func (*Update) isPlan()    {}
func (*Calc) isPlan()      {}
