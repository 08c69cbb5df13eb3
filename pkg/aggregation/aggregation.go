// Package aggregation implements the per-bucket accumulator objects used
// by HashGroupBy (§4.5): one Aggregator instance per aggregate expression
// per group, fed one Value at a time via Merge and read out once via
// Result. Grounded on the teacher's pkg/execution/aggregation.Aggregator
// interface (Merge/Result shape), adapted from tuple-at-a-time Merge to
// value-at-a-time since the operator, not the aggregator, is responsible
// for evaluating the aggregate's argument expression against the current
// row.
package aggregation

import (
	"github.com/kgcyyds/miniob-2024/pkg/errkind"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// Op names an aggregate function.
type Op int

const (
	CountStar Op = iota
	Count
	Sum
	Avg
	Max
	Min
)

func (op Op) String() string {
	switch op {
	case CountStar:
		return "COUNT(*)"
	case Count:
		return "COUNT"
	case Sum:
		return "SUM"
	case Avg:
		return "AVG"
	case Max:
		return "MAX"
	case Min:
		return "MIN"
	default:
		return "UNKNOWN"
	}
}

// Aggregator accumulates one aggregate function's running state for one
// group. NULL inputs are skipped by every aggregate except COUNT(*),
// which does not evaluate an argument at all (§4.5).
type Aggregator interface {
	Merge(v types.Value) error
	Result() (types.Value, error)
}

// New constructs the Aggregator for op. valueType is the declared type of
// the aggregate's argument expression; New does not read it, and every
// Aggregator works from the values passed to Merge.
func New(op Op, valueType types.Type) Aggregator {
	switch op {
	case CountStar:
		return &countStar{}
	case Count:
		return &count{}
	case Sum:
		return &sum{}
	case Avg:
		return &avg{}
	case Max:
		return &extreme{max: true}
	case Min:
		return &extreme{max: false}
	default:
		return &count{}
	}
}

type countStar struct{ n int64 }

func (a *countStar) Merge(types.Value) error { a.n++; return nil }
func (a *countStar) Result() (types.Value, error) {
	return types.NewInt(int32(a.n)), nil
}

type count struct{ n int64 }

func (a *count) Merge(v types.Value) error {
	if !v.IsNull() {
		a.n++
	}
	return nil
}
func (a *count) Result() (types.Value, error) {
	return types.NewInt(int32(a.n)), nil
}

type sum struct {
	total   float64
	isFloat bool
	any     bool
}

func (a *sum) Merge(v types.Value) error {
	if v.IsNull() {
		return nil
	}
	f, isFloat, err := numeric(v)
	if err != nil {
		return err
	}
	a.total += f
	a.isFloat = a.isFloat || isFloat
	a.any = true
	return nil
}

func (a *sum) Result() (types.Value, error) {
	if !a.any {
		return types.Nil, nil
	}
	if a.isFloat {
		return types.NewFloat(float32(a.total)), nil
	}
	return types.NewInt(int32(a.total)), nil
}

type avg struct {
	total float64
	n     int64
}

func (a *avg) Merge(v types.Value) error {
	if v.IsNull() {
		return nil
	}
	f, _, err := numeric(v)
	if err != nil {
		return err
	}
	a.total += f
	a.n++
	return nil
}

func (a *avg) Result() (types.Value, error) {
	if a.n == 0 {
		return types.Nil, nil
	}
	return types.NewFloat(float32(a.total / float64(a.n))), nil
}

// extreme implements both MAX and MIN, comparing via types.Compare so it
// works over numeric, CHARS, DATE, and BOOL alike, per §4.5.
type extreme struct {
	max     bool
	current types.Value
}

func (a *extreme) Merge(v types.Value) error {
	if v.IsNull() {
		return nil
	}
	if a.current == nil {
		a.current = v
		return nil
	}
	cmp, err := types.Compare(v, a.current)
	if err != nil {
		return err
	}
	if (a.max && cmp > 0) || (!a.max && cmp < 0) {
		a.current = v
	}
	return nil
}

func (a *extreme) Result() (types.Value, error) {
	if a.current == nil {
		return types.Nil, nil
	}
	return a.current, nil
}

func numeric(v types.Value) (f float64, isFloat bool, err error) {
	switch tv := v.(type) {
	case types.IntValue:
		return float64(tv.V), false, nil
	case types.FloatValue:
		return float64(tv.V), true, nil
	default:
		return 0, false, errkind.New(errkind.Semantic, errkind.CodeAggregateTypeMismatch, "aggregate requires a numeric operand")
	}
}
