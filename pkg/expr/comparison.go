package expr

import (
	"github.com/kgcyyds/miniob-2024/pkg/chunk"
	"github.com/kgcyyds/miniob-2024/pkg/primitives"
	"github.com/kgcyyds/miniob-2024/pkg/tuple"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// CompKind extends primitives.CompOp with the non-total-order predicates
// (LIKE, IS [NOT] NULL) that a general comparison expression must also
// express.
type CompKind int

const (
	Ordinary CompKind = iota // Left `Op` Right, from primitives.CompOp
	NotLike
	IsLike
	IsNull
	IsNotNull
	In
	NotIn
	Exists
	NotExists
)

// ComparisonExpr evaluates to a BoolValue. Ordinary comparisons and LIKE
// yield `false`, never NULL, on a NULL operand -- the three-valued logic
// of the value layer is resolved to plain boolean here, per §4.2.
type ComparisonExpr struct {
	Kind        CompKind
	Op          primitives.CompOp // meaningful only when Kind == Ordinary
	Left, Right Expression        // Right unused for IsNull/IsNotNull
	alias       string
}

func NewOrdinaryComparison(op primitives.CompOp, left, right Expression) *ComparisonExpr {
	return &ComparisonExpr{Kind: Ordinary, Op: op, Left: left, Right: right}
}

func NewLikeComparison(negate bool, left, right Expression) *ComparisonExpr {
	kind := IsLike
	if negate {
		kind = NotLike
	}
	return &ComparisonExpr{Kind: kind, Left: left, Right: right}
}

func NewNullComparison(negate bool, left Expression) *ComparisonExpr {
	kind := IsNull
	if negate {
		kind = IsNotNull
	}
	return &ComparisonExpr{Kind: kind, Left: left}
}

// NewInComparison builds IN/NOT IN. right must implement ValueSource
// (ListExpr or a SubQueryExpr in list mode).
func NewInComparison(negate bool, left Expression, right Expression) *ComparisonExpr {
	kind := In
	if negate {
		kind = NotIn
	}
	return &ComparisonExpr{Kind: kind, Left: left, Right: right}
}

// NewExistsComparison builds EXISTS/NOT EXISTS. right must be a
// SubQueryExpr in existence mode; Left is unused.
func NewExistsComparison(negate bool, right Expression) *ComparisonExpr {
	kind := Exists
	if negate {
		kind = NotExists
	}
	return &ComparisonExpr{Kind: kind, Right: right}
}

func (e *ComparisonExpr) SetAlias(a string) { e.alias = a }

func (e *ComparisonExpr) GetValue(t tuple.Tuple) (types.Value, error) {
	switch e.Kind {
	case Exists, NotExists:
		src, ok := e.Right.(Existence)
		if !ok {
			return nil, errUnimplementedColumn("EXISTS requires a subquery")
		}
		found, err := src.Exists(t)
		if err != nil {
			return nil, err
		}
		if e.Kind == NotExists {
			found = !found
		}
		return types.NewBool(found), nil
	}

	l, err := e.Left.GetValue(t)
	if err != nil {
		return nil, err
	}

	switch e.Kind {
	case IsNull:
		return types.NewBool(l.IsNull()), nil
	case IsNotNull:
		return types.NewBool(!l.IsNull()), nil
	case In, NotIn:
		src, ok := e.Right.(ValueSource)
		if !ok {
			return nil, errUnimplementedColumn("IN requires a list or subquery")
		}
		found, sawNull, err := src.Contains(t, l)
		if err != nil {
			return nil, err
		}
		if found {
			return types.NewBool(e.Kind == In), nil
		}
		if sawNull {
			// No equality found but a NULL was seen: IN is false,
			// NOT IN is also false per §4.2's list-mode rule.
			return types.NewBool(false), nil
		}
		return types.NewBool(e.Kind == NotIn), nil
	}

	r, err := e.Right.GetValue(t)
	if err != nil {
		return nil, err
	}

	switch e.Kind {
	case IsLike, NotLike:
		if l.IsNull() || r.IsNull() {
			return types.NewBool(false), nil
		}
		matched, err := types.Like(l, r)
		if err != nil {
			return nil, err
		}
		if e.Kind == NotLike {
			matched = !matched
		}
		return types.NewBool(matched), nil
	default: // Ordinary
		if l.IsNull() || r.IsNull() {
			return types.NewBool(false), nil
		}
		if e.Op == primitives.Equals || e.Op == primitives.NotEqual {
			eq := l.Equals(r)
			if e.Op == primitives.NotEqual {
				eq = !eq
			}
			return types.NewBool(eq), nil
		}
		cmp, err := types.Compare(l, r)
		if err != nil {
			return nil, err
		}
		return types.NewBool(e.Op.FromCompareResult(cmp)), nil
	}
}

func (e *ComparisonExpr) GetColumn(c *chunk.Chunk) (chunk.Column, error) {
	if e.Kind != Ordinary {
		return chunk.Column{}, errUnimplementedColumn("non-ordinary ComparisonExpr")
	}
	if !e.Left.ValueType().IsNumeric() || !e.Right.ValueType().IsNumeric() {
		return chunk.Column{}, errUnimplementedColumn("non-numeric ComparisonExpr")
	}
	l, err := e.Left.GetColumn(c)
	if err != nil {
		return chunk.Column{}, err
	}
	r, err := e.Right.GetColumn(c)
	if err != nil {
		return chunk.Column{}, err
	}
	return chunk.CompareColumns(c.Length, l, r, e.Op)
}

func (e *ComparisonExpr) ValueType() types.Type { return types.Bool }

func (e *ComparisonExpr) Alias() string {
	if e.alias != "" {
		return e.alias
	}
	return "?"
}
