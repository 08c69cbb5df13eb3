package engine

import (
	"github.com/kgcyyds/miniob-2024/pkg/errkind"
	"github.com/kgcyyds/miniob-2024/pkg/physicalplan"
	"github.com/kgcyyds/miniob-2024/pkg/resolver"
	"github.com/kgcyyds/miniob-2024/pkg/storage"
	"github.com/kgcyyds/miniob-2024/pkg/tuple"
	"github.com/kgcyyds/miniob-2024/pkg/txn"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// runPlan builds and drives the physical operator tree for a plannable
// resolved statement (SELECT/INSERT/DELETE/UPDATE/CALC/EXPLAIN), running
// it to completion under the volcano Open/Next/Close protocol before
// shaping its collected rows into the matching Result.
func (s *Session) runPlan(tx *txn.Transaction, stmt resolver.Statement) (*Result, error) {
	op, err := physicalplan.PlanStatement(stmt)
	if err != nil {
		return nil, err
	}
	if err := op.Open(tx); err != nil {
		return nil, err
	}
	defer op.Close()

	var rows []tuple.Tuple
	for {
		row, err := op.Next()
		if err == storage.ErrEOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return buildResult(stmt, rows)
}

// buildResult shapes the collected output tuples of one plannable
// statement into the Result variant its kind carries: schema+rows for
// SELECT/CALC, a row count for INSERT/DELETE/UPDATE, rendered text for
// EXPLAIN.
func buildResult(stmt resolver.Statement, rows []tuple.Tuple) (*Result, error) {
	switch st := stmt.(type) {
	case *resolver.ResolvedSelect:
		schema := make([]string, len(st.SelectList))
		for i, item := range st.SelectList {
			schema[i] = item.Alias
		}
		values, err := materialize(rows, len(schema))
		if err != nil {
			return nil, err
		}
		return rowsResult(schema, values), nil

	case *resolver.ResolvedCalc:
		schema := make([]string, len(st.Exprs))
		for i, e := range st.Exprs {
			schema[i] = e.Alias()
		}
		values, err := materialize(rows, len(schema))
		if err != nil {
			return nil, err
		}
		return rowsResult(schema, values), nil

	case *resolver.ResolvedInsert, *resolver.ResolvedDelete, *resolver.ResolvedUpdate:
		n, err := affectedCount(rows)
		if err != nil {
			return nil, err
		}
		return countResult(n), nil

	case *resolver.ResolvedExplain:
		text, err := explainText(rows)
		if err != nil {
			return nil, err
		}
		return explainResult(text), nil

	default:
		return nil, errkind.New(errkind.Internal, "INTERNAL", "unhandled plannable statement kind")
	}
}

// materialize reads exactly width cells out of every row, in order,
// producing the [][]types.Value a KindRows Result carries.
func materialize(rows []tuple.Tuple, width int) ([][]types.Value, error) {
	out := make([][]types.Value, len(rows))
	for i, row := range rows {
		vals := make([]types.Value, width)
		for c := 0; c < width; c++ {
			v, err := row.CellAt(c)
			if err != nil {
				return nil, err
			}
			vals[c] = v
		}
		out[i] = vals
	}
	return out, nil
}

// affectedCount reads the single INT cell an Insert/Delete/Update
// operator's one output row carries.
func affectedCount(rows []tuple.Tuple) (int64, error) {
	if len(rows) != 1 {
		return 0, errkind.New(errkind.Internal, "INTERNAL", "DML statement produced no row-count row")
	}
	v, err := rows[0].CellAt(0)
	if err != nil {
		return 0, err
	}
	iv, ok := v.(types.IntValue)
	if !ok {
		return 0, errkind.New(errkind.Internal, "INTERNAL", "row-count cell is not INT")
	}
	return int64(iv.V), nil
}

// explainText reads the single text cell an Explain operator's one
// output row carries.
func explainText(rows []tuple.Tuple) (string, error) {
	if len(rows) != 1 {
		return "", errkind.New(errkind.Internal, "INTERNAL", "EXPLAIN produced no output row")
	}
	v, err := rows[0].CellAt(0)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}
