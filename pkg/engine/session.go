package engine

import (
	"github.com/kgcyyds/miniob-2024/pkg/parser"
	"github.com/kgcyyds/miniob-2024/pkg/resolver"
	"github.com/kgcyyds/miniob-2024/pkg/txn"
)

// Session is one independent statement-execution context: its own SET
// variables, its own transaction per statement. Sessions never share a
// transaction; §1 leaves multi-statement transaction spanning out of
// scope, so BEGIN/COMMIT/ROLLBACK are acknowledged but do not change how
// Execute drives the underlying *txn.Transaction.
type Session struct {
	engine *Engine
	vars   map[string]string
}

// Execute runs one SQL statement start to finish: parse, resolve, plan
// or dispatch, run, commit. Grounded on the teacher's
// Database.ExecuteQuery pipeline (Begin -> Parse -> Plan -> Execute ->
// Commit, recording stats on every branch), adapted to this engine's
// per-session transaction rather than a database-wide registry.
func (s *Session) Execute(sql string) (*Result, error) {
	stmt, err := parser.Parse(sql)
	if err != nil {
		s.engine.stats.recordError()
		return errorResult(err), err
	}

	resolved, err := resolver.NewResolver(s.engine.db).Resolve(stmt)
	if err != nil {
		s.engine.stats.recordError()
		return errorResult(err), err
	}

	tx := txn.Begin()
	result, err := s.dispatch(tx, resolved)
	if err != nil {
		tx.Rollback()
		s.engine.stats.recordError()
		return errorResult(err), err
	}
	tx.Commit()
	s.engine.stats.recordSuccess()
	return result, nil
}

// dispatch routes a resolved statement to the physical planner
// (SELECT/INSERT/DELETE/UPDATE/CALC/EXPLAIN, per §4.5) or straight to the
// catalog (every other Resolved* kind, per §4.3's DDL/session split).
func (s *Session) dispatch(tx *txn.Transaction, stmt resolver.Statement) (*Result, error) {
	switch stmt.(type) {
	case *resolver.ResolvedSelect, *resolver.ResolvedInsert, *resolver.ResolvedDelete,
		*resolver.ResolvedUpdate, *resolver.ResolvedCalc, *resolver.ResolvedExplain:
		return s.runPlan(tx, stmt)
	default:
		return s.execDDL(tx, stmt)
	}
}
