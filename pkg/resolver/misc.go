package resolver

import (
	"github.com/kgcyyds/miniob-2024/pkg/ast"
	"github.com/kgcyyds/miniob-2024/pkg/expr"
)

func (r *Resolver) resolveDescTable(stmt *ast.DescTableStmt) (*ResolvedDescTable, error) {
	tbl, err := r.db.Table(stmt.Table)
	if err != nil {
		return nil, err
	}
	return &ResolvedDescTable{Table: tbl}, nil
}

func (r *Resolver) resolveLoadData(stmt *ast.LoadDataStmt) (*ResolvedLoadData, error) {
	tbl, err := r.db.Table(stmt.Table)
	if err != nil {
		return nil, err
	}
	return &ResolvedLoadData{File: stmt.File, Table: tbl}, nil
}

// resolveExplain resolves the wrapped statement, letting Explain apply to
// any statement kind and not just SELECT.
func (r *Resolver) resolveExplain(stmt *ast.ExplainStmt) (*ResolvedExplain, error) {
	inner, err := r.Resolve(stmt.Statement)
	if err != nil {
		return nil, err
	}
	return &ResolvedExplain{Inner: inner}, nil
}

// resolveCalc resolves the scalar CALC expression list against an empty
// scope, mirroring INSERT VALUES: there is no FROM, so any field
// reference is necessarily an error.
func (r *Resolver) resolveCalc(stmt *ast.CalcStmt) (*ResolvedCalc, error) {
	s := emptyScope()
	exprs := make([]expr.Expression, 0, len(stmt.Exprs))
	for _, e := range stmt.Exprs {
		re, err := r.resolveExpr(s, e)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, re)
	}
	return &ResolvedCalc{Exprs: exprs, Subqueries: *s.subqueries}, nil
}
