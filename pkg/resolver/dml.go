package resolver

import (
	"github.com/kgcyyds/miniob-2024/pkg/ast"
	"github.com/kgcyyds/miniob-2024/pkg/errkind"
	"github.com/kgcyyds/miniob-2024/pkg/expr"
	"github.com/kgcyyds/miniob-2024/pkg/schema"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// resolveInsert checks row arity against the table's user-visible field
// count and coerces every value, per original_source/insert_stmt.cpp's
// arity/type/nullable/length checks.
func (r *Resolver) resolveInsert(stmt *ast.InsertStmt) (*ResolvedInsert, error) {
	tbl, err := r.db.Table(stmt.Table)
	if err != nil {
		return nil, err
	}
	meta := tbl.Meta

	rows := make([][]types.Value, 0, len(stmt.Rows))
	for _, row := range stmt.Rows {
		if len(row) != meta.UserFieldCount() {
			return nil, errkind.New(errkind.Semantic, errkind.CodeInvalidArgument,
				"value count does not match column count")
		}
		values := make([]types.Value, len(row))
		for i, valExpr := range row {
			fm, err := meta.UserField(i)
			if err != nil {
				return nil, err
			}
			v, err := r.resolveInsertValue(valExpr, fm)
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		rows = append(rows, values)
	}
	return &ResolvedInsert{Table: tbl, Rows: rows}, nil
}

// resolveInsertValue folds valExpr to a constant against an empty scope
// (INSERT VALUES has no FROM, so any field reference correctly fails as
// SCHEMA_FIELD_MISSING) and coerces the result to fm's declared type.
func (r *Resolver) resolveInsertValue(valExpr ast.Expr, fm *schema.FieldMeta) (types.Value, error) {
	if lit, ok := valExpr.(*ast.Literal); ok && fm.Type == types.Date {
		if cv, ok := lit.Value.(types.CharsValue); ok {
			return types.ParseDate(cv.V, lit.Line, lit.Column)
		}
		if lit.Value.IsNull() {
			return coerceInsertValue(lit.Value, fm)
		}
	}

	e, err := r.resolveExpr(emptyScope(), valExpr)
	if err != nil {
		return nil, err
	}
	v, err := e.GetValue(nil)
	if err != nil {
		return nil, err
	}
	return coerceInsertValue(v, fm)
}

// coerceInsertValue applies the nullable and CHARS-length checks of
// §4.3/§6 after CastTo has handled the type conversion itself.
func coerceInsertValue(v types.Value, fm *schema.FieldMeta) (types.Value, error) {
	if v.IsNull() {
		if !fm.Nullable {
			return nil, errkind.New(errkind.Schema, errkind.CodeSchemaFieldTypeMismatch,
				"column "+fm.Name+" does not allow NULL")
		}
		return types.Nil, nil
	}
	cast, err := types.CastTo(v, fm.Type)
	if err != nil {
		return nil, err
	}
	if cv, ok := cast.(types.CharsValue); ok {
		if len(cv.V) > fm.Length {
			return nil, errkind.New(errkind.Semantic, errkind.CodeInvalidArgument,
				"value too long for column "+fm.Name)
		}
		cast = types.NewChars(cv.V, fm.Length)
	}
	return cast, nil
}

// resolveDelete resolves `DELETE FROM t [WHERE cond]` against a
// single-table scope bound to the table's own name as its alias.
func (r *Resolver) resolveDelete(stmt *ast.DeleteStmt) (*ResolvedDelete, error) {
	tbl, err := r.db.Table(stmt.Table)
	if err != nil {
		return nil, err
	}
	s := newScope(nil)
	if err := s.addRelation(&Relation{Alias: stmt.Table, Table: tbl}); err != nil {
		return nil, err
	}

	resolvedWhere, err := resolveOptionalCondition(r, s, stmt.Where)
	if err != nil {
		return nil, err
	}

	return &ResolvedDelete{
		Table:      tbl,
		Alias:      stmt.Table,
		Where:      resolvedWhere,
		Subqueries: *s.subqueries,
	}, nil
}

// resolveUpdate resolves `UPDATE t SET col = expr, ... [WHERE cond]`
// against a single-table scope, mapping each assignment's column name to
// its absolute field index (system fields included, matching
// schema.TableMeta.Field's indexing).
func (r *Resolver) resolveUpdate(stmt *ast.UpdateStmt) (*ResolvedUpdate, error) {
	tbl, err := r.db.Table(stmt.Table)
	if err != nil {
		return nil, err
	}
	s := newScope(nil)
	if err := s.addRelation(&Relation{Alias: stmt.Table, Table: tbl}); err != nil {
		return nil, err
	}

	assignments := make([]Assignment, 0, len(stmt.Assignments))
	for _, a := range stmt.Assignments {
		fm, ok := tbl.Meta.FieldByName(a.Column)
		if !ok {
			return nil, errFieldMissing(a.Column)
		}
		ve, err := r.resolveExpr(s, a.Value)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, Assignment{FieldIndex: fm.FieldID, Value: ve})
	}

	resolvedWhere, err := resolveOptionalCondition(r, s, stmt.Where)
	if err != nil {
		return nil, err
	}

	return &ResolvedUpdate{
		Table:       tbl,
		Alias:       stmt.Table,
		Assignments: assignments,
		Where:       resolvedWhere,
		Subqueries:  *s.subqueries,
	}, nil
}

func resolveOptionalCondition(r *Resolver, s *scope, cond ast.Expr) (expr.Expression, error) {
	if cond == nil {
		return nil, nil
	}
	return r.resolveExpr(s, cond)
}
