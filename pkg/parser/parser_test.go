package parser

import (
	"testing"

	"github.com/kgcyyds/miniob-2024/pkg/ast"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

func TestParse_BasicSelect(t *testing.T) {
	stmt, err := Parse("SELECT name FROM users")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sel, ok := stmt.(*ast.SelectStmt)
	if !ok {
		t.Fatalf("expected *ast.SelectStmt, got %T", stmt)
	}
	if len(sel.SelectList) != 1 {
		t.Errorf("expected 1 select item, got %d", len(sel.SelectList))
	}
	if len(sel.From) != 1 || sel.From[0].Table != "users" {
		t.Errorf("expected from table 'users', got %+v", sel.From)
	}
}

func TestParse_SelectWithJoinAndWhere(t *testing.T) {
	stmt, err := Parse("SELECT a.id FROM a JOIN b ON a.id = b.a_id WHERE a.id = 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sel := stmt.(*ast.SelectStmt)
	if len(sel.From[0].Joins) != 1 {
		t.Fatalf("expected 1 join clause, got %d", len(sel.From[0].Joins))
	}
	if sel.From[0].Joins[0].Table != "b" {
		t.Errorf("expected join table 'b', got %s", sel.From[0].Joins[0].Table)
	}
	if sel.Where == nil {
		t.Errorf("expected WHERE clause to be present")
	}
}

func TestParse_CreateTable(t *testing.T) {
	stmt, err := Parse("CREATE TABLE t (id INT, name VARCHAR(30) NOT NULL)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ct := stmt.(*ast.CreateTableStmt)
	if ct.Table != "t" {
		t.Errorf("expected table 't', got %s", ct.Table)
	}
	if len(ct.Columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(ct.Columns))
	}
	if ct.Columns[0].Type != types.Int {
		t.Errorf("expected first column type INT, got %v", ct.Columns[0].Type)
	}
	if ct.Columns[1].Length != 30 {
		t.Errorf("expected second column length 30, got %d", ct.Columns[1].Length)
	}
	if ct.Columns[1].Nullable {
		t.Errorf("expected second column to be NOT NULL")
	}
}

func TestParse_Insert(t *testing.T) {
	stmt, err := Parse("INSERT INTO t VALUES (1, 'a'), (2, 'b')")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ins := stmt.(*ast.InsertStmt)
	if ins.Table != "t" {
		t.Errorf("expected table 't', got %s", ins.Table)
	}
	if len(ins.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(ins.Rows))
	}
}

func TestParse_DeleteAndUpdate(t *testing.T) {
	del, err := Parse("DELETE FROM t WHERE id = 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if del.(*ast.DeleteStmt).Table != "t" {
		t.Errorf("expected table 't'")
	}

	upd, err := Parse("UPDATE t SET name = 'x' WHERE id = 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if upd.(*ast.UpdateStmt).Table != "t" {
		t.Errorf("expected table 't'")
	}
}

func TestParse_ExplainAndCalc(t *testing.T) {
	if _, err := Parse("EXPLAIN SELECT id FROM t"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Parse("CALC 1 + 2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParse_InvalidStatement(t *testing.T) {
	if _, err := Parse("NOT A REAL STATEMENT"); err == nil {
		t.Fatalf("expected an error for an unrecognized statement")
	}
}
