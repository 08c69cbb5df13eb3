package engine

import (
	"fmt"
	"os"
	"testing"

	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// mustExec runs sql and fails the test immediately on error, mirroring
// the teacher's pkg/integration MustExecute helper.
func mustExec(t *testing.T, sess *Session, sql string) *Result {
	t.Helper()
	res, err := sess.Execute(sql)
	if err != nil {
		t.Fatalf("Execute(%q) failed: %v", sql, err)
	}
	return res
}

func mustFail(t *testing.T, sess *Session, sql string) error {
	t.Helper()
	_, err := sess.Execute(sql)
	if err == nil {
		t.Fatalf("Execute(%q) unexpectedly succeeded", sql)
	}
	return err
}

func TestBasicCRUDWorkflow(t *testing.T) {
	eng := New("")
	sess := eng.NewSession()

	mustExec(t, sess, "CREATE TABLE users (id INT, name VARCHAR(20), age INT)")

	ins := mustExec(t, sess, "INSERT INTO users VALUES (1, 'Alice', 30), (2, 'Bob', 25)")
	if ins.Kind != KindCount || ins.RowsAffected != 2 {
		t.Fatalf("insert: got %+v", ins)
	}

	sel := mustExec(t, sess, "SELECT id, name FROM users WHERE age > 26")
	if sel.Kind != KindRows || len(sel.Rows) != 1 {
		t.Fatalf("select: got %+v", sel)
	}
	if sel.Rows[0][1].(types.CharsValue).V != "Alice" {
		t.Fatalf("select: expected Alice, got %v", sel.Rows[0][1])
	}

	upd := mustExec(t, sess, "UPDATE users SET age = 31 WHERE id = 1")
	if upd.RowsAffected != 1 {
		t.Fatalf("update: got %+v", upd)
	}

	del := mustExec(t, sess, "DELETE FROM users WHERE id = 2")
	if del.RowsAffected != 1 {
		t.Fatalf("delete: got %+v", del)
	}

	remaining := mustExec(t, sess, "SELECT id FROM users")
	if len(remaining.Rows) != 1 {
		t.Fatalf("expected 1 remaining row, got %d", len(remaining.Rows))
	}
}

func TestJoinAndAggregation(t *testing.T) {
	eng := New("")
	sess := eng.NewSession()

	mustExec(t, sess, "CREATE TABLE users (id INT, name VARCHAR(20))")
	mustExec(t, sess, "CREATE TABLE orders (id INT, user_id INT, amount FLOAT)")
	mustExec(t, sess, "INSERT INTO users VALUES (1, 'Alice'), (2, 'Bob')")
	mustExec(t, sess, "INSERT INTO orders VALUES (1, 1, 10.5), (2, 1, 5.0), (3, 2, 2.0)")

	joined := mustExec(t, sess,
		"SELECT users.name, orders.amount FROM users JOIN orders ON users.id = orders.user_id ORDER BY orders.amount")
	if len(joined.Rows) != 3 {
		t.Fatalf("join: expected 3 rows, got %d", len(joined.Rows))
	}
	wantAmounts := []float32{2.0, 5.0, 10.5}
	for i, want := range wantAmounts {
		if got := joined.Rows[i][1].(types.FloatValue).V; got != want {
			t.Fatalf("join: row %d expected amount %v, got %v", i, want, got)
		}
	}

	agg := mustExec(t, sess, "SELECT user_id, COUNT(*) FROM orders GROUP BY user_id ORDER BY user_id")
	if len(agg.Rows) != 2 {
		t.Fatalf("aggregation: expected 2 groups, got %d", len(agg.Rows))
	}
	if agg.Rows[0][1].(types.IntValue).V != 2 {
		t.Fatalf("aggregation: expected user 1 to have 2 orders, got %v", agg.Rows[0][1])
	}
}

func TestCreateIndexThenEqualityLookup(t *testing.T) {
	eng := New("")
	sess := eng.NewSession()

	mustExec(t, sess, "CREATE TABLE users (id INT, name VARCHAR(20))")
	mustExec(t, sess, "INSERT INTO users VALUES (1, 'Alice'), (2, 'Bob'), (3, 'Carl')")
	mustExec(t, sess, "CREATE INDEX idx_id ON users (id)")

	sel := mustExec(t, sess, "SELECT name FROM users WHERE id = 2")
	if len(sel.Rows) != 1 || sel.Rows[0][0].(types.CharsValue).V != "Bob" {
		t.Fatalf("index lookup: got %+v", sel.Rows)
	}

	mustFail(t, sess, "CREATE INDEX idx_id ON users (id)")
}

func TestDescAndShowTables(t *testing.T) {
	eng := New("")
	sess := eng.NewSession()

	mustExec(t, sess, "CREATE TABLE t1 (a INT, b VARCHAR(10) NOT NULL)")
	mustExec(t, sess, "CREATE TABLE t2 (a INT)")

	desc := mustExec(t, sess, "DESC t1")
	if desc.Kind != KindRows || len(desc.Rows) != 2 {
		t.Fatalf("desc: got %+v", desc)
	}
	if desc.Rows[1][3].(types.BoolValue).V != false {
		t.Fatalf("desc: expected b to be non-nullable, got %v", desc.Rows[1][3])
	}

	show := mustExec(t, sess, "SHOW TABLES")
	if len(show.Rows) != 2 {
		t.Fatalf("show tables: got %+v", show.Rows)
	}
}

func TestExplainAndCalc(t *testing.T) {
	eng := New("")
	sess := eng.NewSession()

	mustExec(t, sess, "CREATE TABLE t (a INT)")
	mustExec(t, sess, "INSERT INTO t VALUES (1)")

	exp := mustExec(t, sess, "EXPLAIN SELECT a FROM t WHERE a = 1")
	if exp.Kind != KindExplain || exp.ExplainText == "" {
		t.Fatalf("explain: got %+v", exp)
	}

	calc := mustExec(t, sess, "CALC 1 + 2, 3 * 4")
	if calc.Kind != KindRows || len(calc.Rows) != 1 || len(calc.Rows[0]) != 2 {
		t.Fatalf("calc: got %+v", calc)
	}
	if calc.Rows[0][0].(types.IntValue).V != 3 || calc.Rows[0][1].(types.IntValue).V != 12 {
		t.Fatalf("calc: got %v", calc.Rows[0])
	}
}

func TestSessionMiscStatements(t *testing.T) {
	eng := New("")
	sess := eng.NewSession()

	mustExec(t, sess, "SET foo = bar")
	if sess.vars["foo"] != "bar" {
		t.Fatalf("expected variable to be recorded, got %v", sess.vars)
	}

	mustExec(t, sess, "TRX BEGIN")
	mustExec(t, sess, "TRX COMMIT")
	mustExec(t, sess, "SYNC")

	help := mustExec(t, sess, "HELP")
	if help.ExplainText == "" {
		t.Fatalf("expected non-empty help text")
	}

	exit := mustExec(t, sess, "EXIT")
	if !exit.Exit {
		t.Fatalf("expected EXIT result to carry Exit=true")
	}
}

func TestLoadDataInfile(t *testing.T) {
	eng := New("")
	sess := eng.NewSession()

	mustExec(t, sess, "CREATE TABLE people (id INT, name VARCHAR(20), age INT)")

	f, err := os.CreateTemp("", "load-*.csv")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer os.Remove(f.Name())
	fmt.Fprint(f, "1,Alice,30\n2,Bob,25\n")
	if err := f.Close(); err != nil {
		t.Fatalf("close temp file: %v", err)
	}

	load := mustExec(t, sess, fmt.Sprintf("LOAD DATA INFILE '%s' INTO TABLE people", f.Name()))
	if load.Kind != KindCount || load.RowsAffected != 2 {
		t.Fatalf("load data: got %+v", load)
	}

	sel := mustExec(t, sess, "SELECT name FROM people WHERE age = 25")
	if len(sel.Rows) != 1 || sel.Rows[0][0].(types.CharsValue).V != "Bob" {
		t.Fatalf("post-load select: got %+v", sel.Rows)
	}
}

func TestExecuteManyRunsIndependently(t *testing.T) {
	eng := New("")
	sess := eng.NewSession()
	mustExec(t, sess, "CREATE TABLE t (a INT)")
	mustExec(t, sess, "INSERT INTO t VALUES (1), (2), (3)")

	results := eng.ExecuteMany([]string{
		"SELECT a FROM t WHERE a = 1",
		"SELECT a FROM t WHERE a = 2",
		"NOT VALID SQL",
	})
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Err != nil || results[0].Result.Kind != KindRows || len(results[0].Result.Rows) != 1 {
		t.Fatalf("query 0: got %+v", results[0])
	}
	if results[1].Err != nil || results[1].Result.Kind != KindRows || len(results[1].Result.Rows) != 1 {
		t.Fatalf("query 1: got %+v", results[1])
	}
	if results[2].Err == nil {
		t.Fatalf("query 2: expected parse error, got success")
	}
}

func TestEngineInfoTracksStats(t *testing.T) {
	eng := New("")
	sess := eng.NewSession()

	mustExec(t, sess, "CREATE TABLE t (a INT)")
	mustFail(t, sess, "CREATE TABLE t (a INT)")

	info := eng.Info()
	if info.TableCount != 1 {
		t.Fatalf("expected 1 table, got %d", info.TableCount)
	}
	if info.QueriesExecuted != 2 {
		t.Fatalf("expected 2 queries recorded, got %d", info.QueriesExecuted)
	}
	if info.ErrorCount != 1 {
		t.Fatalf("expected 1 error recorded, got %d", info.ErrorCount)
	}
}
