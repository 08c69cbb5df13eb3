package engine

import "github.com/kgcyyds/miniob-2024/pkg/types"

// ResultKind tags which of the four shapes a statement result carries:
// a schema plus rows, a row-affected count, rendered explain text, or an
// error. Nothing else is a mutually exclusive fifth shape -- an
// informational result is either a Rows result (SHOW TABLES with one
// column, DESC TABLE with four) or folded into ExplainText (CREATE TABLE,
// SET, HELP, ...), rather than growing the tag set further.
type ResultKind int

const (
	KindRows ResultKind = iota
	KindCount
	KindExplain
	KindError
)

// Result is what one statement execution produces: exactly one of
// Schema+Rows, RowsAffected, or ExplainText is meaningful, selected by
// Kind. Err carries a non-nil error when Kind is KindError, letting
// ExecuteMany fold a per-query failure into the same value it hands back
// for a success, without also needing a side channel.
//
// Exit is set on the Result produced by an EXIT statement; the ui
// package checks it to leave the program after rendering.
type Result struct {
	Kind         ResultKind
	Schema       []string
	Rows         [][]types.Value
	RowsAffected int64
	ExplainText  string
	Err          error
	Exit         bool
}

func rowsResult(schema []string, rows [][]types.Value) *Result {
	return &Result{Kind: KindRows, Schema: schema, Rows: rows}
}

func countResult(n int64) *Result {
	return &Result{Kind: KindCount, RowsAffected: n}
}

func explainResult(text string) *Result {
	return &Result{Kind: KindExplain, ExplainText: text}
}

func errorResult(err error) *Result {
	return &Result{Kind: KindError, Err: err}
}
