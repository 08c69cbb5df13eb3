// Package parser implements a hand-written recursive-descent parser over
// pkg/lexer's token stream, producing pkg/ast nodes. Grounded on the
// teacher's pkg/parser/parser package (one dispatch function keying off
// the first one or two tokens, then a per-statement sub-parser), adapted
// from the teacher's per-statement-type struct-with-Parse-method into
// plain methods on one Parser, since our grammar has no per-statement
// external registration point to preserve.
package parser

import (
	"github.com/kgcyyds/miniob-2024/pkg/ast"
	"github.com/kgcyyds/miniob-2024/pkg/errkind"
	"github.com/kgcyyds/miniob-2024/pkg/lexer"
)

// Parser holds the full token stream for one statement, buffered up
// front so arbitrary lookahead (needed to disambiguate CREATE TABLE vs
// CREATE INDEX, and DROP TABLE vs DROP INDEX) is just index arithmetic.
type Parser struct {
	toks []lexer.Token
	pos  int
}

// Parse tokenizes and parses one SQL statement, ignoring a single
// trailing semicolon.
func Parse(sql string) (ast.Statement, error) {
	p := newParser(sql)
	if p.peek().Type == lexer.EOF {
		return nil, errkind.NewAt("EMPTY_STATEMENT", "empty statement", 1, 1)
	}
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if p.peek().Type == lexer.SEMICOLON {
		p.next()
	}
	if p.peek().Type != lexer.EOF {
		tok := p.peek()
		return nil, p.errAt(tok, "UNEXPECTED_TOKEN", "unexpected trailing input '"+tok.Value+"'")
	}
	return stmt, nil
}

func newParser(sql string) *Parser {
	lx := lexer.New(sql)
	var toks []lexer.Token
	for {
		t := lx.NextToken()
		toks = append(toks, t)
		if t.Type == lexer.EOF {
			break
		}
	}
	return &Parser{toks: toks}
}

func (p *Parser) peek() lexer.Token { return p.peekN(0) }

func (p *Parser) peekN(n int) lexer.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *Parser) next() lexer.Token {
	t := p.peek()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, error) {
	tok := p.peek()
	if tok.Type != tt {
		return tok, p.errAt(tok, "UNEXPECTED_TOKEN", "expected "+tt.String()+", got "+tok.Type.String())
	}
	return p.next(), nil
}

func (p *Parser) errAt(tok lexer.Token, code, msg string) error {
	return errkind.NewAt(code, msg, tok.Line, tok.Column)
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	tok := p.peek()
	switch tok.Type {
	case lexer.SELECT:
		return p.parseSelect()
	case lexer.INSERT:
		return p.parseInsert()
	case lexer.DELETE:
		return p.parseDelete()
	case lexer.UPDATE:
		return p.parseUpdate()
	case lexer.CREATE:
		return p.parseCreate()
	case lexer.DROP:
		return p.parseDrop()
	case lexer.DESC:
		return p.parseDescTable()
	case lexer.SHOW:
		return p.parseShowTables()
	case lexer.LOAD:
		return p.parseLoadData()
	case lexer.EXPLAIN:
		return p.parseExplain()
	case lexer.CALC:
		return p.parseCalc()
	case lexer.SYNC:
		p.next()
		return &ast.SyncStmt{}, nil
	case lexer.TRX:
		return p.parseTrx()
	case lexer.SET:
		return p.parseSet()
	case lexer.EXIT:
		p.next()
		return &ast.ExitStmt{}, nil
	case lexer.HELP:
		p.next()
		return &ast.HelpStmt{}, nil
	default:
		return nil, p.errAt(tok, "UNSUPPORTED_STATEMENT", "unsupported statement starting with '"+tok.Value+"'")
	}
}

func (p *Parser) parseCreate() (ast.Statement, error) {
	second := p.peekN(1)
	switch second.Type {
	case lexer.TABLE:
		return p.parseCreateTable()
	case lexer.INDEX, lexer.UNIQUE:
		return p.parseCreateIndex()
	default:
		return nil, p.errAt(second, "UNEXPECTED_TOKEN", "expected TABLE or INDEX after CREATE")
	}
}

func (p *Parser) parseDrop() (ast.Statement, error) {
	second := p.peekN(1)
	switch second.Type {
	case lexer.TABLE:
		return p.parseDropTable()
	case lexer.INDEX:
		return p.parseDropIndex()
	default:
		return nil, p.errAt(second, "UNEXPECTED_TOKEN", "expected TABLE or INDEX after DROP")
	}
}
