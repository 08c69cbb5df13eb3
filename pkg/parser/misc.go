package parser

import (
	"github.com/kgcyyds/miniob-2024/pkg/ast"
	"github.com/kgcyyds/miniob-2024/pkg/lexer"
)

func (p *Parser) parseDescTable() (ast.Statement, error) {
	if _, err := p.expect(lexer.DESC); err != nil {
		return nil, err
	}
	tableTok, err := p.expect(lexer.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	return &ast.DescTableStmt{Table: tableTok.Value}, nil
}

func (p *Parser) parseShowTables() (ast.Statement, error) {
	if _, err := p.expect(lexer.SHOW); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TABLES); err != nil {
		return nil, err
	}
	return &ast.ShowTablesStmt{}, nil
}

func (p *Parser) parseLoadData() (ast.Statement, error) {
	if _, err := p.expect(lexer.LOAD); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.DATA); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.INFILE); err != nil {
		return nil, err
	}
	fileTok, err := p.expect(lexer.STRING_LITERAL)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.INTO); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TABLE); err != nil {
		return nil, err
	}
	tableTok, err := p.expect(lexer.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	return &ast.LoadDataStmt{File: fileTok.Value, Table: tableTok.Value}, nil
}

func (p *Parser) parseExplain() (ast.Statement, error) {
	if _, err := p.expect(lexer.EXPLAIN); err != nil {
		return nil, err
	}
	inner, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.ExplainStmt{Statement: inner}, nil
}

func (p *Parser) parseCalc() (ast.Statement, error) {
	if _, err := p.expect(lexer.CALC); err != nil {
		return nil, err
	}
	exprs, err := p.parseExprList(p.parseArithExpr)
	if err != nil {
		return nil, err
	}
	return &ast.CalcStmt{Exprs: exprs}, nil
}

func (p *Parser) parseTrx() (ast.Statement, error) {
	if _, err := p.expect(lexer.TRX); err != nil {
		return nil, err
	}
	tok := p.next()
	switch tok.Type {
	case lexer.BEGIN:
		return &ast.BeginStmt{}, nil
	case lexer.COMMIT:
		return &ast.CommitStmt{}, nil
	case lexer.ROLLBACK:
		return &ast.RollbackStmt{}, nil
	default:
		return nil, p.errAt(tok, "UNEXPECTED_TOKEN", "expected BEGIN, COMMIT, or ROLLBACK after TRX")
	}
}

func (p *Parser) parseSet() (ast.Statement, error) {
	if _, err := p.expect(lexer.SET); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(lexer.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.EQ); err != nil {
		return nil, err
	}
	valTok := p.next()
	return &ast.SetVariableStmt{Name: nameTok.Value, Value: valTok.Value}, nil
}
