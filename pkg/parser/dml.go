package parser

import (
	"github.com/kgcyyds/miniob-2024/pkg/ast"
	"github.com/kgcyyds/miniob-2024/pkg/lexer"
)

func (p *Parser) parseInsert() (ast.Statement, error) {
	if _, err := p.expect(lexer.INSERT); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.INTO); err != nil {
		return nil, err
	}
	tableTok, err := p.expect(lexer.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.VALUES); err != nil {
		return nil, err
	}

	var rows [][]ast.Expr
	for {
		if _, err := p.expect(lexer.LPAREN); err != nil {
			return nil, err
		}
		row, err := p.parseExprList(p.parseArithExpr)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		rows = append(rows, row)
		if p.peek().Type != lexer.COMMA {
			break
		}
		p.next()
	}

	return &ast.InsertStmt{Table: tableTok.Value, Rows: rows}, nil
}

func (p *Parser) parseDelete() (ast.Statement, error) {
	if _, err := p.expect(lexer.DELETE); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.FROM); err != nil {
		return nil, err
	}
	tableTok, err := p.expect(lexer.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	stmt := &ast.DeleteStmt{Table: tableTok.Value}
	if p.peek().Type == lexer.WHERE {
		p.next()
		where, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		stmt.Where = where
	}
	return stmt, nil
}

func (p *Parser) parseUpdate() (ast.Statement, error) {
	if _, err := p.expect(lexer.UPDATE); err != nil {
		return nil, err
	}
	tableTok, err := p.expect(lexer.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SET); err != nil {
		return nil, err
	}

	var assignments []ast.Assignment
	for {
		colTok, err := p.expect(lexer.IDENTIFIER)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.EQ); err != nil {
			return nil, err
		}
		val, err := p.parseArithExpr()
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, ast.Assignment{Column: colTok.Value, Value: val})
		if p.peek().Type != lexer.COMMA {
			break
		}
		p.next()
	}

	stmt := &ast.UpdateStmt{Table: tableTok.Value, Assignments: assignments}
	if p.peek().Type == lexer.WHERE {
		p.next()
		where, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		stmt.Where = where
	}
	return stmt, nil
}
