package parser

import (
	"github.com/kgcyyds/miniob-2024/pkg/ast"
	"github.com/kgcyyds/miniob-2024/pkg/lexer"
)

func (p *Parser) parseSelect() (ast.Statement, error) {
	if _, err := p.expect(lexer.SELECT); err != nil {
		return nil, err
	}
	if p.peek().Type == lexer.DISTINCT {
		p.next()
	}

	selectList, err := p.parseSelectList()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.FROM); err != nil {
		return nil, err
	}
	from, err := p.parseFromList()
	if err != nil {
		return nil, err
	}

	stmt := &ast.SelectStmt{SelectList: selectList, From: from}

	if p.peek().Type == lexer.WHERE {
		p.next()
		where, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		stmt.Where = where
	}

	if p.peek().Type == lexer.GROUP {
		p.next()
		if _, err := p.expect(lexer.BY); err != nil {
			return nil, err
		}
		groupBy, err := p.parseExprList(p.parseArithExpr)
		if err != nil {
			return nil, err
		}
		stmt.GroupBy = groupBy
	}

	if p.peek().Type == lexer.HAVING {
		p.next()
		having, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		stmt.Having = having
	}

	if p.peek().Type == lexer.ORDER {
		p.next()
		if _, err := p.expect(lexer.BY); err != nil {
			return nil, err
		}
		items, err := p.parseOrderList()
		if err != nil {
			return nil, err
		}
		stmt.OrderBy = items
	}

	return stmt, nil
}

func (p *Parser) parseSelectList() ([]ast.SelectItem, error) {
	var items []ast.SelectItem
	for {
		e, err := p.parseArithExpr()
		if err != nil {
			return nil, err
		}
		alias := p.maybeAlias()
		items = append(items, ast.SelectItem{Expr: e, Alias: alias})
		if p.peek().Type != lexer.COMMA {
			break
		}
		p.next()
	}
	return items, nil
}

// maybeAlias consumes an optional `[AS] identifier` alias, returning ""
// if none is present.
func (p *Parser) maybeAlias() string {
	if p.peek().Type == lexer.AS {
		p.next()
		tok, err := p.expect(lexer.IDENTIFIER)
		if err != nil {
			return ""
		}
		return tok.Value
	}
	if p.peek().Type == lexer.IDENTIFIER {
		tok := p.next()
		return tok.Value
	}
	return ""
}

func (p *Parser) parseFromList() ([]ast.FromItem, error) {
	var items []ast.FromItem
	for {
		item, err := p.parseFromItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if p.peek().Type != lexer.COMMA {
			break
		}
		p.next()
	}
	return items, nil
}

func (p *Parser) parseFromItem() (ast.FromItem, error) {
	tableTok, err := p.expect(lexer.IDENTIFIER)
	if err != nil {
		return ast.FromItem{}, err
	}
	item := ast.FromItem{Table: tableTok.Value, Alias: p.maybeAlias()}

	for p.peek().Type == lexer.INNER || p.peek().Type == lexer.JOIN {
		if p.peek().Type == lexer.INNER {
			p.next()
		}
		if _, err := p.expect(lexer.JOIN); err != nil {
			return ast.FromItem{}, err
		}
		jTableTok, err := p.expect(lexer.IDENTIFIER)
		if err != nil {
			return ast.FromItem{}, err
		}
		jAlias := p.maybeAlias()
		if _, err := p.expect(lexer.ON); err != nil {
			return ast.FromItem{}, err
		}
		on, err := p.parseCondition()
		if err != nil {
			return ast.FromItem{}, err
		}
		item.Joins = append(item.Joins, ast.JoinClause{Table: jTableTok.Value, Alias: jAlias, On: on})
	}
	return item, nil
}

func (p *Parser) parseOrderList() ([]ast.OrderItem, error) {
	var items []ast.OrderItem
	for {
		e, err := p.parseArithExpr()
		if err != nil {
			return nil, err
		}
		desc := false
		switch p.peek().Type {
		case lexer.DESC:
			p.next()
			desc = true
		case lexer.ASC:
			p.next()
		}
		items = append(items, ast.OrderItem{Expr: e, Desc: desc})
		if p.peek().Type != lexer.COMMA {
			break
		}
		p.next()
	}
	return items, nil
}
