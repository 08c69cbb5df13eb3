package parser

import (
	"strconv"
	"strings"

	"github.com/kgcyyds/miniob-2024/pkg/ast"
	"github.com/kgcyyds/miniob-2024/pkg/lexer"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

var aggFuncs = map[string]bool{"COUNT": true, "SUM": true, "AVG": true, "MAX": true, "MIN": true}

// parseExprList parses a comma-separated list of expressions using elem.
func (p *Parser) parseExprList(elem func() (ast.Expr, error)) ([]ast.Expr, error) {
	var out []ast.Expr
	for {
		e, err := elem()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
		if p.peek().Type != lexer.COMMA {
			break
		}
		p.next()
	}
	return out, nil
}

// parseCondition parses the condition surface of §6: comparisons,
// LIKE/NOT LIKE, IS [NOT] NULL, IN/NOT IN, [NOT] EXISTS, joined by
// AND/OR. AND binds tighter than OR, and each associates left to right.
func (p *Parser) parseCondition() (ast.Expr, error) {
	left, err := p.parseAndCondition()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == lexer.OR {
		p.next()
		right, err := p.parseAndCondition()
		if err != nil {
			return nil, err
		}
		left = &ast.LogicalExpr{Op: ast.OpOr, Children: []ast.Expr{left, right}}
	}
	return left, nil
}

func (p *Parser) parseAndCondition() (ast.Expr, error) {
	left, err := p.parsePrimaryCondition()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == lexer.AND {
		p.next()
		right, err := p.parsePrimaryCondition()
		if err != nil {
			return nil, err
		}
		left = &ast.LogicalExpr{Op: ast.OpAnd, Children: []ast.Expr{left, right}}
	}
	return left, nil
}

func (p *Parser) parsePrimaryCondition() (ast.Expr, error) {
	if p.peek().Type == lexer.LPAREN {
		p.next()
		inner, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return inner, nil
	}

	negate := false
	if p.peek().Type == lexer.NOT && p.peekN(1).Type == lexer.EXISTS {
		p.next()
		negate = true
	}
	if p.peek().Type == lexer.EXISTS {
		p.next()
		if _, err := p.expect(lexer.LPAREN); err != nil {
			return nil, err
		}
		sub, err := p.parseSelect()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return &ast.ExistsExpr{Negate: negate, Sub: sub.(*ast.SelectStmt)}, nil
	}

	left, err := p.parseArithExpr()
	if err != nil {
		return nil, err
	}

	tok := p.peek()
	switch tok.Type {
	case lexer.IS:
		p.next()
		neg := false
		if p.peek().Type == lexer.NOT {
			p.next()
			neg = true
		}
		if _, err := p.expect(lexer.NULL); err != nil {
			return nil, err
		}
		return &ast.IsNullExpr{Negate: neg, Child: left}, nil
	case lexer.LIKE:
		p.next()
		right, err := p.parseArithExpr()
		if err != nil {
			return nil, err
		}
		return &ast.LikeExpr{Left: left, Right: right}, nil
	case lexer.IN:
		p.next()
		return p.parseInList(left, false)
	case lexer.NOT:
		p.next()
		switch p.peek().Type {
		case lexer.LIKE:
			p.next()
			right, err := p.parseArithExpr()
			if err != nil {
				return nil, err
			}
			return &ast.LikeExpr{Negate: true, Left: left, Right: right}, nil
		case lexer.IN:
			p.next()
			return p.parseInList(left, true)
		default:
			return nil, p.errAt(p.peek(), "UNEXPECTED_TOKEN", "expected LIKE or IN after NOT")
		}
	case lexer.EQ, lexer.NE, lexer.LT, lexer.LE, lexer.GT, lexer.GE:
		op := compOpFor(tok.Type)
		p.next()
		right, err := p.parseArithExpr()
		if err != nil {
			return nil, err
		}
		return &ast.CompareExpr{Op: op, Left: left, Right: right}, nil
	default:
		return nil, p.errAt(tok, "UNEXPECTED_TOKEN", "expected a comparison operator")
	}
}

func compOpFor(tt lexer.TokenType) ast.CompOp {
	switch tt {
	case lexer.EQ:
		return ast.OpEQ
	case lexer.NE:
		return ast.OpNE
	case lexer.LT:
		return ast.OpLT
	case lexer.LE:
		return ast.OpLE
	case lexer.GT:
		return ast.OpGT
	default:
		return ast.OpGE
	}
}

func (p *Parser) parseInList(left ast.Expr, negate bool) (ast.Expr, error) {
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	if p.peek().Type == lexer.SELECT {
		sub, err := p.parseSelect()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return &ast.InExpr{Negate: negate, Left: left, Sub: sub.(*ast.SelectStmt)}, nil
	}
	items, err := p.parseExprList(p.parseArithExpr)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return &ast.InExpr{Negate: negate, Left: left, List: items}, nil
}

// parseArithExpr parses `term ((+|-) term)*`.
func (p *Parser) parseArithExpr() (ast.Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == lexer.PLUS || p.peek().Type == lexer.MINUS {
		op := ast.OpAdd
		if p.peek().Type == lexer.MINUS {
			op = ast.OpSub
		}
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryArithExpr{Op: op, Left: left, Right: right}
	}
	return left, nil
}

// parseTerm parses `unary ((*|/) unary)*`.
func (p *Parser) parseTerm() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == lexer.ASTERISK || p.peek().Type == lexer.SLASH {
		op := ast.OpMul
		if p.peek().Type == lexer.SLASH {
			op = ast.OpDiv
		}
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryArithExpr{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.peek().Type == lexer.MINUS {
		p.next()
		child, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: ast.OpNeg, Child: child}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case lexer.LPAREN:
		p.next()
		if p.peek().Type == lexer.SELECT {
			sub, err := p.parseSelect()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.RPAREN); err != nil {
				return nil, err
			}
			return &ast.ScalarSubquery{Sub: sub.(*ast.SelectStmt)}, nil
		}
		inner, err := p.parseArithExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return inner, nil
	case lexer.INT_LITERAL:
		p.next()
		n, err := strconv.ParseInt(tok.Value, 10, 32)
		if err != nil {
			return nil, p.errAt(tok, "INVALID_ARGUMENT", "invalid integer literal '"+tok.Value+"'")
		}
		return &ast.Literal{Value: types.NewInt(int32(n)), Line: tok.Line, Column: tok.Column}, nil
	case lexer.FLOAT_LITERAL:
		p.next()
		f, err := strconv.ParseFloat(tok.Value, 32)
		if err != nil {
			return nil, p.errAt(tok, "INVALID_ARGUMENT", "invalid float literal '"+tok.Value+"'")
		}
		return &ast.Literal{Value: types.NewFloat(float32(f)), Line: tok.Line, Column: tok.Column}, nil
	case lexer.STRING_LITERAL:
		p.next()
		return &ast.Literal{Value: types.NewChars(tok.Value, len(tok.Value)), Line: tok.Line, Column: tok.Column}, nil
	case lexer.NULL:
		p.next()
		return &ast.Literal{Value: types.Nil, Line: tok.Line, Column: tok.Column}, nil
	case lexer.ASTERISK:
		p.next()
		return &ast.Star{}, nil
	case lexer.IDENTIFIER:
		name := tok.Value
		upper := strings.ToUpper(name)
		if aggFuncs[upper] && p.peekN(1).Type == lexer.LPAREN {
			p.next()
			p.next()
			if p.peek().Type == lexer.ASTERISK && upper == "COUNT" {
				p.next()
				if _, err := p.expect(lexer.RPAREN); err != nil {
					return nil, err
				}
				return &ast.AggCall{Func: "COUNT", Star: true}, nil
			}
			arg, err := p.parseArithExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.RPAREN); err != nil {
				return nil, err
			}
			return &ast.AggCall{Func: upper, Arg: arg}, nil
		}
		p.next()
		if p.peek().Type == lexer.DOT {
			p.next()
			if p.peek().Type == lexer.ASTERISK {
				p.next()
				return &ast.Star{Table: name}, nil
			}
			field, err := p.expect(lexer.IDENTIFIER)
			if err != nil {
				return nil, err
			}
			return &ast.Ident{Table: name, Field: field.Value}, nil
		}
		return &ast.Ident{Field: name}, nil
	default:
		return nil, p.errAt(tok, "UNEXPECTED_TOKEN", "unexpected token '"+tok.Value+"' in expression")
	}
}
