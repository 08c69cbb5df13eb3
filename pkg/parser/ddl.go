package parser

import (
	"strconv"

	"github.com/kgcyyds/miniob-2024/pkg/ast"
	"github.com/kgcyyds/miniob-2024/pkg/lexer"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

func (p *Parser) parseCreateTable() (ast.Statement, error) {
	if _, err := p.expect(lexer.CREATE); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TABLE); err != nil {
		return nil, err
	}
	tableTok, err := p.expect(lexer.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}

	var columns []ast.ColumnDef
	for {
		nameTok, err := p.expect(lexer.IDENTIFIER)
		if err != nil {
			return nil, err
		}
		typ, length, err := p.parseTypeSpec()
		if err != nil {
			return nil, err
		}
		nullable := true
		switch p.peek().Type {
		case lexer.NOT:
			p.next()
			if _, err := p.expect(lexer.NULL); err != nil {
				return nil, err
			}
			nullable = false
		case lexer.NULL:
			p.next()
			nullable = true
		}
		columns = append(columns, ast.ColumnDef{Name: nameTok.Value, Type: typ, Length: length, Nullable: nullable})
		if p.peek().Type != lexer.COMMA {
			break
		}
		p.next()
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}

	stmt := &ast.CreateTableStmt{Table: tableTok.Value, Columns: columns}
	if p.peek().Type == lexer.STORAGE {
		p.next()
		if _, err := p.expect(lexer.FORMAT); err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.EQ); err != nil {
			return nil, err
		}
		fmtTok, err := p.expect(lexer.IDENTIFIER)
		if err != nil {
			return nil, err
		}
		stmt.StorageFormat = fmtTok.Value
	}
	return stmt, nil
}

func (p *Parser) parseTypeSpec() (types.Type, int, error) {
	tok := p.next()
	switch tok.Type {
	case lexer.INT:
		return types.Int, 4, nil
	case lexer.FLOAT:
		return types.Float, 4, nil
	case lexer.DATE:
		return types.Date, 4, nil
	case lexer.BOOL:
		return types.Bool, 1, nil
	case lexer.CHAR, lexer.VARCHAR:
		length := 4
		if p.peek().Type == lexer.LPAREN {
			p.next()
			nTok, err := p.expect(lexer.INT_LITERAL)
			if err != nil {
				return 0, 0, err
			}
			n, err := strconv.Atoi(nTok.Value)
			if err != nil {
				return 0, 0, p.errAt(nTok, "INVALID_ARGUMENT", "invalid column length")
			}
			length = n
			if _, err := p.expect(lexer.RPAREN); err != nil {
				return 0, 0, err
			}
		}
		return types.Chars, length, nil
	default:
		return 0, 0, p.errAt(tok, "UNEXPECTED_TOKEN", "expected a column type")
	}
}

func (p *Parser) parseDropTable() (ast.Statement, error) {
	if _, err := p.expect(lexer.DROP); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TABLE); err != nil {
		return nil, err
	}
	tableTok, err := p.expect(lexer.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	return &ast.DropTableStmt{Table: tableTok.Value}, nil
}

func (p *Parser) parseCreateIndex() (ast.Statement, error) {
	if _, err := p.expect(lexer.CREATE); err != nil {
		return nil, err
	}
	unique := false
	if p.peek().Type == lexer.UNIQUE {
		p.next()
		unique = true
	}
	if _, err := p.expect(lexer.INDEX); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(lexer.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.ON); err != nil {
		return nil, err
	}
	tableTok, err := p.expect(lexer.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}

	var cols []string
	for {
		colTok, err := p.expect(lexer.IDENTIFIER)
		if err != nil {
			return nil, err
		}
		cols = append(cols, colTok.Value)
		if p.peek().Type != lexer.COMMA {
			break
		}
		p.next()
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}

	return &ast.CreateIndexStmt{Index: nameTok.Value, Table: tableTok.Value, Columns: cols, Unique: unique}, nil
}

func (p *Parser) parseDropIndex() (ast.Statement, error) {
	if _, err := p.expect(lexer.DROP); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.INDEX); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(lexer.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.ON); err != nil {
		return nil, err
	}
	tableTok, err := p.expect(lexer.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	return &ast.DropIndexStmt{Index: nameTok.Value, Table: tableTok.Value}, nil
}
