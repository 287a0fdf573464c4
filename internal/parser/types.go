package parser

import (
	"obc/internal/ast"
	"obc/internal/diag"
	"obc/internal/token"
)

// parseType:
//
//	Qualident
//	| ARRAY [ConstExpr {"," ConstExpr}] OF Type
//	| RECORD ["(" Qualident ")"] [FieldList {";" FieldList}] END
//	| POINTER TO Type
//	| PROCEDURE [FormalParams]
func (p *Parser) parseType() (ast.TypeID, bool) {
	if p.failed() {
		return ast.NoTypeID, false
	}
	switch p.tok.Kind {
	case token.Ident:
		q, ok := p.parseQualident()
		if !ok {
			return ast.NoTypeID, false
		}
		return p.arenas.Types.NewNamed(q.Span, q), true
	case token.KwArray:
		return p.parseArrayType()
	case token.KwRecord:
		return p.parseRecordType()
	case token.KwPointer:
		start := p.advance()
		if _, ok := p.expect(token.KwTo); !ok {
			return ast.NoTypeID, false
		}
		target, ok := p.parseType()
		if !ok {
			return ast.NoTypeID, false
		}
		return p.arenas.Types.NewPointer(p.spanFrom(start), target), true
	case token.KwProcedure:
		start := p.advance()
		var params *ast.FormalParams
		if p.at(token.LParen) {
			var ok bool
			if params, ok = p.parseFormalParams(); !ok {
				return ast.NoTypeID, false
			}
		}
		return p.arenas.Types.NewProc(p.spanFrom(start), params), true
	default:
		p.fail(diag.SynExpectType, "expected type, got "+p.tok.Describe())
		return ast.NoTypeID, false
	}
}

// parseArrayType: без длин — открытый массив.
func (p *Parser) parseArrayType() (ast.TypeID, bool) {
	start := p.advance() // ARRAY
	var lengths []ast.ExprID
	if !p.at(token.KwOf) {
		var ok bool
		if lengths, ok = p.parseExprList(); !ok {
			return ast.NoTypeID, false
		}
	}
	if _, ok := p.expect(token.KwOf); !ok {
		return ast.NoTypeID, false
	}
	elem, ok := p.parseType()
	if !ok {
		return ast.NoTypeID, false
	}
	return p.arenas.Types.NewArray(p.spanFrom(start), lengths, elem), true
}

func (p *Parser) parseRecordType() (ast.TypeID, bool) {
	start := p.advance() // RECORD
	base := ast.NoTypeID
	if _, ok := p.accept(token.LParen); ok {
		q, ok := p.parseQualident()
		if !ok {
			return ast.NoTypeID, false
		}
		base = p.arenas.Types.NewNamed(q.Span, q)
		if _, ok = p.expect(token.RParen); !ok {
			return ast.NoTypeID, false
		}
	}

	var fields []ast.FieldList
	for {
		// FieldList может быть пустым: "RECORD END", "a: T; END"
		if p.at(token.Ident) {
			names, ok := p.parseIdentList()
			if !ok {
				return ast.NoTypeID, false
			}
			if _, ok = p.expect(token.Colon); !ok {
				return ast.NoTypeID, false
			}
			typ, ok := p.parseType()
			if !ok {
				return ast.NoTypeID, false
			}
			fields = append(fields, ast.FieldList{Names: names, Type: typ})
		}
		if _, more := p.accept(token.Semicolon); !more {
			break
		}
	}
	if _, ok := p.expect(token.KwEnd); !ok {
		return ast.NoTypeID, false
	}
	return p.arenas.Types.NewRecord(p.spanFrom(start), base, fields), true
}
