package parser

import (
	"obc/internal/ast"
	"obc/internal/token"
	"obc/internal/trace"
)

// parseDeclSeq: блоки CONST/TYPE/VAR/EXTERN и процедуры в любом порядке.
// Останавливается на первом токене, который не начинает объявление.
func (p *Parser) parseDeclSeq() ([]ast.DeclID, bool) {
	var decls []ast.DeclID
	for !p.failed() {
		var parseOne func() (ast.DeclID, bool)
		switch p.tok.Kind {
		case token.KwConst:
			parseOne = p.parseConstDecl
		case token.KwType:
			parseOne = p.parseTypeDecl
		case token.KwVar:
			parseOne = p.parseVarDecl
		case token.KwExtern:
			parseOne = p.parseExternDecl
		case token.KwProcedure:
			id, ok := p.parseProcedure()
			if !ok {
				return nil, false
			}
			decls = append(decls, id)
			if _, ok := p.expect(token.Semicolon); !ok {
				return nil, false
			}
			continue
		default:
			return decls, true
		}

		p.advance() // ключевое слово блока
		for p.at(token.Ident) {
			id, ok := parseOne()
			if !ok {
				return nil, false
			}
			decls = append(decls, id)
			if _, ok := p.expect(token.Semicolon); !ok {
				return nil, false
			}
		}
	}
	return nil, false
}

// parseConstDecl: IdentDef "=" ConstExpr.
func (p *Parser) parseConstDecl() (ast.DeclID, bool) {
	start := p.tok
	name, ok := p.parseIdentDef()
	if !ok {
		return ast.NoDeclID, false
	}
	sp := p.traceDecl("const", name)
	defer sp.End("")
	if _, ok := p.expectOp("="); !ok {
		return ast.NoDeclID, false
	}
	value, ok := p.parseConstExpr()
	if !ok {
		return ast.NoDeclID, false
	}
	return p.arenas.Decls.NewConst(p.spanFrom(start), name, value), true
}

// parseTypeDecl: IdentDef "=" Type.
func (p *Parser) parseTypeDecl() (ast.DeclID, bool) {
	start := p.tok
	name, ok := p.parseIdentDef()
	if !ok {
		return ast.NoDeclID, false
	}
	sp := p.traceDecl("type", name)
	defer sp.End("")
	if _, ok := p.expectOp("="); !ok {
		return ast.NoDeclID, false
	}
	typ, ok := p.parseType()
	if !ok {
		return ast.NoDeclID, false
	}
	return p.arenas.Decls.NewType(p.spanFrom(start), name, typ), true
}

// parseVarDecl: IdentList ":" Type.
func (p *Parser) parseVarDecl() (ast.DeclID, bool) {
	start := p.tok
	names, ok := p.parseIdentList()
	if !ok {
		return ast.NoDeclID, false
	}
	if _, ok := p.expect(token.Colon); !ok {
		return ast.NoDeclID, false
	}
	typ, ok := p.parseType()
	if !ok {
		return ast.NoDeclID, false
	}
	return p.arenas.Decls.NewVar(p.spanFrom(start), names, typ), true
}

// parseExternDecl: IdentDef [FormalParams] — только сигнатура, без тела.
func (p *Parser) parseExternDecl() (ast.DeclID, bool) {
	start := p.tok
	name, ok := p.parseIdentDef()
	if !ok {
		return ast.NoDeclID, false
	}
	sp := p.traceDecl("extern", name)
	defer sp.End("")
	var params *ast.FormalParams
	if p.at(token.LParen) {
		if params, ok = p.parseFormalParams(); !ok {
			return ast.NoDeclID, false
		}
	}
	return p.arenas.Decls.NewExtern(p.spanFrom(start), name, params), true
}

// parseConstExpr: форма как у обычного выражения, вычисление — дело семантики.
func (p *Parser) parseConstExpr() (ast.ExprID, bool) {
	return p.parseExpr()
}

func (p *Parser) traceDecl(kind string, name ast.IdentDef) *trace.Span {
	return trace.Begin(p.opts.Tracer, trace.ScopeNode, kind+":"+p.arenas.Name(name.Name), p.span.ID())
}
