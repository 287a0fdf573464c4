package parser

import (
	"obc/internal/ast"
	"obc/internal/token"
)

// parseProcedure разбирает объявление процедуры и оба вида forward:
//
//	PROCEDURE "^" [Receiver] IdentDef [FormalParams]
//	PROCEDURE [Receiver] IdentDef [FormalParams] ";" ident
//	PROCEDURE [Receiver] IdentDef [FormalParams] ";" DeclSeq [BEGIN StatSeq] END ident
//
// Идентификатор сразу после ";" — маркер forward (обычно FORWARD): тело
// процедуры начинается с ключевого слова, так что разночтений нет.
// Завершающую ";" съедает parseDeclSeq.
func (p *Parser) parseProcedure() (ast.DeclID, bool) {
	start := p.advance() // PROCEDURE

	if _, caret := p.accept(token.Caret); caret {
		h, ok := p.parseProcHeader()
		if !ok {
			return ast.NoDeclID, false
		}
		return p.arenas.Decls.NewForward(p.spanFrom(start), h), true
	}

	h, ok := p.parseProcHeader()
	if !ok {
		return ast.NoDeclID, false
	}
	sp := p.traceDecl("procedure", h.Name)
	defer sp.End("")

	if _, ok = p.expect(token.Semicolon); !ok {
		return ast.NoDeclID, false
	}
	if _, marker := p.accept(token.Ident); marker {
		return p.arenas.Decls.NewForward(p.spanFrom(start), h), true
	}

	decls, ok := p.parseDeclSeq()
	if !ok {
		return ast.NoDeclID, false
	}
	var body []ast.StmtID
	_, hasBody := p.accept(token.KwBegin)
	if hasBody {
		if body, ok = p.parseStatSeq(); !ok {
			return ast.NoDeclID, false
		}
	}
	if _, ok = p.expect(token.KwEnd); !ok {
		return ast.NoDeclID, false
	}
	if !p.parseEndName(h.Name.Name, "procedure") {
		return ast.NoDeclID, false
	}
	return p.arenas.Decls.NewProc(p.spanFrom(start), h, decls, body, hasBody), true
}

// parseProcHeader: [Receiver] IdentDef [FormalParams].
func (p *Parser) parseProcHeader() (ast.ProcHeader, bool) {
	var h ast.ProcHeader
	if p.at(token.LParen) {
		recv, ok := p.parseReceiver()
		if !ok {
			return h, false
		}
		h.Receiver = recv
	}
	name, ok := p.parseIdentDef()
	if !ok {
		return h, false
	}
	h.Name = name
	if p.at(token.LParen) {
		if h.Params, ok = p.parseFormalParams(); !ok {
			return h, false
		}
	}
	return h, true
}

// parseReceiver: "(" [VAR] ident ":" ident ")".
func (p *Parser) parseReceiver() (*ast.Receiver, bool) {
	start := p.advance() // (
	_, byRef := p.accept(token.KwVar)
	_, name, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	if _, ok = p.expect(token.Colon); !ok {
		return nil, false
	}
	_, typeName, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	if _, ok = p.expect(token.RParen); !ok {
		return nil, false
	}
	return &ast.Receiver{ByRef: byRef, Name: name, TypeName: typeName, Span: p.spanFrom(start)}, true
}

// parseFormalParams: "(" [FPSection {";" FPSection}] ")" [":" Qualident].
func (p *Parser) parseFormalParams() (*ast.FormalParams, bool) {
	start, ok := p.expect(token.LParen)
	if !ok {
		return nil, false
	}
	fp := &ast.FormalParams{}
	if !p.at(token.RParen) {
		for {
			sec, ok := p.parseParamSection()
			if !ok {
				return nil, false
			}
			fp.Sections = append(fp.Sections, sec)
			if _, more := p.accept(token.Semicolon); !more {
				break
			}
		}
	}
	if _, ok = p.expect(token.RParen); !ok {
		return nil, false
	}
	if _, colon := p.accept(token.Colon); colon {
		q, ok := p.parseQualident()
		if !ok {
			return nil, false
		}
		fp.Result = p.arenas.Types.NewNamed(q.Span, q)
	}
	fp.Span = p.spanFrom(start)
	return fp, !p.failed()
}

// parseParamSection: [VAR] ident {"," ident} ":" Type.
func (p *Parser) parseParamSection() (ast.ParamSection, bool) {
	start := p.tok
	var sec ast.ParamSection
	_, sec.ByRef = p.accept(token.KwVar)
	for {
		_, name, ok := p.parseIdent()
		if !ok {
			return sec, false
		}
		sec.Names = append(sec.Names, name)
		if _, more := p.accept(token.Comma); !more {
			break
		}
	}
	if _, ok := p.expect(token.Colon); !ok {
		return sec, false
	}
	typ, ok := p.parseType()
	if !ok {
		return sec, false
	}
	sec.Type = typ
	sec.Span = p.spanFrom(start)
	return sec, true
}
