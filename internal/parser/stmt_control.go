package parser

import (
	"obc/internal/ast"
	"obc/internal/token"
)

// parseIf: IF Expr THEN StatSeq {ELSIF Expr THEN StatSeq} [ELSE StatSeq] END.
func (p *Parser) parseIf() (ast.StmtID, bool) {
	start := p.advance() // IF
	var data ast.StmtIfData
	for {
		cond, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		if _, ok = p.expect(token.KwThen); !ok {
			return ast.NoStmtID, false
		}
		body, ok := p.parseStatSeq()
		if !ok {
			return ast.NoStmtID, false
		}
		data.Branches = append(data.Branches, ast.CondBranch{Cond: cond, Body: body})
		if _, elsif := p.accept(token.KwElsif); !elsif {
			break
		}
	}
	if !p.parseElse(&data.Else, &data.HasElse) {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.KwEnd); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewIf(p.spanFrom(start), data), true
}

// parseElse: [ELSE StatSeq].
func (p *Parser) parseElse(body *[]ast.StmtID, has *bool) bool {
	if _, ok := p.accept(token.KwElse); !ok {
		return !p.failed()
	}
	stmts, ok := p.parseStatSeq()
	if !ok {
		return false
	}
	*body = stmts
	*has = true
	return true
}

// parseCase: CASE Expr OF [Case] {"|" [Case]} [ELSE StatSeq] END.
func (p *Parser) parseCase() (ast.StmtID, bool) {
	start := p.advance() // CASE
	subject, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok = p.expect(token.KwOf); !ok {
		return ast.NoStmtID, false
	}
	data := ast.StmtCaseData{Subject: subject}
	for {
		if !p.at(token.Pipe, token.KwElse, token.KwEnd) {
			clause, ok := p.parseCaseClause()
			if !ok {
				return ast.NoStmtID, false
			}
			data.Clauses = append(data.Clauses, clause)
		}
		if _, more := p.accept(token.Pipe); !more {
			break
		}
	}
	if !p.parseElse(&data.Else, &data.HasElse) {
		return ast.NoStmtID, false
	}
	if _, ok = p.expect(token.KwEnd); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewCase(p.spanFrom(start), data), true
}

// parseCaseClause: CaseLabel {"," CaseLabel} ":" StatSeq, CaseLabel = ConstExpr [".." ConstExpr].
func (p *Parser) parseCaseClause() (ast.CaseClause, bool) {
	start := p.tok
	var clause ast.CaseClause
	for {
		low, ok := p.parseConstExpr()
		if !ok {
			return clause, false
		}
		label := ast.CaseLabel{Low: low}
		if _, isRange := p.accept(token.Range); isRange {
			if label.High, ok = p.parseConstExpr(); !ok {
				return clause, false
			}
		}
		clause.Labels = append(clause.Labels, label)
		if _, more := p.accept(token.Comma); !more {
			break
		}
	}
	if _, ok := p.expect(token.Colon); !ok {
		return clause, false
	}
	body, ok := p.parseStatSeq()
	if !ok {
		return clause, false
	}
	clause.Body = body
	clause.Span = p.spanFrom(start)
	return clause, true
}

// parseWhile: WHILE Expr DO StatSeq END.
func (p *Parser) parseWhile() (ast.StmtID, bool) {
	start := p.advance() // WHILE
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok = p.expect(token.KwDo); !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseStatSeq()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok = p.expect(token.KwEnd); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewLoop(ast.StmtWhile, p.spanFrom(start), cond, body), true
}

// parseRepeat: REPEAT StatSeq UNTIL Expr.
func (p *Parser) parseRepeat() (ast.StmtID, bool) {
	start := p.advance() // REPEAT
	body, ok := p.parseStatSeq()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok = p.expect(token.KwUntil); !ok {
		return ast.NoStmtID, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewLoop(ast.StmtRepeat, p.spanFrom(start), cond, body), true
}

// parseFor: FOR ident ":=" Expr TO Expr [BY ConstExpr] DO StatSeq END.
func (p *Parser) parseFor() (ast.StmtID, bool) {
	start := p.advance() // FOR
	varTok, name, ok := p.parseIdent()
	if !ok {
		return ast.NoStmtID, false
	}
	data := ast.StmtForData{Var: name, VarSpan: varTok.Span}
	if _, ok = p.expect(token.Assign); !ok {
		return ast.NoStmtID, false
	}
	if data.From, ok = p.parseExpr(); !ok {
		return ast.NoStmtID, false
	}
	if _, ok = p.expect(token.KwTo); !ok {
		return ast.NoStmtID, false
	}
	if data.To, ok = p.parseExpr(); !ok {
		return ast.NoStmtID, false
	}
	if _, by := p.accept(token.KwBy); by {
		if data.By, ok = p.parseConstExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	if _, ok = p.expect(token.KwDo); !ok {
		return ast.NoStmtID, false
	}
	if data.Body, ok = p.parseStatSeq(); !ok {
		return ast.NoStmtID, false
	}
	if _, ok = p.expect(token.KwEnd); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewFor(p.spanFrom(start), data), true
}

// parseLoop: LOOP StatSeq END.
func (p *Parser) parseLoop() (ast.StmtID, bool) {
	start := p.advance() // LOOP
	body, ok := p.parseStatSeq()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok = p.expect(token.KwEnd); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewLoop(ast.StmtLoop, p.spanFrom(start), ast.NoExprID, body), true
}

// parseWith: WITH Guard DO StatSeq {"|" Guard DO StatSeq} [ELSE StatSeq] END,
// Guard = Qualident ":" Qualident.
func (p *Parser) parseWith() (ast.StmtID, bool) {
	start := p.advance() // WITH
	var data ast.StmtWithData
	for {
		guardStart := p.tok
		v, ok := p.parseQualident()
		if !ok {
			return ast.NoStmtID, false
		}
		if _, ok = p.expect(token.Colon); !ok {
			return ast.NoStmtID, false
		}
		typ, ok := p.parseQualident()
		if !ok {
			return ast.NoStmtID, false
		}
		if _, ok = p.expect(token.KwDo); !ok {
			return ast.NoStmtID, false
		}
		body, ok := p.parseStatSeq()
		if !ok {
			return ast.NoStmtID, false
		}
		data.Guards = append(data.Guards, ast.WithGuard{Var: v, Type: typ, Body: body, Span: p.spanFrom(guardStart)})
		if _, more := p.accept(token.Pipe); !more {
			break
		}
	}
	if !p.parseElse(&data.Else, &data.HasElse) {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.KwEnd); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewWith(p.spanFrom(start), data), true
}
