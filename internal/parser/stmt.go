package parser

import (
	"obc/internal/ast"
	"obc/internal/diag"
	"obc/internal/token"
)

// parseStatSeq: Statement {";" Statement}. Пустые операторы не попадают в список.
func (p *Parser) parseStatSeq() ([]ast.StmtID, bool) {
	var stmts []ast.StmtID
	for {
		id, ok := p.parseStatement()
		if !ok {
			return nil, false
		}
		if id.IsValid() {
			stmts = append(stmts, id)
		}
		if _, more := p.accept(token.Semicolon); !more {
			break
		}
	}
	if p.failed() {
		return nil, false
	}
	return stmts, true
}

// atStatSeqEnd — токены, которые могут идти за последовательностью операторов.
func (p *Parser) atStatSeqEnd() bool {
	return p.at(token.Semicolon, token.KwEnd, token.KwElse, token.KwElsif, token.KwUntil, token.Pipe, token.EOF)
}

// parseStatement выбирает по первому токену нужный распознаватель.
// Пустой оператор возвращает NoStmtID и true.
func (p *Parser) parseStatement() (ast.StmtID, bool) {
	if p.failed() {
		return ast.NoStmtID, false
	}
	switch p.tok.Kind {
	case token.Ident:
		return p.parseSimpleStatement()
	case token.KwIf:
		return p.parseIf()
	case token.KwCase:
		return p.parseCase()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwRepeat:
		return p.parseRepeat()
	case token.KwFor:
		return p.parseFor()
	case token.KwLoop:
		return p.parseLoop()
	case token.KwWith:
		return p.parseWith()
	case token.KwExit:
		tok := p.advance()
		return p.arenas.Stmts.NewExit(tok.Span), true
	case token.KwReturn:
		return p.parseReturn()
	}
	if p.atStatSeqEnd() {
		return ast.NoStmtID, true
	}
	p.fail(diag.SynExpectStatement, "expected statement, got "+p.tok.Describe())
	return ast.NoStmtID, false
}

// parseSimpleStatement: Designator ":=" Expr | Designator [ActualParams].
func (p *Parser) parseSimpleStatement() (ast.StmtID, bool) {
	start := p.tok
	d, ok := p.parseDesignator()
	if !ok {
		return ast.NoStmtID, false
	}
	if p.at(token.Assign) {
		if d.hasArgs {
			p.fail(diag.SynUnexpectedToken, "cannot assign to a procedure call")
			return ast.NoStmtID, false
		}
		p.advance()
		value, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewAssign(p.spanFrom(start), d.id, value), true
	}
	return p.arenas.Stmts.NewCall(p.spanFrom(start), d.id, d.args, d.hasArgs), true
}

// parseReturn: RETURN [Expr]. Выражения нет, если дальше конец последовательности.
func (p *Parser) parseReturn() (ast.StmtID, bool) {
	start := p.advance() // RETURN
	value := ast.NoExprID
	if !p.atStatSeqEnd() {
		var ok bool
		if value, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	return p.arenas.Stmts.NewReturn(p.spanFrom(start), value), true
}
