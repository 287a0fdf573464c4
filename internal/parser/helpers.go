package parser

import (
	"strconv"
	"strings"

	"obc/internal/ast"
	"obc/internal/diag"
	"obc/internal/source"
	"obc/internal/token"
)

// advance — съедает текущий токен и подтягивает следующий из лексера
func (p *Parser) advance() token.Token {
	tok := p.tok
	p.prev = tok
	p.tok = p.lx.Next()
	return tok
}

func (p *Parser) at(kinds ...token.Kind) bool {
	return p.tok.Is(kinds...)
}

// atOp reports whether the lookahead is the operator or relation spelled text.
func (p *Parser) atOp(text string) bool {
	return p.tok.Is(token.Operator, token.Relation) && p.tok.Text == text
}

// accept съедает токен, если он одного из видов kinds (без kinds — любой,
// кроме EOF и Invalid). Иначе ничего не трогает.
func (p *Parser) accept(kinds ...token.Kind) (token.Token, bool) {
	if p.failed() {
		return token.Token{}, false
	}
	if len(kinds) == 0 {
		if p.at(token.EOF, token.Invalid) {
			return token.Token{}, false
		}
		return p.advance(), true
	}
	if p.at(kinds...) {
		return p.advance(), true
	}
	return token.Token{}, false
}

// expect — как accept, но несовпадение фиксирует ошибку на текущем токене.
func (p *Parser) expect(kinds ...token.Kind) (token.Token, bool) {
	if tok, ok := p.accept(kinds...); ok {
		return tok, true
	}
	if p.failed() {
		return token.Token{}, false
	}
	if len(kinds) == 0 {
		p.fail(diag.SynUnexpectedToken, "unexpected "+p.tok.Describe())
		return token.Token{}, false
	}
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	p.fail(expectCode(kinds[0]), "expected "+strings.Join(names, " or ")+", got "+p.tok.Describe())
	return token.Token{}, false
}

// acceptOp съедает OPERATOR/RELATION с указанным текстом.
func (p *Parser) acceptOp(text string) (token.Token, bool) {
	if p.failed() || !p.atOp(text) {
		return token.Token{}, false
	}
	return p.advance(), true
}

func (p *Parser) expectOp(text string) (token.Token, bool) {
	if tok, ok := p.acceptOp(text); ok {
		return tok, true
	}
	if !p.failed() {
		p.fail(diag.SynUnexpectedToken, "expected '"+text+"', got "+p.tok.Describe())
	}
	return token.Token{}, false
}

func expectCode(k token.Kind) diag.Code {
	switch k {
	case token.Ident:
		return diag.SynExpectIdentifier
	case token.Semicolon:
		return diag.SynExpectSemicolon
	case token.KwEnd:
		return diag.SynExpectEnd
	case token.Dot:
		return diag.SynExpectDot
	default:
		return diag.SynUnexpectedToken
	}
}

// fail фиксирует ошибку на текущем токене.
func (p *Parser) fail(code diag.Code, msg string) {
	p.failAt(p.tok, code, msg)
}

// failAt — первая ошибка побеждает. Лексер никогда не забегает дальше
// текущего токена, так что его ошибка, если есть, случилась раньше: она уже
// отрепорчена, повторно не шлём.
func (p *Parser) failAt(tok token.Token, code diag.Code, msg string) {
	if p.err != nil {
		return
	}
	if lerr := p.lx.Err(); lerr != nil {
		p.err = lerr
		return
	}
	p.err = &Error{Code: code, Message: msg, Loc: tok.Loc, Span: tok.Span}
	if p.opts.Reporter != nil {
		diag.ReportError(p.opts.Reporter, code, tok.Span, msg).At(tok.Loc).Emit()
	}
}

// spanFrom покрывает всё от start до последнего съеденного токена.
func (p *Parser) spanFrom(start token.Token) source.Span {
	if p.prev.Span.End < start.Span.Start {
		return start.Span
	}
	return start.Span.Cover(p.prev.Span)
}

// parseIdent — ожидает Ident и интернирует его.
func (p *Parser) parseIdent() (token.Token, source.StringID, bool) {
	tok, ok := p.expect(token.Ident)
	if !ok {
		return tok, source.NoStringID, false
	}
	return tok, p.arenas.Intern(tok.Text), true
}

// parseIdentDef: ident ["*" | "-"].
func (p *Parser) parseIdentDef() (ast.IdentDef, bool) {
	tok, name, ok := p.parseIdent()
	if !ok {
		return ast.IdentDef{}, false
	}
	def := ast.IdentDef{Name: name, Span: tok.Span}
	switch {
	case p.at(token.Operator) && p.tok.Text == "*":
		def.Export = ast.ExportPublic
		def.Span = def.Span.Cover(p.advance().Span)
	case p.at(token.Operator) && p.tok.Text == "-":
		def.Export = ast.ExportReadOnly
		def.Span = def.Span.Cover(p.advance().Span)
	}
	return def, true
}

// parseIdentList: IdentDef {"," IdentDef}.
func (p *Parser) parseIdentList() ([]ast.IdentDef, bool) {
	var defs []ast.IdentDef
	for {
		def, ok := p.parseIdentDef()
		if !ok {
			return nil, false
		}
		defs = append(defs, def)
		if _, more := p.accept(token.Comma); !more {
			return defs, !p.failed()
		}
	}
}

// parseQualident: [ident "."] ident.
func (p *Parser) parseQualident() (ast.Qualident, bool) {
	first, name, ok := p.parseIdent()
	if !ok {
		return ast.Qualident{}, false
	}
	q := ast.Qualident{Name: name, Span: first.Span}
	if _, dot := p.accept(token.Dot); dot {
		last, sel, ok := p.parseIdent()
		if !ok {
			return ast.Qualident{}, false
		}
		q = ast.Qualident{Module: name, Name: sel, Span: first.Span.Cover(last.Span)}
	}
	return q, true
}

// parseEndName: END уже съеден, ждём ident, совпадающий с именем блока.
func (p *Parser) parseEndName(want source.StringID, what string) bool {
	tok, got, ok := p.parseIdent()
	if !ok {
		return false
	}
	if got != want {
		p.failAt(tok, diag.SynNameMismatch,
			what+" name mismatch: expected '"+p.arenas.Name(want)+"', got '"+tok.Text+"'")
		return false
	}
	return true
}

func itoa(n int) string { return strconv.Itoa(n) }
