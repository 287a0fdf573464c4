package parser

import (
	"obc/internal/ast"
	"obc/internal/token"
)

// designatorResult — разобранный десигнатор и, если был, список фактических
// параметров, которым он закончился.
type designatorResult struct {
	id      ast.DesignatorID
	args    []ast.ExprID
	hasArgs bool
}

// parseDesignator: ident { "." ident | "[" ExprList "]" | "^" | "(" Qualident ")" }.
//
// "(" неоднозначна: это охрана типа, только если внутри ровно один qualident
// и за ")" идёт ещё один селектор. Иначе список в скобках — фактические
// параметры вызова, и десигнатор на этом заканчивается. v(T) без хвоста
// остаётся вызовом; различить их может только семантика.
func (p *Parser) parseDesignator() (designatorResult, bool) {
	var res designatorResult
	first, base, ok := p.parseIdent()
	if !ok {
		return res, false
	}
	var sels []ast.Selector

loop:
	for !p.failed() {
		switch p.tok.Kind {
		case token.Dot:
			dot := p.advance()
			_, field, ok := p.parseIdent()
			if !ok {
				return res, false
			}
			sels = append(sels, ast.Selector{Kind: ast.SelField, Span: p.spanFrom(dot), Field: field})
		case token.LBracket:
			open := p.advance()
			index, ok := p.parseExprList()
			if !ok {
				return res, false
			}
			if _, ok = p.expect(token.RBracket); !ok {
				return res, false
			}
			sels = append(sels, ast.Selector{Kind: ast.SelIndex, Span: p.spanFrom(open), Index: index})
		case token.Caret:
			caret := p.advance()
			sels = append(sels, ast.Selector{Kind: ast.SelDeref, Span: caret.Span})
		case token.LParen:
			open := p.tok
			args, ok := p.parseActualParams()
			if !ok {
				return res, false
			}
			if len(args) == 1 && p.at(token.Dot, token.LBracket, token.Caret) {
				if q, isQual := p.asQualident(args[0]); isQual {
					sels = append(sels, ast.Selector{Kind: ast.SelGuard, Span: p.spanFrom(open), Guard: q})
					continue
				}
			}
			res.args = args
			res.hasArgs = true
			break loop
		default:
			break loop
		}
	}
	if p.failed() {
		return res, false
	}

	// спан десигнатора не включает список параметров
	sp := first.Span
	if len(sels) > 0 {
		sp = sp.Cover(sels[len(sels)-1].Span)
	}
	res.id = p.arenas.Designators.New(sp, base, first.Span, sels)
	return res, true
}

// parseActualParams: "(" [ExprList] ")".
func (p *Parser) parseActualParams() ([]ast.ExprID, bool) {
	if _, ok := p.expect(token.LParen); !ok {
		return nil, false
	}
	args := []ast.ExprID{}
	if !p.at(token.RParen) {
		var ok bool
		if args, ok = p.parseExprList(); !ok {
			return nil, false
		}
	}
	if _, ok := p.expect(token.RParen); !ok {
		return nil, false
	}
	return args, true
}

// asQualident проверяет, что выражение — голый ident или ident.ident.
// Узлы выражения остаются в арене неиспользованными.
func (p *Parser) asQualident(e ast.ExprID) (ast.Qualident, bool) {
	ed, ok := p.arenas.Exprs.Designator(e)
	if !ok {
		return ast.Qualident{}, false
	}
	d := p.arenas.Designators.Get(ed.Designator)
	switch len(d.Selectors) {
	case 0:
		return ast.Qualident{Name: d.Base, Span: d.Span}, true
	case 1:
		if sel := d.Selectors[0]; sel.Kind == ast.SelField {
			return ast.Qualident{Module: d.Base, Name: sel.Field, Span: d.Span}, true
		}
	}
	return ast.Qualident{}, false
}
