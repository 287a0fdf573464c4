package parser

import (
	"obc/internal/ast"
	"obc/internal/diag"
	"obc/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений.
// Отношения связывают слабее всего, аддитивные сильнее, мультипликативные сильнее всех.
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseBinaryExpr(precRelation)
}

// parseBinaryExpr — precedence climbing. Правый операнд разбирается с
// минимальным приоритетом prec+1, поэтому свёртка левоассоциативна.
// После отношения цикл прерывается: a = b = c не разбирается.
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for !p.failed() && p.at(token.Operator, token.Relation) {
		op, known := ast.LookupBinaryOp(p.tok.Text)
		if !known {
			p.fail(diag.SynUnknownOperator, "unknown operator '"+p.tok.Text+"'")
			return ast.NoExprID, false
		}
		prec := binaryPrec(op)
		if prec < minPrec {
			break // приоритет слишком низкий
		}
		p.advance()

		right, ok := p.parseBinaryExpr(prec + 1)
		if !ok {
			return ast.NoExprID, false
		}
		sp := p.arenas.Exprs.Get(left).Span.Cover(p.arenas.Exprs.Get(right).Span)
		left = p.arenas.Exprs.NewBinary(sp, op, left, right)

		if prec == precRelation {
			break
		}
	}
	if p.failed() {
		return ast.NoExprID, false
	}
	return left, true
}

// parseUnaryExpr: знак относится ко всему первому терму (-a*b = -(a*b)),
// "~" — только к фактору.
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	if !p.at(token.Operator, token.Tilde) {
		return p.parseFactor()
	}
	text := p.tok.Text
	if p.at(token.Tilde) {
		text = "~"
	}
	op, ok := unaryOp(text)
	if !ok {
		p.fail(diag.SynExpectExpression, "expected expression, got "+p.tok.Describe())
		return ast.NoExprID, false
	}
	opTok := p.advance()

	var operand ast.ExprID
	if op == ast.UnaryNot {
		operand, ok = p.parseUnaryExpr()
	} else {
		operand, ok = p.parseBinaryExpr(precMultiplicative)
	}
	if !ok {
		return ast.NoExprID, false
	}
	sp := opTok.Span.Cover(p.arenas.Exprs.Get(operand).Span)
	return p.arenas.Exprs.NewUnary(sp, op, operand), true
}

// parseFactor: number | string | char | NIL | "(" Expr ")" | Set | Designator [ActualParams].
func (p *Parser) parseFactor() (ast.ExprID, bool) {
	if p.failed() {
		return ast.NoExprID, false
	}
	tok := p.tok
	exprs := p.arenas.Exprs
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		return exprs.NewLiteral(tok.Span, ast.ExprInt, ast.ExprLiteralData{Raw: tok.Text, Int: tok.Int}), true
	case token.FloatLit:
		p.advance()
		return exprs.NewLiteral(tok.Span, ast.ExprFloat, ast.ExprLiteralData{Raw: tok.Text, Float: tok.Float}), true
	case token.StringLit:
		p.advance()
		return exprs.NewLiteral(tok.Span, ast.ExprString, ast.ExprLiteralData{Raw: tok.Text}), true
	case token.CharLit:
		p.advance()
		return exprs.NewLiteral(tok.Span, ast.ExprChar, ast.ExprLiteralData{Raw: tok.Text}), true
	case token.KwNil:
		p.advance()
		return exprs.NewNil(tok.Span), true
	case token.LParen:
		p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok = p.expect(token.RParen); !ok {
			return ast.NoExprID, false
		}
		return exprs.NewGroup(p.spanFrom(tok), inner), true
	case token.LBrace:
		return p.parseSet()
	case token.Ident:
		d, ok := p.parseDesignator()
		if !ok {
			return ast.NoExprID, false
		}
		if d.hasArgs {
			return exprs.NewCall(p.spanFrom(tok), d.id, d.args), true
		}
		return exprs.NewDesignator(p.arenas.Designators.Get(d.id).Span, d.id), true
	default:
		p.fail(diag.SynExpectExpression, "expected expression, got "+tok.Describe())
		return ast.NoExprID, false
	}
}

// parseSet: "{" [Element {"," Element}] "}", Element = Expr [".." Expr].
func (p *Parser) parseSet() (ast.ExprID, bool) {
	start := p.advance() // {
	var elems []ast.SetElem
	if !p.at(token.RBrace) {
		for {
			low, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			elem := ast.SetElem{Low: low}
			if _, isRange := p.accept(token.Range); isRange {
				if elem.High, ok = p.parseExpr(); !ok {
					return ast.NoExprID, false
				}
			}
			elems = append(elems, elem)
			if _, more := p.accept(token.Comma); !more {
				break
			}
		}
	}
	if _, ok := p.expect(token.RBrace); !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewSet(p.spanFrom(start), elems), true
}

// parseExprList: Expr {"," Expr}.
func (p *Parser) parseExprList() ([]ast.ExprID, bool) {
	var list []ast.ExprID
	for {
		e, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		list = append(list, e)
		if _, more := p.accept(token.Comma); !more {
			return list, !p.failed()
		}
	}
}
