package parser

import (
	"obc/internal/ast"
)

// Таблица приоритетов. Чем больше число, тем сильнее связывает.
// Отношения не цепляются: a < b < c — ошибка.
const (
	precNone           = 0
	precRelation       = 1 // = # < <= > >= IN IS
	precAdditive       = 2 // + - OR
	precMultiplicative = 3 // * / DIV MOD &
)

func binaryPrec(op ast.BinaryOp) int {
	switch op {
	case ast.BinEq, ast.BinNeq, ast.BinLt, ast.BinLe, ast.BinGt, ast.BinGe, ast.BinIn, ast.BinIs:
		return precRelation
	case ast.BinAdd, ast.BinSub, ast.BinOr:
		return precAdditive
	case ast.BinMul, ast.BinDivide, ast.BinDiv, ast.BinMod, ast.BinAnd:
		return precMultiplicative
	default:
		return precNone
	}
}

// unaryOp: только "+", "-" и "~" бывают префиксами.
func unaryOp(text string) (ast.UnaryOp, bool) {
	switch text {
	case "+":
		return ast.UnaryPlus, true
	case "-":
		return ast.UnaryMinus, true
	case "~":
		return ast.UnaryNot, true
	}
	return 0, false
}
