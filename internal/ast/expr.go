package ast

import (
	"obc/internal/source"
)

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	ExprInt ExprKind = iota
	ExprFloat
	ExprString
	// ExprChar is accepted by the parser although the lexer never produces CHARLITERAL.
	ExprChar
	ExprNil
	// ExprDesignator is a variable, field, element or guarded designator without call.
	ExprDesignator
	ExprCall
	ExprUnary
	ExprBinary
	// ExprSet is a set constructor {a, b..c}.
	ExprSet
	// ExprGroup is a parenthesized expression.
	ExprGroup
)

func (k ExprKind) String() string {
	switch k {
	case ExprInt:
		return "Int"
	case ExprFloat:
		return "Float"
	case ExprString:
		return "String"
	case ExprChar:
		return "Char"
	case ExprNil:
		return "Nil"
	case ExprDesignator:
		return "Designator"
	case ExprCall:
		return "Call"
	case ExprUnary:
		return "Unary"
	case ExprBinary:
		return "Binary"
	case ExprSet:
		return "Set"
	case ExprGroup:
		return "Group"
	}
	return "Expr?"
}

// Expr represents an expression node in the AST.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// BinaryOp classifies operator and relation spellings.
type BinaryOp uint8

const (
	// Отношения
	BinEq  BinaryOp = iota // =
	BinNeq                 // #
	BinLt                  // <
	BinLe                  // <=
	BinGt                  // >
	BinGe                  // >=
	BinIn                  // IN
	BinIs                  // IS

	// Аддитивные
	BinAdd // +
	BinSub // -
	BinOr  // OR

	// Мультипликативные
	BinMul    // *
	BinDivide // /
	BinDiv    // DIV
	BinMod    // MOD
	BinAnd    // &
)

var binaryOpText = [...]string{
	BinEq:     "=",
	BinNeq:    "#",
	BinLt:     "<",
	BinLe:     "<=",
	BinGt:     ">",
	BinGe:     ">=",
	BinIn:     "IN",
	BinIs:     "IS",
	BinAdd:    "+",
	BinSub:    "-",
	BinOr:     "OR",
	BinMul:    "*",
	BinDivide: "/",
	BinDiv:    "DIV",
	BinMod:    "MOD",
	BinAnd:    "&",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpText) {
		return binaryOpText[op]
	}
	return "?"
}

// IsRelation reports whether op belongs to the relation tier.
func (op BinaryOp) IsRelation() bool {
	return op <= BinIs
}

// LookupBinaryOp maps operator or relation text to its BinaryOp.
// Word operators must already be upper-cased (the lexer does that).
func LookupBinaryOp(text string) (BinaryOp, bool) {
	switch text {
	case "=":
		return BinEq, true
	case "#":
		return BinNeq, true
	case "<":
		return BinLt, true
	case "<=":
		return BinLe, true
	case ">":
		return BinGt, true
	case ">=":
		return BinGe, true
	case "IN":
		return BinIn, true
	case "IS":
		return BinIs, true
	case "+":
		return BinAdd, true
	case "-":
		return BinSub, true
	case "OR":
		return BinOr, true
	case "*":
		return BinMul, true
	case "/":
		return BinDivide, true
	case "DIV":
		return BinDiv, true
	case "MOD":
		return BinMod, true
	case "&":
		return BinAnd, true
	}
	return 0, false
}

type UnaryOp uint8

const (
	UnaryPlus  UnaryOp = iota // +
	UnaryMinus                // -
	UnaryNot                  // ~
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryPlus:
		return "+"
	case UnaryMinus:
		return "-"
	case UnaryNot:
		return "~"
	}
	return "?"
}

// ExprLiteralData holds literal payloads. Raw is the lexeme as written
// (string contents without quotes).
type ExprLiteralData struct {
	Raw   string
	Int   int64
	Float float64
}

type ExprDesignatorData struct {
	Designator DesignatorID
}

type ExprCallData struct {
	Designator DesignatorID
	Args       []ExprID
}

type ExprUnaryData struct {
	Op      UnaryOp
	Operand ExprID
}

type ExprBinaryData struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

// SetElem: High is NoExprID for a single element.
type SetElem struct {
	Low  ExprID
	High ExprID
}

type ExprSetData struct {
	Elems []SetElem
}

type ExprGroupData struct {
	Inner ExprID
}
