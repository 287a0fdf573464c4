package token

import "strings"

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid marks a token produced for a lexical error.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Other is any character no other rule matches.
	Other

	IntLit    // 123
	FloatLit  // 1.5
	StringLit // "text"
	CharLit   // reserved; the lexer never produces it

	// Ident represents a user identifier.
	Ident

	KwModule    // MODULE
	KwImport    // IMPORT
	KwBegin     // BEGIN
	KwEnd       // END
	KwExtern    // EXTERN
	KwProcedure // PROCEDURE
	KwExit      // EXIT
	KwReturn    // RETURN
	KwVar       // VAR
	KwConst     // CONST
	KwType      // TYPE
	KwNil       // NIL
	KwArray     // ARRAY
	KwRecord    // RECORD
	KwPointer   // POINTER
	KwOf        // OF
	KwTo        // TO
	KwIf        // IF
	KwThen      // THEN
	KwElsif     // ELSIF
	KwElse      // ELSE
	KwCase      // CASE
	KwWith      // WITH
	KwRepeat    // REPEAT
	KwUntil     // UNTIL
	KwWhile     // WHILE
	KwDo        // DO
	KwFor       // FOR
	KwBy        // BY
	KwLoop      // LOOP

	// Operator is a maximal run of + - * / & ~ \ or one of OR, DIV, MOD.
	Operator
	// Relation is a maximal run of < > # = or one of IN, IS.
	Relation

	Dot       // .
	Range     // ..
	Comma     // ,
	Colon     // :
	Semicolon // ;
	Assign    // :=
	Pipe      // |
	Caret     // ^
	Tilde     // ~ (reserved; '~' lexes as Operator)
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]

	kindCount
)

var kindNames = [...]string{
	Invalid:     "INVALID",
	EOF:         "END_OF_FILE",
	Other:       "OTHER",
	IntLit:      "INTLITERAL",
	FloatLit:    "FLOATLITERAL",
	StringLit:   "STRLITERAL",
	CharLit:     "CHARLITERAL",
	Ident:       "IDENTIFIER",
	KwModule:    "MODULE",
	KwImport:    "IMPORT",
	KwBegin:     "BEGIN",
	KwEnd:       "END",
	KwExtern:    "EXTERN",
	KwProcedure: "PROCEDURE",
	KwExit:      "EXIT",
	KwReturn:    "RETURN",
	KwVar:       "VAR",
	KwConst:     "CONST",
	KwType:      "TYPE",
	KwNil:       "NIL",
	KwArray:     "ARRAY",
	KwRecord:    "RECORD",
	KwPointer:   "POINTER",
	KwOf:        "OF",
	KwTo:        "TO",
	KwIf:        "IF",
	KwThen:      "THEN",
	KwElsif:     "ELSIF",
	KwElse:      "ELSE",
	KwCase:      "CASE",
	KwWith:      "WITH",
	KwRepeat:    "REPEAT",
	KwUntil:     "UNTIL",
	KwWhile:     "WHILE",
	KwDo:        "DO",
	KwFor:       "FOR",
	KwBy:        "BY",
	KwLoop:      "LOOP",
	Operator:    "OPERATOR",
	Relation:    "RELATION",
	Dot:         "DOT",
	Range:       "RANGE",
	Comma:       "COMMA",
	Colon:       "COLON",
	Semicolon:   "SEMICOLON",
	Assign:      "ASSIGNMENT",
	Pipe:        "PIPE",
	Caret:       "CARET",
	Tilde:       "TILDE",
	LParen:      "LPAREN",
	RParen:      "RPAREN",
	LBrace:      "LCURLY",
	RBrace:      "RCURLY",
	LBracket:    "LSQUARE",
	RBracket:    "RSQUARE",
}

// String returns the display name used in diagnostics.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// Kinds returns every defined kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Invalid; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// LookupKind is the inverse of Kind.String.
func LookupKind(name string) (Kind, bool) {
	for k := Invalid; k < kindCount; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return Invalid, false
}

// ParseKind is LookupKind ignoring case and surrounding blanks,
// for names typed on the command line.
func ParseKind(name string) (Kind, bool) {
	return LookupKind(FoldUpper(strings.TrimSpace(name)))
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= KwModule && k <= KwLoop
}

// IsLiteral reports whether k is a literal kind.
func (k Kind) IsLiteral() bool {
	switch k {
	case IntLit, FloatLit, StringLit, CharLit:
		return true
	default:
		return false
	}
}
