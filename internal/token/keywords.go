package token

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// keywords is the reserved-word table; keys are upper-case spellings.
// Only read after package initialisation.
var keywords = map[string]Kind{
	"MODULE":    KwModule,
	"IMPORT":    KwImport,
	"BEGIN":     KwBegin,
	"END":       KwEnd,
	"EXTERN":    KwExtern,
	"PROCEDURE": KwProcedure,
	"EXIT":      KwExit,
	"RETURN":    KwReturn,
	"VAR":       KwVar,
	"CONST":     KwConst,
	"TYPE":      KwType,
	"NIL":       KwNil,
	"ARRAY":     KwArray,
	"RECORD":    KwRecord,
	"POINTER":   KwPointer,
	"OF":        KwOf,
	"TO":        KwTo,
	"IF":        KwIf,
	"THEN":      KwThen,
	"ELSIF":     KwElsif,
	"ELSE":      KwElse,
	"CASE":      KwCase,
	"WITH":      KwWith,
	"REPEAT":    KwRepeat,
	"UNTIL":     KwUntil,
	"WHILE":     KwWhile,
	"DO":        KwDo,
	"FOR":       KwFor,
	"BY":        KwBy,
	"LOOP":      KwLoop,
}

// LookupKeyword returns the reserved-word kind for an already upper-cased spelling.
func LookupKeyword(folded string) (Kind, bool) {
	k, ok := keywords[folded]
	return k, ok
}

// LookupWordOperator classifies OR/DIV/MOD as Operator and IN/IS as Relation.
func LookupWordOperator(folded string) (Kind, bool) {
	switch folded {
	case "OR", "DIV", "MOD":
		return Operator, true
	case "IN", "IS":
		return Relation, true
	default:
		return Invalid, false
	}
}

// foldKeyword upper-cases an ASCII spelling for keyword lookup. Text with a
// byte >= 0x80 is never a reserved word or word operator: a Unicode fold could
// map it onto ASCII ("ıf" -> "IF").
func foldKeyword(text string) (string, bool) {
	var buf []byte
	for i := 0; i < len(text); i++ {
		b := text[i]
		switch {
		case b >= 0x80:
			return "", false
		case b >= 'a' && b <= 'z':
			if buf == nil {
				buf = []byte(text)
			}
			buf[i] = b - ('a' - 'A')
		}
	}
	if buf == nil {
		return text, true
	}
	return string(buf), true
}

// FoldUpper upper-cases text. ASCII input takes the fast path; anything
// else goes through the Unicode upper caser. Keyword recovery does not use
// it, see foldKeyword.
func FoldUpper(text string) string {
	if folded, ok := foldKeyword(text); ok {
		return folded
	}
	// Caser хранит состояние, поэтому новый на каждый вызов
	return cases.Upper(language.Und).String(text)
}
