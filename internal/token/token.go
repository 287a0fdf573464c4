package token

import (
	"obc/internal/source"
)

// Token represents a single source token with its location and payload.
type Token struct {
	Kind Kind
	Span source.Span
	Loc  source.Location // location of the first character
	// Text is the payload of identifiers, operators, relations and string literals.
	// For numeric literals it keeps the raw lexeme.
	Text  string
	Int   int64
	Float float64
}

// Make builds a token and, for Ident, applies keyword recovery:
// reserved words become their keyword kind without text, OR/DIV/MOD become
// Operator and IN/IS become Relation with the upper-cased spelling as text.
// Any other identifier, including every non-ASCII one, keeps its original spelling.
func Make(kind Kind, sp source.Span, loc source.Location, text string) Token {
	tok := Token{Kind: kind, Span: sp, Loc: loc, Text: text}
	if kind != Ident {
		return tok
	}
	folded, ascii := foldKeyword(text)
	if !ascii {
		return tok
	}
	if kw, ok := LookupKeyword(folded); ok {
		tok.Kind = kw
		tok.Text = ""
		return tok
	}
	if op, ok := LookupWordOperator(folded); ok {
		tok.Kind = op
		tok.Text = folded
	}
	return tok
}

// Is reports whether the token has one of the given kinds.
func (t Token) Is(kinds ...Kind) bool {
	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}
	return false
}

// Describe renders the token for "got ..." parts of diagnostics.
func (t Token) Describe() string {
	switch t.Kind {
	case Ident, Operator, Relation:
		return t.Kind.String() + " '" + t.Text + "'"
	case IntLit, FloatLit:
		return t.Kind.String() + " " + t.Text
	case StringLit:
		return t.Kind.String() + " \"" + t.Text + "\""
	default:
		return t.Kind.String()
	}
}
