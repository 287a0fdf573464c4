package token_test

import (
	"strings"
	"testing"

	"obc/internal/source"
	"obc/internal/token"
)

func ident(text string) token.Token {
	return token.Make(token.Ident, source.Span{}, source.StartLocation, text)
}

func TestMake_ReservedWordsAnyCase(t *testing.T) {
	for _, k := range token.Kinds() {
		if !k.IsKeyword() {
			continue
		}
		upper := k.String()
		lower := strings.ToLower(upper)
		mixed := upper[:1] + lower[1:]
		for _, spelling := range []string{upper, lower, mixed} {
			tok := ident(spelling)
			if tok.Kind != k {
				t.Errorf("Make(%q).Kind = %v, want %v", spelling, tok.Kind, k)
			}
			if tok.Text != "" {
				t.Errorf("Make(%q).Text = %q, reserved words carry no payload", spelling, tok.Text)
			}
		}
	}
}

func TestMake_WordOperators(t *testing.T) {
	tests := []struct {
		in   string
		kind token.Kind
		text string
	}{
		{"OR", token.Operator, "OR"},
		{"or", token.Operator, "OR"},
		{"Or", token.Operator, "OR"},
		{"div", token.Operator, "DIV"},
		{"Mod", token.Operator, "MOD"},
		{"IN", token.Relation, "IN"},
		{"is", token.Relation, "IS"},
	}
	for _, tt := range tests {
		tok := ident(tt.in)
		if tok.Kind != tt.kind || tok.Text != tt.text {
			t.Errorf("Make(%q) = %v %q, want %v %q", tt.in, tok.Kind, tok.Text, tt.kind, tt.text)
		}
	}
}

func TestMake_IdentifiersKeepCase(t *testing.T) {
	for _, in := range []string{"x", "Counter", "moduleName", "ORD", "Ending", "beginX", "Über"} {
		tok := ident(in)
		if tok.Kind != token.Ident {
			t.Errorf("Make(%q).Kind = %v, want IDENTIFIER", in, tok.Kind)
		}
		if tok.Text != in {
			t.Errorf("Make(%q).Text = %q, case must be preserved", in, tok.Text)
		}
	}
}

func TestMake_NonIdentUntouched(t *testing.T) {
	tok := token.Make(token.StringLit, source.Span{}, source.StartLocation, "module")
	if tok.Kind != token.StringLit || tok.Text != "module" {
		t.Errorf("string literal must not be reclassified: %v %q", tok.Kind, tok.Text)
	}
}

func TestKindNamesTotal(t *testing.T) {
	seen := make(map[string]token.Kind)
	for _, k := range token.Kinds() {
		name := k.String()
		if name == "" || name == "UNKNOWN" {
			t.Fatalf("kind %d has no display name", k)
		}
		if prev, dup := seen[name]; dup {
			t.Fatalf("kinds %d and %d share display name %q", prev, k, name)
		}
		seen[name] = k
		back, ok := token.LookupKind(name)
		if !ok || back != k {
			t.Errorf("LookupKind(%q) = %v, %v; want %v", name, back, ok, k)
		}
	}
}

func TestMake_NonASCIINeverReserved(t *testing.T) {
	// "ı" (U+0131) upper-cases to ASCII "I" under Unicode rules
	for _, in := range []string{"ıf", "ıs", "ın", "modulé", "ÖR"} {
		tok := ident(in)
		if tok.Kind != token.Ident || tok.Text != in {
			t.Errorf("Make(%q) = %v %q, want IDENTIFIER %q", in, tok.Kind, tok.Text, in)
		}
	}
}

func TestParseKind(t *testing.T) {
	cases := map[string]token.Kind{
		"IDENTIFIER":  token.Ident,
		" relation ":  token.Relation,
		"end_of_file": token.EOF,
		"module":      token.KwModule,
		"IntLiteral":  token.IntLit,
	}
	for in, want := range cases {
		if got, ok := token.ParseKind(in); !ok || got != want {
			t.Errorf("ParseKind(%q) = %v, %v; want %v", in, got, ok, want)
		}
	}
	if _, ok := token.ParseKind("nothing"); ok {
		t.Error("ParseKind must reject unknown names")
	}
}

func TestFoldUpper(t *testing.T) {
	cases := map[string]string{
		"begin": "BEGIN",
		"BEGIN": "BEGIN",
		"x1y2":  "X1Y2",
		"über":  "ÜBER",
		"ıf":    "IF",
	}
	for in, want := range cases {
		if got := token.FoldUpper(in); got != want {
			t.Errorf("FoldUpper(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDescribe(t *testing.T) {
	if got := ident("foo").Describe(); got != "IDENTIFIER 'foo'" {
		t.Errorf("Describe = %q", got)
	}
	if got := ident("end").Describe(); got != "END" {
		t.Errorf("Describe = %q", got)
	}
}
