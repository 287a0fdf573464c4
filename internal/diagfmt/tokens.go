package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"obc/internal/source"
	"obc/internal/token"
)

// TokenOutput is one token in the machine-readable dumps.
type TokenOutput struct {
	Kind   string  `json:"kind" msgpack:"kind"`
	Text   string  `json:"text,omitempty" msgpack:"text,omitempty"`
	Line   uint32  `json:"line" msgpack:"line"`
	Column uint32  `json:"column" msgpack:"column"`
	Start  uint32  `json:"start" msgpack:"start"`
	End    uint32  `json:"end" msgpack:"end"`
	Int    int64   `json:"int,omitempty" msgpack:"int,omitempty"`
	Float  float64 `json:"float,omitempty" msgpack:"float,omitempty"`
}

// BuildTokensOutput переводит токены в формат дампа, останавливаясь на EOF.
func BuildTokensOutput(tokens []token.Token) []TokenOutput {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out := TokenOutput{
			Kind:   tok.Kind.String(),
			Text:   tok.Text,
			Line:   tok.Loc.Line,
			Column: tok.Loc.Column,
			Start:  tok.Span.Start,
			End:    tok.Span.End,
		}
		switch tok.Kind {
		case token.IntLit:
			out.Int = tok.Int
		case token.FloatLit:
			out.Float = tok.Float
		}
		output = append(output, out)
		if tok.Kind == token.EOF {
			break
		}
	}
	return output
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		if _, err := fmt.Fprintf(w, "%3d: %-12s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		switch {
		case tok.Kind == token.StringLit:
			fmt.Fprintf(w, " %q", tok.Text) //nolint:errcheck
		case tok.Text != "":
			fmt.Fprintf(w, " %s", tok.Text) //nolint:errcheck
		}
		fmt.Fprintf(w, " at %s", tokenPosition(tok, fs)) //nolint:errcheck
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// tokenPosition prefers the lexer-stamped location; the file set adds the end.
func tokenPosition(tok token.Token, fs *source.FileSet) string {
	if fs == nil || int(tok.Span.File) >= fs.Len() {
		return tok.Loc.String()
	}
	_, end := fs.Resolve(tok.Span)
	return fmt.Sprintf("%s-%s", tok.Loc, end)
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTokensOutput(tokens))
}

// FormatTokensMsgpack пишет токены одним msgpack-массивом.
func FormatTokensMsgpack(w io.Writer, tokens []token.Token) error {
	return msgpack.NewEncoder(w).Encode(BuildTokensOutput(tokens))
}
