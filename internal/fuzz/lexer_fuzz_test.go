package fuzztests

import (
	"testing"

	"obc/internal/diag"
	"obc/internal/lexer"
	"obc/internal/source"
	"obc/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.mod", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		var prevEnd uint32
		// каждый токен съедает хотя бы байт, так что len(input)+1 итераций хватает
		for range len(input) + 1 {
			tok := lx.Next()
			if tok.Span.Start < prevEnd || tok.Span.End < tok.Span.Start {
				t.Fatalf("token %s has bad span %v after offset %d", tok.Kind, tok.Span, prevEnd)
			}
			if int(tok.Span.End) > len(input) {
				t.Fatalf("token %s span %v beyond input of %d bytes", tok.Kind, tok.Span, len(input))
			}
			prevEnd = tok.Span.End
			if tok.Kind == token.EOF {
				if lx.Next().Kind != token.EOF {
					t.Fatal("lexer must keep returning EOF")
				}
				return
			}
		}
		t.Fatalf("lexer did not reach EOF on %d bytes", len(input))
	})
}
