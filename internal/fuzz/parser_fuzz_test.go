package fuzztests

import (
	"context"
	"testing"
	"time"

	"obc/internal/ast"
	"obc/internal/diag"
	"obc/internal/lexer"
	"obc/internal/parser"
	"obc/internal/source"
	"obc/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func FuzzParserBuildsAST(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.mod", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(16)
		reporter := diag.BagReporter{Bag: bag}
		lx := lexer.New(file, lexer.Options{Reporter: reporter})
		builder := ast.NewBuilder(ast.Hints{}, nil)

		mod, err := parser.ParseModule(lx, builder, parser.Options{Reporter: reporter})
		if err != nil {
			if bag.Len() == 0 {
				t.Fatalf("parse failed without a diagnostic: %v", err)
			}
			return
		}
		if err := testkit.CheckSpanInvariants(builder, mod, file); err != nil {
			t.Fatalf("span invariants: %v\ninput: %q", err, truncateForLog(input, 200))
		}
	})
}

// FuzzParserNoHang tests that the parser doesn't hang on any input.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	// вложенность и обрывы, на которых легко зациклить восстановление
	f.Add([]byte("MODULE M; BEGIN IF a THEN IF b THEN IF c THEN END END END END M."))
	f.Add([]byte("MODULE M; BEGIN ((((((((x)))))))) END M."))
	f.Add([]byte("MODULE M; BEGIN ;;;;;;;; END M."))
	f.Add([]byte("MODULE M; PROCEDURE P; PROCEDURE Q; END Q; END P; END M."))
	f.Add([]byte("MODULE M; BEGIN CASE x OF | | | END END M."))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)

			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("fuzz.mod", input))
			lx := lexer.New(file, lexer.Options{NestedComments: true})
			_, _ = parser.ParseModule(lx, ast.NewBuilder(ast.Hints{}, nil), parser.Options{})
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
