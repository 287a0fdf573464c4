package driver

import (
	"fmt"
	"io"

	"obc/internal/diag"
	"obc/internal/lexer"
	"obc/internal/source"
	"obc/internal/token"
)

// TokenizeResult holds the whole token stream of one file, EOF included.
// Lexing goes on after a lexical error; Err is the first one.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
	Err     *lexer.Error
}

func Tokenize(path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	done := opts.Timer.Track("load")
	fileID, err := fs.Load(path)
	done("")
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return tokenizeFile(fs, fs.Get(fileID), opts), nil
}

// TokenizeReader tokenizes r as a virtual file called name.
func TokenizeReader(name string, r io.Reader, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.AddReader(name, r)
	if err != nil {
		return nil, err
	}
	return tokenizeFile(fs, fs.Get(fileID), opts), nil
}

func tokenizeFile(fs *source.FileSet, file *source.File, opts Options) *TokenizeResult {
	done := opts.Timer.Track("lex")
	bag := opts.newBag()
	lx := lexer.New(file, opts.lexerOptions(diag.BagReporter{Bag: bag}))

	// ~ один токен на 4 байта — грубая, но полезная оценка
	tokens := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	done(fmt.Sprintf("%d tokens", len(tokens)))
	return &TokenizeResult{FileSet: fs, File: file, Tokens: tokens, Bag: bag, Err: lx.Err()}
}
