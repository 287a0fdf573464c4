package driver

import (
	"context"
	"fmt"
	"io"

	"obc/internal/ast"
	"obc/internal/diag"
	"obc/internal/lexer"
	"obc/internal/parser"
	"obc/internal/source"
)

// ParseResult is the outcome of parsing one file. Err is nil on success,
// otherwise *parser.Error or *lexer.Error; Bag holds the same failure as
// a diagnostic.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	Module  ast.ModuleID
	Bag     *diag.Bag
	Err     error
}

func (r *ParseResult) OK() bool { return r != nil && r.Err == nil && r.Module.IsValid() }

// Parse loads path and parses it as one module. The returned error is
// reserved for I/O and cancellation; syntax errors land in ParseResult.Err.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	done := opts.Timer.Track("load")
	fileID, err := fs.Load(path)
	done("")
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return parseFile(ctx, fs, fs.Get(fileID), opts)
}

// ParseReader parses the contents of r, e.g. stdin, under the given name.
func ParseReader(ctx context.Context, name string, r io.Reader, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.AddReader(name, r)
	if err != nil {
		return nil, err
	}
	return parseFile(ctx, fs, fs.Get(fileID), opts)
}

func parseFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) (*ParseResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	done := opts.Timer.Track("parse")
	res := parseInto(file, ast.NewBuilder(ast.Hints{}, nil), opts)
	res.FileSet = fs
	if res.Err != nil {
		done("failed")
	} else {
		done(fmt.Sprintf("%d decls", len(res.Builder.Module(res.Module).Decls)))
	}
	return res, nil
}

// parseInto runs lexer+parser over file with a private Bag.
func parseInto(file *source.File, b *ast.Builder, opts Options) *ParseResult {
	bag := opts.newBag()
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, opts.lexerOptions(reporter))
	mod, err := parser.ParseModule(lx, b, parser.Options{
		Reporter:    reporter,
		Tracer:      opts.tracer(),
		TraceParent: opts.TraceParent,
	})
	return &ParseResult{File: file, Builder: b, Module: mod, Bag: bag, Err: err}
}
