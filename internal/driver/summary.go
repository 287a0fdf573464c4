package driver

import (
	"obc/internal/ast"
	"obc/internal/diag"
	"obc/internal/source"
)

// Summary is the part of a parse result that survives the disk cache:
// enough for `obc diag` and the directory listing of `obc parse`.
type Summary struct {
	Schema      uint16             `msgpack:"schema"`
	Path        string             `msgpack:"path"`
	Module      string             `msgpack:"module,omitempty"`
	Imports     []string           `msgpack:"imports,omitempty"`
	Decls       DeclCounts         `msgpack:"decls"`
	BodyStmts   int                `msgpack:"body_stmts"`
	HasBody     bool               `msgpack:"has_body"`
	Diagnostics []CachedDiagnostic `msgpack:"diagnostics,omitempty"`
}

type DeclCounts struct {
	Const   int `msgpack:"const"`
	Type    int `msgpack:"type"`
	Var     int `msgpack:"var"`
	Extern  int `msgpack:"extern"`
	Forward int `msgpack:"forward"`
	Proc    int `msgpack:"proc"`
}

func (c DeclCounts) Total() int {
	return c.Const + c.Type + c.Var + c.Extern + c.Forward + c.Proc
}

// CachedDiagnostic — диагностика без FileID: при восстановлении он берётся
// из текущего FileSet.
type CachedDiagnostic struct {
	Severity uint8  `msgpack:"sev"`
	Code     uint16 `msgpack:"code"`
	Message  string `msgpack:"msg"`
	Start    uint32 `msgpack:"start"`
	End      uint32 `msgpack:"end"`
	Line     uint32 `msgpack:"line"`
	Column   uint32 `msgpack:"col"`
}

// Failed reports whether the cached parse ended in an error.
func (s *Summary) Failed() bool {
	for _, d := range s.Diagnostics {
		if diag.Severity(d.Severity) >= diag.SevError {
			return true
		}
	}
	return false
}

// Summarize extracts a Summary; it works for failed parses too.
func Summarize(res *ParseResult) *Summary {
	s := &Summary{Schema: diskCacheSchemaVersion}
	if res.File != nil {
		s.Path = res.File.Path
	}
	if res.Bag != nil {
		for _, d := range res.Bag.Items() {
			if d.Code == diag.IOCacheError {
				continue // относится к этому запуску, а не к файлу
			}
			s.Diagnostics = append(s.Diagnostics, CachedDiagnostic{
				Severity: uint8(d.Severity),
				Code:     uint16(d.Code),
				Message:  d.Message,
				Start:    d.Primary.Start,
				End:      d.Primary.End,
				Line:     d.Loc.Line,
				Column:   d.Loc.Column,
			})
		}
	}
	if !res.OK() {
		return s
	}

	b := res.Builder
	mod := b.Module(res.Module)
	s.Module = b.Name(mod.Name)
	for _, imp := range mod.Imports {
		if imp.Alias != imp.Name {
			s.Imports = append(s.Imports, b.Name(imp.Alias)+" := "+b.Name(imp.Name))
			continue
		}
		s.Imports = append(s.Imports, b.Name(imp.Name))
	}
	for _, id := range mod.Decls {
		switch b.Decls.Get(id).Kind {
		case ast.DeclConst:
			s.Decls.Const++
		case ast.DeclType:
			s.Decls.Type++
		case ast.DeclVar:
			s.Decls.Var++
		case ast.DeclExtern:
			s.Decls.Extern++
		case ast.DeclForward:
			s.Decls.Forward++
		case ast.DeclProc:
			s.Decls.Proc++
		}
	}
	s.BodyStmts = len(mod.Body)
	s.HasBody = mod.HasBody
	return s
}

// RestoreDiagnostics rebuilds diagnostics against file.
func (s *Summary) RestoreDiagnostics(file source.FileID) []diag.Diagnostic {
	out := make([]diag.Diagnostic, 0, len(s.Diagnostics))
	for _, d := range s.Diagnostics {
		out = append(out, diag.Diagnostic{
			Severity: diag.Severity(d.Severity),
			Code:     diag.Code(d.Code),
			Message:  d.Message,
			Primary:  source.Span{File: file, Start: d.Start, End: d.End},
			Loc:      source.Location{Line: d.Line, Column: d.Column},
		})
	}
	return out
}
