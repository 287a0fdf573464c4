package parser

import (
	"obc/internal/ast"
	"obc/internal/token"
)

// parseModule: MODULE ident ";" [ImportList] DeclSeq [BEGIN StatSeq] END ident "." .
// Всё после точки игнорируется.
func (p *Parser) parseModule() (ast.ModuleID, bool) {
	start, ok := p.expect(token.KwModule)
	if !ok {
		return ast.NoModuleID, false
	}
	_, name, ok := p.parseIdent()
	if !ok {
		return ast.NoModuleID, false
	}
	if _, ok = p.expect(token.Semicolon); !ok {
		return ast.NoModuleID, false
	}

	id := p.arenas.NewModule(start.Span, name)

	if p.at(token.KwImport) {
		imports, ok := p.parseImportList()
		if !ok {
			return ast.NoModuleID, false
		}
		p.arenas.Module(id).Imports = imports
	}

	decls, ok := p.parseDeclSeq()
	if !ok {
		return ast.NoModuleID, false
	}
	p.arenas.Module(id).Decls = decls

	if _, begin := p.accept(token.KwBegin); begin {
		body, ok := p.parseStatSeq()
		if !ok {
			return ast.NoModuleID, false
		}
		mod := p.arenas.Module(id)
		mod.Body = body
		mod.HasBody = true
	}

	if _, ok = p.expect(token.KwEnd); !ok {
		return ast.NoModuleID, false
	}
	if !p.parseEndName(name, "module") {
		return ast.NoModuleID, false
	}
	// точку не съедаем: дальше лексер запускаться не должен
	if !p.at(token.Dot) {
		p.expect(token.Dot)
		return ast.NoModuleID, false
	}
	p.arenas.Module(id).Span = start.Span.Cover(p.tok.Span)
	return id, true
}

// parseImportList: IMPORT Import {"," Import} ";" .
func (p *Parser) parseImportList() ([]ast.Import, bool) {
	p.advance() // IMPORT
	var imports []ast.Import
	for {
		imp, ok := p.parseImport()
		if !ok {
			return nil, false
		}
		imports = append(imports, imp)
		if _, more := p.accept(token.Comma); !more {
			break
		}
	}
	if _, ok := p.expect(token.Semicolon); !ok {
		return nil, false
	}
	return imports, true
}

// parseImport: ident [":=" ident]; без ":=" алиас совпадает с именем.
func (p *Parser) parseImport() (ast.Import, bool) {
	first, alias, ok := p.parseIdent()
	if !ok {
		return ast.Import{}, false
	}
	imp := ast.Import{Alias: alias, Name: alias, Span: first.Span}
	if _, ok := p.accept(token.Assign); ok {
		last, target, ok := p.parseIdent()
		if !ok {
			return ast.Import{}, false
		}
		imp.Name = target
		imp.Span = first.Span.Cover(last.Span)
	}
	return imp, true
}
