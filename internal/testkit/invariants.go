// Package testkit holds structural checks shared by parser tests and fuzzers.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"obc/internal/ast"
	"obc/internal/source"
)

// CheckSpanInvariants checks the top level of a parsed module:
// 1) the module span is non-empty and within the file content
// 2) import, declaration and body statement spans are non-empty, belong to sf
// and lie inside the module span
// 3) declarations appear in source order without overlapping
func CheckSpanInvariants(b *ast.Builder, modID ast.ModuleID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	mod := b.Module(modID)
	if mod == nil {
		return fmt.Errorf("module node not found")
	}

	if mod.Span.End <= mod.Span.Start {
		return fmt.Errorf("module span is empty: %v", mod.Span)
	}
	if mod.Span.File != sf.ID {
		return fmt.Errorf("module span points to different file id: got=%d want=%d", mod.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if mod.Span.End > lenContent {
		return fmt.Errorf("module span end beyond content: %d > %d", mod.Span.End, lenContent)
	}

	inside := func(what string, sp source.Span) error {
		if sp.End <= sp.Start {
			return fmt.Errorf("empty %s span: %v", what, sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("%s span file mismatch: got=%d want=%d", what, sp.File, sf.ID)
		}
		if sp.Start < mod.Span.Start || sp.End > mod.Span.End {
			return fmt.Errorf("%s span %v is outside module span %v", what, sp, mod.Span)
		}
		return nil
	}

	for _, imp := range mod.Imports {
		if err := inside("import", imp.Span); err != nil {
			return err
		}
	}

	var prevEnd uint32
	for _, id := range mod.Decls {
		d := b.Decls.Get(id)
		if d == nil {
			return fmt.Errorf("nil decl for id=%d", id)
		}
		if err := inside("decl "+d.Kind.String(), d.Span); err != nil {
			return err
		}
		// объявления идут строго по порядку
		if d.Span.Start < prevEnd {
			return fmt.Errorf("decl span %v overlaps previous declaration", d.Span)
		}
		prevEnd = d.Span.End
	}

	for _, id := range mod.Body {
		st := b.Stmts.Get(id)
		if st == nil {
			return fmt.Errorf("nil stmt for id=%d", id)
		}
		if err := inside("stmt "+st.Kind.String(), st.Span); err != nil {
			return err
		}
	}
	return nil
}
