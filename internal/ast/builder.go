package ast

import (
	"obc/internal/source"
)

type Hints struct{ Decls, Types, Stmts, Exprs uint }

// Builder owns every arena of one parse plus the name interner.
// One Builder per goroutine: nothing here is synchronised.
type Builder struct {
	Modules     *Modules
	Decls       *Decls
	Types       *Types
	Exprs       *Exprs
	Designators *Designators
	Stmts       *Stmts
	Strings     *source.Interner
}

func NewBuilder(hints Hints, strings *source.Interner) *Builder {
	if hints.Decls == 0 {
		hints.Decls = 1 << 6 // 64
	}
	if hints.Types == 0 {
		hints.Types = 1 << 6
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Builder{
		Modules:     NewModules(1),
		Decls:       NewDecls(hints.Decls),
		Types:       NewTypes(hints.Types),
		Exprs:       NewExprs(hints.Exprs),
		Designators: NewDesignators(hints.Exprs / 2),
		Stmts:       NewStmts(hints.Stmts),
		Strings:     strings,
	}
}

// Intern is a shortcut for b.Strings.Intern.
func (b *Builder) Intern(s string) source.StringID {
	return b.Strings.Intern(s)
}

// Name returns the interned text, or "" for NoStringID.
func (b *Builder) Name(id source.StringID) string {
	s, _ := b.Strings.Lookup(id)
	return s
}

// QualidentString renders M.N or N.
func (b *Builder) QualidentString(q Qualident) string {
	if q.IsQualified() {
		return b.Name(q.Module) + "." + b.Name(q.Name)
	}
	return b.Name(q.Name)
}

func (b *Builder) NewModule(sp source.Span, name source.StringID) ModuleID {
	return b.Modules.New(sp, name)
}

func (b *Builder) Module(id ModuleID) *Module {
	return b.Modules.Get(id)
}
