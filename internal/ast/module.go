package ast

import "obc/internal/source"

// Import is one entry of an IMPORT list. Alias equals Name when no ":=" is given.
type Import struct {
	Alias source.StringID
	Name  source.StringID
	Span  source.Span
}

// Module is the root of the tree.
type Module struct {
	Span    source.Span
	Name    source.StringID
	Imports []Import
	Decls   []DeclID
	Body    []StmtID
	HasBody bool // был ли BEGIN
}

type Modules struct {
	Arena *Arena[Module]
}

func NewModules(capHint uint) *Modules {
	return &Modules{Arena: NewArena[Module](capHint)}
}

func (m *Modules) New(sp source.Span, name source.StringID) ModuleID {
	return ModuleID(m.Arena.Allocate(Module{
		Span:    sp,
		Name:    name,
		Imports: make([]Import, 0),
		Decls:   make([]DeclID, 0),
		Body:    make([]StmtID, 0),
	}))
}

func (m *Modules) Get(id ModuleID) *Module {
	return m.Arena.Get(uint32(id))
}
