package ast

import "obc/internal/source"

// Export is the visibility mark trailing a declared name.
type Export uint8

const (
	ExportNone     Export = iota
	ExportPublic          // "*"
	ExportReadOnly        // "-"
)

func (e Export) String() string {
	switch e {
	case ExportPublic:
		return "*"
	case ExportReadOnly:
		return "-"
	}
	return ""
}

// IdentDef is a declaration site: a name and its export mark.
type IdentDef struct {
	Name   source.StringID
	Export Export
	Span   source.Span
}

// Qualident is a possibly module-qualified name, e.g. Out.Int.
// Module is NoStringID for unqualified names. It is a lookup key only.
type Qualident struct {
	Module source.StringID
	Name   source.StringID
	Span   source.Span
}

func (q Qualident) IsQualified() bool { return q.Module != source.NoStringID }
