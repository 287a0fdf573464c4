// Package ast holds the syntax tree produced by the parser.
//
// Nodes live in typed arenas owned by a Builder and are addressed by 1-based
// IDs; the zero ID of every kind means "absent". A parent owns its children by
// holding their IDs. References by name (a named type, a WITH guard, a
// receiver type) are interned strings and never point at another node.
//
// Every node family follows the same shape: a header record {Kind, Span,
// Payload} in the family arena and a per-variant payload arena reached
// through typed accessors such as Exprs.Binary or Stmts.If.
package ast
