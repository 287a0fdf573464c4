// Package token defines lexical token kinds and the keyword tables for the obc front end.
// Invariants:
//   - Reserved words are matched case-insensitively: identifier text is folded to
//     upper case before the keyword lookup. Ident tokens keep their original case.
//   - OR, DIV and MOD come out as Operator tokens, IN and IS as Relation tokens,
//     with the folded spelling as Text, so the parser compares them to '+' or '<'.
//   - Reserved words and punctuation carry no Text.
//   - Every Kind has a display name (Kind.String) used in diagnostics.
package token
