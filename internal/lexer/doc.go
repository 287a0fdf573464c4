// Package lexer turns the content of a source.File into tokens on demand.
//
// The lexer is pull-based: each Next call scans exactly one token, skipping
// whitespace and "(* ... *)" comments first. Every token carries the
// source.Location of its first character and the byte span it covers.
//
// Lexical problems (unterminated strings and comments, out-of-range numbers,
// oversized lexemes) never panic. They are reported through Options.Reporter,
// remembered as the first *Error (see Err), and surface as token.Invalid so
// the parser can stop at the right place.
package lexer
