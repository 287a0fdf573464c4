// Package diag defines the diagnostic model shared by the lexer, the parser
// and the driver.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form
//     such as LEX1002 or SYN2008.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span and Loc – the byte span and the line/column of its start.
//   - Notes – optional secondary spans/messages for additional context.
//
// # Reporting
//
// Producers never own storage. They receive a Reporter and emit through it,
// usually via ReportBuilder:
//
//	diag.ReportError(r, diag.LexUnterminatedString, sp, "string not terminated").
//		At(loc).
//		Emit()
//
// Bag is the default sink. It enforces a capacity, supports deterministic
// Sort and Dedup, and answers HasErrors for the driver's exit code.
//
// Package diag does not perform any formatting or IO. Rendering lives in
// internal/diagfmt.
package diag
