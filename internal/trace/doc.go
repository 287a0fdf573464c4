// Package trace records what the front end is doing: which files are being
// tokenized or parsed, and which declarations the parser is inside.
//
// A Tracer is chosen once by the driver and threaded through either
// parser.Options or the context:
//
//	ctx = trace.WithTracer(ctx, tr)
//	sp := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer sp.End("")
//
// Levels gate scopes: phase shows driver and pass boundaries, detail adds
// one span per file, debug adds one span per declaration.
//
// Two sinks exist. The stream tracer writes every event as it happens
// (text or NDJSON). The ring tracer keeps the last N events in memory so
// the driver can dump them after a failed parse.
package trace
