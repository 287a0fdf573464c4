package diagfmt

import (
	"fmt"

	"obc/internal/source"
)

// formatSpan formats a source.Span into a string.
// If fs is non-nil, it resolves the span to start and end positions and returns "startLine:startCol-endLine:endCol".
// If fs is nil, it returns "span(start-end)".
func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil && int(span.File) < fs.Len() {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Column, end.Line, end.Column)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}

// displayPath форматирует путь файла согласно режиму.
func displayPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	if fs == nil || int(id) >= fs.Len() {
		return "<unknown>"
	}
	f := fs.Get(id)
	switch mode {
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeAuto:
		return f.FormatPath("auto", fs.BaseDir())
	}
	return f.FormatPath(mode.String(), "")
}
