package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"obc/internal/diag"
	"obc/internal/source"
)

type palette struct {
	err, warn, info, code, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w) //nolint:errcheck
		}
		prettyOne(w, d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	loc := d.Loc
	known := fs != nil && int(d.Primary.File) < fs.Len()
	if !loc.IsValid() && known {
		loc, _ = fs.Resolve(d.Primary)
	}
	fmt.Fprintf(w, "%s:%s: %s %s: %s\n", //nolint:errcheck
		displayPath(fs, d.Primary.File, opts.PathMode),
		loc,
		pal.severity(d.Severity).Sprint(d.Severity.String()),
		pal.code.Sprint(d.Code.ID()),
		d.Message,
	)
	if known {
		writeSnippet(w, fs.Get(d.Primary.File), d.Primary, fs, opts.Context, pal)
	}

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		where := ""
		if fs != nil && int(n.Span.File) < fs.Len() {
			start, _ := fs.Resolve(n.Span)
			where = displayPath(fs, n.Span.File, opts.PathMode) + ":" + start.String() + ": "
		}
		fmt.Fprintf(w, "  %s %s%s\n", pal.note.Sprint("note:"), where, n.Msg) //nolint:errcheck
	}
}

// writeSnippet печатает строку ошибки с контекстом и подчёркивание под span.
func writeSnippet(w io.Writer, f *source.File, span source.Span, fs *source.FileSet, context int8, pal palette) {
	start, end := fs.Resolve(span)
	totalLines := uint32(len(f.LineIdx)) + 1
	if context < 0 {
		context = 0
	}
	first := start.Line
	if uint32(context) < first {
		first -= uint32(context)
	} else {
		first = 1
	}
	last := min(start.Line+uint32(context), totalLines)

	gutterWidth := len(strconv.FormatUint(uint64(last), 10))
	blank := strings.Repeat(" ", gutterWidth)

	for line := first; line <= last; line++ {
		text := f.GetLine(line)
		num := fmt.Sprintf("%*d", gutterWidth, line)
		fmt.Fprintf(w, " %s %s %s\n", pal.gutter.Sprint(num), pal.gutter.Sprint("|"), text) //nolint:errcheck
		if line != start.Line {
			continue
		}
		startCol := int(start.Column) - 1
		endCol := len(text)
		if end.Line == start.Line {
			endCol = int(end.Column) - 1
		}
		fmt.Fprintf(w, " %s %s %s\n", blank, pal.gutter.Sprint("|"), pal.caret.Sprint(caretLine(text, startCol, endCol))) //nolint:errcheck
	}
}

// caretLine строит "   ^~~~" для байтового диапазона [startCol, endCol) строки.
// Табуляции сохраняются, широкие символы занимают две колонки.
func caretLine(text string, startCol, endCol int) string {
	startCol = max(min(startCol, len(text)), 0)
	endCol = max(min(endCol, len(text)), startCol)

	var sb strings.Builder
	for _, r := range text[:startCol] {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	width := runewidth.StringWidth(text[startCol:endCol])
	sb.WriteByte('^')
	if width > 1 {
		sb.WriteString(strings.Repeat("~", width-1))
	}
	return sb.String()
}
