package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"obc/internal/diag"
	"obc/internal/source"
)

const brokenSource = "MODULE M;\nBEGIN\n  x := ;\nEND M.\n"

// semicolonSpan указывает на ';' в третьей строке brokenSource.
func semicolonSpan(file source.FileID) source.Span {
	return source.Span{File: file, Start: 23, End: 24}
}

func TestPrettyBasic(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("/work/src/test.mod", []byte(brokenSource))

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SynExpectExpression, semicolonSpan(fileID), "expected expression"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})

	want := "test.mod:3:8: ERROR SYN2005: expected expression\n" +
		" 3 |   x := ;\n" +
		"   | " + strings.Repeat(" ", 7) + "^\n"
	if got := buf.String(); got != want {
		t.Errorf("Pretty mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestPrettyUsesStampedLocation(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.mod", []byte(brokenSource))

	d := diag.NewError(diag.SynExpectExpression, semicolonSpan(fileID), "expected expression").
		At(source.Location{Line: 3, Column: 8})
	bag := diag.NewBag(10)
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if !strings.HasPrefix(buf.String(), "test.mod:3:8: ") {
		t.Errorf("unexpected header: %q", buf.String())
	}
}

func TestPrettyContext(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.mod", []byte(brokenSource))

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SynExpectExpression, semicolonSpan(fileID), "expected expression"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, Context: 1})
	out := buf.String()
	for _, want := range []string{" 2 | BEGIN\n", " 3 |   x := ;\n", " 4 | END M.\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "MODULE M;") {
		t.Errorf("context leaked beyond one line:\n%s", out)
	}
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("/home/user/project/src/test.mod", []byte("MODULE M; \"unterminated\n"))
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.LexUnterminatedString, source.Span{File: fileID, Start: 10, End: 23}, "unterminated string"))

	tests := []struct {
		name string
		mode PathMode
		want string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/test.mod:1:11:"},
		{"Relative path", PathModeRelative, "src/test.mod:1:11:"},
		{"Basename only", PathModeBasename, "test.mod:1:11:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			if !strings.HasPrefix(buf.String(), tt.want) {
				t.Errorf("expected prefix %q, got:\n%s", tt.want, buf.String())
			}
		})
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.mod", []byte("MODULE M;\nEND N.\n"))

	d := diag.NewError(diag.SynNameMismatch, source.Span{File: fileID, Start: 14, End: 15}, "name mismatch").
		WithNote(source.Span{File: fileID, Start: 7, End: 8}, "module declared here")
	bag := diag.NewBag(10)
	bag.Add(d)

	var hidden, shown bytes.Buffer
	Pretty(&hidden, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	Pretty(&shown, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true})

	if strings.Contains(hidden.String(), "note:") {
		t.Errorf("notes printed without ShowNotes:\n%s", hidden.String())
	}
	if !strings.Contains(shown.String(), "note: test.mod:1:8: module declared here") {
		t.Errorf("note missing:\n%s", shown.String())
	}
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.mod", []byte(brokenSource))
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SynExpectExpression, semicolonSpan(fileID), "expected expression"))

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})

	if strings.Contains(plain.String(), "\x1b[") {
		t.Errorf("escape codes without Color: %q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Errorf("no escape codes with Color: %q", colored.String())
	}
}

func TestCaretLine(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		start, end int
		want       string
	}{
		{"single byte", "x := 1", 2, 4, "  ^~"},
		{"tab kept", "\tx := 1", 1, 2, "\t^"},
		{"wide runes", "模块 := 1", 7, 9, "     ^~"},
		{"empty span", "abc", 1, 1, " ^"},
		{"past end", "ab", 5, 9, "  ^"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := caretLine(tt.text, tt.start, tt.end); got != tt.want {
				t.Errorf("caretLine(%q, %d, %d) = %q, want %q", tt.text, tt.start, tt.end, got, tt.want)
			}
		})
	}
}
