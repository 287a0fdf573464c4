package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"obc/internal/diag"
	"obc/internal/lexer"
	"obc/internal/observ"
	"obc/internal/parser"
	"obc/internal/token"
)

const goodModule = `MODULE Good;
IMPORT Out, T := Texts;
CONST N = 10;
TYPE P = POINTER TO R; R = RECORD x: INTEGER END;
VAR a, b: INTEGER;
PROCEDURE Inc*(VAR x: INTEGER); BEGIN x := x + 1 END Inc;
BEGIN
  a := N; Inc(a)
END Good.
`

const badModule = "MODULE Bad;\nBEGIN\n  x := \nEND Bad.\n"

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestParseFile(t *testing.T) {
	dir := writeTree(t, map[string]string{"Good.Mod": goodModule})
	timer := observ.NewTimer()
	res, err := Parse(context.Background(), filepath.Join(dir, "Good.Mod"), Options{Timer: timer})
	if err != nil {
		t.Fatal(err)
	}
	if !res.OK() {
		t.Fatalf("parse failed: %v", res.Err)
	}

	got := Summarize(res)
	want := &Summary{
		Schema:    diskCacheSchemaVersion,
		Path:      res.File.Path,
		Module:    "Good",
		Imports:   []string{"Out", "T := Texts"},
		Decls:     DeclCounts{Const: 1, Type: 2, Var: 1, Proc: 1},
		BodyStmts: 2,
		HasBody:   true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}

	var phases []string
	for _, p := range timer.Report().Phases {
		phases = append(phases, p.Name)
	}
	if diff := cmp.Diff([]string{"load", "parse"}, phases); diff != "" {
		t.Errorf("timer phases (-want +got):\n%s", diff)
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(context.Background(), filepath.Join(t.TempDir(), "none.Mod"), Options{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped ErrNotExist, got %v", err)
	}
}

func TestParseReaderSyntaxError(t *testing.T) {
	res, err := ParseReader(context.Background(), "<stdin>", strings.NewReader(badModule), Options{})
	if err != nil {
		t.Fatal(err)
	}
	var perr *parser.Error
	if !errors.As(res.Err, &perr) || perr.Code != diag.SynExpectExpression {
		t.Fatalf("expected missing expression, got %v", res.Err)
	}
	if perr.Loc.Line != 4 {
		t.Errorf("error at %v, want line 4", perr.Loc)
	}
	if res.Bag.Len() != 1 || !res.Bag.HasErrors() {
		t.Errorf("bag should hold the single error, has %d", res.Bag.Len())
	}
	sum := Summarize(res)
	if !sum.Failed() || sum.Module != "" {
		t.Errorf("failed summary: %+v", sum)
	}
}

func TestParseCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ParseReader(ctx, "x", strings.NewReader(goodModule), Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestTokenize(t *testing.T) {
	res, err := TokenizeReader("t", strings.NewReader(`x := "open`), Options{})
	if err != nil {
		t.Fatal(err)
	}
	var kinds []token.Kind
	for _, tok := range res.Tokens {
		kinds = append(kinds, tok.Kind)
	}
	if diff := cmp.Diff([]token.Kind{token.Ident, token.Assign, token.Invalid, token.EOF}, kinds); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if res.Err == nil || res.Err.Code != diag.LexUnterminatedString {
		t.Fatalf("expected unterminated string, got %v", res.Err)
	}
}

func TestNestedCommentsOption(t *testing.T) {
	src := "MODULE M; (* outer (* inner *) still comment *) END M."
	res, err := ParseReader(context.Background(), "m", strings.NewReader(src), Options{NestedComments: true})
	if err != nil || !res.OK() {
		t.Fatalf("nested comments: %v / %v", err, res.Err)
	}
	res, err = ParseReader(context.Background(), "m", strings.NewReader(src), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.OK() {
		t.Fatal("flat comments must end at the first '*)'")
	}
}

func TestParseDir(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a/Good.Mod":    goodModule,
		"b/Bad.mod":     badModule,
		"c/Empty.ob":    "MODULE Empty; END Empty.",
		"notes.txt":     "not a module",
		".hidden/X.Mod": "garbage",
		"c/Lexical.obn": "MODULE L; CONST s = \"open; END L.",
	})

	events := make(chan Event, 64)
	_, results, err := ParseDir(context.Background(), dir, Options{Jobs: 2, Progress: ChannelSink(events)})
	if err != nil {
		t.Fatal(err)
	}
	close(events)

	var got []string
	for _, r := range results {
		rel, _ := filepath.Rel(dir, r.Path)
		state := "ok"
		var lerr *lexer.Error
		var perr *parser.Error
		switch {
		case errors.As(r.Err, &lerr):
			state = lerr.Code.ID()
		case errors.As(r.Err, &perr):
			state = perr.Code.ID()
		case r.Err != nil:
			state = r.Err.Error()
		}
		got = append(got, filepath.ToSlash(rel)+" "+state)
	}
	want := []string{
		"a/Good.Mod ok",
		"b/Bad.mod SYN2005",
		"c/Empty.ob ok",
		"c/Lexical.obn LEX1002",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("results mismatch (-want +got):\n%s", diff)
	}

	final := map[string]Status{}
	for ev := range events {
		if ev.Stage == StageParse {
			final[filepath.Base(ev.File)] = ev.Status
		}
	}
	wantFinal := map[string]Status{
		"Good.Mod":    StatusDone,
		"Bad.mod":     StatusError,
		"Empty.ob":    StatusDone,
		"Lexical.obn": StatusError,
	}
	if diff := cmp.Diff(wantFinal, final); diff != "" {
		t.Errorf("progress (-want +got):\n%s", diff)
	}
}

func TestParseDirCache(t *testing.T) {
	dir := writeTree(t, map[string]string{"Good.Mod": goodModule, "Bad.Mod": badModule})
	cache, err := NewDiskCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Cache: cache}

	_, first, err := ParseDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	_, second, err := ParseDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	for i := range second {
		if first[i].Cached || !second[i].Cached {
			t.Fatalf("%s: cached first=%v second=%v", second[i].Path, first[i].Cached, second[i].Cached)
		}
		if diff := cmp.Diff(first[i].Summary, second[i].Summary); diff != "" {
			t.Errorf("%s: summary changed through the cache (-fresh +cached):\n%s", second[i].Path, diff)
		}
		if (first[i].Err == nil) != (second[i].Err == nil) {
			t.Errorf("%s: error state differs: %v vs %v", second[i].Path, first[i].Err, second[i].Err)
		}
	}

	// другой режим комментариев — другой ключ
	_, third, err := ParseDir(context.Background(), dir, Options{Cache: cache, NestedComments: true})
	if err != nil {
		t.Fatal(err)
	}
	if third[0].Cached {
		t.Error("lexer options must be part of the cache key")
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := cache.Get(CacheKey([]byte(goodModule), opts)); ok || err != nil {
		t.Fatalf("after DropAll: ok=%v err=%v", ok, err)
	}
}

func TestParseDirSampleCorpus(t *testing.T) {
	dir := filepath.Join("..", "..", "testdata")
	_, results, err := ParseDir(context.Background(), dir, Options{Jobs: 2})
	if err != nil {
		t.Fatal(err)
	}
	got := map[string]bool{}
	for _, r := range results {
		got[filepath.Base(r.Path)] = r.Err == nil
	}
	want := map[string]bool{"broken.mod": false, "hello.mod": true, "shapes.mod": true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("corpus results (-want +got):\n%s", diff)
	}
}

func TestParseDirCacheWarningNotStored(t *testing.T) {
	dir := writeTree(t, map[string]string{"Good.Mod": goodModule})
	cache, err := NewDiskCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Cache: cache}

	// битая запись: 0xc1 не используется msgpack
	p := cache.pathFor(CacheKey([]byte(goodModule), opts))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte{0xc1}, 0o600); err != nil {
		t.Fatal(err)
	}

	_, first, err := ParseDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first[0].Cached || first[0].Err != nil {
		t.Fatalf("first run: cached=%v err=%v", first[0].Cached, first[0].Err)
	}
	if !hasCode(first[0].Bag, diag.IOCacheError) {
		t.Fatalf("first run must warn about the broken entry")
	}
	if len(first[0].Summary.Diagnostics) != 0 {
		t.Fatalf("cache warning leaked into the summary: %+v", first[0].Summary.Diagnostics)
	}

	_, second, err := ParseDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second[0].Cached {
		t.Fatal("second run must hit the rewritten entry")
	}
	if second[0].Bag.Len() != 0 {
		t.Errorf("cache hit replayed diagnostics: %+v", second[0].Bag.Items())
	}
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	if bag == nil {
		return false
	}
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}
