package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"obc/internal/project"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

// languageSeeds покрывают каждую конструкцию грамматики хотя бы раз.
var languageSeeds = []string{
	"",
	"MODULE M; END M.",
	"MODULE M; BEGIN END M.",
	"MODULE M; IMPORT Out, T := Texts; END M.",
	"MODULE M; CONST a* = 1; b = a + 2 * (3 - 1); c = \"s\"; d = 1.5; e = {1, 3..5}; END M.",
	"MODULE M; TYPE A = ARRAY 3, 4 OF INTEGER; O = ARRAY OF CHAR; END M.",
	"MODULE M; TYPE R = RECORD (B) x-, y: INTEGER; p: POINTER TO R END; END M.",
	"MODULE M; TYPE F = PROCEDURE (VAR a: INTEGER; b: ARRAY OF CHAR): BOOLEAN; END M.",
	"MODULE M; PROCEDURE ^F(x: INTEGER); PROCEDURE F(x: INTEGER); END F; END M.",
	"MODULE M; PROCEDURE (VAR r: R) Get*(): INTEGER; BEGIN RETURN r.x END Get; END M.",
	"MODULE M; BEGIN IF a THEN x := 1 ELSIF b THEN x := 2 ELSE x := 3 END END M.",
	"MODULE M; BEGIN CASE n OF 0: a := 1 | 1..9, 11: a := 2 ELSE a := 3 END END M.",
	"MODULE M; BEGIN WHILE i < 10 DO INC(i) END; REPEAT DEC(i) UNTIL i = 0 END M.",
	"MODULE M; BEGIN FOR i := 0 TO 9 BY 2 DO a[i] := i END; LOOP EXIT END END M.",
	"MODULE M; BEGIN WITH v: T DO v.f := 1 | v: U DO v.g := 2 ELSE END END M.",
	"MODULE M; BEGIN p^.next(Node).val := ~q OR r & (s # NIL) END M.",
	"MODULE M; (* outer (* inner *) *) END M.",
	"MODULE M; BEGIN x := ; END M.",
	"MODULE M; CONST s = \"open; END M.",
	"MODULE M; BEGIN x := 1 $ 2 END M.",
	"MODULE M; BEGIN a := 1 <> 2 END M.",
	"MODULE M; (* never closed",
	"MODULE M; END N.",
	"MODULE M; END M",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	exts := map[string]bool{}
	for _, e := range project.DefaultExtensions {
		exts[e] = true
	}
	// проходим по дереву testdata, добавляем все исходники модулей
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil //nolint:nilerr // недоступные файлы просто пропускаем
		}
		if !exts[filepath.Ext(path)] {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil //nolint:nilerr
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
