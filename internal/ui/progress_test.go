package ui

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"obc/internal/driver"
)

func TestProgressModelTracksFiles(t *testing.T) {
	files := []string{"a.Mod", "b.Mod", "c.Mod"}
	m := NewProgressModel("parse src", files, nil).(*progressModel)

	for _, ev := range []driver.Event{
		{File: "a.Mod", Stage: driver.StageParse, Status: driver.StatusWorking},
		{File: "a.Mod", Stage: driver.StageParse, Status: driver.StatusDone},
		{File: "b.Mod", Stage: driver.StageParse, Status: driver.StatusError},
		{File: "c.Mod", Stage: driver.StageCache, Status: driver.StatusDone},
		{File: "unknown.Mod", Stage: driver.StageParse, Status: driver.StatusDone},
	} {
		m.Update(eventMsg(ev))
	}

	var got []string
	for _, it := range m.items {
		got = append(got, it.path+"="+it.status)
	}
	if diff := cmp.Diff([]string{"a.Mod=done", "b.Mod=error", "c.Mod=cached"}, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if m.failed != 1 || m.cached != 1 || m.percent() != 1 {
		t.Fatalf("failed=%d cached=%d percent=%v", m.failed, m.cached, m.percent())
	}

	_, cmd := m.Update(doneMsg{})
	if cmd == nil || !m.done {
		t.Fatal("done must quit the program")
	}
	view := m.View()
	for _, want := range []string{"done: parse src", "3 files, 1 failed, 1 cached"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"averyverylongpath", 10, "averyve..."},
		{"模块/文件.Mod", 8, "模块/..."},
		{"abcdef", 3, "abc"},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.width); got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}
