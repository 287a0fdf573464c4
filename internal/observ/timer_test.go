package observ

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// fakeClock продвигается на step при каждом вызове.
func fakeClock(step time.Duration) func() time.Time {
	cur := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		cur = cur.Add(step)
		return cur
	}
}

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(time.Millisecond)

	load := tm.Begin("load")
	tm.End(load, "")
	done := tm.Track("parse")
	done("3 files")
	done("ignored") // второй End не перезаписывает фазу

	want := Report{
		TotalMS: 2,
		Phases: []PhaseReport{
			{Name: "load", DurationMS: 1},
			{Name: "parse", DurationMS: 1, Note: "3 files"},
		},
	}
	if diff := cmp.Diff(want, tm.Report()); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}

	sum := tm.Summary()
	for _, s := range []string{"timings:", "load", "parse", "// 3 files", "total"} {
		if !strings.Contains(sum, s) {
			t.Errorf("summary lacks %q:\n%s", s, sum)
		}
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.Track("x")("")
	if got := tm.Report(); len(got.Phases) != 0 {
		t.Fatalf("nil timer reported %v", got)
	}
}
