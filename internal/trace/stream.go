package trace

import (
	"io"
	"sync"
	"time"
)

// StreamTracer writes each event as soon as it is emitted.
type StreamTracer struct {
	mu     sync.Mutex
	w      io.Writer
	level  Level
	format Format
	start  time.Time
	depth  map[uint64]int // open span → nesting level
}

func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	if format == FormatAuto {
		format = FormatText
	}
	return &StreamTracer{
		w:      w,
		level:  level,
		format: format,
		start:  time.Now(),
		depth:  make(map[uint64]int),
	}
}

func (t *StreamTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	ev.Seq = nextSeq()
	var data []byte
	if t.format == FormatNDJSON {
		data = formatNDJSON(ev)
	} else {
		data = formatText(ev, ev.Time.Sub(t.start), t.nesting(ev))
	}
	// ошибки записи трассы не должны ронять разбор
	_, _ = t.w.Write(data) //nolint:errcheck
}

// nesting must be called with mu held.
func (t *StreamTracer) nesting(ev *Event) int {
	d := 0
	if ev.ParentID != 0 {
		if pd, ok := t.depth[ev.ParentID]; ok {
			d = pd + 1
		}
	}
	switch ev.Kind {
	case KindSpanBegin:
		t.depth[ev.SpanID] = d
	case KindSpanEnd:
		if sd, ok := t.depth[ev.SpanID]; ok {
			d = sd
			delete(t.depth, ev.SpanID)
		}
	}
	return d
}

func (t *StreamTracer) Flush() error {
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	if s, ok := t.w.(interface{ Sync() error }); ok {
		return s.Sync()
	}
	return nil
}

// Close flushes and closes the writer when it is an io.Closer.
func (t *StreamTracer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.Flush(); err != nil {
		return err
	}
	if c, ok := t.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
