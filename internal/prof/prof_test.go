package prof

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigEnabled(t *testing.T) {
	if (Config{}).Enabled() {
		t.Error("empty config must be disabled")
	}
	if !(Config{Mem: "m.out"}).Enabled() {
		t.Error("config with a heap path must be enabled")
	}
}

func TestStartStopWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		CPU:     filepath.Join(dir, "cpu.out"),
		Mem:     filepath.Join(dir, "mem.out"),
		Runtime: filepath.Join(dir, "trace.out"),
	}
	s, err := Start(cfg)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	// повторная остановка ничего не делает
	if err := s.Stop(); err != nil {
		t.Fatalf("second Stop: %v", err)
	}
	for _, p := range []string{cfg.CPU, cfg.Mem, cfg.Runtime} {
		st, err := os.Stat(p)
		if err != nil {
			t.Errorf("missing %s: %v", p, err)
			continue
		}
		if st.Size() == 0 {
			t.Errorf("%s is empty", p)
		}
	}
}

func TestStartBadPath(t *testing.T) {
	cfg := Config{CPU: filepath.Join(t.TempDir(), "missing", "cpu.out")}
	if _, err := Start(cfg); err == nil {
		t.Fatal("expected error for unwritable path")
	}
}

func TestNilSessionStop(t *testing.T) {
	var s *Session
	if err := s.Stop(); err != nil {
		t.Fatalf("nil Stop: %v", err)
	}
}
