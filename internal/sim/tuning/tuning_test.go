package tuning

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsSane(t *testing.T) {
	d := Defaults()
	if d.TickRateHz <= 0 {
		t.Fatalf("tick rate must be positive")
	}
	if d.PatienceSeconds <= 0 || d.EatSeconds <= 0 {
		t.Fatalf("timers must be positive")
	}
	if d.Tables <= 0 || d.Waiters <= 0 || d.Chefs <= 0 {
		t.Fatalf("staffing must be positive")
	}
}

func TestLoad(t *testing.T) {
	p := filepath.Join(t.TempDir(), "tuning.yaml")
	body := []byte("tick_rate_hz: 10\npatience_seconds: 45\nwaiters: 3\n")
	if err := os.WriteFile(p, body, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.TickRateHz != 10 || got.PatienceSeconds != 45 || got.Waiters != 3 {
		t.Fatalf("unexpected tuning: %+v", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
