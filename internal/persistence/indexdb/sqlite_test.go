package indexdb

import (
	"path/filepath"
	"testing"

	"dinercraft/internal/sim/dining"
)

func TestSQLiteIndexRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	for i := 0; i < 5; i++ {
		_ = s.WriteTick(dining.TickLogEntry{Tick: uint64(i), Digest: "d"})
	}
	_ = s.WriteShift(dining.ShiftSummary{
		RestaurantID: "diner_1",
		Shift:        0,
		StartTick:    0,
		EndTick:      5999,
		Stats:        dining.ShiftStats{Arrived: 12, Served: 9, Lost: 2, TurnedAway: 1},
		AvgSat:       71.5,
	})
	_ = s.WriteShift(dining.ShiftSummary{
		RestaurantID: "diner_1",
		Shift:        1,
		StartTick:    6000,
		EndTick:      11999,
		Stats:        dining.ShiftStats{Arrived: 8, Served: 8},
		AvgSat:       88,
	})
	// Close drains the writer queue and commits.
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s2, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	n, err := s2.TickCount()
	if err != nil {
		t.Fatalf("tick count: %v", err)
	}
	if n != 5 {
		t.Fatalf("tick rows=%d want 5", n)
	}
	shifts, err := s2.ListShifts("diner_1", 10)
	if err != nil {
		t.Fatalf("list shifts: %v", err)
	}
	if len(shifts) != 2 {
		t.Fatalf("shift rows=%d want 2", len(shifts))
	}
	if shifts[0].Shift != 1 || shifts[1].Shift != 0 {
		t.Fatalf("shifts not newest-first: %+v", shifts)
	}
	if shifts[1].Stats.Served != 9 || shifts[1].AvgSat != 71.5 {
		t.Fatalf("shift 0 row mismatch: %+v", shifts[1])
	}
}

func TestSQLiteIndexDropsWhenBehind(t *testing.T) {
	s := &SQLiteIndex{ch: make(chan req, 1)}
	s.ch <- req{kind: reqTick, tick: dining.TickLogEntry{Tick: 1}}

	// Full queue: the write is dropped rather than blocking the sim loop.
	if err := s.WriteTick(dining.TickLogEntry{Tick: 2}); err != nil {
		t.Fatalf("write should not error on a full queue: %v", err)
	}
	if len(s.ch) != 1 {
		t.Fatalf("queue depth=%d want 1", len(s.ch))
	}
}
