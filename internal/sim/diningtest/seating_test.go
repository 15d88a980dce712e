package diningtest

import (
	"testing"
)

// Seats are never oversubscribed: parties fill tables up to capacity and the
// next walk-in is turned away at the door.
func TestSeatingCapacityAndTurnAway(t *testing.T) {
	h := NewHarness(t, fastConfig()) // 3 tables x 2 seats

	ids := make([]string, 0, 6)
	for i := 0; i < 6; i++ {
		id := h.Arrive("party")
		if id == "" {
			t.Fatalf("arrival %d should be admitted", i)
		}
		// Let each party sit down before the next walks in, so reserved
		// tables do not mask free seats.
		h.StepUntil(20, "seated", func() bool {
			return h.Customer(id).State != "ENTERING"
		})
		ids = append(ids, id)
	}
	if extra := h.Arrive("late"); extra != "" {
		t.Fatalf("seventh party should be turned away, got %s", extra)
	}
	if got := h.R.DebugShiftStats().TurnedAway; got != 1 {
		t.Fatalf("turned_away=%d want 1", got)
	}

	for _, n := range []int{1, 2, 3} {
		if seated := h.R.DebugTableSeated(n); len(seated) > 2 {
			t.Fatalf("table %d over capacity: %v", n, seated)
		}
	}
	seen := map[int]int{}
	for _, id := range ids {
		seen[h.Customer(id).Table]++
	}
	for n, count := range seen {
		if count > 2 {
			t.Fatalf("table %d assigned to %d parties", n, count)
		}
	}
}

// A reserved empty table is held for its inbound party and skipped when
// assigning the next walk-in.
func TestReservedTableHeldForInboundParty(t *testing.T) {
	h := NewHarness(t, fastConfig())
	first := h.Arrive("inbound")
	second := h.Arrive("next")

	c1 := h.Customer(first)
	c2 := h.Customer(second)
	if c1.Table == c2.Table {
		t.Fatalf("both inbound parties assigned to table %d", c1.Table)
	}
	h.StepUntil(40, "both seated", func() bool {
		return h.Customer(first).State != "ENTERING" &&
			h.Customer(second).State != "ENTERING"
	})
}
