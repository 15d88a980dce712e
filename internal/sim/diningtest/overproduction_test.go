package diningtest

import (
	"testing"
)

// Four identical orders, two chefs: committed production must trail demand at
// every single tick, and everyone still gets fed.
func TestProductionNeverExceedsDemand(t *testing.T) {
	h := NewHarness(t, fastConfig())

	ids := make([]string, 0, 4)
	for i := 0; i < 4; i++ {
		id := h.Arrive("regular")
		if id == "" {
			t.Fatalf("arrival %d rejected", i)
		}
		ids = append(ids, id)
	}
	for _, id := range ids {
		h.StepUntil(40, "seated "+id, func() bool {
			return h.Customer(id).State == "WAITING_FOR_WAITER"
		})
		if err := h.R.DebugForceOrder(id, "SALAD", h.Tick); err != nil {
			t.Fatalf("force order %s: %v", id, err)
		}
	}

	for i := 0; i < 250; i++ {
		h.Step()
		inFlight := h.R.DebugInFlight("SALAD")
		wanting := h.R.DebugWanting("SALAD")
		if inFlight > wanting {
			t.Fatalf("tick %d: in_flight=%d exceeds wanting=%d", h.Tick, inFlight, wanting)
		}
		if h.R.DebugShiftStats().Served == 4 {
			break
		}
	}
	stats := h.R.DebugShiftStats()
	if stats.Served != 4 {
		t.Fatalf("all four should be served, got %+v", stats)
	}
	if stats.Lost != 0 {
		t.Fatalf("no customer should be lost: %+v", stats)
	}
}
