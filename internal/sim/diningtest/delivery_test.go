package diningtest

import (
	"testing"
)

// A pizza order takes at least its cook time to reach the table, and a
// reasonably prompt delivery leaves the customer clearly satisfied.
func TestPizzaCookAndDeliveryWindow(t *testing.T) {
	h := NewHarness(t, fastConfig())
	id := h.Arrive("elio")
	h.StepUntil(30, "seated", func() bool {
		return h.Customer(id).State == "WAITING_FOR_WAITER"
	})
	if err := h.R.DebugForceOrder(id, "PIZZA", h.Tick); err != nil {
		t.Fatalf("force order: %v", err)
	}
	ordered := h.Tick

	h.StepUntil(120, "eating", func() bool {
		return h.Customer(id).State == "EATING"
	})
	elapsed := int(h.Tick - ordered)
	cook := h.R.Menu().CookTicks("PIZZA", h.R.TickRateHz())
	if elapsed < cook {
		t.Fatalf("pizza reached the table in %d ticks, cook time alone is %d", elapsed, cook)
	}
	if got := h.Customer(id).Satisfaction; got < 30 {
		t.Fatalf("prompt delivery should leave satisfaction well above zero, got %.1f", got)
	}
	stats := h.R.DebugShiftStats()
	if stats.OrdersDelivered != 1 || stats.WrongDeliveries != 0 {
		t.Fatalf("unexpected delivery stats: %+v", stats)
	}
}

// The table rejects a plate that no longer matches the customer's order; the
// waiter carries it back and the kitchen re-cooks the right item.
func TestWrongItemRejectedAtTable(t *testing.T) {
	h := NewHarness(t, fastConfig())
	id := h.Arrive("fred")
	h.StepUntil(30, "seated", func() bool {
		return h.Customer(id).State == "WAITING_FOR_WAITER"
	})
	if err := h.R.DebugForceOrder(id, "PIZZA", h.Tick); err != nil {
		t.Fatalf("force order: %v", err)
	}

	h.StepUntil(120, "pizza out for delivery", func() bool {
		for _, wid := range []string{"W01", "W02"} {
			if w, ok := h.R.DebugWaiter(wid); ok && w.State == "DELIVERING_FOOD" && w.Carrying == "PIZZA" {
				return true
			}
		}
		return false
	})
	before := h.Customer(id).Satisfaction

	// The customer changes their mind while the plate is in the air.
	if err := h.R.DebugForceOrder(id, "BURGER", h.Tick); err != nil {
		t.Fatalf("swap order: %v", err)
	}

	h.StepUntil(30, "rejected", func() bool {
		return h.R.DebugShiftStats().WrongDeliveries == 1
	})
	if got := h.Customer(id).Satisfaction; got >= before {
		t.Fatalf("rejection should cost satisfaction: before=%.1f after=%.1f", before, got)
	}

	// The unwanted pizza goes back to the counter and is eventually swept.
	h.StepUntil(60, "pizza discarded", func() bool {
		return h.R.DebugInFlight("PIZZA") == 0
	})

	// The burger still gets cooked and served.
	h.StepUntil(150, "served", func() bool {
		return h.R.DebugShiftStats().Served == 1
	})
	if h.R.DebugShiftStats().WrongDeliveries != 1 {
		t.Fatalf("wrong delivery should be counted once")
	}
}
