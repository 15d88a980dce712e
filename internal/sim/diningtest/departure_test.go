package diningtest

import (
	"testing"
)

// A customer who runs out of patience mid-cook must revoke the chef's claim,
// free the table, and get the half-finished plate thrown out.
func TestImpatientDepartureRevokesChefClaim(t *testing.T) {
	h := NewHarness(t, fastConfig())
	id := h.Arrive("carla")
	h.StepUntil(30, "seated", func() bool {
		return h.Customer(id).State == "WAITING_FOR_WAITER"
	})
	if err := h.R.DebugForceOrder(id, "LASAGNA", h.Tick); err != nil {
		t.Fatalf("force order: %v", err)
	}
	h.StepUntil(30, "cooking started", func() bool {
		return h.R.DebugInFlight("LASAGNA") == 1
	})
	chefID := h.Customer(id).ChefClaim
	if chefID == "" {
		t.Fatalf("no chef committed to the order")
	}

	h.R.DebugSetSatisfaction(id, 0.5)
	h.StepUntil(5, "gave up", func() bool {
		return h.CustomerGone(id) || h.Customer(id).State == "LEAVING"
	})

	h.StepUntil(10, "plate discarded", func() bool {
		return h.R.DebugInFlight("LASAGNA") == 0
	})
	k, _ := h.R.DebugChef(chefID)
	if k.Customer != "" {
		t.Fatalf("chef still bound to departed customer: %+v", k)
	}
	if seated := h.R.DebugTableSeated(1); len(seated) != 0 {
		t.Fatalf("table not freed: %v", seated)
	}
	stats := h.R.DebugShiftStats()
	if stats.Lost != 1 {
		t.Fatalf("departure not counted as lost: %+v", stats)
	}
	if stats.FoodDiscarded == 0 {
		t.Fatalf("abandoned plate should be discarded: %+v", stats)
	}

	h.StepUntil(30, "left the floor", func() bool { return h.CustomerGone(id) })

	// The freed chef must be able to serve the next guest.
	next := h.Arrive("dana")
	h.StepUntil(30, "next seated", func() bool {
		return h.Customer(next).State == "WAITING_FOR_WAITER"
	})
	if err := h.R.DebugForceOrder(next, "SOUP", h.Tick); err != nil {
		t.Fatalf("force order: %v", err)
	}
	h.StepUntil(120, "next served", func() bool {
		return h.R.DebugShiftStats().Served == 1
	})
}

// Food waiting on the counter for a customer who already left is orphaned and
// must be removed by the periodic sweep.
func TestCounterOrphanSweep(t *testing.T) {
	h := NewHarness(t, fastConfig())
	foodID, err := h.R.DebugPlaceCookedFood("SUSHI", h.Tick)
	if err != nil {
		t.Fatalf("place cooked food: %v", err)
	}

	h.StepUntil(20, "orphan swept", func() bool {
		for _, id := range h.R.DebugCounterFoodIDs() {
			if id == foodID {
				return false
			}
		}
		return true
	})
	if h.R.DebugShiftStats().FoodDiscarded != 1 {
		t.Fatalf("sweep should count the discard")
	}
}
