package dining

import "testing"

func TestAdmissionTrailsDemand(t *testing.T) {
	r := newTestRestaurant(1)
	r.addWaitingCustomer(t, "PIZZA")
	r.addWaitingCustomer(t, "PIZZA")

	if got := r.countPending("PIZZA"); got != 2 {
		t.Fatalf("pending=%d want 2", got)
	}
	if !r.admitFood("PIZZA") {
		t.Fatalf("admission should pass with demand and no production")
	}

	f1 := r.spawnFood("PIZZA")
	f1.State = FoodCooking
	if !r.admitFood("PIZZA") {
		t.Fatalf("one in flight, two pending: admission should still pass")
	}
	f2 := r.spawnFood("PIZZA")
	f2.State = FoodCooking
	if r.admitFood("PIZZA") {
		t.Fatalf("two in flight, two pending: admission must stop")
	}
}

func TestAdmissionPerType(t *testing.T) {
	r := newTestRestaurant(1)
	r.addWaitingCustomer(t, "PIZZA")
	f := r.spawnFood("SOUP")
	f.State = FoodCooking

	if !r.admitFood("PIZZA") {
		t.Fatalf("soup in flight must not block pizza admission")
	}
	if r.admitFood("SOUP") {
		t.Fatalf("no soup demand: admission must fail")
	}
}

func TestChefClaimRemovesPending(t *testing.T) {
	r := newTestRestaurant(1)
	c := r.addWaitingCustomer(t, "PIZZA")

	if got := r.countPending("PIZZA"); got != 1 {
		t.Fatalf("pending=%d want 1", got)
	}
	c.Chef.TryClaim("K01")
	if got := r.countPending("PIZZA"); got != 0 {
		t.Fatalf("claimed order still counted as pending")
	}
	// The customer still wants the item; only production admission changed.
	if got := r.countWanting("PIZZA"); got != 1 {
		t.Fatalf("wanting=%d want 1", got)
	}
	if r.admitFood("PIZZA") {
		t.Fatalf("claimed order must not admit a second cook")
	}
}

func TestCookedFoodKeepsAdmissionClosed(t *testing.T) {
	r := newTestRestaurant(1)
	r.addWaitingCustomer(t, "SALAD")
	f := r.spawnFood("SALAD")
	f.State = FoodCooked

	if r.admitFood("SALAD") {
		t.Fatalf("cooked undelivered food still counts as in flight")
	}
	// Consumption removes it from the ledger entirely.
	delete(r.foods, f.ID)
	if !r.admitFood("SALAD") {
		t.Fatalf("admission should reopen once the plate is gone")
	}
}
