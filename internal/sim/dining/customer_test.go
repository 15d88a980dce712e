package dining

import "testing"

func TestSatisfactionClamp(t *testing.T) {
	c := &Customer{Satisfaction: 95}
	c.addSatisfaction(20)
	if c.Satisfaction != 100 {
		t.Fatalf("satisfaction above cap: %v", c.Satisfaction)
	}
	c.addSatisfaction(-250)
	if c.Satisfaction != 0 {
		t.Fatalf("satisfaction below floor: %v", c.Satisfaction)
	}
}

func TestTakeOrderGuards(t *testing.T) {
	r := newTestRestaurant(1)
	c := r.spawnCustomer("", 0)
	tb := r.findTableForParty()
	tb.Seat(c)
	tb.Reserved = true
	c.State = CustomerWaitingForWaiter

	if _, ok := c.TakeOrder(r, "W01", 0); ok {
		t.Fatalf("order taken without holding the waiter slot")
	}
	c.Waiter.TryClaim("W01")
	if _, ok := c.TakeOrder(r, "W02", 0); ok {
		t.Fatalf("order taken by a waiter that lost the claim")
	}

	o, ok := c.TakeOrder(r, "W01", 0)
	if !ok || o == nil {
		t.Fatalf("holder should take the order")
	}
	if c.State != CustomerOrdering || c.Order != o {
		t.Fatalf("order not attached: state=%s", c.State)
	}
	if tb.Reserved {
		t.Fatalf("taking the order should clear the table reservation")
	}
	if r.stats.OrdersTaken != 1 {
		t.Fatalf("order not counted")
	}

	// A customer who already ordered cannot order again.
	if _, ok := c.TakeOrder(r, "W01", 1); ok {
		t.Fatalf("double order accepted")
	}
}
