package dining

import "testing"

func TestTableAvailability(t *testing.T) {
	tb := newTable(TableSpec{Number: 1, Capacity: 2})
	if !tb.Available() {
		t.Fatalf("empty table should be available")
	}
	tb.Reserved = true
	if tb.Available() {
		t.Fatalf("reserved empty table must be held for the inbound party")
	}
	c1 := &Customer{ID: "C1"}
	if !tb.Seat(c1) {
		t.Fatalf("seat failed")
	}
	if !tb.Available() {
		t.Fatalf("partially seated table should accept more guests even while reserved")
	}
	c2 := &Customer{ID: "C2"}
	if !tb.Seat(c2) {
		t.Fatalf("second seat failed")
	}
	if tb.Available() {
		t.Fatalf("full table must not be available")
	}
	if tb.Seat(&Customer{ID: "C3"}) {
		t.Fatalf("seating past capacity must fail")
	}
}

func TestUnseatClearsReservation(t *testing.T) {
	tb := newTable(TableSpec{Number: 1, Capacity: 2})
	c := &Customer{ID: "C1"}
	tb.Seat(c)
	tb.Reserved = true
	tb.Unseat(c)
	if c.Table != nil {
		t.Fatalf("customer should be detached from table")
	}
	if tb.Reserved {
		t.Fatalf("emptied table should drop its reservation")
	}
	if !tb.Available() {
		t.Fatalf("emptied table should be available again")
	}
}

func TestTableRejectsUnwantedFood(t *testing.T) {
	tb := newTable(TableSpec{Number: 1, Capacity: 2})
	c := &Customer{ID: "C1", State: CustomerWaitingForFood}
	tb.Seat(c)
	c.Order = &Order{ID: "o", Item: "PIZZA", Customer: "C1"}

	if _, ok := tb.placeFoodOnTable(&Food{ID: "F1", Type: "BURGER", State: FoodCooked}); ok {
		t.Fatalf("table accepted food nobody ordered")
	}
	got, ok := tb.placeFoodOnTable(&Food{ID: "F2", Type: "PIZZA", State: FoodCooked})
	if !ok || got != c {
		t.Fatalf("table rejected the ordered item")
	}
	if len(tb.PlacedFood) != 1 {
		t.Fatalf("expected 1 placed food, got %d", len(tb.PlacedFood))
	}

	// Once the customer stops waiting, further plates are rejected too.
	c.State = CustomerEating
	if _, ok := tb.placeFoodOnTable(&Food{ID: "F3", Type: "PIZZA", State: FoodCooked}); ok {
		t.Fatalf("table accepted food for a customer no longer waiting")
	}
}
