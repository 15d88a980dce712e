package dining

import (
	"testing"

	"dinercraft/internal/sim/menu"
)

func TestDeterministicReplay(t *testing.T) {
	mk := func() *Restaurant {
		return New(Config{ID: "replay", TickRateHz: 1, Seed: 7}, menu.Default())
	}
	r1 := mk()
	r2 := mk()

	for tick := 0; tick < 400; tick++ {
		var arrivals []ArrivalRequest
		if tick%37 == 0 {
			arrivals = []ArrivalRequest{{Name: "walkin"}}
		}
		_, d1 := r1.StepOnce(arrivals)
		_, d2 := r2.StepOnce(arrivals)
		if d1 != d2 {
			t.Fatalf("digest diverged at tick %d", tick)
		}
	}
}

func TestFullServiceArc(t *testing.T) {
	r := New(Config{ID: "arc", TickRateHz: 1, Seed: 11}, menu.Default())
	r.StepOnce([]ArrivalRequest{{Name: "solo"}})

	for tick := 0; tick < 400; tick++ {
		r.StepOnce(nil)
		if r.stats.Served == 1 && len(r.customers) == 0 {
			break
		}
	}
	if r.stats.Served != 1 {
		t.Fatalf("customer never served: %+v", r.stats)
	}
	if r.stats.Lost != 0 {
		t.Fatalf("nobody should be lost: %+v", r.stats)
	}
	if len(r.customers) != 0 {
		t.Fatalf("served customer should have left the floor")
	}
	if r.stats.OrdersTaken != 1 || r.stats.OrdersDelivered != 1 {
		t.Fatalf("order flow incomplete: %+v", r.stats)
	}
	if r.stats.SatisfactionSum <= 0 {
		t.Fatalf("served customer should leave with positive satisfaction")
	}
}

func TestArrivalResponses(t *testing.T) {
	r := New(Config{
		ID: "tiny", TickRateHz: 1, Seed: 3,
		Tables: []TableSpec{{Number: 1, Capacity: 1, Pos: Vec2i{X: 4, Y: 4}}},
	}, menu.Default())

	resp1 := make(chan ArrivalResponse, 1)
	resp2 := make(chan ArrivalResponse, 1)
	r.StepOnce([]ArrivalRequest{
		{Name: "first", Resp: resp1},
		{Name: "second", Resp: resp2},
	})

	a := <-resp1
	if a.TurnedAway || a.CustomerID == "" {
		t.Fatalf("first party should be admitted: %+v", a)
	}
	b := <-resp2
	if !b.TurnedAway {
		t.Fatalf("second party should be turned away with one single-seat table")
	}
	if r.stats.TurnedAway != 1 || r.stats.Arrived != 1 {
		t.Fatalf("stats mismatch: %+v", r.stats)
	}
}
