package diningtest

import (
	"encoding/json"
	"testing"

	"dinercraft/internal/protocol"
)

func TestObsFrameShape(t *testing.T) {
	h := NewHarness(t, fastConfig())
	id := h.Arrive("gina")
	h.StepUntil(30, "seated", func() bool {
		return h.Customer(id).State == "WAITING_FOR_WAITER"
	})

	obs := h.R.DebugBuildObs(h.Tick)
	if obs.Type != protocol.TypeObs || obs.ProtocolVersion != protocol.Version {
		t.Fatalf("bad frame header: %+v", obs)
	}
	if obs.RestaurantID != "scenario" {
		t.Fatalf("restaurant id %q", obs.RestaurantID)
	}
	if len(obs.Customers) != 1 || obs.Customers[0].ID != id {
		t.Fatalf("customers: %+v", obs.Customers)
	}
	if len(obs.Staff) != 4 {
		t.Fatalf("want 2 waiters + 2 chefs, got %d staff", len(obs.Staff))
	}
	if len(obs.Tables) != 3 || len(obs.Stations) != 4 {
		t.Fatalf("floor layout missing: %d tables %d stations", len(obs.Tables), len(obs.Stations))
	}
	if obs.Shift.Arrived != 1 {
		t.Fatalf("shift counters not wired: %+v", obs.Shift)
	}

	// The frame must round-trip as JSON for the wire.
	b, err := json.Marshal(obs)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back protocol.ObsMsg
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Tick != obs.Tick || len(back.Customers) != 1 {
		t.Fatalf("round trip mismatch")
	}
}
