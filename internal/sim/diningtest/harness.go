package diningtest

import (
	"testing"

	"dinercraft/internal/sim/dining"
	"dinercraft/internal/sim/menu"
)

// Harness is a small black-box test helper for driving a restaurant via
// exported APIs:
// - Arrive() admits a party via StepOnce()
// - Step()/StepFor() advance ticks deterministically
// - Debug* helpers provide deterministic preconditions and assertions
//
// It intentionally avoids touching restaurant internals so scenario tests can
// live outside the dining package.
type Harness struct {
	T    *testing.T
	R    *dining.Restaurant
	Tick uint64

	pendingArrivals []dining.ArrivalRequest
}

func NewHarness(t *testing.T, cfg dining.Config) *Harness {
	t.Helper()
	return &Harness{T: t, R: dining.New(cfg, menu.Default())}
}

// Arrive queues a walk-in for the next tick and returns the customer ID, or
// "" if the party was turned away.
func (h *Harness) Arrive(name string) string {
	h.T.Helper()
	resp := make(chan dining.ArrivalResponse, 1)
	h.pendingArrivals = append(h.pendingArrivals, dining.ArrivalRequest{Name: name, Resp: resp})
	h.Step()
	r := <-resp
	if r.TurnedAway {
		return ""
	}
	return r.CustomerID
}

// Step advances exactly one tick, flushing queued arrivals.
func (h *Harness) Step() string {
	h.T.Helper()
	arr := h.pendingArrivals
	h.pendingArrivals = nil
	_, digest := h.R.StepOnce(arr)
	h.Tick++
	return digest
}

func (h *Harness) StepFor(ticks int) {
	h.T.Helper()
	for i := 0; i < ticks; i++ {
		h.Step()
	}
}

// StepUntil steps up to maxTicks waiting for cond to hold, failing the test
// on timeout.
func (h *Harness) StepUntil(maxTicks int, what string, cond func() bool) {
	h.T.Helper()
	for i := 0; i < maxTicks; i++ {
		if cond() {
			return
		}
		h.Step()
	}
	if !cond() {
		h.T.Fatalf("condition %q not reached within %d ticks", what, maxTicks)
	}
}

func (h *Harness) Customer(id string) dining.CustomerSnapshot {
	h.T.Helper()
	snap, ok := h.R.DebugCustomer(id)
	if !ok {
		h.T.Fatalf("no such customer %q", id)
	}
	return snap
}

func (h *Harness) CustomerGone(id string) bool {
	_, ok := h.R.DebugCustomer(id)
	return !ok
}

// fastConfig is a 1Hz single-table-row layout that keeps walks short so
// scenarios finish in few ticks.
func fastConfig() dining.Config {
	return dining.Config{
		ID:         "scenario",
		TickRateHz: 1,
		FloorW:     16,
		FloorH:     10,
		Seed:       1,
		Entrance:   dining.Vec2i{X: 0, Y: 5},
		Tables: []dining.TableSpec{
			{Number: 1, Capacity: 2, Pos: dining.Vec2i{X: 3, Y: 3}},
			{Number: 2, Capacity: 2, Pos: dining.Vec2i{X: 3, Y: 7}},
			{Number: 3, Capacity: 2, Pos: dining.Vec2i{X: 6, Y: 3}},
		},
		Stations: []dining.StationSpec{
			{ID: "OVEN_1", Kind: menu.StationOven, Capacity: 2, Pos: dining.Vec2i{X: 14, Y: 2}},
			{ID: "STOVE_1", Kind: menu.StationStove, Capacity: 2, Pos: dining.Vec2i{X: 14, Y: 5}},
			{ID: "PREP_1", Kind: menu.StationPrep, Capacity: 2, Pos: dining.Vec2i{X: 14, Y: 8}},
			{ID: "COUNTER", Kind: menu.StationCounter, Capacity: 6, Pos: dining.Vec2i{X: 11, Y: 5}},
		},
		Waiters: 2,
		Chefs:   2,
	}
}
