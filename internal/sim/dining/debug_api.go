package dining

import (
	"errors"

	"dinercraft/internal/protocol"
)

// ---- Debug/Test Helpers ----
//
// These helpers exist to allow black-box tests in sibling packages (e.g.
// internal/sim/diningtest) to set up deterministic preconditions without
// reaching into restaurant internals.
//
// They are NOT safe to call concurrently with Run(). Prefer using them only
// in tests that drive the restaurant via StepOnce(), from a single goroutine.

type CustomerSnapshot struct {
	ID           string
	State        string
	Pos          Vec2i
	Satisfaction float64
	Table        int
	OrderItem    string
	OrderStatus  string
	WaiterClaim  string
	ChefClaim    string
	FoodInbound  bool
}

func (r *Restaurant) DebugCustomer(id string) (CustomerSnapshot, bool) {
	c := r.customers[id]
	if c == nil {
		return CustomerSnapshot{}, false
	}
	snap := CustomerSnapshot{
		ID:           c.ID,
		State:        string(c.State),
		Pos:          c.Pos,
		Satisfaction: c.Satisfaction,
		WaiterClaim:  c.Waiter.Holder(),
		ChefClaim:    c.Chef.Holder(),
		FoodInbound:  c.FoodInbound,
	}
	if c.Table != nil {
		snap.Table = c.Table.Number
	}
	if c.Order != nil {
		snap.OrderItem = c.Order.Item
		snap.OrderStatus = string(c.Order.Status)
	}
	return snap, true
}

func (r *Restaurant) DebugCustomerIDs() []string { return sortedCustomerIDs(r.customers) }

type StaffSnapshot struct {
	ID       string
	State    string
	Pos      Vec2i
	Customer string
	Carrying string
}

func (r *Restaurant) DebugWaiter(id string) (StaffSnapshot, bool) {
	w := r.waiters[id]
	if w == nil {
		return StaffSnapshot{}, false
	}
	snap := StaffSnapshot{ID: w.ID, State: string(w.State), Pos: w.Pos, Customer: w.Customer}
	if w.Carried != nil {
		snap.Carrying = w.Carried.Type
	}
	return snap, true
}

func (r *Restaurant) DebugChef(id string) (StaffSnapshot, bool) {
	k := r.chefs[id]
	if k == nil {
		return StaffSnapshot{}, false
	}
	snap := StaffSnapshot{ID: k.ID, State: string(k.State), Pos: k.Pos, Customer: k.Customer}
	if k.Carried != nil {
		snap.Carrying = k.Carried.Type
	}
	return snap, true
}

// DebugSetSatisfaction overrides a customer's satisfaction, clamped to
// [0,100]. Forced departure still requires a tick to observe the value.
func (r *Restaurant) DebugSetSatisfaction(customerID string, v float64) bool {
	c := r.customers[customerID]
	if c == nil {
		return false
	}
	c.Satisfaction = 101
	c.addSatisfaction(v - 101)
	return true
}

// DebugForceOrder gives a seated customer a live order for a fixed item,
// bypassing the waiter arc. The customer must be past seating.
func (r *Restaurant) DebugForceOrder(customerID, itemID string, nowTick uint64) error {
	c := r.customers[customerID]
	if c == nil {
		return errors.New("no such customer")
	}
	if _, ok := r.menu.ByID[itemID]; !ok {
		return errors.New("unknown menu item")
	}
	if c.Table == nil {
		return errors.New("customer not seated")
	}
	c.Order = newOrder(c.ID, itemID, nowTick)
	c.State = CustomerWaitingForFood
	c.Table.Reserved = false
	return nil
}

// DebugPlaceCookedFood drops a ready-to-serve item straight on the counter.
func (r *Restaurant) DebugPlaceCookedFood(itemID string, nowTick uint64) (string, error) {
	if _, ok := r.menu.ByID[itemID]; !ok {
		return "", errors.New("unknown menu item")
	}
	f := r.spawnFood(itemID)
	f.State = FoodCooked
	f.CookedTick = nowTick
	if ok, code := r.placeFood(r.counter, f, false); !ok {
		delete(r.foods, f.ID)
		return "", errors.New(code)
	}
	return f.ID, nil
}

func (r *Restaurant) DebugFoodCount() int { return len(r.foods) }

// DebugInFlight exposes the admission ledger's committed-production count.
func (r *Restaurant) DebugInFlight(itemID string) int { return r.countInFlight(itemID) }

// DebugPending exposes the admission ledger's unclaimed-demand count.
func (r *Restaurant) DebugPending(itemID string) int { return r.countPending(itemID) }

// DebugWanting counts seated customers still waiting on this item.
func (r *Restaurant) DebugWanting(itemID string) int { return r.countWanting(itemID) }

func (r *Restaurant) DebugCounterFoodIDs() []string {
	ids := make([]string, 0, len(r.counter.Foods))
	for _, f := range r.counter.Foods {
		ids = append(ids, f.ID)
	}
	return ids
}

func (r *Restaurant) DebugTableSeated(number int) []string {
	for _, t := range r.tables {
		if t.Number == number {
			out := make([]string, 0, len(t.Seated))
			for _, c := range t.Seated {
				out = append(out, c.ID)
			}
			return out
		}
	}
	return nil
}

func (r *Restaurant) DebugShiftStats() ShiftStats { return r.stats }

// DebugStateDigest returns the current digest for the given tick label.
// This is intended for black-box determinism tests in sibling packages.
func (r *Restaurant) DebugStateDigest(nowTick uint64) string {
	if r == nil {
		return ""
	}
	return r.stateDigest(nowTick)
}

// DebugBuildObs exposes the per-tick observer frame for tests.
func (r *Restaurant) DebugBuildObs(nowTick uint64) protocol.ObsMsg { return r.buildObs(nowTick) }
