package dining

import (
	"sort"

	"github.com/google/uuid"
)

// Order is owned by the customer that placed it and dies with them. There is
// no standalone order book; ledger queries below derive counts from live
// customers and live food so the two can never drift apart.
type Order struct {
	ID         string
	Item       string
	Customer   string
	Status     OrderStatus
	PlacedTick uint64
}

func newOrder(customerID, item string, nowTick uint64) *Order {
	return &Order{
		ID:         uuid.NewString(),
		Item:       item,
		Customer:   customerID,
		Status:     OrderPending,
		PlacedTick: nowTick,
	}
}

func (c *Customer) hasLiveOrder() bool {
	switch c.State {
	case CustomerOrdering, CustomerWaitingForFood:
		return c.Order != nil
	}
	return false
}

// countWanting is the orphan-sweep question: how many seated customers still
// want an item of this type delivered.
func (r *Restaurant) countWanting(foodType string) int {
	n := 0
	for _, c := range r.customers {
		if c.hasLiveOrder() && c.Order.Item == foodType {
			n++
		}
	}
	return n
}

// countPending counts live orders of this type with no chef committed to
// them. A chef claim on the customer removes the order from the pending set
// for as long as the claim is held.
func (r *Restaurant) countPending(foodType string) int {
	n := 0
	for _, c := range r.customers {
		if c.hasLiveOrder() && c.Order.Item == foodType && !c.Chef.Claimed() {
			n++
		}
	}
	return n
}

// countInFlight counts production already committed for this type: items
// cooking or cooked anywhere in the restaurant (station, staff hands or a
// table) that have not been consumed.
func (r *Restaurant) countInFlight(foodType string) int {
	n := 0
	for _, f := range r.foods {
		if f.Type != foodType {
			continue
		}
		switch f.State {
		case FoodCooking, FoodCooked:
			n++
		}
	}
	return n
}

// admitFood is the overproduction gate: start cooking another item of this
// type only while committed production trails unclaimed demand.
func (r *Restaurant) admitFood(foodType string) bool {
	return r.countInFlight(foodType) < r.countPending(foodType)
}

// activeOrders returns every live order sorted by customer ID for stable
// observation and logging output.
func (r *Restaurant) activeOrders() []*Order {
	out := make([]*Order, 0, len(r.customers))
	for _, c := range r.customers {
		if c.hasLiveOrder() {
			out = append(out, c.Order)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Customer < out[j].Customer })
	return out
}
