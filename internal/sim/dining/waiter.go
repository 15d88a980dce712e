package dining

import (
	"fmt"
	"sort"
)

// Waiter alternates between two jobs: taking orders from seated customers and
// carrying cooked food from the counter to tables. Delivery work wins when
// both are available since cooked food has a burn clock and customers do not
// get less patient from one extra tick of waiting.
type Waiter struct {
	mover
	ID       string
	State    WaiterState
	Customer string // customer the current job is for
	Carried  *Food
	Reserved string // food ID reserved for delivery
	waitLeft int
}

func (r *Restaurant) spawnWaiter(i int) *Waiter {
	w := &Waiter{ID: fmt.Sprintf("W%02d", i), State: WaiterIdle}
	w.Pos = Vec2i{X: r.cfg.FloorW / 2, Y: r.cfg.FloorH / 2}
	r.waiters[w.ID] = w
	return w
}

func (r *Restaurant) systemWaiters(nowTick uint64) {
	for _, id := range sortedWaiterIDs(r.waiters) {
		w := r.waiters[id]
		switch w.State {
		case WaiterIdle:
			r.waiterPickWork(w, nowTick)

		case WaiterMovingToTable:
			if w.moving() {
				continue
			}
			c := r.customers[w.Customer]
			if c != nil {
				// TakeOrder re-checks state and claim; a customer who gave up
				// mid-walk just costs the waiter the trip.
				c.TakeOrder(r, w.ID, nowTick)
				c.Waiter.Release(w.ID)
			}
			w.resetJob(r)

		case WaiterMovingToCounter:
			if w.moving() {
				continue
			}
			w.State = WaiterWaitingForPickup
			w.waitLeft = r.cfg.PickupTimeoutTicks
			r.waiterTryPickup(w, nowTick)

		case WaiterWaitingForPickup:
			r.waiterTryPickup(w, nowTick)
			if w.State != WaiterWaitingForPickup {
				continue
			}
			w.waitLeft--
			if w.waitLeft <= 0 {
				if f := r.reservedFood(w); f != nil {
					f.ReservedBy.Release(w.ID)
				}
				r.pushEvent(nowTick, "PICKUP_TIMEOUT", map[string]interface{}{"waiter": w.ID})
				w.resetJob(r)
			}

		case WaiterDelivering:
			if w.moving() {
				continue
			}
			r.waiterDeliver(w, nowTick)

		case WaiterReturningFood:
			if w.moving() {
				continue
			}
			f := w.Carried
			w.Carried = nil
			if f != nil {
				f.ReservedBy.Release(w.ID)
				if ok, _ := r.placeFood(r.counter, f, false); !ok {
					r.disposeFood(f, nowTick, "counter_full")
				}
			}
			w.resetJob(r)
		}
	}
}

// waiterPickWork scans for a job. Delivery first: any item cooking or cooked
// with no reservation, matched to a waiting customer with no delivery already
// inbound. Otherwise the lowest-ID customer waiting to order.
func (r *Restaurant) waiterPickWork(w *Waiter, nowTick uint64) {
	for _, fid := range sortedFoodIDs(r.foods) {
		f := r.foods[fid]
		if f.ReservedBy.Claimed() || (f.State != FoodCooking && f.State != FoodCooked) {
			continue
		}
		c := r.findDeliveryTarget(f.Type)
		if c == nil {
			continue
		}
		if !f.ReservedBy.TryClaim(w.ID) {
			continue
		}
		w.Reserved = f.ID
		w.Customer = c.ID
		c.FoodInbound = true
		w.State = WaiterMovingToCounter
		r.moveTo(&w.mover, r.counter.Pos, 1)
		return
	}
	for _, cid := range sortedCustomerIDs(r.customers) {
		c := r.customers[cid]
		if c.State != CustomerWaitingForWaiter || c.Table == nil {
			continue
		}
		if !c.Waiter.TryClaim(w.ID) {
			continue
		}
		w.Customer = c.ID
		w.State = WaiterMovingToTable
		r.moveTo(&w.mover, c.Table.Pos, 1)
		return
	}
}

func (r *Restaurant) findDeliveryTarget(foodType string) *Customer {
	for _, cid := range sortedCustomerIDs(r.customers) {
		c := r.customers[cid]
		if c.State == CustomerWaitingForFood && !c.FoodInbound &&
			c.Order != nil && c.Order.Item == foodType {
			return c
		}
	}
	return nil
}

// reservedFood resolves the waiter's reservation, nil if the item was
// disposed or the reservation revoked.
func (r *Restaurant) reservedFood(w *Waiter) *Food {
	f := r.foods[w.Reserved]
	if f == nil || f.ReservedBy.Holder() != w.ID {
		return nil
	}
	return f
}

func (r *Restaurant) waiterTryPickup(w *Waiter, nowTick uint64) {
	f := r.reservedFood(w)
	if f == nil {
		w.resetJob(r)
		return
	}
	if f.Station != r.counter || f.State != FoodCooked {
		// Still cooking or still in the chef's hands; keep waiting.
		return
	}
	r.counter.removeFood(f)
	w.Carried = f
	c := r.customers[w.Customer]
	if c == nil || c.Table == nil || !c.hasLiveOrder() {
		// Target vanished while we walked over; put it straight back.
		w.State = WaiterReturningFood
		r.moveTo(&w.mover, r.counter.Pos, 1)
		return
	}
	c.Order.Status = OrderDelivering
	w.State = WaiterDelivering
	r.moveTo(&w.mover, c.Table.Pos, 1)
	r.pushEvent(nowTick, "FOOD_PICKED_UP", map[string]interface{}{
		"waiter": w.ID, "food": f.ID, "customer": c.ID,
	})
}

// waiterDeliver runs at the table. The table itself is the validation gate:
// it accepts the plate only if a seated customer is still waiting on exactly
// this item, otherwise the waiter carries it back to the counter.
func (r *Restaurant) waiterDeliver(w *Waiter, nowTick uint64) {
	f := w.Carried
	if f == nil {
		w.resetJob(r)
		return
	}
	c := r.customers[w.Customer]
	if c != nil && c.Table != nil {
		if got, ok := c.Table.placeFoodOnTable(f); ok {
			w.Carried = nil
			f.ReservedBy.Release(w.ID)
			got.addSatisfaction(r.cfg.DeliveryBonus)
			r.stats.OrdersDelivered++
			r.pushEvent(nowTick, "FOOD_DELIVERED", map[string]interface{}{
				"waiter": w.ID, "food": f.ID, "customer": got.ID, "table": c.Table.Number,
			})
			w.resetJob(r)
			return
		}
		r.stats.WrongDeliveries++
		if c.State == CustomerWaitingForFood {
			c.addSatisfaction(-r.cfg.WrongFoodPenalty)
		}
		r.pushEvent(nowTick, "DELIVERY_REJECTED", map[string]interface{}{
			"waiter": w.ID, "food": f.ID, "food_type": f.Type, "table": c.Table.Number,
		})
	}
	w.State = WaiterReturningFood
	r.moveTo(&w.mover, r.counter.Pos, 1)
}

// resetJob returns the waiter to IDLE and clears the inbound flag so another
// waiter can take over the delivery.
func (w *Waiter) resetJob(r *Restaurant) {
	if w.Reserved != "" {
		if c := r.customers[w.Customer]; c != nil {
			c.FoodInbound = false
		}
	}
	w.Customer = ""
	w.Reserved = ""
	w.waitLeft = 0
	w.State = WaiterIdle
}

func sortedWaiterIDs(m map[string]*Waiter) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func sortedFoodIDs(m map[string]*Food) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
