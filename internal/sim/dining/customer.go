package dining

import (
	"fmt"
	"sort"
)

// Customer walks an eight-state arc from the entrance to the exit. The two
// claim slots are the only way staff attach themselves to a customer; a
// departing customer force-clears both so stale staff work cancels itself.
type Customer struct {
	mover
	ID           string
	Name         string
	State        CustomerState
	Satisfaction float64

	Table *Table
	Order *Order

	Waiter ClaimSlot // held by the waiter coming to take the order
	Chef   ClaimSlot // held by the chef cooking for this customer

	// FoodInbound is set while a waiter has reserved a cooked item for this
	// customer, so a second waiter does not start a duplicate delivery.
	FoodInbound bool

	orderShowLeft int
	eatLeft       int
	waitStartTick uint64
	arrivedTick   uint64
	departed      bool
}

func (r *Restaurant) spawnCustomer(name string, nowTick uint64) *Customer {
	n := r.nextCustomerNum.Add(1)
	if name == "" {
		name = fmt.Sprintf("guest-%d", n)
	}
	c := &Customer{
		ID:           fmt.Sprintf("C%04d", n),
		Name:         name,
		State:        CustomerEntering,
		Satisfaction: 100,
		arrivedTick:  nowTick,
	}
	c.Pos = r.cfg.Entrance
	r.customers[c.ID] = c
	r.stats.Arrived++
	return c
}

func (c *Customer) addSatisfaction(d float64) {
	c.Satisfaction += d
	if c.Satisfaction > 100 {
		c.Satisfaction = 100
	}
	if c.Satisfaction < 0 {
		c.Satisfaction = 0
	}
}

// TakeOrder is called by a waiter holding the claim slot. The guard makes a
// late arrival harmless: if the customer already gave up, the call fails and
// the waiter just walks away.
func (c *Customer) TakeOrder(r *Restaurant, waiterID string, nowTick uint64) (*Order, bool) {
	if c.State != CustomerWaitingForWaiter || c.Waiter.Holder() != waiterID {
		return nil, false
	}
	item := r.menu.RandomItem(r.rng)
	c.Order = newOrder(c.ID, item.ID, nowTick)
	c.State = CustomerOrdering
	c.orderShowLeft = r.cfg.OrderShowTicks
	if c.Table != nil {
		c.Table.Reserved = false
	}
	r.stats.OrdersTaken++
	r.pushEvent(nowTick, "ORDER_PLACED", map[string]interface{}{
		"customer": c.ID, "order": c.Order.ID, "item": item.ID, "waiter": waiterID,
	})
	return c.Order, true
}

// forceLeave is the give-up path: invalidate every outstanding staff claim,
// free the table and walk out. The order dies with the customer; any food
// already in flight for it becomes an orphan for the counter sweep.
func (r *Restaurant) forceLeave(c *Customer, nowTick uint64, reason string) {
	if h := c.Waiter.ForceClear(); h != "" {
		r.pushEvent(nowTick, "CLAIM_REVOKED", map[string]interface{}{
			"customer": c.ID, "staff": h,
		})
	}
	if h := c.Chef.ForceClear(); h != "" {
		r.pushEvent(nowTick, "CLAIM_REVOKED", map[string]interface{}{
			"customer": c.ID, "staff": h,
		})
	}
	if c.Table != nil {
		c.Table.Unseat(c)
	}
	c.Order = nil
	c.FoodInbound = false
	c.State = CustomerLeaving
	r.moveTo(&c.mover, r.cfg.Exit, 0)
	r.stats.Lost++
	r.pushEvent(nowTick, "CUSTOMER_LOST", map[string]interface{}{
		"customer": c.ID, "reason": reason,
	})
}

func (r *Restaurant) systemCustomers(nowTick uint64) {
	decay := 100.0 / float64(r.cfg.PatienceTicks)
	for _, id := range sortedCustomerIDs(r.customers) {
		c := r.customers[id]
		switch c.State {
		case CustomerEntering:
			if c.moving() {
				continue
			}
			if c.Table == nil || !c.Table.Seat(c) {
				// The assigned table filled up or vanished while walking in.
				c.addSatisfaction(-r.cfg.SeatFailPenalty)
				c.Table = nil
				c.State = CustomerLeaving
				r.moveTo(&c.mover, r.cfg.Exit, 0)
				r.stats.Lost++
				r.pushEvent(nowTick, "SEAT_FAILED", map[string]interface{}{"customer": c.ID})
				continue
			}
			c.State = CustomerWaitingForWaiter
			c.waitStartTick = nowTick
			r.pushEvent(nowTick, "CUSTOMER_SEATED", map[string]interface{}{
				"customer": c.ID, "table": c.Table.Number,
			})

		case CustomerWaitingForWaiter:
			c.addSatisfaction(-decay)
			if c.Satisfaction <= 0 {
				r.forceLeave(c, nowTick, "patience_waiter")
			}

		case CustomerOrdering:
			c.orderShowLeft--
			if c.orderShowLeft <= 0 {
				c.State = CustomerWaitingForFood
				c.waitStartTick = nowTick
			}

		case CustomerWaitingForFood:
			if c.Table != nil && c.Order != nil {
				if f := c.matchingFood(); f != nil {
					r.consumeFood(c, f, nowTick)
					continue
				}
			}
			c.addSatisfaction(-decay)
			if c.Satisfaction <= 0 {
				r.forceLeave(c, nowTick, "patience_food")
			}

		case CustomerEating:
			c.eatLeft--
			if c.eatLeft <= 0 {
				c.State = CustomerStandingUp
				r.moveTo(&c.mover, r.cfg.Exit, 0)
			}

		case CustomerStandingUp:
			// Hold the seat until the customer is clear of the table, then free
			// it for the next party.
			if c.Table == nil || Manhattan(c.Pos, c.Table.Pos) >= r.cfg.StandUpDistance || !c.moving() {
				if c.Table != nil {
					c.Table.Unseat(c)
				}
				c.State = CustomerLeaving
				r.stats.Served++
				r.stats.SatisfactionSum += c.Satisfaction
				r.pushEvent(nowTick, "CUSTOMER_SERVED", map[string]interface{}{
					"customer": c.ID, "satisfaction": c.Satisfaction,
				})
			}

		case CustomerLeaving:
			if !c.moving() {
				c.State = CustomerLeft
				c.departed = true
				r.pushEvent(nowTick, "CUSTOMER_LEFT", map[string]interface{}{"customer": c.ID})
			}
		}
	}
}

// matchingFood finds a cooked item on the customer's table matching their
// order. The table gate already enforces the match on placement; the state
// check here covers food placed the same tick the customer gave up.
func (c *Customer) matchingFood() *Food {
	for _, f := range c.Table.PlacedFood {
		if f.Type == c.Order.Item && f.State == FoodCooked {
			return f
		}
	}
	return nil
}

func (r *Restaurant) consumeFood(c *Customer, f *Food, nowTick uint64) {
	res := r.menu.CompleteOrder(c.Order.Item, f.Type, f.State == FoodBurnt,
		int(nowTick-c.Order.PlacedTick), r.cfg.SpeedGraceTicks, r.cfg.TickRateHz)
	c.Table.removeFood(f)
	delete(r.foods, f.ID)
	if res.Success {
		c.addSatisfaction(res.Bonus)
	}
	r.pushEvent(nowTick, "ORDER_COMPLETED", map[string]interface{}{
		"customer": c.ID, "order": c.Order.ID, "item": c.Order.Item, "bonus": res.Bonus,
	})
	c.Order = nil
	c.FoodInbound = false
	c.State = CustomerEating
	c.eatLeft = r.cfg.EatTicks
}

func sortedCustomerIDs(m map[string]*Customer) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
