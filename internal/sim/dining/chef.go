package dining

import (
	"fmt"
	"sort"
)

// Chef claims a customer, cooks their order at a matching station and drops
// the plate on the serving counter. The claim is held for the whole arc so
// the order counts as committed production from the moment the chef picks it.
type Chef struct {
	mover
	ID       string
	State    ChefState
	Customer string
	Working  *Food // on the station, cooking
	Carried  *Food
	Station  *Station
	waitLeft int
}

func (r *Restaurant) spawnChef(i int) *Chef {
	k := &Chef{ID: fmt.Sprintf("K%02d", i), State: ChefIdle}
	k.Pos = Vec2i{X: r.cfg.FloorW - 6, Y: r.cfg.FloorH / 2}
	r.chefs[k.ID] = k
	return k
}

func (r *Restaurant) systemChefs(nowTick uint64) {
	for _, id := range sortedChefIDs(r.chefs) {
		k := r.chefs[id]
		switch k.State {
		case ChefIdle:
			r.chefPickOrder(k, nowTick)

		case ChefMovingToStation:
			if k.moving() {
				continue
			}
			r.chefStartCooking(k, nowTick)

		case ChefWaitingForCooking:
			r.chefWatchPot(k, nowTick)

		case ChefMovingToCounter:
			if k.moving() {
				continue
			}
			r.chefDropOff(k, nowTick)
		}
	}
}

// chefPickOrder claims the lowest-ID customer whose order passes the
// admission gate. The gate is checked before the claim: claiming removes the
// order from the pending count, so checking after would compare against a
// demand figure missing the very order being decided.
func (r *Restaurant) chefPickOrder(k *Chef, nowTick uint64) {
	for _, cid := range sortedCustomerIDs(r.customers) {
		c := r.customers[cid]
		if !c.hasLiveOrder() || c.Order.Status != OrderPending || c.Chef.Claimed() {
			continue
		}
		if !r.admitFood(c.Order.Item) {
			continue
		}
		if !c.Chef.TryClaim(k.ID) {
			continue
		}
		it := r.menu.ByID[c.Order.Item]
		s := r.findCookStation(it.Station)
		if s == nil {
			c.Chef.Release(k.ID)
			continue
		}
		k.Customer = c.ID
		k.Station = s
		k.State = ChefMovingToStation
		r.moveTo(&k.mover, s.Pos, 1)
		r.pushEvent(nowTick, "ORDER_CLAIMED", map[string]interface{}{
			"chef": k.ID, "customer": c.ID, "order": c.Order.ID,
		})
		return
	}
}

func (r *Restaurant) chefStartCooking(k *Chef, nowTick uint64) {
	c := r.customers[k.Customer]
	if c == nil || c.Chef.Holder() != k.ID || !c.hasLiveOrder() {
		// Claim was revoked while walking over.
		k.resetJob()
		return
	}
	f := r.spawnFood(c.Order.Item)
	if ok, _ := r.placeFood(k.Station, f, true); !ok {
		delete(r.foods, f.ID)
		c.Chef.Release(k.ID)
		k.resetJob()
		return
	}
	f.State = FoodCooking
	c.Order.Status = OrderCooking
	k.Working = f
	k.State = ChefWaitingForCooking
	k.waitLeft = r.cfg.CookAbandonTicks
	r.pushEvent(nowTick, "COOKING_STARTED", map[string]interface{}{
		"chef": k.ID, "food": f.ID, "food_type": f.Type, "station": k.Station.ID,
	})
}

// chefWatchPot guards the claim every tick: if the customer gave up, the food
// is discarded immediately instead of finishing into an orphan.
func (r *Restaurant) chefWatchPot(k *Chef, nowTick uint64) {
	c := r.customers[k.Customer]
	if c == nil || c.Chef.Holder() != k.ID {
		r.disposeFood(k.Working, nowTick, "customer_gone")
		k.resetJob()
		return
	}
	f := k.Working
	if f == nil || r.foods[f.ID] == nil {
		c.Chef.Release(k.ID)
		k.resetJob()
		return
	}
	switch f.State {
	case FoodBurnt:
		r.disposeFood(f, nowTick, "burnt")
		c.Chef.Release(k.ID)
		if c.hasLiveOrder() {
			c.Order.Status = OrderPending
		}
		k.resetJob()
	case FoodCooked:
		f.Station.removeFood(f)
		k.Carried = f
		k.Working = nil
		k.State = ChefMovingToCounter
		r.moveTo(&k.mover, r.counter.Pos, 1)
	default:
		k.waitLeft--
		if k.waitLeft <= 0 {
			r.disposeFood(f, nowTick, "abandoned")
			c.Chef.Release(k.ID)
			if c.hasLiveOrder() {
				c.Order.Status = OrderPending
			}
			k.resetJob()
		}
	}
}

func (r *Restaurant) chefDropOff(k *Chef, nowTick uint64) {
	f := k.Carried
	k.Carried = nil
	placed := false
	if f != nil {
		if ok, _ := r.placeFood(r.counter, f, false); ok {
			placed = true
			r.pushEvent(nowTick, "FOOD_AT_COUNTER", map[string]interface{}{
				"chef": k.ID, "food": f.ID, "food_type": f.Type,
			})
		} else {
			r.disposeFood(f, nowTick, "counter_full")
		}
	}
	if c := r.customers[k.Customer]; c != nil {
		if c.Chef.Release(k.ID) && c.hasLiveOrder() && c.Order.Status == OrderCooking {
			if placed {
				c.Order.Status = OrderReady
			} else {
				// The plate was lost; put the order back up for grabs.
				c.Order.Status = OrderPending
			}
		}
	}
	k.resetJob()
}

func (k *Chef) resetJob() {
	k.Customer = ""
	k.Working = nil
	k.Station = nil
	k.waitLeft = 0
	k.State = ChefIdle
}

func sortedChefIDs(m map[string]*Chef) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
