package dining

import (
	"time"

	"dinercraft/internal/protocol"
)

func (r *Restaurant) stepInternal(arrivals []ArrivalRequest) {
	stepStart := time.Now()
	nowTick := r.tick.Load()

	r.eventsThisTick = r.eventsThisTick[:0]

	// Admit walk-ins deterministically at the tick boundary, in receive order.
	recorded := make([]RecordedArrival, 0, len(arrivals))
	for _, req := range arrivals {
		resp := r.admitParty(req.Name, nowTick)
		if req.Resp != nil {
			req.Resp <- resp
		}
		recorded = append(recorded, RecordedArrival{
			CustomerID: resp.CustomerID, Name: req.Name, TurnedAway: resp.TurnedAway,
		})
	}

	// Systems run in a fixed order; every agent pass iterates sorted IDs so a
	// given seed always replays the same shift.
	r.systemMovement(nowTick)
	r.systemCustomers(nowTick)
	r.systemWaiters(nowTick)
	r.systemChefs(nowTick)
	r.systemCooking(nowTick)
	r.sweepCounter(nowTick)
	r.removeDeparted()

	r.stepObservers(nowTick)

	digest := r.stateDigest(nowTick)
	if r.tickLogger != nil {
		_ = r.tickLogger.WriteTick(TickLogEntry{
			Tick:     nowTick,
			Arrivals: recorded,
			Events:   append([]protocol.Event(nil), r.eventsThisTick...),
			Digest:   digest,
		})
	}

	r.maybeEndShift(nowTick)

	stepMS := float64(time.Since(stepStart).Microseconds()) / 1000.0
	nextTick := r.tick.Add(1)

	r.metrics.Store(RestaurantMetrics{
		Tick:       nextTick,
		Customers:  len(r.customers),
		Waiters:    len(r.waiters),
		Chefs:      len(r.chefs),
		FoodItems:  len(r.foods),
		Observers:  len(r.observers),
		Queues:     QueueDepths{Arrive: len(r.arrive)},
		StepMS:     stepMS,
		Shift:      r.shiftNum,
		ShiftSoFar: r.stats,
	})
}

func (r *Restaurant) admitParty(name string, nowTick uint64) ArrivalResponse {
	t := r.findTableForParty()
	if t == nil {
		r.stats.TurnedAway++
		r.pushEvent(nowTick, "CUSTOMER_TURNED_AWAY", map[string]interface{}{"name": name})
		return ArrivalResponse{TurnedAway: true}
	}
	c := r.spawnCustomer(name, nowTick)
	c.Table = t
	t.Reserved = true
	r.moveTo(&c.mover, t.Pos, 1)
	r.pushEvent(nowTick, "CUSTOMER_ARRIVED", map[string]interface{}{
		"customer": c.ID, "name": c.Name, "table": t.Number,
	})
	return ArrivalResponse{CustomerID: c.ID}
}

func (r *Restaurant) removeDeparted() {
	for id, c := range r.customers {
		if c.departed {
			delete(r.customers, id)
		}
	}
}
