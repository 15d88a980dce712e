package dining

import (
	"encoding/json"

	"dinercraft/internal/protocol"
)

// ObserverJoinRequest registers a read-only observer session receiving one
// OBS frame per tick. All observer state is maintained by the loop goroutine.
type ObserverJoinRequest struct {
	SessionID string
	Out       chan []byte
}

type observerClient struct {
	id  string
	out chan []byte
}

func (r *Restaurant) handleObserverJoin(req ObserverJoinRequest) {
	if req.SessionID == "" || req.Out == nil {
		return
	}
	r.observers[req.SessionID] = &observerClient{id: req.SessionID, out: req.Out}
}

func (r *Restaurant) handleObserverLeave(id string) {
	delete(r.observers, id)
}

// ObserverJoin and ObserverLeave are the thread-safe entry points used by the
// transport layer.
func (r *Restaurant) ObserverJoin(req ObserverJoinRequest) {
	select {
	case r.observerJoin <- req:
	case <-r.stop:
	}
}

func (r *Restaurant) ObserverLeave(id string) {
	select {
	case r.observerLeave <- id:
	case <-r.stop:
	}
}

func (r *Restaurant) stepObservers(nowTick uint64) {
	if len(r.observers) == 0 {
		return
	}
	obs := r.buildObs(nowTick)
	b, err := json.Marshal(obs)
	if err != nil {
		return
	}
	for _, o := range r.observers {
		sendLatest(o.out, b)
	}
}

// sendLatest drops the queued frame in favour of the new one when the
// observer cannot keep up; a stale frame has no value next tick.
func sendLatest(ch chan []byte, b []byte) {
	select {
	case ch <- b:
		return
	default:
	}
	// Drop one.
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- b:
	default:
	}
}

func (r *Restaurant) buildObs(nowTick uint64) protocol.ObsMsg {
	msg := protocol.ObsMsg{
		Type:            protocol.TypeObs,
		ProtocolVersion: protocol.Version,
		Tick:            nowTick,
		RestaurantID:    r.cfg.ID,
		Customers:       []protocol.CustomerObs{},
		Staff:           []protocol.StaffObs{},
		Tables:          []protocol.TableObs{},
		Stations:        []protocol.StationObs{},
		Orders:          []protocol.OrderObs{},
		Events:          append([]protocol.Event{}, r.eventsThisTick...),
	}
	for _, id := range sortedCustomerIDs(r.customers) {
		c := r.customers[id]
		co := protocol.CustomerObs{
			ID:           c.ID,
			Name:         c.Name,
			State:        string(c.State),
			Pos:          [2]int{c.Pos.X, c.Pos.Y},
			Satisfaction: c.Satisfaction,
		}
		if c.Table != nil {
			co.Table = c.Table.Number
		}
		if c.Order != nil {
			co.Order = c.Order.Item
		}
		msg.Customers = append(msg.Customers, co)
	}
	for _, id := range sortedWaiterIDs(r.waiters) {
		w := r.waiters[id]
		so := protocol.StaffObs{
			ID:       w.ID,
			Role:     "WAITER",
			State:    string(w.State),
			Pos:      [2]int{w.Pos.X, w.Pos.Y},
			Customer: w.Customer,
		}
		if w.Carried != nil {
			so.Carrying = w.Carried.Type
		}
		msg.Staff = append(msg.Staff, so)
	}
	for _, id := range sortedChefIDs(r.chefs) {
		k := r.chefs[id]
		so := protocol.StaffObs{
			ID:       k.ID,
			Role:     "CHEF",
			State:    string(k.State),
			Pos:      [2]int{k.Pos.X, k.Pos.Y},
			Customer: k.Customer,
		}
		if k.Carried != nil {
			so.Carrying = k.Carried.Type
		}
		msg.Staff = append(msg.Staff, so)
	}
	for _, t := range r.tables {
		to := protocol.TableObs{
			Number:   t.Number,
			Capacity: t.Capacity,
			Pos:      [2]int{t.Pos.X, t.Pos.Y},
			Reserved: t.Reserved,
		}
		for _, c := range t.Seated {
			to.Seated = append(to.Seated, c.ID)
		}
		for _, f := range t.PlacedFood {
			to.Food = append(to.Food, foodObs(f))
		}
		msg.Tables = append(msg.Tables, to)
	}
	for _, s := range r.stations {
		so := protocol.StationObs{
			ID:   s.ID,
			Kind: s.Kind,
			Pos:  [2]int{s.Pos.X, s.Pos.Y},
		}
		for _, f := range s.Foods {
			so.Foods = append(so.Foods, foodObs(f))
		}
		msg.Stations = append(msg.Stations, so)
	}
	for _, o := range r.activeOrders() {
		msg.Orders = append(msg.Orders, protocol.OrderObs{
			ID:       o.ID,
			Item:     o.Item,
			Customer: o.Customer,
			Status:   string(o.Status),
			AgeTicks: nowTick - o.PlacedTick,
		})
	}
	msg.Shift = protocol.ShiftObs{
		Arrived:         r.stats.Arrived,
		Served:          r.stats.Served,
		Lost:            r.stats.Lost,
		TurnedAway:      r.stats.TurnedAway,
		OrdersTaken:     r.stats.OrdersTaken,
		OrdersDelivered: r.stats.OrdersDelivered,
		WrongDeliveries: r.stats.WrongDeliveries,
		FoodBurnt:       r.stats.FoodBurnt,
		FoodDiscarded:   r.stats.FoodDiscarded,
		AvgSatisfaction: r.stats.AvgSatisfaction(),
	}
	return msg
}

func foodObs(f *Food) protocol.FoodObs {
	return protocol.FoodObs{
		ID:         f.ID,
		Type:       f.Type,
		State:      string(f.State),
		ReservedBy: f.ReservedBy.Holder(),
	}
}
