package dining

// ShiftStats accumulates over one shift and resets at the shift boundary.
type ShiftStats struct {
	Arrived         int
	Served          int
	Lost            int
	TurnedAway      int
	OrdersTaken     int
	OrdersDelivered int
	WrongDeliveries int
	FoodBurnt       int
	FoodDiscarded   int
	SatisfactionSum float64
}

// AvgSatisfaction averages over served customers only; lost customers are
// reported separately rather than dragging the average to zero.
func (s ShiftStats) AvgSatisfaction() float64 {
	if s.Served == 0 {
		return 0
	}
	return s.SatisfactionSum / float64(s.Served)
}

// ShiftSummary is the record handed to the shift sink at each boundary.
type ShiftSummary struct {
	RestaurantID string     `json:"restaurant_id"`
	Shift        int        `json:"shift"`
	StartTick    uint64     `json:"start_tick"`
	EndTick      uint64     `json:"end_tick"`
	Stats        ShiftStats `json:"stats"`
	AvgSat       float64    `json:"avg_satisfaction"`
}

// ShiftSink receives completed shift summaries. Implementations must not
// block the loop goroutine; hand off to a writer goroutine internally.
type ShiftSink interface {
	WriteShift(ShiftSummary) error
}

// QueueDepths is a point-in-time sample of loop inbox backlogs.
type QueueDepths struct {
	Arrive int `json:"arrive"`
}

// RestaurantMetrics is published via atomic.Value for lock-free reads from
// the HTTP metrics handler.
type RestaurantMetrics struct {
	Tick       uint64      `json:"tick"`
	Customers  int         `json:"customers"`
	Waiters    int         `json:"waiters"`
	Chefs      int         `json:"chefs"`
	FoodItems  int         `json:"food_items"`
	Observers  int         `json:"observers"`
	Queues     QueueDepths `json:"queues"`
	StepMS     float64     `json:"step_ms"`
	Shift      int         `json:"shift"`
	ShiftSoFar ShiftStats  `json:"shift_so_far"`
}

func (r *Restaurant) maybeEndShift(nowTick uint64) {
	if r.cfg.ShiftTicks <= 0 || nowTick == 0 || (nowTick+1)%uint64(r.cfg.ShiftTicks) != 0 {
		return
	}
	sum := ShiftSummary{
		RestaurantID: r.cfg.ID,
		Shift:        r.shiftNum,
		StartTick:    nowTick + 1 - uint64(r.cfg.ShiftTicks),
		EndTick:      nowTick,
		Stats:        r.stats,
		AvgSat:       r.stats.AvgSatisfaction(),
	}
	if r.shiftSink != nil {
		_ = r.shiftSink.WriteShift(sum)
	}
	r.pushEvent(nowTick, "SHIFT_ENDED", map[string]interface{}{
		"shift": r.shiftNum, "served": r.stats.Served, "lost": r.stats.Lost,
		"avg_satisfaction": sum.AvgSat,
	})
	r.shiftNum++
	r.stats = ShiftStats{}
}
