package dining

import "dinercraft/internal/sim/menu"

// Station holds 0..Capacity food items. Cooking stations run an independent
// cook timer per item; the serving counter is a degenerate station
// (CanCook=false) acting as the chef→waiter handoff buffer.
type Station struct {
	ID       string
	Kind     string
	Pos      Vec2i
	Capacity int
	Foods    []*Food
	CanCook  bool
	AutoCook bool
}

func newStation(spec StationSpec) *Station {
	cap := spec.Capacity
	if cap <= 0 {
		cap = 1
	}
	return &Station{
		ID:       spec.ID,
		Kind:     spec.Kind,
		Pos:      spec.Pos,
		Capacity: cap,
		CanCook:  spec.Kind != menu.StationCounter && spec.Kind != menu.StationSink,
		AutoCook: spec.AutoCook,
	}
}

func (s *Station) HasSpace() bool { return len(s.Foods) < s.Capacity }

// canAcceptFood is the per-kind allow-list: a cooking station takes only the
// types it produces; the counter takes anything; a sink takes nothing.
func (s *Station) canAcceptFood(it menu.Item, ok bool) bool {
	switch s.Kind {
	case menu.StationCounter:
		return true
	case menu.StationSink:
		return false
	default:
		return ok && it.Station == s.Kind
	}
}

func (s *Station) findFood(id string) *Food {
	for _, f := range s.Foods {
		if f.ID == id {
			return f
		}
	}
	return nil
}

func (s *Station) removeFood(f *Food) bool {
	for i, g := range s.Foods {
		if g == f {
			s.Foods = append(s.Foods[:i], s.Foods[i+1:]...)
			f.Station = nil
			return true
		}
	}
	return false
}

// placeFood applies capacity, type and admission checks, then transfers
// ownership to the station. Chef placers skip the admission re-check: the
// chef validated the admission rule when it claimed the order, inside the
// same tick pass, so re-counting here would double-count its own claim.
func (r *Restaurant) placeFood(s *Station, f *Food, chefPlaced bool) (bool, string) {
	if s == nil || f == nil {
		return false, "E_INVALID_TARGET"
	}
	if !s.HasSpace() {
		return false, "E_NO_CAPACITY"
	}
	it, ok := r.menu.ByID[f.Type]
	if !s.canAcceptFood(it, ok) {
		return false, "E_CONFLICT"
	}
	if s.CanCook && !chefPlaced && !r.admitFood(f.Type) {
		return false, "E_BLOCKED"
	}
	s.Foods = append(s.Foods, f)
	f.Station = s
	return true, ""
}

// systemCooking advances every placed item's timer. Items cook independently
// and in parallel; a multi-slot station never shares a timer across items.
func (r *Restaurant) systemCooking(nowTick uint64) {
	for _, s := range r.stations {
		if !s.CanCook {
			continue
		}
		for _, f := range s.Foods {
			switch f.State {
			case FoodRaw:
				// Station-initiated start is gated by the same admission rule
				// as any other producer.
				if s.AutoCook && r.admitFood(f.Type) {
					f.State = FoodCooking
					r.pushEvent(nowTick, "COOKING_STARTED", map[string]interface{}{
						"food": f.ID, "food_type": f.Type, "station": s.ID,
					})
				}
			case FoodCooking:
				f.CookTicks++
				if f.CookTicks >= r.menu.CookTicks(f.Type, r.cfg.TickRateHz) {
					f.State = FoodCooked
					f.CookedTick = nowTick
					r.pushEvent(nowTick, "FOOD_READY", map[string]interface{}{
						"food": f.ID, "food_type": f.Type, "station": s.ID,
					})
				}
			case FoodCooked:
				burnAfter := uint64(r.cfg.BurnAfterFactor * r.menu.CookTicks(f.Type, r.cfg.TickRateHz))
				if nowTick-f.CookedTick > burnAfter {
					f.State = FoodBurnt
					r.stats.FoodBurnt++
					r.pushEvent(nowTick, "FOOD_BURNT", map[string]interface{}{
						"food": f.ID, "food_type": f.Type, "station": s.ID,
					})
				}
			}
		}
	}
}

// sweepCounter drops counter food whose type no longer has any active order
// (the customer left while it was cooking). Runs on a coarse period.
func (r *Restaurant) sweepCounter(nowTick uint64) {
	if r.counter == nil || r.cfg.OrphanSweepTicks <= 0 || nowTick%uint64(r.cfg.OrphanSweepTicks) != 0 {
		return
	}
	orphans := make([]*Food, 0, 2)
	for _, f := range r.counter.Foods {
		if r.countWanting(f.Type) == 0 {
			orphans = append(orphans, f)
		}
	}
	for _, f := range orphans {
		if h := f.ReservedBy.ForceClear(); h != "" {
			// The reserving waiter notices the missing food and resets.
			r.pushEvent(nowTick, "RESERVATION_REVOKED", map[string]interface{}{
				"food": f.ID, "waiter": h,
			})
		}
		r.disposeFood(f, nowTick, "orphaned")
	}
}

func (r *Restaurant) findCookStation(kind string) *Station {
	for _, s := range r.stations {
		if s.Kind == kind && s.CanCook && s.HasSpace() {
			return s
		}
	}
	return nil
}
