package dining

import "fmt"

// Food is a single plated unit. Ownership is explicit: exactly one of
// Station (placed), a staff member's hands (carried) or a table's food slot
// holds it at any time; transfer happens only via place/remove/pickup.
type Food struct {
	ID         string
	Type       string
	State      CookState
	CookTicks  int    // elapsed ticks in COOKING
	CookedTick uint64 // tick the item reached COOKED
	ReservedBy ClaimSlot
	Station    *Station // owning station, nil while carried or on a table
}

func (r *Restaurant) spawnFood(foodType string) *Food {
	n := r.nextFoodNum.Add(1)
	f := &Food{
		ID:    fmt.Sprintf("F%04d", n),
		Type:  foodType,
		State: FoodRaw,
	}
	r.foods[f.ID] = f
	return f
}

// disposeFood removes a food item from the simulation entirely, detaching it
// from its station or table first.
func (r *Restaurant) disposeFood(f *Food, nowTick uint64, reason string) {
	if f == nil {
		return
	}
	if f.Station != nil {
		f.Station.removeFood(f)
	}
	for _, t := range r.tables {
		t.removeFood(f)
	}
	delete(r.foods, f.ID)
	r.stats.FoodDiscarded++
	r.pushEvent(nowTick, "FOOD_DISCARDED", map[string]interface{}{
		"food": f.ID, "food_type": f.Type, "reason": reason,
	})
}
