package dining

// Table seats up to Capacity customers. Reserved marks a table assigned to a
// party still walking in; it blocks new assignments while empty but does not
// block the party it was reserved for.
type Table struct {
	Number     int
	Capacity   int
	Pos        Vec2i
	Seated     []*Customer
	Reserved   bool
	PlacedFood []*Food
}

func newTable(spec TableSpec) *Table {
	cap := spec.Capacity
	if cap <= 0 {
		cap = 2
	}
	return &Table{Number: spec.Number, Capacity: cap, Pos: spec.Pos}
}

// Available reports whether a new party can be assigned to this table.
// A reserved empty table is held for the inbound party.
func (t *Table) Available() bool {
	if len(t.Seated) >= t.Capacity {
		return false
	}
	if t.Reserved && len(t.Seated) == 0 {
		return false
	}
	return true
}

func (t *Table) Seat(c *Customer) bool {
	if len(t.Seated) >= t.Capacity {
		return false
	}
	for _, s := range t.Seated {
		if s == c {
			return false
		}
	}
	t.Seated = append(t.Seated, c)
	c.Table = t
	return true
}

func (t *Table) Unseat(c *Customer) {
	for i, s := range t.Seated {
		if s == c {
			t.Seated = append(t.Seated[:i], t.Seated[i+1:]...)
			break
		}
	}
	if c.Table == t {
		c.Table = nil
	}
	if len(t.Seated) == 0 {
		t.Reserved = false
	}
}

func (t *Table) removeFood(f *Food) bool {
	for i, g := range t.PlacedFood {
		if g == f {
			t.PlacedFood = append(t.PlacedFood[:i], t.PlacedFood[i+1:]...)
			return true
		}
	}
	return false
}

// placeFoodOnTable is the delivery gate: the item must match an order some
// seated customer is still waiting on, otherwise the table rejects it and the
// waiter has to carry it back.
func (t *Table) placeFoodOnTable(f *Food) (*Customer, bool) {
	for _, c := range t.Seated {
		if c.State == CustomerWaitingForFood && c.Order != nil && c.Order.Item == f.Type {
			t.PlacedFood = append(t.PlacedFood, f)
			f.Station = nil
			return c, true
		}
	}
	return nil, false
}
