package dining

import (
	"dinercraft/internal/sim/menu"
	"dinercraft/internal/sim/tuning"
)

type TableSpec struct {
	Number   int
	Capacity int
	Pos      Vec2i
}

type StationSpec struct {
	ID       string
	Kind     string // menu.StationOven etc.
	Capacity int
	Pos      Vec2i
	AutoCook bool
}

type Config struct {
	ID         string
	TickRateHz int
	FloorW     int
	FloorH     int
	Seed       int64

	Tables   []TableSpec
	Stations []StationSpec
	Waiters  int
	Chefs    int

	Entrance Vec2i
	Exit     Vec2i

	PatienceTicks      int
	OrderShowTicks     int
	EatTicks           int
	StandUpDistance    int
	PickupTimeoutTicks int
	CookAbandonTicks   int
	OrphanSweepTicks   int
	SpeedGraceTicks    int
	ShiftTicks         int
	BurnAfterFactor    int // COOKED flips to BURNT after factor*cookTicks on a hot station

	SeatFailPenalty  float64
	WrongFoodPenalty float64
	DeliveryBonus    float64
}

func (c *Config) applyDefaults() {
	if c.ID == "" {
		c.ID = "diner_1"
	}
	if c.TickRateHz <= 0 {
		c.TickRateHz = 5
	}
	if c.FloorW <= 0 {
		c.FloorW = 40
	}
	if c.FloorH <= 0 {
		c.FloorH = 24
	}
	if c.Entrance == (Vec2i{}) {
		c.Entrance = Vec2i{X: 0, Y: c.FloorH / 2}
	}
	if c.Exit == (Vec2i{}) {
		c.Exit = c.Entrance
	}
	if len(c.Tables) == 0 {
		for i := 0; i < 6; i++ {
			c.Tables = append(c.Tables, TableSpec{
				Number:   i + 1,
				Capacity: 2,
				Pos:      Vec2i{X: 6 + 5*(i%3), Y: 6 + 8*(i/3)},
			})
		}
	}
	if len(c.Stations) == 0 {
		kx := c.FloorW - 4
		c.Stations = []StationSpec{
			{ID: "OVEN_1", Kind: menu.StationOven, Capacity: 2, Pos: Vec2i{X: kx, Y: 4}, AutoCook: false},
			{ID: "STOVE_1", Kind: menu.StationStove, Capacity: 2, Pos: Vec2i{X: kx, Y: 8}, AutoCook: false},
			{ID: "PREP_1", Kind: menu.StationPrep, Capacity: 2, Pos: Vec2i{X: kx, Y: 12}, AutoCook: false},
			{ID: "COUNTER", Kind: menu.StationCounter, Capacity: 6, Pos: Vec2i{X: kx - 6, Y: 8}},
		}
	}
	if c.Waiters <= 0 {
		c.Waiters = 2
	}
	if c.Chefs <= 0 {
		c.Chefs = 2
	}
	if c.PatienceTicks <= 0 {
		c.PatienceTicks = 120 * c.TickRateHz
	}
	if c.OrderShowTicks <= 0 {
		c.OrderShowTicks = 3 * c.TickRateHz
	}
	if c.EatTicks <= 0 {
		c.EatTicks = 30 * c.TickRateHz
	}
	if c.StandUpDistance <= 0 {
		c.StandUpDistance = 2
	}
	if c.PickupTimeoutTicks <= 0 {
		c.PickupTimeoutTicks = 30 * c.TickRateHz
	}
	if c.CookAbandonTicks <= 0 {
		c.CookAbandonTicks = 90 * c.TickRateHz
	}
	if c.OrphanSweepTicks <= 0 {
		c.OrphanSweepTicks = 5 * c.TickRateHz
	}
	if c.SpeedGraceTicks <= 0 {
		c.SpeedGraceTicks = 10 * c.TickRateHz
	}
	if c.ShiftTicks <= 0 {
		c.ShiftTicks = 20 * 60 * c.TickRateHz
	}
	if c.BurnAfterFactor <= 0 {
		c.BurnAfterFactor = 2
	}
	if c.SeatFailPenalty <= 0 {
		c.SeatFailPenalty = 25
	}
	if c.WrongFoodPenalty <= 0 {
		c.WrongFoodPenalty = 15
	}
	if c.DeliveryBonus <= 0 {
		c.DeliveryBonus = 5
	}
}

// ConfigFromTuning converts second-based tuning knobs into tick counts.
func ConfigFromTuning(id string, seed int64, t tuning.Tuning) Config {
	hz := t.TickRateHz
	if hz <= 0 {
		hz = 5
	}
	cfg := Config{
		ID:                 id,
		TickRateHz:         hz,
		FloorW:             t.FloorWidth,
		FloorH:             t.FloorHeight,
		Seed:               seed,
		Waiters:            t.Waiters,
		Chefs:              t.Chefs,
		PatienceTicks:      t.PatienceSeconds * hz,
		OrderShowTicks:     t.OrderShowSeconds * hz,
		EatTicks:           t.EatSeconds * hz,
		PickupTimeoutTicks: t.PickupTimeoutSeconds * hz,
		CookAbandonTicks:   t.CookAbandonSeconds * hz,
		OrphanSweepTicks:   t.OrphanSweepSeconds * hz,
		SpeedGraceTicks:    t.SpeedGraceSeconds * hz,
		ShiftTicks:         t.ShiftMinutes * 60 * hz,
		SeatFailPenalty:    t.SeatFailPenalty,
		WrongFoodPenalty:   t.WrongFoodPenalty,
		DeliveryBonus:      t.DeliveryBonus,
	}
	if t.Tables > 0 {
		cap := t.TableCapacity
		if cap <= 0 {
			cap = 2
		}
		for i := 0; i < t.Tables; i++ {
			cfg.Tables = append(cfg.Tables, TableSpec{
				Number:   i + 1,
				Capacity: cap,
				Pos:      Vec2i{X: 6 + 5*(i%3), Y: 6 + 8*(i/3)},
			})
		}
	}
	return cfg
}
