package dining

import (
	"math/rand"
	"sync/atomic"

	"dinercraft/internal/protocol"
	"dinercraft/internal/sim/menu"
)

// Restaurant is a single-threaded authoritative simulation.
// All state must be accessed only from the loop goroutine.
type Restaurant struct {
	cfg  Config
	menu *menu.Menu
	rng  *rand.Rand

	tick    atomic.Uint64
	metrics atomic.Value

	customers map[string]*Customer
	waiters   map[string]*Waiter
	chefs     map[string]*Chef
	tables    []*Table
	stations  []*Station
	counter   *Station
	foods     map[string]*Food

	arrive        chan ArrivalRequest
	observerJoin  chan ObserverJoinRequest
	observerLeave chan string
	stop          chan struct{}

	observers map[string]*observerClient

	nextCustomerNum atomic.Uint64
	nextFoodNum     atomic.Uint64
	nextTaskNum     atomic.Uint64

	// Optional sinks (may be nil). Implemented in internal/persistence/*.
	tickLogger TickLogger
	shiftSink  ShiftSink

	stats    ShiftStats
	shiftNum int

	eventsThisTick []protocol.Event
}

// ArrivalRequest asks the loop to admit a walk-in party of one.
type ArrivalRequest struct {
	Name string
	Resp chan ArrivalResponse
}

type ArrivalResponse struct {
	CustomerID string
	TurnedAway bool
}

// RecordedArrival is the tick-log form of an admitted or rejected arrival.
type RecordedArrival struct {
	CustomerID string `json:"customer_id,omitempty"`
	Name       string `json:"name"`
	TurnedAway bool   `json:"turned_away,omitempty"`
}

// TickLogEntry is one line of the shift log stream.
type TickLogEntry struct {
	Tick     uint64            `json:"tick"`
	Arrivals []RecordedArrival `json:"arrivals,omitempty"`
	Events   []protocol.Event  `json:"events,omitempty"`
	Digest   string            `json:"digest"`
}

// TickLogger persists per-tick entries. Implementations must be cheap on the
// caller side; buffering and compression happen off-thread.
type TickLogger interface {
	WriteTick(TickLogEntry) error
}

func New(cfg Config, m *menu.Menu) *Restaurant {
	cfg.applyDefaults()
	if m == nil {
		m = menu.Default()
	}
	r := &Restaurant{
		cfg:  cfg,
		menu: m,
		rng:  rand.New(rand.NewSource(cfg.Seed)),

		customers: map[string]*Customer{},
		waiters:   map[string]*Waiter{},
		chefs:     map[string]*Chef{},
		foods:     map[string]*Food{},

		arrive:        make(chan ArrivalRequest, 64),
		observerJoin:  make(chan ObserverJoinRequest, 8),
		observerLeave: make(chan string, 8),
		stop:          make(chan struct{}),

		observers: map[string]*observerClient{},
	}
	for _, ts := range cfg.Tables {
		r.tables = append(r.tables, newTable(ts))
	}
	for _, ss := range cfg.Stations {
		s := newStation(ss)
		r.stations = append(r.stations, s)
		if s.Kind == menu.StationCounter && r.counter == nil {
			r.counter = s
		}
	}
	if r.counter == nil {
		s := newStation(StationSpec{ID: "COUNTER", Kind: menu.StationCounter, Capacity: 6,
			Pos: Vec2i{X: cfg.FloorW / 2, Y: 1}})
		r.stations = append(r.stations, s)
		r.counter = s
	}
	for i := 1; i <= cfg.Waiters; i++ {
		r.spawnWaiter(i)
	}
	for i := 1; i <= cfg.Chefs; i++ {
		r.spawnChef(i)
	}
	return r
}

func (r *Restaurant) ID() string {
	if r == nil {
		return ""
	}
	return r.cfg.ID
}

func (r *Restaurant) TickRateHz() int {
	if r == nil {
		return 0
	}
	return r.cfg.TickRateHz
}

func (r *Restaurant) Config() Config { return r.cfg }

// CurrentTick is safe to read from any goroutine.
func (r *Restaurant) CurrentTick() uint64 { return r.tick.Load() }

func (r *Restaurant) Menu() *menu.Menu { return r.menu }

// SetTickLogger must be called before Run.
func (r *Restaurant) SetTickLogger(l TickLogger) { r.tickLogger = l }

// SetShiftSink must be called before Run.
func (r *Restaurant) SetShiftSink(s ShiftSink) { r.shiftSink = s }

// Arrive is the thread-safe entry point for spawners. The response arrives
// after the next tick boundary.
func (r *Restaurant) Arrive(req ArrivalRequest) {
	select {
	case r.arrive <- req:
	case <-r.stop:
		if req.Resp != nil {
			req.Resp <- ArrivalResponse{TurnedAway: true}
		}
	}
}

// Metrics returns the most recent published metrics sample.
func (r *Restaurant) Metrics() RestaurantMetrics {
	if v, ok := r.metrics.Load().(RestaurantMetrics); ok {
		return v
	}
	return RestaurantMetrics{}
}

func (r *Restaurant) pushEvent(nowTick uint64, typ string, fields map[string]interface{}) {
	ev := protocol.Event{"t": nowTick, "type": typ}
	for k, v := range fields {
		ev[k] = v
	}
	r.eventsThisTick = append(r.eventsThisTick, ev)
}

// findTableForParty picks the lowest-numbered available table so seating is
// deterministic under a fixed arrival order.
func (r *Restaurant) findTableForParty() *Table {
	for _, t := range r.tables {
		if t.Available() {
			return t
		}
	}
	return nil
}
