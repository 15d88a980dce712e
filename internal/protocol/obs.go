package protocol

// OBS (server -> observer): one read-only frame per tick.
type ObsMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Tick            uint64 `json:"tick"`
	RestaurantID    string `json:"restaurant_id"`

	Customers []CustomerObs `json:"customers"`
	Staff     []StaffObs    `json:"staff"`
	Tables    []TableObs    `json:"tables"`
	Stations  []StationObs  `json:"stations"`
	Orders    []OrderObs    `json:"orders"`
	Events    []Event       `json:"events"`
	Shift     ShiftObs      `json:"shift"`
}

type CustomerObs struct {
	ID           string  `json:"id"`
	Name         string  `json:"name,omitempty"`
	State        string  `json:"state"`
	Pos          [2]int  `json:"pos"`
	Satisfaction float64 `json:"satisfaction"`
	Table        int     `json:"table,omitempty"`
	Order        string  `json:"order,omitempty"` // food type, if an order is live
}

type StaffObs struct {
	ID       string `json:"id"`
	Role     string `json:"role"` // "WAITER" or "CHEF"
	State    string `json:"state"`
	Pos      [2]int `json:"pos"`
	Carrying string `json:"carrying,omitempty"` // food type in hand
	Customer string `json:"customer,omitempty"` // claimed customer id
}

type TableObs struct {
	Number   int       `json:"number"`
	Capacity int       `json:"capacity"`
	Pos      [2]int    `json:"pos"`
	Seated   []string  `json:"seated,omitempty"`
	Reserved bool      `json:"reserved"`
	Food     []FoodObs `json:"food,omitempty"`
}

type StationObs struct {
	ID    string    `json:"id"`
	Kind  string    `json:"kind"`
	Pos   [2]int    `json:"pos"`
	Foods []FoodObs `json:"foods,omitempty"`
}

type FoodObs struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	State      string `json:"state"`
	ReservedBy string `json:"reserved_by,omitempty"`
}

type OrderObs struct {
	ID       string `json:"id"`
	Item     string `json:"item"`
	Customer string `json:"customer"`
	Status   string `json:"status"`
	AgeTicks uint64 `json:"age_ticks"`
}

type ShiftObs struct {
	Arrived         int     `json:"arrived"`
	Served          int     `json:"served"`
	Lost            int     `json:"lost"`
	TurnedAway      int     `json:"turned_away"`
	OrdersTaken     int     `json:"orders_taken"`
	OrdersDelivered int     `json:"orders_delivered"`
	WrongDeliveries int     `json:"wrong_deliveries"`
	FoodBurnt       int     `json:"food_burnt"`
	FoodDiscarded   int     `json:"food_discarded"`
	AvgSatisfaction float64 `json:"avg_satisfaction"`
}

type Event map[string]interface{}
