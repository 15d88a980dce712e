package protocol

// HELLO (observer -> server)
type HelloMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ObserverName    string `json:"observer_name"`
}

// WELCOME (server -> observer)
type WelcomeMsg struct {
	Type            string           `json:"type"`
	ProtocolVersion string           `json:"protocol_version"`
	ObserverID      string           `json:"observer_id"`
	Params          RestaurantParams `json:"restaurant_params"`
}

type RestaurantParams struct {
	RestaurantID string `json:"restaurant_id"`
	TickRateHz   int    `json:"tick_rate_hz"`
	FloorSize    [2]int `json:"floor_size"`
	Seed         int64  `json:"seed"`
	Tables       int    `json:"tables"`
	Stations     int    `json:"stations"`
	MenuDigest   string `json:"menu_digest"`
}
