package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	TickRateHz int `yaml:"tick_rate_hz"`

	FloorWidth  int `yaml:"floor_width"`
	FloorHeight int `yaml:"floor_height"`

	Tables        int `yaml:"tables"`
	TableCapacity int `yaml:"table_capacity"`
	Waiters       int `yaml:"waiters"`
	Chefs         int `yaml:"chefs"`

	PatienceSeconds      int `yaml:"patience_seconds"`
	OrderShowSeconds     int `yaml:"order_show_seconds"`
	EatSeconds           int `yaml:"eat_seconds"`
	PickupTimeoutSeconds int `yaml:"pickup_timeout_seconds"`
	CookAbandonSeconds   int `yaml:"cook_abandon_seconds"`
	OrphanSweepSeconds   int `yaml:"orphan_sweep_seconds"`
	SpeedGraceSeconds    int `yaml:"speed_grace_seconds"`
	ShiftMinutes         int `yaml:"shift_minutes"`

	SeatFailPenalty  float64 `yaml:"seat_fail_penalty"`
	WrongFoodPenalty float64 `yaml:"wrong_food_penalty"`
	DeliveryBonus    float64 `yaml:"delivery_bonus"`

	ArrivalEverySeconds int `yaml:"arrival_every_seconds"`
}

func Load(path string) (Tuning, error) {
	var t Tuning
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

func Defaults() Tuning {
	return Tuning{
		TickRateHz:           5,
		FloorWidth:           40,
		FloorHeight:          24,
		Tables:               6,
		TableCapacity:        2,
		Waiters:              2,
		Chefs:                2,
		PatienceSeconds:      120,
		OrderShowSeconds:     3,
		EatSeconds:           30,
		PickupTimeoutSeconds: 30,
		CookAbandonSeconds:   90,
		OrphanSweepSeconds:   5,
		SpeedGraceSeconds:    10,
		ShiftMinutes:         20,
		SeatFailPenalty:      25,
		WrongFoodPenalty:     15,
		DeliveryBonus:        5,
		ArrivalEverySeconds:  20,
	}
}
