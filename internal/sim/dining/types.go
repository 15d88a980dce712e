package dining

import "dinercraft/internal/sim/tasks"

type Vec2i struct{ X, Y int }

func Manhattan(a, b Vec2i) int {
	return absInt(a.X-b.X) + absInt(a.Y-b.Y)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func v2FromTask(v tasks.Vec2i) Vec2i { return Vec2i{X: v.X, Y: v.Y} }
func v2ToTask(v Vec2i) tasks.Vec2i   { return tasks.Vec2i{X: v.X, Y: v.Y} }

// mover is the shared movement state for customers, waiters and chefs.
// Navigation is a black box from the FSMs' point of view: they request a
// target and observe completion (Move == nil) on a later tick.
type mover struct {
	Pos  Vec2i
	Move *tasks.MovementTask
}

func (m *mover) moving() bool { return m.Move != nil }

type CustomerState string

const (
	CustomerEntering         CustomerState = "ENTERING"
	CustomerWaitingForWaiter CustomerState = "WAITING_FOR_WAITER"
	CustomerOrdering         CustomerState = "ORDERING"
	CustomerWaitingForFood   CustomerState = "WAITING_FOR_FOOD"
	CustomerEating           CustomerState = "EATING"
	CustomerStandingUp       CustomerState = "STANDING_UP"
	CustomerLeaving          CustomerState = "LEAVING"
	CustomerLeft             CustomerState = "LEFT"
)

type WaiterState string

const (
	WaiterIdle             WaiterState = "IDLE"
	WaiterMovingToTable    WaiterState = "MOVING_TO_TABLE"
	WaiterMovingToCounter  WaiterState = "MOVING_TO_COUNTER"
	WaiterWaitingForPickup WaiterState = "WAITING_FOR_PICKUP"
	WaiterDelivering       WaiterState = "DELIVERING_FOOD"
	WaiterReturningFood    WaiterState = "RETURNING_FOOD"
)

type ChefState string

const (
	ChefIdle              ChefState = "IDLE"
	ChefMovingToStation   ChefState = "MOVING_TO_STATION"
	ChefWaitingForCooking ChefState = "WAITING_FOR_COOKING"
	ChefMovingToCounter   ChefState = "MOVING_TO_COUNTER"
)

type CookState string

const (
	FoodRaw     CookState = "RAW"
	FoodCooking CookState = "COOKING"
	FoodCooked  CookState = "COOKED"
	FoodBurnt   CookState = "BURNT"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderCooking    OrderStatus = "COOKING"
	OrderReady      OrderStatus = "READY"
	OrderDelivering OrderStatus = "DELIVERING"
)
