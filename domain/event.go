package domain

type EventType string

const (
	EventExpiringSoon EventType = "expiring_soon"
	EventDepleted     EventType = "depleted"
	EventAutoConsumed EventType = "auto_consumed"
)

// Event is a side effect requested by a food item mutation. Mutations return
// events instead of performing the side effects; a dispatcher applies them.
type Event struct {
	Type       EventType
	FoodItemID uint
	Name       string
	Unit       string
	DaysLeft   int
	Amount     int
}
