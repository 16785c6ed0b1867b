package domain

import "time"

const (
	// PolicyHeadOnly consumes from the earliest-expiring stocked item of a
	// group and stops, even if that item could not cover the daily amount.
	PolicyHeadOnly = "head_only"
	// PolicyCarryOver moves the unmet remainder to the next item of the group.
	PolicyCarryOver = "carry_over"

	AutoConsumptionMarkerKey = "auto_consumption"
)

var (
	MessageSuccessProcessAutoConsumption = "automatic consumption processed"
	MessageSuccessTriggerAutoConsumption = "automatic consumption trigger handled"
	MessageSuccessGetTriggerStatus       = "automatic consumption status retrieved"

	MessageFailedProcessAutoConsumption = "failed to process automatic consumption"
	MessageFailedGetTriggerStatus       = "failed to retrieve automatic consumption status"
)

type (
	Consumption struct {
		FoodItemID uint   `json:"food_item_id"`
		Name       string `json:"name"`
		Amount     int    `json:"amount"`
		Unit       string `json:"unit"`
		Depleted   bool   `json:"depleted"`
	}

	ConsumptionReport struct {
		RunID        string        `json:"run_id"`
		Policy       string        `json:"policy"`
		Groups       int           `json:"groups"`
		Consumptions []Consumption `json:"consumptions"`
		Skipped      []uint        `json:"skipped,omitempty"`
		ProcessedAt  time.Time     `json:"processed_at"`
	}

	TriggerResult struct {
		Ran    bool               `json:"ran"`
		Day    string             `json:"day"`
		Report *ConsumptionReport `json:"report,omitempty"`
	}

	TriggerStatusResponse struct {
		Today            string `json:"today"`
		LastProcessedDay string `json:"last_processed_day"`
		ProcessedToday   bool   `json:"processed_today"`
	}
)
