package entities

import "time"

// ConsumptionMarker records the last calendar day a job completed.
type ConsumptionMarker struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Day       string    `gorm:"not null" json:"day"`
	UpdatedAt time.Time `json:"updated_at"`
}
