package entities

import "time"

type FoodItem struct {
	ID                     uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name                   string    `gorm:"not null;index" json:"name"`
	Quantity               int       `gorm:"not null;check:quantity >= 0" json:"quantity"`
	Unit                   string    `gorm:"not null" json:"unit"`
	Category               string    `gorm:"not null" json:"category"`
	ExpirationDate         time.Time `gorm:"type:date;not null" json:"expiration_date"`
	AutoConsume            bool      `gorm:"default:false" json:"auto_consume"`
	DailyConsumptionAmount int       `gorm:"default:0" json:"daily_consumption_amount"`
	DailyConsumptionUnit   string    `gorm:"not null" json:"daily_consumption_unit"`

	Timestamp
}

func (f *FoodItem) Depleted() bool {
	return f.Quantity == 0
}

// Eligible reports whether the item takes part in automatic consumption.
func (f *FoodItem) Eligible() bool {
	return f.AutoConsume && f.DailyConsumptionAmount > 0
}
