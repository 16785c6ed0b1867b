package entities

import "time"

type Notification struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FoodItemID *uint     `gorm:"index" json:"food_item_id"`
	Type       string    `gorm:"not null" json:"type"`
	Message    string    `gorm:"not null" json:"message"`
	IsRead     bool      `gorm:"default:false" json:"is_read"`
	CreatedAt  time.Time `gorm:"not null;index" json:"created_at"`
}
