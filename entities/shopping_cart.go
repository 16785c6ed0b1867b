package entities

import "time"

type ShoppingCartItem struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string    `gorm:"not null" json:"name"`
	Quantity int       `gorm:"not null" json:"quantity"`
	Unit     string    `gorm:"not null" json:"unit"`
	AddedAt  time.Time `gorm:"not null" json:"added_at"`
}
