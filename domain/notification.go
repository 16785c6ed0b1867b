package domain

import (
	"errors"
	"time"
)

const (
	NotificationTypeExpiration   = "expiration"
	NotificationTypeAutoConsumed = "auto_consumed"
	NotificationTypeDepleted     = "depleted"
)

var (
	MessageSuccessGetNotifications = "notifications retrieved successfully"
	MessageSuccessMarkAsRead       = "notification marked as read"

	MessageFailedGetNotifications = "failed to retrieve notifications"
	MessageFailedMarkAsRead       = "failed to mark notification as read"

	ErrNotificationNotFound = errors.New("notification not found")
)

type NotificationResponse struct {
	ID         uint      `json:"id"`
	FoodItemID *uint     `json:"food_item_id"`
	Type       string    `json:"type"`
	Message    string    `json:"message"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}
