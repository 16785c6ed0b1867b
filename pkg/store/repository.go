package store

import (
	"context"

	"Pantry-Tracker/entities"
)

// Repository owns the food item, notification and shopping cart
// collections. Ids are assigned per collection, increase monotonically and
// are never reused. Lookups and deletes of absent ids return the matching
// domain NotFound error.
type Repository interface {
	ListFoodItems(ctx context.Context) ([]entities.FoodItem, error)
	GetFoodItem(ctx context.Context, id uint) (*entities.FoodItem, error)
	CreateFoodItem(ctx context.Context, item *entities.FoodItem) error
	SaveFoodItem(ctx context.Context, item *entities.FoodItem) error
	DeleteFoodItem(ctx context.Context, id uint) error

	// ListNotifications returns newest first; equal timestamps fall back to
	// descending id.
	ListNotifications(ctx context.Context) ([]entities.Notification, error)
	GetNotification(ctx context.Context, id uint) (*entities.Notification, error)
	CreateNotification(ctx context.Context, notification *entities.Notification) error
	SaveNotification(ctx context.Context, notification *entities.Notification) error

	ListCartItems(ctx context.Context) ([]entities.ShoppingCartItem, error)
	CreateCartItem(ctx context.Context, item *entities.ShoppingCartItem) error
	DeleteCartItem(ctx context.Context, id uint) error

	// WithTx runs fn with exclusive access to all three collections. If fn
	// returns an error every write made through tx is discarded.
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
