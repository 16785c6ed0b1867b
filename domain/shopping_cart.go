package domain

import (
	"errors"
	"time"
)

// DepletedRestockQuantity is the quantity put on the shopping list when an
// item runs out, regardless of how much was on hand before.
const DepletedRestockQuantity = 1

var (
	MessageSuccessGetShoppingCart   = "shopping cart retrieved successfully"
	MessageSuccessAddToShoppingCart = "item added to shopping cart"
	MessageSuccessRemoveFromCart    = "item removed from shopping cart"

	MessageFailedGetShoppingCart   = "failed to retrieve shopping cart"
	MessageFailedAddToShoppingCart = "failed to add item to shopping cart"
	MessageFailedRemoveFromCart    = "failed to remove item from shopping cart"

	ErrCartItemNotFound = errors.New("shopping cart item not found")
)

type (
	AddToShoppingCartRequest struct {
		Name     string `json:"name" validate:"required,notblank"`
		Quantity int    `json:"quantity" validate:"required,min=1"`
		Unit     string `json:"unit" validate:"required,oneof=piece gram kilogram milliliter liter serving"`
	}

	ShoppingCartItemResponse struct {
		ID       uint      `json:"id"`
		Name     string    `json:"name"`
		Quantity int       `json:"quantity"`
		Unit     string    `json:"unit"`
		AddedAt  time.Time `json:"added_at"`
	}
)
