package domain

import (
	"errors"
	"time"
)

const (
	UnitPiece      = "piece"
	UnitGram       = "gram"
	UnitKilogram   = "kilogram"
	UnitMilliliter = "milliliter"
	UnitLiter      = "liter"
	UnitServing    = "serving"

	CategoryRefrigerated     = "refrigerated"
	CategoryFrozen           = "frozen"
	CategoryFruitsVegetables = "fruits_vegetables"
	CategoryMeat             = "meat"
	CategoryDairy            = "dairy"
	CategoryOther            = "other"

	SortByExpiration = "expiration"
	SortByRecent     = "recent"
	SortByName       = "name"

	DateLayout = "2006-01-02"

	// ExpirationWarningDays is the inclusive day count at which a new item
	// raises an expiration notification.
	ExpirationWarningDays = 3
)

var (
	MessageSuccessAddFoodItem       = "food item added successfully"
	MessageSuccessUpdateFoodItem    = "food item updated successfully"
	MessageSuccessDeleteFoodItem    = "food item deleted successfully"
	MessageSuccessGetFoodItems      = "food items retrieved successfully"
	MessageSuccessConsumeFoodItem   = "food item consumed successfully"
	MessageSuccessGetDashboardStats = "dashboard statistics retrieved successfully"

	MessageFailedAddFoodItem       = "failed to add food item"
	MessageFailedUpdateFoodItem    = "failed to update food item"
	MessageFailedDeleteFoodItem    = "failed to delete food item"
	MessageFailedGetFoodItems      = "failed to retrieve food items"
	MessageFailedConsumeFoodItem   = "failed to consume food item"
	MessageFailedGetDashboardStats = "failed to retrieve dashboard statistics"

	ErrFoodItemNotFound  = errors.New("food item not found")
	ErrInvalidExpiryDate = errors.New("invalid expiration date")
	ErrInvalidAmount     = errors.New("amount must be a positive number")
	ErrInvalidSort       = errors.New("sort must be one of expiration, recent, name")
	ErrInvalidCategory   = errors.New("unknown category")

	Units      = []string{UnitPiece, UnitGram, UnitKilogram, UnitMilliliter, UnitLiter, UnitServing}
	Categories = []string{CategoryRefrigerated, CategoryFrozen, CategoryFruitsVegetables, CategoryMeat, CategoryDairy, CategoryOther}
)

type (
	CreateFoodItemRequest struct {
		Name                   string `json:"name" validate:"required,notblank"`
		Quantity               *int   `json:"quantity" validate:"required,min=0"`
		Unit                   string `json:"unit" validate:"required,oneof=piece gram kilogram milliliter liter serving"`
		Category               string `json:"category" validate:"required,oneof=refrigerated frozen fruits_vegetables meat dairy other"`
		ExpirationDate         string `json:"expiration_date" validate:"required,datetime=2006-01-02,today_or_later"`
		AutoConsume            bool   `json:"auto_consume"`
		DailyConsumptionAmount *int   `json:"daily_consumption_amount" validate:"omitempty,min=0"`
		DailyConsumptionUnit   string `json:"daily_consumption_unit" validate:"required,oneof=piece gram kilogram milliliter liter serving"`
	}

	// UpdateFoodItemRequest is a partial merge: nil fields are left untouched.
	UpdateFoodItemRequest struct {
		Name                   *string `json:"name" validate:"omitempty,notblank"`
		Quantity               *int    `json:"quantity" validate:"omitempty,min=0"`
		Unit                   *string `json:"unit" validate:"omitempty,oneof=piece gram kilogram milliliter liter serving"`
		Category               *string `json:"category" validate:"omitempty,oneof=refrigerated frozen fruits_vegetables meat dairy other"`
		ExpirationDate         *string `json:"expiration_date" validate:"omitempty,datetime=2006-01-02,today_or_later"`
		AutoConsume            *bool   `json:"auto_consume"`
		DailyConsumptionAmount *int    `json:"daily_consumption_amount" validate:"omitempty,min=0"`
		DailyConsumptionUnit   *string `json:"daily_consumption_unit" validate:"omitempty,oneof=piece gram kilogram milliliter liter serving"`
	}

	ConsumeFoodItemRequest struct {
		Amount *int `json:"amount"`
	}

	FoodItemFilter struct {
		Search   string
		Category string
		Sort     string
	}

	FoodItemResponse struct {
		ID                     uint      `json:"id"`
		Name                   string    `json:"name"`
		Quantity               int       `json:"quantity"`
		Unit                   string    `json:"unit"`
		Category               string    `json:"category"`
		ExpirationDate         string    `json:"expiration_date"`
		AutoConsume            bool      `json:"auto_consume"`
		DailyConsumptionAmount int       `json:"daily_consumption_amount"`
		DailyConsumptionUnit   string    `json:"daily_consumption_unit"`
		DaysUntilExpiration    int       `json:"days_until_expiration"`
		Depleted               bool      `json:"depleted"`
		CreatedAt              time.Time `json:"created_at"`
	}

	DashboardStatsResponse struct {
		TotalItems          int `json:"total_items"`
		ExpiringItems       int `json:"expiring_items"`
		ExpiredItems        int `json:"expired_items"`
		DepletedItems       int `json:"depleted_items"`
		AutoConsumeItems    int `json:"auto_consume_items"`
		UnreadNotifications int `json:"unread_notifications"`
	}
)
