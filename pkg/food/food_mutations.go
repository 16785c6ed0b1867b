package food

import (
	"context"
	"math"
	"time"

	"Pantry-Tracker/domain"
	"Pantry-Tracker/entities"
	"Pantry-Tracker/pkg/store"
)

// Insert stores item and reports an expiring-soon event when the expiration
// date is at most domain.ExpirationWarningDays away.
func Insert(ctx context.Context, repo store.Repository, item *entities.FoodItem, now time.Time, loc *time.Location) ([]domain.Event, error) {
	item.CreatedAt = now
	item.UpdatedAt = now
	if err := repo.CreateFoodItem(ctx, item); err != nil {
		return nil, err
	}

	days := DaysUntilExpiration(item.ExpirationDate, now, loc)
	if days > domain.ExpirationWarningDays {
		return nil, nil
	}
	return []domain.Event{{
		Type:       domain.EventExpiringSoon,
		FoodItemID: item.ID,
		Name:       item.Name,
		Unit:       item.Unit,
		DaysLeft:   days,
	}}, nil
}

// Consume lowers the stored quantity by amount, flooring at zero. A
// depleted event is reported only when this call moves the quantity from
// positive to zero.
func Consume(ctx context.Context, repo store.Repository, id uint, amount int, now time.Time) (*entities.FoodItem, []domain.Event, error) {
	item, err := repo.GetFoodItem(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	prior := item.Quantity
	item.Quantity = max(0, prior-amount)
	item.UpdatedAt = now
	if err := repo.SaveFoodItem(ctx, item); err != nil {
		return nil, nil, err
	}

	if prior == 0 || item.Quantity != 0 {
		return item, nil, nil
	}
	return item, []domain.Event{{
		Type:       domain.EventDepleted,
		FoodItemID: item.ID,
		Name:       item.Name,
		Unit:       item.Unit,
	}}, nil
}

// DaysUntilExpiration is ceil((expiration midnight in loc - now) / 24h).
func DaysUntilExpiration(expiration, now time.Time, loc *time.Location) int {
	remaining := ExpirationInstant(expiration, loc).Sub(now)
	return int(math.Ceil(remaining.Hours() / 24))
}

// ExpirationInstant places the stored calendar date at midnight in loc.
// Dates are stored as UTC midnight, so only the date fields are read.
func ExpirationInstant(expiration time.Time, loc *time.Location) time.Time {
	y, m, d := expiration.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func ParseDate(value string) (time.Time, error) {
	date, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return time.Time{}, domain.ErrInvalidExpiryDate
	}
	return date, nil
}
