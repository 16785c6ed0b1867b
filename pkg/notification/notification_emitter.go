package notification

import (
	"context"
	"fmt"

	"Pantry-Tracker/entities"
	"Pantry-Tracker/internal/utils/clock"
	"Pantry-Tracker/pkg/store"
)

type (
	// Emitter is the single place notifications are created. It always
	// writes through the repository it is given so the caller's
	// transaction covers the insert.
	Emitter interface {
		Emit(ctx context.Context, repo store.Repository, foodItemID *uint, notificationType, message string) (*entities.Notification, error)
	}

	emitter struct {
		clock clock.Clock
	}
)

func NewEmitter(c clock.Clock) Emitter {
	return &emitter{clock: c}
}

func (e *emitter) Emit(ctx context.Context, repo store.Repository, foodItemID *uint, notificationType, message string) (*entities.Notification, error) {
	n := &entities.Notification{
		FoodItemID: foodItemID,
		Type:       notificationType,
		Message:    message,
		IsRead:     false,
		CreatedAt:  e.clock.Now(),
	}
	if err := repo.CreateNotification(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func ExpirationMessage(name string, daysLeft int) string {
	switch {
	case daysLeft < 0:
		return fmt.Sprintf("%s expired %d day(s) ago.", name, -daysLeft)
	case daysLeft == 0:
		return fmt.Sprintf("%s expires today.", name)
	default:
		return fmt.Sprintf("%s expires in %d day(s).", name, daysLeft)
	}
}

func DepletedMessage(name string) string {
	return fmt.Sprintf("%s has run out and was added to the shopping cart.", name)
}

func AutoConsumedMessage(name string, amount int, unit string) string {
	return fmt.Sprintf("%d %s of %s was consumed automatically.", amount, unit, name)
}
