package cascade

import (
	"context"
	"fmt"

	"Pantry-Tracker/domain"
	"Pantry-Tracker/entities"
	"Pantry-Tracker/pkg/cart"
	"Pantry-Tracker/pkg/notification"
	"Pantry-Tracker/pkg/store"

	"github.com/gofiber/fiber/v2/log"
)

type (
	// Notifier forwards committed notifications outside the process.
	Notifier interface {
		Notify(ctx context.Context, n entities.Notification) error
	}

	Dispatcher interface {
		// Dispatch applies events in order through repo, which is expected to
		// be the caller's transaction. It returns the notifications created.
		Dispatch(ctx context.Context, repo store.Repository, events []domain.Event) ([]entities.Notification, error)
		// Publish hands committed notifications to every notifier. Notifier
		// failures are logged and never returned.
		Publish(ctx context.Context, notifications []entities.Notification)
	}

	dispatcher struct {
		emitter   notification.Emitter
		router    cart.Router
		notifiers []Notifier
	}
)

func NewDispatcher(emitter notification.Emitter, router cart.Router, notifiers ...Notifier) Dispatcher {
	return &dispatcher{
		emitter:   emitter,
		router:    router,
		notifiers: notifiers,
	}
}

func (d *dispatcher) Dispatch(ctx context.Context, repo store.Repository, events []domain.Event) ([]entities.Notification, error) {
	var created []entities.Notification
	for _, ev := range events {
		id := ev.FoodItemID

		var (
			n   *entities.Notification
			err error
		)
		switch ev.Type {
		case domain.EventExpiringSoon:
			n, err = d.emitter.Emit(ctx, repo, &id, domain.NotificationTypeExpiration,
				notification.ExpirationMessage(ev.Name, ev.DaysLeft))
		case domain.EventDepleted:
			n, err = d.emitter.Emit(ctx, repo, &id, domain.NotificationTypeDepleted,
				notification.DepletedMessage(ev.Name))
			if err == nil {
				_, err = d.router.RouteDepleted(ctx, repo, ev)
			}
		case domain.EventAutoConsumed:
			n, err = d.emitter.Emit(ctx, repo, &id, domain.NotificationTypeAutoConsumed,
				notification.AutoConsumedMessage(ev.Name, ev.Amount, ev.Unit))
		default:
			err = fmt.Errorf("unknown event type %q", ev.Type)
		}
		if err != nil {
			return nil, fmt.Errorf("dispatch %s for food item %d: %w", ev.Type, ev.FoodItemID, err)
		}
		created = append(created, *n)
	}
	return created, nil
}

func (d *dispatcher) Publish(ctx context.Context, notifications []entities.Notification) {
	for _, n := range notifications {
		for _, notifier := range d.notifiers {
			if err := notifier.Notify(ctx, n); err != nil {
				log.Errorw("notifier failed", "notification_id", n.ID, "type", n.Type, "error", err)
			}
		}
	}
}
