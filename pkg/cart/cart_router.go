package cart

import (
	"context"

	"Pantry-Tracker/domain"
	"Pantry-Tracker/entities"
	"Pantry-Tracker/internal/utils/clock"
	"Pantry-Tracker/pkg/store"
)

type (
	// Router appends shopping cart entries. Entries are never merged, so two
	// depletions of the same product yield two lines.
	Router interface {
		Add(ctx context.Context, repo store.Repository, name string, quantity int, unit string) (*entities.ShoppingCartItem, error)
		RouteDepleted(ctx context.Context, repo store.Repository, event domain.Event) (*entities.ShoppingCartItem, error)
	}

	router struct {
		clock clock.Clock
	}
)

func NewRouter(c clock.Clock) Router {
	return &router{clock: c}
}

func (r *router) Add(ctx context.Context, repo store.Repository, name string, quantity int, unit string) (*entities.ShoppingCartItem, error) {
	item := &entities.ShoppingCartItem{
		Name:     name,
		Quantity: quantity,
		Unit:     unit,
		AddedAt:  r.clock.Now(),
	}
	if err := repo.CreateCartItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (r *router) RouteDepleted(ctx context.Context, repo store.Repository, event domain.Event) (*entities.ShoppingCartItem, error) {
	return r.Add(ctx, repo, event.Name, domain.DepletedRestockQuantity, event.Unit)
}
