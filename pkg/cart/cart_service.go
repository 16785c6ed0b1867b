package cart

import (
	"context"

	"Pantry-Tracker/domain"
	"Pantry-Tracker/entities"
	"Pantry-Tracker/pkg/store"
)

type (
	CartService interface {
		GetShoppingCartItems(ctx context.Context) ([]domain.ShoppingCartItemResponse, error)
		AddToShoppingCart(ctx context.Context, req domain.AddToShoppingCartRequest) (domain.ShoppingCartItemResponse, error)
		RemoveFromShoppingCart(ctx context.Context, id uint) error
	}

	cartService struct {
		repo   store.Repository
		router Router
	}
)

func NewCartService(repo store.Repository, router Router) CartService {
	return &cartService{
		repo:   repo,
		router: router,
	}
}

func (s *cartService) GetShoppingCartItems(ctx context.Context) ([]domain.ShoppingCartItemResponse, error) {
	items, err := s.repo.ListCartItems(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]domain.ShoppingCartItemResponse, 0, len(items))
	for i := range items {
		res = append(res, toResponse(&items[i]))
	}
	return res, nil
}

func (s *cartService) AddToShoppingCart(ctx context.Context, req domain.AddToShoppingCartRequest) (domain.ShoppingCartItemResponse, error) {
	var added *entities.ShoppingCartItem
	err := s.repo.WithTx(ctx, func(tx store.Repository) error {
		item, err := s.router.Add(ctx, tx, req.Name, req.Quantity, req.Unit)
		added = item
		return err
	})
	if err != nil {
		return domain.ShoppingCartItemResponse{}, err
	}
	return toResponse(added), nil
}

func (s *cartService) RemoveFromShoppingCart(ctx context.Context, id uint) error {
	return s.repo.WithTx(ctx, func(tx store.Repository) error {
		return tx.DeleteCartItem(ctx, id)
	})
}

func toResponse(item *entities.ShoppingCartItem) domain.ShoppingCartItemResponse {
	return domain.ShoppingCartItemResponse{
		ID:       item.ID,
		Name:     item.Name,
		Quantity: item.Quantity,
		Unit:     item.Unit,
		AddedAt:  item.AddedAt,
	}
}
