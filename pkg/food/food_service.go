package food

import (
	"context"
	"slices"
	"sort"
	"strings"
	"time"

	"Pantry-Tracker/domain"
	"Pantry-Tracker/entities"
	"Pantry-Tracker/internal/utils/clock"
	"Pantry-Tracker/pkg/cascade"
	"Pantry-Tracker/pkg/store"
)

type (
	FoodService interface {
		CreateFoodItem(ctx context.Context, req domain.CreateFoodItemRequest) (domain.FoodItemResponse, error)
		UpdateFoodItem(ctx context.Context, id uint, req domain.UpdateFoodItemRequest) (domain.FoodItemResponse, error)
		DeleteFoodItem(ctx context.Context, id uint) error
		GetFoodItems(ctx context.Context, filter domain.FoodItemFilter) ([]domain.FoodItemResponse, error)
		GetFoodItemByID(ctx context.Context, id uint) (domain.FoodItemResponse, error)
		ConsumeFoodItem(ctx context.Context, id uint, amount int) (domain.FoodItemResponse, error)
		GetDashboardStats(ctx context.Context) (domain.DashboardStatsResponse, error)
	}

	foodService struct {
		repo       store.Repository
		dispatcher cascade.Dispatcher
		clock      clock.Clock
		loc        *time.Location
	}
)

func NewFoodService(repo store.Repository, dispatcher cascade.Dispatcher, c clock.Clock, loc *time.Location) FoodService {
	return &foodService{
		repo:       repo,
		dispatcher: dispatcher,
		clock:      c,
		loc:        loc,
	}
}

func (s *foodService) CreateFoodItem(ctx context.Context, req domain.CreateFoodItemRequest) (domain.FoodItemResponse, error) {
	expirationDate, err := ParseDate(req.ExpirationDate)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	item := &entities.FoodItem{
		Name:                 req.Name,
		Unit:                 req.Unit,
		Category:             req.Category,
		ExpirationDate:       expirationDate,
		AutoConsume:          req.AutoConsume,
		DailyConsumptionUnit: req.DailyConsumptionUnit,
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.DailyConsumptionAmount != nil {
		item.DailyConsumptionAmount = *req.DailyConsumptionAmount
	}

	now := s.clock.Now()
	var created []entities.Notification
	err = s.repo.WithTx(ctx, func(tx store.Repository) error {
		events, err := Insert(ctx, tx, item, now, s.loc)
		if err != nil {
			return err
		}
		created, err = s.dispatcher.Dispatch(ctx, tx, events)
		return err
	})
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	s.dispatcher.Publish(ctx, created)
	return s.toResponse(item, now), nil
}

// UpdateFoodItem merges the non-nil fields of req. Edits never raise
// notifications or cart entries, including a quantity edit to zero.
func (s *foodService) UpdateFoodItem(ctx context.Context, id uint, req domain.UpdateFoodItemRequest) (domain.FoodItemResponse, error) {
	var expirationDate *time.Time
	if req.ExpirationDate != nil {
		date, err := ParseDate(*req.ExpirationDate)
		if err != nil {
			return domain.FoodItemResponse{}, err
		}
		expirationDate = &date
	}

	now := s.clock.Now()
	var updated *entities.FoodItem
	err := s.repo.WithTx(ctx, func(tx store.Repository) error {
		item, err := tx.GetFoodItem(ctx, id)
		if err != nil {
			return err
		}

		if req.Name != nil {
			item.Name = *req.Name
		}
		if req.Quantity != nil {
			item.Quantity = *req.Quantity
		}
		if req.Unit != nil {
			item.Unit = *req.Unit
		}
		if req.Category != nil {
			item.Category = *req.Category
		}
		if expirationDate != nil {
			item.ExpirationDate = *expirationDate
		}
		if req.AutoConsume != nil {
			item.AutoConsume = *req.AutoConsume
		}
		if req.DailyConsumptionAmount != nil {
			item.DailyConsumptionAmount = *req.DailyConsumptionAmount
		}
		if req.DailyConsumptionUnit != nil {
			item.DailyConsumptionUnit = *req.DailyConsumptionUnit
		}
		item.UpdatedAt = now

		if err := tx.SaveFoodItem(ctx, item); err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return domain.FoodItemResponse{}, err
	}
	return s.toResponse(updated, now), nil
}

func (s *foodService) DeleteFoodItem(ctx context.Context, id uint) error {
	return s.repo.WithTx(ctx, func(tx store.Repository) error {
		return tx.DeleteFoodItem(ctx, id)
	})
}

func (s *foodService) GetFoodItems(ctx context.Context, filter domain.FoodItemFilter) ([]domain.FoodItemResponse, error) {
	less, err := sortFunc(filter.Sort)
	if err != nil {
		return nil, err
	}
	if filter.Category != "" && filter.Category != "all" && !slices.Contains(domain.Categories, filter.Category) {
		return nil, domain.ErrInvalidCategory
	}

	items, err := s.repo.ListFoodItems(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	matched := make([]entities.FoodItem, 0, len(items))
	for _, item := range items {
		if search != "" && !strings.Contains(strings.ToLower(item.Name), search) {
			continue
		}
		if filter.Category != "" && filter.Category != "all" && item.Category != filter.Category {
			continue
		}
		matched = append(matched, item)
	}
	sort.SliceStable(matched, func(i, j int) bool { return less(&matched[i], &matched[j]) })

	now := s.clock.Now()
	res := make([]domain.FoodItemResponse, 0, len(matched))
	for i := range matched {
		res = append(res, s.toResponse(&matched[i], now))
	}
	return res, nil
}

func (s *foodService) GetFoodItemByID(ctx context.Context, id uint) (domain.FoodItemResponse, error) {
	item, err := s.repo.GetFoodItem(ctx, id)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}
	return s.toResponse(item, s.clock.Now()), nil
}

func (s *foodService) ConsumeFoodItem(ctx context.Context, id uint, amount int) (domain.FoodItemResponse, error) {
	if amount <= 0 {
		return domain.FoodItemResponse{}, domain.ErrInvalidAmount
	}

	now := s.clock.Now()
	var (
		consumed *entities.FoodItem
		created  []entities.Notification
	)
	err := s.repo.WithTx(ctx, func(tx store.Repository) error {
		item, events, err := Consume(ctx, tx, id, amount, now)
		if err != nil {
			return err
		}
		consumed = item
		created, err = s.dispatcher.Dispatch(ctx, tx, events)
		return err
	})
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	s.dispatcher.Publish(ctx, created)
	return s.toResponse(consumed, now), nil
}

func (s *foodService) GetDashboardStats(ctx context.Context) (domain.DashboardStatsResponse, error) {
	items, err := s.repo.ListFoodItems(ctx)
	if err != nil {
		return domain.DashboardStatsResponse{}, err
	}
	notifications, err := s.repo.ListNotifications(ctx)
	if err != nil {
		return domain.DashboardStatsResponse{}, err
	}

	now := s.clock.Now()
	stats := domain.DashboardStatsResponse{TotalItems: len(items)}
	for i := range items {
		days := clock.DaysBetween(now, ExpirationInstant(items[i].ExpirationDate, s.loc), s.loc)
		switch {
		case days < 0:
			stats.ExpiredItems++
		case days <= domain.ExpirationWarningDays:
			stats.ExpiringItems++
		}
		if items[i].Depleted() {
			stats.DepletedItems++
		}
		if items[i].Eligible() {
			stats.AutoConsumeItems++
		}
	}
	for _, n := range notifications {
		if !n.IsRead {
			stats.UnreadNotifications++
		}
	}
	return stats, nil
}

func (s *foodService) toResponse(item *entities.FoodItem, now time.Time) domain.FoodItemResponse {
	return domain.FoodItemResponse{
		ID:                     item.ID,
		Name:                   item.Name,
		Quantity:               item.Quantity,
		Unit:                   item.Unit,
		Category:               item.Category,
		ExpirationDate:         item.ExpirationDate.Format(domain.DateLayout),
		AutoConsume:            item.AutoConsume,
		DailyConsumptionAmount: item.DailyConsumptionAmount,
		DailyConsumptionUnit:   item.DailyConsumptionUnit,
		DaysUntilExpiration:    clock.DaysBetween(now, ExpirationInstant(item.ExpirationDate, s.loc), s.loc),
		Depleted:               item.Depleted(),
		CreatedAt:              item.CreatedAt,
	}
}

func sortFunc(by string) (func(a, b *entities.FoodItem) bool, error) {
	switch by {
	case "", domain.SortByExpiration:
		return func(a, b *entities.FoodItem) bool {
			if !a.ExpirationDate.Equal(b.ExpirationDate) {
				return a.ExpirationDate.Before(b.ExpirationDate)
			}
			return a.ID < b.ID
		}, nil
	case domain.SortByRecent:
		return func(a, b *entities.FoodItem) bool {
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.ID > b.ID
		}, nil
	case domain.SortByName:
		return func(a, b *entities.FoodItem) bool {
			an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
			if an != bn {
				return an < bn
			}
			return a.ID < b.ID
		}, nil
	default:
		return nil, domain.ErrInvalidSort
	}
}

