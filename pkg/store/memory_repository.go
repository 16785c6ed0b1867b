package store

import (
	"context"
	"maps"
	"sort"
	"sync"

	"Pantry-Tracker/domain"
	"Pantry-Tracker/entities"
)

type (
	memoryRepository struct {
		mu    sync.Mutex
		state *memoryState
	}

	// memoryTx is the view handed to WithTx callbacks. The repository mutex
	// is already held, so it touches state directly.
	memoryTx struct {
		state *memoryState
	}

	memoryState struct {
		foodItems     map[uint]entities.FoodItem
		notifications map[uint]entities.Notification
		cartItems     map[uint]entities.ShoppingCartItem

		lastFoodItemID     uint
		lastNotificationID uint
		lastCartItemID     uint
	}
)

func NewMemoryRepository() Repository {
	return &memoryRepository{
		state: &memoryState{
			foodItems:     map[uint]entities.FoodItem{},
			notifications: map[uint]entities.Notification{},
			cartItems:     map[uint]entities.ShoppingCartItem{},
		},
	}
}

func (r *memoryRepository) WithTx(ctx context.Context, fn func(tx Repository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	foodItems := maps.Clone(r.state.foodItems)
	notifications := maps.Clone(r.state.notifications)
	cartItems := maps.Clone(r.state.cartItems)

	if err := fn(&memoryTx{state: r.state}); err != nil {
		// id counters stay where they are so rolled back ids are not reused
		r.state.foodItems = foodItems
		r.state.notifications = notifications
		r.state.cartItems = cartItems
		return err
	}
	return nil
}

func (r *memoryRepository) locked(fn func(s *memoryState) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.state)
}

func (r *memoryRepository) ListFoodItems(ctx context.Context) (items []entities.FoodItem, err error) {
	err = r.locked(func(s *memoryState) error {
		items = s.listFoodItems()
		return nil
	})
	return items, err
}

func (r *memoryRepository) GetFoodItem(ctx context.Context, id uint) (item *entities.FoodItem, err error) {
	err = r.locked(func(s *memoryState) error {
		item, err = s.getFoodItem(id)
		return err
	})
	return item, err
}

func (r *memoryRepository) CreateFoodItem(ctx context.Context, item *entities.FoodItem) error {
	return r.locked(func(s *memoryState) error { return s.createFoodItem(item) })
}

func (r *memoryRepository) SaveFoodItem(ctx context.Context, item *entities.FoodItem) error {
	return r.locked(func(s *memoryState) error { return s.saveFoodItem(item) })
}

func (r *memoryRepository) DeleteFoodItem(ctx context.Context, id uint) error {
	return r.locked(func(s *memoryState) error { return s.deleteFoodItem(id) })
}

func (r *memoryRepository) ListNotifications(ctx context.Context) (items []entities.Notification, err error) {
	err = r.locked(func(s *memoryState) error {
		items = s.listNotifications()
		return nil
	})
	return items, err
}

func (r *memoryRepository) GetNotification(ctx context.Context, id uint) (n *entities.Notification, err error) {
	err = r.locked(func(s *memoryState) error {
		n, err = s.getNotification(id)
		return err
	})
	return n, err
}

func (r *memoryRepository) CreateNotification(ctx context.Context, n *entities.Notification) error {
	return r.locked(func(s *memoryState) error { return s.createNotification(n) })
}

func (r *memoryRepository) SaveNotification(ctx context.Context, n *entities.Notification) error {
	return r.locked(func(s *memoryState) error { return s.saveNotification(n) })
}

func (r *memoryRepository) ListCartItems(ctx context.Context) (items []entities.ShoppingCartItem, err error) {
	err = r.locked(func(s *memoryState) error {
		items = s.listCartItems()
		return nil
	})
	return items, err
}

func (r *memoryRepository) CreateCartItem(ctx context.Context, item *entities.ShoppingCartItem) error {
	return r.locked(func(s *memoryState) error { return s.createCartItem(item) })
}

func (r *memoryRepository) DeleteCartItem(ctx context.Context, id uint) error {
	return r.locked(func(s *memoryState) error { return s.deleteCartItem(id) })
}

func (t *memoryTx) WithTx(ctx context.Context, fn func(tx Repository) error) error {
	return fn(t)
}

func (t *memoryTx) ListFoodItems(ctx context.Context) ([]entities.FoodItem, error) {
	return t.state.listFoodItems(), nil
}

func (t *memoryTx) GetFoodItem(ctx context.Context, id uint) (*entities.FoodItem, error) {
	return t.state.getFoodItem(id)
}

func (t *memoryTx) CreateFoodItem(ctx context.Context, item *entities.FoodItem) error {
	return t.state.createFoodItem(item)
}

func (t *memoryTx) SaveFoodItem(ctx context.Context, item *entities.FoodItem) error {
	return t.state.saveFoodItem(item)
}

func (t *memoryTx) DeleteFoodItem(ctx context.Context, id uint) error {
	return t.state.deleteFoodItem(id)
}

func (t *memoryTx) ListNotifications(ctx context.Context) ([]entities.Notification, error) {
	return t.state.listNotifications(), nil
}

func (t *memoryTx) GetNotification(ctx context.Context, id uint) (*entities.Notification, error) {
	return t.state.getNotification(id)
}

func (t *memoryTx) CreateNotification(ctx context.Context, n *entities.Notification) error {
	return t.state.createNotification(n)
}

func (t *memoryTx) SaveNotification(ctx context.Context, n *entities.Notification) error {
	return t.state.saveNotification(n)
}

func (t *memoryTx) ListCartItems(ctx context.Context) ([]entities.ShoppingCartItem, error) {
	return t.state.listCartItems(), nil
}

func (t *memoryTx) CreateCartItem(ctx context.Context, item *entities.ShoppingCartItem) error {
	return t.state.createCartItem(item)
}

func (t *memoryTx) DeleteCartItem(ctx context.Context, id uint) error {
	return t.state.deleteCartItem(id)
}

func (s *memoryState) listFoodItems() []entities.FoodItem {
	items := make([]entities.FoodItem, 0, len(s.foodItems))
	for _, item := range s.foodItems {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

func (s *memoryState) getFoodItem(id uint) (*entities.FoodItem, error) {
	item, ok := s.foodItems[id]
	if !ok {
		return nil, domain.ErrFoodItemNotFound
	}
	return &item, nil
}

func (s *memoryState) createFoodItem(item *entities.FoodItem) error {
	s.lastFoodItemID++
	item.ID = s.lastFoodItemID
	s.foodItems[item.ID] = *item
	return nil
}

func (s *memoryState) saveFoodItem(item *entities.FoodItem) error {
	existing, ok := s.foodItems[item.ID]
	if !ok {
		return domain.ErrFoodItemNotFound
	}
	item.CreatedAt = existing.CreatedAt
	s.foodItems[item.ID] = *item
	return nil
}

func (s *memoryState) deleteFoodItem(id uint) error {
	if _, ok := s.foodItems[id]; !ok {
		return domain.ErrFoodItemNotFound
	}
	delete(s.foodItems, id)
	return nil
}

func (s *memoryState) listNotifications() []entities.Notification {
	items := make([]entities.Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		items = append(items, n)
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})
	return items
}

func (s *memoryState) getNotification(id uint) (*entities.Notification, error) {
	n, ok := s.notifications[id]
	if !ok {
		return nil, domain.ErrNotificationNotFound
	}
	return &n, nil
}

func (s *memoryState) createNotification(n *entities.Notification) error {
	s.lastNotificationID++
	n.ID = s.lastNotificationID
	s.notifications[n.ID] = *n
	return nil
}

func (s *memoryState) saveNotification(n *entities.Notification) error {
	if _, ok := s.notifications[n.ID]; !ok {
		return domain.ErrNotificationNotFound
	}
	s.notifications[n.ID] = *n
	return nil
}

func (s *memoryState) listCartItems() []entities.ShoppingCartItem {
	items := make([]entities.ShoppingCartItem, 0, len(s.cartItems))
	for _, item := range s.cartItems {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].AddedAt.Equal(items[j].AddedAt) {
			return items[i].AddedAt.Before(items[j].AddedAt)
		}
		return items[i].ID < items[j].ID
	})
	return items
}

func (s *memoryState) createCartItem(item *entities.ShoppingCartItem) error {
	s.lastCartItemID++
	item.ID = s.lastCartItemID
	s.cartItems[item.ID] = *item
	return nil
}

func (s *memoryState) deleteCartItem(id uint) error {
	if _, ok := s.cartItems[id]; !ok {
		return domain.ErrCartItemNotFound
	}
	delete(s.cartItems, id)
	return nil
}
