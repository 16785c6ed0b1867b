package store

import (
	"context"
	"errors"
	"fmt"

	"Pantry-Tracker/domain"
	"Pantry-Tracker/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormRepository struct {
	db *gorm.DB
	// inTx makes food item reads take row locks, so concurrent
	// transactions touching the same item run one after another.
	inTx bool
}

// NewGormRepository stores the collections in the tables created by
// migration.Migrate.
func NewGormRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) WithTx(ctx context.Context, fn func(tx Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepository{db: tx, inTx: true})
	})
}

// foodItems scopes food item reads, adding SELECT ... FOR UPDATE inside a
// transaction.
func (r *gormRepository) foodItems(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.inTx {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}

func (r *gormRepository) ListFoodItems(ctx context.Context) ([]entities.FoodItem, error) {
	var items []entities.FoodItem
	if err := r.foodItems(ctx).Order("id asc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list food items: %w", err)
	}
	return items, nil
}

func (r *gormRepository) GetFoodItem(ctx context.Context, id uint) (*entities.FoodItem, error) {
	var item entities.FoodItem
	if err := r.foodItems(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFoodItemNotFound
		}
		return nil, fmt.Errorf("get food item %d: %w", id, err)
	}
	return &item, nil
}

func (r *gormRepository) CreateFoodItem(ctx context.Context, item *entities.FoodItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("create food item: %w", err)
	}
	return nil
}

func (r *gormRepository) SaveFoodItem(ctx context.Context, item *entities.FoodItem) error {
	res := r.db.WithContext(ctx).
		Model(&entities.FoodItem{}).
		Where("id = ?", item.ID).
		Select("name", "quantity", "unit", "category", "expiration_date",
			"auto_consume", "daily_consumption_amount", "daily_consumption_unit", "updated_at").
		Updates(item)
	if res.Error != nil {
		return fmt.Errorf("save food item %d: %w", item.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrFoodItemNotFound
	}
	return nil
}

func (r *gormRepository) DeleteFoodItem(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.FoodItem{})
	if res.Error != nil {
		return fmt.Errorf("delete food item %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrFoodItemNotFound
	}
	return nil
}

func (r *gormRepository) ListNotifications(ctx context.Context) ([]entities.Notification, error) {
	var items []entities.Notification
	if err := r.db.WithContext(ctx).Order("created_at desc").Order("id desc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return items, nil
}

func (r *gormRepository) GetNotification(ctx context.Context, id uint) (*entities.Notification, error) {
	var n entities.Notification
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("get notification %d: %w", id, err)
	}
	return &n, nil
}

func (r *gormRepository) CreateNotification(ctx context.Context, n *entities.Notification) error {
	if err := r.db.WithContext(ctx).Create(n).Error; err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

func (r *gormRepository) SaveNotification(ctx context.Context, n *entities.Notification) error {
	res := r.db.WithContext(ctx).
		Model(&entities.Notification{}).
		Where("id = ?", n.ID).
		Select("is_read", "message").
		Updates(n)
	if res.Error != nil {
		return fmt.Errorf("save notification %d: %w", n.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func (r *gormRepository) ListCartItems(ctx context.Context) ([]entities.ShoppingCartItem, error) {
	var items []entities.ShoppingCartItem
	if err := r.db.WithContext(ctx).Order("added_at asc").Order("id asc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	return items, nil
}

func (r *gormRepository) CreateCartItem(ctx context.Context, item *entities.ShoppingCartItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("create cart item: %w", err)
	}
	return nil
}

func (r *gormRepository) DeleteCartItem(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.ShoppingCartItem{})
	if res.Error != nil {
		return fmt.Errorf("delete cart item %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrCartItemNotFound
	}
	return nil
}
