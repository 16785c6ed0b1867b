package consumption

import (
	"context"
	"errors"
	"fmt"

	"Pantry-Tracker/entities"
	"Pantry-Tracker/internal/utils/clock"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormMarkerStore struct {
	db    *gorm.DB
	clock clock.Clock
}

// NewGormMarkerStore uses the consumption_markers table created by the
// migration command.
func NewGormMarkerStore(db *gorm.DB, c clock.Clock) MarkerStore {
	return &gormMarkerStore{db: db, clock: c}
}

func (s *gormMarkerStore) LastDay(ctx context.Context, key string) (string, error) {
	var marker entities.ConsumptionMarker
	if err := s.db.WithContext(ctx).Where("key = ?", key).First(&marker).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("query marker %s: %w", key, err)
	}
	return marker.Day, nil
}

func (s *gormMarkerStore) SetLastDay(ctx context.Context, key, day string) error {
	marker := entities.ConsumptionMarker{Key: key, Day: day, UpdatedAt: s.clock.Now()}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"day", "updated_at"}),
		}).
		Create(&marker).Error
	if err != nil {
		return fmt.Errorf("upsert marker %s: %w", key, err)
	}
	return nil
}
