package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"Pantry-Tracker/domain"
	"Pantry-Tracker/entities"
	"Pantry-Tracker/internal/utils/clock"
	"Pantry-Tracker/pkg/store"

	"github.com/gofiber/fiber/v2/log"
)

type (
	Uploader interface {
		PutObject(ctx context.Context, key string, body []byte, contentType string) error
	}

	// Snapshot is the document written after each daily consumption run.
	Snapshot struct {
		RunID         string                      `json:"run_id"`
		TakenAt       time.Time                   `json:"taken_at"`
		Report        domain.ConsumptionReport    `json:"report"`
		FoodItems     []entities.FoodItem         `json:"food_items"`
		Notifications []entities.Notification     `json:"notifications"`
		CartItems     []entities.ShoppingCartItem `json:"shopping_cart_items"`
	}

	SnapshotExporter struct {
		repo     store.Repository
		uploader Uploader
		clock    clock.Clock
		loc      *time.Location
		prefix   string
	}
)

func NewSnapshotExporter(repo store.Repository, uploader Uploader, c clock.Clock, loc *time.Location) *SnapshotExporter {
	return &SnapshotExporter{
		repo:     repo,
		uploader: uploader,
		clock:    c,
		loc:      loc,
		prefix:   "snapshots",
	}
}

// Export matches consumption.PostRunHook.
func (e *SnapshotExporter) Export(ctx context.Context, report domain.ConsumptionReport) error {
	snap := Snapshot{
		RunID:   report.RunID,
		TakenAt: e.clock.Now(),
		Report:  report,
	}
	err := e.repo.WithTx(ctx, func(tx store.Repository) error {
		var err error
		if snap.FoodItems, err = tx.ListFoodItems(ctx); err != nil {
			return err
		}
		if snap.Notifications, err = tx.ListNotifications(ctx); err != nil {
			return err
		}
		snap.CartItems, err = tx.ListCartItems(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("collect snapshot: %w", err)
	}

	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	key := e.Key(snap.TakenAt, report.RunID)
	if err := e.uploader.PutObject(ctx, key, body, "application/json"); err != nil {
		return err
	}
	log.Infow("snapshot exported", "key", key, "food_items", len(snap.FoodItems))
	return nil
}

func (e *SnapshotExporter) Key(at time.Time, runID string) string {
	return fmt.Sprintf("%s/%s/%s.json", e.prefix, clock.DayKey(at, e.loc), runID)
}
