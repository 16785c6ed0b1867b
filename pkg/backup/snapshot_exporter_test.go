package backup

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"Pantry-Tracker/domain"
	"Pantry-Tracker/entities"
	"Pantry-Tracker/internal/utils/clock"
	"Pantry-Tracker/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryUploader struct {
	objects map[string][]byte
	types   map[string]string
	err     error
}

func newMemoryUploader() *memoryUploader {
	return &memoryUploader{objects: map[string][]byte{}, types: map[string]string{}}
}

func (u *memoryUploader) PutObject(ctx context.Context, key string, body []byte, contentType string) error {
	if u.err != nil {
		return u.err
	}
	u.objects[key] = body
	u.types[key] = contentType
	return nil
}

func TestExportUploadsSnapshot(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 5, 22, 0, 0, 0, time.UTC)
	repo := store.NewMemoryRepository()
	require.NoError(t, repo.CreateFoodItem(ctx, &entities.FoodItem{Name: "Pasta", Quantity: 3, Unit: domain.UnitGram}))
	require.NoError(t, repo.CreateCartItem(ctx, &entities.ShoppingCartItem{Name: "Sauce", Quantity: 1, Unit: domain.UnitPiece, AddedAt: now}))

	up := newMemoryUploader()
	e := NewSnapshotExporter(repo, up, clock.Fake(now), time.UTC)

	require.NoError(t, e.Export(ctx, domain.ConsumptionReport{RunID: "abc"}))

	key := "snapshots/2026-10-05/abc.json"
	require.Contains(t, up.objects, key)
	assert.Equal(t, "application/json", up.types[key])

	var snap Snapshot
	require.NoError(t, json.Unmarshal(up.objects[key], &snap))
	assert.Equal(t, "abc", snap.RunID)
	require.Len(t, snap.FoodItems, 1)
	assert.Equal(t, "Pasta", snap.FoodItems[0].Name)
	require.Len(t, snap.CartItems, 1)
	assert.Empty(t, snap.Notifications)
}

func TestExportReturnsUploadError(t *testing.T) {
	up := newMemoryUploader()
	up.err = errors.New("access denied")
	e := NewSnapshotExporter(store.NewMemoryRepository(), up, clock.Real(), time.UTC)

	assert.ErrorIs(t, e.Export(context.Background(), domain.ConsumptionReport{RunID: "x"}), up.err)
}
