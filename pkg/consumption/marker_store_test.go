package consumption

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"Pantry-Tracker/entities"
	"Pantry-Tracker/internal/utils/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestMarkerStores(t *testing.T) {
	stores := map[string]func(t *testing.T) MarkerStore{
		"memory": func(t *testing.T) MarkerStore { return NewMemoryMarkerStore() },
		"sqlite": func(t *testing.T) MarkerStore {
			s, err := NewSQLiteMarkerStore(filepath.Join(t.TempDir(), "nested", "markers.db"), clock.Real())
			require.NoError(t, err)
			t.Cleanup(func() { s.Close() })
			return s
		},
	}

	for name, open := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)

			day, err := s.LastDay(ctx, "job")
			require.NoError(t, err)
			assert.Empty(t, day)

			require.NoError(t, s.SetLastDay(ctx, "job", "2026-04-01"))
			require.NoError(t, s.SetLastDay(ctx, "job", "2026-04-02"))
			require.NoError(t, s.SetLastDay(ctx, "other", "2026-01-01"))

			day, err = s.LastDay(ctx, "job")
			require.NoError(t, err)
			assert.Equal(t, "2026-04-02", day)
		})
	}
}

func TestSQLiteMarkerSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "markers.db")

	s, err := NewSQLiteMarkerStore(path, clock.Real())
	require.NoError(t, err)
	require.NoError(t, s.SetLastDay(ctx, "job", "2026-04-03"))
	require.NoError(t, s.Close())

	reopened, err := NewSQLiteMarkerStore(path, clock.Real())
	require.NoError(t, err)
	defer reopened.Close()

	day, err := reopened.LastDay(ctx, "job")
	require.NoError(t, err)
	assert.Equal(t, "2026-04-03", day)
}

func TestSQLiteMarkerStampsInjectedClock(t *testing.T) {
	ctx := context.Background()
	c := clock.Fake(time.Date(2026, 4, 3, 21, 15, 0, 0, time.UTC))
	s, err := NewSQLiteMarkerStore(filepath.Join(t.TempDir(), "markers.db"), c)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SetLastDay(ctx, "job", "2026-04-03"))
	c.Advance(24 * time.Hour)
	require.NoError(t, s.SetLastDay(ctx, "job", "2026-04-04"))

	var updatedAt string
	require.NoError(t, s.db.QueryRowContext(ctx, "SELECT updated_at FROM consumption_markers WHERE key = ?", "job").Scan(&updatedAt))
	assert.Equal(t, "2026-04-04T21:15:00Z", updatedAt)
}

func TestGormMarkerStampsInjectedClock(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.ConsumptionMarker{}))
	require.NoError(t, db.Exec("DELETE FROM consumption_markers").Error)

	ctx := context.Background()
	at := time.Date(2026, 4, 3, 21, 15, 0, 0, time.UTC)
	s := NewGormMarkerStore(db, clock.Fake(at))
	require.NoError(t, s.SetLastDay(ctx, "job", "2026-04-03"))
	require.NoError(t, s.SetLastDay(ctx, "job", "2026-04-04"))

	day, err := s.LastDay(ctx, "job")
	require.NoError(t, err)
	assert.Equal(t, "2026-04-04", day)

	var marker entities.ConsumptionMarker
	require.NoError(t, db.Where("key = ?", "job").First(&marker).Error)
	assert.True(t, marker.UpdatedAt.Equal(at))
}
