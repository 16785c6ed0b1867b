package consumption

import (
	"context"
	"testing"
	"time"

	"Pantry-Tracker/domain"
	"Pantry-Tracker/entities"
	"Pantry-Tracker/internal/utils/clock"
	"Pantry-Tracker/pkg/cart"
	"Pantry-Tracker/pkg/cascade"
	"Pantry-Tracker/pkg/notification"
	"Pantry-Tracker/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 6, 10, 6, 0, 0, 0, time.UTC)

type engineFixture struct {
	repo   store.Repository
	clock  *clock.FakeClock
	engine Engine
}

func newEngineFixture(t *testing.T, policy string) engineFixture {
	t.Helper()
	c := clock.Fake(testNow)
	repo := store.NewMemoryRepository()
	d := cascade.NewDispatcher(notification.NewEmitter(c), cart.NewRouter(c))
	e, err := NewEngine(repo, d, c, policy)
	require.NoError(t, err)
	return engineFixture{repo: repo, clock: c, engine: e}
}

func (f engineFixture) add(t *testing.T, name string, qty, daily, daysAhead int, auto bool) uint {
	t.Helper()
	y, m, d := testNow.AddDate(0, 0, daysAhead).Date()
	item := &entities.FoodItem{
		Name:                   name,
		Quantity:               qty,
		Unit:                   domain.UnitPiece,
		Category:               domain.CategoryOther,
		ExpirationDate:         time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		AutoConsume:            auto,
		DailyConsumptionAmount: daily,
		DailyConsumptionUnit:   domain.UnitServing,
		Timestamp:              entities.Timestamp{CreatedAt: testNow},
	}
	require.NoError(t, f.repo.CreateFoodItem(context.Background(), item))
	return item.ID
}

func (f engineFixture) quantity(t *testing.T, id uint) int {
	t.Helper()
	item, err := f.repo.GetFoodItem(context.Background(), id)
	require.NoError(t, err)
	return item.Quantity
}

func (f engineFixture) notificationTypes(t *testing.T) []string {
	t.Helper()
	list, err := f.repo.ListNotifications(context.Background())
	require.NoError(t, err)
	types := make([]string, 0, len(list))
	// list is newest first; report oldest first
	for i := len(list) - 1; i >= 0; i-- {
		types = append(types, list[i].Type)
	}
	return types
}

func TestEngineSkipsIneligibleItems(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(t, "")

	manual := f.add(t, "Manual", 5, 2, 3, false)
	zeroDaily := f.add(t, "ZeroDaily", 5, 0, 3, true)
	empty := f.add(t, "Empty", 0, 2, 3, true)
	auto := f.add(t, "Auto", 5, 2, 3, true)

	report, err := f.engine.ProcessAutomaticConsumption(ctx)
	require.NoError(t, err)

	assert.Equal(t, domain.PolicyHeadOnly, report.Policy)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 2, report.Groups)
	require.Len(t, report.Consumptions, 1)
	assert.Equal(t, auto, report.Consumptions[0].FoodItemID)

	assert.Equal(t, 5, f.quantity(t, manual))
	assert.Equal(t, 5, f.quantity(t, zeroDaily))
	assert.Equal(t, 0, f.quantity(t, empty))
	assert.Equal(t, 3, f.quantity(t, auto))
	assert.Equal(t, []string{domain.NotificationTypeAutoConsumed}, f.notificationTypes(t))
}

func TestEngineHeadOnlyStopsAfterFirstItem(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(t, domain.PolicyHeadOnly)

	// B is inserted first so expiration, not id, decides the order.
	b := f.add(t, "Milk", 10, 5, 5, true)
	a := f.add(t, "Milk", 2, 5, 1, true)

	report, err := f.engine.ProcessAutomaticConsumption(ctx)
	require.NoError(t, err)

	assert.Equal(t, 0, f.quantity(t, a))
	assert.Equal(t, 10, f.quantity(t, b))

	require.Len(t, report.Consumptions, 1)
	assert.Equal(t, domain.Consumption{FoodItemID: a, Name: "Milk", Amount: 2, Unit: domain.UnitServing, Depleted: true}, report.Consumptions[0])

	assert.Equal(t, []string{domain.NotificationTypeDepleted, domain.NotificationTypeAutoConsumed}, f.notificationTypes(t))

	cartItems, err := f.repo.ListCartItems(ctx)
	require.NoError(t, err)
	require.Len(t, cartItems, 1)
	assert.Equal(t, "Milk", cartItems[0].Name)
	assert.Equal(t, 1, cartItems[0].Quantity)
	assert.Equal(t, domain.UnitPiece, cartItems[0].Unit)
}

func TestEngineCarryOverDrawsFromNextItem(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(t, domain.PolicyCarryOver)

	a := f.add(t, "Milk", 2, 5, 1, true)
	b := f.add(t, "Milk", 10, 5, 5, true)
	c := f.add(t, "Milk", 10, 5, 9, true)

	report, err := f.engine.ProcessAutomaticConsumption(ctx)
	require.NoError(t, err)

	assert.Equal(t, 0, f.quantity(t, a))
	assert.Equal(t, 7, f.quantity(t, b))
	assert.Equal(t, 10, f.quantity(t, c))
	require.Len(t, report.Consumptions, 2)
	assert.Equal(t, 3, report.Consumptions[1].Amount)
	assert.Equal(t, []string{
		domain.NotificationTypeDepleted,
		domain.NotificationTypeAutoConsumed,
		domain.NotificationTypeAutoConsumed,
	}, f.notificationTypes(t))
}

func TestEngineSkipsEmptyHeadOfGroup(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(t, "")

	empty := f.add(t, "Bread", 0, 1, 1, true)
	next := f.add(t, "Bread", 4, 1, 2, true)

	_, err := f.engine.ProcessAutomaticConsumption(ctx)
	require.NoError(t, err)

	assert.Equal(t, 0, f.quantity(t, empty))
	assert.Equal(t, 3, f.quantity(t, next))
	assert.NotContains(t, f.notificationTypes(t), domain.NotificationTypeDepleted)
}

func TestEngineGroupsByExactName(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(t, "")

	lower := f.add(t, "apple", 3, 1, 2, true)
	upper := f.add(t, "Apple", 3, 1, 1, true)

	report, err := f.engine.ProcessAutomaticConsumption(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Groups)
	assert.Equal(t, 2, f.quantity(t, lower))
	assert.Equal(t, 2, f.quantity(t, upper))
	require.Len(t, report.Consumptions, 2)
	assert.Equal(t, lower, report.Consumptions[0].FoodItemID, "groups follow first appearance by id")
}

func TestEngineTieOnExpirationKeepsIDOrder(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(t, "")

	first := f.add(t, "Juice", 3, 1, 4, true)
	second := f.add(t, "Juice", 3, 1, 4, true)

	_, err := f.engine.ProcessAutomaticConsumption(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, f.quantity(t, first))
	assert.Equal(t, 3, f.quantity(t, second))
}

func TestEngineHasNoMemoryBetweenRuns(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(t, "")
	id := f.add(t, "Cereal", 10, 3, 20, true)

	_, err := f.engine.ProcessAutomaticConsumption(ctx)
	require.NoError(t, err)
	_, err = f.engine.ProcessAutomaticConsumption(ctx)
	require.NoError(t, err)

	assert.Equal(t, 4, f.quantity(t, id))
}

func TestEngineAutoConsumedMessage(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(t, "")
	f.add(t, "Oats", 10, 3, 20, true)

	_, err := f.engine.ProcessAutomaticConsumption(ctx)
	require.NoError(t, err)

	list, err := f.repo.ListNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "3 serving of Oats was consumed automatically.", list[0].Message)
	assert.Equal(t, testNow, list[0].CreatedAt)
}

func TestNewEngineRejectsUnknownPolicy(t *testing.T) {
	_, err := NewEngine(store.NewMemoryRepository(), nil, clock.Real(), "greedy")
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}
