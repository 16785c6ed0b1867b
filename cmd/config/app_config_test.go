package config

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Pantry-Tracker/domain"
	"Pantry-Tracker/internal/utils/clock"
	"Pantry-Tracker/pkg/jwt"
	"Pantry-Tracker/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

type envelope struct {
	Status  bool                `json:"status"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Error   string              `json:"error"`
	Errors  []domain.FieldError `json:"errors"`
}

type testApp struct {
	*App
	clock *clock.FakeClock
}

func newTestApp(t *testing.T, secret string) testApp {
	t.Helper()
	c := clock.Fake(testNow)
	app, err := NewApp(AppOptions{
		Repository: store.NewMemoryRepository(),
		Clock:      c,
		Location:   time.UTC,
		JWTSecret:  secret,
		LogOutput:  io.Discard,
	})
	require.NoError(t, err)
	return testApp{App: app, clock: c}
}

func (a testApp) do(t *testing.T, method, path string, body any, headers ...string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	res, err := a.Fiber.Test(req, -1)
	require.NoError(t, err)
	defer res.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(res.Body).Decode(&env))
	return res.StatusCode, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func foodBody(name string, qty int, daysAhead int) map[string]any {
	return map[string]any{
		"name":                     name,
		"quantity":                 qty,
		"unit":                     domain.UnitPiece,
		"category":                 domain.CategoryDairy,
		"expiration_date":          testNow.AddDate(0, 0, daysAhead).Format(domain.DateLayout),
		"daily_consumption_unit":   domain.UnitPiece,
		"daily_consumption_amount": 0,
	}
}

func TestApp_CreateAndValidate(t *testing.T) {
	app := newTestApp(t, "")

	status, env := app.do(t, http.MethodPost, "/api/v1/food-items", foodBody("Milk", 2, 10))
	require.Equal(t, http.StatusCreated, status)
	item := decode[domain.FoodItemResponse](t, env)
	assert.Equal(t, "Milk", item.Name)
	assert.Equal(t, 10, item.DaysUntilExpiration)

	bad := foodBody("", 2, -1)
	status, env = app.do(t, http.MethodPost, "/api/v1/food-items", bad)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Status)
	assert.Equal(t, domain.MessageValidationError, env.Message)

	fields := map[string]bool{}
	for _, f := range env.Errors {
		fields[f.Field] = true
	}
	assert.True(t, fields["name"])
	assert.True(t, fields["expiration_date"])
}

func TestApp_IDErrors(t *testing.T) {
	app := newTestApp(t, "")

	status, _ := app.do(t, http.MethodGet, "/api/v1/food-items/abc", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, env := app.do(t, http.MethodGet, "/api/v1/food-items/42", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, domain.ErrFoodItemNotFound.Error(), env.Error)

	status, _ = app.do(t, http.MethodPatch, "/api/v1/notifications/7/read", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestApp_ConsumeDepletesAndRestocks(t *testing.T) {
	app := newTestApp(t, "")

	_, env := app.do(t, http.MethodPost, "/api/v1/food-items", foodBody("Yogurt", 3, 10))
	item := decode[domain.FoodItemResponse](t, env)

	status, _ := app.do(t, http.MethodPost, "/api/v1/food-items/1/consume", map[string]any{"amount": 0})
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = app.do(t, http.MethodPost, "/api/v1/food-items/1/consume", map[string]any{"amount": 3})
	require.Equal(t, http.StatusOK, status)
	consumed := decode[domain.FoodItemResponse](t, env)
	assert.Equal(t, item.ID, consumed.ID)
	assert.Zero(t, consumed.Quantity)
	assert.True(t, consumed.Depleted)

	_, env = app.do(t, http.MethodGet, "/api/v1/shopping-cart", nil)
	cartItems := decode[[]domain.ShoppingCartItemResponse](t, env)
	require.Len(t, cartItems, 1)
	assert.Equal(t, "Yogurt", cartItems[0].Name)
	assert.Equal(t, domain.DepletedRestockQuantity, cartItems[0].Quantity)

	_, env = app.do(t, http.MethodGet, "/api/v1/notifications", nil)
	notifications := decode[[]domain.NotificationResponse](t, env)
	require.Len(t, notifications, 1)
	assert.Equal(t, domain.NotificationTypeDepleted, notifications[0].Type)
	assert.False(t, notifications[0].IsRead)

	status, env = app.do(t, http.MethodPatch, "/api/v1/notifications/1/read", nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, decode[domain.NotificationResponse](t, env).IsRead)

	_, env = app.do(t, http.MethodGet, "/api/v1/food-items/dashboard", nil)
	stats := decode[domain.DashboardStatsResponse](t, env)
	assert.Equal(t, 1, stats.DepletedItems)
	assert.Zero(t, stats.UnreadNotifications)
}

func TestApp_ShoppingCart(t *testing.T) {
	app := newTestApp(t, "")

	status, _ := app.do(t, http.MethodPost, "/api/v1/shopping-cart", map[string]any{
		"name": "Bread", "quantity": 0, "unit": domain.UnitPiece,
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, env := app.do(t, http.MethodPost, "/api/v1/shopping-cart", map[string]any{
		"name": "Bread", "quantity": 2, "unit": domain.UnitPiece,
	})
	require.Equal(t, http.StatusCreated, status)
	added := decode[domain.ShoppingCartItemResponse](t, env)
	assert.Equal(t, 2, added.Quantity)

	status, _ = app.do(t, http.MethodDelete, "/api/v1/shopping-cart/1", nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = app.do(t, http.MethodDelete, "/api/v1/shopping-cart/1", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestApp_TriggerOncePerDay(t *testing.T) {
	app := newTestApp(t, "")

	body := foodBody("Eggs", 2, 10)
	body["auto_consume"] = true
	body["daily_consumption_amount"] = 1
	status, _ := app.do(t, http.MethodPost, "/api/v1/food-items", body)
	require.Equal(t, http.StatusCreated, status)

	status, env := app.do(t, http.MethodPost, "/api/v1/auto-consumption/trigger", nil)
	require.Equal(t, http.StatusOK, status)
	res := decode[domain.TriggerResult](t, env)
	assert.True(t, res.Ran)
	assert.Equal(t, "2026-03-10", res.Day)

	_, env = app.do(t, http.MethodPost, "/api/v1/auto-consumption/trigger", nil)
	assert.False(t, decode[domain.TriggerResult](t, env).Ran)

	_, env = app.do(t, http.MethodGet, "/api/v1/auto-consumption/status", nil)
	st := decode[domain.TriggerStatusResponse](t, env)
	assert.True(t, st.ProcessedToday)

	app.clock.Advance(24 * time.Hour)
	_, env = app.do(t, http.MethodPost, "/api/v1/auto-consumption/trigger", nil)
	assert.True(t, decode[domain.TriggerResult](t, env).Ran)

	_, env = app.do(t, http.MethodGet, "/api/v1/food-items/1", nil)
	assert.Zero(t, decode[domain.FoodItemResponse](t, env).Quantity)

	_, env = app.do(t, http.MethodGet, "/api/v1/shopping-cart", nil)
	assert.Len(t, decode[[]domain.ShoppingCartItemResponse](t, env), 1)
}

func TestApp_SchedulerAuth(t *testing.T) {
	const secret = "integration-secret"
	app := newTestApp(t, secret)

	status, _ := app.do(t, http.MethodPost, "/api/v1/auto-consumption/trigger", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = app.do(t, http.MethodPost, "/api/v1/auto-consumption/process", nil, "Authorization", "Bearer nope")
	assert.Equal(t, http.StatusUnauthorized, status)

	token, err := jwt.NewJWTService(secret).GenerateSchedulerToken("cron", time.Hour)
	require.NoError(t, err)
	status, _ = app.do(t, http.MethodPost, "/api/v1/auto-consumption/trigger", nil, "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusOK, status)

	status, _ = app.do(t, http.MethodGet, "/api/v1/auto-consumption/status", nil)
	assert.Equal(t, http.StatusOK, status)
}
