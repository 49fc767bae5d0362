package savings

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testUserID = "11111111-1111-1111-1111-111111111111"
	testGoalID = "33333333-3333-3333-3333-333333333333"
)

type mockStore struct {
	CreateFunc       func(ctx context.Context, userID string, g Goal) (Goal, error)
	ListFunc         func(ctx context.Context, userID string) ([]Goal, error)
	UpdateTargetFunc func(ctx context.Context, userID, id string, target int64) (Goal, error)
	DeleteFunc       func(ctx context.Context, userID, id string) error
	AddFundFunc      func(ctx context.Context, userID, id string, amount int64) (Goal, error)
}

func (m *mockStore) Create(ctx context.Context, userID string, g Goal) (Goal, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, g)
	}
	return g, nil
}

func (m *mockStore) List(ctx context.Context, userID string) ([]Goal, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockStore) UpdateTarget(ctx context.Context, userID, id string, target int64) (Goal, error) {
	if m.UpdateTargetFunc != nil {
		return m.UpdateTargetFunc(ctx, userID, id, target)
	}
	return Goal{}, nil
}

func (m *mockStore) Delete(ctx context.Context, userID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	return nil
}

func (m *mockStore) AddFund(ctx context.Context, userID, id string, amount int64) (Goal, error) {
	if m.AddFundFunc != nil {
		return m.AddFundFunc(ctx, userID, id, amount)
	}
	return Goal{}, nil
}

func newTestApp(store Store) *fiber.App {
	app := fiber.New()
	h := NewHandler(store)

	asUser := func(c *fiber.Ctx) error {
		c.Locals("user_id", testUserID)
		return c.Next()
	}

	app.Post("/api/savings", asUser, h.Create)
	app.Get("/api/savings", asUser, h.List)
	app.Put("/api/savings/:id", asUser, h.Update)
	app.Delete("/api/savings/:id", asUser, h.Delete)
	app.Post("/api/savings/:id/fund", asUser, h.AddFund)
	return app
}

func TestCreateGoalValidation(t *testing.T) {
	app := newTestApp(&mockStore{})

	cases := []CreateRequest{
		{Name: "", Target: 100},
		{Name: "car", Target: 0},
		{Name: "car", Target: 100, Date: "01-02-2025"},
	}
	for _, reqBody := range cases {
		body, _ := json.Marshal(reqBody)
		req := httptest.NewRequest("POST", "/api/savings", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "request %+v", reqBody)
	}
}

func TestAddFundGoalReached(t *testing.T) {
	store := &mockStore{
		AddFundFunc: func(ctx context.Context, userID, id string, amount int64) (Goal, error) {
			return Goal{ID: id, Name: "car", Target: 1000, Total: 1000}, nil
		},
	}
	app := newTestApp(store)

	body, _ := json.Marshal(FundRequest{Amount: 500})
	req := httptest.NewRequest("POST", "/api/savings/"+testGoalID+"/fund", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out goalResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "funds added, goal reached", out.Message)
}

func TestAddFundBelowTarget(t *testing.T) {
	store := &mockStore{
		AddFundFunc: func(ctx context.Context, userID, id string, amount int64) (Goal, error) {
			return Goal{ID: id, Name: "car", Target: 1000, Total: 400}, nil
		},
	}
	app := newTestApp(store)

	body, _ := json.Marshal(FundRequest{Amount: 400})
	req := httptest.NewRequest("POST", "/api/savings/"+testGoalID+"/fund", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out goalResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "funds added", out.Message)
}

func TestAddFundNotFound(t *testing.T) {
	store := &mockStore{
		AddFundFunc: func(ctx context.Context, userID, id string, amount int64) (Goal, error) {
			return Goal{}, ErrNotFound
		},
	}
	app := newTestApp(store)

	body, _ := json.Marshal(FundRequest{Amount: 100})
	req := httptest.NewRequest("POST", "/api/savings/"+testGoalID+"/fund", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
