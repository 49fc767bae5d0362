package reports

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReader struct {
	monthly    func(ctx context.Context, userID string) ([]MonthlyRow, error)
	categories func(ctx context.Context, userID string) ([]CategoryRow, error)
	alerts     func(ctx context.Context, userID, month string) ([]AlertRow, error)
	statement  func(ctx context.Context, userID, from, to string) ([]StatementRow, error)
}

func (m *mockReader) MonthlySummary(ctx context.Context, userID string) ([]MonthlyRow, error) {
	return m.monthly(ctx, userID)
}

func (m *mockReader) CategorySummary(ctx context.Context, userID string) ([]CategoryRow, error) {
	return m.categories(ctx, userID)
}

func (m *mockReader) BudgetAlerts(ctx context.Context, userID, month string) ([]AlertRow, error) {
	return m.alerts(ctx, userID, month)
}

func (m *mockReader) Statement(ctx context.Context, userID, from, to string) ([]StatementRow, error) {
	return m.statement(ctx, userID, from, to)
}

func newReportsApp(store Reader) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "6f1e8a2c-0000-0000-0000-000000000001")
		return c.Next()
	})
	h := NewHandler(store)
	app.Get("/reports/monthly", h.MonthlySummary)
	app.Get("/reports/categories", h.Categories)
	app.Get("/reports/alerts", h.BudgetAlerts)
	app.Get("/reports/statement.pdf", h.StatementPDF)
	return app
}

func TestMonthlySummaryProfitLoss(t *testing.T) {
	store := &mockReader{
		monthly: func(ctx context.Context, userID string) ([]MonthlyRow, error) {
			return []MonthlyRow{
				{Year: 2026, Month: 8, Income: 500000, Expense: 320000, ProfitLoss: 180000},
				{Year: 2026, Month: 7, Income: 100000, Expense: 150000, ProfitLoss: -50000},
			}, nil
		},
	}
	app := newReportsApp(store)

	resp, err := app.Test(httptest.NewRequest("GET", "/reports/monthly", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Summary []MonthlyRow `json:"summary"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Summary, 2)
	for _, row := range body.Summary {
		assert.Equal(t, row.Income-row.Expense, row.ProfitLoss)
	}
	assert.Equal(t, int64(-50000), body.Summary[1].ProfitLoss)
}

func TestBudgetAlertsMonthValidation(t *testing.T) {
	called := false
	store := &mockReader{
		alerts: func(ctx context.Context, userID, month string) ([]AlertRow, error) {
			called = true
			return nil, nil
		},
	}
	app := newReportsApp(store)

	resp, err := app.Test(httptest.NewRequest("GET", "/reports/alerts?month=august", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.False(t, called)
}

func TestBudgetAlertsPassesMonth(t *testing.T) {
	var gotMonth string
	store := &mockReader{
		alerts: func(ctx context.Context, userID, month string) ([]AlertRow, error) {
			gotMonth = month
			return []AlertRow{{Category: "food", Limit: 30000, Spent: 41000}}, nil
		},
	}
	app := newReportsApp(store)

	resp, err := app.Test(httptest.NewRequest("GET", "/reports/alerts?month=2026-08", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "2026-08", gotMonth)

	var body struct {
		Alerts []AlertRow `json:"alerts"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Alerts, 1)
	assert.Greater(t, body.Alerts[0].Spent, body.Alerts[0].Limit)
}

func TestBudgetAlertsEmptyIsOK(t *testing.T) {
	store := &mockReader{
		alerts: func(ctx context.Context, userID, month string) ([]AlertRow, error) {
			return []AlertRow{}, nil
		},
	}
	app := newReportsApp(store)

	resp, err := app.Test(httptest.NewRequest("GET", "/reports/alerts", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"alerts":[]}`, string(raw))
}

func TestStatementPDFContentType(t *testing.T) {
	store := &mockReader{
		statement: func(ctx context.Context, userID, from, to string) ([]StatementRow, error) {
			return []StatementRow{
				{ID: "a1", Type: "expense", Category: "food", Amount: 1250, Date: "2026-08-10"},
				{ID: "a2", Type: "income", Category: "salary", Amount: 500000, Date: "2026-08-01"},
			}, nil
		},
	}
	app := newReportsApp(store)

	resp, err := app.Test(httptest.NewRequest("GET", "/reports/statement.pdf?from=2026-08-01&to=2026-08-31", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "statement-2026-08-01-to-2026-08-31.pdf")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, len(raw) > 500)
	assert.Equal(t, "%PDF", string(raw[:4]))
}

func TestTrimToKeepsRunesIntact(t *testing.T) {
	assert.Equal(t, "short", trimTo("short", 10))
	assert.Equal(t, "exactly", trimTo("exactly", 7))

	got := trimTo("café au lait über alles", 10)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "café au l~", got)

	got = trimTo("ありがとうございます", 5)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "ありがと~", got)
}

func TestStatementPDFRejectsBadRange(t *testing.T) {
	queried := false
	store := &mockReader{
		statement: func(ctx context.Context, userID, from, to string) ([]StatementRow, error) {
			queried = true
			return nil, nil
		},
	}
	app := newReportsApp(store)

	resp, err := app.Test(httptest.NewRequest("GET", "/reports/statement.pdf?from=nope&to=2026-08-31", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.False(t, queried, "statement should not be queried for a bad range")
}
