package router

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AryaKS01/Personal-Finance-Tracker/internal/reports"
)

type stubReports struct{}

func (stubReports) MonthlySummary(ctx context.Context, userID string) ([]reports.MonthlyRow, error) {
	return []reports.MonthlyRow{{Year: 2026, Month: 8, Income: 100, Expense: 40, ProfitLoss: 60}}, nil
}

func (stubReports) CategorySummary(ctx context.Context, userID string) ([]reports.CategoryRow, error) {
	return nil, nil
}

func (stubReports) BudgetAlerts(ctx context.Context, userID, month string) ([]reports.AlertRow, error) {
	return nil, nil
}

func (stubReports) Statement(ctx context.Context, userID, from, to string) ([]reports.StatementRow, error) {
	return nil, nil
}

func TestMonthlySummaryServedOnBothPaths(t *testing.T) {
	app := fiber.New()
	r := &Router{
		ReportsHandler: reports.NewHandler(stubReports{}),
		AuthMW: func(c *fiber.Ctx) error {
			c.Locals("user_id", "11111111-1111-1111-1111-111111111111")
			return c.Next()
		},
	}
	r.RegisterRoutes(app)

	for _, path := range []string{"/api/reports/monthly", "/api/transactions/monthly-summary"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, path)
	}
}
